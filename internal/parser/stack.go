// Package parser implements the table-driven shift/reduce driver of
// spec.md §4.4: a dual state-stack/symbol-stack automaton that consumes a
// token stream, drives ACTION/GOTO lookups, dispatches each reduction to an
// AST builder, and performs panic-mode error recovery on table misses.
// Grounded directly on internal/ictiobus/parse/lr.go's Parse method (the
// stateStack/tokenBuffer/subTreeRoots triple-stack shape, the
// shift/reduce/accept/error switch, the notifyTrace* trace-listener
// family), generalized from building an untyped types.ParseTree to building
// the typed ast package's node set; panic-mode recovery is new (the
// teacher's LRError case just reports and stops).
package parser

import "github.com/dekarrin/blockc/internal/lex"

// StackEntry is the heterogeneous symbol-stack cell spec.md §9 calls for: a
// tagged union of a raw shifted token or a semantic value built by a
// reduction. Value holds whatever an AST builder produced for the
// corresponding production: an ast.Node for most productions, but also
// plain Go slices ([]*ast.Decl, []ast.Stmt) and ast.TypeExpr values for the
// handful of non-terminals (decls, stmts, type) that stage an accumulating
// or non-tree value rather than a tree node per se.
type StackEntry struct {
	Token *lex.Token
	Value any
}
