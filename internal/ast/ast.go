// Package ast defines the typed abstract syntax tree built by the parser
// driver (internal/parser) and lowered to three-address code by the TAC
// generator (internal/tac). Per spec.md §9's design note on "AST
// polymorphism", the source language's inheritance hierarchy
// (ASTNode → ExprNode/StmtNode → concrete) is re-expressed here as a closed
// sum of node variants: a small sealed Node interface with position fields,
// and separate sealed Expr/Stmt/Loc interfaces for the node families that
// need extra behavior, each implemented by exactly the concrete types in
// this package. The "single dispatch over variant tag" the note calls for
// is done by the TAC generator's type switch over these concrete types,
// grounded in spirit on internal/tunascript/eval.go's direct
// type-switch-per-node-kind evaluation style (adapted from "evaluate to a
// Value" to "lower to Instructions").
package ast

// Node is implemented by every AST node. The unexported node() method seals
// the interface to this package, the same closed-variant-set discipline the
// teacher's internal/ictiobus/types.ParseTree achieves structurally (one
// concrete type with a Terminal flag) but expressed here as a sealed
// interface since our variants carry materially different fields.
type Node interface {
	Pos() (line, col int)
	node()
}

// Pos is embedded by every concrete node to provide its position and
// satisfy half of the Node interface.
type Pos struct {
	Line int
	Col  int
}

// Pos returns the node's source position.
func (p Pos) Pos() (int, int) { return p.Line, p.Col }

func (Pos) node() {}
