package ast

import "fmt"

// Program wraps the whole source's single top-level block (spec.md §4.4:
// "program → block returns the block wrapped in Program").
type Program struct {
	Pos
	Block *Block
}

// Block is `{ decls stmts }`; both Decls and Stmts may be empty (produced
// via their respective ε productions). Block is also a Stmt, since
// matched_stmt → block nests one block inside another.
type Block struct {
	Pos
	Decls []*Decl
	Stmts []Stmt
}

func (*Block) stmt() {}

// Decl is `type T_ID ;`.
type Decl struct {
	Pos
	Type TypeExpr
	Name string
}

// TypeExpr is a declared type: either a bare basic-type name or an array
// wrapping another TypeExpr, per spec.md §3's Type/ArrayType variants.
type TypeExpr interface {
	Render() string
	typeExpr()
}

// BasicType is one of the T_BASIC names (int, long, float, double, boolean,
// char, byte, short).
type BasicType struct {
	Name string
}

func (b BasicType) Render() string { return b.Name }
func (BasicType) typeExpr()        {}

// ArrayType is `type [ T_NUM ]`: an element type and a compile-time-constant
// size. Per spec.md §9's accepted generalization, the array grammar's size
// is still restricted to an integer literal (size_of needs it as a
// compile-time constant), while ArrayAccess's index may be any expression.
type ArrayType struct {
	Element TypeExpr
	Size    int
}

// Render produces the canonical "array(T, n)" form internal/symtab's
// size_of parses depth-aware, per spec.md §4.5.
func (a ArrayType) Render() string {
	return fmt.Sprintf("array(%s, %d)", a.Element.Render(), a.Size)
}

func (ArrayType) typeExpr() {}
