package ast

// Expr is implemented by every expression-flavored node: Binary,
// ShortCircuit, Unary, Paren, Literal, and the Loc family used as an
// rvalue. Each carries a place/type_string pair set during TAC lowering
// (spec.md §3).
type Expr interface {
	Node
	Place() Address
	SetPlace(Address)
	TypeString() string
	SetTypeString(string)
	expr()
}

// ExprBase is embedded by every concrete Expr to supply the place/type
// fields and their accessors.
type ExprBase struct {
	Pos
	place Address
	typ   string
}

func (e *ExprBase) Place() Address          { return e.place }
func (e *ExprBase) SetPlace(a Address)      { e.place = a }
func (e *ExprBase) TypeString() string      { return e.typ }
func (e *ExprBase) SetTypeString(t string)  { e.typ = t }
func (*ExprBase) expr()                     {}

// Literal is a literal value token lowered directly to a Constant address;
// Kind is one of "int", "float", "bool" per spec.md §4.4's literal
// recognition rule.
type Literal struct {
	ExprBase
	Value string
	Kind  string
}

// Binary is a non-short-circuit binary operator application: arithmetic,
// comparison, or equality.
type Binary struct {
	ExprBase
	Op    string
	Left  Expr
	Right Expr
}

// ShortCircuit is a && or || application, lowered via jumps per spec.md
// §4.6 rather than as an eager BinaryOp.
type ShortCircuit struct {
	ExprBase
	Op    string // "&&" or "||"
	Left  Expr
	Right Expr
}

// Unary is a prefix operator application: "!" (boolean not) or "-"
// (numeric negate).
type Unary struct {
	ExprBase
	Op      string
	Operand Expr
}

// Paren is a parenthesized expression; it adopts its inner expression's
// place and type during lowering (spec.md §4.6) rather than allocating
// anything of its own.
type Paren struct {
	ExprBase
	Inner Expr
}
