// Package tac lowers a parsed ast.Program to three-address code in a single
// post-order traversal, per spec.md §4.6. No teacher file does anything
// like this (the teacher's pipeline stops at a parse tree); the instruction
// shape and node-by-node contracts are built directly from the
// specification, rendered in the canonical four-field form spec.md §6
// mandates for the CLI surface.
package tac

import (
	"fmt"
	"strings"

	"github.com/dekarrin/blockc/internal/ast"
)

// Kind tags which of the twelve instruction shapes spec.md §3 enumerates an
// Instruction is.
type Kind int

const (
	KindAssign Kind = iota
	KindBinaryOp
	KindUnaryOp
	KindStore
	KindGoto
	KindIfTrueGoto
	KindIfFalseGoto
	KindLabel
	KindDeclareSymbol
	KindBeginBlock
	KindEndBlock
	KindComment
)

// Instruction is one emitted TAC instruction. Most kinds render through the
// canonical four-field (op, a, b, c) form with Op/A/B/C; Label, Comment,
// BeginBlock/EndBlock, and DeclareSymbol instead use the special renderings
// spec.md §6 mandates, drawing on Line/Name/TypeString/Text instead.
type Instruction struct {
	Kind Kind
	Op   string
	A, B, C ast.Address

	Line       int    // BeginBlock, EndBlock, DeclareSymbol, Comment-adjacent diagnostics
	Name       string // DeclareSymbol's symbol name
	TypeString string // DeclareSymbol's type
	Text       string // Comment's message
}

func operand(a ast.Address) string {
	if a.IsZero() {
		return "_"
	}
	return a.String()
}

// String renders one instruction per spec.md §6's output format.
func (i Instruction) String() string {
	switch i.Kind {
	case KindLabel:
		if i.A.Desc != "" {
			return fmt.Sprintf("%s:\t# %s", i.A.Text, i.A.Desc)
		}
		return fmt.Sprintf("%s:", i.A.Text)
	case KindComment:
		return "# " + i.Text
	case KindBeginBlock:
		return fmt.Sprintf("BEGIN_BLOCK (Line: %d)", i.Line)
	case KindEndBlock:
		return fmt.Sprintf("END_BLOCK (Line: %d)", i.Line)
	case KindDeclareSymbol:
		return fmt.Sprintf("DECLARE %s : %s (Line: %d)", i.Name, i.TypeString, i.Line)
	default:
		return fmt.Sprintf("(%s, %s, %s, %s)", i.Op, operand(i.A), operand(i.B), operand(i.C))
	}
}

// Render joins a full instruction stream into its canonical textual dump,
// one instruction per line, for the CLI's --dump-tac surface (spec.md §6).
func Render(instrs []Instruction) string {
	lines := make([]string, len(instrs))
	for i, instr := range instrs {
		lines[i] = instr.String()
	}
	return strings.Join(lines, "\n")
}
