package ast

import (
	"fmt"
	"strings"
)

// Dump renders prog as an indented tree, one node per line, for the CLI's
// --dump-ast surface (spec.md §6). It is the one piece of the front end
// that writes its own indentation by hand instead of reaching for rosed:
// rosed's table/column layout has no natural encoding of parent/child
// nesting depth, so a tree dump is walked and indented directly rather
// than forced into a tabular shape it doesn't fit.
func Dump(prog *Program) string {
	var sb strings.Builder
	sb.WriteString("Program\n")
	dumpStmt(&sb, 1, prog.Block)
	return strings.TrimRight(sb.String(), "\n")
}

func indent(sb *strings.Builder, depth int) {
	sb.WriteString(strings.Repeat("  ", depth))
}

func dumpStmt(sb *strings.Builder, depth int, s Stmt) {
	switch v := s.(type) {
	case *Block:
		indent(sb, depth)
		fmt.Fprintf(sb, "Block (line %d)\n", v.Line)
		for _, d := range v.Decls {
			indent(sb, depth+1)
			fmt.Fprintf(sb, "Decl %s : %s (line %d)\n", d.Name, d.Type.Render(), d.Line)
		}
		for _, st := range v.Stmts {
			dumpStmt(sb, depth+1, st)
		}
	case *Assign:
		indent(sb, depth)
		fmt.Fprintf(sb, "Assign (line %d)\n", v.Line)
		dumpExpr(sb, depth+1, v.Loc)
		dumpExpr(sb, depth+1, v.Expr)
	case *If:
		indent(sb, depth)
		fmt.Fprintf(sb, "If (line %d)\n", v.Line)
		dumpExpr(sb, depth+1, v.Cond)
		dumpStmt(sb, depth+1, v.Then)
		if v.Else != nil {
			indent(sb, depth+1)
			sb.WriteString("Else\n")
			dumpStmt(sb, depth+2, v.Else)
		}
	case *While:
		indent(sb, depth)
		fmt.Fprintf(sb, "While (line %d)\n", v.Line)
		dumpExpr(sb, depth+1, v.Cond)
		dumpStmt(sb, depth+1, v.Body)
	case *DoWhile:
		indent(sb, depth)
		fmt.Fprintf(sb, "DoWhile (line %d)\n", v.Line)
		dumpStmt(sb, depth+1, v.Body)
		dumpExpr(sb, depth+1, v.Cond)
	case *Break:
		indent(sb, depth)
		fmt.Fprintf(sb, "Break (line %d)\n", v.Line)
	default:
		indent(sb, depth)
		fmt.Fprintf(sb, "<unknown stmt %T>\n", s)
	}
}

func dumpExpr(sb *strings.Builder, depth int, e Expr) {
	switch v := e.(type) {
	case *Literal:
		indent(sb, depth)
		fmt.Fprintf(sb, "Literal %s (%s)\n", v.Value, v.Kind)
	case *LocID:
		indent(sb, depth)
		fmt.Fprintf(sb, "LocID %s\n", v.Name)
	case *ArrayAccess:
		indent(sb, depth)
		sb.WriteString("ArrayAccess\n")
		dumpExpr(sb, depth+1, v.Base)
		dumpExpr(sb, depth+1, v.Index)
	case *Binary:
		indent(sb, depth)
		fmt.Fprintf(sb, "Binary %s\n", v.Op)
		dumpExpr(sb, depth+1, v.Left)
		dumpExpr(sb, depth+1, v.Right)
	case *ShortCircuit:
		indent(sb, depth)
		fmt.Fprintf(sb, "ShortCircuit %s\n", v.Op)
		dumpExpr(sb, depth+1, v.Left)
		dumpExpr(sb, depth+1, v.Right)
	case *Unary:
		indent(sb, depth)
		fmt.Fprintf(sb, "Unary %s\n", v.Op)
		dumpExpr(sb, depth+1, v.Operand)
	case *Paren:
		indent(sb, depth)
		sb.WriteString("Paren\n")
		dumpExpr(sb, depth+1, v.Inner)
	default:
		indent(sb, depth)
		fmt.Fprintf(sb, "<unknown expr %T>\n", e)
	}
}
