package tac

import (
	"fmt"

	"github.com/dekarrin/blockc/internal/ast"
	"github.com/dekarrin/blockc/internal/diag"
	"github.com/dekarrin/blockc/internal/ice"
	"github.com/dekarrin/blockc/internal/symtab"
	"github.com/dekarrin/blockc/internal/util"
)

// Generator owns the monotone temp and label counters and the break-label
// stack (the instruction total is len(Instructions), not a separate
// counter), plus the symbol table they share with the surrounding
// declarations, and the instruction list they emit into. These
// are ordinary fields of a generator value rather than globals, per
// spec.md §9's "global mutable state" design note.
type Generator struct {
	Instructions []Instruction
	Symbols      *symtab.Table

	bag          *diag.Bag
	tempCounter  int
	labelCounter int
	breakStack   util.Stack[ast.Address]
}

// New creates a Generator with a fresh global scope already pushed onto its
// symbol table. bag receives every semantic diagnostic raised while
// lowering (unresolved identifiers, type mismatches, break outside a loop).
func New(bag *diag.Bag) *Generator {
	return &Generator{Symbols: symtab.New(), bag: bag}
}

func (g *Generator) newTemp() ast.Address {
	t := ast.Name(fmt.Sprintf("t%d", g.tempCounter))
	g.tempCounter++
	return t
}

func (g *Generator) newLabel(desc ...string) ast.Address {
	l := ast.Label(fmt.Sprintf("L%d", g.labelCounter), desc...)
	g.labelCounter++
	return l
}

func (g *Generator) emit(i Instruction) {
	g.Instructions = append(g.Instructions, i)
}

func (g *Generator) emitAssign(dest, src ast.Address) {
	g.emit(Instruction{Kind: KindAssign, Op: "=", A: src, C: dest})
}

func (g *Generator) emitBinary(op string, l, r, result ast.Address) {
	g.emit(Instruction{Kind: KindBinaryOp, Op: op, A: l, B: r, C: result})
}

func (g *Generator) emitUnary(op string, operand, result ast.Address) {
	g.emit(Instruction{Kind: KindUnaryOp, Op: op, A: operand, C: result})
}

func (g *Generator) emitStore(addr, value ast.Address) {
	g.emit(Instruction{Kind: KindStore, Op: "store", A: addr, B: value})
}

func (g *Generator) emitGoto(label ast.Address) {
	g.emit(Instruction{Kind: KindGoto, Op: "goto", A: label})
}

func (g *Generator) emitIfTrueGoto(cond, label ast.Address) {
	g.emit(Instruction{Kind: KindIfTrueGoto, Op: "iftrue", A: cond, B: label})
}

func (g *Generator) emitIfFalseGoto(cond, label ast.Address) {
	g.emit(Instruction{Kind: KindIfFalseGoto, Op: "iffalse", A: cond, B: label})
}

func (g *Generator) emitLabel(label ast.Address) {
	g.emit(Instruction{Kind: KindLabel, A: label})
}

func (g *Generator) emitDeclareSymbol(name, typ string, line int) {
	g.emit(Instruction{Kind: KindDeclareSymbol, Name: name, TypeString: typ, Line: line})
}

func (g *Generator) emitBeginBlock(line int) {
	g.emit(Instruction{Kind: KindBeginBlock, Line: line})
}

func (g *Generator) emitEndBlock(line int) {
	g.emit(Instruction{Kind: KindEndBlock, Line: line})
}

func (g *Generator) emitComment(text string) {
	g.emit(Instruction{Kind: KindComment, Text: text})
}

// Generate lowers prog to three-address code, appending to g.Instructions.
func (g *Generator) Generate(prog *ast.Program) {
	g.lowerBlock(prog.Block)
}

func (g *Generator) lowerBlock(b *ast.Block) {
	g.emitBeginBlock(b.Line)
	g.Symbols.EnterScope()

	for _, d := range b.Decls {
		g.lowerDecl(d)
	}
	for _, s := range b.Stmts {
		g.lowerStmt(s)
	}

	g.Symbols.LeaveScope()
	g.emitEndBlock(b.Line)
}

func (g *Generator) lowerDecl(d *ast.Decl) {
	typeString := d.Type.Render()
	if _, ok := g.Symbols.Add(d.Name, typeString, symtab.Variable); !ok {
		g.bag.Addf(diag.Error, diag.PhaseSymbols, d.Line, d.Col, "redeclaration of %q in the same scope", d.Name)
	}
	g.emitDeclareSymbol(d.Name, typeString, d.Line)
}

func (g *Generator) lowerStmt(s ast.Stmt) {
	switch v := s.(type) {
	case *ast.Assign:
		g.lowerAssign(v)
	case *ast.If:
		g.lowerIf(v)
	case *ast.While:
		g.lowerWhile(v)
	case *ast.DoWhile:
		g.lowerDoWhile(v)
	case *ast.Break:
		g.lowerBreak(v)
	case *ast.Block:
		g.lowerBlock(v)
	default:
		ice.Fatal("no TAC lowering registered for statement type %T", s)
	}
}

func (g *Generator) lowerAssign(a *ast.Assign) {
	exprPlace := g.lowerExpr(a.Expr)
	locPlace := g.lowerExpr(a.Loc)

	if _, isArray := a.Loc.(*ast.ArrayAccess); isArray {
		g.emitStore(locPlace, exprPlace)
		return
	}
	g.emitAssign(locPlace, exprPlace)
}

func (g *Generator) lowerIf(i *ast.If) {
	condPlace := g.lowerExpr(i.Cond)

	if i.Else == nil {
		lEnd := g.newLabel()
		g.emitIfFalseGoto(condPlace, lEnd)
		g.lowerStmt(i.Then)
		g.emitLabel(lEnd)
		return
	}

	lElse := g.newLabel()
	lEnd := g.newLabel()
	g.emitIfFalseGoto(condPlace, lElse)
	g.lowerStmt(i.Then)
	g.emitGoto(lEnd)
	g.emitLabel(lElse)
	g.lowerStmt(i.Else)
	g.emitLabel(lEnd)
}

func (g *Generator) lowerWhile(w *ast.While) {
	lCond := g.newLabel()
	lExit := g.newLabel()

	g.emitLabel(lCond)
	condPlace := g.lowerExpr(w.Cond)
	g.emitIfFalseGoto(condPlace, lExit)

	g.breakStack.Push(lExit)
	g.lowerStmt(w.Body)
	g.breakStack.Pop()

	g.emitGoto(lCond)
	g.emitLabel(lExit)
}

func (g *Generator) lowerDoWhile(d *ast.DoWhile) {
	lStart := g.newLabel()
	lExit := g.newLabel()

	g.emitLabel(lStart)
	g.breakStack.Push(lExit)
	g.lowerStmt(d.Body)
	g.breakStack.Pop()

	condPlace := g.lowerExpr(d.Cond)
	g.emitIfTrueGoto(condPlace, lStart)
	g.emitLabel(lExit)
}

func (g *Generator) lowerBreak(b *ast.Break) {
	if g.breakStack.Empty() {
		g.bag.Addf(diag.Error, diag.PhaseTAC, b.Line, b.Col, "break outside of loop")
		return
	}
	g.emitGoto(g.breakStack.Peek())
}

func (g *Generator) lowerExpr(e ast.Expr) ast.Address {
	switch v := e.(type) {
	case *ast.Literal:
		return g.lowerLiteral(v)
	case *ast.LocID:
		return g.lowerLocID(v)
	case *ast.ArrayAccess:
		return g.lowerArrayAccess(v)
	case *ast.Binary:
		return g.lowerBinary(v)
	case *ast.ShortCircuit:
		return g.lowerShortCircuit(v)
	case *ast.Unary:
		return g.lowerUnary(v)
	case *ast.Paren:
		return g.lowerParen(v)
	default:
		ice.Fatal("no TAC lowering registered for expression type %T", e)
		return ast.Address{}
	}
}

func (g *Generator) lowerLiteral(l *ast.Literal) ast.Address {
	place := ast.Constant(l.Value, l.Kind)
	l.SetPlace(place)
	l.SetTypeString(l.Kind)
	return place
}

func (g *Generator) lowerLocID(l *ast.LocID) ast.Address {
	entry, ok := g.Symbols.Lookup(l.Name)
	if !ok {
		g.bag.Addf(diag.Error, diag.PhaseTAC, l.Line, l.Col, "undefined variable %q", l.Name)
		place := ast.Name("UNDEFINED_VAR_" + l.Name)
		l.SetPlace(place)
		l.SetTypeString("error_type")
		return place
	}

	place := ast.Name(fmt.Sprintf("%s_scope%d", l.Name, entry.ScopeLevel))
	l.SetPlace(place)
	l.SetTypeString(entry.TypeString)
	return place
}

func (g *Generator) lowerArrayAccess(a *ast.ArrayAccess) ast.Address {
	basePlace := g.lowerExpr(a.Base)
	indexPlace := g.lowerExpr(a.Index)

	elem, _, ok := symtab.ParseArrayType(a.Base.TypeString())
	if !ok {
		g.bag.Addf(diag.Error, diag.PhaseTAC, a.Line, a.Col, "cannot index non-array type %q", a.Base.TypeString())
		elem = "int"
	}
	elemSize, _ := symtab.SizeOf(elem)

	offset := g.newTemp()
	g.emitBinary("*", indexPlace, ast.Constant(fmt.Sprintf("%d", elemSize), "int"), offset)

	addr := g.newTemp()
	g.emitBinary("+", basePlace, offset, addr)

	a.SetPlace(addr)
	a.SetTypeString(elem)
	return addr
}

func isNumeric(t string) bool {
	return t == "int" || t == "float"
}

// isBoolean accepts both the literal/result type tag ("bool", produced by
// true/false literals and comparison results) and the declared-keyword
// spelling ("boolean", the only T_BASIC name the grammar's lexer maps to a
// boolean type per spec.md §6) as boolean-compatible.
func isBoolean(t string) bool {
	return t == "bool" || t == "boolean"
}

func (g *Generator) binaryResultType(op, lt, rt string, line, col int) string {
	switch op {
	case "==", "!=", "<", "<=", ">", ">=":
		return "bool"
	}

	switch {
	case lt == "float" && isNumeric(rt), rt == "float" && isNumeric(lt):
		return "float"
	case lt == "int" && rt == "int":
		return "int"
	default:
		g.bag.Addf(diag.Error, diag.PhaseTAC, line, col, "incompatible operand types %q and %q for %q", lt, rt, op)
		return "error_type"
	}
}

func (g *Generator) lowerBinary(b *ast.Binary) ast.Address {
	l := g.lowerExpr(b.Left)
	r := g.lowerExpr(b.Right)
	result := g.newTemp()

	resultType := g.binaryResultType(b.Op, b.Left.TypeString(), b.Right.TypeString(), b.Line, b.Col)
	g.emitBinary(b.Op, l, r, result)

	b.SetPlace(result)
	b.SetTypeString(resultType)
	return result
}

func (g *Generator) lowerUnary(u *ast.Unary) ast.Address {
	operandPlace := g.lowerExpr(u.Operand)
	result := g.newTemp()

	var resultType string
	switch u.Op {
	case "-":
		if isNumeric(u.Operand.TypeString()) {
			resultType = u.Operand.TypeString()
		} else {
			g.bag.Addf(diag.Error, diag.PhaseTAC, u.Line, u.Col, "unary - requires a numeric operand, got %q", u.Operand.TypeString())
			resultType = "error_type"
		}
	case "!":
		if isBoolean(u.Operand.TypeString()) {
			resultType = "bool"
		} else {
			g.bag.Addf(diag.Error, diag.PhaseTAC, u.Line, u.Col, "unary ! requires a bool operand, got %q", u.Operand.TypeString())
			resultType = "error_type"
		}
	}

	g.emitUnary(u.Op, operandPlace, result)
	u.SetPlace(result)
	u.SetTypeString(resultType)
	return result
}

func (g *Generator) lowerParen(p *ast.Paren) ast.Address {
	inner := g.lowerExpr(p.Inner)
	p.SetPlace(inner)
	p.SetTypeString(p.Inner.TypeString())
	return inner
}

// lowerShortCircuit implements spec.md §4.6's jump-based lowering of && and
// ||, the hardest of the node contracts: short-circuiting is realized as
// jumps around a result temp rather than as an eager BinaryOp.
func (g *Generator) lowerShortCircuit(sc *ast.ShortCircuit) ast.Address {
	lPlace := g.lowerExpr(sc.Left)
	result := g.newTemp()

	switch sc.Op {
	case "&&":
		lFalse := g.newLabel()
		lEnd := g.newLabel()

		g.emitIfFalseGoto(lPlace, lFalse)
		rPlace := g.lowerExpr(sc.Right)
		g.emitIfFalseGoto(rPlace, lFalse)
		g.emitAssign(result, ast.Constant("true", "bool"))
		g.emitGoto(lEnd)
		g.emitLabel(lFalse)
		g.emitAssign(result, ast.Constant("false", "bool"))
		g.emitLabel(lEnd)

	case "||":
		lTrue := g.newLabel()
		lEnd := g.newLabel()

		g.emitIfTrueGoto(lPlace, lTrue)
		rPlace := g.lowerExpr(sc.Right)
		g.emitIfTrueGoto(rPlace, lTrue)
		g.emitAssign(result, ast.Constant("false", "bool"))
		g.emitGoto(lEnd)
		g.emitLabel(lTrue)
		g.emitAssign(result, ast.Constant("true", "bool"))
		g.emitLabel(lEnd)
	}

	sc.SetPlace(result)
	sc.SetTypeString("bool")
	return result
}
