package parser

import (
	"strconv"

	"github.com/dekarrin/blockc/internal/ast"
	"github.com/dekarrin/blockc/internal/grammar"
	"github.com/dekarrin/blockc/internal/ice"
	"github.com/dekarrin/blockc/internal/lex"
)

// build dispatches one reduction to the AST-construction rule spec.md §4.4
// assigns its production, given the popped symbol-stack entries in
// bottom-to-top (left-to-right) order. The returned value becomes the new
// top-of-stack's StackEntry.Value: an ast.Node for most productions, but a
// plain []*ast.Decl, []ast.Stmt, or ast.TypeExpr for the accumulating/staging
// non-terminals (decls, stmts, type). prod.ID 0, the augmentation rule, is
// never passed here — the parser driver consumes it directly on Accept.
func build(prod grammar.Production, popped []StackEntry, lookahead lex.Token) any {
	switch prod.ID {

	case 1: // program -> block
		block := popped[0].Value.(*ast.Block)
		return &ast.Program{Pos: block.Pos, Block: block}

	case 2: // block -> { decls stmts }
		decls := popped[1].Value.([]*ast.Decl)
		stmts := popped[2].Value.([]ast.Stmt)
		return &ast.Block{Pos: posFromToken(popped[0].Token), Decls: decls, Stmts: stmts}

	case 3: // decls -> decls decl
		decls := popped[0].Value.([]*ast.Decl)
		decl := popped[1].Value.(*ast.Decl)
		return append(decls, decl)

	case 4: // decls -> ε
		return []*ast.Decl{}

	case 5: // decl -> type T_ID ;
		typ := popped[0].Value.(ast.TypeExpr)
		name := popped[1].Token
		return &ast.Decl{Pos: posFromToken(name), Type: typ, Name: name.Lexeme}

	case 6: // type -> T_BASIC
		return ast.TypeExpr(ast.BasicType{Name: popped[0].Token.Lexeme})

	case 7: // type -> type [ T_NUM ]
		elem := popped[0].Value.(ast.TypeExpr)
		size, err := strconv.Atoi(popped[2].Token.Lexeme)
		if err != nil {
			ice.Fatal("array size literal %q did not lex as an integer", popped[2].Token.Lexeme)
		}
		return ast.TypeExpr(ast.ArrayType{Element: elem, Size: size})

	case 8: // stmts -> stmts stmt
		stmts := popped[0].Value.([]ast.Stmt)
		stmt := popped[1].Value.(ast.Stmt)
		return append(stmts, stmt)

	case 9: // stmts -> ε
		return []ast.Stmt{}

	case 10, 11: // stmt -> matched_stmt | unmatched_stmt
		return popped[0].Value.(ast.Stmt)

	case 12: // matched_stmt -> if ( bool ) matched_stmt else matched_stmt
		return &ast.If{
			Pos:  posFromToken(popped[0].Token),
			Cond: popped[2].Value.(ast.Expr),
			Then: popped[4].Value.(ast.Stmt),
			Else: popped[6].Value.(ast.Stmt),
		}

	case 13: // matched_stmt -> while ( bool ) matched_stmt
		return &ast.While{
			Pos:  posFromToken(popped[0].Token),
			Cond: popped[2].Value.(ast.Expr),
			Body: popped[4].Value.(ast.Stmt),
		}

	case 14: // matched_stmt -> do matched_stmt while ( bool ) ;
		return &ast.DoWhile{
			Pos:  posFromToken(popped[0].Token),
			Body: popped[1].Value.(ast.Stmt),
			Cond: popped[4].Value.(ast.Expr),
		}

	case 15: // matched_stmt -> assign ;
		return popped[0].Value.(ast.Stmt)

	case 16: // matched_stmt -> break ;
		return &ast.Break{Pos: posFromToken(popped[0].Token)}

	case 17: // matched_stmt -> block
		return ast.Stmt(popped[0].Value.(*ast.Block))

	case 18: // unmatched_stmt -> if ( bool ) stmt
		return &ast.If{
			Pos:  posFromToken(popped[0].Token),
			Cond: popped[2].Value.(ast.Expr),
			Then: popped[4].Value.(ast.Stmt),
		}

	case 19: // unmatched_stmt -> if ( bool ) matched_stmt else unmatched_stmt
		return &ast.If{
			Pos:  posFromToken(popped[0].Token),
			Cond: popped[2].Value.(ast.Expr),
			Then: popped[4].Value.(ast.Stmt),
			Else: popped[6].Value.(ast.Stmt),
		}

	case 20: // unmatched_stmt -> while ( bool ) unmatched_stmt
		return &ast.While{
			Pos:  posFromToken(popped[0].Token),
			Cond: popped[2].Value.(ast.Expr),
			Body: popped[4].Value.(ast.Stmt),
		}

	case 21: // assign -> loc = bool
		loc := popped[0].Value.(ast.Loc)
		return ast.Stmt(&ast.Assign{Pos: posFromNode(loc), Loc: loc, Expr: popped[2].Value.(ast.Expr)})

	case 22: // loc -> T_ID
		tok := popped[0].Token
		return ast.Loc(&ast.LocID{ExprBase: ast.ExprBase{Pos: posFromToken(tok)}, Name: tok.Lexeme})

	case 23: // loc -> loc [ T_NUM ]
		base := popped[0].Value.(ast.Loc)
		numTok := popped[2].Token
		index := &ast.Literal{ExprBase: ast.ExprBase{Pos: posFromToken(numTok)}, Value: numTok.Lexeme, Kind: "int"}
		return ast.Loc(&ast.ArrayAccess{ExprBase: ast.ExprBase{Pos: posFromNode(base)}, Base: base, Index: index})

	case 24: // bool -> bool || join
		return binaryShortCircuit("||", popped)

	case 25, 27, 30, 35, 38, 41, 44: // single-child passthroughs down the precedence cascade
		return popped[0].Value.(ast.Expr)

	case 26: // join -> join && equality
		return binaryShortCircuit("&&", popped)

	case 28: // equality -> equality == rel
		return binaryOp("==", popped)

	case 29: // equality -> equality != rel
		return binaryOp("!=", popped)

	case 31: // rel -> expr < expr
		return binaryOp("<", popped)

	case 32: // rel -> expr <= expr
		return binaryOp("<=", popped)

	case 33: // rel -> expr > expr
		return binaryOp(">", popped)

	case 34: // rel -> expr >= expr
		return binaryOp(">=", popped)

	case 36: // expr -> expr + term
		return binaryOp("+", popped)

	case 37: // expr -> expr - term
		return binaryOp("-", popped)

	case 39: // term -> term * unary
		return binaryOp("*", popped)

	case 40: // term -> term / unary
		return binaryOp("/", popped)

	case 42: // unary -> ! unary
		return unaryOp("!", popped)

	case 43: // unary -> - unary
		return unaryOp("-", popped)

	case 45: // factor -> ( bool )
		inner := popped[1].Value.(ast.Expr)
		return ast.Expr(&ast.Paren{ExprBase: ast.ExprBase{Pos: posFromToken(popped[0].Token)}, Inner: inner})

	case 46: // factor -> loc
		return ast.Expr(popped[0].Value.(ast.Loc))

	case 47: // factor -> T_NUM
		return literal(popped[0].Token, "int")

	case 48: // factor -> T_REAL
		return literal(popped[0].Token, "float")

	case 49: // factor -> true
		return literal(popped[0].Token, "bool")

	case 50: // factor -> false
		return literal(popped[0].Token, "bool")

	default:
		ice.Fatal("no AST builder registered for production %d (%s)", prod.ID, prod)
		return nil
	}
}

func binaryOp(op string, popped []StackEntry) ast.Expr {
	left := popped[0].Value.(ast.Expr)
	right := popped[2].Value.(ast.Expr)
	return &ast.Binary{ExprBase: ast.ExprBase{Pos: posFromNode(left)}, Op: op, Left: left, Right: right}
}

func binaryShortCircuit(op string, popped []StackEntry) ast.Expr {
	left := popped[0].Value.(ast.Expr)
	right := popped[2].Value.(ast.Expr)
	return &ast.ShortCircuit{ExprBase: ast.ExprBase{Pos: posFromNode(left)}, Op: op, Left: left, Right: right}
}

func unaryOp(op string, popped []StackEntry) ast.Expr {
	tok := popped[0].Token
	operand := popped[1].Value.(ast.Expr)
	return &ast.Unary{ExprBase: ast.ExprBase{Pos: posFromToken(tok)}, Op: op, Operand: operand}
}

func literal(tok *lex.Token, kind string) ast.Expr {
	return &ast.Literal{ExprBase: ast.ExprBase{Pos: posFromToken(tok)}, Value: tok.Lexeme, Kind: kind}
}

func posFromToken(tok *lex.Token) ast.Pos {
	return ast.Pos{Line: tok.Line, Col: tok.Col}
}

func posFromNode(n ast.Node) ast.Pos {
	line, col := n.Pos()
	return ast.Pos{Line: line, Col: col}
}
