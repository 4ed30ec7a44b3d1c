package parser_test

import (
	"testing"

	"github.com/dekarrin/blockc/internal/ast"
	"github.com/dekarrin/blockc/internal/automaton"
	"github.com/dekarrin/blockc/internal/diag"
	"github.com/dekarrin/blockc/internal/grammar"
	"github.com/dekarrin/blockc/internal/lex"
	"github.com/dekarrin/blockc/internal/parser"
	"github.com/dekarrin/blockc/internal/parsetable"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildParser(t *testing.T) (*parser.Parser, *diag.Bag) {
	t.Helper()
	g := grammar.Lang()
	coll := automaton.Build(g)
	bag := diag.New()
	table, _, err := parsetable.Build(g, coll, bag)
	require.NoError(t, err)
	return parser.New(table, g, bag), bag
}

func Test_Parse_accepts_simple_assignment_block(t *testing.T) {
	p, bag := buildParser(t)
	toks := lex.Scan(`{ int x; x = 1 + 2; }`)

	prog, err := p.Parse(toks)
	require.NoError(t, err)
	require.NotNil(t, prog)
	assert.False(t, bag.HasErrors())

	require.Len(t, prog.Block.Decls, 1)
	assert.Equal(t, "x", prog.Block.Decls[0].Name)
	assert.Equal(t, "int", prog.Block.Decls[0].Type.Render())

	require.Len(t, prog.Block.Stmts, 1)
	assign, ok := prog.Block.Stmts[0].(*ast.Assign)
	require.True(t, ok)
	loc, ok := assign.Loc.(*ast.LocID)
	require.True(t, ok)
	assert.Equal(t, "x", loc.Name)

	bin, ok := assign.Expr.(*ast.Binary)
	require.True(t, ok)
	assert.Equal(t, "+", bin.Op)
}

func Test_Parse_dangling_else_binds_to_nearest_if(t *testing.T) {
	p, _ := buildParser(t)
	toks := lex.Scan(`{ int x; if (true) if (false) x = 1; else x = 2; }`)

	prog, err := p.Parse(toks)
	require.NoError(t, err)

	require.Len(t, prog.Block.Stmts, 1)
	outer, ok := prog.Block.Stmts[0].(*ast.If)
	require.True(t, ok)
	assert.Nil(t, outer.Else, "outer if must not capture the else")

	inner, ok := outer.Then.(*ast.If)
	require.True(t, ok)
	assert.NotNil(t, inner.Else, "inner if must capture the else")
}

func Test_Parse_while_with_break(t *testing.T) {
	p, _ := buildParser(t)
	toks := lex.Scan(`{ int x; while (x < 10) { break; } }`)

	prog, err := p.Parse(toks)
	require.NoError(t, err)

	require.Len(t, prog.Block.Stmts, 1)
	while, ok := prog.Block.Stmts[0].(*ast.While)
	require.True(t, ok)

	body, ok := while.Body.(*ast.Block)
	require.True(t, ok)
	require.Len(t, body.Stmts, 1)
	_, ok = body.Stmts[0].(*ast.Break)
	assert.True(t, ok)
}

func Test_Parse_short_circuit_and(t *testing.T) {
	p, _ := buildParser(t)
	toks := lex.Scan(`{ boolean a; boolean b; a = a && b; }`)

	prog, err := p.Parse(toks)
	require.NoError(t, err)

	assign := prog.Block.Stmts[0].(*ast.Assign)
	sc, ok := assign.Expr.(*ast.ShortCircuit)
	require.True(t, ok)
	assert.Equal(t, "&&", sc.Op)
}

func Test_Parse_array_declaration_and_store(t *testing.T) {
	p, _ := buildParser(t)
	toks := lex.Scan(`{ int a[10]; a[2] = 5; }`)

	prog, err := p.Parse(toks)
	require.NoError(t, err)

	require.Len(t, prog.Block.Decls, 1)
	arr, ok := prog.Block.Decls[0].Type.(ast.ArrayType)
	require.True(t, ok)
	assert.Equal(t, 10, arr.Size)
	assert.Equal(t, "array(int, 10)", arr.Render())

	assign := prog.Block.Stmts[0].(*ast.Assign)
	access, ok := assign.Loc.(*ast.ArrayAccess)
	require.True(t, ok)
	base, ok := access.Base.(*ast.LocID)
	require.True(t, ok)
	assert.Equal(t, "a", base.Name)
}

func Test_Parse_do_while(t *testing.T) {
	p, _ := buildParser(t)
	toks := lex.Scan(`{ int x; do x = x + 1; while (x < 10); }`)

	prog, err := p.Parse(toks)
	require.NoError(t, err)

	dw, ok := prog.Block.Stmts[0].(*ast.DoWhile)
	require.True(t, ok)
	_, ok = dw.Body.(*ast.Assign)
	assert.True(t, ok)
}

func Test_Parse_empty_block_is_accepted(t *testing.T) {
	p, _ := buildParser(t)
	toks := lex.Scan(`{}`)

	prog, err := p.Parse(toks)
	require.NoError(t, err)
	assert.Empty(t, prog.Block.Decls)
	assert.Empty(t, prog.Block.Stmts)
}

func Test_Parse_recovers_from_missing_semicolon(t *testing.T) {
	// The stray "int" after "x = 1" has no valid action in the state that
	// expects ";", so panic-mode recovery kicks in and resynchronizes at
	// the next ";". Whatever happens downstream of that resync, the
	// original problem must be logged.
	p, bag := buildParser(t)
	toks := lex.Scan(`{ int x; x = 1 int y; }`)

	p.Parse(toks)
	assert.True(t, bag.HasErrors())
}

func Test_Parse_unrecoverable_error_at_eof_reports_error(t *testing.T) {
	p, _ := buildParser(t)
	toks := lex.Scan(`{ int x`)

	_, err := p.Parse(toks)
	assert.Error(t, err)
}
