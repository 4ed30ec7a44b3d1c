package ast_test

import (
	"testing"

	"github.com/dekarrin/blockc/internal/ast"
	"github.com/stretchr/testify/assert"
)

func Test_ArrayType_Render_nested(t *testing.T) {
	nested := ast.ArrayType{Element: ast.ArrayType{Element: ast.BasicType{Name: "int"}, Size: 5}, Size: 3}
	assert.Equal(t, "array(array(int, 5), 3)", nested.Render())
}

func Test_Address_constructors(t *testing.T) {
	n := ast.Name("x_scope1")
	assert.Equal(t, ast.AddrName, n.Kind)
	assert.Equal(t, "x_scope1", n.String())

	c := ast.Constant("3", "int")
	assert.Equal(t, ast.AddrConstant, c.Kind)
	assert.Equal(t, "3", c.String())

	l := ast.Label("L0", "loop condition")
	assert.Equal(t, ast.AddrLabel, l.Kind)
	assert.Equal(t, "L0", l.String())
	assert.Equal(t, "loop condition", l.Desc)
}

func Test_Expr_place_and_type_round_trip(t *testing.T) {
	var lit ast.Expr = &ast.Literal{Value: "3", Kind: "int"}
	lit.SetPlace(ast.Constant("3", "int"))
	lit.SetTypeString("int")

	assert.Equal(t, "int", lit.TypeString())
	assert.Equal(t, ast.Constant("3", "int"), lit.Place())
}

func Test_ArrayAccess_and_LocID_are_both_Loc_and_Expr(t *testing.T) {
	var base ast.Loc = &ast.LocID{Name: "a"}
	access := &ast.ArrayAccess{Base: base, Index: &ast.Literal{Value: "2", Kind: "int"}}

	var _ ast.Expr = access
	var _ ast.Loc = access
	assert.Equal(t, "a", base.(*ast.LocID).Name)
}
