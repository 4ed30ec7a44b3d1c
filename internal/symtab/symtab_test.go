package symtab_test

import (
	"testing"

	"github.com/dekarrin/blockc/internal/symtab"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_SizeOf_basic_types(t *testing.T) {
	size, ok := symtab.SizeOf("int")
	assert.True(t, ok)
	assert.Equal(t, 4, size)

	size, ok = symtab.SizeOf("bool")
	assert.True(t, ok)
	assert.Equal(t, 4, size)

	size, ok = symtab.SizeOf("float")
	assert.True(t, ok)
	assert.Equal(t, 8, size)

	size, ok = symtab.SizeOf("")
	assert.True(t, ok)
	assert.Equal(t, 0, size)
}

func Test_SizeOf_unknown_defaults_to_four_with_warning(t *testing.T) {
	size, ok := symtab.SizeOf("mystery")
	assert.False(t, ok)
	assert.Equal(t, 4, size)
}

func Test_SizeOf_array(t *testing.T) {
	size, ok := symtab.SizeOf("array(int, 10)")
	assert.True(t, ok)
	assert.Equal(t, 40, size)
}

func Test_SizeOf_nested_array(t *testing.T) {
	size, ok := symtab.SizeOf("array(array(int, 5), 3)")
	assert.True(t, ok)
	assert.Equal(t, 60, size) // 3 * (5 * 4)
}

func Test_Table_Add_rejects_redeclaration_in_same_scope(t *testing.T) {
	tbl := symtab.New()

	_, ok := tbl.Add("x", "int", symtab.Variable)
	require.True(t, ok)

	_, ok = tbl.Add("x", "int", symtab.Variable)
	assert.False(t, ok, "redeclaring x in the same scope must fail")
}

func Test_Table_Add_allows_shadowing_across_scopes(t *testing.T) {
	tbl := symtab.New()
	_, ok := tbl.Add("x", "int", symtab.Variable)
	require.True(t, ok)

	tbl.EnterScope()
	_, ok = tbl.Add("x", "float", symtab.Variable)
	assert.True(t, ok, "shadowing x in a nested scope must succeed")

	entry, found := tbl.Lookup("x")
	require.True(t, found)
	assert.Equal(t, "float", entry.TypeString)
	assert.Equal(t, 1, entry.ScopeLevel)
}

func Test_Table_Lookup_falls_back_to_outer_scope(t *testing.T) {
	tbl := symtab.New()
	tbl.Add("x", "int", symtab.Variable)

	tbl.EnterScope()
	tbl.Add("y", "int", symtab.Variable)

	entry, found := tbl.Lookup("x")
	require.True(t, found)
	assert.Equal(t, 0, entry.ScopeLevel)
}

func Test_Table_offsets_increase_within_scope(t *testing.T) {
	tbl := symtab.New()
	a, _ := tbl.Add("a", "int", symtab.Variable)
	b, _ := tbl.Add("b", "float", symtab.Variable)

	assert.Equal(t, 0, a.Offset)
	assert.Equal(t, 4, b.Offset) // a took 4 bytes
}

func Test_Table_offsets_reset_per_scope(t *testing.T) {
	tbl := symtab.New()
	tbl.Add("a", "int", symtab.Variable)

	tbl.EnterScope()
	b, _ := tbl.Add("b", "int", symtab.Variable)
	assert.Equal(t, 0, b.Offset, "nested scope's offset counter starts fresh at 0")
}

func Test_Table_LeaveScope_panics_on_global_scope(t *testing.T) {
	tbl := symtab.New()
	assert.Panics(t, func() { tbl.LeaveScope() })
}
