package tac_test

import (
	"strings"
	"testing"

	"github.com/dekarrin/blockc/internal/automaton"
	"github.com/dekarrin/blockc/internal/diag"
	"github.com/dekarrin/blockc/internal/grammar"
	"github.com/dekarrin/blockc/internal/lex"
	"github.com/dekarrin/blockc/internal/parser"
	"github.com/dekarrin/blockc/internal/parsetable"
	"github.com/dekarrin/blockc/internal/tac"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lowerSource(t *testing.T, src string) ([]tac.Instruction, *diag.Bag) {
	t.Helper()
	g := grammar.Lang()
	coll := automaton.Build(g)
	bag := diag.New()
	table, _, err := parsetable.Build(g, coll, bag)
	require.NoError(t, err)

	p := parser.New(table, g, bag)
	prog, err := p.Parse(lex.Scan(src))
	require.NoError(t, err)

	gen := tac.New(bag)
	gen.Generate(prog)
	return gen.Instructions, bag
}

func renderLines(instrs []tac.Instruction) []string {
	out := make([]string, len(instrs))
	for i, instr := range instrs {
		out[i] = instr.String()
	}
	return out
}

// Worked example (1) of spec §8: a single addition and assignment.
func Test_Generate_assignment_example(t *testing.T) {
	instrs, bag := lowerSource(t, `{ int x ; x = 3 + 4 ; }`)
	assert.False(t, bag.HasErrors())

	want := []string{
		"BEGIN_BLOCK (Line: 1)",
		"DECLARE x : int (Line: 1)",
		"(+, 3, 4, t0)",
		"(=, t0, _, x_scope1)",
		"END_BLOCK (Line: 1)",
	}
	assert.Equal(t, want, renderLines(instrs))
}

// Worked example (5): array element store, size_of(int)=4.
func Test_Generate_array_element_store_example(t *testing.T) {
	instrs, bag := lowerSource(t, `{ int a [ 10 ] ; a [ 2 ] = 5 ; }`)
	assert.False(t, bag.HasErrors())

	want := []string{
		"BEGIN_BLOCK (Line: 1)",
		"DECLARE a : array(int, 10) (Line: 1)",
		"(*, 2, 4, t0)",
		"(+, a_scope1, t0, t1)",
		"(store, t1, 5, _)",
		"END_BLOCK (Line: 1)",
	}
	assert.Equal(t, want, renderLines(instrs))
}

// Worked example (4): short-circuit && lowers via jumps around a result temp.
func Test_Generate_short_circuit_and_example(t *testing.T) {
	instrs, bag := lowerSource(t, `{ boolean p ; boolean q ; p = p && q ; }`)
	assert.False(t, bag.HasErrors())

	want := []string{
		"BEGIN_BLOCK (Line: 1)",
		"DECLARE p : boolean (Line: 1)",
		"DECLARE q : boolean (Line: 1)",
		"(iffalse, p_scope1, L0, _)",
		"(iffalse, q_scope1, L0, _)",
		"(=, true, _, t0)",
		"(goto, L1, _, _)",
		"L0:",
		"(=, false, _, t0)",
		"L1:",
		"(=, t0, _, p_scope1)",
		"END_BLOCK (Line: 1)",
	}
	assert.Equal(t, want, renderLines(instrs))
}

// Boundary: an empty block lowers to exactly BeginBlock, EndBlock.
func Test_Generate_empty_block_has_no_intervening_instructions(t *testing.T) {
	instrs, bag := lowerSource(t, `{ }`)
	assert.False(t, bag.HasErrors())
	require.Len(t, instrs, 2)
	assert.Equal(t, "BEGIN_BLOCK (Line: 1)", instrs[0].String())
	assert.Equal(t, "END_BLOCK (Line: 1)", instrs[1].String())
}

// Boundary: if without else has exactly one label and one IfFalseGoto.
func Test_Generate_if_without_else_has_one_label_and_one_iffalse(t *testing.T) {
	instrs, _ := lowerSource(t, `{ boolean x ; if (x) x = true ; }`)

	ifFalse, labels := 0, 0
	for _, i := range instrs {
		if i.Kind == tac.KindIfFalseGoto {
			ifFalse++
		}
		if i.Kind == tac.KindLabel {
			labels++
		}
	}
	assert.Equal(t, 1, ifFalse)
	assert.Equal(t, 1, labels)
}

// Worked example (3): a break inside a nested if inside a while targets the
// loop's own exit label, which is also where the closing goto lands.
func Test_Generate_break_inside_while_targets_loop_exit(t *testing.T) {
	instrs, bag := lowerSource(t, `{ int i ; while ( i ) { if ( i ) break ; i = i ; } }`)
	assert.False(t, bag.HasErrors())

	var breakTarget, exitLabel string
	for _, i := range instrs {
		if i.Kind == tac.KindGoto && breakTarget == "" {
			// the first bare goto in this program is the lowered break
			breakTarget = i.A.Text
		}
	}
	require.NotEmpty(t, breakTarget)

	// the final two instructions of the while's lowering are `goto Lcond`
	// then `Lexit:`; the label immediately after the loop's closing goto is
	// the loop's exit label, which must equal the break's target.
	for idx, i := range instrs {
		if i.Kind == tac.KindGoto && idx+1 < len(instrs) && instrs[idx+1].Kind == tac.KindLabel {
			exitLabel = instrs[idx+1].A.Text
		}
	}
	require.NotEmpty(t, exitLabel)
	assert.Equal(t, exitLabel, breakTarget)
}

// Invariant: every jump target label appears exactly once as a Label
// instruction, and temp/label names are pairwise distinct.
func Test_Generate_labels_are_unique_targets(t *testing.T) {
	instrs, bag := lowerSource(t, `{ int i ; boolean p ; boolean q ; while ( i ) { if ( i ) break ; i = i ; } p = p || q ; }`)
	assert.False(t, bag.HasErrors())

	defined := map[string]int{}
	for _, i := range instrs {
		if i.Kind == tac.KindLabel {
			defined[i.A.Text]++
		}
	}
	for name, count := range defined {
		assert.Equal(t, 1, count, "label %s defined more than once", name)
	}

	for _, i := range instrs {
		switch i.Kind {
		case tac.KindGoto, tac.KindIfTrueGoto, tac.KindIfFalseGoto:
			target := i.A.Text
			if i.Kind != tac.KindGoto {
				target = i.B.Text
			}
			assert.Contains(t, defined, target)
		}
	}
}

// Do-while example (6): Lstart, body, cond, IfTrueGoto(Lstart), Lexit.
func Test_Generate_do_while_shape(t *testing.T) {
	instrs, bag := lowerSource(t, `{ int i ; do i = i ; while ( i ) ; }`)
	assert.False(t, bag.HasErrors())

	lines := renderLines(instrs)
	joined := strings.Join(lines, "\n")
	assert.Contains(t, joined, "L0:")
	assert.Contains(t, joined, "(iftrue, i_scope1, L0, _)")
	assert.Contains(t, joined, "L1:")
}

func Test_Generate_undefined_variable_reports_error_and_continues(t *testing.T) {
	instrs, bag := lowerSource(t, `{ x = 1 ; }`)
	assert.True(t, bag.HasErrors())

	found := false
	for _, i := range instrs {
		if i.Kind == tac.KindAssign && i.C.Text == "UNDEFINED_VAR_x" {
			found = true
		}
	}
	assert.True(t, found)
}

func Test_Generate_break_outside_loop_reports_error(t *testing.T) {
	_, bag := lowerSource(t, `{ break ; }`)
	assert.True(t, bag.HasErrors())
}
