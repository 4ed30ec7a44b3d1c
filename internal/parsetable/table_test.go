package parsetable_test

import (
	"testing"

	"github.com/dekarrin/blockc/internal/automaton"
	"github.com/dekarrin/blockc/internal/diag"
	"github.com/dekarrin/blockc/internal/grammar"
	"github.com/dekarrin/blockc/internal/parsetable"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tinyGrammar() *grammar.Grammar {
	g := grammar.New()
	g.AddTerm("c")
	g.AddTerm("d")
	g.AddRule("S", "C", "C")
	g.AddRule("C", "c", "C")
	g.AddRule("C", "d")
	g.Finalize("S")
	g.ComputeFirstSets(nil)
	return g
}

func Test_Build_tiny_grammar_has_no_conflicts(t *testing.T) {
	g := tinyGrammar()
	coll := automaton.Build(g)
	bag := diag.New()

	table, conflicts, err := parsetable.Build(g, coll, bag)

	require.NoError(t, err)
	assert.Empty(t, conflicts)
	assert.Equal(t, 12, table.NumStates)
}

func Test_Build_lang_accepts_on_end_of_input(t *testing.T) {
	g := grammar.Lang()
	coll := automaton.Build(g)
	bag := diag.New()

	table, _, err := parsetable.Build(g, coll, bag)
	require.NoError(t, err)

	var sawAccept bool
	for s := 0; s < table.NumStates; s++ {
		if table.ActionAt(s, grammar.EndOfInput).Type == parsetable.ActionAccept {
			sawAccept = true
			break
		}
	}
	assert.True(t, sawAccept, "some state must accept on $")
}

func Test_Build_shift_reduce_conflicts_resolve_to_shift(t *testing.T) {
	// dangling-else is a classic shift/reduce conflict generator, but this
	// grammar resolves it structurally via matched_stmt/unmatched_stmt, so
	// instead test the resolution policy directly against a minimal
	// ambiguous grammar: the classic "if-then-else" skeleton without the
	// matched/unmatched split.
	g := grammar.New()
	g.AddTerm("i")
	g.AddTerm("t")
	g.AddTerm("e")
	g.AddRule("S", "i", "t", "S", "e", "S")
	g.AddRule("S", "i", "t", "S")
	g.AddRule("S", "a")
	g.Finalize("S")
	g.ComputeFirstSets(nil)

	coll := automaton.Build(g)
	bag := diag.New()

	table, conflicts, err := parsetable.Build(g, coll, bag)
	require.NoError(t, err)
	require.NotEmpty(t, conflicts, "the classic dangling-else skeleton must produce a shift/reduce conflict")

	for _, c := range conflicts {
		assert.Equal(t, parsetable.ConflictShiftReduce, c.Kind)
		assert.Equal(t, parsetable.ActionShift, c.Kept.Type)
	}
	assert.NotEmpty(t, table.String())
}

func Test_Table_EncodeDecode_round_trips(t *testing.T) {
	g := tinyGrammar()
	coll := automaton.Build(g)
	bag := diag.New()
	table, _, err := parsetable.Build(g, coll, bag)
	require.NoError(t, err)

	data, err := parsetable.Encode(table)
	require.NoError(t, err)

	decoded, err := parsetable.Decode(data, g)
	require.NoError(t, err)

	assert.Equal(t, table.NumStates, decoded.NumStates)
	assert.Equal(t, table.ActionAt(0, "c"), decoded.ActionAt(0, "c"))
}
