package automaton_test

import (
	"testing"

	"github.com/dekarrin/blockc/internal/automaton"
	"github.com/dekarrin/blockc/internal/grammar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// tinyGrammar is the classic purple-dragon-book example (Aho et al.,
// Algorithm 4.56's worked example): S -> C C, C -> c C | d. It is small
// enough that its canonical LR(1) collection (12 states) can be checked by
// hand, unlike the full object-language grammar.
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

func Test_Closure_seeds_augmentation_item(t *testing.T) {
	g := tinyGrammar()
	start := grammar.Item{Prod: 0, Dot: 0, Lookahead: grammar.EndOfInput}

	closed := automaton.Closure(g, []grammar.Item{start})

	assert.True(t, closed[start])
	// closure must add S -> .CC, $ bindings plus C's own productions under
	// lookaheads derived from FIRST(C $) = {c, d}
	assert.True(t, closed[grammar.Item{Prod: 1, Dot: 0, Lookahead: grammar.EndOfInput}])
	assert.True(t, closed[grammar.Item{Prod: 2, Dot: 0, Lookahead: "c"}])
	assert.True(t, closed[grammar.Item{Prod: 2, Dot: 0, Lookahead: "d"}])
	assert.True(t, closed[grammar.Item{Prod: 3, Dot: 0, Lookahead: "c"}])
	assert.True(t, closed[grammar.Item{Prod: 3, Dot: 0, Lookahead: "d"}])
}

func Test_Build_produces_twelve_states_for_tiny_grammar(t *testing.T) {
	g := tinyGrammar()
	coll := automaton.Build(g)

	// The CC grammar's canonical LR(1) collection has exactly 12 states;
	// this is the textbook's own worked result for Algorithm 4.56.
	assert.Len(t, coll.States, 12)
}

func Test_Build_has_no_duplicate_item_sets(t *testing.T) {
	g := grammar.Lang()
	coll := automaton.Build(g)

	seen := map[string]int{}
	for _, s := range coll.States {
		key := ""
		for _, it := range s.SortedItems(g) {
			key += it.String(g) + "\n"
		}
		if prev, ok := seen[key]; ok {
			t.Fatalf("states %d and %d have identical item contents", prev, s.ID)
		}
		seen[key] = s.ID
	}
}

func Test_Build_transitions_target_valid_states(t *testing.T) {
	g := grammar.Lang()
	coll := automaton.Build(g)
	require.NotEmpty(t, coll.States)

	for _, s := range coll.States {
		for sym, target := range s.Trans {
			assert.GreaterOrEqualf(t, target, 0, "transition on %q from state %d", sym, s.ID)
			assert.Lessf(t, target, len(coll.States), "transition on %q from state %d", sym, s.ID)
		}
	}
}
