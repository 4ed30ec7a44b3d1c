package grammar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Grammar_Finalize_augments_at_zero(t *testing.T) {
	g := New()
	g.AddTerm("a")
	g.AddRule("S", "a")
	g.Finalize("S")

	require.Len(t, g.Productions, 2)
	assert.Equal(t, Production{ID: 0, LHS: AugmentedStart, RHS: []string{"S"}}, g.Productions[0])
	assert.Equal(t, 1, g.Productions[1].ID)
	assert.Equal(t, "S", g.Productions[1].LHS)
}

func Test_Grammar_Validate_catches_undefined_symbol(t *testing.T) {
	g := New()
	g.AddTerm("a")
	g.AddRule("S", "a", "B") // B is never defined
	g.Finalize("S")

	assert.Error(t, g.Validate())
}

func Test_Grammar_Validate_accepts_lang(t *testing.T) {
	g := Lang()
	assert.NoError(t, g.Validate())
}

func Test_Production_IsEpsilon(t *testing.T) {
	assert.True(t, Production{RHS: nil}.IsEpsilon())
	assert.True(t, Production{RHS: []string{Epsilon}}.IsEpsilon())
	assert.False(t, Production{RHS: []string{"a"}}.IsEpsilon())
}

func Test_Production_Len(t *testing.T) {
	assert.Equal(t, 0, Production{RHS: nil}.Len())
	assert.Equal(t, 2, Production{RHS: []string{"a", "b"}}.Len())
}

func Test_ComputeFirstSets_terminal_is_itself(t *testing.T) {
	g := Lang()
	first := g.First("T_ID")
	assert.True(t, first.Has("T_ID"))
	assert.Equal(t, 1, first.Len())
}

func Test_ComputeFirstSets_factor_propagates_to_unary_term_expr(t *testing.T) {
	g := Lang()

	factorFirst := firstSetOf(g, "factor")
	for _, sym := range []string{"unary", "term", "expr", "rel", "equality", "join", "bool"} {
		first := g.First(sym)
		for v := range factorFirst {
			assert.Truef(t, first.Has(v), "FIRST(%s) should contain %s (propagated from factor)", sym, v)
		}
	}
}

func Test_ComputeFirstSets_decls_includes_epsilon(t *testing.T) {
	g := Lang()
	assert.True(t, g.First("decls").Has(Epsilon))
	assert.True(t, g.First("stmts").Has(Epsilon))
}

func Test_FirstOfSequence_includes_lookahead_when_beta_derives_epsilon(t *testing.T) {
	g := Lang()

	// T_ID is not in FIRST(decls), so it can only appear via the lookahead.
	seq := g.FirstOfSequence([]string{"decls"}, "T_ID")
	assert.True(t, seq.Has("T_ID"), "decls can derive epsilon, so the lookahead must be included")
}

func Test_FirstOfSequence_excludes_lookahead_when_beta_cannot_derive_epsilon(t *testing.T) {
	g := Lang()

	seq := g.FirstOfSequence([]string{"T_ID"}, "T_BASIC")
	assert.True(t, seq.Has("T_ID"))
	assert.False(t, seq.Has("T_BASIC"))
}

// firstSetOf is a tiny local helper so the propagation test above reads as
// "the FIRST set of factor" without re-deriving it by hand.
func firstSetOf(g *Grammar, sym string) map[string]bool {
	out := map[string]bool{}
	for v := range g.First(sym) {
		out[v] = true
	}
	return out
}
