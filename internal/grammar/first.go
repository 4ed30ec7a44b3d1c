package grammar

import (
	"strings"

	"github.com/dekarrin/blockc/internal/util"
)

// ComputeFirstSets runs the Kleene fixpoint iteration of spec.md §4.2:
// FIRST(X) for a terminal is {X}; for a non-terminal it is the union over
// its productions of FIRST(Y1 Y2 ... Yk) with the standard ε-propagation
// rule. It must be called once, after Finalize, before any closure/goto
// construction consults FIRST. onGrowth, if non-nil, is invoked once per
// iteration round that changed any set, with the round number, so callers
// can log fixpoint progress. Lang passes nil, so building the object
// language's grammar records no FIRST-set growth.
func (g *Grammar) ComputeFirstSets(onGrowth func(round int)) {
	first := map[string]util.StringSet{}
	for _, t := range g.terminals.Sorted() {
		first[t] = util.NewStringSet(t)
	}
	for _, nt := range g.nonTerms.Sorted() {
		first[nt] = util.NewStringSet()
	}

	round := 0
	for {
		round++
		changed := false
		for _, p := range g.Productions {
			lhsSet := first[p.LHS]
			if p.IsEpsilon() {
				if lhsSet.Add(Epsilon) {
					changed = true
				}
				continue
			}

			allDeriveEpsilon := true
			for _, sym := range p.RHS {
				symFirst := first[sym]
				added := false
				for v := range symFirst {
					if v == Epsilon {
						continue
					}
					if lhsSet.Add(v) {
						added = true
					}
				}
				if added {
					changed = true
				}
				if !symFirst.Has(Epsilon) {
					allDeriveEpsilon = false
					break
				}
			}
			if allDeriveEpsilon {
				if lhsSet.Add(Epsilon) {
					changed = true
				}
			}
		}
		if onGrowth != nil && changed {
			onGrowth(round)
		}
		if !changed {
			break
		}
	}

	g.firstSets = first
	g.firstMemo = map[string]util.StringSet{}
}

// First returns FIRST(sym): {sym} if sym is a terminal or Epsilon, the
// fixpoint set if sym is a non-terminal. ComputeFirstSets must have been
// called first.
func (g *Grammar) First(sym string) util.StringSet {
	if sym == Epsilon || sym == EndOfInput {
		return util.NewStringSet(sym)
	}
	if s, ok := g.firstSets[sym]; ok {
		return s
	}
	return util.NewStringSet()
}

// FirstOfSequence computes FIRST(β a) for a symbol-string tail β followed
// by a single lookahead terminal a, per spec.md §4.2: if β derives ε
// entirely, a is included; otherwise only FIRST(β)\{ε} is returned. Results
// are memoized in a (rhs-tail, lookahead) -> set cache keyed by the joined
// symbol names, since closure construction recomputes this for the same
// tails repeatedly.
func (g *Grammar) FirstOfSequence(beta []string, lookahead string) util.StringSet {
	key := strings.Join(beta, "\x1f") + "\x1e" + lookahead
	if cached, ok := g.firstMemo[key]; ok {
		return cached
	}

	out := util.NewStringSet()
	allEps := true
	for _, sym := range beta {
		symFirst := g.First(sym)
		for v := range symFirst {
			if v != Epsilon {
				out.Add(v)
			}
		}
		if !symFirst.Has(Epsilon) {
			allEps = false
			break
		}
	}
	if allEps {
		out.Add(lookahead)
	}

	g.firstMemo[key] = out
	return out
}
