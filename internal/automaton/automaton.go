// Package automaton builds the canonical collection of LR(1) item sets by
// direct closure/goto construction (purple-dragon Algorithm 4.56), per
// spec.md §4.3. The container shapes (a state holding an item set plus an
// outgoing transition map, assembled into a numbered collection) are
// grounded on the generic DFA[E]/state/transition shape of the teacher's
// internal/ictiobus/automaton/automaton.go, but the construction algorithm
// itself follows the spec directly rather than the teacher's
// NFA-subset-construction route (automaton/nfa.go's NewLR1ViablePrefixDFA),
// since the spec fixes closure/goto as the method and subset construction
// would not surface per-conflict diagnostics at the right granularity.
package automaton

import (
	"sort"

	"github.com/dekarrin/blockc/internal/grammar"
)

// State is one item set in the canonical collection: a numeric id assigned
// on insertion, the items themselves, and the outgoing transitions
// discovered while building the collection.
type State struct {
	ID    int
	Items map[grammar.Item]bool
	Trans map[string]int // symbol -> target state id
}

// HasItem reports whether it is a member of s.
func (s *State) HasItem(it grammar.Item) bool {
	return s.Items[it]
}

// SortedItems returns the state's items in a deterministic order, used for
// diagnostics and tests.
func (s *State) SortedItems(g *grammar.Grammar) []grammar.Item {
	out := make([]grammar.Item, 0, len(s.Items))
	for it := range s.Items {
		out = append(out, it)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Prod != b.Prod {
			return a.Prod < b.Prod
		}
		if a.Dot != b.Dot {
			return a.Dot < b.Dot
		}
		return a.Lookahead < b.Lookahead
	})
	return out
}

// Collection is the full canonical LR(1) item-set collection: every
// distinct state reachable by closure/goto from the initial state, with the
// invariant (spec.md §8, property 4) that no two states have equal item
// contents.
type Collection struct {
	States []*State
}

// itemSetKey produces a value usable as a Go map key for a raw (unnumbered)
// item set, so canonical-collection deduplication (spec.md §4.3: "if an
// existing state has the same items reuse its id") is a single map lookup.
type itemSetKey string

func keyOf(items map[grammar.Item]bool) itemSetKey {
	sorted := make([]grammar.Item, 0, len(items))
	for it := range items {
		sorted = append(sorted, it)
	}
	sort.Slice(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.Prod != b.Prod {
			return a.Prod < b.Prod
		}
		if a.Dot != b.Dot {
			return a.Dot < b.Dot
		}
		return a.Lookahead < b.Lookahead
	})

	var sb []byte
	for _, it := range sorted {
		sb = append(sb, []byte(it.Lookahead)...)
		sb = append(sb, 0)
		sb = appendInt(sb, it.Prod)
		sb = append(sb, 0)
		sb = appendInt(sb, it.Dot)
		sb = append(sb, '\n')
	}
	return itemSetKey(sb)
}

func appendInt(b []byte, n int) []byte {
	if n == 0 {
		return append(b, '0')
	}
	neg := n < 0
	if neg {
		n = -n
		b = append(b, '-')
	}
	start := len(b)
	for n > 0 {
		b = append(b, byte('0'+n%10))
		n /= 10
	}
	// reverse the digits just appended
	for i, j := start, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
	return b
}

// Closure computes the closure of a seed set of items (spec.md §4.3): for
// every item [A → α·Bβ, a] with B a non-terminal, for every B-production
// B → γ and every b in FIRST(βa), add [B → ·γ, b] if not already present.
// Iterates a worklist until no new items are produced.
func Closure(g *grammar.Grammar, seed []grammar.Item) map[grammar.Item]bool {
	items := map[grammar.Item]bool{}
	var worklist []grammar.Item
	for _, it := range seed {
		if !items[it] {
			items[it] = true
			worklist = append(worklist, it)
		}
	}

	for len(worklist) > 0 {
		it := worklist[0]
		worklist = worklist[1:]

		B, ok := it.NextSymbol(g)
		if !ok || !g.IsNonTerminal(B) {
			continue
		}

		beta := it.Beta(g)
		lookaheads := g.FirstOfSequence(beta, it.Lookahead)

		for _, prod := range g.ProductionsFor(B) {
			for b := range lookaheads {
				newItem := grammar.Item{Prod: prod.ID, Dot: 0, Lookahead: b}
				if !items[newItem] {
					items[newItem] = true
					worklist = append(worklist, newItem)
				}
			}
		}
	}

	return items
}

// Goto computes goto(I, X) (spec.md §4.3): the kernel
// {[A → αX·β, a] | [A → α·Xβ, a] ∈ I}, closed.
func Goto(g *grammar.Grammar, items map[grammar.Item]bool, X string) map[grammar.Item]bool {
	var kernel []grammar.Item
	for it := range items {
		sym, ok := it.NextSymbol(g)
		if ok && sym == X {
			kernel = append(kernel, it.Advanced())
		}
	}
	if len(kernel) == 0 {
		return nil
	}
	return Closure(g, kernel)
}

// Build constructs the canonical collection: seed with the closure of
// {[S' → ·program, $]} as state 0, then repeatedly compute goto(I, X) for
// every state I and every grammar symbol X (terminals and non-terminals;
// Epsilon excluded), deduplicating by item-set equality. Iteration
// terminates because there are finitely many distinct item sets.
func Build(g *grammar.Grammar) *Collection {
	startItem := grammar.Item{Prod: 0, Dot: 0, Lookahead: grammar.EndOfInput}
	initial := Closure(g, []grammar.Item{startItem})

	coll := &Collection{}
	seen := map[itemSetKey]int{}

	addState := func(items map[grammar.Item]bool) int {
		key := keyOf(items)
		if id, ok := seen[key]; ok {
			return id
		}
		id := len(coll.States)
		coll.States = append(coll.States, &State{ID: id, Items: items, Trans: map[string]int{}})
		seen[key] = id
		return id
	}

	addState(initial)

	symbols := allSymbols(g)

	for i := 0; i < len(coll.States); i++ {
		state := coll.States[i]
		for _, X := range symbols {
			J := Goto(g, state.Items, X)
			if len(J) == 0 {
				continue
			}
			targetID := addState(J)
			state.Trans[X] = targetID
		}
	}

	return coll
}

func allSymbols(g *grammar.Grammar) []string {
	out := make([]string, 0)
	out = append(out, g.Terminals()...)
	for _, nt := range g.NonTerminals() {
		if nt == grammar.AugmentedStart {
			continue
		}
		out = append(out, nt)
	}
	return out
}
