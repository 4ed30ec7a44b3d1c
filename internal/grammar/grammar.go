// Package grammar holds the object language's grammar: its terminal and
// non-terminal symbols, its production vector, and the FIRST-set fixpoint
// computation the LR(1) generator needs. The production/rule shape is
// grounded on internal/tunascript/grammar.go's Production/Rule/Grammar types
// (the teacher's own internal/ictiobus/grammar/grammar.go, referenced
// throughout internal/ictiobus/parse/*.go as grammar.Grammar, was not present
// in the retrieval pack; this package is rebuilt from that call-site contract
// and from the structurally equivalent tunascript grammar instead).
package grammar

import (
	"fmt"
	"strings"

	"github.com/dekarrin/blockc/internal/ice"
	"github.com/dekarrin/blockc/internal/util"
)

// Epsilon is the reserved RHS-only symbol marking an ε-production. Per
// spec.md §9 it is never a legal lookahead and never appears in a
// terminal's own FIRST set.
const Epsilon = "ε"

// EndOfInput is the augmented end-of-input terminal, used as the lookahead
// on the augmentation item and as the ACTION column consulted on Accept.
const EndOfInput = "$"

// AugmentedStart is the synthetic non-terminal of production 0, S' → program.
const AugmentedStart = "S'"

// Production is one grammar rule: lhs : NonTerminalKind with an ordered RHS
// of symbol names and a stable, dense id. ID 0 is always the augmentation
// rule. An empty RHS, or one whose single element is Epsilon, is an
// ε-production.
type Production struct {
	ID  int
	LHS string
	RHS []string
}

// IsEpsilon reports whether p is an ε-production.
func (p Production) IsEpsilon() bool {
	return len(p.RHS) == 0 || (len(p.RHS) == 1 && p.RHS[0] == Epsilon)
}

// Len returns the number of symbols a reduction by p pops from the stacks:
// 0 for an ε-production, len(RHS) otherwise.
func (p Production) Len() int {
	if p.IsEpsilon() {
		return 0
	}
	return len(p.RHS)
}

func (p Production) String() string {
	rhs := strings.Join(p.RHS, " ")
	if rhs == "" {
		rhs = Epsilon
	}
	return fmt.Sprintf("%s -> %s", p.LHS, rhs)
}

// Grammar is the full symbol table and production vector of the object
// language: which names are terminals, which are non-terminals, and the
// dense, stable production list used as the id-space for LR items.
type Grammar struct {
	Productions []Production
	terminals   util.StringSet
	nonTerms    util.StringSet
	byLHS       map[string][]int // LHS name -> production ids, in declaration order
	start       string           // the grammar's real start symbol, e.g. "program"
	firstSets   map[string]util.StringSet
	firstMemo   map[string]util.StringSet // memoized FIRST(beta lookahead) keyed by the beta symbols joined with \x1f, then \x1e and the lookahead
}

// New creates an empty Grammar with the augmentation rule already in place
// as production 0 once Start is later fixed by Finalize.
func New() *Grammar {
	return &Grammar{
		terminals: util.NewStringSet(),
		nonTerms:  util.NewStringSet(),
		byLHS:     map[string][]int{},
	}
}

// AddTerm registers name as a terminal symbol.
func (g *Grammar) AddTerm(name string) {
	g.terminals.Add(name)
}

// AddRule appends one production with the given LHS and RHS to the
// production vector, assigning it the next dense id. rhs may be omitted
// entirely to declare an ε-production.
func (g *Grammar) AddRule(lhs string, rhs ...string) int {
	g.nonTerms.Add(lhs)
	id := len(g.Productions)
	p := Production{ID: id, LHS: lhs, RHS: rhs}
	g.Productions = append(g.Productions, p)
	g.byLHS[lhs] = append(g.byLHS[lhs], id)
	return id
}

// Finalize prepends the augmentation production S' → start at id 0,
// renumbering every other production's id and every byLHS entry to match,
// and fixes the grammar's start symbol. It must be called exactly once,
// after all other rules and terminals are registered, and before FIRST sets
// are computed.
func (g *Grammar) Finalize(start string) {
	g.start = start
	g.nonTerms.Add(AugmentedStart)

	augmented := make([]Production, 0, len(g.Productions)+1)
	augmented = append(augmented, Production{ID: 0, LHS: AugmentedStart, RHS: []string{start}})
	for _, p := range g.Productions {
		p.ID++
		augmented = append(augmented, p)
	}
	g.Productions = augmented

	byLHS := map[string][]int{AugmentedStart: {0}}
	for lhs, ids := range g.byLHS {
		shifted := make([]int, len(ids))
		for i, id := range ids {
			shifted[i] = id + 1
		}
		byLHS[lhs] = shifted
	}
	g.byLHS = byLHS
}

// StartSymbol returns the grammar's real (non-augmented) start symbol.
func (g *Grammar) StartSymbol() string {
	return g.start
}

// IsTerminal reports whether name was registered with AddTerm.
func (g *Grammar) IsTerminal(name string) bool {
	return g.terminals.Has(name)
}

// IsNonTerminal reports whether name has at least one production (or is the
// augmented start).
func (g *Grammar) IsNonTerminal(name string) bool {
	return g.nonTerms.Has(name)
}

// Terminals returns the registered terminal names in sorted order.
func (g *Grammar) Terminals() []string {
	return g.terminals.Sorted()
}

// NonTerminals returns the registered non-terminal names in sorted order.
func (g *Grammar) NonTerminals() []string {
	return g.nonTerms.Sorted()
}

// ProductionsFor returns the productions whose LHS is lhs, in declaration
// order.
func (g *Grammar) ProductionsFor(lhs string) []Production {
	ids := g.byLHS[lhs]
	out := make([]Production, len(ids))
	for i, id := range ids {
		out[i] = g.Productions[id]
	}
	return out
}

// Production returns the production with the given id. It is fatal to pass
// an out-of-range id: that indicates a bug in the generator, per
// spec.md §7 invariant-violation policy.
func (g *Grammar) Production(id int) Production {
	if id < 0 || id >= len(g.Productions) {
		ice.Fatal("unknown production id %d", id)
	}
	return g.Productions[id]
}

// Validate checks that every RHS symbol used anywhere in the grammar is
// either a registered terminal, the Epsilon marker, or a non-terminal that
// itself has at least one production.
func (g *Grammar) Validate() error {
	for _, p := range g.Productions {
		for _, sym := range p.RHS {
			if sym == Epsilon {
				continue
			}
			if g.terminals.Has(sym) {
				continue
			}
			if _, ok := g.byLHS[sym]; ok {
				continue
			}
			return ice.Newf("production %q references undefined symbol %q", p, sym)
		}
	}
	return nil
}
