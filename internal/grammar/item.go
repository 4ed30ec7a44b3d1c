package grammar

import "fmt"

// Item is an LR(1) item: a triple (production id, dot position, lookahead),
// per spec.md §3. It is deliberately a plain value type (no pointer, no
// back-reference to the owning Grammar) so item sets can be compared and
// hashed by value, which canonical-collection deduplication (spec.md §4.3)
// depends on.
type Item struct {
	Prod      int
	Dot       int
	Lookahead string
}

// NextSymbol returns the symbol immediately after the dot, or ("", false)
// when the dot is at the end of the production (or the production is an
// ε-production, whose dot is always considered final).
func (it Item) NextSymbol(g *Grammar) (string, bool) {
	p := g.Production(it.Prod)
	if p.IsEpsilon() {
		return "", false
	}
	if it.Dot >= len(p.RHS) {
		return "", false
	}
	return p.RHS[it.Dot], true
}

// IsComplete reports whether it is a complete item: the dot is past the
// last RHS symbol, or the production is an ε-production (dot at 0, RHS is a
// single Epsilon), per spec.md §3.
func (it Item) IsComplete(g *Grammar) bool {
	p := g.Production(it.Prod)
	if p.IsEpsilon() {
		return true
	}
	return it.Dot >= len(p.RHS)
}

// Advanced returns a copy of it with the dot moved one position to the
// right. Callers must only call this when NextSymbol reports a symbol to
// advance over.
func (it Item) Advanced() Item {
	return Item{Prod: it.Prod, Dot: it.Dot + 1, Lookahead: it.Lookahead}
}

// Beta returns the RHS symbols strictly after the dot (the β in [A → α·Bβ,
// a]), used to compute FIRST(βa) during closure construction.
func (it Item) Beta(g *Grammar) []string {
	p := g.Production(it.Prod)
	if p.IsEpsilon() || it.Dot+1 >= len(p.RHS) {
		return nil
	}
	return p.RHS[it.Dot+1:]
}

func (it Item) String(g *Grammar) string {
	p := g.Production(it.Prod)
	rhs := p.RHS
	if p.IsEpsilon() {
		rhs = nil
	}

	left := rhs[:min(it.Dot, len(rhs))]
	right := rhs[min(it.Dot, len(rhs)):]

	return fmt.Sprintf("[%s -> %s . %s, %s]", p.LHS, joinOrEps(left), joinOrEps(right), it.Lookahead)
}

func joinOrEps(syms []string) string {
	if len(syms) == 0 {
		return ""
	}
	out := ""
	for i, s := range syms {
		if i > 0 {
			out += " "
		}
		out += s
	}
	return out
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
