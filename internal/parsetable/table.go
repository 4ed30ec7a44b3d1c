package parsetable

import (
	"sort"

	"github.com/dekarrin/blockc/internal/automaton"
	"github.com/dekarrin/blockc/internal/diag"
	"github.com/dekarrin/blockc/internal/grammar"
	"github.com/dekarrin/blockc/internal/ice"
)

// Table is the synthesized ACTION/GOTO pair for a canonical LR(1)
// collection: a dense-sparse hybrid per spec.md §2 — a Go map keyed by
// state id, each holding a map keyed by symbol name, which in practice is
// dense over the handful of terminals/non-terminals actually reachable from
// that state and sparse over the full symbol alphabet.
type Table struct {
	NumStates int
	Action    map[int]map[string]Action
	Goto      map[int]map[string]int
	Grammar   *grammar.Grammar
}

// ActionAt returns the ACTION table entry for (state, terminal), or the
// zero Action (ActionError) if none is defined.
func (t *Table) ActionAt(state int, terminal string) Action {
	row, ok := t.Action[state]
	if !ok {
		return Action{}
	}
	return row[terminal]
}

// GotoAt returns GOTO[state, nonTerminal] and whether it was defined. A
// caller that consults it and finds it undefined is looking at a bug in the
// generator or driver (spec.md §4.4: "a failed GOTO lookup is fatal").
func (t *Table) GotoAt(state int, nonTerminal string) (int, bool) {
	row, ok := t.Goto[state]
	if !ok {
		return 0, false
	}
	target, ok := row[nonTerminal]
	return target, ok
}

// Build synthesizes the ACTION/GOTO tables from g's canonical LR(1)
// collection, per spec.md §4.3's table-synthesis rules, resolving any
// shift/reduce conflict in favor of the shift and any reduce/reduce
// conflict in favor of the lower production id, logging each resolution to
// bag. Any other collision (e.g. two distinct shifts on the same terminal,
// or a GOTO target mismatch) is a generator bug and is returned as an
// error rather than silently resolved.
func Build(g *grammar.Grammar, coll *automaton.Collection, bag *diag.Bag) (*Table, []Conflict, error) {
	t := &Table{
		NumStates: len(coll.States),
		Action:    map[int]map[string]Action{},
		Goto:      map[int]map[string]int{},
		Grammar:   g,
	}

	var conflicts []Conflict

	for _, state := range coll.States {
		candidates := map[string][]Action{}

		for sym, target := range state.Trans {
			if g.IsTerminal(sym) {
				candidates[sym] = append(candidates[sym], Action{Type: ActionShift, State: target})
			} else {
				if t.Goto[state.ID] == nil {
					t.Goto[state.ID] = map[string]int{}
				}
				if existing, ok := t.Goto[state.ID][sym]; ok && existing != target {
					return nil, nil, ice.Newf("GOTO[%d, %s] conflict: %d vs %d", state.ID, sym, existing, target)
				}
				t.Goto[state.ID][sym] = target
			}
		}

		for _, it := range state.SortedItems(g) {
			if !it.IsComplete(g) {
				continue
			}
			if it.Prod == 0 {
				if it.Lookahead == grammar.EndOfInput {
					candidates[grammar.EndOfInput] = append(candidates[grammar.EndOfInput], Action{Type: ActionAccept})
				}
				continue
			}
			candidates[it.Lookahead] = append(candidates[it.Lookahead], Action{Type: ActionReduce, Prod: it.Prod})
		}

		row := map[string]Action{}
		terms := make([]string, 0, len(candidates))
		for term := range candidates {
			terms = append(terms, term)
		}
		sort.Strings(terms)

		for _, term := range terms {
			acts := candidates[term]
			kept, conflict, err := resolve(state.ID, term, acts)
			if err != nil {
				return nil, nil, err
			}
			row[term] = kept
			if conflict != nil {
				conflicts = append(conflicts, *conflict)
				bag.Addf(diag.Warning, diag.PhaseGenerator, 0, 0, "%s", conflict.String())
			}
		}
		t.Action[state.ID] = row
	}

	return t, conflicts, nil
}

// resolve applies spec.md §4.3's conflict policy to the candidate actions
// collected for one (state, terminal) cell.
func resolve(state int, terminal string, acts []Action) (Action, *Conflict, error) {
	if len(acts) == 1 {
		return acts[0], nil, nil
	}

	var shifts, reduces, accepts []Action
	for _, a := range acts {
		switch a.Type {
		case ActionShift:
			shifts = append(shifts, a)
		case ActionReduce:
			reduces = append(reduces, a)
		case ActionAccept:
			accepts = append(accepts, a)
		}
	}

	if len(shifts) > 1 {
		return Action{}, nil, ice.Newf("generator bug: two distinct shifts in state %d on %q", state, terminal)
	}

	if len(accepts) > 0 {
		if len(shifts) > 0 || len(reduces) > 0 {
			return Action{}, nil, ice.Newf("generator bug: accept collides with another action in state %d on %q", state, terminal)
		}
		return accepts[0], nil, nil
	}

	if len(shifts) == 1 && len(reduces) > 0 {
		dropped := reduces
		return shifts[0], &Conflict{
			Kind: ConflictShiftReduce, State: state, Terminal: terminal,
			Kept: shifts[0], Dropped: dropped,
		}, nil
	}

	if len(reduces) > 1 {
		sort.Slice(reduces, func(i, j int) bool { return reduces[i].Prod < reduces[j].Prod })
		kept := reduces[0]
		return kept, &Conflict{
			Kind: ConflictReduceReduce, State: state, Terminal: terminal,
			Kept: kept, Dropped: reduces[1:],
		}, nil
	}

	if len(reduces) == 1 {
		return reduces[0], nil, nil
	}

	return Action{}, nil, ice.Newf("generator bug: unclassifiable action set in state %d on %q", state, terminal)
}
