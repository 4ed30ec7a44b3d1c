package parsetable

import (
	"strconv"

	"github.com/dekarrin/rosed"
)

// String renders the ACTION/GOTO table as a column-aligned grid, one row
// per state and one column per terminal/non-terminal, grounded on
// internal/ictiobus/parse/clr1.go and slr.go's own String() methods (both
// build a [][]string and hand it to rosed.Edit("").InsertTableOpts).
func (t *Table) String() string {
	terms := t.Grammar.Terminals()
	nonTerms := t.Grammar.NonTerminals()

	header := []string{"STATE", "|"}
	header = append(header, terms...)
	header = append(header, "|")
	header = append(header, nonTerms...)

	data := [][]string{header}

	for state := 0; state < t.NumStates; state++ {
		row := []string{strconv.Itoa(state), "|"}
		for _, term := range terms {
			row = append(row, t.ActionAt(state, term).String())
		}
		row = append(row, "|")
		for _, nt := range nonTerms {
			if target, ok := t.GotoAt(state, nt); ok {
				row = append(row, strconv.Itoa(target))
			} else {
				row = append(row, "")
			}
		}
		data = append(data, row)
	}

	return rosed.
		Edit("").
		InsertTableOpts(0, data, 10, rosed.Options{
			TableHeaders:             true,
			NoTrailingLineSeparators: true,
		}).
		String()
}
