package symtab

import (
	"strconv"

	"github.com/dekarrin/rosed"
)

// String renders every entry ever added to t, in insertion order, as a
// column-aligned grid via rosed — the same rendering idiom
// internal/parsetable.Table.String() uses for its own dump.
func (t *Table) String() string {
	data := [][]string{{"NAME", "TYPE", "KIND", "SCOPE", "OFFSET"}}

	for _, e := range t.All {
		offset := ""
		if e.HasOffset {
			offset = strconv.Itoa(e.Offset)
		}
		data = append(data, []string{e.Name, e.TypeString, e.Kind.String(), strconv.Itoa(e.ScopeLevel), offset})
	}

	return rosed.
		Edit("").
		InsertTableOpts(0, data, 10, rosed.Options{
			TableHeaders:             true,
			NoTrailingLineSeparators: true,
		}).
		String()
}
