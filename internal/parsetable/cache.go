package parsetable

import (
	"github.com/dekarrin/blockc/internal/grammar"
	"github.com/dekarrin/rezi"
)

// cached is the on-disk representation of a Table: plain maps and slices
// rezi can walk by reflection, with the Grammar pointer excluded (the
// caller always has the grammar already, since it's the cache key).
type cached struct {
	NumStates int
	Action    map[int]map[string]Action
	Goto      map[int]map[string]int
}

// Encode serializes t to rezi's binary format, for the on-disk table cache
// described in spec.md §12 (so repeated CLI invocations over the same
// grammar skip LR(1) construction). Grounded on the teacher's
// rezi.EncBinary/DecBinary call pair in server/dao/sqlite/sqlite.go, which
// persists game save state the same way this persists a generator result.
func Encode(t *Table) ([]byte, error) {
	return rezi.Enc(cached{NumStates: t.NumStates, Action: t.Action, Goto: t.Goto})
}

// Decode deserializes bytes produced by Encode and re-attaches g, the
// grammar the table was originally built from (not itself part of the
// cached payload, since the caller always already has it as the cache key).
func Decode(data []byte, g *grammar.Grammar) (*Table, error) {
	var c cached
	if _, err := rezi.Dec(data, &c); err != nil {
		return nil, err
	}
	return &Table{NumStates: c.NumStates, Action: c.Action, Goto: c.Goto, Grammar: g}, nil
}
