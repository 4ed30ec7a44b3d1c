// Package parsetable synthesizes ACTION/GOTO tables from a canonical LR(1)
// collection (spec.md §4.3) and renders them for debugging with rosed, the
// same table library the teacher's internal/ictiobus/parse package uses for
// its own String() methods. Conflict classification is grounded on
// internal/ictiobus/parse/lraction.go's LRAction/LRActionType shape; the
// resolve-and-log policy is grounded on slr.go's constructSimpleLRParseTable
// (which actually implements shift-wins resolution), generalized here to
// the canonical LR(1) construction — the teacher's own clr1.go instead
// hard-errors on any conflict, which spec.md §4.3 does not call for.
package parsetable

import "fmt"

// ActionType classifies one ACTION table entry.
type ActionType int

const (
	ActionError ActionType = iota
	ActionShift
	ActionReduce
	ActionAccept
)

func (t ActionType) String() string {
	switch t {
	case ActionShift:
		return "shift"
	case ActionReduce:
		return "reduce"
	case ActionAccept:
		return "accept"
	default:
		return "error"
	}
}

// Action is one ACTION table cell: Shift(State), Reduce(Prod), or Accept.
type Action struct {
	Type  ActionType
	State int // target state, valid when Type == ActionShift
	Prod  int // production id, valid when Type == ActionReduce
}

func (a Action) String() string {
	switch a.Type {
	case ActionShift:
		return fmt.Sprintf("s%d", a.State)
	case ActionReduce:
		return fmt.Sprintf("r%d", a.Prod)
	case ActionAccept:
		return "acc"
	default:
		return ""
	}
}

// ConflictKind names the category of an observed ACTION collision, mirroring
// the distinctions internal/ictiobus/parse/lraction.go's
// isShiftReduceConlict/makeLRConflictError draw between conflicting-action
// shapes.
type ConflictKind int

const (
	ConflictShiftReduce ConflictKind = iota
	ConflictReduceReduce
	ConflictOther
)

func (k ConflictKind) String() string {
	switch k {
	case ConflictShiftReduce:
		return "shift/reduce"
	case ConflictReduceReduce:
		return "reduce/reduce"
	default:
		return "other"
	}
}

// Conflict is a resolved ACTION-table collision, returned alongside the
// table so a caller can both log it (spec.md §4.3) and inspect it
// programmatically (spec.md §12's "conflict diagnostics returned alongside
// the table").
type Conflict struct {
	Kind     ConflictKind
	State    int
	Terminal string
	Kept     Action
	Dropped  []Action
}

func (c Conflict) String() string {
	return fmt.Sprintf("%s conflict in state %d on %q: kept %s, dropped %v", c.Kind, c.State, c.Terminal, c.Kept, c.Dropped)
}
