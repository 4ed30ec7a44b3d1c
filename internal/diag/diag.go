// Package diag collects structured diagnostics produced while building the
// LR(1) tables and while lowering the AST to TAC, and renders them as an
// aligned table via rosed — the same library the teacher uses for every
// other piece of tabular/columnar output (parse-table dumps, token stacks).
package diag

import (
	"fmt"

	"github.com/dekarrin/rosed"
	"github.com/google/uuid"
)

// Severity classifies a diagnostic record.
type Severity int

const (
	// Info records non-error facts worth surfacing (FIRST-set growth during
	// fixpoint iteration, a resolved conflict that didn't actually change
	// behavior).
	Info Severity = iota
	// Warning records a recoverable issue: a resolved shift/reduce or
	// reduce/reduce conflict, an unknown type defaulting its size.
	Warning
	// Error records a non-fatal problem local to one statement or
	// expression: an unresolved identifier, a type mismatch, break outside
	// a loop. The pipeline continues after logging it.
	Error
)

func (s Severity) String() string {
	switch s {
	case Info:
		return "info"
	case Warning:
		return "warning"
	case Error:
		return "error"
	default:
		return "unknown"
	}
}

// Phase names the pipeline stage that produced a Record.
type Phase string

const (
	PhaseFirstSets  Phase = "first-sets"
	PhaseGenerator  Phase = "lr-generator"
	PhaseLex        Phase = "lex"
	PhaseParse      Phase = "parse"
	PhaseSymbols    Phase = "symtab"
	PhaseTAC        Phase = "tac"
)

// Record is one structured diagnostic. Line/Col are 1-based source
// positions; they are 0 for diagnostics that have no source position (e.g.
// FIRST-set fixpoint growth).
type Record struct {
	Severity Severity
	Phase    Phase
	Line     int
	Col      int
	Message  string
}

func (r Record) String() string {
	if r.Line > 0 {
		return fmt.Sprintf("[%s] %s:%d:%d: %s", r.Severity, r.Phase, r.Line, r.Col, r.Message)
	}
	return fmt.Sprintf("[%s] %s: %s", r.Severity, r.Phase, r.Message)
}

// Bag accumulates Records across one compilation run. A fresh run ID is
// assigned at construction so that diagnostics from one invocation can be
// correlated even when several runs interleave (e.g. a --repl session).
type Bag struct {
	RunID   uuid.UUID
	Records []Record
}

// New creates an empty Bag stamped with a fresh run ID.
func New() *Bag {
	return &Bag{RunID: uuid.New()}
}

// Add appends a Record to the bag.
func (b *Bag) Add(r Record) {
	b.Records = append(b.Records, r)
}

// Addf is a convenience wrapper around Add that formats the message.
func (b *Bag) Addf(sev Severity, phase Phase, line, col int, format string, args ...interface{}) {
	b.Add(Record{Severity: sev, Phase: phase, Line: line, Col: col, Message: fmt.Sprintf(format, args...)})
}

// HasErrors returns whether any accumulated Record is at Error severity or
// above.
func (b *Bag) HasErrors() bool {
	for _, r := range b.Records {
		if r.Severity == Error {
			return true
		}
	}
	return false
}

// String renders the bag as a column-aligned table using rosed, the same
// table-rendering library the teacher's parse-table String() methods use.
func (b *Bag) String() string {
	if len(b.Records) == 0 {
		return ""
	}

	data := [][]string{{"SEVERITY", "PHASE", "LINE", "COL", "MESSAGE"}}
	for _, r := range b.Records {
		line := ""
		col := ""
		if r.Line > 0 {
			line = fmt.Sprintf("%d", r.Line)
			col = fmt.Sprintf("%d", r.Col)
		}
		data = append(data, []string{r.Severity.String(), string(r.Phase), line, col, r.Message})
	}

	return rosed.
		Edit("").
		InsertTableOpts(0, data, 20, rosed.Options{
			TableHeaders:             true,
			NoTrailingLineSeparators: true,
		}).
		String()
}
