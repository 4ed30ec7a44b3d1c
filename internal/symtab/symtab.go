// Package symtab implements the scoped symbol table manager of spec.md
// §4.5: a stack of scopes pushed at enter_scope and popped at leave_scope,
// each with a running byte-offset allocator, plus an append-only diagnostic
// log of every entry ever added. No teacher file matches this directly —
// the teacher has no static symbol table — so the structure follows the
// corpus's general idiom of a small mutable manager struct owning its own
// maps and slices (as seen in internal/grammar.Grammar's byLHS/Productions),
// built directly from the spec.
package symtab

import "github.com/dekarrin/blockc/internal/ast"

// Kind classifies a symbol entry, per spec.md §3. Only Variable is produced
// by this language's grammar (no functions/parameters/constants/typedefs),
// but the full enum is kept so the table's shape matches the spec exactly
// and so a future extension (e.g. named constants) has a home.
type Kind int

const (
	Variable Kind = iota
	Parameter
	Function
	Constant
	TypeDef
)

func (k Kind) String() string {
	switch k {
	case Variable:
		return "variable"
	case Parameter:
		return "parameter"
	case Function:
		return "function"
	case Constant:
		return "constant"
	case TypeDef:
		return "typedef"
	default:
		return "unknown"
	}
}

// Entry is one symbol table row: (name, type_string, kind, scope_level,
// offset, address).
type Entry struct {
	Name       string
	TypeString string
	Kind       Kind
	ScopeLevel int
	Offset     int
	HasOffset  bool // size_of(TypeString) > 0; offset is meaningful iff this is true
	Address    ast.Address
}

type scope struct {
	entries map[string]*Entry
	offset  int
}

func newScope() *scope {
	return &scope{entries: map[string]*Entry{}}
}

// Table is the symbol table manager: a stack of scopes plus the
// append-only diagnostic log.
type Table struct {
	scopes []*scope
	All    []*Entry
}

// New creates a Table with the global scope already pushed, per spec.md
// §4.5 ("The global scope is pushed at construction").
func New() *Table {
	return &Table{scopes: []*scope{newScope()}}
}

// EnterScope pushes a fresh scope with its own offset counter starting at 0.
func (t *Table) EnterScope() {
	t.scopes = append(t.scopes, newScope())
}

// LeaveScope pops the innermost scope. It is fatal to call this with only
// the global scope remaining, since that indicates a bug in the caller's
// block-nesting discipline.
func (t *Table) LeaveScope() {
	if len(t.scopes) <= 1 {
		panic("internal compiler error: leaveScope called with no enclosing scope left")
	}
	t.scopes = t.scopes[:len(t.scopes)-1]
}

// CurrentLevel returns the 0-based depth of the innermost scope (0 is
// global).
func (t *Table) CurrentLevel() int {
	return len(t.scopes) - 1
}

// Add inserts a new entry into the current scope. It fails (returns
// ok=false) if the current scope already contains entry.Name — shadowing is
// permitted across scopes but forbidden within one, per spec.md §4.5's
// invariant. On success it sets ScopeLevel, computes the entry's size via
// SizeOf, and if the size is greater than 0 assigns Offset and advances the
// scope's running offset.
func (t *Table) Add(name, typeString string, kind Kind) (*Entry, bool) {
	cur := t.scopes[len(t.scopes)-1]
	if _, exists := cur.entries[name]; exists {
		return nil, false
	}

	e := &Entry{
		Name:       name,
		TypeString: typeString,
		Kind:       kind,
		ScopeLevel: t.CurrentLevel(),
	}

	size, _ := SizeOf(typeString)
	if size > 0 {
		e.Offset = cur.offset
		e.HasOffset = true
		cur.offset += size
	}

	cur.entries[name] = e
	t.All = append(t.All, e)
	return e, true
}

// Lookup scans scopes innermost-outermost and returns the first match.
func (t *Table) Lookup(name string) (*Entry, bool) {
	for i := len(t.scopes) - 1; i >= 0; i-- {
		if e, ok := t.scopes[i].entries[name]; ok {
			return e, true
		}
	}
	return nil, false
}
