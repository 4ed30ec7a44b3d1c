package util

import (
	"sort"
	"strings"
)

// StringSet is an unordered collection of distinct strings, used throughout
// the grammar package for FIRST sets and symbol-name bookkeeping.
type StringSet map[string]bool

// NewStringSet creates a StringSet containing the given members.
func NewStringSet(members ...string) StringSet {
	s := StringSet{}
	for _, m := range members {
		s[m] = true
	}
	return s
}

// Add inserts v into the set. It returns true if v was not already present.
func (s StringSet) Add(v string) bool {
	if s[v] {
		return false
	}
	s[v] = true
	return true
}

// AddAll inserts every member of o into s. It returns true if any addition
// grew the set, which callers use to drive fixpoint iteration.
func (s StringSet) AddAll(o StringSet) bool {
	grew := false
	for v := range o {
		if s.Add(v) {
			grew = true
		}
	}
	return grew
}

// Has returns whether v is a member of the set.
func (s StringSet) Has(v string) bool {
	return s[v]
}

// Remove deletes v from the set, if present.
func (s StringSet) Remove(v string) {
	delete(s, v)
}

// Len returns the number of members.
func (s StringSet) Len() int {
	return len(s)
}

// Empty returns whether the set has no members.
func (s StringSet) Empty() bool {
	return len(s) == 0
}

// Copy returns an independent copy of the set.
func (s StringSet) Copy() StringSet {
	cp := make(StringSet, len(s))
	for v := range s {
		cp[v] = true
	}
	return cp
}

// Equal returns whether s and o contain exactly the same members.
func (s StringSet) Equal(o StringSet) bool {
	if len(s) != len(o) {
		return false
	}
	for v := range s {
		if !o[v] {
			return false
		}
	}
	return true
}

// Sorted returns the members in ascending lexical order.
func (s StringSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for v := range s {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// String renders the set in stable, sorted order for diagnostics and tests.
func (s StringSet) String() string {
	var sb strings.Builder
	sb.WriteRune('{')
	sorted := s.Sorted()
	for i, v := range sorted {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(v)
	}
	sb.WriteRune('}')
	return sb.String()
}

// OrderedKeys returns the keys of m in ascending lexical order, used
// whenever map iteration needs to be made deterministic (diagnostic output,
// table rendering, test expectations).
func OrderedKeys[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
