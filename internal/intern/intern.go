// Package intern provides a string interning table.
//
// Reference ids and cluster ids are compared constantly on hot paths
// (position computation, disambiguation index lookups), so they are
// stored as small integers with a side table for the original strings.
package intern

// Atom is an interned string. The zero Atom is reserved and never issued.
type Atom uint32

// Table maps strings to Atoms and back. Not safe for concurrent use; the
// processor owns one table and all access goes through its single thread.
type Table struct {
	byStr map[string]Atom
	byID  []string // index 0 unused
}

// NewTable creates an empty intern table.
func NewTable() *Table {
	return &Table{
		byStr: make(map[string]Atom),
		byID:  make([]string, 1),
	}
}

// Intern returns the Atom for s, issuing a new one on first sight.
func (t *Table) Intern(s string) Atom {
	if a, ok := t.byStr[s]; ok {
		return a
	}
	a := Atom(len(t.byID))
	t.byID = append(t.byID, s)
	t.byStr[s] = a
	return a
}

// Lookup returns the Atom for s without interning.
func (t *Table) Lookup(s string) (Atom, bool) {
	a, ok := t.byStr[s]
	return a, ok
}

// Resolve returns the string for a previously issued Atom.
func (t *Table) Resolve(a Atom) string {
	if a == 0 || int(a) >= len(t.byID) {
		return ""
	}
	return t.byID[a]
}

// Len returns the number of interned strings.
func (t *Table) Len() int {
	return len(t.byID) - 1
}
