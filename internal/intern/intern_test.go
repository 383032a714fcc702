package intern

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInternRoundTrip(t *testing.T) {
	tbl := NewTable()
	a := tbl.Intern("smith")
	b := tbl.Intern("jones")
	assert.NotEqual(t, a, b)
	assert.Equal(t, a, tbl.Intern("smith"))
	assert.Equal(t, "smith", tbl.Resolve(a))
	assert.Equal(t, "jones", tbl.Resolve(b))
	assert.Equal(t, 2, tbl.Len())
}

func TestLookupDoesNotIntern(t *testing.T) {
	tbl := NewTable()
	_, ok := tbl.Lookup("absent")
	assert.False(t, ok)
	assert.Equal(t, 0, tbl.Len())
}

func TestZeroAtomReserved(t *testing.T) {
	tbl := NewTable()
	a := tbl.Intern("first")
	assert.Equal(t, Atom(1), a)
	assert.Equal(t, "", tbl.Resolve(0))
}
