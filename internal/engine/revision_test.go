package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClockMonotonic(t *testing.T) {
	t.Parallel()

	c := NewClock()
	assert.Equal(t, Revision(0), c.Current())
	assert.Equal(t, Revision(1), c.Next())
	assert.Equal(t, Revision(2), c.Next())
	assert.Equal(t, Revision(2), c.Current())
}

func TestClockAt(t *testing.T) {
	t.Parallel()

	c := NewClockAt(41)
	assert.Equal(t, Revision(41), c.Current())
	assert.Equal(t, Revision(42), c.Next())
}

func TestDurabilityString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "low", DurabilityLow.String())
	assert.Equal(t, "medium", DurabilityMedium.String())
	assert.Equal(t, "high", DurabilityHigh.String())
	assert.Equal(t, "unknown", Durability(9).String())
}

func TestTouchTracksDurabilityClasses(t *testing.T) {
	t.Parallel()

	p := New()
	r1 := p.touch(DurabilityLow)
	r2 := p.touch(DurabilityHigh)
	assert.Less(t, r1, r2)
	assert.Equal(t, r1, p.lastChanged[DurabilityLow])
	assert.Equal(t, r2, p.lastChanged[DurabilityHigh])
	assert.Equal(t, Revision(0), p.lastChanged[DurabilityMedium])
}
