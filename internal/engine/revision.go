package engine

import "sync/atomic"

// Revision is a point on the processor's logical clock. Derived values
// record the revision they were built at; inputs record the revision of
// their last change.
type Revision uint64

// Clock issues monotonically increasing revisions.
type Clock struct {
	rev atomic.Uint64
}

// NewClock creates a clock starting at revision zero.
func NewClock() *Clock {
	return &Clock{}
}

// NewClockAt creates a clock whose next revision follows r.
func NewClockAt(r Revision) *Clock {
	c := &Clock{}
	c.rev.Store(uint64(r))
	return c
}

// Next advances the clock and returns the new revision.
func (c *Clock) Next() Revision {
	return Revision(c.rev.Add(1))
}

// Current returns the latest issued revision without advancing.
func (c *Clock) Current() Revision {
	return Revision(c.rev.Load())
}

// Durability classes an input by how rarely it changes. Derived values
// built from high-durability inputs only survive edits to lower
// classes without revalidation.
type Durability uint8

const (
	// DurabilityLow covers the cluster order and cluster contents.
	DurabilityLow Durability = iota
	// DurabilityMedium covers the reference set.
	DurabilityMedium
	// DurabilityHigh covers the style text and locale sources.
	DurabilityHigh

	durabilityCount
)

var durabilityNames = [...]string{"low", "medium", "high"}

func (d Durability) String() string {
	if int(d) < len(durabilityNames) {
		return durabilityNames[d]
	}
	return "unknown"
}
