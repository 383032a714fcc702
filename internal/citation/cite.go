package citation

import (
	"github.com/quillabs/citare/internal/intern"
	"github.com/quillabs/citare/internal/numbers"
)

// CiteID identifies one cite slot. Ids are assigned monotonically and
// stay unique per slot even across cluster edits.
type CiteID uint32

// Locator pins a cite to a place inside the reference.
type Locator struct {
	Type  string
	Value numbers.NumericValue
}

// Cite is one citation of a reference within a cluster.
type Cite struct {
	ID     CiteID
	RefID  intern.Atom
	Prefix string
	Suffix string
	// Locators is usually zero or one entry; legal styles stack more.
	Locators []Locator

	// CSL-M extras, only rendered when the style's features allow.
	LocatorExtra string
	LocatorDate  string
}

// HasLocators reports whether the cite pins any locator at all.
func (c *Cite) HasLocators() bool {
	return len(c.Locators) > 0
}

// SameLocators compares the full locator lists of two cites.
func (c *Cite) SameLocators(other *Cite) bool {
	if len(c.Locators) != len(other.Locators) {
		return false
	}
	for i, l := range c.Locators {
		o := other.Locators[i]
		if l.Type != o.Type || l.Value.Verbatim != o.Value.Verbatim {
			return false
		}
	}
	return true
}
