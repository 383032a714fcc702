package citeir

import "github.com/quillabs/citare/internal/format"

// Node is one IR tree node.
// This is a sealed interface - only types in this package implement it.
// Nodes are pointers: disambiguation tactics mutate subtrees in place.
type Node interface {
	irNode() // Marker method - seals interface to this package
}

// Rendered is a terminal node. A nil Build is "rendered nothing" and is
// the monoid zero of sequencing.
type Rendered struct {
	Build format.Build
}

// Names is a still-expandable names block. Rerender re-runs the names
// element with expanded disambiguation parameters; it returns false when
// the element has no further names to reveal.
type Names struct {
	Current format.Build
	// AddNames is how many names beyond the et-al truncation are shown.
	AddNames int
	// FullGiven switches initialized given names back to full form.
	FullGiven bool

	Rerender func(addNames int, fullGiven bool) (Node, GroupVars, bool)
}

// ConditionalDisamb wraps a choose whose taken branch may change once
// disambiguation or year suffixes kick in.
type ConditionalDisamb struct {
	Inner Node

	Rerender func(disambiguate bool) (Node, GroupVars)
}

// YearSuffix is the slot where a suffix letter lands. Suffix zero means
// unassigned; assigned suffixes are 1-based and render in bijective
// base-26.
type YearSuffix struct {
	Current format.Build
	Suffix  uint32

	Render func(suffix uint32) format.Build
}

// Seq is an internal node: a delimited sequence with the group's
// formatting, affixes and display mode.
type Seq struct {
	Contents   []Node
	Formatting *format.Formatting
	Affixes    format.Affixes
	Delim      string
	Display    format.DisplayMode
	Quotes     *format.QuoteChars
}

func (*Rendered) irNode()          {}
func (*Names) irNode()             {}
func (*ConditionalDisamb) irNode() {}
func (*YearSuffix) irNode()        {}
func (*Seq) irNode()               {}

// None builds the empty terminal node.
func None() *Rendered {
	return &Rendered{}
}

// IsNone reports whether n is a terminal node that rendered nothing.
func IsNone(n Node) bool {
	r, ok := n.(*Rendered)
	return ok && format.IsEmpty(r.Build)
}

// Visit walks the tree depth-first, parents before children. f returning
// false prunes the subtree.
func Visit(n Node, f func(Node) bool) {
	if n == nil || !f(n) {
		return
	}
	switch t := n.(type) {
	case *ConditionalDisamb:
		Visit(t.Inner, f)
	case *Seq:
		for _, c := range t.Contents {
			Visit(c, f)
		}
	}
}

// NamesBlocks collects the expandable names nodes in walk order.
func NamesBlocks(n Node) []*Names {
	var out []*Names
	Visit(n, func(m Node) bool {
		if nn, ok := m.(*Names); ok {
			out = append(out, nn)
		}
		return true
	})
	return out
}

// YearSuffixSlots collects the year-suffix slots in walk order.
func YearSuffixSlots(n Node) []*YearSuffix {
	var out []*YearSuffix
	Visit(n, func(m Node) bool {
		if ys, ok := m.(*YearSuffix); ok {
			out = append(out, ys)
		}
		return true
	})
	return out
}

// Conditionals collects the disambiguate-sensitive subtrees in walk order.
func Conditionals(n Node) []*ConditionalDisamb {
	var out []*ConditionalDisamb
	Visit(n, func(m Node) bool {
		if cd, ok := m.(*ConditionalDisamb); ok {
			out = append(out, cd)
		}
		return true
	})
	return out
}
