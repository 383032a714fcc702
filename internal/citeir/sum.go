package citeir

import "github.com/quillabs/citare/internal/format"

// IrSum pairs a node with its variable-presence summary. Sequencing child
// results is a left fold over IrSum with Zero as the monoid identity.
type IrSum struct {
	Node Node
	GV   GroupVars
}

// Zero is the fold identity: rendered nothing, no variables seen.
func Zero() IrSum {
	return IrSum{Node: None(), GV: NoneSeen}
}

// Add combines two sums. Empty terminals vanish, adjacent rendered
// terminals join through the delimiter, and anything still expandable
// forces a Seq so later passes can reach it.
func (a IrSum) Add(b IrSum, delim string) IrSum {
	gv := a.GV.Combine(b.GV)
	if IsNone(a.Node) {
		return IrSum{Node: b.Node, GV: gv}
	}
	if IsNone(b.Node) {
		return IrSum{Node: a.Node, GV: gv}
	}
	ra, aRendered := a.Node.(*Rendered)
	rb, bRendered := b.Node.(*Rendered)
	if aRendered && bRendered {
		return IrSum{
			Node: &Rendered{Build: format.JoinDelim(ra.Build, delim, rb.Build)},
			GV:   gv,
		}
	}
	if s, ok := a.Node.(*Seq); ok && s.isBareWithDelim(delim) {
		s.Contents = append(s.Contents, b.Node)
		return IrSum{Node: s, GV: gv}
	}
	return IrSum{
		Node: &Seq{Contents: []Node{a.Node, b.Node}, Delim: delim},
		GV:   gv,
	}
}

// isBareWithDelim reports whether the Seq is a plain delimiter join that
// Add may extend in place.
func (s *Seq) isBareWithDelim(delim string) bool {
	return s.Delim == delim && s.Formatting == nil && s.Affixes.IsZero() &&
		s.Display == "" && s.Quotes == nil
}

// Fold sequences children left to right.
func Fold(children []IrSum, delim string) IrSum {
	acc := Zero()
	for _, c := range children {
		acc = acc.Add(c, delim)
	}
	return acc
}
