package citeir

import "github.com/quillabs/citare/internal/format"

// Flatten serializes the tree to a build. For a fixed reference, cite
// context, locale and style the result is deterministic. inBib controls
// whether display modes are honoured.
func Flatten(n Node, inBib bool) format.Build {
	switch t := n.(type) {
	case nil:
		return nil
	case *Rendered:
		return t.Build
	case *Names:
		return t.Current
	case *ConditionalDisamb:
		return Flatten(t.Inner, inBib)
	case *YearSuffix:
		return t.Current
	case *Seq:
		return flattenSeq(t, inBib)
	}
	return nil
}

func flattenSeq(s *Seq, inBib bool) format.Build {
	children := make([]format.Build, 0, len(s.Contents))
	for _, c := range s.Contents {
		b := Flatten(c, inBib)
		if !format.IsEmpty(b) {
			children = append(children, b)
		}
	}
	if len(children) == 0 {
		return nil
	}
	out := format.GroupNode(children, s.Delim, nil)
	if s.Quotes != nil {
		out = format.QuotedNode(out, *s.Quotes)
	}
	out = format.WithFormat(out, s.Formatting)
	out = format.Affixed(out, s.Affixes)
	if inBib {
		out = format.WithDisplay(out, s.Display, true)
	}
	return out
}

// Collapse folds Seq subtrees whose children are all terminal into a
// single Rendered node. Expandable nodes are left in place.
func Collapse(n Node, inBib bool) Node {
	s, ok := n.(*Seq)
	if !ok {
		if cd, isCond := n.(*ConditionalDisamb); isCond {
			cd.Inner = Collapse(cd.Inner, inBib)
		}
		return n
	}
	terminal := true
	for i, c := range s.Contents {
		s.Contents[i] = Collapse(c, inBib)
		if _, isRendered := s.Contents[i].(*Rendered); !isRendered {
			terminal = false
		}
	}
	if !terminal {
		return s
	}
	return &Rendered{Build: flattenSeq(s, inBib)}
}

// Seal converts a tree with no remaining tactics into a single terminal.
func Seal(n Node, inBib bool) *Rendered {
	return &Rendered{Build: Flatten(n, inBib)}
}
