package citation

// IntraNote places a cluster inside a footnote: the note number plus a
// subindex for notes holding several clusters.
type IntraNote struct {
	Note uint32
	Sub  uint32
}

// Compare orders IntraNotes lexicographically.
func (n IntraNote) Compare(other IntraNote) int {
	switch {
	case n.Note != other.Note:
		if n.Note < other.Note {
			return -1
		}
		return 1
	case n.Sub != other.Sub:
		if n.Sub < other.Sub {
			return -1
		}
		return 1
	}
	return 0
}

// numberKind discriminates ClusterNumber.
type numberKind uint8

const (
	numberOutsideFlow numberKind = iota
	numberInText
	numberNote
)

// ClusterNumber is a cluster's place in the document flow. In-text
// clusters precede all note clusters; OutsideFlow clusters (previews,
// uncited material) take no part in the ordering.
type ClusterNumber struct {
	kind   numberKind
	inText uint32
	note   IntraNote
}

// OutsideFlow is the zero ClusterNumber.
func OutsideFlow() ClusterNumber { return ClusterNumber{} }

// InTextNumber places a cluster in the body text.
func InTextNumber(n uint32) ClusterNumber {
	return ClusterNumber{kind: numberInText, inText: n}
}

// NoteNumber places a cluster in a footnote.
func NoteNumber(note, sub uint32) ClusterNumber {
	return ClusterNumber{kind: numberNote, note: IntraNote{Note: note, Sub: sub}}
}

// InFlow reports whether the cluster participates in document ordering.
func (n ClusterNumber) InFlow() bool { return n.kind != numberOutsideFlow }

// IsNote reports whether the cluster sits in a footnote.
func (n ClusterNumber) IsNote() bool { return n.kind == numberNote }

// NoteNumber returns the footnote number for note clusters.
func (n ClusterNumber) NoteNumber() (uint32, bool) {
	if n.kind != numberNote {
		return 0, false
	}
	return n.note.Note, true
}

// Compare orders two cluster numbers. OutsideFlow is incomparable; ok
// is false when either side is outside the flow.
func (n ClusterNumber) Compare(other ClusterNumber) (cmp int, ok bool) {
	if n.kind == numberOutsideFlow || other.kind == numberOutsideFlow {
		return 0, false
	}
	if n.kind != other.kind {
		if n.kind == numberInText {
			return -1, true
		}
		return 1, true
	}
	if n.kind == numberInText {
		switch {
		case n.inText < other.inText:
			return -1, true
		case n.inText > other.inText:
			return 1, true
		}
		return 0, true
	}
	return n.note.Compare(other.note), true
}

// SubNote is the note distance from a note numbered n to this cluster.
// False when the cluster is not in a footnote or precedes n.
func (c ClusterNumber) SubNote(n uint32) (uint32, bool) {
	if c.kind != numberNote || c.note.Note < n {
		return 0, false
	}
	return c.note.Note - n, true
}
