package citation

import (
	"strings"
	"unicode"

	"github.com/cockroachdb/errors"
)

// ClusterID identifies a cluster. Like reference ids these are client
// strings interned to small integers; the engine owns the table.
type ClusterID uint32

// ClusterMode changes how a whole cluster renders.
// This is a sealed interface - only types in this package implement it.
type ClusterMode interface {
	clusterMode() // Marker method - seals interface to this package
}

// AuthorOnly renders just the author (or party-name) block of each cite.
type AuthorOnly struct{}

// SuppressAuthor renders the cluster with authors removed from the
// first SuppressFirst cites. Zero suppresses every cite.
type SuppressAuthor struct {
	SuppressFirst uint32
}

// Composite renders the author block, an infix, then the cluster with
// those same authors suppressed. A nil Infix means a single space.
type Composite struct {
	Infix         *string
	SuppressFirst uint32
}

func (AuthorOnly) clusterMode()     {}
func (SuppressAuthor) clusterMode() {}
func (Composite) clusterMode()      {}

// InfixText is the infix with its leading space applied. Punctuation at
// the front of the infix glues it to the author block instead.
func (m Composite) InfixText() string {
	if m.Infix == nil {
		return " "
	}
	infix := *m.Infix
	if infix == "" {
		return " "
	}
	r := []rune(infix)[0]
	if unicode.IsPunct(r) || strings.ContainsRune("’'‘", r) {
		return infix
	}
	return " " + infix
}

// Cluster is an ordered list of cites plus an optional mode. Its place
// in the document comes separately, from the cluster order.
type Cluster struct {
	ID    ClusterID
	Cites []*Cite
	Mode  ClusterMode
}

// ClusterPosition is one entry of the client-supplied cluster order.
// A nil Note marks an in-text cluster.
type ClusterPosition struct {
	ID   ClusterID
	Note *uint32
}

// ErrNonMonotonicNote rejects cluster orders whose note numbers go
// backwards.
var ErrNonMonotonicNote = errors.New("note numbers must not decrease")

// Renumber assigns a ClusterNumber to every entry of a cluster order.
// In-text clusters count up from 1 in order of appearance; clusters
// sharing a footnote get ascending subindexes within it.
func Renumber(order []ClusterPosition) (map[ClusterID]ClusterNumber, error) {
	out := make(map[ClusterID]ClusterNumber, len(order))
	inText := uint32(1)
	haveNote := false
	var lastNote, nextIndex uint32
	for _, piece := range order {
		if piece.Note == nil {
			out[piece.ID] = InTextNumber(inText)
			inText++
			continue
		}
		nn := *piece.Note
		switch {
		case !haveNote:
			haveNote = true
			lastNote, nextIndex = nn, 1
			out[piece.ID] = NoteNumber(nn, 0)
		case nn < lastNote:
			return nil, errors.Wrapf(ErrNonMonotonicNote, "note %d after note %d", nn, lastNote)
		case nn == lastNote:
			out[piece.ID] = NoteNumber(nn, nextIndex)
			nextIndex++
		default:
			lastNote, nextIndex = nn, 1
			out[piece.ID] = NoteNumber(nn, 0)
		}
	}
	return out, nil
}
