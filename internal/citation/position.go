package citation

import "github.com/quillabs/citare/internal/intern"

// Position is a cite's relation to earlier cites of the same reference.
// The near variants record that the previous cite fell within the
// style's near-note window; Matches folds them back onto the five
// testable conditions.
type Position uint8

const (
	PosFirst Position = iota
	PosIbid
	PosIbidNear
	PosIbidWithLocator
	PosIbidWithLocatorNear
	PosSubsequent
	PosNearNote
	PosFarNote
)

var positionNames = [...]string{
	"first", "ibid", "ibid-near", "ibid-with-locator",
	"ibid-with-locator-near", "subsequent", "near-note", "far-note",
}

func (p Position) String() string {
	if int(p) < len(positionNames) {
		return positionNames[p]
	}
	return "unknown"
}

// ParsePosition maps a position condition value. The near/far variants
// are computation results, not testable conditions.
func ParsePosition(s string) (Position, bool) {
	switch s {
	case "first":
		return PosFirst, true
	case "ibid":
		return PosIbid, true
	case "ibid-with-locator":
		return PosIbidWithLocator, true
	case "subsequent":
		return PosSubsequent, true
	case "near-note":
		return PosNearNote, true
	}
	return 0, false
}

// Matches reports whether a computed position satisfies a position
// condition. Ibid-with-locator implies ibid; ibid and near-note imply
// subsequent.
func (p Position) Matches(cond Position) bool {
	if p == cond {
		return true
	}
	switch p {
	case PosIbidNear:
		return cond == PosIbid || cond == PosNearNote || cond == PosSubsequent
	case PosIbidWithLocatorNear:
		return cond == PosIbidWithLocator || cond == PosIbid ||
			cond == PosNearNote || cond == PosSubsequent
	case PosIbidWithLocator:
		return cond == PosIbid || cond == PosSubsequent
	case PosIbid, PosNearNote, PosFarNote:
		return cond == PosSubsequent
	}
	return false
}

// PositionInfo pairs a position with the first-reference-note-number,
// set once the reference has appeared in a footnote.
type PositionInfo struct {
	Position        Position
	FirstNoteNumber *uint32
}

// ClusterData is a cluster with its resolved document number, ready for
// position computation. Callers pass clusters sorted by Number and
// exclude OutsideFlow clusters.
type ClusterData struct {
	ID     ClusterID
	Number ClusterNumber
	Cites  []*Cite
}

// matchPrev classifies a cite against the previous cite of the same
// reference.
func matchPrev(prev, cur *Cite, near bool) Position {
	switch {
	case !prev.HasLocators() && !cur.HasLocators():
		if near {
			return PosIbidNear
		}
		return PosIbid
	case !prev.HasLocators():
		if near {
			return PosIbidWithLocatorNear
		}
		return PosIbidWithLocator
	case !cur.HasLocators():
		// prev had a locator, this one dropped it: subsequent, shaded
		// by note distance
		if near {
			return PosNearNote
		}
		return PosFarNote
	case prev.SameLocators(cur):
		if near {
			return PosIbidNear
		}
		return PosIbid
	default:
		if near {
			return PosIbidWithLocatorNear
		}
		return PosIbidWithLocator
	}
}

// ComputePositions assigns every cite its position and frnn. Clusters
// must be ordered by their numbers; note numbers must not decrease.
func ComputePositions(clusters []ClusterData, nearNoteDistance uint32) map[CiteID]PositionInfo {
	out := make(map[CiteID]PositionInfo)

	// Backref table for frnn. In-text first sightings are recorded but
	// replaced by the first footnote sighting: in-text styles rarely
	// carry enough detail to anchor a backreference.
	firstSeen := make(map[intern.Atom]ClusterNumber)

	var lastNoteNum *uint32
	var clustersInLastNote []int

	var prevInText, prevNote *ClusterData

	for i := range clusters {
		cluster := &clusters[i]
		prevInGroup := cluster.Number.IsNote() && len(clustersInLastNote) > 0
		isNear := func(n uint32) bool {
			d, ok := cluster.Number.SubNote(n)
			return ok && d <= nearNoteDistance
		}
		inText := !cluster.Number.IsNote()

		for j, cite := range cluster.Cites {
			prev, sameCluster, prevNoteNum := previousMatching(
				clusters, cluster, prevInText, prevNote,
				clustersInLastNote, cite, j, prevInGroup, inText)

			havePrev := prev != nil
			var matched Position
			if havePrev {
				// Several footnotes without clusters may sit between
				// two neighbouring note clusters, so nearness uses the
				// note numbers, not adjacency.
				near := sameCluster ||
					(prevNoteNum != nil && isNear(*prevNoteNum))
				matched = matchPrev(prev, cite, near)
			}

			seen, wasSeen := firstSeen[cite.RefID]
			switch {
			case !wasSeen:
				out[cite.ID] = PositionInfo{Position: PosFirst}
				firstSeen[cite.RefID] = cluster.Number

			case seen.IsNote():
				frnn, _ := seen.NoteNumber()
				info := PositionInfo{FirstNoteNumber: &frnn}
				cmp, _ := cluster.Number.Compare(seen)
				switch {
				case havePrev:
					info.Position = matched
				case cmp == 0 || isNear(frnn):
					info.Position = PosNearNote
				default:
					info.Position = PosFarNote
				}
				out[cite.ID] = info

			default: // first seen in text
				if cluster.Number.IsNote() {
					// first full cite; in-text sighting is replaced
					firstSeen[cite.RefID] = cluster.Number
					out[cite.ID] = PositionInfo{Position: PosFirst}
					break
				}
				info := PositionInfo{}
				if havePrev {
					info.Position = matched
				} else if diff := cluster.Number.inText - seen.inText; diff <= nearNoteDistance {
					info.Position = PosNearNote
				} else {
					info.Position = PosFarNote
				}
				out[cite.ID] = info
			}
		}

		if n, ok := cluster.Number.NoteNumber(); ok {
			if lastNoteNum == nil || *lastNoteNum != n {
				nn := n
				lastNoteNum = &nn
				clustersInLastNote = clustersInLastNote[:0]
			}
			clustersInLastNote = append(clustersInLastNote, i)
		}
		if cluster.Number.IsNote() {
			prevNote = cluster
		} else {
			prevInText = cluster
		}
	}
	return out
}

// previousMatching finds the cite to compare against: the cite just
// before this one in the same cluster, or the last cite of the previous
// cluster when every cite there refers to the same reference.
func previousMatching(
	clusters []ClusterData,
	cluster *ClusterData,
	prevInText, prevNote *ClusterData,
	clustersInLastNote []int,
	cite *Cite,
	j int,
	prevInGroup, inText bool,
) (prev *Cite, sameCluster bool, prevNoteNum *uint32) {
	if j > 0 && cluster.Cites[j-1].RefID == cite.RefID {
		return cluster.Cites[j-1], true, nil
	}
	prevCluster := prevNote
	if inText {
		prevCluster = prevInText
	}
	if prevCluster == nil {
		return nil, false, nil
	}
	if n, ok := prevCluster.Number.NoteNumber(); ok {
		prevNoteNum = &n
	}
	allSame := true
	if prevInGroup && !inText {
		// a shared footnote only counts as "previous" if every cluster
		// in it cites this reference
		for _, ci := range clustersInLastNote {
			for _, c := range clusters[ci].Cites {
				if c.RefID != cite.RefID {
					allSame = false
				}
			}
		}
	} else {
		for _, c := range prevCluster.Cites {
			if c.RefID != cite.RefID {
				allSame = false
			}
		}
	}
	if !allSame || len(prevCluster.Cites) == 0 {
		return nil, false, prevNoteNum
	}
	return prevCluster.Cites[len(prevCluster.Cites)-1], false, prevNoteNum
}
