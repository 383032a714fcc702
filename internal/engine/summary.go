package engine

import (
	"sort"

	"github.com/quillabs/citare/internal/citation"
	"github.com/quillabs/citare/internal/intern"
)

// ClusterUpdate is one changed cluster's new output.
type ClusterUpdate struct {
	ID     string
	Output string
}

// UpdateSummary reports the clusters whose formatted output changed
// since the previous BatchedUpdates call. Overlapping edits to the same
// cluster are de-duplicated; only the final output appears.
type UpdateSummary struct {
	BatchID string
	Updates []ClusterUpdate
}

// BuiltCluster returns the formatted output of one cluster.
func (p *Processor) BuiltCluster(id string) (string, error) {
	a, ok := p.clusterAtoms.Lookup(id)
	cid := citation.ClusterID(a)
	if !ok {
		return "", newUnknownCluster(id)
	}
	if _, ok := p.clusters[cid]; !ok {
		return "", newUnknownCluster(id)
	}
	if err := p.recompute(); err != nil {
		return "", err
	}
	return p.doc.outputs[cid], nil
}

// BatchedUpdates recomputes the document and drains the changed-cluster
// set. Updates are ordered by cluster id for determinism.
func (p *Processor) BatchedUpdates() (UpdateSummary, error) {
	if err := p.recompute(); err != nil {
		return UpdateSummary{}, err
	}
	updates := make([]ClusterUpdate, 0, len(p.pending))
	for cid, out := range p.pending {
		updates = append(updates, ClusterUpdate{
			ID:     p.clusterAtoms.Resolve(intern.Atom(cid)),
			Output: out,
		})
	}
	sort.Slice(updates, func(i, j int) bool { return updates[i].ID < updates[j].ID })
	p.pending = make(map[citation.ClusterID]string)
	return UpdateSummary{BatchID: p.gen.Next(), Updates: updates}, nil
}

// PreviewCluster renders a hypothetical cluster appended to the end of
// the document, without changing any input. The preview sees current
// year suffixes but exerts no disambiguation pressure of its own.
func (p *Processor) PreviewCluster(cites []CiteInput, mode citation.ClusterMode) (string, error) {
	if err := p.recompute(); err != nil {
		return "", err
	}
	s := p.styleVal
	loc := p.mergedLocale(s.DefaultLocale)

	data := p.orderedData()
	temp := citation.ClusterData{
		Number: previewNumber(data),
		Cites:  p.makeCites(cites),
	}
	positions := citation.ComputePositions(append(data, temp), s.Citation.NearNoteDistance)

	cb := &clusterBuild{mode: mode}
	for j, cite := range temp.Cites {
		ref := p.lookupRef(cite.RefID)
		var suffix uint32
		if ref != nil {
			suffix = p.doc.suffixes[ref.ID]
		}
		rc := p.renderOne(s, loc, p.doc, cite, positions[cite.ID],
			suppressAt(mode, j), suffix)
		cb.cites = append(cb.cites, rc)
	}
	return p.buildCluster(s, loc, cb), nil
}

// previewNumber places the preview after every existing cluster.
func previewNumber(data []citation.ClusterData) citation.ClusterNumber {
	inText := uint32(0)
	var lastNote *uint32
	for _, cd := range data {
		if n, ok := cd.Number.NoteNumber(); ok {
			nn := n
			lastNote = &nn
		} else {
			inText++
		}
	}
	if lastNote != nil {
		return citation.NoteNumber(*lastNote+1, 0)
	}
	return citation.InTextNumber(inText + 1)
}
