package engine

import (
	"sort"

	"github.com/quillabs/citare/internal/citation"
	"github.com/quillabs/citare/internal/citeir"
	"github.com/quillabs/citare/internal/disamb"
	"github.com/quillabs/citare/internal/intern"
	"github.com/quillabs/citare/internal/locale"
	"github.com/quillabs/citare/internal/reference"
	"github.com/quillabs/citare/internal/render"
	"github.com/quillabs/citare/internal/style"
)

// renderedCite is one cite's disambiguated IR plus everything needed to
// re-render it under different author suppression.
type renderedCite struct {
	cite       *citation.Cite
	ref        *reference.Reference // nil when the id matches no reference
	pos        citation.PositionInfo
	suffix     uint32
	citeNumber uint32
	suppressed bool
	sum        citeir.IrSum
}

// document is the fully derived state for one revision of the inputs.
type document struct {
	outputs         map[citation.ClusterID]string
	suffixes        map[intern.Atom]uint32
	citationNumbers map[intern.Atom]uint32
	bibliography    []string
}

// recompute brings the derived document up to date with the inputs.
// The whole document is one derived value; the compiled style, merged
// locales and sort-key vectors keep their own finer-grained memos, so
// a low-durability edit reuses all of them.
func (p *Processor) recompute() error {
	if p.styleText == nil {
		return newProcessorError(ErrCodeStyleNotSet, "no style has been set")
	}
	if p.styleErr != nil {
		return &ProcessorError{Code: ErrCodeStyleInvalid, Message: p.styleErr.Error()}
	}
	latest := p.lastChanged[DurabilityLow]
	for _, d := range []Durability{DurabilityMedium, DurabilityHigh} {
		if p.lastChanged[d] > latest {
			latest = p.lastChanged[d]
		}
	}
	if p.doc != nil && p.docBuilt >= latest {
		return nil
	}

	s := p.styleVal
	loc := p.mergedLocale(s.DefaultLocale)
	doc := p.buildDocument(s, loc)

	for id, out := range doc.outputs {
		if p.doc == nil {
			p.pending[id] = out
			continue
		}
		if old, ok := p.doc.outputs[id]; !ok || old != out {
			p.pending[id] = out
		}
	}
	p.doc = doc
	p.docBuilt = p.clock.Current()
	p.log.Debug("document rebuilt",
		"revision", uint64(p.docBuilt), "clusters", len(doc.outputs))
	return nil
}

// mergedLocale resolves and memoizes the locale chain for a language
// tag. The memo is dropped whenever the style changes, since in-style
// overrides are a layer of the chain.
func (p *Processor) mergedLocale(tag string) *locale.Merged {
	lang := locale.ParseLang(tag)
	if m, ok := p.locales[lang.String()]; ok {
		return m
	}
	r := locale.NewResolver(
		locale.WithFetcher(p.fetcher),
		locale.WithInline(p.styleVal.LocaleOverrides),
		locale.WithLogger(p.log),
	)
	m := r.Resolve(lang)
	p.locales[lang.String()] = m
	return m
}

func (p *Processor) buildDocument(s *style.Style, loc *locale.Merged) *document {
	doc := &document{
		outputs:  make(map[citation.ClusterID]string),
		suffixes: make(map[intern.Atom]uint32),
	}

	data := p.orderedData()
	positions := citation.ComputePositions(data, s.Citation.NearNoteDistance)
	doc.citationNumbers = p.citationNumbers(s, data)

	// generation-0 render of every in-flow cite
	var flow []*clusterBuild
	var all []*renderedCite
	for _, oc := range p.order {
		ci := p.clusters[oc.id]
		cb := &clusterBuild{id: oc.id, mode: ci.cluster.Mode}
		for j, cite := range ci.cluster.Cites {
			rc := p.renderOne(s, loc, doc, cite, positions[cite.ID],
				suppressAt(ci.cluster.Mode, j), 0)
			cb.cites = append(cb.cites, rc)
			all = append(all, rc)
		}
		flow = append(flow, cb)
	}

	p.disambiguate(s, all, doc)

	for _, cb := range flow {
		doc.outputs[cb.id] = p.buildCluster(s, loc, cb)
	}

	// clusters inserted but absent from the order render outside the
	// document flow: first position, no disambiguation pressure
	for cid, ci := range p.clusters {
		if _, done := doc.outputs[cid]; done {
			continue
		}
		cb := &clusterBuild{id: cid, mode: ci.cluster.Mode}
		for j, cite := range ci.cluster.Cites {
			ref := p.lookupRef(cite.RefID)
			var suffix uint32
			if ref != nil {
				suffix = doc.suffixes[ref.ID]
			}
			rc := p.renderOne(s, loc, doc, cite,
				citation.PositionInfo{Position: citation.PosFirst},
				suppressAt(ci.cluster.Mode, j), suffix)
			cb.cites = append(cb.cites, rc)
		}
		doc.outputs[cid] = p.buildCluster(s, loc, cb)
	}

	if s.Bibliography != nil {
		doc.bibliography = p.buildBibliography(s, loc, doc)
	}
	return doc
}

// orderedData resolves the cluster order into position-computation
// input. The order was validated when set, so Renumber cannot fail
// here.
func (p *Processor) orderedData() []citation.ClusterData {
	check := make([]citation.ClusterPosition, 0, len(p.order))
	for _, oc := range p.order {
		check = append(check, citation.ClusterPosition{ID: oc.id, Note: oc.note})
	}
	numbers, err := citation.Renumber(check)
	if err != nil {
		p.log.Error("stored cluster order invalid", "error", err)
		return nil
	}
	data := make([]citation.ClusterData, 0, len(p.order))
	for _, oc := range p.order {
		data = append(data, citation.ClusterData{
			ID:     oc.id,
			Number: numbers[oc.id],
			Cites:  p.clusters[oc.id].cluster.Cites,
		})
	}
	return data
}

func (p *Processor) lookupRef(a intern.Atom) *reference.Reference {
	if ri, ok := p.refs[a]; ok {
		return ri.ref
	}
	return nil
}

func (p *Processor) renderOne(
	s *style.Style, loc *locale.Merged, doc *document,
	cite *citation.Cite, pos citation.PositionInfo,
	suppress bool, suffix uint32,
) *renderedCite {
	rc := &renderedCite{
		cite:       cite,
		ref:        p.lookupRef(cite.RefID),
		pos:        pos,
		suffix:     suffix,
		suppressed: suppress,
	}
	if rc.ref == nil {
		p.log.Warn("cite names unknown reference",
			"ref", p.refAtoms.Resolve(cite.RefID))
		rc.sum = citeir.IrSum{Node: citeir.None(), GV: citeir.NoneSeen}
		return rc
	}
	rc.citeNumber = doc.citationNumbers[rc.ref.ID]
	rc.sum = p.renderCtx(s, loc, rc, suppress, suffix)
	return rc
}

// renderCtx runs the element walkers for one cite.
func (p *Processor) renderCtx(
	s *style.Style, loc *locale.Merged, rc *renderedCite,
	suppress bool, suffix uint32,
) citeir.IrSum {
	ctx := &render.Context{
		Style:          s,
		Locale:         loc,
		Ref:            rc.ref,
		Cite:           rc.cite,
		Position:       rc.pos,
		CitationNumber: rc.citeNumber,
		YearSuffix:     suffix,
		SuppressAuthor: suppress,
		FormatOpts:     p.fmtOpts,
		Log:            p.log,
	}
	return render.Cite(ctx, s.Citation.Layout)
}

// disambiguate runs the staged refinement over every in-flow cite and
// records the assigned year suffixes on the document.
func (p *Processor) disambiguate(s *style.Style, all []*renderedCite, doc *document) {
	refs := make([]*reference.Reference, 0, len(p.refs))
	for _, ri := range p.refs {
		refs = append(refs, ri.ref)
	}
	idx := disamb.NewIndex(refs)

	var cites []*disamb.Cite
	var owners []*renderedCite
	for _, rc := range all {
		if rc.ref == nil {
			continue
		}
		cites = append(cites, &disamb.Cite{RefID: rc.ref.IDStr, Sum: rc.sum})
		owners = append(owners, rc)
	}

	opts := disamb.Options{
		AddNames:      s.Citation.DisambiguateAddNames,
		AddGivenName:  s.Citation.DisambiguateAddGivenname,
		Rule:          s.Citation.GivennameDisambiguationRule,
		AddYearSuffix: s.Citation.DisambiguateAddYearSuffix,
	}
	if s.Bibliography != nil && s.Bibliography.Sort != nil {
		sorted := p.sortRefs(s, refs, s.Bibliography.Sort, true)
		opts.SuffixOrder = make([]string, len(sorted))
		for i, r := range sorted {
			opts.SuffixOrder[i] = r.IDStr
		}
	}

	suffixes := disamb.Refine(cites, idx, opts)
	for idStr, n := range suffixes {
		if a, ok := p.refAtoms.Lookup(idStr); ok {
			doc.suffixes[a] = n
		}
	}
	for i, c := range cites {
		owners[i].sum = c.Sum
		owners[i].suffix = doc.suffixes[owners[i].ref.ID]
	}
}

// citationNumbers assigns the 1-based citation-number of every
// reference. With a sorted bibliography the number is the bibliography
// rank; otherwise references number in order of first appearance, with
// never-cited references following in id order.
func (p *Processor) citationNumbers(
	s *style.Style, data []citation.ClusterData,
) map[intern.Atom]uint32 {
	out := make(map[intern.Atom]uint32, len(p.refs))

	if s.Bibliography != nil && s.Bibliography.Sort != nil {
		refs := make([]*reference.Reference, 0, len(p.refs))
		for _, ri := range p.refs {
			refs = append(refs, ri.ref)
		}
		for i, r := range p.sortRefs(s, refs, s.Bibliography.Sort, true) {
			out[r.ID] = uint32(i + 1)
		}
		return out
	}

	next := uint32(1)
	take := func(a intern.Atom) {
		if _, ok := p.refs[a]; !ok {
			return
		}
		if _, seen := out[a]; seen {
			return
		}
		out[a] = next
		next++
	}
	for _, cd := range data {
		for _, c := range cd.Cites {
			take(c.RefID)
		}
	}
	rest := make([]*reference.Reference, 0, len(p.refs))
	for _, ri := range p.refs {
		if _, seen := out[ri.ref.ID]; !seen {
			rest = append(rest, ri.ref)
		}
	}
	sort.Slice(rest, func(i, j int) bool { return rest[i].IDStr < rest[j].IDStr })
	for _, r := range rest {
		take(r.ID)
	}
	return out
}

// sortRefs orders references by the given sort keys. Key vectors are
// cached per (reference, revision) in an LRU, so re-sorting after a
// cluster edit costs only the comparison pass.
func (p *Processor) sortRefs(
	s *style.Style, refs []*reference.Reference, srt *style.Sort, inBib bool,
) []*reference.Reference {
	loc := p.mergedLocale(s.DefaultLocale)
	keysOf := func(r *reference.Reference) []string {
		key := sortKeyCacheKey{
			ref:     r.ID,
			refAt:   p.refs[r.ID].changedAt,
			styleAt: p.styleBuilt,
			inBib:   inBib,
		}
		if v, ok := p.sortKeys.Get(key); ok {
			return v
		}
		ctx := &render.Context{
			Style:  s,
			Locale: loc,
			Ref:    r,
			Cite:   &citation.Cite{},
			InBib:  inBib,
			Log:    p.log,
		}
		v := make([]string, len(srt.Keys))
		for i, k := range srt.Keys {
			v[i] = render.SortKeyValue(ctx, k)
		}
		p.sortKeys.Add(key, v)
		return v
	}

	out := make([]*reference.Reference, len(refs))
	copy(out, refs)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := keysOf(out[i]), keysOf(out[j])
		for k := range srt.Keys {
			if a[k] == b[k] {
				continue
			}
			if srt.Keys[k].Descending {
				return a[k] > b[k]
			}
			return a[k] < b[k]
		}
		return out[i].IDStr < out[j].IDStr
	})
	return out
}

// suppressAt reports whether the cluster mode suppresses the author of
// the cite at index j.
func suppressAt(mode citation.ClusterMode, j int) bool {
	switch m := mode.(type) {
	case citation.SuppressAuthor:
		return m.SuppressFirst == 0 || j < int(m.SuppressFirst)
	default:
		return false
	}
}
