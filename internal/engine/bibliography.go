package engine

import (
	"sort"

	"github.com/quillabs/citare/internal/citation"
	"github.com/quillabs/citare/internal/citeir"
	"github.com/quillabs/citare/internal/format"
	"github.com/quillabs/citare/internal/intern"
	"github.com/quillabs/citare/internal/locale"
	"github.com/quillabs/citare/internal/reference"
	"github.com/quillabs/citare/internal/render"
	"github.com/quillabs/citare/internal/style"
)

// BibMeta carries the bibliography's formatting options for the host's
// layout engine.
type BibMeta struct {
	HangingIndent    bool
	SecondFieldAlign style.SecondFieldAlign
	LineSpacing      uint32
	EntrySpacing     uint32
}

// BuiltBibliography renders one entry per cited reference, in the
// bibliography's sort order.
func (p *Processor) BuiltBibliography() ([]string, error) {
	if err := p.recompute(); err != nil {
		return nil, err
	}
	if p.styleVal.Bibliography == nil {
		return nil, newProcessorError(ErrCodeNoBibliography, "style has no bibliography section")
	}
	return p.doc.bibliography, nil
}

// BibliographyMeta returns the bibliography's display options.
func (p *Processor) BibliographyMeta() (BibMeta, error) {
	if err := p.recompute(); err != nil {
		return BibMeta{}, err
	}
	bib := p.styleVal.Bibliography
	if bib == nil {
		return BibMeta{}, newProcessorError(ErrCodeNoBibliography, "style has no bibliography section")
	}
	return BibMeta{
		HangingIndent:    bib.HangingIndent,
		SecondFieldAlign: bib.SecondFieldAlign,
		LineSpacing:      bib.LineSpacing,
		EntrySpacing:     bib.EntrySpacing,
	}, nil
}

// buildBibliography renders the cited references against the
// bibliography layout.
func (p *Processor) buildBibliography(s *style.Style, loc *locale.Merged, doc *document) []string {
	bib := s.Bibliography

	refs := p.citedRefs()
	if bib.Sort != nil {
		refs = p.sortRefs(s, refs, bib.Sort, true)
	} else {
		sort.Slice(refs, func(i, j int) bool {
			return doc.citationNumbers[refs[i].ID] < doc.citationNumbers[refs[j].ID]
		})
	}

	punct := loc.Options().PunctuationInQuote
	entries := make([]string, 0, len(refs))
	prevAuthor := ""
	for _, ref := range refs {
		ctx := &render.Context{
			Style:          s,
			Locale:         loc,
			Ref:            ref,
			Cite:           &citation.Cite{RefID: ref.ID},
			Position:       citation.PositionInfo{Position: citation.PosFirst},
			InBib:          true,
			CitationNumber: doc.citationNumbers[ref.ID],
			YearSuffix:     doc.suffixes[ref.ID],
			FormatOpts:     p.fmtOpts,
			Log:            p.log,
		}
		sum := render.Cite(ctx, bib.Layout)

		author := ""
		if blocks := citeir.NamesBlocks(sum.Node); len(blocks) > 0 {
			author = format.RawText(citeir.Flatten(blocks[0], true))
			if sub := bib.SubsequentAuthorSubstitute; sub != nil &&
				author != "" && author == prevAuthor {
				blocks[0].Current = format.Plain(*sub)
			}
		}
		prevAuthor = author

		b := citeir.Flatten(sum.Node, true)
		b = format.Affixed(format.WithFormat(b, bib.Layout.Formatting), bib.Layout.Affixes)
		entries = append(entries, p.out.Output(b, punct))
	}
	return entries
}

// citedRefs collects every reference cited by any cluster, in or out of
// the document order.
func (p *Processor) citedRefs() []*reference.Reference {
	seen := make(map[intern.Atom]struct{})
	var out []*reference.Reference
	ids := make([]citation.ClusterID, 0, len(p.clusters))
	for cid := range p.clusters {
		ids = append(ids, cid)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for _, cid := range ids {
		for _, c := range p.clusters[cid].cluster.Cites {
			if _, dup := seen[c.RefID]; dup {
				continue
			}
			seen[c.RefID] = struct{}{}
			if ref := p.lookupRef(c.RefID); ref != nil {
				out = append(out, ref)
			}
		}
	}
	return out
}
