package engine

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/quillabs/citare/internal/citation"
	"github.com/quillabs/citare/internal/citeir"
	"github.com/quillabs/citare/internal/format"
	"github.com/quillabs/citare/internal/locale"
	"github.com/quillabs/citare/internal/style"
)

// clusterBuild is one cluster's rendered cites awaiting assembly.
type clusterBuild struct {
	id    citation.ClusterID
	mode  citation.ClusterMode
	cites []*renderedCite
}

// buildCluster assembles one cluster's output: cluster mode, collapse,
// the layout delimiter and the layout decoration, then serialization.
func (p *Processor) buildCluster(s *style.Style, loc *locale.Merged, cb *clusterBuild) string {
	layout := s.Citation.Layout
	decorate := func(b format.Build) format.Build {
		if format.IsEmpty(b) {
			return nil
		}
		return format.Affixed(format.WithFormat(b, layout.Formatting), layout.Affixes)
	}

	var b format.Build
	switch m := cb.mode.(type) {
	case citation.AuthorOnly:
		// bare author block, no layout decoration
		builds := make([]format.Build, 0, len(cb.cites))
		for _, rc := range cb.cites {
			builds = append(builds, p.citeAffixed(rc, authorBuild(rc)))
		}
		b = format.GroupNode(builds, layout.Delimiter, nil)

	case citation.Composite:
		b = p.compositeBuild(s, loc, cb, m, layout.Delimiter, decorate)

	default:
		b = decorate(p.collapsedBuild(s, loc, cb, layout.Delimiter))
	}

	return p.out.Output(b, loc.Options().PunctuationInQuote)
}

// citeAffixed wraps a cite build in its prefix and suffix.
func (p *Processor) citeAffixed(rc *renderedCite, b format.Build) format.Build {
	return format.Affixed(b, format.Affixes{
		Prefix: rc.cite.Prefix,
		Suffix: rc.cite.Suffix,
	})
}

// authorBuild extracts the author (first names block) of a rendered
// cite. Cites without a names block fall back to the full cite.
func authorBuild(rc *renderedCite) format.Build {
	blocks := citeir.NamesBlocks(rc.sum.Node)
	if len(blocks) == 0 {
		return citeir.Flatten(rc.sum.Node, false)
	}
	return citeir.Flatten(blocks[0], false)
}

// compositeBuild renders the author block, the infix, then the
// author-suppressed cluster with the layout decoration. The author and
// infix sit outside the decoration, so "(1999)" styles come out as
// "Doe's early work (1999)".
func (p *Processor) compositeBuild(
	s *style.Style, loc *locale.Merged, cb *clusterBuild,
	m citation.Composite, delim string,
	decorate func(format.Build) format.Build,
) format.Build {
	if len(cb.cites) == 0 {
		return nil
	}
	author := authorBuild(cb.cites[0])

	builds := make([]format.Build, 0, len(cb.cites))
	for j, rc := range cb.cites {
		suppress := m.SuppressFirst == 0 || j < int(m.SuppressFirst)
		b := citeir.Flatten(rc.sum.Node, false)
		if suppress && rc.ref != nil {
			sum := p.renderCtx(s, loc, rc, true, rc.suffix)
			b = citeir.Flatten(sum.Node, false)
		}
		builds = append(builds, p.citeAffixed(rc, b))
	}
	suppressed := decorate(format.GroupNode(builds, delim, nil))
	head := author
	// the space before the suppressed block comes from the join below
	if infix := strings.TrimRight(m.InfixText(), " "); infix != "" {
		head = format.Seq(author, format.Plain(infix))
	}
	return format.GroupNode([]format.Build{head, suppressed}, " ", nil)
}

// collapsedBuild joins a cluster's cites, collapsing cite groups per
// the style's collapse mode.
func (p *Processor) collapsedBuild(
	s *style.Style, loc *locale.Merged, cb *clusterBuild, delim string,
) format.Build {
	switch s.Citation.CollapseFallback() {
	case style.CollapseYear, style.CollapseYearSuffix, style.CollapseYearSuffixRanged:
		return p.collapseByAuthor(s, loc, cb, delim)
	case style.CollapseCitationNumber:
		return p.collapseNumeric(s, cb, delim)
	}
	builds := make([]format.Build, 0, len(cb.cites))
	for _, rc := range cb.cites {
		builds = append(builds, p.citeAffixed(rc, citeir.Flatten(rc.sum.Node, false)))
	}
	return format.GroupNode(builds, delim, nil)
}

// collapseByAuthor groups adjacent cites sharing an author block and
// suppresses the repeated authors: "Doe 1999, 2001; Smith 2000".
func (p *Processor) collapseByAuthor(
	s *style.Style, loc *locale.Merged, cb *clusterBuild, delim string,
) format.Build {
	withinDelim := ", "
	if d := s.Citation.CiteGroupDelimiter; d != nil {
		withinDelim = *d
	}
	groupDelim := delim
	if d := s.Citation.AfterCollapseDelimiter; d != nil {
		groupDelim = *d
	}

	var groups []format.Build
	var cur []format.Build
	lastKey := ""
	flush := func() {
		if len(cur) > 0 {
			groups = append(groups, format.GroupNode(cur, withinDelim, nil))
			cur = nil
		}
	}
	for _, rc := range cb.cites {
		key := authorKey(rc)
		if key == "" || key != lastKey {
			flush()
			lastKey = key
			cur = append(cur, p.citeAffixed(rc, citeir.Flatten(rc.sum.Node, false)))
			continue
		}
		// same author as the previous cite: render author-suppressed
		b := citeir.Flatten(rc.sum.Node, false)
		if rc.ref != nil {
			sum := p.renderCtx(s, loc, rc, true, rc.suffix)
			b = citeir.Flatten(sum.Node, false)
		}
		cur = append(cur, p.citeAffixed(rc, b))
	}
	flush()
	return format.GroupNode(groups, groupDelim, nil)
}

func authorKey(rc *renderedCite) string {
	blocks := citeir.NamesBlocks(rc.sum.Node)
	if len(blocks) == 0 {
		return ""
	}
	return format.RawText(citeir.Flatten(blocks[0], false))
}

// collapseNumeric folds runs of three or more consecutive citation
// numbers into ranges: "[1–4, 9]".
func (p *Processor) collapseNumeric(s *style.Style, cb *clusterBuild, delim string) format.Build {
	type numbered struct {
		b format.Build
		n int
		// numeric is false for cites that did not render a bare number
		numeric bool
	}
	cites := make([]numbered, 0, len(cb.cites))
	for _, rc := range cb.cites {
		b := p.citeAffixed(rc, citeir.Flatten(rc.sum.Node, false))
		n, err := strconv.Atoi(format.RawText(b))
		cites = append(cites, numbered{b: b, n: n, numeric: err == nil})
	}

	var out []format.Build
	for i := 0; i < len(cites); {
		j := i
		for j+1 < len(cites) && cites[j+1].numeric && cites[j].numeric &&
			cites[j+1].n == cites[j].n+1 {
			j++
		}
		if j-i >= 2 {
			out = append(out, format.Plain(
				fmt.Sprintf("%d–%d", cites[i].n, cites[j].n)))
			i = j + 1
			continue
		}
		out = append(out, cites[i].b)
		i++
	}
	return format.GroupNode(out, delim, nil)
}
