package disamb

import (
	"sort"

	"github.com/quillabs/citare/internal/citeir"
	"github.com/quillabs/citare/internal/format"
	"github.com/quillabs/citare/internal/style"
)

// Cite is one cite under refinement. Sum holds the generation-0 IR from
// the render layer; Refine mutates its nodes in place.
type Cite struct {
	RefID string
	Sum   citeir.IrSum
}

// Options selects which tactics run, mirroring the style's citation
// attributes.
type Options struct {
	AddNames      bool
	AddGivenName  bool
	Rule          style.GivenNameDisambiguationRule
	AddYearSuffix bool

	// SuffixOrder fixes the total order over reference ids used for
	// year-suffix assignment. References missing from it, or the whole
	// order when nil, fall back to lexicographic id order.
	SuffixOrder []string
}

// Refine runs the staged fixed point over all cites and returns the
// year suffixes it assigned, keyed by reference id. Every cite of a
// suffixed reference carries the same suffix. Each cite sees at most
// one application of each tactic, so the loop is bounded by four
// applications per cite.
func Refine(cites []*Cite, idx *Index, opts Options) map[string]uint32 {
	suffixes := make(map[string]uint32)
	if len(cites) == 0 {
		return suffixes
	}

	ambiguous := make([]bool, len(cites))
	refresh := func(i int) {
		ambiguous[i] = !idx.Unambiguous(cites[i].RefID, plain(cites[i]))
	}
	for i := range cites {
		refresh(i)
	}

	if opts.AddNames {
		for i, c := range cites {
			if !ambiguous[i] {
				continue
			}
			expandNames(c, func() bool {
				refresh(i)
				return !ambiguous[i]
			})
		}
	}

	if opts.AddGivenName {
		for i, c := range cites {
			if !ambiguous[i] {
				continue
			}
			restoreGivenNames(c, opts.Rule)
			refresh(i)
		}
	}

	if opts.AddYearSuffix {
		assignYearSuffixes(cites, ambiguous, idx, opts, suffixes)
		for i := range cites {
			if ambiguous[i] {
				refresh(i)
			}
		}
	}

	for i, c := range cites {
		if !ambiguous[i] {
			continue
		}
		takeDisambiguateBranches(c)
		refresh(i)
	}

	return suffixes
}

func plain(c *Cite) string {
	return format.PlainText{}.Output(citeir.Flatten(c.Sum.Node, false), false)
}

// expandNames reveals hidden names one step at a time across every
// names block, stopping as soon as resolved reports success or no block
// has more to give.
func expandNames(c *Cite, resolved func() bool) {
	blocks := citeir.NamesBlocks(c.Sum.Node)
	if len(blocks) == 0 {
		return
	}
	for step := 1; ; step++ {
		any := false
		for _, b := range blocks {
			if applyNames(b, step, b.FullGiven) {
				any = true
			}
		}
		if !any {
			return
		}
		if resolved() {
			return
		}
	}
}

// restoreGivenNames switches initialized given names back to full form.
// The primary-name rules touch only the first block.
func restoreGivenNames(c *Cite, rule style.GivenNameDisambiguationRule) {
	blocks := citeir.NamesBlocks(c.Sum.Node)
	for i, b := range blocks {
		if i > 0 && (rule == style.RulePrimaryName || rule == style.RulePrimaryNameWithInitials) {
			break
		}
		applyNames(b, b.AddNames, true)
	}
}

// applyNames re-renders one names block and installs the result in
// place. Returns false when the block had nothing more to reveal.
func applyNames(b *citeir.Names, addNames int, fullGiven bool) bool {
	node, _, ok := b.Rerender(addNames, fullGiven)
	if nn, isNames := node.(*citeir.Names); isNames {
		rr := b.Rerender
		*b = *nn
		if b.Rerender == nil {
			b.Rerender = rr
		}
	}
	return ok
}

// assignYearSuffixes groups still-ambiguous cites by their rendered
// output, orders each group's references deterministically, and fills
// the year-suffix slots of every cite of each suffixed reference.
func assignYearSuffixes(cites []*Cite, ambiguous []bool, idx *Index, opts Options, suffixes map[string]uint32) {
	groups := make(map[string][]string)
	for i, c := range cites {
		if !ambiguous[i] {
			continue
		}
		if len(citeir.YearSuffixSlots(c.Sum.Node)) == 0 {
			continue
		}
		key := plain(c)
		if !contains(groups[key], c.RefID) {
			groups[key] = append(groups[key], c.RefID)
		}
	}

	order := suffixOrderIndex(opts.SuffixOrder)
	for _, refs := range groups {
		if len(refs) < 2 {
			continue
		}
		sort.Slice(refs, func(a, b int) bool {
			pa, oka := order[refs[a]]
			pb, okb := order[refs[b]]
			switch {
			case oka && okb:
				return pa < pb
			case oka:
				return true
			case okb:
				return false
			default:
				return refs[a] < refs[b]
			}
		})
		for n, refID := range refs {
			if _, done := suffixes[refID]; done {
				continue
			}
			suffix := uint32(n + 1)
			suffixes[refID] = suffix
			idx.AssignYearSuffix(refID, suffix)
		}
	}

	if len(suffixes) == 0 {
		return
	}
	for _, c := range cites {
		suffix, ok := suffixes[c.RefID]
		if !ok {
			continue
		}
		for _, slot := range citeir.YearSuffixSlots(c.Sum.Node) {
			slot.Suffix = suffix
			slot.Current = slot.Render(suffix)
		}
	}
}

// takeDisambiguateBranches flips every disambiguate conditional to its
// true branch.
func takeDisambiguateBranches(c *Cite) {
	for _, cd := range citeir.Conditionals(c.Sum.Node) {
		cd.Inner, _ = cd.Rerender(true)
	}
}

func suffixOrderIndex(order []string) map[string]int {
	m := make(map[string]int, len(order))
	for i, id := range order {
		m[id] = i
	}
	return m
}

func contains(ss []string, s string) bool {
	for _, v := range ss {
		if v == s {
			return true
		}
	}
	return false
}
