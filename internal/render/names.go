package render

import (
	"strconv"
	"strings"

	"github.com/quillabs/citare/internal/citation"
	"github.com/quillabs/citare/internal/citeir"
	"github.com/quillabs/citare/internal/format"
	"github.com/quillabs/citare/internal/locale"
	"github.com/quillabs/citare/internal/reference"
	"github.com/quillabs/citare/internal/style"
)

// nameList is one requested variable that actually has names.
type nameList struct {
	v     reference.NameVar
	names []reference.Name
}

// renderNames evaluates cs:names. The result is an expandable Names
// node: disambiguation re-renders it with more names revealed or with
// initialized given names restored to full form.
func renderNames(ctx *Context, el *style.Names) citeir.IrSum {
	idx := ctx.namesSeen
	ctx.namesSeen++
	if ctx.SuppressAuthor && idx == 0 {
		// suppressed author still counts as rendered so enclosing
		// groups survive
		return citeir.IrSum{Node: citeir.None(), GV: citeir.DidRender}
	}

	var lists []nameList
	for _, vn := range el.Variables {
		nv, ok := reference.ParseNameVar(vn)
		if !ok || ctx.isSubstituted(vn) {
			continue
		}
		if ns := ctx.Ref.Name[nv]; len(ns) > 0 {
			lists = append(lists, nameList{v: nv, names: ns})
		}
	}

	if len(lists) == 0 {
		return substituteNames(ctx, el)
	}

	opts := ctx.nameOptions()
	if el.Name != nil {
		opts = opts.Merge(*el.Name)
	}

	makeNode := func(addNames int, fullGiven bool) (*citeir.Names, bool) {
		b, extra := buildNamesBlock(ctx, el, opts, lists, addNames, fullGiven)
		n := &citeir.Names{Current: b, AddNames: addNames, FullGiven: fullGiven}
		return n, addNames <= extra
	}
	var rerender func(addNames int, fullGiven bool) (citeir.Node, citeir.GroupVars, bool)
	rerender = func(addNames int, fullGiven bool) (citeir.Node, citeir.GroupVars, bool) {
		saved := ctx.Disamb
		ctx.Disamb.AddNames = addNames
		ctx.Disamb.FullGiven = fullGiven
		n, ok := makeNode(addNames, fullGiven)
		ctx.Disamb = saved
		n.Rerender = rerender
		return n, citeir.DidRender, ok
	}

	node, _ := makeNode(ctx.Disamb.AddNames, ctx.Disamb.FullGiven)
	node.Rerender = rerender
	return citeir.IrSum{Node: node, GV: citeir.DidRender}
}

// substituteNames walks the substitute list until an element renders.
// Variables consumed by the winning element are muted for the rest of
// the cite.
func substituteNames(ctx *Context, el *style.Names) citeir.IrSum {
	for _, sub := range el.Substitute {
		sum := Element(ctx, sub)
		if sum.GV != citeir.DidRender {
			continue
		}
		switch t := sub.(type) {
		case *style.Text:
			switch t.Source.Kind {
			case style.SourceValue, style.SourceTerm, style.SourceMacro:
			default:
				ctx.markSubstituted(t.Source.Name)
			}
		case *style.Names:
			for _, vn := range t.Variables {
				ctx.markSubstituted(vn)
			}
		case *style.Date:
			ctx.markSubstituted(t.Variable)
		}
		dec := decoration{
			Formatting: el.Formatting,
			Affixes:    el.Affixes,
			Display:    el.Display,
		}
		return dec.wrap(ctx, sum)
	}
	return citeir.IrSum{Node: citeir.None(), GV: citeir.OnlyEmpty}
}

// buildNamesBlock renders every variable list and joins them with the
// names delimiter. extra is how many names beyond the base et-al
// truncation remain available across all lists.
func buildNamesBlock(ctx *Context, el *style.Names, opts style.NameOptions, lists []nameList, addNames int, fullGiven bool) (format.Build, int) {
	form := style.NameLong
	if opts.Form != nil {
		form = *opts.Form
	}

	etAlMin, etAlUseFirst := etAlConfig(opts, ctx.Position.Position)
	if k := ctx.sortKey; k != nil {
		if k.NamesMin != nil {
			etAlMin = *k.NamesMin
		}
		if k.NamesUseFirst != nil {
			etAlUseFirst = *k.NamesUseFirst
		}
		if k.NamesUseLast != nil {
			opts.EtAlUseLast = k.NamesUseLast
		}
	}

	if form == style.NameCount {
		total := 0
		for _, l := range lists {
			shown, _, _ := truncation(len(l.names), etAlMin, etAlUseFirst, addNames)
			total += shown
		}
		dec := decoration{
			Formatting: el.Formatting,
			Affixes:    el.Affixes,
			Display:    el.Display,
		}
		return dec.apply(ctx, format.Plain(strconv.Itoa(total))), 0
	}

	delim := nameDelim(opts)
	extra := 0
	parts := make([]format.Build, 0, len(lists))
	for _, l := range lists {
		shown, etAl, avail := truncation(len(l.names), etAlMin, etAlUseFirst, addNames)
		if avail > extra {
			extra = avail
		}
		lb := buildNameList(ctx, opts, form, l.names, shown, etAl, delim, el.EtAl, fullGiven)
		if format.IsEmpty(lb) {
			continue
		}
		if el.Label != nil {
			lb = attachRoleLabel(ctx, el.Label, l, lb)
		}
		parts = append(parts, lb)
	}
	if len(parts) == 0 {
		return nil, extra
	}

	b := format.GroupNode(parts, namesDelim(ctx, el, delim), nil)
	dec := decoration{
		Formatting: el.Formatting,
		Affixes:    el.Affixes,
		Display:    el.Display,
	}
	return dec.apply(ctx, b), extra
}

// truncation decides how many names show. avail is the number of names
// a disambiguation expansion could still reveal.
func truncation(total int, etAlMin, etAlUseFirst uint32, addNames int) (shown int, etAl bool, avail int) {
	if etAlMin == 0 || total < int(etAlMin) {
		return total, false, 0
	}
	base := int(etAlUseFirst)
	shown = base + addNames
	if shown >= total {
		return total, false, total - base
	}
	return shown, true, total - base
}

// etAlConfig resolves the effective truncation thresholds, preferring
// the subsequent variants after the first sighting. Zero min means no
// truncation.
func etAlConfig(opts style.NameOptions, pos citation.Position) (uint32, uint32) {
	if !opts.EnableEtAl() {
		return 0, 0
	}
	min, useFirst := *opts.EtAlMin, *opts.EtAlUseFirst
	if pos.Matches(citation.PosSubsequent) {
		if opts.EtAlSubsequentMin != nil {
			min = *opts.EtAlSubsequentMin
		}
		if opts.EtAlSubsequentUseFirst != nil {
			useFirst = *opts.EtAlSubsequentUseFirst
		}
	}
	return min, useFirst
}

func nameDelim(opts style.NameOptions) string {
	if opts.Delimiter != nil {
		return *opts.Delimiter
	}
	return ", "
}

// namesDelim is the separator between variable lists inside one
// cs:names.
func namesDelim(ctx *Context, el *style.Names, fallback string) string {
	if el.Delimiter != nil {
		return *el.Delimiter
	}
	if d := ctx.namesDelimiter(); d != nil {
		return *d
	}
	return fallback
}

// buildNameList renders one variable's names: truncation, the and term,
// delimiter-precedes rules and the et-al tail.
func buildNameList(ctx *Context, opts style.NameOptions, form style.NameForm, names []reference.Name, shown int, etAl bool, delim string, etAlEl *style.EtAl, fullGiven bool) format.Build {
	rendered := make([]format.Build, 0, shown)
	inverted := make([]bool, 0, shown)
	for i := 0; i < shown; i++ {
		b, inv := formatOneName(ctx, names[i], opts, form, i, fullGiven)
		rendered = append(rendered, b)
		inverted = append(inverted, inv)
	}

	if etAl {
		b := format.GroupNode(rendered, delim, nil)
		if opts.EtAlUseLast != nil && *opts.EtAlUseLast && len(names)-shown >= 2 {
			last, _ := formatOneName(ctx, names[len(names)-1], opts, form, len(names)-1, fullGiven)
			return format.JoinDelim(b, delim+"… ", last)
		}
		tail := etAlTerm(ctx, etAlEl)
		if format.IsEmpty(tail) {
			return b
		}
		sep := precedesSep(opts.DelimiterPrecedesEtAl, delim, shown, lastOf(inverted))
		return format.JoinDelim(b, sep, tail)
	}

	if shown >= 2 {
		if and := andTerm(ctx, opts); and != "" {
			head := format.GroupNode(rendered[:shown-1], delim, nil)
			sep := precedesSep(opts.DelimiterPrecedesLast, delim, shown-1, inverted[shown-2])
			connector := sep + and + " "
			if !strings.HasSuffix(sep, " ") {
				connector = sep + " " + and + " "
			}
			return format.JoinDelim(head, connector, rendered[shown-1])
		}
	}
	return format.GroupNode(rendered, delim, nil)
}

func lastOf(bs []bool) bool {
	if len(bs) == 0 {
		return false
	}
	return bs[len(bs)-1]
}

// precedesSep picks the separator a delimiter-precedes rule asks for.
// before is how many names sit before the joint; prevInverted is
// whether the name right before it rendered in sort order.
func precedesSep(rule *style.DelimiterPrecedes, delim string, before int, prevInverted bool) string {
	r := style.PrecedesContextual
	if rule != nil {
		r = *rule
	}
	switch r {
	case style.PrecedesAlways:
		return delim
	case style.PrecedesNever:
		return " "
	case style.PrecedesAfterInvertedName:
		if prevInverted {
			return delim
		}
		return " "
	default:
		if before >= 2 {
			return delim
		}
		return " "
	}
}

func andTerm(ctx *Context, opts style.NameOptions) string {
	if opts.And == nil {
		return ""
	}
	if *opts.And == style.AndSymbol {
		return "&"
	}
	if s, ok := ctx.Locale.SimpleTerm("and", locale.FormLong, false); ok && s != "" {
		return s
	}
	return "and"
}

func etAlTerm(ctx *Context, el *style.EtAl) format.Build {
	name := "et-al"
	var f *format.Formatting
	if el != nil {
		if el.Term != "" {
			name = el.Term
		}
		f = el.Formatting
	}
	s, ok := ctx.Locale.SimpleTerm(name, locale.FormLong, false)
	if !ok {
		s = "et al."
	}
	if s == "" {
		return nil
	}
	return format.TextNode(s, f)
}

// formatOneName renders a single name. inverted reports whether it came
// out family-first, which the after-inverted-name delimiter rules need.
func formatOneName(ctx *Context, n reference.Name, opts style.NameOptions, form style.NameForm, index int, fullGiven bool) (format.Build, bool) {
	if n.IsLiteral() {
		return nameWrap(opts, format.Plain(n.Literal)), false
	}

	latin := n.IsLatinCyrillic()
	if !latin {
		// no inversion or initialization outside latin/cyrillic script
		var b format.Build
		if form == style.NameShort || n.Given == "" {
			b = format.Plain(n.Family)
		} else {
			b = format.Seq(format.Plain(n.Family), format.Plain(n.Given))
		}
		return nameWrap(opts, b), false
	}

	family := namePart(n.Family, opts.NamePartFamily)

	if form == style.NameShort {
		b := spaceJoin(plainIf(n.NonDroppingParticle), family)
		return nameWrap(opts, b), false
	}

	given := n.Given
	if given != "" && opts.InitializeWith != nil {
		init := opts.Initialize == nil || *opts.Initialize
		given = InitializeGiven(given, *opts.InitializeWith, init && !fullGiven, ctx.Style.InitializeWithHyphen)
	}
	givenB := namePart(given, opts.NamePartGiven)

	invert := ctx.sorting
	if !invert && opts.NameAsSortOrder != nil {
		switch *opts.NameAsSortOrder {
		case style.SortOrderAll:
			invert = true
		case style.SortOrderFirst:
			invert = index == 0
		}
	}

	if !invert {
		b := spaceJoin(givenB, plainIf(n.DroppingParticle), plainIf(n.NonDroppingParticle), family)
		if n.Suffix != "" {
			b = spaceJoin(b, format.Plain(n.Suffix))
		}
		return nameWrap(opts, b), false
	}

	sortSep := ", "
	if opts.SortSeparator != nil {
		sortSep = *opts.SortSeparator
	}
	demoted := ctx.Style.DemoteNonDroppingParticle == style.DemoteDisplayAndSort ||
		(ctx.sorting && ctx.Style.DemoteNonDroppingParticle == style.DemoteSortOnly)
	var famSide, givSide format.Build
	if demoted {
		famSide = family
		givSide = spaceJoin(givenB, plainIf(n.DroppingParticle), plainIf(n.NonDroppingParticle))
	} else {
		famSide = spaceJoin(plainIf(n.NonDroppingParticle), family)
		givSide = spaceJoin(givenB, plainIf(n.DroppingParticle))
	}
	b := famSide
	if !format.IsEmpty(givSide) {
		b = format.JoinDelim(b, sortSep, givSide)
	}
	if n.Suffix != "" {
		b = format.JoinDelim(b, sortSep, format.Plain(n.Suffix))
	}
	return nameWrap(opts, b), true
}

// nameWrap applies the per-name formatting and affixes from cs:name.
func nameWrap(opts style.NameOptions, b format.Build) format.Build {
	if format.IsEmpty(b) {
		return nil
	}
	b = format.WithFormat(b, opts.Formatting)
	return format.Affixed(b, opts.Affixes)
}

// namePart applies a cs:name-part's formatting to one part.
func namePart(s string, p *style.NamePart) format.Build {
	if s == "" {
		return nil
	}
	b := format.Plain(s)
	if p == nil {
		return b
	}
	b = format.ApplyTextCase(b, p.TextCase)
	b = format.WithFormat(b, p.Formatting)
	return format.Affixed(b, p.Affixes)
}

func plainIf(s string) format.Build {
	if s == "" {
		return nil
	}
	return format.Plain(s)
}

func spaceJoin(parts ...format.Build) format.Build {
	kept := parts[:0:0]
	for _, p := range parts {
		if !format.IsEmpty(p) {
			kept = append(kept, p)
		}
	}
	if len(kept) == 0 {
		return nil
	}
	return format.GroupNode(kept, " ", nil)
}

// attachRoleLabel renders the role term for one variable list and glues
// it before or after the names.
func attachRoleLabel(ctx *Context, l *style.NamesLabel, list nameList, names format.Build) format.Build {
	plural := false
	switch l.Plural {
	case style.PluralAlways:
		plural = true
	case style.PluralNever:
	default:
		plural = len(list.names) > 1
	}
	s, ok := ctx.Locale.SimpleTerm(string(list.v), l.Form, plural)
	if !ok || s == "" {
		return names
	}
	if l.StripPeriods {
		s = strings.ReplaceAll(s, ".", "")
	}
	lb := format.ApplyTextCase(format.Plain(s), l.TextCase)
	lb = format.WithFormat(lb, l.Formatting)
	lb = format.Affixed(lb, l.Affixes)
	if l.AfterName {
		return format.Seq(names, lb)
	}
	return format.Seq(lb, names)
}
