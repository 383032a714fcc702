package render

import (
	"fmt"
	"strconv"

	"github.com/quillabs/citare/internal/citeir"
	"github.com/quillabs/citare/internal/format"
	"github.com/quillabs/citare/internal/locale"
	"github.com/quillabs/citare/internal/numbers"
	"github.com/quillabs/citare/internal/reference"
	"github.com/quillabs/citare/internal/style"
)

func renderDate(ctx *Context, d *style.Date) citeir.IrSum {
	dv, ok := reference.ParseDateVar(d.Variable)
	if !ok {
		return citeir.Zero()
	}
	dor, present := ctx.Ref.Date[dv]
	if !present || ctx.isSubstituted(d.Variable) {
		return citeir.IrSum{Node: citeir.None(), GV: citeir.OnlyEmpty}
	}

	dec := decoration{
		Formatting: d.Formatting,
		Affixes:    d.Affixes,
		TextCase:   d.TextCase,
		Display:    d.Display,
	}

	if dor.Kind == reference.DateLiteral {
		b := dec.apply(ctx, format.Plain(dor.Literal))
		return citeir.IrSum{Node: &citeir.Rendered{Build: b}, GV: citeir.DidRender}
	}

	parts, delim := ctx.dateParts(d)
	var b format.Build
	if dor.Kind == reference.DateRange {
		b = renderDateRange(ctx, parts, delim, dor.From, dor.To)
	} else {
		b = renderSingleDate(ctx, parts, delim, dor.From)
	}
	if format.IsEmpty(b) {
		return citeir.IrSum{Node: citeir.None(), GV: citeir.OnlyEmpty}
	}
	b = dec.apply(ctx, b)
	rendered := &citeir.Rendered{Build: b}

	// author-date styles hang the year suffix off the issued date
	if dv == reference.DateVarIssued && ctx.Style.Citation.DisambiguateAddYearSuffix {
		slot := yearSuffixSlot(ctx, decoration{})
		return citeir.Fold([]citeir.IrSum{
			{Node: rendered, GV: citeir.DidRender},
			slot,
		}, "")
	}
	return citeir.IrSum{Node: rendered, GV: citeir.DidRender}
}

// dateParts resolves which parts render: the locale's format for
// localized dates, overlaid with local date-part attributes and cut
// down by the date-parts filter; or the element's own parts.
func (ctx *Context) dateParts(d *style.Date) ([]locale.DatePart, string) {
	if d.Form == "" {
		return d.Parts, d.Delimiter
	}
	lf, ok := ctx.Locale.DateFormat(d.Form)
	if !ok {
		return d.Parts, d.Delimiter
	}
	parts := make([]locale.DatePart, 0, len(lf.Parts))
	for _, p := range lf.Parts {
		part := p
		for _, over := range d.Parts {
			if over.Name == p.Name {
				part = overlayPart(p, over)
			}
		}
		if includePart(part.Name, d.PartsFilter) {
			parts = append(parts, part)
		}
	}
	delim := lf.Delimiter
	if d.Delimiter != "" {
		delim = d.Delimiter
	}
	return parts, delim
}

func overlayPart(base, over locale.DatePart) locale.DatePart {
	out := base
	if over.Form != "" {
		out.Form = over.Form
	}
	if !over.Affixes.IsZero() {
		out.Affixes = over.Affixes
	}
	if over.Formatting != nil {
		out.Formatting = over.Formatting
	}
	if over.TextCase != "" {
		out.TextCase = over.TextCase
	}
	if over.RangeDelimiter != "" {
		out.RangeDelimiter = over.RangeDelimiter
	}
	return out
}

func includePart(name locale.DatePartName, filter style.DatePartsFilter) bool {
	switch filter {
	case style.PartsYear:
		return name == locale.PartYear
	case style.PartsYearMonth:
		return name != locale.PartDay
	default:
		return true
	}
}

func renderSingleDate(ctx *Context, parts []locale.DatePart, delim string, d reference.Date) format.Build {
	children := make([]format.Build, 0, len(parts))
	for _, p := range parts {
		b := renderDatePart(ctx, p, d)
		if !format.IsEmpty(b) {
			children = append(children, b)
		}
	}
	if len(children) == 0 {
		return nil
	}
	return format.GroupNode(children, delim, nil)
}

// renderDateRange shares the parts equal between the two endpoints: the
// differing parts render twice around the range delimiter, the shared
// tail once.
func renderDateRange(ctx *Context, parts []locale.DatePart, delim string, from, to reference.Date) format.Build {
	rangeDelim := "–"
	differs := func(name locale.DatePartName) bool {
		switch name {
		case locale.PartYear:
			return from.Year != to.Year
		case locale.PartMonth:
			return from.Month != to.Month
		default:
			return from.Day != to.Day
		}
	}
	anyDiff := false
	for _, p := range parts {
		if differs(p.Name) {
			anyDiff = true
			if p.RangeDelimiter != "" {
				rangeDelim = p.RangeDelimiter
			}
		}
	}
	if !anyDiff {
		return renderSingleDate(ctx, parts, delim, from)
	}

	var fromParts, toParts, shared []locale.DatePart
	for _, p := range parts {
		if differs(p.Name) {
			fromParts = append(fromParts, p)
			toParts = append(toParts, p)
		} else {
			shared = append(shared, p)
		}
	}
	left := renderSingleDate(ctx, fromParts, delim, from)
	right := renderSingleDate(ctx, toParts, delim, to)
	span := format.JoinDelim(left, rangeDelim, right)
	if len(shared) == 0 {
		return span
	}
	tail := renderSingleDate(ctx, shared, delim, from)
	return format.JoinDelim(span, delim, tail)
}

func renderDatePart(ctx *Context, p locale.DatePart, d reference.Date) format.Build {
	var s string
	switch p.Name {
	case locale.PartYear:
		s = yearText(ctx, d.Year)
	case locale.PartMonth:
		s = monthText(ctx, p.Form, d)
	case locale.PartDay:
		s = dayText(ctx, p.Form, d.Day)
	}
	if s == "" {
		return nil
	}
	b := format.ApplyTextCase(format.Plain(s), p.TextCase)
	b = format.WithFormat(b, p.Formatting)
	return format.Affixed(b, p.Affixes)
}

func yearText(ctx *Context, year int32) string {
	if year == 0 {
		return ""
	}
	if year < 0 {
		bc, _ := ctx.Locale.SimpleTerm("bc", locale.FormLong, false)
		return strconv.FormatInt(int64(-year), 10) + bc
	}
	if year < 1000 {
		ad, _ := ctx.Locale.SimpleTerm("ad", locale.FormLong, false)
		return strconv.FormatInt(int64(year), 10) + ad
	}
	return strconv.FormatInt(int64(year), 10)
}

func monthText(ctx *Context, form string, d reference.Date) string {
	if season, ok := d.Season(); ok {
		name := fmt.Sprintf("season-%02d", season)
		if s, ok := ctx.Locale.SimpleTerm(name, locale.FormLong, false); ok {
			return s
		}
		return ""
	}
	if d.Month == 0 || d.Month > 12 {
		return ""
	}
	switch form {
	case "numeric":
		return strconv.FormatUint(uint64(d.Month), 10)
	case "numeric-leading-zeros":
		return fmt.Sprintf("%02d", d.Month)
	}
	name := fmt.Sprintf("month-%02d", d.Month)
	tf := locale.FormLong
	if form == "short" {
		tf = locale.FormShort
	}
	if g, ok := ctx.Locale.GenderedTerm(name, tf); ok {
		return g.Value.Get(false)
	}
	return ""
}

func dayText(ctx *Context, form string, day uint32) string {
	if day == 0 || day > 31 {
		return ""
	}
	switch form {
	case "numeric-leading-zeros":
		return fmt.Sprintf("%02d", day)
	case "ordinal":
		opts := ctx.Locale.Options()
		if opts.LimitDayOrdinalsToDay1 && day != 1 {
			break
		}
		gender := ctx.Locale.TermGender("day")
		if suffix, ok := ctx.Locale.OrdinalSuffix(day, gender); ok {
			return numbers.Num(day).Verbatim + suffix
		}
	}
	return strconv.FormatUint(uint64(day), 10)
}
