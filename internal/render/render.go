package render

import (
	"strings"

	"github.com/quillabs/citare/internal/citeir"
	"github.com/quillabs/citare/internal/format"
	"github.com/quillabs/citare/internal/locale"
	"github.com/quillabs/citare/internal/numbers"
	"github.com/quillabs/citare/internal/reference"
	"github.com/quillabs/citare/internal/style"
)

// Cite renders one cite through a layout. The layout's own formatting
// and affixes belong to the cluster, not the cite, so they are not
// applied here.
func Cite(ctx *Context, layout style.Layout) citeir.IrSum {
	return Elements(ctx, layout.Elements, "")
}

// Elements folds a list of elements through the sequencing monoid.
func Elements(ctx *Context, els []style.Element, delim string) citeir.IrSum {
	children := make([]citeir.IrSum, 0, len(els))
	for _, el := range els {
		children = append(children, Element(ctx, el))
	}
	return citeir.Fold(children, delim)
}

// Element renders a single element.
func Element(ctx *Context, el style.Element) citeir.IrSum {
	switch t := el.(type) {
	case *style.Text:
		return renderText(ctx, t)
	case *style.Label:
		return renderLabel(ctx, t)
	case *style.Number:
		return renderNumber(ctx, t)
	case *style.Group:
		return renderGroup(ctx, t)
	case *style.Names:
		return renderNames(ctx, t)
	case *style.Date:
		return renderDate(ctx, t)
	case *style.Choose:
		return renderChoose(ctx, t)
	}
	return citeir.Zero()
}

// decoration is the shared set of presentation attributes on leaf
// elements.
type decoration struct {
	Formatting *format.Formatting
	Affixes    format.Affixes
	Quotes     bool
	TextCase   format.TextCase
	Display    format.DisplayMode
}

// apply wraps a terminal build: case, format, quotes, affixes, display,
// innermost first.
func (d decoration) apply(ctx *Context, b format.Build) format.Build {
	if format.IsEmpty(b) {
		return nil
	}
	b = format.ApplyTextCase(b, d.TextCase)
	b = format.WithFormat(b, d.Formatting)
	if d.Quotes {
		b = format.QuotedNode(b, ctx.Locale.Quotes())
	}
	b = format.Affixed(b, d.Affixes)
	if ctx.InBib {
		b = format.WithDisplay(b, d.Display, true)
	}
	return b
}

// wrap decorates a sum that may still hold expandable nodes. Terminals
// get the build-level treatment; anything else becomes a decorated Seq
// so later passes can still reach inside.
func (d decoration) wrap(ctx *Context, sum citeir.IrSum) citeir.IrSum {
	if citeir.IsNone(sum.Node) {
		return sum
	}
	if r, ok := sum.Node.(*citeir.Rendered); ok {
		return citeir.IrSum{Node: &citeir.Rendered{Build: d.apply(ctx, r.Build)}, GV: sum.GV}
	}
	seq := &citeir.Seq{
		Contents:   []citeir.Node{sum.Node},
		Formatting: d.Formatting,
		Affixes:    d.Affixes,
		Display:    d.Display,
	}
	if d.Quotes {
		q := ctx.Locale.Quotes()
		seq.Quotes = &q
	}
	return citeir.IrSum{Node: seq, GV: sum.GV}
}

func renderText(ctx *Context, t *style.Text) citeir.IrSum {
	dec := decoration{
		Formatting: t.Formatting,
		Affixes:    t.Affixes,
		Quotes:     t.Quotes,
		TextCase:   t.TextCase,
		Display:    t.Display,
	}
	switch t.Source.Kind {
	case style.SourceValue:
		b := format.Ingest(t.Source.Value, format.IngestOptions{Quotes: ctx.Locale.Quotes()})
		return citeir.IrSum{
			Node: &citeir.Rendered{Build: dec.apply(ctx, b)},
			GV:   citeir.NoneSeen,
		}

	case style.SourceTerm:
		s, ok := ctx.Locale.SimpleTerm(t.Source.Name, t.Source.Form, t.Source.Plural)
		if !ok || s == "" {
			return citeir.Zero()
		}
		if t.StripPeriods {
			s = strings.ReplaceAll(s, ".", "")
		}
		return citeir.IrSum{
			Node: &citeir.Rendered{Build: dec.apply(ctx, format.Plain(s))},
			GV:   citeir.NoneSeen,
		}

	case style.SourceMacro:
		inner := Elements(ctx, ctx.Style.Macros[t.Source.Name], "")
		return dec.wrap(ctx, inner)

	default:
		return renderTextVariable(ctx, t, dec)
	}
}

func renderTextVariable(ctx *Context, t *style.Text, dec decoration) citeir.IrSum {
	name := t.Source.Name

	if name == "year-suffix" {
		return yearSuffixSlot(ctx, dec)
	}
	if ctx.isSubstituted(name) {
		return citeir.IrSum{Node: citeir.None(), GV: citeir.OnlyEmpty}
	}

	if s, ok := ctx.ordinary(name, t.Source.Form); ok {
		if t.StripPeriods {
			s = strings.ReplaceAll(s, ".", "")
		}
		b := format.Ingest(s, format.IngestOptions{Quotes: ctx.Locale.Quotes()})
		b = dec.apply(ctx, b)
		if ctx.FormatOpts.LinkAnchors {
			if target := format.LinkTarget(name, s); target != "" {
				b = format.Hyperlinked(b, target)
			}
		}
		return citeir.IrSum{Node: &citeir.Rendered{Build: b}, GV: citeir.DidRender}
	}
	if _, isOrdinary := reference.ParseOrdinaryVar(name); isOrdinary {
		return citeir.IrSum{Node: citeir.None(), GV: citeir.OnlyEmpty}
	}

	// number variables rendered through cs:text keep their verbatim form
	if v, ok := ctx.numberValue(name); ok {
		return citeir.IrSum{
			Node: &citeir.Rendered{Build: dec.apply(ctx, format.Plain(v.Verbatim))},
			GV:   citeir.DidRender,
		}
	}
	if _, isNumber := reference.ParseNumberVar(name); isNumber || name == "locator" {
		return citeir.IrSum{Node: citeir.None(), GV: citeir.OnlyEmpty}
	}

	ctx.logger().Debug("unknown text variable", "variable", name)
	return citeir.Zero()
}

// yearSuffixSlot is the explicit year-suffix variable: a slot filled in
// by disambiguation, invisible until a suffix is assigned.
func yearSuffixSlot(ctx *Context, dec decoration) citeir.IrSum {
	renderFn := func(suffix uint32) format.Build {
		if suffix == 0 {
			return nil
		}
		return dec.apply(ctx, format.Plain(numbers.ToBijectiveBase26(suffix)))
	}
	return citeir.IrSum{
		Node: &citeir.YearSuffix{
			Current: renderFn(ctx.YearSuffix),
			Suffix:  ctx.YearSuffix,
			Render:  renderFn,
		},
		GV: citeir.NoneSeen,
	}
}

func renderLabel(ctx *Context, l *style.Label) citeir.IrSum {
	v, ok := ctx.numberValue(l.Variable)
	if !ok {
		return citeir.Zero()
	}
	plural := false
	switch l.Plural {
	case style.PluralAlways:
		plural = true
	case style.PluralNever:
	default:
		plural = v.IsMultiple(isQuantityVar(l.Variable))
	}

	term := l.Variable
	if term == "locator" {
		if len(ctx.Cite.Locators) > 0 {
			term = ctx.Cite.Locators[0].Type
		} else {
			term = "page"
		}
	}
	s, found := ctx.Locale.SimpleTerm(term, l.Form, plural)
	if !found {
		if g, ok := ctx.Locale.GenderedTerm(term, l.Form); ok {
			s = g.Value.Get(plural)
			found = true
		}
	}
	if !found || s == "" {
		return citeir.Zero()
	}
	if l.StripPeriods {
		s = strings.ReplaceAll(s, ".", "")
	}
	dec := decoration{
		Formatting: l.Formatting,
		Affixes:    l.Affixes,
		TextCase:   l.TextCase,
	}
	return citeir.IrSum{
		Node: &citeir.Rendered{Build: dec.apply(ctx, format.Plain(s))},
		GV:   citeir.NoneSeen,
	}
}

func renderNumber(ctx *Context, n *style.Number) citeir.IrSum {
	v, ok := ctx.numberValue(n.Variable)
	if !ok {
		if _, isNumber := reference.ParseNumberVar(n.Variable); isNumber || n.Variable == "locator" {
			return citeir.IrSum{Node: citeir.None(), GV: citeir.OnlyEmpty}
		}
		return citeir.Zero()
	}
	gender := ctx.Locale.TermGender(n.Variable)
	s := formatNumeric(ctx, v, n.Form, gender, ctx.Style.PageRangeFormat != nil && n.Variable == "page")
	if s == "" {
		return citeir.IrSum{Node: citeir.None(), GV: citeir.OnlyEmpty}
	}
	dec := decoration{
		Formatting: n.Formatting,
		Affixes:    n.Affixes,
		TextCase:   n.TextCase,
		Display:    n.Display,
	}
	return citeir.IrSum{
		Node: &citeir.Rendered{Build: dec.apply(ctx, format.Plain(s))},
		GV:   citeir.DidRender,
	}
}

// formatNumeric walks the token sequence, applying the requested form
// to each number and tightening page ranges when the style asks.
func formatNumeric(ctx *Context, v numbers.NumericValue, form style.NumericForm, gender locale.Gender, pageRange bool) string {
	if !v.Numeric {
		return v.Verbatim
	}
	var sb strings.Builder
	toks := v.Tokens
	for i := 0; i < len(toks); i++ {
		t := toks[i]
		switch t.Kind {
		case numbers.TokenNum, numbers.TokenRoman, numbers.TokenAffixed:
			// page-range truncation applies to plain ranges of numbers
			if pageRange && t.Kind == numbers.TokenNum &&
				i+2 < len(toks) &&
				toks[i+1].Kind == numbers.TokenHyphen &&
				toks[i+2].Kind == numbers.TokenNum {
				second := numbers.TruncateRange(*ctx.Style.PageRangeFormat, t.Num, toks[i+2].Num)
				sb.WriteString(formatOneNumber(ctx, t, form, gender))
				sb.WriteString("–")
				sb.WriteString(formatOneNumber(ctx, numbers.Token{Kind: numbers.TokenNum, Num: second}, form, gender))
				i += 2
				continue
			}
			sb.WriteString(formatOneNumber(ctx, t, form, gender))
		case numbers.TokenComma:
			sb.WriteString(", ")
		case numbers.TokenHyphen:
			sb.WriteString("–")
		case numbers.TokenAmpersand:
			sb.WriteString(" & ")
		case numbers.TokenAnd:
			and, _ := ctx.Locale.SimpleTerm("and", locale.FormLong, false)
			sb.WriteString(" " + and + " ")
		case numbers.TokenCommaAnd:
			and, _ := ctx.Locale.SimpleTerm("and", locale.FormLong, false)
			sb.WriteString(", " + and + " ")
		case numbers.TokenStr:
			sb.WriteString(t.Text)
		}
	}
	return sb.String()
}

func formatOneNumber(ctx *Context, t numbers.Token, form style.NumericForm, gender locale.Gender) string {
	n, _ := t.Value()
	var core string
	switch form {
	case style.FormOrdinal:
		if suffix, ok := ctx.Locale.OrdinalSuffix(n, gender); ok {
			core = numbers.Num(n).Verbatim + suffix
		} else {
			core = numbers.Num(n).Verbatim
		}
	case style.FormLongOrdinal:
		if s, ok := ctx.Locale.LongOrdinal(n, gender); ok {
			core = s
		} else if suffix, ok := ctx.Locale.OrdinalSuffix(n, gender); ok {
			core = numbers.Num(n).Verbatim + suffix
		} else {
			core = numbers.Num(n).Verbatim
		}
	case style.FormRoman:
		if r, ok := numbers.ToRoman(n); ok {
			core = r
		} else {
			core = numbers.Num(n).Verbatim
		}
	default:
		if t.Kind == numbers.TokenRoman {
			r, _ := numbers.ToRoman(n)
			if t.Upper {
				r = strings.ToUpper(r)
			}
			return r
		}
		core = numbers.Num(n).Verbatim
	}
	if t.Kind == numbers.TokenAffixed {
		return t.Prefix + core + t.Suffix
	}
	return core
}

func renderGroup(ctx *Context, g *style.Group) citeir.IrSum {
	sum := Elements(ctx, g.Elements, g.Delimiter)
	if sum.GV.Suppresses() {
		return citeir.IrSum{Node: citeir.None(), GV: citeir.OnlyEmpty}
	}
	dec := decoration{
		Formatting: g.Formatting,
		Affixes:    g.Affixes,
		Display:    g.Display,
	}
	return dec.wrap(ctx, sum)
}

func renderChoose(ctx *Context, c *style.Choose) citeir.IrSum {
	disambSensitive := c.If.Cond.IsDisambiguate()
	for _, branch := range c.ElseIf {
		disambSensitive = disambSensitive || branch.Cond.IsDisambiguate()
	}

	evaluate := func(disamb bool) citeir.IrSum {
		saved := ctx.Disamb.Condition
		ctx.Disamb.Condition = disamb
		defer func() { ctx.Disamb.Condition = saved }()

		if ctx.evalConditions(c.If.Cond) {
			return Elements(ctx, c.If.Elements, "")
		}
		for _, branch := range c.ElseIf {
			if ctx.evalConditions(branch.Cond) {
				return Elements(ctx, branch.Elements, "")
			}
		}
		return Elements(ctx, c.Else, "")
	}

	sum := evaluate(ctx.Disamb.Condition)
	if !disambSensitive {
		return sum
	}
	node := &citeir.ConditionalDisamb{
		Inner: sum.Node,
		Rerender: func(disamb bool) (citeir.Node, citeir.GroupVars) {
			s := evaluate(disamb)
			return s.Node, s.GV
		},
	}
	return citeir.IrSum{Node: node, GV: sum.GV}
}
