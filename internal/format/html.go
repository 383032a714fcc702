package format

import (
	"html"
	"strings"
)

// HTML renders markup as the conventional citeproc HTML subset.
type HTML struct{}

// Name implements Format.
func (HTML) Name() string { return "html" }

// Output implements Format.
func (HTML) Output(b Build, punctInQuote bool) string {
	var sb strings.Builder
	htmlWalk(b, &sb)
	out := sb.String()
	if punctInQuote {
		out = movePunctInsideQuotes(out,
			DefaultQuotes.OuterClose, DefaultQuotes.InnerClose)
	}
	return out
}

func htmlWalk(b Build, sb *strings.Builder) {
	switch n := b.(type) {
	case nil:
	case Text:
		sb.WriteString(html.EscapeString(n.Text))
	case NoCase:
		htmlChildren(n.Children, "", sb)
	case NoDecor:
		htmlChildren(n.Children, "", sb)
	case Formatted:
		open, closing := htmlTags(n.F)
		sb.WriteString(open)
		htmlChildren(n.Children, "", sb)
		sb.WriteString(closing)
	case Quoted:
		open, closing := n.Quotes.OuterOpen, n.Quotes.OuterClose
		if n.Inner {
			open, closing = n.Quotes.InnerOpen, n.Quotes.InnerClose
		}
		sb.WriteString(open)
		htmlChildren(n.Children, "", sb)
		sb.WriteString(closing)
	case Group:
		htmlChildren(n.Children, html.EscapeString(n.Delim), sb)
	case Display:
		if n.InBib {
			sb.WriteString(`<div class="csl-` + string(n.Mode) + `">`)
			htmlChildren(n.Children, "", sb)
			sb.WriteString("</div>")
		} else {
			htmlChildren(n.Children, "", sb)
		}
	case Linked:
		sb.WriteString(`<a href="` + html.EscapeString(n.URL) + `">`)
		htmlChildren(n.Children, "", sb)
		sb.WriteString("</a>")
	}
}

func htmlChildren(children []Build, delim string, sb *strings.Builder) {
	first := true
	for _, c := range children {
		if IsEmpty(c) {
			continue
		}
		if !first && delim != "" {
			sb.WriteString(delim)
		}
		first = false
		htmlWalk(c, sb)
	}
}

// htmlTags maps formatting attributes to open/close tag strings. Nested
// attributes emit nested tags, innermost last.
func htmlTags(f Formatting) (string, string) {
	var open, closing strings.Builder
	var closers []string
	push := func(o, c string) {
		open.WriteString(o)
		closers = append(closers, c)
	}
	if f.FontStyle == StyleItalic || f.FontStyle == StyleOblique {
		push("<i>", "</i>")
	}
	if f.FontWeight == WeightBold {
		push("<b>", "</b>")
	}
	if f.FontVariant == VariantSmallCaps {
		push(`<span style="font-variant:small-caps;">`, "</span>")
	}
	if f.TextDecoration == DecorationUnderline {
		push(`<span style="text-decoration:underline;">`, "</span>")
	}
	switch f.VerticalAlign {
	case AlignSuper:
		push("<sup>", "</sup>")
	case AlignSub:
		push("<sub>", "</sub>")
	}
	for i := len(closers) - 1; i >= 0; i-- {
		closing.WriteString(closers[i])
	}
	return open.String(), closing.String()
}
