package format

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// PlainText renders with all formatting stripped; quotes and affixes are
// kept.
type PlainText struct{}

// Name implements Format.
func (PlainText) Name() string { return "plain" }

// Output implements Format.
func (PlainText) Output(b Build, punctInQuote bool) string {
	var sb strings.Builder
	plainWalk(b, &sb)
	out := sb.String()
	if punctInQuote {
		out = movePunctInsideQuotes(out,
			DefaultQuotes.OuterClose, DefaultQuotes.InnerClose, "\"", "'")
	}
	return out
}

func plainWalk(b Build, sb *strings.Builder) {
	switch n := b.(type) {
	case nil:
	case Text:
		sb.WriteString(n.Text)
	case NoCase:
		plainChildren(n.Children, "", sb)
	case NoDecor:
		plainChildren(n.Children, "", sb)
	case Formatted:
		plainChildren(n.Children, "", sb)
	case Quoted:
		open, close := n.Quotes.OuterOpen, n.Quotes.OuterClose
		if n.Inner {
			open, close = n.Quotes.InnerOpen, n.Quotes.InnerClose
		}
		sb.WriteString(open)
		plainChildren(n.Children, "", sb)
		sb.WriteString(close)
	case Group:
		plainChildren(n.Children, n.Delim, sb)
	case Display:
		plainChildren(n.Children, "", sb)
	case Linked:
		plainChildren(n.Children, "", sb)
	}
}

func plainChildren(children []Build, delim string, sb *strings.Builder) {
	first := true
	for _, c := range children {
		if IsEmpty(c) {
			continue
		}
		if !first && delim != "" {
			sb.WriteString(delim)
		}
		first = false
		plainWalk(c, sb)
	}
}

// SortString renders a normalized key for sort comparisons: markup and
// quotes stripped, commas dropped, accents folded, lowercased.
type SortString struct{}

// Name implements Format.
func (SortString) Name() string { return "sort" }

// Output implements Format. punctInQuote is ignored; sort keys carry no
// quotes at all.
func (SortString) Output(b Build, _ bool) string {
	raw := RawText(b)
	decomposed := norm.NFKD.String(raw)
	var sb strings.Builder
	for _, r := range decomposed {
		switch {
		case unicode.Is(unicode.Mn, r):
		case r == ',' || r == '"' || r == '\'' ||
			r == '“' || r == '”' || r == '‘' || r == '’':
		default:
			sb.WriteRune(unicode.ToLower(r))
		}
	}
	return strings.TrimSpace(sb.String())
}
