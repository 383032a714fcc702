package format

import (
	"fmt"
	"strings"
)

// RTF renders Rich Text Format control words.
type RTF struct{}

// Name implements Format.
func (RTF) Name() string { return "rtf" }

// Output implements Format.
func (RTF) Output(b Build, punctInQuote bool) string {
	var sb strings.Builder
	rtfWalk(b, &sb)
	out := sb.String()
	if punctInQuote {
		out = movePunctInsideQuotes(out,
			rtfEscape(DefaultQuotes.OuterClose), rtfEscape(DefaultQuotes.InnerClose))
	}
	return out
}

func rtfWalk(b Build, sb *strings.Builder) {
	switch n := b.(type) {
	case nil:
	case Text:
		sb.WriteString(rtfEscape(n.Text))
	case NoCase:
		rtfChildren(n.Children, "", sb)
	case NoDecor:
		rtfChildren(n.Children, "", sb)
	case Formatted:
		open, closing := rtfGroups(n.F)
		sb.WriteString(open)
		rtfChildren(n.Children, "", sb)
		sb.WriteString(closing)
	case Quoted:
		open, closing := n.Quotes.OuterOpen, n.Quotes.OuterClose
		if n.Inner {
			open, closing = n.Quotes.InnerOpen, n.Quotes.InnerClose
		}
		sb.WriteString(rtfEscape(open))
		rtfChildren(n.Children, "", sb)
		sb.WriteString(rtfEscape(closing))
	case Group:
		rtfChildren(n.Children, rtfEscape(n.Delim), sb)
	case Display:
		rtfChildren(n.Children, "", sb)
	case Linked:
		sb.WriteString(`{\field{\*\fldinst HYPERLINK "` + n.URL + `"}{\fldrslt `)
		rtfChildren(n.Children, "", sb)
		sb.WriteString("}}")
	}
}

func rtfChildren(children []Build, delim string, sb *strings.Builder) {
	first := true
	for _, c := range children {
		if IsEmpty(c) {
			continue
		}
		if !first && delim != "" {
			sb.WriteString(delim)
		}
		first = false
		rtfWalk(c, sb)
	}
}

func rtfGroups(f Formatting) (string, string) {
	var open strings.Builder
	groups := 0
	push := func(cmd string) {
		open.WriteString("{" + cmd + " ")
		groups++
	}
	if f.FontStyle == StyleItalic || f.FontStyle == StyleOblique {
		push(`\i`)
	}
	if f.FontWeight == WeightBold {
		push(`\b`)
	}
	if f.FontVariant == VariantSmallCaps {
		push(`\scaps`)
	}
	if f.TextDecoration == DecorationUnderline {
		push(`\ul`)
	}
	switch f.VerticalAlign {
	case AlignSuper:
		push(`\super`)
	case AlignSub:
		push(`\sub`)
	}
	return open.String(), strings.Repeat("}", groups)
}

// rtfEscape escapes RTF control characters and encodes non-ASCII runes
// as \uN with a '?' fallback.
func rtfEscape(s string) string {
	var sb strings.Builder
	for _, r := range s {
		switch {
		case r == '\\' || r == '{' || r == '}':
			sb.WriteByte('\\')
			sb.WriteRune(r)
		case r < 0x80:
			sb.WriteRune(r)
		default:
			// RTF \u takes a signed 16-bit value
			sb.WriteString(fmt.Sprintf(`\uc0\u%d `, int16(r)))
		}
	}
	return sb.String()
}
