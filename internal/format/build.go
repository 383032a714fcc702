package format

import "strings"

// Build is the sealed rich-text tree. Only the node types in this package
// implement it, which keeps serializer type switches exhaustive.
type Build interface {
	buildNode()
}

// Text is a leaf of literal text.
type Text struct {
	Text string
}

// NoCase protects a span from text-case transforms (micro "nocase").
type NoCase struct {
	Children []Build
}

// NoDecor strips inherited formatting from a span (micro "nodecor").
type NoDecor struct {
	Children []Build
}

// Formatted applies inline formatting to a span.
type Formatted struct {
	Children []Build
	F        Formatting
}

// Quoted wraps a span in localized quotes.
type Quoted struct {
	Children []Build
	Quotes   QuoteChars
	Inner    bool
}

// Group sequences children with a delimiter between non-empty ones.
type Group struct {
	Children []Build
	Delim    string
}

// Display wraps a span in a bibliography display mode.
type Display struct {
	Children []Build
	Mode     DisplayMode
	InBib    bool
}

// Linked hyperlinks a span.
type Linked struct {
	Children []Build
	URL      string
}

func (Text) buildNode()      {}
func (NoCase) buildNode()    {}
func (NoDecor) buildNode()   {}
func (Formatted) buildNode() {}
func (Quoted) buildNode()    {}
func (Group) buildNode()     {}
func (Display) buildNode()   {}
func (Linked) buildNode()    {}

// Plain builds a bare text leaf.
func Plain(s string) Build {
	return Text{Text: s}
}

// TextNode builds a leaf with optional formatting.
func TextNode(s string, f *Formatting) Build {
	if f == nil || f.IsZero() {
		return Text{Text: s}
	}
	return Formatted{Children: []Build{Text{Text: s}}, F: *f}
}

// GroupNode sequences children with a delimiter and optional formatting.
func GroupNode(children []Build, delim string, f *Formatting) Build {
	g := Group{Children: children, Delim: delim}
	if f == nil || f.IsZero() {
		return g
	}
	return Formatted{Children: []Build{g}, F: *f}
}

// Seq sequences children with no delimiter.
func Seq(children ...Build) Build {
	switch len(children) {
	case 0:
		return Text{}
	case 1:
		return children[0]
	}
	return Group{Children: children}
}

// JoinDelim joins two builds with a delimiter.
func JoinDelim(a Build, delim string, b Build) Build {
	return Group{Children: []Build{a, b}, Delim: delim}
}

// QuotedNode wraps b in outer quotes.
func QuotedNode(b Build, quotes QuoteChars) Build {
	return Quoted{Children: []Build{b}, Quotes: quotes}
}

// Affixed attaches prefix/suffix text around b.
func Affixed(b Build, a Affixes) Build {
	if a.IsZero() {
		return b
	}
	children := make([]Build, 0, 3)
	if a.Prefix != "" {
		children = append(children, Text{Text: a.Prefix})
	}
	children = append(children, b)
	if a.Suffix != "" {
		children = append(children, Text{Text: a.Suffix})
	}
	return Group{Children: children}
}

// WithFormat wraps b in formatting when any attribute is set.
func WithFormat(b Build, f *Formatting) Build {
	if f == nil || f.IsZero() {
		return b
	}
	return Formatted{Children: []Build{b}, F: *f}
}

// WithDisplay wraps b in a display mode. Display is only honoured in
// bibliography context.
func WithDisplay(b Build, mode DisplayMode, inBib bool) Build {
	if mode == "" {
		return b
	}
	return Display{Children: []Build{b}, Mode: mode, InBib: inBib}
}

// Hyperlinked wraps b in a link when target is non-empty.
func Hyperlinked(b Build, target string) Build {
	if target == "" {
		return b
	}
	return Linked{Children: []Build{b}, URL: target}
}

// AppendSuffix attaches trailing text to b.
func AppendSuffix(b Build, suffix string) Build {
	if suffix == "" {
		return b
	}
	return Group{Children: []Build{b, Text{Text: suffix}}}
}

// IsEmpty reports whether b contains no text at all.
func IsEmpty(b Build) bool {
	switch n := b.(type) {
	case nil:
		return true
	case Text:
		return n.Text == ""
	case NoCase:
		return allEmpty(n.Children)
	case NoDecor:
		return allEmpty(n.Children)
	case Formatted:
		return allEmpty(n.Children)
	case Quoted:
		return false // quotes themselves render
	case Group:
		return allEmpty(n.Children)
	case Display:
		return allEmpty(n.Children)
	case Linked:
		return allEmpty(n.Children)
	}
	return false
}

func allEmpty(children []Build) bool {
	for _, c := range children {
		if !IsEmpty(c) {
			return false
		}
	}
	return true
}

// rawText collects the unformatted text content of b.
func rawText(b Build, sb *strings.Builder) {
	switch n := b.(type) {
	case nil:
	case Text:
		sb.WriteString(n.Text)
	case NoCase:
		rawChildren(n.Children, "", sb)
	case NoDecor:
		rawChildren(n.Children, "", sb)
	case Formatted:
		rawChildren(n.Children, "", sb)
	case Quoted:
		rawChildren(n.Children, "", sb)
	case Group:
		rawChildren(n.Children, n.Delim, sb)
	case Display:
		rawChildren(n.Children, "", sb)
	case Linked:
		rawChildren(n.Children, "", sb)
	}
}

func rawChildren(children []Build, delim string, sb *strings.Builder) {
	first := true
	for _, c := range children {
		if IsEmpty(c) {
			continue
		}
		if !first && delim != "" {
			sb.WriteString(delim)
		}
		first = false
		rawText(c, sb)
	}
}

// RawText returns the text content of b with all markup stripped.
func RawText(b Build) string {
	var sb strings.Builder
	rawText(b, &sb)
	return sb.String()
}
