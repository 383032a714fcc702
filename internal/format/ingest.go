package format

import "strings"

// IngestOptions controls micro-HTML ingestion of field content.
type IngestOptions struct {
	// NoParse disables tag recognition; the text becomes a single leaf.
	NoParse bool
	// Quotes are used for <q> tags in field content.
	Quotes QuoteChars
}

// Ingest parses the micro-HTML subset allowed inside reference fields:
// <i>, <b>, <sup>, <sub>, <sc>, <q>, <span class="nocase">,
// <span style="font-variant:small-caps;"> and <span class="nodecor">.
// Unrecognized or unbalanced markup is kept as literal text.
func Ingest(text string, opts IngestOptions) Build {
	if opts.NoParse || !strings.Contains(text, "<") {
		return Text{Text: text}
	}
	p := &microParser{src: text, quotes: opts.Quotes}
	if p.quotes == (QuoteChars{}) {
		p.quotes = DefaultQuotes
	}
	children := p.parseSeq("")
	return Seq(children...)
}

type microParser struct {
	src    string
	pos    int
	quotes QuoteChars
}

// parseSeq parses until the matching close tag (or end of input). An
// unmatched close tag for a different element is treated as text.
func (p *microParser) parseSeq(closeTag string) []Build {
	var out []Build
	var text strings.Builder
	flush := func() {
		if text.Len() > 0 {
			out = append(out, Text{Text: text.String()})
			text.Reset()
		}
	}
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		if c != '<' {
			text.WriteByte(c)
			p.pos++
			continue
		}
		if closeTag != "" && p.tryClose(closeTag) {
			flush()
			return out
		}
		node, ok := p.tryOpen()
		if !ok {
			text.WriteByte('<')
			p.pos++
			continue
		}
		flush()
		out = append(out, node)
	}
	flush()
	return out
}

func (p *microParser) tryClose(tag string) bool {
	want := "</" + tag + ">"
	if strings.HasPrefix(p.src[p.pos:], want) {
		p.pos += len(want)
		return true
	}
	return false
}

func (p *microParser) tryOpen() (Build, bool) {
	rest := p.src[p.pos:]
	end := strings.IndexByte(rest, '>')
	if end < 0 || !strings.HasPrefix(rest, "<") || strings.HasPrefix(rest, "</") {
		return nil, false
	}
	tag := rest[1:end]
	mark := p.pos
	p.pos += end + 1

	wrap := func(name string, make func([]Build) Build) (Build, bool) {
		children := p.parseSeq(name)
		return make(children), true
	}
	switch tag {
	case "i":
		return wrap("i", func(c []Build) Build {
			return Formatted{Children: c, F: Formatting{FontStyle: StyleItalic}}
		})
	case "b":
		return wrap("b", func(c []Build) Build {
			return Formatted{Children: c, F: Formatting{FontWeight: WeightBold}}
		})
	case "sup":
		return wrap("sup", func(c []Build) Build {
			return Formatted{Children: c, F: Formatting{VerticalAlign: AlignSuper}}
		})
	case "sub":
		return wrap("sub", func(c []Build) Build {
			return Formatted{Children: c, F: Formatting{VerticalAlign: AlignSub}}
		})
	case "sc":
		return wrap("sc", func(c []Build) Build {
			return Formatted{Children: c, F: Formatting{FontVariant: VariantSmallCaps}}
		})
	case "q":
		return wrap("q", func(c []Build) Build {
			return Quoted{Children: c, Quotes: p.quotes}
		})
	case `span class="nocase"`:
		return wrap("span", func(c []Build) Build {
			return NoCase{Children: c}
		})
	case `span class="nodecor"`:
		return wrap("span", func(c []Build) Build {
			return NoDecor{Children: c}
		})
	case `span style="font-variant:small-caps;"`, `span style="font-variant: small-caps;"`:
		return wrap("span", func(c []Build) Build {
			return Formatted{Children: c, F: Formatting{FontVariant: VariantSmallCaps}}
		})
	}
	p.pos = mark
	return nil, false
}
