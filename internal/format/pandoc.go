package format

import (
	"encoding/json"
	"strings"
)

// Pandoc renders the Pandoc AST inline JSON representation.
type Pandoc struct{}

// Name implements Format.
func (Pandoc) Name() string { return "pandoc" }

// inline is one Pandoc Inline node. C is absent for Space.
type inline struct {
	T string `json:"t"`
	C any    `json:"c,omitempty"`
}

// Output implements Format. punctInQuote is applied to text leaves before
// serialization; Pandoc has no flat string to post-process.
func (Pandoc) Output(b Build, punctInQuote bool) string {
	ins := pandocWalk(b)
	if punctInQuote {
		ins = pandocSwapPunct(ins)
	}
	if ins == nil {
		ins = []inline{}
	}
	data, err := json.Marshal(ins)
	if err != nil {
		// inline trees contain only strings and slices
		return "[]"
	}
	return string(data)
}

func pandocWalk(b Build) []inline {
	switch n := b.(type) {
	case nil:
		return nil
	case Text:
		return pandocStr(n.Text)
	case NoCase:
		return pandocFlatten(n.Children, "")
	case NoDecor:
		return pandocFlatten(n.Children, "")
	case Formatted:
		return pandocWrap(pandocFlatten(n.Children, ""), n.F)
	case Quoted:
		quote := "DoubleQuote"
		if n.Inner {
			quote = "SingleQuote"
		}
		return []inline{{T: "Quoted", C: []any{
			map[string]any{"t": quote},
			pandocFlatten(n.Children, ""),
		}}}
	case Group:
		return pandocFlatten(n.Children, n.Delim)
	case Display:
		return pandocFlatten(n.Children, "")
	case Linked:
		return []inline{{T: "Link", C: []any{
			[]any{"", []any{}, []any{}},
			pandocFlatten(n.Children, ""),
			[]any{n.URL, ""},
		}}}
	}
	return nil
}

func pandocFlatten(children []Build, delim string) []inline {
	var out []inline
	for _, c := range children {
		if IsEmpty(c) {
			continue
		}
		ins := pandocWalk(c)
		if len(ins) == 0 {
			continue
		}
		if len(out) > 0 && delim != "" {
			out = append(out, pandocStr(delim)...)
		}
		out = append(out, ins...)
	}
	return out
}

// pandocStr splits text on spaces into Str and Space nodes.
func pandocStr(s string) []inline {
	if s == "" {
		return nil
	}
	var out []inline
	for i, word := range strings.Split(s, " ") {
		if i > 0 {
			out = append(out, inline{T: "Space"})
		}
		if word != "" {
			out = append(out, inline{T: "Str", C: word})
		}
	}
	return out
}

func pandocWrap(ins []inline, f Formatting) []inline {
	if len(ins) == 0 {
		return nil
	}
	wrap := func(t string) {
		ins = []inline{{T: t, C: ins}}
	}
	if f.FontStyle == StyleItalic || f.FontStyle == StyleOblique {
		wrap("Emph")
	}
	if f.FontWeight == WeightBold {
		wrap("Strong")
	}
	if f.FontVariant == VariantSmallCaps {
		wrap("SmallCaps")
	}
	if f.TextDecoration == DecorationUnderline {
		wrap("Underline")
	}
	switch f.VerticalAlign {
	case AlignSuper:
		wrap("Superscript")
	case AlignSub:
		wrap("Subscript")
	}
	return ins
}

// pandocSwapPunct moves a leading "." or "," of the Str following a Quoted
// node inside the quote.
func pandocSwapPunct(ins []inline) []inline {
	for i := 0; i < len(ins)-1; i++ {
		q := &ins[i]
		if q.T != "Quoted" {
			continue
		}
		next := &ins[i+1]
		if next.T != "Str" {
			continue
		}
		s, ok := next.C.(string)
		if !ok || s == "" || (s[0] != '.' && s[0] != ',') {
			continue
		}
		parts, ok := q.C.([]any)
		if !ok || len(parts) != 2 {
			continue
		}
		body, ok := parts[1].([]inline)
		if !ok {
			continue
		}
		parts[1] = append(body, pandocStr(string(s[0]))...)
		if s = s[1:]; s == "" {
			ins = append(ins[:i+1], ins[i+2:]...)
		} else {
			next.C = s
		}
	}
	return ins
}
