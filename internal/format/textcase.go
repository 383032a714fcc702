package format

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	upperCaser = cases.Upper(language.Und)
	lowerCaser = cases.Lower(language.Und)
)

// titleStopWords are the short words left lowercase by title case unless
// they begin or end the title.
var titleStopWords = map[string]bool{
	"a": true, "an": true, "and": true, "as": true, "at": true, "but": true,
	"by": true, "down": true, "for": true, "from": true, "in": true,
	"into": true, "nor": true, "of": true, "on": true, "onto": true,
	"or": true, "over": true, "so": true, "the": true, "till": true,
	"to": true, "up": true, "via": true, "with": true, "yet": true,
}

// ApplyTextCase transforms the text leaves of b. Spans under NoCase are
// left untouched. The transform is pure; b is not modified.
func ApplyTextCase(b Build, tc TextCase) Build {
	if tc == CaseNone || b == nil {
		return b
	}
	st := &caseState{tc: tc}
	return st.walk(b)
}

type caseState struct {
	tc      TextCase
	started bool // a word has been emitted already
}

func (st *caseState) walk(b Build) Build {
	switch n := b.(type) {
	case Text:
		return Text{Text: st.transform(n.Text)}
	case NoCase:
		st.started = true
		return n
	case NoDecor:
		return NoDecor{Children: st.walkAll(n.Children)}
	case Formatted:
		return Formatted{Children: st.walkAll(n.Children), F: n.F}
	case Quoted:
		return Quoted{Children: st.walkAll(n.Children), Quotes: n.Quotes, Inner: n.Inner}
	case Group:
		return Group{Children: st.walkAll(n.Children), Delim: n.Delim}
	case Display:
		return Display{Children: st.walkAll(n.Children), Mode: n.Mode, InBib: n.InBib}
	case Linked:
		return Linked{Children: st.walkAll(n.Children), URL: n.URL}
	}
	return b
}

func (st *caseState) walkAll(children []Build) []Build {
	out := make([]Build, len(children))
	for i, c := range children {
		out[i] = st.walk(c)
	}
	return out
}

func (st *caseState) transform(s string) string {
	if s == "" {
		return s
	}
	switch st.tc {
	case CaseLowercase:
		return lowerCaser.String(s)
	case CaseUppercase:
		return upperCaser.String(s)
	case CaseCapitalizeFirst:
		if st.started {
			return s
		}
		st.started = true
		return capitalizeFirstWord(s)
	case CaseSentence:
		out := s
		if strings.ToUpper(s) == s && strings.ToLower(s) != s {
			out = lowerCaser.String(s)
		}
		if !st.started {
			st.started = true
			out = capitalizeFirstWord(out)
		}
		return out
	case CaseCapitalizeAll:
		return mapWords(s, func(w string, _, _ bool) string {
			return capitalizeWord(w)
		})
	case CaseTitle:
		first := !st.started
		st.started = true
		return mapWords(s, func(w string, isFirst, isLast bool) string {
			lower := strings.ToLower(w)
			if titleStopWords[lower] && !(first && isFirst) && !isLast {
				return lower
			}
			return capitalizeWord(w)
		})
	}
	return s
}

// capitalizeWord uppercases the first letter of a lowercase word. Words
// with internal capitals are left alone.
func capitalizeWord(w string) string {
	if w == "" {
		return w
	}
	if strings.IndexFunc(w[1:], unicode.IsUpper) >= 0 {
		return w
	}
	r, size := utf8.DecodeRuneInString(w)
	if !unicode.IsLower(r) {
		return w
	}
	return string(unicode.ToUpper(r)) + w[size:]
}

func capitalizeFirstWord(s string) string {
	for i, r := range s {
		if unicode.IsLetter(r) {
			if unicode.IsLower(r) {
				return s[:i] + string(unicode.ToUpper(r)) + s[i+utf8.RuneLen(r):]
			}
			return s
		}
	}
	return s
}

// mapWords applies f to each space-separated word, reporting first/last
// positions within s.
func mapWords(s string, f func(w string, isFirst, isLast bool) string) string {
	words := strings.Split(s, " ")
	n := 0
	for _, w := range words {
		if w != "" {
			n++
		}
	}
	seen := 0
	for i, w := range words {
		if w == "" {
			continue
		}
		seen++
		words[i] = f(w, seen == 1, seen == n)
	}
	return strings.Join(words, " ")
}
