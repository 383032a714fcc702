package disamb

import (
	"strconv"
	"strings"

	"github.com/quillabs/citare/internal/format"
	"github.com/quillabs/citare/internal/numbers"
	"github.com/quillabs/citare/internal/reference"
)

// TokenKind discriminates index tokens.
type TokenKind uint8

const (
	// TokenStr is a normalized word drawn from reference content.
	TokenStr TokenKind = iota
	// TokenYearSuffix is an assigned suffix atom ("a", "b", ...).
	TokenYearSuffix
)

// Token is one unit of the disambiguation index.
type Token struct {
	Kind TokenKind
	Text string
}

// Index maps tokens to the references that contain them. Build it once
// from the full reference set; year-suffix atoms join as they are
// assigned.
type Index struct {
	byToken map[Token]map[string]struct{}
	refs    map[string]struct{}
}

// NewIndex builds an index over refs.
func NewIndex(refs []*reference.Reference) *Index {
	x := &Index{
		byToken: make(map[Token]map[string]struct{}),
		refs:    make(map[string]struct{}, len(refs)),
	}
	for _, r := range refs {
		x.Add(r)
	}
	return x
}

// Add indexes one reference's tokens.
func (x *Index) Add(r *reference.Reference) {
	x.refs[r.IDStr] = struct{}{}
	for _, t := range refTokens(r) {
		x.put(t, r.IDStr)
	}
}

// AssignYearSuffix records that a reference now carries a suffix atom,
// so re-rendered cites can discriminate on it.
func (x *Index) AssignYearSuffix(refID string, suffix uint32) {
	x.put(Token{Kind: TokenYearSuffix, Text: numbers.ToBijectiveBase26(suffix)}, refID)
}

func (x *Index) put(t Token, refID string) {
	set, ok := x.byToken[t]
	if !ok {
		set = make(map[string]struct{})
		x.byToken[t] = set
	}
	set[refID] = struct{}{}
}

// Unambiguous reports whether rendered output pins down refID: the
// intersection of the reference sets of every indexed token it contains
// must not reach beyond refID. Tokens unknown to the index carry no
// information and are skipped.
func (x *Index) Unambiguous(refID, rendered string) bool {
	var compat map[string]struct{}
	for _, tok := range tokenize(rendered) {
		set, ok := x.byToken[tok]
		if !ok {
			continue
		}
		if compat == nil {
			compat = make(map[string]struct{}, len(set))
			for id := range set {
				compat[id] = struct{}{}
			}
			continue
		}
		for id := range compat {
			if _, in := set[id]; !in {
				delete(compat, id)
			}
		}
	}
	if compat == nil {
		// nothing matched at all; only a singleton universe is safe
		return len(x.refs) <= 1
	}
	for id := range compat {
		if id != refID {
			return false
		}
	}
	return true
}

// refTokens extracts the indexable words of a reference: name parts and
// given-name initials, ordinary variable words, numeric verbatims and
// date years.
func refTokens(r *reference.Reference) []Token {
	var out []Token
	word := func(s string) {
		for _, w := range splitWords(s) {
			out = append(out, Token{Kind: TokenStr, Text: w})
		}
	}
	for _, names := range r.Name {
		for _, n := range names {
			if n.IsLiteral() {
				word(n.Literal)
				continue
			}
			word(n.Family)
			word(n.NonDroppingParticle)
			word(n.Given)
			// initialized renderings emit bare initials
			for _, w := range splitWords(n.Given) {
				out = append(out, Token{Kind: TokenStr, Text: w[:1]})
			}
		}
	}
	for _, v := range r.Ordinary {
		word(v)
	}
	for _, v := range r.Number {
		word(v.Verbatim())
	}
	for _, d := range r.Date {
		if first, ok := d.First(); ok && first.Year != 0 {
			word(strconv.FormatInt(int64(first.Year), 10))
		}
		if d.Kind == reference.DateRange && d.To.Year != 0 {
			word(strconv.FormatInt(int64(d.To.Year), 10))
		}
	}
	return out
}

// tokenize splits rendered output into index tokens. A word of digits
// with a letter tail ("1999a") splits into the year and a year-suffix
// atom.
func tokenize(rendered string) []Token {
	var out []Token
	for _, w := range splitWords(rendered) {
		if year, suffix, ok := splitYearSuffix(w); ok {
			out = append(out,
				Token{Kind: TokenStr, Text: year},
				Token{Kind: TokenYearSuffix, Text: suffix})
			continue
		}
		out = append(out, Token{Kind: TokenStr, Text: w})
	}
	return out
}

// splitWords folds case and accents, then breaks on anything that is
// not a letter or digit.
func splitWords(s string) []string {
	if s == "" {
		return nil
	}
	folded := format.SortString{}.Output(format.Plain(s), false)
	return strings.FieldsFunc(folded, func(r rune) bool {
		return !isWordRune(r)
	})
}

func isWordRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
		return true
	case r >= 0x80:
		// folded non-ascii letters (CJK, Greek) stay word content
		return true
	}
	return false
}

func splitYearSuffix(w string) (year, suffix string, ok bool) {
	i := 0
	for i < len(w) && w[i] >= '0' && w[i] <= '9' {
		i++
	}
	if i < 4 || i == len(w) {
		return "", "", false
	}
	for j := i; j < len(w); j++ {
		if w[j] < 'a' || w[j] > 'z' {
			return "", "", false
		}
	}
	return w[:i], w[i:], true
}
