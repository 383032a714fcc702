package numbers

import (
	"strconv"
	"strings"
)

// TokenKind discriminates the variants of Token.
type TokenKind int

const (
	// TokenNum is a plain unsigned number.
	TokenNum TokenKind = iota
	// TokenRoman is a roman numeral with its parsed value.
	TokenRoman
	// TokenAffixed is a number with non-numeric prefix/suffix, e.g. "[3]".
	TokenAffixed
	// TokenStr is unparseable trailing content.
	TokenStr
	// TokenComma, TokenHyphen and TokenAmpersand are separators.
	// Hyphen covers both '-' and the en-dash.
	TokenComma
	TokenHyphen
	TokenAmpersand
	// TokenAnd matched the locale's "and" term (or literal "and").
	TokenAnd
	// TokenCommaAnd matched ", and".
	TokenCommaAnd
)

// Token is one lexeme of a numeric variable's content.
type Token struct {
	Kind   TokenKind
	Num    uint32 // TokenNum, TokenRoman, TokenAffixed
	Upper  bool   // TokenRoman: written in uppercase
	Prefix string // TokenAffixed
	Suffix string // TokenAffixed
	Text   string // TokenStr
}

// Value returns the numeric value of a Num, Roman or Affixed token.
func (t Token) Value() (uint32, bool) {
	switch t.Kind {
	case TokenNum, TokenRoman, TokenAffixed:
		return t.Num, true
	}
	return 0, false
}

// NumericValue is the parse result for a numeric variable: either a token
// sequence, or the raw string when nothing numeric could be read.
//
//	"2, 4"    => [Num(2) Comma Num(4)], numeric
//	"2nd-4th" => [Affixed(2nd) Hyphen Affixed(4th)], numeric
//	"2nd ed." => [Affixed(2nd) Str(" ed.")], not numeric
//	"-5"      => raw string
type NumericValue struct {
	Verbatim string
	Tokens   []Token
	// Numeric reports a complete parse with at least one number.
	Numeric bool
}

// Num builds a NumericValue for a bare integer.
func Num(i uint32) NumericValue {
	return NumericValue{
		Verbatim: strconv.FormatUint(uint64(i), 10),
		Tokens:   []Token{{Kind: TokenNum, Num: i}},
		Numeric:  true,
	}
}

// FirstNum returns the leading number, if the value starts with one.
func (v NumericValue) FirstNum() (uint32, bool) {
	if len(v.Tokens) == 0 {
		return 0, false
	}
	return v.Tokens[0].Value()
}

// PageFirst returns a NumericValue holding only the first page number.
func (v NumericValue) PageFirst() (NumericValue, bool) {
	n, ok := v.FirstNum()
	if !ok {
		return NumericValue{}, false
	}
	return Num(n), true
}

// IsMultiple reports whether the value pluralizes its label. Quantity
// variables (number-of-pages, number-of-volumes) are plural when the single
// number is not 1; everything else is plural when more than one token was
// parsed.
func (v NumericValue) IsMultiple(quantity bool) bool {
	if !quantity {
		return len(v.Tokens) > 1
	}
	switch len(v.Tokens) {
	case 0:
		return true
	case 1:
		t := v.Tokens[0]
		return t.Kind == TokenNum && t.Num != 1
	default:
		return true
	}
}

// ParseNumeric lexes the content of a numeric variable. andTerm is the
// merged locale's "and" term; the literal "and" always matches too.
func ParseNumeric(input, andTerm string) NumericValue {
	input = strings.TrimSpace(input)
	lx := &numLexer{rest: input, and: andTerm}

	tok, ok := lx.numIsh()
	if !ok {
		return NumericValue{Verbatim: input}
	}
	tokens := []Token{tok}
	for {
		mark := lx.rest
		sep, ok := lx.separator()
		if !ok {
			break
		}
		next, ok := lx.numIsh()
		if !ok {
			lx.rest = mark
			break
		}
		tokens = append(tokens, sep, next)
	}

	if lx.rest == "" {
		for _, t := range tokens {
			switch t.Kind {
			case TokenNum, TokenRoman, TokenAffixed:
				return NumericValue{Verbatim: input, Tokens: tokens, Numeric: true}
			}
		}
		return NumericValue{Verbatim: input}
	}
	// Use as much as we could parse; the remainder rides along as a string
	// block and the value can no longer count as numeric.
	tokens = append(tokens, Token{Kind: TokenStr, Text: lx.rest})
	return NumericValue{Verbatim: input, Tokens: tokens, Numeric: false}
}

type numLexer struct {
	rest string
	and  string
}

// separator lexes { comma | hyphen | ampersand | and-term } with any
// surrounding spaces.
func (lx *numLexer) separator() (Token, bool) {
	s := strings.TrimLeft(lx.rest, " ")
	if s == "" {
		return Token{}, false
	}
	if rem, kind, ok := lx.andSep(s); ok {
		lx.rest = strings.TrimLeft(rem, " ")
		return Token{Kind: kind}, true
	}
	var kind TokenKind
	var width int
	switch r := []rune(s)[0]; r {
	case ',':
		kind, width = TokenComma, 1
	case '-':
		kind, width = TokenHyphen, 1
	case '–':
		kind, width = TokenHyphen, len("–")
	case '&':
		kind, width = TokenAmpersand, 1
	default:
		return Token{}, false
	}
	lx.rest = strings.TrimLeft(s[width:], " ")
	return Token{Kind: kind}, true
}

func (lx *numLexer) andSep(s string) (string, TokenKind, bool) {
	kind := TokenAnd
	if rem, ok := strings.CutPrefix(s, ", "); ok {
		s = rem
		kind = TokenCommaAnd
	}
	for _, term := range []string{lx.and, "and"} {
		if term == "" {
			continue
		}
		if rem, ok := strings.CutPrefix(s, term); ok {
			return rem, kind, true
		}
	}
	return "", 0, false
}

// numIsh lexes one number-bearing token: roman numeral, affixed number, or
// plain integer.
func (lx *numLexer) numIsh() (Token, bool) {
	word, rem := scanWord(lx.rest)
	if word == "" {
		return Token{}, false
	}
	if n, ok := FromRoman(word); ok {
		lx.rest = rem
		return Token{Kind: TokenRoman, Num: n, Upper: isUpperStart(word)}, true
	}
	tok, ok := lexAffixed(word)
	if !ok {
		return Token{}, false
	}
	lx.rest = rem
	return tok, true
}

// scanWord consumes up to the next unescaped separator character. A
// backslash escapes a following separator (or backslash) so values like
// "3\-B" stay one token.
func scanWord(s string) (word, rest string) {
	for i := 0; i < len(s); {
		c := s[i]
		if c == '\\' && i+1 < len(s) && isEscapable(s[i+1:]) {
			i += 2
			continue
		}
		if c == ' ' || c == ',' || c == '-' || c == '&' {
			return s[:i], s[i:]
		}
		if strings.HasPrefix(s[i:], "–") {
			return s[:i], s[i:]
		}
		i++
	}
	return s, ""
}

func isEscapable(s string) bool {
	switch s[0] {
	case '\\', ' ', ',', '-', '&':
		return true
	}
	return strings.HasPrefix(s, "–")
}

// lexAffixed finds the last digit run in a word. A digit run starts at a
// nonzero digit; leading zeros belong to the prefix ("0110" parses as
// Affixed("0", 110, "")). A word with no digit run fails.
func lexAffixed(word string) (Token, bool) {
	lastStart, lastEnd := -1, -1
	for i := 0; i < len(word); i++ {
		if word[i] >= '1' && word[i] <= '9' {
			j := i
			for j < len(word) && word[j] >= '0' && word[j] <= '9' {
				j++
			}
			lastStart, lastEnd = i, j
			i = j - 1
		}
	}
	if lastStart < 0 {
		return Token{}, false
	}
	n, err := strconv.ParseUint(word[lastStart:lastEnd], 10, 32)
	if err != nil {
		// overflow: treat the whole value as a string
		return Token{}, false
	}
	pre := unescape(word[:lastStart])
	suf := unescape(word[lastEnd:])
	if pre == "" && suf == "" {
		return Token{Kind: TokenNum, Num: uint32(n)}, true
	}
	return Token{Kind: TokenAffixed, Num: uint32(n), Prefix: pre, Suffix: suf}, true
}

// unescape undoes backslash escaping. Unrecognized escapes are preserved:
// `\&` becomes `&` but `\a` stays `\a`.
func unescape(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); {
		if s[i] == '\\' && i+1 < len(s) && isEscapable(s[i+1:]) {
			i++
			continue
		}
		b.WriteByte(s[i])
		i++
	}
	return b.String()
}

func isUpperStart(s string) bool {
	return s != "" && s[0] >= 'A' && s[0] <= 'Z'
}
