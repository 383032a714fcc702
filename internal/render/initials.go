package render

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// givenToken is one lexed piece of a given name.
//
//	"John R L"   → Name("John"), Initial("R"), Initial("L")
//	"Jean-Luc K" → Name("Jean"), HyphenSegment("Luc"), Initial("K")
//	"R. L."      → Initial("R"), Initial("L")
//	"ME."        → Initial("ME") (packed initials stay packed)
//	"de"         → Other("de")
type givenToken struct {
	kind tokenKind
	text string
}

type tokenKind uint8

const (
	tokName tokenKind = iota
	tokInitial
	tokHyphenSegment
	tokOther
)

// InitializeGiven rewrites a given name per the initialize rules.
// With initialize on, Name tokens shrink to their initial plus the
// with string; hyphenated compounds keep their hyphen when hyphenate
// is on, and the space after an initial is suppressed so "J.R.L."
// comes out packed when with carries no space. With initialize off,
// words that already are initials still get the with string, full
// words pass through. Lowercase particles and words with no uppercase
// start ("de", "好") pass through either way.
func InitializeGiven(given, with string, initialize, hyphenate bool) string {
	const (
		stateStart = iota
		stateAfterInitial
		stateAfterName
	)
	state := stateStart
	var b strings.Builder
	b.Grow(len(given))

	// Exactly one space between this token and a preceding full word.
	spaceAfterName := func() {
		s := strings.TrimRight(b.String(), " ")
		b.Reset()
		b.WriteString(s)
		b.WriteByte(' ')
	}

	for _, word := range strings.Fields(given) {
		for _, tok := range tokenizeGiven(word) {
			switch tok.kind {
			case tokName:
				if initialize {
					if state == stateAfterName {
						spaceAfterName()
					}
					b.WriteString(nameInitial(tok.text))
					b.WriteString(with)
					state = stateAfterInitial
				} else {
					if state != stateStart {
						spaceAfterName()
					}
					b.WriteString(tok.text)
					state = stateAfterName
				}
			case tokInitial:
				if state == stateAfterName {
					spaceAfterName()
				}
				b.WriteString(tok.text)
				b.WriteString(with)
				state = stateAfterInitial
			case tokHyphenSegment:
				r, _ := utf8.DecodeRuneInString(tok.text)
				switch {
				case unicode.IsLower(r) || tok.text == "":
					// lowercase hyphen segments drop silently
				case initialize:
					if hyphenate {
						// J.-L., not J. -L.
						s := strings.TrimRight(b.String(), " ")
						b.Reset()
						b.WriteString(s)
						b.WriteByte('-')
					}
					b.WriteRune(r)
					b.WriteString(with)
					state = stateAfterInitial
				default:
					b.WriteByte('-')
					b.WriteString(tok.text)
					state = stateAfterName
				}
			case tokOther:
				if state != stateStart {
					spaceAfterName()
				}
				b.WriteString(tok.text)
				state = stateAfterName
			}
		}
	}
	return strings.TrimSpace(b.String())
}

// nameInitial abbreviates one Name token. All-caps words keep only
// their first rune; a mixed-case word keeps its leading uppercase run
// with the run's tail lowercased, so "GIven" becomes "Gi".
func nameInitial(name string) string {
	hasLower := false
	for _, r := range name {
		if unicode.IsLower(r) {
			hasLower = true
			break
		}
	}
	var b strings.Builder
	if !hasLower {
		r, _ := utf8.DecodeRuneInString(name)
		b.WriteRune(r)
		return b.String()
	}
	seenUpper := false
	for _, r := range name {
		switch {
		case unicode.IsUpper(r) && seenUpper:
			b.WriteRune(unicode.ToLower(r))
			continue
		case unicode.IsUpper(r):
			b.WriteRune(r)
			seenUpper = true
			continue
		case !seenUpper:
			b.WriteRune(r)
		}
		break
	}
	return b.String()
}

// tokenizeGiven lexes one space-separated word. The first token may be
// a full Name; after that only initials, hyphen segments and a literal
// tail can follow, so "R.L." yields two initials and "John" stays one
// name.
func tokenizeGiven(word string) []givenToken {
	var toks []givenToken
	rest := word
	triedFull := false
	for rest != "" {
		tok, remain, ok := nextGivenToken(rest, triedFull)
		if !ok {
			break
		}
		triedFull = true
		toks = append(toks, tok)
		rest = remain
	}
	return toks
}

func nextGivenToken(rest string, triedFull bool) (givenToken, string, bool) {
	if seg, remain, ok := hyphenSegment(rest); ok {
		return givenToken{tokHyphenSegment, seg}, remain, true
	}
	if !triedFull {
		if init, remain, ok := initialWithDot(rest); ok {
			return givenToken{tokInitial, init}, remain, true
		}
		if name, remain, ok := fullName(rest); ok {
			return givenToken{tokName, name}, remain, true
		}
	}
	if init, remain, ok := initialMaybeDot(rest); ok {
		return givenToken{tokInitial, init}, remain, true
	}
	return givenToken{tokOther, rest}, "", true
}

// hyphenSegment matches "-Xyz": a hyphen followed by at least one rune
// that is neither a period nor another hyphen.
func hyphenSegment(s string) (seg, remain string, ok bool) {
	if !strings.HasPrefix(s, "-") {
		return "", "", false
	}
	body := s[1:]
	n := segmentLen(body)
	if n == 0 {
		return "", "", false
	}
	return body[:n], body[n:], true
}

// initialWithDot matches an uppercase run up to a mandatory period:
// "R." and packed "ME." both match, "John" does not.
func initialWithDot(s string) (init, remain string, ok bool) {
	init, remain, ok = withoutDot(s)
	if !ok || !strings.HasPrefix(remain, ".") {
		return "", "", false
	}
	return init, remain[1:], true
}

// initialMaybeDot is initialWithDot with the period optional; it picks
// up trailing initials like the "L" in "R.L".
func initialMaybeDot(s string) (init, remain string, ok bool) {
	init, remain, ok = withoutDot(s)
	if !ok {
		return "", "", false
	}
	remain = strings.TrimPrefix(remain, ".")
	return init, remain, true
}

// withoutDot takes one uppercase rune plus everything up to the next
// period.
func withoutDot(s string) (m, remain string, ok bool) {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 || !unicode.IsUpper(r) {
		return "", "", false
	}
	end := size
	for end < len(s) && s[end] != '.' {
		_, n := utf8.DecodeRuneInString(s[end:])
		end += n
	}
	return s[:end], s[end:], true
}

// fullName matches an uppercase rune followed by at least one rune
// that is neither a period nor a hyphen.
func fullName(s string) (name, remain string, ok bool) {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 || !unicode.IsUpper(r) {
		return "", "", false
	}
	n := segmentLen(s[size:])
	if n == 0 {
		return "", "", false
	}
	end := size + n
	return s[:end], s[end:], true
}

// segmentLen counts the leading bytes of s free of periods and
// hyphens.
func segmentLen(s string) int {
	end := 0
	for end < len(s) && s[end] != '.' && s[end] != '-' {
		_, n := utf8.DecodeRuneInString(s[end:])
		end += n
	}
	return end
}
