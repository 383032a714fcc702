// Package script classifies strings by Unicode script membership.
//
// The renderer needs to know whether a field is "latin-cyrillic" text:
// names in Latin, Cyrillic, Greek or Arabic scripts are sortable and
// initializable, while CJK names are passed through untouched.
package script

import "unicode"

// latinCyrillic is the set of scripts treated as latin-cyrillic, plus the
// Common and Inherited scripts (punctuation, digits, combining marks).
var latinCyrillic = []*unicode.RangeTable{
	unicode.Latin,
	unicode.Cyrillic,
	unicode.Greek,
	unicode.Arabic,
	unicode.Scripts["Common"],
	unicode.Scripts["Inherited"],
}

// RuneIsLatinCyrillic reports whether a single rune belongs to the
// latin-cyrillic family.
func RuneIsLatinCyrillic(r rune) bool {
	return unicode.In(r, latinCyrillic...)
}

// IsLatinCyrillic reports whether every rune of s is latin-cyrillic.
// The empty string qualifies.
func IsLatinCyrillic(s string) bool {
	for _, r := range s {
		if !RuneIsLatinCyrillic(r) {
			return false
		}
	}
	return true
}
