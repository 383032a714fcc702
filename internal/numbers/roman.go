package numbers

import "strings"

// RomanMax is the largest number representable as a roman numeral.
const RomanMax = 3999

var romanPairs = []struct {
	sym string
	val uint32
}{
	{"m", 1000}, {"cm", 900}, {"d", 500}, {"cd", 400},
	{"c", 100}, {"xc", 90}, {"l", 50}, {"xl", 40},
	{"x", 10}, {"ix", 9}, {"v", 5}, {"iv", 4}, {"i", 1},
}

var romanValues = map[rune]uint32{
	'i': 1, 'v': 5, 'x': 10, 'l': 50, 'c': 100, 'd': 500, 'm': 1000,
	'I': 1, 'V': 5, 'X': 10, 'L': 50, 'C': 100, 'D': 500, 'M': 1000,
}

// ToRoman converts n to a lowercase roman numeral.
// Returns false for n == 0 or n > RomanMax.
//
// Lowercase is the canonical form; the renderer applies text-case in a
// later pass.
func ToRoman(n uint32) (string, bool) {
	if n == 0 || n > RomanMax {
		return "", false
	}
	var b strings.Builder
	for _, p := range romanPairs {
		for n >= p.val {
			n -= p.val
			b.WriteString(p.sym)
		}
	}
	return b.String(), true
}

// FromRoman parses a roman numeral, case-insensitively.
//
// Only canonical numerals are accepted: the parse is validated by
// re-encoding, so "iiii" is rejected while "iv" is accepted.
func FromRoman(s string) (uint32, bool) {
	n, ok := fromRomanLax(s)
	if !ok {
		return 0, false
	}
	canon, ok := ToRoman(n)
	if !ok || !strings.EqualFold(canon, s) {
		return 0, false
	}
	return n, true
}

// fromRomanLax sums symbol values right-to-left, subtracting any value
// smaller than the running maximum. Accepts non-canonical forms.
func fromRomanLax(s string) (uint32, bool) {
	if s == "" {
		return 0, false
	}
	var n, max uint32
	runes := []rune(s)
	for i := len(runes) - 1; i >= 0; i-- {
		val, ok := romanValues[runes[i]]
		if !ok {
			return 0, false
		}
		if val < max {
			if val > n {
				return 0, false
			}
			n -= val
		} else {
			n += val
			max = val
		}
	}
	return n, true
}
