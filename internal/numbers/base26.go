package numbers

// ToBijectiveBase26 encodes n >= 1 in bijective base-26 using lowercase
// letters: 1 -> "a", 26 -> "z", 27 -> "aa", 702 -> "zz", 703 -> "aaa".
//
// Year suffixes are assigned from this sequence.
func ToBijectiveBase26(n uint32) string {
	if n == 0 {
		return ""
	}
	var buf [8]byte
	i := len(buf)
	for n > 0 {
		n--
		i--
		buf[i] = byte('a' + n%26)
		n /= 26
	}
	return string(buf[i:])
}

// FromBijectiveBase26 decodes a lowercase bijective base-26 string.
// Returns false for empty input or characters outside 'a'..'z'.
func FromBijectiveBase26(s string) (uint32, bool) {
	if s == "" {
		return 0, false
	}
	var n uint32
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < 'a' || c > 'z' {
			return 0, false
		}
		n = n*26 + uint32(c-'a') + 1
	}
	return n, true
}
