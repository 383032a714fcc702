package locale

import (
	"strings"

	"golang.org/x/text/language"
)

// Lang is a parsed xml:lang value: an ISO language code plus optional
// region.
type Lang struct {
	Language string
	Region   string
}

// EnUS is the terminal fallback for every chain.
var EnUS = Lang{Language: "en", Region: "US"}

// ParseLang canonicalizes a language tag. Unparseable tags keep their
// verbatim form as the language with no region, so a custom locale file
// can still be fetched for them.
func ParseLang(tag string) Lang {
	if tag == "" {
		return EnUS
	}
	t, err := language.Parse(tag)
	if err != nil {
		return Lang{Language: strings.ToLower(tag)}
	}
	base, baseConf := t.Base()
	l := Lang{}
	if baseConf != language.No {
		l.Language = base.String()
	} else {
		l.Language = strings.ToLower(tag)
	}
	// Exact only: language.Tag infers a likely region for bare tags
	if region, conf := t.Region(); conf == language.Exact && region.IsCountry() {
		l.Region = region.String()
	}
	return l
}

func (l Lang) String() string {
	if l.Region == "" {
		return l.Language
	}
	return l.Language + "-" + l.Region
}

// IsEnglish reports whether l is an English dialect. Title casing only
// applies to English.
func (l Lang) IsEnglish() bool {
	return l.Language == "en"
}

// primaryDialects maps a bare language to the dialect whose locale file
// carries its data.
var primaryDialects = map[string]Lang{
	"en": {Language: "en", Region: "US"},
	"de": {Language: "de", Region: "DE"},
	"fr": {Language: "fr", Region: "FR"},
	"pt": {Language: "pt", Region: "PT"},
	"es": {Language: "es", Region: "ES"},
	"zh": {Language: "zh", Region: "CN"},
}

// FileChain is the fetch order for locale files: the exact tag, its
// primary dialect, then en-US.
func (l Lang) FileChain() []Lang {
	var out []Lang
	seen := func(c Lang) bool {
		for _, s := range out {
			if s == c {
				return true
			}
		}
		return false
	}
	out = append(out, l)
	if primary, ok := primaryDialects[l.Language]; ok && !seen(primary) {
		out = append(out, primary)
	}
	if !seen(EnUS) {
		out = append(out, EnUS)
	}
	return out
}

// InlineChain is the order in-style overrides apply: the exact tag, the
// bare language, then the no-language overrides (represented by the zero
// Lang).
func (l Lang) InlineChain() []Lang {
	out := []Lang{l}
	if l.Region != "" {
		out = append(out, Lang{Language: l.Language})
	}
	out = append(out, Lang{})
	return out
}
