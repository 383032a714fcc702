package locale

// TermForm is the form attribute on a term or its selector. The extended
// verb forms only occur on role terms.
type TermForm string

const (
	FormLong      TermForm = "long"
	FormShort     TermForm = "short"
	FormSymbol    TermForm = "symbol"
	FormVerb      TermForm = "verb"
	FormVerbShort TermForm = "verb-short"
)

// Fallback is the request-specific form chain, tried within one layer
// before the resolver moves to the next. A symbol-only term never
// satisfies a short request; a short-only term never satisfies long.
func (f TermForm) Fallback() []TermForm {
	switch f {
	case FormShort:
		return []TermForm{FormShort, FormLong}
	case FormSymbol:
		return []TermForm{FormSymbol, FormShort, FormLong}
	case FormVerb:
		return []TermForm{FormVerb, FormLong}
	case FormVerbShort:
		return []TermForm{FormVerbShort, FormVerb, FormLong}
	}
	return []TermForm{FormLong}
}

// Gender of a term, used to pick gendered ordinals.
type Gender string

const (
	Masculine Gender = "masculine"
	Feminine  Gender = "feminine"
	Neuter    Gender = "neuter"
)

func parseGender(s string) Gender {
	switch s {
	case string(Masculine):
		return Masculine
	case string(Feminine):
		return Feminine
	}
	return Neuter
}

// OrdinalMatch is how an ordinal-NN term matches a number.
type OrdinalMatch string

const (
	MatchLastDigit     OrdinalMatch = "last-digit"
	MatchLastTwoDigits OrdinalMatch = "last-two-digits"
	MatchWholeNumber   OrdinalMatch = "whole-number"
)

// TermValue is a term's content, optionally pluralized.
type TermValue struct {
	Single     string
	Multiple   string
	Pluralized bool
}

// Get picks the plural or singular content. Invariant terms ignore
// plural.
func (v TermValue) Get(plural bool) string {
	if plural && v.Pluralized {
		return v.Multiple
	}
	return v.Single
}

// SimpleSelector addresses misc, season, quote and role terms.
type SimpleSelector struct {
	Name string
	Form TermForm
}

// GenderedSelector addresses months, locators and gendered number
// variables.
type GenderedSelector struct {
	Name string
	Form TermForm
}

// GenderedTerm is a gendered term's content plus its defined gender.
type GenderedTerm struct {
	Value  TermValue
	Gender Gender
}

// OrdinalKind discriminates OrdinalTerm.
type OrdinalKind uint8

const (
	// OrdGeneric is the bare "ordinal" term.
	OrdGeneric OrdinalKind = iota
	// OrdMod100 is "ordinal-NN", matched per its OrdinalMatch.
	OrdMod100
	// OrdLong is "long-ordinal-NN" for 1 through 10.
	OrdLong
)

// OrdinalTerm identifies one ordinal term definition.
type OrdinalTerm struct {
	Kind  OrdinalKind
	Value uint32
	Match OrdinalMatch
}

// OrdinalSelector keys the ordinal term map.
type OrdinalSelector struct {
	Term   OrdinalTerm
	Gender Gender
}

// ordinalChain is the candidate order when rendering the number n as an
// ordinal suffix: exact match first, then the last two digits, the last
// digit, and finally the generic term.
func ordinalChain(n uint32) []OrdinalTerm {
	return []OrdinalTerm{
		{Kind: OrdMod100, Value: n, Match: MatchWholeNumber},
		{Kind: OrdMod100, Value: n % 100, Match: MatchLastTwoDigits},
		{Kind: OrdMod100, Value: n % 10, Match: MatchLastDigit},
		{Kind: OrdGeneric},
	}
}

// genderedTermNames is the set of non-month term names addressed through
// the gendered map: the CSL locator types plus the gendered number
// variables.
var genderedTermNames = map[string]bool{
	"book": true, "chapter": true, "column": true, "figure": true,
	"folio": true, "issue": true, "line": true, "note": true,
	"opus": true, "page": true, "paragraph": true, "part": true,
	"section": true, "sub-verbo": true, "sub verbo": true, "verse": true,
	"volume": true, "edition": true, "number": true, "number-of-pages": true,
	"number-of-volumes": true, "supplement": true,
}

func isGenderedTerm(name string) bool {
	if genderedTermNames[name] {
		return true
	}
	return len(name) == 8 && name[:6] == "month-"
}
