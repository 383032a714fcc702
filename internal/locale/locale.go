package locale

import "github.com/quillabs/citare/internal/format"

// OptionsNode is the style-options element of one layer. Nil pointers
// mean "not set here"; merged layers fill them by presence.
type OptionsNode struct {
	PunctuationInQuote     *bool
	LimitDayOrdinalsToDay1 *bool
}

// Options is the merged, concrete option set.
type Options struct {
	PunctuationInQuote     bool
	LimitDayOrdinalsToDay1 bool
}

// DateForm selects a localized date format.
type DateForm string

const (
	DateFormText    DateForm = "text"
	DateFormNumeric DateForm = "numeric"
)

// DatePartName names one component of a localized date.
type DatePartName string

const (
	PartYear  DatePartName = "year"
	PartMonth DatePartName = "month"
	PartDay   DatePartName = "day"
)

// DatePart is one date-part element of a localized date format.
type DatePart struct {
	Name           DatePartName
	Form           string
	Affixes        format.Affixes
	Formatting     *format.Formatting
	TextCase       format.TextCase
	RangeDelimiter string
}

// Date is a localized date format defined inside a locale.
type Date struct {
	Form       DateForm
	Parts      []DatePart
	Delimiter  string
	Formatting *format.Formatting
	TextCase   format.TextCase
}

// Locale is one parsed layer of locale data.
type Locale struct {
	// Lang is nil when the source carried no xml:lang.
	Lang     *Lang
	Options  OptionsNode
	Simple   map[SimpleSelector]TermValue
	Gendered map[GenderedSelector]GenderedTerm
	Ordinals map[OrdinalSelector]string
	Dates    map[DateForm]*Date
}

// NewLocale returns an empty layer with allocated maps.
func NewLocale() *Locale {
	return &Locale{
		Simple:   make(map[SimpleSelector]TermValue),
		Gendered: make(map[GenderedSelector]GenderedTerm),
		Ordinals: make(map[OrdinalSelector]string),
		Dates:    make(map[DateForm]*Date),
	}
}

// hasOrdinals reports whether this layer defines any ordinal terms. A
// layer that does replaces the entire ordinal configuration of lower
// layers.
func (l *Locale) hasOrdinals() bool {
	return len(l.Ordinals) > 0
}
