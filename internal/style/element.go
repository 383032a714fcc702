package style

import (
	"github.com/quillabs/citare/internal/format"
	"github.com/quillabs/citare/internal/locale"
)

// Element is one node of a layout or macro body.
// This is a sealed interface - only types in this package implement it.
type Element interface {
	element() // Marker method - seals interface to this package
}

// TextSourceKind discriminates the four text sources.
type TextSourceKind uint8

const (
	SourceValue TextSourceKind = iota
	SourceVariable
	SourceTerm
	SourceMacro
)

// TextSource is where a cs:text element takes its content from.
type TextSource struct {
	Kind TextSourceKind
	// Name is the variable, term or macro name.
	Name string
	// Value is the literal for SourceValue.
	Value string
	// Form is the variable form (long/short) or term form.
	Form locale.TermForm
	// Plural applies to terms only.
	Plural bool
}

// Text is cs:text.
type Text struct {
	Source       TextSource
	Formatting   *format.Formatting
	Affixes      format.Affixes
	Quotes       bool
	StripPeriods bool
	TextCase     format.TextCase
	Display      format.DisplayMode
}

// LabelPlural is the plural attribute of cs:label.
type LabelPlural string

const (
	PluralContextual LabelPlural = "contextual"
	PluralAlways     LabelPlural = "always"
	PluralNever      LabelPlural = "never"
)

// Label is cs:label outside a names block.
type Label struct {
	Variable     string
	Form         locale.TermForm
	Plural       LabelPlural
	Formatting   *format.Formatting
	Affixes      format.Affixes
	StripPeriods bool
	TextCase     format.TextCase
}

// NumericForm is the form attribute of cs:number.
type NumericForm string

const (
	FormNumeric     NumericForm = "numeric"
	FormOrdinal     NumericForm = "ordinal"
	FormLongOrdinal NumericForm = "long-ordinal"
	FormRoman       NumericForm = "roman"
)

// Number is cs:number.
type Number struct {
	Variable   string
	Form       NumericForm
	Formatting *format.Formatting
	Affixes    format.Affixes
	TextCase   format.TextCase
	Display    format.DisplayMode
}

// Group is cs:group. It is suppressed when every variable it touches is
// empty.
type Group struct {
	Elements   []Element
	Formatting *format.Formatting
	Affixes    format.Affixes
	Delimiter  string
	Display    format.DisplayMode
}

// NamesLabel is the cs:label inside a names block.
type NamesLabel struct {
	Form         locale.TermForm
	Plural       LabelPlural
	Formatting   *format.Formatting
	Affixes      format.Affixes
	StripPeriods bool
	TextCase     format.TextCase
	// AfterName places the label after the rendered names.
	AfterName bool
}

// EtAl customizes the et-al term rendering.
type EtAl struct {
	Term       string
	Formatting *format.Formatting
}

// Names is cs:names.
type Names struct {
	Variables []string
	Name      *NameOptions
	Label     *NamesLabel
	EtAl      *EtAl
	// Substitute elements render in order until one produces output.
	Substitute []Element

	Formatting *format.Formatting
	Affixes    format.Affixes
	Display    format.DisplayMode
	Delimiter  *string
}

// DatePartsFilter truncates which parts of a localized date render.
type DatePartsFilter string

const (
	PartsYearMonthDay DatePartsFilter = "year-month-day"
	PartsYearMonth    DatePartsFilter = "year-month"
	PartsYear         DatePartsFilter = "year"
)

// Date is cs:date. With a Form it renders through the locale's date
// format, overlaying any local date-part attributes; without one the
// listed Parts drive rendering directly.
type Date struct {
	Variable string
	Form     locale.DateForm
	Parts    []locale.DatePart
	PartsFilter DatePartsFilter

	Formatting *format.Formatting
	Affixes    format.Affixes
	Delimiter  string
	TextCase   format.TextCase
	Display    format.DisplayMode
}

// Match is the match attribute on a condition set.
type Match string

const (
	MatchAll  Match = "all"
	MatchAny  Match = "any"
	MatchNone Match = "none"
)

// CondKind discriminates Cond.
type CondKind uint8

const (
	CondType CondKind = iota
	CondVariable
	CondIsNumeric
	CondIsUncertainDate
	CondPosition
	CondLocator
	CondDisambiguate
	CondIsPlural
	CondHasYearOnly
	CondHasMonthOrSeason
	CondHasDay
	CondJurisdiction
)

// Cond is one atomic condition of an if/else-if branch.
type Cond struct {
	Kind  CondKind
	Value string
	// Bool is the disambiguate="true|false" operand.
	Bool bool
}

// Conditions is a match mode over a set of atomic conditions.
type Conditions struct {
	Match Match
	Conds []Cond
}

// IsDisambiguate reports whether the branch tests disambiguate="true",
// which defers the branch to disambiguation tactic 4.
func (c Conditions) IsDisambiguate() bool {
	for _, cond := range c.Conds {
		if cond.Kind == CondDisambiguate && cond.Bool {
			return true
		}
	}
	return false
}

// IfThen is one branch of a choose.
type IfThen struct {
	Cond     Conditions
	Elements []Element
}

// Choose is cs:choose.
type Choose struct {
	If     IfThen
	ElseIf []IfThen
	Else   []Element
}

func (*Text) element()   {}
func (*Label) element()  {}
func (*Number) element() {}
func (*Group) element()  {}
func (*Names) element()  {}
func (*Date) element()   {}
func (*Choose) element() {}
