package style

import (
	"github.com/quillabs/citare/internal/format"
	"github.com/quillabs/citare/internal/locale"
	"github.com/quillabs/citare/internal/numbers"
)

// StyleClass distinguishes in-text from note styles.
type StyleClass string

const (
	ClassInText StyleClass = "in-text"
	ClassNote   StyleClass = "note"
)

// DemoteNonDroppingParticle controls where "van"/"de" particles sort.
type DemoteNonDroppingParticle string

const (
	DemoteNever       DemoteNonDroppingParticle = "never"
	DemoteSortOnly    DemoteNonDroppingParticle = "sort-only"
	DemoteDisplayAndSort DemoteNonDroppingParticle = "display-and-sort"
)

// GivenNameDisambiguationRule selects which names tactic 2 may expand.
type GivenNameDisambiguationRule string

const (
	RuleAllNames             GivenNameDisambiguationRule = "all-names"
	RuleAllNamesWithInitials GivenNameDisambiguationRule = "all-names-with-initials"
	RulePrimaryName          GivenNameDisambiguationRule = "primary-name"
	RulePrimaryNameWithInitials GivenNameDisambiguationRule = "primary-name-with-initials"
	RuleByCite               GivenNameDisambiguationRule = "by-cite"
)

// Collapse is the cite-group collapse mode.
type Collapse string

const (
	CollapseCitationNumber Collapse = "citation-number"
	CollapseYear           Collapse = "year"
	CollapseYearSuffix     Collapse = "year-suffix"
	CollapseYearSuffixRanged Collapse = "year-suffix-ranged"
)

// SecondFieldAlign is the bibliography second-field-align option.
type SecondFieldAlign string

const (
	AlignFlush  SecondFieldAlign = "flush"
	AlignMargin SecondFieldAlign = "margin"
)

// Features is the set of enabled optional constructs. CSL-M-only
// elements are rejected unless their feature is on.
type Features map[string]bool

// Union merges declared and programmatic features.
func (f Features) Union(other Features) Features {
	out := make(Features, len(f)+len(other))
	for k := range f {
		out[k] = true
	}
	for k := range other {
		out[k] = true
	}
	return out
}

// Info is the style metadata block.
type Info struct {
	Title             string
	ID                string
	IndependentParent string
	UpdatedAt         string
}

// Layout is the citation or bibliography layout element.
type Layout struct {
	Elements   []Element
	Formatting *format.Formatting
	Affixes    format.Affixes
	Delimiter  string
}

// Sort is a list of sort keys.
type Sort struct {
	Keys []SortKey
}

// SortKey sorts on either a variable or a macro.
type SortKey struct {
	Variable string
	Macro    string

	NamesMin      *uint32
	NamesUseFirst *uint32
	NamesUseLast  *bool
	Descending    bool
}

// IsMacro reports whether the key renders a macro for its value.
func (k SortKey) IsMacro() bool {
	return k.Macro != ""
}

// Citation is the cs:citation section.
type Citation struct {
	Layout Layout
	Sort   *Sort

	DisambiguateAddNames      bool
	DisambiguateAddGivenname  bool
	GivennameDisambiguationRule GivenNameDisambiguationRule
	DisambiguateAddYearSuffix bool

	NameInheritance NameOptions
	NamesDelimiter  *string

	NearNoteDistance       uint32
	CiteGroupDelimiter     *string
	YearSuffixDelimiter    *string
	AfterCollapseDelimiter *string
	Collapse               Collapse
}

// CollapseFallback degrades year-suffix collapsing to year collapsing
// when disambiguate-add-year-suffix is off.
func (c *Citation) CollapseFallback() Collapse {
	if !c.DisambiguateAddYearSuffix &&
		(c.Collapse == CollapseYearSuffix || c.Collapse == CollapseYearSuffixRanged) {
		return CollapseYear
	}
	return c.Collapse
}

// Bibliography is the cs:bibliography section.
type Bibliography struct {
	Layout Layout
	Sort   *Sort

	HangingIndent    bool
	SecondFieldAlign SecondFieldAlign
	LineSpacing      uint32
	EntrySpacing     uint32

	NameInheritance NameOptions
	NamesDelimiter  *string

	SubsequentAuthorSubstitute     *string
	SubsequentAuthorSubstituteRule string
}

// Style is a compiled, validated style.
type Style struct {
	Class   StyleClass
	Version string
	Info    *Info

	Macros     map[string][]Element
	MacroOrder []string

	Citation     Citation
	Bibliography *Bibliography

	Features Features

	NameInheritance NameOptions
	NamesDelimiter  *string

	// LocaleOverrides is keyed by language tag, "" for the no-language
	// overrides.
	LocaleOverrides map[string]*locale.Locale
	DefaultLocale   string

	PageRangeFormat           *numbers.PageRangeFormat
	DemoteNonDroppingParticle DemoteNonDroppingParticle
	InitializeWithHyphen      bool

	// Warnings survived compilation without blocking it.
	Warnings []InvalidCsl
}

// NameCitation is the effective name defaults for citation context:
// root defaults, style-level inheritance, then citation-level.
func (s *Style) NameCitation() NameOptions {
	n := RootNameDefaults().Merge(s.NameInheritance)
	return n.Merge(s.Citation.NameInheritance)
}

// NameBibliography is the effective name defaults for bibliography
// context.
func (s *Style) NameBibliography() NameOptions {
	n := RootNameDefaults().Merge(s.NameInheritance)
	if s.Bibliography == nil {
		return n
	}
	return n.Merge(s.Bibliography.NameInheritance)
}

// NamesDelimiterCitation resolves the names-delimiter for citations.
func (s *Style) NamesDelimiterCitation() *string {
	if d := s.Citation.NamesDelimiter; d != nil {
		return d
	}
	return s.NamesDelimiter
}

// NamesDelimiterBibliography resolves the names-delimiter for the
// bibliography.
func (s *Style) NamesDelimiterBibliography() *string {
	if s.Bibliography != nil && s.Bibliography.NamesDelimiter != nil {
		return s.Bibliography.NamesDelimiter
	}
	return s.NamesDelimiter
}
