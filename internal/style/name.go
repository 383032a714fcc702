package style

import "github.com/quillabs/citare/internal/format"

// NameAnd is the connector between the last two names.
type NameAnd string

const (
	AndText   NameAnd = "text"
	AndSymbol NameAnd = "symbol"
)

// DelimiterPrecedes controls the delimiter before "et al." or the last
// name.
type DelimiterPrecedes string

const (
	PrecedesContextual  DelimiterPrecedes = "contextual"
	PrecedesAfterInvertedName DelimiterPrecedes = "after-inverted-name"
	PrecedesAlways      DelimiterPrecedes = "always"
	PrecedesNever       DelimiterPrecedes = "never"
)

// NameForm is long (full names), short (family only) or count.
type NameForm string

const (
	NameLong  NameForm = "long"
	NameShort NameForm = "short"
	NameCount NameForm = "count"
)

// NameAsSortOrder inverts given/family order for display.
type NameAsSortOrder string

const (
	SortOrderFirst NameAsSortOrder = "first"
	SortOrderAll   NameAsSortOrder = "all"
)

// NamePart formats the family or given part of each name.
type NamePart struct {
	Formatting   *format.Formatting
	Affixes      format.Affixes
	TextCase     format.TextCase
}

// NameOptions is the attribute set of cs:name. Every field is optional
// so inheritance can merge partial definitions; nil means "not set at
// this level".
type NameOptions struct {
	And                    *NameAnd
	Delimiter              *string
	DelimiterPrecedesEtAl  *DelimiterPrecedes
	DelimiterPrecedesLast  *DelimiterPrecedes
	EtAlMin                *uint32
	EtAlUseFirst           *uint32
	EtAlUseLast            *bool
	EtAlSubsequentMin      *uint32
	EtAlSubsequentUseFirst *uint32
	Form                   *NameForm
	Initialize             *bool
	InitializeWith         *string
	NameAsSortOrder        *NameAsSortOrder
	SortSeparator          *string

	// not inherited
	Formatting     *format.Formatting
	Affixes        format.Affixes
	NamePartGiven  *NamePart
	NamePartFamily *NamePart
}

// RootNameDefaults is what unset attributes mean absent any inheritance.
// Subsequent et-al attributes stay nil so they fall back to the primary
// ones at render time.
func RootNameDefaults() NameOptions {
	delim := ", "
	contextual := PrecedesContextual
	useLast := false
	form := NameLong
	initialize := true
	sortSep := ", "
	return NameOptions{
		Delimiter:             &delim,
		DelimiterPrecedesEtAl: &contextual,
		DelimiterPrecedesLast: &contextual,
		EtAlUseLast:           &useLast,
		Form:                  &form,
		Initialize:            &initialize,
		SortSeparator:         &sortSep,
	}
}

// Merge layers override on top of n: attributes set in override win.
// The non-inherited fields always come from override.
func (n NameOptions) Merge(override NameOptions) NameOptions {
	out := n
	if override.And != nil {
		out.And = override.And
	}
	if override.Delimiter != nil {
		out.Delimiter = override.Delimiter
	}
	if override.DelimiterPrecedesEtAl != nil {
		out.DelimiterPrecedesEtAl = override.DelimiterPrecedesEtAl
	}
	if override.DelimiterPrecedesLast != nil {
		out.DelimiterPrecedesLast = override.DelimiterPrecedesLast
	}
	if override.EtAlMin != nil {
		out.EtAlMin = override.EtAlMin
	}
	if override.EtAlUseFirst != nil {
		out.EtAlUseFirst = override.EtAlUseFirst
	}
	if override.EtAlUseLast != nil {
		out.EtAlUseLast = override.EtAlUseLast
	}
	if override.EtAlSubsequentMin != nil {
		out.EtAlSubsequentMin = override.EtAlSubsequentMin
	}
	if override.EtAlSubsequentUseFirst != nil {
		out.EtAlSubsequentUseFirst = override.EtAlSubsequentUseFirst
	}
	if override.Form != nil {
		out.Form = override.Form
	}
	if override.Initialize != nil {
		out.Initialize = override.Initialize
	}
	if override.InitializeWith != nil {
		out.InitializeWith = override.InitializeWith
	}
	if override.NameAsSortOrder != nil {
		out.NameAsSortOrder = override.NameAsSortOrder
	}
	if override.SortSeparator != nil {
		out.SortSeparator = override.SortSeparator
	}
	out.Formatting = override.Formatting
	out.Affixes = override.Affixes
	out.NamePartGiven = override.NamePartGiven
	out.NamePartFamily = override.NamePartFamily
	return out
}

// EnableEtAl reports whether truncation is configured at all.
func (n NameOptions) EnableEtAl() bool {
	return n.EtAlMin != nil && n.EtAlUseFirst != nil
}
