package format

// FontStyle, FontWeight and friends are the CSL formatting attributes.
// The zero value always means "inherit / unset".
type (
	FontStyle      string
	FontWeight     string
	FontVariant    string
	TextDecoration string
	VerticalAlign  string
)

const (
	StyleNormal FontStyle = "normal"
	StyleItalic FontStyle = "italic"
	StyleOblique FontStyle = "oblique"

	WeightNormal FontWeight = "normal"
	WeightBold   FontWeight = "bold"
	WeightLight  FontWeight = "light"

	VariantNormal    FontVariant = "normal"
	VariantSmallCaps FontVariant = "small-caps"

	DecorationNone      TextDecoration = "none"
	DecorationUnderline TextDecoration = "underline"

	AlignBaseline VerticalAlign = "baseline"
	AlignSuper    VerticalAlign = "sup"
	AlignSub      VerticalAlign = "sub"
)

// Formatting is the set of inline formatting attributes on an element.
type Formatting struct {
	FontStyle      FontStyle
	FontWeight     FontWeight
	FontVariant    FontVariant
	TextDecoration TextDecoration
	VerticalAlign  VerticalAlign
}

// IsZero reports whether no attribute is set.
func (f Formatting) IsZero() bool {
	return f == Formatting{}
}

// Override layers other on top of f: attributes set in other win.
func (f Formatting) Override(other Formatting) Formatting {
	out := f
	if other.FontStyle != "" {
		out.FontStyle = other.FontStyle
	}
	if other.FontWeight != "" {
		out.FontWeight = other.FontWeight
	}
	if other.FontVariant != "" {
		out.FontVariant = other.FontVariant
	}
	if other.TextDecoration != "" {
		out.TextDecoration = other.TextDecoration
	}
	if other.VerticalAlign != "" {
		out.VerticalAlign = other.VerticalAlign
	}
	return out
}

// Affixes are the prefix/suffix strings on an element.
type Affixes struct {
	Prefix string
	Suffix string
}

// IsZero reports whether both affixes are empty.
func (a Affixes) IsZero() bool {
	return a == Affixes{}
}

// DisplayMode is the bibliography display attribute.
type DisplayMode string

const (
	DisplayBlock       DisplayMode = "block"
	DisplayLeftMargin  DisplayMode = "left-margin"
	DisplayRightInline DisplayMode = "right-inline"
	DisplayIndent      DisplayMode = "indent"
)

// QuoteChars carries the locale's quotation marks.
type QuoteChars struct {
	OuterOpen  string
	OuterClose string
	InnerOpen  string
	InnerClose string
}

// DefaultQuotes are the en-US quotation marks, used when no locale is
// available.
var DefaultQuotes = QuoteChars{
	OuterOpen:  "“",
	OuterClose: "”",
	InnerOpen:  "‘",
	InnerClose: "’",
}

// TextCase is the CSL text-case attribute.
type TextCase string

const (
	CaseNone            TextCase = ""
	CaseLowercase       TextCase = "lowercase"
	CaseUppercase       TextCase = "uppercase"
	CaseCapitalizeFirst TextCase = "capitalize-first"
	CaseCapitalizeAll   TextCase = "capitalize-all"
	CaseSentence        TextCase = "sentence"
	CaseTitle           TextCase = "title"
)

// FormatOptions configures a Format's output behaviour.
type FormatOptions struct {
	// LinkAnchors renders DOI/PMID/PMCID/URL values as hyperlinks.
	LinkAnchors bool
}
