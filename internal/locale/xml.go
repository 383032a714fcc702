package locale

import (
	"bytes"
	"encoding/xml"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/quillabs/citare/internal/format"
)

type xmlLocale struct {
	XMLName      xml.Name         `xml:"locale"`
	Lang         string           `xml:"http://www.w3.org/XML/1998/namespace lang,attr"`
	StyleOptions *xmlStyleOptions `xml:"style-options"`
	Terms        xmlTerms         `xml:"terms"`
	Dates        []xmlDate        `xml:"date"`
}

type xmlStyleOptions struct {
	PunctuationInQuote     string `xml:"punctuation-in-quote,attr"`
	LimitDayOrdinalsToDay1 string `xml:"limit-day-ordinals-to-day-1,attr"`
}

type xmlTerms struct {
	Terms []xmlTerm `xml:"term"`
}

type xmlTerm struct {
	Name       string  `xml:"name,attr"`
	Form       string  `xml:"form,attr"`
	Gender     string  `xml:"gender,attr"`
	GenderForm string  `xml:"gender-form,attr"`
	Match      string  `xml:"match,attr"`
	Single     *string `xml:"single"`
	Multiple   *string `xml:"multiple"`
	Text       string  `xml:",chardata"`
}

type xmlDate struct {
	Form      string        `xml:"form,attr"`
	Delimiter string        `xml:"delimiter,attr"`
	TextCase  string        `xml:"text-case,attr"`
	Parts     []xmlDatePart `xml:"date-part"`
}

type xmlDatePart struct {
	Name           string `xml:"name,attr"`
	Form           string `xml:"form,attr"`
	Prefix         string `xml:"prefix,attr"`
	Suffix         string `xml:"suffix,attr"`
	RangeDelimiter string `xml:"range-delimiter,attr"`
	FontStyle      string `xml:"font-style,attr"`
	FontWeight     string `xml:"font-weight,attr"`
	FontVariant    string `xml:"font-variant,attr"`
	TextCase       string `xml:"text-case,attr"`
}

// Parse decodes one locale XML document.
func Parse(data []byte) (*Locale, error) {
	var raw xmlLocale
	dec := xml.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&raw); err != nil {
		return nil, errors.Wrap(err, "parsing locale xml")
	}
	return fromRaw(&raw)
}

// DecodeElement decodes a cs:locale element embedded in a style, from
// the style compiler's running decoder.
func DecodeElement(dec *xml.Decoder, start *xml.StartElement) (*Locale, error) {
	var raw xmlLocale
	if err := dec.DecodeElement(&raw, start); err != nil {
		return nil, errors.Wrap(err, "parsing inline locale")
	}
	return fromRaw(&raw)
}

func fromRaw(raw *xmlLocale) (*Locale, error) {
	l := NewLocale()
	if raw.Lang != "" {
		lang := ParseLang(raw.Lang)
		l.Lang = &lang
	}
	if o := raw.StyleOptions; o != nil {
		l.Options.PunctuationInQuote = parseBoolAttr(o.PunctuationInQuote)
		l.Options.LimitDayOrdinalsToDay1 = parseBoolAttr(o.LimitDayOrdinalsToDay1)
	}
	for _, t := range raw.Terms.Terms {
		if err := addTerm(l, t); err != nil {
			return nil, err
		}
	}
	for i := range raw.Dates {
		d, err := dateFromRaw(&raw.Dates[i])
		if err != nil {
			return nil, err
		}
		l.Dates[d.Form] = d
	}
	return l, nil
}

func parseBoolAttr(s string) *bool {
	switch s {
	case "true":
		v := true
		return &v
	case "false":
		v := false
		return &v
	}
	return nil
}

func addTerm(l *Locale, t xmlTerm) error {
	if t.Name == "" {
		return errors.New("term element without a name attribute")
	}
	value := termValue(t)
	form := TermForm(t.Form)
	if form == "" {
		form = FormLong
	}

	if ord, ok := parseOrdinalName(t.Name); ok {
		if value.Pluralized {
			return errors.Newf("ordinal term %q cannot be pluralized", t.Name)
		}
		if t.Match != "" && ord.Kind == OrdMod100 {
			ord.Match = OrdinalMatch(t.Match)
		}
		gender := parseGender(t.GenderForm)
		l.Ordinals[OrdinalSelector{Term: ord, Gender: gender}] = value.Single
		return nil
	}
	if isGenderedTerm(t.Name) {
		l.Gendered[GenderedSelector{Name: t.Name, Form: form}] = GenderedTerm{
			Value:  value,
			Gender: parseGender(t.Gender),
		}
		return nil
	}
	l.Simple[SimpleSelector{Name: t.Name, Form: form}] = value
	return nil
}

func termValue(t xmlTerm) TermValue {
	if t.Single != nil || t.Multiple != nil {
		v := TermValue{Pluralized: true}
		if t.Single != nil {
			v.Single = *t.Single
		}
		if t.Multiple != nil {
			v.Multiple = *t.Multiple
		}
		return v
	}
	return TermValue{Single: strings.TrimSpace(t.Text)}
}

// parseOrdinalName recognizes "ordinal", "ordinal-NN" and
// "long-ordinal-NN" with their default match modes.
func parseOrdinalName(name string) (OrdinalTerm, bool) {
	if name == "ordinal" {
		return OrdinalTerm{Kind: OrdGeneric}, true
	}
	if rest, ok := strings.CutPrefix(name, "long-ordinal-"); ok {
		n, err := strconv.ParseUint(rest, 10, 32)
		if err != nil || n < 1 || n > 10 {
			return OrdinalTerm{}, false
		}
		return OrdinalTerm{Kind: OrdLong, Value: uint32(n)}, true
	}
	if rest, ok := strings.CutPrefix(name, "ordinal-"); ok {
		n, err := strconv.ParseUint(rest, 10, 32)
		if err != nil || n > 99 {
			return OrdinalTerm{}, false
		}
		match := MatchLastDigit
		if n >= 10 {
			match = MatchLastTwoDigits
		}
		return OrdinalTerm{Kind: OrdMod100, Value: uint32(n), Match: match}, true
	}
	return OrdinalTerm{}, false
}

func dateFromRaw(raw *xmlDate) (*Date, error) {
	form := DateForm(raw.Form)
	if form != DateFormText && form != DateFormNumeric {
		return nil, errors.Newf("locale date form %q is not text or numeric", raw.Form)
	}
	d := &Date{
		Form:      form,
		Delimiter: raw.Delimiter,
		TextCase:  format.TextCase(raw.TextCase),
	}
	for _, p := range raw.Parts {
		part := DatePart{
			Name:           DatePartName(p.Name),
			Form:           p.Form,
			Affixes:        format.Affixes{Prefix: p.Prefix, Suffix: p.Suffix},
			RangeDelimiter: p.RangeDelimiter,
			TextCase:       format.TextCase(p.TextCase),
		}
		switch part.Name {
		case PartYear, PartMonth, PartDay:
		default:
			return nil, errors.Newf("locale date-part name %q", p.Name)
		}
		f := format.Formatting{
			FontStyle:   format.FontStyle(p.FontStyle),
			FontWeight:  format.FontWeight(p.FontWeight),
			FontVariant: format.FontVariant(p.FontVariant),
		}
		if !f.IsZero() {
			part.Formatting = &f
		}
		d.Parts = append(d.Parts, part)
	}
	return d, nil
}
