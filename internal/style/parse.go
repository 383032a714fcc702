package style

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/quillabs/citare/internal/format"
	"github.com/quillabs/citare/internal/locale"
	"github.com/quillabs/citare/internal/numbers"
)

// ParseOptions controls compilation.
type ParseOptions struct {
	// AllowNoInfo permits styles without an info block. External input
	// should leave this off.
	AllowNoInfo bool
	// Features enabled programmatically, unioned with the style's own
	// declarations.
	Features Features
}

// supportedVersions lists the accepted cs:style version attributes.
// "1.1mlz1" is the CSL-M variant and switches on the csl-m feature.
var supportedVersions = map[string]bool{
	"1.0":    true,
	"1.0.1":  true,
	"1.0.2":  true,
	"1.1mlz1": true,
}

// Parse compiles CSL XML. All validation problems are collected into a
// single *InvalidError; only malformed XML short-circuits with a
// *ParseError.
func Parse(src []byte, opts ParseOptions) (*Style, error) {
	p := &parser{
		dec:      xml.NewDecoder(bytes.NewReader(src)),
		features: Features{}.Union(opts.Features),
	}

	root, rootRange, err := p.rootElement()
	if err != nil {
		return nil, &ParseError{Err: err}
	}
	if root.Name.Local != "style" {
		return nil, &InvalidError{Errors: []InvalidCsl{{
			Range:    rootRange,
			Severity: Error,
			Code:     ErrNotAStyle,
			Message:  fmt.Sprintf("root element is <%s>, expected <style>", root.Name.Local),
		}}}
	}

	s, err := p.parseStyle(root, rootRange)
	if err != nil {
		return nil, err
	}

	p.checkInfo(s, opts, rootRange)
	p.checkMacros(s)
	p.checkGated()

	if dep := dependentParent(s); dep != "" {
		return nil, &DependentStyleError{RequiredParent: dep}
	}
	if s.Citation.Layout.Elements == nil {
		p.errorf(rootRange, ErrMissingCitation,
			"style has no citation layout")
	}

	for _, d := range p.errs {
		if d.Severity == Error {
			return nil, &InvalidError{Errors: p.errs}
		}
	}
	s.Warnings = p.errs
	s.Features = p.features
	return s, nil
}

func dependentParent(s *Style) string {
	if s.Info != nil && s.Info.IndependentParent != "" &&
		s.Citation.Layout.Elements == nil && s.Bibliography == nil {
		return s.Info.IndependentParent
	}
	return ""
}

type macroRef struct {
	name string
	rng  ByteRange
	from string // enclosing macro, "" for layouts and sort keys
}

type gatedUse struct {
	feature string
	rng     ByteRange
	message string
}

type parser struct {
	dec      *xml.Decoder
	errs     []InvalidCsl
	refs     []macroRef
	gated    []gatedUse
	features Features
	macro    string
}

func (p *parser) errorf(rng ByteRange, code, msg string, args ...any) {
	p.errs = append(p.errs, InvalidCsl{
		Range:    rng,
		Severity: Error,
		Code:     code,
		Message:  fmt.Sprintf(msg, args...),
	})
}

func (p *parser) warnf(rng ByteRange, code, msg string, args ...any) {
	p.errs = append(p.errs, InvalidCsl{
		Range:    rng,
		Severity: Warning,
		Code:     code,
		Message:  fmt.Sprintf(msg, args...),
	})
}

func (p *parser) hint(hint string) {
	if len(p.errs) > 0 {
		p.errs[len(p.errs)-1].Hint = hint
	}
}

// token reads one token, returning the byte range it occupied.
func (p *parser) token() (xml.Token, ByteRange, error) {
	start := p.dec.InputOffset()
	tok, err := p.dec.Token()
	return tok, ByteRange{Start: start, End: p.dec.InputOffset()}, err
}

func (p *parser) rootElement() (xml.StartElement, ByteRange, error) {
	for {
		tok, rng, err := p.token()
		if err != nil {
			return xml.StartElement{}, rng, err
		}
		if start, ok := tok.(xml.StartElement); ok {
			return start, rng, nil
		}
	}
}

// skip consumes the current element's subtree.
func (p *parser) skip() error {
	return p.dec.Skip()
}

func attr(start xml.StartElement, name string) (string, bool) {
	for _, a := range start.Attr {
		if a.Name.Local == name {
			return a.Value, true
		}
	}
	return "", false
}

func attrOr(start xml.StartElement, name, def string) string {
	if v, ok := attr(start, name); ok {
		return v
	}
	return def
}

func (p *parser) attrUint(start xml.StartElement, rng ByteRange, name string) *uint32 {
	v, ok := attr(start, name)
	if !ok {
		return nil
	}
	n, err := strconv.ParseUint(v, 10, 32)
	if err != nil {
		p.errorf(rng, ErrBadAttributeValue, "%s=%q is not a whole number", name, v)
		return nil
	}
	u := uint32(n)
	return &u
}

func (p *parser) attrBool(start xml.StartElement, rng ByteRange, name string) *bool {
	v, ok := attr(start, name)
	if !ok {
		return nil
	}
	switch v {
	case "true":
		t := true
		return &t
	case "false":
		f := false
		return &f
	}
	p.errorf(rng, ErrBadAttributeValue, "%s=%q is not true or false", name, v)
	return nil
}

func parseFormatting(start xml.StartElement) *format.Formatting {
	f := format.Formatting{
		FontStyle:      format.FontStyle(attrOr(start, "font-style", "")),
		FontWeight:     format.FontWeight(attrOr(start, "font-weight", "")),
		FontVariant:    format.FontVariant(attrOr(start, "font-variant", "")),
		TextDecoration: format.TextDecoration(attrOr(start, "text-decoration", "")),
		VerticalAlign:  format.VerticalAlign(attrOr(start, "vertical-align", "")),
	}
	if f.IsZero() {
		return nil
	}
	return &f
}

func parseAffixes(start xml.StartElement) format.Affixes {
	return format.Affixes{
		Prefix: attrOr(start, "prefix", ""),
		Suffix: attrOr(start, "suffix", ""),
	}
}

func (p *parser) parseStyle(start xml.StartElement, rng ByteRange) (*Style, error) {
	s := &Style{
		Class:                     StyleClass(attrOr(start, "class", string(ClassNote))),
		Version:                   attrOr(start, "version", ""),
		Macros:                    make(map[string][]Element),
		LocaleOverrides:           make(map[string]*locale.Locale),
		DefaultLocale:             attrOr(start, "default-locale", ""),
		DemoteNonDroppingParticle: DemoteNonDroppingParticle(attrOr(start, "demote-non-dropping-particle", string(DemoteDisplayAndSort))),
		InitializeWithHyphen:      true,
	}
	if s.Class != ClassInText && s.Class != ClassNote {
		p.errorf(rng, ErrBadAttributeValue, "class=%q is not in-text or note", s.Class)
	}
	if !supportedVersions[s.Version] {
		p.errorf(rng, ErrUnsupportedVer, "unsupported style version %q", s.Version)
		p.hint(`supported versions are "1.0", "1.0.1", "1.0.2" and "1.1mlz1"`)
	}
	if s.Version == "1.1mlz1" {
		p.features["csl-m"] = true
	}
	if v, ok := attr(start, "initialize-with-hyphen"); ok {
		s.InitializeWithHyphen = v != "false"
	}
	if v, ok := attr(start, "page-range-format"); ok {
		if prf, ok := parsePageRangeFormat(v); ok {
			s.PageRangeFormat = &prf
		} else {
			p.errorf(rng, ErrBadAttributeValue, "page-range-format=%q", v)
		}
	}
	if v, ok := attr(start, "names-delimiter"); ok {
		s.NamesDelimiter = &v
	}
	s.NameInheritance = p.parseInheritableNameAttrs(start, rng)

	for {
		tok, crng, err := p.token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &ParseError{Err: err}
		}
		el, ok := tok.(xml.StartElement)
		if !ok {
			if _, end := tok.(xml.EndElement); end {
				break
			}
			continue
		}
		switch el.Name.Local {
		case "info":
			s.Info = p.parseInfo(el)
		case "features":
			p.parseFeatures(el)
		case "locale":
			l, err := locale.DecodeElement(p.dec, &el)
			if err != nil {
				p.errorf(crng, ErrBadInlineLocale, "inline locale: %v", err)
				continue
			}
			key := ""
			if l.Lang != nil {
				key = l.Lang.String()
			}
			s.LocaleOverrides[key] = l
		case "macro":
			p.parseMacro(el, crng, s)
		case "citation":
			s.Citation = p.parseCitation(el, crng)
		case "bibliography":
			b := p.parseBibliography(el, crng)
			s.Bibliography = &b
		default:
			p.warnf(crng, ErrUnknownElement, "unrecognized element <%s>", el.Name.Local)
			if err := p.skip(); err != nil {
				return nil, &ParseError{Err: err}
			}
		}
	}
	return s, nil
}

func (p *parser) parseInfo(start xml.StartElement) *Info {
	info := &Info{}
	for {
		tok, _, err := p.token()
		if err != nil {
			return info
		}
		switch el := tok.(type) {
		case xml.StartElement:
			switch el.Name.Local {
			case "title":
				info.Title = p.elementText(el)
			case "id":
				info.ID = p.elementText(el)
			case "updated":
				info.UpdatedAt = p.elementText(el)
			case "link":
				if attrOr(el, "rel", "") == "independent-parent" {
					info.IndependentParent = attrOr(el, "href", "")
				}
				p.skip()
			default:
				p.skip()
			}
		case xml.EndElement:
			return info
		}
	}
}

func (p *parser) parseFeatures(start xml.StartElement) {
	for {
		tok, _, err := p.token()
		if err != nil {
			return
		}
		switch el := tok.(type) {
		case xml.StartElement:
			if el.Name.Local == "feature" {
				if name, ok := attr(el, "name"); ok {
					p.features[name] = true
				}
			}
			p.skip()
		case xml.EndElement:
			return
		}
	}
}

func (p *parser) elementText(start xml.StartElement) string {
	var sb strings.Builder
	depth := 0
	for {
		tok, _, err := p.token()
		if err != nil {
			return sb.String()
		}
		switch t := tok.(type) {
		case xml.CharData:
			if depth == 0 {
				sb.Write(t)
			}
		case xml.StartElement:
			depth++
		case xml.EndElement:
			if depth == 0 {
				return strings.TrimSpace(sb.String())
			}
			depth--
		}
	}
}

func (p *parser) parseMacro(start xml.StartElement, rng ByteRange, s *Style) {
	name, ok := attr(start, "name")
	if !ok {
		p.errorf(rng, ErrMissingAttribute, "macro element without a name attribute")
		p.skip()
		return
	}
	if _, dup := s.Macros[name]; dup {
		p.errorf(rng, ErrDuplicateMacro, "macro %q declared twice", name)
	}
	prev := p.macro
	p.macro = name
	s.Macros[name] = p.parseElements()
	p.macro = prev
	s.MacroOrder = append(s.MacroOrder, name)
}

// parseElements consumes children until the enclosing end tag.
func (p *parser) parseElements() []Element {
	var out []Element
	for {
		tok, rng, err := p.token()
		if err != nil {
			return out
		}
		switch el := tok.(type) {
		case xml.StartElement:
			if e := p.parseElement(el, rng); e != nil {
				out = append(out, e)
			}
		case xml.EndElement:
			return out
		}
	}
}

func (p *parser) parseElement(el xml.StartElement, rng ByteRange) Element {
	switch el.Name.Local {
	case "text":
		return p.parseText(el, rng)
	case "label":
		return p.parseLabel(el, rng)
	case "number":
		return p.parseNumber(el, rng)
	case "group":
		return p.parseGroup(el)
	case "names":
		return p.parseNames(el, rng)
	case "date":
		return p.parseDate(el, rng)
	case "choose":
		return p.parseChoose(el, rng)
	}
	p.warnf(rng, ErrUnknownElement, "unrecognized element <%s>", el.Name.Local)
	p.skip()
	return nil
}

func (p *parser) parseText(el xml.StartElement, rng ByteRange) Element {
	t := &Text{
		Formatting:   parseFormatting(el),
		Affixes:      parseAffixes(el),
		Quotes:       attrOr(el, "quotes", "") == "true",
		StripPeriods: attrOr(el, "strip-periods", "") == "true",
		TextCase:     format.TextCase(attrOr(el, "text-case", "")),
		Display:      format.DisplayMode(attrOr(el, "display", "")),
	}
	form := locale.TermForm(attrOr(el, "form", string(locale.FormLong)))
	switch {
	case hasAttr(el, "macro"):
		name, _ := attr(el, "macro")
		t.Source = TextSource{Kind: SourceMacro, Name: name}
		p.refs = append(p.refs, macroRef{name: name, rng: rng, from: p.macro})
	case hasAttr(el, "variable"):
		name, _ := attr(el, "variable")
		t.Source = TextSource{Kind: SourceVariable, Name: name, Form: form}
	case hasAttr(el, "term"):
		name, _ := attr(el, "term")
		t.Source = TextSource{
			Kind:   SourceTerm,
			Name:   name,
			Form:   form,
			Plural: attrOr(el, "plural", "") == "true",
		}
	case hasAttr(el, "value"):
		v, _ := attr(el, "value")
		t.Source = TextSource{Kind: SourceValue, Value: v}
	default:
		p.errorf(rng, ErrMissingAttribute,
			"text element needs one of macro, variable, term or value")
	}
	p.skip()
	return t
}

func hasAttr(el xml.StartElement, name string) bool {
	_, ok := attr(el, name)
	return ok
}

func (p *parser) parseLabel(el xml.StartElement, rng ByteRange) Element {
	variable, ok := attr(el, "variable")
	if !ok {
		p.errorf(rng, ErrMissingAttribute, "label element without a variable attribute")
	}
	l := &Label{
		Variable:     variable,
		Form:         locale.TermForm(attrOr(el, "form", string(locale.FormLong))),
		Plural:       LabelPlural(attrOr(el, "plural", string(PluralContextual))),
		Formatting:   parseFormatting(el),
		Affixes:      parseAffixes(el),
		StripPeriods: attrOr(el, "strip-periods", "") == "true",
		TextCase:     format.TextCase(attrOr(el, "text-case", "")),
	}
	p.skip()
	return l
}

func (p *parser) parseNumber(el xml.StartElement, rng ByteRange) Element {
	variable, ok := attr(el, "variable")
	if !ok {
		p.errorf(rng, ErrMissingAttribute, "number element without a variable attribute")
	}
	form := NumericForm(attrOr(el, "form", string(FormNumeric)))
	switch form {
	case FormNumeric, FormOrdinal, FormLongOrdinal, FormRoman:
	default:
		p.errorf(rng, ErrBadAttributeValue, "number form=%q", form)
		form = FormNumeric
	}
	n := &Number{
		Variable:   variable,
		Form:       form,
		Formatting: parseFormatting(el),
		Affixes:    parseAffixes(el),
		TextCase:   format.TextCase(attrOr(el, "text-case", "")),
		Display:    format.DisplayMode(attrOr(el, "display", "")),
	}
	p.skip()
	return n
}

func (p *parser) parseGroup(el xml.StartElement) Element {
	return &Group{
		Formatting: parseFormatting(el),
		Affixes:    parseAffixes(el),
		Delimiter:  attrOr(el, "delimiter", ""),
		Display:    format.DisplayMode(attrOr(el, "display", "")),
		Elements:   p.parseElements(),
	}
}

func (p *parser) parseNames(el xml.StartElement, rng ByteRange) Element {
	variable, ok := attr(el, "variable")
	if !ok {
		p.errorf(rng, ErrMissingAttribute, "names element without a variable attribute")
	}
	n := &Names{
		Variables:  strings.Fields(variable),
		Formatting: parseFormatting(el),
		Affixes:    parseAffixes(el),
		Display:    format.DisplayMode(attrOr(el, "display", "")),
	}
	if d, ok := attr(el, "delimiter"); ok {
		n.Delimiter = &d
	}
	sawName := false
	for {
		tok, crng, err := p.token()
		if err != nil {
			return n
		}
		switch child := tok.(type) {
		case xml.StartElement:
			switch child.Name.Local {
			case "name":
				opts := p.parseNameEl(child, crng)
				n.Name = &opts
				sawName = true
			case "label":
				n.Label = &NamesLabel{
					Form:         locale.TermForm(attrOr(child, "form", string(locale.FormLong))),
					Plural:       LabelPlural(attrOr(child, "plural", string(PluralContextual))),
					Formatting:   parseFormatting(child),
					Affixes:      parseAffixes(child),
					StripPeriods: attrOr(child, "strip-periods", "") == "true",
					TextCase:     format.TextCase(attrOr(child, "text-case", "")),
					AfterName:    sawName,
				}
				p.skip()
			case "et-al":
				n.EtAl = &EtAl{
					Term:       attrOr(child, "term", "et-al"),
					Formatting: parseFormatting(child),
				}
				p.skip()
			case "substitute":
				n.Substitute = p.parseElements()
			default:
				p.warnf(crng, ErrUnknownElement,
					"unrecognized element <%s> in names", child.Name.Local)
				p.skip()
			}
		case xml.EndElement:
			return n
		}
	}
}

// parseNameEl reads the attribute set of a cs:name element, including
// its name-part children when present.
func (p *parser) parseNameEl(el xml.StartElement, rng ByteRange) NameOptions {
	n := p.parseInheritableNameAttrs(el, rng)
	n.Formatting = parseFormatting(el)
	n.Affixes = parseAffixes(el)
	if d, ok := attr(el, "delimiter"); ok {
		n.Delimiter = &d
	}
	if f, ok := attr(el, "form"); ok {
		form := NameForm(f)
		switch form {
		case NameLong, NameShort, NameCount:
			n.Form = &form
		default:
			p.errorf(rng, ErrBadAttributeValue, "name form=%q", f)
		}
	}
	for {
		tok, crng, err := p.token()
		if err != nil {
			return n
		}
		switch child := tok.(type) {
		case xml.StartElement:
			if child.Name.Local != "name-part" {
				p.warnf(crng, ErrUnknownElement,
					"unrecognized element <%s> in name", child.Name.Local)
				p.skip()
				continue
			}
			part := &NamePart{
				Formatting: parseFormatting(child),
				Affixes:    parseAffixes(child),
				TextCase:   format.TextCase(attrOr(child, "text-case", "")),
			}
			switch attrOr(child, "name", "") {
			case "given":
				n.NamePartGiven = part
			case "family":
				n.NamePartFamily = part
			default:
				p.errorf(crng, ErrBadAttributeValue,
					"name-part name=%q is not given or family", attrOr(child, "name", ""))
			}
			p.skip()
		case xml.EndElement:
			return n
		}
	}
}

// parseInheritableNameAttrs reads the inheritable name attributes as
// they appear on style, citation, bibliography and names elements
// (there under their name-* spellings).
func (p *parser) parseInheritableNameAttrs(el xml.StartElement, rng ByteRange) NameOptions {
	n := NameOptions{}
	if v, ok := attr(el, "and"); ok {
		and := NameAnd(v)
		if and != AndText && and != AndSymbol {
			p.errorf(rng, ErrBadAttributeValue, "and=%q is not text or symbol", v)
		} else {
			n.And = &and
		}
	}
	if v, ok := attr(el, "name-delimiter"); ok {
		n.Delimiter = &v
	}
	if v, ok := attr(el, "delimiter-precedes-et-al"); ok {
		dp := DelimiterPrecedes(v)
		n.DelimiterPrecedesEtAl = &dp
	}
	if v, ok := attr(el, "delimiter-precedes-last"); ok {
		dp := DelimiterPrecedes(v)
		n.DelimiterPrecedesLast = &dp
	}
	n.EtAlMin = p.attrUint(el, rng, "et-al-min")
	n.EtAlUseFirst = p.attrUint(el, rng, "et-al-use-first")
	n.EtAlUseLast = p.attrBool(el, rng, "et-al-use-last")
	n.EtAlSubsequentMin = p.attrUint(el, rng, "et-al-subsequent-min")
	n.EtAlSubsequentUseFirst = p.attrUint(el, rng, "et-al-subsequent-use-first")
	if v, ok := attr(el, "name-form"); ok {
		form := NameForm(v)
		n.Form = &form
	}
	n.Initialize = p.attrBool(el, rng, "initialize")
	if v, ok := attr(el, "initialize-with"); ok {
		n.InitializeWith = &v
	}
	if v, ok := attr(el, "name-as-sort-order"); ok {
		naso := NameAsSortOrder(v)
		if naso != SortOrderFirst && naso != SortOrderAll {
			p.errorf(rng, ErrBadAttributeValue, "name-as-sort-order=%q", v)
		} else {
			n.NameAsSortOrder = &naso
		}
	}
	if v, ok := attr(el, "sort-separator"); ok {
		n.SortSeparator = &v
	}
	return n
}

func (p *parser) parseDate(el xml.StartElement, rng ByteRange) Element {
	variable, ok := attr(el, "variable")
	if !ok {
		p.errorf(rng, ErrMissingAttribute, "date element without a variable attribute")
	}
	d := &Date{
		Variable:   variable,
		Form:       locale.DateForm(attrOr(el, "form", "")),
		PartsFilter: DatePartsFilter(attrOr(el, "date-parts", "")),
		Formatting: parseFormatting(el),
		Affixes:    parseAffixes(el),
		Delimiter:  attrOr(el, "delimiter", ""),
		TextCase:   format.TextCase(attrOr(el, "text-case", "")),
		Display:    format.DisplayMode(attrOr(el, "display", "")),
	}
	if d.Form != "" && d.Form != locale.DateFormText && d.Form != locale.DateFormNumeric {
		p.errorf(rng, ErrBadAttributeValue, "date form=%q is not text or numeric", d.Form)
		d.Form = ""
	}
	for {
		tok, crng, err := p.token()
		if err != nil {
			return d
		}
		switch child := tok.(type) {
		case xml.StartElement:
			if child.Name.Local != "date-part" {
				p.warnf(crng, ErrUnknownElement,
					"unrecognized element <%s> in date", child.Name.Local)
				p.skip()
				continue
			}
			part := locale.DatePart{
				Name:           locale.DatePartName(attrOr(child, "name", "")),
				Form:           attrOr(child, "form", ""),
				Affixes:        parseAffixes(child),
				Formatting:     nil,
				TextCase:       format.TextCase(attrOr(child, "text-case", "")),
				RangeDelimiter: attrOr(child, "range-delimiter", ""),
			}
			part.Formatting = parseFormatting(child)
			switch part.Name {
			case locale.PartYear, locale.PartMonth, locale.PartDay:
				d.Parts = append(d.Parts, part)
			default:
				p.errorf(crng, ErrBadAttributeValue, "date-part name=%q", part.Name)
			}
			p.skip()
		case xml.EndElement:
			return d
		}
	}
}

func (p *parser) parseChoose(el xml.StartElement, rng ByteRange) Element {
	c := &Choose{}
	sawIf := false
	for {
		tok, crng, err := p.token()
		if err != nil {
			return c
		}
		switch child := tok.(type) {
		case xml.StartElement:
			switch child.Name.Local {
			case "if":
				c.If = IfThen{
					Cond:     p.parseConditions(child, crng),
					Elements: p.parseElements(),
				}
				sawIf = true
			case "else-if":
				c.ElseIf = append(c.ElseIf, IfThen{
					Cond:     p.parseConditions(child, crng),
					Elements: p.parseElements(),
				})
			case "else":
				c.Else = p.parseElements()
			default:
				p.warnf(crng, ErrUnknownElement,
					"unrecognized element <%s> in choose", child.Name.Local)
				p.skip()
			}
		case xml.EndElement:
			if !sawIf {
				p.errorf(rng, ErrMissingAttribute, "choose element without an if branch")
			}
			return c
		}
	}
}

func (p *parser) parseConditions(el xml.StartElement, rng ByteRange) Conditions {
	c := Conditions{Match: Match(attrOr(el, "match", string(MatchAll)))}
	switch c.Match {
	case MatchAll, MatchAny, MatchNone:
	default:
		p.errorf(rng, ErrBadAttributeValue, "match=%q is not all, any or none", c.Match)
		c.Match = MatchAll
	}
	add := func(kind CondKind, values string) {
		for _, v := range strings.Fields(values) {
			c.Conds = append(c.Conds, Cond{Kind: kind, Value: v})
		}
	}
	for _, a := range el.Attr {
		switch a.Name.Local {
		case "match":
		case "type":
			add(CondType, a.Value)
		case "variable":
			add(CondVariable, a.Value)
		case "is-numeric":
			add(CondIsNumeric, a.Value)
		case "is-uncertain-date":
			add(CondIsUncertainDate, a.Value)
		case "position":
			add(CondPosition, a.Value)
		case "locator":
			add(CondLocator, a.Value)
		case "is-plural":
			add(CondIsPlural, a.Value)
		case "has-year-only":
			add(CondHasYearOnly, a.Value)
		case "has-month-or-season":
			add(CondHasMonthOrSeason, a.Value)
		case "has-day":
			add(CondHasDay, a.Value)
		case "disambiguate":
			c.Conds = append(c.Conds, Cond{Kind: CondDisambiguate, Bool: a.Value == "true"})
		case "jurisdiction":
			p.gated = append(p.gated, gatedUse{
				feature: "csl-m",
				rng:     rng,
				message: "condition jurisdiction is a CSL-M extension",
			})
			add(CondJurisdiction, a.Value)
		default:
			p.warnf(rng, ErrUnknownElement, "unrecognized condition %q", a.Name.Local)
		}
	}
	return c
}

func (p *parser) parseCitation(el xml.StartElement, rng ByteRange) Citation {
	c := Citation{
		DisambiguateAddNames:        attrOr(el, "disambiguate-add-names", "") == "true",
		DisambiguateAddGivenname:    attrOr(el, "disambiguate-add-givenname", "") == "true",
		DisambiguateAddYearSuffix:   attrOr(el, "disambiguate-add-year-suffix", "") == "true",
		GivennameDisambiguationRule: GivenNameDisambiguationRule(attrOr(el, "givenname-disambiguation-rule", string(RuleByCite))),
		NearNoteDistance:            5,
		Collapse:                    Collapse(attrOr(el, "collapse", "")),
	}
	if v := p.attrUint(el, rng, "near-note-distance"); v != nil {
		c.NearNoteDistance = *v
	}
	if v, ok := attr(el, "cite-group-delimiter"); ok {
		c.CiteGroupDelimiter = &v
	}
	if v, ok := attr(el, "year-suffix-delimiter"); ok {
		c.YearSuffixDelimiter = &v
	}
	if v, ok := attr(el, "after-collapse-delimiter"); ok {
		c.AfterCollapseDelimiter = &v
	}
	if v, ok := attr(el, "names-delimiter"); ok {
		c.NamesDelimiter = &v
	}
	c.NameInheritance = p.parseInheritableNameAttrs(el, rng)

	for {
		tok, crng, err := p.token()
		if err != nil {
			return c
		}
		switch child := tok.(type) {
		case xml.StartElement:
			switch child.Name.Local {
			case "layout":
				c.Layout = p.parseLayout(child)
			case "sort":
				s := p.parseSort(child, crng)
				c.Sort = &s
			default:
				p.warnf(crng, ErrUnknownElement,
					"unrecognized element <%s> in citation", child.Name.Local)
				p.skip()
			}
		case xml.EndElement:
			return c
		}
	}
}

func (p *parser) parseBibliography(el xml.StartElement, rng ByteRange) Bibliography {
	b := Bibliography{
		HangingIndent:                  attrOr(el, "hanging-indent", "") == "true",
		SecondFieldAlign:               SecondFieldAlign(attrOr(el, "second-field-align", "")),
		LineSpacing:                    1,
		EntrySpacing:                   1,
		SubsequentAuthorSubstituteRule: attrOr(el, "subsequent-author-substitute-rule", "complete-all"),
	}
	if v := p.attrUint(el, rng, "line-spacing"); v != nil && *v >= 1 {
		b.LineSpacing = *v
	}
	if v := p.attrUint(el, rng, "entry-spacing"); v != nil {
		b.EntrySpacing = *v
	}
	if v, ok := attr(el, "subsequent-author-substitute"); ok {
		b.SubsequentAuthorSubstitute = &v
	}
	if v, ok := attr(el, "names-delimiter"); ok {
		b.NamesDelimiter = &v
	}
	b.NameInheritance = p.parseInheritableNameAttrs(el, rng)

	for {
		tok, crng, err := p.token()
		if err != nil {
			return b
		}
		switch child := tok.(type) {
		case xml.StartElement:
			switch child.Name.Local {
			case "layout":
				b.Layout = p.parseLayout(child)
			case "sort":
				s := p.parseSort(child, crng)
				b.Sort = &s
			default:
				p.warnf(crng, ErrUnknownElement,
					"unrecognized element <%s> in bibliography", child.Name.Local)
				p.skip()
			}
		case xml.EndElement:
			return b
		}
	}
}

func (p *parser) parseLayout(el xml.StartElement) Layout {
	l := Layout{
		Formatting: parseFormatting(el),
		Affixes:    parseAffixes(el),
		Delimiter:  attrOr(el, "delimiter", ""),
	}
	l.Elements = p.parseElements()
	if l.Elements == nil {
		// distinguish "empty layout" from "no layout"
		l.Elements = []Element{}
	}
	return l
}

func (p *parser) parseSort(el xml.StartElement, rng ByteRange) Sort {
	var s Sort
	for {
		tok, crng, err := p.token()
		if err != nil {
			return s
		}
		switch child := tok.(type) {
		case xml.StartElement:
			if child.Name.Local != "key" {
				p.warnf(crng, ErrUnknownElement,
					"unrecognized element <%s> in sort", child.Name.Local)
				p.skip()
				continue
			}
			key := SortKey{
				Variable:      attrOr(child, "variable", ""),
				Macro:         attrOr(child, "macro", ""),
				NamesMin:      p.attrUint(child, crng, "names-min"),
				NamesUseFirst: p.attrUint(child, crng, "names-use-first"),
				NamesUseLast:  p.attrBool(child, crng, "names-use-last"),
				Descending:    attrOr(child, "sort", "") == "descending",
			}
			switch {
			case key.Variable == "" && key.Macro == "":
				p.errorf(crng, ErrMissingAttribute,
					"sort key needs a variable or a macro")
			case key.Variable != "" && key.Macro != "":
				p.errorf(crng, ErrBadAttributeValue,
					"sort key has both a variable and a macro")
			case key.Macro != "":
				p.refs = append(p.refs, macroRef{name: key.Macro, rng: crng})
			}
			s.Keys = append(s.Keys, key)
			p.skip()
		case xml.EndElement:
			return s
		}
	}
}

func parsePageRangeFormat(v string) (numbers.PageRangeFormat, bool) {
	switch v {
	case "expanded":
		return numbers.PageRangeExpanded, true
	case "minimal":
		return numbers.PageRangeMinimal, true
	case "minimal-two":
		return numbers.PageRangeMinimalTwo, true
	case "chicago", "chicago-15", "chicago-16":
		return numbers.PageRangeChicago, true
	}
	return 0, false
}

func (p *parser) checkInfo(s *Style, opts ParseOptions, rng ByteRange) {
	if s.Info == nil && !opts.AllowNoInfo {
		p.errorf(rng, ErrMissingInfo, "style has no info block")
		p.hint("styles distributed without metadata cannot be identified; pass allow-no-info to compile anyway")
	}
}

// checkMacros verifies every reference resolves, then rejects cycles.
func (p *parser) checkMacros(s *Style) {
	for _, ref := range p.refs {
		if _, ok := s.Macros[ref.name]; !ok {
			p.errorf(ref.rng, ErrUndeclaredMacro, "macro %q is not declared", ref.name)
		}
	}
	for _, cyc := range findMacroCycles(s.Macros, p.refs) {
		p.errorf(cyc.rng, ErrMacroCycle,
			"macro recursion: %s", strings.Join(cyc.path, " -> "))
	}
}

func (p *parser) checkGated() {
	for _, g := range p.gated {
		if !p.features[g.feature] {
			p.errorf(g.rng, ErrFeatureGated,
				"%s (requires feature %q)", g.message, g.feature)
		}
	}
}
