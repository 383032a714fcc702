package locale

import (
	"log/slog"

	"github.com/quillabs/citare/internal/format"
)

// Fetcher supplies locale XML for a language. Implementations may read
// files, hit a network cache, or serve embedded data. A returned error
// skips that layer; it is never fatal.
type Fetcher interface {
	Fetch(lang Lang) ([]byte, error)
}

// FetcherFunc adapts a function to Fetcher.
type FetcherFunc func(lang Lang) ([]byte, error)

// Fetch implements Fetcher.
func (f FetcherFunc) Fetch(lang Lang) ([]byte, error) {
	return f(lang)
}

// Resolver builds merged locales from in-style overrides, fetched files
// and the built-in en-US data.
type Resolver struct {
	fetch  Fetcher
	inline map[string]*Locale
	logger *slog.Logger
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithFetcher supplies the locale file source. Without one, only inline
// overrides and the built-in data apply.
func WithFetcher(f Fetcher) ResolverOption {
	return func(r *Resolver) { r.fetch = f }
}

// WithInline supplies in-style locale overrides, keyed by language tag
// with "" for the no-language overrides.
func WithInline(inline map[string]*Locale) ResolverOption {
	return func(r *Resolver) { r.inline = inline }
}

// WithLogger sets the logger for skipped-layer reporting.
func WithLogger(logger *slog.Logger) ResolverOption {
	return func(r *Resolver) { r.logger = logger }
}

// NewResolver constructs a resolver.
func NewResolver(opts ...ResolverOption) *Resolver {
	r := &Resolver{logger: slog.Default()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve assembles the layer chain for lang. Missing or unparseable
// layers are skipped; the built-in layer is always present, so Resolve
// cannot fail.
func (r *Resolver) Resolve(lang Lang) *Merged {
	var layers []*Locale
	for _, il := range lang.InlineChain() {
		if l, ok := r.inline[il.String()]; ok && l != nil {
			layers = append(layers, l)
		}
	}
	if r.fetch != nil {
		for _, fl := range lang.FileChain() {
			data, err := r.fetch.Fetch(fl)
			if err != nil {
				r.logger.Debug("locale layer unavailable",
					"lang", fl.String(), "error", err)
				continue
			}
			l, err := Parse(data)
			if err != nil {
				r.logger.Warn("skipping unparseable locale layer",
					"lang", fl.String(), "error", err)
				continue
			}
			layers = append(layers, l)
		}
	}
	layers = append(layers, Builtin())
	return newMerged(lang, layers)
}

// Merged is the resolved locale chain for one language. Term lookups
// walk layers in priority order, applying the form fallback within each
// layer first.
type Merged struct {
	Lang Lang

	layers   []*Locale
	opts     Options
	dates    map[DateForm]*Date
	ordinals map[OrdinalSelector]string
}

func newMerged(lang Lang, layers []*Locale) *Merged {
	m := &Merged{
		Lang:   lang,
		layers: layers,
		dates:  make(map[DateForm]*Date),
	}
	// lowest priority first so higher layers overwrite
	for i := len(layers) - 1; i >= 0; i-- {
		l := layers[i]
		if v := l.Options.PunctuationInQuote; v != nil {
			m.opts.PunctuationInQuote = *v
		}
		if v := l.Options.LimitDayOrdinalsToDay1; v != nil {
			m.opts.LimitDayOrdinalsToDay1 = *v
		}
		for form, d := range l.Dates {
			m.dates[form] = d
		}
	}
	// ordinal configuration is replaced wholesale by the highest layer
	// that defines any
	for _, l := range layers {
		if l.hasOrdinals() {
			m.ordinals = l.Ordinals
			break
		}
	}
	return m
}

// Options returns the merged style options.
func (m *Merged) Options() Options {
	return m.opts
}

// SimpleTerm resolves a misc, season, quote or role term.
func (m *Merged) SimpleTerm(name string, form TermForm, plural bool) (string, bool) {
	for _, l := range m.layers {
		for _, f := range form.Fallback() {
			if v, ok := l.Simple[SimpleSelector{Name: name, Form: f}]; ok {
				return v.Get(plural), true
			}
		}
	}
	return "", false
}

// GenderedTerm resolves a month, locator or gendered number term.
func (m *Merged) GenderedTerm(name string, form TermForm) (GenderedTerm, bool) {
	for _, l := range m.layers {
		for _, f := range form.Fallback() {
			if v, ok := l.Gendered[GenderedSelector{Name: name, Form: f}]; ok {
				return v, true
			}
		}
	}
	return GenderedTerm{}, false
}

// TermGender returns the defined gender of a variable's noun, Neuter
// when unknown. Ordinal selection consults this.
func (m *Merged) TermGender(name string) Gender {
	if t, ok := m.GenderedTerm(name, FormLong); ok {
		return t.Gender
	}
	return Neuter
}

// OrdinalSuffix resolves the suffix for n as an ordinal, preferring the
// requested gender and falling back to neuter at each step.
func (m *Merged) OrdinalSuffix(n uint32, gender Gender) (string, bool) {
	for _, term := range ordinalChain(n) {
		if s, ok := m.ordinals[OrdinalSelector{Term: term, Gender: gender}]; ok {
			return s, true
		}
		if gender != Neuter {
			if s, ok := m.ordinals[OrdinalSelector{Term: term, Gender: Neuter}]; ok {
				return s, true
			}
		}
	}
	return "", false
}

// LongOrdinal resolves the spelled-out ordinal for 1 through 10. Callers
// fall back to OrdinalSuffix when absent.
func (m *Merged) LongOrdinal(n uint32, gender Gender) (string, bool) {
	if n < 1 || n > 10 {
		return "", false
	}
	term := OrdinalTerm{Kind: OrdLong, Value: n}
	if s, ok := m.ordinals[OrdinalSelector{Term: term, Gender: gender}]; ok {
		return s, true
	}
	if gender != Neuter {
		if s, ok := m.ordinals[OrdinalSelector{Term: term, Gender: Neuter}]; ok {
			return s, true
		}
	}
	return "", false
}

// DateFormat returns the localized date format for form.
func (m *Merged) DateFormat(form DateForm) (*Date, bool) {
	d, ok := m.dates[form]
	return d, ok
}

// Quotes assembles the locale's quotation marks from the quote terms.
func (m *Merged) Quotes() format.QuoteChars {
	q := format.DefaultQuotes
	if s, ok := m.SimpleTerm("open-quote", FormLong, false); ok {
		q.OuterOpen = s
	}
	if s, ok := m.SimpleTerm("close-quote", FormLong, false); ok {
		q.OuterClose = s
	}
	if s, ok := m.SimpleTerm("open-inner-quote", FormLong, false); ok {
		q.InnerOpen = s
	}
	if s, ok := m.SimpleTerm("close-inner-quote", FormLong, false); ok {
		q.InnerClose = s
	}
	return q
}
