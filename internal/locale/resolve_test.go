package locale

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mapFetcher serves locale XML from memory, recording the requested
// languages.
type mapFetcher struct {
	files     map[string]string
	requested []string
}

func (f *mapFetcher) Fetch(lang Lang) ([]byte, error) {
	f.requested = append(f.requested, lang.String())
	data, ok := f.files[lang.String()]
	if !ok {
		return nil, errors.Newf("no locale for %s", lang)
	}
	return []byte(data), nil
}

const enAU = `<locale xml:lang="en-AU">
  <terms>
    <term name="and" form="short">Australia</term>
  </terms>
</locale>`

const enUSFile = `<locale xml:lang="en-US">
  <terms>
    <term name="and">USA</term>
  </terms>
</locale>`

func TestFormCascadeAcrossLayers(t *testing.T) {
	t.Parallel()

	fetcher := &mapFetcher{files: map[string]string{
		"en-AU": enAU,
		"en-US": enUSFile,
	}}
	r := NewResolver(WithFetcher(fetcher))
	m := r.Resolve(Lang{Language: "en", Region: "AU"})

	// en-AU only has a short form, which cannot satisfy a long request
	long, ok := m.SimpleTerm("and", FormLong, false)
	require.True(t, ok)
	assert.Equal(t, "USA", long)

	short, ok := m.SimpleTerm("and", FormShort, false)
	require.True(t, ok)
	assert.Equal(t, "Australia", short)
}

func TestFetchFailureSkipsLayer(t *testing.T) {
	t.Parallel()

	fetcher := &mapFetcher{files: map[string]string{}}
	r := NewResolver(WithFetcher(fetcher))
	m := r.Resolve(Lang{Language: "de", Region: "AT"})

	// everything failed; the builtin still answers
	got, ok := m.SimpleTerm("ibid", FormLong, false)
	require.True(t, ok)
	assert.Equal(t, "ibid.", got)
	assert.Equal(t, []string{"de-AT", "de-DE", "en-US"}, fetcher.requested)
}

func TestInlineOverridesWinOverFiles(t *testing.T) {
	t.Parallel()

	inline, err := Parse([]byte(`<locale>
	  <terms><term name="ibid">inline-ibid</term></terms>
	</locale>`))
	require.NoError(t, err)

	r := NewResolver(WithInline(map[string]*Locale{"": inline}))
	m := r.Resolve(EnUS)

	got, ok := m.SimpleTerm("ibid", FormLong, false)
	require.True(t, ok)
	assert.Equal(t, "inline-ibid", got)
}

func TestOrdinalSuffixes(t *testing.T) {
	t.Parallel()

	m := NewResolver().Resolve(EnUS)

	tests := []struct {
		n    uint32
		want string
	}{
		{1, "st"}, {2, "nd"}, {3, "rd"}, {4, "th"},
		{11, "th"}, {12, "th"}, {13, "th"},
		{21, "st"}, {22, "nd"}, {23, "rd"},
		{101, "st"}, {111, "th"}, {112, "th"},
		{100, "th"},
	}
	for _, tt := range tests {
		got, ok := m.OrdinalSuffix(tt.n, Neuter)
		require.True(t, ok, "n=%d", tt.n)
		assert.Equal(t, tt.want, got, "n=%d", tt.n)
	}
}

func TestOrdinalConfigurationReplacedWholesale(t *testing.T) {
	t.Parallel()

	// a layer that defines any ordinals hides every lower layer's
	inline, err := Parse([]byte(`<locale>
	  <terms><term name="ordinal">^</term></terms>
	</locale>`))
	require.NoError(t, err)

	r := NewResolver(WithInline(map[string]*Locale{"": inline}))
	m := r.Resolve(EnUS)

	got, ok := m.OrdinalSuffix(1, Neuter)
	require.True(t, ok)
	assert.Equal(t, "^", got, "builtin ordinal-01 must not leak through")
}

func TestLongOrdinals(t *testing.T) {
	t.Parallel()

	m := NewResolver().Resolve(EnUS)

	got, ok := m.LongOrdinal(3, Neuter)
	require.True(t, ok)
	assert.Equal(t, "third", got)

	_, ok = m.LongOrdinal(11, Neuter)
	assert.False(t, ok, "long ordinals stop at ten")
}

func TestGenderedOrdinals(t *testing.T) {
	t.Parallel()

	inline, err := Parse([]byte(`<locale>
	  <terms>
	    <term name="issue" gender="feminine">
	      <single>issue</single>
	      <multiple>issues</multiple>
	    </term>
	    <term name="ordinal-01" gender-form="feminine">re</term>
	    <term name="ordinal-01" gender-form="masculine">er</term>
	    <term name="ordinal">e</term>
	  </terms>
	</locale>`))
	require.NoError(t, err)

	r := NewResolver(WithInline(map[string]*Locale{"": inline}))
	m := r.Resolve(Lang{Language: "fr", Region: "FR"})

	assert.Equal(t, Feminine, m.TermGender("issue"))

	got, ok := m.OrdinalSuffix(1, Feminine)
	require.True(t, ok)
	assert.Equal(t, "re", got)

	got, ok = m.OrdinalSuffix(2, Feminine)
	require.True(t, ok)
	assert.Equal(t, "e", got, "no gendered ordinal-02, neuter generic applies")
}

func TestOrdinalWholeNumberMatch(t *testing.T) {
	t.Parallel()

	inline, err := Parse([]byte(`<locale>
	  <terms>
	    <term name="ordinal-02" match="whole-number">druh</term>
	    <term name="ordinal">e</term>
	  </terms>
	</locale>`))
	require.NoError(t, err)

	r := NewResolver(WithInline(map[string]*Locale{"": inline}))
	m := r.Resolve(Lang{Language: "cs", Region: "CZ"})

	got, ok := m.OrdinalSuffix(2, Neuter)
	require.True(t, ok)
	assert.Equal(t, "druh", got)

	got, ok = m.OrdinalSuffix(102, Neuter)
	require.True(t, ok)
	assert.Equal(t, "e", got, "whole-number terms only match the exact value")
}

func TestPluralizedTerms(t *testing.T) {
	t.Parallel()

	m := NewResolver().Resolve(EnUS)

	single, ok := m.GenderedTerm("page", FormShort)
	require.True(t, ok)
	assert.Equal(t, "p.", single.Value.Get(false))
	assert.Equal(t, "pp.", single.Value.Get(true))
}

func TestRoleTermVerbForms(t *testing.T) {
	t.Parallel()

	m := NewResolver().Resolve(EnUS)

	verb, ok := m.SimpleTerm("translator", FormVerb, false)
	require.True(t, ok)
	assert.Equal(t, "translated by", verb)

	// verb-short falls back verb-short -> verb -> long within the layer
	vs, ok := m.SimpleTerm("editor", FormVerbShort, false)
	require.True(t, ok)
	assert.Equal(t, "ed.", vs)
}

func TestOptionsAndQuotes(t *testing.T) {
	t.Parallel()

	m := NewResolver().Resolve(EnUS)
	assert.True(t, m.Options().PunctuationInQuote)
	assert.False(t, m.Options().LimitDayOrdinalsToDay1)

	q := m.Quotes()
	assert.Equal(t, "“", q.OuterOpen)
	assert.Equal(t, "”", q.OuterClose)
}

func TestDateFormats(t *testing.T) {
	t.Parallel()

	m := NewResolver().Resolve(EnUS)

	d, ok := m.DateFormat(DateFormText)
	require.True(t, ok)
	require.Len(t, d.Parts, 3)
	assert.Equal(t, PartMonth, d.Parts[0].Name)
	assert.Equal(t, ", ", d.Parts[1].Affixes.Suffix)
	assert.Equal(t, PartYear, d.Parts[2].Name)
}
