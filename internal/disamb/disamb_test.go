package disamb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quillabs/citare/internal/citation"
	"github.com/quillabs/citare/internal/citeir"
	"github.com/quillabs/citare/internal/format"
	"github.com/quillabs/citare/internal/locale"
	"github.com/quillabs/citare/internal/reference"
	"github.com/quillabs/citare/internal/render"
	"github.com/quillabs/citare/internal/style"
)

func parseStyle(t *testing.T, body string) *style.Style {
	t.Helper()
	src := `<style class="in-text" version="1.0">` +
		`<info><title>t</title><id>t</id></info>` + body + `</style>`
	s, err := style.Parse([]byte(src), style.ParseOptions{})
	require.NoError(t, err)
	return s
}

func newRef(id string, authors []reference.Name, year int32) *reference.Reference {
	r := reference.New(1, id, "book")
	if len(authors) > 0 {
		r.Name[reference.NameVarAuthor] = authors
	}
	if year != 0 {
		r.Date[reference.DateVarIssued] = reference.Single(reference.Date{Year: year})
	}
	return r
}

func renderCite(s *style.Style, ref *reference.Reference) *Cite {
	ctx := &render.Context{
		Style:  s,
		Locale: locale.NewResolver().Resolve(locale.EnUS),
		Ref:    ref,
		Cite:   &citation.Cite{},
	}
	return &Cite{RefID: ref.IDStr, Sum: render.Cite(ctx, s.Citation.Layout)}
}

func rendered(c *Cite) string {
	return format.PlainText{}.Output(citeir.Flatten(c.Sum.Node, false), false)
}

var (
	jdoe   = reference.Name{Family: "Doe", Given: "Jane"}
	johnD  = reference.Name{Family: "Doe", Given: "John"}
	smith  = reference.Name{Family: "Smith", Given: "John"}
	garcia = reference.Name{Family: "García", Given: "María"}
)

func TestTokenizeSplitsYearSuffix(t *testing.T) {
	t.Parallel()

	toks := tokenize("Doe 1999a")
	assert.Equal(t, []Token{
		{Kind: TokenStr, Text: "doe"},
		{Kind: TokenStr, Text: "1999"},
		{Kind: TokenYearSuffix, Text: "a"},
	}, toks)

	// short digit runs never grow a suffix atom
	toks = tokenize("p44a")
	assert.Equal(t, []Token{{Kind: TokenStr, Text: "p44a"}}, toks)
}

func TestIndexUnambiguous(t *testing.T) {
	t.Parallel()

	a := newRef("a", []reference.Name{jdoe, smith}, 1999)
	b := newRef("b", []reference.Name{jdoe, garcia}, 1999)
	idx := NewIndex([]*reference.Reference{a, b})

	// shared surname and year pin down nothing
	assert.False(t, idx.Unambiguous("a", "Doe 1999"))
	// the second author separates them
	assert.True(t, idx.Unambiguous("a", "Doe, Smith 1999"))
	assert.True(t, idx.Unambiguous("b", "Doe, García 1999"))
	// accent folding matches the folded index
	assert.True(t, idx.Unambiguous("b", "Doe, Garcia 1999"))
	// unknown words carry no information
	assert.False(t, idx.Unambiguous("a", "Doe 1999, emphasis added"))
}

func TestIndexSingletonUniverse(t *testing.T) {
	t.Parallel()

	idx := NewIndex([]*reference.Reference{newRef("only", []reference.Name{jdoe}, 0)})
	assert.True(t, idx.Unambiguous("only", "ibid."))
}

func TestRefineAddNames(t *testing.T) {
	t.Parallel()

	s := parseStyle(t, `<citation disambiguate-add-names="true"><layout><names variable="author"><name et-al-min="2" et-al-use-first="1"/></names></layout></citation>`)
	a := newRef("a", []reference.Name{jdoe, smith}, 0)
	b := newRef("b", []reference.Name{jdoe, garcia}, 0)

	ca, cb := renderCite(s, a), renderCite(s, b)
	require.Equal(t, "Jane Doe et al.", rendered(ca))
	require.Equal(t, rendered(ca), rendered(cb))

	idx := NewIndex([]*reference.Reference{a, b})
	suffixes := Refine([]*Cite{ca, cb}, idx, Options{AddNames: true})

	assert.Empty(t, suffixes)
	assert.Equal(t, "Jane Doe, John Smith", rendered(ca))
	assert.Equal(t, "Jane Doe, María García", rendered(cb))
}

func TestRefineAddNamesStopsWhenExhausted(t *testing.T) {
	t.Parallel()

	// same single author everywhere: expansion cannot help and must not loop
	s := parseStyle(t, `<citation disambiguate-add-names="true"><layout><names variable="author"><name/></names></layout></citation>`)
	a := newRef("a", []reference.Name{jdoe}, 0)
	b := newRef("b", []reference.Name{jdoe}, 0)

	ca, cb := renderCite(s, a), renderCite(s, b)
	idx := NewIndex([]*reference.Reference{a, b})
	Refine([]*Cite{ca, cb}, idx, Options{AddNames: true})

	assert.Equal(t, "Jane Doe", rendered(ca))
	assert.Equal(t, "Jane Doe", rendered(cb))
}

func TestRefineGivenNames(t *testing.T) {
	t.Parallel()

	s := parseStyle(t, `<citation disambiguate-add-givenname="true"><layout><names variable="author"><name initialize-with=". "/></names></layout></citation>`)
	a := newRef("a", []reference.Name{jdoe}, 0)
	b := newRef("b", []reference.Name{johnD}, 0)

	ca, cb := renderCite(s, a), renderCite(s, b)
	require.Equal(t, "J. Doe", rendered(ca))
	require.Equal(t, "J. Doe", rendered(cb))

	idx := NewIndex([]*reference.Reference{a, b})
	Refine([]*Cite{ca, cb}, idx, Options{
		AddGivenName: true,
		Rule:         style.RuleAllNames,
	})

	assert.Equal(t, "Jane Doe", rendered(ca))
	assert.Equal(t, "John Doe", rendered(cb))
}

func TestRefineYearSuffix(t *testing.T) {
	t.Parallel()

	s := parseStyle(t, `<citation disambiguate-add-year-suffix="true"><layout><group delimiter=" "><names variable="author"><name form="short"/></names><date variable="issued"><date-part name="year"/></date></group></layout></citation>`)
	a := newRef("early", []reference.Name{jdoe}, 1999)
	b := newRef("late", []reference.Name{jdoe}, 1999)

	ca, cb := renderCite(s, a), renderCite(s, b)
	require.Equal(t, "Doe 1999", rendered(ca))
	require.Equal(t, "Doe 1999", rendered(cb))

	idx := NewIndex([]*reference.Reference{a, b})
	suffixes := Refine([]*Cite{ca, cb}, idx, Options{AddYearSuffix: true})

	// lexicographic reference-id order: early=a, late=b
	assert.Equal(t, map[string]uint32{"early": 1, "late": 2}, suffixes)
	assert.Equal(t, "Doe 1999a", rendered(ca))
	assert.Equal(t, "Doe 1999b", rendered(cb))
}

func TestRefineYearSuffixHonorsSuffixOrder(t *testing.T) {
	t.Parallel()

	s := parseStyle(t, `<citation disambiguate-add-year-suffix="true"><layout><group delimiter=" "><names variable="author"><name form="short"/></names><date variable="issued"><date-part name="year"/></date></group></layout></citation>`)
	a := newRef("alpha", []reference.Name{jdoe}, 1999)
	b := newRef("beta", []reference.Name{jdoe}, 1999)

	ca, cb := renderCite(s, a), renderCite(s, b)
	idx := NewIndex([]*reference.Reference{a, b})
	suffixes := Refine([]*Cite{ca, cb}, idx, Options{
		AddYearSuffix: true,
		SuffixOrder:   []string{"beta", "alpha"},
	})

	assert.Equal(t, map[string]uint32{"beta": 1, "alpha": 2}, suffixes)
	assert.Equal(t, "Doe 1999b", rendered(ca))
	assert.Equal(t, "Doe 1999a", rendered(cb))
}

func TestRefineSameReferenceSharesSuffix(t *testing.T) {
	t.Parallel()

	s := parseStyle(t, `<citation disambiguate-add-year-suffix="true"><layout><group delimiter=" "><names variable="author"><name form="short"/></names><date variable="issued"><date-part name="year"/></date></group></layout></citation>`)
	a := newRef("a", []reference.Name{jdoe}, 1999)
	b := newRef("b", []reference.Name{jdoe}, 1999)

	// reference a is cited twice; both cites must carry the same suffix
	ca1, ca2, cb := renderCite(s, a), renderCite(s, a), renderCite(s, b)
	idx := NewIndex([]*reference.Reference{a, b})
	Refine([]*Cite{ca1, ca2, cb}, idx, Options{AddYearSuffix: true})

	assert.Equal(t, "Doe 1999a", rendered(ca1))
	assert.Equal(t, "Doe 1999a", rendered(ca2))
	assert.Equal(t, "Doe 1999b", rendered(cb))
}

func TestRefineConditional(t *testing.T) {
	t.Parallel()

	s := parseStyle(t, `<citation><layout><group delimiter=" "><names variable="author"><name form="short"/></names><choose><if disambiguate="true"><text variable="title"/></if></choose></group></layout></citation>`)
	a := newRef("a", []reference.Name{jdoe}, 0)
	a.Ordinary[reference.OrdinaryVar("title")] = "First Book"
	b := newRef("b", []reference.Name{jdoe}, 0)
	b.Ordinary[reference.OrdinaryVar("title")] = "Second Book"

	ca, cb := renderCite(s, a), renderCite(s, b)
	require.Equal(t, "Doe", rendered(ca))

	idx := NewIndex([]*reference.Reference{a, b})
	Refine([]*Cite{ca, cb}, idx, Options{})

	assert.Equal(t, "Doe First Book", rendered(ca))
	assert.Equal(t, "Doe Second Book", rendered(cb))
}

func TestRefineLeavesUnambiguousCitesAlone(t *testing.T) {
	t.Parallel()

	s := parseStyle(t, `<citation disambiguate-add-names="true" disambiguate-add-year-suffix="true"><layout><group delimiter=" "><names variable="author"><name form="short"/></names><date variable="issued"><date-part name="year"/></date></group></layout></citation>`)
	a := newRef("a", []reference.Name{jdoe}, 1999)
	b := newRef("b", []reference.Name{smith}, 2001)

	ca, cb := renderCite(s, a), renderCite(s, b)
	idx := NewIndex([]*reference.Reference{a, b})
	suffixes := Refine([]*Cite{ca, cb}, idx, Options{AddNames: true, AddYearSuffix: true})

	assert.Empty(t, suffixes)
	assert.Equal(t, "Doe 1999", rendered(ca))
	assert.Equal(t, "Smith 2001", rendered(cb))
}
