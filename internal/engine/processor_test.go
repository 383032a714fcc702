package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quillabs/citare/internal/format"
	"github.com/quillabs/citare/internal/reference"
)

const authorDate = `<citation><layout prefix="(" suffix=")" delimiter="; ">` +
	`<group delimiter=" "><names variable="author"><name form="short"/></names>` +
	`<date variable="issued"><date-part name="year"/></date></group></layout></citation>`

const authorTitle = `<citation><layout delimiter="; ">` +
	`<group delimiter=" "><names variable="author"><name form="short"/></names>` +
	`<text variable="title"/></group></layout></citation>`

const ibidOrFull = `<citation><layout><choose>` +
	`<if position="ibid"><text term="ibid"/></if>` +
	`<else><group delimiter=" "><names variable="author"><name form="short"/></names>` +
	`<date variable="issued"><date-part name="year"/></date></group></else>` +
	`</choose></layout></citation>`

func styleSrc(class, body string) []byte {
	return []byte(`<style class="` + class + `" version="1.0">` +
		`<info><title>t</title><id>t</id></info>` + body + `</style>`)
}

func newProc(t *testing.T, class, body string) *Processor {
	t.Helper()
	p := New(WithBatchTokens(NewFixedGenerator("batch-1", "batch-2", "batch-3")))
	require.NoError(t, p.SetStyle(styleSrc(class, body)))
	return p
}

func bookRef(id, family, given string, year int32) *reference.Reference {
	r := reference.New(0, id, "book")
	r.Name[reference.NameVarAuthor] = []reference.Name{{Family: family, Given: given}}
	if year != 0 {
		r.Date[reference.DateVarIssued] = reference.Single(reference.Date{Year: year})
	}
	return r
}

func titledRef(id, family, given, title string) *reference.Reference {
	r := bookRef(id, family, given, 0)
	r.Ordinary[reference.OrdinaryVar("title")] = title
	return r
}

func note(n uint32) *uint32 { return &n }

func mustBuild(t *testing.T, p *Processor, id string) string {
	t.Helper()
	out, err := p.BuiltCluster(id)
	require.NoError(t, err)
	return out
}

func TestBuiltClusterAuthorDate(t *testing.T) {
	t.Parallel()

	p := newProc(t, "in-text", authorDate)
	p.InsertReference(bookRef("doe99", "Doe", "Jane", 1999))
	p.InsertCluster("c1", []CiteInput{{RefID: "doe99"}}, nil)
	require.NoError(t, p.SetClusterOrder([]OrderEntry{{ID: "c1"}}))

	assert.Equal(t, "(Doe 1999)", mustBuild(t, p, "c1"))
}

func TestBuiltClusterUnknownCluster(t *testing.T) {
	t.Parallel()

	p := newProc(t, "in-text", authorDate)
	_, err := p.BuiltCluster("nope")
	require.Error(t, err)
	assert.True(t, IsUnknownCluster(err))
	assert.Equal(t, ErrCodeUnknownCluster, CodeOf(err))
}

func TestQueriesRequireStyle(t *testing.T) {
	t.Parallel()

	p := New()
	p.InsertCluster("c1", []CiteInput{{RefID: "x"}}, nil)
	_, err := p.BuiltCluster("c1")
	assert.Equal(t, ErrCodeStyleNotSet, CodeOf(err))
}

func TestInvalidStyleBlocksQueries(t *testing.T) {
	t.Parallel()

	p := New()
	require.Error(t, p.SetStyle([]byte("<style")))
	p.InsertCluster("c1", []CiteInput{{RefID: "x"}}, nil)
	_, err := p.BuiltCluster("c1")
	assert.Equal(t, ErrCodeStyleInvalid, CodeOf(err))
}

func TestUnknownReferenceRendersEmptyCite(t *testing.T) {
	t.Parallel()

	p := newProc(t, "in-text", authorDate)
	p.InsertCluster("c1", []CiteInput{{RefID: "ghost"}}, nil)
	require.NoError(t, p.SetClusterOrder([]OrderEntry{{ID: "c1"}}))

	assert.Equal(t, "", mustBuild(t, p, "c1"))
}

func TestSetClusterOrderRejectsUnknownID(t *testing.T) {
	t.Parallel()

	p := newProc(t, "in-text", authorDate)
	err := p.SetClusterOrder([]OrderEntry{{ID: "missing"}})
	assert.True(t, IsUnknownCluster(err))
}

func TestSetClusterOrderRejectsDecreasingNotes(t *testing.T) {
	t.Parallel()

	p := newProc(t, "note", ibidOrFull)
	p.InsertCluster("c1", nil, nil)
	p.InsertCluster("c2", nil, nil)
	err := p.SetClusterOrder([]OrderEntry{
		{ID: "c1", Note: note(5)},
		{ID: "c2", Note: note(3)},
	})
	assert.Equal(t, ErrCodeBadClusterOrder, CodeOf(err))
}

func TestIbidAcrossNotes(t *testing.T) {
	t.Parallel()

	p := newProc(t, "note", ibidOrFull)
	p.InsertReference(bookRef("smith", "Smith", "John", 1999))
	p.InsertCluster("c1", []CiteInput{{RefID: "smith"}}, nil)
	p.InsertCluster("c2", []CiteInput{{RefID: "smith"}}, nil)
	require.NoError(t, p.SetClusterOrder([]OrderEntry{
		{ID: "c1", Note: note(1)},
		{ID: "c2", Note: note(2)},
	}))

	assert.Equal(t, "Smith 1999", mustBuild(t, p, "c1"))
	assert.Equal(t, "ibid.", mustBuild(t, p, "c2"))
}

func TestYearSuffixesAcrossClusters(t *testing.T) {
	t.Parallel()

	body := `<citation disambiguate-add-year-suffix="true"><layout delimiter="; ">` +
		`<group delimiter=" "><names variable="author"><name form="short"/></names>` +
		`<date variable="issued"><date-part name="year"/></date></group></layout></citation>`
	p := newProc(t, "in-text", body)
	p.InsertReference(bookRef("a", "Doe", "Jane", 1999))
	p.InsertReference(bookRef("b", "Doe", "Jane", 1999))
	p.InsertCluster("c1", []CiteInput{{RefID: "a"}}, nil)
	p.InsertCluster("c2", []CiteInput{{RefID: "b"}}, nil)
	require.NoError(t, p.SetClusterOrder([]OrderEntry{{ID: "c1"}, {ID: "c2"}}))

	assert.Equal(t, "Doe 1999a", mustBuild(t, p, "c1"))
	assert.Equal(t, "Doe 1999b", mustBuild(t, p, "c2"))
}

func TestUpdateSummaryReportsOnlyChangedClusters(t *testing.T) {
	t.Parallel()

	p := newProc(t, "in-text", authorTitle)
	p.InsertReference(titledRef("smith", "Smith", "John", "Old Title"))
	p.InsertReference(titledRef("jones", "Jones", "Ann", "Other Book"))
	p.InsertCluster("c1", []CiteInput{{RefID: "smith"}}, nil)
	p.InsertCluster("c2", []CiteInput{{RefID: "jones"}}, nil)
	require.NoError(t, p.SetClusterOrder([]OrderEntry{{ID: "c1"}, {ID: "c2"}}))

	first, err := p.BatchedUpdates()
	require.NoError(t, err)
	assert.Equal(t, "batch-1", first.BatchID)
	require.Len(t, first.Updates, 2)

	p.InsertReference(titledRef("smith", "Smith", "John", "New Title"))
	second, err := p.BatchedUpdates()
	require.NoError(t, err)
	assert.Equal(t, "batch-2", second.BatchID)
	require.Len(t, second.Updates, 1)
	assert.Equal(t, "c1", second.Updates[0].ID)
	assert.Equal(t, "Smith New Title", second.Updates[0].Output)

	third, err := p.BatchedUpdates()
	require.NoError(t, err)
	assert.Empty(t, third.Updates)
}

func TestIncrementalMatchesFreshProcessor(t *testing.T) {
	t.Parallel()

	build := func(p *Processor) []string {
		return []string{
			mustBuild(t, p, "c1"),
			mustBuild(t, p, "c2"),
			mustBuild(t, p, "c3"),
		}
	}

	// edit-heavy path
	p := newProc(t, "in-text", authorTitle)
	p.InsertReference(titledRef("r1", "Doe", "Jane", "First"))
	p.InsertReference(titledRef("r2", "Smith", "John", "Second"))
	p.InsertCluster("c1", []CiteInput{{RefID: "r1"}}, nil)
	p.InsertCluster("c2", []CiteInput{{RefID: "r2"}}, nil)
	require.NoError(t, p.SetClusterOrder([]OrderEntry{{ID: "c1"}, {ID: "c2"}}))
	_, err := p.BatchedUpdates()
	require.NoError(t, err)
	p.InsertReference(titledRef("r1", "Doe", "Jane", "Revised"))
	p.InsertCluster("c3", []CiteInput{{RefID: "r1"}, {RefID: "r2"}}, nil)
	require.NoError(t, p.SetClusterOrder([]OrderEntry{{ID: "c2"}, {ID: "c3"}, {ID: "c1"}}))

	// fresh processor with the final inputs
	q := newProc(t, "in-text", authorTitle)
	q.InsertReference(titledRef("r1", "Doe", "Jane", "Revised"))
	q.InsertReference(titledRef("r2", "Smith", "John", "Second"))
	q.InsertCluster("c1", []CiteInput{{RefID: "r1"}}, nil)
	q.InsertCluster("c2", []CiteInput{{RefID: "r2"}}, nil)
	q.InsertCluster("c3", []CiteInput{{RefID: "r1"}, {RefID: "r2"}}, nil)
	require.NoError(t, q.SetClusterOrder([]OrderEntry{{ID: "c2"}, {ID: "c3"}, {ID: "c1"}}))

	assert.Equal(t, build(q), build(p))
}

func TestDocumentMemoizedAcrossQueries(t *testing.T) {
	t.Parallel()

	p := newProc(t, "in-text", authorDate)
	p.InsertReference(bookRef("doe99", "Doe", "Jane", 1999))
	p.InsertCluster("c1", []CiteInput{{RefID: "doe99"}}, nil)
	require.NoError(t, p.SetClusterOrder([]OrderEntry{{ID: "c1"}}))

	mustBuild(t, p, "c1")
	built := p.docBuilt
	mustBuild(t, p, "c1")
	assert.Equal(t, built, p.docBuilt)

	p.InsertCluster("c2", []CiteInput{{RefID: "doe99"}}, nil)
	mustBuild(t, p, "c2")
	assert.Greater(t, p.docBuilt, built)
}

func TestPreviewClusterSeesDocumentContext(t *testing.T) {
	t.Parallel()

	p := newProc(t, "note", ibidOrFull)
	p.InsertReference(bookRef("smith", "Smith", "John", 1999))
	p.InsertCluster("c1", []CiteInput{{RefID: "smith"}}, nil)
	require.NoError(t, p.SetClusterOrder([]OrderEntry{{ID: "c1", Note: note(1)}}))

	out, err := p.PreviewCluster([]CiteInput{{RefID: "smith"}}, nil)
	require.NoError(t, err)
	assert.Equal(t, "ibid.", out)

	// the preview left no trace
	assert.Equal(t, "Smith 1999", mustBuild(t, p, "c1"))
	sum, err := p.BatchedUpdates()
	require.NoError(t, err)
	require.Len(t, sum.Updates, 1) // only the initial c1 build
}

func TestInsertReferenceJSON(t *testing.T) {
	t.Parallel()

	p := newProc(t, "in-text", authorTitle)
	fieldErrs, err := p.InsertReferenceJSON([]byte(
		`{"id":"doe", "type":"book", "title":"Go Book",` +
			`"author":[{"family":"Doe","given":"Jane"}]}`))
	require.NoError(t, err)
	assert.Empty(t, fieldErrs)

	p.InsertCluster("c1", []CiteInput{{RefID: "doe"}}, nil)
	require.NoError(t, p.SetClusterOrder([]OrderEntry{{ID: "c1"}}))
	assert.Equal(t, "Doe Go Book", mustBuild(t, p, "c1"))
}

func TestResetReferencesReplacesSet(t *testing.T) {
	t.Parallel()

	p := newProc(t, "in-text", authorTitle)
	p.InsertReference(titledRef("a", "Doe", "Jane", "First"))
	p.InsertCluster("c1", []CiteInput{{RefID: "a"}}, nil)
	require.NoError(t, p.SetClusterOrder([]OrderEntry{{ID: "c1"}}))
	assert.Equal(t, "Doe First", mustBuild(t, p, "c1"))

	p.ResetReferences([]*reference.Reference{titledRef("b", "Roe", "Ann", "Second")})
	// "a" is gone; its cite renders empty
	assert.Equal(t, "", mustBuild(t, p, "c1"))
}

func TestLinkAnchorsOption(t *testing.T) {
	t.Parallel()

	const doiLayout = `<citation><layout><text variable="DOI"/></layout></citation>`
	withDOI := func() *reference.Reference {
		r := bookRef("doe99", "Doe", "Jane", 1999)
		r.Ordinary[reference.OrdinaryVar("DOI")] = "10.1000/xyz"
		return r
	}

	// anchors default on
	p := New(WithFormat(format.HTML{}))
	require.NoError(t, p.SetStyle(styleSrc("in-text", doiLayout)))
	p.InsertReference(withDOI())
	p.InsertCluster("c1", []CiteInput{{RefID: "doe99"}}, nil)
	require.NoError(t, p.SetClusterOrder([]OrderEntry{{ID: "c1"}}))
	assert.Equal(t,
		`<a href="https://doi.org/10.1000/xyz">10.1000/xyz</a>`,
		mustBuild(t, p, "c1"))

	// anchors off
	q := New(WithFormat(format.HTML{}), WithFormatOptions(format.FormatOptions{}))
	require.NoError(t, q.SetStyle(styleSrc("in-text", doiLayout)))
	q.InsertReference(withDOI())
	q.InsertCluster("c1", []CiteInput{{RefID: "doe99"}}, nil)
	require.NoError(t, q.SetClusterOrder([]OrderEntry{{ID: "c1"}}))
	assert.Equal(t, "10.1000/xyz", mustBuild(t, q, "c1"))
}
