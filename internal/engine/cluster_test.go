package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quillabs/citare/internal/citation"
)

func ptr(s string) *string { return &s }

func TestAuthorOnlyMode(t *testing.T) {
	t.Parallel()

	p := newProc(t, "in-text", authorDate)
	p.InsertReference(bookRef("doe99", "Doe", "Jane", 1999))
	p.InsertCluster("c1", []CiteInput{{RefID: "doe99"}}, citation.AuthorOnly{})
	require.NoError(t, p.SetClusterOrder([]OrderEntry{{ID: "c1"}}))

	// no layout affixes around a bare author block
	assert.Equal(t, "Doe", mustBuild(t, p, "c1"))
}

func TestSuppressAuthorMode(t *testing.T) {
	t.Parallel()

	p := newProc(t, "in-text", authorDate)
	p.InsertReference(bookRef("doe99", "Doe", "Jane", 1999))
	p.InsertCluster("c1", []CiteInput{{RefID: "doe99"}},
		citation.SuppressAuthor{})
	require.NoError(t, p.SetClusterOrder([]OrderEntry{{ID: "c1"}}))

	assert.Equal(t, "(1999)", mustBuild(t, p, "c1"))
}

func TestSuppressAuthorFirstN(t *testing.T) {
	t.Parallel()

	p := newProc(t, "in-text", authorDate)
	p.InsertReference(bookRef("a", "Doe", "Jane", 1999))
	p.InsertReference(bookRef("b", "Smith", "John", 2001))
	p.InsertCluster("c1", []CiteInput{{RefID: "a"}, {RefID: "b"}},
		citation.SuppressAuthor{SuppressFirst: 1})
	require.NoError(t, p.SetClusterOrder([]OrderEntry{{ID: "c1"}}))

	assert.Equal(t, "(1999; Smith 2001)", mustBuild(t, p, "c1"))
}

func TestCompositeMode(t *testing.T) {
	t.Parallel()

	p := newProc(t, "in-text", authorDate)
	p.InsertReference(bookRef("doe99", "Doe", "Jane", 1999))
	p.InsertCluster("c1", []CiteInput{{RefID: "doe99"}},
		citation.Composite{Infix: ptr("’s early work")})
	require.NoError(t, p.SetClusterOrder([]OrderEntry{{ID: "c1"}}))

	// no space before the apostrophe; layout parens only around the
	// suppressed block
	assert.Equal(t, "Doe’s early work (1999)", mustBuild(t, p, "c1"))
}

func TestCompositeModeWithoutInfix(t *testing.T) {
	t.Parallel()

	p := newProc(t, "in-text", authorDate)
	p.InsertReference(bookRef("doe99", "Doe", "Jane", 1999))
	p.InsertCluster("c1", []CiteInput{{RefID: "doe99"}}, citation.Composite{})
	require.NoError(t, p.SetClusterOrder([]OrderEntry{{ID: "c1"}}))

	assert.Equal(t, "Doe (1999)", mustBuild(t, p, "c1"))
}

func TestCitePrefixSuffix(t *testing.T) {
	t.Parallel()

	p := newProc(t, "in-text", authorDate)
	p.InsertReference(bookRef("doe99", "Doe", "Jane", 1999))
	p.InsertCluster("c1", []CiteInput{
		{RefID: "doe99", Prefix: "see ", Suffix: ", passim"},
	}, nil)
	require.NoError(t, p.SetClusterOrder([]OrderEntry{{ID: "c1"}}))

	assert.Equal(t, "(see Doe 1999, passim)", mustBuild(t, p, "c1"))
}

func TestCollapseYearGroupsByAuthor(t *testing.T) {
	t.Parallel()

	body := `<citation collapse="year"><layout prefix="(" suffix=")" delimiter="; ">` +
		`<group delimiter=" "><names variable="author"><name form="short"/></names>` +
		`<date variable="issued"><date-part name="year"/></date></group></layout></citation>`
	p := newProc(t, "in-text", body)
	p.InsertReference(bookRef("d99", "Doe", "Jane", 1999))
	p.InsertReference(bookRef("d01", "Doe", "Jane", 2001))
	p.InsertReference(bookRef("s00", "Smith", "John", 2000))
	p.InsertCluster("c1", []CiteInput{
		{RefID: "d99"}, {RefID: "d01"}, {RefID: "s00"},
	}, nil)
	require.NoError(t, p.SetClusterOrder([]OrderEntry{{ID: "c1"}}))

	assert.Equal(t, "(Doe 1999, 2001; Smith 2000)", mustBuild(t, p, "c1"))
}

func TestCollapseCitationNumberRanges(t *testing.T) {
	t.Parallel()

	body := `<citation collapse="citation-number"><layout prefix="[" suffix="]" delimiter=", ">` +
		`<text variable="citation-number"/></layout></citation>`
	p := newProc(t, "in-text", body)
	for _, id := range []string{"e", "a", "b", "c"} {
		p.InsertReference(bookRef(id, "X", "Y", 2000))
	}
	// "e" is cited first, so it holds citation number 1
	p.InsertCluster("c1", []CiteInput{{RefID: "e"}}, nil)
	p.InsertCluster("c2", []CiteInput{
		{RefID: "a"}, {RefID: "b"}, {RefID: "c"}, {RefID: "e"},
	}, nil)
	require.NoError(t, p.SetClusterOrder([]OrderEntry{{ID: "c1"}, {ID: "c2"}}))

	assert.Equal(t, "[1]", mustBuild(t, p, "c1"))
	assert.Equal(t, "[2–4, 1]", mustBuild(t, p, "c2"))
}
