package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quillabs/citare/internal/citation"
	"github.com/quillabs/citare/internal/citeir"
	"github.com/quillabs/citare/internal/format"
	"github.com/quillabs/citare/internal/reference"
)

func authoredRef(authors ...reference.Name) *reference.Reference {
	ref := bookRef()
	ref.Name[reference.NameVarAuthor] = authors
	return ref
}

var (
	doe    = reference.Name{Family: "Doe", Given: "Jane"}
	smith  = reference.Name{Family: "Smith", Given: "John"}
	garcia = reference.Name{Family: "García", Given: "María"}
	lee    = reference.Name{Family: "Lee", Given: "Kim"}
)

func TestRenderNamesAndTerm(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		nameEl  string
		authors []reference.Name
		want    string
	}{
		{
			name:    "two names with textual and",
			nameEl:  `<name and="text"/>`,
			authors: []reference.Name{doe, smith},
			want:    "Jane Doe and John Smith",
		},
		{
			name:    "two names with ampersand",
			nameEl:  `<name and="symbol"/>`,
			authors: []reference.Name{doe, smith},
			want:    "Jane Doe & John Smith",
		},
		{
			name:    "three names take the delimiter before and",
			nameEl:  `<name and="text"/>`,
			authors: []reference.Name{doe, smith, garcia},
			want:    "Jane Doe, John Smith, and María García",
		},
		{
			name:    "no and term joins with the delimiter",
			nameEl:  `<name/>`,
			authors: []reference.Name{doe, smith, garcia},
			want:    "Jane Doe, John Smith, María García",
		},
		{
			name:    "single name",
			nameEl:  `<name and="text"/>`,
			authors: []reference.Name{doe},
			want:    "Jane Doe",
		},
		{
			name:    "literal name passes through",
			nameEl:  `<name/>`,
			authors: []reference.Name{{Literal: "Acme Corporation"}},
			want:    "Acme Corporation",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			s := buildStyle(t, `<citation><layout><names variable="author">`+tt.nameEl+`</names></layout></citation>`)
			assert.Equal(t, tt.want, plainCite(newCtx(s, authoredRef(tt.authors...))))
		})
	}
}

func TestRenderNamesEtAl(t *testing.T) {
	t.Parallel()

	s := buildStyle(t, `<citation><layout><names variable="author"><name et-al-min="3" et-al-use-first="1"/></names></layout></citation>`)

	assert.Equal(t, "Jane Doe et al.",
		plainCite(newCtx(s, authoredRef(doe, smith, garcia))))
	// below the threshold everyone renders
	assert.Equal(t, "Jane Doe, John Smith",
		plainCite(newCtx(s, authoredRef(doe, smith))))
}

func TestRenderNamesEtAlSubsequent(t *testing.T) {
	t.Parallel()

	s := buildStyle(t, `<citation><layout><names variable="author"><name et-al-min="4" et-al-use-first="3" et-al-subsequent-min="2" et-al-subsequent-use-first="1"/></names></layout></citation>`)
	ref := authoredRef(doe, smith, garcia)

	ctx := newCtx(s, ref)
	assert.Equal(t, "Jane Doe, John Smith, María García", plainCite(ctx))

	ctx = newCtx(s, ref)
	ctx.Position = citation.PositionInfo{Position: citation.PosSubsequent}
	assert.Equal(t, "Jane Doe et al.", plainCite(ctx))
}

func TestRenderNamesEtAlUseLast(t *testing.T) {
	t.Parallel()

	s := buildStyle(t, `<citation><layout><names variable="author"><name et-al-min="3" et-al-use-first="1" et-al-use-last="true"/></names></layout></citation>`)

	assert.Equal(t, "Jane Doe, … Kim Lee",
		plainCite(newCtx(s, authoredRef(doe, smith, garcia, lee))))
}

func TestRenderNamesSortOrderWithInitials(t *testing.T) {
	t.Parallel()

	s := buildStyle(t, `<citation><layout><names variable="author"><name name-as-sort-order="first" initialize-with=". " and="text"/></names></layout></citation>`)

	assert.Equal(t, "Doe, J. and J. Smith",
		plainCite(newCtx(s, authoredRef(doe, smith))))
}

func TestRenderNamesSortOrderAll(t *testing.T) {
	t.Parallel()

	s := buildStyle(t, `<citation><layout><names variable="author"><name name-as-sort-order="all"/></names></layout></citation>`)

	assert.Equal(t, "Doe, Jane, Smith, John",
		plainCite(newCtx(s, authoredRef(doe, smith))))
}

func TestRenderNamesParticles(t *testing.T) {
	t.Parallel()

	beethoven := reference.Name{
		Family: "Beethoven", Given: "Ludwig", NonDroppingParticle: "van",
	}

	s := buildStyle(t, `<citation><layout><names variable="author"><name/></names></layout></citation>`)
	assert.Equal(t, "Ludwig van Beethoven",
		plainCite(newCtx(s, authoredRef(beethoven))))

	// the default demotes the particle to the given side
	s = buildStyle(t, `<citation><layout><names variable="author"><name name-as-sort-order="all"/></names></layout></citation>`)
	assert.Equal(t, "Beethoven, Ludwig van",
		plainCite(newCtx(s, authoredRef(beethoven))))

	s = buildStyleAttrs(t, `demote-non-dropping-particle="never"`,
		`<citation><layout><names variable="author"><name name-as-sort-order="all"/></names></layout></citation>`)
	assert.Equal(t, "van Beethoven, Ludwig",
		plainCite(newCtx(s, authoredRef(beethoven))))
}

func TestRenderNamesCountForm(t *testing.T) {
	t.Parallel()

	s := buildStyle(t, `<citation><layout><names variable="author"><name form="count"/></names></layout></citation>`)

	assert.Equal(t, "3", plainCite(newCtx(s, authoredRef(doe, smith, garcia))))
}

func TestRenderNamesShortForm(t *testing.T) {
	t.Parallel()

	s := buildStyle(t, `<citation><layout><names variable="author"><name form="short"/></names></layout></citation>`)

	assert.Equal(t, "Doe, Smith", plainCite(newCtx(s, authoredRef(doe, smith))))
}

func TestRenderNamesRoleLabel(t *testing.T) {
	t.Parallel()

	s := buildStyle(t, `<citation><layout><names variable="editor"><name/><label form="short" prefix=" (" suffix=")"/></names></layout></citation>`)

	ref := bookRef()
	ref.Name[reference.NameVarEditor] = []reference.Name{smith}
	assert.Equal(t, "John Smith (ed.)", plainCite(newCtx(s, ref)))

	ref = bookRef()
	ref.Name[reference.NameVarEditor] = []reference.Name{smith, doe}
	assert.Equal(t, "John Smith, Jane Doe (eds.)", plainCite(newCtx(s, ref)))
}

func TestRenderNamesSubstituteMutesVariable(t *testing.T) {
	t.Parallel()

	s := buildStyle(t, `<macro name="creator"><names variable="author"><substitute><text variable="title"/></substitute></names></macro><citation><layout><group delimiter=", "><text macro="creator"/><text variable="title"/></group></layout></citation>`)

	ref := bookRef()
	ref.Ordinary[reference.OrdinaryVar("title")] = "Anonymous Tract"

	// the title substitutes for the missing author and must not repeat
	assert.Equal(t, "Anonymous Tract", plainCite(newCtx(s, ref)))
}

func TestRenderNamesSubstituteFallsThrough(t *testing.T) {
	t.Parallel()

	s := buildStyle(t, `<citation><layout><names variable="author"><substitute><names variable="editor"/><text variable="title"/></substitute></names></layout></citation>`)

	ref := bookRef()
	ref.Name[reference.NameVarEditor] = []reference.Name{smith}
	assert.Equal(t, "John Smith", plainCite(newCtx(s, ref)))

	ref = bookRef()
	ref.Ordinary[reference.OrdinaryVar("title")] = "No Creators Here"
	assert.Equal(t, "No Creators Here", plainCite(newCtx(s, ref)))
}

func TestRenderNamesSuppressAuthor(t *testing.T) {
	t.Parallel()

	s := buildStyle(t, `<citation><layout><group delimiter=" "><names variable="author"><name/></names><date variable="issued"><date-part name="year"/></date></group></layout></citation>`)
	ref := authoredRef(doe)
	ref.Date[reference.DateVarIssued] = reference.Single(reference.Date{Year: 1999})

	ctx := newCtx(s, ref)
	ctx.SuppressAuthor = true
	assert.Equal(t, "1999", plainCite(ctx))
}

func TestRenderNamesRerender(t *testing.T) {
	t.Parallel()

	s := buildStyle(t, `<citation><layout><names variable="author"><name et-al-min="2" et-al-use-first="1"/></names></layout></citation>`)
	ctx := newCtx(s, authoredRef(doe, smith, garcia))
	sum := Cite(ctx, s.Citation.Layout)

	blocks := citeir.NamesBlocks(sum.Node)
	require.Len(t, blocks, 1)
	assert.Equal(t, "Jane Doe et al.",
		format.PlainText{}.Output(blocks[0].Current, false))

	node, gv, ok := blocks[0].Rerender(1, false)
	require.True(t, ok)
	assert.Equal(t, citeir.DidRender, gv)
	assert.Equal(t, "Jane Doe, John Smith, et al.",
		format.PlainText{}.Output(citeir.Flatten(node, false), false))

	node, _, ok = blocks[0].Rerender(2, false)
	require.True(t, ok)
	assert.Equal(t, "Jane Doe, John Smith, María García",
		format.PlainText{}.Output(citeir.Flatten(node, false), false))

	// nothing left to reveal
	_, _, ok = blocks[0].Rerender(3, false)
	assert.False(t, ok)
}

func TestRenderNamesRerenderFullGiven(t *testing.T) {
	t.Parallel()

	s := buildStyle(t, `<citation><layout><names variable="author"><name initialize-with=". "/></names></layout></citation>`)
	ctx := newCtx(s, authoredRef(doe))
	sum := Cite(ctx, s.Citation.Layout)

	blocks := citeir.NamesBlocks(sum.Node)
	require.Len(t, blocks, 1)
	assert.Equal(t, "J. Doe", format.PlainText{}.Output(blocks[0].Current, false))

	node, _, ok := blocks[0].Rerender(0, true)
	require.True(t, ok)
	assert.Equal(t, "Jane Doe",
		format.PlainText{}.Output(citeir.Flatten(node, false), false))
}

func TestRenderNamesEmptyWithoutSubstitute(t *testing.T) {
	t.Parallel()

	s := buildStyle(t, `<citation><layout><group delimiter=" "><names variable="author"/><text value="anon"/></group></layout></citation>`)

	// names came up empty, so the group folds away
	assert.Equal(t, "", plainCite(newCtx(s, bookRef())))
}
