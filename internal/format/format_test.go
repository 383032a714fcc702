package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestByName(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"plain", "html", "rtf", "pandoc"} {
		f, err := ByName(name)
		require.NoError(t, err)
		assert.Equal(t, name, f.Name())
	}

	f, err := ByName("")
	require.NoError(t, err)
	assert.Equal(t, "plain", f.Name())

	_, err = ByName("docx")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestPlainOutput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		b    Build
		want string
	}{
		{
			name: "bare text",
			b:    Plain("hello"),
			want: "hello",
		},
		{
			name: "formatting stripped",
			b: Formatted{
				Children: []Build{Plain("title")},
				F:        Formatting{FontStyle: StyleItalic},
			},
			want: "title",
		},
		{
			name: "group skips empty children",
			b: Group{
				Children: []Build{Plain("a"), Plain(""), Plain("b")},
				Delim:    ", ",
			},
			want: "a, b",
		},
		{
			name: "quotes kept",
			b:    QuotedNode(Plain("said"), DefaultQuotes),
			want: "“said”",
		},
		{
			name: "affixes",
			b:    Affixed(Plain("12"), Affixes{Prefix: "(", Suffix: ")"}),
			want: "(12)",
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, PlainText{}.Output(tt.b, false))
		})
	}
}

func TestPunctuationInQuote(t *testing.T) {
	t.Parallel()

	b := Group{Children: []Build{
		QuotedNode(Plain("Down by the River"), DefaultQuotes),
		Plain("."),
	}}

	assert.Equal(t, "“Down by the River”.", PlainText{}.Output(b, false))
	assert.Equal(t, "“Down by the River.”", PlainText{}.Output(b, true))
	assert.Equal(t, "“Down by the River.”", HTML{}.Output(b, true))
}

func TestHTMLOutput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		b    Build
		want string
	}{
		{
			name: "escaping",
			b:    Plain(`a < b & "c"`),
			want: "a &lt; b &amp; &#34;c&#34;",
		},
		{
			name: "italic",
			b: Formatted{
				Children: []Build{Plain("Oryx and Crake")},
				F:        Formatting{FontStyle: StyleItalic},
			},
			want: "<i>Oryx and Crake</i>",
		},
		{
			name: "bold small-caps nest",
			b: Formatted{
				Children: []Build{Plain("x")},
				F: Formatting{
					FontWeight:  WeightBold,
					FontVariant: VariantSmallCaps,
				},
			},
			want: `<b><span style="font-variant:small-caps;">x</span></b>`,
		},
		{
			name: "superscript",
			b: Formatted{
				Children: []Build{Plain("2")},
				F:        Formatting{VerticalAlign: AlignSuper},
			},
			want: "<sup>2</sup>",
		},
		{
			name: "display block in bibliography",
			b:    WithDisplay(Plain("entry"), DisplayBlock, true),
			want: `<div class="csl-block">entry</div>`,
		},
		{
			name: "display ignored in citation",
			b:    WithDisplay(Plain("entry"), DisplayBlock, false),
			want: "entry",
		},
		{
			name: "link",
			b:    Hyperlinked(Plain("10.1000/x"), "https://doi.org/10.1000/x"),
			want: `<a href="https://doi.org/10.1000/x">10.1000/x</a>`,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, HTML{}.Output(tt.b, false))
		})
	}
}

func TestRTFOutput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		b    Build
		want string
	}{
		{
			name: "control chars escaped",
			b:    Plain(`a{b}c\d`),
			want: `a\{b\}c\\d`,
		},
		{
			name: "non-ascii as unicode escape",
			b:    Plain("é"),
			want: `\uc0\u233 `,
		},
		{
			name: "italic group",
			b: Formatted{
				Children: []Build{Plain("title")},
				F:        Formatting{FontStyle: StyleItalic},
			},
			want: `{\i title}`,
		},
		{
			name: "bold superscript",
			b: Formatted{
				Children: []Build{Plain("x")},
				F: Formatting{
					FontWeight:    WeightBold,
					VerticalAlign: AlignSuper,
				},
			},
			want: `{\b {\super x}}`,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, RTF{}.Output(tt.b, false))
		})
	}
}

func TestPandocOutput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		b    Build
		want string
	}{
		{
			name: "words and spaces",
			b:    Plain("two words"),
			want: `[{"t":"Str","c":"two"},{"t":"Space"},{"t":"Str","c":"words"}]`,
		},
		{
			name: "emph",
			b: Formatted{
				Children: []Build{Plain("title")},
				F:        Formatting{FontStyle: StyleItalic},
			},
			want: `[{"t":"Emph","c":[{"t":"Str","c":"title"}]}]`,
		},
		{
			name: "quoted",
			b:    QuotedNode(Plain("hi"), DefaultQuotes),
			want: `[{"t":"Quoted","c":[{"t":"DoubleQuote"},[{"t":"Str","c":"hi"}]]}]`,
		},
		{
			name: "empty tree",
			b:    Plain(""),
			want: "[]",
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Pandoc{}.Output(tt.b, false))
		})
	}
}

func TestPandocPunctuationInQuote(t *testing.T) {
	t.Parallel()

	b := Group{Children: []Build{
		QuotedNode(Plain("Song"), DefaultQuotes),
		Plain(", note"),
	}}
	out := Pandoc{}.Output(b, true)
	assert.Equal(t,
		`[{"t":"Quoted","c":[{"t":"DoubleQuote"},[{"t":"Str","c":"Song"},{"t":"Str","c":","}]]},{"t":"Space"},{"t":"Str","c":"note"}]`,
		out)
}

func TestSortString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		b    Build
		want string
	}{
		{
			name: "lowercases and folds accents",
			b:    Plain("Émile Zola"),
			want: "emile zola",
		},
		{
			name: "drops commas and quotes",
			b:    Plain(`Brown, "Jr."`),
			want: "brown jr.",
		},
		{
			name: "markup stripped",
			b: Formatted{
				Children: []Build{Plain("The Title")},
				F:        Formatting{FontStyle: StyleItalic},
			},
			want: "the title",
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, SortString{}.Output(tt.b, false))
		})
	}
}

func TestLinkTarget(t *testing.T) {
	t.Parallel()

	tests := []struct {
		variable string
		value    string
		want     string
	}{
		{"DOI", "10.1000/xyz", "https://doi.org/10.1000/xyz"},
		{"DOI", "https://doi.org/10.1000/xyz", "https://doi.org/10.1000/xyz"},
		{"PMID", "12345", "https://www.ncbi.nlm.nih.gov/pubmed/12345"},
		{"PMCID", "PMC12345", "https://www.ncbi.nlm.nih.gov/pmc/articles/PMC12345"},
		{"URL", "https://example.com", "https://example.com"},
		{"title", "anything", ""},
	}
	for _, tt := range tests {
		tt := tt
		assert.Equal(t, tt.want, LinkTarget(tt.variable, tt.value), tt.variable)
	}
}

func TestIsEmpty(t *testing.T) {
	t.Parallel()

	assert.True(t, IsEmpty(nil))
	assert.True(t, IsEmpty(Plain("")))
	assert.True(t, IsEmpty(Group{Children: []Build{Plain(""), Plain("")}}))
	assert.False(t, IsEmpty(Plain("x")))
	// quotes render even around empty content
	assert.False(t, IsEmpty(QuotedNode(Plain(""), DefaultQuotes)))
}
