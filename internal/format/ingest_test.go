package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIngest(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  Build
	}{
		{
			name:  "plain text",
			input: "no markup here",
			want:  Text{Text: "no markup here"},
		},
		{
			name:  "italic span",
			input: "the <i>Beagle</i> voyage",
			want: Group{Children: []Build{
				Text{Text: "the "},
				Formatted{
					Children: []Build{Text{Text: "Beagle"}},
					F:        Formatting{FontStyle: StyleItalic},
				},
				Text{Text: " voyage"},
			}},
		},
		{
			name:  "nested bold in italic",
			input: "<i>a <b>b</b></i>",
			want: Formatted{
				Children: []Build{
					Text{Text: "a "},
					Formatted{
						Children: []Build{Text{Text: "b"}},
						F:        Formatting{FontWeight: WeightBold},
					},
				},
				F: Formatting{FontStyle: StyleItalic},
			},
		},
		{
			name:  "nocase span",
			input: `about <span class="nocase">mRNA</span>`,
			want: Group{Children: []Build{
				Text{Text: "about "},
				NoCase{Children: []Build{Text{Text: "mRNA"}}},
			}},
		},
		{
			name:  "small-caps via style attr",
			input: `<span style="font-variant:small-caps;">bce</span>`,
			want: Formatted{
				Children: []Build{Text{Text: "bce"}},
				F:        Formatting{FontVariant: VariantSmallCaps},
			},
		},
		{
			name:  "quote tag uses default quotes",
			input: "<q>ipsum</q>",
			want: Quoted{
				Children: []Build{Text{Text: "ipsum"}},
				Quotes:   DefaultQuotes,
			},
		},
		{
			name:  "unknown tag kept as text",
			input: "a <em>b</em> c",
			want:  Text{Text: "a <em>b</em> c"},
		},
		{
			name:  "stray angle bracket",
			input: "x < y",
			want:  Text{Text: "x < y"},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Ingest(tt.input, IngestOptions{}))
		})
	}
}

func TestIngestUnbalanced(t *testing.T) {
	t.Parallel()

	// an <i> with no close runs to end of input as an italic span
	got := Ingest("a <i>rest", IngestOptions{})
	want := Group{Children: []Build{
		Text{Text: "a "},
		Formatted{
			Children: []Build{Text{Text: "rest"}},
			F:        Formatting{FontStyle: StyleItalic},
		},
	}}
	assert.Equal(t, want, got)
}

func TestIngestNoParse(t *testing.T) {
	t.Parallel()

	got := Ingest("<i>kept verbatim</i>", IngestOptions{NoParse: true})
	assert.Equal(t, Text{Text: "<i>kept verbatim</i>"}, got)
}
