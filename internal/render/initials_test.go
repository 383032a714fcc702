package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInitializeGivenPeriod(t *testing.T) {
	t.Parallel()

	// with carries no space, so consecutive initials pack tight
	tests := []struct {
		given, want string
	}{
		{"ME", "M."},
		{"ME.", "ME."},
		{"A. Alan", "A.A."},
		{"John R L", "J.R.L."},
		{"Jean-Luc K", "J.-L.K."},
		{"R. L.", "R.L."},
		{"R L", "R.L."},
		{"John R.L.", "J.R.L."},
		{"GIven", "Gi."},
		{"John R L de Bortoli", "J.R.L. de B."},
		{"好 好", "好 好"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.given, func(t *testing.T) {
			t.Parallel()
			got := InitializeGiven(tt.given, ".", true, true)
			assert.Equal(t, tt.want, got)
			// re-initializing an initialized name changes nothing
			assert.Equal(t, got, InitializeGiven(got, ".", true, true))
		})
	}
}

func TestInitializeGivenPeriodSpace(t *testing.T) {
	t.Parallel()

	tests := []struct {
		given, want string
	}{
		{"ME", "M."},
		{"ME.", "ME."},
		{"A. Alan", "A. A."},
		{"John R L", "J. R. L."},
		{"Jean-Luc K", "J.-L. K."},
		{"R. L.", "R. L."},
		{"R L", "R. L."},
		{"John R.L.", "J. R. L."},
		{"John R L de Bortoli", "J. R. L. de B."},
		{"Øyvind", "Ø."},
		{"好 好", "好 好"},
		{"", ""},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.given, func(t *testing.T) {
			t.Parallel()
			got := InitializeGiven(tt.given, ". ", true, true)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, InitializeGiven(got, ". ", true, true))
		})
	}
}

func TestInitializeGivenEmptyWith(t *testing.T) {
	t.Parallel()

	tests := []struct {
		given, want string
	}{
		{"ME", "M"},
		{"ME.", "ME"},
		{"A. Alan", "AA"},
		{"John R L", "JRL"},
		{"Jean-Luc K", "JLK"},
		{"R. L.", "RL"},
		{"R L", "RL"},
		{"John R.L.", "JRL"},
		{"John R L de Bortoli", "JRL de B"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.given, func(t *testing.T) {
			t.Parallel()
			// hyphenate off drops the hyphen between segments
			assert.Equal(t, tt.want, InitializeGiven(tt.given, "", true, false))
		})
	}
}

func TestInitializeOffDressesInitials(t *testing.T) {
	t.Parallel()

	// initialize="false": full words pass through, but anything already
	// an initial still gets the with string
	tests := []struct {
		given, want string
	}{
		{"ME", "ME"},
		{"ME.", "ME."},
		{"A. Alan", "A. Alan"},
		{"John R L", "John R.L."},
		{"Jean-Luc K", "Jean-Luc K."},
		{"R. L.", "R.L."},
		{"R L", "R.L."},
		{"John R.L.", "John R.L."},
		{"John R L de Bortoli", "John R.L. de Bortoli"},
		{"好 好", "好 好"},
		{"Immel, Ph. M.E.", "Immel, Ph.M.E."},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.given, func(t *testing.T) {
			t.Parallel()
			got := InitializeGiven(tt.given, ".", false, true)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, InitializeGiven(got, ".", false, true))
		})
	}
}

func TestInitializeOffPeriodSpace(t *testing.T) {
	t.Parallel()

	tests := []struct {
		given, want string
	}{
		{"John R L", "John R. L."},
		{"John R.L.", "John R. L."},
		{"John R L de Bortoli", "John R. L. de Bortoli"},
		{"Immel, Ph. M.E.", "Immel, Ph. M. E."},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.given, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, InitializeGiven(tt.given, ". ", false, true))
		})
	}
}

func TestTokenizeGiven(t *testing.T) {
	t.Parallel()

	tests := []struct {
		word string
		want []givenToken
	}{
		{"Ph.", []givenToken{{tokInitial, "Ph"}}},
		{"M.E.", []givenToken{{tokInitial, "M"}, {tokInitial, "E"}}},
		{"ME", []givenToken{{tokName, "ME"}}},
		{"ME.", []givenToken{{tokInitial, "ME"}}},
		{"Alan", []givenToken{{tokName, "Alan"}}},
		{"Jean-Luc", []givenToken{{tokName, "Jean"}, {tokHyphenSegment, "Luc"}}},
		{"de", []givenToken{{tokOther, "de"}}},
		{"好", []givenToken{{tokOther, "好"}}},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.word, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tokenizeGiven(tt.word))
		})
	}
}
