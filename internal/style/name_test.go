package style

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quillabs/citare/internal/format"
)

func TestRootNameDefaults(t *testing.T) {
	t.Parallel()

	n := RootNameDefaults()
	require.NotNil(t, n.Delimiter)
	assert.Equal(t, ", ", *n.Delimiter)
	require.NotNil(t, n.DelimiterPrecedesEtAl)
	assert.Equal(t, PrecedesContextual, *n.DelimiterPrecedesEtAl)
	require.NotNil(t, n.DelimiterPrecedesLast)
	assert.Equal(t, PrecedesContextual, *n.DelimiterPrecedesLast)
	require.NotNil(t, n.EtAlUseLast)
	assert.False(t, *n.EtAlUseLast)
	require.NotNil(t, n.Form)
	assert.Equal(t, NameLong, *n.Form)
	require.NotNil(t, n.Initialize)
	assert.True(t, *n.Initialize)
	require.NotNil(t, n.SortSeparator)
	assert.Equal(t, ", ", *n.SortSeparator)

	// subsequent et-al fields fall back to the primary ones at render
	// time, so the defaults leave them unset
	assert.Nil(t, n.EtAlSubsequentMin)
	assert.Nil(t, n.EtAlSubsequentUseFirst)
	assert.Nil(t, n.EtAlMin)
	assert.Nil(t, n.EtAlUseFirst)
}

func TestNameOptionsMergeEmptyIsIdentity(t *testing.T) {
	t.Parallel()

	base := RootNameDefaults()
	merged := base.Merge(NameOptions{})
	assert.Equal(t, base, merged)
}

func TestNameOptionsMergeOverrideWins(t *testing.T) {
	t.Parallel()

	short := NameShort
	min := uint32(3)
	noInit := false

	base := RootNameDefaults()
	merged := base.Merge(NameOptions{
		Form:       &short,
		EtAlMin:    &min,
		Initialize: &noInit,
	})

	assert.Equal(t, NameShort, *merged.Form)
	assert.Equal(t, uint32(3), *merged.EtAlMin)
	assert.False(t, *merged.Initialize)
	// untouched attributes keep the base values
	assert.Equal(t, ", ", *merged.Delimiter)
	assert.Equal(t, ", ", *merged.SortSeparator)
}

func TestNameOptionsMergeNonInheritedFields(t *testing.T) {
	t.Parallel()

	base := NameOptions{
		Formatting: &format.Formatting{FontWeight: format.WeightBold},
		Affixes:    format.Affixes{Prefix: "["},
		NamePartGiven: &NamePart{
			TextCase: format.CaseCapitalizeFirst,
		},
	}
	merged := base.Merge(NameOptions{})

	// formatting, affixes and name-part blocks never inherit
	assert.Nil(t, merged.Formatting)
	assert.Zero(t, merged.Affixes)
	assert.Nil(t, merged.NamePartGiven)
	assert.Nil(t, merged.NamePartFamily)
}

func TestEnableEtAl(t *testing.T) {
	t.Parallel()

	min := uint32(3)
	first := uint32(1)
	assert.False(t, NameOptions{}.EnableEtAl())
	assert.False(t, NameOptions{EtAlMin: &min}.EnableEtAl())
	assert.False(t, NameOptions{EtAlUseFirst: &first}.EnableEtAl())
	assert.True(t, NameOptions{EtAlMin: &min, EtAlUseFirst: &first}.EnableEtAl())
}
