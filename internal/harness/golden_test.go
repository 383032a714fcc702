package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSnapshotSortsOutputs(t *testing.T) {
	t.Parallel()

	res := &Result{
		Pass: true,
		Outputs: map[string]string{
			"zz": "last",
			"aa": "first",
			"mm": "middle",
		},
	}
	s := NewSnapshot("ordering", res)
	assert.Equal(t, []ClusterLine{
		{ID: "aa", Output: "first"},
		{ID: "mm", Output: "middle"},
		{ID: "zz", Output: "last"},
	}, s.Outputs)
}

func TestSnapshotCarriesFailureDetails(t *testing.T) {
	t.Parallel()

	res := &Result{
		Outputs: map[string]string{"c1": "out"},
		Changed: []string{"c1"},
		Errors:  []string{"cluster c1: got x, want y"},
	}
	s := NewSnapshot("failing", res)
	assert.Equal(t, []string{"c1"}, s.Changed)
	assert.Equal(t, []string{"cluster c1: got x, want y"}, s.Errors)
}
