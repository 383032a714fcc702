package harness

import (
	"sort"
	"testing"

	"github.com/sebdah/goldie/v2"
)

// Snapshot is the canonical serialization of a scenario result for
// golden comparison. Cluster outputs are flattened into a sorted list
// so the JSON is stable across runs.
type Snapshot struct {
	Scenario     string        `json:"scenario"`
	Outputs      []ClusterLine `json:"outputs"`
	Bibliography []string      `json:"bibliography,omitempty"`
	Changed      []string      `json:"changed,omitempty"`
	Errors       []string      `json:"errors,omitempty"`
}

// ClusterLine is one cluster's output in a snapshot.
type ClusterLine struct {
	ID     string `json:"id"`
	Output string `json:"output"`
}

// NewSnapshot flattens a result.
func NewSnapshot(name string, res *Result) *Snapshot {
	s := &Snapshot{
		Scenario:     name,
		Outputs:      make([]ClusterLine, 0, len(res.Outputs)),
		Bibliography: res.Bibliography,
		Changed:      res.Changed,
		Errors:       res.Errors,
	}
	for id, out := range res.Outputs {
		s.Outputs = append(s.Outputs, ClusterLine{ID: id, Output: out})
	}
	sort.Slice(s.Outputs, func(i, j int) bool {
		return s.Outputs[i].ID < s.Outputs[j].ID
	})
	return s
}

// VerifySnapshot compares a result against its golden file. Run with
// -update to regenerate goldens.
func VerifySnapshot(t *testing.T, name string, res *Result) {
	t.Helper()
	g := goldie.New(t, goldie.WithNameSuffix(".golden.json"))
	g.AssertJson(t, name, NewSnapshot(name, res))
}
