package harness

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"

	"github.com/quillabs/citare/internal/citation"
)

// Scenario is one end-to-end citation test case.
type Scenario struct {
	// Name uniquely identifies the scenario; golden files use it.
	Name string `yaml:"name"`

	// Description explains what the scenario demonstrates.
	Description string `yaml:"description,omitempty"`

	// Style is the full CSL XML source.
	Style string `yaml:"style"`

	// Locales maps language tags to locale XML, served to the
	// processor's locale fetcher.
	Locales map[string]string `yaml:"locales,omitempty"`

	// Format is the output format name; empty means plain text.
	Format string `yaml:"format,omitempty"`

	// References are CSL-JSON reference objects, written in YAML.
	References []map[string]any `yaml:"references"`

	Clusters []ClusterDef `yaml:"clusters"`
	Order    []OrderDef   `yaml:"order"`

	// Edits are applied after the first build, to exercise the
	// incremental path.
	Edits *Edits `yaml:"edits,omitempty"`

	Expect Expect `yaml:"expect"`
}

// ClusterDef defines one cluster.
type ClusterDef struct {
	ID    string    `yaml:"id"`
	Cites []CiteDef `yaml:"cites"`
	Mode  *ModeDef  `yaml:"mode,omitempty"`
}

// CiteDef defines one cite.
type CiteDef struct {
	Ref      string       `yaml:"ref"`
	Prefix   string       `yaml:"prefix,omitempty"`
	Suffix   string       `yaml:"suffix,omitempty"`
	Locators []LocatorDef `yaml:"locators,omitempty"`
}

// LocatorDef defines one locator.
type LocatorDef struct {
	Label string `yaml:"label"`
	Value string `yaml:"value"`
}

// ModeDef selects a cluster mode.
type ModeDef struct {
	// Type is "author-only", "suppress-author" or "composite".
	Type          string  `yaml:"type"`
	Infix         *string `yaml:"infix,omitempty"`
	SuppressFirst uint32  `yaml:"suppress_first,omitempty"`
}

// ClusterMode converts the definition to the engine's mode type.
func (m *ModeDef) ClusterMode() (citation.ClusterMode, error) {
	if m == nil {
		return nil, nil
	}
	switch m.Type {
	case "author-only":
		return citation.AuthorOnly{}, nil
	case "suppress-author":
		return citation.SuppressAuthor{SuppressFirst: m.SuppressFirst}, nil
	case "composite":
		return citation.Composite{Infix: m.Infix, SuppressFirst: m.SuppressFirst}, nil
	}
	return nil, errors.Newf("unknown cluster mode %q", m.Type)
}

// OrderDef places one cluster in the document.
type OrderDef struct {
	ID   string  `yaml:"id"`
	Note *uint32 `yaml:"note,omitempty"`
}

// Edits replaces references after the first build.
type Edits struct {
	References []map[string]any `yaml:"references,omitempty"`
}

// Expect holds the scenario's expected outputs. All fields are subset
// checks: an absent field asserts nothing.
type Expect struct {
	// Clusters maps cluster ids to their formatted outputs.
	Clusters map[string]string `yaml:"clusters,omitempty"`

	// Bibliography is the full expected entry list.
	Bibliography []string `yaml:"bibliography,omitempty"`

	// Changed is the exact set of cluster ids the post-edit
	// UpdateSummary must report.
	Changed []string `yaml:"changed,omitempty"`
}

// LoadScenario reads one scenario file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading scenario %s", path)
	}
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, errors.Wrapf(err, "parsing scenario %s", path)
	}
	if sc.Name == "" {
		return nil, errors.Newf("scenario %s has no name", path)
	}
	if sc.Style == "" {
		return nil, errors.Newf("scenario %s has no style", path)
	}
	return &sc, nil
}

// LoadDir reads every *.yaml scenario under dir, sorted by name.
func LoadDir(dir string) ([]*Scenario, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.yaml"))
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)
	out := make([]*Scenario, 0, len(paths))
	for _, path := range paths {
		sc, err := LoadScenario(path)
		if err != nil {
			return nil, err
		}
		out = append(out, sc)
	}
	return out, nil
}
