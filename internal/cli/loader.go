package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/quillabs/citare/internal/harness"
	"github.com/quillabs/citare/internal/locale"
)

// DocumentFile is the on-disk shape of a document: clusters plus their
// order. YAML and JSON both parse (yaml.v3 accepts JSON).
type DocumentFile struct {
	Clusters []harness.ClusterDef `yaml:"clusters"`
	Order    []harness.OrderDef   `yaml:"order"`
}

// readStyle loads a CSL style file. Read failures are input errors.
func readStyle(path string) ([]byte, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, WrapExitError(ExitInputError, fmt.Sprintf("reading style %s", path), err)
	}
	return src, nil
}

// loadReferences reads a CSL-JSON file holding an array of reference
// objects and returns each object re-serialized on its own.
func loadReferences(path string) ([]json.RawMessage, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, WrapExitError(ExitInputError, fmt.Sprintf("reading references %s", path), err)
	}
	var refs []json.RawMessage
	if err := json.Unmarshal(data, &refs); err != nil {
		return nil, WrapExitError(ExitInputError, fmt.Sprintf("parsing references %s", path), err)
	}
	return refs, nil
}

// loadDocument reads a cluster document file.
func loadDocument(path string) (*DocumentFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, WrapExitError(ExitInputError, fmt.Sprintf("reading document %s", path), err)
	}
	var doc DocumentFile
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, WrapExitError(ExitInputError, fmt.Sprintf("parsing document %s", path), err)
	}
	seen := make(map[string]bool, len(doc.Clusters))
	for _, c := range doc.Clusters {
		if c.ID == "" {
			return nil, NewExitError(ExitInputError, fmt.Sprintf("document %s: cluster without id", path))
		}
		if seen[c.ID] {
			return nil, NewExitError(ExitInputError, fmt.Sprintf("document %s: duplicate cluster id %q", path, c.ID))
		}
		seen[c.ID] = true
	}
	return &doc, nil
}

// dirFetcher serves locale XML from a directory of files named
// locales-<tag>.xml, the layout of the upstream CSL locales repository.
func dirFetcher(dir string) locale.Fetcher {
	return locale.FetcherFunc(func(lang locale.Lang) ([]byte, error) {
		return os.ReadFile(filepath.Join(dir, "locales-"+lang.String()+".xml"))
	})
}
