package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testStyle = `<style class="in-text" version="1.0">` +
	`<info><title>t</title><id>t</id></info>` +
	`<citation><layout prefix="(" suffix=")" delimiter="; ">` +
	`<group delimiter=" "><names variable="author"><name form="short"/></names>` +
	`<date variable="issued"><date-part name="year"/></date></group></layout></citation>` +
	`<bibliography><layout>` +
	`<group delimiter=". "><names variable="author"/><text variable="title"/></group>` +
	`</layout></bibliography></style>`

const testRefs = `[
  {"id": "doe99", "type": "book", "title": "Go Book",
   "author": [{"family": "Doe", "given": "Jane"}],
   "issued": {"date-parts": [[1999]]}},
  {"id": "smith01", "type": "book", "title": "Later Work",
   "author": [{"family": "Smith", "given": "John"}],
   "issued": {"date-parts": [[2001]]}}
]`

const testDocument = `
clusters:
  - id: c1
    cites: [{ref: doe99}]
  - id: c2
    cites: [{ref: doe99}, {ref: smith01}]
order:
  - {id: c1}
  - {id: c2}
`

// writeCiteInputs lays out a style, refs and document file in a temp
// dir and returns their paths.
func writeCiteInputs(t *testing.T, style, refs, document string) (string, string, string) {
	t.Helper()
	dir := t.TempDir()
	stylePath := filepath.Join(dir, "style.csl")
	refsPath := filepath.Join(dir, "refs.json")
	docPath := filepath.Join(dir, "doc.yaml")
	require.NoError(t, os.WriteFile(stylePath, []byte(style), 0o644))
	require.NoError(t, os.WriteFile(refsPath, []byte(refs), 0o644))
	require.NoError(t, os.WriteFile(docPath, []byte(document), 0o644))
	return stylePath, refsPath, docPath
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestCiteRendersClusters(t *testing.T) {
	stylePath, refsPath, docPath := writeCiteInputs(t, testStyle, testRefs, testDocument)

	out, err := execute(t, "cite", stylePath, "--refs", refsPath, "--clusters", docPath)
	require.NoError(t, err)
	assert.Contains(t, out, "c1\t(Doe 1999)")
	assert.Contains(t, out, "c2\t(Doe 1999; Smith 2001)")
}

func TestCiteBibliography(t *testing.T) {
	stylePath, refsPath, docPath := writeCiteInputs(t, testStyle, testRefs, testDocument)

	out, err := execute(t, "cite", stylePath,
		"--refs", refsPath, "--clusters", docPath, "--bibliography")
	require.NoError(t, err)
	assert.Contains(t, out, "Jane Doe. Go Book")
	assert.Contains(t, out, "John Smith. Later Work")
}

func TestCiteJSONOutput(t *testing.T) {
	stylePath, refsPath, docPath := writeCiteInputs(t, testStyle, testRefs, testDocument)

	out, err := execute(t, "--format", "json", "cite", stylePath,
		"--refs", refsPath, "--clusters", docPath)
	require.NoError(t, err)

	var resp struct {
		Status string     `json:"status"`
		Data   CiteResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	require.Len(t, resp.Data.Clusters, 2)
	assert.Equal(t, ClusterOutput{ID: "c1", Output: "(Doe 1999)"}, resp.Data.Clusters[0])
}

func TestCiteInvalidStyleExitsOne(t *testing.T) {
	bad := `<style class="in-text" version="1.0">` +
		`<info><title>t</title><id>t</id></info>` +
		`<citation><layout><text/></layout></citation></style>`
	stylePath, refsPath, docPath := writeCiteInputs(t, bad, testRefs, testDocument)

	_, err := execute(t, "cite", stylePath, "--refs", refsPath, "--clusters", docPath)
	require.Error(t, err)
	assert.Equal(t, ExitStyleError, GetExitCode(err))
}

func TestCiteMissingRefsFileExitsTwo(t *testing.T) {
	stylePath, _, docPath := writeCiteInputs(t, testStyle, testRefs, testDocument)

	_, err := execute(t, "cite", stylePath,
		"--refs", filepath.Join(t.TempDir(), "absent.json"), "--clusters", docPath)
	require.Error(t, err)
	assert.Equal(t, ExitInputError, GetExitCode(err))
}

func TestCiteBadRefsJSONExitsTwo(t *testing.T) {
	stylePath, refsPath, docPath := writeCiteInputs(t, testStyle, "{not json", testDocument)

	_, err := execute(t, "cite", stylePath, "--refs", refsPath, "--clusters", docPath)
	require.Error(t, err)
	assert.Equal(t, ExitInputError, GetExitCode(err))
}

func TestCiteUnknownOrderIDExitsTwo(t *testing.T) {
	doc := "clusters:\n  - id: c1\n    cites: [{ref: doe99}]\norder:\n  - {id: ghost}\n"
	stylePath, refsPath, docPath := writeCiteInputs(t, testStyle, testRefs, doc)

	_, err := execute(t, "cite", stylePath, "--refs", refsPath, "--clusters", docPath)
	require.Error(t, err)
	assert.Equal(t, ExitInputError, GetExitCode(err))
}

func TestCiteDuplicateClusterIDExitsTwo(t *testing.T) {
	doc := "clusters:\n  - id: c1\n    cites: [{ref: doe99}]\n  - id: c1\n    cites: [{ref: smith01}]\n"
	stylePath, refsPath, docPath := writeCiteInputs(t, testStyle, testRefs, doc)

	_, err := execute(t, "cite", stylePath, "--refs", refsPath, "--clusters", docPath)
	require.Error(t, err)
	assert.Equal(t, ExitInputError, GetExitCode(err))
}

func TestCiteUnknownRenderFormatExitsTwo(t *testing.T) {
	stylePath, refsPath, docPath := writeCiteInputs(t, testStyle, testRefs, testDocument)

	_, err := execute(t, "cite", stylePath,
		"--refs", refsPath, "--clusters", docPath, "--output", "docx")
	require.Error(t, err)
	assert.Equal(t, ExitInputError, GetExitCode(err))
}

func TestCiteHTMLOutput(t *testing.T) {
	style := `<style class="in-text" version="1.0">` +
		`<info><title>t</title><id>t</id></info>` +
		`<citation><layout>` +
		`<text variable="title" font-style="italic"/>` +
		`</layout></citation></style>`
	doc := "clusters:\n  - id: c1\n    cites: [{ref: doe99}]\norder:\n  - {id: c1}\n"
	stylePath, refsPath, docPath := writeCiteInputs(t, style, testRefs, doc)

	out, err := execute(t, "cite", stylePath,
		"--refs", refsPath, "--clusters", docPath, "--output", "html")
	require.NoError(t, err)
	assert.Contains(t, out, "<i>Go Book</i>")
}
