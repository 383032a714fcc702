package harness

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"

	"github.com/cockroachdb/errors"

	"github.com/quillabs/citare/internal/engine"
	"github.com/quillabs/citare/internal/format"
	"github.com/quillabs/citare/internal/locale"
)

// Result is the outcome of one scenario run.
type Result struct {
	Pass bool `json:"pass"`

	// Outputs maps every defined cluster to its formatted output.
	Outputs map[string]string `json:"outputs"`

	// Bibliography is present when the style has a bibliography.
	Bibliography []string `json:"bibliography,omitempty"`

	// Changed is the post-edit UpdateSummary's cluster set, present
	// only for scenarios with edits.
	Changed []string `json:"changed,omitempty"`

	// Errors holds expectation mismatches and runtime failures.
	Errors []string `json:"errors,omitempty"`
}

func (r *Result) fail(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
	r.Pass = false
}

// Runner executes scenarios against fresh processors.
type Runner struct {
	log *slog.Logger
}

// NewRunner creates a runner.
func NewRunner(log *slog.Logger) *Runner {
	if log == nil {
		log = slog.Default()
	}
	return &Runner{log: log}
}

// Run executes one scenario. Runtime failures land in Result.Errors
// rather than aborting, so a broken scenario still reports everything
// it can.
func (r *Runner) Run(sc *Scenario) *Result {
	res := &Result{Pass: true, Outputs: make(map[string]string)}

	p, err := r.newProcessor(sc)
	if err != nil {
		res.fail("%v", err)
		return res
	}

	if err := r.feed(p, sc); err != nil {
		res.fail("%v", err)
		return res
	}

	if _, err := p.BatchedUpdates(); err != nil {
		res.fail("initial build: %v", err)
		return res
	}
	for _, cd := range sc.Clusters {
		out, err := p.BuiltCluster(cd.ID)
		if err != nil {
			res.fail("built_cluster(%s): %v", cd.ID, err)
			continue
		}
		res.Outputs[cd.ID] = out
	}
	if bib, err := p.BuiltBibliography(); err == nil {
		res.Bibliography = bib
	} else if engine.CodeOf(err) != engine.ErrCodeNoBibliography {
		res.fail("built_bibliography: %v", err)
	}

	if sc.Edits != nil {
		r.applyEdits(p, sc, res)
	}

	r.check(sc, res)
	return res
}

func (r *Runner) newProcessor(sc *Scenario) (*engine.Processor, error) {
	out, err := format.ByName(sc.Format)
	if err != nil {
		return nil, err
	}
	opts := []engine.Option{
		engine.WithLogger(r.log),
		engine.WithFormat(out),
		engine.WithBatchTokens(engine.NewFixedGenerator("batch-1", "batch-2", "batch-3")),
	}
	if len(sc.Locales) > 0 {
		files := sc.Locales
		opts = append(opts, engine.WithLocaleFetcher(
			locale.FetcherFunc(func(lang locale.Lang) ([]byte, error) {
				if xml, ok := files[lang.String()]; ok {
					return []byte(xml), nil
				}
				return nil, errors.Newf("no locale %s", lang)
			})))
	}
	p := engine.New(opts...)
	if err := p.SetStyle([]byte(sc.Style)); err != nil {
		return nil, errors.Wrap(err, "style")
	}
	return p, nil
}

func (r *Runner) feed(p *engine.Processor, sc *Scenario) error {
	for _, ref := range sc.References {
		if err := insertRef(p, ref); err != nil {
			return err
		}
	}
	for _, cd := range sc.Clusters {
		mode, err := cd.Mode.ClusterMode()
		if err != nil {
			return err
		}
		p.InsertCluster(cd.ID, citeInputs(cd.Cites), mode)
	}
	order := make([]engine.OrderEntry, 0, len(sc.Order))
	for _, od := range sc.Order {
		order = append(order, engine.OrderEntry{ID: od.ID, Note: od.Note})
	}
	if len(order) > 0 {
		if err := p.SetClusterOrder(order); err != nil {
			return errors.Wrap(err, "cluster order")
		}
	}
	return nil
}

func (r *Runner) applyEdits(p *engine.Processor, sc *Scenario, res *Result) {
	for _, ref := range sc.Edits.References {
		if err := insertRef(p, ref); err != nil {
			res.fail("edit: %v", err)
			return
		}
	}
	sum, err := p.BatchedUpdates()
	if err != nil {
		res.fail("post-edit build: %v", err)
		return
	}
	res.Changed = make([]string, 0, len(sum.Updates))
	for _, u := range sum.Updates {
		res.Changed = append(res.Changed, u.ID)
		res.Outputs[u.ID] = u.Output
	}
	sort.Strings(res.Changed)
}

func (r *Runner) check(sc *Scenario, res *Result) {
	for id, want := range sc.Expect.Clusters {
		got, ok := res.Outputs[id]
		if !ok {
			res.fail("cluster %s: no output", id)
			continue
		}
		if got != want {
			res.fail("cluster %s: got %q, want %q", id, got, want)
		}
	}
	if sc.Expect.Bibliography != nil && !equalSlices(res.Bibliography, sc.Expect.Bibliography) {
		res.fail("bibliography: got %q, want %q", res.Bibliography, sc.Expect.Bibliography)
	}
	if sc.Expect.Changed != nil {
		want := append([]string(nil), sc.Expect.Changed...)
		sort.Strings(want)
		if !equalSlices(res.Changed, want) {
			res.fail("changed clusters: got %v, want %v", res.Changed, want)
		}
	}
}

// insertRef routes a YAML reference object through the CSL-JSON parser.
func insertRef(p *engine.Processor, ref map[string]any) error {
	data, err := json.Marshal(ref)
	if err != nil {
		return errors.Wrap(err, "encoding reference")
	}
	if _, err := p.InsertReferenceJSON(data); err != nil {
		return errors.Wrap(err, "inserting reference")
	}
	return nil
}

func citeInputs(defs []CiteDef) []engine.CiteInput {
	out := make([]engine.CiteInput, 0, len(defs))
	for _, d := range defs {
		in := engine.CiteInput{RefID: d.Ref, Prefix: d.Prefix, Suffix: d.Suffix}
		for _, l := range d.Locators {
			in.Locators = append(in.Locators, engine.LocatorInput{
				Label: l.Label, Value: l.Value,
			})
		}
		out = append(out, in)
	}
	return out
}

func equalSlices(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
