package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quillabs/citare/internal/engine"
	"github.com/quillabs/citare/internal/format"
	"github.com/quillabs/citare/internal/harness"
)

// CiteOptions holds flags for the cite command.
type CiteOptions struct {
	*RootOptions
	Refs         string
	Document     string
	Output       string
	LocaleDir    string
	Bibliography bool
	LinkAnchors  bool
}

// CiteResult is the success payload of the cite command.
type CiteResult struct {
	Clusters     []ClusterOutput `json:"clusters"`
	Bibliography []string        `json:"bibliography,omitempty"`
}

// ClusterOutput is one rendered cluster.
type ClusterOutput struct {
	ID     string `json:"id"`
	Output string `json:"output"`
}

// NewCiteCommand creates the cite command.
func NewCiteCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CiteOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "cite <style.csl>",
		Short: "Render citation clusters with a CSL style",
		Long: `Render citation clusters with a CSL style.

References come from a CSL-JSON file (--refs), clusters and their
document order from a YAML or JSON document file (--clusters). Each
cluster renders on its own line; --bibliography appends the formatted
bibliography after a blank line.

Example:
  citare cite apa.csl --refs library.json --clusters paper.yaml --bibliography`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCite(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Refs, "refs", "", "CSL-JSON references file (required)")
	cmd.Flags().StringVar(&opts.Document, "clusters", "", "cluster document file (required)")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "plain", "render format (plain|html|rtf|pandoc)")
	cmd.Flags().StringVar(&opts.LocaleDir, "locale-dir", "", "directory of locales-<tag>.xml files")
	cmd.Flags().BoolVar(&opts.Bibliography, "bibliography", false, "append the formatted bibliography")
	cmd.Flags().BoolVar(&opts.LinkAnchors, "link-anchors", true, "hyperlink DOI/PMID/PMCID/URL values")
	_ = cmd.MarkFlagRequired("refs")
	_ = cmd.MarkFlagRequired("clusters")

	return cmd
}

func runCite(opts *CiteOptions, stylePath string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	src, err := readStyle(stylePath)
	if err != nil {
		return err
	}
	out, err := format.ByName(opts.Output)
	if err != nil {
		return WrapExitError(ExitInputError, "resolving render format", err)
	}
	refs, err := loadReferences(opts.Refs)
	if err != nil {
		return err
	}
	doc, err := loadDocument(opts.Document)
	if err != nil {
		return err
	}

	engOpts := []engine.Option{
		engine.WithFormat(out),
		engine.WithFormatOptions(format.FormatOptions{LinkAnchors: opts.LinkAnchors}),
	}
	if opts.LocaleDir != "" {
		engOpts = append(engOpts, engine.WithLocaleFetcher(dirFetcher(opts.LocaleDir)))
	}
	proc := engine.New(engOpts...)

	if err := proc.SetStyle(src); err != nil {
		return styleError(formatter, src, stylePath, err)
	}
	formatter.VerboseLog("compiled style %s", stylePath)

	for _, raw := range refs {
		fieldErrs, err := proc.InsertReferenceJSON(raw)
		if err != nil {
			return WrapExitError(ExitInputError, "parsing reference", err)
		}
		for _, fe := range fieldErrs {
			formatter.VerboseLog("reference field skipped: %v", fe)
		}
	}
	formatter.VerboseLog("loaded %d reference(s)", len(refs))

	for _, c := range doc.Clusters {
		mode, err := c.Mode.ClusterMode()
		if err != nil {
			return WrapExitError(ExitInputError, fmt.Sprintf("cluster %q", c.ID), err)
		}
		proc.InsertCluster(c.ID, citeInputs(c.Cites), mode)
	}
	if err := proc.SetClusterOrder(orderEntries(doc.Order)); err != nil {
		return WrapExitError(ExitInputError, "setting cluster order", err)
	}

	result := CiteResult{Clusters: make([]ClusterOutput, 0, len(doc.Clusters))}
	for _, c := range doc.Clusters {
		text, err := proc.BuiltCluster(c.ID)
		if err != nil {
			return engineError(formatter, fmt.Sprintf("rendering cluster %q", c.ID), err)
		}
		result.Clusters = append(result.Clusters, ClusterOutput{ID: c.ID, Output: text})
	}
	if opts.Bibliography {
		entries, err := proc.BuiltBibliography()
		if err != nil {
			return engineError(formatter, "rendering bibliography", err)
		}
		result.Bibliography = entries
	}

	return outputCiteResult(formatter, result)
}

// citeInputs converts document cite definitions to engine inputs.
func citeInputs(defs []harness.CiteDef) []engine.CiteInput {
	cites := make([]engine.CiteInput, len(defs))
	for i, d := range defs {
		c := engine.CiteInput{RefID: d.Ref, Prefix: d.Prefix, Suffix: d.Suffix}
		for _, l := range d.Locators {
			c.Locators = append(c.Locators, engine.LocatorInput{Label: l.Label, Value: l.Value})
		}
		cites[i] = c
	}
	return cites
}

func orderEntries(defs []harness.OrderDef) []engine.OrderEntry {
	order := make([]engine.OrderEntry, len(defs))
	for i, d := range defs {
		order[i] = engine.OrderEntry{ID: d.ID, Note: d.Note}
	}
	return order
}

// engineError maps a processor error to an exit code: style problems
// exit 1, unknown inputs exit 2, anything else exit 3.
func engineError(formatter *OutputFormatter, context string, err error) error {
	code := engine.CodeOf(err)
	_ = formatter.Error(string(code), err.Error(), nil)
	switch code {
	case engine.ErrCodeStyleNotSet, engine.ErrCodeStyleInvalid, engine.ErrCodeNoBibliography:
		return WrapExitError(ExitStyleError, context, err)
	case engine.ErrCodeUnknownCluster, engine.ErrCodeBadClusterOrder:
		return WrapExitError(ExitInputError, context, err)
	}
	return WrapExitError(ExitRuntimeError, context, err)
}

func outputCiteResult(formatter *OutputFormatter, result CiteResult) error {
	if formatter.Format == "json" {
		return formatter.Success(result)
	}

	for _, c := range result.Clusters {
		fmt.Fprintf(formatter.Writer, "%s\t%s\n", c.ID, c.Output)
	}
	if result.Bibliography != nil {
		fmt.Fprintln(formatter.Writer)
		for _, entry := range result.Bibliography {
			fmt.Fprintln(formatter.Writer, entry)
		}
	}
	return nil
}
