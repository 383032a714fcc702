package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quillabs/citare/internal/locale"
)

// LocaleOptions holds flags for the locale command.
type LocaleOptions struct {
	*RootOptions
	Dir  string
	Form string
}

// LocaleResult is the success payload of the locale command.
type LocaleResult struct {
	Lang               string            `json:"lang"`
	PunctuationInQuote bool              `json:"punctuation_in_quote"`
	Terms              map[string]string `json:"terms"`
}

// defaultTerms are dumped when no terms are named on the command line.
var defaultTerms = []string{
	"and", "et-al", "ibid", "anonymous", "no date",
	"page", "chapter", "edition", "volume", "in",
}

// NewLocaleCommand creates the locale command.
func NewLocaleCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &LocaleOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "locale <tag> [terms...]",
		Short: "Dump a merged locale",
		Long: `Dump a merged locale.

Resolves the full layer chain for a language tag (fetched files layered
over the built-in en-US data) and prints the requested terms. With no
terms, a default set of common terms prints.

Example:
  citare locale de-DE --locale-dir ./locales and et-al ibid`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLocale(opts, args[0], args[1:], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Dir, "locale-dir", "", "directory of locales-<tag>.xml files")
	cmd.Flags().StringVar(&opts.Form, "form", "long", "term form (long|short|symbol|verb|verb-short)")

	return cmd
}

func runLocale(opts *LocaleOptions, tag string, terms []string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	form, ok := parseTermForm(opts.Form)
	if !ok {
		return NewExitError(ExitInputError, fmt.Sprintf("unknown term form %q", opts.Form))
	}

	var ropts []locale.ResolverOption
	if opts.Dir != "" {
		ropts = append(ropts, locale.WithFetcher(dirFetcher(opts.Dir)))
	}
	merged := locale.NewResolver(ropts...).Resolve(locale.ParseLang(tag))

	if len(terms) == 0 {
		terms = defaultTerms
	}
	result := LocaleResult{
		Lang:               merged.Lang.String(),
		PunctuationInQuote: merged.Options().PunctuationInQuote,
		Terms:              make(map[string]string, len(terms)),
	}
	for _, name := range terms {
		if v, ok := merged.SimpleTerm(name, form, false); ok {
			result.Terms[name] = v
		}
	}

	if formatter.Format == "json" {
		return formatter.Success(result)
	}
	fmt.Fprintf(formatter.Writer, "locale: %s\n", result.Lang)
	fmt.Fprintf(formatter.Writer, "punctuation-in-quote: %v\n", result.PunctuationInQuote)
	for _, name := range terms {
		if v, ok := result.Terms[name]; ok {
			fmt.Fprintf(formatter.Writer, "%s = %q\n", name, v)
		} else {
			fmt.Fprintf(formatter.Writer, "%s (undefined)\n", name)
		}
	}
	return nil
}

func parseTermForm(s string) (locale.TermForm, bool) {
	switch locale.TermForm(s) {
	case locale.FormLong, locale.FormShort, locale.FormSymbol,
		locale.FormVerb, locale.FormVerbShort:
		return locale.TermForm(s), true
	}
	return "", false
}
