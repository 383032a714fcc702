package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quillabs/citare/internal/style"
)

// CheckResult holds style validation results.
type CheckResult struct {
	Valid       bool         `json:"valid"`
	Diagnostics []Diagnostic `json:"diagnostics,omitempty"`
}

// Diagnostic is one validation finding in JSON output.
type Diagnostic struct {
	Severity string `json:"severity"`
	Code     string `json:"code"`
	Message  string `json:"message"`
	Hint     string `json:"hint,omitempty"`
	Start    int64  `json:"start"`
	End      int64  `json:"end"`
}

// NewCheckCommand creates the check command.
func NewCheckCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check <style.csl>",
		Short: "Validate a CSL style without rendering",
		Long: `Validate a CSL style without rendering.

Collects every validation problem in one pass and prints each with the
offending source line underlined. Warnings do not fail the check.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runCheck(opts *RootOptions, stylePath string, cmd *cobra.Command) error {
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

	s, err := style.Parse(src, style.ParseOptions{})
	if err != nil {
		return styleError(formatter, src, stylePath, err)
	}

	if formatter.Format == "json" {
		return formatter.Success(CheckResult{
			Valid:       true,
			Diagnostics: diagnostics(s.Warnings),
		})
	}
	if len(s.Warnings) > 0 {
		fmt.Fprintln(formatter.Writer, style.FormatDiagnostics(src, stylePath, s.Warnings))
	}
	fmt.Fprintf(formatter.Writer, "✓ %s: style valid\n", stylePath)
	return nil
}

// styleError reports a style compilation failure and returns the exit
// error. Validation problems print with caret diagnostics; malformed
// XML and dependent styles print their message.
func styleError(formatter *OutputFormatter, src []byte, stylePath string, err error) error {
	var invalid *style.InvalidError
	if errors.As(err, &invalid) {
		if formatter.Format == "json" {
			enc := json.NewEncoder(formatter.Writer)
			enc.SetIndent("", "  ")
			_ = enc.Encode(CLIResponse{
				Status: "error",
				Data: CheckResult{
					Valid:       false,
					Diagnostics: diagnostics(invalid.Errors),
				},
				Error: &CLIError{Code: "STYLE_INVALID", Message: err.Error()},
			})
		} else {
			fmt.Fprintln(formatter.Writer, style.FormatDiagnostics(src, stylePath, invalid.Errors))
		}
		return WrapExitError(ExitStyleError, fmt.Sprintf("style %s invalid", stylePath), err)
	}
	_ = formatter.Error("STYLE_PARSE", err.Error(), nil)
	return WrapExitError(ExitStyleError, fmt.Sprintf("style %s failed to parse", stylePath), err)
}

func diagnostics(errs []style.InvalidCsl) []Diagnostic {
	if len(errs) == 0 {
		return nil
	}
	out := make([]Diagnostic, len(errs))
	for i, d := range errs {
		out[i] = Diagnostic{
			Severity: d.Severity.String(),
			Code:     d.Code,
			Message:  d.Message,
			Hint:     d.Hint,
			Start:    d.Range.Start,
			End:      d.Range.End,
		}
	}
	return out
}
