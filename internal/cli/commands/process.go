package commands

import (
	"fmt"

	"github.com/leapstack-labs/cmpfill/internal/cli/output"
	"github.com/leapstack-labs/cmpfill/pkg/core"
	"github.com/spf13/cobra"
)

// maxShownErrors caps the error list in text and markdown output.
const maxShownErrors = 10

// ProcessOptions holds options for the process command.
type ProcessOptions struct {
	Out       string
	XLSX      string
	AllErrors bool
}

// NewProcessCommand creates the process command.
func NewProcessCommand() *cobra.Command {
	opts := &ProcessOptions{}

	cmd := &cobra.Command{
		Use:   "process <report.htm> <data.01>",
		Short: "Merge report comparison values into a tabular file",
		Long: `Extract every "графа N / с.M" comparison from an HTM report, evaluate
its right-hand side and write the value into row M, column N of a .01
tabular file.

The input file is never modified. The result is written next to it as
<name>_result<ext> unless --out is given. Entries addressing rows the file
does not have are skipped and listed.

Output adapts to environment:
  - Terminal: Styled summary
  - Piped/Scripted: Markdown format (agent-friendly)`,
		Example: `  # Write form_result.01 next to form.01
  cmpfill process report.htm form.01

  # Choose the output path and also export a workbook
  cmpfill process report.htm form.01 --out merged.01 --xlsx merged.xlsx

  # Machine-readable summary
  cmpfill process report.htm form.01 -o json`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProcess(cmd, args[0], args[1], opts)
		},
	}

	cmd.Flags().StringVar(&opts.Out, "out", "", "Output path (default: <name>_result<ext>)")
	cmd.Flags().StringVar(&opts.XLSX, "xlsx", "", "Also export the merged table to this .xlsx file")
	cmd.Flags().BoolVar(&opts.AllErrors, "all-errors", false, fmt.Sprintf("List every skipped entry instead of the first %d", maxShownErrors))

	return cmd
}

func runProcess(cmd *cobra.Command, markupPath, tabularPath string, opts *ProcessOptions) error {
	cc := NewCommandContext(cmd)

	p, cleanup, err := cc.NewPipeline(opts.XLSX)
	if err != nil {
		return err
	}
	defer cleanup()

	result, err := p.Process(cmd.Context(), markupPath, tabularPath, opts.Out)
	if err != nil {
		return err
	}

	return renderProcessResult(cc.Renderer, result, opts.AllErrors)
}

func renderProcessResult(r *output.Renderer, result *core.ProcessResult, allErrors bool) error {
	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(result)
	case output.ModeMarkdown:
		processMarkdown(r, result, allErrors)
	default:
		processText(r, result, allErrors)
	}
	return nil
}

// processText outputs the run summary in styled text format.
func processText(r *output.Renderer, result *core.ProcessResult, allErrors bool) {
	r.Success(fmt.Sprintf("Applied %d of %d entries", result.AppliedCount, result.ParsedCount))
	if result.SkippedCount > 0 {
		r.Warning(fmt.Sprintf("Skipped %d entries", result.SkippedCount))
	}
	r.Muted(fmt.Sprintf("Output written to %s", result.OutputPath))

	if !result.HasErrors() {
		return
	}

	r.Println("")
	r.Header(2, "Errors")
	shown, hidden := limitErrors(result.Errors, allErrors)
	for _, msg := range shown {
		r.StatusLine(msg, "error", "")
	}
	if hidden > 0 {
		r.Muted(fmt.Sprintf("... and %d more (use --all-errors to show all)", hidden))
	}
}

// processMarkdown outputs the run summary in markdown format.
func processMarkdown(r *output.Renderer, result *core.ProcessResult, allErrors bool) {
	r.Println(output.FormatHeader(1, "Process Result"))
	r.Println("")
	r.Println(output.FormatKeyValue("Parsed", fmt.Sprintf("%d", result.ParsedCount)))
	r.Println(output.FormatKeyValue("Applied", fmt.Sprintf("%d", result.AppliedCount)))
	r.Println(output.FormatKeyValue("Skipped", fmt.Sprintf("%d", result.SkippedCount)))
	r.Println(output.FormatKeyValue("Output", result.OutputPath))

	if !result.HasErrors() {
		return
	}

	r.Println("")
	r.Println(output.FormatHeader(2, "Errors"))
	shown, hidden := limitErrors(result.Errors, allErrors)
	for _, msg := range shown {
		r.Printf("- %s\n", msg)
	}
	if hidden > 0 {
		r.Printf("- ... and %d more\n", hidden)
	}
}

func limitErrors(errs []string, all bool) ([]string, int) {
	if all || len(errs) <= maxShownErrors {
		return errs, 0
	}
	return errs[:maxShownErrors], len(errs) - maxShownErrors
}
