package commands

import (
	"fmt"

	"github.com/leapstack-labs/cmpfill/internal/cli/output"
	"github.com/leapstack-labs/cmpfill/pkg/core"
	"github.com/spf13/cobra"
)

// NewExtractCommand creates the extract command.
func NewExtractCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extract <report.htm>",
		Short: "List the entries a report would apply",
		Long: `Extract and evaluate every comparison entry of an HTM report without
touching any tabular file. Entries are listed in document order.`,
		Example: `  # Show entries as a table
  cmpfill extract report.htm

  # As JSON for scripting
  cmpfill extract report.htm -o json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExtract(cmd, args[0])
		},
	}

	return cmd
}

func runExtract(cmd *cobra.Command, markupPath string) error {
	cc := NewCommandContext(cmd)

	p, cleanup, err := cc.NewPipeline("")
	if err != nil {
		return err
	}
	defer cleanup()

	entries, err := p.ExtractFile(markupPath)
	if err != nil {
		return err
	}

	r := cc.Renderer
	switch r.EffectiveMode() {
	case output.ModeJSON:
		if entries == nil {
			entries = []core.Entry{}
		}
		return r.JSON(entries)
	case output.ModeMarkdown:
		r.Println(output.FormatHeader(1, "Entries"))
		r.Println("")
	default:
		r.Header(1, fmt.Sprintf("%d entries", len(entries)))
	}

	rows := make([][]string, len(entries))
	for i, e := range entries {
		rows[i] = []string{fmt.Sprintf("%d", e.Row), fmt.Sprintf("%d", e.Column), e.Value.String()}
	}
	r.Table([]string{"Row", "Column", "Value"}, rows)
	return nil
}
