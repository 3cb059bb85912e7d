package commands

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/leapstack-labs/cmpfill/internal/cli/output"
	"github.com/leapstack-labs/cmpfill/pkg/core"
	"github.com/spf13/cobra"
)

// HistoryOptions holds options for the history command.
type HistoryOptions struct {
	Limit int
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand() *cobra.Command {
	opts := &HistoryOptions{}

	cmd := &cobra.Command{
		Use:   "history [run-id]",
		Short: "List recorded runs",
		Long: `List the most recent process runs recorded in the history database,
or show one run with its skipped entries.

Runs are recorded when history is enabled (--history or history.enabled
in cmpfill.yaml).`,
		Example: `  # Last 20 runs
  cmpfill history

  # Details of one run
  cmpfill history 3f1c2a9e-...`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				return runHistoryShow(cmd, args[0])
			}
			return runHistoryList(cmd, opts)
		},
	}

	cmd.Flags().IntVarP(&opts.Limit, "limit", "n", 20, "Maximum number of runs to list (0 for all)")

	return cmd
}

// errNoHistory is returned when the history database does not exist yet.
var errNoHistory = errors.New("no runs recorded yet (enable with --history)")

func openExistingHistory(cc *CommandContext) (core.Store, error) {
	if _, err := os.Stat(cc.Cfg.History.Path); errors.Is(err, os.ErrNotExist) {
		return nil, errNoHistory
	}
	return openHistory(cc.Cfg, cc.Logger)
}

func runHistoryList(cmd *cobra.Command, opts *HistoryOptions) error {
	cc := NewCommandContext(cmd)
	r := cc.Renderer

	store, err := openExistingHistory(cc)
	if errors.Is(err, errNoHistory) {
		if r.EffectiveMode() == output.ModeJSON {
			return r.JSON([]*core.Run{})
		}
		r.Muted("No runs recorded yet (enable with --history)")
		return nil
	}
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	runs, err := store.ListRuns(cmd.Context(), opts.Limit)
	if err != nil {
		return err
	}

	if r.EffectiveMode() == output.ModeJSON {
		if runs == nil {
			runs = []*core.Run{}
		}
		return r.JSON(runs)
	}

	if r.EffectiveMode() == output.ModeMarkdown {
		r.Println(output.FormatHeader(1, "Run History"))
		r.Println("")
	}

	rows := make([][]string, len(runs))
	for i, run := range runs {
		rows[i] = []string{
			run.ID,
			run.StartedAt.Local().Format(time.DateTime),
			string(run.Status),
			fmt.Sprintf("%d/%d", run.Applied, run.Parsed),
			fmt.Sprintf("%d", run.Skipped),
			run.TabularPath,
		}
	}
	r.Table([]string{"ID", "Started", "Status", "Applied", "Skipped", "Tabular"}, rows)
	return nil
}

func runHistoryShow(cmd *cobra.Command, id string) error {
	cc := NewCommandContext(cmd)
	r := cc.Renderer

	store, err := openExistingHistory(cc)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	run, err := store.GetRun(cmd.Context(), id)
	if err != nil {
		return err
	}

	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(run)
	}

	r.Println(output.FormatHeader(1, "Run "+run.ID))
	r.Println("")
	r.Println(output.FormatKeyValue("Status", string(run.Status)))
	r.Println(output.FormatKeyValue("Started", run.StartedAt.Local().Format(time.DateTime)))
	r.Println(output.FormatKeyValue("Duration", run.Duration().Round(time.Millisecond).String()))
	r.Println(output.FormatKeyValue("Report", run.MarkupPath))
	r.Println(output.FormatKeyValue("Tabular", run.TabularPath))
	if run.OutputPath != "" {
		r.Println(output.FormatKeyValue("Output", run.OutputPath))
	}
	r.Println(output.FormatKeyValue("Parsed", fmt.Sprintf("%d", run.Parsed)))
	r.Println(output.FormatKeyValue("Applied", fmt.Sprintf("%d", run.Applied)))
	r.Println(output.FormatKeyValue("Skipped", fmt.Sprintf("%d", run.Skipped)))
	if run.Error != "" {
		r.Println(output.FormatKeyValue("Error", run.Error))
	}

	if len(run.Errors) > 0 {
		r.Println("")
		r.Println(output.FormatHeader(2, "Skipped Entries"))
		for _, msg := range run.Errors {
			r.Printf("- %s\n", msg)
		}
	}
	return nil
}
