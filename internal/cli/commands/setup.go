package commands

import (
	"fmt"
	"log/slog"

	"github.com/leapstack-labs/cmpfill/internal/cli/config"
	"github.com/leapstack-labs/cmpfill/internal/cli/output"
	"github.com/leapstack-labs/cmpfill/internal/pipeline"
	"github.com/leapstack-labs/cmpfill/internal/state"
	"github.com/spf13/cobra"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Renderer *output.Renderer
}

// NewCommandContext creates a CommandContext from the loaded configuration.
func NewCommandContext(cmd *cobra.Command) *CommandContext {
	cfg := getConfig()
	logger := config.GetLogger(cmd.Context())
	mode := output.Mode(cfg.OutputFormat)
	r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode)

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Renderer: r,
	}
}

// NewPipeline creates a pipeline from the configuration. When history is
// enabled the run store is opened and attached as the recorder.
// Returns the pipeline and a cleanup function that must be called (typically via defer).
func (c *CommandContext) NewPipeline(xlsxPath string) (*pipeline.Pipeline, func(), error) {
	pc := c.Cfg.PipelineConfig()
	pc.Logger = c.Logger
	if xlsxPath != "" {
		pc.XLSXPath = xlsxPath
	}

	cleanup := func() {}
	if c.Cfg.History.Enabled {
		store, err := openHistory(c.Cfg, c.Logger)
		if err != nil {
			return nil, nil, err
		}
		pc.Recorder = store
		cleanup = func() { _ = store.Close() }
	}

	p, err := pipeline.New(pc)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	return p, cleanup, nil
}

// openHistory opens and migrates the run history database.
func openHistory(cfg *config.Config, logger *slog.Logger) (*state.SQLiteStore, error) {
	store := state.NewSQLiteStore(logger)
	if err := store.Open(cfg.History.Path); err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}
	if err := store.Migrate(); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to initialize history schema: %w", err)
	}
	return store, nil
}

// getConfig returns the current configuration, or defaults when the
// command runs outside the root command (as in tests).
func getConfig() *config.Config {
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg
	}
	return config.DefaultConfig()
}
