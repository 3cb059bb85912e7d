package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/leapstack-labs/cmpfill/internal/cli/config"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

const configHeader = `# cmpfill configuration
# Values can be overridden with CMPFILL_* environment variables
# (nested keys use a double underscore: CMPFILL_HISTORY__ENABLED=true)
# and with command-line flags.

`

// NewInitCommand creates the init command.
func NewInitCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Write a default cmpfill.yaml",
		Long: `Write a cmpfill.yaml holding every setting at its default value, ready
to be edited. The file is picked up from the directory it lives in and all
directories below it.`,
		Example: `  # Create cmpfill.yaml in the current directory
  cmpfill init

  # Overwrite an existing file
  cmpfill init --force`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}
			return runInit(cmd, dir, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing configuration")

	return cmd
}

func runInit(cmd *cobra.Command, dir string, force bool) error {
	r := NewCommandContext(cmd).Renderer

	// Create directory if specified and doesn't exist
	if dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	// Check if config already exists
	configPath := filepath.Join(dir, config.DefaultConfigFile)
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("%s already exists. Use --force to overwrite", configPath)
	}

	data, err := yaml.Marshal(config.DefaultConfig())
	if err != nil {
		return fmt.Errorf("failed to encode configuration: %w", err)
	}

	if err := os.WriteFile(configPath, append([]byte(configHeader), data...), 0644); err != nil { //nolint:gosec // config file is meant to be readable
		return fmt.Errorf("failed to write %s: %w", configPath, err)
	}

	r.StatusLine(configPath, "success", "")
	r.Success("cmpfill configuration initialized")
	return nil
}
