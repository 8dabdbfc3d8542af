package main

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/njchilds90/anchorfix/internal/config"
	"github.com/spf13/cobra"
)

//go:embed templates/anchorfix.yaml
var configTemplate embed.FS

// NewInitCmd creates the init command.
func NewInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a new anchorfix configuration file",
		Long: `Init writes a commented .anchorfix.yaml to the current directory.

Examples:
  # Create .anchorfix.yaml in current directory
  anchorfix init

  # Create the per-user config file
  anchorfix init --user

  # Force overwrite existing file
  anchorfix init -f`,
		RunE: runInitCmd,
	}

	cmd.Flags().StringP("output", "o", config.DefaultConfigFile,
		"Output file path for the configuration")
	cmd.Flags().Bool("user", false,
		"Write to the XDG config directory instead of --output")
	cmd.Flags().BoolP("force", "f", false,
		"Overwrite existing configuration file")

	return cmd
}

// runInitCmd executes the init command.
func runInitCmd(cmd *cobra.Command, _ []string) error {
	outputPath, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}
	user, err := cmd.Flags().GetBool("user")
	if err != nil {
		return err
	}
	force, err := cmd.Flags().GetBool("force")
	if err != nil {
		return err
	}
	if user {
		outputPath = filepath.Join(config.XDGConfigDir(), config.XDGConfigFile)
	}

	if !force {
		if _, err := os.Stat(outputPath); err == nil {
			return fmt.Errorf("configuration file already exists: %s (use -f to overwrite)", outputPath)
		}
	}

	content, err := configTemplate.ReadFile("templates/anchorfix.yaml")
	if err != nil {
		return fmt.Errorf("failed to read config template: %w", err)
	}
	if err := writeFile(outputPath, content, 0600); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created configuration file: %s\n", outputPath)
	return nil
}
