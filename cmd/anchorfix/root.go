package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/njchilds90/anchorfix"
	"github.com/njchilds90/anchorfix/internal/config"
	"github.com/njchilds90/anchorfix/internal/log"
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for anchorfix.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "anchorfix",
		Short: "Make button-like anchors crawlable and accessible",
		Long: `anchorfix rewrites anchor elements in rendered HTML.

Anchors used as theme buttons (dark mode, back to top, random post, ...)
get href="#" role="button" tabindex="0", anchors with no destination get
href="#current", and target="_blank" links get rel="noopener noreferrer".`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().StringP("config", "c", "",
		"Configuration file (default: ./"+config.DefaultConfigFile+" or the XDG config dir)")

	cmd.AddCommand(NewRewriteCmd())
	cmd.AddCommand(NewSimulateCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadSettings reads the global flags, the configuration file and builds
// the policy shared by every subcommand.
func loadSettings(cmd *cobra.Command) (*config.File, *anchorfix.Policy, *slog.Logger, error) {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		return nil, nil, nil, err
	}
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, nil, nil, err
	}

	logger := log.NewLogger(cmd.ErrOrStderr(), verbose)

	cf, err := config.Load(configPath)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if cf != nil {
		logger.Debug("configuration loaded", "path", config.FindConfigFile(configPath))
	}
	return cf, cf.Policy(logger), logger, nil
}
