package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"sulu/internal/config"
	"sulu/internal/content"
	"sulu/internal/domain"
	"sulu/internal/logging"
)

var (
	cfg       = config.Load()
	workspace string
	locale    string

	manager *content.Manager
	closers []func() error
)

var rootCmd = &cobra.Command{
	Use:   "sulu-cli",
	Short: "Manage draft/live content trees and their routes",
	Long: `sulu-cli edits a content tree that exists twice: a draft workspace
for editing and a live workspace for publishing. Structure changes are
mirrored to live immediately, content reaches live when published, and
every localized node gets a unique URL route.

Configuration comes from SULU_* environment variables (and a .env file),
overridden by the flags below.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip initialization for help commands
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}

		logger, err := logging.New().FromPath(cfg.LogFile).Level(cfg.LogLevel).Make()
		if err != nil {
			return fmt.Errorf("failed to set up logging: %w", err)
		}
		closers = append(closers, logger.Close)

		m, closeStore, err := content.Open(cmd.Context(), cfg, logger.Logger)
		if err != nil {
			return err
		}
		closers = append(closers, closeStore)
		manager = m
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return closeAll()
	},
}

// Execute runs the root command
func Execute() {
	err := rootCmd.ExecuteContext(context.Background())
	closeAll()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func closeAll() error {
	var first error
	for i := len(closers) - 1; i >= 0; i-- {
		if err := closers[i](); err != nil && first == nil {
			first = err
		}
	}
	closers = nil
	return first
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfg.DSN, "db", cfg.DSN, "database file (sqlite3) or connection string (pgx)")
	flags.StringVar(&cfg.Driver, "driver", cfg.Driver, "database driver: sqlite3 or pgx")
	flags.StringVarP(&locale, "locale", "l", cfg.DefaultLocale, "content locale")
	flags.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level (debug, info, warn, error)")
	flags.StringVarP(&workspace, "workspace", "w", string(domain.WorkspaceDraft), "workspace for read commands: draft or live")
}

// GetManager returns the initialized content manager
func GetManager() *content.Manager {
	return manager
}

func currentWorkspace() (domain.Workspace, error) {
	return domain.ParseWorkspace(workspace)
}
