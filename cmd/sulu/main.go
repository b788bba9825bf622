package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"sulu/internal/adapters/tui"
	"sulu/internal/config"
	"sulu/internal/content"
	"sulu/internal/logging"
)

func main() {
	cfg := config.Load()
	flag.StringVar(&cfg.DSN, "db", cfg.DSN, "database file (sqlite3) or connection string (pgx)")
	flag.StringVar(&cfg.Driver, "driver", cfg.Driver, "database driver: sqlite3 or pgx")
	locale := flag.String("locale", cfg.DefaultLocale, "content locale")
	flag.Parse()

	// The terminal belongs to the UI; logs only go to a file
	logger := logging.Nop()
	if cfg.LogFile != "" {
		l, err := logging.New().FromPath(cfg.LogFile).Level(cfg.LogLevel).Make()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer l.Close()
		logger = l.Logger
	}

	mgr, closeStore, err := content.Open(context.Background(), cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeStore()

	app := tui.NewApp(mgr, *locale)
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		logger.Error().Err(err).Msg("tui stopped")
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		closeStore()
		os.Exit(1)
	}
}
