package main

import (
	"context"
	"flag"
	"log"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	mcpadapter "sulu/internal/adapters/mcp"
	"sulu/internal/config"
	"sulu/internal/content"
	"sulu/internal/logging"
)

func main() {
	cfg := config.Load()
	flag.StringVar(&cfg.DSN, "db", cfg.DSN, "database file (sqlite3) or connection string (pgx)")
	flag.StringVar(&cfg.Driver, "driver", cfg.Driver, "database driver: sqlite3 or pgx")
	flag.Parse()

	// stdout carries the protocol, so logs only go to a file
	logger := logging.Nop()
	if cfg.LogFile != "" {
		l, err := logging.New().FromPath(cfg.LogFile).Level(cfg.LogLevel).Make()
		if err != nil {
			log.Fatalf("sulu-mcp: %v", err)
		}
		defer l.Close()
		logger = l.Logger
	}

	mgr, closeStore, err := content.Open(context.Background(), cfg, logger)
	if err != nil {
		log.Fatalf("sulu-mcp: %v", err)
	}
	defer closeStore()

	mcpServer := server.NewMCPServer(
		"sulu-mcp",
		"0.1.0",
		server.WithToolCapabilities(true),
	)

	mcpServer.AddTool(
		mcp.NewTool("ping",
			mcp.WithDescription("Health check, returns pong"),
		),
		func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return mcp.NewToolResultText("pong"), nil
		},
	)

	mcpadapter.RegisterReadTools(mcpServer, mgr)
	mcpadapter.RegisterWriteTools(mcpServer, mgr)

	if err := server.ServeStdio(mcpServer); err != nil {
		logger.Error().Err(err).Msg("stdio server stopped")
		log.Printf("sulu-mcp: %v", err)
	}
}
