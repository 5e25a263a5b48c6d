package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"csv2api/internal/cli"
	"csv2api/internal/config"
	"csv2api/internal/logging"
)

func main() {
	// Load .env file if it exists (Overload overwrites existing env vars)
	if err := godotenv.Overload(); err != nil {
		slog.Debug("no .env file found, using environment variables")
	}

	// Load and validate configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Setup structured logging based on config. Logs go to stderr so
	// dry-run output on stdout stays clean.
	logging.Setup(os.Stderr, cfg.Logging.Level, cfg.Logging.Format)

	// An interrupt cancels the run context: scheduled but undispatched
	// requests are dropped and the stats summary still prints.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	root := cli.NewRootCommand(os.Stdin, os.Stdout, os.Stderr, cfg)
	if err := root.ExecuteContext(ctx); err != nil {
		slog.Error("import failed", "error", err)
		os.Exit(1)
	}
}
