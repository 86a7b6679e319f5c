// Command portalctl runs maintenance tasks against the document portal database.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/joho/godotenv/autoload"

	"docportal/internal/config"
	"docportal/internal/logger"
)

func main() {
	cfg := config.Load()
	log := logger.New(os.Stderr, cfg.LogLevel, cfg.Location())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCommand(ctx, cfg, log).Execute(); err != nil {
		stop()
		os.Exit(1)
	}
}
