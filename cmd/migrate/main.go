package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/contactsite/backend/internal/config"
	"github.com/contactsite/backend/internal/logging"
	"github.com/contactsite/backend/internal/repository"
)

func usage() {
	fmt.Fprintln(os.Stderr, `Usage: migrate [command]

Commands:
  (default)   create the tables, indexes or buckets the store needs
  reset       drop every stored contact message, then recreate the schema`)
	os.Exit(1)
}

func main() {
	cfg, err := config.Load(".env", "../.env")
	if err != nil {
		logging.Fatal("load config failed", "error", err)
	}
	if _, err := logging.Setup(logging.Options{Level: cfg.LogLevel}); err != nil {
		logging.Fatal("logging setup failed", "error", err)
	}

	cmd := ""
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}
	if cmd != "" && cmd != "reset" {
		usage()
	}

	ctx := context.Background()
	store, err := repository.Open(ctx, cfg.StoreURI())
	if err != nil {
		logging.Fatal("connect failed", "backend", store.Backend, "error", err)
	}
	defer store.Close(ctx)

	switch cmd {
	case "":
		if err := store.Migrate(ctx); err != nil {
			logging.Fatal("migration failed", "backend", store.Backend, "error", err)
		}
		slog.Info("store ready", "backend", store.Backend)
	case "reset":
		if err := store.Reset(ctx); err != nil {
			logging.Fatal("reset failed", "backend", store.Backend, "error", err)
		}
		slog.Info("store reset", "backend", store.Backend)
	}
}
