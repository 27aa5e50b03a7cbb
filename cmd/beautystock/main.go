package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/lfcamargo/beautystock/internal/checkout"
	"github.com/lfcamargo/beautystock/internal/store"
)

const defaultCatalogPath = "catalog.json"

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	if err := godotenv.Load(); err != nil {
		logger.Info("no .env file found, using environment as-is")
	}

	path := os.Getenv("BEAUTYSTOCK_CATALOG")
	if path == "" {
		path = defaultCatalogPath
	}

	catalogStore, err := store.New(path)
	if err != nil {
		logger.Error("init catalog store", "path", path, "error", err)
		os.Exit(1)
	}

	checkoutCoordinator, err := checkout.New(catalogStore)
	if err != nil {
		logger.Error("init checkout", "error", err)
		os.Exit(1)
	}

	a := newApp(catalogStore, checkoutCoordinator, os.Stdin, os.Stdout, logger)
	if err := a.run(context.Background()); err != nil {
		logger.Error("session ended with error", "error", err)
		os.Exit(1)
	}
}
