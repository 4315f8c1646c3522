package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"tndshop/internal/model"
	"tndshop/internal/store"
)

// Seeds the flat-file data directory with the demo catalogue so the shop
// has something to sell on a fresh checkout. Run from the repo root:
//
//	go run ./scripts
func main() {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	dataDir := os.Getenv("DATA_DIR")
	if dataDir == "" {
		dataDir = "data"
	}

	products, err := store.NewFile[model.Product](dataDir, store.ProductsCollection, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open product store: %v\n", err)
		os.Exit(1)
	}

	newID := func() string { return "prod_" + uuid.NewString() }
	if err := store.SeedProducts(context.Background(), products, newID, time.Now, logger); err != nil {
		fmt.Fprintf(os.Stderr, "failed to seed products: %v\n", err)
		os.Exit(1)
	}

	logger.Info().Str("data_dir", dataDir).Msg("demo catalogue ready")
}
