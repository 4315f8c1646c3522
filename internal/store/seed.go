package store

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"tndshop/internal/model"
)

// SeedProducts writes the demo catalogue if the product collection is
// empty. An already-populated catalogue is left untouched.
func SeedProducts(ctx context.Context, products ProductStore, newID func() string, now func() time.Time, logger zerolog.Logger) error {
	existing, err := products.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to read catalogue for seeding: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}

	createdAt := now()
	demo := []model.Product{
		{
			ID:          newID(),
			Name:        "Classic T-Shirt",
			Category:    "Apparel",
			Price:       decimal.RequireFromString("39.9"),
			Stock:       15,
			Description: "100% cotton, unisex fit.",
			ImageURL:    "https://via.placeholder.com/300x200?text=T-Shirt",
			Active:      true,
			CreatedAt:   createdAt,
		},
		{
			ID:          newID(),
			Name:        "Wireless Earbuds",
			Category:    "Electronics",
			Price:       decimal.RequireFromString("129.0"),
			Stock:       8,
			Description: "Bluetooth 5.1, 24h battery.",
			ImageURL:    "https://via.placeholder.com/300x200?text=Earbuds",
			Active:      true,
			CreatedAt:   createdAt,
		},
		{
			ID:          newID(),
			Name:        "Ceramic Mug",
			Category:    "Home",
			Price:       decimal.RequireFromString("19.5"),
			Stock:       24,
			Description: "Dishwasher safe 350ml mug.",
			ImageURL:    "https://via.placeholder.com/300x200?text=Mug",
			Active:      true,
			CreatedAt:   createdAt,
		},
		{
			ID:          newID(),
			Name:        "Notebook A5",
			Category:    "Stationery",
			Price:       decimal.RequireFromString("8.9"),
			Stock:       50,
			Description: "Soft cover, 120 pages.",
			ImageURL:    "https://via.placeholder.com/300x200?text=Notebook",
			Active:      true,
			CreatedAt:   createdAt,
		},
	}

	if err := products.ReplaceAll(ctx, demo); err != nil {
		return fmt.Errorf("failed to seed catalogue: %w", err)
	}

	logger.Info().Int("count", len(demo)).Msg("seeded demo catalogue")
	return nil
}
