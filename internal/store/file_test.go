package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tndshop/internal/model"
)

func testProducts() []model.Product {
	created := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	return []model.Product{
		{
			ID:          "prod_1",
			Name:        "Classic T-Shirt",
			Category:    "Apparel",
			Price:       decimal.RequireFromString("39.9"),
			Stock:       15,
			Description: "100% cotton, unisex fit.",
			Active:      true,
			CreatedAt:   created,
		},
		{
			ID:        "prod_2",
			Name:      "Ceramic Mug",
			Category:  "Home",
			Price:     decimal.RequireFromString("19.5"),
			Stock:     24,
			Active:    false,
			CreatedAt: created,
		},
	}
}

func TestFile_MissingFileReadsEmpty(t *testing.T) {
	ctx := context.Background()

	f, err := NewFile[model.Product](t.TempDir(), ProductsCollection, zerolog.Nop())
	require.NoError(t, err)

	items, err := f.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestFile_RoundTrip(t *testing.T) {
	ctx := context.Background()

	f, err := NewFile[model.Product](t.TempDir(), ProductsCollection, zerolog.Nop())
	require.NoError(t, err)

	want := testProducts()
	require.NoError(t, f.ReplaceAll(ctx, want))

	got, err := f.List(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)

	// Order and field values survive the round trip.
	assert.Equal(t, "prod_1", got[0].ID)
	assert.Equal(t, "prod_2", got[1].ID)
	assert.True(t, got[0].Price.Equal(want[0].Price))
	assert.Equal(t, want[0].Stock, got[0].Stock)
	assert.True(t, got[0].Active)
	assert.False(t, got[1].Active)
	assert.True(t, got[0].CreatedAt.Equal(want[0].CreatedAt))
}

func TestFile_ReplaceAllOverwrites(t *testing.T) {
	ctx := context.Background()

	f, err := NewFile[model.Product](t.TempDir(), ProductsCollection, zerolog.Nop())
	require.NoError(t, err)

	require.NoError(t, f.ReplaceAll(ctx, testProducts()))
	require.NoError(t, f.ReplaceAll(ctx, testProducts()[:1]))

	got, err := f.List(ctx)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestFile_NilWritesEmptyCollection(t *testing.T) {
	ctx := context.Background()

	f, err := NewFile[model.Order](t.TempDir(), OrdersCollection, zerolog.Nop())
	require.NoError(t, err)

	require.NoError(t, f.ReplaceAll(ctx, nil))

	got, err := f.List(ctx)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestFile_CorruptFileIsAnError(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	f, err := NewFile[model.Product](dir, ProductsCollection, zerolog.Nop())
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "products.json"), []byte("{not json"), 0o644))

	_, err = f.List(ctx)
	assert.Error(t, err)
}

func TestFile_NoTempFileLeftBehind(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	f, err := NewFile[model.Product](dir, ProductsCollection, zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, f.ReplaceAll(ctx, testProducts()))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "products.json", entries[0].Name())
}
