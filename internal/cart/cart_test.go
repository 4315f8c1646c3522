package cart

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tndshop/internal/model"
)

func product(id string, stock int, active bool) model.Product {
	return model.Product{
		ID:     id,
		Name:   "Product " + id,
		Price:  decimal.RequireFromString("10"),
		Stock:  stock,
		Active: active,
	}
}

func TestAdd(t *testing.T) {
	p := product("p1", 5, true)

	tests := []struct {
		name     string
		entries  []Entry
		product  model.Product
		qty      int
		expected []Entry
	}{
		{
			name:     "New entry",
			entries:  nil,
			product:  p,
			qty:      2,
			expected: []Entry{{ProductID: "p1", Quantity: 2}},
		},
		{
			name:     "Merge into existing entry",
			entries:  []Entry{{ProductID: "p1", Quantity: 2}},
			product:  p,
			qty:      1,
			expected: []Entry{{ProductID: "p1", Quantity: 3}},
		},
		{
			name:     "Clamped to stock",
			entries:  []Entry{{ProductID: "p1", Quantity: 4}},
			product:  p,
			qty:      10,
			expected: []Entry{{ProductID: "p1", Quantity: 5}},
		},
		{
			name:     "Zero qty becomes one",
			entries:  nil,
			product:  p,
			qty:      0,
			expected: []Entry{{ProductID: "p1", Quantity: 1}},
		},
		{
			name:     "Inactive product is a no-op",
			entries:  nil,
			product:  product("p2", 5, false),
			qty:      1,
			expected: nil,
		},
		{
			name:     "Out-of-stock product is a no-op",
			entries:  nil,
			product:  product("p3", 0, true),
			qty:      1,
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Add(tt.entries, tt.product, tt.qty)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestSetQuantity(t *testing.T) {
	p := product("p1", 5, true)

	t.Run("Clamped to stock", func(t *testing.T) {
		entries := []Entry{{ProductID: "p1", Quantity: 2}}
		got := SetQuantity(entries, p, 99)
		require.Len(t, got, 1)
		assert.Equal(t, 5, got[0].Quantity)
	})

	t.Run("Zero removes the entry", func(t *testing.T) {
		entries := []Entry{{ProductID: "p1", Quantity: 2}}
		got := SetQuantity(entries, p, 0)
		assert.Empty(t, got)
	})

	t.Run("Negative removes the entry", func(t *testing.T) {
		entries := []Entry{{ProductID: "p1", Quantity: 2}}
		got := SetQuantity(entries, p, -3)
		assert.Empty(t, got)
	})

	t.Run("Absent product is untouched", func(t *testing.T) {
		entries := []Entry{{ProductID: "p2", Quantity: 2}}
		got := SetQuantity(entries, p, 1)
		assert.Equal(t, []Entry{{ProductID: "p2", Quantity: 2}}, got)
	})
}

func TestRemove(t *testing.T) {
	entries := []Entry{
		{ProductID: "p1", Quantity: 1},
		{ProductID: "p2", Quantity: 2},
	}

	got := Remove(entries, "p1")
	assert.Equal(t, []Entry{{ProductID: "p2", Quantity: 2}}, got)

	got = Remove(got, "missing")
	assert.Equal(t, []Entry{{ProductID: "p2", Quantity: 2}}, got)
}

func TestCount(t *testing.T) {
	assert.Equal(t, 0, Count(nil))
	assert.Equal(t, 5, Count([]Entry{
		{ProductID: "p1", Quantity: 2},
		{ProductID: "p2", Quantity: 3},
	}))
}

func TestMaterialize(t *testing.T) {
	products := []model.Product{
		product("p1", 5, true),
		product("p2", 3, true),
		product("p3", 7, true),
	}

	t.Run("Preserves cart insertion order", func(t *testing.T) {
		entries := []Entry{
			{ProductID: "p3", Quantity: 1},
			{ProductID: "p1", Quantity: 2},
		}
		lines := Materialize(products, entries)
		require.Len(t, lines, 2)
		assert.Equal(t, "p3", lines[0].Product.ID)
		assert.Equal(t, "p1", lines[1].Product.ID)
		assert.Equal(t, 2, lines[1].Quantity)
	})

	t.Run("Drops broken references silently", func(t *testing.T) {
		entries := []Entry{
			{ProductID: "p1", Quantity: 1},
			{ProductID: "deleted", Quantity: 4},
			{ProductID: "p2", Quantity: 1},
		}
		lines := Materialize(products, entries)
		require.Len(t, lines, 2)
		assert.Equal(t, "p1", lines[0].Product.ID)
		assert.Equal(t, "p2", lines[1].Product.ID)
	})

	t.Run("Drops non-positive quantities", func(t *testing.T) {
		entries := []Entry{{ProductID: "p1", Quantity: 0}}
		assert.Empty(t, Materialize(products, entries))
	})

	t.Run("Empty cart", func(t *testing.T) {
		assert.Empty(t, Materialize(products, nil))
	})
}
