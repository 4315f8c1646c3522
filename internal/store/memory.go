package store

import (
	"context"
	"sync"
)

// Memory is an in-memory Collection. It copies on both read and write so
// callers can never alias the stored slice.
type Memory[T any] struct {
	mu    sync.RWMutex
	items []T
}

// NewMemory creates an in-memory collection holding a copy of items.
func NewMemory[T any](items ...T) *Memory[T] {
	m := &Memory[T]{}
	m.items = append([]T{}, items...)
	return m
}

// List returns a copy of the full collection.
func (m *Memory[T]) List(ctx context.Context) ([]T, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]T{}, m.items...), nil
}

// ReplaceAll overwrites the collection with a copy of items.
func (m *Memory[T]) ReplaceAll(ctx context.Context, items []T) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items = append([]T{}, items...)
	return nil
}
