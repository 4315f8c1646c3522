package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"
)

// File is a Collection backed by one flat JSON file. Writes go through a
// temp file and rename so a crash mid-write never leaves a half-written
// collection behind. A missing file reads as an empty collection.
type File[T any] struct {
	path   string
	mu     sync.Mutex
	logger zerolog.Logger
}

// NewFile creates a file-backed collection at dir/<name>.json, creating the
// directory if needed.
func NewFile[T any](dir, name string, logger zerolog.Logger) (*File[T], error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory %s: %w", dir, err)
	}
	return &File[T]{
		path:   filepath.Join(dir, name+".json"),
		logger: logger.With().Str("store", name).Logger(),
	}, nil
}

// List returns the full collection.
func (f *File[T]) List(ctx context.Context) ([]T, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []T{}, nil
		}
		f.logger.Error().Err(err).Str("path", f.path).Msg("failed to read collection file")
		return nil, fmt.Errorf("failed to read %s: %w", f.path, err)
	}

	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		f.logger.Error().Err(err).Str("path", f.path).Msg("failed to decode collection file")
		return nil, fmt.Errorf("failed to decode %s: %w", f.path, err)
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

// ReplaceAll overwrites the full collection.
func (f *File[T]) ReplaceAll(ctx context.Context, items []T) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if items == nil {
		items = []T{}
	}
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode collection: %w", err)
	}

	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		f.logger.Error().Err(err).Str("path", tmp).Msg("failed to write collection file")
		return fmt.Errorf("failed to write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		f.logger.Error().Err(err).Str("path", f.path).Msg("failed to replace collection file")
		return fmt.Errorf("failed to replace %s: %w", f.path, err)
	}

	f.logger.Debug().Int("count", len(items)).Str("path", f.path).Msg("collection written")
	return nil
}
