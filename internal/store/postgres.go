package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// Postgres is a Collection backed by a single JSONB document per collection
// name. It keeps the same whole-collection-replace contract as the file
// store; the database adds durability, not row semantics.
type Postgres[T any] struct {
	pool   *pgxpool.Pool
	name   string
	logger zerolog.Logger
}

// NewPostgres creates a postgres-backed collection for the given name.
func NewPostgres[T any](pool *pgxpool.Pool, name string, logger zerolog.Logger) *Postgres[T] {
	return &Postgres[T]{
		pool:   pool,
		name:   name,
		logger: logger.With().Str("store", name).Logger(),
	}
}

// EnsureSchema creates the collections table if it does not exist.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	schema := `
		CREATE TABLE IF NOT EXISTS collections (
			name VARCHAR(50) PRIMARY KEY,
			doc JSONB NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
		)
	`
	if _, err := pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to create collections schema: %w", err)
	}
	return nil
}

// List returns the full collection.
func (p *Postgres[T]) List(ctx context.Context) ([]T, error) {
	query := `
		SELECT doc
		FROM collections
		WHERE name = $1
	`

	var doc []byte
	err := p.pool.QueryRow(ctx, query, p.name).Scan(&doc)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []T{}, nil
		}
		p.logger.Error().Err(err).Msg("failed to query collection")
		return nil, fmt.Errorf("failed to query collection %s: %w", p.name, err)
	}

	var items []T
	if err := json.Unmarshal(doc, &items); err != nil {
		p.logger.Error().Err(err).Msg("failed to decode collection document")
		return nil, fmt.Errorf("failed to decode collection %s: %w", p.name, err)
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

// ReplaceAll overwrites the full collection.
func (p *Postgres[T]) ReplaceAll(ctx context.Context, items []T) error {
	if items == nil {
		items = []T{}
	}
	doc, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to encode collection %s: %w", p.name, err)
	}

	query := `
		INSERT INTO collections (name, doc, updated_at)
		VALUES ($1, $2, CURRENT_TIMESTAMP)
		ON CONFLICT (name)
		DO UPDATE SET doc = EXCLUDED.doc, updated_at = CURRENT_TIMESTAMP
	`

	if _, err := p.pool.Exec(ctx, query, p.name, doc); err != nil {
		p.logger.Error().Err(err).Msg("failed to write collection")
		return fmt.Errorf("failed to write collection %s: %w", p.name, err)
	}

	p.logger.Debug().Int("count", len(items)).Msg("collection written")
	return nil
}
