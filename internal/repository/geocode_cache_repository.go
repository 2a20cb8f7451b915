package repository

import (
	"context"
	"database/sql"
	"fmt"
)

// GeocodeCacheRepository persists resolved place names across runs, keyed by
// the 4-decimal quantized coordinate cell. It backs the in-memory cache as a
// read-through/write-through store.
type GeocodeCacheRepository struct {
	db *sql.DB
}

// NewGeocodeCacheRepository creates a new geocode cache repository
func NewGeocodeCacheRepository(db *sql.DB) *GeocodeCacheRepository {
	return &GeocodeCacheRepository{db: db}
}

// Get retrieves a cached place name by cell key
func (r *GeocodeCacheRepository) Get(ctx context.Context, cellKey string) (string, bool, error) {
	var name string
	err := r.db.QueryRowContext(ctx,
		`SELECT place_name FROM geocode_cache WHERE cell_key = ?`, cellKey,
	).Scan(&name)

	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to get geocode cache entry: %w", err)
	}

	return name, true, nil
}

// Put stores a resolved place name for a cell key
func (r *GeocodeCacheRepository) Put(ctx context.Context, cellKey, placeName string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO geocode_cache (cell_key, place_name)
		VALUES (?, ?)
		ON CONFLICT(cell_key) DO UPDATE SET
			place_name = excluded.place_name,
			resolved_at = CURRENT_TIMESTAMP
	`, cellKey, placeName)
	if err != nil {
		return fmt.Errorf("failed to put geocode cache entry: %w", err)
	}

	return nil
}
