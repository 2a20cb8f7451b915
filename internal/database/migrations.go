package database

import (
	"database/sql"
	"fmt"

	"go.uber.org/zap"
)

// Migration represents a database migration
type Migration struct {
	Version int
	Name    string
	SQL     string
}

// migrations are embedded in the binary and applied in order at startup
var migrations = []Migration{
	{
		Version: 1,
		Name:    "create_photos",
		SQL: `
			CREATE TABLE IF NOT EXISTS photos (
				id TEXT PRIMARY KEY,
				album_id TEXT NOT NULL,
				taken_at TIMESTAMP,
				latitude REAL,
				longitude REAL,
				coords_inferred INTEGER NOT NULL DEFAULT 0,
				location_name TEXT,
				day_title TEXT,
				created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
				updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
			);
			CREATE INDEX IF NOT EXISTS idx_photos_album ON photos(album_id, taken_at);
		`,
	},
	{
		Version: 2,
		Name:    "create_day_entries",
		SQL: `
			CREATE TABLE IF NOT EXISTS day_entries (
				album_id TEXT NOT NULL,
				date TEXT NOT NULL,
				title TEXT NOT NULL DEFAULT '',
				title_override INTEGER NOT NULL DEFAULT 0,
				location_name TEXT,
				latitude REAL NOT NULL,
				longitude REAL NOT NULL,
				cover_photo_id TEXT NOT NULL,
				description TEXT,
				created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
				updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
				PRIMARY KEY (album_id, date)
			);
		`,
	},
	{
		Version: 3,
		Name:    "create_geocode_cache",
		SQL: `
			CREATE TABLE IF NOT EXISTS geocode_cache (
				cell_key TEXT PRIMARY KEY,
				place_name TEXT NOT NULL,
				resolved_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
			);
		`,
	},
	{
		Version: 4,
		Name:    "create_enrichment_tasks",
		SQL: `
			CREATE TABLE IF NOT EXISTS enrichment_tasks (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				album_id TEXT NOT NULL,
				status TEXT NOT NULL,
				total_photos INTEGER NOT NULL DEFAULT 0,
				updated_photos INTEGER NOT NULL DEFAULT 0,
				failed_photos INTEGER NOT NULL DEFAULT 0,
				updated_days INTEGER NOT NULL DEFAULT 0,
				failed_days INTEGER NOT NULL DEFAULT 0,
				geocode_calls INTEGER NOT NULL DEFAULT 0,
				error_message TEXT,
				created_by TEXT NOT NULL,
				start_time TIMESTAMP,
				end_time TIMESTAMP,
				created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
				updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
			);
		`,
	},
}

// initMigrationsTable creates the migrations tracking table
func initMigrationsTable(db *sql.DB) error {
	query := `
		CREATE TABLE IF NOT EXISTS migrations (
			version INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`
	_, err := db.Exec(query)
	if err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}
	return nil
}

// getAppliedMigrations returns the set of applied migration versions
func getAppliedMigrations(db *sql.DB) (map[int]bool, error) {
	rows, err := db.Query("SELECT version FROM migrations ORDER BY version")
	if err != nil {
		return nil, fmt.Errorf("failed to query migrations: %w", err)
	}
	defer rows.Close()

	applied := make(map[int]bool)
	for rows.Next() {
		var version int
		if err := rows.Scan(&version); err != nil {
			return nil, fmt.Errorf("failed to scan migration version: %w", err)
		}
		applied[version] = true
	}

	return applied, nil
}

// applyMigration applies a single migration inside a transaction
func applyMigration(db *sql.DB, migration Migration) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		}
	}()

	if _, err = tx.Exec(migration.SQL); err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to execute migration %d: %w", migration.Version, err)
	}

	if _, err = tx.Exec("INSERT INTO migrations (version, name) VALUES (?, ?)", migration.Version, migration.Name); err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to record migration %d: %w", migration.Version, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit migration %d: %w", migration.Version, err)
	}

	return nil
}

// RunMigrations applies all pending migrations
func RunMigrations(db *sql.DB, logger *zap.Logger) error {
	if err := initMigrationsTable(db); err != nil {
		return err
	}

	applied, err := getAppliedMigrations(db)
	if err != nil {
		return err
	}

	for _, migration := range migrations {
		if applied[migration.Version] {
			continue
		}

		if err := applyMigration(db, migration); err != nil {
			return err
		}
		logger.Info("applied migration",
			zap.Int("version", migration.Version),
			zap.String("name", migration.Name),
		)
	}

	return nil
}
