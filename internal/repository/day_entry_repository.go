package repository

import (
	"database/sql"
	"fmt"

	"github.com/vlecomte/phototrip-backend-go/internal/models"
)

// DayEntryRepository handles database operations for journal day entries
type DayEntryRepository struct {
	db *sql.DB
}

// NewDayEntryRepository creates a new day entry repository
func NewDayEntryRepository(db *sql.DB) *DayEntryRepository {
	return &DayEntryRepository{db: db}
}

// Upsert creates or updates the day entry for (album, date). Only the
// pipeline-owned fields are written: a manually overridden title and the
// user's description survive every re-run. The entry is never deleted here.
func (r *DayEntryRepository) Upsert(entry *models.DayEntry) error {
	query := `
		INSERT INTO day_entries (
			album_id, date, title, location_name, latitude, longitude, cover_photo_id
		) VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(album_id, date) DO UPDATE SET
			title = CASE WHEN day_entries.title_override = 1
						 THEN day_entries.title ELSE excluded.title END,
			location_name = excluded.location_name,
			latitude = excluded.latitude,
			longitude = excluded.longitude,
			cover_photo_id = excluded.cover_photo_id,
			updated_at = CURRENT_TIMESTAMP
	`

	_, err := r.db.Exec(query,
		entry.AlbumID,
		entry.Date,
		entry.Title,
		entry.LocationName,
		entry.Latitude,
		entry.Longitude,
		entry.CoverPhotoID,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert day entry %s/%s: %w", entry.AlbumID, entry.Date, err)
	}

	return nil
}

// ListByAlbum retrieves an album's day entries sorted ascending by date
func (r *DayEntryRepository) ListByAlbum(albumID string) ([]*models.DayEntry, error) {
	query := selectDayEntryColumns + ` WHERE album_id = ? ORDER BY date`

	rows, err := r.db.Query(query, albumID)
	if err != nil {
		return nil, fmt.Errorf("failed to list day entries: %w", err)
	}
	defer rows.Close()

	return collectDayEntries(rows)
}

// ListAlbumIDs returns every album that has at least one day entry
func (r *DayEntryRepository) ListAlbumIDs() ([]string, error) {
	rows, err := r.db.Query(`SELECT DISTINCT album_id FROM day_entries ORDER BY album_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list album ids: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan album id: %w", err)
		}
		ids = append(ids, id)
	}

	return ids, rows.Err()
}

// UpdateTitle rewrites the title of one entry unless the user has overridden
// it. Returns whether a row was actually updated.
func (r *DayEntryRepository) UpdateTitle(albumID, date, title string) (bool, error) {
	query := `
		UPDATE day_entries
		SET title = ?, updated_at = CURRENT_TIMESTAMP
		WHERE album_id = ? AND date = ? AND title_override = 0
	`

	result, err := r.db.Exec(query, title, albumID, date)
	if err != nil {
		return false, fmt.Errorf("failed to update day title: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}

	return affected > 0, nil
}

const selectDayEntryColumns = `
	SELECT album_id, date, title, title_override, location_name,
		   latitude, longitude, cover_photo_id, description, created_at, updated_at
	FROM day_entries
`

func collectDayEntries(rows *sql.Rows) ([]*models.DayEntry, error) {
	var entries []*models.DayEntry
	for rows.Next() {
		entry := &models.DayEntry{}
		var locationName, description sql.NullString

		err := rows.Scan(
			&entry.AlbumID,
			&entry.Date,
			&entry.Title,
			&entry.TitleOverride,
			&locationName,
			&entry.Latitude,
			&entry.Longitude,
			&entry.CoverPhotoID,
			&description,
			&entry.CreatedAt,
			&entry.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan day entry: %w", err)
		}

		if locationName.Valid {
			entry.LocationName = &locationName.String
		}
		if description.Valid {
			entry.Description = &description.String
		}
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}
