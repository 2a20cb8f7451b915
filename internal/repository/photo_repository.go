package repository

import (
	"database/sql"
	"fmt"

	"github.com/vlecomte/phototrip-backend-go/internal/models"
)

// PhotoRepository handles database operations for photo metadata
type PhotoRepository struct {
	db *sql.DB
}

// NewPhotoRepository creates a new photo repository
func NewPhotoRepository(db *sql.DB) *PhotoRepository {
	return &PhotoRepository{db: db}
}

// Create inserts a new photo metadata row
func (r *PhotoRepository) Create(photo *models.Photo) error {
	query := `
		INSERT INTO photos (
			id, album_id, taken_at, latitude, longitude,
			coords_inferred, location_name, day_title
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.Exec(query,
		photo.ID,
		photo.AlbumID,
		photo.TakenAt,
		photo.Latitude,
		photo.Longitude,
		photo.CoordsInferred,
		photo.LocationName,
		photo.DayTitle,
	)
	if err != nil {
		return fmt.Errorf("failed to create photo: %w", err)
	}

	return nil
}

// GetByID retrieves a photo by ID
func (r *PhotoRepository) GetByID(id string) (*models.Photo, error) {
	query := selectPhotoColumns + ` WHERE id = ?`

	photo, err := scanPhoto(r.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("photo not found: %s", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get photo: %w", err)
	}

	return photo, nil
}

// ListByAlbum retrieves all photos of an album, timestamped photos first in
// chronological order
func (r *PhotoRepository) ListByAlbum(albumID string) ([]*models.Photo, error) {
	query := selectPhotoColumns + ` WHERE album_id = ? ORDER BY taken_at IS NULL, taken_at, id`

	rows, err := r.db.Query(query, albumID)
	if err != nil {
		return nil, fmt.Errorf("failed to list photos: %w", err)
	}
	defer rows.Close()

	var photos []*models.Photo
	for rows.Next() {
		photo, err := scanPhoto(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan photo: %w", err)
		}
		photos = append(photos, photo)
	}

	return photos, rows.Err()
}

// UpdateEnrichment writes the pipeline-owned fields of one photo
func (r *PhotoRepository) UpdateEnrichment(photo *models.Photo) error {
	query := `
		UPDATE photos
		SET latitude = ?, longitude = ?, coords_inferred = ?,
			location_name = ?, day_title = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`

	_, err := r.db.Exec(query,
		photo.Latitude,
		photo.Longitude,
		photo.CoordsInferred,
		photo.LocationName,
		photo.DayTitle,
		photo.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update photo enrichment: %w", err)
	}

	return nil
}

const selectPhotoColumns = `
	SELECT id, album_id, taken_at, latitude, longitude,
		   coords_inferred, location_name, day_title, created_at, updated_at
	FROM photos
`

// scanner covers both *sql.Row and *sql.Rows
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanPhoto(s scanner) (*models.Photo, error) {
	photo := &models.Photo{}
	var takenAt sql.NullTime
	var latitude, longitude sql.NullFloat64
	var locationName, dayTitle sql.NullString

	err := s.Scan(
		&photo.ID,
		&photo.AlbumID,
		&takenAt,
		&latitude,
		&longitude,
		&photo.CoordsInferred,
		&locationName,
		&dayTitle,
		&photo.CreatedAt,
		&photo.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if takenAt.Valid {
		t := takenAt.Time
		photo.TakenAt = &t
	}
	if latitude.Valid && longitude.Valid {
		lat, lon := latitude.Float64, longitude.Float64
		photo.Latitude = &lat
		photo.Longitude = &lon
	}
	if locationName.Valid {
		photo.LocationName = &locationName.String
	}
	if dayTitle.Valid {
		photo.DayTitle = &dayTitle.String
	}

	return photo, nil
}
