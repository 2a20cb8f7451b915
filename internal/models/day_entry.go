package models

import "time"

// DayEntry represents one journal day for an album: one row per
// (album_id, date) pair. Created by the enrichment pipeline when absent and
// updated in place on re-runs; never deleted by the pipeline.
//
// Description is user-owned and never written by the pipeline. Title is
// pipeline-owned unless TitleOverride is set, in which case the user has
// edited it manually and every automated path must leave it alone.
type DayEntry struct {
	AlbumID       string    `json:"album_id" db:"album_id"`
	Date          string    `json:"date" db:"date"` // YYYY-MM-DD
	Title         string    `json:"title" db:"title"`
	TitleOverride bool      `json:"title_override" db:"title_override"`
	LocationName  *string   `json:"location_name,omitempty" db:"location_name"`
	Latitude      float64   `json:"latitude" db:"latitude"`
	Longitude     float64   `json:"longitude" db:"longitude"`
	CoverPhotoID  string    `json:"cover_photo_id" db:"cover_photo_id"`
	Description   *string   `json:"description,omitempty" db:"description"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}
