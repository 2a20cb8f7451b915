package models

import "time"

// Photo represents one uploaded photo's metadata relevant to enrichment.
// The upload subsystem owns the row; the enrichment pipeline only fills
// fields that are null on entry and never overwrites a photo's own
// EXIF-derived coordinates or name.
type Photo struct {
	ID             string     `json:"id" db:"id"`
	AlbumID        string     `json:"album_id" db:"album_id"`
	TakenAt        *time.Time `json:"taken_at,omitempty" db:"taken_at"`
	Latitude       *float64   `json:"latitude,omitempty" db:"latitude"`
	Longitude      *float64   `json:"longitude,omitempty" db:"longitude"`
	CoordsInferred bool       `json:"coords_inferred" db:"coords_inferred"`
	LocationName   *string    `json:"location_name,omitempty" db:"location_name"`
	DayTitle       *string    `json:"day_title,omitempty" db:"day_title"`
	CreatedAt      time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at" db:"updated_at"`
}

// HasCoords returns true if the photo carries any coordinate, native or inferred
func (p *Photo) HasCoords() bool {
	return p.Latitude != nil && p.Longitude != nil
}

// HasNativeCoords returns true if the photo carries a coordinate read from its
// embedded metadata, as opposed to one backfilled by a previous run
func (p *Photo) HasNativeCoords() bool {
	return p.HasCoords() && !p.CoordsInferred
}
