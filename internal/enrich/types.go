package enrich

import (
	"time"

	"github.com/vlecomte/phototrip-backend-go/internal/models"
)

// Coordinate is a decimal latitude/longitude pair
type Coordinate struct {
	Lat float64
	Lon float64
}

// DayGroup is the pipeline-internal grouping of one album's photos for a
// single calendar date. Photos are ordered chronologically. Coord, CoverPhotoID
// and PlaceName are filled by the later stages.
type DayGroup struct {
	Date   time.Time // midnight of the calendar day
	Key    string    // YYYY-MM-DD
	Photos []*models.Photo

	Coord        Coordinate
	CoverPhotoID string
	PlaceName    string
}

// Config holds the tunable parameters of a pipeline run
type Config struct {
	// DefaultCoord is used when no photo in the album has a native coordinate
	DefaultCoord Coordinate

	// ProximityKm is the distance under which a photo inherits its day's
	// anchor name instead of resolving its own coordinate
	ProximityKm float64

	// MaxResolvesPerDay caps individual photo lookups within one day group
	MaxResolvesPerDay int

	// GeocodeConcurrency bounds concurrent anchor resolutions
	GeocodeConcurrency int
}

// Input is one album's batch of photo records
type Input struct {
	AlbumID string
	Photos  []*models.Photo
}

// Output is the result of a pipeline run. Days hold the enriched photos;
// Entries are ready to upsert.
type Output struct {
	Days           []*DayGroup
	Entries        []*models.DayEntry
	AlbumCoord     Coordinate
	AlbumPlaceName string
	GeocodeCalls   int
}
