package enrich

import (
	"time"

	"github.com/vlecomte/phototrip-backend-go/internal/models"
)

// photoAt builds a timestamped photo without coordinates
func photoAt(id, ts string) *models.Photo {
	t, err := time.Parse(time.RFC3339, ts)
	if err != nil {
		panic(err)
	}
	return &models.Photo{ID: id, AlbumID: "album-1", TakenAt: &t}
}

// geoPhotoAt builds a timestamped photo with a native coordinate
func geoPhotoAt(id, ts string, lat, lon float64) *models.Photo {
	p := photoAt(id, ts)
	p.Latitude = &lat
	p.Longitude = &lon
	return p
}

// namedPhotoAt builds a geolocated photo with a pre-existing location name
func namedPhotoAt(id, ts string, lat, lon float64, name string) *models.Photo {
	p := geoPhotoAt(id, ts, lat, lon)
	p.LocationName = &name
	return p
}
