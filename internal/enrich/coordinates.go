package enrich

import (
	"time"

	"github.com/vlecomte/phototrip-backend-go/internal/models"
)

// ResolveCoordinates guarantees every timestamped photo has a coordinate and
// every day has one representative coordinate. It mutates the day groups and
// their photos in place and returns the album coordinate.
//
// All coordinate sources in the day and backfill steps are native
// (EXIF-derived) coordinates only, never previously backfilled ones, so
// approximation error does not compound across runs.
func ResolveCoordinates(days []*DayGroup, defaultCoord Coordinate) Coordinate {
	albumCoord := albumCoordinate(days, defaultCoord)

	for _, day := range days {
		resolveDayCoordinate(day, albumCoord)
		backfillPhotoCoordinates(day)
	}

	return albumCoord
}

// albumCoordinate scans days in chronological order starting from the second
// day and takes the first native coordinate it finds. The first day is
// deliberately skipped: arrival-day GPS fixes tend to point at an airport or
// transit hub rather than anywhere the album is actually about. When nothing
// qualifies the configured default wins, even if the first day has GPS.
func albumCoordinate(days []*DayGroup, defaultCoord Coordinate) Coordinate {
	for i := 1; i < len(days); i++ {
		for _, p := range days[i].Photos {
			if p.HasNativeCoords() {
				return Coordinate{Lat: *p.Latitude, Lon: *p.Longitude}
			}
		}
	}
	return defaultCoord
}

// resolveDayCoordinate picks the day's representative coordinate from the
// latest photo of the day with a native coordinate, falling back to the album
// coordinate. The same photo becomes the day's cover; when no photo qualifies
// the cover is simply the day's latest photo.
func resolveDayCoordinate(day *DayGroup, albumCoord Coordinate) {
	for i := len(day.Photos) - 1; i >= 0; i-- {
		p := day.Photos[i]
		if p.HasNativeCoords() {
			day.Coord = Coordinate{Lat: *p.Latitude, Lon: *p.Longitude}
			day.CoverPhotoID = p.ID
			return
		}
	}

	day.Coord = albumCoord
	if n := len(day.Photos); n > 0 {
		day.CoverPhotoID = day.Photos[n-1].ID
	}
}

// backfillPhotoCoordinates fills the coordinates of photos that have none,
// preferring the time-nearest photo of the same day with a native coordinate
// and falling back to the day coordinate. Backfilled values are flagged as
// inferred so later runs never mistake them for native fixes.
func backfillPhotoCoordinates(day *DayGroup) {
	for _, p := range day.Photos {
		if p.HasCoords() {
			continue
		}

		if src := nearestNativePhoto(day, p); src != nil {
			lat, lon := *src.Latitude, *src.Longitude
			p.Latitude = &lat
			p.Longitude = &lon
		} else {
			lat, lon := day.Coord.Lat, day.Coord.Lon
			p.Latitude = &lat
			p.Longitude = &lon
		}
		p.CoordsInferred = true
	}
}

// nearestNativePhoto returns the photo of the day with a native coordinate
// whose timestamp is closest to the target's, or nil if the day has none
func nearestNativePhoto(day *DayGroup, target *models.Photo) *models.Photo {
	var best *models.Photo
	var bestDelta time.Duration

	for _, candidate := range day.Photos {
		if candidate == target || !candidate.HasNativeCoords() {
			continue
		}

		delta := candidate.TakenAt.Sub(*target.TakenAt)
		if delta < 0 {
			delta = -delta
		}
		if best == nil || delta < bestDelta {
			best = candidate
			bestDelta = delta
		}
	}

	return best
}
