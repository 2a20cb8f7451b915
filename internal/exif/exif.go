package exif

import (
	"io"
	"time"

	"github.com/rwcarlsen/goexif/exif"
)

// Meta is the slice of EXIF data the enrichment pipeline cares about. Any
// field may be absent; latitude and longitude are present-or-absent together.
type Meta struct {
	TakenAt   *time.Time
	Latitude  *float64
	Longitude *float64
}

// Extract reads the EXIF header of an image and returns its timestamp and GPS
// fix when present. An image without a decodable header is not an error from
// the caller's point of view: the photo simply has no metadata to enrich from.
func Extract(r io.Reader) (Meta, error) {
	var meta Meta

	x, err := exif.Decode(r)
	if err != nil {
		return meta, err
	}

	if tm, err := x.DateTime(); err == nil {
		meta.TakenAt = &tm
	}

	if lat, lon, err := x.LatLong(); err == nil {
		meta.Latitude = &lat
		meta.Longitude = &lon
	}

	return meta, nil
}
