package enrich

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vlecomte/phototrip-backend-go/internal/models"
)

var testDefault = Coordinate{Lat: 48.8566, Lon: 2.3522}

func TestResolveCoordinates_AlbumSkipsFirstDay(t *testing.T) {
	// Only day 0 has native GPS: the album coordinate must be the default,
	// not day 0's airport fix
	days := GroupByDay([]*models.Photo{
		geoPhotoAt("p1", "2025-07-14T10:00:00Z", 49.0097, 2.5479),
		photoAt("p2", "2025-07-15T10:00:00Z"),
		photoAt("p3", "2025-07-16T10:00:00Z"),
	})

	albumCoord := ResolveCoordinates(days, testDefault)
	assert.Equal(t, testDefault, albumCoord)
}

func TestResolveCoordinates_AlbumUsesFirstNativeFromSecondDay(t *testing.T) {
	days := GroupByDay([]*models.Photo{
		geoPhotoAt("p1", "2025-07-14T10:00:00Z", 49.0097, 2.5479),
		photoAt("p2", "2025-07-15T08:00:00Z"),
		geoPhotoAt("p3", "2025-07-15T12:00:00Z", 47.6573, -2.7604),
		geoPhotoAt("p4", "2025-07-16T12:00:00Z", 47.5, -3.1),
	})

	albumCoord := ResolveCoordinates(days, testDefault)
	assert.Equal(t, Coordinate{Lat: 47.6573, Lon: -2.7604}, albumCoord)
}

func TestResolveCoordinates_DayCoordinateAndBackfill(t *testing.T) {
	// 09:00 no GPS, 12:00 GPS, 18:00 no GPS: the day coordinate comes from
	// the 12:00 photo and both others backfill from it
	days := GroupByDay([]*models.Photo{
		photoAt("morning", "2025-07-14T09:00:00Z"),
		geoPhotoAt("noon", "2025-07-14T12:00:00Z", 48.1, -1.5),
		photoAt("evening", "2025-07-14T18:00:00Z"),
	})

	ResolveCoordinates(days, testDefault)

	require.Len(t, days, 1)
	day := days[0]
	assert.Equal(t, Coordinate{Lat: 48.1, Lon: -1.5}, day.Coord)
	assert.Equal(t, "noon", day.CoverPhotoID)

	for _, id := range []int{0, 2} {
		p := day.Photos[id]
		require.NotNil(t, p.Latitude)
		assert.Equal(t, 48.1, *p.Latitude)
		assert.Equal(t, -1.5, *p.Longitude)
		assert.True(t, p.CoordsInferred)
	}
	assert.False(t, day.Photos[1].CoordsInferred)
}

func TestResolveCoordinates_DayUsesLatestNativePhoto(t *testing.T) {
	days := GroupByDay([]*models.Photo{
		geoPhotoAt("early", "2025-07-14T09:00:00Z", 48.0, -1.0),
		geoPhotoAt("late", "2025-07-14T17:00:00Z", 48.2, -1.2),
	})

	ResolveCoordinates(days, testDefault)
	assert.Equal(t, Coordinate{Lat: 48.2, Lon: -1.2}, days[0].Coord)
	assert.Equal(t, "late", days[0].CoverPhotoID)
}

func TestResolveCoordinates_BackfillPrefersTimeNearest(t *testing.T) {
	days := GroupByDay([]*models.Photo{
		geoPhotoAt("a", "2025-07-14T08:00:00Z", 48.0, -1.0),
		photoAt("gap", "2025-07-14T15:00:00Z"),
		geoPhotoAt("b", "2025-07-14T16:00:00Z", 48.5, -1.8),
	})

	ResolveCoordinates(days, testDefault)

	gap := days[0].Photos[1]
	require.NotNil(t, gap.Latitude)
	// 16:00 is closer to 15:00 than 08:00 is
	assert.Equal(t, 48.5, *gap.Latitude)
	assert.Equal(t, -1.8, *gap.Longitude)
}

func TestResolveCoordinates_GPSLessAlbumNeverFails(t *testing.T) {
	days := GroupByDay([]*models.Photo{
		photoAt("p1", "2025-07-14T10:00:00Z"),
		photoAt("p2", "2025-07-15T10:00:00Z"),
	})

	albumCoord := ResolveCoordinates(days, testDefault)
	assert.Equal(t, testDefault, albumCoord)

	for _, day := range days {
		assert.Equal(t, testDefault, day.Coord)
		assert.NotEmpty(t, day.CoverPhotoID)
		for _, p := range day.Photos {
			require.NotNil(t, p.Latitude)
			assert.Equal(t, testDefault.Lat, *p.Latitude)
			assert.True(t, p.CoordsInferred)
		}
	}

	// Cover falls back to the day's latest photo
	assert.Equal(t, "p1", days[0].CoverPhotoID)
}

func TestResolveCoordinates_InferredCoordsAreNotSources(t *testing.T) {
	// A photo whose coordinate was backfilled by an earlier run must not seed
	// the day coordinate
	inferred := geoPhotoAt("old-backfill", "2025-07-14T18:00:00Z", 40.0, -3.0)
	inferred.CoordsInferred = true

	days := GroupByDay([]*models.Photo{
		geoPhotoAt("native", "2025-07-14T10:00:00Z", 48.1, -1.5),
		inferred,
	})

	ResolveCoordinates(days, testDefault)
	assert.Equal(t, Coordinate{Lat: 48.1, Lon: -1.5}, days[0].Coord)
	assert.Equal(t, "native", days[0].CoverPhotoID)
}
