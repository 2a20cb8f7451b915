package enrich

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/vlecomte/phototrip-backend-go/internal/geocode"
	"github.com/vlecomte/phototrip-backend-go/internal/models"
	"github.com/vlecomte/phototrip-backend-go/internal/spatial"
)

func testBatch() []*models.Photo {
	return []*models.Photo{
		geoPhotoAt("arrival", "2025-07-14T11:00:00Z", 49.0097, 2.5479), // airport, day 1
		photoAt("beach-am", "2025-07-15T09:00:00Z"),
		geoPhotoAt("beach", "2025-07-15T12:00:00Z", 47.3100, -3.2300),
		photoAt("beach-pm", "2025-07-15T18:00:00Z"),
		geoPhotoAt("port", "2025-07-16T10:00:00Z", 47.3090, -3.2310),
		{ID: "scanned", AlbumID: "album-1"}, // no timestamp
	}
}

func testResolver() *fakeResolver {
	return &fakeResolver{names: map[string]string{
		spatial.CellKey(47.3100, -3.2300): "Kérel, Bangor",
		spatial.CellKey(47.3090, -3.2310): "Port Goulphar, Bangor",
	}}
}

func runPipeline(t *testing.T, photos []*models.Photo, resolver geocode.Resolver) *Output {
	t.Helper()
	p := NewPipeline(zap.NewNop(), resolver, geocode.NewCache(nil), testConfig())
	out, err := p.Run(context.Background(), Input{AlbumID: "album-1", Photos: photos})
	require.NoError(t, err)
	return out
}

func TestPipeline_FullRun(t *testing.T) {
	out := runPipeline(t, testBatch(), testResolver())

	require.Len(t, out.Entries, 3)

	// Album coordinate comes from the second day, not the airport
	assert.Equal(t, Coordinate{Lat: 47.3100, Lon: -3.2300}, out.AlbumCoord)
	assert.Equal(t, "Kérel, Bangor", out.AlbumPlaceName)

	day2 := out.Entries[1]
	assert.Equal(t, "2025-07-15", day2.Date)
	assert.Equal(t, "J2, mardi 15 juillet, Kérel, Bangor", day2.Title)
	assert.Equal(t, "beach", day2.CoverPhotoID)
	require.NotNil(t, day2.LocationName)
	assert.Equal(t, "Kérel, Bangor", *day2.LocationName)

	day3 := out.Entries[2]
	assert.Equal(t, "J3, mercredi 16 juillet, Port Goulphar, Bangor", day3.Title)

	// Day 1 has native GPS so its own coordinate wins for the day itself
	day1 := out.Entries[0]
	assert.Equal(t, 49.0097, day1.Latitude)
	assert.Equal(t, "arrival", day1.CoverPhotoID)
}

func TestPipeline_Idempotent(t *testing.T) {
	first := testBatch()
	out1 := runPipeline(t, first, testResolver())

	second := testBatch()
	out2 := runPipeline(t, second, testResolver())

	require.Equal(t, len(out1.Entries), len(out2.Entries))
	for i := range out1.Entries {
		assert.Equal(t, out1.Entries[i], out2.Entries[i])
	}

	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].Latitude == nil, second[i].Latitude == nil)
		if first[i].Latitude != nil {
			assert.Equal(t, *first[i].Latitude, *second[i].Latitude)
			assert.Equal(t, *first[i].Longitude, *second[i].Longitude)
		}
		assert.Equal(t, first[i].LocationName == nil, second[i].LocationName == nil)
		if first[i].LocationName != nil {
			assert.Equal(t, *first[i].LocationName, *second[i].LocationName)
		}
	}
}

func TestPipeline_EmptyAlbum(t *testing.T) {
	resolver := testResolver()
	out := runPipeline(t, nil, resolver)

	assert.Empty(t, out.Days)
	assert.Empty(t, out.Entries)
	assert.Zero(t, out.GeocodeCalls)
	assert.Zero(t, resolver.callCount(), "no geocode calls for an empty album")
}

func TestPipeline_OnlyTimestamplessPhotos(t *testing.T) {
	photos := []*models.Photo{
		{ID: "s1", AlbumID: "album-1"},
		{ID: "s2", AlbumID: "album-1"},
	}

	out := runPipeline(t, photos, testResolver())
	assert.Empty(t, out.Entries)
	assert.Nil(t, photos[0].Latitude)
	assert.Nil(t, photos[1].DayTitle)
}

func TestPipeline_AllGeocodingFails(t *testing.T) {
	out := runPipeline(t, testBatch(), &fakeResolver{fail: true})

	require.Len(t, out.Entries, 3)
	for _, entry := range out.Entries {
		assert.Nil(t, entry.LocationName)
		assert.NotZero(t, entry.Latitude, "coordinates survive geocoding failure")
	}

	// Titles omit the location suffix
	assert.Equal(t, "J2, mardi 15 juillet", out.Entries[1].Title)
}

func TestPipeline_MissingAlbumIDIsFatal(t *testing.T) {
	p := NewPipeline(zap.NewNop(), testResolver(), geocode.NewCache(nil), testConfig())
	_, err := p.Run(context.Background(), Input{AlbumID: "", Photos: testBatch()})
	assert.Error(t, err)
}

func TestPipeline_StampsDayTitlesOnPhotos(t *testing.T) {
	photos := testBatch()
	out := runPipeline(t, photos, testResolver())
	require.Len(t, out.Entries, 3)

	byID := map[string]*models.Photo{}
	for _, p := range photos {
		byID[p.ID] = p
	}

	require.NotNil(t, byID["beach-am"].DayTitle)
	assert.Equal(t, "J2, mardi 15 juillet, Kérel, Bangor", *byID["beach-am"].DayTitle)
	assert.Nil(t, byID["scanned"].DayTitle)
}
