package enrich

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vlecomte/phototrip-backend-go/internal/models"
)

func TestGroupByDay_PartitionsByCalendarDate(t *testing.T) {
	photos := []*models.Photo{
		photoAt("p3", "2025-07-15T09:00:00Z"),
		photoAt("p1", "2025-07-14T18:00:00Z"),
		photoAt("p2", "2025-07-14T08:00:00Z"),
	}

	days := GroupByDay(photos)
	require.Len(t, days, 2)

	assert.Equal(t, "2025-07-14", days[0].Key)
	assert.Equal(t, "2025-07-15", days[1].Key)

	// Photos within a day are chronological regardless of input order
	require.Len(t, days[0].Photos, 2)
	assert.Equal(t, "p2", days[0].Photos[0].ID)
	assert.Equal(t, "p1", days[0].Photos[1].ID)
}

func TestGroupByDay_ExcludesPhotosWithoutTimestamp(t *testing.T) {
	noTimestamp := &models.Photo{ID: "orphan", AlbumID: "album-1"}
	photos := []*models.Photo{
		photoAt("p1", "2025-07-14T08:00:00Z"),
		noTimestamp,
	}

	days := GroupByDay(photos)
	require.Len(t, days, 1)
	require.Len(t, days[0].Photos, 1)
	assert.Equal(t, "p1", days[0].Photos[0].ID)

	// The orphan is left completely untouched
	assert.Nil(t, noTimestamp.Latitude)
	assert.Nil(t, noTimestamp.DayTitle)
}

func TestGroupByDay_EmptyInput(t *testing.T) {
	assert.Empty(t, GroupByDay(nil))
	assert.Empty(t, GroupByDay([]*models.Photo{}))
}

func TestGroupByDay_DateIsMidnightOfPhotoDay(t *testing.T) {
	days := GroupByDay([]*models.Photo{photoAt("p1", "2025-07-14T23:59:59Z")})
	require.Len(t, days, 1)
	assert.Equal(t, 0, days[0].Date.Hour())
	assert.Equal(t, 14, days[0].Date.Day())
}
