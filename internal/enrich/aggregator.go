package enrich

import (
	"github.com/vlecomte/phototrip-backend-go/internal/models"
)

// BuildDayEntries assembles the final DayEntry per day group and stamps the
// redundant day_title convenience field on every photo of the day. Day
// indexes are 1-based positions among all the album's dates, so this must run
// only once every day of the album is known.
func BuildDayEntries(albumID string, days []*DayGroup) []*models.DayEntry {
	entries := make([]*models.DayEntry, 0, len(days))

	for i, day := range days {
		title := FormatTitle(i+1, day.Date, day.PlaceName)

		var locationName *string
		if day.PlaceName != "" {
			name := day.PlaceName
			locationName = &name
		}

		entries = append(entries, &models.DayEntry{
			AlbumID:      albumID,
			Date:         day.Key,
			Title:        title,
			LocationName: locationName,
			Latitude:     day.Coord.Lat,
			Longitude:    day.Coord.Lon,
			CoverPhotoID: day.CoverPhotoID,
		})

		for _, p := range day.Photos {
			t := title
			p.DayTitle = &t
		}
	}

	return entries
}
