package enrich

import (
	"sort"
	"time"

	"github.com/vlecomte/phototrip-backend-go/internal/models"
)

const dayKeyLayout = "2006-01-02"

// GroupByDay partitions an album's photos by calendar date. The date is the
// timestamp truncated to a day in its own location; no timezone conversion is
// applied beyond what the timestamp already encodes. Photos without a
// timestamp are excluded entirely and left untouched by the rest of the
// pipeline. Groups come back sorted ascending by date, each group's photos
// sorted ascending by timestamp.
func GroupByDay(photos []*models.Photo) []*DayGroup {
	byKey := make(map[string]*DayGroup)

	for _, p := range photos {
		if p.TakenAt == nil {
			continue
		}

		key := p.TakenAt.Format(dayKeyLayout)
		group, ok := byKey[key]
		if !ok {
			t := *p.TakenAt
			date := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
			group = &DayGroup{Date: date, Key: key}
			byKey[key] = group
		}
		group.Photos = append(group.Photos, p)
	}

	days := make([]*DayGroup, 0, len(byKey))
	for _, group := range byKey {
		sort.SliceStable(group.Photos, func(i, j int) bool {
			return group.Photos[i].TakenAt.Before(*group.Photos[j].TakenAt)
		})
		days = append(days, group)
	}

	sort.Slice(days, func(i, j int) bool {
		return days[i].Key < days[j].Key
	})

	return days
}
