package enrich

import (
	"fmt"
	"time"
)

// Fixed French name tables, indexed by time.Weekday (0=Sunday) and month
// (0=January). Deliberately not the system locale: titles must come out
// identical wherever the service runs.
var weekdayNames = [7]string{
	"dimanche", "lundi", "mardi", "mercredi", "jeudi", "vendredi", "samedi",
}

var monthNames = [12]string{
	"janvier", "février", "mars", "avril", "mai", "juin",
	"juillet", "août", "septembre", "octobre", "novembre", "décembre",
}

// FormatTitle formats a day title from its 1-based index in the album, its
// date and an optional resolved place name, e.g.
// "J3, mardi 15 juillet, Kérel, Bangor". An empty locationName just omits the
// suffix.
func FormatTitle(dayIndex int, date time.Time, locationName string) string {
	title := fmt.Sprintf("J%d, %s %d %s",
		dayIndex,
		weekdayNames[int(date.Weekday())],
		date.Day(),
		monthNames[int(date.Month())-1],
	)
	if locationName != "" {
		title += ", " + locationName
	}
	return title
}
