package transit

import "time"

// DayType classifies a calendar date into one of the three service patterns
// the network runs.
type DayType string

const (
	DayTypeWeekday  DayType = "weekday"
	DayTypeSaturday DayType = "saturday"
	DayTypeSunday   DayType = "sunday"
)

// ClassifyDay maps a timestamp onto the service pattern running on that date.
func ClassifyDay(t time.Time) DayType {
	switch t.Weekday() {
	case time.Sunday:
		return DayTypeSunday
	case time.Saturday:
		return DayTypeSaturday
	default:
		return DayTypeWeekday
	}
}
