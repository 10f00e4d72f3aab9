package transit

import (
	"context"
	"errors"
)

var (
	// ErrCalendarNotFound is the expected miss outcome of a schedule lookup,
	// not a failure. Callers degrade to a default calendar.
	ErrCalendarNotFound = errors.New("no service calendar for line and day type")

	ErrStationNotFound = errors.New("station not found")
)

// ServiceCalendar is the service window configuration for one line on one day
// type. ServiceEnd and LastTrainWindowStart may be past midnight, meaning the
// early morning following the service day.
type ServiceCalendar struct {
	LineCode string
	DayType  DayType

	ServiceStart         ClockTime
	ServiceEnd           ClockTime
	LastTrainWindowStart ClockTime

	HeadwayMinutes int
}

type ScheduleRepository interface {
	Find(ctx context.Context, lineCode string, dayType DayType) (*ServiceCalendar, error)
}
