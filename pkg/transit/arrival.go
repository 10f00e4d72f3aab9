package transit

import (
	"context"
	"errors"
	"time"
)

// ArrivalResult is computed fresh per request and never persisted. Exactly one
// of the two shapes is populated: Closed, or Next.
type ArrivalResult struct {
	Timezone string

	Closed bool
	Next   *UpcomingArrival
}

type UpcomingArrival struct {
	Arrival        ClockTime
	IsLast         bool
	HeadwayMinutes int

	// DayType is only set when a stored calendar backed the computation. It
	// stays empty on the default-calendar path.
	DayType DayType
}

// Calculator resolves the next arrival on a line for a point in time. It is
// stateless apart from its configuration and safe for concurrent use.
type Calculator struct {
	schedules ScheduleRepository
	fallback  ServiceCalendar
	timezone  string
}

// NewCalculator builds a calculator around a schedule source. The fallback
// calendar is substituted whenever no schedule row exists for a line and day
// type, so the API degrades instead of failing on incomplete data.
func NewCalculator(schedules ScheduleRepository, fallback ServiceCalendar, timezone string) *Calculator {
	return &Calculator{
		schedules: schedules,
		fallback:  fallback,
		timezone:  timezone,
	}
}

func (calc *Calculator) Timezone() string {
	return calc.timezone
}

// NextArrival decides whether service on the line is still running at `now`
// and, if so, when the next train arrives and whether it is the last of the
// night.
func (calc *Calculator) NextArrival(ctx context.Context, lineCode string, now time.Time) (ArrivalResult, error) {
	dayType := ClassifyDay(now)

	scheduled := true
	calendar, err := calc.schedules.Find(ctx, lineCode, dayType)
	if errors.Is(err, ErrCalendarNotFound) {
		fallback := calc.fallback
		calendar = &fallback
		scheduled = false
	} else if err != nil {
		return ArrivalResult{}, err
	}

	// Compare in the rolling noon-to-noon service day frame so that a
	// past-midnight ServiceEnd still lies ahead of an evening request
	nowSinceNoon := ClockTimeOf(now).sinceNoon()

	if nowSinceNoon > calendar.ServiceEnd.sinceNoon() {
		return ArrivalResult{Timezone: calc.timezone, Closed: true}, nil
	}

	next := &UpcomingArrival{
		Arrival:        ClockTimeOf(now.Add(time.Duration(calendar.HeadwayMinutes) * time.Minute)),
		IsLast:         nowSinceNoon >= calendar.LastTrainWindowStart.sinceNoon(),
		HeadwayMinutes: calendar.HeadwayMinutes,
	}
	if scheduled {
		next.DayType = dayType
	}

	return ArrivalResult{Timezone: calc.timezone, Next: next}, nil
}
