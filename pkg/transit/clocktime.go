package transit

import (
	"fmt"
	"time"
)

const minutesPerDay = 24 * 60

// ClockTime is a minute resolution time of day detached from any date
type ClockTime struct {
	Hour   int
	Minute int
}

// ParseClockTime parses a 24 hour "HH:MM" value. Seconds, if present, are
// ignored.
func ParseClockTime(value string) (ClockTime, error) {
	var hour, minute int
	if _, err := fmt.Sscanf(value, "%d:%d", &hour, &minute); err != nil {
		return ClockTime{}, fmt.Errorf("invalid clock time %q: %w", value, err)
	}

	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return ClockTime{}, fmt.Errorf("clock time %q out of range", value)
	}

	return ClockTime{Hour: hour, Minute: minute}, nil
}

// ClockTimeOf drops the date component of a timestamp.
func ClockTimeOf(t time.Time) ClockTime {
	return ClockTime{Hour: t.Hour(), Minute: t.Minute()}
}

func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

func (c ClockTime) MinuteOfDay() int {
	return c.Hour*60 + c.Minute
}

// sinceNoon re-frames a clock time as minutes elapsed since midday. Service
// nights run past midnight, so ordering clock times in a noon-to-noon frame
// keeps a 01:15 end-of-service after a 23:00 request instead of before it.
func (c ClockTime) sinceNoon() int {
	return (c.MinuteOfDay() + minutesPerDay/2) % minutesPerDay
}
