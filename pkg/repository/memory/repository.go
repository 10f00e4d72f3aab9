package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/dernier-metro/dernier-metro/pkg/transit"
)

// StationRepository serves a fixed set of stations from memory. Used by tests
// and by deployments running without a database.
type StationRepository struct {
	stations []transit.Station
}

func NewStationRepository(stations []transit.Station) *StationRepository {
	return &StationRepository{
		stations: stations,
	}
}

func (r *StationRepository) FindByNameOrSlug(ctx context.Context, search string) (*transit.Station, error) {
	for _, station := range r.stations {
		if strings.EqualFold(station.Name, search) || strings.EqualFold(station.Slug, search) {
			match := station
			return &match, nil
		}
	}

	return nil, transit.ErrStationNotFound
}

const (
	rankNamePrefix = 1
	rankSlugPrefix = 2
	rankSubstring  = 3
)

func suggestionRank(station transit.Station, search string) int {
	name := strings.ToLower(station.Name)
	slug := strings.ToLower(station.Slug)

	switch {
	case strings.HasPrefix(name, search):
		return rankNamePrefix
	case strings.HasPrefix(slug, search):
		return rankSlugPrefix
	case strings.Contains(name, search) || strings.Contains(slug, search):
		return rankSubstring
	default:
		return 0
	}
}

func (r *StationRepository) Suggest(ctx context.Context, search string, limit int) ([]transit.StationSummary, error) {
	search = strings.ToLower(search)

	type candidate struct {
		station transit.Station
		rank    int
	}

	candidates := []candidate{}
	for _, station := range r.stations {
		if rank := suggestionRank(station, search); rank > 0 {
			candidates = append(candidates, candidate{station: station, rank: rank})
		}
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].rank != candidates[j].rank {
			return candidates[i].rank < candidates[j].rank
		}
		return candidates[i].station.Name < candidates[j].station.Name
	})

	if len(candidates) > limit {
		candidates = candidates[:limit]
	}

	suggestions := make([]transit.StationSummary, 0, len(candidates))
	for _, c := range candidates {
		suggestions = append(suggestions, transit.StationSummary{Name: c.station.Name, Slug: c.station.Slug})
	}

	return suggestions, nil
}

func (r *StationRepository) All(ctx context.Context) ([]transit.Station, error) {
	stations := make([]transit.Station, len(r.stations))
	copy(stations, r.stations)

	sort.Slice(stations, func(i, j int) bool {
		return stations[i].Name < stations[j].Name
	})

	return stations, nil
}

// ScheduleRepository keys calendars by (line code, day type).
type ScheduleRepository struct {
	calendars map[string]transit.ServiceCalendar
}

func NewScheduleRepository(calendars []transit.ServiceCalendar) *ScheduleRepository {
	byKey := make(map[string]transit.ServiceCalendar, len(calendars))
	for _, calendar := range calendars {
		byKey[calendarKey(calendar.LineCode, calendar.DayType)] = calendar
	}

	return &ScheduleRepository{
		calendars: byKey,
	}
}

func (r *ScheduleRepository) Find(ctx context.Context, lineCode string, dayType transit.DayType) (*transit.ServiceCalendar, error) {
	calendar, ok := r.calendars[calendarKey(lineCode, dayType)]
	if !ok {
		return nil, transit.ErrCalendarNotFound
	}

	return &calendar, nil
}

func calendarKey(lineCode string, dayType transit.DayType) string {
	return lineCode + "/" + string(dayType)
}
