package transit

import "context"

type Station struct {
	ID   int64
	Name string
	Slug string

	Zone          int
	Accessibility bool

	// Lines serving the station, in network order. The first entry is
	// treated as the primary line for arrival lookups.
	Lines []Line
}

type Line struct {
	Code  string
	Name  string
	Color string
}

// PrimaryLine returns the first serving line, or the given fallback when the
// station has no line associations at all.
func (s *Station) PrimaryLine(fallback Line) Line {
	if len(s.Lines) > 0 {
		return s.Lines[0]
	}

	return fallback
}

type StationSummary struct {
	Name string
	Slug string
}

type StationRepository interface {
	// FindByNameOrSlug matches case-insensitively on either field and
	// returns ErrStationNotFound on a miss.
	FindByNameOrSlug(ctx context.Context, query string) (*Station, error)

	// Suggest returns stations whose name or slug contains the query,
	// name-prefix matches first, then slug-prefix matches, then the rest,
	// alphabetically by name within each rank.
	Suggest(ctx context.Context, query string, limit int) ([]StationSummary, error)

	All(ctx context.Context) ([]Station, error)
}
