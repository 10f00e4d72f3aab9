package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dernier-metro/dernier-metro/pkg/transit"
)

type StationRepository struct {
	db *pgxpool.Pool
}

func NewStationRepository(db *pgxpool.Pool) *StationRepository {
	return &StationRepository{
		db: db,
	}
}

func (r *StationRepository) FindByNameOrSlug(ctx context.Context, search string) (*transit.Station, error) {
	query := `SELECT id, name, slug, zone, accessibility FROM stations
						WHERE LOWER(slug) = LOWER($1) OR LOWER(name) = LOWER($1)`
	station := &transit.Station{}
	err := r.db.QueryRow(ctx, query, search).Scan(&station.ID, &station.Name, &station.Slug, &station.Zone, &station.Accessibility)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, transit.ErrStationNotFound
	}
	if err != nil {
		return nil, err
	}

	linesQuery := `SELECT ml.code, ml.name, COALESCE(ml.color, '') FROM metro_lines ml
								 JOIN line_stations ls ON ls.line_id = ml.id
								 WHERE ls.station_id = $1
								 ORDER BY ls.position, ml.code`
	rows, err := r.db.Query(ctx, linesQuery, station.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		line := transit.Line{}
		if err := rows.Scan(&line.Code, &line.Name, &line.Color); err != nil {
			return nil, err
		}
		station.Lines = append(station.Lines, line)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}

	return station, nil
}

func (r *StationRepository) Suggest(ctx context.Context, search string, limit int) ([]transit.StationSummary, error) {
	// Name-prefix matches rank above slug-prefix matches, which rank above
	// any other substring match
	query := `SELECT name, slug FROM stations
						WHERE name ILIKE $1 OR slug ILIKE $1
						ORDER BY
							CASE
								WHEN name ILIKE $2 THEN 1
								WHEN slug ILIKE $2 THEN 2
								ELSE 3
							END,
							name
						LIMIT $3`
	rows, err := r.db.Query(ctx, query, "%"+search+"%", search+"%", limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	suggestions := make([]transit.StationSummary, 0, limit)
	for rows.Next() {
		summary := transit.StationSummary{}
		if err := rows.Scan(&summary.Name, &summary.Slug); err != nil {
			return nil, err
		}
		suggestions = append(suggestions, summary)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}

	return suggestions, nil
}

func (r *StationRepository) All(ctx context.Context) ([]transit.Station, error) {
	query := `SELECT id, name, slug, zone, accessibility FROM stations ORDER BY name`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stations := []transit.Station{}
	for rows.Next() {
		station := transit.Station{}
		if err := rows.Scan(&station.ID, &station.Name, &station.Slug, &station.Zone, &station.Accessibility); err != nil {
			return nil, err
		}
		stations = append(stations, station)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}

	return stations, nil
}
