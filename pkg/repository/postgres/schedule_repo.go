package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dernier-metro/dernier-metro/pkg/transit"
)

type ScheduleRepository struct {
	db *pgxpool.Pool
}

func NewScheduleRepository(db *pgxpool.Pool) *ScheduleRepository {
	return &ScheduleRepository{
		db: db,
	}
}

func (r *ScheduleRepository) Find(ctx context.Context, lineCode string, dayType transit.DayType) (*transit.ServiceCalendar, error) {
	query := `SELECT ml.code, ss.day_type,
							to_char(ss.service_start, 'HH24:MI'),
							to_char(ss.service_end, 'HH24:MI'),
							to_char(ss.last_train_window_start, 'HH24:MI'),
							ss.headway_minutes
						FROM service_schedules ss
						JOIN metro_lines ml ON ss.line_id = ml.id
						WHERE ml.code = $1 AND ss.day_type = $2`

	var rowDayType, start, end, window string
	calendar := &transit.ServiceCalendar{}
	err := r.db.QueryRow(ctx, query, lineCode, string(dayType)).
		Scan(&calendar.LineCode, &rowDayType, &start, &end, &window, &calendar.HeadwayMinutes)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, transit.ErrCalendarNotFound
	}
	if err != nil {
		return nil, err
	}

	calendar.DayType = transit.DayType(rowDayType)

	if calendar.ServiceStart, err = transit.ParseClockTime(start); err != nil {
		return nil, err
	}
	if calendar.ServiceEnd, err = transit.ParseClockTime(end); err != nil {
		return nil, err
	}
	if calendar.LastTrainWindowStart, err = transit.ParseClockTime(window); err != nil {
		return nil, err
	}

	return calendar, nil
}
