package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dernier-metro/dernier-metro/pkg/apilog"
)

type APILogRepository struct {
	db *pgxpool.Pool
}

func NewAPILogRepository(db *pgxpool.Pool) *APILogRepository {
	return &APILogRepository{
		db: db,
	}
}

func (r *APILogRepository) Record(ctx context.Context, entry apilog.Entry) error {
	query := `INSERT INTO api_logs (method, path, status_code, duration_ms, user_agent, ip_address, query_params, response_data)
						VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	var queryParams any
	if len(entry.QueryParams) > 0 {
		queryParams = entry.QueryParams
	}
	var response any
	if len(entry.Response) > 0 {
		response = string(entry.Response)
	}

	_, err := r.db.Exec(ctx, query,
		entry.Method, entry.Path, entry.StatusCode, entry.DurationMS,
		nullable(entry.UserAgent), nullable(entry.IPAddress), queryParams, response)

	return err
}

func nullable(value string) any {
	if value == "" {
		return nil
	}
	return value
}
