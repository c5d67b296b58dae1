package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/weatherwise/backend/internal/domain"
)

const schema = `
	CREATE TABLE IF NOT EXISTS forecast_requests (
		id        UUID PRIMARY KEY,
		city      TEXT NOT NULL,
		offline   BOOLEAN NOT NULL,
		days      INTEGER NOT NULL,
		source    TEXT NOT NULL,
		served_at TIMESTAMPTZ NOT NULL
	);
	CREATE INDEX IF NOT EXISTS forecast_requests_served_at_idx ON forecast_requests (served_at DESC);
`

// PostgresRepository implements domain.ForecastLogRepository
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL repository
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// EnsureSchema creates the request log table if it does not exist
func (r *PostgresRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("postgres: failed to create schema: %w", err)
	}
	return nil
}

// SaveForecastLog persists one served forecast to PostgreSQL
func (r *PostgresRepository) SaveForecastLog(ctx context.Context, entry domain.ForecastLog) error {
	query := `
		INSERT INTO forecast_requests (id, city, offline, days, source, served_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.pool.Exec(ctx, query,
		entry.ID, entry.City, entry.Offline, entry.Days, entry.Source, entry.ServedAt,
	)
	if err != nil {
		return fmt.Errorf("postgres: failed to save forecast log: %w", err)
	}

	return nil
}

// RecentForecastLogs retrieves the newest request log entries from PostgreSQL
func (r *PostgresRepository) RecentForecastLogs(ctx context.Context, limit int) ([]domain.ForecastLog, error) {
	query := `
		SELECT id, city, offline, days, source, served_at
		FROM forecast_requests
		ORDER BY served_at DESC
		LIMIT $1
	`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to query forecast logs: %w", err)
	}
	defer rows.Close()

	results := make([]domain.ForecastLog, 0, limit)
	for rows.Next() {
		var l domain.ForecastLog
		err := rows.Scan(&l.ID, &l.City, &l.Offline, &l.Days, &l.Source, &l.ServedAt)
		if err != nil {
			return nil, fmt.Errorf("postgres: failed to scan forecast log row: %w", err)
		}
		results = append(results, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: failed to read forecast logs: %w", err)
	}

	return results, nil
}

// Health checks database connectivity
func (r *PostgresRepository) Health(ctx context.Context) error {
	if err := r.pool.Ping(ctx); err != nil {
		return fmt.Errorf("postgres: health check failed: %w", err)
	}
	return nil
}
