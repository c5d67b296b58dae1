package postgres

import (
	"context"

	"github.com/weatherwise/backend/internal/domain"
)

// MockRepository implements domain.ForecastLogRepository when no database is configured
type MockRepository struct{}

// NewMockRepository creates a new mock repository
func NewMockRepository() *MockRepository {
	return &MockRepository{}
}

// SaveForecastLog is a no-op in mock mode
func (r *MockRepository) SaveForecastLog(ctx context.Context, entry domain.ForecastLog) error {
	return nil
}

// RecentForecastLogs returns no entries in mock mode
func (r *MockRepository) RecentForecastLogs(ctx context.Context, limit int) ([]domain.ForecastLog, error) {
	return []domain.ForecastLog{}, nil
}

// Health always returns nil in mock mode
func (r *MockRepository) Health(ctx context.Context) error {
	return nil
}

var (
	_ domain.ForecastLogRepository = (*MockRepository)(nil)
	_ domain.ForecastLogRepository = (*PostgresRepository)(nil)
)
