package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Forecast sources recorded in the request log
const (
	SourceLive     = "live"
	SourceCache    = "cache"
	SourceFallback = "fallback"
)

// ForecastLog is an audit record of one served forecast. It is never read
// back to build a forecast.
type ForecastLog struct {
	ID       uuid.UUID `json:"id"`
	City     string    `json:"city"`
	Offline  bool      `json:"offline"`
	Days     int       `json:"days"`
	Source   string    `json:"source"`
	ServedAt time.Time `json:"served_at"`
}

// NewForecastLog builds a log entry for a result served from source at
// servedAt. A cached result keeps its original Timestamp, so the two differ.
func NewForecastLog(result ForecastResult, source string, servedAt time.Time) ForecastLog {
	return ForecastLog{
		ID:       uuid.New(),
		City:     result.City,
		Offline:  result.Offline,
		Days:     len(result.Forecasts),
		Source:   source,
		ServedAt: servedAt,
	}
}

// ForecastLogRepository defines the interface for request log persistence
// This follows the Dependency Inversion Principle - domain defines the interface
type ForecastLogRepository interface {
	// SaveForecastLog persists one served forecast
	SaveForecastLog(ctx context.Context, entry ForecastLog) error

	// RecentForecastLogs returns the newest entries first
	RecentForecastLogs(ctx context.Context, limit int) ([]ForecastLog, error)

	// Health checks database connectivity
	Health(ctx context.Context) error
}
