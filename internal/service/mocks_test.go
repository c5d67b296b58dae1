package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/weatherwise/backend/internal/domain"
	"github.com/weatherwise/backend/internal/forecast"
)

var testNow = time.Date(2026, 10, 18, 8, 0, 0, 0, time.UTC)

// MockSource implements provider.SampleSource for testing
type MockSource struct {
	mu        sync.Mutex
	fetchFunc func(ctx context.Context, city string) ([]domain.WeatherSample, error)
	callCount int
}

func (m *MockSource) FetchSamples(ctx context.Context, city string) ([]domain.WeatherSample, error) {
	m.mu.Lock()
	m.callCount++
	m.mu.Unlock()
	if m.fetchFunc != nil {
		return m.fetchFunc(ctx, city)
	}
	return nil, nil
}

func (m *MockSource) Name() string {
	return "Mock"
}

func (m *MockSource) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.callCount
}

// MockRepo implements domain.ForecastLogRepository for testing
type MockRepo struct {
	mu      sync.Mutex
	saved   []domain.ForecastLog
	saveErr error
}

func (m *MockRepo) SaveForecastLog(ctx context.Context, entry domain.ForecastLog) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saved = append(m.saved, entry)
	return nil
}

func (m *MockRepo) RecentForecastLogs(ctx context.Context, limit int) ([]domain.ForecastLog, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if limit > len(m.saved) {
		limit = len(m.saved)
	}
	return append([]domain.ForecastLog(nil), m.saved[:limit]...), nil
}

func (m *MockRepo) Health(ctx context.Context) error {
	return nil
}

func (m *MockRepo) Saved() []domain.ForecastLog {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.ForecastLog(nil), m.saved...)
}

var errUpstream = errors.New("connection refused")

func liveSamples() []domain.WeatherSample {
	w := 3.0
	return []domain.WeatherSample{
		{Time: "2026-10-18 09:00:00", TempMin: 11, TempMax: 17, WindSpeed: &w, Conditions: []string{"Clouds"}},
		{Time: "2026-10-19 09:00:00", TempMin: 12, TempMax: 18, WindSpeed: &w, Conditions: []string{"Rain"}},
	}
}

func seededFactory() RandFactory {
	var n uint64
	return func() *rand.Rand {
		n++
		return rand.New(rand.NewPCG(n, n))
	}
}

func newTestWeatherService(src *MockSource) *WeatherService {
	agg := forecast.NewAggregatorWithClock(func() time.Time { return testNow })
	return NewWeatherService(src, agg, seededFactory())
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
