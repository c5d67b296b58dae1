package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/weatherwise/backend/internal/cache"
	"github.com/weatherwise/backend/internal/domain"
)

// ForecastOrchestrator decides where a forecast comes from: cache, live
// provider, or synthetic fallback. End users always get a renderable forecast.
type ForecastOrchestrator struct {
	weatherSvc *WeatherService
	cache      *cache.ForecastCache
	repo       ForecastLogRepository
	logger     *slog.Logger
	now        func() time.Time

	wgBg sync.WaitGroup // tracks background goroutines for graceful shutdown
}

// NewForecastOrchestrator creates a new orchestrator. forecastCache may be
// nil to disable caching.
func NewForecastOrchestrator(
	weatherSvc *WeatherService,
	forecastCache *cache.ForecastCache,
	repo ForecastLogRepository,
	logger *slog.Logger,
) *ForecastOrchestrator {
	return &ForecastOrchestrator{
		weatherSvc: weatherSvc,
		cache:      forecastCache,
		repo:       repo,
		logger:     logger,
		now:        time.Now,
	}
}

// WaitBackground blocks until all background save goroutines complete.
// Call during graceful shutdown to avoid dropped writes.
func (o *ForecastOrchestrator) WaitBackground() {
	o.wgBg.Wait()
}

// Forecast returns the forecast for city and where it came from
// (domain.SourceLive, SourceCache or SourceFallback).
func (o *ForecastOrchestrator) Forecast(ctx context.Context, city string, offline bool) (domain.ForecastResult, string) {
	servedAt := o.now()
	result, source := o.resolve(ctx, city, offline)
	o.record(result, source, servedAt)
	return result, source
}

func (o *ForecastOrchestrator) resolve(ctx context.Context, city string, offline bool) (domain.ForecastResult, string) {
	if offline {
		return o.weatherSvc.GetFallback(city), domain.SourceFallback
	}

	if o.cache != nil {
		if cached, ok := o.cache.Get(city); ok {
			return cached, domain.SourceCache
		}
	}

	result, err := o.weatherSvc.GetForecast(ctx, city, false)
	if err != nil {
		o.logger.Warn("live forecast failed, using fallback", "city", city, "error", err)
		return o.weatherSvc.GetFallback(city), domain.SourceFallback
	}

	if o.cache != nil {
		o.cache.Put(city, result)
	}
	return result, domain.SourceLive
}

// record persists the request log asynchronously (tracked for graceful shutdown)
func (o *ForecastOrchestrator) record(result domain.ForecastResult, source string, servedAt time.Time) {
	entry := domain.NewForecastLog(result, source, servedAt)

	o.wgBg.Add(1)
	go func() {
		defer o.wgBg.Done()
		bgCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := o.repo.SaveForecastLog(bgCtx, entry); err != nil {
			o.logger.Error("failed to save forecast log", "city", entry.City, "error", err)
		}
	}()
}

// RecentRequests returns the newest request log entries
func (o *ForecastOrchestrator) RecentRequests(ctx context.Context, limit int) ([]domain.ForecastLog, error) {
	return o.repo.RecentForecastLogs(ctx, limit)
}

// Health checks the request log store
func (o *ForecastOrchestrator) Health(ctx context.Context) error {
	return o.repo.Health(ctx)
}
