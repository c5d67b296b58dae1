package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/weatherwise/backend/internal/cache"
	"github.com/weatherwise/backend/internal/domain"
)

func TestForecastOrchestrator_Live(t *testing.T) {
	src := &MockSource{fetchFunc: func(ctx context.Context, city string) ([]domain.WeatherSample, error) {
		return liveSamples(), nil
	}}
	repo := &MockRepo{}
	o := NewForecastOrchestrator(newTestWeatherService(src), nil, repo, discardLogger())

	got, source := o.Forecast(context.Background(), "London", false)
	o.WaitBackground()

	if source != domain.SourceLive {
		t.Errorf("source = %q, want %q", source, domain.SourceLive)
	}
	if got.Offline {
		t.Error("Offline = true, want false")
	}

	saved := repo.Saved()
	if len(saved) != 1 {
		t.Fatalf("saved logs = %d, want 1", len(saved))
	}
	if saved[0].City != "London" || saved[0].Source != domain.SourceLive || saved[0].Days != 2 || saved[0].Offline {
		t.Errorf("saved log = %+v", saved[0])
	}
}

func TestForecastOrchestrator_FallsBackOnFetchFailure(t *testing.T) {
	src := &MockSource{fetchFunc: func(ctx context.Context, city string) ([]domain.WeatherSample, error) {
		return nil, errUpstream
	}}
	repo := &MockRepo{}
	o := NewForecastOrchestrator(newTestWeatherService(src), nil, repo, discardLogger())

	got, source := o.Forecast(context.Background(), "Lagos", false)
	o.WaitBackground()

	if source != domain.SourceFallback {
		t.Errorf("source = %q, want %q", source, domain.SourceFallback)
	}
	if !got.Offline || got.City != "Lagos" || len(got.Forecasts) != 3 {
		t.Errorf("result = %+v, want offline 3-day forecast for Lagos", got)
	}
}

func TestForecastOrchestrator_FallsBackOnMalformedSamples(t *testing.T) {
	src := &MockSource{fetchFunc: func(ctx context.Context, city string) ([]domain.WeatherSample, error) {
		return []domain.WeatherSample{{Time: "??"}}, nil
	}}
	o := NewForecastOrchestrator(newTestWeatherService(src), nil, &MockRepo{}, discardLogger())

	got, source := o.Forecast(context.Background(), "Lima", false)
	o.WaitBackground()

	if source != domain.SourceFallback || !got.Offline {
		t.Errorf("source = %q offline = %v, want fallback", source, got.Offline)
	}
}

func TestForecastOrchestrator_OfflineRequest(t *testing.T) {
	src := &MockSource{}
	o := NewForecastOrchestrator(newTestWeatherService(src), nil, &MockRepo{}, discardLogger())

	got, source := o.Forecast(context.Background(), "Paris", true)
	o.WaitBackground()

	if source != domain.SourceFallback || !got.Offline {
		t.Errorf("source = %q offline = %v, want fallback", source, got.Offline)
	}
	if src.Calls() != 0 {
		t.Errorf("source calls = %d, want 0", src.Calls())
	}
}

func TestForecastOrchestrator_CachesLiveResults(t *testing.T) {
	src := &MockSource{fetchFunc: func(ctx context.Context, city string) ([]domain.WeatherSample, error) {
		return liveSamples(), nil
	}}
	fc := cache.NewForecastCache(time.Minute, 8)
	repo := &MockRepo{}
	o := NewForecastOrchestrator(newTestWeatherService(src), fc, repo, discardLogger())
	clock := testNow
	o.now = func() time.Time { return clock }

	first, firstSource := o.Forecast(context.Background(), "Berlin", false)
	o.WaitBackground()
	clock = clock.Add(9 * time.Minute)
	second, secondSource := o.Forecast(context.Background(), "Berlin", false)
	o.WaitBackground()

	if firstSource != domain.SourceLive || secondSource != domain.SourceCache {
		t.Errorf("sources = %q, %q; want live, cache", firstSource, secondSource)
	}
	if src.Calls() != 1 {
		t.Errorf("source calls = %d, want 1", src.Calls())
	}
	if !first.Timestamp.Equal(second.Timestamp) || len(first.Forecasts) != len(second.Forecasts) {
		t.Error("cached forecast differs from the live one")
	}

	saved := repo.Saved()
	if len(saved) != 2 {
		t.Fatalf("saved logs = %d, want 2", len(saved))
	}
	if !saved[0].ServedAt.Equal(testNow) {
		t.Errorf("first ServedAt = %v, want %v", saved[0].ServedAt, testNow)
	}
	if !saved[1].ServedAt.Equal(testNow.Add(9 * time.Minute)) {
		t.Errorf("cache hit ServedAt = %v, want the time it was served", saved[1].ServedAt)
	}
	if saved[1].Source != domain.SourceCache {
		t.Errorf("second Source = %q, want %q", saved[1].Source, domain.SourceCache)
	}
}

func TestForecastOrchestrator_DoesNotCacheFallback(t *testing.T) {
	src := &MockSource{fetchFunc: func(ctx context.Context, city string) ([]domain.WeatherSample, error) {
		return nil, errUpstream
	}}
	fc := cache.NewForecastCache(time.Minute, 8)
	o := NewForecastOrchestrator(newTestWeatherService(src), fc, &MockRepo{}, discardLogger())

	o.Forecast(context.Background(), "Cairo", false)
	o.Forecast(context.Background(), "Cairo", false)
	o.Forecast(context.Background(), "Cairo", true)
	o.WaitBackground()

	if src.Calls() != 2 {
		t.Errorf("source calls = %d, want 2", src.Calls())
	}
	if fc.Len() != 0 {
		t.Errorf("cache Len() = %d, want 0", fc.Len())
	}
}

func TestForecastOrchestrator_SaveErrorIsNotSurfaced(t *testing.T) {
	repo := &MockRepo{saveErr: errors.New("db down")}
	o := NewForecastOrchestrator(newTestWeatherService(&MockSource{}), nil, repo, discardLogger())

	got, source := o.Forecast(context.Background(), "Quito", true)
	o.WaitBackground()

	if source != domain.SourceFallback || got.City != "Quito" {
		t.Errorf("Forecast() = %+v, %q", got, source)
	}
}

func TestForecastOrchestrator_RecentRequests(t *testing.T) {
	repo := &MockRepo{}
	o := NewForecastOrchestrator(newTestWeatherService(&MockSource{}), nil, repo, discardLogger())

	o.Forecast(context.Background(), "A", true)
	o.Forecast(context.Background(), "B", true)
	o.WaitBackground()

	got, err := o.RecentRequests(context.Background(), 10)
	if err != nil {
		t.Fatalf("RecentRequests() error = %v", err)
	}
	if len(got) != 2 {
		t.Errorf("len = %d, want 2", len(got))
	}
}
