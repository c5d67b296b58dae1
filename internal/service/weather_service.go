package service

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/weatherwise/backend/internal/domain"
	"github.com/weatherwise/backend/internal/forecast"
	"github.com/weatherwise/backend/internal/provider"
)

// DefaultFetchTimeout bounds one live fetch, including any rate limiter wait
const DefaultFetchTimeout = 15 * time.Second

// RandFactory returns a fresh random source for one synthetic forecast
type RandFactory func() *rand.Rand

// NewTimeSeededRand seeds a PCG generator from the wall clock
func NewTimeSeededRand() *rand.Rand {
	seed := uint64(time.Now().UnixNano())
	return rand.New(rand.NewPCG(seed, rand.Uint64()))
}

// WeatherService handles weather forecast fetching
type WeatherService struct {
	source     provider.SampleSource
	aggregator *forecast.Aggregator
	newRand    RandFactory

	fetchTimeout time.Duration
}

// NewWeatherService creates a new weather service
func NewWeatherService(source provider.SampleSource, aggregator *forecast.Aggregator, newRand RandFactory) *WeatherService {
	if newRand == nil {
		newRand = NewTimeSeededRand
	}
	return &WeatherService{
		source:       source,
		aggregator:   aggregator,
		newRand:      newRand,
		fetchTimeout: DefaultFetchTimeout,
	}
}

// WithFetchTimeout sets the deadline for one live fetch. Non-positive values
// keep the current timeout.
func (s *WeatherService) WithFetchTimeout(d time.Duration) *WeatherService {
	if d > 0 {
		s.fetchTimeout = d
	}
	return s
}

// GetForecast returns a synthetic forecast when offline is set and the live
// forecast otherwise. Live failures are returned, never replaced by fallback
// data: errors wrap domain.ErrFetchFailed or domain.ErrMalformedSample.
func (s *WeatherService) GetForecast(ctx context.Context, city string, offline bool) (domain.ForecastResult, error) {
	if offline {
		return s.GetFallback(city), nil
	}
	return s.LiveForecast(ctx, city)
}

// LiveForecast fetches samples for city and aggregates them
func (s *WeatherService) LiveForecast(ctx context.Context, city string) (domain.ForecastResult, error) {
	fetchCtx, cancel := context.WithTimeout(ctx, s.fetchTimeout)
	defer cancel()

	samples, err := s.source.FetchSamples(fetchCtx, city)
	if err != nil {
		return domain.ForecastResult{}, fmt.Errorf("weather: %s: %w: %w", s.source.Name(), domain.ErrFetchFailed, err)
	}

	result, err := s.aggregator.Aggregate(samples, city)
	if err != nil {
		return domain.ForecastResult{}, fmt.Errorf("weather: %w", err)
	}
	return result, nil
}

// GetFallback returns a synthetic forecast for city. It always succeeds.
func (s *WeatherService) GetFallback(city string) domain.ForecastResult {
	return s.aggregator.Synthesize(city, forecast.DefaultSynthDays, s.newRand())
}
