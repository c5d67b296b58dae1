package provider

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"

	"github.com/weatherwise/backend/internal/domain"
)

// RateLimitedSource wraps a SampleSource with rate limiting
type RateLimitedSource struct {
	source  SampleSource
	limiter *rate.Limiter
	name    string
}

// NewRateLimitedSource creates a new rate limited sample source
// rps is the maximum requests per second allowed (can be fractional for less than 1 request per second)
// burst is the maximum burst size allowed
func NewRateLimitedSource(source SampleSource, rps float64, burst int) *RateLimitedSource {
	return &RateLimitedSource{
		source:  source,
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
		name:    fmt.Sprintf("%s [Rate Limited]", source.Name()),
	}
}

// FetchSamples waits for limiter permission, then forwards to the wrapped source
func (r *RateLimitedSource) FetchSamples(ctx context.Context, city string) ([]domain.WeatherSample, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait canceled: %w", err)
	}
	return r.source.FetchSamples(ctx, city)
}

// Name returns the source name
func (r *RateLimitedSource) Name() string {
	return r.name
}

var _ SampleSource = (*RateLimitedSource)(nil)
