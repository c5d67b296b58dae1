package provider

import (
	"context"

	"github.com/weatherwise/backend/internal/domain"
)

// SampleSource fetches the raw forecast samples for a city.
type SampleSource interface {
	// FetchSamples returns the samples in upstream time order
	FetchSamples(ctx context.Context, city string) ([]domain.WeatherSample, error)

	// Name returns the source's name
	Name() string
}
