package domain

import (
	"errors"
	"time"
)

var (
	// ErrMalformedSample is returned when a sample cannot be interpreted,
	// e.g. its timestamp does not parse.
	ErrMalformedSample = errors.New("malformed weather sample")

	// ErrFetchFailed is returned when the upstream weather source could not
	// deliver samples for a city.
	ErrFetchFailed = errors.New("weather fetch failed")
)

// WeatherSample is one raw forecast point from the upstream provider,
// typically covering a 3-hour slot.
type WeatherSample struct {
	Time       string   // "2006-01-02 15:04:05" or RFC 3339, as sent upstream
	TempMin    float64  // °C
	TempMax    float64  // °C
	WindSpeed  *float64 // m/s, nil when the slot has no wind reading
	Conditions []string // e.g. "Rain", "Thunderstorm"
}

// DailySummary is the reduction of all samples of one calendar date.
type DailySummary struct {
	Date            string   `json:"date"`
	HighTemp        float64  `json:"highTemp"`
	LowTemp         float64  `json:"lowTemp"`
	WindSpeed       float64  `json:"windSpeed"` // mph
	HasRain         bool     `json:"hasRain"`
	HasThunderstorm bool     `json:"hasThunderstorm"`
	Recommendations []string `json:"recommendations"`
}

// ForecastResult is the forecast served for one request
type ForecastResult struct {
	City      string         `json:"city"`
	Forecasts []DailySummary `json:"forecasts"`
	Timestamp time.Time      `json:"timestamp"`
	Offline   bool           `json:"offline"`
}
