package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/weatherwise/backend/internal/domain"
)

const (
	// DefaultOpenWeatherURL is the base URL of the OpenWeatherMap 2.5 API
	DefaultOpenWeatherURL = "https://api.openweathermap.org/data/2.5"

	// 24 three-hour slots cover the three forecast days
	forecastSlots = 24
)

// ErrMissingAPIKey is returned by OpenWeatherMap when no key is configured.
var ErrMissingAPIKey = errors.New("openweathermap: no API key configured")

// OpenWeatherMap fetches 3-hour forecast slots from the OpenWeatherMap API
type OpenWeatherMap struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewOpenWeatherMap creates a new OpenWeatherMap source
func NewOpenWeatherMap(apiKey, baseURL string, timeout time.Duration) *OpenWeatherMap {
	if baseURL == "" {
		baseURL = DefaultOpenWeatherURL
	}
	return &OpenWeatherMap{
		apiKey:  apiKey,
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Name returns the provider name
func (p *OpenWeatherMap) Name() string {
	return "OpenWeatherMap"
}

// OpenWeatherForecastResponse represents the OpenWeatherMap /forecast response
type OpenWeatherForecastResponse struct {
	List []struct {
		Main struct {
			Temp    float64 `json:"temp"`
			TempMin float64 `json:"temp_min"`
			TempMax float64 `json:"temp_max"`
		} `json:"main"`
		Weather []struct {
			Main        string `json:"main"`
			Description string `json:"description"`
		} `json:"weather"`
		Wind *struct {
			Speed *float64 `json:"speed"`
		} `json:"wind"`
		DtTxt string `json:"dt_txt"`
	} `json:"list"`
	City struct {
		Name    string `json:"name"`
		Country string `json:"country"`
	} `json:"city"`
}

// FetchSamples fetches the forecast slots for city
func (p *OpenWeatherMap) FetchSamples(ctx context.Context, city string) ([]domain.WeatherSample, error) {
	if p.apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	params := url.Values{}
	params.Set("q", city)
	params.Set("appid", p.apiKey)
	params.Set("cnt", fmt.Sprint(forecastSlots))
	params.Set("units", "metric")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/forecast?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("openweathermap: failed to create request: %w", err)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("openweathermap: failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("openweathermap: API error (status %d): %s", resp.StatusCode, string(body))
	}

	var owResp OpenWeatherForecastResponse
	if err := json.NewDecoder(resp.Body).Decode(&owResp); err != nil {
		return nil, fmt.Errorf("openweathermap: failed to decode response: %w", err)
	}

	samples := make([]domain.WeatherSample, 0, len(owResp.List))
	for _, item := range owResp.List {
		sample := domain.WeatherSample{
			Time:    item.DtTxt,
			TempMin: item.Main.TempMin,
			TempMax: item.Main.TempMax,
		}
		if item.Wind != nil {
			sample.WindSpeed = item.Wind.Speed
		}
		for _, w := range item.Weather {
			sample.Conditions = append(sample.Conditions, w.Main)
		}
		samples = append(samples, sample)
	}

	return samples, nil
}

var _ SampleSource = (*OpenWeatherMap)(nil)
