package forecast

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/weatherwise/backend/internal/domain"
	"github.com/weatherwise/backend/pkg/utils"
)

const (
	// MaxDays is the number of daily summaries a forecast carries at most.
	MaxDays = 3

	msToMph    = 2.237
	dateLayout = "2006-01-02"
)

// Accepted sample timestamp layouts, tried in order
var sampleLayouts = []string{
	"2006-01-02 15:04:05",
	time.RFC3339,
}

// Aggregator turns raw samples into daily summaries. It holds no mutable
// state and is safe for concurrent use.
type Aggregator struct {
	now func() time.Time
}

// NewAggregator creates an aggregator stamping results with the wall clock.
func NewAggregator() *Aggregator {
	return &Aggregator{now: time.Now}
}

// NewAggregatorWithClock creates an aggregator using now for timestamps and
// for the first synthetic date.
func NewAggregatorWithClock(now func() time.Time) *Aggregator {
	return &Aggregator{now: now}
}

type dayBucket struct {
	date    string
	samples []domain.WeatherSample
}

// Aggregate groups samples by calendar date in first-seen order and reduces
// the first MaxDays dates into summaries. A single unparseable timestamp
// fails the whole call.
func (a *Aggregator) Aggregate(samples []domain.WeatherSample, city string) (domain.ForecastResult, error) {
	buckets, err := groupByDate(samples)
	if err != nil {
		return domain.ForecastResult{}, err
	}

	forecasts := make([]domain.DailySummary, 0, len(buckets))
	for _, b := range buckets {
		forecasts = append(forecasts, summarize(b))
	}

	return domain.ForecastResult{
		City:      city,
		Forecasts: forecasts,
		Timestamp: a.now(),
		Offline:   false,
	}, nil
}

// groupByDate keeps at most MaxDays buckets. Samples of a later date are
// dropped, but every timestamp is still validated.
func groupByDate(samples []domain.WeatherSample) ([]dayBucket, error) {
	buckets := make([]dayBucket, 0, MaxDays)
	index := make(map[string]int, MaxDays)

	for i, s := range samples {
		date, err := sampleDate(s.Time)
		if err != nil {
			return nil, fmt.Errorf("forecast: sample %d: %w", i, err)
		}

		if pos, ok := index[date]; ok {
			buckets[pos].samples = append(buckets[pos].samples, s)
			continue
		}
		if len(buckets) >= MaxDays {
			continue
		}
		index[date] = len(buckets)
		buckets = append(buckets, dayBucket{date: date, samples: []domain.WeatherSample{s}})
	}

	return buckets, nil
}

// sampleDate returns the date part of ts without any timezone conversion
func sampleDate(ts string) (string, error) {
	for _, layout := range sampleLayouts {
		if t, err := time.Parse(layout, ts); err == nil {
			return t.Format(dateLayout), nil
		}
	}
	return "", fmt.Errorf("%w: timestamp %q", domain.ErrMalformedSample, ts)
}

func summarize(b dayBucket) domain.DailySummary {
	high := math.Inf(-1)
	low := math.Inf(1)
	wind := 0.0
	var hasRain, hasThunderstorm bool

	for _, s := range b.samples {
		high = math.Max(high, s.TempMax)
		low = math.Min(low, s.TempMin)

		// missing wind counts as calm
		speed := 0.0
		if s.WindSpeed != nil {
			speed = *s.WindSpeed * msToMph
		}
		wind = math.Max(wind, speed)

		hasRain = hasRain || hasCondition(s.Conditions, "rain")
		hasThunderstorm = hasThunderstorm || hasCondition(s.Conditions, "thunderstorm")
	}

	return newSummary(b.date, high, low, wind, hasRain, hasThunderstorm)
}

func hasCondition(conditions []string, want string) bool {
	for _, c := range conditions {
		if strings.Contains(strings.ToLower(c), want) {
			return true
		}
	}
	return false
}

// newSummary is shared by the live and synthetic paths. Advisories are
// derived from the unrounded values.
func newSummary(date string, high, low, windMph float64, hasRain, hasThunderstorm bool) domain.DailySummary {
	return domain.DailySummary{
		Date:            date,
		HighTemp:        utils.RoundTo(high, 1),
		LowTemp:         utils.RoundTo(low, 1),
		WindSpeed:       utils.RoundTo(windMph, 1),
		HasRain:         hasRain,
		HasThunderstorm: hasThunderstorm,
		Recommendations: Recommend(high, hasRain, hasThunderstorm, windMph),
	}
}
