package forecast

import (
	"math/rand/v2"

	"github.com/weatherwise/backend/internal/domain"
)

// Synthetic weather ranges
const (
	synthMinHigh     = 20.0 // °C
	synthHighSpan    = 25.0 // high in [20, 45)
	synthMinSpread   = 5.0  // low is at least 5 °C below high
	synthSpreadSpan  = 10.0
	synthMaxWindMph  = 15.0
	synthStormChance = 0.2
	DefaultSynthDays = MaxDays
)

// Synthesize generates dayCount days of random weather starting today,
// drawing only from rng. A non-positive dayCount means DefaultSynthDays.
func (a *Aggregator) Synthesize(city string, dayCount int, rng *rand.Rand) domain.ForecastResult {
	if dayCount <= 0 {
		dayCount = DefaultSynthDays
	}

	now := a.now()
	forecasts := make([]domain.DailySummary, 0, dayCount)
	for i := 0; i < dayCount; i++ {
		high := synthMinHigh + rng.Float64()*synthHighSpan
		low := high - synthMinSpread - rng.Float64()*synthSpreadSpan
		wind := rng.Float64() * synthMaxWindMph
		hasRain := rng.IntN(2) == 1
		hasThunderstorm := rng.Float64() < synthStormChance

		date := now.AddDate(0, 0, i).Format(dateLayout)
		forecasts = append(forecasts, newSummary(date, high, low, wind, hasRain, hasThunderstorm))
	}

	return domain.ForecastResult{
		City:      city,
		Forecasts: forecasts,
		Timestamp: now,
		Offline:   true,
	}
}
