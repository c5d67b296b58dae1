package forecast

import (
	"math/rand/v2"
	"reflect"
	"testing"
	"time"
)

func seeded(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func TestSynthesize_ThreeOfflineDays(t *testing.T) {
	agg := NewAggregatorWithClock(fixedClock)

	got := agg.Synthesize("Tokyo", 3, seeded(1))

	if !got.Offline {
		t.Error("Offline = false, want true")
	}
	if got.City != "Tokyo" {
		t.Errorf("City = %q, want %q", got.City, "Tokyo")
	}
	if !got.Timestamp.Equal(fixedNow) {
		t.Errorf("Timestamp = %v, want %v", got.Timestamp, fixedNow)
	}
	want := []string{"2026-10-18", "2026-10-19", "2026-10-20"}
	if !reflect.DeepEqual(dates(got), want) {
		t.Errorf("dates = %v, want %v", dates(got), want)
	}
}

func TestSynthesize_DayCount(t *testing.T) {
	agg := NewAggregatorWithClock(fixedClock)

	tests := []struct {
		name     string
		dayCount int
		want     int
	}{
		{name: "zero uses default", dayCount: 0, want: DefaultSynthDays},
		{name: "negative uses default", dayCount: -2, want: DefaultSynthDays},
		{name: "one", dayCount: 1, want: 1},
		{name: "five", dayCount: 5, want: 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := agg.Synthesize("Lima", tt.dayCount, seeded(7))
			if len(got.Forecasts) != tt.want {
				t.Errorf("len(Forecasts) = %d, want %d", len(got.Forecasts), tt.want)
			}
		})
	}
}

func TestSynthesize_CrossesMonthBoundary(t *testing.T) {
	agg := NewAggregatorWithClock(func() time.Time {
		return time.Date(2026, 12, 31, 23, 0, 0, 0, time.UTC)
	})

	got := agg.Synthesize("Sydney", 3, seeded(3))

	want := []string{"2026-12-31", "2027-01-01", "2027-01-02"}
	if !reflect.DeepEqual(dates(got), want) {
		t.Errorf("dates = %v, want %v", dates(got), want)
	}
}

func TestSynthesize_ValuesWithinRanges(t *testing.T) {
	agg := NewAggregatorWithClock(fixedClock)

	for seed := uint64(0); seed < 200; seed++ {
		got := agg.Synthesize("Madrid", 3, seeded(seed))
		for _, day := range got.Forecasts {
			if day.HighTemp < 20 || day.HighTemp > 45 {
				t.Fatalf("seed %d: HighTemp = %v, want within [20, 45]", seed, day.HighTemp)
			}
			if day.HighTemp-day.LowTemp < 4.9 || day.HighTemp-day.LowTemp > 15.1 {
				t.Fatalf("seed %d: spread = %v, want within [5, 15]", seed, day.HighTemp-day.LowTemp)
			}
			if day.HighTemp < day.LowTemp {
				t.Fatalf("seed %d: HighTemp %v < LowTemp %v", seed, day.HighTemp, day.LowTemp)
			}
			if day.WindSpeed < 0 || day.WindSpeed > 15 {
				t.Fatalf("seed %d: WindSpeed = %v, want within [0, 15]", seed, day.WindSpeed)
			}
			if day.Recommendations == nil {
				t.Fatalf("seed %d: Recommendations = nil", seed)
			}
			if day.HasThunderstorm {
				if !reflect.DeepEqual(day.Recommendations, []string{AdviceStorm}) {
					t.Fatalf("seed %d: storm day advice = %q", seed, day.Recommendations)
				}
				continue
			}
			if contains(day.Recommendations, AdviceUmbrella) != day.HasRain {
				t.Fatalf("seed %d: umbrella advice %q does not match HasRain=%v", seed, day.Recommendations, day.HasRain)
			}
		}
	}
}

func TestSynthesize_DeterministicForSeed(t *testing.T) {
	agg := NewAggregatorWithClock(fixedClock)

	first := agg.Synthesize("Accra", 3, seeded(42))
	second := agg.Synthesize("Accra", 3, seeded(42))

	if !reflect.DeepEqual(first, second) {
		t.Errorf("same seed produced different forecasts:\n%+v\n%+v", first, second)
	}
}

func TestSynthesize_StormAndRainFrequencies(t *testing.T) {
	agg := NewAggregatorWithClock(fixedClock)
	rng := seeded(99)

	var days, storms, rain int
	for i := 0; i < 2000; i++ {
		for _, day := range agg.Synthesize("Quito", 3, rng).Forecasts {
			days++
			if day.HasThunderstorm {
				storms++
			}
			if day.HasRain {
				rain++
			}
		}
	}

	stormRate := float64(storms) / float64(days)
	if stormRate < 0.17 || stormRate > 0.23 {
		t.Errorf("storm rate = %.3f, want about 0.2", stormRate)
	}
	rainRate := float64(rain) / float64(days)
	if rainRate < 0.46 || rainRate > 0.54 {
		t.Errorf("rain rate = %.3f, want about 0.5", rainRate)
	}
}

func contains(list []string, want string) bool {
	for _, s := range list {
		if s == want {
			return true
		}
	}
	return false
}
