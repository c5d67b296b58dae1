package forecast

const (
	highTempThreshold = 40.0 // °C
	highWindThreshold = 10.0 // mph
)

// Advisory texts
const (
	AdviceSunscreen = "Use sunscreen lotion"
	AdviceUmbrella  = "Carry umbrella"
	AdviceWindy     = "It's too windy, watch out!"
	AdviceStorm     = "Don't step out! A Storm is brewing!"
)

// Recommend maps a day's weather signals to advisories. A thunderstorm
// replaces every other advisory.
func Recommend(highTemp float64, hasRain, hasThunderstorm bool, windSpeedMph float64) []string {
	if hasThunderstorm {
		return []string{AdviceStorm}
	}

	recommendations := make([]string, 0, 3)
	if highTemp > highTempThreshold {
		recommendations = append(recommendations, AdviceSunscreen)
	}
	if hasRain {
		recommendations = append(recommendations, AdviceUmbrella)
	}
	if windSpeedMph > highWindThreshold {
		recommendations = append(recommendations, AdviceWindy)
	}
	return recommendations
}
