package utils

import (
	"math"
)

// RoundTo rounds a float to specified decimal places. Halves round toward
// positive infinity, so -3.25 becomes -3.2.
func RoundTo(value float64, places int) float64 {
	factor := math.Pow(10, float64(places))
	return math.Floor(value*factor+0.5) / factor
}
