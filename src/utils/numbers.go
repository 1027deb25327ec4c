package utils

import "math"

// Round2 rounds for display. Aggregates are computed on exact values and
// rounded only at the output boundary.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
