package normalize

import "math"

// Round1 rounds to 1 decimal place. Used for rates and scores; the dashboard
// depends on exact rounding for display.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// Round3 rounds to 3 decimal places. Used for SVI means and point values.
func Round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}

// Round4 rounds to 4 decimal places. Used for point and station coordinates.
func Round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
