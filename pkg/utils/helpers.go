package utils

import (
	"math"
)

// Clamp limits a value between min and max
func Clamp(value, min, max float64) float64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

// RoundTo rounds a float to specified decimal places
func RoundTo(value float64, places int) float64 {
	factor := math.Pow(10, float64(places))
	return math.Round(value*factor) / factor
}

// Rescale maps value from [lo, hi] onto [0, 1]. A degenerate range
// (hi <= lo) maps everything to 0 so callers never divide by zero.
func Rescale(value, lo, hi float64) float64 {
	span := hi - lo
	if span <= 0 {
		span = 1
	}
	return Clamp((value-lo)/span, 0, 1)
}

// SafeDiv divides a by b, returning 0 when b is zero.
func SafeDiv(a, b float64) float64 {
	if b == 0 {
		return 0
	}
	return a / b
}
