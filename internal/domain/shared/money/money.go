package money

import "math"

// MaxPrice is the ceiling applied when a property has no configured
// max_price. Mirrors the sentinel used by the channel manager export.
const MaxPrice = 999_999

// Round2 rounds a currency amount to two decimal places. Only quote outputs
// are rounded; intermediate sums stay unrounded so the four adjustment
// categories do not compound rounding error.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Clamp bounds v into [min, max]. Callers pass 0 and MaxPrice for unset
// bounds.
func Clamp(v, min, max float64) float64 {
	return math.Max(min, math.Min(max, v))
}

// Valid reports whether v is a usable currency amount.
func Valid(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
