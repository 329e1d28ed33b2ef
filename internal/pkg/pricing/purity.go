package pricing

import "math"

// NormalizePurity maps the stored purity value onto a 0-1 fraction. Vendors
// record purity in three ways: a fraction (0.916), karats (18, 22) or a
// percentage (91.6); values above 24 can only be percentages.
func NormalizePurity(raw float64) float64 {
	switch {
	case raw <= 0:
		return 0
	case raw <= 1:
		return raw
	case raw <= 24:
		return raw / 24
	default:
		return raw / 100
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
