package utils

import "math"

// RoundWithTwoDecimalPlace arredonda para duas casas, usado em probabilidades, scores e valores monetários
func RoundWithTwoDecimalPlace(f float64) float64 {
	if f == 0 || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}

	return math.Round(f*100) / 100
}
