package utils

import "math"

// Round2 округляет число до 2 знаков после запятой (половина округляется от нуля).
// Это единственный примитив округления денежных сумм в расчетах графика.
func Round2(value float64) float64 {
	return math.Round(value*100) / 100
}

// IsFinite проверяет, является ли число конечным
func IsFinite(value float64) bool {
	return !math.IsInf(value, 0) && !math.IsNaN(value)
}

// NonNegative возвращает value, если оно неотрицательно, иначе 0
func NonNegative(value float64) float64 {
	if value < 0 {
		return 0
	}
	return value
}
