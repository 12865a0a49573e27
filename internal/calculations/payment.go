package calculations

import (
	"math"

	"github.com/cloud-ru/mcp-amortization-go/pkg/utils"
)

// PeriodicRate возвращает ставку за один период (доля, не проценты)
func PeriodicRate(annualRatePercent float64, paymentsPerYear int) float64 {
	return annualRatePercent / 100.0 / float64(paymentsPerYear)
}

// TotalPeriods возвращает номинальное число периодов кредита
func TotalPeriods(termYears, paymentsPerYear int) int {
	return termYears * paymentsPerYear
}

// ScheduledPayment рассчитывает аннуитетный платеж P·r / (1 - (1+r)^-n) и округляет его один раз.
// При нулевой ставке (или ставке, неразличимой в float64) платеж равен principal / periods.
func ScheduledPayment(principal, periodicRate float64, periods int) float64 {
	n := float64(periods)
	denominator := 1.0 - math.Pow(1.0+periodicRate, -n)
	if periodicRate == 0.0 || denominator == 0.0 {
		return utils.Round2(principal / n)
	}
	return utils.Round2(principal * periodicRate / denominator)
}
