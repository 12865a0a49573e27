package calculations

import (
	"github.com/shopspring/decimal"

	"github.com/cloud-ru/mcp-amortization-go/pkg/utils"
)

// Summarize подводит итоги по готовому графику.
// Суммы накапливаются в decimal, чтобы сотни округленных значений складывались без дрейфа.
func Summarize(params LoanParameters, schedule []AmortizationEntry) ScheduleSummary {
	summary := ScheduleSummary{
		Principal:         utils.Round2(params.Principal),
		AnnualRatePercent: params.AnnualRatePercent,
		Periods:           len(schedule),
	}
	if params.TermYears > 0 && params.PaymentsPerYear > 0 {
		summary.NominalPeriods = TotalPeriods(params.TermYears, params.PaymentsPerYear)
	}
	if len(schedule) == 0 {
		return summary
	}

	var paid, principal, interest, extra decimal.Decimal
	for _, e := range schedule {
		paid = addFinite(paid, e.TotalPayment)
		principal = addFinite(principal, e.Principal)
		interest = addFinite(interest, e.Interest)
		extra = addFinite(extra, e.ExtraPayment)
	}

	first, last := schedule[0], schedule[len(schedule)-1]
	summary.ScheduledPayment = first.ScheduledPayment
	summary.ExtraPayment = first.ExtraPayment
	summary.TotalPaid = paid.Round(2).InexactFloat64()
	summary.TotalPrincipal = principal.Round(2).InexactFloat64()
	summary.TotalInterest = interest.Round(2).InexactFloat64()
	summary.TotalExtra = extra.Round(2).InexactFloat64()
	summary.FirstPaymentDate = first.PaymentDate.Format(DateLayout)
	summary.PayoffDate = last.PaymentDate.Format(DateLayout)

	return summary
}

// addFinite прибавляет v к сумме; NaN и бесконечности пропускаются,
// decimal.NewFromFloat на них паникует
func addFinite(sum decimal.Decimal, v float64) decimal.Decimal {
	if !utils.IsFinite(v) {
		return sum
	}
	return sum.Add(decimal.NewFromFloat(v))
}

// Calculate строит график и сводку по нему
func Calculate(params LoanParameters) CalculationResult {
	schedule := GenerateSchedule(params)
	return CalculationResult{
		Summary:  Summarize(params, schedule),
		Schedule: schedule,
	}
}
