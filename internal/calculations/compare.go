package calculations

import (
	"fmt"

	"github.com/cloud-ru/mcp-amortization-go/pkg/utils"
)

// CompareExtraPayment сравнивает график без досрочных платежей с графиком,
// где каждый период вносится params.ExtraPayment сверх аннуитета
func CompareExtraPayment(params LoanParameters) (*ExtraPaymentComparison, error) {
	if params.ExtraPayment <= 0 {
		return nil, fmt.Errorf("extra_payment: для сравнения нужен досрочный платеж > 0")
	}

	baselineParams := params
	baselineParams.ExtraPayment = 0

	baseline := Calculate(baselineParams)
	accelerated := Calculate(params)
	if len(baseline.Schedule) == 0 || len(accelerated.Schedule) == 0 {
		return nil, fmt.Errorf("некорректные параметры кредита")
	}

	interestSaved := utils.Round2(baseline.Summary.TotalInterest - accelerated.Summary.TotalInterest)
	periodsSaved := baseline.Summary.Periods - accelerated.Summary.Periods

	var recommendation string
	switch {
	case periodsSaved > 0:
		recommendation = fmt.Sprintf(
			"Досрочный платеж %.2f сокращает срок на %d периодов и экономит %.2f процентов. Кредит будет погашен %s вместо %s.",
			accelerated.Summary.ExtraPayment, periodsSaved, interestSaved,
			accelerated.Summary.PayoffDate, baseline.Summary.PayoffDate)
	case interestSaved > 0:
		recommendation = fmt.Sprintf(
			"Досрочный платеж %.2f не сокращает число периодов, но экономит %.2f процентов.",
			accelerated.Summary.ExtraPayment, interestSaved)
	default:
		recommendation = "Досрочный платеж не дает экономии по процентам."
	}

	return &ExtraPaymentComparison{
		Baseline:       baseline.Summary,
		Accelerated:    accelerated.Summary,
		InterestSaved:  interestSaved,
		PeriodsSaved:   periodsSaved,
		Recommendation: recommendation,
	}, nil
}
