package calculations

import (
	"math"

	"github.com/cloud-ru/mcp-amortization-go/pkg/utils"
)

const (
	// zeroBalanceTolerance остаток, который считается погашенным
	zeroBalanceTolerance = 0.005
	// maxPeriods предельная длина графика; более длинные сроки считаются некорректными
	maxPeriods = 1 << 20
	// preallocPeriods ограничивает начальную емкость среза записей
	preallocPeriods = 4096
)

// GenerateSchedule рассчитывает график погашения кредита.
// При некорректных параметрах возвращает пустой график (не nil), без ошибки и без частичного результата.
func GenerateSchedule(params LoanParameters) []AmortizationEntry {
	if !validParameters(params) {
		return []AmortizationEntry{}
	}

	r := PeriodicRate(params.AnnualRatePercent, params.PaymentsPerYear)
	n := TotalPeriods(params.TermYears, params.PaymentsPerYear)
	scheduledPayment := ScheduledPayment(params.Principal, r, n)
	if !utils.IsFinite(scheduledPayment) {
		return []AmortizationEntry{}
	}

	extra := 0.0
	if params.ExtraPayment > 0 {
		extra = utils.Round2(params.ExtraPayment)
	}

	schedule := make([]AmortizationEntry, 0, min(n, preallocPeriods))
	balance := params.Principal
	cumI := 0.0

	for i := 1; i <= n && balance > zeroBalanceTolerance; i++ {
		interest := utils.Round2(balance * r)
		basePrincipal := utils.Round2(scheduledPayment - interest)
		total := scheduledPayment + extra

		var principal float64
		if balance < total-interest || i == n {
			// Последний платеж: гасим весь остаток. Условие i == n шире, чем простая
			// проверка остатка: в номинально последнем периоде остаток забирается
			// целиком, иначе округление платежа оставляет несколько копеек долга.
			principal = balance
			total = principal + interest
		} else {
			principal = basePrincipal + extra
		}

		if principal > balance {
			principal = balance
			total = principal + interest
		}

		ending := utils.NonNegative(utils.Round2(balance - principal))
		cumI = utils.Round2(cumI + interest)

		entry := AmortizationEntry{
			Period:             i,
			PaymentDate:        PaymentDate(params.StartDate, params.PaymentsPerYear, i-1),
			StartingBalance:    utils.Round2(balance),
			ScheduledPayment:   scheduledPayment,
			ExtraPayment:       extra,
			TotalPayment:       utils.Round2(total),
			Principal:          utils.Round2(principal),
			Interest:           interest,
			EndingBalance:      ending,
			CumulativeInterest: cumI,
		}
		if !entry.finite() {
			// суммы вышли за пределы float64: частичный график не возвращаем
			return []AmortizationEntry{}
		}
		schedule = append(schedule, entry)

		balance = ending
		if balance <= zeroBalanceTolerance {
			balance = 0
			correctFinalEntry(&schedule[len(schedule)-1])
			break
		}
	}

	return schedule
}

// correctFinalEntry убирает переплату из-за округления в последней записи:
// платеж не может превышать остаток плюс проценты. ScheduledPayment не меняется.
func correctFinalEntry(last *AmortizationEntry) {
	if last.StartingBalance+last.Interest < last.TotalPayment {
		last.TotalPayment = utils.Round2(last.StartingBalance + last.Interest)
		last.Principal = last.StartingBalance
	}
}

func validParameters(p LoanParameters) bool {
	if !utils.IsFinite(p.Principal) || !utils.IsFinite(p.AnnualRatePercent) || !utils.IsFinite(p.ExtraPayment) {
		return false
	}
	if p.Principal <= 0 || p.AnnualRatePercent < 0 || p.TermYears <= 0 || p.PaymentsPerYear <= 0 {
		return false
	}
	if p.TermYears > math.MaxInt/p.PaymentsPerYear || TotalPeriods(p.TermYears, p.PaymentsPerYear) > maxPeriods {
		return false
	}
	return !p.StartDate.IsZero()
}
