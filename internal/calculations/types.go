package calculations

import (
	"encoding/json"
	"time"

	"github.com/cloud-ru/mcp-amortization-go/pkg/utils"
)

// DateLayout формат календарной даты (ISO, YYYY-MM-DD)
const DateLayout = "2006-01-02"

// LoanParameters представляет входные параметры одного расчета графика
type LoanParameters struct {
	Principal         float64   `json:"principal"`
	AnnualRatePercent float64   `json:"annual_rate_percent"`
	TermYears         int       `json:"term_years"`
	PaymentsPerYear   int       `json:"payments_per_year"`
	StartDate         time.Time `json:"start_date"`
	ExtraPayment      float64   `json:"extra_payment"`
}

// AmortizationEntry представляет одну запись в графике погашения.
// Все денежные поля округлены до 2 знаков; потребитель не должен их пересчитывать.
type AmortizationEntry struct {
	Period             int       `json:"period"`
	PaymentDate        time.Time `json:"-"`
	StartingBalance    float64   `json:"starting_balance"`
	ScheduledPayment   float64   `json:"scheduled_payment"`
	ExtraPayment       float64   `json:"extra_payment"`
	TotalPayment       float64   `json:"total_payment"`
	Principal          float64   `json:"principal"`
	Interest           float64   `json:"interest"`
	EndingBalance      float64   `json:"ending_balance"`
	CumulativeInterest float64   `json:"cumulative_interest"`
}

// MarshalJSON сериализует дату платежа как YYYY-MM-DD
func (e AmortizationEntry) MarshalJSON() ([]byte, error) {
	type entry AmortizationEntry
	return json.Marshal(struct {
		entry
		PaymentDate string `json:"payment_date"`
	}{
		entry:       entry(e),
		PaymentDate: e.PaymentDate.Format(DateLayout),
	})
}

func (e AmortizationEntry) finite() bool {
	for _, v := range []float64{
		e.StartingBalance, e.ScheduledPayment, e.ExtraPayment, e.TotalPayment,
		e.Principal, e.Interest, e.EndingBalance, e.CumulativeInterest,
	} {
		if !utils.IsFinite(v) {
			return false
		}
	}
	return true
}

// ScheduleSummary представляет сводку по графику погашения
type ScheduleSummary struct {
	Principal         float64 `json:"principal"`
	AnnualRatePercent float64 `json:"annual_rate_percent"`
	ScheduledPayment  float64 `json:"scheduled_payment"`
	ExtraPayment      float64 `json:"extra_payment"`
	NominalPeriods    int     `json:"nominal_periods"`
	Periods           int     `json:"periods"`
	TotalPaid         float64 `json:"total_paid"`
	TotalPrincipal    float64 `json:"total_principal"`
	TotalInterest     float64 `json:"total_interest"`
	TotalExtra        float64 `json:"total_extra"`
	FirstPaymentDate  string  `json:"first_payment_date,omitempty"`
	PayoffDate        string  `json:"payoff_date,omitempty"`
}

// CalculationResult представляет результат расчета графика
type CalculationResult struct {
	Summary  ScheduleSummary     `json:"summary"`
	Schedule []AmortizationEntry `json:"schedule"`
}

// ExtraPaymentComparison сравнивает график без досрочных платежей с ускоренным
type ExtraPaymentComparison struct {
	Baseline       ScheduleSummary `json:"baseline"`
	Accelerated    ScheduleSummary `json:"accelerated"`
	InterestSaved  float64         `json:"interest_saved"`
	PeriodsSaved   int             `json:"periods_saved"`
	Recommendation string          `json:"recommendation"`
}
