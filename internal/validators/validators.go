package validators

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/cloud-ru/mcp-amortization-go/internal/calculations"
	"github.com/cloud-ru/mcp-amortization-go/internal/config"
	"github.com/cloud-ru/mcp-amortization-go/pkg/utils"
)

// ErrInvalidInput оборачивает все ошибки валидации входных параметров
var ErrInvalidInput = errors.New("неверные параметры")

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func structValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// LoanRequest содержит параметры кредита в том виде, в каком они приходят от клиента
type LoanRequest struct {
	Principal         float64 `json:"principal" validate:"gt=0"`
	AnnualRatePercent float64 `json:"annual_rate_percent" validate:"gte=0"`
	TermYears         int     `json:"term_years" validate:"gt=0"`
	PaymentsPerYear   int     `json:"payments_per_year" validate:"gt=0"`
	StartDate         string  `json:"start_date" validate:"required,datetime=2006-01-02"`
	ExtraPayment      float64 `json:"extra_payment" validate:"gte=0"`
}

// Validate проверяет запрос: сначала форму полей, затем допустимые диапазоны из конфигурации
func (r LoanRequest) Validate(cfg *config.Config) error {
	if err := structValidator().Struct(r); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			return fmt.Errorf("%w: %s", ErrInvalidInput, describe(fieldErrs))
		}
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	checks := []error{
		CheckPrincipal(cfg, r.Principal),
		CheckRate(cfg, r.AnnualRatePercent),
		CheckTermYears(cfg, r.TermYears),
		CheckPaymentsPerYear(cfg, r.PaymentsPerYear),
		CheckExtraPayment(cfg, r.ExtraPayment),
	}
	for _, err := range checks {
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
	}
	return nil
}

// Parameters преобразует проверенный запрос в параметры расчета
func (r LoanRequest) Parameters() (calculations.LoanParameters, error) {
	start, err := ParseStartDate(r.StartDate)
	if err != nil {
		return calculations.LoanParameters{}, err
	}
	return calculations.LoanParameters{
		Principal:         r.Principal,
		AnnualRatePercent: r.AnnualRatePercent,
		TermYears:         r.TermYears,
		PaymentsPerYear:   r.PaymentsPerYear,
		StartDate:         start,
		ExtraPayment:      r.ExtraPayment,
	}, nil
}

// ParseStartDate разбирает дату первого платежа в формате YYYY-MM-DD
func ParseStartDate(value string) (time.Time, error) {
	start, err := time.Parse(calculations.DateLayout, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: start_date: ожидается дата в формате YYYY-MM-DD, получено %q", ErrInvalidInput, value)
	}
	return start, nil
}

func describe(errs validator.ValidationErrors) string {
	parts := make([]string, 0, len(errs))
	for _, fe := range errs {
		var msg string
		switch fe.Tag() {
		case "required":
			msg = "обязательное поле"
		case "gt":
			msg = "значение должно быть > " + fe.Param()
		case "gte":
			msg = "значение должно быть ≥ " + fe.Param()
		case "datetime":
			msg = "ожидается дата в формате YYYY-MM-DD"
		default:
			msg = "некорректное значение"
		}
		parts = append(parts, fmt.Sprintf("%s: %s", jsonName(fe.Field()), msg))
	}
	return strings.Join(parts, "; ")
}

var jsonNames = map[string]string{
	"Principal":         "principal",
	"AnnualRatePercent": "annual_rate_percent",
	"TermYears":         "term_years",
	"PaymentsPerYear":   "payments_per_year",
	"StartDate":         "start_date",
	"ExtraPayment":      "extra_payment",
}

func jsonName(field string) string {
	if name, ok := jsonNames[field]; ok {
		return name
	}
	return field
}

// ValidatePositiveNumber проверяет, что число конечное и в допустимом диапазоне
func ValidatePositiveNumber(name string, value float64, minInclusive, maxInclusive float64) error {
	if !utils.IsFinite(value) {
		return fmt.Errorf("%s: значение не является конечным числом", name)
	}
	if value < minInclusive {
		return fmt.Errorf("%s: значение должно быть ≥ %g", name, minInclusive)
	}
	if value > maxInclusive {
		return fmt.Errorf("%s: значение слишком велико (>%g)", name, maxInclusive)
	}
	return nil
}

// ValidateIntRange проверяет, что целое число в допустимом диапазоне
func ValidateIntRange(name string, value int, minInclusive, maxInclusive int) error {
	if value < minInclusive || value > maxInclusive {
		return fmt.Errorf("%s: значение должно быть в диапазоне [%d; %d]", name, minInclusive, maxInclusive)
	}
	return nil
}

// CheckPrincipal проверяет сумму кредита
func CheckPrincipal(cfg *config.Config, principal float64) error {
	return ValidatePositiveNumber("principal", principal, 0.01, cfg.MaxPrincipal)
}

// CheckRate проверяет годовую процентную ставку
func CheckRate(cfg *config.Config, rate float64) error {
	return ValidatePositiveNumber("annual_rate_percent", rate, 0.0, cfg.MaxRate)
}

// CheckTermYears проверяет срок кредита в годах
func CheckTermYears(cfg *config.Config, years int) error {
	return ValidateIntRange("term_years", years, 1, cfg.MaxTermYears)
}

// CheckPaymentsPerYear проверяет число платежей в году
func CheckPaymentsPerYear(cfg *config.Config, perYear int) error {
	return ValidateIntRange("payments_per_year", perYear, 1, cfg.MaxPaymentsPerYear)
}

// CheckExtraPayment проверяет ежепериодный досрочный платеж
func CheckExtraPayment(cfg *config.Config, extra float64) error {
	return ValidatePositiveNumber("extra_payment", extra, 0.0, cfg.MaxExtraPayment)
}
