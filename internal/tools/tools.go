package tools

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/cloud-ru/mcp-amortization-go/internal/calculations"
	"github.com/cloud-ru/mcp-amortization-go/internal/config"
	"github.com/cloud-ru/mcp-amortization-go/internal/metrics"
	"github.com/cloud-ru/mcp-amortization-go/internal/validators"
)

// Имена инструментов
const (
	AmortizationScheduleTool = "amortization_schedule"
	AmortizationSummaryTool  = "amortization_summary"
	CompareExtraPaymentTool  = "compare_extra_payment"
)

// ToolHandler представляет обработчик инструмента MCP
type ToolHandler func(ctx context.Context, params map[string]interface{}) (interface{}, error)

// ScheduleResponse ответ инструмента amortization_schedule
type ScheduleResponse struct {
	CalculationID string                           `json:"calculation_id"`
	Summary       calculations.ScheduleSummary     `json:"summary"`
	Schedule      []calculations.AmortizationEntry `json:"schedule"`
}

// SummaryResponse ответ инструмента amortization_summary
type SummaryResponse struct {
	CalculationID string                       `json:"calculation_id"`
	Summary       calculations.ScheduleSummary `json:"summary"`
}

// ComparisonResponse ответ инструмента compare_extra_payment
type ComparisonResponse struct {
	CalculationID string                              `json:"calculation_id"`
	Comparison    calculations.ExtraPaymentComparison `json:"comparison"`
}

// Registry возвращает все инструменты сервиса по именам
func Registry(cfg *config.Config, tracer trace.Tracer, logger *zap.Logger) map[string]ToolHandler {
	return map[string]ToolHandler{
		AmortizationScheduleTool: AmortizationScheduleHandler(cfg, tracer, logger),
		AmortizationSummaryTool:  AmortizationSummaryHandler(cfg, tracer, logger),
		CompareExtraPaymentTool:  CompareExtraPaymentHandler(cfg, tracer, logger),
	}
}

// AmortizationScheduleHandler обрабатывает запрос на расчет графика погашения
func AmortizationScheduleHandler(cfg *config.Config, tracer trace.Tracer, logger *zap.Logger) ToolHandler {
	return func(ctx context.Context, params map[string]interface{}) (interface{}, error) {
		return run(ctx, tracer, logger, AmortizationScheduleTool, cfg, params,
			func(id string, loan calculations.LoanParameters) (interface{}, error) {
				result := calculations.Calculate(loan)
				if len(result.Schedule) == 0 {
					return nil, fmt.Errorf("%w: график не может быть построен", validators.ErrInvalidInput)
				}
				metrics.SchedulePeriods.Observe(float64(result.Summary.Periods))
				return &ScheduleResponse{
					CalculationID: id,
					Summary:       result.Summary,
					Schedule:      result.Schedule,
				}, nil
			})
	}
}

// AmortizationSummaryHandler обрабатывает запрос на сводку по графику без самих записей
func AmortizationSummaryHandler(cfg *config.Config, tracer trace.Tracer, logger *zap.Logger) ToolHandler {
	return func(ctx context.Context, params map[string]interface{}) (interface{}, error) {
		return run(ctx, tracer, logger, AmortizationSummaryTool, cfg, params,
			func(id string, loan calculations.LoanParameters) (interface{}, error) {
				result := calculations.Calculate(loan)
				if len(result.Schedule) == 0 {
					return nil, fmt.Errorf("%w: график не может быть построен", validators.ErrInvalidInput)
				}
				metrics.SchedulePeriods.Observe(float64(result.Summary.Periods))
				return &SummaryResponse{
					CalculationID: id,
					Summary:       result.Summary,
				}, nil
			})
	}
}

// CompareExtraPaymentHandler обрабатывает запрос на сравнение графика с досрочными платежами и без них
func CompareExtraPaymentHandler(cfg *config.Config, tracer trace.Tracer, logger *zap.Logger) ToolHandler {
	return func(ctx context.Context, params map[string]interface{}) (interface{}, error) {
		return run(ctx, tracer, logger, CompareExtraPaymentTool, cfg, params,
			func(id string, loan calculations.LoanParameters) (interface{}, error) {
				if loan.ExtraPayment <= 0 {
					return nil, fmt.Errorf("%w: extra_payment: для сравнения нужен досрочный платеж > 0", validators.ErrInvalidInput)
				}
				comparison, err := calculations.CompareExtraPayment(loan)
				if err != nil {
					return nil, err
				}
				metrics.SchedulePeriods.Observe(float64(comparison.Accelerated.Periods))
				return &ComparisonResponse{
					CalculationID: id,
					Comparison:    *comparison,
				}, nil
			})
	}
}

type calculateFunc func(id string, loan calculations.LoanParameters) (interface{}, error)

// run выполняет общий для всех инструментов цикл: спан, метрики, валидация, расчет
func run(ctx context.Context, tracer trace.Tracer, logger *zap.Logger, toolName string,
	cfg *config.Config, params map[string]interface{}, calculate calculateFunc) (interface{}, error) {
	_, span := tracer.Start(ctx, toolName)
	defer span.End()

	id := uuid.NewString()
	log := logger.With(zap.String("tool", toolName), zap.String("calculation_id", id))
	span.SetAttributes(attribute.String("calculation_id", id))

	metrics.APICalls.WithLabelValues("mcp", toolName, "started").Inc()

	fail := func(status, errorType string, err error) (interface{}, error) {
		span.SetAttributes(attribute.String("error", errorType+"_error"))
		span.SetStatus(codes.Error, err.Error())
		metrics.ToolCalls.WithLabelValues(toolName, status).Inc()
		metrics.CalculationErrors.WithLabelValues(toolName, errorType).Inc()
		metrics.APICalls.WithLabelValues("mcp", toolName, "error").Inc()
		log.Warn("расчет не выполнен", zap.String("error_type", errorType), zap.Error(err))
		return nil, err
	}

	req, err := LoanRequestFromParams(params)
	if err != nil {
		return fail("validation_error", "validation", err)
	}

	span.SetAttributes(
		attribute.Float64("principal", req.Principal),
		attribute.Float64("annual_rate_percent", req.AnnualRatePercent),
		attribute.Int("term_years", req.TermYears),
		attribute.Int("payments_per_year", req.PaymentsPerYear),
		attribute.String("start_date", req.StartDate),
		attribute.Float64("extra_payment", req.ExtraPayment),
	)

	if err := req.Validate(cfg); err != nil {
		return fail("validation_error", "validation", err)
	}
	loan, err := req.Parameters()
	if err != nil {
		return fail("validation_error", "validation", err)
	}

	result, err := calculate(id, loan)
	if err != nil {
		if errors.Is(err, validators.ErrInvalidInput) {
			return fail("validation_error", "validation", err)
		}
		return fail("error", "calculation", fmt.Errorf("ошибка при выполнении расчета: %w", err))
	}

	span.SetAttributes(attribute.Bool("success", true))
	metrics.ToolCalls.WithLabelValues(toolName, "success").Inc()
	metrics.APICalls.WithLabelValues("mcp", toolName, "success").Inc()
	log.Debug("расчет выполнен")

	return result, nil
}

// LoanRequestFromParams извлекает параметры кредита из аргументов инструмента.
// extra_payment необязателен; целые поля принимаются как JSON-числа без дробной части.
func LoanRequestFromParams(params map[string]interface{}) (validators.LoanRequest, error) {
	var req validators.LoanRequest
	var err error

	if req.Principal, err = floatParam(params, "principal", true); err != nil {
		return req, err
	}
	if req.AnnualRatePercent, err = floatParam(params, "annual_rate_percent", true); err != nil {
		return req, err
	}
	if req.TermYears, err = intParam(params, "term_years"); err != nil {
		return req, err
	}
	if req.PaymentsPerYear, err = intParam(params, "payments_per_year"); err != nil {
		return req, err
	}
	if req.ExtraPayment, err = floatParam(params, "extra_payment", false); err != nil {
		return req, err
	}

	startDate, ok := params["start_date"].(string)
	if !ok {
		return req, fmt.Errorf("%w: invalid parameter: start_date", validators.ErrInvalidInput)
	}
	req.StartDate = startDate

	return req, nil
}

func floatParam(params map[string]interface{}, name string, required bool) (float64, error) {
	raw, present := params[name]
	if !present || raw == nil {
		if required {
			return 0, fmt.Errorf("%w: invalid parameter: %s", validators.ErrInvalidInput, name)
		}
		return 0, nil
	}
	switch v := raw.(type) {
	case float64:
		return v, nil
	case int:
		return float64(v), nil
	default:
		return 0, fmt.Errorf("%w: invalid parameter: %s", validators.ErrInvalidInput, name)
	}
}

func intParam(params map[string]interface{}, name string) (int, error) {
	f, err := floatParam(params, name, true)
	if err != nil {
		return 0, err
	}
	if f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
		return 0, fmt.Errorf("%w: invalid parameter: %s: ожидается целое число", validators.ErrInvalidInput, name)
	}
	return int(f), nil
}
