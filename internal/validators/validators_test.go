package validators

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cloud-ru/mcp-amortization-go/internal/config"
)

func testConfig() *config.Config {
	return &config.Config{
		MaxPrincipal:       1e9,
		MaxRate:            200,
		MaxTermYears:       50,
		MaxPaymentsPerYear: 365,
		MaxExtraPayment:    1e8,
	}
}

func TestValidators(t *testing.T) {
	cfg := testConfig()

	tests := []struct {
		name      string
		validator func(*config.Config, interface{}) error
		value     interface{}
		wantError bool
	}{
		{
			name:      "valid principal",
			validator: func(cfg *config.Config, v interface{}) error { return CheckPrincipal(cfg, v.(float64)) },
			value:     2000000.0,
			wantError: false,
		},
		{
			name:      "invalid principal zero",
			validator: func(cfg *config.Config, v interface{}) error { return CheckPrincipal(cfg, v.(float64)) },
			value:     0.0,
			wantError: true,
		},
		{
			name:      "invalid principal too large",
			validator: func(cfg *config.Config, v interface{}) error { return CheckPrincipal(cfg, v.(float64)) },
			value:     2e9,
			wantError: true,
		},
		{
			name:      "invalid principal NaN",
			validator: func(cfg *config.Config, v interface{}) error { return CheckPrincipal(cfg, v.(float64)) },
			value:     math.NaN(),
			wantError: true,
		},
		{
			name:      "valid zero rate",
			validator: func(cfg *config.Config, v interface{}) error { return CheckRate(cfg, v.(float64)) },
			value:     0.0,
			wantError: false,
		},
		{
			name:      "invalid rate negative",
			validator: func(cfg *config.Config, v interface{}) error { return CheckRate(cfg, v.(float64)) },
			value:     -1.0,
			wantError: true,
		},
		{
			name:      "valid term",
			validator: func(cfg *config.Config, v interface{}) error { return CheckTermYears(cfg, v.(int)) },
			value:     30,
			wantError: false,
		},
		{
			name:      "invalid term zero",
			validator: func(cfg *config.Config, v interface{}) error { return CheckTermYears(cfg, v.(int)) },
			value:     0,
			wantError: true,
		},
		{
			name:      "valid biweekly frequency",
			validator: func(cfg *config.Config, v interface{}) error { return CheckPaymentsPerYear(cfg, v.(int)) },
			value:     26,
			wantError: false,
		},
		{
			name:      "invalid frequency too large",
			validator: func(cfg *config.Config, v interface{}) error { return CheckPaymentsPerYear(cfg, v.(int)) },
			value:     366,
			wantError: true,
		},
		{
			name:      "valid zero extra",
			validator: func(cfg *config.Config, v interface{}) error { return CheckExtraPayment(cfg, v.(float64)) },
			value:     0.0,
			wantError: false,
		},
		{
			name:      "invalid negative extra",
			validator: func(cfg *config.Config, v interface{}) error { return CheckExtraPayment(cfg, v.(float64)) },
			value:     -5.0,
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.validator(cfg, tt.value)
			if (err != nil) != tt.wantError {
				t.Errorf("validator error = %v, wantError %v", err, tt.wantError)
			}
		})
	}
}

func validRequest() LoanRequest {
	return LoanRequest{
		Principal:         2000000,
		AnnualRatePercent: 3,
		TermYears:         5,
		PaymentsPerYear:   12,
		StartDate:         "2024-01-01",
	}
}

func TestLoanRequest_Validate(t *testing.T) {
	cfg := testConfig()

	tests := []struct {
		name    string
		mutate  func(*LoanRequest)
		wantMsg string
	}{
		{"valid", func(r *LoanRequest) {}, ""},
		{"zero principal", func(r *LoanRequest) { r.Principal = 0 }, "principal"},
		{"negative rate", func(r *LoanRequest) { r.AnnualRatePercent = -1 }, "annual_rate_percent"},
		{"zero term", func(r *LoanRequest) { r.TermYears = 0 }, "term_years"},
		{"zero frequency", func(r *LoanRequest) { r.PaymentsPerYear = 0 }, "payments_per_year"},
		{"missing start date", func(r *LoanRequest) { r.StartDate = "" }, "start_date"},
		{"impossible start date", func(r *LoanRequest) { r.StartDate = "2024-02-30" }, "start_date"},
		{"wrong date format", func(r *LoanRequest) { r.StartDate = "01/02/2024" }, "start_date"},
		{"negative extra", func(r *LoanRequest) { r.ExtraPayment = -10 }, "extra_payment"},
		{"term above config limit", func(r *LoanRequest) { r.TermYears = 51 }, "term_years"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(&req)

			err := req.Validate(cfg)
			if tt.wantMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidInput))
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestLoanRequest_Parameters(t *testing.T) {
	req := validRequest()
	req.ExtraPayment = 500

	params, err := req.Parameters()
	require.NoError(t, err)

	assert.Equal(t, 2000000.0, params.Principal)
	assert.Equal(t, 12, params.PaymentsPerYear)
	assert.Equal(t, 500.0, params.ExtraPayment)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), params.StartDate)
}

func TestParseStartDate(t *testing.T) {
	got, err := ParseStartDate(" 2024-02-29 ")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), got)

	_, err = ParseStartDate("2023-02-29")
	assert.ErrorIs(t, err, ErrInvalidInput)
}
