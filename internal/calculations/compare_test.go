package calculations

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompareExtraPayment(t *testing.T) {
	result, err := CompareExtraPayment(referenceLoan(5000))
	require.NoError(t, err)

	assert.Equal(t, 60, result.Baseline.Periods)
	assert.Equal(t, 53, result.Accelerated.Periods)
	assert.Equal(t, 7, result.PeriodsSaved)
	assert.Equal(t, 20477.39, result.InterestSaved)
	assert.Equal(t, 0.0, result.Baseline.ExtraPayment)
	assert.Equal(t, 5000.0, result.Accelerated.ExtraPayment)
	assert.Contains(t, result.Recommendation, "2028-05-01")
}

func TestCompareExtraPayment_Errors(t *testing.T) {
	t.Run("no extra payment", func(t *testing.T) {
		_, err := CompareExtraPayment(referenceLoan(0))
		assert.Error(t, err)
	})

	t.Run("invalid loan", func(t *testing.T) {
		params := referenceLoan(100)
		params.TermYears = 0
		_, err := CompareExtraPayment(params)
		assert.Error(t, err)
	})
}
