package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cloud-ru/mcp-amortization-go/internal/calculations"
)

func TestRun_Summary(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{
		"-principal", "2000000", "-rate", "3", "-years", "5",
		"-start", "2024-01-01", "-extra", "5000", "-summary",
	}, &stdout, &stderr)

	require.Equal(t, 0, code, stderr.String())

	var summary calculations.ScheduleSummary
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &summary))
	assert.Equal(t, 53, summary.Periods)
	assert.Equal(t, 35937.38, summary.ScheduledPayment)
}

func TestRun_Schedule(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{
		"-principal", "1000", "-rate", "12", "-years", "1", "-start", "2024-01-31",
	}, &stdout, &stderr)

	require.Equal(t, 0, code, stderr.String())

	var result struct {
		Schedule []map[string]interface{} `json:"schedule"`
	}
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &result))
	require.Len(t, result.Schedule, 12)
	assert.Equal(t, "2024-02-29", result.Schedule[1]["payment_date"])
}

func TestRun_InvalidInput(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{"-principal", "0", "-years", "5", "-start", "2024-01-01"}, &stdout, &stderr)

	assert.Equal(t, 1, code)
	assert.Empty(t, stdout.String())
	assert.Contains(t, stderr.String(), "principal")
}
