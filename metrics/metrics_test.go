package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrometheusRecorder_Observations(t *testing.T) {
	reg := prometheus.NewRegistry()
	rec := NewPrometheusRecorderWithRegistry(reg)

	rec.ObserveModelCall("gpt-4o", 80*time.Millisecond, 120, 40, true)
	rec.ObserveModelCall("gpt-4o", 90*time.Millisecond, 100, 0, false)
	rec.ObserveToolExecution("web_search", "none", 15*time.Millisecond)
	rec.ObserveToolExecution("web_search", "TIMEOUT", 30*time.Second)
	rec.ObserveTurn(2, 500*time.Millisecond, "success")

	families, err := reg.Gather()
	require.NoError(t, err)

	names := make(map[string]bool, len(families))
	for _, mf := range families {
		names[mf.GetName()] = true
	}
	for _, expected := range []string{
		"assist_model_requests_total",
		"assist_model_request_duration_seconds",
		"assist_model_tokens_total",
		"assist_tool_executions_total",
		"assist_tool_execution_duration_seconds",
		"assist_turns_total",
		"assist_turn_duration_seconds",
		"assist_turn_iterations",
	} {
		assert.True(t, names[expected], "missing metric %s", expected)
	}

	assert.Equal(t, float64(1), testutil.ToFloat64(
		rec.toolExecutions.WithLabelValues("web_search", "TIMEOUT")))
	assert.Equal(t, float64(1), testutil.ToFloat64(
		rec.turns.WithLabelValues("success")))
}

func TestNopRecorderIsSafe(t *testing.T) {
	var rec Recorder = NopRecorder{}
	rec.ObserveModelCall("m", time.Second, 1, 1, true)
	rec.ObserveToolExecution("t", "none", time.Second)
	rec.ObserveTurn(1, time.Second, "success")
}
