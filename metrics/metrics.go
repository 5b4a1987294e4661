// Package metrics defines the Recorder interface the engine and executor
// report into, with a Prometheus implementation and a no-op default.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder receives observations from the orchestration loop and the tool
// executor. Implementations must be safe for concurrent use.
type Recorder interface {
	// ObserveModelCall records one model round trip.
	ObserveModelCall(model string, duration time.Duration, promptTokens, completionTokens int, success bool)
	// ObserveToolExecution records one tool dispatch. errorKind is "none"
	// on success, otherwise the outcome's error kind.
	ObserveToolExecution(tool, errorKind string, duration time.Duration)
	// ObserveTurn records one completed ProcessTurn invocation.
	ObserveTurn(iterations int, duration time.Duration, status string)
}

// NopRecorder discards all observations.
type NopRecorder struct{}

// ObserveModelCall implements Recorder.
func (NopRecorder) ObserveModelCall(string, time.Duration, int, int, bool) {}

// ObserveToolExecution implements Recorder.
func (NopRecorder) ObserveToolExecution(string, string, time.Duration) {}

// ObserveTurn implements Recorder.
func (NopRecorder) ObserveTurn(int, time.Duration, string) {}

// PrometheusRecorder implements Recorder using Prometheus collectors.
type PrometheusRecorder struct {
	modelCalls     *prometheus.CounterVec
	modelDuration  *prometheus.HistogramVec
	modelTokens    *prometheus.CounterVec
	toolExecutions *prometheus.CounterVec
	toolDuration   *prometheus.HistogramVec
	turns          *prometheus.CounterVec
	turnDuration   *prometheus.HistogramVec
	turnIterations prometheus.Histogram
}

// NewPrometheusRecorder registers the collectors with the default registry.
func NewPrometheusRecorder() *PrometheusRecorder {
	return NewPrometheusRecorderWithRegistry(prometheus.DefaultRegisterer)
}

// NewPrometheusRecorderWithRegistry registers the collectors with a caller
// supplied registry. Useful in tests to avoid duplicate registration.
func NewPrometheusRecorderWithRegistry(reg prometheus.Registerer) *PrometheusRecorder {
	factory := promauto.With(reg)
	return &PrometheusRecorder{
		modelCalls: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "assist_model_requests_total",
				Help: "Total number of model requests by model and status",
			},
			[]string{"model", "status"},
		),
		modelDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "assist_model_request_duration_seconds",
				Help:    "Duration of model requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"model"},
		),
		modelTokens: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "assist_model_tokens_total",
				Help: "Total number of tokens used in model requests",
			},
			[]string{"model", "type"},
		),
		toolExecutions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "assist_tool_executions_total",
				Help: "Total number of tool executions by tool and error kind",
			},
			[]string{"tool", "error_kind"},
		),
		toolDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "assist_tool_execution_duration_seconds",
				Help:    "Duration of tool executions in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"tool"},
		),
		turns: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "assist_turns_total",
				Help: "Total number of processed turns by terminal status",
			},
			[]string{"status"},
		),
		turnDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "assist_turn_duration_seconds",
				Help:    "End-to-end duration of processed turns in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"status"},
		),
		turnIterations: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "assist_turn_iterations",
				Help:    "Model round trips needed per processed turn",
				Buckets: []float64{1, 2, 3, 4, 5},
			},
		),
	}
}

// ObserveModelCall implements Recorder.
func (p *PrometheusRecorder) ObserveModelCall(model string, duration time.Duration, promptTokens, completionTokens int, success bool) {
	status := "success"
	if !success {
		status = "error"
	}
	p.modelCalls.WithLabelValues(model, status).Inc()
	p.modelDuration.WithLabelValues(model).Observe(duration.Seconds())
	if promptTokens > 0 {
		p.modelTokens.WithLabelValues(model, "prompt").Add(float64(promptTokens))
	}
	if completionTokens > 0 {
		p.modelTokens.WithLabelValues(model, "completion").Add(float64(completionTokens))
	}
}

// ObserveToolExecution implements Recorder.
func (p *PrometheusRecorder) ObserveToolExecution(tool, errorKind string, duration time.Duration) {
	if errorKind == "" {
		errorKind = "none"
	}
	p.toolExecutions.WithLabelValues(tool, errorKind).Inc()
	p.toolDuration.WithLabelValues(tool).Observe(duration.Seconds())
}

// ObserveTurn implements Recorder.
func (p *PrometheusRecorder) ObserveTurn(iterations int, duration time.Duration, status string) {
	p.turns.WithLabelValues(status).Inc()
	p.turnDuration.WithLabelValues(status).Observe(duration.Seconds())
	p.turnIterations.Observe(float64(iterations))
}
