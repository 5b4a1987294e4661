package engine

import (
	"errors"
	"fmt"
)

// Fatal loop conditions. Tool failures never appear here: they are
// recovered inside the loop as tool-role turns.
var (
	// ErrEmptyModelResponse indicates the model returned neither text nor
	// tool calls.
	ErrEmptyModelResponse = errors.New("model returned neither content nor tool calls")

	// ErrIterationBudgetExceeded indicates the loop hit its round-trip
	// ceiling without producing final text.
	ErrIterationBudgetExceeded = errors.New("iteration budget exceeded without final response")
)

// ConfigError indicates the engine was constructed or configured in a way
// that cannot serve requests (e.g. missing provider credentials). Never
// retried internally.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("engine configuration error: %s", e.Reason)
}

// ProviderError wraps a model-call failure (network, HTTP, provider-side).
// Fatal for the invocation; any retry policy lives in the provider client.
type ProviderError struct {
	Err error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("model provider error: %v", e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }

// User-facing fallback messages. Internal detail is logged, never shown.
const (
	msgServiceUnavailable = "AI service is temporarily unavailable. Please try again later."
	msgRequestTooComplex  = "Request too complex. Please simplify and try again."
)

// UserMessage maps a ProcessTurn error to safe user-facing text.
func UserMessage(err error) string {
	if errors.Is(err, ErrIterationBudgetExceeded) {
		return msgRequestTooComplex
	}
	return msgServiceUnavailable
}
