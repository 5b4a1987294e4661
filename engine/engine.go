// Package engine implements the bounded orchestration loop that turns one
// user chat message into zero-or-more tool invocations and a final reply.
//
// One ProcessTurn invocation runs as a single logical sequence: iteration
// n+1 depends on the output of iteration n, so model calls are never
// parallelized. Concurrent invocations for different conversations are
// independent; the engine holds no cross-invocation mutable state beyond
// the read-mostly registry.
package engine

import (
	"context"
	"strings"
	"time"

	"github.com/blinkchat/assist/budget"
	"github.com/blinkchat/assist/core"
	"github.com/blinkchat/assist/logging"
	"github.com/blinkchat/assist/metrics"
	"github.com/blinkchat/assist/model"
	"github.com/blinkchat/assist/router"
	"github.com/blinkchat/assist/tool"
)

// AssistantSenderID identifies messages authored by the assistant in the
// chat store.
const AssistantSenderID = "ai-assistant"

const (
	// Hard ceiling on model round trips per invocation. A tool-call batch
	// consumes one iteration regardless of outcome.
	maxToolIterations = 5

	// History window sizes. Conversational messages need almost no context,
	// so they get a much smaller window.
	maxHistoryMessages            = 20
	conversationalHistoryMessages = 3

	// The most recent messages go into the prompt verbatim; older ones
	// longer than this many characters are truncated to a token budget.
	recentMessagesVerbatim   = 6
	truncationThresholdChars = 200
	truncatedHistoryTokens   = 60

	// Tool outcome payloads are capped before being fed back to the model.
	maxToolResultTokens = 500
)

// Turn status labels reported to metrics.
const (
	statusSuccess         = "success"
	statusProviderError   = "provider_error"
	statusEmptyResponse   = "empty_response"
	statusBudgetExhausted = "budget_exhausted"
	statusStoreError      = "store_error"
)

// Options configure an Engine instance.
type Options struct {
	// Registry holds the available capabilities. Optional; without it the
	// engine runs tool-free.
	Registry *tool.Registry
	// Executor runs routed tool calls. Optional; defaults to a pool over
	// Registry.
	Executor *tool.Executor
	// Profiles resolves caller context for the system prompt. Optional.
	Profiles core.ProfileProvider
	Logger   logging.Logger
	Metrics  metrics.Recorder
	// Counter provides exact prompt-size accounting for logs. Optional;
	// defaults to the heuristic estimator.
	Counter budget.Counter
	// Now overrides the clock, used by tests and the prompt timestamp.
	Now func() time.Time
}

// Engine drives the BUILD_PROMPT, CALL_MODEL, EXECUTE_TOOLS state machine.
type Engine struct {
	model    model.Model
	store    core.ChatStore
	registry *tool.Registry
	executor *tool.Executor
	profiles core.ProfileProvider
	logger   logging.Logger
	metrics  metrics.Recorder
	counter  budget.Counter
	now      func() time.Time
}

// New constructs an Engine. Model and store are required.
func New(m model.Model, store core.ChatStore, optFns ...func(o *Options)) (*Engine, error) {
	if m == nil {
		return nil, &ConfigError{Reason: "model is required"}
	}
	if store == nil {
		return nil, &ConfigError{Reason: "chat store is required"}
	}

	opts := Options{
		Logger:  logging.NoOpLogger{},
		Metrics: metrics.NopRecorder{},
		Counter: budget.HeuristicCounter{},
		Now:     time.Now,
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	if opts.Registry == nil {
		opts.Registry = tool.NewRegistry()
	}
	if opts.Executor == nil {
		opts.Executor = tool.NewExecutor(opts.Registry, func(o *tool.ExecutorOptions) {
			o.Logger = opts.Logger
			o.Metrics = opts.Metrics
		})
	}

	return &Engine{
		model:    m,
		store:    store,
		registry: opts.Registry,
		executor: opts.Executor,
		profiles: opts.Profiles,
		logger:   opts.Logger,
		metrics:  opts.Metrics,
		counter:  opts.Counter,
		now:      opts.Now,
	}, nil
}

// ProcessTurn handles one user message end to end and returns the
// assistant's reply text. The user message is persisted before any model
// call so it survives downstream failures. The routed tool set is fixed
// once from the raw message and not re-evaluated per iteration.
func (e *Engine) ProcessTurn(ctx context.Context, userID, conversationID, userMessage string) (string, error) {
	start := e.now()

	if _, err := e.store.Save(ctx, conversationID, userID, userMessage); err != nil {
		e.metrics.ObserveTurn(0, time.Since(start), statusStoreError)
		return "", &ProviderError{Err: err}
	}

	conversational := router.IsConversational(userMessage)
	routed := router.Route(userMessage, e.registry)
	maxTokens := budget.MaxTokens(userMessage, conversational, len(routed) > 0)

	turns, err := e.buildTurns(ctx, userID, conversationID, userMessage, conversational, routed)
	if err != nil {
		e.metrics.ObserveTurn(0, time.Since(start), statusStoreError)
		return "", &ProviderError{Err: err}
	}

	e.logger.Debug("turn context assembled",
		"conversation_id", conversationID,
		"conversational", conversational,
		"tools", len(routed),
		"max_tokens", maxTokens,
		"prompt_tokens_est", e.promptTokens(turns))

	defs := toolDefinitions(routed)

	for iteration := 1; iteration <= maxToolIterations; iteration++ {
		resp, err := e.generate(ctx, model.Request{Turns: turns, Tools: defs, MaxTokens: maxTokens})
		if err != nil {
			e.metrics.ObserveTurn(iteration, time.Since(start), statusProviderError)
			return "", &ProviderError{Err: err}
		}

		if len(resp.ToolCalls) > 0 {
			turns = append(turns, core.AssistantTurn(resp.Content, resp.ToolCalls...))
			turns = append(turns, e.executeToolCalls(ctx, userID, resp.ToolCalls)...)
			continue
		}

		if text := strings.TrimSpace(resp.Content); text != "" {
			if _, err := e.store.Save(ctx, conversationID, AssistantSenderID, text); err != nil {
				e.metrics.ObserveTurn(iteration, time.Since(start), statusStoreError)
				return "", &ProviderError{Err: err}
			}
			e.metrics.ObserveTurn(iteration, time.Since(start), statusSuccess)
			e.logger.Info("turn completed",
				"conversation_id", conversationID,
				"iterations", iteration,
				"duration_ms", time.Since(start).Milliseconds())
			return text, nil
		}

		e.metrics.ObserveTurn(iteration, time.Since(start), statusEmptyResponse)
		e.logger.Error("empty model response", "conversation_id", conversationID, "iteration", iteration)
		return "", ErrEmptyModelResponse
	}

	e.metrics.ObserveTurn(maxToolIterations, time.Since(start), statusBudgetExhausted)
	e.logger.Error("iteration budget exhausted", "conversation_id", conversationID)
	return "", ErrIterationBudgetExceeded
}

// buildTurns assembles the working conversation: system prompt first, then
// the bounded history window ending with the current user message. History
// older than the most recent few messages is truncated when long.
func (e *Engine) buildTurns(ctx context.Context, userID, conversationID, userMessage string, conversational bool, routed []tool.Tool) ([]core.Turn, error) {
	limit := maxHistoryMessages
	if conversational {
		limit = conversationalHistoryMessages
	}

	history, err := e.store.LoadRecent(ctx, conversationID, limit)
	if err != nil {
		return nil, err
	}

	turns := []core.Turn{core.SystemTurn(e.buildSystemPrompt(ctx, userID, routed))}

	for i, msg := range history {
		body := msg.Body
		if len(history)-i > recentMessagesVerbatim && len(body) > truncationThresholdChars {
			body = budget.Truncate(body, truncatedHistoryTokens)
		}
		if msg.SenderID == AssistantSenderID {
			turns = append(turns, core.AssistantTurn(body))
		} else {
			turns = append(turns, core.UserTurn(body))
		}
	}

	// The current message was persisted before loading; guard against a
	// store that has not surfaced it yet.
	if len(history) == 0 || history[len(history)-1].Body != userMessage {
		turns = append(turns, core.UserTurn(userMessage))
	}

	return turns, nil
}

// executeToolCalls runs a batch sequentially in request order and returns
// one capped tool turn per outcome.
func (e *Engine) executeToolCalls(ctx context.Context, userID string, calls []core.ToolCall) []core.Turn {
	turns := make([]core.Turn, 0, len(calls))
	for _, call := range calls {
		outcome := e.executor.Execute(ctx, userID, call.Name, string(call.Arguments))
		if !outcome.Success {
			e.logger.Warn("tool call failed",
				"tool", call.Name,
				"error_kind", string(outcome.ErrorKind))
		}
		payload := budget.Truncate(outcome.JSON(), maxToolResultTokens)
		turns = append(turns, core.ToolTurn(call.ID, call.Name, payload))
	}
	return turns
}

func (e *Engine) generate(ctx context.Context, req model.Request) (*model.Response, error) {
	start := e.now()
	resp, err := e.model.Generate(ctx, req)

	info := e.model.Info()
	promptTokens, completionTokens := 0, 0
	if err == nil && resp.Usage != nil {
		promptTokens = resp.Usage.PromptTokens
		completionTokens = resp.Usage.CompletionTokens
	}
	e.metrics.ObserveModelCall(info.Name, time.Since(start), promptTokens, completionTokens, err == nil)

	if err != nil {
		e.logger.Error("model call failed", "model", info.Name, "error", err.Error())
		return nil, err
	}
	return resp, nil
}

func (e *Engine) promptTokens(turns []core.Turn) int {
	total := 0
	for _, t := range turns {
		total += e.counter.Count(t.Content)
	}
	return total
}

func toolDefinitions(tools []tool.Tool) []model.ToolDefinition {
	if len(tools) == 0 {
		return nil
	}
	defs := make([]model.ToolDefinition, len(tools))
	for i, t := range tools {
		defs[i] = model.ToolDefinition{
			Name:        t.Name(),
			Description: t.Description(),
			Parameters:  t.InputSchema(),
		}
	}
	return defs
}
