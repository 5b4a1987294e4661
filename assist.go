// Package assist provides a high-level façade over the orchestration
// engine and its collaborators (tool registry, executor, chat store,
// routing and budgeting). Most applications interact with this package by:
//  1. Creating an Assist via New() with a model and a chat store
//  2. Registering capabilities (tools.Catalog or custom tool.Tool values)
//  3. Calling ProcessTurn per inbound user message
//
// The façade delegates orchestration to engine.Engine while keeping setup
// ergonomics concise. All defaults are safe for local development; durable
// stores, Prometheus metrics and a structured logger are supplied by
// production deployments.
package assist

import (
	"context"
	"time"

	"github.com/blinkchat/assist/core"
	"github.com/blinkchat/assist/engine"
	"github.com/blinkchat/assist/logging"
	"github.com/blinkchat/assist/metrics"
	"github.com/blinkchat/assist/model"
	"github.com/blinkchat/assist/tool"
)

// Options configures the Assist instance.
type Options struct {
	// Registry holds the capability catalog. Defaults to an empty registry.
	Registry *tool.Registry
	// ExecutorWorkers and ExecutorTimeout size the dedicated tool worker
	// pool. Zero values take the executor defaults.
	ExecutorWorkers int
	ExecutorTimeout time.Duration
	// Profiles resolves caller context for the system prompt (optional).
	Profiles core.ProfileProvider
	// Logger defaults to NoOp; Metrics defaults to the no-op recorder.
	Logger  logging.Logger
	Metrics metrics.Recorder
}

// Assist is the high-level façade aggregating the engine and its services.
type Assist struct {
	registry *tool.Registry
	executor *tool.Executor
	engine   *engine.Engine
}

// New creates an Assist instance around a model and a chat store.
func New(m model.Model, store core.ChatStore, optFns ...func(o *Options)) (*Assist, error) {
	opts := Options{
		Registry: tool.NewRegistry(),
		Logger:   logging.NoOpLogger{},
		Metrics:  metrics.NopRecorder{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	executor := tool.NewExecutor(opts.Registry, func(o *tool.ExecutorOptions) {
		if opts.ExecutorWorkers > 0 {
			o.Workers = opts.ExecutorWorkers
		}
		if opts.ExecutorTimeout > 0 {
			o.Timeout = opts.ExecutorTimeout
		}
		o.Logger = opts.Logger
		o.Metrics = opts.Metrics
	})

	eng, err := engine.New(m, store, func(o *engine.Options) {
		o.Registry = opts.Registry
		o.Executor = executor
		o.Profiles = opts.Profiles
		o.Logger = opts.Logger
		o.Metrics = opts.Metrics
	})
	if err != nil {
		executor.Close()
		return nil, err
	}

	return &Assist{
		registry: opts.Registry,
		executor: executor,
		engine:   eng,
	}, nil
}

// RegisterTool adds a capability to the registry. Safe to call while
// requests are in flight.
func (a *Assist) RegisterTool(t tool.Tool) { a.registry.Register(t) }

// RegisterTools adds several capabilities at once.
func (a *Assist) RegisterTools(tools ...tool.Tool) {
	for _, t := range tools {
		a.registry.Register(t)
	}
}

// ProcessTurn handles one user message and returns the assistant's reply.
func (a *Assist) ProcessTurn(ctx context.Context, userID, conversationID, userMessage string) (string, error) {
	return a.engine.ProcessTurn(ctx, userID, conversationID, userMessage)
}

// Close releases the tool worker pool.
func (a *Assist) Close() { a.executor.Close() }
