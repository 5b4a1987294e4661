package tool

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/blinkchat/assist/internal/util"
	"github.com/blinkchat/assist/logging"
	"github.com/blinkchat/assist/metrics"
)

// Executor defaults.
const (
	DefaultWorkers = 4
	DefaultTimeout = 30 * time.Second
)

// User-facing outcome messages. Kept generic on purpose: execution detail
// is logged, never surfaced.
const (
	msgToolNotFound     = "The requested action is not available."
	msgToolUnauthorized = "You don't have permission to perform this action."
	msgToolFailed       = "Unable to complete the action. Please try again."
	msgToolTimeout      = "Operation timed out. Please try again."
)

// ExecutorOptions configure an Executor instance.
type ExecutorOptions struct {
	// Workers bounds the dedicated tool worker pool. The pool is distinct
	// from whatever serves the orchestration loop, so one hanging tool
	// cannot starve new conversations.
	Workers int
	// Timeout is the hard wall-clock limit for a single tool execution.
	Timeout time.Duration
	Logger  logging.Logger
	Metrics metrics.Recorder
}

// Executor runs capabilities from a Registry on a bounded worker pool.
// Execute never returns an error: every failure mode is converted into an
// Outcome with a sanitized message, so the orchestration loop can feed it
// back to the model as a tool turn.
type Executor struct {
	registry *Registry
	jobs     chan job
	timeout  time.Duration
	logger   logging.Logger
	metrics  metrics.Recorder
	done     chan struct{}
	closeOne sync.Once
}

type job struct {
	ctx    context.Context
	tool   Tool
	userID string
	args   map[string]any
	result chan jobResult
}

type jobResult struct {
	value any
	err   error
}

// NewExecutor constructs an Executor and starts its worker pool.
func NewExecutor(registry *Registry, optFns ...func(o *ExecutorOptions)) *Executor {
	opts := ExecutorOptions{
		Workers: DefaultWorkers,
		Timeout: DefaultTimeout,
		Logger:  logging.NoOpLogger{},
		Metrics: metrics.NopRecorder{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Workers <= 0 {
		opts.Workers = DefaultWorkers
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}

	e := &Executor{
		registry: registry,
		jobs:     make(chan job),
		timeout:  opts.Timeout,
		logger:   opts.Logger,
		metrics:  opts.Metrics,
		done:     make(chan struct{}),
	}
	for i := 0; i < opts.Workers; i++ {
		go e.worker()
	}
	return e
}

// Close stops the worker pool. In-flight executions finish; workers that
// are stuck in a blocking tool are abandoned with their goroutine.
func (e *Executor) Close() {
	e.closeOne.Do(func() { close(e.done) })
}

// Execute looks up, authorizes, validates and runs a tool under the pool's
// timeout. It never returns an error.
func (e *Executor) Execute(ctx context.Context, userID, toolName, argumentsJSON string) Outcome {
	start := time.Now()

	if strings.TrimSpace(userID) == "" {
		return errorOutcome(ErrorKindInvalidArguments, "User ID is required")
	}
	if strings.TrimSpace(toolName) == "" {
		return errorOutcome(ErrorKindInvalidArguments, "Tool name is required")
	}

	t, ok := e.registry.Get(toolName)
	if !ok {
		e.logger.Warn("tool not found", "tool", toolName, "user_id", userID)
		e.observe(toolName, ErrorKindNotFound, start)
		return errorOutcome(ErrorKindNotFound, msgToolNotFound)
	}

	if !t.AllowedForUser(userID) {
		e.logger.Warn("unauthorized tool access", "tool", toolName, "user_id", userID)
		e.observe(toolName, ErrorKindUnauthorized, start)
		return errorOutcome(ErrorKindUnauthorized, msgToolUnauthorized)
	}

	args, err := parseArguments(argumentsJSON)
	if err != nil {
		e.logger.Warn("invalid tool arguments", "tool", toolName, "error", err.Error())
		e.observe(toolName, ErrorKindInvalidArguments, start)
		return errorOutcome(ErrorKindInvalidArguments, "Invalid input: "+SanitizeErrorMessage(err.Error()))
	}
	if schema := t.InputSchema(); schema != nil {
		if err := util.ValidateParameters(args, schema); err != nil {
			e.logger.Warn("tool argument validation failed", "tool", toolName, "error", err.Error())
			e.observe(toolName, ErrorKindInvalidArguments, start)
			return errorOutcome(ErrorKindInvalidArguments, "Invalid input: "+SanitizeErrorMessage(err.Error()))
		}
	}

	outcome := e.dispatch(ctx, t, userID, args)
	e.observe(toolName, outcome.ErrorKind, start)
	if outcome.Success {
		e.logger.Info("tool execution completed", "tool", toolName, "user_id", userID, "duration_ms", time.Since(start).Milliseconds())
	}
	return outcome
}

// dispatch submits the job to the pool and waits for a result or the
// deadline. The result channel is buffered so an abandoned worker can
// still deliver (and discard) its result after a timeout.
func (e *Executor) dispatch(ctx context.Context, t Tool, userID string, args map[string]any) Outcome {
	jobCtx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	j := job{
		ctx:    jobCtx,
		tool:   t,
		userID: userID,
		args:   args,
		result: make(chan jobResult, 1),
	}

	select {
	case e.jobs <- j:
	case <-jobCtx.Done():
		return e.deadlineOutcome(t.Name(), jobCtx)
	}

	select {
	case r := <-j.result:
		if r.err != nil {
			e.logger.Error("tool execution failed", "tool", t.Name(), "error", r.err.Error())
			return errorOutcome(ErrorKindExecutionFailed, msgToolFailed)
		}
		return successOutcome(r.value)
	case <-jobCtx.Done():
		return e.deadlineOutcome(t.Name(), jobCtx)
	}
}

func (e *Executor) deadlineOutcome(toolName string, jobCtx context.Context) Outcome {
	if jobCtx.Err() == context.DeadlineExceeded {
		e.logger.Error("tool execution timed out", "tool", toolName, "timeout", e.timeout.String())
		return errorOutcome(ErrorKindTimeout, msgToolTimeout)
	}
	e.logger.Warn("tool execution canceled", "tool", toolName)
	return errorOutcome(ErrorKindExecutionFailed, msgToolFailed)
}

func (e *Executor) worker() {
	for {
		select {
		case <-e.done:
			return
		case j := <-e.jobs:
			j.result <- e.run(j)
		}
	}
}

// run executes the tool with panic recovery so a misbehaving capability
// cannot take down the pool.
func (e *Executor) run(j job) (res jobResult) {
	defer func() {
		if r := recover(); r != nil {
			res = jobResult{err: fmt.Errorf("tool %s panicked: %v", j.tool.Name(), r)}
		}
	}()
	value, err := j.tool.Execute(j.ctx, j.userID, j.args)
	return jobResult{value: value, err: err}
}

func (e *Executor) observe(toolName string, kind ErrorKind, start time.Time) {
	errorKind := "none"
	if kind != "" {
		errorKind = string(kind)
	}
	e.metrics.ObserveToolExecution(toolName, errorKind, time.Since(start))
}

func parseArguments(argumentsJSON string) (map[string]any, error) {
	if strings.TrimSpace(argumentsJSON) == "" {
		return map[string]any{}, nil
	}
	var args map[string]any
	if err := json.Unmarshal([]byte(argumentsJSON), &args); err != nil {
		return nil, fmt.Errorf("invalid JSON arguments: %w", err)
	}
	if args == nil {
		args = map[string]any{}
	}
	return args, nil
}
