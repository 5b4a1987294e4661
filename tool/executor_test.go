package tool

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newTestExecutor(t *testing.T, registry *Registry, optFns ...func(o *ExecutorOptions)) *Executor {
	t.Helper()
	e := NewExecutor(registry, optFns...)
	t.Cleanup(e.Close)
	return e
}

func TestExecutor_Success(t *testing.T) {
	e := newTestExecutor(t, NewRegistry(echoTool("echo")))

	outcome := e.Execute(context.Background(), "u1", "echo", `{"query":"ping"}`)
	assert.True(t, outcome.Success)
	assert.Equal(t, map[string]any{"echo": "ping"}, outcome.Result)
	assert.JSONEq(t, `{"echo":"ping"}`, outcome.JSON())
}

func TestExecutor_BlankIdentifiers(t *testing.T) {
	e := newTestExecutor(t, NewRegistry(echoTool("echo")))

	outcome := e.Execute(context.Background(), "  ", "echo", `{"query":"x"}`)
	assert.False(t, outcome.Success)
	assert.Equal(t, ErrorKindInvalidArguments, outcome.ErrorKind)

	outcome = e.Execute(context.Background(), "u1", "", `{}`)
	assert.False(t, outcome.Success)
	assert.Equal(t, ErrorKindInvalidArguments, outcome.ErrorKind)
}

func TestExecutor_ToolNotFound(t *testing.T) {
	e := newTestExecutor(t, NewRegistry())

	outcome := e.Execute(context.Background(), "u1", "missing", `{}`)
	assert.False(t, outcome.Success)
	assert.Equal(t, ErrorKindNotFound, outcome.ErrorKind)
	assert.Equal(t, "The requested action is not available.", outcome.Message)
}

func TestExecutor_Unauthorized(t *testing.T) {
	restricted := NewFuncTool("restricted", "admin only", testSchema(),
		func(_ context.Context, _ string, _ map[string]any) (any, error) { return "ok", nil },
		WithAuthorize(func(userID string) bool { return userID == "admin" }),
	)
	e := newTestExecutor(t, NewRegistry(restricted))

	outcome := e.Execute(context.Background(), "guest", "restricted", `{"query":"x"}`)
	assert.False(t, outcome.Success)
	assert.Equal(t, ErrorKindUnauthorized, outcome.ErrorKind)
}

func TestExecutor_MalformedArguments(t *testing.T) {
	e := newTestExecutor(t, NewRegistry(echoTool("echo")))

	outcome := e.Execute(context.Background(), "u1", "echo", `{"query": unterminated`)
	assert.False(t, outcome.Success)
	assert.Equal(t, ErrorKindInvalidArguments, outcome.ErrorKind)
	assert.True(t, strings.HasPrefix(outcome.Message, "Invalid input:"))
	assert.LessOrEqual(t, len(outcome.Message), len("Invalid input: ")+203)
}

func TestExecutor_SchemaValidation(t *testing.T) {
	e := newTestExecutor(t, NewRegistry(echoTool("echo")))

	// Required "query" missing.
	outcome := e.Execute(context.Background(), "u1", "echo", `{}`)
	assert.False(t, outcome.Success)
	assert.Equal(t, ErrorKindInvalidArguments, outcome.ErrorKind)

	// Wrong type.
	outcome = e.Execute(context.Background(), "u1", "echo", `{"query": 42}`)
	assert.False(t, outcome.Success)
	assert.Equal(t, ErrorKindInvalidArguments, outcome.ErrorKind)
}

func TestExecutor_EmptyArgumentsAllowed(t *testing.T) {
	noArgs := NewFuncTool("noop", "takes nothing",
		map[string]any{"type": "object", "properties": map[string]any{}},
		func(_ context.Context, _ string, _ map[string]any) (any, error) { return "done", nil },
	)
	e := newTestExecutor(t, NewRegistry(noArgs))

	outcome := e.Execute(context.Background(), "u1", "noop", "")
	assert.True(t, outcome.Success)
	assert.Equal(t, "done", outcome.Result)
}

func TestExecutor_ExecutionFailure(t *testing.T) {
	failing := NewFuncTool("failing", "always errors", testSchema(),
		func(_ context.Context, _ string, _ map[string]any) (any, error) {
			return nil, errors.New("backend exploded at /srv/app/main.go:10")
		},
	)
	e := newTestExecutor(t, NewRegistry(failing))

	outcome := e.Execute(context.Background(), "u1", "failing", `{"query":"x"}`)
	assert.False(t, outcome.Success)
	assert.Equal(t, ErrorKindExecutionFailed, outcome.ErrorKind)
	// Internal detail is logged, never surfaced.
	assert.Equal(t, "Unable to complete the action. Please try again.", outcome.Message)
	assert.JSONEq(t, `{"error":"Unable to complete the action. Please try again."}`, outcome.JSON())
}

func TestExecutor_PanicRecovery(t *testing.T) {
	panicking := NewFuncTool("panicking", "panics", testSchema(),
		func(_ context.Context, _ string, _ map[string]any) (any, error) {
			panic("boom")
		},
	)
	e := newTestExecutor(t, NewRegistry(panicking, echoTool("echo")))

	outcome := e.Execute(context.Background(), "u1", "panicking", `{"query":"x"}`)
	assert.False(t, outcome.Success)
	assert.Equal(t, ErrorKindExecutionFailed, outcome.ErrorKind)

	// The pool survives and keeps serving.
	outcome = e.Execute(context.Background(), "u1", "echo", `{"query":"still alive"}`)
	assert.True(t, outcome.Success)
}

func TestExecutor_Timeout(t *testing.T) {
	slow := NewFuncTool("slow", "blocks past the deadline", testSchema(),
		func(ctx context.Context, _ string, _ map[string]any) (any, error) {
			select {
			case <-time.After(5 * time.Second):
				return "too late", nil
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		},
	)
	e := newTestExecutor(t, NewRegistry(slow, echoTool("echo")), func(o *ExecutorOptions) {
		o.Timeout = 50 * time.Millisecond
	})

	start := time.Now()
	outcome := e.Execute(context.Background(), "u1", "slow", `{"query":"x"}`)
	assert.False(t, outcome.Success)
	assert.Equal(t, ErrorKindTimeout, outcome.ErrorKind)
	assert.Equal(t, "Operation timed out. Please try again.", outcome.Message)
	assert.Less(t, time.Since(start), 2*time.Second)

	// A hanging tool does not take the pool down for later calls.
	outcome = e.Execute(context.Background(), "u1", "echo", `{"query":"next"}`)
	assert.True(t, outcome.Success)
}

func TestExecutor_CallerCancellation(t *testing.T) {
	slow := NewFuncTool("slow", "honors cancellation", testSchema(),
		func(ctx context.Context, _ string, _ map[string]any) (any, error) {
			<-ctx.Done()
			return nil, ctx.Err()
		},
	)
	e := newTestExecutor(t, NewRegistry(slow))

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	outcome := e.Execute(ctx, "u1", "slow", `{"query":"x"}`)
	assert.False(t, outcome.Success)
	assert.Equal(t, ErrorKindExecutionFailed, outcome.ErrorKind)
}
