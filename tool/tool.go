// Package tool implements the capability subsystem: the Tool descriptor
// interface advertised to the model, a concurrent name-keyed Registry, and
// a sandboxed Executor that runs capabilities on a bounded worker pool
// with argument validation, authorization checks and a hard timeout.
package tool

import "context"

// Tool is the generic capability interface consumed by the engine. Every
// concrete capability (email, calendar, search, file, messaging, user
// lookup) implements exactly this shape; internals stay opaque to the
// orchestration core.
//
// Tool implementations should:
//   - Provide clear, descriptive snake_case names
//   - Define a JSON schema for their parameters
//   - Be safe for concurrent use; the executor dispatches from a shared pool
//   - Honor ctx cancellation where the underlying work allows it
type Tool interface {
	// Name returns the unique identifier for this tool.
	Name() string

	// Description returns a human-readable description of what this tool
	// does. It is rendered into the capability catalog for the model.
	Description() string

	// InputSchema returns a JSON-Schema-shaped object describing the
	// expected arguments.
	InputSchema() map[string]any

	// Execute runs the tool with already-parsed arguments on behalf of the
	// given user. The returned value must be JSON-serializable.
	Execute(ctx context.Context, userID string, args map[string]any) (any, error)

	// AllowedForUser reports whether the user may invoke this tool.
	AllowedForUser(userID string) bool
}

// FuncTool adapts a plain Go function into a Tool. It has no internal
// mutable state after construction and is safe for concurrent use.
type FuncTool struct {
	name        string
	description string
	schema      map[string]any
	authorize   func(userID string) bool
	fn          func(ctx context.Context, userID string, args map[string]any) (any, error)
}

// FuncToolOption customizes a FuncTool.
type FuncToolOption func(*FuncTool)

// WithAuthorize replaces the default allow-all authorization check.
func WithAuthorize(authorize func(userID string) bool) FuncToolOption {
	return func(t *FuncTool) { t.authorize = authorize }
}

// NewFuncTool constructs a FuncTool from explicit schema and function.
//
// Example:
//
//	clock := tool.NewFuncTool(
//	  "current_time",
//	  "Get the current time",
//	  map[string]any{"type": "object", "properties": map[string]any{}},
//	  func(_ context.Context, _ string, _ map[string]any) (any, error) {
//	    return time.Now().Format(time.RFC3339), nil
//	  },
//	)
func NewFuncTool(
	name, description string,
	schema map[string]any,
	fn func(ctx context.Context, userID string, args map[string]any) (any, error),
	opts ...FuncToolOption,
) *FuncTool {
	t := &FuncTool{
		name:        name,
		description: description,
		schema:      schema,
		authorize:   func(string) bool { return true },
		fn:          fn,
	}
	for _, o := range opts {
		o(t)
	}
	return t
}

// Name returns the unique tool name used in routing and call declarations.
func (t *FuncTool) Name() string { return t.name }

// Description returns the short description exposed to models.
func (t *FuncTool) Description() string { return t.description }

// InputSchema returns the JSON schema describing expected arguments.
func (t *FuncTool) InputSchema() map[string]any { return t.schema }

// AllowedForUser reports whether the user may invoke this tool. Defaults
// to true unless WithAuthorize was supplied.
func (t *FuncTool) AllowedForUser(userID string) bool { return t.authorize(userID) }

// Execute invokes the wrapped function.
func (t *FuncTool) Execute(ctx context.Context, userID string, args map[string]any) (any, error) {
	return t.fn(ctx, userID, args)
}
