package tool

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func testSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"query": map[string]any{"type": "string"},
		},
		"required": []string{"query"},
	}
}

func echoTool(name string) *FuncTool {
	return NewFuncTool(name, "echoes its query argument", testSchema(),
		func(_ context.Context, _ string, args map[string]any) (any, error) {
			return map[string]any{"echo": args["query"]}, nil
		},
	)
}

// -------------------- FuncTool --------------------

func TestFuncTool_Basics(t *testing.T) {
	ft := echoTool("echo")
	assert.Equal(t, "echo", ft.Name())
	assert.Equal(t, "echoes its query argument", ft.Description())
	assert.True(t, ft.AllowedForUser("anyone"))

	out, err := ft.Execute(context.Background(), "u1", map[string]any{"query": "ping"})
	assert.NoError(t, err)
	assert.Equal(t, map[string]any{"echo": "ping"}, out)
}

func TestFuncTool_WithAuthorize(t *testing.T) {
	ft := NewFuncTool("restricted", "admin only", testSchema(),
		func(_ context.Context, _ string, _ map[string]any) (any, error) { return nil, nil },
		WithAuthorize(func(userID string) bool { return userID == "admin" }),
	)
	assert.True(t, ft.AllowedForUser("admin"))
	assert.False(t, ft.AllowedForUser("guest"))
}

// -------------------- Registry --------------------

func TestRegistry_RegisterAndGet(t *testing.T) {
	r := NewRegistry(echoTool("a"), echoTool("b"))

	got, ok := r.Get("a")
	assert.True(t, ok)
	assert.Equal(t, "a", got.Name())

	_, ok = r.Get("missing")
	assert.False(t, ok)
	assert.Equal(t, 2, r.Len())
}

func TestRegistry_AllPreservesRegistrationOrder(t *testing.T) {
	r := NewRegistry(echoTool("c"), echoTool("a"), echoTool("b"))

	var names []string
	for _, tl := range r.All() {
		names = append(names, tl.Name())
	}
	assert.Equal(t, []string{"c", "a", "b"}, names)
}

func TestRegistry_DuplicateNameLastWriteWins(t *testing.T) {
	first := NewFuncTool("dup", "first", testSchema(),
		func(_ context.Context, _ string, _ map[string]any) (any, error) { return "first", nil })
	second := NewFuncTool("dup", "second", testSchema(),
		func(_ context.Context, _ string, _ map[string]any) (any, error) { return "second", nil })

	r := NewRegistry(echoTool("other"), first, second)

	got, ok := r.Get("dup")
	assert.True(t, ok)
	assert.Equal(t, "second", got.Description())
	// Overwrite keeps the original catalog position and does not grow the set.
	assert.Equal(t, 2, r.Len())
	assert.Equal(t, "dup", r.All()[1].Name())
}

// -------------------- Sanitizer --------------------

func TestSanitizeErrorMessage(t *testing.T) {
	assert.Equal(t, "Unknown error", SanitizeErrorMessage(""))

	// Filesystem paths are stripped.
	out := SanitizeErrorMessage("open failed: /var/lib/app/secrets.yaml missing")
	assert.NotContains(t, out, "/var/lib")

	// Source references are stripped.
	out = SanitizeErrorMessage("panic in handler.go:42 while serving")
	assert.NotContains(t, out, "handler.go:42")

	// SQL fragments are stripped.
	out = SanitizeErrorMessage("SQL error: syntax near SELECT")
	assert.NotContains(t, strings.ToLower(out), "sql")

	// Length cap with ellipsis.
	out = SanitizeErrorMessage(strings.Repeat("e", 500))
	assert.Len(t, out, 203)
	assert.True(t, strings.HasSuffix(out, "..."))

	// A message that sanitizes to nothing gets the generic text.
	assert.Equal(t, "Operation failed", SanitizeErrorMessage("/etc/passwd"))
}
