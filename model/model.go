// Package model defines the provider-neutral request/response shapes and
// the minimal Model interface the orchestration loop drives. Adapters for
// concrete providers live in the openai and anthropic subpackages.
//
// The interface is deliberately non-streaming: the loop's iterations are
// inherently sequential (iteration n+1 depends on the output of iteration
// n), so each call produces exactly one complete response.
package model

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/blinkchat/assist/core"
)

// ToolDefinition declaratively exposes a callable capability to the model.
// Parameters is a JSON Schema object (draft agnostic, minimal subset).
type ToolDefinition struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Parameters  map[string]any `json:"parameters"`
}

// Request captures the normalized model input produced by the engine.
type Request struct {
	Turns     []core.Turn      `json:"turns"`
	Tools     []ToolDefinition `json:"tools,omitempty"`
	MaxTokens int              `json:"max_tokens"`
}

// TokenUsage captures token usage statistics for a response.
type TokenUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// Response is the model's answer to one request: either final text, or a
// batch of tool calls to execute, or (from a misbehaving provider)
// neither.
type Response struct {
	Content   string          `json:"content"`
	ToolCalls []core.ToolCall `json:"tool_calls,omitempty"`
	Usage     *TokenUsage     `json:"usage,omitempty"`
}

// Info contains metadata about a model implementation.
type Info struct {
	Name          string `json:"name"`
	Provider      string `json:"provider"` // "openai", "anthropic", "mock", ...
	SupportsTools bool   `json:"supports_tools"`
}

// Model is the minimal interface required to drive generation.
type Model interface {
	Generate(ctx context.Context, req Request) (*Response, error)

	// Info returns information about the model implementation.
	Info() Info
}

// MockModel is a lightweight in-memory Model useful for tests and
// examples. Canned text responses are keyed by the last user turn;
// canned tool calls are served once each, in order.
type MockModel struct {
	info      Info
	responses map[string]string
	toolCalls [][]core.ToolCall
	fallback  string
}

// NewMockModel constructs a MockModel with tool support enabled.
func NewMockModel(name string) *MockModel {
	return &MockModel{
		info: Info{
			Name:          name,
			Provider:      "mock",
			SupportsTools: true,
		},
		responses: make(map[string]string),
	}
}

// AddResponse registers a deterministic canned completion for an input.
func (m *MockModel) AddResponse(prompt, response string) { m.responses[prompt] = response }

// QueueToolCalls enqueues a tool-call batch returned by the next Generate
// call ahead of any text response. IDs are filled in when absent.
func (m *MockModel) QueueToolCalls(calls ...core.ToolCall) {
	for i := range calls {
		if calls[i].ID == "" {
			calls[i].ID = "call_" + uuid.NewString()[:8]
		}
	}
	m.toolCalls = append(m.toolCalls, calls)
}

// SetFallback sets the response used when no canned completion matches.
func (m *MockModel) SetFallback(response string) { m.fallback = response }

// Generate implements Model.
func (m *MockModel) Generate(ctx context.Context, req Request) (*Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(req.Turns) == 0 {
		return nil, fmt.Errorf("no turns provided")
	}

	if len(m.toolCalls) > 0 {
		batch := m.toolCalls[0]
		m.toolCalls = m.toolCalls[1:]
		return &Response{ToolCalls: batch}, nil
	}

	var input string
	for i := len(req.Turns) - 1; i >= 0; i-- {
		if req.Turns[i].Role == core.RoleUser {
			input = req.Turns[i].Content
			break
		}
	}
	response := m.responses[input]
	if response == "" {
		response = m.fallback
	}
	if response == "" {
		response = fmt.Sprintf("Mock response to: %s", strings.TrimSpace(input))
	}
	return &Response{Content: response}, nil
}

// Info implements Model.
func (m *MockModel) Info() Info { return m.info }
