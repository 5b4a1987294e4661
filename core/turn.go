package core

import "encoding/json"

// Roles used in the working conversation assembled for one invocation.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleTool      = "tool"
)

// ToolCall is a structured request from the model naming a capability and
// its JSON-encoded arguments. The ID must be echoed back on the resulting
// tool turn so the provider can correlate request and result.
type ToolCall struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Arguments json.RawMessage `json:"arguments"`
}

// Turn is one role-tagged message in the working conversation of a single
// invocation. The sequence is append-only: the loop adds assistant turns
// recording tool-call requests and one tool turn per outcome, never
// rewriting earlier entries.
//
// ToolCalls is set on assistant turns that request capability execution.
// ToolCallID and ToolName are set on tool turns carrying an outcome.
type Turn struct {
	Role       string     `json:"role"`
	Content    string     `json:"content"`
	ToolCalls  []ToolCall `json:"tool_calls,omitempty"`
	ToolCallID string     `json:"tool_call_id,omitempty"`
	ToolName   string     `json:"tool_name,omitempty"`
}

// SystemTurn creates a system-role turn.
func SystemTurn(text string) Turn { return Turn{Role: RoleSystem, Content: text} }

// UserTurn creates a user-role turn.
func UserTurn(text string) Turn { return Turn{Role: RoleUser, Content: text} }

// AssistantTurn creates an assistant-role turn, optionally carrying the
// tool calls the model requested alongside (or instead of) text.
func AssistantTurn(text string, calls ...ToolCall) Turn {
	return Turn{Role: RoleAssistant, Content: text, ToolCalls: calls}
}

// ToolTurn creates a tool-role turn carrying an execution outcome payload
// correlated to the originating call id.
func ToolTurn(callID, toolName, payload string) Turn {
	return Turn{Role: RoleTool, Content: payload, ToolCallID: callID, ToolName: toolName}
}
