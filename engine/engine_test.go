package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blinkchat/assist/core"
	"github.com/blinkchat/assist/model"
	"github.com/blinkchat/assist/store"
	"github.com/blinkchat/assist/tool"
)

// scriptedModel returns pre-programmed responses in order and records
// every request it receives.
type scriptedModel struct {
	responses []*model.Response
	err       error
	requests  []model.Request
}

func (m *scriptedModel) Generate(_ context.Context, req model.Request) (*model.Response, error) {
	m.requests = append(m.requests, req)
	if m.err != nil {
		return nil, m.err
	}
	if len(m.responses) == 0 {
		return &model.Response{Content: "fallback"}, nil
	}
	resp := m.responses[0]
	if len(m.responses) > 1 {
		m.responses = m.responses[1:]
	}
	return resp, nil
}

func (m *scriptedModel) Info() model.Info {
	return model.Info{Name: "scripted", Provider: "mock", SupportsTools: true}
}

func newTestEngine(t *testing.T, m model.Model, registry *tool.Registry) (*Engine, *store.InMemoryStore) {
	t.Helper()
	st := store.NewInMemoryStore()
	eng, err := New(m, st, func(o *Options) {
		o.Registry = registry
	})
	require.NoError(t, err)
	return eng, st
}

func sendEmailTool(calls *[]map[string]any) tool.Tool {
	return tool.NewFuncTool(
		"send_email",
		"Send an email.",
		map[string]any{
			"type": "object",
			"properties": map[string]any{
				"to":      map[string]any{"type": "string"},
				"subject": map[string]any{"type": "string"},
				"body":    map[string]any{"type": "string"},
			},
			"required": []string{"to", "subject", "body"},
		},
		func(_ context.Context, _ string, args map[string]any) (any, error) {
			*calls = append(*calls, args)
			return map[string]any{"status": "sent"}, nil
		},
	)
}

// -------------------- Construction --------------------

func TestNew_RequiresModelAndStore(t *testing.T) {
	_, err := New(nil, store.NewInMemoryStore())
	var cfgErr *ConfigError
	assert.ErrorAs(t, err, &cfgErr)

	_, err = New(&scriptedModel{}, nil)
	assert.ErrorAs(t, err, &cfgErr)
}

// -------------------- Direct Replies --------------------

func TestProcessTurn_DirectTextReply(t *testing.T) {
	m := &scriptedModel{responses: []*model.Response{{Content: "  Hello Priya!  "}}}
	eng, st := newTestEngine(t, m, tool.NewRegistry())

	reply, err := eng.ProcessTurn(context.Background(), "u1", "c1", "hello!")
	require.NoError(t, err)
	assert.Equal(t, "Hello Priya!", reply)
	assert.Len(t, m.requests, 1)

	// Both the user message and the assistant reply are persisted.
	history, err := st.LoadRecent(context.Background(), "c1", 10)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "u1", history[0].SenderID)
	assert.Equal(t, "hello!", history[0].Body)
	assert.Equal(t, AssistantSenderID, history[1].SenderID)
	assert.Equal(t, "Hello Priya!", history[1].Body)
}

func TestProcessTurn_ConversationalOmitsToolsAndTightensBudget(t *testing.T) {
	var calls []map[string]any
	registry := tool.NewRegistry(sendEmailTool(&calls))
	m := &scriptedModel{responses: []*model.Response{{Content: "Hey!"}}}
	eng, _ := newTestEngine(t, m, registry)

	_, err := eng.ProcessTurn(context.Background(), "u1", "c1", "hi")
	require.NoError(t, err)

	require.Len(t, m.requests, 1)
	assert.Empty(t, m.requests[0].Tools)
	assert.Equal(t, 200, m.requests[0].MaxTokens)
	assert.Empty(t, calls)
}

func TestProcessTurn_ActionableAdvertisesToolsWithDetailedBudget(t *testing.T) {
	var calls []map[string]any
	registry := tool.NewRegistry(sendEmailTool(&calls))
	m := &scriptedModel{responses: []*model.Response{{Content: "Done."}}}
	eng, _ := newTestEngine(t, m, registry)

	_, err := eng.ProcessTurn(context.Background(), "u1", "c1", "send an email to raj about the demo")
	require.NoError(t, err)

	require.Len(t, m.requests, 1)
	require.Len(t, m.requests[0].Tools, 1)
	assert.Equal(t, "send_email", m.requests[0].Tools[0].Name)
	assert.Equal(t, 1000, m.requests[0].MaxTokens)

	// System prompt renders the capability catalog.
	system := m.requests[0].Turns[0]
	assert.Equal(t, core.RoleSystem, system.Role)
	assert.Contains(t, system.Content, "send_email: Send an email.")

	// Text on iteration 1 means the executor never runs.
	assert.Empty(t, calls)
}

// -------------------- Tool Loop --------------------

func TestProcessTurn_ToolCallThenFinalText(t *testing.T) {
	var calls []map[string]any
	registry := tool.NewRegistry(sendEmailTool(&calls))

	args := `{"to":"raj@example.com","subject":"Demo","body":"See you at 3pm."}`
	m := &scriptedModel{responses: []*model.Response{
		{ToolCalls: []core.ToolCall{{ID: "call_1", Name: "send_email", Arguments: []byte(args)}}},
		{Content: "Email sent to Raj."},
	}}
	eng, st := newTestEngine(t, m, registry)

	reply, err := eng.ProcessTurn(context.Background(), "u1", "c1", "send an email to raj about the demo")
	require.NoError(t, err)
	assert.Equal(t, "Email sent to Raj.", reply)

	// The tool ran once with the parsed arguments.
	require.Len(t, calls, 1)
	assert.Equal(t, "raj@example.com", calls[0]["to"])

	// The second request carries the assistant tool-call turn and the
	// id-correlated tool outcome turn.
	require.Len(t, m.requests, 2)
	turns := m.requests[1].Turns
	last, secondLast := turns[len(turns)-1], turns[len(turns)-2]
	assert.Equal(t, core.RoleAssistant, secondLast.Role)
	require.Len(t, secondLast.ToolCalls, 1)
	assert.Equal(t, "call_1", secondLast.ToolCalls[0].ID)
	assert.Equal(t, core.RoleTool, last.Role)
	assert.Equal(t, "call_1", last.ToolCallID)
	assert.JSONEq(t, `{"status":"sent"}`, last.Content)

	// Only the final text is persisted, not intermediate turns.
	history, err := st.LoadRecent(context.Background(), "c1", 10)
	require.NoError(t, err)
	assert.Len(t, history, 2)
}

func TestProcessTurn_FailedToolFedBackAsErrorPayload(t *testing.T) {
	registry := tool.NewRegistry()
	m := &scriptedModel{responses: []*model.Response{
		{ToolCalls: []core.ToolCall{{ID: "call_1", Name: "nope", Arguments: []byte(`{}`)}}},
		{Content: "Sorry, I can't do that."},
	}}
	eng, _ := newTestEngine(t, m, registry)

	reply, err := eng.ProcessTurn(context.Background(), "u1", "c1", "do the thing with my files please")
	require.NoError(t, err)
	assert.Equal(t, "Sorry, I can't do that.", reply)

	turns := m.requests[1].Turns
	last := turns[len(turns)-1]
	assert.Equal(t, core.RoleTool, last.Role)
	assert.JSONEq(t, `{"error":"The requested action is not available."}`, last.Content)
}

func TestProcessTurn_IterationBudgetExceeded(t *testing.T) {
	var calls []map[string]any
	registry := tool.NewRegistry(sendEmailTool(&calls))

	args := `{"to":"a@b.c","subject":"s","body":"b"}`
	loop := &model.Response{ToolCalls: []core.ToolCall{{ID: "call_x", Name: "send_email", Arguments: []byte(args)}}}
	m := &scriptedModel{responses: []*model.Response{loop}}
	eng, _ := newTestEngine(t, m, registry)

	_, err := eng.ProcessTurn(context.Background(), "u1", "c1", "send an email to raj")
	assert.ErrorIs(t, err, ErrIterationBudgetExceeded)
	// Exactly the ceiling, never a sixth call.
	assert.Len(t, m.requests, 5)
	assert.Len(t, calls, 5)
}

// -------------------- Fatal Conditions --------------------

func TestProcessTurn_EmptyModelResponse(t *testing.T) {
	m := &scriptedModel{responses: []*model.Response{{Content: "   "}}}
	eng, _ := newTestEngine(t, m, tool.NewRegistry())

	_, err := eng.ProcessTurn(context.Background(), "u1", "c1", "hello!")
	assert.ErrorIs(t, err, ErrEmptyModelResponse)
}

func TestProcessTurn_ProviderErrorAfterUserMessagePersisted(t *testing.T) {
	m := &scriptedModel{err: errors.New("connection refused")}
	eng, st := newTestEngine(t, m, tool.NewRegistry())

	_, err := eng.ProcessTurn(context.Background(), "u1", "c1", "hello!")
	var provErr *ProviderError
	assert.ErrorAs(t, err, &provErr)

	// Durability-first: the user's message survives the failure.
	history, loadErr := st.LoadRecent(context.Background(), "c1", 10)
	require.NoError(t, loadErr)
	require.Len(t, history, 1)
	assert.Equal(t, "hello!", history[0].Body)
}

// -------------------- History Window --------------------

func TestProcessTurn_HistoryWindowAndTruncation(t *testing.T) {
	m := &scriptedModel{responses: []*model.Response{{Content: "noted"}}}
	eng, st := newTestEngine(t, m, tool.NewRegistry())

	ctx := context.Background()
	longBody := strings.Repeat("x", 600)
	for i := 0; i < 25; i++ {
		_, err := st.Save(ctx, "c1", "u1", fmt.Sprintf("%s %d", longBody, i))
		require.NoError(t, err)
	}

	_, err := eng.ProcessTurn(ctx, "u1", "c1", "please summarize everything I told you about the project")
	require.NoError(t, err)

	turns := m.requests[0].Turns
	// System turn + 20-message window.
	require.Len(t, turns, 21)

	// Older history entries are truncated; the most recent ones are verbatim.
	assert.Contains(t, turns[1].Content, "...[truncated]")
	final := turns[len(turns)-1]
	assert.Equal(t, core.RoleUser, final.Role)
	assert.NotContains(t, final.Content, "...[truncated]")
}

func TestProcessTurn_ConversationalHistoryWindow(t *testing.T) {
	m := &scriptedModel{responses: []*model.Response{{Content: "hey!"}}}
	eng, st := newTestEngine(t, m, tool.NewRegistry())

	ctx := context.Background()
	for i := 0; i < 10; i++ {
		_, err := st.Save(ctx, "c1", "u1", fmt.Sprintf("message %d", i))
		require.NoError(t, err)
	}

	_, err := eng.ProcessTurn(ctx, "u1", "c1", "hi")
	require.NoError(t, err)

	// System turn + 3-message conversational window.
	assert.Len(t, m.requests[0].Turns, 4)
}

// -------------------- User-Facing Messages --------------------

func TestUserMessage(t *testing.T) {
	assert.Equal(t, "Request too complex. Please simplify and try again.",
		UserMessage(ErrIterationBudgetExceeded))
	assert.Equal(t, "AI service is temporarily unavailable. Please try again later.",
		UserMessage(ErrEmptyModelResponse))
	assert.Equal(t, "AI service is temporarily unavailable. Please try again later.",
		UserMessage(&ProviderError{Err: errors.New("boom")}))
}
