package model

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blinkchat/assist/core"
)

func TestMockModel_CannedResponses(t *testing.T) {
	m := NewMockModel("test-model")
	m.AddResponse("hello", "Hi there!")
	m.SetFallback("I don't know.")

	resp, err := m.Generate(context.Background(), Request{Turns: []core.Turn{core.UserTurn("hello")}})
	require.NoError(t, err)
	assert.Equal(t, "Hi there!", resp.Content)

	resp, err = m.Generate(context.Background(), Request{Turns: []core.Turn{core.UserTurn("unmatched")}})
	require.NoError(t, err)
	assert.Equal(t, "I don't know.", resp.Content)
}

func TestMockModel_QueuedToolCallsServedFirst(t *testing.T) {
	m := NewMockModel("test-model")
	m.AddResponse("search for cats", "Here is what I found.")
	m.QueueToolCalls(core.ToolCall{Name: "web_search", Arguments: []byte(`{"query":"cats"}`)})

	turns := []core.Turn{core.UserTurn("search for cats")}

	resp, err := m.Generate(context.Background(), Request{Turns: turns})
	require.NoError(t, err)
	require.Len(t, resp.ToolCalls, 1)
	assert.Equal(t, "web_search", resp.ToolCalls[0].Name)
	assert.NotEmpty(t, resp.ToolCalls[0].ID)

	// Batches are consumed; the canned text follows.
	resp, err = m.Generate(context.Background(), Request{Turns: turns})
	require.NoError(t, err)
	assert.Empty(t, resp.ToolCalls)
	assert.Equal(t, "Here is what I found.", resp.Content)
}

func TestMockModel_NoTurns(t *testing.T) {
	m := NewMockModel("test-model")
	_, err := m.Generate(context.Background(), Request{})
	assert.Error(t, err)
}

func TestMockModel_Info(t *testing.T) {
	m := NewMockModel("test-model")
	info := m.Info()
	assert.Equal(t, "test-model", info.Name)
	assert.Equal(t, "mock", info.Provider)
	assert.True(t, info.SupportsTools)
}
