package tools

import (
	"context"

	"github.com/blinkchat/assist/tool"
)

// IntelligenceService derives structure from conversation content:
// summaries and actionable tasks.
type IntelligenceService interface {
	Summarize(ctx context.Context, userID string, q ConversationQuery) (any, error)
	ExtractTasks(ctx context.Context, userID string, req TaskExtraction) (any, error)
}

// TaskExtraction selects the text or conversation to mine for tasks and
// an optional date window.
type TaskExtraction struct {
	Text           string
	TargetUser     string
	ConversationID string
	StartDate      string
	EndDate        string
}

func intelligenceTools(svc IntelligenceService) []tool.Tool {
	summarizeConversation := tool.NewFuncTool(
		"summarize_conversation",
		"Summarize a conversation with a specific user or by conversation ID.",
		objectSchema(map[string]any{
			"conversationId": stringProp("Conversation ID"),
			"targetUser":     stringProp("The user to summarize chat with"),
		}),
		func(ctx context.Context, userID string, args map[string]any) (any, error) {
			return svc.Summarize(ctx, userID, ConversationQuery{
				ConversationID: strArg(args, "conversationId"),
				TargetUser:     strArg(args, "targetUser"),
			})
		},
	)

	extractTasks := tool.NewFuncTool(
		"extract_tasks",
		"Extract actionable tasks or reminders from text or conversation history. Supports filtering by date.",
		objectSchema(map[string]any{
			"text":           stringProp("The message text to analyze (optional if targetUser/conversationId set)"),
			"targetUser":     stringProp("The user to extract tasks from their chat"),
			"conversationId": stringProp("The conversation ID to extract tasks from"),
			"startDate":      stringProp("Filter tasks from date (YYYY-MM-DD)"),
			"endDate":        stringProp("Filter tasks to date (YYYY-MM-DD)"),
		}),
		func(ctx context.Context, userID string, args map[string]any) (any, error) {
			return svc.ExtractTasks(ctx, userID, TaskExtraction{
				Text:           strArg(args, "text"),
				TargetUser:     strArg(args, "targetUser"),
				ConversationID: strArg(args, "conversationId"),
				StartDate:      strArg(args, "startDate"),
				EndDate:        strArg(args, "endDate"),
			})
		},
	)

	return []tool.Tool{summarizeConversation, extractTasks}
}
