package tools

import (
	"context"

	"github.com/blinkchat/assist/tool"
)

// MessagingService manages direct conversations inside the chat platform.
type MessagingService interface {
	SendMessage(ctx context.Context, userID, recipient, conversationID, content string) (any, error)
	GetOrCreateConversation(ctx context.Context, userID, recipient string) (any, error)
	ViewConversation(ctx context.Context, userID string, q ConversationQuery) (any, error)
	ListConversations(ctx context.Context, userID string) (any, error)
}

// ConversationQuery addresses a conversation either by id or by the other
// participant.
type ConversationQuery struct {
	ConversationID string
	TargetUser     string
	Limit          int
}

func messagingTools(svc MessagingService) []tool.Tool {
	sendMessage := tool.NewFuncTool(
		"send_message",
		"Send a message to a user or conversation.",
		objectSchema(map[string]any{
			"recipient":      stringProp("Recipient identifier"),
			"conversationId": stringProp("Conversation ID"),
			"content":        stringProp("Message content"),
		}, "content"),
		func(ctx context.Context, userID string, args map[string]any) (any, error) {
			return svc.SendMessage(ctx, userID,
				strArg(args, "recipient"), strArg(args, "conversationId"), strArg(args, "content"))
		},
	)

	getOrCreateConversation := tool.NewFuncTool(
		"get_or_create_conversation",
		"Open or start a direct chat with another user. Use before sending a message to someone new.",
		objectSchema(map[string]any{
			"recipient": stringProp("Who to chat with: username, email, phone, or user ID"),
		}, "recipient"),
		func(ctx context.Context, userID string, args map[string]any) (any, error) {
			return svc.GetOrCreateConversation(ctx, userID, strArg(args, "recipient"))
		},
	)

	viewConversation := tool.NewFuncTool(
		"view_conversation",
		"Get recent messages from a conversation or a specific user.",
		objectSchema(map[string]any{
			"conversationId": stringProp("Conversation ID"),
			"targetUser":     stringProp("The user to view chat with"),
			"limit":          intProp("Max messages (default 20)"),
		}),
		func(ctx context.Context, userID string, args map[string]any) (any, error) {
			return svc.ViewConversation(ctx, userID, ConversationQuery{
				ConversationID: strArg(args, "conversationId"),
				TargetUser:     strArg(args, "targetUser"),
				Limit:          intArg(args, "limit", 20),
			})
		},
	)

	listConversations := tool.NewFuncTool(
		"list_conversations",
		"Show all the user's chats: who they've been talking to, last message preview, and timestamps.",
		objectSchema(map[string]any{}),
		func(ctx context.Context, userID string, _ map[string]any) (any, error) {
			return svc.ListConversations(ctx, userID)
		},
	)

	return []tool.Tool{sendMessage, getOrCreateConversation, viewConversation, listConversations}
}
