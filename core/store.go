package core

import (
	"context"
	"time"
)

// Message is a persisted chat message owned by the external chat store.
type Message struct {
	ID             string    `json:"id"`
	ConversationID string    `json:"conversation_id"`
	SenderID       string    `json:"sender_id"`
	Body           string    `json:"body"`
	CreatedAt      time.Time `json:"created_at"`
}

// ChatStore persists conversation messages. LoadRecent returns at most
// limit of the newest messages in chronological (oldest first) order so
// the engine never re-sorts history. Realtime fan-out, where supported,
// is triggered by Save inside the implementation; it is never the
// engine's concern.
type ChatStore interface {
	Save(ctx context.Context, conversationID, senderID, body string) (Message, error)
	LoadRecent(ctx context.Context, conversationID string, limit int) ([]Message, error)
}

// Profile carries the caller context rendered into the system prompt.
type Profile struct {
	UserID              string
	Username            string
	ActiveConversations int
	ContactIDs          []string
}

// ProfileProvider resolves the caller context for a user. It is optional;
// when absent the engine omits caller context from the prompt.
type ProfileProvider interface {
	Profile(ctx context.Context, userID string) (Profile, error)
}
