// Package store provides ChatStore implementations. The in-memory store
// backs tests and examples; sqlite and redis subpackages provide durable
// variants behind the same interface.
package store

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/blinkchat/assist/core"
)

// InMemoryStore keeps conversation history in process memory. Safe for
// concurrent use; contents are lost on restart.
type InMemoryStore struct {
	mu       sync.RWMutex
	messages map[string][]core.Message
	now      func() time.Time
}

// NewInMemoryStore creates an empty in-memory chat store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		messages: make(map[string][]core.Message),
		now:      time.Now,
	}
}

// Save implements core.ChatStore.
func (s *InMemoryStore) Save(ctx context.Context, conversationID, senderID, body string) (core.Message, error) {
	if err := ctx.Err(); err != nil {
		return core.Message{}, err
	}

	msg := core.Message{
		ID:             uuid.NewString(),
		ConversationID: conversationID,
		SenderID:       senderID,
		Body:           body,
		CreatedAt:      s.now(),
	}

	s.mu.Lock()
	s.messages[conversationID] = append(s.messages[conversationID], msg)
	s.mu.Unlock()

	return msg, nil
}

// LoadRecent implements core.ChatStore, returning at most limit of the
// newest messages in chronological order.
func (s *InMemoryStore) LoadRecent(ctx context.Context, conversationID string, limit int) ([]core.Message, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if limit <= 0 {
		return nil, nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	all := s.messages[conversationID]
	if len(all) > limit {
		all = all[len(all)-limit:]
	}

	out := make([]core.Message, len(all))
	copy(out, all)
	return out, nil
}

// Len reports the number of messages stored for a conversation.
func (s *InMemoryStore) Len(conversationID string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.messages[conversationID])
}
