// Package redis provides a Redis-backed ChatStore. Each conversation is a
// list keyed by conversation id with the newest message at the head, so
// recent-history loads are a single LRANGE.
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/blinkchat/assist/core"
)

// Config describes the Redis connection parameters.
type Config struct {
	Address  string
	Password string
	DB       int
}

// Store is a ChatStore backed by Redis lists.
type Store struct {
	client *redis.Client
	now    func() time.Time
}

// New connects to Redis and verifies the connection.
func New(cfg Config) (*Store, error) {
	if cfg.Address == "" {
		return nil, fmt.Errorf("redis address is required")
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	return &Store{client: client, now: time.Now}, nil
}

// NewFromClient wraps an existing client, useful for cluster or sentinel
// setups configured by the caller.
func NewFromClient(client *redis.Client) *Store {
	return &Store{client: client, now: time.Now}
}

func conversationKey(conversationID string) string {
	return "chat:conversation:" + conversationID + ":messages"
}

// Save implements core.ChatStore.
func (s *Store) Save(ctx context.Context, conversationID, senderID, body string) (core.Message, error) {
	msg := core.Message{
		ID:             uuid.NewString(),
		ConversationID: conversationID,
		SenderID:       senderID,
		Body:           body,
		CreatedAt:      s.now(),
	}

	payload, err := json.Marshal(msg)
	if err != nil {
		return core.Message{}, fmt.Errorf("encode message: %w", err)
	}
	if err := s.client.LPush(ctx, conversationKey(conversationID), payload).Err(); err != nil {
		return core.Message{}, fmt.Errorf("save message: %w", err)
	}
	return msg, nil
}

// LoadRecent implements core.ChatStore. The head of the list is the newest
// message, so the range is reversed before returning.
func (s *Store) LoadRecent(ctx context.Context, conversationID string, limit int) ([]core.Message, error) {
	if limit <= 0 {
		return nil, nil
	}

	values, err := s.client.LRange(ctx, conversationKey(conversationID), 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("load messages: %w", err)
	}

	messages := make([]core.Message, 0, len(values))
	for i := len(values) - 1; i >= 0; i-- {
		var msg core.Message
		if err := json.Unmarshal([]byte(values[i]), &msg); err != nil {
			return nil, fmt.Errorf("decode message: %w", err)
		}
		messages = append(messages, msg)
	}
	return messages, nil
}

// Close closes the Redis connection.
func (s *Store) Close() error {
	if s == nil || s.client == nil {
		return nil
	}
	return s.client.Close()
}
