package sessionstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"loan-origination/internal/conversation"
)

const keyPrefix = "conversation:session:"

// RedisStore keeps sessions in redis with the TTL enforced by key expiry.
// Useful when the chat service runs more than one replica.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

var _ conversation.Store = (*RedisStore)(nil)

func NewRedisStore(addr string, ttl time.Duration, logger *slog.Logger) *RedisStore {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
	})
	return &RedisStore{
		client: client,
		ttl:    ttl,
		logger: logger.With(slog.String("component", "RedisSessionStore")),
	}
}

func (s *RedisStore) Get(ctx context.Context, id string) (*conversation.Session, error) {
	raw, err := s.client.Get(ctx, keyPrefix+id).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, conversation.ErrSessionNotFound
		}
		return nil, fmt.Errorf("redis get: %w", err)
	}

	var session conversation.Session
	if err := json.Unmarshal([]byte(raw), &session); err != nil {
		s.logger.ErrorContext(ctx, "Corrupt session payload, dropping", slog.String("sessionID", id), slog.Any("error", err))
		s.client.Del(ctx, keyPrefix+id)
		return nil, conversation.ErrSessionNotFound
	}
	return &session, nil
}

func (s *RedisStore) Put(ctx context.Context, session *conversation.Session) error {
	raw, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	if err := s.client.Set(ctx, keyPrefix+session.ID, raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, keyPrefix+id).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}

// PurgeExpired is a no-op: redis drops expired keys itself.
func (s *RedisStore) PurgeExpired(context.Context) (int, error) {
	return 0, nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
