package store

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/thirdevent/gatekeeper/ports"
)

// RedisRevocations is a Redis implementation of the RevocationStore
// interface. Keys carry their own TTL so entries disappear with the
// artifact they shadow.
type RedisRevocations struct {
	client         *redis.Client
	sessionPrefix  string
	issuancePrefix string
}

// NewRedisRevocations creates a new Redis revocation store.
func NewRedisRevocations(client *redis.Client) ports.RevocationStore {
	return &RedisRevocations{
		client:         client,
		sessionPrefix:  "gatekeeper:revoked:",
		issuancePrefix: "gatekeeper:issued:",
	}
}

func (s *RedisRevocations) RevokeSession(ctx context.Context, tokenID string, ttl time.Duration) error {
	key := s.sessionPrefix + tokenID

	if err := s.client.Set(ctx, key, "1", ttl).Err(); err != nil {
		return fmt.Errorf("failed to revoke session: %w", err)
	}

	return nil
}

func (s *RedisRevocations) IsSessionRevoked(ctx context.Context, tokenID string) (bool, error) {
	key := s.sessionPrefix + tokenID

	val, err := s.client.Exists(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check session revocation: %w", err)
	}

	return val > 0, nil
}

func (s *RedisRevocations) RecordAuthorization(ctx context.Context, digest string, ttl time.Duration) error {
	key := s.issuancePrefix + digest

	// INCR keeps a per-digest issue counter so repeat issuance is visible.
	pipe := s.client.TxPipeline()
	pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to record authorization: %w", err)
	}

	return nil
}
