package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisGuard is a ReplayGuard backed by redis, for deployments with more
// than one service instance. SET NX makes the check-and-mark atomic.
type RedisGuard struct {
	client redis.UniversalClient
}

// NewRedisGuard creates a replay guard on top of an established redis client.
func NewRedisGuard(client redis.UniversalClient) *RedisGuard {
	return &RedisGuard{client: client}
}

func (g *RedisGuard) Consume(ctx context.Context, username, code string, ttl time.Duration) error {
	ok, err := g.client.SetNX(ctx, replayKey(username, code), 1, ttl).Result()
	if err != nil {
		return fmt.Errorf("failed to mark OTP as used: %w", err)
	}
	if !ok {
		return ErrOTPAlreadyUsed
	}
	return nil
}
