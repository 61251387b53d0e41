package booking

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

// IdempotencyGuard fences booking confirms so a retried request for the
// same allocator-returned interval cannot record twice.
type IdempotencyGuard interface {
	// Acquire claims the key; false means another confirm already holds it.
	Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error)

	// Release frees the key after a failed write so the caller can retry.
	Release(ctx context.Context, key string) error
}

// RedisGuard claims keys via SETNX with a per-claim uuid value.
type RedisGuard struct {
	client *redis.Client
}

func NewRedisGuard(client *redis.Client) *RedisGuard {
	return &RedisGuard{client: client}
}

func (g *RedisGuard) Acquire(
	ctx context.Context,
	key string,
	ttl time.Duration,
) (bool, error) {
	return g.client.SetNX(ctx, key, uuid.NewString(), ttl).Result()
}

func (g *RedisGuard) Release(ctx context.Context, key string) error {
	return g.client.Del(ctx, key).Err()
}

// Compile-time check
var _ IdempotencyGuard = (*RedisGuard)(nil)
