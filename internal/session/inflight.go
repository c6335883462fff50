package session

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const inflightPrefix = "inflight:"

// Guard rejects a second identical submission while the first is still in
// flight. The lock carries a short TTL so a crashed request cannot wedge an
// action forever.
type Guard struct {
	client *redis.Client
	ttl    time.Duration
}

// NewGuard builds an in-flight guard.
func NewGuard(client *redis.Client, ttl time.Duration) *Guard {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &Guard{client: client, ttl: ttl}
}

// Acquire takes the lock for sessionID+action. Returns false when an
// identical submission is already in flight.
func (g *Guard) Acquire(ctx context.Context, sessionID, action string) (bool, error) {
	return g.client.SetNX(ctx, inflightPrefix+sessionID+":"+action, "1", g.ttl).Result()
}

// Release frees the lock once the request finishes.
func (g *Guard) Release(ctx context.Context, sessionID, action string) error {
	return g.client.Del(ctx, inflightPrefix+sessionID+":"+action).Err()
}
