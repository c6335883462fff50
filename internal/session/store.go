package session

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/spec-kit/clinic-portal/internal/domain"
)

const keyPrefix = "session:"

// ErrNoSession is returned when no session exists for the given id.
var ErrNoSession = errors.New("no session")

// Store persists browser sessions. The token + role pair survives portal
// restarts so a page reload does not log the user out; there is no expiry
// timer beyond the key TTL, a stale token is detected reactively when a
// backend call fails with 401.
type Store interface {
	Set(ctx context.Context, token string, role domain.Role, ttl time.Duration) (string, error)
	Get(ctx context.Context, id string) (*domain.Session, error)
	Clear(ctx context.Context, id string) error
}

type redisStore struct {
	client     *redis.Client
	defaultTTL time.Duration
}

// NewStore builds a redis-backed session store.
func NewStore(client *redis.Client, defaultTTL time.Duration) Store {
	if defaultTTL <= 0 {
		defaultTTL = time.Hour
	}
	return &redisStore{client: client, defaultTTL: defaultTTL}
}

// Set creates a fresh session and returns its id. A non-positive ttl falls
// back to the store default; callers pass a shorter ttl when the backend
// token expires sooner.
func (s *redisStore) Set(ctx context.Context, token string, role domain.Role, ttl time.Duration) (string, error) {
	if ttl <= 0 || ttl > s.defaultTTL {
		ttl = s.defaultTTL
	}

	sess := domain.Session{Token: token, Role: role}
	payload, err := json.Marshal(sess)
	if err != nil {
		return "", err
	}

	id := uuid.NewString()
	if err := s.client.Set(ctx, keyPrefix+id, payload, ttl).Err(); err != nil {
		return "", err
	}
	return id, nil
}

// Get loads the session for id, or ErrNoSession.
func (s *redisStore) Get(ctx context.Context, id string) (*domain.Session, error) {
	if id == "" {
		return nil, ErrNoSession
	}
	raw, err := s.client.Get(ctx, keyPrefix+id).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNoSession
		}
		return nil, err
	}

	var sess domain.Session
	if err := json.Unmarshal(raw, &sess); err != nil {
		return nil, err
	}
	sess.ID = id
	return &sess, nil
}

// Clear removes the session. Clearing an absent session is a no-op.
func (s *redisStore) Clear(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}
	return s.client.Del(ctx, keyPrefix+id).Err()
}
