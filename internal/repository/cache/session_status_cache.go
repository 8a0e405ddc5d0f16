package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "triage:session:status:"

// SessionStatus is the polling view of a session.
type SessionStatus struct {
	SessionId   uuid.UUID `json:"session_id"`
	UserId      uuid.UUID `json:"user_id"`
	Status      string    `json:"status"`
	TriageLevel *string   `json:"triage_level"`
}

// SessionStatusCache is a read-through cache over completed sessions. Pending
// sessions are never cached so a poll always sees the result as soon as it lands.
type SessionStatusCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewSessionStatusCache(rdb *redis.Client, ttl time.Duration) *SessionStatusCache {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &SessionStatusCache{rdb: rdb, ttl: ttl}
}

func key(id uuid.UUID) string {
	return keyPrefix + id.String()
}

// Get returns (nil, nil) on a miss.
func (c *SessionStatusCache) Get(ctx context.Context, id uuid.UUID) (*SessionStatus, error) {
	if c == nil || c.rdb == nil {
		return nil, nil
	}
	raw, err := c.rdb.Get(ctx, key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get: %w", err)
	}
	var st SessionStatus
	if err := json.Unmarshal(raw, &st); err != nil {
		return nil, fmt.Errorf("decode cached status: %w", err)
	}
	return &st, nil
}

func (c *SessionStatusCache) Set(ctx context.Context, st *SessionStatus) error {
	if c == nil || c.rdb == nil || st.TriageLevel == nil {
		return nil
	}
	raw, err := json.Marshal(st)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, key(st.SessionId), raw, c.ttl).Err()
}

func (c *SessionStatusCache) Invalidate(ctx context.Context, id uuid.UUID) error {
	if c == nil || c.rdb == nil {
		return nil
	}
	return c.rdb.Del(ctx, key(id)).Err()
}
