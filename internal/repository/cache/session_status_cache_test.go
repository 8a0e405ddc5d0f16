package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCache(t *testing.T) (*SessionStatusCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewSessionStatusCache(rdb, time.Minute), mr
}

func TestSessionStatusCache_RoundTrip(t *testing.T) {
	c, mr := newCache(t)
	ctx := context.Background()
	id := uuid.New()
	level := "see-doctor"

	got, err := c.Get(ctx, id)
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, c.Set(ctx, &SessionStatus{SessionId: id, Status: "completed", TriageLevel: &level}))
	assert.True(t, mr.Exists(key(id)))
	assert.Equal(t, time.Minute, mr.TTL(key(id)))

	got, err = c.Get(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "completed", got.Status)
	assert.Equal(t, "see-doctor", *got.TriageLevel)

	require.NoError(t, c.Invalidate(ctx, id))
	assert.False(t, mr.Exists(key(id)))
}

func TestSessionStatusCache_SkipsPending(t *testing.T) {
	c, mr := newCache(t)
	id := uuid.New()

	require.NoError(t, c.Set(context.Background(), &SessionStatus{SessionId: id, Status: "pending"}))
	assert.False(t, mr.Exists(key(id)))
}

func TestSessionStatusCache_NilSafe(t *testing.T) {
	var c *SessionStatusCache
	got, err := c.Get(context.Background(), uuid.New())
	assert.NoError(t, err)
	assert.Nil(t, got)
	assert.NoError(t, c.Set(context.Background(), &SessionStatus{}))
}

func TestSessionStatusCache_Expiry(t *testing.T) {
	c, mr := newCache(t)
	ctx := context.Background()
	id := uuid.New()
	level := "self-care"

	require.NoError(t, c.Set(ctx, &SessionStatus{SessionId: id, Status: "completed", TriageLevel: &level}))
	mr.FastForward(2 * time.Minute)

	got, err := c.Get(ctx, id)
	require.NoError(t, err)
	assert.Nil(t, got)
}
