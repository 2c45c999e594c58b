package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orris-inc/movecomments/internal/shared/logger"
)

func setupTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	mr, err := miniredis.Run()
	require.NoError(t, err)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	t.Cleanup(func() {
		client.Close()
		mr.Close()
	})

	return mr, client
}

func TestRedisCandidateTicketCache_RoundTrip(t *testing.T) {
	_, client := setupTestRedis(t)
	c := NewRedisCandidateTicketCache(client, logger.NewNop())
	ctx := context.Background()

	_, hit, err := c.Get(ctx, 5)
	require.NoError(t, err)
	assert.False(t, hit)

	require.NoError(t, c.Set(ctx, 5, []uint{3, 9, 12}, time.Minute))

	ids, hit, err := c.Get(ctx, 5)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, []uint{3, 9, 12}, ids)

	require.NoError(t, c.Invalidate(ctx, 5))
	_, hit, err = c.Get(ctx, 5)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestRedisCandidateTicketCache_EmptyList(t *testing.T) {
	_, client := setupTestRedis(t)
	c := NewRedisCandidateTicketCache(client, logger.NewNop())
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, 5, nil, time.Minute))

	ids, hit, err := c.Get(ctx, 5)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Empty(t, ids)
}

func TestRedisCandidateTicketCache_Expiry(t *testing.T) {
	mr, client := setupTestRedis(t)
	c := NewRedisCandidateTicketCache(client, logger.NewNop())
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, 5, []uint{1}, time.Minute))
	mr.FastForward(2 * time.Minute)

	_, hit, err := c.Get(ctx, 5)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestRedisCandidateTicketCache_Corrupt(t *testing.T) {
	mr, client := setupTestRedis(t)
	c := NewRedisCandidateTicketCache(client, logger.NewNop())

	require.NoError(t, mr.Set(candidateKeyPrefix+"5", "1,x"))

	_, _, err := c.Get(context.Background(), 5)
	assert.Error(t, err)
}
