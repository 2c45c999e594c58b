package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/orris-inc/movecomments/internal/shared/logger"
)

// CandidateTicketCache caches the per-actor list of candidate target tickets.
type CandidateTicketCache interface {
	// Get returns the cached ids. hit is false on a cache miss.
	Get(ctx context.Context, userID uint) (ids []uint, hit bool, err error)
	Set(ctx context.Context, userID uint, ids []uint, ttl time.Duration) error
	Invalidate(ctx context.Context, userID uint) error
}

const candidateKeyPrefix = "movecomments:candidates:"

// RedisCandidateTicketCache stores candidate ids as a comma-separated string.
// An empty string is a cached empty list.
type RedisCandidateTicketCache struct {
	client *redis.Client
	logger logger.Interface
}

func NewRedisCandidateTicketCache(client *redis.Client, logger logger.Interface) *RedisCandidateTicketCache {
	return &RedisCandidateTicketCache{
		client: client,
		logger: logger,
	}
}

func (c *RedisCandidateTicketCache) key(userID uint) string {
	return fmt.Sprintf("%s%d", candidateKeyPrefix, userID)
}

func (c *RedisCandidateTicketCache) Get(ctx context.Context, userID uint) ([]uint, bool, error) {
	raw, err := c.client.Get(ctx, c.key(userID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to get candidate tickets from cache: %w", err)
	}

	if raw == "" {
		return []uint{}, true, nil
	}

	parts := strings.Split(raw, ",")
	ids := make([]uint, 0, len(parts))
	for _, p := range parts {
		id, err := strconv.ParseUint(p, 10, 0)
		if err != nil {
			return nil, false, fmt.Errorf("corrupt candidate cache entry for user %d: %w", userID, err)
		}
		ids = append(ids, uint(id))
	}

	return ids, true, nil
}

func (c *RedisCandidateTicketCache) Set(ctx context.Context, userID uint, ids []uint, ttl time.Duration) error {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatUint(uint64(id), 10)
	}

	if err := c.client.Set(ctx, c.key(userID), strings.Join(parts, ","), ttl).Err(); err != nil {
		return fmt.Errorf("failed to set candidate tickets in cache: %w", err)
	}

	c.logger.Debugw("candidate tickets cached",
		"user_id", userID,
		"count", len(ids),
		"ttl", ttl,
	)

	return nil
}

func (c *RedisCandidateTicketCache) Invalidate(ctx context.Context, userID uint) error {
	if err := c.client.Del(ctx, c.key(userID)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate candidate tickets cache: %w", err)
	}
	return nil
}
