// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"textbook_backend/internal/feature/history/domain/entity"
	"textbook_backend/internal/feature/history/usecase"
)

// CachingHistoryRepository decorates a MessageRepository with Redis caching.
// It implements the decorator pattern, transparently adding caching without
// modifying the underlying repository. Caching is best effort: a missing or
// failing Redis never breaks reads or writes.
type CachingHistoryRepository struct {
	inner     usecase.MessageRepository
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

// CachingHistoryRepositoryがMessageRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.MessageRepository = (*CachingHistoryRepository)(nil)

// NewCachingHistoryRepository decorates a MessageRepository with Redis caching.
// If ttl is 0, it defaults to 5 minutes. If namespace is empty, it uses "history".
func NewCachingHistoryRepository(rdb *redis.Client, ttl time.Duration, inner usecase.MessageRepository, namespace string) *CachingHistoryRepository {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if namespace == "" {
		namespace = "history"
	}
	return &CachingHistoryRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// Append persists a message and invalidates cached reads for its session.
func (c *CachingHistoryRepository) Append(ctx context.Context, msg *entity.Message) error {
	// First persist to the underlying repository
	if err := c.inner.Append(ctx, msg); err != nil {
		return err
	}
	// Exit early if Redis is not configured
	if c.rdb == nil {
		return nil
	}

	// Invalidate all cached limits for this session (best effort)
	_ = c.deleteByPattern(ctx, c.cacheKeyPrefix(msg.SessionID)+"*")
	return nil
}

// Recent retrieves messages, checking cache first then falling back to the database.
func (c *CachingHistoryRepository) Recent(ctx context.Context, sessionID string, limit int) ([]entity.Message, error) {
	// Bypass cache if Redis is not configured
	if c.rdb == nil {
		return c.inner.Recent(ctx, sessionID, limit)
	}

	key := c.cacheKey(sessionID, limit)

	// 1) Check cache
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out []entity.Message
		if err := json.Unmarshal(b, &out); err == nil {
			return out, nil
		}
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
	}

	// 2) Fallback to database
	out, err := c.inner.Recent(ctx, sessionID, limit)
	if err != nil {
		return nil, err
	}

	// 3) Store in cache (best effort)
	if b, err := json.Marshal(out); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}

	return out, nil
}

// cacheKey generates a cache key for a specific query.
func (c *CachingHistoryRepository) cacheKey(sessionID string, limit int) string {
	return fmt.Sprintf("%s:%s:%d", c.namespace, safe(sessionID), limit)
}

// cacheKeyPrefix generates a prefix for invalidating a session's cache entries.
func (c *CachingHistoryRepository) cacheKeyPrefix(sessionID string) string {
	return fmt.Sprintf("%s:%s:", c.namespace, safe(sessionID))
}

// deleteByPattern deletes all cache keys matching a given pattern using SCAN.
func (c *CachingHistoryRepository) deleteByPattern(ctx context.Context, pattern string) error {
	var cursor uint64
	for {
		keys, cur, err := c.rdb.Scan(ctx, cursor, pattern, 200).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		cursor = cur
		if cursor == 0 {
			break
		}
	}
	return nil
}

// safe escapes characters that are problematic for Redis keys.
func safe(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, ":", "_")
	return s
}
