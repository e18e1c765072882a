package cache

import (
	"agenda-api/core/logger"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Tag names the cache group for one entity type owned by one user.
func Tag(entity string, userID uuid.UUID) string {
	return fmt.Sprintf("%s:%s", entity, userID)
}

// Key builds a list cache key from the entity, the owner and a query fragment.
func Key(entity string, userID uuid.UUID, query string) string {
	return fmt.Sprintf("%s:%s:list:%s", entity, userID, query)
}

// Remember returns the cached value for key or loads, stores and returns it.
// A value loaded while one of its tags is invalidated is returned but not stored.
// Cache failures are logged and never fail the read.
func Remember[T any](ctx context.Context, c Cache, key string, ttl time.Duration, tags []string, load func(context.Context) (T, error)) (T, error) {
	var cached T
	var version string
	store := c != nil
	if c != nil {
		err := c.Get(ctx, key, &cached)
		if err == nil {
			return cached, nil
		}
		if !errors.Is(err, ErrCacheMiss) {
			logger.Warn("Cache:Remember:Get", "key", key, "error", err)
		}

		version, err = c.TagVersion(ctx, tags)
		if err != nil {
			logger.Warn("Cache:Remember:TagVersion", "key", key, "error", err)
			store = false
		}
	}

	value, err := load(ctx)
	if err != nil {
		return value, err
	}

	if store {
		stored, err := c.SetWithTagsIfVersion(ctx, key, value, ttl, tags, version)
		if err != nil {
			logger.Warn("Cache:Remember:Set", "key", key, "error", err)
		} else if !stored {
			logger.Debug("Cache:Remember:Stale", "key", key)
		}
	}
	return value, nil
}

// Invalidate drops every cached result under the given tags, logging failures.
func Invalidate(ctx context.Context, c Cache, tags ...string) {
	if c == nil || len(tags) == 0 {
		return
	}
	if err := c.InvalidateByTag(ctx, tags...); err != nil {
		logger.Warn("Cache:Invalidate", "tags", tags, "error", err)
	}
}
