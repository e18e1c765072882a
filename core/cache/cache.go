package cache

import (
	"context"
	"errors"
	"time"
)

var (
	ErrCacheMiss = errors.New("cache miss")
)

// Cache is the result cache shared by the data services. Every list result is
// stored under one or more tags so a mutation can drop them together.
type Cache interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Get(ctx context.Context, key string, dest any) error
	Delete(ctx context.Context, keys ...string) error
	SetWithTags(ctx context.Context, key string, value any, ttl time.Duration, tags []string) error
	InvalidateByTag(ctx context.Context, tags ...string) error
	TagVersion(ctx context.Context, tags []string) (string, error)
	SetWithTagsIfVersion(ctx context.Context, key string, value any, ttl time.Duration, tags []string, version string) (bool, error)

	AddToTokenBlacklist(ctx context.Context, token string, ttl time.Duration) error
	IsTokenBlacklisted(ctx context.Context, token string) (bool, error)

	SaveOAuthState(ctx context.Context, state string, ttl time.Duration) error
	ConsumeOAuthState(ctx context.Context, state string) (bool, error)

	Publish(ctx context.Context, channel string, message []byte) (int64, error)
	Subscribe(ctx context.Context, channel string) (<-chan []byte, func() error, error)

	Health(ctx context.Context) error
	Close() error
}
