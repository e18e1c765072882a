package cache

import (
	"agenda-api/core/constants"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

type RedisCache struct {
	client  *redis.Client
	timeout time.Duration
}

type CacheConfig struct {
	Addr         string
	Password     string
	DB           int
	PoolSize     int
	MinIdleConns int
	MaxRetries   int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

func DefaultCacheConfig() *CacheConfig {
	return &CacheConfig{
		Addr:         "localhost:6379",
		Password:     "",
		DB:           0,
		PoolSize:     10,
		MinIdleConns: 5,
		MaxRetries:   3,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	}
}

func NewRedisCache(config *CacheConfig) *RedisCache {
	if config == nil {
		config = DefaultCacheConfig()
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:         config.Addr,
		Password:     config.Password,
		DB:           config.DB,
		PoolSize:     config.PoolSize,
		MinIdleConns: config.MinIdleConns,
		MaxRetries:   config.MaxRetries,
		DialTimeout:  config.DialTimeout,
		ReadTimeout:  config.ReadTimeout,
		WriteTimeout: config.WriteTimeout,
	})

	return &RedisCache{
		client:  rdb,
		timeout: constants.RedisOperationTimeout,
	}
}

// Client exposes the underlying connection for components that share it, such as the job queue.
func (r *RedisCache) Client() *redis.Client {
	return r.client
}

func (r *RedisCache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	if err := r.client.Set(ctx, key, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set cache: %w", err)
	}
	return nil
}

func (r *RedisCache) Get(ctx context.Context, key string, dest any) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrCacheMiss
		}
		return fmt.Errorf("failed to get from cache: %w", err)
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("failed to unmarshal cached data: %w", err)
	}
	return nil
}

func (r *RedisCache) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	return r.client.Del(ctx, keys...).Err()
}

func (r *RedisCache) SetWithTags(ctx context.Context, key string, value any, ttl time.Duration, tags []string) error {
	if err := r.Set(ctx, key, value, ttl); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	pipe := r.client.Pipeline()
	for _, tag := range tags {
		tagKey := constants.RedisTagPrefix + tag
		pipe.SAdd(ctx, tagKey, key)
		pipe.Expire(ctx, tagKey, ttl)
	}

	_, err := pipe.Exec(ctx)
	return err
}

func (r *RedisCache) InvalidateByTag(ctx context.Context, tags ...string) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	for _, tag := range tags {
		tagKey := constants.RedisTagPrefix + tag

		if err := r.client.Incr(ctx, constants.RedisTagVersionPrefix+tag).Err(); err != nil {
			return fmt.Errorf("failed to bump tag version %s: %w", tag, err)
		}

		keys, err := r.client.SMembers(ctx, tagKey).Result()
		if err != nil {
			return fmt.Errorf("failed to get tag members: %w", err)
		}

		allKeys := append(keys, tagKey)
		if err := r.client.Del(ctx, allKeys...).Err(); err != nil {
			return fmt.Errorf("failed to invalidate tag %s: %w", tag, err)
		}
	}
	return nil
}

// TagVersion snapshots the invalidation counters of tags. Take it before loading
// the value that will be stored with SetWithTagsIfVersion.
func (r *RedisCache) TagVersion(ctx context.Context, tags []string) (string, error) {
	if len(tags) == 0 {
		return "", nil
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	values, err := r.client.MGet(ctx, versionKeys(tags)...).Result()
	if err != nil {
		return "", fmt.Errorf("failed to read tag versions: %w", err)
	}
	return joinVersions(values), nil
}

// SetWithTagsIfVersion stores value like SetWithTags, unless one of the tags was
// invalidated after version was taken. It reports whether the value was stored.
func (r *RedisCache) SetWithTagsIfVersion(ctx context.Context, key string, value any, ttl time.Duration, tags []string, version string) (bool, error) {
	if len(tags) == 0 {
		return true, r.SetWithTags(ctx, key, value, ttl, tags)
	}

	data, err := json.Marshal(value)
	if err != nil {
		return false, fmt.Errorf("failed to marshal value: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	keys := versionKeys(tags)
	stored := false
	err = r.client.Watch(ctx, func(tx *redis.Tx) error {
		values, err := tx.MGet(ctx, keys...).Result()
		if err != nil {
			return err
		}
		if joinVersions(values) != version {
			return nil
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, ttl)
			for _, tag := range tags {
				tagKey := constants.RedisTagPrefix + tag
				pipe.SAdd(ctx, tagKey, key)
				pipe.Expire(ctx, tagKey, ttl)
			}
			return nil
		})
		if err == nil {
			stored = true
		}
		return err
	}, keys...)

	if errors.Is(err, redis.TxFailedErr) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to set cache: %w", err)
	}
	return stored, nil
}

func versionKeys(tags []string) []string {
	keys := make([]string, len(tags))
	for i, tag := range tags {
		keys[i] = constants.RedisTagVersionPrefix + tag
	}
	return keys
}

func joinVersions(values []any) string {
	parts := make([]string, len(values))
	for i, v := range values {
		if s, ok := v.(string); ok {
			parts[i] = s
		} else {
			parts[i] = "0"
		}
	}
	return strings.Join(parts, ",")
}

func (r *RedisCache) AddToTokenBlacklist(ctx context.Context, token string, ttl time.Duration) error {
	if ttl <= 0 {
		// already expired tokens are rejected by signature validation
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	return r.client.Set(ctx, constants.RedisKeyTokenBlacklist+fingerprint(token), 1, ttl).Err()
}

func (r *RedisCache) IsTokenBlacklisted(ctx context.Context, token string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	n, err := r.client.Exists(ctx, constants.RedisKeyTokenBlacklist+fingerprint(token)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *RedisCache) SaveOAuthState(ctx context.Context, state string, ttl time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	return r.client.Set(ctx, constants.RedisKeyOAuthState+state, 1, ttl).Err()
}

// ConsumeOAuthState reports whether state was issued and removes it.
func (r *RedisCache) ConsumeOAuthState(ctx context.Context, state string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	n, err := r.client.Del(ctx, constants.RedisKeyOAuthState+state).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Publish sends message on channel and reports how many subscribers received it.
func (r *RedisCache) Publish(ctx context.Context, channel string, message []byte) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	return r.client.Publish(ctx, channel, message).Result()
}

// Subscribe returns a channel of payloads and a close function.
// The payload channel is closed once the subscription is closed.
func (r *RedisCache) Subscribe(ctx context.Context, channel string) (<-chan []byte, func() error, error) {
	ps := r.client.Subscribe(ctx, channel)
	if _, err := ps.Receive(ctx); err != nil {
		_ = ps.Close()
		return nil, nil, fmt.Errorf("failed to subscribe to %s: %w", channel, err)
	}

	out := make(chan []byte)
	go func() {
		defer close(out)
		for msg := range ps.Channel() {
			out <- []byte(msg.Payload)
		}
	}()

	return out, ps.Close, nil
}

func (r *RedisCache) Health(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	return r.client.Ping(ctx).Err()
}

func (r *RedisCache) Close() error {
	return r.client.Close()
}

func fingerprint(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
