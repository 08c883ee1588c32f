package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"go-jobapply-automation/internal/listing"
)

const keyPrefix = "jobapply:ratelimit:"

// RedisTracker keeps the last block time per host and per host+platform.
// Keys expire after ttl so stale blocks do not pile up.
type RedisTracker struct {
	rdb *redis.Client
	ttl time.Duration
	now func() time.Time
}

// NewRedisClient parses redisURL and verifies connectivity.
func NewRedisClient(ctx context.Context, redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("redis.ParseURL: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return client, nil
}

func NewRedisTracker(rdb *redis.Client, ttl time.Duration) *RedisTracker {
	return &RedisTracker{rdb: rdb, ttl: ttl, now: time.Now}
}

func (t *RedisTracker) LogRateLimit(ctx context.Context, host string, platform listing.Platform) error {
	stamp := strconv.FormatInt(t.now().UnixNano(), 10)

	pipe := t.rdb.TxPipeline()
	pipe.Set(ctx, key(host, ""), stamp, t.ttl)
	if platform != "" {
		pipe.Set(ctx, key(host, platform), stamp, t.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("log rate limit for %s: %w", host, err)
	}
	return nil
}

func (t *RedisTracker) RecentRateLimitAge(ctx context.Context, host string, platform listing.Platform) (time.Duration, error) {
	val, err := t.rdb.Get(ctx, key(host, platform)).Result()
	if errors.Is(err, redis.Nil) {
		return NoRecord, nil
	}
	if err != nil {
		return 0, fmt.Errorf("read rate limit for %s: %w", host, err)
	}
	nanos, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("corrupt rate limit value %q: %w", val, err)
	}
	return t.now().Sub(time.Unix(0, nanos)), nil
}

func key(host string, platform listing.Platform) string {
	k := keyPrefix + host
	if platform != "" {
		k += ":" + strings.ToLower(string(platform))
	}
	return k
}
