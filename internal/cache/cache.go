package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tour_travels_backend/pkg/utils"

	"github.com/redis/go-redis/v9"
)

// ErrMiss is returned by Get when the key is not present.
var ErrMiss = errors.New("cache miss")

// TTLs per endpoint category. A write to an entity wipes all of that
// entity's keys rather than attempting partial invalidation.
const (
	InquiryListTTL   = 5 * time.Minute
	InquiryDetailTTL = 5 * time.Minute
	InquiryStatsTTL  = 10 * time.Minute
	InquiryRecentTTL = 2 * time.Minute

	ReviewListTTL     = 10 * time.Minute
	ReviewDetailTTL   = 10 * time.Minute
	ReviewStatsTTL    = 15 * time.Minute
	ReviewApprovedTTL = 10 * time.Minute
	ReviewFeaturedTTL = 10 * time.Minute
)

// Client wraps the Redis client used for read-through response caching.
type Client struct {
	rdb *redis.Client
}

// New creates a new cache client.
func New(addr, password string, db int) *Client {
	rdb := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 5,
	})
	return &Client{rdb: rdb}
}

// NewFromClient wraps an existing Redis client. Used by tests.
func NewFromClient(rdb *redis.Client) *Client {
	return &Client{rdb: rdb}
}

// Ping tests the Redis connection.
func (c *Client) Ping(ctx context.Context) error {
	if err := c.rdb.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

// Close closes the Redis connection.
func (c *Client) Close() error {
	if c.rdb != nil {
		return c.rdb.Close()
	}
	return nil
}

// Get retrieves a cached payload. Returns ErrMiss when the key is absent.
func (c *Client) Get(ctx context.Context, key string) (string, error) {
	val, err := c.rdb.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrMiss
	}
	if err != nil {
		return "", err
	}
	return val, nil
}

// Set stores a payload under key with the given TTL.
func (c *Client) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	return c.rdb.Set(ctx, key, value, ttl).Err()
}

// Del deletes one or more keys. Missing keys are not an error.
func (c *Client) Del(ctx context.Context, keys ...string) error {
	return c.rdb.Del(ctx, keys...).Err()
}

// Key builders. The list key is deliberately coarse: it is not parameterized
// by filters, so any filtered list request resolves through the same key.

func InquiryListKey() string   { return "inquiries:list" }
func InquiryStatsKey() string  { return "inquiries:stats" }
func InquiryRecentKey() string { return "inquiries:recent" }

func InquiryDetailKey(id int64) string {
	return "inquiries:detail:" + utils.Int64ToStr(id)
}

func ReviewListKey() string     { return "reviews:list" }
func ReviewStatsKey() string    { return "reviews:stats" }
func ReviewApprovedKey() string { return "reviews:approved" }
func ReviewFeaturedKey() string { return "reviews:featured" }

func ReviewDetailKey(id int64) string {
	return "reviews:detail:" + utils.Int64ToStr(id)
}
