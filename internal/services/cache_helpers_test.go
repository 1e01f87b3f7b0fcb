package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"tour_travels_backend/internal/cache"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheGetRedisDownFallsBack(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	client := cache.NewFromClient(rdb)

	mock.ExpectGet("inquiries:list").SetErr(errors.New("connection refused"))

	var dest []string
	hit := cacheGet(context.Background(), client, "inquiries:list", &dest)
	assert.False(t, hit, "a Redis failure must read as a miss")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCacheGetCorruptPayloadFallsBack(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	client := cache.NewFromClient(rdb)

	mock.ExpectGet("inquiries:list").SetVal("{not json")

	var dest []string
	hit := cacheGet(context.Background(), client, "inquiries:list", &dest)
	assert.False(t, hit)
}

func TestCacheGetHit(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	client := cache.NewFromClient(rdb)

	mock.ExpectGet("inquiries:list").SetVal(`["a","b"]`)

	var dest []string
	hit := cacheGet(context.Background(), client, "inquiries:list", &dest)
	require.True(t, hit)
	assert.Equal(t, []string{"a", "b"}, dest)
}

func TestCacheSetWriteFailureIsSwallowed(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	client := cache.NewFromClient(rdb)

	mock.ExpectSet("reviews:stats", []byte(`{"total_reviews":0}`), time.Minute).
		SetErr(errors.New("connection refused"))

	assert.NotPanics(t, func() {
		cacheSet(context.Background(), client, "reviews:stats", map[string]int{"total_reviews": 0}, time.Minute)
	})
}

func TestCacheDelFailureIsSwallowed(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	client := cache.NewFromClient(rdb)

	mock.ExpectDel("reviews:list").SetErr(errors.New("connection refused"))

	assert.NotPanics(t, func() {
		cacheDel(context.Background(), client, "reviews:list")
	})
}
