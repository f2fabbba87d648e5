package handlers

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
)

const (
	SUMMARY_CACHE_PREFIX         = "summary:"
	SUMMARY_ORDERS_CACHE_PREFIX  = "summary:orders:"
	SUMMARY_BALANCE_CACHE_PREFIX = "summary:balances:"
	SUMMARY_ITEMS_CACHE_PREFIX   = "summary:items:"
	CACHE_TTL_SHORT              = 5 * time.Minute
)

// SummaryCache caches derived summaries in redis. A nil cache (redis
// disabled) degrades to straight database reads.
type SummaryCache struct {
	redis *redis.Client
}

func NewSummaryCache(redisClient *redis.Client) *SummaryCache {
	if redisClient == nil {
		return nil
	}
	return &SummaryCache{redis: redisClient}
}

func (c *SummaryCache) Get(ctx context.Context, key string, dest interface{}) bool {
	if c == nil {
		return false
	}
	payload, err := c.redis.Get(ctx, key).Bytes()
	if err != nil {
		return false
	}
	return json.Unmarshal(payload, dest) == nil
}

func (c *SummaryCache) Set(ctx context.Context, key string, value interface{}) {
	if c == nil {
		return
	}
	payload, err := json.Marshal(value)
	if err != nil {
		return
	}
	_ = c.redis.Set(ctx, key, payload, CACHE_TTL_SHORT).Err()
}

// Invalidate drops every cached summary. Called on any order, user or item
// write; summaries are recomputed in full on the next read.
func (c *SummaryCache) Invalidate(ctx context.Context) {
	if c == nil {
		return
	}
	keys, err := c.redis.Keys(ctx, SUMMARY_CACHE_PREFIX+"*").Result()
	if err != nil || len(keys) == 0 {
		return
	}
	_ = c.redis.Del(ctx, keys...).Err()
}
