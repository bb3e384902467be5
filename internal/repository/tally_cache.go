package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/spec-kit/election-service/internal/domain"
)

const tallyCacheKey = "election:tally"

// TallyCache stores a short-lived copy of the vote-count report so the
// public count endpoint does not hit Postgres on every request.
type TallyCache interface {
	Get(ctx context.Context) ([]domain.TallyEntry, error)
	Set(ctx context.Context, entries []domain.TallyEntry) error
	Invalidate(ctx context.Context) error
}

type redisTallyCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisTallyCache builds a Redis-backed tally cache.
func NewRedisTallyCache(client *redis.Client, ttl time.Duration) TallyCache {
	return &redisTallyCache{client: client, ttl: ttl}
}

// Get returns the cached tally, or (nil, nil) on a cache miss.
func (c *redisTallyCache) Get(ctx context.Context) ([]domain.TallyEntry, error) {
	raw, err := c.client.Get(ctx, tallyCacheKey).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var entries []domain.TallyEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (c *redisTallyCache) Set(ctx context.Context, entries []domain.TallyEntry) error {
	raw, err := json.Marshal(entries)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, tallyCacheKey, raw, c.ttl).Err()
}

func (c *redisTallyCache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, tallyCacheKey).Err()
}
