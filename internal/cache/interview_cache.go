// Package cache stores interview query results in Redis.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"

	"github.com/spec-kit/interview-service/internal/domain"
)

const defaultPrefix = "interviews"

// InterviewCache is a read-through cache of interview query results.
//
// Entries are namespaced by a generation counter. Invalidate bumps the counter, which
// orphans every entry at once; orphans expire through their TTL.
type InterviewCache struct {
	client *redis.Client
	ttl    time.Duration
	prefix string
}

// NewInterviewCache builds a cache. It returns nil when client is nil or ttl is not
// positive; a nil cache is valid and never hits.
func NewInterviewCache(client *redis.Client, ttl time.Duration) *InterviewCache {
	if client == nil || ttl <= 0 {
		return nil
	}
	return &InterviewCache{client: client, ttl: ttl, prefix: defaultPrefix}
}

// Get returns the cached result for key along with the generation it was looked up
// under. The generation must be passed back to Set.
func (c *InterviewCache) Get(ctx context.Context, key string) ([]domain.Interview, int64, bool, error) {
	if c == nil {
		return nil, 0, false, nil
	}
	gen, err := c.generation(ctx)
	if err != nil {
		return nil, 0, false, err
	}

	raw, err := c.client.Get(ctx, c.entryKey(gen, key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, gen, false, nil
	}
	if err != nil {
		return nil, gen, false, errors.Wrap(err, "cache get")
	}

	var items []domain.Interview
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, gen, false, errors.Wrap(err, "cache decode")
	}
	return items, gen, true, nil
}

// Set stores items under key for the given generation.
func (c *InterviewCache) Set(ctx context.Context, gen int64, key string, items []domain.Interview) error {
	if c == nil {
		return nil
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return errors.Wrap(err, "cache encode")
	}
	if err := c.client.Set(ctx, c.entryKey(gen, key), raw, c.ttl).Err(); err != nil {
		return errors.Wrap(err, "cache set")
	}
	return nil
}

// Invalidate drops every cached result.
func (c *InterviewCache) Invalidate(ctx context.Context) error {
	if c == nil {
		return nil
	}
	if err := c.client.Incr(ctx, c.generationKey()).Err(); err != nil {
		return errors.Wrap(err, "cache invalidate")
	}
	return nil
}

func (c *InterviewCache) generation(ctx context.Context) (int64, error) {
	gen, err := c.client.Get(ctx, c.generationKey()).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, errors.Wrap(err, "cache generation")
	}
	return gen, nil
}

func (c *InterviewCache) generationKey() string {
	return c.prefix + ":generation"
}

func (c *InterviewCache) entryKey(gen int64, key string) string {
	return fmt.Sprintf("%s:g%d:%s", c.prefix, gen, key)
}
