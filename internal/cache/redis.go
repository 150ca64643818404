// Package cache provides an optional Redis read-through cache for recipes.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	recipeKeyPrefix = "recipe:%s"

	// TopRatedKey holds the cached top-rated list
	TopRatedKey = "recipes:top-rated"

	// generationTTL must outlast the slowest fetch
	generationTTL = time.Hour
)

var errStaleFill = errors.New("cache key invalidated during fetch")

// RecipeKey returns the cache key of a single recipe
func RecipeKey(id uuid.UUID) string {
	return fmt.Sprintf(recipeKeyPrefix, id)
}

// RecipeCache wraps a Redis client. A nil *RecipeCache is valid and
// behaves as an always-missing cache.
type RecipeCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// New creates a RecipeCache; ttl applies to every entry
func New(client *redis.Client, ttl time.Duration, logger *slog.Logger) *RecipeCache {
	if logger == nil {
		logger = slog.Default()
	}
	return &RecipeCache{client: client, ttl: ttl, logger: logger}
}

// GetJSON attempts to get the key and unmarshal it into dest.
// Returns (true, nil) if found, (false, nil) on a miss.
func (c *RecipeCache) GetJSON(ctx context.Context, key string, dest any) (bool, error) {
	if c == nil {
		return false, nil
	}
	s, err := c.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal([]byte(s), dest); err != nil {
		return false, err
	}
	return true, nil
}

// SetJSON marshals v and stores it under key
func (c *RecipeCache) SetJSON(ctx context.Context, key string, v any) error {
	if c == nil {
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, b, c.ttl).Err()
}

// Aside serves dest from the cache, or calls fetch to populate it and
// stores the result. Cache errors are logged and never returned; only
// fetch errors reach the caller. The fill is skipped when the key was
// invalidated while fetch ran, so a concurrent write is never undone.
func (c *RecipeCache) Aside(ctx context.Context, key string, dest any, fetch func() error) error {
	found, err := c.GetJSON(ctx, key, dest)
	if err != nil {
		c.logger.WarnContext(ctx, "cache read failed", slog.String("key", key), slog.Any("error", err))
	}
	if found {
		return nil
	}

	gen, genErr := c.generation(ctx, key)
	if genErr != nil {
		c.logger.WarnContext(ctx, "cache read failed", slog.String("key", key), slog.Any("error", genErr))
	}

	if err := fetch(); err != nil {
		return err
	}

	// without a generation the fill could not be checked
	if genErr == nil {
		c.fill(ctx, key, gen, dest)
	}
	return nil
}

// generation returns the invalidation counter of key ("" if never invalidated)
func (c *RecipeCache) generation(ctx context.Context, key string) (string, error) {
	if c == nil {
		return "", nil
	}
	gen, err := c.client.Get(ctx, generationKey(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	return gen, err
}

// fill stores v under key only if key's generation still equals gen
func (c *RecipeCache) fill(ctx context.Context, key, gen string, v any) {
	if c == nil {
		return
	}
	b, err := json.Marshal(v)
	if err != nil {
		c.logger.WarnContext(ctx, "cache write failed", slog.String("key", key), slog.Any("error", err))
		return
	}

	genKey := generationKey(key)
	err = c.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, genKey).Result()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if current != gen {
			return errStaleFill
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, b, c.ttl)
			return nil
		})
		return err
	}, genKey)

	switch {
	case errors.Is(err, errStaleFill), errors.Is(err, redis.TxFailedErr):
		c.logger.DebugContext(ctx, "cache fill skipped after invalidation", slog.String("key", key))
	case err != nil:
		c.logger.WarnContext(ctx, "cache write failed", slog.String("key", key), slog.Any("error", err))
	}
}

// Invalidate drops the given keys and bumps their generation so that
// fills already in flight are discarded
func (c *RecipeCache) Invalidate(ctx context.Context, keys ...string) {
	if c == nil || len(keys) == 0 {
		return
	}
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, keys...)
		for _, key := range keys {
			pipe.Incr(ctx, generationKey(key))
			pipe.Expire(ctx, generationKey(key), generationTTL)
		}
		return nil
	})
	if err != nil {
		c.logger.WarnContext(ctx, "cache invalidation failed", slog.Any("keys", keys), slog.Any("error", err))
	}
}

// InvalidateRecipe drops a recipe and every list that may contain it
func (c *RecipeCache) InvalidateRecipe(ctx context.Context, id uuid.UUID) {
	c.Invalidate(ctx, RecipeKey(id), TopRatedKey)
}

func generationKey(key string) string {
	return key + ":gen"
}
