// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"todo_backend/internal/feature/tasks/domain/entity"
	"todo_backend/internal/feature/tasks/usecase"
)

// CachingTaskRepository decorates a TaskRepository with a per-owner Redis cache
// of task lists. Every successful write by an owner moves that owner to a new generation.
type CachingTaskRepository struct {
	inner     usecase.TaskRepository
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

var _ usecase.TaskRepository = (*CachingTaskRepository)(nil)

// NewCachingTaskRepository decorates a TaskRepository with Redis caching.
// If ttl is 0, it defaults to 5 minutes. If namespace is empty, it uses "tasks".
// A nil rdb disables caching.
func NewCachingTaskRepository(rdb *redis.Client, ttl time.Duration, inner usecase.TaskRepository, namespace string) *CachingTaskRepository {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if namespace == "" {
		namespace = "tasks"
	}
	return &CachingTaskRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// ListByOwner checks the cache first, then falls back to the inner repository.
// The entry is keyed by the owner's current generation, read before the database,
// so a list loaded before a concurrent write is stored under a generation nobody reads again.
func (c *CachingTaskRepository) ListByOwner(ctx context.Context, ownerID uint) ([]entity.Task, error) {
	if c.rdb == nil {
		return c.inner.ListByOwner(ctx, ownerID)
	}

	gen, err := c.generation(ctx, ownerID)
	if err != nil {
		slog.Warn("task cache generation unavailable", "owner_id", ownerID, "error", err)
		return c.inner.ListByOwner(ctx, ownerID)
	}
	key := c.cacheKey(ownerID, gen)

	// 1) Check cache
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out []entity.Task
		if err := json.Unmarshal(b, &out); err == nil {
			return out, nil
		}
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
	}

	// 2) Fallback to database
	out, err := c.inner.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	// 3) Store in cache (best effort)
	if b, err := json.Marshal(out); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}
	return out, nil
}

// FindByIDAndOwner is not cached.
func (c *CachingTaskRepository) FindByIDAndOwner(ctx context.Context, id, ownerID uint) (*entity.Task, error) {
	return c.inner.FindByIDAndOwner(ctx, id, ownerID)
}

// Create persists the task and invalidates the owner's list.
func (c *CachingTaskRepository) Create(ctx context.Context, task *entity.Task) error {
	if err := c.inner.Create(ctx, task); err != nil {
		return err
	}
	c.invalidate(ctx, task.OwnerID)
	return nil
}

// Update writes the task and invalidates the owner's list.
func (c *CachingTaskRepository) Update(ctx context.Context, task *entity.Task) error {
	if err := c.inner.Update(ctx, task); err != nil {
		return err
	}
	c.invalidate(ctx, task.OwnerID)
	return nil
}

// Delete removes the task and invalidates the owner's list.
func (c *CachingTaskRepository) Delete(ctx context.Context, id, ownerID uint) error {
	if err := c.inner.Delete(ctx, id, ownerID); err != nil {
		return err
	}
	c.invalidate(ctx, ownerID)
	return nil
}

// invalidate bumps the owner's generation so every list cached so far is unreachable.
func (c *CachingTaskRepository) invalidate(ctx context.Context, ownerID uint) {
	if c.rdb == nil {
		return
	}
	if err := c.rdb.Incr(ctx, c.generationKey(ownerID)).Err(); err != nil {
		// A stale entry lives at most ttl.
		slog.Warn("task cache invalidation failed", "owner_id", ownerID, "error", err)
	}
}

// generation returns the owner's current cache generation, 0 when none was recorded.
func (c *CachingTaskRepository) generation(ctx context.Context, ownerID uint) (int64, error) {
	gen, err := c.rdb.Get(ctx, c.generationKey(ownerID)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

func (c *CachingTaskRepository) generationKey(ownerID uint) string {
	return fmt.Sprintf("%s:owner:%d:gen", c.namespace, ownerID)
}

// cacheKey generates the cache key for an owner's task list at a generation.
func (c *CachingTaskRepository) cacheKey(ownerID uint, gen int64) string {
	return fmt.Sprintf("%s:owner:%d:v%d", c.namespace, ownerID, gen)
}
