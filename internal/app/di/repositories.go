// Package di provides dependency injection factories for creating application components.
package di

import (
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	authadapters "todo_backend/internal/feature/auth/adapters"
	authusecase "todo_backend/internal/feature/auth/usecase"
	taskadapters "todo_backend/internal/feature/tasks/adapters"
	taskusecase "todo_backend/internal/feature/tasks/usecase"
	"todo_backend/internal/platform/cache"
)

const taskCacheNamespace = "tasks"

// NewUserRepository creates the gorm-backed UserRepository.
func NewUserRepository(db *gorm.DB) authusecase.UserRepository {
	return authadapters.NewUserRepository(db)
}

// NewTaskRepository creates a TaskRepository implementation.
// If Redis is available, the gorm repository is wrapped with the per-owner list cache.
// Otherwise, the gorm repository is returned as is.
func NewTaskRepository(rdb *redis.Client, db *gorm.DB, ttl time.Duration) taskusecase.TaskRepository {
	repo := taskadapters.NewTaskRepository(db)
	if rdb != nil {
		return cache.NewCachingTaskRepository(rdb, ttl, repo, taskCacheNamespace)
	}
	return repo
}
