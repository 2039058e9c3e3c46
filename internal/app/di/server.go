package di

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"todo_backend/internal/app/config"
	"todo_backend/internal/app/router"
	authhandler "todo_backend/internal/feature/auth/transport/handler"
	authusecase "todo_backend/internal/feature/auth/usecase"
	taskhandler "todo_backend/internal/feature/tasks/transport/handler"
	taskusecase "todo_backend/internal/feature/tasks/usecase"
	jwtmw "todo_backend/internal/platform/jwt"
	"todo_backend/internal/platform/password"
)

// NewEngine wires repositories, usecases and handlers into a gin engine.
// rdb may be nil, in which case task lists are always read from the database.
func NewEngine(cfg *config.Config, db *gorm.DB, rdb *redis.Client) (*gin.Engine, error) {
	generator, err := jwtmw.NewGenerator(cfg.JWTSecret, cfg.JWTExpiration)
	if err != nil {
		return nil, fmt.Errorf("token generator: %w", err)
	}
	verifier, err := jwtmw.NewVerifier(cfg.JWTSecret)
	if err != nil {
		return nil, fmt.Errorf("token verifier: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("sql handle: %w", err)
	}

	// Repository
	userRepo := NewUserRepository(db)
	taskRepo := NewTaskRepository(rdb, db, cfg.Redis.TaskTTL)

	// Usecase
	authUC := authusecase.NewAuthUsecase(userRepo, password.NewBcryptHasher(cfg.BcryptCost), generator)
	taskUC := taskusecase.NewTaskUsecase(taskRepo)

	// Handler
	authH := authhandler.NewAuthHandler(authUC)
	taskH := taskhandler.NewTaskHandler(taskUC)

	return router.NewRouter(router.Handlers{
		Auth:     authH,
		Tasks:    taskH,
		Verifier: verifier,
		DB:       sqlDB,
	}), nil
}
