package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	redisv9 "github.com/redis/go-redis/v9"

	"todo_backend/internal/app/config"
	"todo_backend/internal/app/di"
	"todo_backend/internal/app/server"
	authentity "todo_backend/internal/feature/auth/domain/entity"
	taskadapters "todo_backend/internal/feature/tasks/adapters"
	"todo_backend/internal/platform/db"
	infraredis "todo_backend/internal/platform/redis"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	// 設定読み込み（.envがあれば先に読み込む）
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()})))
	gin.SetMode(cfg.GinMode)

	// db
	gdb, err := db.Open(cfg.DB)
	if err != nil {
		return err
	}
	if sqlDB, err := gdb.DB(); err == nil {
		defer func() {
			if err := sqlDB.Close(); err != nil {
				slog.Error("failed to close database", "error", err)
			}
		}()
	}
	if err := db.Migrate(gdb, &authentity.User{}, &taskadapters.TaskModel{}); err != nil {
		return err
	}
	slog.Info("database ready", "driver", cfg.DB.Driver)

	// Redis（任意）
	var rdb *redisv9.Client
	if cfg.Redis.Enabled() {
		if tmp, err := infraredis.NewRedisClient(ctx, cfg.Redis.Addr(), cfg.Redis.Password); err != nil {
			slog.Warn("Redis unavailable. Running without cache.", "error", err)
		} else {
			rdb = tmp
			defer func() {
				if err := rdb.Close(); err != nil {
					slog.Error("failed to close Redis client", "error", err)
				}
			}()
		}
	}

	engine, err := di.NewEngine(cfg, gdb, rdb)
	if err != nil {
		return err
	}

	return server.Serve(ctx, ":"+cfg.Port, engine)
}
