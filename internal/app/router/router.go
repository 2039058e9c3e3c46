package router

import (
	"github.com/gin-gonic/gin"

	authhandler "todo_backend/internal/feature/auth/transport/handler"
	taskhandler "todo_backend/internal/feature/tasks/transport/handler"
	platformhandler "todo_backend/internal/platform/http/handler"
	"todo_backend/internal/platform/http/middleware"
	jwtmw "todo_backend/internal/platform/jwt"
)

// Handlers groups everything the router mounts.
type Handlers struct {
	Auth     *authhandler.AuthHandler
	Tasks    *taskhandler.TaskHandler
	Verifier jwtmw.TokenVerifier
	// DB is pinged by /healthz. May be nil.
	DB platformhandler.Pinger
}

func NewRouter(h Handlers) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(nil))

	// 認証不要
	// 導通確認用
	health := platformhandler.NewHealthHandler(h.DB)
	r.GET("/healthz", health.Health)
	r.HEAD("/healthz", health.Health)
	r.OPTIONS("/healthz", health.Health)
	// 新規ユーザー登録
	r.POST("/register", h.Auth.Register)
	// ログイン（JWT 発行）
	r.POST("/login", h.Auth.Login)

	// 認証必須のルート
	// jwtmw.AuthRequired() ミドルウェアを適用
	// → リクエストヘッダーに JWT が必要になる
	tasks := r.Group("/tasks")
	tasks.Use(jwtmw.AuthRequired(h.Verifier))
	{
		tasks.GET("", h.Tasks.List)
		tasks.POST("", h.Tasks.Create)
		tasks.GET("/:id", h.Tasks.Get)
		tasks.PUT("/:id", h.Tasks.Update)
		tasks.DELETE("/:id", h.Tasks.Delete)
	}

	return r
}
