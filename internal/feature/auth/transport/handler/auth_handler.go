// Package handler はauthフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"todo_backend/internal/api"
	"todo_backend/internal/feature/auth/domain"
	"todo_backend/internal/feature/auth/transport/http/dto"
)

// レスポンスメッセージ
const (
	msgRegistered         = "User registered successfully"
	msgUserExists         = "User already exists"
	msgInvalidCredentials = "Invalid credentials"
)

// AuthUsecase は認証操作のユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type AuthUsecase interface {
	// Register は指定されたユーザー名とパスワードで新規ユーザーを登録します。
	Register(ctx context.Context, username, password string) error
	// Authenticate はユーザーを認証し、成功時にアクセストークンを返します。
	Authenticate(ctx context.Context, username, password string) (string, error)
}

// AuthHandler は認証操作のHTTPリクエストを処理します。
type AuthHandler struct {
	auth AuthUsecase
}

// NewAuthHandler はAuthHandlerの新しいインスタンスを生成します。
func NewAuthHandler(auth AuthUsecase) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Register はユーザー登録APIエンドポイントを処理します。
// - バリデーションエラー時は400を返却
// - ユーザー名重複時は400を返却
// - 成功時は201を返却
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.CredentialsReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("register validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.MessageResponse{Message: api.MsgInvalidRequest})
		return
	}

	err := h.auth.Register(c.Request.Context(), req.Username, req.Password)
	switch {
	case err == nil:
		slog.Info("user registered", "username", req.Username, "remote_addr", c.ClientIP())
		c.JSON(http.StatusCreated, api.MessageResponse{Message: msgRegistered})
	case errors.Is(err, domain.ErrDuplicateUser):
		slog.Warn("register rejected", "error", err, "username", req.Username, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.MessageResponse{Message: msgUserExists})
	default:
		slog.Error("register failed", "error", err, "username", req.Username)
		c.JSON(http.StatusInternalServerError, api.MessageResponse{Message: api.MsgInternalError})
	}
}

// Login はユーザーログインAPIエンドポイントを処理します。
// - バリデーションエラー時は400を返却
// - 認証失敗時は401を返却（ユーザー名とパスワードのどちらが誤っているかは公開しない）
// - 認証成功時はアクセストークン付きで200を返却
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.CredentialsReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("login validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.MessageResponse{Message: api.MsgInvalidRequest})
		return
	}

	token, err := h.auth.Authenticate(c.Request.Context(), req.Username, req.Password)
	switch {
	case err == nil:
		slog.Info("user login successful", "username", req.Username, "remote_addr", c.ClientIP())
		c.JSON(http.StatusOK, dto.TokenRes{AccessToken: token})
	case errors.Is(err, domain.ErrInvalidCredentials):
		slog.Warn("login failed", "username", req.Username, "remote_addr", c.ClientIP())
		c.JSON(http.StatusUnauthorized, api.MessageResponse{Message: msgInvalidCredentials})
	default:
		slog.Error("login error", "error", err, "username", req.Username)
		c.JSON(http.StatusInternalServerError, api.MessageResponse{Message: api.MsgInternalError})
	}
}
