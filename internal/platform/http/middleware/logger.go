// Package middleware はアプリケーション共通のGinミドルウェアを提供します。
package middleware

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
)

// RequestLogger は各リクエストのメソッド、パス、ステータス、レイテンシを構造化ログに出力します。
// loggerがnilの場合は slog.Default() を使用します。
func RequestLogger(logger *slog.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = slog.Default()
	}
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		attrs := []any{
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", status,
			"bytes", c.Writer.Size(),
			"latency", time.Since(start),
			"remote_addr", c.ClientIP(),
		}
		if rid := c.GetHeader("X-Request-ID"); rid != "" {
			attrs = append(attrs, "request_id", rid)
		}

		switch {
		case status >= 500:
			logger.Error("http request", attrs...)
		case status >= 400:
			logger.Warn("http request", attrs...)
		default:
			logger.Info("http request", attrs...)
		}
	}
}
