package jwtmw

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"todo_backend/internal/api"
)

// ContextUserID is the gin context key holding the authenticated user ID (uint).
const ContextUserID = "userID"

const bearerPrefix = "Bearer "

// TokenVerifier extracts the user identity from an access token.
type TokenVerifier interface {
	VerifyToken(token string) (uint, error)
}

// AuthRequired returns a Gin middleware function that validates bearer tokens
// and restricts access to authenticated users only.
func AuthRequired(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. Get Authorization header
		auth := c.GetHeader("Authorization")
		if !strings.HasPrefix(auth, bearerPrefix) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, api.MessageResponse{Message: api.MsgMissingAuthHeader})
			return
		}
		tokenStr := strings.TrimSpace(strings.TrimPrefix(auth, bearerPrefix))

		// 2. Verify signature and expiry
		userID, err := verifier.VerifyToken(tokenStr)
		if err != nil {
			slog.Warn("token rejected", "error", err, "remote_addr", c.ClientIP())
			c.AbortWithStatusJSON(http.StatusUnauthorized, api.MessageResponse{Message: api.MsgInvalidToken})
			return
		}

		// 3. Pass control to the next handler
		c.Set(ContextUserID, userID)
		c.Next()
	}
}

// UserID returns the authenticated user ID stored by AuthRequired.
func UserID(c *gin.Context) (uint, bool) {
	v, ok := c.Get(ContextUserID)
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok && id != 0
}
