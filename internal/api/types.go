// Package api holds the response bodies shared by every HTTP feature.
package api

// MessageResponse is the body for acknowledgements and every error response.
type MessageResponse struct {
	Message string `json:"message"`
}

// Common messages.
const (
	MsgInvalidRequest    = "invalid request"
	MsgInternalError     = "internal server error"
	MsgMissingAuthHeader = "Missing Authorization Header"
	MsgInvalidToken      = "Invalid or expired token"
)
