// Package domain defines domain-level errors for the auth feature.
package domain

import "errors"

// Domain errors for authentication operations.
// Upper layers map them to HTTP responses.
var (
	// ErrDuplicateUser indicates that the requested username is already registered.
	ErrDuplicateUser = errors.New("user already exists")

	// ErrInvalidCredentials indicates that the username is unknown or the password does not match.
	// Both cases share this error so callers cannot tell which part was wrong.
	ErrInvalidCredentials = errors.New("invalid credentials")
)
