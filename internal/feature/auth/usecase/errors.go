// Package usecase implements the business logic for the auth feature.
package usecase

import "errors"

var (
	// ErrUserNotFound is returned when a user cannot be found by username or ID.
	ErrUserNotFound = errors.New("user not found")

	// ErrUsernameAlreadyExists is returned by repositories when the unique username index rejects a write.
	ErrUsernameAlreadyExists = errors.New("username already exists")
)
