package usecase

import (
	"errors"
	"fmt"
)

var (
	// ErrTaskNotFound is returned when a task does not exist or belongs to another user.
	// Callers cannot tell the two cases apart.
	ErrTaskNotFound = errors.New("task not found")

	// ErrValidation is the sentinel matched by every ValidationError.
	ErrValidation = errors.New("validation error")
)

// ValidationError describes a rejected field value.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

// Is lets errors.Is(err, ErrValidation) match any ValidationError.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
