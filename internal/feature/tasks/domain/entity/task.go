// Package entity defines the domain models for the tasks feature.
package entity

import "time"

// Task is a to-do item owned by exactly one user.
// OwnerID is fixed at creation and never reassigned.
type Task struct {
	ID          uint
	Title       string
	Description *string
	Completed   bool
	OwnerID     uint
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
