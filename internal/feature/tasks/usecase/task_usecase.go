// Package usecase implements the owner-scoped task operations.
package usecase

import (
	"context"
	"fmt"

	"todo_backend/internal/feature/tasks/domain/entity"
)

// TaskRepository abstracts the persistence layer for tasks.
// Every method that takes an ownerID must only see rows owned by that user.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type TaskRepository interface {
	// ListByOwner returns every task owned by ownerID.
	ListByOwner(ctx context.Context, ownerID uint) ([]entity.Task, error)

	// FindByIDAndOwner returns the task matching both id and ownerID, or ErrTaskNotFound.
	FindByIDAndOwner(ctx context.Context, id, ownerID uint) (*entity.Task, error)

	// Create persists task and assigns its ID.
	Create(ctx context.Context, task *entity.Task) error

	// Update writes title, description and completed of task, matching on ID and OwnerID.
	// Returns ErrTaskNotFound when no row matches.
	Update(ctx context.Context, task *entity.Task) error

	// Delete removes the task matching both id and ownerID, or returns ErrTaskNotFound.
	Delete(ctx context.Context, id, ownerID uint) error
}

// CreateInput carries the fields accepted on creation.
type CreateInput struct {
	Title       string
	Description *string
	Completed   *bool
}

// UpdateInput carries a partial update. Nil fields keep their stored value.
// ClearDescription removes the stored description and takes precedence over Description.
type UpdateInput struct {
	Title            *string
	Description      *string
	ClearDescription bool
	Completed        *bool
}

// TaskUsecase provides business logic for task operations.
type TaskUsecase struct {
	repo TaskRepository
}

// NewTaskUsecase creates a new TaskUsecase with the given repository.
func NewTaskUsecase(r TaskRepository) *TaskUsecase {
	return &TaskUsecase{repo: r}
}

// validateTitle rejects the empty title. Whitespace is a valid title.
func validateTitle(title string) error {
	if title == "" {
		return &ValidationError{Field: "title", Reason: "must not be empty"}
	}
	return nil
}

// List returns the tasks owned by ownerID. The result is never nil.
func (u *TaskUsecase) List(ctx context.Context, ownerID uint) ([]entity.Task, error) {
	tasks, err := u.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	if tasks == nil {
		tasks = []entity.Task{}
	}
	return tasks, nil
}

// Get returns the task if it exists and is owned by ownerID.
func (u *TaskUsecase) Get(ctx context.Context, ownerID, taskID uint) (*entity.Task, error) {
	if taskID == 0 {
		return nil, ErrTaskNotFound
	}
	return u.repo.FindByIDAndOwner(ctx, taskID, ownerID)
}

// Create validates in and persists a new task owned by ownerID.
// Nothing is written when validation fails.
func (u *TaskUsecase) Create(ctx context.Context, ownerID uint, in CreateInput) (*entity.Task, error) {
	if err := validateTitle(in.Title); err != nil {
		return nil, err
	}

	task := &entity.Task{
		Title:       in.Title,
		Description: in.Description,
		OwnerID:     ownerID,
	}
	if in.Completed != nil {
		task.Completed = *in.Completed
	}

	if err := u.repo.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}
	return task, nil
}

// Update applies the present fields of in to the task owned by ownerID.
// The resulting title is validated before anything is written.
func (u *TaskUsecase) Update(ctx context.Context, ownerID, taskID uint, in UpdateInput) (*entity.Task, error) {
	task, err := u.Get(ctx, ownerID, taskID)
	if err != nil {
		return nil, err
	}

	if in.Title != nil {
		task.Title = *in.Title
	}
	if in.ClearDescription {
		task.Description = nil
	} else if in.Description != nil {
		task.Description = in.Description
	}
	if in.Completed != nil {
		task.Completed = *in.Completed
	}

	if err := validateTitle(task.Title); err != nil {
		return nil, err
	}

	if err := u.repo.Update(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}
	return task, nil
}

// Delete permanently removes the task owned by ownerID.
func (u *TaskUsecase) Delete(ctx context.Context, ownerID, taskID uint) error {
	if taskID == 0 {
		return ErrTaskNotFound
	}
	if err := u.repo.Delete(ctx, taskID, ownerID); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return nil
}
