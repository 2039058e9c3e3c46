// Package dto defines the request and response bodies of the tasks HTTP API.
package dto

import (
	"github.com/oapi-codegen/nullable"

	"todo_backend/internal/feature/tasks/domain/entity"
)

// TaskRes is the wire representation of a task. The owner is never exposed.
type TaskRes struct {
	ID          uint    `json:"id"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Completed   bool    `json:"completed"`
}

// CreateTaskReq is the body of POST /tasks.
type CreateTaskReq struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Completed   *bool   `json:"completed"`
}

// UpdateTaskReq is the body of PUT /tasks/:id. Absent fields are left unchanged.
// Title and Description distinguish an explicit null from an absent key.
type UpdateTaskReq struct {
	Title       nullable.Nullable[string] `json:"title"`
	Description nullable.Nullable[string] `json:"description"`
	Completed   *bool                     `json:"completed"`
}

// NewTaskRes converts a domain task to its response body.
func NewTaskRes(t *entity.Task) TaskRes {
	return TaskRes{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Completed:   t.Completed,
	}
}

// NewTaskListRes converts tasks to a non-nil response slice.
func NewTaskListRes(tasks []entity.Task) []TaskRes {
	res := make([]TaskRes, 0, len(tasks))
	for i := range tasks {
		res = append(res, NewTaskRes(&tasks[i]))
	}
	return res
}
