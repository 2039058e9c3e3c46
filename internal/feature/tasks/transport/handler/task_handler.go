// Package handler provides the HTTP handlers of the tasks feature.
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/oapi-codegen/runtime"

	"todo_backend/internal/api"
	"todo_backend/internal/feature/tasks/domain/entity"
	"todo_backend/internal/feature/tasks/transport/http/dto"
	"todo_backend/internal/feature/tasks/usecase"
	jwtmw "todo_backend/internal/platform/jwt"
)

const (
	msgTaskNotFound = "Task not found"
	msgTaskDeleted  = "Task deleted"
)

// TaskUsecase defines the owner-scoped task operations used by the handler.
type TaskUsecase interface {
	List(ctx context.Context, ownerID uint) ([]entity.Task, error)
	Get(ctx context.Context, ownerID, taskID uint) (*entity.Task, error)
	Create(ctx context.Context, ownerID uint, in usecase.CreateInput) (*entity.Task, error)
	Update(ctx context.Context, ownerID, taskID uint, in usecase.UpdateInput) (*entity.Task, error)
	Delete(ctx context.Context, ownerID, taskID uint) error
}

// TaskHandler handles HTTP requests for tasks.
type TaskHandler struct {
	tasks TaskUsecase
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(tasks TaskUsecase) *TaskHandler {
	return &TaskHandler{tasks: tasks}
}

// List handles GET /tasks.
func (h *TaskHandler) List(c *gin.Context) {
	ownerID, ok := h.owner(c)
	if !ok {
		return
	}

	tasks, err := h.tasks.List(c.Request.Context(), ownerID)
	if err != nil {
		h.writeError(c, err, "list tasks", ownerID)
		return
	}
	c.JSON(http.StatusOK, dto.NewTaskListRes(tasks))
}

// Get handles GET /tasks/:id.
func (h *TaskHandler) Get(c *gin.Context) {
	ownerID, ok := h.owner(c)
	if !ok {
		return
	}
	taskID, ok := taskIDParam(c)
	if !ok {
		return
	}

	task, err := h.tasks.Get(c.Request.Context(), ownerID, taskID)
	if err != nil {
		h.writeError(c, err, "get task", ownerID)
		return
	}
	c.JSON(http.StatusOK, dto.NewTaskRes(task))
}

// Create handles POST /tasks.
// - 不正なJSONは400
// - タイトル未指定・空白のみは400（何も保存しない）
// - 成功時は201
func (h *TaskHandler) Create(c *gin.Context) {
	ownerID, ok := h.owner(c)
	if !ok {
		return
	}

	var req dto.CreateTaskReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("create task bad request", "error", err, "user_id", ownerID)
		c.JSON(http.StatusBadRequest, api.MessageResponse{Message: api.MsgInvalidRequest})
		return
	}

	task, err := h.tasks.Create(c.Request.Context(), ownerID, usecase.CreateInput{
		Title:       req.Title,
		Description: req.Description,
		Completed:   req.Completed,
	})
	if err != nil {
		h.writeError(c, err, "create task", ownerID)
		return
	}
	slog.Info("task created", "task_id", task.ID, "user_id", ownerID)
	c.JSON(http.StatusCreated, dto.NewTaskRes(task))
}

// Update handles PUT /tasks/:id. Fields absent from the body keep their stored value.
func (h *TaskHandler) Update(c *gin.Context) {
	ownerID, ok := h.owner(c)
	if !ok {
		return
	}
	taskID, ok := taskIDParam(c)
	if !ok {
		return
	}

	var req dto.UpdateTaskReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("update task bad request", "error", err, "user_id", ownerID, "task_id", taskID)
		c.JSON(http.StatusBadRequest, api.MessageResponse{Message: api.MsgInvalidRequest})
		return
	}

	task, err := h.tasks.Update(c.Request.Context(), ownerID, taskID, updateInput(req))
	if err != nil {
		h.writeError(c, err, "update task", ownerID)
		return
	}
	c.JSON(http.StatusOK, dto.NewTaskRes(task))
}

// Delete handles DELETE /tasks/:id.
func (h *TaskHandler) Delete(c *gin.Context) {
	ownerID, ok := h.owner(c)
	if !ok {
		return
	}
	taskID, ok := taskIDParam(c)
	if !ok {
		return
	}

	if err := h.tasks.Delete(c.Request.Context(), ownerID, taskID); err != nil {
		h.writeError(c, err, "delete task", ownerID)
		return
	}
	slog.Info("task deleted", "task_id", taskID, "user_id", ownerID)
	c.JSON(http.StatusOK, api.MessageResponse{Message: msgTaskDeleted})
}

// updateInput maps the request body onto a partial update.
// A null title is an empty title; a null description clears it.
func updateInput(req dto.UpdateTaskReq) usecase.UpdateInput {
	in := usecase.UpdateInput{Completed: req.Completed}
	if req.Title.IsSpecified() {
		title := ""
		if !req.Title.IsNull() {
			title = req.Title.MustGet()
		}
		in.Title = &title
	}
	if req.Description.IsSpecified() {
		if req.Description.IsNull() {
			in.ClearDescription = true
		} else {
			desc := req.Description.MustGet()
			in.Description = &desc
		}
	}
	return in
}

// owner reads the caller identity set by the auth middleware.
func (h *TaskHandler) owner(c *gin.Context) (uint, bool) {
	id, ok := jwtmw.UserID(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, api.MessageResponse{Message: api.MsgInvalidToken})
		return 0, false
	}
	return id, true
}

// taskIDParam binds the :id path segment. Anything that is not a positive
// integer is answered exactly like an unknown task.
func taskIDParam(c *gin.Context) (uint, bool) {
	var id int64
	err := runtime.BindStyledParameterWithOptions("simple", "id", c.Param("id"), &id, runtime.BindStyledParameterOptions{
		ParamLocation: runtime.ParamLocationPath,
		Explode:       false,
		Required:      true,
	})
	if err != nil || id <= 0 {
		c.JSON(http.StatusNotFound, api.MessageResponse{Message: msgTaskNotFound})
		return 0, false
	}
	return uint(id), true
}

func (h *TaskHandler) writeError(c *gin.Context, err error, op string, ownerID uint) {
	switch {
	case errors.Is(err, usecase.ErrTaskNotFound):
		c.JSON(http.StatusNotFound, api.MessageResponse{Message: msgTaskNotFound})
	case errors.Is(err, usecase.ErrValidation):
		slog.Warn(op+" rejected", "error", err, "user_id", ownerID)
		c.JSON(http.StatusBadRequest, api.MessageResponse{Message: err.Error()})
	default:
		slog.Error(op+" failed", "error", err, "user_id", ownerID)
		c.JSON(http.StatusInternalServerError, api.MessageResponse{Message: api.MsgInternalError})
	}
}
