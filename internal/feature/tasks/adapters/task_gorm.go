// Package adapters provides repository implementations for the tasks feature.
package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"todo_backend/internal/feature/tasks/domain/entity"
	"todo_backend/internal/feature/tasks/usecase"
)

// taskGorm is a GORM implementation of the TaskRepository interface.
// Every query filters on owner_id.
type taskGorm struct {
	db *gorm.DB
}

// Compile-time check to ensure taskGorm implements TaskRepository.
var _ usecase.TaskRepository = (*taskGorm)(nil)

// NewTaskRepository creates a new instance of taskGorm.
func NewTaskRepository(db *gorm.DB) *taskGorm {
	return &taskGorm{db: db}
}

// ListByOwner returns all tasks owned by ownerID ordered by id.
func (r *taskGorm) ListByOwner(ctx context.Context, ownerID uint) ([]entity.Task, error) {
	var models []TaskModel
	if err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("id ASC").
		Find(&models).Error; err != nil {
		return nil, err
	}

	tasks := make([]entity.Task, len(models))
	for i := range models {
		tasks[i] = models[i].ToEntity()
	}
	return tasks, nil
}

// FindByIDAndOwner is the owner-scoped lookup.
func (r *taskGorm) FindByIDAndOwner(ctx context.Context, id, ownerID uint) (*entity.Task, error) {
	var model TaskModel
	if err := r.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", id, ownerID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrTaskNotFound
		}
		return nil, err
	}
	task := model.ToEntity()
	return &task, nil
}

// Create persists a new task and copies the generated fields back.
func (r *taskGorm) Create(ctx context.Context, task *entity.Task) error {
	model := TaskModelFromEntity(task)
	model.ID = 0
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return err
	}
	task.ID = model.ID
	task.CreatedAt = model.CreatedAt
	task.UpdatedAt = model.UpdatedAt
	return nil
}

// Update writes the mutable fields of task. owner_id is never changed.
func (r *taskGorm) Update(ctx context.Context, task *entity.Task) error {
	result := r.db.WithContext(ctx).
		Model(&TaskModel{}).
		Where("id = ? AND owner_id = ?", task.ID, task.OwnerID).
		Updates(map[string]any{
			"title":       task.Title,
			"description": task.Description,
			"completed":   task.Completed,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return usecase.ErrTaskNotFound
	}
	return nil
}

// Delete removes the task matching id and ownerID.
func (r *taskGorm) Delete(ctx context.Context, id, ownerID uint) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", id, ownerID).
		Delete(&TaskModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return usecase.ErrTaskNotFound
	}
	return nil
}
