package adapters

import (
	"time"

	"todo_backend/internal/feature/tasks/domain/entity"
)

// TaskModel is the GORM model for the tasks table.
type TaskModel struct {
	ID          uint    `gorm:"primaryKey"`
	Title       string  `gorm:"size:255;not null"`
	Description *string `gorm:"type:text"`
	Completed   bool    `gorm:"not null;default:false"`
	OwnerID     uint    `gorm:"index;not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName returns the table name for GORM.
func (TaskModel) TableName() string {
	return "tasks"
}

// ToEntity converts the GORM model to a domain entity.
func (m *TaskModel) ToEntity() entity.Task {
	return entity.Task{
		ID:          m.ID,
		Title:       m.Title,
		Description: m.Description,
		Completed:   m.Completed,
		OwnerID:     m.OwnerID,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// TaskModelFromEntity converts a domain entity to a GORM model.
func TaskModelFromEntity(t *entity.Task) *TaskModel {
	return &TaskModel{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Completed:   t.Completed,
		OwnerID:     t.OwnerID,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}
