package adapters

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"todo_backend/internal/feature/tasks/domain/entity"
	"todo_backend/internal/feature/tasks/usecase"
)

// setupTestDB prepares an in-memory SQLite database with the tasks table.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err, "failed to initialize test database")

	// :memory: databases are per connection
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&TaskModel{}), "failed to migrate table")
	return db
}

func strPtr(s string) *string { return &s }

func createTask(t *testing.T, repo *taskGorm, ownerID uint, title string) *entity.Task {
	t.Helper()
	task := &entity.Task{Title: title, OwnerID: ownerID}
	require.NoError(t, repo.Create(context.Background(), task))
	return task
}

func TestTaskGorm_Create(t *testing.T) {
	repo := NewTaskRepository(setupTestDB(t))

	task := &entity.Task{Title: "Buy milk", Description: strPtr("semi-skimmed"), OwnerID: 1}
	err := repo.Create(context.Background(), task)

	require.NoError(t, err)
	assert.NotZero(t, task.ID)
	assert.False(t, task.CreatedAt.IsZero())

	found, err := repo.FindByIDAndOwner(context.Background(), task.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, "Buy milk", found.Title)
	assert.Equal(t, strPtr("semi-skimmed"), found.Description)
	assert.False(t, found.Completed)
}

func TestTaskGorm_CreateWithoutDescription(t *testing.T) {
	repo := NewTaskRepository(setupTestDB(t))

	task := createTask(t, repo, 1, "no description")

	found, err := repo.FindByIDAndOwner(context.Background(), task.ID, 1)
	require.NoError(t, err)
	assert.Nil(t, found.Description)
}

func TestTaskGorm_ListByOwner(t *testing.T) {
	repo := NewTaskRepository(setupTestDB(t))
	ctx := context.Background()

	createTask(t, repo, 1, "a1")
	createTask(t, repo, 2, "b1")
	createTask(t, repo, 1, "a2")

	tasks, err := repo.ListByOwner(ctx, 1)
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, "a1", tasks[0].Title)
	assert.Equal(t, "a2", tasks[1].Title)

	none, err := repo.ListByOwner(ctx, 3)
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestTaskGorm_FindByIDAndOwner(t *testing.T) {
	repo := NewTaskRepository(setupTestDB(t))
	task := createTask(t, repo, 1, "mine")

	tests := []struct {
		name    string
		id      uint
		ownerID uint
		wantErr error
	}{
		{"owner", task.ID, 1, nil},
		{"other owner", task.ID, 2, usecase.ErrTaskNotFound},
		{"missing id", 9999, 1, usecase.ErrTaskNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			found, err := repo.FindByIDAndOwner(context.Background(), tt.id, tt.ownerID)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, found)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, task.ID, found.ID)
		})
	}
}

func TestTaskGorm_Update(t *testing.T) {
	t.Run("updates mutable fields including zero values", func(t *testing.T) {
		repo := NewTaskRepository(setupTestDB(t))
		ctx := context.Background()
		task := &entity.Task{Title: "old", Description: strPtr("desc"), Completed: true, OwnerID: 1}
		require.NoError(t, repo.Create(ctx, task))

		task.Title = "new"
		task.Description = nil
		task.Completed = false
		require.NoError(t, repo.Update(ctx, task))

		found, err := repo.FindByIDAndOwner(ctx, task.ID, 1)
		require.NoError(t, err)
		assert.Equal(t, "new", found.Title)
		assert.Nil(t, found.Description)
		assert.False(t, found.Completed)
	})

	t.Run("foreign owner cannot update", func(t *testing.T) {
		repo := NewTaskRepository(setupTestDB(t))
		ctx := context.Background()
		task := createTask(t, repo, 1, "mine")

		hijack := *task
		hijack.OwnerID = 2
		hijack.Title = "stolen"
		err := repo.Update(ctx, &hijack)

		assert.ErrorIs(t, err, usecase.ErrTaskNotFound)
		found, err := repo.FindByIDAndOwner(ctx, task.ID, 1)
		require.NoError(t, err)
		assert.Equal(t, "mine", found.Title)
		assert.Equal(t, uint(1), found.OwnerID)
	})

	t.Run("missing task", func(t *testing.T) {
		repo := NewTaskRepository(setupTestDB(t))

		err := repo.Update(context.Background(), &entity.Task{ID: 9999, Title: "x", OwnerID: 1})

		assert.ErrorIs(t, err, usecase.ErrTaskNotFound)
	})
}

func TestTaskGorm_Delete(t *testing.T) {
	repo := NewTaskRepository(setupTestDB(t))
	ctx := context.Background()
	task := createTask(t, repo, 1, "Task to Delete")

	assert.ErrorIs(t, repo.Delete(ctx, task.ID, 2), usecase.ErrTaskNotFound)
	_, err := repo.FindByIDAndOwner(ctx, task.ID, 1)
	require.NoError(t, err, "foreign delete must not remove the task")

	require.NoError(t, repo.Delete(ctx, task.ID, 1))

	_, err = repo.FindByIDAndOwner(ctx, task.ID, 1)
	assert.ErrorIs(t, err, usecase.ErrTaskNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, task.ID, 1), usecase.ErrTaskNotFound)
}

func TestTaskModel_Conversion(t *testing.T) {
	t.Parallel()

	task := &entity.Task{ID: 3, Title: "t", Description: strPtr("d"), Completed: true, OwnerID: 9}
	back := TaskModelFromEntity(task).ToEntity()

	assert.Equal(t, *task, back)
}
