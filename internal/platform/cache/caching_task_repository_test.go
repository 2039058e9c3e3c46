package cache

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"

	"todo_backend/internal/feature/tasks/domain/entity"
	"todo_backend/internal/feature/tasks/usecase"
)

// mockTaskRepository is a mock implementation of usecase.TaskRepository.
type mockTaskRepository struct {
	listFn   func(ctx context.Context, ownerID uint) ([]entity.Task, error)
	findFn   func(ctx context.Context, id, ownerID uint) (*entity.Task, error)
	createFn func(ctx context.Context, task *entity.Task) error
	updateFn func(ctx context.Context, task *entity.Task) error
	deleteFn func(ctx context.Context, id, ownerID uint) error
}

func (m *mockTaskRepository) ListByOwner(ctx context.Context, ownerID uint) ([]entity.Task, error) {
	if m.listFn != nil {
		return m.listFn(ctx, ownerID)
	}
	return nil, nil
}

func (m *mockTaskRepository) FindByIDAndOwner(ctx context.Context, id, ownerID uint) (*entity.Task, error) {
	if m.findFn != nil {
		return m.findFn(ctx, id, ownerID)
	}
	return nil, usecase.ErrTaskNotFound
}

func (m *mockTaskRepository) Create(ctx context.Context, task *entity.Task) error {
	if m.createFn != nil {
		return m.createFn(ctx, task)
	}
	return nil
}

func (m *mockTaskRepository) Update(ctx context.Context, task *entity.Task) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, task)
	}
	return nil
}

func (m *mockTaskRepository) Delete(ctx context.Context, id, ownerID uint) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id, ownerID)
	}
	return nil
}

// TestNewCachingTaskRepository_Defaults はTTLと名前空間のデフォルト値が設定されることを検証します。
func TestNewCachingTaskRepository_Defaults(t *testing.T) {
	t.Parallel()

	repo := NewCachingTaskRepository(nil, 0, &mockTaskRepository{}, "")

	if repo.ttl != 5*time.Minute {
		t.Errorf("expected default ttl 5m, got %v", repo.ttl)
	}
	if repo.namespace != "tasks" {
		t.Errorf("expected default namespace 'tasks', got %q", repo.namespace)
	}
	if got := repo.cacheKey(42, 3); got != "tasks:owner:42:v3" {
		t.Errorf("unexpected cache key %q", got)
	}
	if got := repo.generationKey(42); got != "tasks:owner:42:gen" {
		t.Errorf("unexpected generation key %q", got)
	}
}

// TestCachingTaskRepository_NilRedis はRedisが未設定の場合にキャッシュをバイパスすることを検証します。
func TestCachingTaskRepository_NilRedis(t *testing.T) {
	t.Parallel()

	calls := 0
	inner := &mockTaskRepository{
		listFn: func(ctx context.Context, ownerID uint) ([]entity.Task, error) {
			calls++
			return []entity.Task{{ID: 1, Title: "a", OwnerID: ownerID}}, nil
		},
	}
	repo := NewCachingTaskRepository(nil, time.Minute, inner, "tasks")

	for i := 0; i < 2; i++ {
		tasks, err := repo.ListByOwner(context.Background(), 1)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(tasks) != 1 {
			t.Fatalf("expected 1 task, got %d", len(tasks))
		}
	}
	if calls != 2 {
		t.Errorf("expected inner to be called twice, got %d", calls)
	}
	if err := repo.Create(context.Background(), &entity.Task{Title: "x", OwnerID: 1}); err != nil {
		t.Errorf("unexpected error on create: %v", err)
	}
}

// TestCachingTaskRepository_List_CacheHit はキャッシュヒット時に内部リポジトリを呼ばないことを検証します。
func TestCachingTaskRepository_List_CacheHit(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	cached := []entity.Task{{ID: 1, Title: "Buy milk", OwnerID: 7}}
	cachedJSON, _ := json.Marshal(cached)
	mock.ExpectGet("tasks:owner:7:gen").SetVal("2")
	mock.ExpectGet("tasks:owner:7:v2").SetVal(string(cachedJSON))

	innerCalled := false
	inner := &mockTaskRepository{
		listFn: func(ctx context.Context, ownerID uint) ([]entity.Task, error) {
			innerCalled = true
			return nil, nil
		},
	}

	repo := NewCachingTaskRepository(rdb, 5*time.Minute, inner, "tasks")
	tasks, err := repo.ListByOwner(context.Background(), 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if innerCalled {
		t.Error("inner repository should not be called on cache hit")
	}
	if len(tasks) != 1 || tasks[0].Title != "Buy milk" {
		t.Errorf("unexpected tasks: %+v", tasks)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled mock expectations: %v", err)
	}
}

// TestCachingTaskRepository_List_CacheMiss はキャッシュミス時にDBから取得してキャッシュに保存することを検証します。
func TestCachingTaskRepository_List_CacheMiss(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	expected := []entity.Task{{ID: 1, Title: "Buy milk", OwnerID: 7}}
	expectedJSON, _ := json.Marshal(expected)

	mock.ExpectGet("tasks:owner:7:gen").RedisNil()
	mock.ExpectGet("tasks:owner:7:v0").RedisNil()
	mock.ExpectSet("tasks:owner:7:v0", expectedJSON, 5*time.Minute).SetVal("OK")

	inner := &mockTaskRepository{
		listFn: func(ctx context.Context, ownerID uint) ([]entity.Task, error) {
			if ownerID != 7 {
				t.Errorf("expected owner 7, got %d", ownerID)
			}
			return expected, nil
		},
	}

	repo := NewCachingTaskRepository(rdb, 5*time.Minute, inner, "tasks")
	tasks, err := repo.ListByOwner(context.Background(), 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tasks) != 1 {
		t.Errorf("expected 1 task, got %d", len(tasks))
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled mock expectations: %v", err)
	}
}

// TestCachingTaskRepository_List_CorruptedEntry は壊れたキャッシュを削除してDBから取得することを検証します。
func TestCachingTaskRepository_List_CorruptedEntry(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	expected := []entity.Task{}
	expectedJSON, _ := json.Marshal(expected)

	mock.ExpectGet("tasks:owner:1:gen").RedisNil()
	mock.ExpectGet("tasks:owner:1:v0").SetVal("{not json")
	mock.ExpectDel("tasks:owner:1:v0").SetVal(1)
	mock.ExpectSet("tasks:owner:1:v0", expectedJSON, time.Minute).SetVal("OK")

	inner := &mockTaskRepository{
		listFn: func(ctx context.Context, ownerID uint) ([]entity.Task, error) {
			return expected, nil
		},
	}

	repo := NewCachingTaskRepository(rdb, time.Minute, inner, "tasks")
	tasks, err := repo.ListByOwner(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tasks == nil || len(tasks) != 0 {
		t.Errorf("expected empty non-nil slice, got %#v", tasks)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled mock expectations: %v", err)
	}
}

// TestCachingTaskRepository_List_InnerError は内部リポジトリのエラーが伝播され、キャッシュされないことを検証します。
func TestCachingTaskRepository_List_InnerError(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	expectedErr := errors.New("database error")
	mock.ExpectGet("tasks:owner:1:gen").RedisNil()
	mock.ExpectGet("tasks:owner:1:v0").RedisNil()

	inner := &mockTaskRepository{
		listFn: func(ctx context.Context, ownerID uint) ([]entity.Task, error) {
			return nil, expectedErr
		},
	}

	repo := NewCachingTaskRepository(rdb, time.Minute, inner, "tasks")
	_, err := repo.ListByOwner(context.Background(), 1)
	if !errors.Is(err, expectedErr) {
		t.Errorf("expected %v, got %v", expectedErr, err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled mock expectations: %v", err)
	}
}

// TestCachingTaskRepository_WritesInvalidate は書き込み成功時に所有者のキャッシュ世代が進むことを検証します。
func TestCachingTaskRepository_WritesInvalidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		write func(repo *CachingTaskRepository) error
	}{
		{"create", func(repo *CachingTaskRepository) error {
			return repo.Create(context.Background(), &entity.Task{Title: "x", OwnerID: 3})
		}},
		{"update", func(repo *CachingTaskRepository) error {
			return repo.Update(context.Background(), &entity.Task{ID: 1, Title: "x", OwnerID: 3})
		}},
		{"delete", func(repo *CachingTaskRepository) error {
			return repo.Delete(context.Background(), 1, 3)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rdb, mock := redismock.NewClientMock()
			defer func() { _ = rdb.Close() }()
			mock.ExpectIncr("tasks:owner:3:gen").SetVal(1)

			repo := NewCachingTaskRepository(rdb, time.Minute, &mockTaskRepository{}, "tasks")
			if err := tt.write(repo); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if err := mock.ExpectationsWereMet(); err != nil {
				t.Errorf("unfulfilled mock expectations: %v", err)
			}
		})
	}
}

// TestCachingTaskRepository_FailedWriteKeepsCache は書き込み失敗時にキャッシュを操作しないことを検証します。
func TestCachingTaskRepository_FailedWriteKeepsCache(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	inner := &mockTaskRepository{
		deleteFn: func(ctx context.Context, id, ownerID uint) error {
			return usecase.ErrTaskNotFound
		},
	}

	repo := NewCachingTaskRepository(rdb, time.Minute, inner, "tasks")
	err := repo.Delete(context.Background(), 1, 3)
	if !errors.Is(err, usecase.ErrTaskNotFound) {
		t.Errorf("expected ErrTaskNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unexpected redis calls: %v", err)
	}
}

// TestCachingTaskRepository_FindPassesThrough は単一取得がキャッシュを経由しないことを検証します。
func TestCachingTaskRepository_FindPassesThrough(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	inner := &mockTaskRepository{
		findFn: func(ctx context.Context, id, ownerID uint) (*entity.Task, error) {
			return &entity.Task{ID: id, OwnerID: ownerID, Title: "t"}, nil
		},
	}
	repo := NewCachingTaskRepository(rdb, time.Minute, inner, "tasks")

	task, err := repo.FindByIDAndOwner(context.Background(), 5, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if task.ID != 5 || task.OwnerID != 3 {
		t.Errorf("unexpected task %+v", task)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unexpected redis calls: %v", err)
	}
}

// TestCachingTaskRepository_GenerationError はGeneration取得に失敗した場合にキャッシュを使わないことを検証します。
func TestCachingTaskRepository_GenerationError(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	mock.ExpectGet("tasks:owner:1:gen").SetErr(errors.New("connection reset"))

	calls := 0
	inner := &mockTaskRepository{
		listFn: func(ctx context.Context, ownerID uint) ([]entity.Task, error) {
			calls++
			return []entity.Task{{ID: 1, Title: "a", OwnerID: ownerID}}, nil
		},
	}

	repo := NewCachingTaskRepository(rdb, time.Minute, inner, "tasks")
	tasks, err := repo.ListByOwner(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 1 || len(tasks) != 1 {
		t.Errorf("expected a single database read, got calls=%d tasks=%d", calls, len(tasks))
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled mock expectations: %v", err)
	}
}

// TestCachingTaskRepository_ConcurrentWriteDuringRead は読み込み中に書き込みがあった場合、
// 古い一覧が次の読み込みで返されないことを検証します。
func TestCachingTaskRepository_ConcurrentWriteDuringRead(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	stale := []entity.Task{{ID: 1, Title: "a", OwnerID: 1}}
	fresh := []entity.Task{{ID: 1, Title: "a", OwnerID: 1}, {ID: 2, Title: "b", OwnerID: 1}}
	staleJSON, _ := json.Marshal(stale)
	freshJSON, _ := json.Marshal(fresh)

	// first read loads the old list, a write commits before it is stored
	mock.ExpectGet("tasks:owner:1:gen").RedisNil()
	mock.ExpectGet("tasks:owner:1:v0").RedisNil()
	mock.ExpectIncr("tasks:owner:1:gen").SetVal(1)
	mock.ExpectSet("tasks:owner:1:v0", staleJSON, time.Minute).SetVal("OK")
	// next read must not see the stale entry
	mock.ExpectGet("tasks:owner:1:gen").SetVal("1")
	mock.ExpectGet("tasks:owner:1:v1").RedisNil()
	mock.ExpectSet("tasks:owner:1:v1", freshJSON, time.Minute).SetVal("OK")

	var repo *CachingTaskRepository
	reads := 0
	inner := &mockTaskRepository{
		listFn: func(ctx context.Context, ownerID uint) ([]entity.Task, error) {
			reads++
			if reads == 1 {
				if err := repo.Create(ctx, &entity.Task{Title: "b", OwnerID: ownerID}); err != nil {
					t.Errorf("unexpected create error: %v", err)
				}
				return stale, nil
			}
			return fresh, nil
		},
	}
	repo = NewCachingTaskRepository(rdb, time.Minute, inner, "tasks")

	first, err := repo.ListByOwner(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(first) != 1 {
		t.Errorf("expected the in-flight read to return 1 task, got %d", len(first))
	}

	second, err := repo.ListByOwner(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(second) != 2 {
		t.Errorf("expected 2 tasks after the write, got %d", len(second))
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled mock expectations: %v", err)
	}
}
