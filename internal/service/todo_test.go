package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/tasklist/tasklist-go/internal/model"
	"github.com/tasklist/tasklist-go/internal/repository"
)

// memTodoStore is an in-memory TodoStore for tests. It allocates ids from
// a counter and keeps insertion order, like the real table.
type memTodoStore struct {
	todos  []model.Todo
	nextID int64
}

func newMemTodoStore() *memTodoStore {
	return &memTodoStore{nextID: 1}
}

func (s *memTodoStore) Create(ctx context.Context, todo *model.Todo) error {
	todo.ID = s.nextID
	s.nextID++
	todo.CreatedAt = time.Now()
	todo.UpdatedAt = todo.CreatedAt
	s.todos = append(s.todos, *todo)
	return nil
}

func (s *memTodoStore) ListByUser(ctx context.Context, userID string) ([]model.Todo, error) {
	var out []model.Todo
	for _, t := range s.todos {
		if t.UserID == userID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (s *memTodoStore) GetByID(ctx context.Context, userID string, id int64) (*model.Todo, error) {
	for _, t := range s.todos {
		if t.ID == id && t.UserID == userID {
			todo := t
			return &todo, nil
		}
	}
	return nil, repository.ErrTodoNotFound
}

func (s *memTodoStore) Update(ctx context.Context, todo *model.Todo) error {
	for i, t := range s.todos {
		if t.ID == todo.ID && t.UserID == todo.UserID {
			todo.UpdatedAt = time.Now()
			s.todos[i] = *todo
			return nil
		}
	}
	return repository.ErrTodoNotFound
}

func (s *memTodoStore) Delete(ctx context.Context, userID string, id int64) error {
	for i, t := range s.todos {
		if t.ID == id && t.UserID == userID {
			s.todos = append(s.todos[:i], s.todos[i+1:]...)
			return nil
		}
	}
	return repository.ErrTodoNotFound
}

func TestCreate_EmptyText(t *testing.T) {
	svc := NewTodoService(newMemTodoStore())

	_, err := svc.Create(context.Background(), "user-a", model.CreateTodoRequest{Text: ""})
	if !errors.Is(err, ErrTextRequired) {
		t.Errorf("Create() error = %v, want ErrTextRequired", err)
	}
}

func TestCreate_InvalidDueDate(t *testing.T) {
	svc := NewTodoService(newMemTodoStore())

	_, err := svc.Create(context.Background(), "user-a", model.CreateTodoRequest{
		Text:    "buy milk",
		DueDate: "tomorrow",
	})
	if !errors.Is(err, ErrInvalidDueDate) {
		t.Errorf("Create() error = %v, want ErrInvalidDueDate", err)
	}
}

func TestCreateThenList(t *testing.T) {
	svc := NewTodoService(newMemTodoStore())

	created, err := svc.Create(context.Background(), "user-a", model.CreateTodoRequest{Text: "buy milk"})
	if err != nil {
		t.Fatalf("Create() unexpected error: %v", err)
	}
	if created.Completed {
		t.Error("new todo should start uncompleted")
	}
	if created.ID == 0 {
		t.Error("new todo has no id")
	}

	todos, err := svc.List(context.Background(), "user-a")
	if err != nil {
		t.Fatalf("List() unexpected error: %v", err)
	}
	if len(todos) != 1 {
		t.Fatalf("List() returned %d todos, want 1", len(todos))
	}
	if todos[0].Text != "buy milk" || todos[0].Completed {
		t.Errorf("List()[0] = %+v", todos[0])
	}
}

func TestCreate_WithDueDate(t *testing.T) {
	svc := NewTodoService(newMemTodoStore())

	created, err := svc.Create(context.Background(), "user-a", model.CreateTodoRequest{
		Text:    "file taxes",
		DueDate: "2026-04-15",
	})
	if err != nil {
		t.Fatalf("Create() unexpected error: %v", err)
	}
	if created.DueDate == nil {
		t.Fatal("due date not set")
	}
	if got := created.DueDate.Format("2006-01-02"); got != "2026-04-15" {
		t.Errorf("due date = %q, want 2026-04-15", got)
	}
}

func TestList_IsolatedPerUser(t *testing.T) {
	svc := NewTodoService(newMemTodoStore())

	for _, text := range []string{"a1", "a2", "a3"} {
		if _, err := svc.Create(context.Background(), "user-a", model.CreateTodoRequest{Text: text}); err != nil {
			t.Fatalf("Create() unexpected error: %v", err)
		}
	}
	if _, err := svc.Create(context.Background(), "user-b", model.CreateTodoRequest{Text: "b1"}); err != nil {
		t.Fatalf("Create() unexpected error: %v", err)
	}

	todosB, err := svc.List(context.Background(), "user-b")
	if err != nil {
		t.Fatalf("List() unexpected error: %v", err)
	}
	if len(todosB) != 1 || todosB[0].Text != "b1" {
		t.Errorf("user-b sees %+v, want only its own todo", todosB)
	}

	todosC, err := svc.List(context.Background(), "user-c")
	if err != nil {
		t.Fatalf("List() unexpected error: %v", err)
	}
	if len(todosC) != 0 {
		t.Errorf("user with no todos sees %d todos, want 0", len(todosC))
	}
	if todosC == nil {
		t.Error("List() should return an empty slice, not nil")
	}
}

func TestList_InsertionOrder(t *testing.T) {
	svc := NewTodoService(newMemTodoStore())

	for _, text := range []string{"first", "second", "third"} {
		if _, err := svc.Create(context.Background(), "user-a", model.CreateTodoRequest{Text: text}); err != nil {
			t.Fatalf("Create() unexpected error: %v", err)
		}
	}

	todos, err := svc.List(context.Background(), "user-a")
	if err != nil {
		t.Fatalf("List() unexpected error: %v", err)
	}
	want := []string{"first", "second", "third"}
	for i, w := range want {
		if todos[i].Text != w {
			t.Errorf("List()[%d].Text = %q, want %q", i, todos[i].Text, w)
		}
	}
}

func TestUpdate_MergesFields(t *testing.T) {
	svc := NewTodoService(newMemTodoStore())

	created, err := svc.Create(context.Background(), "user-a", model.CreateTodoRequest{
		Text:    "buy milk",
		DueDate: "2026-09-01",
	})
	if err != nil {
		t.Fatalf("Create() unexpected error: %v", err)
	}

	completed := true
	updated, err := svc.Update(context.Background(), "user-a", created.ID, model.UpdateTodoRequest{
		Completed: &completed,
	})
	if err != nil {
		t.Fatalf("Update() unexpected error: %v", err)
	}

	if !updated.Completed {
		t.Error("completed flag not flipped")
	}
	if updated.Text != "buy milk" {
		t.Errorf("text changed to %q, omitted fields must be retained", updated.Text)
	}
	if updated.DueDate == nil || updated.DueDate.Format("2006-01-02") != "2026-09-01" {
		t.Error("due date changed, omitted fields must be retained")
	}
}

func TestUpdate_EmptyText(t *testing.T) {
	svc := NewTodoService(newMemTodoStore())

	created, err := svc.Create(context.Background(), "user-a", model.CreateTodoRequest{Text: "buy milk"})
	if err != nil {
		t.Fatalf("Create() unexpected error: %v", err)
	}

	empty := ""
	_, err = svc.Update(context.Background(), "user-a", created.ID, model.UpdateTodoRequest{Text: &empty})
	if !errors.Is(err, ErrTextRequired) {
		t.Errorf("Update() error = %v, want ErrTextRequired", err)
	}
}

func TestUpdate_ForeignTodoIsNotFound(t *testing.T) {
	svc := NewTodoService(newMemTodoStore())

	created, err := svc.Create(context.Background(), "user-a", model.CreateTodoRequest{Text: "secret"})
	if err != nil {
		t.Fatalf("Create() unexpected error: %v", err)
	}

	completed := true
	_, err = svc.Update(context.Background(), "user-b", created.ID, model.UpdateTodoRequest{Completed: &completed})
	if !errors.Is(err, ErrTodoNotFound) {
		t.Errorf("Update() by non-owner error = %v, want ErrTodoNotFound", err)
	}
}

func TestDelete(t *testing.T) {
	svc := NewTodoService(newMemTodoStore())

	created, err := svc.Create(context.Background(), "user-a", model.CreateTodoRequest{Text: "buy milk"})
	if err != nil {
		t.Fatalf("Create() unexpected error: %v", err)
	}

	if err := svc.Delete(context.Background(), "user-a", created.ID); err != nil {
		t.Fatalf("Delete() unexpected error: %v", err)
	}

	todos, err := svc.List(context.Background(), "user-a")
	if err != nil {
		t.Fatalf("List() unexpected error: %v", err)
	}
	if len(todos) != 0 {
		t.Errorf("List() after delete returned %d todos, want 0", len(todos))
	}

	// Deleting again is not found; deletion is terminal.
	if err := svc.Delete(context.Background(), "user-a", created.ID); !errors.Is(err, ErrTodoNotFound) {
		t.Errorf("second Delete() error = %v, want ErrTodoNotFound", err)
	}
}

func TestDelete_ForeignTodoIsNotFound(t *testing.T) {
	svc := NewTodoService(newMemTodoStore())

	created, err := svc.Create(context.Background(), "user-a", model.CreateTodoRequest{Text: "secret"})
	if err != nil {
		t.Fatalf("Create() unexpected error: %v", err)
	}

	if err := svc.Delete(context.Background(), "user-b", created.ID); !errors.Is(err, ErrTodoNotFound) {
		t.Errorf("Delete() by non-owner error = %v, want ErrTodoNotFound", err)
	}

	// The owner's todo is untouched.
	todos, _ := svc.List(context.Background(), "user-a")
	if len(todos) != 1 {
		t.Errorf("owner's todos = %d, want 1", len(todos))
	}
}
