package service

import (
	"context"
	"errors"
	"time"

	"github.com/tasklist/tasklist-go/internal/model"
	"github.com/tasklist/tasklist-go/internal/repository"
)

var (
	ErrTextRequired   = errors.New("text is required")
	ErrInvalidDueDate = errors.New("due_date must be a date in YYYY-MM-DD format")
	ErrTodoNotFound   = errors.New("todo not found")
)

// dueDateLayout is the wire format for due dates.
const dueDateLayout = "2006-01-02"

// TodoStore is the todo persistence interface the todo service depends on.
type TodoStore interface {
	Create(ctx context.Context, todo *model.Todo) error
	ListByUser(ctx context.Context, userID string) ([]model.Todo, error)
	GetByID(ctx context.Context, userID string, id int64) (*model.Todo, error)
	Update(ctx context.Context, todo *model.Todo) error
	Delete(ctx context.Context, userID string, id int64) error
}

// TodoService enforces ownership scoping on top of the todo store. Every
// operation takes the resolved user id of the caller; the store never sees
// a query that is not scoped to it.
type TodoService struct {
	store TodoStore
}

// NewTodoService creates a new TodoService.
func NewTodoService(store TodoStore) *TodoService {
	return &TodoService{store: store}
}

// List returns all todos owned by the user in insertion order. A user with
// no todos gets an empty list, never another user's records.
func (s *TodoService) List(ctx context.Context, userID string) ([]model.Todo, error) {
	todos, err := s.store.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if todos == nil {
		todos = []model.Todo{}
	}
	return todos, nil
}

// Create adds a new todo for the user. New todos always start uncompleted.
func (s *TodoService) Create(ctx context.Context, userID string, req model.CreateTodoRequest) (model.Todo, error) {
	if req.Text == "" {
		return model.Todo{}, ErrTextRequired
	}

	var dueDate *time.Time
	if req.DueDate != "" {
		d, err := time.Parse(dueDateLayout, req.DueDate)
		if err != nil {
			return model.Todo{}, ErrInvalidDueDate
		}
		dueDate = &d
	}

	todo := model.Todo{
		UserID:    userID,
		Text:      req.Text,
		Completed: false,
		DueDate:   dueDate,
	}

	if err := s.store.Create(ctx, &todo); err != nil {
		return model.Todo{}, err
	}

	return todo, nil
}

// Update merges the provided fields over an owned todo. Omitted fields keep
// their stored values. A todo owned by another user reads as not found.
func (s *TodoService) Update(ctx context.Context, userID string, id int64, req model.UpdateTodoRequest) (model.Todo, error) {
	todo, err := s.store.GetByID(ctx, userID, id)
	if err != nil {
		if errors.Is(err, repository.ErrTodoNotFound) {
			return model.Todo{}, ErrTodoNotFound
		}
		return model.Todo{}, err
	}

	if req.Text != nil {
		if *req.Text == "" {
			return model.Todo{}, ErrTextRequired
		}
		todo.Text = *req.Text
	}
	if req.Completed != nil {
		todo.Completed = *req.Completed
	}
	if req.DueDate != nil {
		d, err := time.Parse(dueDateLayout, *req.DueDate)
		if err != nil {
			return model.Todo{}, ErrInvalidDueDate
		}
		todo.DueDate = &d
	}

	if err := s.store.Update(ctx, todo); err != nil {
		if errors.Is(err, repository.ErrTodoNotFound) {
			return model.Todo{}, ErrTodoNotFound
		}
		return model.Todo{}, err
	}

	return *todo, nil
}

// Delete removes an owned todo. Deleting an absent or foreign todo reports
// not found.
func (s *TodoService) Delete(ctx context.Context, userID string, id int64) error {
	err := s.store.Delete(ctx, userID, id)
	if errors.Is(err, repository.ErrTodoNotFound) {
		return ErrTodoNotFound
	}
	return err
}
