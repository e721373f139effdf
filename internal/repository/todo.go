package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/tasklist/tasklist-go/internal/model"
)

var ErrTodoNotFound = errors.New("todo not found")

// TodoRepository handles todo persistence operations. Every query is
// scoped by user_id, so a todo owned by another user behaves exactly
// like a todo that does not exist.
type TodoRepository struct {
	db *sql.DB
}

// NewTodoRepository creates a new TodoRepository.
func NewTodoRepository(db *sql.DB) *TodoRepository {
	return &TodoRepository{db: db}
}

// Create inserts a new todo and sets the allocated ID and timestamps on
// the struct. IDs come from the database counter, so they are unique and
// monotonic across concurrent creates.
func (r *TodoRepository) Create(ctx context.Context, todo *model.Todo) error {
	query := `INSERT INTO todos (user_id, text, completed, due_date) VALUES (?, ?, ?, ?)`

	result, err := r.db.ExecContext(ctx, query, todo.UserID, todo.Text, todo.Completed, todo.DueDate)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	todo.ID = id

	return r.db.QueryRowContext(ctx,
		`SELECT created_at, updated_at FROM todos WHERE id = ?`, id,
	).Scan(&todo.CreatedAt, &todo.UpdatedAt)
}

// ListByUser retrieves all todos owned by a user in insertion order.
func (r *TodoRepository) ListByUser(ctx context.Context, userID string) ([]model.Todo, error) {
	query := `SELECT id, user_id, text, completed, due_date, created_at, updated_at
		FROM todos WHERE user_id = ? ORDER BY id ASC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var todos []model.Todo
	for rows.Next() {
		var t model.Todo
		if err := rows.Scan(
			&t.ID, &t.UserID, &t.Text, &t.Completed, &t.DueDate, &t.CreatedAt, &t.UpdatedAt,
		); err != nil {
			return nil, err
		}
		todos = append(todos, t)
	}

	return todos, rows.Err()
}

// GetByID retrieves a todo by ID scoped to its owner. Ownership mismatch
// is indistinguishable from nonexistence.
func (r *TodoRepository) GetByID(ctx context.Context, userID string, id int64) (*model.Todo, error) {
	query := `SELECT id, user_id, text, completed, due_date, created_at, updated_at
		FROM todos WHERE id = ? AND user_id = ?`

	todo := &model.Todo{}
	err := r.db.QueryRowContext(ctx, query, id, userID).Scan(
		&todo.ID, &todo.UserID, &todo.Text, &todo.Completed, &todo.DueDate,
		&todo.CreatedAt, &todo.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTodoNotFound
		}
		return nil, err
	}

	return todo, nil
}

// Update persists the text, completed flag and due date of an owned todo.
func (r *TodoRepository) Update(ctx context.Context, todo *model.Todo) error {
	query := `UPDATE todos SET text = ?, completed = ?, due_date = ?
		WHERE id = ? AND user_id = ?`

	result, err := r.db.ExecContext(ctx, query,
		todo.Text, todo.Completed, todo.DueDate, todo.ID, todo.UserID,
	)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrTodoNotFound
	}

	return r.db.QueryRowContext(ctx,
		`SELECT updated_at FROM todos WHERE id = ?`, todo.ID,
	).Scan(&todo.UpdatedAt)
}

// Delete removes an owned todo. Deletion is terminal.
func (r *TodoRepository) Delete(ctx context.Context, userID string, id int64) error {
	query := `DELETE FROM todos WHERE id = ? AND user_id = ?`

	result, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrTodoNotFound
	}

	return nil
}
