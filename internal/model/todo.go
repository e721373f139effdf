package model

import "time"

// Todo represents a single task record owned by exactly one user.
type Todo struct {
	ID        int64      `json:"id"`
	Text      string     `json:"text"`
	Completed bool       `json:"completed"`
	UserID    string     `json:"user_id"`
	DueDate   *time.Time `json:"due_date,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// CreateTodoRequest represents a todo creation request.
// DueDate, when present, is a date in YYYY-MM-DD form.
type CreateTodoRequest struct {
	Text    string `json:"text"`
	DueDate string `json:"due_date,omitempty"`
}

// UpdateTodoRequest represents a partial todo update. Pointer fields
// distinguish "omitted" (nil, keep the stored value) from an explicit value.
type UpdateTodoRequest struct {
	Text      *string `json:"text"`
	Completed *bool   `json:"completed"`
	DueDate   *string `json:"due_date"`
}
