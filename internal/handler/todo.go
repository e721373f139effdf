package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/tasklist/tasklist-go/internal/middleware"
	"github.com/tasklist/tasklist-go/internal/model"
	"github.com/tasklist/tasklist-go/internal/service"
)

// TodoServiceInterface is the todo service surface the handler needs.
type TodoServiceInterface interface {
	List(ctx context.Context, userID string) ([]model.Todo, error)
	Create(ctx context.Context, userID string, req model.CreateTodoRequest) (model.Todo, error)
	Update(ctx context.Context, userID string, id int64, req model.UpdateTodoRequest) (model.Todo, error)
	Delete(ctx context.Context, userID string, id int64) error
}

// TodoHandler handles HTTP requests for todo operations. All routes sit
// behind the auth middleware, so a missing user id in the context means the
// request never passed authentication.
type TodoHandler struct {
	service TodoServiceInterface
}

// NewTodoHandler creates a new TodoHandler.
func NewTodoHandler(svc TodoServiceInterface) *TodoHandler {
	return &TodoHandler{service: svc}
}

// HandleListTodos handles GET /api/v1/todos requests.
func (h *TodoHandler) HandleListTodos(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	todos, err := h.service.List(r.Context(), userID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		return
	}

	writeJSON(w, http.StatusOK, todos)
}

// HandleCreateTodo handles POST /api/v1/todos requests.
func (h *TodoHandler) HandleCreateTodo(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	var req model.CreateTodoRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	todo, err := h.service.Create(r.Context(), userID, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTextRequired), errors.Is(err, service.ErrInvalidDueDate):
			writeJSON(w, http.StatusBadRequest, errorResponse(err.Error()))
		default:
			writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		}
		return
	}

	writeJSON(w, http.StatusCreated, todo)
}

// HandleUpdateTodo handles PUT /api/v1/todos/{todo_id} requests.
func (h *TodoHandler) HandleUpdateTodo(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	id, ok := todoIDParam(w, r)
	if !ok {
		return
	}

	var req model.UpdateTodoRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	todo, err := h.service.Update(r.Context(), userID, id, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTextRequired), errors.Is(err, service.ErrInvalidDueDate):
			writeJSON(w, http.StatusBadRequest, errorResponse(err.Error()))
		case errors.Is(err, service.ErrTodoNotFound):
			writeJSON(w, http.StatusNotFound, errorResponse(err.Error()))
		default:
			writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		}
		return
	}

	writeJSON(w, http.StatusOK, todo)
}

// HandleDeleteTodo handles DELETE /api/v1/todos/{todo_id} requests.
func (h *TodoHandler) HandleDeleteTodo(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	id, ok := todoIDParam(w, r)
	if !ok {
		return
	}

	err := h.service.Delete(r.Context(), userID, id)
	if err != nil {
		if errors.Is(err, service.ErrTodoNotFound) {
			writeJSON(w, http.StatusNotFound, errorResponse(err.Error()))
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// todoIDParam parses the {todo_id} URL parameter, writing the error
// response itself when it is not a valid id.
func todoIDParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, "todo_id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		writeJSON(w, http.StatusBadRequest, errorResponse("invalid todo id"))
		return 0, false
	}
	return id, true
}
