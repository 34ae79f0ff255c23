package http

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrijs2005/todokeeper/internal/server/auth"
	"github.com/dmitrijs2005/todokeeper/internal/server/models"
)

// ownerFrom returns the caller's user id; authMiddleware guarantees it is set.
func ownerFrom(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w)
		return 0, false
	}
	return id.ID, true
}

func todoID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "todo id must be a positive integer")
		return 0, false
	}
	return id, true
}

func (h *Handler) listTodos(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerFrom(w, r)
	if !ok {
		return
	}
	todos, err := h.todos.List(r.Context(), owner)
	if err != nil {
		h.writeMappedError(r.Context(), w, "list_todos", err)
		return
	}
	writeJSON(w, http.StatusOK, todos)
}

func (h *Handler) getTodo(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerFrom(w, r)
	if !ok {
		return
	}
	id, ok := todoID(w, r)
	if !ok {
		return
	}
	todo, err := h.todos.Get(r.Context(), owner, id)
	if err != nil {
		h.writeMappedError(r.Context(), w, "get_todo", err)
		return
	}
	writeJSON(w, http.StatusOK, todo)
}

func (h *Handler) createTodo(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerFrom(w, r)
	if !ok {
		return
	}
	var in models.TodoInput
	if err := decodeBody(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_REQUEST", "invalid request body")
		return
	}
	todo, err := h.todos.Create(r.Context(), owner, in)
	if err != nil {
		h.writeMappedError(r.Context(), w, "create_todo", err)
		return
	}
	writeJSON(w, http.StatusCreated, todo)
}

func (h *Handler) updateTodo(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerFrom(w, r)
	if !ok {
		return
	}
	id, ok := todoID(w, r)
	if !ok {
		return
	}
	var in models.TodoInput
	if err := decodeBody(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_REQUEST", "invalid request body")
		return
	}
	if err := h.todos.Update(r.Context(), owner, id, in); err != nil {
		h.writeMappedError(r.Context(), w, "update_todo", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) deleteTodo(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerFrom(w, r)
	if !ok {
		return
	}
	id, ok := todoID(w, r)
	if !ok {
		return
	}
	if err := h.todos.Delete(r.Context(), owner, id); err != nil {
		h.writeMappedError(r.Context(), w, "delete_todo", err)
		return
	}
	writeMessage(w, http.StatusOK, "todo deleted")
}
