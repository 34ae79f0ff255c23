package http

import (
	"net/http"
	"time"

	"github.com/dmitrijs2005/todokeeper/internal/server/auth"
	"github.com/dmitrijs2005/todokeeper/internal/server/models"
	"github.com/dmitrijs2005/todokeeper/internal/server/services"
)

// userView is the public shape of a user; it never carries the hash.
type userView struct {
	ID          int64     `json:"id"`
	Username    string    `json:"username"`
	Email       string    `json:"email"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	PhoneNumber string    `json:"phone_number"`
	Role        string    `json:"role"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}

func newUserView(u *models.User) userView {
	return userView{
		ID:          u.ID,
		Username:    u.Username,
		Email:       u.Email,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		PhoneNumber: u.PhoneNumber,
		Role:        u.Role,
		IsActive:    u.IsActive,
		CreatedAt:   u.CreatedAt,
	}
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var in services.RegisterInput
	if err := decodeBody(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_REQUEST", "invalid request body")
		return
	}

	u, err := h.users.Register(r.Context(), in)
	if err != nil {
		h.writeMappedError(r.Context(), w, "register", err)
		return
	}
	writeJSON(w, http.StatusCreated, newUserView(u))
}

// login takes a form-encoded username and password, as OAuth2 password
// grant clients send them.
func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_REQUEST", "invalid form body")
		return
	}
	username := r.PostForm.Get("username")
	password := r.PostForm.Get("password")
	if username == "" || password == "" {
		writeError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "username and password are required")
		return
	}

	token, err := h.users.Login(r.Context(), username, password, readIP(r))
	if err != nil {
		h.writeMappedError(r.Context(), w, "login", err)
		return
	}
	writeJSON(w, http.StatusOK, token)
}

func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	id, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w)
		return
	}
	writeJSON(w, http.StatusOK, id)
}
