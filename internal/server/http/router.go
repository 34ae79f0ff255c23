// Package http is the JSON API of the todokeeper server: a chi router with
// request-id, recovery, logging and metrics middleware in front of the auth
// and todo handlers.
package http

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrijs2005/todokeeper/internal/logging"
	"github.com/dmitrijs2005/todokeeper/internal/server/auth"
	"github.com/dmitrijs2005/todokeeper/internal/server/metrics"
	"github.com/dmitrijs2005/todokeeper/internal/server/models"
	"github.com/dmitrijs2005/todokeeper/internal/server/services"
)

// UserService is the account side the handlers depend on.
type UserService interface {
	Register(ctx context.Context, in services.RegisterInput) (*models.User, error)
	Login(ctx context.Context, username, password, remoteAddr string) (*services.AccessToken, error)
}

// TodoService is the todo side the handlers depend on.
type TodoService interface {
	List(ctx context.Context, ownerID int64) ([]*models.Todo, error)
	Get(ctx context.Context, ownerID, id int64) (*models.Todo, error)
	Create(ctx context.Context, ownerID int64, in models.TodoInput) (*models.Todo, error)
	Update(ctx context.Context, ownerID, id int64, in models.TodoInput) error
	Delete(ctx context.Context, ownerID, id int64) error
}

// TokenResolver turns a bearer token into an identity.
type TokenResolver interface {
	Resolve(token string) (auth.Identity, error)
}

// Handler holds the dependencies of all HTTP endpoints.
type Handler struct {
	users   UserService
	todos   TodoService
	guard   TokenResolver
	metrics *metrics.Metrics
	logger  logging.Logger
}

func NewHandler(users UserService, todos TodoService, guard TokenResolver, m *metrics.Metrics, logger logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Nop{}
	}
	return &Handler{
		users:   users,
		todos:   todos,
		guard:   guard,
		metrics: m,
		logger:  logger.With("module", "http"),
	}
}

// NewRouter registers the routes and the middleware stack.
func NewRouter(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(requestIDMiddleware)
	r.Use(h.recoverMiddleware)
	r.Use(h.loggingMiddleware)
	r.Use(h.metricsMiddleware)

	r.Get("/healthz", h.healthz)
	r.Method(http.MethodGet, "/metrics", h.metrics.Handler())

	r.Route("/auth", func(r chi.Router) {
		r.Post("/", h.register)
		r.Post("/token", h.login)

		r.Group(func(r chi.Router) {
			r.Use(h.authMiddleware)
			r.Get("/me", h.me)
		})
	})

	r.Route("/todo", func(r chi.Router) {
		r.Use(h.authMiddleware)
		r.Get("/", h.listTodos)
		r.Post("/todo", h.createTodo)
		r.Get("/todo/{id}", h.getTodo)
		r.Put("/todo/{id}", h.updateTodo)
		r.Delete("/todo/{id}", h.deleteTodo)
	})

	return r
}

func (h *Handler) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
