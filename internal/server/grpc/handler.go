package grpc

import (
	"context"
	"errors"
	"net"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/peer"
	"google.golang.org/grpc/status"

	"github.com/dmitrijs2005/todokeeper/internal/common"
	"github.com/dmitrijs2005/todokeeper/internal/rpc"
	"github.com/dmitrijs2005/todokeeper/internal/server/auth"
	"github.com/dmitrijs2005/todokeeper/internal/server/models"
	"github.com/dmitrijs2005/todokeeper/internal/server/services"
)

const unauthenticatedMessage = "could not validate credentials"

// mapError is the only place service errors become status codes.
func (s *GRPCServer) mapError(ctx context.Context, method string, err error) error {
	switch {
	case errors.Is(err, common.ErrorValidation):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, common.ErrorUnauthorized):
		return status.Error(codes.Unauthenticated, unauthenticatedMessage)
	case errors.Is(err, common.ErrorAlreadyExists):
		return status.Error(codes.AlreadyExists, "already exists")
	case errors.Is(err, common.ErrorNotFound):
		return status.Error(codes.NotFound, "not found")
	default:
		s.logger.Error(ctx, "grpc call failed", "method", method, "error", err)
		return status.Error(codes.Internal, "internal error")
	}
}

func identity(ctx context.Context) (auth.Identity, error) {
	id, ok := auth.IdentityFromContext(ctx)
	if !ok {
		return auth.Identity{}, status.Error(codes.Unauthenticated, unauthenticatedMessage)
	}
	return id, nil
}

func peerHost(ctx context.Context) string {
	p, ok := peer.FromContext(ctx)
	if !ok || p.Addr == nil {
		return ""
	}
	host, _, err := net.SplitHostPort(p.Addr.String())
	if err != nil {
		return p.Addr.String()
	}
	return host
}

func toRPCTodo(t *models.Todo) *rpc.Todo {
	return &rpc.Todo{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Priority:    t.Priority,
		Complete:    t.Complete,
	}
}

func (s *GRPCServer) Register(ctx context.Context, req *rpc.RegisterRequest) (*rpc.RegisterResponse, error) {

	s.logger.Info(ctx, "Registration request", "username", req.Username)

	u, err := s.users.Register(ctx, services.RegisterInput{
		Username:    req.Username,
		Email:       req.Email,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Password:    req.Password,
		Role:        req.Role,
		PhoneNumber: req.PhoneNumber,
	})
	if err != nil {
		return nil, s.mapError(ctx, "Register", err)
	}

	return &rpc.RegisterResponse{ID: u.ID, Username: u.Username, Role: u.Role}, nil
}

func (s *GRPCServer) Login(ctx context.Context, req *rpc.LoginRequest) (*rpc.LoginResponse, error) {

	if req.Username == "" || req.Password == "" {
		return nil, status.Error(codes.InvalidArgument, "username and password are required")
	}

	token, err := s.users.Login(ctx, req.Username, req.Password, peerHost(ctx))
	if err != nil {
		return nil, s.mapError(ctx, "Login", err)
	}

	return &rpc.LoginResponse{AccessToken: token.AccessToken, TokenType: token.TokenType}, nil
}

func (s *GRPCServer) WhoAmI(ctx context.Context, _ *rpc.WhoAmIRequest) (*rpc.WhoAmIResponse, error) {
	id, err := identity(ctx)
	if err != nil {
		return nil, err
	}
	return &rpc.WhoAmIResponse{Username: id.Username, ID: id.ID, Role: id.Role}, nil
}

func (s *GRPCServer) ListTodos(ctx context.Context, _ *rpc.ListTodosRequest) (*rpc.ListTodosResponse, error) {
	id, err := identity(ctx)
	if err != nil {
		return nil, err
	}

	todos, err := s.todos.List(ctx, id.ID)
	if err != nil {
		return nil, s.mapError(ctx, "ListTodos", err)
	}

	out := make([]*rpc.Todo, 0, len(todos))
	for _, t := range todos {
		out = append(out, toRPCTodo(t))
	}
	return &rpc.ListTodosResponse{Todos: out}, nil
}

func (s *GRPCServer) GetTodo(ctx context.Context, req *rpc.GetTodoRequest) (*rpc.GetTodoResponse, error) {
	id, err := identity(ctx)
	if err != nil {
		return nil, err
	}

	t, err := s.todos.Get(ctx, id.ID, req.ID)
	if err != nil {
		return nil, s.mapError(ctx, "GetTodo", err)
	}
	return &rpc.GetTodoResponse{Todo: toRPCTodo(t)}, nil
}

func (s *GRPCServer) CreateTodo(ctx context.Context, req *rpc.CreateTodoRequest) (*rpc.CreateTodoResponse, error) {
	id, err := identity(ctx)
	if err != nil {
		return nil, err
	}

	t, err := s.todos.Create(ctx, id.ID, models.TodoInput{
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		Complete:    req.Complete,
	})
	if err != nil {
		return nil, s.mapError(ctx, "CreateTodo", err)
	}
	return &rpc.CreateTodoResponse{Todo: toRPCTodo(t)}, nil
}

func (s *GRPCServer) UpdateTodo(ctx context.Context, req *rpc.UpdateTodoRequest) (*rpc.UpdateTodoResponse, error) {
	id, err := identity(ctx)
	if err != nil {
		return nil, err
	}

	err = s.todos.Update(ctx, id.ID, req.ID, models.TodoInput{
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		Complete:    req.Complete,
	})
	if err != nil {
		return nil, s.mapError(ctx, "UpdateTodo", err)
	}
	return &rpc.UpdateTodoResponse{}, nil
}

func (s *GRPCServer) DeleteTodo(ctx context.Context, req *rpc.DeleteTodoRequest) (*rpc.DeleteTodoResponse, error) {
	id, err := identity(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.todos.Delete(ctx, id.ID, req.ID); err != nil {
		return nil, s.mapError(ctx, "DeleteTodo", err)
	}
	return &rpc.DeleteTodoResponse{}, nil
}

func (s *GRPCServer) Ping(ctx context.Context, _ *rpc.PingRequest) (*rpc.PingResponse, error) {
	return &rpc.PingResponse{Status: "OK"}, nil
}
