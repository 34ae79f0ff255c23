package client

import (
	"context"

	"github.com/dmitrijs2005/todokeeper/internal/rpc"
)

// Client is what the CLI needs from the server.
type Client interface {
	Close() error
	SetAccessToken(token string)
	Ping(ctx context.Context) error
	Register(ctx context.Context, req *rpc.RegisterRequest) (*rpc.RegisterResponse, error)
	Login(ctx context.Context, username, password string) (string, error)
	WhoAmI(ctx context.Context) (*rpc.WhoAmIResponse, error)
	ListTodos(ctx context.Context) ([]*rpc.Todo, error)
	GetTodo(ctx context.Context, id int64) (*rpc.Todo, error)
	CreateTodo(ctx context.Context, req *rpc.CreateTodoRequest) (*rpc.Todo, error)
	UpdateTodo(ctx context.Context, req *rpc.UpdateTodoRequest) error
	DeleteTodo(ctx context.Context, id int64) error
}
