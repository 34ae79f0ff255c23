// Package grpc serves the todokeeper API over gRPC using the JSON codec
// from internal/rpc. Every method except Register, Login and Ping requires
// an access token, resolved by accessTokenInterceptor.
package grpc

import (
	"context"
	"net"

	"google.golang.org/grpc"

	"github.com/dmitrijs2005/todokeeper/internal/logging"
	"github.com/dmitrijs2005/todokeeper/internal/rpc"
	"github.com/dmitrijs2005/todokeeper/internal/server/auth"
	"github.com/dmitrijs2005/todokeeper/internal/server/metrics"
	"github.com/dmitrijs2005/todokeeper/internal/server/models"
	"github.com/dmitrijs2005/todokeeper/internal/server/services"
)

type UserService interface {
	Register(ctx context.Context, in services.RegisterInput) (*models.User, error)
	Login(ctx context.Context, username, password, remoteAddr string) (*services.AccessToken, error)
}

type TodoService interface {
	List(ctx context.Context, ownerID int64) ([]*models.Todo, error)
	Get(ctx context.Context, ownerID, id int64) (*models.Todo, error)
	Create(ctx context.Context, ownerID int64, in models.TodoInput) (*models.Todo, error)
	Update(ctx context.Context, ownerID, id int64, in models.TodoInput) error
	Delete(ctx context.Context, ownerID, id int64) error
}

type TokenResolver interface {
	Resolve(token string) (auth.Identity, error)
}

type GRPCServer struct {
	address string
	users   UserService
	todos   TodoService
	guard   TokenResolver
	metrics *metrics.Metrics
	logger  logging.Logger
}

func NewGRPCServer(a string, l logging.Logger, us UserService, ts TodoService, guard TokenResolver, m *metrics.Metrics) *GRPCServer {
	if l == nil {
		l = logging.Nop{}
	}
	return &GRPCServer{
		address: a,
		logger:  l.With("module", "grpc_server"),
		users:   us,
		todos:   ts,
		guard:   guard,
		metrics: m,
	}
}

func (s *GRPCServer) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	return s.Serve(ctx, listen)
}

// Serve registers the service on a new grpc.Server, accepts connections on
// lis and stops gracefully when ctx is cancelled.
func (s *GRPCServer) Serve(ctx context.Context, lis net.Listener) error {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.metricsInterceptor, s.accessTokenInterceptor))

	rpc.RegisterTodoKeeperServiceServer(srv, s)

	go func() {
		<-ctx.Done()
		s.logger.Info(context.Background(), "Stopping gRPC server...")
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", lis.Addr().String())

	// starts accepting incoming connections
	if err := srv.Serve(lis); err != nil {
		return err
	}

	return nil
}
