package client

import (
	"context"
	"fmt"
	"sync"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/dmitrijs2005/todokeeper/internal/common"
	"github.com/dmitrijs2005/todokeeper/internal/rpc"
)

type GRPCClient struct {
	endpointURL string
	conn        *grpc.ClientConn
	client      rpc.TodoKeeperServiceClient

	mu          sync.RWMutex
	accessToken string
}

func withAccessToken(ctx context.Context, token string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Set(common.AuthorizationHeaderName, "Bearer "+token)

	return metadata.NewOutgoingContext(ctx, md)
}

func (s *GRPCClient) accessTokenInterceptor(
	ctx context.Context,
	method string,
	req, reply interface{},
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {

	if token := s.token(); token != "" {
		ctx = withAccessToken(ctx, token)
	}

	return invoker(ctx, method, req, reply, cc, opts...)
}

// NewTodoKeeperClient dials endpointURL without TLS. Extra dial options are
// appended after the defaults.
func NewTodoKeeperClient(endpointURL string, opts ...grpc.DialOption) (*GRPCClient, error) {
	c := &GRPCClient{endpointURL: endpointURL}

	dialOpts := append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(c.accessTokenInterceptor),
	}, opts...)

	conn, err := grpc.NewClient(endpointURL, dialOpts...)
	if err != nil {
		return nil, err
	}
	c.conn = conn
	c.client = rpc.NewTodoKeeperServiceClient(conn)
	return c, nil
}

func (s *GRPCClient) SetAccessToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accessToken = token
}

func (s *GRPCClient) token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accessToken
}

func (s *GRPCClient) Close() error {
	return s.conn.Close()
}

func (s *GRPCClient) Ping(ctx context.Context) error {
	resp, err := s.client.Ping(ctx, &rpc.PingRequest{})
	if err != nil {
		return s.mapError(err)
	}
	if resp.Status != "OK" {
		return ErrUnavailable
	}
	return nil
}

func (s *GRPCClient) Register(ctx context.Context, req *rpc.RegisterRequest) (*rpc.RegisterResponse, error) {
	resp, err := s.client.Register(ctx, req)
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp, nil
}

// Login exchanges credentials for an access token and keeps it for later
// calls.
func (s *GRPCClient) Login(ctx context.Context, username, password string) (string, error) {
	resp, err := s.client.Login(ctx, &rpc.LoginRequest{Username: username, Password: password})
	if err != nil {
		return "", s.mapError(err)
	}
	s.SetAccessToken(resp.AccessToken)
	return resp.AccessToken, nil
}

func (s *GRPCClient) WhoAmI(ctx context.Context) (*rpc.WhoAmIResponse, error) {
	resp, err := s.client.WhoAmI(ctx, &rpc.WhoAmIRequest{})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp, nil
}

func (s *GRPCClient) ListTodos(ctx context.Context) ([]*rpc.Todo, error) {
	resp, err := s.client.ListTodos(ctx, &rpc.ListTodosRequest{})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp.Todos, nil
}

func (s *GRPCClient) GetTodo(ctx context.Context, id int64) (*rpc.Todo, error) {
	resp, err := s.client.GetTodo(ctx, &rpc.GetTodoRequest{ID: id})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp.Todo, nil
}

func (s *GRPCClient) CreateTodo(ctx context.Context, req *rpc.CreateTodoRequest) (*rpc.Todo, error) {
	resp, err := s.client.CreateTodo(ctx, req)
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp.Todo, nil
}

func (s *GRPCClient) UpdateTodo(ctx context.Context, req *rpc.UpdateTodoRequest) error {
	if _, err := s.client.UpdateTodo(ctx, req); err != nil {
		return s.mapError(err)
	}
	return nil
}

func (s *GRPCClient) DeleteTodo(ctx context.Context, id int64) error {
	if _, err := s.client.DeleteTodo(ctx, &rpc.DeleteTodoRequest{ID: id}); err != nil {
		return s.mapError(err)
	}
	return nil
}

func (s *GRPCClient) mapError(err error) error {
	if err == nil {
		return nil
	}
	st, _ := status.FromError(err)
	switch st.Code() {
	case codes.Unauthenticated, codes.PermissionDenied:
		return ErrUnauthorized
	case codes.Unavailable, codes.DeadlineExceeded:
		return ErrUnavailable
	case codes.NotFound:
		return ErrNotFound
	case codes.AlreadyExists:
		return ErrAlreadyExists
	case codes.InvalidArgument:
		return fmt.Errorf("%w: %s", ErrInvalidInput, st.Message())
	default:
		return fmt.Errorf("rpc error: %w", err)
	}
}
