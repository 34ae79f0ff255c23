package rpc

import (
	"context"

	"google.golang.org/grpc"
)

const ServiceName = "todokeeper.TodoKeeperService"

const (
	FullMethodRegister   = "/" + ServiceName + "/Register"
	FullMethodLogin      = "/" + ServiceName + "/Login"
	FullMethodWhoAmI     = "/" + ServiceName + "/WhoAmI"
	FullMethodListTodos  = "/" + ServiceName + "/ListTodos"
	FullMethodGetTodo    = "/" + ServiceName + "/GetTodo"
	FullMethodCreateTodo = "/" + ServiceName + "/CreateTodo"
	FullMethodUpdateTodo = "/" + ServiceName + "/UpdateTodo"
	FullMethodDeleteTodo = "/" + ServiceName + "/DeleteTodo"
	FullMethodPing       = "/" + ServiceName + "/Ping"
)

// TodoKeeperServiceServer is implemented by the server side of the API.
type TodoKeeperServiceServer interface {
	Register(context.Context, *RegisterRequest) (*RegisterResponse, error)
	Login(context.Context, *LoginRequest) (*LoginResponse, error)
	WhoAmI(context.Context, *WhoAmIRequest) (*WhoAmIResponse, error)
	ListTodos(context.Context, *ListTodosRequest) (*ListTodosResponse, error)
	GetTodo(context.Context, *GetTodoRequest) (*GetTodoResponse, error)
	CreateTodo(context.Context, *CreateTodoRequest) (*CreateTodoResponse, error)
	UpdateTodo(context.Context, *UpdateTodoRequest) (*UpdateTodoResponse, error)
	DeleteTodo(context.Context, *DeleteTodoRequest) (*DeleteTodoResponse, error)
	Ping(context.Context, *PingRequest) (*PingResponse, error)
}

// unaryHandler adapts a typed server method to grpc.MethodHandler, running
// the server's interceptor chain when one is installed.
func unaryHandler[Req, Resp any](fullMethod string, call func(TodoKeeperServiceServer, context.Context, *Req) (*Resp, error)) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		s := srv.(TodoKeeperServiceServer)
		if interceptor == nil {
			return call(s, ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(s, ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

var serviceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*TodoKeeperServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Register", Handler: unaryHandler(FullMethodRegister, TodoKeeperServiceServer.Register)},
		{MethodName: "Login", Handler: unaryHandler(FullMethodLogin, TodoKeeperServiceServer.Login)},
		{MethodName: "WhoAmI", Handler: unaryHandler(FullMethodWhoAmI, TodoKeeperServiceServer.WhoAmI)},
		{MethodName: "ListTodos", Handler: unaryHandler(FullMethodListTodos, TodoKeeperServiceServer.ListTodos)},
		{MethodName: "GetTodo", Handler: unaryHandler(FullMethodGetTodo, TodoKeeperServiceServer.GetTodo)},
		{MethodName: "CreateTodo", Handler: unaryHandler(FullMethodCreateTodo, TodoKeeperServiceServer.CreateTodo)},
		{MethodName: "UpdateTodo", Handler: unaryHandler(FullMethodUpdateTodo, TodoKeeperServiceServer.UpdateTodo)},
		{MethodName: "DeleteTodo", Handler: unaryHandler(FullMethodDeleteTodo, TodoKeeperServiceServer.DeleteTodo)},
		{MethodName: "Ping", Handler: unaryHandler(FullMethodPing, TodoKeeperServiceServer.Ping)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "todokeeper",
}

func RegisterTodoKeeperServiceServer(s grpc.ServiceRegistrar, srv TodoKeeperServiceServer) {
	s.RegisterService(&serviceDesc, srv)
}

// TodoKeeperServiceClient is the client side of the API.
type TodoKeeperServiceClient interface {
	Register(ctx context.Context, in *RegisterRequest, opts ...grpc.CallOption) (*RegisterResponse, error)
	Login(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*LoginResponse, error)
	WhoAmI(ctx context.Context, in *WhoAmIRequest, opts ...grpc.CallOption) (*WhoAmIResponse, error)
	ListTodos(ctx context.Context, in *ListTodosRequest, opts ...grpc.CallOption) (*ListTodosResponse, error)
	GetTodo(ctx context.Context, in *GetTodoRequest, opts ...grpc.CallOption) (*GetTodoResponse, error)
	CreateTodo(ctx context.Context, in *CreateTodoRequest, opts ...grpc.CallOption) (*CreateTodoResponse, error)
	UpdateTodo(ctx context.Context, in *UpdateTodoRequest, opts ...grpc.CallOption) (*UpdateTodoResponse, error)
	DeleteTodo(ctx context.Context, in *DeleteTodoRequest, opts ...grpc.CallOption) (*DeleteTodoResponse, error)
	Ping(ctx context.Context, in *PingRequest, opts ...grpc.CallOption) (*PingResponse, error)
}

type todoKeeperServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewTodoKeeperServiceClient(cc grpc.ClientConnInterface) TodoKeeperServiceClient {
	return &todoKeeperServiceClient{cc: cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{CallOption()}, opts...)
	if err := cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *todoKeeperServiceClient) Register(ctx context.Context, in *RegisterRequest, opts ...grpc.CallOption) (*RegisterResponse, error) {
	return invoke[RegisterResponse](ctx, c.cc, FullMethodRegister, in, opts)
}

func (c *todoKeeperServiceClient) Login(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*LoginResponse, error) {
	return invoke[LoginResponse](ctx, c.cc, FullMethodLogin, in, opts)
}

func (c *todoKeeperServiceClient) WhoAmI(ctx context.Context, in *WhoAmIRequest, opts ...grpc.CallOption) (*WhoAmIResponse, error) {
	return invoke[WhoAmIResponse](ctx, c.cc, FullMethodWhoAmI, in, opts)
}

func (c *todoKeeperServiceClient) ListTodos(ctx context.Context, in *ListTodosRequest, opts ...grpc.CallOption) (*ListTodosResponse, error) {
	return invoke[ListTodosResponse](ctx, c.cc, FullMethodListTodos, in, opts)
}

func (c *todoKeeperServiceClient) GetTodo(ctx context.Context, in *GetTodoRequest, opts ...grpc.CallOption) (*GetTodoResponse, error) {
	return invoke[GetTodoResponse](ctx, c.cc, FullMethodGetTodo, in, opts)
}

func (c *todoKeeperServiceClient) CreateTodo(ctx context.Context, in *CreateTodoRequest, opts ...grpc.CallOption) (*CreateTodoResponse, error) {
	return invoke[CreateTodoResponse](ctx, c.cc, FullMethodCreateTodo, in, opts)
}

func (c *todoKeeperServiceClient) UpdateTodo(ctx context.Context, in *UpdateTodoRequest, opts ...grpc.CallOption) (*UpdateTodoResponse, error) {
	return invoke[UpdateTodoResponse](ctx, c.cc, FullMethodUpdateTodo, in, opts)
}

func (c *todoKeeperServiceClient) DeleteTodo(ctx context.Context, in *DeleteTodoRequest, opts ...grpc.CallOption) (*DeleteTodoResponse, error) {
	return invoke[DeleteTodoResponse](ctx, c.cc, FullMethodDeleteTodo, in, opts)
}

func (c *todoKeeperServiceClient) Ping(ctx context.Context, in *PingRequest, opts ...grpc.CallOption) (*PingResponse, error) {
	return invoke[PingResponse](ctx, c.cc, FullMethodPing, in, opts)
}
