package grpc

import (
	"context"
	"testing"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/dmitrijs2005/todokeeper/internal/common"
	"github.com/dmitrijs2005/todokeeper/internal/logging"
	"github.com/dmitrijs2005/todokeeper/internal/rpc"
	"github.com/dmitrijs2005/todokeeper/internal/server/auth"
)

// helper to build server
func newTestServer(t *testing.T) (*GRPCServer, *auth.TokenCodec) {
	codec := newTestCodec(t)
	return NewGRPCServer("", logging.Nop{}, newFakeUsers(codec), newFakeTodos(), auth.NewGuard(codec), nil), codec
}

func TestInterceptor_PublicMethod_AllowsWithoutToken(t *testing.T) {
	s, _ := newTestServer(t)

	for _, method := range []string{rpc.FullMethodRegister, rpc.FullMethodLogin, rpc.FullMethodPing} {
		handlerCalled := false
		h := func(ctx context.Context, req interface{}) (interface{}, error) {
			handlerCalled = true
			return "ok", nil
		}

		resp, err := s.accessTokenInterceptor(context.Background(), nil, &grpc.UnaryServerInfo{FullMethod: method}, h)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", method, err)
		}
		if !handlerCalled || resp != "ok" {
			t.Fatalf("%s: handler was not called", method)
		}
	}
}

func TestInterceptor_MissingToken(t *testing.T) {
	s, _ := newTestServer(t)

	info := &grpc.UnaryServerInfo{FullMethod: rpc.FullMethodWhoAmI}
	h := func(ctx context.Context, req interface{}) (interface{}, error) {
		t.Fatal("handler should not be called when token missing")
		return nil, nil
	}

	_, err := s.accessTokenInterceptor(context.Background(), nil, info, h)
	if status.Code(err) != codes.Unauthenticated {
		t.Fatalf("expected Unauthenticated, got %v", status.Code(err))
	}
	if status.Convert(err).Message() != "missing token" {
		t.Fatalf("expected 'missing token', got %q", status.Convert(err).Message())
	}
}

func TestInterceptor_InvalidToken(t *testing.T) {
	s, _ := newTestServer(t)

	md := metadata.New(map[string]string{
		common.AccessTokenHeaderName: "not-a-valid-jwt",
	})
	ctx := metadata.NewIncomingContext(context.Background(), md)

	h := func(ctx context.Context, req interface{}) (interface{}, error) {
		t.Fatal("handler should not be called with invalid token")
		return nil, nil
	}

	_, err := s.accessTokenInterceptor(ctx, nil, &grpc.UnaryServerInfo{FullMethod: rpc.FullMethodListTodos}, h)
	if status.Code(err) != codes.Unauthenticated {
		t.Fatalf("expected Unauthenticated, got %v", status.Code(err))
	}
}

func TestInterceptor_ValidToken_PutsIdentityInContext(t *testing.T) {
	s, codec := newTestServer(t)

	tok, err := codec.Issue("alice", 42, "admin", time.Hour)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	cases := map[string]metadata.MD{
		"authorization": metadata.Pairs(common.AuthorizationHeaderName, "Bearer "+tok),
		"access_token":  metadata.Pairs(common.AccessTokenHeaderName, tok),
	}
	for name, md := range cases {
		t.Run(name, func(t *testing.T) {
			ctx := metadata.NewIncomingContext(context.Background(), md)

			var got auth.Identity
			h := func(ctx context.Context, req interface{}) (interface{}, error) {
				id, ok := auth.IdentityFromContext(ctx)
				if !ok {
					t.Fatal("identity missing from context")
				}
				got = id
				return "ok", nil
			}

			if _, err := s.accessTokenInterceptor(ctx, nil, &grpc.UnaryServerInfo{FullMethod: rpc.FullMethodWhoAmI}, h); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != (auth.Identity{Username: "alice", ID: 42, Role: "admin"}) {
				t.Fatalf("identity mismatch: %+v", got)
			}
		})
	}
}

func TestInterceptor_NonBearerAuthorizationIsRejected(t *testing.T) {
	s, codec := newTestServer(t)

	tok, err := codec.Issue("alice", 42, "user", time.Hour)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}
	md := metadata.Pairs(common.AuthorizationHeaderName, "Basic "+tok)
	ctx := metadata.NewIncomingContext(context.Background(), md)

	h := func(ctx context.Context, req interface{}) (interface{}, error) {
		t.Fatal("handler should not be called")
		return nil, nil
	}
	_, err = s.accessTokenInterceptor(ctx, nil, &grpc.UnaryServerInfo{FullMethod: rpc.FullMethodWhoAmI}, h)
	if status.Code(err) != codes.Unauthenticated {
		t.Fatalf("expected Unauthenticated, got %v", status.Code(err))
	}
}
