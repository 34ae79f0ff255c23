package grpc

import (
	"context"
	"strings"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/dmitrijs2005/todokeeper/internal/common"
	"github.com/dmitrijs2005/todokeeper/internal/rpc"
	"github.com/dmitrijs2005/todokeeper/internal/server/auth"
)

// publicMethods are callable without an access token.
var publicMethods = map[string]bool{
	rpc.FullMethodRegister: true,
	rpc.FullMethodLogin:    true,
	rpc.FullMethodPing:     true,
}

func (s *GRPCServer) accessTokenInterceptor(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
	if publicMethods[info.FullMethod] {
		return handler(ctx, req)
	}

	accessToken := tokenFromMetadata(ctx)
	if accessToken == "" {
		s.metrics.ObserveTokenResolution(false)
		return nil, status.Error(codes.Unauthenticated, "missing token")
	}

	id, err := s.guard.Resolve(accessToken)
	s.metrics.ObserveTokenResolution(err == nil)
	if err != nil {
		s.logger.Debug(ctx, "token rejected", "method", info.FullMethod, "error", err)
		return nil, status.Error(codes.Unauthenticated, unauthenticatedMessage)
	}

	return handler(auth.WithIdentity(ctx, id), req)
}

func (s *GRPCServer) metricsInterceptor(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
	resp, err := handler(ctx, req)
	s.metrics.ObserveGRPCRequest(info.FullMethod, status.Code(err).String())
	return resp, err
}

// tokenFromMetadata reads "authorization: Bearer <t>" and falls back to the
// access_token key.
func tokenFromMetadata(ctx context.Context) string {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return ""
	}
	if values := md.Get(common.AuthorizationHeaderName); len(values) > 0 {
		scheme, token, found := strings.Cut(strings.TrimSpace(values[0]), " ")
		if found && strings.EqualFold(scheme, common.TokenTypeBearer) {
			return strings.TrimSpace(token)
		}
		return ""
	}
	if values := md.Get(common.AccessTokenHeaderName); len(values) > 0 {
		return values[0]
	}
	return ""
}
