// Package client is the CLI's connection to the todokeeper gRPC API.
//
// GRPCClient owns the connection, attaches the stored access token to every
// call through a unary interceptor, and maps gRPC status codes to the
// sentinel errors ErrUnavailable, ErrUnauthorized, ErrNotFound,
// ErrAlreadyExists and ErrInvalidInput so callers can use errors.Is.
package client
