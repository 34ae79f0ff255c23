package auth

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/todokeeper/internal/common"
)

// Identity is the caller resolved from a valid access token. It lives for
// one request.
type Identity struct {
	Username string `json:"username"`
	ID       int64  `json:"id"`
	Role     string `json:"role"`
}

// TokenDecoder is the part of TokenCodec the guard depends on.
type TokenDecoder interface {
	Decode(token string) (*Claims, error)
}

// Guard resolves bearer tokens into identities before protected handlers
// run. It never touches storage.
type Guard struct {
	decoder TokenDecoder
}

func NewGuard(decoder TokenDecoder) *Guard {
	return &Guard{decoder: decoder}
}

// Resolve decodes token and returns the identity it carries. Every failure,
// including an empty token, wraps common.ErrorUnauthorized; the underlying
// token error stays reachable through errors.Is for logging.
func (g *Guard) Resolve(token string) (Identity, error) {
	if token == "" {
		return Identity{}, fmt.Errorf("%w: %w", common.ErrorUnauthorized, common.ErrInvalidToken)
	}

	claims, err := g.decoder.Decode(token)
	if err != nil {
		return Identity{}, fmt.Errorf("%w: %w", common.ErrorUnauthorized, err)
	}

	if claims.Subject == "" || claims.UserID == nil {
		return Identity{}, fmt.Errorf("%w: %w", common.ErrorUnauthorized, common.ErrInvalidToken)
	}

	return Identity{
		Username: claims.Subject,
		ID:       *claims.UserID,
		Role:     claims.Role,
	}, nil
}

type identityKey struct{}

// WithIdentity returns a copy of ctx carrying id.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// IdentityFromContext returns the identity stored by WithIdentity.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(Identity)
	return id, ok
}
