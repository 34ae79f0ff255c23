// Package auth holds the authentication core of todokeeper: the bcrypt
// credential verifier, the signed access-token codec and the access guard
// that turns a bearer token into a request identity.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dmitrijs2005/todokeeper/internal/common"
)

// Claims is the payload of an access token: the username in "sub", the
// numeric user id in "id", the role and the standard expiry.
type Claims struct {
	UserID *int64 `json:"id,omitempty"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// TokenCodec issues and decodes HMAC-signed access tokens. Only the
// configured algorithm is accepted on decode.
type TokenCodec struct {
	secret []byte
	method jwt.SigningMethod
	now    func() time.Time
}

// CodecOption customizes a TokenCodec.
type CodecOption func(*TokenCodec)

// WithClock replaces time.Now for issuing and validating tokens.
func WithClock(now func() time.Time) CodecOption {
	return func(c *TokenCodec) {
		c.now = now
	}
}

// NewTokenCodec builds a codec for the given secret and HMAC algorithm
// name (HS256, HS384 or HS512).
func NewTokenCodec(secret []byte, algorithm string, opts ...CodecOption) (*TokenCodec, error) {
	if len(secret) == 0 {
		return nil, errors.New("auth: empty signing secret")
	}

	method, ok := jwt.GetSigningMethod(algorithm).(*jwt.SigningMethodHMAC)
	if !ok {
		return nil, fmt.Errorf("auth: unsupported signing algorithm %q", algorithm)
	}

	c := &TokenCodec{
		secret: secret,
		method: method,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Issue signs a token for the user that expires ttl from now.
func (c *TokenCodec) Issue(username string, userID int64, role string, ttl time.Duration) (string, error) {
	if username == "" {
		return "", fmt.Errorf("%w: empty subject", common.ErrInvalidToken)
	}

	id := userID
	token := jwt.NewWithClaims(c.method, Claims{
		UserID: &id,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			ExpiresAt: jwt.NewNumericDate(c.now().Add(ttl)),
		},
	})

	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", err
	}
	return signed, nil
}

// Decode verifies the signature and expiry of token and returns its claims.
// Expired tokens yield common.ErrTokenExpired, everything else that fails
// (bad signature, foreign algorithm, malformed structure, missing exp, sub
// or id) yields common.ErrInvalidToken.
func (c *TokenCodec) Decode(tokenString string) (*Claims, error) {
	claims := &Claims{}

	_, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (any, error) {
			return c.secret, nil
		},
		jwt.WithValidMethods([]string{c.method.Alg()}),
		jwt.WithTimeFunc(c.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, common.ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %w", common.ErrInvalidToken, err)
	}

	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: missing sub", common.ErrInvalidToken)
	}
	if claims.UserID == nil {
		return nil, fmt.Errorf("%w: missing id", common.ErrInvalidToken)
	}

	return claims, nil
}
