package common

// AccessTokenHeaderName is the gRPC metadata key (and browser cookie name)
// used to carry the access token when no Authorization header is sent.
const AccessTokenHeaderName = "access_token"

// AuthorizationHeaderName carries "Bearer <token>" on HTTP and gRPC requests.
const AuthorizationHeaderName = "authorization"

// TokenTypeBearer is the token_type reported by the login endpoint.
const TokenTypeBearer = "bearer"

// DefaultRole is assigned to users registered without an explicit role.
const DefaultRole = "user"
