// Package services contains server-side business logic. This file implements
// UserService, which handles registration, credential checks and access
// token issuance.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrijs2005/todokeeper/internal/common"
	"github.com/dmitrijs2005/todokeeper/internal/logging"
	"github.com/dmitrijs2005/todokeeper/internal/server/auth"
	"github.com/dmitrijs2005/todokeeper/internal/server/config"
	"github.com/dmitrijs2005/todokeeper/internal/server/lockout"
	"github.com/dmitrijs2005/todokeeper/internal/server/metrics"
	"github.com/dmitrijs2005/todokeeper/internal/server/models"
	"github.com/dmitrijs2005/todokeeper/internal/server/repositories/repomanager"
)

// RegisterInput is what a client supplies to create an account.
type RegisterInput struct {
	Username    string `json:"username"`
	Email       string `json:"email"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Password    string `json:"password"`
	Role        string `json:"role"`
	PhoneNumber string `json:"phone_number"`
}

// AccessToken is the result of a successful login.
type AccessToken struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// TokenIssuer signs access tokens.
type TokenIssuer interface {
	Issue(username string, userID int64, role string, ttl time.Duration) (string, error)
}

// UserService provides authentication-related operations:
// - Register: create users
// - Authenticate: check a username/password pair
// - Login: Authenticate plus lockout, audit and token issuance
type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	hasher      *auth.Hasher
	issuer      TokenIssuer
	tokenTTL    time.Duration
	limiter     *lockout.Limiter
	metrics     *metrics.Metrics
	logger      logging.Logger
}

// UserServiceOption customizes a UserService.
type UserServiceOption func(*UserService)

func WithLimiter(l *lockout.Limiter) UserServiceOption {
	return func(s *UserService) { s.limiter = l }
}

func WithMetrics(m *metrics.Metrics) UserServiceOption {
	return func(s *UserService) { s.metrics = m }
}

func WithLogger(l logging.Logger) UserServiceOption {
	return func(s *UserService) { s.logger = l }
}

// NewUserService constructs a UserService using repositories and server config.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, hasher *auth.Hasher, issuer TokenIssuer, cfg *config.Config, opts ...UserServiceOption) *UserService {
	s := &UserService{
		db:          db,
		repomanager: m,
		hasher:      hasher,
		issuer:      issuer,
		tokenTTL:    cfg.AccessTokenTTL,
		logger:      logging.Nop{},
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With("module", "users")
	return s
}

// Register creates an active user with a bcrypt hash of the password. The
// role defaults to common.DefaultRole.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(in.Email)
	switch {
	case in.Username == "":
		return nil, fmt.Errorf("%w: username is required", common.ErrorValidation)
	case in.Email == "":
		return nil, fmt.Errorf("%w: email is required", common.ErrorValidation)
	case in.Password == "":
		return nil, fmt.Errorf("%w: password is required", common.ErrorValidation)
	}

	role := strings.TrimSpace(in.Role)
	if role == "" {
		role = common.DefaultRole
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return nil, fmt.Errorf("%w: password is too long", common.ErrorValidation)
		}
		s.logger.Error(ctx, "hash password", "error", err)
		return nil, common.ErrorInternal
	}

	user := &models.User{
		Username:     in.Username,
		Email:        in.Email,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		PhoneNumber:  in.PhoneNumber,
		Role:         role,
		PasswordHash: hash,
		IsActive:     true,
	}

	u, err := s.repomanager.Users(s.db).Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, common.ErrorAlreadyExists
		}
		s.logger.Error(ctx, "create user", "username", in.Username, "error", err)
		return nil, common.ErrorInternal
	}

	s.logger.Info(ctx, "user registered", "username", u.Username, "user_id", u.ID)
	return u, nil
}

// Authenticate returns the user when password matches the stored hash.
// An unknown username, or a failed lookup, yields common.ErrorNotFound; a
// wrong password yields common.ErrBadCredential. Both paths run one bcrypt
// comparison. Neither error is meant for clients: Login collapses them to
// common.ErrorUnauthorized.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.authenticate(ctx, username, password)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// authenticate is Authenticate that also hands back the user on a password
// mismatch, for auditing.
func (s *UserService) authenticate(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.repomanager.Users(s.db).GetByUsername(ctx, username)
	if err != nil {
		if !errors.Is(err, common.ErrorNotFound) {
			s.logger.Warn(ctx, "user lookup failed", "username", username, "error", err)
		}
		s.hasher.VerifyDummy(password)
		return nil, common.ErrorNotFound
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return user, common.ErrBadCredential
	}
	return user, nil
}

// Login checks the lockout, authenticates and issues an access token. Every
// failure, including a locked username, is common.ErrorUnauthorized; only a
// signing failure is common.ErrorInternal.
func (s *UserService) Login(ctx context.Context, username, password, remoteAddr string) (*AccessToken, error) {
	locked, err := s.limiter.Locked(ctx, username)
	if err != nil {
		s.logger.Warn(ctx, "lockout check failed", "username", username, "error", err)
	}
	if locked {
		s.hasher.VerifyDummy(password)
		s.metrics.ObserveLogin(metrics.LoginLocked)
		s.audit(ctx, username, nil, false, remoteAddr)
		s.logger.Info(ctx, "login refused, username locked", "username", username)
		return nil, common.ErrorUnauthorized
	}

	user, err := s.authenticate(ctx, username, password)
	if err != nil {
		var userID *int64
		if user != nil {
			userID = &user.ID
		}
		if _, lerr := s.limiter.Fail(ctx, username); lerr != nil {
			s.logger.Warn(ctx, "lockout record failed", "username", username, "error", lerr)
		}
		s.metrics.ObserveLogin(metrics.LoginFailure)
		s.audit(ctx, username, userID, false, remoteAddr)
		s.logger.Info(ctx, "login failed", "username", username, "reason", err.Error())
		return nil, common.ErrorUnauthorized
	}

	token, err := s.issuer.Issue(user.Username, user.ID, user.Role, s.tokenTTL)
	if err != nil {
		s.metrics.ObserveLogin(metrics.LoginError)
		s.logger.Error(ctx, "issue access token", "user_id", user.ID, "error", err)
		return nil, common.ErrorInternal
	}

	if err := s.limiter.Reset(ctx, username); err != nil {
		s.logger.Warn(ctx, "lockout reset failed", "username", username, "error", err)
	}
	s.metrics.ObserveLogin(metrics.LoginSuccess)
	s.audit(ctx, username, &user.ID, true, remoteAddr)

	return &AccessToken{AccessToken: token, TokenType: common.TokenTypeBearer}, nil
}

func (s *UserService) audit(ctx context.Context, username string, userID *int64, success bool, remoteAddr string) {
	attempt := &models.LoginAttempt{
		Username:   username,
		UserID:     userID,
		Success:    success,
		RemoteAddr: remoteAddr,
	}
	if err := s.repomanager.LoginAttempts(s.db).Create(ctx, attempt); err != nil {
		s.logger.Warn(ctx, "record login attempt", "username", username, "error", err)
	}
}
