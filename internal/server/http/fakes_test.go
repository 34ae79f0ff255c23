package http

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dmitrijs2005/todokeeper/internal/common"
	"github.com/dmitrijs2005/todokeeper/internal/server/auth"
	"github.com/dmitrijs2005/todokeeper/internal/server/models"
	"github.com/dmitrijs2005/todokeeper/internal/server/services"
)

type fakeUsers struct {
	mu        sync.Mutex
	users     map[string]*models.User
	passwords map[string]string
	codec     *auth.TokenCodec
	lastAddr  string
}

func newFakeUsers(codec *auth.TokenCodec) *fakeUsers {
	return &fakeUsers{
		users:     make(map[string]*models.User),
		passwords: make(map[string]string),
		codec:     codec,
	}
}

func (f *fakeUsers) Register(_ context.Context, in services.RegisterInput) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if in.Username == "" || in.Password == "" {
		return nil, fmt.Errorf("%w: username and password are required", common.ErrorValidation)
	}
	if _, ok := f.users[in.Username]; ok {
		return nil, common.ErrorAlreadyExists
	}
	role := in.Role
	if role == "" {
		role = common.DefaultRole
	}
	u := &models.User{
		ID:           int64(len(f.users) + 1),
		Username:     in.Username,
		Email:        in.Email,
		Role:         role,
		PasswordHash: "$2a$04$not-a-real-hash",
		IsActive:     true,
		CreatedAt:    time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
	}
	f.users[in.Username] = u
	f.passwords[in.Username] = in.Password
	return u, nil
}

// Login wraps distinct causes so tests can prove the transport hides them.
func (f *fakeUsers) Login(_ context.Context, username, password, remoteAddr string) (*services.AccessToken, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastAddr = remoteAddr
	u, ok := f.users[username]
	if !ok {
		return nil, fmt.Errorf("%w: %w", common.ErrorUnauthorized, common.ErrorNotFound)
	}
	if f.passwords[username] != password {
		return nil, fmt.Errorf("%w: %w", common.ErrorUnauthorized, common.ErrBadCredential)
	}
	tok, err := f.codec.Issue(u.Username, u.ID, u.Role, time.Hour)
	if err != nil {
		return nil, common.ErrorInternal
	}
	return &services.AccessToken{AccessToken: tok, TokenType: common.TokenTypeBearer}, nil
}

type fakeTodos struct {
	mu     sync.Mutex
	items  map[int64]*models.Todo
	nextID int64
	panics bool
	err    error
	calls  atomic.Int64
}

func newFakeTodos() *fakeTodos {
	return &fakeTodos{items: make(map[int64]*models.Todo)}
}

func (f *fakeTodos) List(_ context.Context, ownerID int64) ([]*models.Todo, error) {
	f.calls.Add(1)
	if f.panics {
		panic("boom")
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	out := []*models.Todo{}
	for id := int64(1); id <= f.nextID; id++ {
		if t, ok := f.items[id]; ok && t.OwnerID == ownerID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeTodos) Get(_ context.Context, ownerID, id int64) (*models.Todo, error) {
	f.calls.Add(1)
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.items[id]
	if !ok || t.OwnerID != ownerID {
		return nil, common.ErrorNotFound
	}
	return t, nil
}

func (f *fakeTodos) Create(_ context.Context, ownerID int64, in models.TodoInput) (*models.Todo, error) {
	f.calls.Add(1)
	if err := in.Validate(); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	t := &models.Todo{
		ID:          f.nextID,
		OwnerID:     ownerID,
		Title:       in.Title,
		Description: in.Description,
		Priority:    in.Priority,
		Complete:    in.Complete,
	}
	f.items[t.ID] = t
	return t, nil
}

func (f *fakeTodos) Update(_ context.Context, ownerID, id int64, in models.TodoInput) error {
	f.calls.Add(1)
	if err := in.Validate(); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.items[id]
	if !ok || t.OwnerID != ownerID {
		return common.ErrorNotFound
	}
	t.Title, t.Description, t.Priority, t.Complete = in.Title, in.Description, in.Priority, in.Complete
	return nil
}

func (f *fakeTodos) Delete(_ context.Context, ownerID, id int64) error {
	f.calls.Add(1)
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.items[id]
	if !ok || t.OwnerID != ownerID {
		return common.ErrorNotFound
	}
	delete(f.items, id)
	return nil
}

func newTestCodec(t *testing.T, now func() time.Time) *auth.TokenCodec {
	t.Helper()
	opts := []auth.CodecOption{}
	if now != nil {
		opts = append(opts, auth.WithClock(now))
	}
	c, err := auth.NewTokenCodec([]byte("http-test-secret"), "HS256", opts...)
	if err != nil {
		t.Fatalf("NewTokenCodec error: %v", err)
	}
	return c
}
