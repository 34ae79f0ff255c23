package grpc

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/todokeeper/internal/common"
	"github.com/dmitrijs2005/todokeeper/internal/server/auth"
	"github.com/dmitrijs2005/todokeeper/internal/server/models"
	"github.com/dmitrijs2005/todokeeper/internal/server/services"
)

func newTestCodec(t *testing.T) *auth.TokenCodec {
	t.Helper()
	c, err := auth.NewTokenCodec([]byte("grpc-test-secret"), "HS256")
	if err != nil {
		t.Fatalf("NewTokenCodec error: %v", err)
	}
	return c
}

type fakeUsers struct {
	mu        sync.Mutex
	codec     *auth.TokenCodec
	users     map[string]*models.User
	passwords map[string]string
	lastAddr  string
	loginErr  error
}

func newFakeUsers(codec *auth.TokenCodec) *fakeUsers {
	return &fakeUsers{codec: codec, users: map[string]*models.User{}, passwords: map[string]string{}}
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
	u := &models.User{ID: int64(len(f.users) + 1), Username: in.Username, Role: common.DefaultRole, IsActive: true}
	f.users[in.Username] = u
	f.passwords[in.Username] = in.Password
	return u, nil
}

func (f *fakeUsers) Login(_ context.Context, username, password, remoteAddr string) (*services.AccessToken, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastAddr = remoteAddr
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	u, ok := f.users[username]
	if !ok || f.passwords[username] != password {
		return nil, common.ErrorUnauthorized
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
}

func newFakeTodos() *fakeTodos {
	return &fakeTodos{items: map[int64]*models.Todo{}}
}

func (f *fakeTodos) List(_ context.Context, ownerID int64) ([]*models.Todo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []*models.Todo{}
	for id := int64(1); id <= f.nextID; id++ {
		if t, ok := f.items[id]; ok && t.OwnerID == ownerID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeTodos) Get(_ context.Context, ownerID, id int64) (*models.Todo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.items[id]
	if !ok || t.OwnerID != ownerID {
		return nil, common.ErrorNotFound
	}
	cp := *t
	return &cp, nil
}

func (f *fakeTodos) Create(_ context.Context, ownerID int64, in models.TodoInput) (*models.Todo, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	t := &models.Todo{ID: f.nextID, OwnerID: ownerID, Title: in.Title, Description: in.Description, Priority: in.Priority, Complete: in.Complete}
	f.items[t.ID] = t
	return t, nil
}

func (f *fakeTodos) Update(_ context.Context, ownerID, id int64, in models.TodoInput) error {
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
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.items[id]
	if !ok || t.OwnerID != ownerID {
		return common.ErrorNotFound
	}
	delete(f.items, id)
	return nil
}
