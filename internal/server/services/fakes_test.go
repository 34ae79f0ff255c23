package services

import (
	"context"
	"database/sql"
	"sync"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/dmitrijs2005/todokeeper/internal/common"
	"github.com/dmitrijs2005/todokeeper/internal/dbx"
	"github.com/dmitrijs2005/todokeeper/internal/server/models"
	"github.com/dmitrijs2005/todokeeper/internal/server/repositories/loginattempts"
	"github.com/dmitrijs2005/todokeeper/internal/server/repositories/todos"
	"github.com/dmitrijs2005/todokeeper/internal/server/repositories/users"
)

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

// memUsersRepo is an in-memory users.Repository.
type memUsersRepo struct {
	mu     sync.Mutex
	byName map[string]*models.User
	nextID int64

	createErr error
	getErr    error
}

func newMemUsersRepo() *memUsersRepo {
	return &memUsersRepo{byName: make(map[string]*models.User)}
}

func (r *memUsersRepo) Create(_ context.Context, u *models.User) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return nil, r.createErr
	}
	if _, ok := r.byName[u.Username]; ok {
		return nil, common.ErrorAlreadyExists
	}
	r.nextID++
	stored := *u
	stored.ID = r.nextID
	r.byName[u.Username] = &stored
	out := stored
	return &out, nil
}

func (r *memUsersRepo) GetByUsername(_ context.Context, username string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.getErr != nil {
		return nil, r.getErr
	}
	u, ok := r.byName[username]
	if !ok {
		return nil, common.ErrorNotFound
	}
	out := *u
	return &out, nil
}

type fakeAttemptsRepo struct {
	mu       sync.Mutex
	attempts []models.LoginAttempt
	err      error
}

func (r *fakeAttemptsRepo) Create(_ context.Context, a *models.LoginAttempt) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.attempts = append(r.attempts, *a)
	return nil
}

type fakeTodosRepo struct {
	listOut []*models.Todo
	listErr error

	getOut *models.Todo
	getErr error

	createErr error
	updateErr error
	deleteErr error

	updated   *models.Todo
	deletedID int64
	ownerSeen int64
	dbSeen    dbx.DBTX
}

func (r *fakeTodosRepo) List(_ context.Context, ownerID int64) ([]*models.Todo, error) {
	r.ownerSeen = ownerID
	return r.listOut, r.listErr
}

func (r *fakeTodosRepo) Get(_ context.Context, ownerID, id int64) (*models.Todo, error) {
	r.ownerSeen = ownerID
	if r.getErr != nil {
		return nil, r.getErr
	}
	return r.getOut, nil
}

func (r *fakeTodosRepo) GetForUpdate(ctx context.Context, ownerID, id int64) (*models.Todo, error) {
	return r.Get(ctx, ownerID, id)
}

func (r *fakeTodosRepo) Create(_ context.Context, t *models.Todo) (*models.Todo, error) {
	r.ownerSeen = t.OwnerID
	if r.createErr != nil {
		return nil, r.createErr
	}
	out := *t
	out.ID = 100
	return &out, nil
}

func (r *fakeTodosRepo) Update(_ context.Context, t *models.Todo) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	cp := *t
	r.updated = &cp
	return nil
}

func (r *fakeTodosRepo) Delete(_ context.Context, ownerID, id int64) error {
	r.ownerSeen = ownerID
	r.deletedID = id
	return r.deleteErr
}

type fakeRepoManager struct {
	u *memUsersRepo
	t *fakeTodosRepo
	a *fakeAttemptsRepo

	todoDBs []dbx.DBTX
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Users(dbx.DBTX) users.Repository            { return m.u }
func (m *fakeRepoManager) LoginAttempts(dbx.DBTX) loginattempts.Repository {
	return m.a
}
func (m *fakeRepoManager) Todos(db dbx.DBTX) todos.Repository {
	m.todoDBs = append(m.todoDBs, db)
	return m.t
}
