package loginattempts

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/dmitrijs2005/todokeeper/internal/server/models"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

func TestCreate(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)INSERT INTO login_attempts \(username, user_id, success, remote_addr\)\s+VALUES \(\$1, \$2, \$3, \$4\)`

	id := int64(7)
	mock.ExpectExec(q).
		WithArgs("alice", int64(7), true, "10.0.0.1").
		WillReturnResult(sqlmock.NewResult(1, 1))
	if err := repo.Create(context.Background(), &models.LoginAttempt{Username: "alice", UserID: &id, Success: true, RemoteAddr: "10.0.0.1"}); err != nil {
		t.Fatalf("Create error: %v", err)
	}

	mock.ExpectExec(q).
		WithArgs("ghost", nil, false, "").
		WillReturnResult(sqlmock.NewResult(2, 1))
	if err := repo.Create(context.Background(), &models.LoginAttempt{Username: "ghost"}); err != nil {
		t.Fatalf("Create error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreate_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`INSERT INTO login_attempts`).WillReturnError(errors.New("db down"))

	err := repo.Create(context.Background(), &models.LoginAttempt{Username: "alice"})
	if err == nil || !regexp.MustCompile(`db error: .*db down`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}
