// Package loginattempts provides a PostgreSQL-backed audit log of login
// outcomes.
package loginattempts

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/todokeeper/internal/dbx"
	"github.com/dmitrijs2005/todokeeper/internal/server/models"
)

// PostgresRepository appends login attempts over dbx.DBTX
// (satisfied by *sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create appends attempt to the audit log.
func (r *PostgresRepository) Create(ctx context.Context, attempt *models.LoginAttempt) error {
	query := `
		INSERT INTO login_attempts (username, user_id, success, remote_addr)
		VALUES ($1, $2, $3, $4)
	`
	if _, err := r.db.ExecContext(ctx, query, attempt.Username, attempt.UserID, attempt.Success, attempt.RemoteAddr); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
