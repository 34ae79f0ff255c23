// Package todos provides the PostgreSQL-backed repository for todo items.
package todos

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/todokeeper/internal/common"
	"github.com/dmitrijs2005/todokeeper/internal/dbx"
	"github.com/dmitrijs2005/todokeeper/internal/server/models"
)

// PostgresRepository implements todo storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// List returns the owner's todos ordered by id.
func (r *PostgresRepository) List(ctx context.Context, ownerID int64) ([]*models.Todo, error) {
	query := `SELECT id, owner_id, title, description, priority, complete FROM todos
		WHERE owner_id = $1
		ORDER BY id
		`
	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Todo, 0)
	for rows.Next() {
		var item models.Todo
		if err := rows.Scan(&item.ID, &item.OwnerID, &item.Title, &item.Description, &item.Priority, &item.Complete); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

// Get returns one todo. A todo owned by someone else is reported as
// common.ErrorNotFound, same as a missing one.
func (r *PostgresRepository) Get(ctx context.Context, ownerID, id int64) (*models.Todo, error) {
	query := `SELECT id, owner_id, title, description, priority, complete FROM todos
		WHERE id = $1 AND owner_id = $2
		`
	return r.getOne(ctx, query, ownerID, id)
}

// GetForUpdate is Get with a row lock; call it inside a transaction.
func (r *PostgresRepository) GetForUpdate(ctx context.Context, ownerID, id int64) (*models.Todo, error) {
	query := `SELECT id, owner_id, title, description, priority, complete FROM todos
		WHERE id = $1 AND owner_id = $2
		FOR UPDATE
		`
	return r.getOne(ctx, query, ownerID, id)
}

func (r *PostgresRepository) getOne(ctx context.Context, query string, ownerID, id int64) (*models.Todo, error) {
	item := &models.Todo{}
	err := r.db.QueryRowContext(ctx, query, id, ownerID).
		Scan(&item.ID, &item.OwnerID, &item.Title, &item.Description, &item.Priority, &item.Complete)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return item, nil
}

// Create inserts todo and fills in its ID.
func (r *PostgresRepository) Create(ctx context.Context, todo *models.Todo) (*models.Todo, error) {
	query := `INSERT INTO todos (owner_id, title, description, priority, complete)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
		`
	err := r.db.QueryRowContext(ctx, query,
		todo.OwnerID, todo.Title, todo.Description, todo.Priority, todo.Complete).Scan(&todo.ID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return todo, nil
}

// Update overwrites the editable fields of todo. Zero affected rows means
// the todo is gone or belongs to another owner.
func (r *PostgresRepository) Update(ctx context.Context, todo *models.Todo) error {
	query := `UPDATE todos
		SET title = $1, description = $2, priority = $3, complete = $4
		WHERE id = $5 AND owner_id = $6
		`
	res, err := r.db.ExecContext(ctx, query,
		todo.Title, todo.Description, todo.Priority, todo.Complete, todo.ID, todo.OwnerID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return expectOneRow(res)
}

// Delete removes one of the owner's todos.
func (r *PostgresRepository) Delete(ctx context.Context, ownerID, id int64) error {
	query := `DELETE FROM todos WHERE id = $1 AND owner_id = $2`
	res, err := r.db.ExecContext(ctx, query, id, ownerID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return expectOneRow(res)
}

func expectOneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	switch n {
	case 1:
		return nil
	case 0:
		return common.ErrorNotFound
	default:
		return fmt.Errorf("unexpected rows affected: %d", n)
	}
}
