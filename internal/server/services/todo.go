package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/todokeeper/internal/common"
	"github.com/dmitrijs2005/todokeeper/internal/dbx"
	"github.com/dmitrijs2005/todokeeper/internal/logging"
	"github.com/dmitrijs2005/todokeeper/internal/server/models"
	"github.com/dmitrijs2005/todokeeper/internal/server/repositories/repomanager"
)

// TodoService manages todos on behalf of an authenticated owner. The owner
// id always comes from the resolved identity, never from the request body.
type TodoService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	logger      logging.Logger
}

func NewTodoService(db *sql.DB, m repomanager.RepositoryManager, logger logging.Logger) *TodoService {
	if logger == nil {
		logger = logging.Nop{}
	}
	return &TodoService{
		db:          db,
		repomanager: m,
		logger:      logger.With("module", "todos"),
	}
}

func (s *TodoService) List(ctx context.Context, ownerID int64) ([]*models.Todo, error) {
	items, err := s.repomanager.Todos(s.db).List(ctx, ownerID)
	if err != nil {
		return nil, s.translate(ctx, "list todos", err)
	}
	return items, nil
}

func (s *TodoService) Get(ctx context.Context, ownerID, id int64) (*models.Todo, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	item, err := s.repomanager.Todos(s.db).Get(ctx, ownerID, id)
	if err != nil {
		return nil, s.translate(ctx, "get todo", err)
	}
	return item, nil
}

func (s *TodoService) Create(ctx context.Context, ownerID int64, in models.TodoInput) (*models.Todo, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	item := &models.Todo{
		OwnerID:     ownerID,
		Title:       in.Title,
		Description: in.Description,
		Priority:    in.Priority,
		Complete:    in.Complete,
	}
	created, err := s.repomanager.Todos(s.db).Create(ctx, item)
	if err != nil {
		return nil, s.translate(ctx, "create todo", err)
	}
	return created, nil
}

// Update replaces the editable fields of one of the owner's todos. The row
// is locked for the duration of the transaction.
func (s *TodoService) Update(ctx context.Context, ownerID, id int64, in models.TodoInput) error {
	if err := checkID(id); err != nil {
		return err
	}
	if err := in.Validate(); err != nil {
		return err
	}

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Todos(tx)

		item, err := repo.GetForUpdate(ctx, ownerID, id)
		if err != nil {
			return err
		}

		item.Title = in.Title
		item.Description = in.Description
		item.Priority = in.Priority
		item.Complete = in.Complete

		return repo.Update(ctx, item)
	})
	if err != nil {
		return s.translate(ctx, "update todo", err)
	}
	return nil
}

func (s *TodoService) Delete(ctx context.Context, ownerID, id int64) error {
	if err := checkID(id); err != nil {
		return err
	}
	if err := s.repomanager.Todos(s.db).Delete(ctx, ownerID, id); err != nil {
		return s.translate(ctx, "delete todo", err)
	}
	return nil
}

func checkID(id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: id must be positive", common.ErrorValidation)
	}
	return nil
}

// translate keeps NotFound for the caller and hides everything else behind
// ErrorInternal after logging it.
func (s *TodoService) translate(ctx context.Context, op string, err error) error {
	if errors.Is(err, common.ErrorNotFound) {
		return common.ErrorNotFound
	}
	s.logger.Error(ctx, op, "error", err)
	return common.ErrorInternal
}
