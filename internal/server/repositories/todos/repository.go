package todos

import (
	"context"

	"github.com/dmitrijs2005/todokeeper/internal/server/models"
)

// Repository stores todos. Every read and write is scoped to the owner.
type Repository interface {
	List(ctx context.Context, ownerID int64) ([]*models.Todo, error)
	Get(ctx context.Context, ownerID, id int64) (*models.Todo, error)
	GetForUpdate(ctx context.Context, ownerID, id int64) (*models.Todo, error)
	Create(ctx context.Context, todo *models.Todo) (*models.Todo, error)
	Update(ctx context.Context, todo *models.Todo) error
	Delete(ctx context.Context, ownerID, id int64) error
}
