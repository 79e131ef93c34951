package repository

import (
	"context"

	"github.com/rafaelrch/koplai/domain"
)

// ColumnRepository is the storage port for kanban columns.
type ColumnRepository interface {
	ListByView(ctx context.Context, view domain.View) ([]domain.Column, error)
	GetByID(ctx context.Context, id string) (*domain.Column, error)
	Create(ctx context.Context, column *domain.Column) (*domain.Column, error)
	Update(ctx context.Context, column *domain.Column) error
	// Delete removes the column and all of its tasks in one transaction.
	Delete(ctx context.Context, id string) error
}

// TaskRepository is the storage port for kanban tasks.
type TaskRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Task, error)
	ListByView(ctx context.Context, view domain.View) ([]domain.Task, error)
	ListByColumn(ctx context.Context, columnID string) ([]domain.Task, error)
	Create(ctx context.Context, task *domain.Task) (*domain.Task, error)
	Update(ctx context.Context, task *domain.Task) error
	Delete(ctx context.Context, id string) error
	// Place applies a batch of (column, position) assignments atomically,
	// keeping sibling positions dense after a move.
	Place(ctx context.Context, placements []domain.TaskPlacement) error
}
