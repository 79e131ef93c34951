package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rafaelrch/koplai/domain"
	"github.com/rafaelrch/koplai/repository"
)

type columnRepository struct {
	pool *pgxpool.Pool
}

// NewColumnRepository returns a Postgres-backed implementation of ColumnRepository.
func NewColumnRepository(pool *pgxpool.Pool) repository.ColumnRepository {
	return &columnRepository{pool: pool}
}

func (r *columnRepository) ListByView(ctx context.Context, view domain.View) ([]domain.Column, error) {
	const query = `
	SELECT id, title, color, position, view_type, created_at, updated_at
	FROM kanban_columns
	WHERE view_type = $1
	ORDER BY position ASC
	`
	rows, err := r.pool.Query(ctx, query, string(view))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var columns []domain.Column
	for rows.Next() {
		var col domain.Column
		if err := rows.Scan(&col.ID, &col.Title, &col.Color, &col.Position, &col.View, &col.CreatedAt, &col.UpdatedAt); err != nil {
			return nil, err
		}
		columns = append(columns, col)
	}
	return columns, rows.Err()
}

func (r *columnRepository) GetByID(ctx context.Context, id string) (*domain.Column, error) {
	const query = `
	SELECT id, title, color, position, view_type, created_at, updated_at
	FROM kanban_columns
	WHERE id = $1
	`
	var col domain.Column
	err := r.pool.QueryRow(ctx, query, id).
		Scan(&col.ID, &col.Title, &col.Color, &col.Position, &col.View, &col.CreatedAt, &col.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrColumnNotFound
		}
		return nil, err
	}
	return &col, nil
}

func (r *columnRepository) Create(ctx context.Context, column *domain.Column) (*domain.Column, error) {
	if column == nil {
		return nil, domain.ErrInvalidPayload
	}
	if column.ID == "" {
		column.ID = uuid.NewString()
	}

	const query = `
	INSERT INTO kanban_columns (id, title, color, position, view_type)
	VALUES ($1, $2, $3, $4, $5)
	RETURNING created_at, updated_at
	`
	if err := r.pool.QueryRow(ctx, query,
		column.ID,
		column.Title,
		column.Color,
		column.Position,
		string(column.View),
	).Scan(&column.CreatedAt, &column.UpdatedAt); err != nil {
		return nil, err
	}
	return column, nil
}

func (r *columnRepository) Update(ctx context.Context, column *domain.Column) error {
	if column == nil {
		return domain.ErrInvalidPayload
	}

	const query = `
	UPDATE kanban_columns
	SET title = $2,
		color = $3,
		updated_at = NOW()
	WHERE id = $1
	RETURNING updated_at
	`
	if err := r.pool.QueryRow(ctx, query, column.ID, column.Title, column.Color).Scan(&column.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrColumnNotFound
		}
		return err
	}
	return nil
}

// Delete removes the column and its tasks in one transaction. The schema also
// cascades, but the explicit delete keeps the behavior visible and testable.
func (r *columnRepository) Delete(ctx context.Context, id string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM kanban_tasks WHERE column_id = $1`, id); err != nil {
		return err
	}
	tag, err := tx.Exec(ctx, `DELETE FROM kanban_columns WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrColumnNotFound
	}
	return tx.Commit(ctx)
}
