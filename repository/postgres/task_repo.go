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

type taskRepository struct {
	pool *pgxpool.Pool
}

// NewTaskRepository returns a Postgres-backed implementation of TaskRepository.
// Link and attachment lists live in serialized text columns and are encoded
// on write and decoded on read.
func NewTaskRepository(pool *pgxpool.Pool) repository.TaskRepository {
	return &taskRepository{pool: pool}
}

const taskColumns = `id, column_id, title, description, position, view_type, links, attachments, created_at, updated_at`

func (r *taskRepository) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+taskColumns+` FROM kanban_tasks WHERE id = $1`, id)
	return scanTask(row)
}

func (r *taskRepository) ListByView(ctx context.Context, view domain.View) ([]domain.Task, error) {
	const query = `SELECT ` + taskColumns + `
	FROM kanban_tasks
	WHERE view_type = $1
	ORDER BY position ASC`
	return r.list(ctx, query, string(view))
}

func (r *taskRepository) ListByColumn(ctx context.Context, columnID string) ([]domain.Task, error) {
	const query = `SELECT ` + taskColumns + `
	FROM kanban_tasks
	WHERE column_id = $1
	ORDER BY position ASC`
	return r.list(ctx, query, columnID)
}

func (r *taskRepository) list(ctx context.Context, query string, arg interface{}) ([]domain.Task, error) {
	rows, err := r.pool.Query(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []domain.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *task)
	}
	return tasks, rows.Err()
}

func (r *taskRepository) Create(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	if task == nil {
		return nil, domain.ErrInvalidPayload
	}
	if task.ID == "" {
		task.ID = uuid.NewString()
	}

	links, err := domain.EncodeLinks(task.Links)
	if err != nil {
		return nil, err
	}
	attachments, err := domain.EncodeAttachments(task.Attachments)
	if err != nil {
		return nil, err
	}

	const query = `
	INSERT INTO kanban_tasks (id, column_id, title, description, position, view_type, links, attachments)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	RETURNING created_at, updated_at
	`
	if err := r.pool.QueryRow(ctx, query,
		task.ID,
		task.ColumnID,
		task.Title,
		task.Description,
		task.Position,
		string(task.View),
		links,
		attachments,
	).Scan(&task.CreatedAt, &task.UpdatedAt); err != nil {
		return nil, err
	}
	return task, nil
}

// Update replaces the task's mutable fields; column and position are owned by
// Place.
func (r *taskRepository) Update(ctx context.Context, task *domain.Task) error {
	if task == nil {
		return domain.ErrInvalidPayload
	}

	links, err := domain.EncodeLinks(task.Links)
	if err != nil {
		return err
	}
	attachments, err := domain.EncodeAttachments(task.Attachments)
	if err != nil {
		return err
	}

	const query = `
	UPDATE kanban_tasks
	SET title = $2,
		description = $3,
		links = $4,
		attachments = $5,
		updated_at = NOW()
	WHERE id = $1
	RETURNING updated_at
	`
	if err := r.pool.QueryRow(ctx, query,
		task.ID,
		task.Title,
		task.Description,
		links,
		attachments,
	).Scan(&task.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrTaskNotFound
		}
		return err
	}
	return nil
}

func (r *taskRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM kanban_tasks WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

// Place applies a batch of (column, position) assignments in one transaction
// so a move never leaves sibling positions half-renumbered.
func (r *taskRepository) Place(ctx context.Context, placements []domain.TaskPlacement) error {
	if len(placements) == 0 {
		return nil
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	batch := &pgx.Batch{}
	for _, p := range placements {
		batch.Queue(`
		UPDATE kanban_tasks
		SET column_id = $2, position = $3, updated_at = NOW()
		WHERE id = $1`, p.TaskID, p.ColumnID, p.Position)
	}

	results := tx.SendBatch(ctx, batch)
	for range placements {
		if _, err := results.Exec(); err != nil {
			results.Close()
			return err
		}
	}
	if err := results.Close(); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func scanTask(row interface {
	Scan(dest ...interface{}) error
}) (*domain.Task, error) {
	var task domain.Task
	var (
		links       string
		attachments string
	)

	if err := row.Scan(
		&task.ID,
		&task.ColumnID,
		&task.Title,
		&task.Description,
		&task.Position,
		&task.View,
		&links,
		&attachments,
		&task.CreatedAt,
		&task.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, err
	}

	decodedLinks, err := domain.DecodeLinks(links)
	if err != nil {
		return nil, err
	}
	decodedAttachments, err := domain.DecodeAttachments(attachments)
	if err != nil {
		return nil, err
	}
	task.Links = decodedLinks
	task.Attachments = decodedAttachments

	return &task, nil
}
