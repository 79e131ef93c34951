package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rafaelrch/koplai/domain"
	"github.com/rafaelrch/koplai/repository"
)

type feedbackRepository struct {
	pool *pgxpool.Pool
}

// NewFeedbackRepository returns a Postgres-backed implementation of FeedbackRepository.
func NewFeedbackRepository(pool *pgxpool.Pool) repository.FeedbackRepository {
	return &feedbackRepository{pool: pool}
}

func (r *feedbackRepository) Create(ctx context.Context, feedback *domain.Feedback) (*domain.Feedback, error) {
	if feedback == nil {
		return nil, domain.ErrInvalidPayload
	}
	if feedback.ID == "" {
		feedback.ID = uuid.NewString()
	}

	const query = `
	INSERT INTO feedback (id, user_id, message, page)
	VALUES ($1, $2, $3, $4)
	RETURNING created_at
	`
	if err := r.pool.QueryRow(ctx, query,
		feedback.ID,
		feedback.UserID,
		feedback.Message,
		feedback.Page,
	).Scan(&feedback.CreatedAt); err != nil {
		return nil, err
	}
	return feedback, nil
}

func (r *feedbackRepository) List(ctx context.Context, limit int) ([]domain.Feedback, error) {
	const query = `
	SELECT id, user_id, message, page, created_at
	FROM feedback
	ORDER BY created_at DESC
	LIMIT $1
	`
	rows, err := r.pool.Query(ctx, query, clampLimit(limit))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.Feedback
	for rows.Next() {
		var entry domain.Feedback
		if err := rows.Scan(&entry.ID, &entry.UserID, &entry.Message, &entry.Page, &entry.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}
