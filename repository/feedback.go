package repository

import (
	"context"

	"github.com/rafaelrch/koplai/domain"
)

type FeedbackRepository interface {
	Create(ctx context.Context, feedback *domain.Feedback) (*domain.Feedback, error)
	List(ctx context.Context, limit int) ([]domain.Feedback, error)
}
