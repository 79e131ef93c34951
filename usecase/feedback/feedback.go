package feedback

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/rafaelrch/koplai/domain"
	"github.com/rafaelrch/koplai/repository"
)

type UseCase struct {
	feedback repository.FeedbackRepository
	logger   *zap.Logger
}

func New(feedback repository.FeedbackRepository, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{feedback: feedback, logger: logger}
}

// Submit stores a feedback message from the in-app widget.
func (uc *UseCase) Submit(ctx context.Context, userID, message, page string) (*domain.Feedback, error) {
	if strings.TrimSpace(message) == "" {
		return nil, domain.ErrInvalidPayload
	}
	entry := &domain.Feedback{
		UserID:  userID,
		Message: strings.TrimSpace(message),
		Page:    page,
	}
	created, err := uc.feedback.Create(ctx, entry)
	if err != nil {
		return nil, domain.WrapError(domain.ErrCodeInternal, "erro ao enviar feedback", err)
	}
	return created, nil
}

func (uc *UseCase) List(ctx context.Context, limit int) ([]domain.Feedback, error) {
	return uc.feedback.List(ctx, limit)
}
