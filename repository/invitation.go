package repository

import (
	"context"

	"github.com/rafaelrch/koplai/domain"
)

type InvitationRepository interface {
	GetByToken(ctx context.Context, token string) (*domain.Invitation, error)
	ListByCompany(ctx context.Context, companyID string) ([]domain.Invitation, error)
	Create(ctx context.Context, invitation *domain.Invitation) (*domain.Invitation, error)
	UpdateStatus(ctx context.Context, id string, status string) error
	Delete(ctx context.Context, id string) error
}
