package repository

import (
	"context"

	"github.com/rafaelrch/koplai/domain"
)

type UserRepository interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	ListByCompany(ctx context.Context, companyID string) ([]domain.User, error)
}
