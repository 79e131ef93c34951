package repository

import (
	"context"

	"github.com/rafaelrch/koplai/domain"
)

type CompanyRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Company, error)
	Create(ctx context.Context, company *domain.Company) (*domain.Company, error)
}
