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

type companyRepository struct {
	pool *pgxpool.Pool
}

// NewCompanyRepository returns a Postgres-backed implementation of CompanyRepository.
func NewCompanyRepository(pool *pgxpool.Pool) repository.CompanyRepository {
	return &companyRepository{pool: pool}
}

func (r *companyRepository) GetByID(ctx context.Context, id string) (*domain.Company, error) {
	var company domain.Company
	if err := r.pool.QueryRow(ctx,
		`SELECT id, name, email, created_at FROM companies WHERE id = $1`, id,
	).Scan(&company.ID, &company.Name, &company.Email, &company.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCompanyNotFound
		}
		return nil, err
	}
	return &company, nil
}

func (r *companyRepository) Create(ctx context.Context, company *domain.Company) (*domain.Company, error) {
	if company == nil {
		return nil, domain.ErrInvalidPayload
	}
	if company.ID == "" {
		company.ID = uuid.NewString()
	}

	const query = `
	INSERT INTO companies (id, name, email)
	VALUES ($1, $2, $3)
	RETURNING created_at
	`
	if err := r.pool.QueryRow(ctx, query,
		company.ID,
		company.Name,
		company.Email,
	).Scan(&company.CreatedAt); err != nil {
		return nil, err
	}
	return company, nil
}
