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

type invitationRepository struct {
	pool *pgxpool.Pool
}

// NewInvitationRepository returns a Postgres-backed implementation of InvitationRepository.
func NewInvitationRepository(pool *pgxpool.Pool) repository.InvitationRepository {
	return &invitationRepository{pool: pool}
}

const invitationColumns = `id, COALESCE(company_id::text, ''), email, role, position, token, status, created_by, expires_at, created_at`

func (r *invitationRepository) GetByToken(ctx context.Context, token string) (*domain.Invitation, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+invitationColumns+` FROM invitations WHERE token = $1`, token)
	return scanInvitation(row)
}

func (r *invitationRepository) ListByCompany(ctx context.Context, companyID string) ([]domain.Invitation, error) {
	const query = `SELECT ` + invitationColumns + `
	FROM invitations
	WHERE company_id = NULLIF($1, '')::uuid
	ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var invitations []domain.Invitation
	for rows.Next() {
		inv, err := scanInvitation(rows)
		if err != nil {
			return nil, err
		}
		invitations = append(invitations, *inv)
	}
	return invitations, rows.Err()
}

func (r *invitationRepository) Create(ctx context.Context, invitation *domain.Invitation) (*domain.Invitation, error) {
	if invitation == nil {
		return nil, domain.ErrInvalidPayload
	}
	if invitation.ID == "" {
		invitation.ID = uuid.NewString()
	}

	const query = `
	INSERT INTO invitations (id, company_id, email, role, position, token, status, created_by, expires_at)
	VALUES ($1, NULLIF($2, '')::uuid, $3, $4, $5, $6, $7, $8, $9)
	RETURNING created_at
	`
	if err := r.pool.QueryRow(ctx, query,
		invitation.ID,
		invitation.CompanyID,
		invitation.Email,
		invitation.Role,
		invitation.Position,
		invitation.Token,
		invitation.Status,
		invitation.CreatedBy,
		invitation.ExpiresAt,
	).Scan(&invitation.CreatedAt); err != nil {
		return nil, err
	}
	return invitation, nil
}

func (r *invitationRepository) UpdateStatus(ctx context.Context, id string, status string) error {
	tag, err := r.pool.Exec(ctx, `UPDATE invitations SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrInvitationNotFound
	}
	return nil
}

func (r *invitationRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM invitations WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrInvitationNotFound
	}
	return nil
}

func scanInvitation(row interface {
	Scan(dest ...interface{}) error
}) (*domain.Invitation, error) {
	var inv domain.Invitation
	if err := row.Scan(
		&inv.ID,
		&inv.CompanyID,
		&inv.Email,
		&inv.Role,
		&inv.Position,
		&inv.Token,
		&inv.Status,
		&inv.CreatedBy,
		&inv.ExpiresAt,
		&inv.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrInvitationNotFound
		}
		return nil, err
	}
	return &inv, nil
}
