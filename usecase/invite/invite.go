package invite

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/rafaelrch/koplai/domain"
	"github.com/rafaelrch/koplai/repository"
)

// InviteTTL is how long an invitation stays valid.
const InviteTTL = 7 * 24 * time.Hour

// Mailer abstracts the transactional-email provider.
type Mailer interface {
	SendInvite(ctx context.Context, invitation *domain.Invitation, company *domain.Company, inviter *domain.User) error
}

// Team is the roster returned to the settings page: active members plus
// invitations still pending.
type Team struct {
	Members []domain.User       `json:"members"`
	Pending []domain.Invitation `json:"pending"`
}

type UseCase struct {
	invitations repository.InvitationRepository
	users       repository.UserRepository
	companies   repository.CompanyRepository
	mailer      Mailer
	logger      *zap.Logger
}

func New(invitations repository.InvitationRepository, users repository.UserRepository, companies repository.CompanyRepository, mailer Mailer, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		invitations: invitations,
		users:       users,
		companies:   companies,
		mailer:      mailer,
		logger:      logger,
	}
}

// CreateInvite stores the invitation and asks the mailer to deliver it. A
// delivery failure is logged but does not fail the call; the invite link can
// still be copied from the team page.
func (uc *UseCase) CreateInvite(ctx context.Context, creatorID, email, role, position string) (*domain.Invitation, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, domain.ErrInvalidPayload
	}
	switch role {
	case domain.RoleEmployee, domain.RoleManager, domain.RoleAdmin:
	default:
		return nil, domain.ErrInvalidPayload
	}

	creator, err := uc.users.GetByID(ctx, creatorID)
	if err != nil {
		return nil, err
	}

	company, err := uc.resolveCompany(ctx, creator)
	if err != nil {
		return nil, err
	}

	token, err := newToken()
	if err != nil {
		return nil, domain.WrapError(domain.ErrCodeInternal, "erro ao criar convite", err)
	}

	invitation := &domain.Invitation{
		CompanyID: company.ID,
		Email:     email,
		Role:      role,
		Position:  position,
		Token:     token,
		Status:    domain.InviteStatusPending,
		CreatedBy: creator.ID,
		ExpiresAt: time.Now().Add(InviteTTL),
	}
	created, err := uc.invitations.Create(ctx, invitation)
	if err != nil {
		return nil, domain.WrapError(domain.ErrCodeInternal, "erro ao criar convite", err)
	}

	if uc.mailer != nil {
		if err := uc.mailer.SendInvite(ctx, created, company, creator); err != nil {
			uc.logger.Error("failed to send invite email",
				zap.String("invitation_id", created.ID),
				zap.Error(err))
		}
	}
	return created, nil
}

// resolveCompany loads the creator's tenant. Accounts that predate automatic
// tenant creation get one here, so the first invite always has a company to
// name in the email.
func (uc *UseCase) resolveCompany(ctx context.Context, creator *domain.User) (*domain.Company, error) {
	if creator.CompanyID != "" {
		company, err := uc.companies.GetByID(ctx, creator.CompanyID)
		if err != nil {
			return nil, domain.WrapError(domain.ErrCodeInternal, "erro ao criar convite", err)
		}
		return company, nil
	}

	name := "Equipe de " + creator.Name
	if creator.Name == "" {
		name = "Minha equipe"
	}
	company, err := uc.companies.Create(ctx, &domain.Company{Name: name, Email: creator.Email})
	if err != nil {
		return nil, domain.WrapError(domain.ErrCodeInternal, "erro ao criar convite", err)
	}
	creator.CompanyID = company.ID
	if err := uc.users.Update(ctx, creator); err != nil {
		return nil, domain.WrapError(domain.ErrCodeInternal, "erro ao criar convite", err)
	}
	return company, nil
}

// AcceptInvite validates the token and attaches the accepting user to the
// inviting company with the invited role.
func (uc *UseCase) AcceptInvite(ctx context.Context, token, userID string) (*domain.Invitation, error) {
	invitation, err := uc.invitations.GetByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if invitation.Status != domain.InviteStatusPending {
		return nil, domain.ErrInviteUsed
	}
	if invitation.IsExpired(time.Now()) {
		return nil, domain.ErrInviteExpired
	}

	user, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.CompanyID = invitation.CompanyID
	user.Role = invitation.Role
	if invitation.Position != "" {
		user.Position = invitation.Position
	}
	if err := uc.users.Update(ctx, user); err != nil {
		return nil, domain.WrapError(domain.ErrCodeInternal, "erro ao aceitar convite", err)
	}

	if err := uc.invitations.UpdateStatus(ctx, invitation.ID, domain.InviteStatusAccepted); err != nil {
		return nil, domain.WrapError(domain.ErrCodeInternal, "erro ao aceitar convite", err)
	}
	invitation.Status = domain.InviteStatusAccepted
	return invitation, nil
}

// ListInvites returns the pending invitations for the user's company.
func (uc *UseCase) ListInvites(ctx context.Context, userID string) ([]domain.Invitation, error) {
	user, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	invitations, err := uc.invitations.ListByCompany(ctx, user.CompanyID)
	if err != nil {
		return nil, domain.WrapError(domain.ErrCodeInternal, "erro ao carregar convites", err)
	}
	pending := make([]domain.Invitation, 0, len(invitations))
	for _, inv := range invitations {
		if inv.Status == domain.InviteStatusPending {
			pending = append(pending, inv)
		}
	}
	return pending, nil
}

// ListTeam returns members and pending invitations for the user's company.
func (uc *UseCase) ListTeam(ctx context.Context, userID string) (*Team, error) {
	user, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	members, err := uc.users.ListByCompany(ctx, user.CompanyID)
	if err != nil {
		return nil, domain.WrapError(domain.ErrCodeInternal, "erro ao carregar equipe", err)
	}
	invitations, err := uc.invitations.ListByCompany(ctx, user.CompanyID)
	if err != nil {
		return nil, domain.WrapError(domain.ErrCodeInternal, "erro ao carregar convites", err)
	}

	pending := make([]domain.Invitation, 0, len(invitations))
	for _, inv := range invitations {
		if inv.Status == domain.InviteStatusPending {
			pending = append(pending, inv)
		}
	}
	return &Team{Members: members, Pending: pending}, nil
}

func newToken() (string, error) {
	buf := make([]byte, 24)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
