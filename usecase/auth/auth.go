package auth

import (
	"context"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/rafaelrch/koplai/domain"
	"github.com/rafaelrch/koplai/repository"
)

// Credentials is the result of a successful sign-in or sign-up.
type Credentials struct {
	Token   string          `json:"token"`
	Session *domain.Session `json:"session"`
	User    *domain.User    `json:"user"`
}

type UseCase struct {
	users      repository.UserRepository
	sessions   repository.SessionRepository
	companies  repository.CompanyRepository
	jwtSecret  []byte
	jwtIssuer  string
	sessionTTL time.Duration
	logger     *zap.Logger
}

func New(users repository.UserRepository, sessions repository.SessionRepository, companies repository.CompanyRepository, jwtSecret, jwtIssuer string, sessionTTL time.Duration, logger *zap.Logger) *UseCase {
	if sessionTTL <= 0 {
		sessionTTL = 24 * time.Hour
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		users:      users,
		sessions:   sessions,
		companies:  companies,
		jwtSecret:  []byte(jwtSecret),
		jwtIssuer:  jwtIssuer,
		sessionTTL: sessionTTL,
		logger:     logger,
	}
}

// SignUp registers a new account and signs it in.
func (uc *UseCase) SignUp(ctx context.Context, email, password, name string) (*Credentials, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") || len(password) < 6 {
		return nil, domain.ErrInvalidPayload
	}

	if existing, err := uc.users.GetByEmail(ctx, email); err == nil && existing != nil {
		return nil, domain.ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, domain.WrapError(domain.ErrCodeInternal, "erro ao criar conta", err)
	}

	name = strings.TrimSpace(name)

	// Every account starts in its own tenant; accepting an invite later moves
	// the user into the inviting company.
	company, err := uc.companies.Create(ctx, &domain.Company{
		Name:  companyNameFor(name),
		Email: email,
	})
	if err != nil {
		return nil, domain.WrapError(domain.ErrCodeInternal, "erro ao criar conta", err)
	}

	user := &domain.User{
		Email:        email,
		Name:         name,
		Role:         domain.RoleAdmin,
		CompanyID:    company.ID,
		PasswordHash: string(hash),
	}
	created, err := uc.users.Create(ctx, user)
	if err != nil {
		return nil, domain.WrapError(domain.ErrCodeInternal, "erro ao criar conta", err)
	}

	return uc.issue(ctx, created)
}

func companyNameFor(userName string) string {
	if userName == "" {
		return "Minha equipe"
	}
	return "Equipe de " + userName
}

// SignIn verifies the password and issues a session + JWT.
func (uc *UseCase) SignIn(ctx context.Context, email, password string) (*Credentials, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := uc.users.GetByEmail(ctx, email)
	if err != nil {
		if domain.IsDomainError(err, domain.ErrCodeNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	return uc.issue(ctx, user)
}

// SignOut revokes the session.
func (uc *UseCase) SignOut(ctx context.Context, sessionID string) error {
	return uc.sessions.Delete(ctx, sessionID)
}

// CurrentUser resolves the authenticated user record.
func (uc *UseCase) CurrentUser(ctx context.Context, userID string) (*domain.User, error) {
	return uc.users.GetByID(ctx, userID)
}

// UpdateProfile updates display fields of the authenticated user.
func (uc *UseCase) UpdateProfile(ctx context.Context, user *domain.User) (*domain.User, error) {
	if user == nil || user.ID == "" {
		return nil, domain.ErrInvalidPayload
	}
	if err := uc.users.Update(ctx, user); err != nil {
		if domain.IsDomainError(err, domain.ErrCodeNotFound) {
			return nil, err
		}
		return nil, domain.WrapError(domain.ErrCodeInternal, "erro ao salvar perfil", err)
	}
	return user, nil
}

func (uc *UseCase) issue(ctx context.Context, user *domain.User) (*Credentials, error) {
	now := time.Now()
	session := &domain.Session{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		CreatedAt: now,
		ExpiresAt: now.Add(uc.sessionTTL),
	}
	if err := uc.sessions.Save(ctx, session); err != nil {
		return nil, domain.WrapError(domain.ErrCodeInternal, "erro ao iniciar sessão", err)
	}

	claims := jwt.MapClaims{
		"user_id":    user.ID,
		"session_id": session.ID,
		"iss":        uc.jwtIssuer,
		"exp":        session.ExpiresAt.Unix(),
		"iat":        now.Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(uc.jwtSecret)
	if err != nil {
		return nil, domain.WrapError(domain.ErrCodeInternal, "erro ao iniciar sessão", err)
	}

	return &Credentials{Token: token, Session: session, User: user}, nil
}
