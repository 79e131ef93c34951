package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/rafaelrch/koplai/domain"
)

type memUserRepo struct {
	users map[string]*domain.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: map[string]*domain.User{}}
}

func (r *memUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	if user, ok := r.users[id]; ok {
		copied := *user
		return &copied, nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *memUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	copied := *user
	r.users[user.ID] = &copied
	return user, nil
}

func (r *memUserRepo) Update(_ context.Context, user *domain.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return domain.ErrUserNotFound
	}
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *memUserRepo) ListByCompany(_ context.Context, companyID string) ([]domain.User, error) {
	var out []domain.User
	for _, user := range r.users {
		if user.CompanyID == companyID {
			out = append(out, *user)
		}
	}
	return out, nil
}

type memSessionRepo struct {
	sessions map[string]*domain.Session
}

func newMemSessionRepo() *memSessionRepo {
	return &memSessionRepo{sessions: map[string]*domain.Session{}}
}

func (r *memSessionRepo) Get(_ context.Context, id string) (*domain.Session, error) {
	if s, ok := r.sessions[id]; ok {
		return s, nil
	}
	return nil, domain.ErrSessionNotFound
}

func (r *memSessionRepo) Save(_ context.Context, session *domain.Session) error {
	r.sessions[session.ID] = session
	return nil
}

func (r *memSessionRepo) Delete(_ context.Context, id string) error {
	delete(r.sessions, id)
	return nil
}

func (r *memSessionRepo) Extend(_ context.Context, id string, _ int) error {
	if _, ok := r.sessions[id]; !ok {
		return domain.ErrSessionNotFound
	}
	return nil
}

type memCompanyRepo struct {
	companies map[string]*domain.Company
}

func newMemCompanyRepo() *memCompanyRepo {
	return &memCompanyRepo{companies: map[string]*domain.Company{}}
}

func (r *memCompanyRepo) GetByID(_ context.Context, id string) (*domain.Company, error) {
	if c, ok := r.companies[id]; ok {
		copied := *c
		return &copied, nil
	}
	return nil, domain.ErrCompanyNotFound
}

func (r *memCompanyRepo) Create(_ context.Context, company *domain.Company) (*domain.Company, error) {
	if company.ID == "" {
		company.ID = uuid.NewString()
	}
	copied := *company
	r.companies[company.ID] = &copied
	return company, nil
}

const testSecret = "test-secret"

func newTestUseCase() (*UseCase, *memUserRepo, *memSessionRepo, *memCompanyRepo) {
	users := newMemUserRepo()
	sessions := newMemSessionRepo()
	companies := newMemCompanyRepo()
	uc := New(users, sessions, companies, testSecret, "koplai", time.Hour, nil)
	return uc, users, sessions, companies
}

func TestSignUpIssuesCredentials(t *testing.T) {
	uc, users, sessions, _ := newTestUseCase()

	creds, err := uc.SignUp(context.Background(), "Maria@Example.com", "secret1", "Maria")
	if err != nil {
		t.Fatalf("SignUp: %v", err)
	}
	if creds.User.Email != "maria@example.com" {
		t.Errorf("email not normalized: %q", creds.User.Email)
	}
	if creds.User.Role != domain.RoleAdmin {
		t.Errorf("role = %q, want admin for a tenant founder", creds.User.Role)
	}
	if len(sessions.sessions) != 1 {
		t.Fatalf("expected one stored session, got %d", len(sessions.sessions))
	}

	stored := users.users[creds.User.ID]
	if stored.PasswordHash == "secret1" || stored.PasswordHash == "" {
		t.Error("password stored without hashing")
	}
	if bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("secret1")) != nil {
		t.Error("stored hash does not match password")
	}

	token, err := jwt.Parse(creds.Token, func(*jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	})
	if err != nil || !token.Valid {
		t.Fatalf("issued token does not verify: %v", err)
	}
	claims := token.Claims.(jwt.MapClaims)
	if claims["user_id"] != creds.User.ID {
		t.Errorf("user_id claim = %v, want %s", claims["user_id"], creds.User.ID)
	}
	if claims["session_id"] != creds.Session.ID {
		t.Errorf("session_id claim = %v, want %s", claims["session_id"], creds.Session.ID)
	}
}

func TestSignUpCreatesOwnTenant(t *testing.T) {
	uc, users, _, companies := newTestUseCase()

	creds, err := uc.SignUp(context.Background(), "maria@example.com", "secret1", "Maria")
	if err != nil {
		t.Fatalf("SignUp: %v", err)
	}
	if creds.User.CompanyID == "" {
		t.Fatal("new account has no company")
	}
	company, err := companies.GetByID(context.Background(), creds.User.CompanyID)
	if err != nil {
		t.Fatalf("company not persisted: %v", err)
	}
	if company.Name != "Equipe de Maria" {
		t.Errorf("company name = %q", company.Name)
	}
	members, _ := users.ListByCompany(context.Background(), company.ID)
	if len(members) != 1 || members[0].ID != creds.User.ID {
		t.Errorf("expected the founder as the only member, got %+v", members)
	}
}

func TestSignUpRejectsBadInput(t *testing.T) {
	uc, _, _, _ := newTestUseCase()
	ctx := context.Background()

	if _, err := uc.SignUp(ctx, "not-an-email", "secret1", ""); err == nil {
		t.Error("expected error for invalid email")
	}
	if _, err := uc.SignUp(ctx, "ok@example.com", "12345", ""); err == nil {
		t.Error("expected error for short password")
	}
}

func TestSignUpRejectsDuplicateEmail(t *testing.T) {
	uc, _, _, _ := newTestUseCase()
	ctx := context.Background()

	if _, err := uc.SignUp(ctx, "dup@example.com", "secret1", "A"); err != nil {
		t.Fatalf("first SignUp: %v", err)
	}
	_, err := uc.SignUp(ctx, "dup@example.com", "secret2", "B")
	if !domain.IsDomainError(err, domain.ErrCodeConflict) {
		t.Errorf("expected conflict error, got %v", err)
	}
}

func TestSignInVerifiesPassword(t *testing.T) {
	uc, _, _, _ := newTestUseCase()
	ctx := context.Background()

	if _, err := uc.SignUp(ctx, "joao@example.com", "secret1", "João"); err != nil {
		t.Fatalf("SignUp: %v", err)
	}

	if _, err := uc.SignIn(ctx, "JOAO@example.com", "secret1"); err != nil {
		t.Errorf("SignIn with correct password: %v", err)
	}
	if _, err := uc.SignIn(ctx, "joao@example.com", "wrong"); !domain.IsDomainError(err, domain.ErrCodeUnauthorized) {
		t.Errorf("wrong password: expected unauthorized, got %v", err)
	}
	if _, err := uc.SignIn(ctx, "ghost@example.com", "secret1"); !domain.IsDomainError(err, domain.ErrCodeUnauthorized) {
		t.Errorf("unknown email: expected unauthorized, got %v", err)
	}
}

func TestSignOutRevokesSession(t *testing.T) {
	uc, _, sessions, _ := newTestUseCase()
	ctx := context.Background()

	creds, err := uc.SignUp(ctx, "out@example.com", "secret1", "")
	if err != nil {
		t.Fatalf("SignUp: %v", err)
	}
	if err := uc.SignOut(ctx, creds.Session.ID); err != nil {
		t.Fatalf("SignOut: %v", err)
	}
	if _, ok := sessions.sessions[creds.Session.ID]; ok {
		t.Error("session still stored after sign out")
	}
}
