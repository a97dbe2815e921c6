package auth

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	pkgauth "github.com/printcraftlabs/printcraft-backend/pkg/auth"
	"github.com/printcraftlabs/printcraft-backend/pkg/auth/session"
	"github.com/printcraftlabs/printcraft-backend/pkg/config"
	"github.com/printcraftlabs/printcraft-backend/pkg/db/models"
	"github.com/printcraftlabs/printcraft-backend/pkg/enums"
	pkgerrors "github.com/printcraftlabs/printcraft-backend/pkg/errors"
	"github.com/printcraftlabs/printcraft-backend/pkg/security"
)

type stubUserRepo struct {
	byEmail      map[string]*models.User
	byID         map[uuid.UUID]*models.User
	created      *models.User
	createErr    error
	lastLoginFor uuid.UUID
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{
		byEmail: map[string]*models.User{},
		byID:    map[uuid.UUID]*models.User{},
	}
}

func (s *stubUserRepo) add(user *models.User) {
	s.byEmail[user.Email] = user
	s.byID[user.ID] = user
}

func (s *stubUserRepo) Create(_ context.Context, user *models.User) (*models.User, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	user.ID = uuid.New()
	s.created = user
	s.add(user)
	return user, nil
}

func (s *stubUserRepo) FindByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	user, ok := s.byID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (s *stubUserRepo) FindByEmail(_ context.Context, email string) (*models.User, error) {
	user, ok := s.byEmail[strings.ToLower(strings.TrimSpace(email))]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (s *stubUserRepo) UpdateLastLogin(_ context.Context, id uuid.UUID, _ time.Time) error {
	s.lastLoginFor = id
	return nil
}

type stubSessionManager struct {
	generatedFor string
	rotateErr    error
	revokedID    string
}

func (s *stubSessionManager) Generate(_ context.Context, accessID string) (string, error) {
	s.generatedFor = accessID
	return "refresh-" + accessID, nil
}

func (s *stubSessionManager) Rotate(_ context.Context, oldAccessID, _ string) (string, string, error) {
	if s.rotateErr != nil {
		return "", "", s.rotateErr
	}
	newID := "rotated-" + oldAccessID
	return newID, "refresh-" + newID, nil
}

func (s *stubSessionManager) Revoke(_ context.Context, accessID string) error {
	s.revokedID = accessID
	return nil
}

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "test-secret",
		Issuer:            "printcraft-test",
		ExpirationMinutes: 15,
	}
}

func testPasswordConfig() config.PasswordConfig {
	return config.PasswordConfig{
		ArgonMemoryKB:    8192,
		ArgonTime:        1,
		ArgonParallelism: 1,
		ArgonSaltLen:     16,
		ArgonKeyLen:      32,
	}
}

func buildService(t *testing.T, repo *stubUserRepo, mgr *stubSessionManager) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{
		UserRepo:       repo,
		SessionManager: mgr,
		JWTConfig:      testJWTConfig(),
		PasswordConfig: testPasswordConfig(),
	})
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc
}

func seedUser(t *testing.T, repo *stubUserRepo, email, password string) *models.User {
	t.Helper()
	hash, err := security.HashPassword(password, testPasswordConfig())
	if err != nil {
		t.Fatalf("hashing password: %v", err)
	}
	user := &models.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: hash,
		Name:         "Robin",
		Role:         enums.UserRoleCustomer,
		IsActive:     true,
	}
	repo.add(user)
	return user
}

func assertCode(t *testing.T, err error, want pkgerrors.Code) {
	t.Helper()
	if err == nil {
		t.Fatal("expected an error")
	}
	typed := pkgerrors.As(err)
	if typed == nil {
		t.Fatalf("expected app error, got %v", err)
	}
	if typed.Code() != want {
		t.Fatalf("expected code %s, got %s", want, typed.Code())
	}
}

func TestRegisterCreatesCustomerAndIssuesTokens(t *testing.T) {
	t.Parallel()

	repo := newStubUserRepo()
	mgr := &stubSessionManager{}
	svc := buildService(t, repo, mgr)

	resp, err := svc.Register(context.Background(), RegisterRequest{
		Name:     "  Robin Vale ",
		Email:    "Robin@Example.COM",
		Password: "hunter2hunter2",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	if repo.created == nil {
		t.Fatal("expected user to be persisted")
	}
	if repo.created.Email != "robin@example.com" {
		t.Fatalf("expected lowercased email, got %q", repo.created.Email)
	}
	if repo.created.Role != enums.UserRoleCustomer {
		t.Fatalf("expected customer role, got %q", repo.created.Role)
	}
	if repo.created.Name != "Robin Vale" {
		t.Fatalf("expected trimmed name, got %q", repo.created.Name)
	}
	if resp.Tokens.AccessToken == "" || resp.Tokens.RefreshToken == "" {
		t.Fatal("expected a full token pair")
	}
	if mgr.generatedFor == "" {
		t.Fatal("expected a session to be stored")
	}

	claims, err := pkgauth.ParseAccessToken(testJWTConfig(), resp.Tokens.AccessToken)
	if err != nil {
		t.Fatalf("parsing issued token: %v", err)
	}
	if claims.ID != mgr.generatedFor {
		t.Fatalf("token jti %q does not match stored session %q", claims.ID, mgr.generatedFor)
	}
	if claims.UserID != repo.created.ID {
		t.Fatal("token subject does not match created user")
	}
}

func TestRegisterRejectsShortPassword(t *testing.T) {
	t.Parallel()

	svc := buildService(t, newStubUserRepo(), &stubSessionManager{})

	_, err := svc.Register(context.Background(), RegisterRequest{
		Name:     "Robin",
		Email:    "robin@example.com",
		Password: "short",
	})
	assertCode(t, err, pkgerrors.CodeValidation)
}

func TestRegisterDuplicateEmailConflicts(t *testing.T) {
	t.Parallel()

	repo := newStubUserRepo()
	repo.createErr = &duplicateErr{}
	svc := buildService(t, repo, &stubSessionManager{})

	_, err := svc.Register(context.Background(), RegisterRequest{
		Name:     "Robin",
		Email:    "robin@example.com",
		Password: "hunter2hunter2",
	})
	assertCode(t, err, pkgerrors.CodeConflict)
}

type duplicateErr struct{}

func (duplicateErr) Error() string {
	return `duplicate key value violates unique constraint "uq_users_email"`
}

func TestLoginSucceedsAndRecordsLogin(t *testing.T) {
	t.Parallel()

	repo := newStubUserRepo()
	user := seedUser(t, repo, "robin@example.com", "hunter2hunter2")
	mgr := &stubSessionManager{}
	svc := buildService(t, repo, mgr)

	resp, err := svc.Login(context.Background(), LoginRequest{
		Email:    "robin@example.com",
		Password: "hunter2hunter2",
	})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if repo.lastLoginFor != user.ID {
		t.Fatal("expected last login to be recorded")
	}
	if resp.User.ID != user.ID {
		t.Fatal("response user does not match account")
	}
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	t.Parallel()

	repo := newStubUserRepo()
	seedUser(t, repo, "robin@example.com", "hunter2hunter2")
	inactive := seedUser(t, repo, "gone@example.com", "hunter2hunter2")
	inactive.IsActive = false

	svc := buildService(t, repo, &stubSessionManager{})

	cases := []struct {
		name     string
		email    string
		password string
	}{
		{name: "unknownEmail", email: "nobody@example.com", password: "hunter2hunter2"},
		{name: "wrongPassword", email: "robin@example.com", password: "not-the-password"},
		{name: "deactivatedAccount", email: "gone@example.com", password: "hunter2hunter2"},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := svc.Login(context.Background(), LoginRequest{Email: tc.email, Password: tc.password})
			assertCode(t, err, pkgerrors.CodeUnauthorized)
			if got := err.Error(); !strings.Contains(got, invalidCredentialsMessage) {
				t.Fatalf("expected generic credentials message, got %q", got)
			}
		})
	}
}

func TestRefreshRotatesSession(t *testing.T) {
	t.Parallel()

	repo := newStubUserRepo()
	user := seedUser(t, repo, "robin@example.com", "hunter2hunter2")
	mgr := &stubSessionManager{}
	svc := buildService(t, repo, mgr)

	access, err := pkgauth.MintAccessToken(testJWTConfig(), time.Now(), pkgauth.AccessTokenPayload{
		UserID: user.ID,
		Role:   user.Role,
		JTI:    "old-access-id",
	})
	if err != nil {
		t.Fatalf("minting token: %v", err)
	}

	pair, err := svc.Refresh(context.Background(), RefreshRequest{
		AccessToken:  access,
		RefreshToken: "refresh-old-access-id",
	})
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}

	claims, err := pkgauth.ParseAccessToken(testJWTConfig(), pair.AccessToken)
	if err != nil {
		t.Fatalf("parsing refreshed token: %v", err)
	}
	if claims.ID != "rotated-old-access-id" {
		t.Fatalf("expected rotated jti, got %q", claims.ID)
	}
	if pair.RefreshToken != "refresh-rotated-old-access-id" {
		t.Fatalf("unexpected refresh token %q", pair.RefreshToken)
	}
}

func TestRefreshRejectsInvalidRefreshToken(t *testing.T) {
	t.Parallel()

	repo := newStubUserRepo()
	user := seedUser(t, repo, "robin@example.com", "hunter2hunter2")
	mgr := &stubSessionManager{rotateErr: session.ErrInvalidRefreshToken}
	svc := buildService(t, repo, mgr)

	access, err := pkgauth.MintAccessToken(testJWTConfig(), time.Now(), pkgauth.AccessTokenPayload{
		UserID: user.ID,
		Role:   user.Role,
		JTI:    "old-access-id",
	})
	if err != nil {
		t.Fatalf("minting token: %v", err)
	}

	_, err = svc.Refresh(context.Background(), RefreshRequest{
		AccessToken:  access,
		RefreshToken: "stolen",
	})
	assertCode(t, err, pkgerrors.CodeUnauthorized)
}

func TestRefreshRejectsDeactivatedAccount(t *testing.T) {
	t.Parallel()

	repo := newStubUserRepo()
	user := seedUser(t, repo, "robin@example.com", "hunter2hunter2")
	user.IsActive = false
	svc := buildService(t, repo, &stubSessionManager{})

	access, err := pkgauth.MintAccessToken(testJWTConfig(), time.Now(), pkgauth.AccessTokenPayload{
		UserID: user.ID,
		Role:   user.Role,
		JTI:    "old-access-id",
	})
	if err != nil {
		t.Fatalf("minting token: %v", err)
	}

	_, err = svc.Refresh(context.Background(), RefreshRequest{
		AccessToken:  access,
		RefreshToken: "refresh-old-access-id",
	})
	assertCode(t, err, pkgerrors.CodeUnauthorized)
}

func TestLogoutRevokesSession(t *testing.T) {
	t.Parallel()

	mgr := &stubSessionManager{}
	svc := buildService(t, newStubUserRepo(), mgr)

	if err := svc.Logout(context.Background(), "access-123"); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if mgr.revokedID != "access-123" {
		t.Fatalf("expected session access-123 revoked, got %q", mgr.revokedID)
	}
}
