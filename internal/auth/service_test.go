package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/zuriwear/zuri-backend/internal/users"
	pkgAuth "github.com/zuriwear/zuri-backend/pkg/auth"
	"github.com/zuriwear/zuri-backend/pkg/auth/session"
	"github.com/zuriwear/zuri-backend/pkg/config"
	"github.com/zuriwear/zuri-backend/pkg/db/models"
	"github.com/zuriwear/zuri-backend/pkg/enums"
	pkgerrors "github.com/zuriwear/zuri-backend/pkg/errors"
	"github.com/zuriwear/zuri-backend/pkg/security"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "test-secret",
		Issuer:            "zuriwear",
		ExpirationMinutes: 30,
	}
}

func buildAuthService(t *testing.T, repo *stubUserRepo) (Service, *stubSessionManager) {
	t.Helper()
	sessions := &stubSessionManager{refreshToken: "refresh-token"}
	svc, err := NewService(ServiceParams{
		UserRepo:       repo,
		SessionManager: sessions,
		JWTConfig:      testJWTConfig(),
	})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc, sessions
}

func mustHashPassword(t *testing.T, password string) string {
	t.Helper()
	hash, err := security.HashPassword(password, config.PasswordConfig{})
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	return hash
}

func activeUser(t *testing.T, password string) *models.User {
	t.Helper()
	return &models.User{
		ID:           uuid.New(),
		Email:        "wanjiku@example.com",
		PasswordHash: mustHashPassword(t, password),
		FullName:     "Wanjiku Kamau",
		Role:         enums.UserRoleCustomer,
		IsActive:     true,
	}
}

func TestLoginIssuesTokenPair(t *testing.T) {
	t.Parallel()

	password := "correct horse"
	user := activeUser(t, password)
	repo := &stubUserRepo{user: user}
	svc, _ := buildAuthService(t, repo)

	resp, err := svc.Login(context.Background(), LoginRequest{Email: user.Email, Password: password})
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	claims, err := pkgAuth.ParseAccessToken(testJWTConfig(), resp.AccessToken)
	if err != nil {
		t.Fatalf("parse access token: %v", err)
	}
	if claims.UserID != user.ID {
		t.Fatalf("expected user id in claims, got %s", claims.UserID)
	}
	if claims.Role != enums.UserRoleCustomer {
		t.Fatalf("expected customer role claim, got %s", claims.Role)
	}
	if resp.RefreshToken == "" {
		t.Fatalf("expected refresh token to be set")
	}
	if !repo.lastLoginTouched {
		t.Fatalf("expected last login to be recorded")
	}
}

func TestLoginFailuresShareOneMessage(t *testing.T) {
	t.Parallel()

	password := "correct horse"
	user := activeUser(t, password)

	cases := []struct {
		name     string
		repo     *stubUserRepo
		email    string
		password string
	}{
		{"unknown email", &stubUserRepo{findErr: gorm.ErrRecordNotFound}, "nobody@example.com", password},
		{"wrong password", &stubUserRepo{user: user}, user.Email, "wrong"},
		{"blank email", &stubUserRepo{user: user}, "   ", password},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc, _ := buildAuthService(t, tc.repo)
			_, err := svc.Login(context.Background(), LoginRequest{Email: tc.email, Password: tc.password})
			typed := pkgerrors.As(err)
			if typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
				t.Fatalf("expected unauthorized, got %v", err)
			}
			if typed.Message() != "invalid credentials" {
				t.Fatalf("expected uniform message, got %q", typed.Message())
			}
		})
	}
}

func TestLoginRejectsInactiveAccount(t *testing.T) {
	t.Parallel()

	password := "correct horse"
	user := activeUser(t, password)
	user.IsActive = false
	svc, _ := buildAuthService(t, &stubUserRepo{user: user})

	_, err := svc.Login(context.Background(), LoginRequest{Email: user.Email, Password: password})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized for inactive account, got %v", err)
	}
}

func TestRegisterNormalizesEmailAndLogsIn(t *testing.T) {
	t.Parallel()

	repo := &stubUserRepo{}
	svc, _ := buildAuthService(t, repo)

	resp, err := svc.Register(context.Background(), RegisterRequest{
		Email:    "  Wanjiku@Example.COM ",
		Password: "long enough",
		FullName: " Wanjiku Kamau ",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	if repo.created.Email != "wanjiku@example.com" {
		t.Fatalf("expected normalized email, got %q", repo.created.Email)
	}
	if repo.created.FullName != "Wanjiku Kamau" {
		t.Fatalf("expected trimmed full name, got %q", repo.created.FullName)
	}
	if repo.created.Role != enums.UserRoleCustomer {
		t.Fatalf("expected customer role, got %s", repo.created.Role)
	}
	if resp.AccessToken == "" || resp.RefreshToken == "" {
		t.Fatalf("expected register to log the account in")
	}
}

func TestRefreshRotatesSession(t *testing.T) {
	t.Parallel()

	user := activeUser(t, "pw")
	sessions := &stubSessionManager{refreshToken: "refresh-token"}
	svc, err := NewService(ServiceParams{
		UserRepo:       &stubUserRepo{user: user},
		SessionManager: sessions,
		JWTConfig:      testJWTConfig(),
	})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	accessToken, err := pkgAuth.MintAccessToken(testJWTConfig(), time.Now().UTC(), pkgAuth.AccessTokenPayload{
		UserID: user.ID,
		Role:   user.Role,
		JTI:    "old-access-id",
	})
	if err != nil {
		t.Fatalf("mint: %v", err)
	}

	resp, err := svc.Refresh(context.Background(), RefreshRequest{
		AccessToken:  accessToken,
		RefreshToken: "refresh-token",
	})
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if sessions.rotatedFrom != "old-access-id" {
		t.Fatalf("expected rotation from old access id, got %q", sessions.rotatedFrom)
	}
	if resp.RefreshToken != "rotated-refresh" {
		t.Fatalf("expected rotated refresh token, got %q", resp.RefreshToken)
	}

	claims, err := pkgAuth.ParseAccessToken(testJWTConfig(), resp.AccessToken)
	if err != nil {
		t.Fatalf("parse rotated token: %v", err)
	}
	if claims.ID != "new-access-id" {
		t.Fatalf("expected new jti, got %q", claims.ID)
	}
	if claims.UserID != user.ID {
		t.Fatalf("expected same user id after refresh")
	}
}

func TestRefreshRejectsBadRefreshToken(t *testing.T) {
	t.Parallel()

	user := activeUser(t, "pw")
	sessions := &stubSessionManager{rotateErr: true}
	svc, err := NewService(ServiceParams{
		UserRepo:       &stubUserRepo{user: user},
		SessionManager: sessions,
		JWTConfig:      testJWTConfig(),
	})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	accessToken, err := pkgAuth.MintAccessToken(testJWTConfig(), time.Now().UTC(), pkgAuth.AccessTokenPayload{
		UserID: user.ID,
		Role:   user.Role,
		JTI:    "old-access-id",
	})
	if err != nil {
		t.Fatalf("mint: %v", err)
	}

	_, err = svc.Refresh(context.Background(), RefreshRequest{
		AccessToken:  accessToken,
		RefreshToken: "stolen",
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized for bad refresh token, got %v", err)
	}
}

func TestLogoutRevokesSession(t *testing.T) {
	t.Parallel()

	svc, sessions := buildAuthService(t, &stubUserRepo{})

	if err := svc.Logout(context.Background(), "access-id"); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if sessions.revoked != "access-id" {
		t.Fatalf("expected session revoked, got %q", sessions.revoked)
	}

	if err := svc.Logout(context.Background(), "  "); pkgerrors.As(err) == nil {
		t.Fatalf("expected validation error for blank access id")
	}
}

func TestUpdateProfileRejectsBlankName(t *testing.T) {
	t.Parallel()

	user := activeUser(t, "pw")
	svc, _ := buildAuthService(t, &stubUserRepo{user: user})

	blank := "   "
	_, err := svc.UpdateProfile(context.Background(), user.ID, UpdateProfileRequest{FullName: &blank})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for blank name, got %v", err)
	}
}

func TestCheckEmailExists(t *testing.T) {
	t.Parallel()

	svc, _ := buildAuthService(t, &stubUserRepo{exists: true})

	exists, err := svc.CheckEmailExists(context.Background(), "wanjiku@example.com")
	if err != nil {
		t.Fatalf("check email: %v", err)
	}
	if !exists {
		t.Fatalf("expected email to exist")
	}

	if _, err := svc.CheckEmailExists(context.Background(), "  "); pkgerrors.As(err) == nil {
		t.Fatalf("expected validation error for blank email")
	}
}

type stubUserRepo struct {
	user             *models.User
	created          *models.User
	findErr          error
	exists           bool
	lastLoginTouched bool
}

func (s *stubUserRepo) Create(ctx context.Context, user *models.User) (*models.User, error) {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	s.created = user
	return user, nil
}

func (s *stubUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	if s.findErr != nil {
		return nil, s.findErr
	}
	if s.user == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return s.user, nil
}

func (s *stubUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	if s.findErr != nil {
		return nil, s.findErr
	}
	if s.user == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return s.user, nil
}

func (s *stubUserRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	return s.exists, nil
}

func (s *stubUserRepo) UpdateProfile(ctx context.Context, id uuid.UUID, update users.ProfileUpdate) error {
	return nil
}

func (s *stubUserRepo) TouchLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	s.lastLoginTouched = true
	return nil
}

type stubSessionManager struct {
	refreshToken string
	rotatedFrom  string
	revoked      string
	rotateErr    bool
}

func (s *stubSessionManager) Generate(ctx context.Context, accessID string) (string, error) {
	return s.refreshToken, nil
}

func (s *stubSessionManager) Rotate(ctx context.Context, oldAccessID, provided string) (string, string, error) {
	if s.rotateErr {
		return "", "", session.ErrInvalidRefreshToken
	}
	s.rotatedFrom = oldAccessID
	return "new-access-id", "rotated-refresh", nil
}

func (s *stubSessionManager) Revoke(ctx context.Context, accessID string) error {
	s.revoked = accessID
	return nil
}
