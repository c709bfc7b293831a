package service

import (
	"context"
	"errors"
	"testing"
	"time"

	accountdomain "github.com/registrar-hq/registrar/internal/account/domain"
	accountrepo "github.com/registrar-hq/registrar/internal/account/repository"
	"github.com/registrar-hq/registrar/internal/auth/session"
	"github.com/registrar-hq/registrar/internal/common/clock"
	"github.com/registrar-hq/registrar/internal/common/logger"
)

func setupAuthService(t *testing.T) (*AuthService, *mockAccountRepo, *mockHasher, *clock.MockClock) {
	t.Helper()

	accounts := &mockAccountRepo{}
	hasher := &mockHasher{}
	clk := clock.NewMockClock(time.Date(2024, 1, 7, 12, 0, 0, 0, time.UTC))
	store := session.NewMemoryStore(time.Hour, clk, logger.NewDiscard())

	svc := NewAuthService(accounts, store, hasher, logger.NewDiscard())
	return svc, accounts, hasher, clk
}

func TestAuthService_Login_Success(t *testing.T) {
	svc, accounts, hasher, _ := setupAuthService(t)

	accounts.findByUsernameFunc = func(ctx context.Context, username string) (accountdomain.Account, error) {
		if username != "admin" {
			t.Errorf("expected username admin, got %s", username)
		}
		return accountdomain.Account{ID: 1, Username: "admin", PasswordHash: "hashed"}, nil
	}

	hasher.compareFunc = func(hash string, password string) error {
		if hash != "hashed" || password != "password123" {
			return errors.New("password mismatch")
		}
		return nil
	}

	sess, err := svc.Login(context.Background(), "admin", "password123")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if sess.Token == "" {
		t.Error("expected session token to be set")
	}

	if sess.AccountID != 1 || sess.Username != "admin" {
		t.Errorf("unexpected session: %+v", sess)
	}
}

func TestAuthService_Login_UserNotFound(t *testing.T) {
	svc, accounts, _, _ := setupAuthService(t)

	accounts.findByUsernameFunc = func(ctx context.Context, username string) (accountdomain.Account, error) {
		return accountdomain.Account{}, accountrepo.ErrAccountNotFound
	}

	_, err := svc.Login(context.Background(), "ghost", "password123")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_InvalidPassword(t *testing.T) {
	svc, accounts, hasher, _ := setupAuthService(t)

	accounts.findByUsernameFunc = func(ctx context.Context, username string) (accountdomain.Account, error) {
		return accountdomain.Account{ID: 1, Username: "admin", PasswordHash: "hashed"}, nil
	}

	hasher.compareFunc = func(hash string, password string) error {
		return errors.New("password mismatch")
	}

	_, err := svc.Login(context.Background(), "admin", "wrong")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_RepoError(t *testing.T) {
	svc, accounts, _, _ := setupAuthService(t)

	repoErr := errors.New("connection lost")
	accounts.findByUsernameFunc = func(ctx context.Context, username string) (accountdomain.Account, error) {
		return accountdomain.Account{}, repoErr
	}

	_, err := svc.Login(context.Background(), "admin", "password123")
	if !errors.Is(err, repoErr) {
		t.Errorf("expected repo error to surface, got %v", err)
	}

	if errors.Is(err, ErrInvalidCredentials) {
		t.Error("storage failure must not be reported as invalid credentials")
	}
}

func TestAuthService_Authenticate_AfterLogin(t *testing.T) {
	svc, accounts, _, _ := setupAuthService(t)

	accounts.findByUsernameFunc = func(ctx context.Context, username string) (accountdomain.Account, error) {
		return accountdomain.Account{ID: 1, Username: "admin", PasswordHash: "hashed"}, nil
	}

	sess, err := svc.Login(context.Background(), "admin", "password123")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	got, err := svc.Authenticate(context.Background(), sess.Token)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if got.AccountID != 1 {
		t.Errorf("expected account id 1, got %d", got.AccountID)
	}
}

func TestAuthService_Authenticate_EmptyToken(t *testing.T) {
	svc, _, _, _ := setupAuthService(t)

	_, err := svc.Authenticate(context.Background(), "")
	if !errors.Is(err, ErrUnauthenticated) {
		t.Errorf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestAuthService_Authenticate_ExpiredSession(t *testing.T) {
	svc, accounts, _, clk := setupAuthService(t)

	accounts.findByUsernameFunc = func(ctx context.Context, username string) (accountdomain.Account, error) {
		return accountdomain.Account{ID: 1, Username: "admin", PasswordHash: "hashed"}, nil
	}

	sess, err := svc.Login(context.Background(), "admin", "password123")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	clk.Advance(2 * time.Hour)

	_, err = svc.Authenticate(context.Background(), sess.Token)
	if !errors.Is(err, ErrUnauthenticated) {
		t.Errorf("expected ErrUnauthenticated for expired session, got %v", err)
	}
}

func TestAuthService_Logout_InvalidatesSession(t *testing.T) {
	svc, accounts, _, _ := setupAuthService(t)

	accounts.findByUsernameFunc = func(ctx context.Context, username string) (accountdomain.Account, error) {
		return accountdomain.Account{ID: 1, Username: "admin", PasswordHash: "hashed"}, nil
	}

	sess, err := svc.Login(context.Background(), "admin", "password123")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if err := svc.Logout(context.Background(), sess.Token); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	_, err = svc.Authenticate(context.Background(), sess.Token)
	if !errors.Is(err, ErrUnauthenticated) {
		t.Errorf("expected ErrUnauthenticated after logout, got %v", err)
	}
}

func TestAuthService_Logout_Idempotent(t *testing.T) {
	svc, _, _, _ := setupAuthService(t)

	if err := svc.Logout(context.Background(), "never-issued"); err != nil {
		t.Errorf("expected logout of unknown token to succeed, got %v", err)
	}

	if err := svc.Logout(context.Background(), ""); err != nil {
		t.Errorf("expected logout of empty token to succeed, got %v", err)
	}
}
