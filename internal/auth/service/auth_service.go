package service

import (
	"context"
	"errors"

	accountrepo "github.com/registrar-hq/registrar/internal/account/repository"
	"github.com/registrar-hq/registrar/internal/auth/session"
	commoncrypto "github.com/registrar-hq/registrar/internal/common/crypto"
	"github.com/registrar-hq/registrar/internal/common/logger"
	"github.com/registrar-hq/registrar/internal/observability/metrics"
)

type AuthService struct {
	accounts accountrepo.Repository
	sessions session.Store
	hasher   commoncrypto.PasswordHasher
	log      *logger.Logger
}

func NewAuthService(
	accounts accountrepo.Repository,
	sessions session.Store,
	hasher commoncrypto.PasswordHasher,
	log *logger.Logger,
) *AuthService {
	return &AuthService{
		accounts: accounts,
		sessions: sessions,
		hasher:   hasher,
		log:      log,
	}
}

// Login verifies the credentials and establishes a new session. An
// unknown username and a wrong password are indistinguishable to the
// caller.
func (s *AuthService) Login(ctx context.Context, username, password string) (session.Session, error) {
	s.log.WithFields(ctx, logger.Fields{
		"username": username,
		"action":   "login_attempt",
	}).Info("login attempt")

	account, err := s.accounts.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, accountrepo.ErrAccountNotFound) {
			s.log.WithFields(ctx, logger.Fields{
				"username": username,
				"action":   "login_user_not_found",
			}).Warn("login failed: not found")
			metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
			return session.Session{}, ErrInvalidCredentials
		}
		s.log.WithFields(ctx, logger.Fields{
			"username": username,
			"action":   "login_fetch_failed",
		}).Errorf("login failed: %v", err)
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		return session.Session{}, err
	}

	if err := s.hasher.Compare(account.PasswordHash, password); err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"username": username,
			"action":   "login_invalid_password",
		}).Warn("login failed: invalid password")
		metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
		return session.Session{}, ErrInvalidCredentials
	}

	sess, err := s.sessions.Create(ctx, account.ID, account.Username)
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"username": username,
			"action":   "login_session_create_failed",
		}).Errorf("login failed: session create error: %v", err)
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		return session.Session{}, err
	}

	s.log.WithFields(ctx, logger.Fields{
		"username":   account.Username,
		"account_id": account.ID,
		"action":     "login_success",
	}).Info("login success")
	metrics.LoginsTotal.WithLabelValues("success").Inc()

	return sess, nil
}

// Logout invalidates the session unconditionally. Logging out an
// already-invalid token is not an error.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}

	if err := s.sessions.Delete(ctx, token); err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"action": "logout_failed",
		}).Errorf("logout failed: %v", err)
		return err
	}

	s.log.WithFields(ctx, logger.Fields{
		"action": "logout_success",
	}).Info("logout success")
	return nil
}

// Authenticate resolves a token into its live session.
func (s *AuthService) Authenticate(ctx context.Context, token string) (session.Session, error) {
	if token == "" {
		return session.Session{}, ErrUnauthenticated
	}

	sess, err := s.sessions.Get(ctx, token)
	if err != nil {
		if errors.Is(err, session.ErrSessionNotFound) {
			return session.Session{}, ErrUnauthenticated
		}
		return session.Session{}, err
	}

	return sess, nil
}
