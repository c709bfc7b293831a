package session

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"sync"
	"time"

	"github.com/registrar-hq/registrar/internal/common/clock"
	"github.com/registrar-hq/registrar/internal/common/constants"
	"github.com/registrar-hq/registrar/internal/common/logger"
	"github.com/registrar-hq/registrar/internal/observability/metrics"
)

// MemoryStore keeps sessions in process memory behind an RWMutex.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]Session
	ttl      time.Duration
	clock    clock.Clock
	log      *logger.Logger
}

func NewMemoryStore(ttl time.Duration, clk clock.Clock, log *logger.Logger) *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]Session),
		ttl:      ttl,
		clock:    clk,
		log:      log,
	}
}

func (s *MemoryStore) Create(ctx context.Context, accountID int64, username string) (Session, error) {
	token, err := generateToken()
	if err != nil {
		return Session{}, err
	}

	now := s.clock.Now()
	session := Session{
		Token:     token,
		AccountID: accountID,
		Username:  username,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}

	s.mu.Lock()
	s.sessions[token] = session
	metrics.ActiveSessions.Set(float64(len(s.sessions)))
	s.mu.Unlock()

	return session, nil
}

func (s *MemoryStore) Get(ctx context.Context, token string) (Session, error) {
	s.mu.RLock()
	session, ok := s.sessions[token]
	s.mu.RUnlock()

	if !ok {
		return Session{}, ErrSessionNotFound
	}

	if s.clock.Now().After(session.ExpiresAt) {
		_ = s.Delete(ctx, token)
		metrics.SessionsExpired.Inc()
		return Session{}, ErrSessionNotFound
	}

	return session, nil
}

// Delete is idempotent: removing an unknown token is not an error.
func (s *MemoryStore) Delete(ctx context.Context, token string) error {
	s.mu.Lock()
	delete(s.sessions, token)
	metrics.ActiveSessions.Set(float64(len(s.sessions)))
	s.mu.Unlock()
	return nil
}

// StartCleanup sweeps expired sessions until ctx is cancelled.
func (s *MemoryStore) StartCleanup(ctx context.Context) {
	ticker := time.NewTicker(constants.SessionCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed := s.sweep()
			if removed > 0 {
				s.log.Infof("session cleanup removed %d expired sessions", removed)
			}
		}
	}
}

func (s *MemoryStore) sweep() int {
	now := s.clock.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for token, session := range s.sessions {
		if now.After(session.ExpiresAt) {
			delete(s.sessions, token)
			removed++
		}
	}

	if removed > 0 {
		metrics.SessionsExpired.Add(float64(removed))
		metrics.ActiveSessions.Set(float64(len(s.sessions)))
	}

	return removed
}

func generateToken() (string, error) {
	b := make([]byte, constants.SessionTokenSize)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
