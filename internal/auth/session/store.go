package session

import (
	"context"
	"errors"
	"time"
)

var ErrSessionNotFound = errors.New("session not found")

// Session is server-side proof of a successful login, referenced by an
// opaque token carried in a cookie.
type Session struct {
	Token     string
	AccountID int64
	Username  string
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Store owns all session state. No other component mutates sessions
// directly.
type Store interface {
	Create(ctx context.Context, accountID int64, username string) (Session, error)
	Get(ctx context.Context, token string) (Session, error)
	Delete(ctx context.Context, token string) error
}
