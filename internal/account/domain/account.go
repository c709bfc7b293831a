package domain

import "time"

// Account is an operator able to log in. Accounts are seeded at first
// startup and never mutated or deleted by any exposed operation.
type Account struct {
	ID           int64
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}
