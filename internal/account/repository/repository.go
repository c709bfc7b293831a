package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/registrar-hq/registrar/internal/account/domain"
	"github.com/registrar-hq/registrar/internal/common/db"
)

var ErrAccountNotFound = errors.New("account not found")

type Repository interface {
	FindByUsername(ctx context.Context, username string) (domain.Account, error)
	EnsureSeed(ctx context.Context, username, passwordHash string) error
}

type PgRepository struct {
	pool *pgxpool.Pool
}

func NewPgRepository(pool *pgxpool.Pool) *PgRepository {
	return &PgRepository{pool: pool}
}

func (r *PgRepository) FindByUsername(ctx context.Context, username string) (domain.Account, error) {
	start := time.Now()

	row := r.pool.QueryRow(
		ctx,
		`SELECT id, username, password_hash, created_at FROM accounts WHERE username = $1`,
		username,
	)

	var account domain.Account
	err := row.Scan(&account.ID, &account.Username, &account.PasswordHash, &account.CreatedAt)
	if err := db.HandleQueryError(err, ErrAccountNotFound, "find account by username", start); err != nil {
		return domain.Account{}, err
	}

	return account, nil
}

// EnsureSeed inserts the operator account if it does not exist yet. The
// username unique constraint makes this safe to run on every startup.
func (r *PgRepository) EnsureSeed(ctx context.Context, username, passwordHash string) error {
	start := time.Now()

	_, err := r.pool.Exec(
		ctx,
		`INSERT INTO accounts (username, password_hash) VALUES ($1, $2)
		 ON CONFLICT (username) DO NOTHING`,
		username,
		passwordHash,
	)
	return db.HandleExecError(err, "seed admin account", start)
}
