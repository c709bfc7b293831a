package service

import (
	"context"

	accountdomain "github.com/registrar-hq/registrar/internal/account/domain"
	accountrepo "github.com/registrar-hq/registrar/internal/account/repository"
)

type mockAccountRepo struct {
	findByUsernameFunc func(ctx context.Context, username string) (accountdomain.Account, error)
	ensureSeedFunc     func(ctx context.Context, username, passwordHash string) error
}

func (m *mockAccountRepo) FindByUsername(ctx context.Context, username string) (accountdomain.Account, error) {
	if m.findByUsernameFunc != nil {
		return m.findByUsernameFunc(ctx, username)
	}
	return accountdomain.Account{}, accountrepo.ErrAccountNotFound
}

func (m *mockAccountRepo) EnsureSeed(ctx context.Context, username, passwordHash string) error {
	if m.ensureSeedFunc != nil {
		return m.ensureSeedFunc(ctx, username, passwordHash)
	}
	return nil
}

type mockHasher struct {
	hashFunc    func(password string) (string, error)
	compareFunc func(hash string, password string) error
}

func (m *mockHasher) Hash(password string) (string, error) {
	if m.hashFunc != nil {
		return m.hashFunc(password)
	}
	return "hashed_" + password, nil
}

func (m *mockHasher) Compare(hash string, password string) error {
	if m.compareFunc != nil {
		return m.compareFunc(hash, password)
	}
	return nil
}
