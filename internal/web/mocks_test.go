package web

import (
	"context"
	"errors"
	"io"
	"net/http"

	accountdomain "github.com/registrar-hq/registrar/internal/account/domain"
	accountrepo "github.com/registrar-hq/registrar/internal/account/repository"
	authservice "github.com/registrar-hq/registrar/internal/auth/service"
	"github.com/registrar-hq/registrar/internal/auth/session"
	studentdomain "github.com/registrar-hq/registrar/internal/student/domain"
	studentservice "github.com/registrar-hq/registrar/internal/student/service"
)

type mockAccountRepo struct {
	findByUsernameFunc func(ctx context.Context, username string) (accountdomain.Account, error)
}

func (m *mockAccountRepo) FindByUsername(ctx context.Context, username string) (accountdomain.Account, error) {
	if m.findByUsernameFunc != nil {
		return m.findByUsernameFunc(ctx, username)
	}
	return accountdomain.Account{}, accountrepo.ErrAccountNotFound
}

func (m *mockAccountRepo) EnsureSeed(ctx context.Context, username, passwordHash string) error {
	return nil
}

type mockHasher struct {
	compareFunc func(hash string, password string) error
}

func (m *mockHasher) Hash(password string) (string, error) {
	return "hashed_" + password, nil
}

func (m *mockHasher) Compare(hash string, password string) error {
	if m.compareFunc != nil {
		return m.compareFunc(hash, password)
	}
	return nil
}

type mockRecordService struct {
	addFunc       func(ctx context.Context, input studentservice.AddStudentInput) (studentdomain.StudentRecord, error)
	listFunc      func(ctx context.Context) ([]studentservice.StudentJSON, error)
	deleteFunc    func(ctx context.Context, id int64) error
	statsFunc     func(ctx context.Context) (studentservice.StatsJSON, error)
	exportCSVFunc func(ctx context.Context, w io.Writer) error
}

func (m *mockRecordService) Add(ctx context.Context, input studentservice.AddStudentInput) (studentdomain.StudentRecord, error) {
	if m.addFunc != nil {
		return m.addFunc(ctx, input)
	}
	return studentdomain.StudentRecord{}, nil
}

func (m *mockRecordService) List(ctx context.Context) ([]studentservice.StudentJSON, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx)
	}
	return []studentservice.StudentJSON{}, nil
}

func (m *mockRecordService) Delete(ctx context.Context, id int64) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

func (m *mockRecordService) Stats(ctx context.Context) (studentservice.StatsJSON, error) {
	if m.statsFunc != nil {
		return m.statsFunc(ctx)
	}
	return studentservice.StatsJSON{Labels: []string{}, Values: []int{}}, nil
}

func (m *mockRecordService) ExportCSV(ctx context.Context, w io.Writer) error {
	if m.exportCSVFunc != nil {
		return m.exportCSVFunc(ctx, w)
	}
	_, err := io.WriteString(w, "ID,Name,Email,Course,Date\n")
	return err
}

type mockAuthService struct {
	loginFunc        func(ctx context.Context, username, password string) (session.Session, error)
	logoutFunc       func(ctx context.Context, token string) error
	authenticateFunc func(ctx context.Context, token string) (session.Session, error)
}

func (m *mockAuthService) Login(ctx context.Context, username, password string) (session.Session, error) {
	if m.loginFunc != nil {
		return m.loginFunc(ctx, username, password)
	}
	return session.Session{}, authservice.ErrInvalidCredentials
}

func (m *mockAuthService) Logout(ctx context.Context, token string) error {
	if m.logoutFunc != nil {
		return m.logoutFunc(ctx, token)
	}
	return nil
}

func (m *mockAuthService) Authenticate(ctx context.Context, token string) (session.Session, error) {
	if m.authenticateFunc != nil {
		return m.authenticateFunc(ctx, token)
	}
	return session.Session{}, authservice.ErrUnauthenticated
}

// failingCookieCodec rejects every encode attempt.
type failingCookieCodec struct{}

func (f *failingCookieCodec) Set(w http.ResponseWriter, r *http.Request, token string) error {
	return errors.New("encode failed")
}

func (f *failingCookieCodec) Get(r *http.Request) (string, error) {
	return "", session.ErrNoSessionCookie
}

func (f *failingCookieCodec) Clear(w http.ResponseWriter, r *http.Request) {}
