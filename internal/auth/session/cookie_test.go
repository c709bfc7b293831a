package session

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestCookieCodec_RoundTrip(t *testing.T) {
	codec := NewCookieCodec(testSecret, time.Hour)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/login", nil)

	if err := codec.Set(rec, req, "token-123"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("expected one cookie, got %d", len(cookies))
	}

	if !cookies[0].HttpOnly {
		t.Error("expected HttpOnly cookie")
	}

	next := httptest.NewRequest(http.MethodGet, "/", nil)
	next.AddCookie(cookies[0])

	token, err := codec.Get(next)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if token != "token-123" {
		t.Errorf("expected token-123, got %q", token)
	}
}

func TestCookieCodec_MissingCookie(t *testing.T) {
	codec := NewCookieCodec(testSecret, time.Hour)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if _, err := codec.Get(req); !errors.Is(err, ErrNoSessionCookie) {
		t.Errorf("expected ErrNoSessionCookie, got %v", err)
	}
}

func TestCookieCodec_RejectsTamperedValue(t *testing.T) {
	codec := NewCookieCodec(testSecret, time.Hour)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "registrar_session", Value: "forged-value"})

	if _, err := codec.Get(req); !errors.Is(err, ErrNoSessionCookie) {
		t.Errorf("expected ErrNoSessionCookie for tampered cookie, got %v", err)
	}
}

func TestCookieCodec_RejectsForeignSecret(t *testing.T) {
	codec := NewCookieCodec(testSecret, time.Hour)
	other := NewCookieCodec("ffffffffffffffffffffffffffffffff", time.Hour)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	if err := other.Set(rec, req, "token-123"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	next := httptest.NewRequest(http.MethodGet, "/", nil)
	next.AddCookie(rec.Result().Cookies()[0])

	if _, err := codec.Get(next); !errors.Is(err, ErrNoSessionCookie) {
		t.Errorf("expected ErrNoSessionCookie for foreign secret, got %v", err)
	}
}

func TestCookieCodec_Clear(t *testing.T) {
	codec := NewCookieCodec(testSecret, time.Hour)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/logout", nil)
	codec.Clear(rec, req)

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("expected one cookie, got %d", len(cookies))
	}

	if cookies[0].MaxAge != -1 {
		t.Errorf("expected MaxAge -1, got %d", cookies[0].MaxAge)
	}
}
