package session

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/securecookie"

	"github.com/registrar-hq/registrar/internal/common/constants"
)

var ErrNoSessionCookie = errors.New("no session cookie")

// CookieCodec writes the opaque session token into an authenticated
// cookie and reads it back. The cookie never carries session data, only
// the token; the store stays authoritative.
type CookieCodec struct {
	sc  *securecookie.SecureCookie
	ttl time.Duration
}

func NewCookieCodec(secret string, ttl time.Duration) *CookieCodec {
	sc := securecookie.New([]byte(secret), nil)
	sc.MaxAge(int(ttl.Seconds()))
	return &CookieCodec{sc: sc, ttl: ttl}
}

func (c *CookieCodec) Set(w http.ResponseWriter, r *http.Request, token string) error {
	encoded, err := c.sc.Encode(constants.SessionCookieName, token)
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     constants.SessionCookieName,
		Value:    encoded,
		Path:     "/",
		MaxAge:   int(c.ttl.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
		Secure:   r.TLS != nil,
	})
	return nil
}

func (c *CookieCodec) Get(r *http.Request) (string, error) {
	cookie, err := r.Cookie(constants.SessionCookieName)
	if err != nil || cookie.Value == "" {
		return "", ErrNoSessionCookie
	}

	var token string
	if err := c.sc.Decode(constants.SessionCookieName, cookie.Value, &token); err != nil {
		return "", ErrNoSessionCookie
	}
	return token, nil
}

func (c *CookieCodec) Clear(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     constants.SessionCookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
		Secure:   r.TLS != nil,
	})
}
