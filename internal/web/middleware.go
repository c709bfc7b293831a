package web

import (
	"context"
	"net/http"

	"github.com/registrar-hq/registrar/internal/auth/session"
)

type sessionKeyType struct{}

var sessionKey sessionKeyType

// RequireSession resolves the session cookie and rejects unauthenticated
// requests with a redirect to the login page. The resolved session is
// stored in the request context for the handler.
func (h *Handler) RequireSession(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, err := h.cookies.Get(r)
		if err != nil {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}

		sess, err := h.auth.Authenticate(r.Context(), token)
		if err != nil {
			h.cookies.Clear(w, r)
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}

		ctx := context.WithValue(r.Context(), sessionKey, sess)
		next(w, r.WithContext(ctx))
	}
}

// SessionFromContext returns the authenticated session placed by
// RequireSession.
func SessionFromContext(ctx context.Context) (session.Session, bool) {
	sess, ok := ctx.Value(sessionKey).(session.Session)
	return sess, ok
}
