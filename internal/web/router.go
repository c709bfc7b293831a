package web

import (
	"net/http"
	"time"

	commonhttp "github.com/registrar-hq/registrar/internal/common/http"
)

// Routes builds the full HTTP surface. Every path past the login pair
// requires an active session; unauthenticated access redirects to
// /login.
func (h *Handler) Routes(requestTimeout time.Duration) http.Handler {
	withTimeout := commonhttp.WithTimeout(requestTimeout)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /login", h.loginPage)
	mux.HandleFunc("POST /login", withTimeout(h.login))
	mux.HandleFunc("GET /logout", withTimeout(h.RequireSession(h.logout)))
	mux.HandleFunc("GET /{$}", withTimeout(h.RequireSession(h.dashboard)))
	mux.HandleFunc("GET /get_students", withTimeout(h.RequireSession(h.getStudents)))
	mux.HandleFunc("POST /add_student", withTimeout(h.RequireSession(h.addStudent)))
	mux.HandleFunc("DELETE /delete_student/{id}", withTimeout(h.RequireSession(h.deleteStudent)))
	mux.HandleFunc("GET /get_stats", withTimeout(h.RequireSession(h.getStats)))
	mux.HandleFunc("GET /export_csv", withTimeout(h.RequireSession(h.exportCSV)))
	return mux
}
