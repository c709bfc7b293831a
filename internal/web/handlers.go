package web

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"

	authservice "github.com/registrar-hq/registrar/internal/auth/service"
	"github.com/registrar-hq/registrar/internal/auth/session"
	commonhttp "github.com/registrar-hq/registrar/internal/common/http"
	"github.com/registrar-hq/registrar/internal/common/logger"
	studentdomain "github.com/registrar-hq/registrar/internal/student/domain"
	studentrepo "github.com/registrar-hq/registrar/internal/student/repository"
	studentservice "github.com/registrar-hq/registrar/internal/student/service"
)

type AuthService interface {
	Login(ctx context.Context, username, password string) (session.Session, error)
	Logout(ctx context.Context, token string) error
	Authenticate(ctx context.Context, token string) (session.Session, error)
}

type RecordService interface {
	Add(ctx context.Context, input studentservice.AddStudentInput) (studentdomain.StudentRecord, error)
	List(ctx context.Context) ([]studentservice.StudentJSON, error)
	Delete(ctx context.Context, id int64) error
	Stats(ctx context.Context) (studentservice.StatsJSON, error)
	ExportCSV(ctx context.Context, w io.Writer) error
}

type CookieCodec interface {
	Set(w http.ResponseWriter, r *http.Request, token string) error
	Get(r *http.Request) (string, error)
	Clear(w http.ResponseWriter, r *http.Request)
}

type Handler struct {
	auth    AuthService
	records RecordService
	cookies CookieCodec
	log     *logger.Logger
}

func NewHandler(auth AuthService, records RecordService, cookies CookieCodec, log *logger.Logger) *Handler {
	return &Handler{
		auth:    auth,
		records: records,
		cookies: cookies,
		log:     log,
	}
}

func (h *Handler) loginPage(w http.ResponseWriter, r *http.Request) {
	if token, err := h.cookies.Get(r); err == nil {
		if _, err := h.auth.Authenticate(r.Context(), token); err == nil {
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_ = loginTmpl.Execute(w, map[string]any{
		"Error": r.URL.Query().Get("error") != "",
	})
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		commonhttp.WriteError(w, http.StatusBadRequest, "invalid form")
		return
	}

	sess, err := h.auth.Login(r.Context(), r.FormValue("username"), r.FormValue("password"))
	if err != nil {
		if errors.Is(err, authservice.ErrInvalidCredentials) {
			http.Redirect(w, r, "/login?error=1", http.StatusSeeOther)
			return
		}
		h.log.Errorf("login failed: %v", err)
		commonhttp.WriteError(w, http.StatusInternalServerError, "internal error")
		return
	}

	if err := h.cookies.Set(w, r, sess.Token); err != nil {
		h.log.Errorf("login failed: cookie encode error: %v", err)
		// The session was already created; drop it rather than leave it
		// live until TTL expiry with no cookie referencing it.
		if logoutErr := h.auth.Logout(r.Context(), sess.Token); logoutErr != nil {
			h.log.Errorf("login failed: session cleanup error: %v", logoutErr)
		}
		commonhttp.WriteError(w, http.StatusInternalServerError, "internal error")
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	if token, err := h.cookies.Get(r); err == nil {
		if err := h.auth.Logout(r.Context(), token); err != nil {
			h.log.Errorf("logout failed: %v", err)
		}
	}

	h.cookies.Clear(w, r)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func (h *Handler) dashboard(w http.ResponseWriter, r *http.Request) {
	sess, _ := SessionFromContext(r.Context())

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_ = dashboardTmpl.Execute(w, map[string]any{
		"Username": sess.Username,
	})
}

func (h *Handler) getStudents(w http.ResponseWriter, r *http.Request) {
	students, err := h.records.List(r.Context())
	if err != nil {
		commonhttp.WriteError(w, http.StatusInternalServerError, "internal error")
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, students)
}

func (h *Handler) addStudent(w http.ResponseWriter, r *http.Request) {
	var input studentservice.AddStudentInput
	if err := commonhttp.DecodeJSON(r, &input); err != nil {
		commonhttp.WriteError(w, http.StatusBadRequest, "invalid json")
		return
	}

	_, err := h.records.Add(r.Context(), input)
	if err != nil {
		if errors.Is(err, studentrepo.ErrDuplicateEmail) {
			commonhttp.WriteMessage(w, http.StatusBadRequest, "Error: Duplicate Email")
			return
		}
		if vErr, ok := studentservice.AsValidationError(err); ok {
			commonhttp.WriteMessage(w, http.StatusBadRequest, "Error: "+vErr.Error())
			return
		}
		commonhttp.WriteError(w, http.StatusInternalServerError, "internal error")
		return
	}

	commonhttp.WriteMessage(w, http.StatusCreated, "Student Added Successfully!")
}

func (h *Handler) deleteStudent(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		commonhttp.WriteError(w, http.StatusBadRequest, "invalid student id")
		return
	}

	if err := h.records.Delete(r.Context(), id); err != nil {
		if errors.Is(err, studentrepo.ErrStudentNotFound) {
			commonhttp.WriteError(w, http.StatusNotFound, "student not found")
			return
		}
		commonhttp.WriteError(w, http.StatusInternalServerError, "internal error")
		return
	}

	commonhttp.WriteMessage(w, http.StatusOK, "Deleted!")
}

func (h *Handler) getStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.records.Stats(r.Context())
	if err != nil {
		commonhttp.WriteError(w, http.StatusInternalServerError, "internal error")
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, stats)
}

func (h *Handler) exportCSV(w http.ResponseWriter, r *http.Request) {
	// Export into a buffer first so a storage failure can still become a
	// 500 instead of an empty attachment with committed headers.
	var buf bytes.Buffer
	if err := h.records.ExportCSV(r.Context(), &buf); err != nil {
		commonhttp.WriteError(w, http.StatusInternalServerError, "internal error")
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename=student_report.csv`)
	_, _ = buf.WriteTo(w)
}
