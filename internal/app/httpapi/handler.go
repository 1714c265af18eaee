// Package httpapi bundles the REST endpoints for the application services.
package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	app "github.com/scholarai/scholarai/internal/app"
	"github.com/scholarai/scholarai/internal/app/domain/application"
	"github.com/scholarai/scholarai/internal/app/domain/profile"
	"github.com/scholarai/scholarai/internal/app/domain/scholarship"
	"github.com/scholarai/scholarai/internal/errs"
	"github.com/scholarai/scholarai/internal/identity"
	"github.com/scholarai/scholarai/internal/metrics"
	"github.com/scholarai/scholarai/pkg/logger"
)

// CookieOptions controls the session cookie written on login.
type CookieOptions struct {
	Name   string
	Secure bool
	MaxAge time.Duration
}

// handler bundles HTTP endpoints for the application services.
type handler struct {
	app    *app.Application
	log    *logger.Logger
	cookie CookieOptions
}

// NewHandler returns a mux exposing the core REST API plus health and
// metrics endpoints.
func NewHandler(application *app.Application, cookie CookieOptions, log *logger.Logger) http.Handler {
	if log == nil {
		log = logger.NewDefault("httpapi")
	}
	if cookie.Name == "" {
		cookie.Name = "token"
	}
	if cookie.MaxAge <= 0 {
		cookie.MaxAge = 24 * time.Hour
	}

	h := &handler{app: application, log: log, cookie: cookie}
	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/register", h.register)
	mux.HandleFunc("/api/auth/login", h.login)
	mux.HandleFunc("/api/profile", h.profile)
	mux.HandleFunc("/api/scholarships", h.scholarships)
	mux.HandleFunc("/api/applications", h.applications)
	mux.HandleFunc("/api/applications/checklist", h.checklist)
	mux.HandleFunc("/api/recommendations", h.recommendations)
	mux.HandleFunc("/api/assistant", h.assistant)
	mux.HandleFunc("/healthz", h.health)
	mux.Handle("/metrics", metrics.Handler())
	return mux
}

func (h *handler) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// --- auth -------------------------------------------------------------------

func (h *handler) register(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var payload struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := decodeJSON(r.Body, &payload); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	if _, err := h.app.Auth.Register(r.Context(), payload.Name, payload.Email, payload.Password); err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"message": "User created successfully."})
}

func (h *handler) login(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var payload struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := decodeJSON(r.Body, &payload); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	token, u, err := h.app.Auth.Login(r.Context(), payload.Email, payload.Password)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     h.cookie.Name,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.cookie.MaxAge.Seconds()),
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"token": token,
		"user":  map[string]string{"id": u.ID, "name": u.Name, "email": u.Email},
	})
}

// --- profile ----------------------------------------------------------------

func (h *handler) profile(w http.ResponseWriter, r *http.Request) {
	id, ok := identity.FromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "Authentication required.")
		return
	}

	switch r.Method {
	case http.MethodGet:
		p, err := h.app.Profiles.Get(r.Context(), id.UserID)
		if err != nil {
			h.writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, p)

	case http.MethodPost:
		var fields profile.Fields
		if err := decodeJSON(r.Body, &fields); err != nil {
			writeMessage(w, http.StatusBadRequest, "Invalid profile data.")
			return
		}
		p, err := h.app.Profiles.Upsert(r.Context(), id.UserID, fields)
		if err != nil {
			h.writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, p)

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// --- scholarships -----------------------------------------------------------

func (h *handler) scholarships(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	catalog, err := h.app.Scholarships.List(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, catalog)
}

// --- applications -----------------------------------------------------------

func (h *handler) applications(w http.ResponseWriter, r *http.Request) {
	id, ok := identity.FromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "Authentication required.")
		return
	}

	switch r.Method {
	case http.MethodGet:
		apps, err := h.app.Applications.List(r.Context(), id.UserID)
		if err != nil {
			h.writeError(w, r, err)
			return
		}
		if apps == nil {
			apps = []application.Application{}
		}
		writeJSON(w, http.StatusOK, apps)

	case http.MethodPost:
		var payload struct {
			Scholarship scholarship.Scholarship `json:"scholarship"`
		}
		if err := decodeJSON(r.Body, &payload); err != nil {
			writeMessage(w, http.StatusBadRequest, "Invalid scholarship data.")
			return
		}
		created, err := h.app.Applications.Track(r.Context(), id.UserID, payload.Scholarship)
		if err != nil {
			h.writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, created)

	case http.MethodPut:
		var payload struct {
			ApplicationID string             `json:"applicationId"`
			Status        application.Status `json:"status"`
		}
		if err := decodeJSON(r.Body, &payload); err != nil {
			writeMessage(w, http.StatusBadRequest, "Invalid request body.")
			return
		}
		if err := h.app.Applications.UpdateStatus(r.Context(), id.UserID, payload.ApplicationID, payload.Status); err != nil {
			h.writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"message": "Status updated successfully."})

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (h *handler) checklist(w http.ResponseWriter, r *http.Request) {
	id, ok := identity.FromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "Authentication required.")
		return
	}
	if r.Method != http.MethodPut {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var payload struct {
		ApplicationID   string `json:"applicationId"`
		ChecklistItemID string `json:"checklistItemId"`
		Completed       *bool  `json:"completed"`
	}
	if err := decodeJSON(r.Body, &payload); err != nil || payload.Completed == nil {
		writeMessage(w, http.StatusBadRequest, "Application ID, checklist item ID, and completed status are required.")
		return
	}

	err := h.app.Applications.UpdateChecklistItem(r.Context(), id.UserID, payload.ApplicationID, payload.ChecklistItemID, *payload.Completed)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Checklist item updated successfully."})
}

// --- AI-backed endpoints ----------------------------------------------------

func (h *handler) recommendations(w http.ResponseWriter, r *http.Request) {
	id, ok := identity.FromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "Authentication required.")
		return
	}
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	recs, err := h.app.Scholarships.Recommend(r.Context(), id.UserID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if recs == nil {
		recs = []scholarship.Recommendation{}
	}
	writeJSON(w, http.StatusOK, recs)
}

func (h *handler) assistant(w http.ResponseWriter, r *http.Request) {
	if _, ok := identity.FromContext(r.Context()); !ok {
		writeMessage(w, http.StatusUnauthorized, "Authentication required.")
		return
	}
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var payload struct {
		Question string `json:"question"`
	}
	if err := decodeJSON(r.Body, &payload); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	answer, err := h.app.Assistant.Answer(r.Context(), payload.Question)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"answer": answer})
}

// --- helpers ----------------------------------------------------------------

func decodeJSON(body io.ReadCloser, dst interface{}) error {
	defer body.Close()
	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}

// writeError maps service errors onto the response taxonomy, logging full
// detail server-side and returning a generic message to the caller.
func (h *handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	log := h.log.WithError(err).WithField("path", r.URL.Path).WithField("method", r.Method)

	switch {
	case errors.Is(err, errs.ErrValidation):
		log.Warn("validation failed")
		writeMessage(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, errs.ErrUnauthorized), errors.Is(err, errs.ErrInvalidToken):
		log.Warn("unauthorized")
		writeMessage(w, http.StatusUnauthorized, "Invalid credentials.")
	case errors.Is(err, errs.ErrAlreadyExists):
		log.Warn("conflict")
		writeMessage(w, http.StatusConflict, "Resource already exists.")
	case errors.Is(err, errs.ErrNotFound):
		log.Warn("not found")
		writeMessage(w, http.StatusNotFound, "Resource not found or you do not have permission to update it.")
	default:
		log.Error("internal error")
		writeMessage(w, http.StatusInternalServerError, "An internal server error occurred.")
	}
}
