// Package middleware provides the HTTP middleware chain: the auth gate,
// CORS, rate limiting, and request metrics/logging.
package middleware

import (
	"encoding/json"
	"net/http"
	"strings"

	authsvc "github.com/scholarai/scholarai/internal/app/services/auth"
	"github.com/scholarai/scholarai/internal/identity"
	"github.com/scholarai/scholarai/pkg/logger"
)

// Identity propagation headers. The gate is the only writer; handlers rely
// on the typed context value and treat these as informational.
const (
	HeaderUserID    = "x-user-id"
	HeaderUserEmail = "x-user-email"
	HeaderUserName  = "x-user-name"
)

const loginPath = "/login"

// AuthGate verifies the cookie-borne token once per request and attaches the
// verified identity for downstream handlers. It is stateless: every request
// is evaluated independently and nothing is retried.
type AuthGate struct {
	tokens     *authsvc.TokenService
	cookieName string
	log        *logger.Logger
}

// NewAuthGate constructs the gate.
func NewAuthGate(tokens *authsvc.TokenService, cookieName string, log *logger.Logger) *AuthGate {
	if cookieName == "" {
		cookieName = "token"
	}
	if log == nil {
		log = logger.NewDefault("authgate")
	}
	return &AuthGate{tokens: tokens, cookieName: cookieName, log: log}
}

func isAuthPage(path string) bool {
	return path == loginPath || path == "/register"
}

func isAuthAPI(path string) bool {
	return strings.HasPrefix(path, "/api/auth/")
}

func isAPI(path string) bool {
	return strings.HasPrefix(path, "/api/")
}

// open paths never require a token regardless of classification.
func isOpen(path string) bool {
	return path == "/healthz" || path == "/metrics"
}

// Handler returns the middleware handler implementing the gate's decision
// table.
func (g *AuthGate) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Path

		if isOpen(path) {
			next.ServeHTTP(w, r)
			return
		}

		token := ""
		if c, err := r.Cookie(g.cookieName); err == nil {
			token = c.Value
		}

		if token == "" {
			if isAuthPage(path) || isAuthAPI(path) {
				next.ServeHTTP(w, r)
				return
			}
			g.reject(w, r, false)
			return
		}

		claims, err := g.tokens.Verify(token)
		if err != nil {
			g.log.WithError(err).WithField("path", path).Warn("token verification failed")
			g.clearCookie(w)
			g.reject(w, r, true)
			return
		}

		// Already authenticated; send auth pages back to the app.
		if isAuthPage(path) {
			http.Redirect(w, r, "/", http.StatusTemporaryRedirect)
			return
		}

		id := identity.Identity{UserID: claims.UserID, Name: claims.Name, Email: claims.Email}
		ctx := identity.WithIdentity(r.Context(), id)
		r = r.WithContext(ctx)
		r.Header.Set(HeaderUserID, id.UserID)
		r.Header.Set(HeaderUserEmail, id.Email)
		r.Header.Set(HeaderUserName, id.Name)

		next.ServeHTTP(w, r)
	})
}

// reject answers an unauthenticated request: API routes get structured JSON,
// page routes a redirect to login.
func (g *AuthGate) reject(w http.ResponseWriter, r *http.Request, invalid bool) {
	if isAPI(r.URL.Path) {
		msg := "Authentication required."
		if invalid {
			msg = "Invalid or expired token."
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": msg})
		return
	}
	http.Redirect(w, r, loginPath, http.StatusTemporaryRedirect)
}

func (g *AuthGate) clearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     g.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
}

// RequireIdentity ensures a verified identity is present. It guards handlers
// mounted behind the gate against misconfiguration of the chain.
func RequireIdentity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := identity.FromContext(r.Context()); !ok && isAPI(r.URL.Path) && !isAuthAPI(r.URL.Path) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]string{"message": "Authentication required."})
			return
		}
		next.ServeHTTP(w, r)
	})
}
