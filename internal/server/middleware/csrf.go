package middleware

import (
	"log/slog"
	"net/http"

	"github.com/fourone/pos/internal/server/session"
)

// CSRFHeader is the request header mutating calls must carry.
const CSRFHeader = "X-CSRF-Token"

// CSRF rejects mutating requests whose anti-forgery token does not
// match the session. Safe methods pass through. Must run after Auth.
func CSRF(logger *slog.Logger, sessions *session.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet, http.MethodHead, http.MethodOptions:
				next.ServeHTTP(w, r)
				return
			}

			claims, ok := session.ClaimsFrom(r.Context())
			if !ok {
				http.Error(w, "Unauthorized: missing session", http.StatusUnauthorized)
				return
			}

			token := r.Header.Get(CSRFHeader)
			if token == "" || !sessions.VerifyCSRF(claims, token) {
				logger.Warn("csrf token rejected",
					"path", r.URL.Path, "user_id", claims.Subject)
				http.Error(w, "Forbidden: invalid csrf token", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
