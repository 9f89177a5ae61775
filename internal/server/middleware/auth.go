// Package middleware holds the HTTP middleware chain of the POS server.
package middleware

import (
	"log/slog"
	"net/http"

	"github.com/fourone/pos/internal/server/session"
)

// Auth validates the session cookie and puts its claims into the
// request context. Requests without a valid session get 401.
func Auth(logger *slog.Logger, sessions *session.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(session.CookieName)
			if err != nil {
				logger.Warn("missing session cookie", "path", r.URL.Path)
				http.Error(w, "Unauthorized: missing session", http.StatusUnauthorized)
				return
			}

			claims, err := sessions.Validate(cookie.Value)
			if err != nil {
				logger.Warn("invalid session", "path", r.URL.Path, "error", err)
				http.Error(w, "Unauthorized: invalid session", http.StatusUnauthorized)
				return
			}

			logger.Debug("user authenticated",
				"user_id", claims.Subject, "username", claims.Username)

			next.ServeHTTP(w, r.WithContext(session.WithClaims(r.Context(), claims)))
		})
	}
}
