package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/fourone/pos/internal/server/session"
	"github.com/fourone/pos/internal/server/storage"
	"github.com/fourone/pos/pkg/api"
)

// AuthHandler serves login, logout and the anti-forgery token.
type AuthHandler struct {
	logger   *slog.Logger
	users    storage.UserStorage
	sessions *session.Manager
	secure   bool
}

// NewAuthHandler creates the auth handler. secure controls the Secure
// flag on the session cookie and should be true behind TLS.
func NewAuthHandler(logger *slog.Logger, users storage.UserStorage, sessions *session.Manager, secure bool) *AuthHandler {
	return &AuthHandler{
		logger:   logger,
		users:    users,
		sessions: sessions,
		secure:   secure,
	}
}

// Login handles POST /api/auth/login. On success the session travels in
// an HttpOnly cookie; only the user profile goes in the body.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.ErrorContext(ctx, "failed to decode login request", slog.Any("error", err))
		writeError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if req.Username == "" || req.Password == "" {
		writeError(w, "username and password are required", http.StatusBadRequest)
		return
	}

	user, err := h.users.GetUserByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			h.logger.WarnContext(ctx, "login failed: user not found", slog.String("username", req.Username))
			writeError(w, "invalid credentials", http.StatusUnauthorized)
			return
		}
		h.logger.ErrorContext(ctx, "failed to get user", slog.Any("error", err))
		writeError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	ok, err := session.VerifyPassword(req.Password, user.PasswordHash)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to verify password", slog.Any("error", err))
		writeError(w, "internal server error", http.StatusInternalServerError)
		return
	}
	if !ok {
		h.logger.WarnContext(ctx, "login failed: wrong password", slog.String("username", req.Username))
		writeError(w, "invalid credentials", http.StatusUnauthorized)
		return
	}

	token, err := h.sessions.Issue(user.ID, user.Username, user.Role)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to issue session", slog.Any("error", err))
		writeError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	if err := h.users.UpdateLastLogin(ctx, user.ID, time.Now().UTC()); err != nil {
		// Login still succeeds; the timestamp is informational.
		h.logger.WarnContext(ctx, "failed to update last login", slog.Any("error", err))
	}

	http.SetCookie(w, &http.Cookie{
		Name:     session.CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.sessions.TTL().Seconds()),
		HttpOnly: true,
		Secure:   h.secure,
		SameSite: http.SameSiteStrictMode,
	})

	h.logger.InfoContext(ctx, "user logged in",
		slog.String("username", user.Username),
		slog.String("user_id", user.ID))

	writeJSON(w, api.LoginResponse{
		User: api.User{ID: user.ID, Username: user.Username, Role: user.Role},
	}, http.StatusOK)
}

// Logout handles POST /api/auth/logout by expiring the session cookie.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     session.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secure,
		SameSite: http.SameSiteStrictMode,
	})

	w.WriteHeader(http.StatusNoContent)
}

// CSRF handles GET /api/csrf, returning the anti-forgery token bound to
// the current session.
func (h *AuthHandler) CSRF(w http.ResponseWriter, r *http.Request) {
	claims, ok := session.ClaimsFrom(r.Context())
	if !ok {
		writeError(w, "authentication required", http.StatusUnauthorized)
		return
	}

	writeJSON(w, api.CSRFResponse{Token: h.sessions.CSRFToken(claims)}, http.StatusOK)
}
