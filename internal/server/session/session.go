// Package session issues and validates the server's session cookies and
// the anti-forgery tokens bound to them.
package session

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// CookieName is the session cookie issued on login.
const CookieName = "pos_session"

// DefaultTTL covers a full shift with margin.
const DefaultTTL = 12 * time.Hour

// ErrInvalidSession indicates a missing, malformed or expired session.
var ErrInvalidSession = errors.New("invalid session")

// Claims is the session payload. Subject carries the user id, ID the
// session id the CSRF token is bound to.
type Claims struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// Manager signs and validates session tokens.
type Manager struct {
	secret []byte
	ttl    time.Duration
}

// NewManager creates a session manager. secret must be a
// cryptographically random value shared by nothing else.
func NewManager(secret []byte, ttl time.Duration) *Manager {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Manager{secret: secret, ttl: ttl}
}

// TTL returns the session lifetime, which is also the cookie max age.
func (m *Manager) TTL() time.Duration {
	return m.ttl
}

// Issue creates a signed session token for a logged-in user.
func (m *Manager) Issue(userID, username, role string) (string, error) {
	now := time.Now()
	claims := Claims{
		Username: username,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ID:        uuid.New().String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}

	return signed, nil
}

// Validate parses and verifies a session token.
func (m *Manager) Validate(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSession, err)
	}
	if !token.Valid || claims.ID == "" {
		return nil, ErrInvalidSession
	}

	return claims, nil
}

// CSRFToken derives the anti-forgery token for a session. It is a MAC
// over the session id, so a stolen token is useless with another
// session cookie.
func (m *Manager) CSRFToken(claims *Claims) string {
	mac := hmac.New(sha256.New, m.secret)
	mac.Write([]byte("csrf:" + claims.ID))
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifyCSRF checks a presented anti-forgery token against the session.
func (m *Manager) VerifyCSRF(claims *Claims, token string) bool {
	expected := m.CSRFToken(claims)
	return hmac.Equal([]byte(expected), []byte(token))
}
