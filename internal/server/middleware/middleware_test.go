package middleware

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fourone/pos/internal/server/session"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
}

func TestAuth_MissingCookie(t *testing.T) {
	sessions := session.NewManager([]byte("test-secret"), time.Hour)
	h := Auth(testLogger(), sessions)(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuth_InvalidToken(t *testing.T) {
	sessions := session.NewManager([]byte("test-secret"), time.Hour)
	h := Auth(testLogger(), sessions)(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	req.AddCookie(&http.Cookie{Name: session.CookieName, Value: "garbage"})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuth_ValidSessionPassesClaims(t *testing.T) {
	sessions := session.NewManager([]byte("test-secret"), time.Hour)
	token, err := sessions.Issue("user-1", "alice", "cashier")
	require.NoError(t, err)

	var gotUsername string
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := session.ClaimsFrom(r.Context())
		require.True(t, ok)
		gotUsername = claims.Username
		w.WriteHeader(http.StatusOK)
	})

	h := Auth(testLogger(), sessions)(inner)

	req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	req.AddCookie(&http.Cookie{Name: session.CookieName, Value: token})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "alice", gotUsername)
}

func TestCSRF_SafeMethodsPass(t *testing.T) {
	sessions := session.NewManager([]byte("test-secret"), time.Hour)
	h := CSRF(testLogger(), sessions)(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCSRF_MutationWithoutTokenRejected(t *testing.T) {
	sessions := session.NewManager([]byte("test-secret"), time.Hour)
	token, err := sessions.Issue("user-1", "alice", "cashier")
	require.NoError(t, err)
	claims, err := sessions.Validate(token)
	require.NoError(t, err)

	h := CSRF(testLogger(), sessions)(okHandler())

	req := httptest.NewRequest(http.MethodPost, "/api/sales", nil)
	req = req.WithContext(session.WithClaims(req.Context(), claims))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "csrf")
}

func TestCSRF_MutationWithValidToken(t *testing.T) {
	sessions := session.NewManager([]byte("test-secret"), time.Hour)
	token, err := sessions.Issue("user-1", "alice", "cashier")
	require.NoError(t, err)
	claims, err := sessions.Validate(token)
	require.NoError(t, err)

	h := CSRF(testLogger(), sessions)(okHandler())

	req := httptest.NewRequest(http.MethodPost, "/api/sales", nil)
	req = req.WithContext(session.WithClaims(req.Context(), claims))
	req.Header.Set(CSRFHeader, sessions.CSRFToken(claims))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCSRF_TokenFromAnotherSessionRejected(t *testing.T) {
	sessions := session.NewManager([]byte("test-secret"), time.Hour)

	tokenA, err := sessions.Issue("user-1", "alice", "cashier")
	require.NoError(t, err)
	claimsA, err := sessions.Validate(tokenA)
	require.NoError(t, err)

	tokenB, err := sessions.Issue("user-2", "bob", "cashier")
	require.NoError(t, err)
	claimsB, err := sessions.Validate(tokenB)
	require.NoError(t, err)

	h := CSRF(testLogger(), sessions)(okHandler())

	req := httptest.NewRequest(http.MethodPost, "/api/sales", nil)
	req = req.WithContext(session.WithClaims(req.Context(), claimsA))
	req.Header.Set(CSRFHeader, sessions.CSRFToken(claimsB))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRateLimiter_AllowWithinLimit(t *testing.T) {
	rl := NewRateLimiter(3, time.Minute, testLogger())
	defer rl.Stop()

	for i := 0; i < 3; i++ {
		assert.True(t, rl.Allow("1.2.3.4"))
	}
	assert.False(t, rl.Allow("1.2.3.4"))
}

func TestRateLimiter_KeysIndependent(t *testing.T) {
	rl := NewRateLimiter(1, time.Minute, testLogger())
	defer rl.Stop()

	assert.True(t, rl.Allow("1.2.3.4"))
	assert.False(t, rl.Allow("1.2.3.4"))
	assert.True(t, rl.Allow("5.6.7.8"))
}

func TestRateLimiter_WindowRefills(t *testing.T) {
	rl := NewRateLimiter(1, 10*time.Millisecond, testLogger())
	defer rl.Stop()

	assert.True(t, rl.Allow("1.2.3.4"))
	assert.False(t, rl.Allow("1.2.3.4"))

	time.Sleep(20 * time.Millisecond)
	assert.True(t, rl.Allow("1.2.3.4"))
}

func TestRateLimit_Middleware(t *testing.T) {
	h := RateLimit(1, time.Minute, testLogger())(okHandler())

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
	req.RemoteAddr = "9.9.9.9:1234"

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.1:5555"
	assert.Equal(t, "10.0.0.1", clientIP(req))

	req.Header.Set("X-Real-IP", "2.2.2.2")
	assert.Equal(t, "2.2.2.2", clientIP(req))

	req.Header.Set("X-Forwarded-For", "3.3.3.3, 10.0.0.1")
	assert.Equal(t, "3.3.3.3", clientIP(req))
}

func TestLogging_PassesThrough(t *testing.T) {
	h := Logging(testLogger(), "/api/health")(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestRecovery_ConvertsPanicTo500(t *testing.T) {
	h := Recovery(testLogger())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	rec := httptest.NewRecorder()

	require.NotPanics(t, func() { h.ServeHTTP(rec, req) })
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
