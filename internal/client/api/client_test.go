package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	posapi "github.com/fourone/pos/pkg/api"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(server.URL)
	require.NoError(t, err)
	return client
}

func TestGet_Success(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/products", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":"p1"}]`))
	}))

	body, err := client.Get(context.Background(), "/api/products")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"p1"}]`, string(body))
}

func TestGet_StatusError(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(posapi.ErrorResponse{Error: "product not found"})
	}))

	_, err := client.Get(context.Background(), "/api/products/nope")
	require.Error(t, err)

	// A well-formed error response is not a transport failure.
	assert.False(t, IsTransportFailure(err))

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusNotFound, statusErr.Code)
	assert.Equal(t, "product not found", statusErr.Message)
}

func TestGet_TransportFailure(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	server.Close() // connection refused from here on

	client, err := NewClient(server.URL)
	require.NoError(t, err)

	_, err = client.Get(context.Background(), "/api/products")
	require.Error(t, err)
	assert.True(t, IsTransportFailure(err))
}

func TestPost_AttachesCSRFToken(t *testing.T) {
	var csrfFetches atomic.Int32

	mux := http.NewServeMux()
	mux.HandleFunc("/api/csrf", func(w http.ResponseWriter, r *http.Request) {
		csrfFetches.Add(1)
		_ = json.NewEncoder(w).Encode(posapi.CSRFResponse{Token: "tok-1"})
	})
	mux.HandleFunc("/api/sales", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "tok-1", r.Header.Get(csrfHeader))
		_, _ = w.Write([]byte(`{"id":"s1"}`))
	})

	client := newTestClient(t, mux)

	ctx := context.Background()
	_, err := client.Post(ctx, "/api/sales", json.RawMessage(`{}`))
	require.NoError(t, err)

	// The token is cached across mutating calls.
	_, err = client.Post(ctx, "/api/sales", json.RawMessage(`{}`))
	require.NoError(t, err)
	assert.Equal(t, int32(1), csrfFetches.Load())
}

func TestPost_RetriesOnceOnCSRFRejection(t *testing.T) {
	var tokenIssued atomic.Int32
	var saleAttempts atomic.Int32

	mux := http.NewServeMux()
	mux.HandleFunc("/api/csrf", func(w http.ResponseWriter, r *http.Request) {
		n := tokenIssued.Add(1)
		token := "stale"
		if n > 1 {
			token = "fresh"
		}
		_ = json.NewEncoder(w).Encode(posapi.CSRFResponse{Token: token})
	})
	mux.HandleFunc("/api/sales", func(w http.ResponseWriter, r *http.Request) {
		saleAttempts.Add(1)
		if r.Header.Get(csrfHeader) != "fresh" {
			w.WriteHeader(http.StatusForbidden)
			_ = json.NewEncoder(w).Encode(posapi.ErrorResponse{Error: "invalid CSRF token"})
			return
		}
		_, _ = w.Write([]byte(`{"id":"s1"}`))
	})

	client := newTestClient(t, mux)

	body, err := client.Post(context.Background(), "/api/sales", json.RawMessage(`{}`))
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"s1"}`, string(body))
	assert.Equal(t, int32(2), saleAttempts.Load())
}

func TestLogin_StoresSessionCookie(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var req posapi.LoginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "cashier", req.Username)

		http.SetCookie(w, &http.Cookie{Name: "pos_session", Value: "session-1", Path: "/"})
		_ = json.NewEncoder(w).Encode(posapi.LoginResponse{
			User: posapi.User{ID: "u1", Username: "cashier", Role: "cashier"},
		})
	})
	mux.HandleFunc("/api/sales", func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie("pos_session")
		require.NoError(t, err)
		assert.Equal(t, "session-1", cookie.Value)
		_, _ = w.Write([]byte(`[]`))
	})

	client := newTestClient(t, mux)

	ctx := context.Background()
	resp, err := client.Login(ctx, posapi.LoginRequest{Username: "cashier", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, "u1", resp.User.ID)

	// The session cookie rides along on later calls.
	_, err = client.Get(ctx, "/api/sales")
	require.NoError(t, err)
}

func TestIsCSRFRejection(t *testing.T) {
	assert.True(t, IsCSRFRejection(&StatusError{Code: 403, Message: "invalid CSRF token"}))
	assert.True(t, IsCSRFRejection(&StatusError{Code: 400, Message: "csrf token expired"}))
	assert.False(t, IsCSRFRejection(&StatusError{Code: 403, Message: "forbidden"}))
	assert.False(t, IsCSRFRejection(&StatusError{Code: 500, Message: "csrf"}))
	assert.False(t, IsCSRFRejection(nil))
}
