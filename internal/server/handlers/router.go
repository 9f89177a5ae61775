package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/fourone/pos/internal/server/middleware"
	"github.com/fourone/pos/internal/server/session"
	"github.com/fourone/pos/internal/server/storage"
	"github.com/fourone/pos/pkg/api"
)

// loginRateLimit caps login attempts per client IP. Everything else is
// behind a session and left unthrottled.
const (
	loginRateLimit  = 10
	loginRateWindow = time.Minute
)

// entityKinds maps each collection endpoint to its storage kind.
var entityKinds = map[string]string{
	api.PathProducts:   "products",
	api.PathCategories: "categories",
	api.PathTables:     "tables",
	api.PathCustomers:  "customers",
	api.PathTaxTypes:   "tax_types",
	api.PathSales:      "sales",
}

// NewRouter assembles the full HTTP surface of the server: auth,
// health and the entity CRUD endpoints, wrapped in the middleware
// chain.
func NewRouter(
	logger *slog.Logger,
	users storage.UserStorage,
	records storage.RecordStorage,
	sessions *session.Manager,
	version string,
	secure bool,
) http.Handler {
	authHandler := NewAuthHandler(logger, users, sessions, secure)
	healthHandler := NewHealthHandler(version)
	recordsHandler := NewRecordsHandler(logger, records)

	authRequired := middleware.Auth(logger, sessions)
	csrfGuard := middleware.CSRF(logger, sessions)
	loginLimit := middleware.RateLimit(loginRateLimit, loginRateWindow, logger)

	protected := func(h http.Handler) http.Handler {
		return authRequired(csrfGuard(h))
	}

	mux := http.NewServeMux()

	mux.Handle("GET /api/health", http.HandlerFunc(healthHandler.Health))
	mux.Handle("POST /api/auth/login", loginLimit(http.HandlerFunc(authHandler.Login)))
	mux.Handle("POST /api/auth/logout", http.HandlerFunc(authHandler.Logout))
	mux.Handle("GET /api/csrf", authRequired(http.HandlerFunc(authHandler.CSRF)))

	for path, kind := range entityKinds {
		mux.Handle("GET "+path, protected(recordsHandler.List(kind)))
		mux.Handle("POST "+path, protected(recordsHandler.Create(kind)))
		mux.Handle("PUT "+path+"/{id}", protected(recordsHandler.Update(kind)))
		mux.Handle("DELETE "+path+"/{id}", protected(recordsHandler.Delete(kind)))
	}

	var handler http.Handler = mux
	handler = middleware.Logging(logger, "/api/health")(handler)
	handler = middleware.Recovery(logger)(handler)

	return handler
}
