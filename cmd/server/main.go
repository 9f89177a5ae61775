package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/fourone/pos/internal/server/handlers"
	"github.com/fourone/pos/internal/server/session"
	"github.com/fourone/pos/internal/server/storage"
	"github.com/fourone/pos/internal/server/storage/sqlite"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

const (
	defaultAddr   = ":8080"
	defaultDBPath = "pos-server.db"
	adminUsername = "admin"
)

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	addr := flag.String("addr", defaultAddr, "Listen address")
	dbPath := flag.String("db", defaultDBPath, "Path to the SQLite database file")
	secure := flag.Bool("secure-cookies", false, "Set the Secure flag on session cookies (enable behind TLS)")
	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	if err := run(logger, *addr, *dbPath, *secure); err != nil {
		logger.Error("server exited", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(logger *slog.Logger, addr, dbPath string, secure bool) error {
	ctx, stop := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := sqlite.New(ctx, dbPath)
	if err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}
	defer store.Close()

	secret, err := sessionSecret()
	if err != nil {
		return err
	}
	sessions := session.NewManager(secret, session.DefaultTTL)

	if err := bootstrapAdmin(ctx, logger, store); err != nil {
		return err
	}

	server := &http.Server{
		Addr:              addr,
		Handler:           handlers.NewRouter(logger, store, store, sessions, Version, secure),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("server listening",
			slog.String("addr", addr),
			slog.String("db", dbPath),
			slog.String("version", Version))

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen failed: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		logger.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// sessionSecret reads the signing secret from the environment. A random
// one is generated when absent, which invalidates sessions on restart
// but keeps single-terminal setups working out of the box.
func sessionSecret() ([]byte, error) {
	if env := os.Getenv("POS_SESSION_SECRET"); env != "" {
		return []byte(env), nil
	}

	secret := make([]byte, 32)
	if _, err := rand.Read(secret); err != nil {
		return nil, fmt.Errorf("failed to generate session secret: %w", err)
	}
	return secret, nil
}

// bootstrapAdmin creates the initial operator account on an empty
// database so the terminal can log in at all.
func bootstrapAdmin(ctx context.Context, logger *slog.Logger, store *sqlite.Storage) error {
	count, err := store.CountUsers(ctx)
	if err != nil {
		return fmt.Errorf("failed to count users: %w", err)
	}
	if count > 0 {
		return nil
	}

	password := os.Getenv("POS_ADMIN_PASSWORD")
	generated := false
	if password == "" {
		raw := make([]byte, 12)
		if _, err := rand.Read(raw); err != nil {
			return fmt.Errorf("failed to generate admin password: %w", err)
		}
		password = hex.EncodeToString(raw)
		generated = true
	}

	hash, err := session.HashPassword(password)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	if err := store.CreateUser(ctx, &storage.User{
		ID:           uuid.New().String(),
		Username:     adminUsername,
		PasswordHash: hash,
		Role:         "admin",
		CreatedAt:    time.Now().UTC(),
	}); err != nil {
		return fmt.Errorf("failed to create admin user: %w", err)
	}

	if generated {
		// Printed once on first start; there is no other way to get in.
		fmt.Printf("Created initial user %q with password: %s\n", adminUsername, password)
	}
	logger.Info("created initial admin user", slog.String("username", adminUsername))

	return nil
}

func printVersion() {
	fmt.Printf("POS Server\n")
	fmt.Printf("Version:    %s\n", Version)
	fmt.Printf("Build Date: %s\n", BuildDate)
	fmt.Printf("Git Commit: %s\n", GitCommit)
}
