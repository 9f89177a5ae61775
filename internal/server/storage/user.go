// Package storage defines the persistence interfaces of the POS server.
package storage

import (
	"context"
	"time"
)

// User is a POS operator account as persisted server-side. The password
// hash is an encoded argon2id string and never leaves the server.
type User struct {
	CreatedAt    time.Time
	LastLogin    *time.Time
	ID           string
	Username     string
	PasswordHash string
	Role         string
}

// UserStorage defines the interface for operator account persistence.
type UserStorage interface {
	// CreateUser creates a new user.
	// Returns ErrUserAlreadyExists if the username is taken.
	CreateUser(ctx context.Context, user *User) error

	// GetUserByUsername retrieves a user by username.
	// Returns ErrUserNotFound if the user doesn't exist.
	GetUserByUsername(ctx context.Context, username string) (*User, error)

	// GetUserByID retrieves a user by ID.
	// Returns ErrUserNotFound if the user doesn't exist.
	GetUserByID(ctx context.Context, userID string) (*User, error)

	// CountUsers returns the number of registered users.
	CountUsers(ctx context.Context) (int, error)

	// UpdateLastLogin updates the last login timestamp.
	UpdateLastLogin(ctx context.Context, userID string, lastLogin time.Time) error
}
