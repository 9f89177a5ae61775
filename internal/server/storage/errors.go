package storage

import "errors"

// Common storage errors.
var (
	// ErrUserNotFound indicates that the user was not found in storage.
	ErrUserNotFound = errors.New("user not found")

	// ErrUserAlreadyExists indicates that the username is already taken.
	ErrUserAlreadyExists = errors.New("user already exists")

	// ErrRecordNotFound indicates that the entity record was not found.
	ErrRecordNotFound = errors.New("record not found")
)
