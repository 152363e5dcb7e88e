// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"passport/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrUserNotFound is a domain-specific error returned when a user is not found.
var ErrUserNotFound = errors.New("user not found")

// UserRepository defines the standard operations for user persistence.
// The application layer will depend on this interface, not the concrete implementation.
//
// Email lookups are exact-string comparisons; uniqueness is guaranteed by the
// storage layer's unique index, so a lookup-then-create race surfaces from
// Create, never as silent duplicate rows.
type UserRepository interface {
	// FindByID retrieves a single user by their unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// FindByEmail retrieves a single user by their email address.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// FindCredentialByEmail retrieves the password-bearing credential for an email.
	// Only the login path calls this; the digest never leaves the usecase layer.
	FindCredentialByEmail(ctx context.Context, email string) (*entity.Credential, error)

	// Create persists a new user with the given password digest.
	// The user's ID and timestamps are filled in from the storage layer.
	Create(ctx context.Context, user *entity.User, passwordHash string) error
}
