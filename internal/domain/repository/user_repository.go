// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"cardlink/internal/domain/entity"

	"github.com/google/uuid"
)

// Domain-specific errors for user persistence.
var (
	// ErrUserNotFound is returned when a user is not found.
	ErrUserNotFound = errors.New("user not found")
	// ErrAccountNotFound is returned when a credential account is not found.
	ErrAccountNotFound = errors.New("account not found")
	// ErrDuplicateUser is returned when the email is already registered.
	ErrDuplicateUser = errors.New("user already exists")
)

// Account is a credential record for a user, kept separate from the User
// entity so the identity provider surface stays narrow.
type Account struct {
	UserID       uuid.UUID
	Email        string
	PasswordHash string
}

// UserRepository defines the standard operations for user persistence.
type UserRepository interface {
	// FindByID retrieves a single user by their unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// FindAccountByEmail retrieves the credential account for an email address.
	FindAccountByEmail(ctx context.Context, email string) (*Account, error)

	// Create persists a new user together with their credential account.
	Create(ctx context.Context, user *entity.User, passwordHash string) error
}
