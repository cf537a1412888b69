package usecase

import (
	"context"

	"cardlink/internal/domain/entity"

	"github.com/google/uuid"
)

// RegisterInput creates a new user account.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// LoginInput authenticates an existing user.
type LoginInput struct {
	Email    string
	Password string
}

// AuthTokens is the issued token pair.
type AuthTokens struct {
	AccessToken  string
	RefreshToken string
}

// UserUsecase defines the identity use cases.
type UserUsecase interface {
	// Register creates a user with a hashed password.
	Register(ctx context.Context, input RegisterInput) (*entity.User, error)

	// Login verifies credentials and issues a token pair.
	Login(ctx context.Context, input LoginInput) (*entity.User, *AuthTokens, error)

	// Me retrieves the authenticated user's profile.
	Me(ctx context.Context, userID uuid.UUID) (*entity.User, error)
}
