// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"passport/internal/domain/entity"

	"github.com/google/uuid"
)

// BearerTokenType is the token_type value returned with every issued credential.
const BearerTokenType = "bearer"

// --- Input DTOs ---

// RegisterInput defines the data required to register a new user.
// FullName, Phone and CityTier are intake attributes stored verbatim;
// only Email and Password participate in authentication.
type RegisterInput struct {
	FullName string
	Email    string
	Phone    string
	CityTier string
	Password string
}

// LoginInput defines the data required for a user to log in.
type LoginInput struct {
	Email    string
	Password string
}

// --- Output DTOs ---

// AuthOutput returns the issued bearer token together with the user it
// authenticates. Both registration and login produce the same shape.
type AuthOutput struct {
	AccessToken string
	TokenType   string
	User        *entity.User
}

// AuthUsecase defines the interface for authentication business operations.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type AuthUsecase interface {
	Register(ctx context.Context, input *RegisterInput) (*AuthOutput, error)
	Login(ctx context.Context, input *LoginInput) (*AuthOutput, error)
	GetUser(ctx context.Context, userID uuid.UUID) (*entity.User, error)
}
