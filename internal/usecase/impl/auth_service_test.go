package impl

import (
	"context"
	"testing"
	"time"

	"passport/internal/domain/entity"
	"passport/internal/domain/repository"
	"passport/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAuthService_Register_Success(t *testing.T) {
	fx := createTestAuthService(t)

	ctx := context.Background()
	input := &usecase.RegisterInput{
		FullName: "Test User",
		Email:    "test@example.com",
		Phone:    "13800000000",
		CityTier: "tier_1",
		Password: "Password123!",
	}

	fx.userRepo.EXPECT().
		FindByEmail(ctx, input.Email).
		Return(nil, repository.ErrUserNotFound)

	fx.hasher.EXPECT().Hash(input.Password).Return("hashed_password", nil)

	generatedID := uuid.New()
	fx.userRepo.EXPECT().
		Create(ctx, mock.AnythingOfType("*entity.User"), "hashed_password").
		Run(func(ctx context.Context, user *entity.User, passwordHash string) {
			user.ID = generatedID
			user.CreatedAt = time.Now()
			user.UpdatedAt = time.Now()
		}).
		Return(nil)

	fx.tokenService.EXPECT().AccessTokenTTL().Return(15 * time.Minute)
	fx.tokenService.EXPECT().
		Issue(generatedID.String(), 15*time.Minute).
		Return("signed_access_token", nil)

	output, err := fx.service.Register(ctx, input)

	require.NoError(t, err)
	require.NotNil(t, output)
	assert.Equal(t, "signed_access_token", output.AccessToken)
	assert.Equal(t, usecase.BearerTokenType, output.TokenType)
	assert.Equal(t, input.Email, output.User.Email)
	assert.Equal(t, input.FullName, output.User.FullName)
	assert.Equal(t, input.CityTier, output.User.CityTier)
	assert.Equal(t, generatedID, output.User.ID)
}

func TestAuthService_Register_EmptyPasswordAllowed(t *testing.T) {
	fx := createTestAuthService(t)

	ctx := context.Background()
	input := &usecase.RegisterInput{
		FullName: "Test User",
		Email:    "empty@example.com",
		Password: "",
	}

	fx.userRepo.EXPECT().
		FindByEmail(ctx, input.Email).
		Return(nil, repository.ErrUserNotFound)

	// No password policy at this layer: an empty secret hashes like any other.
	fx.hasher.EXPECT().Hash("").Return("hashed_empty", nil)

	generatedID := uuid.New()
	fx.userRepo.EXPECT().
		Create(ctx, mock.AnythingOfType("*entity.User"), "hashed_empty").
		Run(func(ctx context.Context, user *entity.User, passwordHash string) {
			user.ID = generatedID
		}).
		Return(nil)

	fx.tokenService.EXPECT().AccessTokenTTL().Return(15 * time.Minute)
	fx.tokenService.EXPECT().
		Issue(generatedID.String(), 15*time.Minute).
		Return("signed_access_token", nil)

	output, err := fx.service.Register(ctx, input)

	require.NoError(t, err)
	assert.Equal(t, "signed_access_token", output.AccessToken)
}

func TestAuthService_Login_Success(t *testing.T) {
	fx := createTestAuthService(t)

	ctx := context.Background()
	userID := uuid.New()
	input := &usecase.LoginInput{
		Email:    "test@example.com",
		Password: "Password123!",
	}

	credential := &entity.Credential{
		UserID:       userID,
		Email:        input.Email,
		PasswordHash: "stored_hash",
	}

	fx.userRepo.EXPECT().
		FindCredentialByEmail(ctx, input.Email).
		Return(credential, nil)

	fx.hasher.EXPECT().Check(input.Password, credential.PasswordHash).Return(true)

	loggedInUser := &entity.User{
		ID:       userID,
		Email:    input.Email,
		FullName: "Test User",
	}
	fx.userRepo.EXPECT().FindByID(ctx, userID).Return(loggedInUser, nil)

	fx.tokenService.EXPECT().AccessTokenTTL().Return(15 * time.Minute)
	fx.tokenService.EXPECT().
		Issue(userID.String(), 15*time.Minute).
		Return("signed_access_token", nil)

	output, err := fx.service.Login(ctx, input)

	require.NoError(t, err)
	require.NotNil(t, output)
	assert.Equal(t, "signed_access_token", output.AccessToken)
	assert.Equal(t, usecase.BearerTokenType, output.TokenType)
	assert.Equal(t, loggedInUser, output.User)
}

func TestAuthService_GetUser_Success(t *testing.T) {
	fx := createTestAuthService(t)

	ctx := context.Background()
	userID := uuid.New()
	user := &entity.User{ID: userID, Email: "test@example.com"}

	fx.userRepo.EXPECT().FindByID(ctx, userID).Return(user, nil)

	got, err := fx.service.GetUser(ctx, userID)

	require.NoError(t, err)
	assert.Equal(t, user, got)
}
