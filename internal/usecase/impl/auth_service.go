// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"

	deliverycontext "passport/internal/delivery/context"
	"passport/internal/domain/entity"
	domainerrors "passport/internal/domain/errors"
	"passport/internal/domain/repository"
	"passport/internal/domain/service"
	"passport/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// dummyPasswordDigest is a valid bcrypt digest of the string "password".
// When a login targets an unknown email we still burn one bcrypt comparison
// against it, so the unknown-email and wrong-password paths take roughly the
// same time and the response cannot be used to probe which emails exist.
const dummyPasswordDigest = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// authService implements the AuthUsecase interface.
type authService struct {
	userRepo     repository.UserRepository
	hasher       service.PasswordHasher
	tokenService service.TokenService
	logger       *slog.Logger
}

// AuthServiceParams holds dependencies for authService, injected by Fx.
type AuthServiceParams struct {
	fx.In

	UserRepo     repository.UserRepository
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	Logger       *slog.Logger
}

// NewAuthService is the constructor for authService. It receives all dependencies as interfaces.
func NewAuthService(params AuthServiceParams) usecase.AuthUsecase {
	return &authService{
		userRepo:     params.UserRepo,
		hasher:       params.Hasher,
		tokenService: params.TokenService,
		logger:       params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *authService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register orchestrates the complete user registration process.
// The existence check runs before the expensive hash so that duplicate
// registrations fail fast; the unique index on email remains the final
// arbiter for requests that race past the check.
func (srv *authService) Register(ctx context.Context, input *usecase.RegisterInput) (*usecase.AuthOutput, error) {
	srv.log(ctx).Info("Starting registration", slog.String("email", input.Email))

	_, err := srv.userRepo.FindByEmail(ctx, input.Email)
	if err == nil {
		srv.log(ctx).Warn("Registration rejected, email taken", slog.String("email", input.Email))

		return nil, domainerrors.ErrEmailAlreadyRegistered.WrapMessage("registration failed")
	}
	if !errors.Is(err, repository.ErrUserNotFound) {
		srv.log(ctx).Error("Failed to check email availability", slog.String("email", input.Email), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to check email availability")
	}

	// Hash outside any transaction; bcrypt is CPU-bound and must never hold
	// a database connection or lock while it runs.
	hashedPassword, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.log(ctx).Error("Failed to hash password during registration", slog.Any("error", err))

		return nil, domainerrors.ErrPasswordHashFailed.WrapMessage("failed to hash password during registration")
	}

	newUser := &entity.User{
		Email:    input.Email,
		FullName: input.FullName,
		Phone:    input.Phone,
		CityTier: input.CityTier,
	}

	if err := srv.userRepo.Create(ctx, newUser, hashedPassword); err != nil {
		srv.log(ctx).Error("Failed to create user during registration", slog.String("email", input.Email), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to create user during registration")
	}

	output, err := srv.buildAuthOutput(newUser)
	if err != nil {
		srv.log(ctx).Error("Failed to issue token after registration", slog.Any("userID", newUser.ID), slog.Any("error", err))

		return nil, err
	}

	srv.log(ctx).Debug("Registration completed", slog.Any("userID", newUser.ID))

	return output, nil
}

// Login orchestrates the user login process.
// Unknown email and wrong password both collapse into the same invalid
// credentials error, after comparable amounts of work.
func (srv *authService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.AuthOutput, error) {
	srv.log(ctx).Debug("Starting user login", slog.String("email", input.Email))

	credential, err := srv.userRepo.FindCredentialByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			// Burn the bcrypt comparison the known-email path would have paid.
			srv.hasher.Check(input.Password, dummyPasswordDigest)
			srv.log(ctx).Warn("Login failed", slog.String("email", input.Email), slog.Any("error", domainerrors.ErrInvalidCredentials))

			return nil, domainerrors.ErrInvalidCredentials.WrapMessage("login failed")
		}
		srv.log(ctx).Error("Failed to load credential", slog.String("email", input.Email), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to load credential for login")
	}

	if !srv.hasher.Check(input.Password, credential.PasswordHash) {
		srv.log(ctx).Warn("Login failed", slog.String("email", input.Email), slog.Any("error", domainerrors.ErrInvalidCredentials))

		return nil, domainerrors.ErrInvalidCredentials.WrapMessage("login failed")
	}

	loggedInUser, err := srv.userRepo.FindByID(ctx, credential.UserID)
	if err != nil {
		srv.log(ctx).Error("Failed to load user after password check", slog.Any("userID", credential.UserID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to load user for login")
	}

	output, err := srv.buildAuthOutput(loggedInUser)
	if err != nil {
		srv.log(ctx).Error("Failed to issue token during login", slog.Any("userID", loggedInUser.ID), slog.Any("error", err))

		return nil, err
	}

	srv.log(ctx).Debug("User logged in successfully", slog.Any("userID", loggedInUser.ID))

	return output, nil
}

// GetUser resolves the subject of a verified token back to its user record.
func (srv *authService) GetUser(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	user, err := srv.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrUserNotFound.WrapMessage("token subject no longer exists")
		}

		return nil, errors.Wrap(err, "failed to load user")
	}

	return user, nil
}

// buildAuthOutput issues a fresh access token for the user and wraps it in the
// shared output shape used by both registration and login.
func (srv *authService) buildAuthOutput(user *entity.User) (*usecase.AuthOutput, error) {
	accessToken, err := srv.tokenService.Issue(user.ID.String(), srv.tokenService.AccessTokenTTL())
	if err != nil {
		return nil, domainerrors.ErrTokenIssueFailed.WrapMessage("failed to issue access token")
	}

	return &usecase.AuthOutput{
		AccessToken: accessToken,
		TokenType:   usecase.BearerTokenType,
		User:        user,
	}, nil
}
