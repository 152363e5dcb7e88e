package handler

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	deliverycontext "passport/internal/delivery/context"
	"passport/internal/delivery/http/validator"
	"passport/internal/domain/entity"
	domainerrors "passport/internal/domain/errors"
	mockUsecase "passport/internal/mocks/usecase"
	"passport/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = validator.New()

	return e
}

func newTestAuthHandler(t *testing.T) (*AuthHandler, *mockUsecase.MockAuthUsecase) {
	uc := mockUsecase.NewMockAuthUsecase(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return NewAuthHandler(uc, logger), uc
}

func TestAuthHandler_Register_Success(t *testing.T) {
	h, uc := newTestAuthHandler(t)

	body := `{"full_name":"Test User","email":"test@example.com","phone":"13800000000","city_tier":"tier_1","password":"Password123!"}`
	e := newTestEcho()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	userID := uuid.New()
	uc.EXPECT().
		Register(mock.Anything, &usecase.RegisterInput{
			FullName: "Test User",
			Email:    "test@example.com",
			Phone:    "13800000000",
			CityTier: "tier_1",
			Password: "Password123!",
		}).
		Return(&usecase.AuthOutput{
			AccessToken: "signed_access_token",
			TokenType:   usecase.BearerTokenType,
			User:        &entity.User{ID: userID, Email: "test@example.com", FullName: "Test User"},
		}, nil)

	err := h.Register(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, rec.Code)
	responseBody := rec.Body.String()
	assert.Contains(t, responseBody, `"access_token":"signed_access_token"`)
	assert.Contains(t, responseBody, `"token_type":"bearer"`)
	assert.Contains(t, responseBody, userID.String())
	// The digest never appears in any response shape.
	assert.NotContains(t, responseBody, "password")
}

func TestAuthHandler_Register_MissingEmail(t *testing.T) {
	h, _ := newTestAuthHandler(t)

	body := `{"full_name":"Test User","password":"Password123!"}`
	e := newTestEcho()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.Register(c)

	require.Error(t, err)

	var appErr domainerrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, http.StatusBadRequest, appErr.HTTPCode())
	assert.Equal(t, "VALIDATION_FAILED", appErr.ErrorCode())
}

func TestAuthHandler_Register_EmptyPasswordPassesValidation(t *testing.T) {
	h, uc := newTestAuthHandler(t)

	body := `{"full_name":"Test User","email":"empty@example.com"}`
	e := newTestEcho()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	uc.EXPECT().
		Register(mock.Anything, mock.AnythingOfType("*usecase.RegisterInput")).
		Return(&usecase.AuthOutput{
			AccessToken: "signed_access_token",
			TokenType:   usecase.BearerTokenType,
			User:        &entity.User{ID: uuid.New(), Email: "empty@example.com"},
		}, nil)

	err := h.Register(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestAuthHandler_Register_DuplicateEmailPropagates(t *testing.T) {
	h, uc := newTestAuthHandler(t)

	body := `{"full_name":"Test User","email":"taken@example.com","password":"Password123!"}`
	e := newTestEcho()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	uc.EXPECT().
		Register(mock.Anything, mock.AnythingOfType("*usecase.RegisterInput")).
		Return(nil, domainerrors.ErrEmailAlreadyRegistered.WrapMessage("registration failed"))

	err := h.Register(c)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrEmailAlreadyRegistered))
}

func TestAuthHandler_Login_Success(t *testing.T) {
	h, uc := newTestAuthHandler(t)

	body := `{"email":"test@example.com","password":"Password123!"}`
	e := newTestEcho()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	uc.EXPECT().
		Login(mock.Anything, &usecase.LoginInput{
			Email:    "test@example.com",
			Password: "Password123!",
		}).
		Return(&usecase.AuthOutput{
			AccessToken: "signed_access_token",
			TokenType:   usecase.BearerTokenType,
			User:        &entity.User{ID: uuid.New(), Email: "test@example.com"},
		}, nil)

	err := h.Login(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"token_type":"bearer"`)
}

func TestAuthHandler_Login_InvalidCredentialsPropagates(t *testing.T) {
	h, uc := newTestAuthHandler(t)

	body := `{"email":"test@example.com","password":"wrong"}`
	e := newTestEcho()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	uc.EXPECT().
		Login(mock.Anything, mock.AnythingOfType("*usecase.LoginInput")).
		Return(nil, domainerrors.ErrInvalidCredentials.WrapMessage("login failed"))

	err := h.Login(c)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidCredentials))
}

func TestAuthHandler_Verify_Success(t *testing.T) {
	h, uc := newTestAuthHandler(t)

	e := newTestEcho()
	req := httptest.NewRequest(http.MethodGet, "/api/auth/verify", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	userID := uuid.New()
	deliverycontext.SetUserID(c, userID)

	uc.EXPECT().
		GetUser(mock.Anything, userID).
		Return(&entity.User{ID: userID, Email: "test@example.com"}, nil)

	err := h.Verify(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "test@example.com")
}

func TestAuthHandler_Verify_MissingSubject(t *testing.T) {
	h, _ := newTestAuthHandler(t)

	e := newTestEcho()
	req := httptest.NewRequest(http.MethodGet, "/api/auth/verify", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.Verify(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestHealthCheck(t *testing.T) {
	e := newTestEcho()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := HealthCheck(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}
