package auth

import (
	"strings"
	"testing"
	"time"

	"passport/config"
	domainerrors "passport/internal/domain/errors"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJWTConfig(secret string) *config.Config {
	cfg := &config.Config{}
	cfg.SecretKey.Access = secret

	return cfg
}

func TestJWTService_IssueAndVerify(t *testing.T) {
	jwtService, err := NewJWTService(newTestJWTConfig("test_access_secret_key_very_long_for_testing"))
	require.NoError(t, err)
	require.NotNil(t, jwtService)

	subject := uuid.New().String()

	token, err := jwtService.Issue(subject, time.Minute)
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	// The subject comes back unchanged right after issuance.
	got, err := jwtService.Verify(token)
	assert.NoError(t, err)
	assert.Equal(t, subject, got)
}

func TestJWTService_VerifyExpired(t *testing.T) {
	jwtService, err := NewJWTService(newTestJWTConfig("test_access_secret_key_very_long_for_testing"))
	require.NoError(t, err)

	token, err := jwtService.Issue(uuid.New().String(), -time.Minute)
	require.NoError(t, err)

	got, err := jwtService.Verify(token)
	assert.Error(t, err)
	assert.Empty(t, got)
	assert.True(t, errors.Is(err, domainerrors.ErrTokenExpired))
}

func TestJWTService_VerifyTampered(t *testing.T) {
	jwtService, err := NewJWTService(newTestJWTConfig("test_access_secret_key_very_long_for_testing"))
	require.NoError(t, err)

	token, err := jwtService.Issue(uuid.New().String(), time.Minute)
	require.NoError(t, err)
	other, err := jwtService.Issue(uuid.New().String(), time.Minute)
	require.NoError(t, err)

	// Graft another token's signature onto this payload; the structure stays
	// parseable but the signature no longer covers the claims.
	parts := strings.Split(token, ".")
	otherParts := strings.Split(other, ".")
	require.Len(t, parts, 3)
	tampered := strings.Join([]string{parts[0], parts[1], otherParts[2]}, ".")

	got, err := jwtService.Verify(tampered)
	assert.Error(t, err)
	assert.Empty(t, got)
	assert.True(t, errors.Is(err, domainerrors.ErrTokenSignatureInvalid))
}

func TestJWTService_VerifyWrongKey(t *testing.T) {
	issuer, err := NewJWTService(newTestJWTConfig("issuer_secret_key_very_long_for_testing"))
	require.NoError(t, err)
	verifier, err := NewJWTService(newTestJWTConfig("different_secret_key_very_long_for_testing"))
	require.NoError(t, err)

	token, err := issuer.Issue(uuid.New().String(), time.Minute)
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	assert.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrTokenSignatureInvalid))
}

func TestJWTService_VerifyMalformed(t *testing.T) {
	jwtService, err := NewJWTService(newTestJWTConfig("test_access_secret_key_very_long_for_testing"))
	require.NoError(t, err)

	got, err := jwtService.Verify("clearly-not-a-jwt-token-format")
	assert.Error(t, err)
	assert.Empty(t, got)
	assert.True(t, errors.Is(err, domainerrors.ErrTokenMalformed))
}

func TestJWTService_EmptySecret(t *testing.T) {
	jwtService, err := NewJWTService(newTestJWTConfig(""))
	assert.Error(t, err)
	assert.Nil(t, jwtService)
	assert.Contains(t, err.Error(), "jwt secret must be provided")
}

func TestJWTService_AccessTokenTTL(t *testing.T) {
	cfg := newTestJWTConfig("test_access_secret_key_very_long_for_testing")
	cfg.Auth = &config.AuthConfig{AccessTokenTTL: time.Hour}

	jwtService, err := NewJWTService(cfg)
	require.NoError(t, err)
	assert.Equal(t, time.Hour, jwtService.AccessTokenTTL())

	// Falls back to the default when not configured.
	jwtService, err = NewJWTService(newTestJWTConfig("test_access_secret_key_very_long_for_testing"))
	require.NoError(t, err)
	assert.Equal(t, defaultAccessTokenTTL, jwtService.AccessTokenTTL())
}
