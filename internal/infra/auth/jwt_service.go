// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"

	"passport/config"
	domainerrors "passport/internal/domain/errors"
	"passport/internal/domain/service"
)

const defaultAccessTokenTTL = 15 * time.Minute

// jwtService is a concrete implementation of the TokenService interface using the JWT standard.
// Tokens are HS256-signed with a single process-wide secret and carry the
// registered claims sub, iat and exp, so any verifier holding the shared key
// can validate them independently.
type jwtService struct {
	secret    string
	accessTTL time.Duration
}

// NewJWTService is the constructor for jwtService.
// It takes configuration values to create a new token service instance.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	if cfg.SecretKey.Access == "" {
		return nil, errors.New("jwt secret must be provided")
	}

	accessTTL := defaultAccessTokenTTL
	if cfg.Auth != nil && cfg.Auth.AccessTokenTTL > 0 {
		accessTTL = cfg.Auth.AccessTokenTTL
	}

	return &jwtService{
		secret:    cfg.SecretKey.Access,
		accessTTL: accessTTL,
	}, nil
}

// Issue creates a signed token whose payload embeds the subject and an
// absolute expiry of now + ttl.
func (s *jwtService) Issue(subject string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString([]byte(s.secret))
	if err != nil {
		return "", errors.Wrap(err, "failed to sign token")
	}

	return signed, nil
}

// Verify checks the token's signature and expiry and returns the embedded subject.
// Parse failures are mapped onto the domain token error taxonomy so the caller
// can distinguish a garbled token from a forged or stale one.
func (s *jwtService) Verify(tokenString string) (string, error) {
	claims := &jwt.RegisteredClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}

		return []byte(s.secret), nil
	})

	switch {
	case err == nil && token.Valid:
		return claims.Subject, nil
	case errors.Is(err, jwt.ErrTokenMalformed):
		return "", domainerrors.ErrTokenMalformed.WrapMessage("failed to parse token structure")
	case errors.Is(err, jwt.ErrTokenExpired):
		return "", domainerrors.ErrTokenExpired.WrapMessage("token is past its expiry")
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return "", domainerrors.ErrTokenSignatureInvalid.WrapMessage("token signature mismatch")
	default:
		return "", domainerrors.ErrTokenMalformed.WrapMessage("token verification failed")
	}
}

// AccessTokenTTL returns the configured lifetime for issued access tokens.
func (s *jwtService) AccessTokenTTL() time.Duration {
	return s.accessTTL
}
