// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is the core entity in the system, representing a registered account.
// It deliberately has no password field of any kind: the stored digest lives on
// Credential and the plaintext secret is discarded right after hashing, so no
// code path can serialize either through a User.
type User struct {
	ID        uuid.UUID `json:"id"`        // The unique identifier for the user, generated by the storage layer.
	Email     string    `json:"email"`     // The user's login identifier. Unique, compared as an exact string.
	FullName  string    `json:"full_name"` // The user's display name, collected at registration.
	Phone     string    `json:"phone"`     // Optional contact number, passed through from the registration form.
	CityTier  string    `json:"city_tier"` // Credit-segmentation tier of the user's city, passed through from the registration form.
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Credential is the password-bearing view of an account, visible only to the
// login path. It is never serialized outbound.
type Credential struct {
	UserID       uuid.UUID // Links this credential to the User it authenticates.
	Email        string    // The login identifier the credential was looked up by.
	PasswordHash string    // The bcrypt digest of the user's secret. Opaque, salt embedded.
}
