package auth

import (
	"time"

	"github.com/google/uuid"

	"github.com/jobraft/backend/pkg/profile"
)

// User is a domain entity representing an identity known to the auth layer.
// MetaRole is the role hint chosen at sign-up ("I am an employer"); the
// profile row, not this field, is authoritative for authorization.
type User struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	MetaRole     profile.Role
	CreatedAt    time.Time
}
