package profile

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// Common errors used by repository/resolver
var (
	ErrNotFound      = errors.New("profile not found")
	ErrAlreadyExists = errors.New("profile already exists")
)

// Repository abstracts persistence concerns from the resolver.
type Repository interface {
	GetByUserID(ctx context.Context, userID uuid.UUID) (Profile, error)
	// Create must return ErrAlreadyExists on a unique-key conflict so the
	// resolver can fall back to a re-read instead of failing.
	Create(ctx context.Context, p Profile) error
	// Upsert inserts or updates the row keyed by user_id.
	Upsert(ctx context.Context, p Profile) (Profile, error)
}
