package session

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound signals an unknown, expired or revoked refresh session.
var ErrNotFound = errors.New("session not found")

// Session is the server-side record behind an opaque refresh token.
type Session struct {
	UserID    uuid.UUID `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// Store abstracts refresh-session persistence. Implementations must expire
// entries after the given TTL.
type Store interface {
	Save(ctx context.Context, token string, s Session, ttl time.Duration) error
	Get(ctx context.Context, token string) (Session, error)
	// Delete revokes a session; revoking an absent session is not an error.
	Delete(ctx context.Context, token string) error
}
