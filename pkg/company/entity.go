package company

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Company is an employer-owned organization that jobs are posted under.
type Company struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	LogoURL   string    `json:"logo_url,omitempty"`
	Website   string    `json:"website,omitempty"`
	About     string    `json:"about,omitempty"`
	CreatedBy uuid.UUID `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}

var ErrNotFound = errors.New("company not found")

// Repository is the persistence port for companies.
// The data model tolerates several companies per creator; FirstByCreator
// returns the oldest one, which is the dashboard's working assumption.
type Repository interface {
	Create(ctx context.Context, c Company) error
	GetByID(ctx context.Context, id uuid.UUID) (Company, error)
	FirstByCreator(ctx context.Context, userID uuid.UUID) (Company, error)
}
