package company

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

// UseCase covers the employer dashboard's company needs.
type UseCase interface {
	Create(ctx context.Context, c Company) (Company, error)
	// MyCompany returns the caller's company, ErrNotFound when none exists
	// yet (the dashboard then offers creation instead of job posting).
	MyCompany(ctx context.Context, userID uuid.UUID) (Company, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) UseCase { return &service{repo: repo} }

func (s *service) Create(ctx context.Context, c Company) (Company, error) {
	c.Name = strings.TrimSpace(c.Name)
	if c.Name == "" {
		return Company{}, ErrValidation("company name is required")
	}
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return Company{}, err
	}
	return c, nil
}

func (s *service) MyCompany(ctx context.Context, userID uuid.UUID) (Company, error) {
	return s.repo.FirstByCreator(ctx, userID)
}

// ErrValidation is a simple validation error.
type ErrValidation string

func (e ErrValidation) Error() string { return string(e) }
