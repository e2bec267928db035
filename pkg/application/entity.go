package application

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Status of an application as it moves through review.
type Status string

const (
	StatusSubmitted   Status = "submitted"
	StatusReviewed    Status = "reviewed"
	StatusShortlisted Status = "shortlisted"
	StatusRejected    Status = "rejected"
	StatusHired       Status = "hired"
)

func (s Status) Valid() bool {
	switch s {
	case StatusSubmitted, StatusReviewed, StatusShortlisted, StatusRejected, StatusHired:
		return true
	}
	return false
}

// Application is unique per (job, seeker) pair; a repeat submission is a
// user-facing "already applied" condition, not a failure.
type Application struct {
	ID          uuid.UUID `json:"id"`
	JobID       uuid.UUID `json:"job_id"`
	SeekerID    uuid.UUID `json:"seeker_id"`
	CoverLetter *string   `json:"cover_letter"`
	ResumeURL   *string   `json:"resume_url"`
	Status      Status    `json:"status"`
	AppliedAt   time.Time `json:"applied_at"`
}

var (
	ErrNotFound = errors.New("application not found")
	// ErrDuplicate is the repository-level uniqueness conflict.
	ErrDuplicate = errors.New("application already exists")
	// ErrDenied is the repository-level authorization rejection.
	ErrDenied = errors.New("application write denied")
)

// Repository is the persistence port for applications.
type Repository interface {
	Create(ctx context.Context, a Application) error
	GetByID(ctx context.Context, id uuid.UUID) (Application, error)
	ListBySeeker(ctx context.Context, seekerID uuid.UUID, limit, offset int) ([]Application, error)
	ListByJob(ctx context.Context, jobID uuid.UUID, limit, offset int) ([]Application, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error
}
