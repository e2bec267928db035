package application

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/jobraft/backend/pkg/job"
)

var (
	// ErrAlreadyApplied is the friendly translation of a duplicate submission.
	ErrAlreadyApplied = errors.New("you have already applied to this job")
	// ErrSubmitDenied covers authorization rejections without leaking detail.
	ErrSubmitDenied = errors.New("unable to submit application")
	// ErrNotJobOwner rejects review operations on somebody else's job.
	ErrNotJobOwner = errors.New("job does not belong to caller")
)

// UseCase covers applying and the employer's review flow.
type UseCase interface {
	Apply(ctx context.Context, a Application) (Application, error)
	ListForSeeker(ctx context.Context, seekerID uuid.UUID, limit, offset int) ([]Application, error)
	// ListForJob returns a job's applications to the employer who posted it.
	ListForJob(ctx context.Context, callerID, jobID uuid.UUID, limit, offset int) ([]Application, error)
	// AdvanceStatus moves an application through the review enum.
	AdvanceStatus(ctx context.Context, callerID, id uuid.UUID, status Status) (Application, error)
}

type service struct {
	repo Repository
	jobs job.Repository
}

func NewService(repo Repository, jobs job.Repository) UseCase {
	return &service{repo: repo, jobs: jobs}
}

func (s *service) Apply(ctx context.Context, a Application) (Application, error) {
	if _, err := s.jobs.GetByID(ctx, a.JobID); err != nil {
		return Application{}, err
	}
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	a.Status = StatusSubmitted
	a.AppliedAt = time.Now().UTC()
	if err := s.repo.Create(ctx, a); err != nil {
		switch {
		case errors.Is(err, ErrDuplicate):
			return Application{}, ErrAlreadyApplied
		case errors.Is(err, ErrDenied):
			return Application{}, ErrSubmitDenied
		default:
			return Application{}, err
		}
	}
	return a, nil
}

func (s *service) ListForSeeker(ctx context.Context, seekerID uuid.UUID, limit, offset int) ([]Application, error) {
	return s.repo.ListBySeeker(ctx, seekerID, limit, offset)
}

func (s *service) ListForJob(ctx context.Context, callerID, jobID uuid.UUID, limit, offset int) ([]Application, error) {
	j, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if j.CreatedBy != callerID {
		return nil, ErrNotJobOwner
	}
	return s.repo.ListByJob(ctx, jobID, limit, offset)
}

func (s *service) AdvanceStatus(ctx context.Context, callerID, id uuid.UUID, status Status) (Application, error) {
	if !status.Valid() {
		return Application{}, ErrValidation("unknown status")
	}
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Application{}, err
	}
	j, err := s.jobs.GetByID(ctx, a.JobID)
	if err != nil {
		return Application{}, err
	}
	if j.CreatedBy != callerID {
		return Application{}, ErrNotJobOwner
	}
	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return Application{}, err
	}
	a.Status = status
	return a, nil
}

// ErrValidation is a simple validation error.
type ErrValidation string

func (e ErrValidation) Error() string { return string(e) }
