package savedjob

import (
	"context"

	"github.com/google/uuid"

	"github.com/jobraft/backend/pkg/job"
)

// UseCase covers the detail view's save toggle and the saved-jobs list.
type UseCase interface {
	// Save bookmarks a job; saving an already-saved job is a no-op success.
	Save(ctx context.Context, userID, jobID uuid.UUID) error
	// Unsave removes a bookmark; unsaving an unsaved job is a no-op success.
	Unsave(ctx context.Context, userID, jobID uuid.UUID) error
	IsSaved(ctx context.Context, userID, jobID uuid.UUID) (bool, error)
	// Toggle flips the membership and reports the new state.
	Toggle(ctx context.Context, userID, jobID uuid.UUID) (saved bool, err error)
	ListJobs(ctx context.Context, userID uuid.UUID, limit, offset int) ([]job.Job, error)
}

type service struct {
	repo Repository
	jobs job.Repository
}

func NewService(repo Repository, jobs job.Repository) UseCase {
	return &service{repo: repo, jobs: jobs}
}

func (s *service) Save(ctx context.Context, userID, jobID uuid.UUID) error {
	if _, err := s.jobs.GetByID(ctx, jobID); err != nil {
		return err
	}
	return s.repo.Save(ctx, userID, jobID)
}

func (s *service) Unsave(ctx context.Context, userID, jobID uuid.UUID) error {
	return s.repo.Delete(ctx, userID, jobID)
}

func (s *service) IsSaved(ctx context.Context, userID, jobID uuid.UUID) (bool, error) {
	return s.repo.Exists(ctx, userID, jobID)
}

func (s *service) Toggle(ctx context.Context, userID, jobID uuid.UUID) (bool, error) {
	saved, err := s.repo.Exists(ctx, userID, jobID)
	if err != nil {
		return false, err
	}
	if saved {
		if err := s.repo.Delete(ctx, userID, jobID); err != nil {
			return true, err
		}
		return false, nil
	}
	if err := s.Save(ctx, userID, jobID); err != nil {
		return false, err
	}
	return true, nil
}

func (s *service) ListJobs(ctx context.Context, userID uuid.UUID, limit, offset int) ([]job.Job, error) {
	return s.repo.ListJobs(ctx, userID, limit, offset)
}
