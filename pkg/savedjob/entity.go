package savedjob

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jobraft/backend/pkg/job"
)

// SavedJob is a bookmark membership: a set keyed by (user, job), no
// independent lifecycle beyond insert/delete.
type SavedJob struct {
	UserID    uuid.UUID `json:"user_id"`
	JobID     uuid.UUID `json:"job_id"`
	CreatedAt time.Time `json:"created_at"`
}

// Repository is the persistence port for bookmarks. Save must tolerate a
// duplicate insert (set semantics) and Delete must tolerate an absent row.
type Repository interface {
	Save(ctx context.Context, userID, jobID uuid.UUID) error
	Delete(ctx context.Context, userID, jobID uuid.UUID) error
	Exists(ctx context.Context, userID, jobID uuid.UUID) (bool, error)
	ListJobs(ctx context.Context, userID uuid.UUID, limit, offset int) ([]job.Job, error)
}
