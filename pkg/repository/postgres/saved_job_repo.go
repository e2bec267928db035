package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jobraft/backend/pkg/job"
)

// SavedJobRepository implements savedjob.Repository backed by PostgreSQL (pgx).
// Membership is a set: ON CONFLICT DO NOTHING swallows a duplicate save, a
// delete of an absent row affects zero rows and is still a success.
type SavedJobRepository struct {
	pool *pgxpool.Pool
}

func NewSavedJobRepository(pool *pgxpool.Pool) (*SavedJobRepository, error) {
	repo := &SavedJobRepository{pool: pool}
	if err := repo.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return repo, nil
}

func (r *SavedJobRepository) ensureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS saved_jobs (
			user_id UUID NOT NULL,
			job_id UUID NOT NULL REFERENCES jobs(id) ON DELETE CASCADE,
			created_at TIMESTAMPTZ NOT NULL,
			PRIMARY KEY (user_id, job_id)
		);
	`)
	return err
}

func (r *SavedJobRepository) Save(ctx context.Context, userID, jobID uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO saved_jobs (user_id, job_id, created_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, job_id) DO NOTHING
	`, userID, jobID, time.Now().UTC())
	return err
}

func (r *SavedJobRepository) Delete(ctx context.Context, userID, jobID uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `
		DELETE FROM saved_jobs WHERE user_id = $1 AND job_id = $2
	`, userID, jobID)
	return err
}

func (r *SavedJobRepository) Exists(ctx context.Context, userID, jobID uuid.UUID) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM saved_jobs WHERE user_id = $1 AND job_id = $2)
	`, userID, jobID).Scan(&exists)
	return exists, err
}

func (r *SavedJobRepository) ListJobs(ctx context.Context, userID uuid.UUID, limit, offset int) ([]job.Job, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.pool.Query(ctx, `
		SELECT `+jobColumns+`
		FROM saved_jobs s
		JOIN jobs j ON j.id = s.job_id
		JOIN companies c ON c.id = j.company_id
		WHERE s.user_id = $1
		ORDER BY s.created_at DESC
		LIMIT $2 OFFSET $3
	`, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectJobs(rows)
}
