package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jobraft/backend/pkg/application"
)

// ApplicationRepository implements application.Repository backed by PostgreSQL (pgx).
// The unique index on (job_id, seeker_id) is what turns a repeat submission
// into application.ErrDuplicate.
type ApplicationRepository struct {
	pool *pgxpool.Pool
}

func NewApplicationRepository(pool *pgxpool.Pool) (*ApplicationRepository, error) {
	repo := &ApplicationRepository{pool: pool}
	if err := repo.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return repo, nil
}

func (r *ApplicationRepository) ensureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS applications (
			id UUID PRIMARY KEY,
			job_id UUID NOT NULL REFERENCES jobs(id),
			seeker_id UUID NOT NULL,
			cover_letter TEXT,
			resume_url TEXT,
			status TEXT NOT NULL CHECK (status IN ('submitted', 'reviewed', 'shortlisted', 'rejected', 'hired')),
			applied_at TIMESTAMPTZ NOT NULL,
			UNIQUE (job_id, seeker_id)
		);
		CREATE INDEX IF NOT EXISTS idx_applications_seeker ON applications(seeker_id);
	`)
	return err
}

func (r *ApplicationRepository) Create(ctx context.Context, a application.Application) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO applications (id, job_id, seeker_id, cover_letter, resume_url, status, applied_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, a.ID, a.JobID, a.SeekerID, a.CoverLetter, a.ResumeURL, string(a.Status), a.AppliedAt)
	if err != nil {
		switch {
		case isUniqueViolation(err):
			return application.ErrDuplicate
		case isInsufficientPrivilege(err):
			return application.ErrDenied
		default:
			return err
		}
	}
	return nil
}

func (r *ApplicationRepository) GetByID(ctx context.Context, id uuid.UUID) (application.Application, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, job_id, seeker_id, cover_letter, resume_url, status, applied_at
		FROM applications WHERE id = $1
	`, id)
	return scanApplication(row)
}

func (r *ApplicationRepository) ListBySeeker(ctx context.Context, seekerID uuid.UUID, limit, offset int) ([]application.Application, error) {
	return r.list(ctx, `seeker_id`, seekerID, limit, offset)
}

func (r *ApplicationRepository) ListByJob(ctx context.Context, jobID uuid.UUID, limit, offset int) ([]application.Application, error) {
	return r.list(ctx, `job_id`, jobID, limit, offset)
}

func (r *ApplicationRepository) list(ctx context.Context, column string, key uuid.UUID, limit, offset int) ([]application.Application, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.pool.Query(ctx, `
		SELECT id, job_id, seeker_id, cover_letter, resume_url, status, applied_at
		FROM applications
		WHERE `+column+` = $1
		ORDER BY applied_at DESC
		LIMIT $2 OFFSET $3
	`, key, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	res := []application.Application{}
	for rows.Next() {
		a, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, a)
	}
	return res, rows.Err()
}

func (r *ApplicationRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status application.Status) error {
	cmd, err := r.pool.Exec(ctx, `
		UPDATE applications SET status = $2 WHERE id = $1
	`, id, string(status))
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return application.ErrNotFound
	}
	return nil
}

func scanApplication(row pgx.Row) (application.Application, error) {
	var a application.Application
	var status string
	var applied time.Time
	if err := row.Scan(&a.ID, &a.JobID, &a.SeekerID, &a.CoverLetter, &a.ResumeURL, &status, &applied); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return application.Application{}, application.ErrNotFound
		}
		return application.Application{}, err
	}
	a.Status = application.Status(status)
	a.AppliedAt = applied.UTC()
	return a, nil
}
