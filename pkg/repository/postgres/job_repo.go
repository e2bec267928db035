package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jobraft/backend/pkg/job"
)

// JobRepository implements job.Repository backed by PostgreSQL (pgx).
// Reads denormalize the company name/logo for list and detail views.
type JobRepository struct {
	pool *pgxpool.Pool
}

func NewJobRepository(pool *pgxpool.Pool) (*JobRepository, error) {
	repo := &JobRepository{pool: pool}
	if err := repo.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return repo, nil
}

func (r *JobRepository) ensureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS jobs (
			id UUID PRIMARY KEY,
			company_id UUID NOT NULL REFERENCES companies(id),
			title TEXT NOT NULL,
			description TEXT NOT NULL,
			employment_type TEXT NOT NULL CHECK (employment_type IN ('full-time', 'part-time', 'contract', 'internship')),
			location_type TEXT NOT NULL CHECK (location_type IN ('onsite', 'hybrid', 'remote')),
			location_text TEXT NOT NULL DEFAULT '',
			min_salary BIGINT,
			max_salary BIGINT,
			currency TEXT NOT NULL,
			tags TEXT[] NOT NULL DEFAULT '{}',
			is_active BOOLEAN NOT NULL DEFAULT TRUE,
			created_by UUID NOT NULL,
			created_at TIMESTAMPTZ NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_jobs_company ON jobs(company_id);
		CREATE INDEX IF NOT EXISTS idx_jobs_created_at ON jobs(created_at DESC);
	`)
	return err
}

const jobColumns = `
	j.id, j.company_id, j.title, j.description, j.employment_type, j.location_type,
	j.location_text, j.min_salary, j.max_salary, j.currency, j.tags, j.is_active,
	j.created_by, j.created_at, c.name, c.logo_url`

// Upsert inserts the job or republishes it when the id already exists. The
// conflict branch never touches company_id/created_by/created_at, so the
// stored row is read back with RETURNING instead of echoing the input.
func (r *JobRepository) Upsert(ctx context.Context, j job.Job) (job.Job, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO jobs (id, company_id, title, description, employment_type, location_type,
			location_text, min_salary, max_salary, currency, tags, is_active, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			description = EXCLUDED.description,
			employment_type = EXCLUDED.employment_type,
			location_type = EXCLUDED.location_type,
			location_text = EXCLUDED.location_text,
			min_salary = EXCLUDED.min_salary,
			max_salary = EXCLUDED.max_salary,
			currency = EXCLUDED.currency,
			tags = EXCLUDED.tags,
			is_active = EXCLUDED.is_active
		RETURNING id, company_id, title, description, employment_type, location_type,
			location_text, min_salary, max_salary, currency, tags, is_active, created_by, created_at
	`, j.ID, j.CompanyID, j.Title, j.Description, string(j.EmploymentType), string(j.LocationType),
		j.LocationText, j.MinSalary, j.MaxSalary, j.Currency, j.Tags, j.IsActive, j.CreatedBy, j.CreatedAt)

	var stored job.Job
	var employmentType, locationType string
	var created time.Time
	if err := row.Scan(
		&stored.ID, &stored.CompanyID, &stored.Title, &stored.Description, &employmentType, &locationType,
		&stored.LocationText, &stored.MinSalary, &stored.MaxSalary, &stored.Currency, &stored.Tags,
		&stored.IsActive, &stored.CreatedBy, &created,
	); err != nil {
		return job.Job{}, err
	}
	stored.EmploymentType = job.EmploymentType(employmentType)
	stored.LocationType = job.LocationType(locationType)
	stored.CreatedAt = created.UTC()
	return stored, nil
}

func (r *JobRepository) GetByID(ctx context.Context, id uuid.UUID) (job.Job, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+jobColumns+`
		FROM jobs j
		JOIN companies c ON c.id = j.company_id
		WHERE j.id = $1
	`, id)
	return scanJob(row)
}

func (r *JobRepository) List(ctx context.Context, f job.Filter) ([]job.Job, error) {
	if f.Limit <= 0 {
		f.Limit = 50
	}
	where := []string{"TRUE"}
	args := []any{}
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}
	if q := strings.TrimSpace(f.Query); q != "" {
		where = append(where, "j.title ILIKE "+arg("%"+q+"%"))
	}
	if f.EmploymentType != "" {
		where = append(where, "j.employment_type = "+arg(string(f.EmploymentType)))
	}
	if f.LocationType != "" {
		where = append(where, "j.location_type = "+arg(string(f.LocationType)))
	}
	if f.ActiveOnly {
		where = append(where, "j.is_active")
	}
	query := `
		SELECT ` + jobColumns + `
		FROM jobs j
		JOIN companies c ON c.id = j.company_id
		WHERE ` + strings.Join(where, " AND ") + `
		ORDER BY j.created_at DESC
		LIMIT ` + arg(f.Limit) + ` OFFSET ` + arg(f.Offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectJobs(rows)
}

func (r *JobRepository) ListByCompany(ctx context.Context, companyID uuid.UUID, limit, offset int) ([]job.Job, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.pool.Query(ctx, `
		SELECT `+jobColumns+`
		FROM jobs j
		JOIN companies c ON c.id = j.company_id
		WHERE j.company_id = $1
		ORDER BY j.created_at DESC
		LIMIT $2 OFFSET $3
	`, companyID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectJobs(rows)
}

func collectJobs(rows pgx.Rows) ([]job.Job, error) {
	res := []job.Job{}
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, j)
	}
	return res, rows.Err()
}

func scanJob(row pgx.Row) (job.Job, error) {
	var j job.Job
	var employmentType, locationType string
	var created time.Time
	if err := row.Scan(
		&j.ID, &j.CompanyID, &j.Title, &j.Description, &employmentType, &locationType,
		&j.LocationText, &j.MinSalary, &j.MaxSalary, &j.Currency, &j.Tags, &j.IsActive,
		&j.CreatedBy, &created, &j.CompanyName, &j.CompanyLogoURL,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return job.Job{}, job.ErrNotFound
		}
		return job.Job{}, err
	}
	j.EmploymentType = job.EmploymentType(employmentType)
	j.LocationType = job.LocationType(locationType)
	j.CreatedAt = created.UTC()
	return j, nil
}
