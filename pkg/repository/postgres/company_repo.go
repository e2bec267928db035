package postgres

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jobraft/backend/pkg/company"
)

// CompanyRepository implements company.Repository backed by PostgreSQL (pgx).
type CompanyRepository struct {
	pool *pgxpool.Pool
}

func NewCompanyRepository(pool *pgxpool.Pool) (*CompanyRepository, error) {
	repo := &CompanyRepository{pool: pool}
	if err := repo.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return repo, nil
}

func (r *CompanyRepository) ensureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS companies (
			id UUID PRIMARY KEY,
			name TEXT NOT NULL,
			logo_url TEXT NOT NULL DEFAULT '',
			website TEXT NOT NULL DEFAULT '',
			about TEXT NOT NULL DEFAULT '',
			created_by UUID NOT NULL,
			created_at TIMESTAMPTZ NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_companies_created_by ON companies(created_by);
	`)
	return err
}

func (r *CompanyRepository) Create(ctx context.Context, c company.Company) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO companies (id, name, logo_url, website, about, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, c.ID, strings.TrimSpace(c.Name), c.LogoURL, c.Website, c.About, c.CreatedBy, c.CreatedAt)
	return err
}

func (r *CompanyRepository) GetByID(ctx context.Context, id uuid.UUID) (company.Company, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, name, logo_url, website, about, created_by, created_at
		FROM companies WHERE id = $1
	`, id)
	return scanCompany(row)
}

// FirstByCreator returns the oldest company the user created; the dashboard
// assumes at most one and sticks to the first match.
func (r *CompanyRepository) FirstByCreator(ctx context.Context, userID uuid.UUID) (company.Company, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, name, logo_url, website, about, created_by, created_at
		FROM companies WHERE created_by = $1
		ORDER BY created_at ASC
		LIMIT 1
	`, userID)
	return scanCompany(row)
}

func scanCompany(row pgx.Row) (company.Company, error) {
	var c company.Company
	var created time.Time
	if err := row.Scan(&c.ID, &c.Name, &c.LogoURL, &c.Website, &c.About, &c.CreatedBy, &created); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return company.Company{}, company.ErrNotFound
		}
		return company.Company{}, err
	}
	c.CreatedAt = created.UTC()
	return c, nil
}
