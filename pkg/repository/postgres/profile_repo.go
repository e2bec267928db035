package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jobraft/backend/pkg/profile"
)

// ProfileRepository implements profile.Repository backed by PostgreSQL (pgx).
// Profiles are keyed canonically by user_id.
type ProfileRepository struct {
	pool *pgxpool.Pool
}

func NewProfileRepository(pool *pgxpool.Pool) (*ProfileRepository, error) {
	repo := &ProfileRepository{pool: pool}
	if err := repo.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return repo, nil
}

func (r *ProfileRepository) ensureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS profiles (
			user_id UUID PRIMARY KEY REFERENCES users(id) ON DELETE CASCADE,
			role TEXT NOT NULL CHECK (role IN ('seeker', 'employer', 'admin')),
			full_name TEXT NOT NULL DEFAULT '',
			headline TEXT NOT NULL DEFAULT '',
			location TEXT NOT NULL DEFAULT '',
			avatar_url TEXT NOT NULL DEFAULT '',
			company_id UUID,
			updated_at TIMESTAMPTZ NOT NULL
		);
	`)
	return err
}

func (r *ProfileRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (profile.Profile, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT user_id, role, full_name, headline, location, avatar_url, company_id, updated_at
		FROM profiles WHERE user_id = $1
	`, userID)
	return scanProfile(row)
}

func (r *ProfileRepository) Create(ctx context.Context, p profile.Profile) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO profiles (user_id, role, full_name, headline, location, avatar_url, company_id, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, p.UserID, string(p.Role), p.FullName, p.Headline, p.Location, p.AvatarURL, p.CompanyID, p.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return profile.ErrAlreadyExists
		}
		return err
	}
	return nil
}

func (r *ProfileRepository) Upsert(ctx context.Context, p profile.Profile) (profile.Profile, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO profiles (user_id, role, full_name, headline, location, avatar_url, company_id, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (user_id) DO UPDATE SET
			role = EXCLUDED.role,
			full_name = EXCLUDED.full_name,
			headline = EXCLUDED.headline,
			location = EXCLUDED.location,
			avatar_url = EXCLUDED.avatar_url,
			company_id = EXCLUDED.company_id,
			updated_at = EXCLUDED.updated_at
		RETURNING user_id, role, full_name, headline, location, avatar_url, company_id, updated_at
	`, p.UserID, string(p.Role), p.FullName, p.Headline, p.Location, p.AvatarURL, p.CompanyID, p.UpdatedAt)
	return scanProfile(row)
}

func scanProfile(row pgx.Row) (profile.Profile, error) {
	var p profile.Profile
	var role string
	var updated time.Time
	if err := row.Scan(&p.UserID, &role, &p.FullName, &p.Headline, &p.Location, &p.AvatarURL, &p.CompanyID, &updated); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return profile.Profile{}, profile.ErrNotFound
		}
		return profile.Profile{}, err
	}
	p.Role = profile.Role(role)
	p.UpdatedAt = updated.UTC()
	return p, nil
}
