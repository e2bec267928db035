package postgres

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jobraft/backend/pkg/auth"
	"github.com/jobraft/backend/pkg/profile"
)

// UserRepository implements auth.UserRepository backed by PostgreSQL (pgx).
type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) (*UserRepository, error) {
	repo := &UserRepository{pool: pool}
	if err := repo.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return repo, nil
}

func (r *UserRepository) ensureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY,
			email TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			meta_role TEXT,
			created_at TIMESTAMPTZ NOT NULL
		);
		-- backfill for older schemas
		ALTER TABLE users ADD COLUMN IF NOT EXISTS meta_role TEXT;
	`)
	return err
}

func (r *UserRepository) Create(ctx context.Context, user auth.User) error {
	var metaRole *string
	if user.MetaRole != "" {
		s := string(user.MetaRole)
		metaRole = &s
	}
	_, err := r.pool.Exec(ctx, `
		INSERT INTO users (id, email, password_hash, meta_role, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, user.ID, strings.ToLower(user.Email), user.PasswordHash, metaRole, user.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return auth.ErrUserAlreadyExists
		}
		return err
	}
	return nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (auth.User, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, email, password_hash, meta_role, created_at
		FROM users WHERE email = $1
	`, strings.ToLower(email))
	return scanUser(row)
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (auth.User, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, email, password_hash, meta_role, created_at
		FROM users WHERE id = $1
	`, id)
	return scanUser(row)
}

func scanUser(row pgx.Row) (auth.User, error) {
	var user auth.User
	var metaRole *string
	var createdAt time.Time
	if err := row.Scan(&user.ID, &user.Email, &user.PasswordHash, &metaRole, &createdAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return auth.User{}, auth.ErrNotFound
		}
		return auth.User{}, err
	}
	if metaRole != nil {
		user.MetaRole = profile.Role(*metaRole)
	}
	user.CreatedAt = createdAt.UTC()
	return user, nil
}
