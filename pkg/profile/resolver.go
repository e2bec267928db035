package profile

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrNoProfile is returned when no profile could be found or created and no
// role hint exists to fall back on.
var ErrNoProfile = errors.New("no profile for identity")

// UseCase resolves and mutates the profile attached to an identity.
type UseCase interface {
	// Ensure returns the identity's profile, creating it on first resolution.
	// metaRole is the identity-provider role hint captured at sign-up; it
	// picks the role of a freshly created profile and serves as a last-resort
	// fallback when the profile store fails.
	Ensure(ctx context.Context, userID uuid.UUID, metaRole Role, fullName string) (Profile, error)
	// Get is a plain lookup without the creation side effect.
	Get(ctx context.Context, userID uuid.UUID) (Profile, error)
	// Update upserts the user-editable profile fields.
	Update(ctx context.Context, p Profile) (Profile, error)
}

type resolver struct {
	repo Repository
}

// NewResolver returns the default UseCase implementation.
func NewResolver(repo Repository) UseCase { return &resolver{repo: repo} }

// Ensure is a read path with an at-most-once-intended write side effect:
// two concurrent resolutions for the same new identity may both attempt the
// insert; exactly one succeeds, the other observes the conflict and re-reads.
func (r *resolver) Ensure(ctx context.Context, userID uuid.UUID, metaRole Role, fullName string) (Profile, error) {
	p, err := r.repo.GetByUserID(ctx, userID)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return r.fallback(userID, metaRole)
	}

	role := RoleSeeker
	if metaRole.Valid() {
		role = metaRole
	}
	created := Profile{
		UserID:    userID,
		Role:      role,
		FullName:  fullName,
		UpdatedAt: time.Now().UTC(),
	}
	p, err = insertOrRequery(ctx, created, r.repo)
	if err != nil {
		return r.fallback(userID, metaRole)
	}
	return p, nil
}

// insertOrRequery attempts an optimistic insert; on a uniqueness conflict
// (another resolution won the race) it returns the row found by re-reading.
// Any other error is surfaced.
func insertOrRequery(ctx context.Context, p Profile, repo Repository) (Profile, error) {
	err := repo.Create(ctx, p)
	if err == nil {
		return p, nil
	}
	if errors.Is(err, ErrAlreadyExists) {
		return repo.GetByUserID(ctx, p.UserID)
	}
	return Profile{}, err
}

// fallback builds a profile from the sign-up role hint when the store is
// unreachable or denies access. No row is written.
func (r *resolver) fallback(userID uuid.UUID, metaRole Role) (Profile, error) {
	if metaRole.Valid() {
		return Profile{UserID: userID, Role: metaRole}, nil
	}
	return Profile{}, ErrNoProfile
}

func (r *resolver) Get(ctx context.Context, userID uuid.UUID) (Profile, error) {
	return r.repo.GetByUserID(ctx, userID)
}

func (r *resolver) Update(ctx context.Context, p Profile) (Profile, error) {
	if !p.Role.Valid() {
		return Profile{}, ErrValidation("unknown role")
	}
	// Admin is granted out of band. The self-service path may keep an
	// existing admin role but never set it.
	if p.Role == RoleAdmin {
		current, err := r.repo.GetByUserID(ctx, p.UserID)
		if err != nil || current.Role != RoleAdmin {
			return Profile{}, ErrValidation("role admin is not assignable")
		}
	}
	p.UpdatedAt = time.Now().UTC()
	return r.repo.Upsert(ctx, p)
}

// ErrValidation is a simple validation error.
type ErrValidation string

func (e ErrValidation) Error() string { return string(e) }
