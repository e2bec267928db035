package job

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jobraft/backend/pkg/company"
)

var (
	// ErrNotCompanyOwner means the posting references a company the caller didn't create.
	ErrNotCompanyOwner = errors.New("company does not belong to caller")
	// ErrNotJobOwner rejects a republish of a posting the caller didn't create.
	ErrNotJobOwner = errors.New("job does not belong to caller")
)

const defaultCurrency = "NGN"

// UseCase encapsulates the job board's posting and browsing behavior.
type UseCase interface {
	// Publish inserts or republishes a posting after type coercion; postings
	// are never deleted, republish (upsert by id) is the only mutation.
	Publish(ctx context.Context, callerID uuid.UUID, j Job) (Job, error)
	GetByID(ctx context.Context, id uuid.UUID) (Job, error)
	List(ctx context.Context, f Filter) ([]Job, error)
	ListByCompany(ctx context.Context, companyID uuid.UUID, limit, offset int) ([]Job, error)
}

type service struct {
	repo      Repository
	companies company.Repository
}

func NewService(repo Repository, companies company.Repository) UseCase {
	return &service{repo: repo, companies: companies}
}

func (s *service) Publish(ctx context.Context, callerID uuid.UUID, j Job) (Job, error) {
	j.Title = strings.TrimSpace(j.Title)
	if j.Title == "" {
		return Job{}, ErrValidation("title is required")
	}
	if strings.TrimSpace(j.Description) == "" {
		return Job{}, ErrValidation("description is required")
	}
	if !j.EmploymentType.Valid() {
		return Job{}, ErrValidation("unknown employment_type")
	}
	if !j.LocationType.Valid() {
		return Job{}, ErrValidation("unknown location_type")
	}

	// A republish targets an existing row; only its creator may overwrite it.
	// The stored company binding and creation time survive the upsert, so the
	// returned job reflects what the database keeps.
	if j.ID != uuid.Nil {
		existing, err := s.repo.GetByID(ctx, j.ID)
		switch {
		case err == nil:
			if existing.CreatedBy != callerID {
				return Job{}, ErrNotJobOwner
			}
			j.CompanyID = existing.CompanyID
			j.CreatedAt = existing.CreatedAt
		case !errors.Is(err, ErrNotFound):
			return Job{}, err
		}
	}

	c, err := s.companies.GetByID(ctx, j.CompanyID)
	if err != nil {
		return Job{}, err
	}
	if c.CreatedBy != callerID {
		return Job{}, ErrNotCompanyOwner
	}

	if j.ID == uuid.Nil {
		j.ID = uuid.New()
	}
	if j.Currency == "" {
		j.Currency = defaultCurrency
	}
	if j.Tags == nil {
		j.Tags = []string{}
	}
	if j.CreatedAt.IsZero() {
		j.CreatedAt = time.Now().UTC()
	}
	j.CreatedBy = callerID
	j.IsActive = true
	return s.repo.Upsert(ctx, j)
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (Job, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, f Filter) ([]Job, error) {
	return s.repo.List(ctx, f)
}

func (s *service) ListByCompany(ctx context.Context, companyID uuid.UUID, limit, offset int) ([]Job, error) {
	return s.repo.ListByCompany(ctx, companyID, limit, offset)
}

// SplitTags turns the form's comma-separated tag field into a clean list.
func SplitTags(raw string) []string {
	parts := strings.Split(raw, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

// ErrValidation is a simple validation error.
type ErrValidation string

func (e ErrValidation) Error() string { return string(e) }
