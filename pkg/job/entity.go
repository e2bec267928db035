package job

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// EmploymentType is the contract form of a posting.
type EmploymentType string

const (
	FullTime   EmploymentType = "full-time"
	PartTime   EmploymentType = "part-time"
	Contract   EmploymentType = "contract"
	Internship EmploymentType = "internship"
)

func (t EmploymentType) Valid() bool {
	switch t {
	case FullTime, PartTime, Contract, Internship:
		return true
	}
	return false
}

// LocationType says where the work happens.
type LocationType string

const (
	Onsite LocationType = "onsite"
	Hybrid LocationType = "hybrid"
	Remote LocationType = "remote"
)

func (t LocationType) Valid() bool {
	switch t {
	case Onsite, Hybrid, Remote:
		return true
	}
	return false
}

// Job is a posting tied to exactly one company. CompanyName/CompanyLogoURL
// are denormalized by list/detail queries and never written back.
type Job struct {
	ID             uuid.UUID      `json:"id"`
	CompanyID      uuid.UUID      `json:"company_id"`
	Title          string         `json:"title"`
	Description    string         `json:"description"`
	EmploymentType EmploymentType `json:"employment_type"`
	LocationType   LocationType   `json:"location_type"`
	LocationText   string         `json:"location_text,omitempty"`
	MinSalary      *int64         `json:"min_salary"`
	MaxSalary      *int64         `json:"max_salary"`
	Currency       string         `json:"currency"`
	Tags           []string       `json:"tags"`
	IsActive       bool           `json:"is_active"`
	CreatedBy      uuid.UUID      `json:"created_by"`
	CreatedAt      time.Time      `json:"created_at"`

	CompanyName    string `json:"company_name,omitempty"`
	CompanyLogoURL string `json:"company_logo_url,omitempty"`
}

var ErrNotFound = errors.New("job not found")

// Filter narrows the public job list. Zero values mean "any".
type Filter struct {
	Query          string
	EmploymentType EmploymentType
	LocationType   LocationType
	ActiveOnly     bool
	Limit          int
	Offset         int
}

// Repository is the persistence port for jobs.
type Repository interface {
	// Upsert inserts the job or, when the id already exists, republishes it.
	Upsert(ctx context.Context, j Job) (Job, error)
	GetByID(ctx context.Context, id uuid.UUID) (Job, error)
	// List returns jobs newest-first with company name/logo denormalized.
	List(ctx context.Context, f Filter) ([]Job, error)
	ListByCompany(ctx context.Context, companyID uuid.UUID, limit, offset int) ([]Job, error)
}
