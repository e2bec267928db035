package job

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jobraft/backend/pkg/company"
)

func TestService_PublishDefaultsAndUpsert(t *testing.T) {
	companies := newFakeCompanyRepo()
	owner := uuid.New()
	c := companies.add(owner)
	repo := newFakeJobRepo()
	svc := NewService(repo, companies)

	ctx := context.Background()
	j, err := svc.Publish(ctx, owner, Job{
		CompanyID:      c.ID,
		Title:          "  Go Developer ",
		Description:    "Build the backend.",
		EmploymentType: FullTime,
		LocationType:   Remote,
	})
	require.NoError(t, err)
	assert.Equal(t, "NGN", j.Currency)
	assert.True(t, j.IsActive)
	assert.Equal(t, "Go Developer", j.Title)
	assert.NotNil(t, j.Tags)

	// Republish keeps the id: upsert, not a second row.
	j.Description = "Build and run the backend."
	again, err := svc.Publish(ctx, owner, j)
	require.NoError(t, err)
	assert.Equal(t, j.ID, again.ID)
	assert.Equal(t, 1, repo.count())
}

func TestService_PublishValidation(t *testing.T) {
	companies := newFakeCompanyRepo()
	owner := uuid.New()
	c := companies.add(owner)
	svc := NewService(newFakeJobRepo(), companies)

	cases := []struct {
		name string
		j    Job
	}{
		{"missing title", Job{CompanyID: c.ID, Description: "d", EmploymentType: FullTime, LocationType: Remote}},
		{"missing description", Job{CompanyID: c.ID, Title: "t", EmploymentType: FullTime, LocationType: Remote}},
		{"bad employment type", Job{CompanyID: c.ID, Title: "t", Description: "d", EmploymentType: "gig", LocationType: Remote}},
		{"bad location type", Job{CompanyID: c.ID, Title: "t", Description: "d", EmploymentType: FullTime, LocationType: "moon"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Publish(context.Background(), owner, tc.j)
			var verr ErrValidation
			require.ErrorAs(t, err, &verr)
		})
	}
}

func TestService_RepublishForeignJobRejected(t *testing.T) {
	companies := newFakeCompanyRepo()
	ownerA := uuid.New()
	ownerB := uuid.New()
	companyA := companies.add(ownerA)
	companyB := companies.add(ownerB)
	repo := newFakeJobRepo()
	svc := NewService(repo, companies)
	ctx := context.Background()

	victim, err := svc.Publish(ctx, ownerB, Job{
		CompanyID:      companyB.ID,
		Title:          "Platform Engineer",
		Description:    "Run the platform.",
		EmploymentType: FullTime,
		LocationType:   Remote,
	})
	require.NoError(t, err)

	// A knows B's job id and submits it with A's own company attached.
	_, err = svc.Publish(ctx, ownerA, Job{
		ID:             victim.ID,
		CompanyID:      companyA.ID,
		Title:          "DEFACED",
		Description:    "d",
		EmploymentType: FullTime,
		LocationType:   Remote,
	})
	require.ErrorIs(t, err, ErrNotJobOwner)

	stored, err := repo.GetByID(ctx, victim.ID)
	require.NoError(t, err)
	assert.Equal(t, "Platform Engineer", stored.Title)
	assert.Equal(t, companyB.ID, stored.CompanyID)
	assert.Equal(t, ownerB, stored.CreatedBy)
}

func TestService_RepublishKeepsStoredCompany(t *testing.T) {
	companies := newFakeCompanyRepo()
	owner := uuid.New()
	first := companies.add(owner)
	second := companies.add(owner)
	repo := newFakeJobRepo()
	svc := NewService(repo, companies)
	ctx := context.Background()

	j, err := svc.Publish(ctx, owner, Job{
		CompanyID:      first.ID,
		Title:          "t",
		Description:    "d",
		EmploymentType: FullTime,
		LocationType:   Remote,
	})
	require.NoError(t, err)

	// The conflict branch never moves a job between companies; the response
	// must report the binding the database kept.
	j.CompanyID = second.ID
	again, err := svc.Publish(ctx, owner, j)
	require.NoError(t, err)
	assert.Equal(t, first.ID, again.CompanyID)
}

func TestService_PublishForeignCompany(t *testing.T) {
	companies := newFakeCompanyRepo()
	c := companies.add(uuid.New())
	svc := NewService(newFakeJobRepo(), companies)

	_, err := svc.Publish(context.Background(), uuid.New(), Job{
		CompanyID:      c.ID,
		Title:          "t",
		Description:    "d",
		EmploymentType: Contract,
		LocationType:   Onsite,
	})
	require.ErrorIs(t, err, ErrNotCompanyOwner)
}

func TestSplitTags(t *testing.T) {
	assert.Equal(t, []string{"go", "postgres", "fiber"}, SplitTags(" go, postgres ,, fiber ,"))
	assert.Empty(t, SplitTags(""))
}

// ---- fakes ----

type fakeCompanyRepo struct {
	mu   sync.Mutex
	rows map[uuid.UUID]company.Company
}

func newFakeCompanyRepo() *fakeCompanyRepo {
	return &fakeCompanyRepo{rows: map[uuid.UUID]company.Company{}}
}

func (f *fakeCompanyRepo) add(owner uuid.UUID) company.Company {
	f.mu.Lock()
	defer f.mu.Unlock()
	c := company.Company{ID: uuid.New(), Name: "Acme", CreatedBy: owner, CreatedAt: time.Now().UTC()}
	f.rows[c.ID] = c
	return c
}

func (f *fakeCompanyRepo) Create(_ context.Context, c company.Company) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rows[c.ID] = c
	return nil
}

func (f *fakeCompanyRepo) GetByID(_ context.Context, id uuid.UUID) (company.Company, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.rows[id]
	if !ok {
		return company.Company{}, company.ErrNotFound
	}
	return c, nil
}

func (f *fakeCompanyRepo) FirstByCreator(_ context.Context, userID uuid.UUID) (company.Company, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var found *company.Company
	for _, c := range f.rows {
		c := c
		if c.CreatedBy == userID && (found == nil || c.CreatedAt.Before(found.CreatedAt)) {
			found = &c
		}
	}
	if found == nil {
		return company.Company{}, company.ErrNotFound
	}
	return *found, nil
}

type fakeJobRepo struct {
	mu   sync.Mutex
	rows map[uuid.UUID]Job
}

func newFakeJobRepo() *fakeJobRepo { return &fakeJobRepo{rows: map[uuid.UUID]Job{}} }

// Upsert mirrors the conflict branch of the SQL adapter: an existing row
// keeps its company binding, creator and creation time.
func (f *fakeJobRepo) Upsert(_ context.Context, j Job) (Job, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if existing, ok := f.rows[j.ID]; ok {
		j.CompanyID = existing.CompanyID
		j.CreatedBy = existing.CreatedBy
		j.CreatedAt = existing.CreatedAt
	}
	f.rows[j.ID] = j
	return j, nil
}

func (f *fakeJobRepo) GetByID(_ context.Context, id uuid.UUID) (Job, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	j, ok := f.rows[id]
	if !ok {
		return Job{}, ErrNotFound
	}
	return j, nil
}

func (f *fakeJobRepo) List(_ context.Context, _ Filter) ([]Job, error) { return nil, nil }

func (f *fakeJobRepo) ListByCompany(_ context.Context, _ uuid.UUID, _, _ int) ([]Job, error) {
	return nil, nil
}

func (f *fakeJobRepo) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.rows)
}
