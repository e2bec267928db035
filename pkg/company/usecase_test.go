package company

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestService_CreateRequiresName(t *testing.T) {
	svc := NewService(newFakeRepo())
	if _, err := svc.Create(context.Background(), Company{Name: "   "}); err == nil {
		t.Fatal("expected validation error for blank name")
	}
}

func TestService_MyCompanyFirstMatch(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	owner := uuid.New()
	ctx := context.Background()

	if _, err := svc.MyCompany(ctx, owner); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound before creation, got %v", err)
	}

	first, err := svc.Create(ctx, Company{Name: "Acme", CreatedBy: owner})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	// The model tolerates a second company; the dashboard sticks to the first.
	if _, err := svc.Create(ctx, Company{Name: "Globex", CreatedBy: owner}); err != nil {
		t.Fatalf("second create: %v", err)
	}

	got, err := svc.MyCompany(ctx, owner)
	if err != nil {
		t.Fatalf("my company: %v", err)
	}
	if got.ID != first.ID {
		t.Fatalf("expected oldest company %s, got %s", first.ID, got.ID)
	}
}

type fakeRepo struct {
	mu   sync.Mutex
	rows []Company
}

func newFakeRepo() *fakeRepo { return &fakeRepo{} }

func (f *fakeRepo) Create(_ context.Context, c Company) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	// keep insertion order so FirstByCreator can pick the oldest
	c.CreatedAt = time.Now().UTC().Add(time.Duration(len(f.rows)) * time.Millisecond)
	f.rows = append(f.rows, c)
	return nil
}

func (f *fakeRepo) GetByID(_ context.Context, id uuid.UUID) (Company, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.rows {
		if c.ID == id {
			return c, nil
		}
	}
	return Company{}, ErrNotFound
}

func (f *fakeRepo) FirstByCreator(_ context.Context, userID uuid.UUID) (Company, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.rows {
		if c.CreatedBy == userID {
			return c, nil
		}
	}
	return Company{}, ErrNotFound
}
