package profile

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
)

func TestResolver_EnsureCreatesSeekerByDefault(t *testing.T) {
	repo := newFakeRepo()
	res := NewResolver(repo)

	uid := uuid.New()
	p, err := res.Ensure(context.Background(), uid, "", "Ada L.")
	if err != nil {
		t.Fatalf("ensure: unexpected error: %v", err)
	}
	if p.Role != RoleSeeker {
		t.Fatalf("expected default role %s got %s", RoleSeeker, p.Role)
	}
	if p.UserID != uid {
		t.Fatalf("expected user id %s got %s", uid, p.UserID)
	}
	if got := repo.count(uid); got != 1 {
		t.Fatalf("expected exactly one stored row, got %d", got)
	}
}

func TestResolver_EnsureHonorsRoleHint(t *testing.T) {
	repo := newFakeRepo()
	res := NewResolver(repo)

	p, err := res.Ensure(context.Background(), uuid.New(), RoleEmployer, "")
	if err != nil {
		t.Fatalf("ensure: %v", err)
	}
	if p.Role != RoleEmployer {
		t.Fatalf("expected role %s got %s", RoleEmployer, p.Role)
	}
}

func TestResolver_EnsureReturnsExisting(t *testing.T) {
	repo := newFakeRepo()
	res := NewResolver(repo)

	uid := uuid.New()
	existing := Profile{UserID: uid, Role: RoleEmployer, FullName: "Grace H."}
	if err := repo.Create(context.Background(), existing); err != nil {
		t.Fatalf("seed: %v", err)
	}

	// A later resolution with a conflicting hint must not overwrite the row.
	p, err := res.Ensure(context.Background(), uid, RoleSeeker, "Other Name")
	if err != nil {
		t.Fatalf("ensure: %v", err)
	}
	if p.Role != RoleEmployer || p.FullName != "Grace H." {
		t.Fatalf("expected existing profile back, got %+v", p)
	}
}

func TestResolver_EnsureConflictFallsBackToRequery(t *testing.T) {
	repo := newFakeRepo()
	uid := uuid.New()
	winner := Profile{UserID: uid, Role: RoleEmployer}

	// Simulate a concurrent resolution winning between lookup and insert.
	repo.beforeCreate = func() {
		repo.beforeCreate = nil
		_ = repo.Create(context.Background(), winner)
	}

	res := NewResolver(repo)
	p, err := res.Ensure(context.Background(), uid, "", "")
	if err != nil {
		t.Fatalf("ensure: %v", err)
	}
	if p.Role != RoleEmployer {
		t.Fatalf("expected the winner's row back, got %+v", p)
	}
	if got := repo.count(uid); got != 1 {
		t.Fatalf("expected exactly one stored row, got %d", got)
	}
}

func TestResolver_EnsureConcurrentSingleRow(t *testing.T) {
	repo := newFakeRepo()
	res := NewResolver(repo)
	uid := uuid.New()

	var wg sync.WaitGroup
	results := make([]Profile, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			p, err := res.Ensure(context.Background(), uid, "", "")
			if err != nil {
				t.Errorf("ensure %d: %v", i, err)
				return
			}
			results[i] = p
		}(i)
	}
	wg.Wait()

	if got := repo.count(uid); got != 1 {
		t.Fatalf("expected exactly one stored row, got %d", got)
	}
	for i, p := range results {
		if p.UserID != uid || p.Role != RoleSeeker {
			t.Fatalf("resolution %d diverged: %+v", i, p)
		}
	}
}

func TestResolver_EnsureStoreFailureUsesRoleHint(t *testing.T) {
	repo := newFakeRepo()
	repo.failAll = errors.New("permission denied for table profiles")
	res := NewResolver(repo)

	p, err := res.Ensure(context.Background(), uuid.New(), RoleEmployer, "")
	if err != nil {
		t.Fatalf("expected hint fallback, got error: %v", err)
	}
	if p.Role != RoleEmployer {
		t.Fatalf("expected hinted role, got %s", p.Role)
	}
}

func TestResolver_EnsureStoreFailureNoHint(t *testing.T) {
	repo := newFakeRepo()
	repo.failAll = errors.New("connection refused")
	res := NewResolver(repo)

	if _, err := res.Ensure(context.Background(), uuid.New(), "", ""); !errors.Is(err, ErrNoProfile) {
		t.Fatalf("expected ErrNoProfile, got %v", err)
	}
}

func TestResolver_UpdateRejectsUnknownRole(t *testing.T) {
	res := NewResolver(newFakeRepo())
	if _, err := res.Update(context.Background(), Profile{UserID: uuid.New(), Role: "wizard"}); err == nil {
		t.Fatal("expected validation error for unknown role")
	}
}

func TestResolver_UpdateRejectsEmptyRole(t *testing.T) {
	res := NewResolver(newFakeRepo())
	if _, err := res.Update(context.Background(), Profile{UserID: uuid.New()}); err == nil {
		t.Fatal("expected validation error for empty role")
	}
}

func TestResolver_UpdateRejectsSelfPromotionToAdmin(t *testing.T) {
	repo := newFakeRepo()
	res := NewResolver(repo)
	uid := uuid.New()

	if _, err := res.Ensure(context.Background(), uid, "", ""); err != nil {
		t.Fatalf("ensure: %v", err)
	}
	if _, err := res.Update(context.Background(), Profile{UserID: uid, Role: RoleAdmin}); err == nil {
		t.Fatal("expected rejection of self-assigned admin role")
	}
	p, err := repo.GetByUserID(context.Background(), uid)
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if p.Role != RoleSeeker {
		t.Fatalf("stored role changed to %s", p.Role)
	}
}

func TestResolver_UpdateKeepsExistingAdmin(t *testing.T) {
	repo := newFakeRepo()
	res := NewResolver(repo)
	uid := uuid.New()

	if err := repo.Create(context.Background(), Profile{UserID: uid, Role: RoleAdmin}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	p, err := res.Update(context.Background(), Profile{UserID: uid, Role: RoleAdmin, FullName: "Root"})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if p.Role != RoleAdmin {
		t.Fatalf("expected admin kept, got %s", p.Role)
	}
}

type fakeRepo struct {
	mu           sync.Mutex
	rows         map[uuid.UUID]Profile
	failAll      error
	beforeCreate func()
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{rows: map[uuid.UUID]Profile{}}
}

func (f *fakeRepo) GetByUserID(_ context.Context, userID uuid.UUID) (Profile, error) {
	if f.failAll != nil {
		return Profile{}, f.failAll
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.rows[userID]
	if !ok {
		return Profile{}, ErrNotFound
	}
	return p, nil
}

func (f *fakeRepo) Create(_ context.Context, p Profile) error {
	if f.failAll != nil {
		return f.failAll
	}
	if f.beforeCreate != nil {
		f.beforeCreate()
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.rows[p.UserID]; ok {
		return ErrAlreadyExists
	}
	f.rows[p.UserID] = p
	return nil
}

func (f *fakeRepo) Upsert(_ context.Context, p Profile) (Profile, error) {
	if f.failAll != nil {
		return Profile{}, f.failAll
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rows[p.UserID] = p
	return p, nil
}

func (f *fakeRepo) count(userID uuid.UUID) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.rows[userID]; ok {
		return 1
	}
	return 0
}
