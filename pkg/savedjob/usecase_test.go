package savedjob

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/jobraft/backend/pkg/job"
)

func TestService_SaveIsIdempotent(t *testing.T) {
	jobs := newFakeJobRepo()
	j := jobs.add()
	repo := newFakeSavedRepo()
	svc := NewService(repo, jobs)

	user := uuid.New()
	ctx := context.Background()
	if err := svc.Save(ctx, user, j.ID); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := svc.Save(ctx, user, j.ID); err != nil {
		t.Fatalf("second save should be tolerated: %v", err)
	}
	if got := repo.count(user); got != 1 {
		t.Fatalf("expected exactly one membership row, got %d", got)
	}
}

func TestService_UnsaveIsIdempotent(t *testing.T) {
	jobs := newFakeJobRepo()
	j := jobs.add()
	repo := newFakeSavedRepo()
	svc := NewService(repo, jobs)

	user := uuid.New()
	ctx := context.Background()
	if err := svc.Unsave(ctx, user, j.ID); err != nil {
		t.Fatalf("unsave of absent row should succeed: %v", err)
	}
	if err := svc.Save(ctx, user, j.ID); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := svc.Unsave(ctx, user, j.ID); err != nil {
		t.Fatalf("unsave: %v", err)
	}
	if err := svc.Unsave(ctx, user, j.ID); err != nil {
		t.Fatalf("second unsave: %v", err)
	}
	if got := repo.count(user); got != 0 {
		t.Fatalf("expected zero membership rows, got %d", got)
	}
}

func TestService_ToggleFlipsState(t *testing.T) {
	jobs := newFakeJobRepo()
	j := jobs.add()
	svc := NewService(newFakeSavedRepo(), jobs)

	user := uuid.New()
	ctx := context.Background()

	saved, err := svc.Toggle(ctx, user, j.ID)
	if err != nil || !saved {
		t.Fatalf("first toggle: saved=%v err=%v", saved, err)
	}
	if got, _ := svc.IsSaved(ctx, user, j.ID); !got {
		t.Fatal("expected membership after first toggle")
	}
	saved, err = svc.Toggle(ctx, user, j.ID)
	if err != nil || saved {
		t.Fatalf("second toggle: saved=%v err=%v", saved, err)
	}
	if got, _ := svc.IsSaved(ctx, user, j.ID); got {
		t.Fatal("expected no membership after second toggle")
	}
}

func TestService_SaveUnknownJob(t *testing.T) {
	svc := NewService(newFakeSavedRepo(), newFakeJobRepo())
	if err := svc.Save(context.Background(), uuid.New(), uuid.New()); err == nil {
		t.Fatal("expected error for unknown job")
	}
}

// ---- fakes ----

type fakeJobRepo struct {
	mu   sync.Mutex
	rows map[uuid.UUID]job.Job
}

func newFakeJobRepo() *fakeJobRepo { return &fakeJobRepo{rows: map[uuid.UUID]job.Job{}} }

func (f *fakeJobRepo) add() job.Job {
	f.mu.Lock()
	defer f.mu.Unlock()
	j := job.Job{ID: uuid.New(), Title: "Platform Engineer", CreatedAt: time.Now().UTC()}
	f.rows[j.ID] = j
	return j
}

func (f *fakeJobRepo) Upsert(_ context.Context, j job.Job) (job.Job, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rows[j.ID] = j
	return j, nil
}

func (f *fakeJobRepo) GetByID(_ context.Context, id uuid.UUID) (job.Job, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	j, ok := f.rows[id]
	if !ok {
		return job.Job{}, job.ErrNotFound
	}
	return j, nil
}

func (f *fakeJobRepo) List(_ context.Context, _ job.Filter) ([]job.Job, error) { return nil, nil }

func (f *fakeJobRepo) ListByCompany(_ context.Context, _ uuid.UUID, _, _ int) ([]job.Job, error) {
	return nil, nil
}

type pair struct{ user, job uuid.UUID }

type fakeSavedRepo struct {
	mu   sync.Mutex
	rows map[pair]time.Time
	jobs *fakeJobRepo
}

func newFakeSavedRepo() *fakeSavedRepo { return &fakeSavedRepo{rows: map[pair]time.Time{}} }

func (f *fakeSavedRepo) count(userID uuid.UUID) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for p := range f.rows {
		if p.user == userID {
			n++
		}
	}
	return n
}

func (f *fakeSavedRepo) Save(_ context.Context, userID, jobID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	// duplicate insert is tolerated: set semantics
	f.rows[pair{userID, jobID}] = time.Now().UTC()
	return nil
}

func (f *fakeSavedRepo) Delete(_ context.Context, userID, jobID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.rows, pair{userID, jobID})
	return nil
}

func (f *fakeSavedRepo) Exists(_ context.Context, userID, jobID uuid.UUID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.rows[pair{userID, jobID}]
	return ok, nil
}

func (f *fakeSavedRepo) ListJobs(_ context.Context, userID uuid.UUID, _, _ int) ([]job.Job, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var res []job.Job
	for p := range f.rows {
		if p.user == userID {
			res = append(res, job.Job{ID: p.job})
		}
	}
	return res, nil
}
