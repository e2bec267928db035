package jwt

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/jobraft/backend/pkg/auth"
	"github.com/jobraft/backend/pkg/profile"
)

const (
	testSecret = "test-secret"
	testIssuer = "jobraft-test"
)

func newGuardedApp(t *testing.T, profiles profile.UseCase) *fiber.App {
	t.Helper()
	app := fiber.New()
	app.Get("/dashboard/employer",
		NewAuthMiddleware(testSecret, testIssuer),
		RequireRole(profile.RoleEmployer, profiles),
		func(c *fiber.Ctx) error { return c.SendStatus(http.StatusOK) },
	)
	return app
}

func mintToken(t *testing.T, user auth.User, role profile.Role) string {
	t.Helper()
	gen := NewGenerator(testSecret, testIssuer, time.Minute)
	token, err := gen.Generate(context.Background(), user, role)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	return token
}

func decodeBody(t *testing.T, resp *http.Response) map[string]string {
	t.Helper()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	var body map[string]string
	if err := json.Unmarshal(raw, &body); err != nil {
		t.Fatalf("decode body %q: %v", raw, err)
	}
	return body
}

func TestGuard_UnauthenticatedRedirectsToSignIn(t *testing.T) {
	app := newGuardedApp(t, staticProfiles{role: profile.RoleEmployer})

	req := httptest.NewRequest(http.MethodGet, "/dashboard/employer", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("test request: %v", err)
	}
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
	body := decodeBody(t, resp)
	if body["signin"] != SignInPath {
		t.Fatalf("expected signin %q, got %q", SignInPath, body["signin"])
	}
	if body["next"] != "/dashboard/employer" {
		t.Fatalf("expected original path carried as next, got %q", body["next"])
	}
}

func TestGuard_WrongRoleRedirectsHome(t *testing.T) {
	app := newGuardedApp(t, staticProfiles{role: profile.RoleSeeker})

	user := auth.User{ID: uuid.New()}
	req := httptest.NewRequest(http.MethodGet, "/dashboard/employer", nil)
	req.Header.Set("Authorization", "Bearer "+mintToken(t, user, profile.RoleSeeker))
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("test request: %v", err)
	}
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", resp.StatusCode)
	}
	if body := decodeBody(t, resp); body["redirect"] != HomePath {
		t.Fatalf("expected redirect %q, got %q", HomePath, body["redirect"])
	}
}

func TestGuard_MatchingRolePasses(t *testing.T) {
	app := newGuardedApp(t, staticProfiles{role: profile.RoleEmployer})

	user := auth.User{ID: uuid.New()}
	req := httptest.NewRequest(http.MethodGet, "/dashboard/employer", nil)
	req.Header.Set("Authorization", "Bearer "+mintToken(t, user, profile.RoleEmployer))
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("test request: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
}

func TestGuard_AdminPassesAnyRequirement(t *testing.T) {
	app := newGuardedApp(t, staticProfiles{role: profile.RoleAdmin})

	user := auth.User{ID: uuid.New()}
	req := httptest.NewRequest(http.MethodGet, "/dashboard/employer", nil)
	req.Header.Set("Authorization", "Bearer "+mintToken(t, user, profile.RoleAdmin))
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("test request: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
}

func TestGuard_ResolverFailureFallsBackToClaim(t *testing.T) {
	// Profile store down: the token's role claim decides.
	app := newGuardedApp(t, staticProfiles{err: profile.ErrNoProfile})

	user := auth.User{ID: uuid.New()}
	req := httptest.NewRequest(http.MethodGet, "/dashboard/employer", nil)
	req.Header.Set("Authorization", "Bearer "+mintToken(t, user, profile.RoleEmployer))
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("test request: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 via claim fallback, got %d", resp.StatusCode)
	}
}

func TestAuthMiddleware_BadToken(t *testing.T) {
	app := newGuardedApp(t, staticProfiles{role: profile.RoleEmployer})

	req := httptest.NewRequest(http.MethodGet, "/dashboard/employer", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("test request: %v", err)
	}
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
}

func TestAuthMiddleware_ExpiredToken(t *testing.T) {
	gen := NewGenerator(testSecret, testIssuer, -time.Minute)
	token, err := gen.Generate(context.Background(), auth.User{ID: uuid.New()}, profile.RoleEmployer)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	app := newGuardedApp(t, staticProfiles{role: profile.RoleEmployer})
	req := httptest.NewRequest(http.MethodGet, "/dashboard/employer", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("test request: %v", err)
	}
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 for expired token, got %d", resp.StatusCode)
	}
}

// staticProfiles is a canned profile.UseCase for guard tests.
type staticProfiles struct {
	role profile.Role
	err  error
}

func (s staticProfiles) Ensure(_ context.Context, userID uuid.UUID, _ profile.Role, _ string) (profile.Profile, error) {
	if s.err != nil {
		return profile.Profile{}, s.err
	}
	return profile.Profile{UserID: userID, Role: s.role}, nil
}

func (s staticProfiles) Get(_ context.Context, userID uuid.UUID) (profile.Profile, error) {
	return s.Ensure(context.Background(), userID, "", "")
}

func (s staticProfiles) Update(_ context.Context, p profile.Profile) (profile.Profile, error) {
	return p, nil
}
