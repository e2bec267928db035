package auth

import (
	"context"

	"github.com/jobraft/backend/pkg/profile"
)

// TokenGenerator abstracts access-token creation (e.g., JWT).
// It allows use cases to stay framework-agnostic. The role is embedded as a
// claim so the route guard has a hint when the profile store is unreachable.
type TokenGenerator interface {
	Generate(ctx context.Context, user User, role profile.Role) (string, error)
}
