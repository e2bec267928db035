package jwt

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/jobraft/backend/pkg/profile"
)

// HomePath is echoed on 403 responses so clients land somewhere sensible.
const HomePath = "/"

// RequireRole returns a Fiber middleware that admits only identities whose
// resolved profile carries the required role. It runs after NewAuthMiddleware.
// The profile is resolved per request; if the profile store fails, the
// token's role claim serves as the fallback hint (and, through the resolver,
// as the authority of last resort). Admins pass any requirement.
func RequireRole(required profile.Role, profiles profile.UseCase) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userIDStr, _ := c.Locals(LocalUserID).(string)
		uid, err := uuid.Parse(userIDStr)
		if err != nil {
			return unauthorized(c, "could not identify user")
		}
		hint, _ := c.Locals(LocalRoleHint).(string)

		role := profile.Role(hint)
		if p, err := profiles.Ensure(c.Context(), uid, profile.Role(hint), ""); err == nil {
			role = p.Role
		}
		if role == profile.RoleAdmin || role == required {
			return c.Next()
		}
		return c.Status(http.StatusForbidden).JSON(fiber.Map{
			"message":  "insufficient role",
			"redirect": HomePath,
		})
	}
}

// UserID extracts the authenticated user id set by the auth middleware.
func UserID(c *fiber.Ctx) (uuid.UUID, bool) {
	userIDStr, _ := c.Locals(LocalUserID).(string)
	uid, err := uuid.Parse(userIDStr)
	if err != nil {
		return uuid.Nil, false
	}
	return uid, true
}

// RoleHint extracts the token's role claim, if any.
func RoleHint(c *fiber.Ctx) profile.Role {
	hint, _ := c.Locals(LocalRoleHint).(string)
	return profile.Role(hint)
}
