package profile

import (
	"time"

	"github.com/google/uuid"
)

// Role determines which actions the UI offers an identity.
// Enforcement also happens server-side in the route guard.
type Role string

const (
	RoleSeeker   Role = "seeker"
	RoleEmployer Role = "employer"
	RoleAdmin    Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleSeeker, RoleEmployer, RoleAdmin:
		return true
	}
	return false
}

// Profile is the per-identity record keyed by the user id.
// Exactly one profile exists per identity; it is created lazily
// on first resolution with role=seeker unless a sign-up role
// hint says otherwise.
type Profile struct {
	UserID    uuid.UUID
	Role      Role
	FullName  string
	Headline  string
	Location  string
	AvatarURL string
	CompanyID *uuid.UUID
	UpdatedAt time.Time
}
