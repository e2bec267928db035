package jwt

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/jobraft/backend/pkg/auth"
	"github.com/jobraft/backend/pkg/profile"
)

type Generator struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

func NewGenerator(secret, issuer string, ttl time.Duration) *Generator {
	return &Generator{secret: []byte(secret), issuer: issuer, ttl: ttl}
}

// Claims carries the standard set plus the role resolved at issue time.
// The role claim is a hint: the guard re-resolves the profile per request and
// only falls back to the claim when the profile store fails.
type Claims struct {
	jwt.RegisteredClaims
	Role string `json:"role,omitempty"`
}

func (g *Generator) Generate(ctx context.Context, user auth.User, role profile.Role) (string, error) {
	now := time.Now().UTC()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    g.issuer,
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(g.ttl)),
		},
		Role: string(role),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(g.secret)
}
