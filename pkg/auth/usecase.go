package auth

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jobraft/backend/pkg/profile"
	"github.com/jobraft/backend/pkg/session"
)

// AuthUseCase describes authentication/registration behavior.
type AuthUseCase interface {
	Register(ctx context.Context, p RegisterParams) (AuthResult, error)
	Login(ctx context.Context, email, password string) (AuthResult, error)
	Refresh(ctx context.Context, refreshToken string) (AuthResult, error)
	Logout(ctx context.Context, refreshToken string) error
}

type RegisterParams struct {
	Email    string
	Password string
	FullName string
	Employer bool
}

type AuthResult struct {
	User         User
	Profile      profile.Profile
	Token        string
	RefreshToken string
}

type authService struct {
	repo       UserRepository
	tokens     TokenGenerator
	sessions   session.Store
	profiles   profile.UseCase
	refreshTTL time.Duration
}

// NewAuthService returns default implementation of AuthUseCase.
func NewAuthService(repo UserRepository, tokens TokenGenerator, sessions session.Store, profiles profile.UseCase, refreshTTL time.Duration) AuthUseCase {
	return &authService{
		repo:       repo,
		tokens:     tokens,
		sessions:   sessions,
		profiles:   profiles,
		refreshTTL: refreshTTL,
	}
}

func (s *authService) Register(ctx context.Context, p RegisterParams) (AuthResult, error) {
	if strings.TrimSpace(p.Email) == "" || p.Password == "" {
		return AuthResult{}, ErrInvalidCredentials
	}

	// If user exists, fail fast (best-effort check; the unique index catches races)
	if _, err := s.repo.GetByEmail(ctx, p.Email); err == nil {
		return AuthResult{}, ErrUserAlreadyExists
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(p.Password), bcrypt.DefaultCost)
	if err != nil {
		return AuthResult{}, err
	}

	metaRole := profile.RoleSeeker
	if p.Employer {
		metaRole = profile.RoleEmployer
	}
	user := User{
		ID:           uuid.New(),
		Email:        strings.ToLower(strings.TrimSpace(p.Email)),
		PasswordHash: string(passwordHash),
		MetaRole:     metaRole,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return AuthResult{}, err
	}
	// Sign-up resolves the profile inline so the first session already has a role.
	prof, err := s.profiles.Ensure(ctx, user.ID, metaRole, strings.TrimSpace(p.FullName))
	if err != nil {
		return AuthResult{}, err
	}
	return s.issue(ctx, user, prof)
}

func (s *authService) Login(ctx context.Context, email, password string) (AuthResult, error) {
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return AuthResult{}, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return AuthResult{}, ErrInvalidCredentials
	}
	prof, err := s.profiles.Ensure(ctx, user.ID, user.MetaRole, "")
	if err != nil {
		return AuthResult{}, err
	}
	return s.issue(ctx, user, prof)
}

// Refresh rotates the refresh session: a fresh pair is issued and only then
// is the presented token revoked, so a transient failure along the way
// leaves it usable for a retry instead of forcing a sign-out.
func (s *authService) Refresh(ctx context.Context, refreshToken string) (AuthResult, error) {
	sess, err := s.sessions.Get(ctx, refreshToken)
	if err != nil {
		return AuthResult{}, ErrSessionExpired
	}
	user, err := s.repo.GetByID(ctx, sess.UserID)
	if err != nil {
		return AuthResult{}, ErrSessionExpired
	}
	prof, err := s.profiles.Ensure(ctx, user.ID, user.MetaRole, "")
	if err != nil {
		return AuthResult{}, err
	}
	res, err := s.issue(ctx, user, prof)
	if err != nil {
		return AuthResult{}, err
	}
	if err := s.sessions.Delete(ctx, refreshToken); err != nil {
		return AuthResult{}, err
	}
	return res, nil
}

func (s *authService) Logout(ctx context.Context, refreshToken string) error {
	// Sign-out is idempotent: revoking an already-absent session succeeds.
	return s.sessions.Delete(ctx, refreshToken)
}

func (s *authService) issue(ctx context.Context, user User, prof profile.Profile) (AuthResult, error) {
	token, err := s.tokens.Generate(ctx, user, prof.Role)
	if err != nil {
		return AuthResult{}, err
	}
	refresh := uuid.NewString()
	sess := session.Session{UserID: user.ID, CreatedAt: time.Now().UTC()}
	if err := s.sessions.Save(ctx, refresh, sess, s.refreshTTL); err != nil {
		return AuthResult{}, err
	}
	return AuthResult{User: user, Profile: prof, Token: token, RefreshToken: refresh}, nil
}
