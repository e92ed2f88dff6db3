package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"notes_portal_backend/internal/auth/password"
	"notes_portal_backend/internal/auth/repository"
	"notes_portal_backend/internal/auth/slug"
	"notes_portal_backend/platform/apperr"
	"notes_portal_backend/platform/config"
	"notes_portal_backend/platform/httpkit"
	"notes_portal_backend/platform/logger"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Repository is the data access surface the auth service needs.
// Consumer-driven so tests can substitute a fake.
type Repository interface {
	CreateTenantWithAdmin(ctx context.Context, tenantName, tenantSlug, email, passwordHash string) (repository.User, error)
	GetUserByEmail(ctx context.Context, email string) (repository.User, error)
	GetProfileByID(ctx context.Context, userID uuid.UUID) (repository.Profile, error)
}

type Service struct {
	repo Repository
	cfg  config.AuthServiceConfig
	log  *logger.Logger
}

func New(repo Repository, cfg config.AuthServiceConfig, log *logger.Logger) *Service {
	return &Service{repo: repo, cfg: cfg, log: log}
}

// SignUpResult reports what sign-up provisioned.
type SignUpResult struct {
	TenantID   uuid.UUID
	TenantSlug string
	UserID     uuid.UUID
}

// SignUp provisions a tenant and its first user. The first user of a tenant
// is always an ADMIN.
func (s *Service) SignUp(ctx context.Context, email, plainPassword, tenantName string) (SignUpResult, error) {
	tenantSlug := slug.Make(tenantName)
	if tenantSlug == "" {
		return SignUpResult{}, apperr.Validation("tenant name must contain letters or digits")
	}

	hash, err := password.Hash(plainPassword)
	if err != nil {
		return SignUpResult{}, err
	}

	user, err := s.repo.CreateTenantWithAdmin(ctx, strings.TrimSpace(tenantName), tenantSlug, strings.ToLower(email), hash)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrEmailTaken):
			return SignUpResult{}, apperr.Conflict("email already in use")
		case errors.Is(err, repository.ErrSlugTaken):
			return SignUpResult{}, apperr.Conflict("tenant name already in use")
		}
		return SignUpResult{}, err
	}

	s.log.AuthEvent("sign_up", user.Email, true, "")
	return SignUpResult{
		TenantID:   user.TenantID,
		TenantSlug: tenantSlug,
		UserID:     user.ID,
	}, nil
}

// SignIn verifies the credentials and issues a short-lived access token
// carrying the user's identity, tenant, and role.
func (s *Service) SignIn(ctx context.Context, email, plainPassword string) (string, error) {
	user, err := s.repo.GetUserByEmail(ctx, strings.ToLower(email))
	if err != nil {
		s.log.AuthEvent("sign_in", email, false, "unknown email")
		return "", apperr.Unauthorized("invalid credentials")
	}

	if err := password.Compare(user.PasswordHash, plainPassword); err != nil {
		s.log.AuthEvent("sign_in", email, false, "password mismatch")
		return "", apperr.Unauthorized("invalid credentials")
	}

	token, err := s.signAccessToken(user)
	if err != nil {
		return "", err
	}

	s.log.AuthEvent("sign_in", email, true, "")
	return token, nil
}

// GetMe returns the caller's profile.
func (s *Service) GetMe(ctx context.Context, userID uuid.UUID) (repository.Profile, error) {
	profile, err := s.repo.GetProfileByID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return repository.Profile{}, apperr.NotFound("user not found")
	}
	return profile, err
}

func (s *Service) signAccessToken(user repository.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":       user.ID.String(),
		"tenant_id": user.TenantID.String(),
		"role":      user.Role,
		"type":      httpkit.AccessTokenType,
		"exp":       now.Add(s.cfg.GetAccessTokenTTL()).Unix(),
		"iat":       now.Unix(),
	}

	tokenObj := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tokenObj.SignedString([]byte(s.cfg.GetJWTAccessSecret()))
}
