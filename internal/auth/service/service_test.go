package service

import (
	"context"
	"testing"
	"time"

	"notes_portal_backend/internal/auth/password"
	"notes_portal_backend/internal/auth/repository"
	"notes_portal_backend/platform/apperr"
	"notes_portal_backend/platform/logger"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const testSecret = "service-test-secret"

type testAuthConfig struct{}

func (testAuthConfig) GetJWTAccessSecret() string       { return testSecret }
func (testAuthConfig) GetAccessTokenTTL() time.Duration { return time.Hour }

type fakeRepo struct {
	usersByEmail map[string]repository.User
	createErr    error
	created      []string
}

func (f *fakeRepo) CreateTenantWithAdmin(_ context.Context, tenantName, tenantSlug, email, passwordHash string) (repository.User, error) {
	if f.createErr != nil {
		return repository.User{}, f.createErr
	}
	f.created = append(f.created, tenantSlug)
	return repository.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: passwordHash,
		Role:         "ADMIN",
		TenantID:     uuid.New(),
	}, nil
}

func (f *fakeRepo) GetUserByEmail(_ context.Context, email string) (repository.User, error) {
	user, ok := f.usersByEmail[email]
	if !ok {
		return repository.User{}, repository.ErrNotFound
	}
	return user, nil
}

func (f *fakeRepo) GetProfileByID(_ context.Context, _ uuid.UUID) (repository.Profile, error) {
	return repository.Profile{}, repository.ErrNotFound
}

func newService(repo Repository) *Service {
	return New(repo, testAuthConfig{}, logger.New("development"))
}

func TestSignInIssuesTokenWithIdentityClaims(t *testing.T) {
	hash, err := password.Hash("password")
	if err != nil {
		t.Fatal(err)
	}

	user := repository.User{
		ID:           uuid.New(),
		Email:        "admin@acme.test",
		PasswordHash: hash,
		Role:         "ADMIN",
		TenantID:     uuid.New(),
	}
	svc := newService(&fakeRepo{usersByEmail: map[string]repository.User{user.Email: user}})

	token, err := svc.SignIn(context.Background(), "Admin@Acme.test", "password")
	if err != nil {
		t.Fatalf("SignIn: %v", err)
	}

	parsed, err := jwt.Parse(token, func(*jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("issued token does not verify: %v", err)
	}

	claims := parsed.Claims.(jwt.MapClaims)
	if claims["sub"] != user.ID.String() {
		t.Errorf("sub = %v, want %s", claims["sub"], user.ID)
	}
	if claims["tenant_id"] != user.TenantID.String() {
		t.Errorf("tenant_id = %v, want %s", claims["tenant_id"], user.TenantID)
	}
	if claims["role"] != "ADMIN" {
		t.Errorf("role = %v, want ADMIN", claims["role"])
	}
	if claims["type"] != "access" {
		t.Errorf("type = %v, want access", claims["type"])
	}
}

func TestSignInRejectsBadCredentials(t *testing.T) {
	hash, err := password.Hash("password")
	if err != nil {
		t.Fatal(err)
	}
	user := repository.User{
		ID:           uuid.New(),
		Email:        "admin@acme.test",
		PasswordHash: hash,
		Role:         "ADMIN",
		TenantID:     uuid.New(),
	}
	svc := newService(&fakeRepo{usersByEmail: map[string]repository.User{user.Email: user}})

	if _, err := svc.SignIn(context.Background(), "admin@acme.test", "wrong"); !apperr.Is(err, apperr.KindUnauthorized) {
		t.Fatalf("wrong password: expected unauthorized, got %v", err)
	}
	if _, err := svc.SignIn(context.Background(), "nobody@acme.test", "password"); !apperr.Is(err, apperr.KindUnauthorized) {
		t.Fatalf("unknown email: expected unauthorized, got %v", err)
	}
}

func TestSignUpDerivesSlug(t *testing.T) {
	repo := &fakeRepo{}
	svc := newService(repo)

	result, err := svc.SignUp(context.Background(), "founder@initech.test", "hunter2hunter2", "Initech, Inc.")
	if err != nil {
		t.Fatalf("SignUp: %v", err)
	}
	if result.TenantSlug != "initech-inc" {
		t.Fatalf("slug = %q, want initech-inc", result.TenantSlug)
	}
	if len(repo.created) != 1 || repo.created[0] != "initech-inc" {
		t.Fatalf("repository received slug %v", repo.created)
	}
}

func TestSignUpRejectsUnsluggableName(t *testing.T) {
	svc := newService(&fakeRepo{})
	if _, err := svc.SignUp(context.Background(), "a@b.test", "hunter2hunter2", "!!!"); !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestSignUpMapsConflicts(t *testing.T) {
	cases := []struct {
		name string
		err  error
	}{
		{"email taken", repository.ErrEmailTaken},
		{"slug taken", repository.ErrSlugTaken},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := newService(&fakeRepo{createErr: tc.err})
			if _, err := svc.SignUp(context.Background(), "a@b.test", "hunter2hunter2", "Acme"); !apperr.Is(err, apperr.KindConflict) {
				t.Fatalf("expected conflict, got %v", err)
			}
		})
	}
}
