package service

import (
	"context"
	"errors"

	"notes_portal_backend/internal/authz"
	"notes_portal_backend/internal/events"
	"notes_portal_backend/internal/tenants/repository"
	"notes_portal_backend/platform/apperr"
	"notes_portal_backend/platform/httpkit"

	"github.com/google/uuid"
)

// Repository is the data access surface the tenants service needs.
type Repository interface {
	FindBySlug(ctx context.Context, slug string) (repository.Tenant, error)
	FindByID(ctx context.Context, id uuid.UUID) (repository.Tenant, error)
	UpdatePlan(ctx context.Context, id uuid.UUID, plan string) (repository.Tenant, error)
}

type Service struct {
	repo Repository
	bus  events.Bus
}

func New(repo Repository, bus events.Bus) *Service {
	return &Service{repo: repo, bus: bus}
}

// Upgrade raises the tenant identified by slug to the PRO plan.
//
// The role check runs before slug resolution so a non-admin learns nothing
// about which slugs exist. The self-tenant check runs after resolution: tenant
// slugs are public identifiers, so an unknown slug is NotFound while a foreign
// one is Forbidden. That asymmetry is intentional and differs from notes,
// whose existence is tenant-private.
func (s *Service) Upgrade(ctx context.Context, identity httpkit.Identity, slug string) (repository.Tenant, error) {
	if err := authz.RequireAdmin(identity); err != nil {
		return repository.Tenant{}, err
	}

	tenant, err := s.repo.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return repository.Tenant{}, apperr.NotFound("tenant not found")
		}
		return repository.Tenant{}, err
	}

	if err := authz.RequireSameTenant(identity, tenant.ID); err != nil {
		return repository.Tenant{}, err
	}

	upgraded, err := s.repo.UpdatePlan(ctx, tenant.ID, authz.PlanPro)
	if err != nil {
		return repository.Tenant{}, err
	}

	s.bus.Publish(ctx, events.TenantUpgraded{
		BaseEvent: events.NewBaseEvent(),
		TenantID:  upgraded.ID,
		Slug:      upgraded.Slug,
		ActorID:   identity.UserID(),
	})

	return upgraded, nil
}

// Get returns the caller's own tenant.
func (s *Service) Get(ctx context.Context, identity httpkit.Identity) (repository.Tenant, error) {
	tenant, err := s.repo.FindByID(ctx, identity.TenantID())
	if errors.Is(err, repository.ErrNotFound) {
		return repository.Tenant{}, apperr.NotFound("tenant not found")
	}
	return tenant, err
}
