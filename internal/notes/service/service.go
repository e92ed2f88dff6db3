package service

import (
	"context"
	"errors"
	"strings"

	"notes_portal_backend/internal/authz"
	"notes_portal_backend/internal/events"
	"notes_portal_backend/internal/notes/repository"
	"notes_portal_backend/internal/notes/transport"
	"notes_portal_backend/platform/apperr"
	"notes_portal_backend/platform/httpkit"

	"github.com/google/uuid"
)

const msgNoteNotFound = "note not found"

// Repository is the data access interface needed by the notes service.
// This is a consumer-driven interface - only what notes needs.
type Repository interface {
	ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]repository.Note, error)
	GetByID(ctx context.Context, id, tenantID uuid.UUID) (repository.Note, error)
	Create(ctx context.Context, tenantID uuid.UUID, title string, content *string, freeLimit int) (repository.Note, error)
	Update(ctx context.Context, id, tenantID uuid.UUID, title string, content *string) (repository.Note, error)
	Delete(ctx context.Context, id, tenantID uuid.UUID) error
}

// Service handles tenant-scoped note operations. Every call takes the
// verified request identity; the tenant id it carries scopes all data access.
type Service struct {
	repo Repository
	bus  events.Bus
}

func New(repo Repository, bus events.Bus) *Service {
	return &Service{repo: repo, bus: bus}
}

// List returns all notes belonging to the caller's tenant.
func (s *Service) List(ctx context.Context, identity httpkit.Identity) ([]repository.Note, error) {
	return s.repo.ListByTenant(ctx, identity.TenantID())
}

// Get returns one note. A note outside the caller's tenant reads as absent.
func (s *Service) Get(ctx context.Context, identity httpkit.Identity, id uuid.UUID) (repository.Note, error) {
	note, err := s.repo.GetByID(ctx, id, identity.TenantID())
	if errors.Is(err, repository.ErrNotFound) {
		return repository.Note{}, apperr.NotFound(msgNoteNotFound)
	}
	return note, err
}

// Create inserts a note for the caller's tenant, enforcing the FREE-plan
// quota atomically in the repository.
func (s *Service) Create(ctx context.Context, identity httpkit.Identity, req transport.CreateNoteRequest) (repository.Note, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return repository.Note{}, apperr.Validation("note title is required")
	}

	note, err := s.repo.Create(ctx, identity.TenantID(), title, req.Content, authz.FreePlanNoteLimit)
	if err != nil {
		if errors.Is(err, repository.ErrQuotaExceeded) {
			s.bus.Publish(ctx, events.NoteQuotaRejected{
				BaseEvent: events.NewBaseEvent(),
				TenantID:  identity.TenantID(),
				UserID:    identity.UserID(),
				Limit:     authz.FreePlanNoteLimit,
			})
			return repository.Note{}, apperr.QuotaExceeded("free plan note limit reached, upgrade to add more notes")
		}
		if errors.Is(err, repository.ErrNotFound) {
			return repository.Note{}, apperr.NotFound("tenant not found")
		}
		return repository.Note{}, err
	}

	s.bus.Publish(ctx, events.NoteCreated{
		BaseEvent: events.NewBaseEvent(),
		NoteID:    note.ID,
		TenantID:  note.TenantID,
		UserID:    identity.UserID(),
	})

	return note, nil
}

// Update rewrites a note's title and content. The tenant id is part of the
// WHERE clause, so a cross-tenant id behaves exactly like a missing one.
func (s *Service) Update(ctx context.Context, identity httpkit.Identity, id uuid.UUID, req transport.UpdateNoteRequest) (repository.Note, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return repository.Note{}, apperr.Validation("note title is required")
	}

	note, err := s.repo.Update(ctx, id, identity.TenantID(), title, req.Content)
	if errors.Is(err, repository.ErrNotFound) {
		return repository.Note{}, apperr.NotFound(msgNoteNotFound)
	}
	return note, err
}

// Delete removes a note within the caller's tenant.
func (s *Service) Delete(ctx context.Context, identity httpkit.Identity, id uuid.UUID) error {
	err := s.repo.Delete(ctx, id, identity.TenantID())
	if errors.Is(err, repository.ErrNotFound) {
		return apperr.NotFound(msgNoteNotFound)
	}
	return err
}
