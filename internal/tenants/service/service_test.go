package service

import (
	"context"
	"sync"
	"testing"

	"notes_portal_backend/internal/authz"
	"notes_portal_backend/internal/events"
	"notes_portal_backend/internal/tenants/repository"
	"notes_portal_backend/platform/apperr"
	platformevents "notes_portal_backend/platform/events"

	"github.com/google/uuid"
)

type testIdentity struct {
	userID   uuid.UUID
	tenantID uuid.UUID
	role     string
}

func (i testIdentity) UserID() uuid.UUID        { return i.userID }
func (i testIdentity) TenantID() uuid.UUID      { return i.tenantID }
func (i testIdentity) Role() string             { return i.role }
func (i testIdentity) HasRole(role string) bool { return i.role == role }
func (i testIdentity) IsAuthenticated() bool    { return true }

type captureBus struct {
	mu     sync.Mutex
	events []platformevents.Event
}

func (b *captureBus) Publish(_ context.Context, e platformevents.Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, e)
}

func (b *captureBus) PublishSync(ctx context.Context, e platformevents.Event) error {
	b.Publish(ctx, e)
	return nil
}

func (b *captureBus) Subscribe(string, platformevents.Handler) {}

type fakeRepo struct {
	tenants map[uuid.UUID]repository.Tenant
}

func newFakeRepo(ts ...repository.Tenant) *fakeRepo {
	f := &fakeRepo{tenants: make(map[uuid.UUID]repository.Tenant)}
	for _, t := range ts {
		f.tenants[t.ID] = t
	}
	return f
}

func (f *fakeRepo) FindBySlug(_ context.Context, slug string) (repository.Tenant, error) {
	for _, t := range f.tenants {
		if t.Slug == slug {
			return t, nil
		}
	}
	return repository.Tenant{}, repository.ErrNotFound
}

func (f *fakeRepo) FindByID(_ context.Context, id uuid.UUID) (repository.Tenant, error) {
	t, ok := f.tenants[id]
	if !ok {
		return repository.Tenant{}, repository.ErrNotFound
	}
	return t, nil
}

func (f *fakeRepo) UpdatePlan(_ context.Context, id uuid.UUID, plan string) (repository.Tenant, error) {
	t, ok := f.tenants[id]
	if !ok {
		return repository.Tenant{}, repository.ErrNotFound
	}
	t.Plan = plan
	f.tenants[id] = t
	return t, nil
}

func TestUpgrade(t *testing.T) {
	acme := repository.Tenant{ID: uuid.New(), Name: "Acme", Slug: "acme", Plan: authz.PlanFree}
	globex := repository.Tenant{ID: uuid.New(), Name: "Globex", Slug: "globex", Plan: authz.PlanFree}

	tests := []struct {
		name     string
		identity testIdentity
		slug     string
		wantKind apperr.Kind
	}{
		{
			name:     "member of own tenant is forbidden",
			identity: testIdentity{userID: uuid.New(), tenantID: acme.ID, role: "MEMBER"},
			slug:     "acme",
			wantKind: apperr.KindForbidden,
		},
		{
			name:     "admin of another tenant is forbidden",
			identity: testIdentity{userID: uuid.New(), tenantID: globex.ID, role: "ADMIN"},
			slug:     "acme",
			wantKind: apperr.KindForbidden,
		},
		{
			name:     "unknown slug is not found",
			identity: testIdentity{userID: uuid.New(), tenantID: acme.ID, role: "ADMIN"},
			slug:     "no-such-tenant",
			wantKind: apperr.KindNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeRepo(acme, globex)
			svc := New(repo, &captureBus{})

			_, err := svc.Upgrade(context.Background(), tt.identity, tt.slug)
			if !apperr.Is(err, tt.wantKind) {
				t.Fatalf("expected %v, got %v", tt.wantKind, err)
			}

			// A rejected upgrade must not change the plan.
			got, _ := repo.FindBySlug(context.Background(), "acme")
			if got.Plan != authz.PlanFree {
				t.Fatalf("plan changed to %s after rejected upgrade", got.Plan)
			}
		})
	}
}

func TestUpgradeByOwnAdmin(t *testing.T) {
	acme := repository.Tenant{ID: uuid.New(), Name: "Acme", Slug: "acme", Plan: authz.PlanFree}
	repo := newFakeRepo(acme)
	bus := &captureBus{}
	svc := New(repo, bus)

	admin := testIdentity{userID: uuid.New(), tenantID: acme.ID, role: "ADMIN"}
	upgraded, err := svc.Upgrade(context.Background(), admin, "acme")
	if err != nil {
		t.Fatal(err)
	}
	if upgraded.Plan != authz.PlanPro {
		t.Fatalf("plan = %s, want %s", upgraded.Plan, authz.PlanPro)
	}

	if len(bus.events) != 1 {
		t.Fatalf("published %d events, want 1", len(bus.events))
	}
	evt, ok := bus.events[0].(events.TenantUpgraded)
	if !ok {
		t.Fatalf("published %T, want TenantUpgraded", bus.events[0])
	}
	if evt.TenantID != acme.ID || evt.Slug != "acme" || evt.ActorID != admin.userID {
		t.Fatalf("event fields mismatch: %+v", evt)
	}
}

func TestGetReturnsCallerTenant(t *testing.T) {
	acme := repository.Tenant{ID: uuid.New(), Name: "Acme", Slug: "acme", Plan: authz.PlanFree}
	svc := New(newFakeRepo(acme), &captureBus{})

	member := testIdentity{userID: uuid.New(), tenantID: acme.ID, role: "MEMBER"}
	got, err := svc.Get(context.Background(), member)
	if err != nil {
		t.Fatal(err)
	}
	if got.ID != acme.ID {
		t.Fatalf("got tenant %s, want %s", got.ID, acme.ID)
	}

	stranger := testIdentity{userID: uuid.New(), tenantID: uuid.New(), role: "MEMBER"}
	if _, err := svc.Get(context.Background(), stranger); !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected not found for unknown tenant, got %v", err)
	}
}
