package events

import (
	platformevents "notes_portal_backend/platform/events"

	"github.com/google/uuid"
)

// Event names published by the domain modules.
const (
	NoteCreatedName       = "note.created"
	NoteQuotaRejectedName = "note.quota_rejected"
	TenantUpgradedName    = "tenant.upgraded"
)

// NoteCreated is published after a note has been committed.
type NoteCreated struct {
	platformevents.BaseEvent
	NoteID   uuid.UUID
	TenantID uuid.UUID
	UserID   uuid.UUID
}

// EventName returns the event identifier.
func (NoteCreated) EventName() string { return NoteCreatedName }

// NoteQuotaRejected is published when a FREE-plan tenant hits the note limit.
type NoteQuotaRejected struct {
	platformevents.BaseEvent
	TenantID uuid.UUID
	UserID   uuid.UUID
	Limit    int
}

// EventName returns the event identifier.
func (NoteQuotaRejected) EventName() string { return NoteQuotaRejectedName }

// TenantUpgraded is published when a tenant's plan is raised to PRO.
type TenantUpgraded struct {
	platformevents.BaseEvent
	TenantID uuid.UUID
	Slug     string
	ActorID  uuid.UUID
}

// EventName returns the event identifier.
func (TenantUpgraded) EventName() string { return TenantUpgradedName }

// NewBaseEvent is a convenience re-export of the platform constructor.
func NewBaseEvent() platformevents.BaseEvent { return platformevents.NewBaseEvent() }
