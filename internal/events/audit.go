package events

import (
	"context"

	platformevents "notes_portal_backend/platform/events"
	"notes_portal_backend/platform/logger"
)

// RegisterAuditLog subscribes an audit subscriber that records authorization-
// relevant domain events. This is the observability channel for quota
// rejections and plan changes; it never alters request outcomes.
func RegisterAuditLog(bus Bus, log *logger.Logger) {
	bus.Subscribe(NoteCreatedName, platformevents.HandlerFunc(func(_ context.Context, e platformevents.Event) error {
		evt, ok := e.(NoteCreated)
		if !ok {
			return nil
		}
		log.Info("audit",
			"event", evt.EventName(),
			"note_id", evt.NoteID.String(),
			"tenant_id", evt.TenantID.String(),
			"user_id", evt.UserID.String(),
		)
		return nil
	}))

	bus.Subscribe(NoteQuotaRejectedName, platformevents.HandlerFunc(func(_ context.Context, e platformevents.Event) error {
		evt, ok := e.(NoteQuotaRejected)
		if !ok {
			return nil
		}
		log.QuotaExceeded(evt.TenantID.String(), "FREE", evt.Limit, evt.Limit)
		return nil
	}))

	bus.Subscribe(TenantUpgradedName, platformevents.HandlerFunc(func(_ context.Context, e platformevents.Event) error {
		evt, ok := e.(TenantUpgraded)
		if !ok {
			return nil
		}
		log.Info("audit",
			"event", evt.EventName(),
			"tenant_id", evt.TenantID.String(),
			"slug", evt.Slug,
			"actor_id", evt.ActorID.String(),
		)
		return nil
	}))
}
