// Package authz holds the authorization predicates shared by all domain
// services. Role, self-tenant, and quota rules live here so handlers and
// services apply one policy instead of re-implementing checks per route.
package authz

import (
	"notes_portal_backend/platform/apperr"
	"notes_portal_backend/platform/httpkit"

	"github.com/google/uuid"
)

// Roles a user can hold within a tenant.
const (
	RoleAdmin  = "ADMIN"
	RoleMember = "MEMBER"
)

// Plans a tenant can be on. FREE caps the number of notes; PRO lifts the cap.
const (
	PlanFree = "FREE"
	PlanPro  = "PRO"
)

// FreePlanNoteLimit is the maximum number of notes a FREE-plan tenant may
// hold. PRO tenants are not limited.
const FreePlanNoteLimit = 3

// RequireAdmin returns Forbidden unless the caller holds the ADMIN role.
func RequireAdmin(id httpkit.Identity) error {
	if !id.HasRole(RoleAdmin) {
		return apperr.Forbidden("admin role required")
	}
	return nil
}

// RequireSameTenant returns Forbidden unless the target tenant is the
// caller's own. Admins of one tenant hold no authority over another, so this
// check applies even after RequireAdmin has passed.
func RequireSameTenant(id httpkit.Identity, tenantID uuid.UUID) error {
	if id.TenantID() != tenantID {
		return apperr.Forbidden("cannot act on another tenant")
	}
	return nil
}
