package handler

import (
	"notes_portal_backend/internal/tenants/repository"
	"notes_portal_backend/internal/tenants/transport"
)

func toTenantResponse(t repository.Tenant) transport.TenantResponse {
	return transport.TenantResponse{
		ID:        t.ID.String(),
		Name:      t.Name,
		Slug:      t.Slug,
		Plan:      t.Plan,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}
