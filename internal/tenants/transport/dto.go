package transport

import "time"

type TenantResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	Plan      string    `json:"plan"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type UpgradeResponse struct {
	Message string         `json:"message"`
	Tenant  TenantResponse `json:"tenant"`
}
