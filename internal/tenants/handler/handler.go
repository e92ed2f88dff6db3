package handler

import (
	"net/http"

	"notes_portal_backend/internal/tenants/service"
	"notes_portal_backend/internal/tenants/transport"
	"notes_portal_backend/platform/httpkit"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	svc *service.Service
}

func New(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/tenants/me", h.GetMyTenant)
	rg.POST("/tenants/:slug/upgrade", h.Upgrade)
}

func (h *Handler) Upgrade(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	tenant, err := h.svc.Upgrade(c.Request.Context(), identity, c.Param("slug"))
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.JSON(c, http.StatusOK, transport.UpgradeResponse{
		Message: "tenant plan upgraded to PRO",
		Tenant:  toTenantResponse(tenant),
	})
}

func (h *Handler) GetMyTenant(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	tenant, err := h.svc.Get(c.Request.Context(), identity)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, toTenantResponse(tenant))
}
