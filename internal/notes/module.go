// Package notes provides the note bounded context module.
// This file defines the module that encapsulates setup and route registration.
package notes

import (
	"notes_portal_backend/internal/events"
	apphttp "notes_portal_backend/internal/http"
	"notes_portal_backend/internal/notes/handler"
	"notes_portal_backend/internal/notes/repository"
	"notes_portal_backend/internal/notes/service"
	"notes_portal_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the notes bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates and initializes the notes module with all its dependencies.
func NewModule(pool *pgxpool.Pool, bus events.Bus, val *validator.Validator) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, bus)
	h := handler.New(svc, val)

	return &Module{handler: h, service: svc}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "notes"
}

// RegisterRoutes mounts note routes on the protected group.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.Protected)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
