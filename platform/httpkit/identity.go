// Package httpkit provides HTTP utilities including identity abstraction.
package httpkit

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Identity represents the authenticated caller's identity for the lifetime of
// one request. It is constructed only from context values seeded by
// AuthRequired after token verification; it has no persisted form and cannot
// be supplied by the client.
type Identity interface {
	// UserID returns the authenticated user's ID.
	UserID() uuid.UUID
	// TenantID returns the tenant the user belongs to.
	TenantID() uuid.UUID
	// Role returns the user's role within the tenant.
	Role() string
	// HasRole checks if the user has a specific role.
	HasRole(role string) bool
	// IsAuthenticated returns true if the user is authenticated.
	IsAuthenticated() bool
}

// identity is the concrete implementation of Identity.
type identity struct {
	userID        uuid.UUID
	tenantID      uuid.UUID
	role          string
	authenticated bool
}

func (i *identity) UserID() uuid.UUID {
	return i.userID
}

func (i *identity) TenantID() uuid.UUID {
	return i.tenantID
}

func (i *identity) Role() string {
	return i.role
}

func (i *identity) HasRole(role string) bool {
	return i.role == role
}

func (i *identity) IsAuthenticated() bool {
	return i.authenticated
}

// GetIdentity extracts the Identity from a Gin context.
// Returns an unauthenticated identity if any part of the verified identity
// is missing.
func GetIdentity(c *gin.Context) Identity {
	rawUserID, userOK := c.Get(ContextUserIDKey)
	rawTenantID, tenantOK := c.Get(ContextTenantIDKey)
	rawRole, roleOK := c.Get(ContextRoleKey)

	if !userOK || !tenantOK || !roleOK {
		return &identity{authenticated: false}
	}

	userID, ok := rawUserID.(uuid.UUID)
	if !ok {
		return &identity{authenticated: false}
	}

	tenantID, ok := rawTenantID.(uuid.UUID)
	if !ok {
		return &identity{authenticated: false}
	}

	role, ok := rawRole.(string)
	if !ok || role == "" {
		return &identity{authenticated: false}
	}

	return &identity{
		userID:        userID,
		tenantID:      tenantID,
		role:          role,
		authenticated: true,
	}
}

// MustGetIdentity extracts the Identity from a Gin context.
// If the user is not authenticated, it aborts with 401 Unauthorized and returns nil.
func MustGetIdentity(c *gin.Context) Identity {
	id := GetIdentity(c)
	if !id.IsAuthenticated() {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return nil
	}
	return id
}
