package authz

import (
	"testing"

	"notes_portal_backend/platform/apperr"

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

func TestRequireAdmin(t *testing.T) {
	cases := []struct {
		role    string
		wantErr bool
	}{
		{RoleAdmin, false},
		{RoleMember, true},
		{"admin", true}, // role comparison is case-sensitive
		{"", true},
	}

	for _, tc := range cases {
		err := RequireAdmin(testIdentity{role: tc.role})
		if tc.wantErr {
			if !apperr.Is(err, apperr.KindForbidden) {
				t.Fatalf("role %q: expected forbidden, got %v", tc.role, err)
			}
		} else if err != nil {
			t.Fatalf("role %q: unexpected error %v", tc.role, err)
		}
	}
}

func TestRequireSameTenant(t *testing.T) {
	own := uuid.New()
	other := uuid.New()
	id := testIdentity{tenantID: own, role: RoleAdmin}

	if err := RequireSameTenant(id, own); err != nil {
		t.Fatalf("same tenant: unexpected error %v", err)
	}

	// Admin role grants no authority over another tenant.
	if err := RequireSameTenant(id, other); !apperr.Is(err, apperr.KindForbidden) {
		t.Fatalf("other tenant: expected forbidden, got %v", err)
	}
}
