package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeRole(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Role
	}{
		{"office", "office", RoleOffice},
		{"office admin", "office_admin", RoleOffice},
		{"office user", "office_user", RoleOffice},
		{"self office admin", "self_office_admin", RoleOffice},
		{"owner", "owner", RoleOwner},
		{"owner arabic", "مالك", RoleOwner},
		{"tenant", "tenant", RoleTenant},
		{"tenant arabic", "مستأجر", RoleTenant},
		{"admin", "admin", RoleAdmin},
		{"super admin", "super_admin", RoleAdmin},
		{"mixed case", "Office_Admin", RoleOffice},
		{"padded", "  owner  ", RoleOwner},
		{"unknown passthrough", "Accountant", Role("accountant")},
		{"empty", "", Role("")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeRole(tt.input))
		})
	}
}

func TestResourceForRoute(t *testing.T) {
	assert.Equal(t, ResourcePayments, ResourceForRoute("payments"))
	assert.Equal(t, ResourceUserRoles, ResourceForRoute("user-roles"))
	assert.Equal(t, ResourceUnknown, ResourceForRoute("webhooks"))
	assert.Equal(t, ResourceUnknown, ResourceForRoute(""))
}

func TestActorHoldsRole(t *testing.T) {
	actor := Actor{Roles: []string{"owner", "office_admin"}}
	assert.True(t, actor.HoldsRole("owner"))
	assert.True(t, actor.HoldsRole("Office_Admin"))
	assert.False(t, actor.HoldsRole("admin"))
}
