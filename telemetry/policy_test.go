package telemetry

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/f4lcon-tech/aqari/api/model"
)

func TestIsAllowedOfficeRecordsEverything(t *testing.T) {
	assert.True(t, IsAllowed(model.RoleOffice, "login"))
	assert.True(t, IsAllowed(model.RoleOffice, "report_pdf_download"))
	assert.True(t, IsAllowed(model.RoleOffice, "anything_at_all"))
}

func TestIsAllowedOwner(t *testing.T) {
	assert.True(t, IsAllowed(model.RoleOwner, "login"))
	assert.True(t, IsAllowed(model.RoleOwner, "contract_view"))
	assert.True(t, IsAllowed(model.RoleOwner, "payment_view"))
	assert.False(t, IsAllowed(model.RoleOwner, "payment_attempt"))
	assert.False(t, IsAllowed(model.RoleOwner, "service_request"))
}

func TestIsAllowedTenant(t *testing.T) {
	assert.True(t, IsAllowed(model.RoleTenant, "payment_success"))
	assert.True(t, IsAllowed(model.RoleTenant, "service_request"))
	assert.False(t, IsAllowed(model.RoleTenant, "contract_view"))
}

func TestIsAllowedRemapBeforeCheck(t *testing.T) {
	// Legacy names must collapse to their canonical form before the
	// allow-list is consulted.
	assert.True(t, IsAllowed(model.RoleOwner, "contract_open"))
	assert.True(t, IsAllowed(model.RoleOwner, "contracts_list_view"))
	assert.True(t, IsAllowed(model.RoleOwner, "payments_page_view"))
	assert.False(t, IsAllowed(model.RoleTenant, "contract_open"))
}

func TestIsAllowedUnknownRoleDenied(t *testing.T) {
	assert.False(t, IsAllowed(model.Role("accountant"), "login"))
	assert.False(t, IsAllowed(model.RoleAdmin, "login"))
	assert.False(t, IsAllowed(model.Role(""), "login"))
}

func TestCanonical(t *testing.T) {
	assert.Equal(t, "contract_view", Canonical("contract_open"))
	assert.Equal(t, "payment_view", Canonical("payments_page_view"))
	assert.Equal(t, "login", Canonical("login"))
}
