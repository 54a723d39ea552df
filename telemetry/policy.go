// api/telemetry/policy.go
package telemetry

import "github.com/f4lcon-tech/aqari/api/model"

// eventRemap collapses legacy event names into their canonical form.
// Remapping happens before the allow-list check, so policy entries only
// ever name canonical events.
var eventRemap = map[string]string{
	"contract_open":       "contract_view",
	"contracts_list_view": "contract_view",
	"payments_page_view":  "payment_view",
}

// allowedEvents lists the canonical events each role class may record.
// The office class records everything; roles outside the map record
// nothing.
var allowedEvents = map[model.Role]map[string]bool{
	model.RoleOwner: {
		"login":         true,
		"contract_view": true,
		"payment_view":  true,
	},
	model.RoleTenant: {
		"login":           true,
		"payment_attempt": true,
		"payment_success": true,
		"service_request": true,
	},
}

// Canonical returns the canonical name for an event type.
func Canonical(eventType string) string {
	if mapped, ok := eventRemap[eventType]; ok {
		return mapped
	}
	return eventType
}

// IsAllowed reports whether the role may record the (already canonical or
// legacy) event type. Only the office class records freely; admin actions
// are covered by the audit trail, not the telemetry stream.
func IsAllowed(role model.Role, eventType string) bool {
	if role == model.RoleOffice {
		return true
	}
	set, ok := allowedEvents[role]
	if !ok {
		return false
	}
	return set[Canonical(eventType)]
}
