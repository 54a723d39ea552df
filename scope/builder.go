// api/scope/builder.go
package scope

import (
	"fmt"
	"strings"

	"github.com/f4lcon-tech/aqari/api/model"
)

// Party role labels accepted in contract_parties rows. Legacy rows carry
// the Arabic labels, newer rows the English ones.
var (
	lessorPartyRoles = []string{"lessor", "مالك"}
	tenantPartyRoles = []string{"tenant", "مستأجر"}
)

// Builder produces the row filter a given actor is allowed to see for a
// given resource. It holds no state; every decision is a pure function of
// the actor and the resource registry.
type Builder struct{}

func NewBuilder() *Builder {
	return &Builder{}
}

// Build returns the predicate for one actor/resource pair. Roles outside
// the known set always receive the deny predicate, never an error.
func (b *Builder) Build(actor model.Actor, resource model.ResourceType) (Predicate, error) {
	desc, ok := model.Descriptor(resource)
	if !ok {
		return Deny(), fmt.Errorf("no descriptor for resource %q", resource)
	}

	switch effectiveScopeRole(actor) {
	case model.RoleAdmin:
		return Unrestricted(), nil
	case model.RoleSelfOfficeAdmin:
		return b.ownerOfficePredicate(desc, actor.UserID), nil
	case model.RoleOffice:
		return b.officePredicate(desc, actor.UserID), nil
	case model.RoleOwner:
		return b.partyPredicate(desc, actor.Phone, lessorPartyRoles), nil
	case model.RoleTenant:
		return b.partyPredicate(desc, actor.Phone, tenantPartyRoles), nil
	}
	return Deny(), nil
}

// effectiveScopeRole keeps the self office distinction that the telemetry
// normalization collapses: a self office admin sees exactly one office,
// the rest of the office class sees the membership set.
func effectiveScopeRole(actor model.Actor) model.Role {
	if strings.EqualFold(strings.TrimSpace(actor.ActiveRole), string(model.RoleSelfOfficeAdmin)) {
		return model.RoleSelfOfficeAdmin
	}
	return actor.EffectiveRole()
}

// officePredicate restricts rows to the offices the user manages or is an
// active member of.
func (b *Builder) officePredicate(desc model.ResourceDescriptor, userID int) Predicate {
	expr, joins := officeColumn(desc)
	if expr == "" {
		return Deny()
	}
	return Predicate{
		Joins: joins,
		Where: expr + ` IN (
			SELECT id FROM offices WHERE owner_id = ? AND is_owner_office = false
			UNION
			SELECT office_id FROM office_users WHERE user_id = ? AND is_active = true
		)`,
		Args: []interface{}{userID, userID},
	}
}

// ownerOfficePredicate restricts rows to the user's single personal office.
func (b *Builder) ownerOfficePredicate(desc model.ResourceDescriptor, userID int) Predicate {
	expr, joins := officeColumn(desc)
	if expr == "" {
		return Deny()
	}
	return Predicate{
		Joins: joins,
		Where: expr + ` = (
			SELECT id FROM offices WHERE owner_id = ? AND is_owner_office = true
			ORDER BY id LIMIT 1
		)`,
		Args: []interface{}{userID},
	}
}

// partyPredicate restricts rows to contracts the actor is a party of under
// one of the accepted party role labels. contract_parties only links the
// contract to a party row; the phone lives on parties. Phone comparison
// normalizes both sides the same way, so stored formatting never hides a
// match. Results are DISTINCT because a contract may legitimately carry
// duplicate party rows for co-owners.
func (b *Builder) partyPredicate(desc model.ResourceDescriptor, phone string, partyRoles []string) Predicate {
	joins, ok := contractJoins(desc)
	if !ok {
		return Deny()
	}
	placeholders := make([]string, len(partyRoles))
	args := make([]interface{}, 0, len(partyRoles)+1)
	for i, r := range partyRoles {
		placeholders[i] = "?"
		args = append(args, r)
	}
	args = append(args, phone)

	joins = append(joins,
		"JOIN contract_parties cp ON cp.contract_id = c.id",
		"JOIN parties pt ON pt.id = cp.party_id")
	return Predicate{
		Joins: joins,
		Where: fmt.Sprintf(`LOWER(TRIM(cp.role)) IN (%s)
			AND REPLACE(REPLACE(pt.phone, '+966', '0'), ' ', '') = REPLACE(REPLACE(?, '+966', '0'), ' ', '')`,
			strings.Join(placeholders, ", ")),
		Args:     args,
		Distinct: true,
	}
}

// officeColumn returns the COALESCE expression locating the office a row
// belongs to, plus the joins that expression needs.
func officeColumn(desc model.ResourceDescriptor) (string, []string) {
	switch desc.Type {
	case model.ResourcePayments:
		return "COALESCE(c.office_id, p.office_id)", []string{
			"LEFT JOIN contracts c ON pay.contract_id = c.id",
			"LEFT JOIN properties p ON c.property_id = p.id",
		}
	case model.ResourceExpenses:
		return "COALESCE(c.office_id, p.office_id, e.office_id)", []string{
			"LEFT JOIN contracts c ON e.contract_id = c.id",
			"LEFT JOIN properties p ON COALESCE(e.property_id, c.property_id) = p.id",
		}
	case model.ResourceContracts:
		return "COALESCE(c.office_id, p.office_id)", []string{
			"LEFT JOIN properties p ON c.property_id = p.id",
		}
	case model.ResourceProperties:
		return "p.office_id", nil
	case model.ResourceMaintenance:
		return "COALESCE(m.office_id, p.office_id)", []string{
			"LEFT JOIN properties p ON m.property_id = p.id",
		}
	case model.ResourceUnits:
		return "p.office_id", []string{
			"JOIN properties p ON u.property_id = p.id",
		}
	case model.ResourceReceipts:
		return "COALESCE(c.office_id, r.office_id)", []string{
			"LEFT JOIN contracts c ON r.contract_id = c.id",
		}
	case model.ResourceOffices:
		return "o.id", nil
	}
	return "", nil
}

// contractJoins returns the joins that reach the contracts table from the
// resource, aliased as c. Resources with no contract path cannot carry
// party predicates.
func contractJoins(desc model.ResourceDescriptor) ([]string, bool) {
	switch desc.Type {
	case model.ResourceContracts:
		return nil, true
	case model.ResourcePayments:
		return []string{"JOIN contracts c ON pay.contract_id = c.id"}, true
	case model.ResourceExpenses:
		return []string{"JOIN contracts c ON e.contract_id = c.id"}, true
	case model.ResourceReceipts:
		return []string{"JOIN contracts c ON r.contract_id = c.id"}, true
	case model.ResourceProperties:
		return []string{"JOIN contracts c ON c.property_id = p.id"}, true
	case model.ResourceUnits:
		return []string{"JOIN contracts c ON c.unit_id = u.id"}, true
	case model.ResourceMaintenance:
		return []string{"JOIN contracts c ON c.property_id = m.property_id"}, true
	}
	return nil, false
}
