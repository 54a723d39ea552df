package scope

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/f4lcon-tech/aqari/api/model"
)

func TestBuildAdminUnrestricted(t *testing.T) {
	b := NewBuilder()
	actor := model.Actor{UserID: 1, ActiveRole: "admin"}

	p, err := b.Build(actor, model.ResourcePayments)

	assert.NoError(t, err)
	assert.Equal(t, "TRUE", p.Where)
	assert.Empty(t, p.Joins)
	assert.Empty(t, p.Args)
}

func TestBuildOfficeMembershipSet(t *testing.T) {
	b := NewBuilder()
	actor := model.Actor{UserID: 42, ActiveRole: "office_admin"}

	p, err := b.Build(actor, model.ResourcePayments)

	assert.NoError(t, err)
	assert.Contains(t, p.Where, "COALESCE(c.office_id, p.office_id)")
	assert.Contains(t, p.Where, "is_owner_office = false")
	assert.Contains(t, p.Where, "office_users")
	assert.Equal(t, []interface{}{42, 42}, p.Args)
	assert.False(t, p.Distinct)
}

func TestBuildSelfOfficeAdminSingleOffice(t *testing.T) {
	b := NewBuilder()
	actor := model.Actor{UserID: 7, ActiveRole: "self_office_admin"}

	p, err := b.Build(actor, model.ResourceExpenses)

	assert.NoError(t, err)
	assert.Contains(t, p.Where, "is_owner_office = true")
	assert.Contains(t, p.Where, "LIMIT 1")
	assert.Equal(t, []interface{}{7}, p.Args)
}

func TestBuildOwnerPartyPredicate(t *testing.T) {
	b := NewBuilder()
	actor := model.Actor{UserID: 9, Phone: "+966 50 123 4567", ActiveRole: "owner"}

	p, err := b.Build(actor, model.ResourcePayments)

	assert.NoError(t, err)
	assert.True(t, p.Distinct)
	assert.Contains(t, p.Where, "LOWER(TRIM(cp.role))")
	assert.Contains(t, p.Where, "REPLACE(REPLACE(pt.phone, '+966', '0'), ' ', '')")
	assert.NotContains(t, p.Where, "cp.phone")
	assert.Equal(t, []interface{}{"lessor", "مالك", "+966 50 123 4567"}, p.Args)
	assert.Contains(t, p.Joins, "JOIN contract_parties cp ON cp.contract_id = c.id")
	assert.Contains(t, p.Joins, "JOIN parties pt ON pt.id = cp.party_id")
}

func TestBuildTenantPartyPredicate(t *testing.T) {
	b := NewBuilder()
	actor := model.Actor{UserID: 9, Phone: "0501234567", ActiveRole: "مستأجر"}

	p, err := b.Build(actor, model.ResourceContracts)

	assert.NoError(t, err)
	assert.True(t, p.Distinct)
	assert.Equal(t, []interface{}{"tenant", "مستأجر", "0501234567"}, p.Args)
}

func TestBuildUnknownRoleDenies(t *testing.T) {
	b := NewBuilder()
	actor := model.Actor{UserID: 3, ActiveRole: "auditor"}

	p, err := b.Build(actor, model.ResourcePayments)

	assert.NoError(t, err)
	assert.True(t, p.IsDeny())
}

func TestBuildUnknownResourceFails(t *testing.T) {
	b := NewBuilder()
	actor := model.Actor{UserID: 3, ActiveRole: "admin"}

	p, err := b.Build(actor, model.ResourceUnknown)

	assert.Error(t, err)
	assert.True(t, p.IsDeny())
}

func TestBuildOfficeAliasCollapse(t *testing.T) {
	b := NewBuilder()
	for _, raw := range []string{"office", "office_user", "OFFICE_ADMIN"} {
		actor := model.Actor{UserID: 5, ActiveRole: raw}
		p, err := b.Build(actor, model.ResourceProperties)
		assert.NoError(t, err)
		assert.Contains(t, p.Where, "office_users", "role %s", raw)
	}
}

func TestSelectClause(t *testing.T) {
	assert.Equal(t, "SELECT", Predicate{}.SelectClause())
	assert.Equal(t, "SELECT DISTINCT", Predicate{Distinct: true}.SelectClause())
}
