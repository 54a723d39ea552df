// api/model/resource.go
package model

import "time"

// ResourceType identifies one of the scoped data domains.
type ResourceType string

const (
	ResourceContracts   ResourceType = "contracts"
	ResourceProperties  ResourceType = "properties"
	ResourcePayments    ResourceType = "payments"
	ResourceExpenses    ResourceType = "expenses"
	ResourceMaintenance ResourceType = "maintenance"
	ResourceUnits       ResourceType = "units"
	ResourceOffices     ResourceType = "offices"
	ResourceUsers       ResourceType = "users"
	ResourceReceipts    ResourceType = "receipts"
	ResourceRoles       ResourceType = "roles"
	ResourcePermissions ResourceType = "permissions"
	ResourceUserRoles   ResourceType = "user_roles"

	// ResourceUnknown marks writes on routes outside the closed table set.
	// Audit rows still record them, without snapshots.
	ResourceUnknown ResourceType = "unknown"
)

// ResourceDescriptor describes how a scoped table is queried: its alias in
// the scoping SQL, which linkage columns it carries, and its stable order.
type ResourceDescriptor struct {
	Type        ResourceType
	Table       string
	Alias       string
	HasOfficeID bool
	HasContract bool
	HasProperty bool
	OrderBy     string
}

// descriptors is the closed registry of scoped tables. Route prefixes are
// resolved against it with an exact lookup; anything else is unknown.
var descriptors = map[ResourceType]ResourceDescriptor{
	ResourceContracts: {
		Type: ResourceContracts, Table: "contracts", Alias: "c",
		HasOfficeID: true, HasProperty: true,
		OrderBy: "c.start_date DESC NULLS LAST, c.id DESC",
	},
	ResourceProperties: {
		Type: ResourceProperties, Table: "properties", Alias: "p",
		HasOfficeID: true,
		OrderBy:     "p.created_at DESC, p.id DESC",
	},
	ResourcePayments: {
		Type: ResourcePayments, Table: "payments", Alias: "pay",
		HasOfficeID: true, HasContract: true,
		OrderBy: "pay.due_date ASC NULLS LAST, pay.id ASC",
	},
	ResourceExpenses: {
		Type: ResourceExpenses, Table: "expenses", Alias: "e",
		HasOfficeID: true, HasContract: true, HasProperty: true,
		OrderBy: "e.date DESC, e.id DESC",
	},
	ResourceMaintenance: {
		Type: ResourceMaintenance, Table: "maintenance", Alias: "m",
		HasOfficeID: true, HasProperty: true,
		OrderBy: "m.created_at DESC, m.id DESC",
	},
	ResourceUnits: {
		Type: ResourceUnits, Table: "units", Alias: "u",
		HasProperty: true,
		OrderBy:     "u.id ASC",
	},
	ResourceOffices: {
		Type: ResourceOffices, Table: "offices", Alias: "o",
		OrderBy: "o.id ASC",
	},
	ResourceUsers: {
		Type: ResourceUsers, Table: "users", Alias: "usr",
		OrderBy: "usr.id ASC",
	},
	ResourceReceipts: {
		Type: ResourceReceipts, Table: "receipts", Alias: "r",
		HasOfficeID: true, HasContract: true,
		OrderBy: "r.id DESC",
	},
	ResourceRoles:       {Type: ResourceRoles, Table: "roles", Alias: "ro", OrderBy: "ro.id ASC"},
	ResourcePermissions: {Type: ResourcePermissions, Table: "permissions", Alias: "pm", OrderBy: "pm.id ASC"},
	ResourceUserRoles:   {Type: ResourceUserRoles, Table: "user_roles", Alias: "ur", OrderBy: "ur.id ASC"},
}

// routeTables maps the first URL path segment to its audited table. The
// mapping is a closed lookup; it never derives table names from paths.
var routeTables = map[string]ResourceType{
	"contracts":   ResourceContracts,
	"properties":  ResourceProperties,
	"payments":    ResourcePayments,
	"expenses":    ResourceExpenses,
	"maintenance": ResourceMaintenance,
	"units":       ResourceUnits,
	"offices":     ResourceOffices,
	"users":       ResourceUsers,
	"receipts":    ResourceReceipts,
	"roles":       ResourceRoles,
	"permissions": ResourcePermissions,
	"user-roles":  ResourceUserRoles,
}

// Descriptor returns the registry entry for a resource type.
func Descriptor(t ResourceType) (ResourceDescriptor, bool) {
	d, ok := descriptors[t]
	return d, ok
}

// ResourceForRoute resolves a route segment to a resource type, or
// ResourceUnknown when the segment is outside the closed set.
func ResourceForRoute(segment string) ResourceType {
	if t, ok := routeTables[segment]; ok {
		return t
	}
	return ResourceUnknown
}

// IsKnownResource reports whether t is a registered scoped table.
func IsKnownResource(t ResourceType) bool {
	_, ok := descriptors[t]
	return ok
}

// Contract is a row of the contracts table, as returned by scoped listings.
type Contract struct {
	ID         int        `db:"id" json:"id"`
	OfficeID   *int       `db:"office_id" json:"office_id"`
	PropertyID *int       `db:"property_id" json:"property_id"`
	UnitID     *int       `db:"unit_id" json:"unit_id"`
	StartDate  *time.Time `db:"start_date" json:"start_date"`
	EndDate    *time.Time `db:"end_date" json:"end_date"`
	Status     string     `db:"status" json:"status"`
}

// Payment is a scoped payment row. Amount and remaining are coalesced to
// zero in SQL so arithmetic never sees NULL.
type Payment struct {
	ID         int        `db:"id" json:"id"`
	ContractID *int       `db:"contract_id" json:"contract_id"`
	DueDate    *time.Time `db:"due_date" json:"due_date"`
	Amount     float64    `db:"amount" json:"amount"`
	PaidAmount float64    `db:"paid_amount" json:"paid_amount"`
	Remaining  float64    `db:"remaining" json:"remaining"`
	Status     string     `db:"status" json:"status"`
}

// Expense is a scoped expense row.
type Expense struct {
	ID           int        `db:"id" json:"id"`
	OfficeID     *int       `db:"office_id" json:"office_id"`
	PropertyID   *int       `db:"property_id" json:"property_id"`
	UnitID       *int       `db:"unit_id" json:"unit_id"`
	ContractID   *int       `db:"contract_id" json:"contract_id"`
	ExpenseScope string     `db:"expense_scope" json:"expense_scope"`
	PaidBy       string     `db:"paid_by" json:"paid_by"`
	Amount       float64    `db:"amount" json:"amount"`
	Description  *string    `db:"description" json:"description"`
	Date         *time.Time `db:"date" json:"date"`
}

// MaintenanceRequest is a scoped maintenance row.
type MaintenanceRequest struct {
	ID          int        `db:"id" json:"id"`
	OfficeID    *int       `db:"office_id" json:"office_id"`
	PropertyID  *int       `db:"property_id" json:"property_id"`
	UnitID      *int       `db:"unit_id" json:"unit_id"`
	Title       string     `db:"title" json:"title"`
	Description *string    `db:"description" json:"description"`
	Status      string     `db:"status" json:"status"`
	Cost        float64    `db:"cost" json:"cost"`
	CreatedAt   *time.Time `db:"created_at" json:"created_at"`
}
