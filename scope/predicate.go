// api/scope/predicate.go
package scope

import "strings"

// Predicate is a composable row filter for one scoped listing. Joins and
// the WHERE fragment use ? bindvars; the DAO rebinds the assembled query
// for Postgres before executing it.
type Predicate struct {
	Joins    []string
	Where    string
	Args     []interface{}
	Distinct bool
}

// Unrestricted matches every row. Only the admin role receives it.
func Unrestricted() Predicate {
	return Predicate{Where: "TRUE"}
}

// Deny matches no rows. Unknown roles fall through to it.
func Deny() Predicate {
	return Predicate{Where: "FALSE"}
}

// IsDeny reports whether the predicate can never match.
func (p Predicate) IsDeny() bool {
	return p.Where == "FALSE"
}

// SelectClause returns SELECT or SELECT DISTINCT per the predicate.
func (p Predicate) SelectClause() string {
	if p.Distinct {
		return "SELECT DISTINCT"
	}
	return "SELECT"
}

// JoinClause renders the predicate's joins as a single SQL fragment.
func (p Predicate) JoinClause() string {
	if len(p.Joins) == 0 {
		return ""
	}
	return " " + strings.Join(p.Joins, " ")
}
