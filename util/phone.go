// api/util/phone.go
package util

import "strings"

// NormalizePhone rewrites a phone number to the local comparable form:
// the +966 country prefix becomes a leading 0 and spaces are stripped.
// It mirrors the REPLACE chain used inside the scoping SQL so Go-side
// and SQL-side comparisons agree. The function is idempotent.
func NormalizePhone(phone string) string {
	normalized := strings.ReplaceAll(phone, "+966", "0")
	normalized = strings.ReplaceAll(normalized, " ", "")
	return normalized
}
