// api/model/jsonmap.go
package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
)

// JSONMap maps a Postgres jsonb column to a generic document. Audit rows
// use it for the before/after snapshots.
type JSONMap map[string]interface{}

func (m JSONMap) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	return json.Marshal(m)
}

func (m *JSONMap) Scan(value interface{}) error {
	if value == nil {
		*m = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, m)
	case string:
		return json.Unmarshal([]byte(v), m)
	default:
		return errors.New("unsupported type for JSONMap scan")
	}
}
