package types

import "database/sql/driver"

// SpecificationMap holds the free-form product specification document
// (material, weight, care instructions and whatever else admins add).
type SpecificationMap map[string]string

// Value implements driver.Valuer.
func (m SpecificationMap) Value() (driver.Value, error) {
	if m == nil {
		m = SpecificationMap{}
	}
	return valueJSONB(m)
}

// Scan implements sql.Scanner.
func (m *SpecificationMap) Scan(value any) error {
	return scanJSONB(value, m)
}
