package enums

import "fmt"

// CategoryStatus controls whether a category is visible on the storefront.
type CategoryStatus string

const (
	CategoryStatusActive   CategoryStatus = "active"
	CategoryStatusInactive CategoryStatus = "inactive"
)

var validCategoryStatuses = []CategoryStatus{
	CategoryStatusActive,
	CategoryStatusInactive,
}

// String implements fmt.Stringer.
func (c CategoryStatus) String() string {
	return string(c)
}

// IsValid reports whether the value is a known CategoryStatus.
func (c CategoryStatus) IsValid() bool {
	for _, candidate := range validCategoryStatuses {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseCategoryStatus converts raw input into a CategoryStatus.
func ParseCategoryStatus(value string) (CategoryStatus, error) {
	for _, candidate := range validCategoryStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid category status %q", value)
}
