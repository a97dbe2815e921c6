package enums

import "fmt"

// ProductFor describes which storefront surfaces a product is sold through.
type ProductFor string

const (
	ProductForSale          ProductFor = "sale"
	ProductForCustomization ProductFor = "customization"
	ProductForAll           ProductFor = "all"
)

var validProductFors = []ProductFor{
	ProductForSale,
	ProductForCustomization,
	ProductForAll,
}

// String implements fmt.Stringer.
func (p ProductFor) String() string {
	return string(p)
}

// IsValid reports whether the value is a known ProductFor.
func (p ProductFor) IsValid() bool {
	for _, candidate := range validProductFors {
		if candidate == p {
			return true
		}
	}
	return false
}

// Customizable reports whether the product can carry a customization payload.
func (p ProductFor) Customizable() bool {
	return p == ProductForCustomization || p == ProductForAll
}

// ParseProductFor converts raw input into a ProductFor.
func ParseProductFor(value string) (ProductFor, error) {
	for _, candidate := range validProductFors {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid product audience %q", value)
}
