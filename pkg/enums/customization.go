package enums

import "fmt"

// ElementType discriminates customization element payloads.
type ElementType string

const (
	ElementTypeText ElementType = "text"
	ElementTypeLogo ElementType = "logo"
)

var validElementTypes = []ElementType{
	ElementTypeText,
	ElementTypeLogo,
}

// String implements fmt.Stringer.
func (e ElementType) String() string {
	return string(e)
}

// IsValid reports whether the value is a known ElementType.
func (e ElementType) IsValid() bool {
	for _, candidate := range validElementTypes {
		if candidate == e {
			return true
		}
	}
	return false
}

// ParseElementType converts raw input into an ElementType.
func ParseElementType(value string) (ElementType, error) {
	for _, candidate := range validElementTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid element type %q", value)
}

// ElementSide identifies the printable surface an element is placed on.
type ElementSide string

const (
	ElementSideFront ElementSide = "front"
	ElementSideBack  ElementSide = "back"
)

var validElementSides = []ElementSide{
	ElementSideFront,
	ElementSideBack,
}

// String implements fmt.Stringer.
func (e ElementSide) String() string {
	return string(e)
}

// IsValid reports whether the value is a known ElementSide.
func (e ElementSide) IsValid() bool {
	for _, candidate := range validElementSides {
		if candidate == e {
			return true
		}
	}
	return false
}

// ParseElementSide converts raw input into an ElementSide.
func ParseElementSide(value string) (ElementSide, error) {
	for _, candidate := range validElementSides {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid element side %q", value)
}
