package types

import (
	"database/sql/driver"

	"github.com/printcraftlabs/printcraft-backend/pkg/enums"
)

// CustomizationElement is one positioned design component (text or logo)
// placed on a product's printable surface. The shape is the strict set of
// recognized fields; anything else a client sends is dropped at the order
// boundary.
type CustomizationElement struct {
	ID       string            `json:"id" validate:"required"`
	Type     enums.ElementType `json:"type" validate:"required"`
	Content  string            `json:"content"`
	X        float64           `json:"x"`
	Y        float64           `json:"y"`
	Width    float64           `json:"width"`
	Height   float64           `json:"height"`
	Rotation float64           `json:"rotation"`
	ZIndex   int               `json:"z_index"`
	Side     enums.ElementSide `json:"side" validate:"required"`

	// text-only attributes
	FontSize   *float64 `json:"font_size,omitempty"`
	FontFamily *string  `json:"font_family,omitempty"`
	Color      *string  `json:"color,omitempty"`

	// logo-only attributes
	OriginalImageURL *string `json:"original_image_url,omitempty"`
}

// CustomizationData is the design document attached to a single line item.
// Elements keep their caller-supplied order; z-index stacking is a render
// concern, not a storage invariant.
type CustomizationData struct {
	ProductID            string                 `json:"product_id"`
	Elements             []CustomizationElement `json:"elements"`
	FrontPreviewImage    string                 `json:"front_preview_image,omitempty"`
	BackPreviewImage     string                 `json:"back_preview_image,omitempty"`
	PreviewImage         string                 `json:"preview_image,omitempty"`
	OriginalProductImage string                 `json:"original_product_image,omitempty"`
}

// HasLogo reports whether any element carries an uploaded image.
func (c *CustomizationData) HasLogo() bool {
	if c == nil {
		return false
	}
	for _, el := range c.Elements {
		if el.Type == enums.ElementTypeLogo {
			return true
		}
	}
	return false
}

// TextElementCount returns the number of text elements in the design.
func (c *CustomizationData) TextElementCount() int {
	if c == nil {
		return 0
	}
	count := 0
	for _, el := range c.Elements {
		if el.Type == enums.ElementTypeText {
			count++
		}
	}
	return count
}

// FontFamilies returns the distinct font families used by text elements.
func (c *CustomizationData) FontFamilies() []string {
	if c == nil {
		return nil
	}
	seen := map[string]bool{}
	var fonts []string
	for _, el := range c.Elements {
		if el.Type != enums.ElementTypeText || el.FontFamily == nil {
			continue
		}
		if !seen[*el.FontFamily] {
			seen[*el.FontFamily] = true
			fonts = append(fonts, *el.FontFamily)
		}
	}
	return fonts
}

// Value implements driver.Valuer so the document persists as jsonb.
func (c CustomizationData) Value() (driver.Value, error) {
	return valueJSONB(c)
}

// Scan implements sql.Scanner.
func (c *CustomizationData) Scan(value any) error {
	return scanJSONB(value, c)
}
