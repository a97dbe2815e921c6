package types

import "database/sql/driver"

// OrderItem is the denormalized snapshot of a cart line stored on the order
// document. Price is the add-to-cart snapshot, never re-fetched.
type OrderItem struct {
	ProductID     string             `json:"product_id"`
	Name          string             `json:"name"`
	Price         float64            `json:"price"`
	Image         string             `json:"image,omitempty"`
	Quantity      int                `json:"quantity"`
	Size          string             `json:"size,omitempty"`
	Color         string             `json:"color,omitempty"`
	Customization *CustomizationData `json:"customization,omitempty"`
}

// OrderItemList persists the ordered line item sequence as one jsonb column.
type OrderItemList []OrderItem

// Value implements driver.Valuer.
func (l OrderItemList) Value() (driver.Value, error) {
	if l == nil {
		l = OrderItemList{}
	}
	return valueJSONB(l)
}

// Scan implements sql.Scanner.
func (l *OrderItemList) Scan(value any) error {
	return scanJSONB(value, l)
}

// CustomerInfo carries the contact and shipping block captured at checkout.
type CustomerInfo struct {
	Name       string `json:"name" validate:"required"`
	Email      string `json:"email" validate:"required,email"`
	Phone      string `json:"phone,omitempty"`
	Address    string `json:"address" validate:"required"`
	City       string `json:"city" validate:"required"`
	State      string `json:"state,omitempty"`
	PostalCode string `json:"postal_code" validate:"required"`
	Country    string `json:"country" validate:"required"`
}

// Value implements driver.Valuer.
func (c CustomerInfo) Value() (driver.Value, error) {
	return valueJSONB(c)
}

// Scan implements sql.Scanner.
func (c *CustomerInfo) Scan(value any) error {
	return scanJSONB(value, c)
}
