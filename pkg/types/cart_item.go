package types

// CartItem is one line of a shopping session. Price and image are snapshots
// taken when the item was added; the order boundary revalidates everything.
type CartItem struct {
	ProductID     string             `json:"product_id"`
	Name          string             `json:"name"`
	Price         float64            `json:"price"`
	Image         string             `json:"image,omitempty"`
	Quantity      int                `json:"quantity"`
	Size          string             `json:"size,omitempty"`
	Color         string             `json:"color,omitempty"`
	Customization *CustomizationData `json:"customization,omitempty"`
}

// MergeableWith reports whether two cart lines can be quantity-combined.
// Lines merge only on identical product/size/color when neither side carries
// a customization: two designs are never treated as identical.
func (c CartItem) MergeableWith(other CartItem) bool {
	if c.Customization != nil || other.Customization != nil {
		return false
	}
	return c.ProductID == other.ProductID && c.Size == other.Size && c.Color == other.Color
}

// ToOrderItem converts the cart line into its order snapshot form.
func (c CartItem) ToOrderItem() OrderItem {
	return OrderItem{
		ProductID:     c.ProductID,
		Name:          c.Name,
		Price:         c.Price,
		Image:         c.Image,
		Quantity:      c.Quantity,
		Size:          c.Size,
		Color:         c.Color,
		Customization: c.Customization,
	}
}
