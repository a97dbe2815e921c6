package cart

import (
	"github.com/printcraftlabs/printcraft-backend/pkg/types"
)

// Cart is the session-scoped line item collection with derived aggregates.
// It is a pure value: every mutation recomputes Total and ItemCount, and no
// operation performs I/O. Validation happens at the order boundary, not here.
type Cart struct {
	Items     []types.CartItem `json:"items"`
	Total     float64          `json:"total"`
	ItemCount int              `json:"item_count"`
}

// New returns an empty cart.
func New() Cart {
	return Cart{Items: []types.CartItem{}}
}

// AddItem appends or merges one line. Customized items are always appended as
// distinct lines; plain items merge into an existing line with the same
// product/size/color. Quantity defaults to 1 when non-positive.
func (c Cart) AddItem(item types.CartItem, quantity int) Cart {
	if quantity <= 0 {
		quantity = 1
	}
	item.Quantity = quantity

	next := c.clone()
	if item.Customization == nil {
		for i := range next.Items {
			if next.Items[i].MergeableWith(item) {
				next.Items[i].Quantity += quantity
				return next.recompute()
			}
		}
	}
	next.Items = append(next.Items, item)
	return next.recompute()
}

// RemoveItem drops every line matching the product id. Absent ids are a no-op.
func (c Cart) RemoveItem(productID string) Cart {
	next := c.clone()
	kept := next.Items[:0]
	for _, item := range next.Items {
		if item.ProductID != productID {
			kept = append(kept, item)
		}
	}
	next.Items = kept
	return next.recompute()
}

// UpdateQuantity sets the quantity on every line matching the product id,
// clamping negative input to 0. Lines at 0 are removed.
func (c Cart) UpdateQuantity(productID string, quantity int) Cart {
	if quantity < 0 {
		quantity = 0
	}
	next := c.clone()
	kept := next.Items[:0]
	for _, item := range next.Items {
		if item.ProductID == productID {
			if quantity == 0 {
				continue
			}
			item.Quantity = quantity
		}
		kept = append(kept, item)
	}
	next.Items = kept
	return next.recompute()
}

// Clear empties the cart. Safe to call repeatedly.
func (c Cart) Clear() Cart {
	return New()
}

func (c Cart) clone() Cart {
	items := make([]types.CartItem, len(c.Items))
	copy(items, c.Items)
	c.Items = items
	return c
}

func (c Cart) recompute() Cart {
	total := 0.0
	count := 0
	for _, item := range c.Items {
		total += item.Price * float64(item.Quantity)
		count += item.Quantity
	}
	c.Total = total
	c.ItemCount = count
	return c
}
