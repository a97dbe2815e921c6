package orders

import (
	"time"

	"github.com/google/uuid"

	"github.com/printcraftlabs/printcraft-backend/pkg/db/models"
	"github.com/printcraftlabs/printcraft-backend/pkg/enums"
	"github.com/printcraftlabs/printcraft-backend/pkg/pagination"
	"github.com/printcraftlabs/printcraft-backend/pkg/types"
)

// OrderDTO is the transport shape for a persisted order.
type OrderDTO struct {
	ID            uuid.UUID           `json:"id"`
	UserID        uuid.UUID           `json:"user_id"`
	Items         types.OrderItemList `json:"items"`
	CustomerInfo  types.CustomerInfo  `json:"customer_info"`
	Status        enums.OrderStatus   `json:"status"`
	Subtotal      float64             `json:"subtotal"`
	Discount      float64             `json:"discount"`
	CouponCode    *string             `json:"coupon_code,omitempty"`
	TotalAmount   float64             `json:"total_amount"`
	PaymentMethod string              `json:"payment_method"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`
}

// NewOrderDTO converts the persisted row into its transport shape.
func NewOrderDTO(m *models.Order) *OrderDTO {
	if m == nil {
		return nil
	}
	return &OrderDTO{
		ID:            m.ID,
		UserID:        m.UserID,
		Items:         m.Items,
		CustomerInfo:  m.CustomerInfo,
		Status:        m.Status,
		Subtotal:      m.Subtotal,
		Discount:      m.Discount,
		CouponCode:    m.CouponCode,
		TotalAmount:   m.TotalAmount,
		PaymentMethod: m.PaymentMethod,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

// SubmitOrderInput is the checkout payload after request decoding. Status and
// user attribution from the client are ignored; the engine forces both.
type SubmitOrderInput struct {
	Items         []types.CartItem   `json:"items"`
	CustomerInfo  types.CustomerInfo `json:"customer_info"`
	CouponCode    string             `json:"coupon_code,omitempty"`
	PaymentMethod string             `json:"payment_method"`
}

// AdminListFilters narrows the back-office order listing.
type AdminListFilters struct {
	Search   string
	Status   *enums.OrderStatus
	DateFrom *time.Time
	DateTo   *time.Time
}

// ListInput combines filters with cursor pagination for the admin listing.
type ListInput struct {
	Filters    AdminListFilters
	Pagination pagination.Params
}

// ListResult is one page of orders.
type ListResult struct {
	Orders     []OrderDTO `json:"orders"`
	NextCursor string     `json:"next_cursor,omitempty"`
}
