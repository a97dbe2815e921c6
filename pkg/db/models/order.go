package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/printcraftlabs/printcraft-backend/pkg/enums"
	"github.com/printcraftlabs/printcraft-backend/pkg/types"
)

// Order is the persisted checkout document. Line items and customer info are
// embedded jsonb snapshots; the order never references live catalog rows.
// Status and user id are server-authoritative and overwritten on submit.
type Order struct {
	ID            uuid.UUID           `gorm:"column:id;type:uuid;primaryKey"`
	UserID        uuid.UUID           `gorm:"column:user_id;type:uuid;not null;index"`
	Items         types.OrderItemList `gorm:"column:items;type:jsonb;not null"`
	CustomerInfo  types.CustomerInfo  `gorm:"column:customer_info;type:jsonb;not null"`
	Status        enums.OrderStatus   `gorm:"column:status;not null;default:'pending';index"`
	Subtotal      float64             `gorm:"column:subtotal;not null"`
	Discount      float64             `gorm:"column:discount;not null;default:0"`
	CouponCode    *string             `gorm:"column:coupon_code"`
	TotalAmount   float64             `gorm:"column:total_amount;not null"`
	PaymentMethod string              `gorm:"column:payment_method;not null"`
	CreatedAt     time.Time           `gorm:"column:created_at;autoCreateTime;index"`
	UpdatedAt     time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}
