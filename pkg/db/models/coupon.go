package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/printcraftlabs/printcraft-backend/pkg/enums"
)

// Coupon is an admin-managed discount code. UsedCount is only ever mutated
// through a conditional increment so concurrent redemptions cannot exceed
// UsageLimit.
type Coupon struct {
	ID           uuid.UUID          `gorm:"column:id;type:uuid;primaryKey"`
	Code         string             `gorm:"column:code;not null;uniqueIndex:uq_coupons_code"`
	Description  string             `gorm:"column:description"`
	DiscountType enums.DiscountType `gorm:"column:discount_type;not null"`
	Value        float64            `gorm:"column:value;not null"`
	MinOrder     float64            `gorm:"column:min_order;not null;default:0"`
	MaxDiscount  float64            `gorm:"column:max_discount;not null"`
	ValidFrom    time.Time          `gorm:"column:valid_from;not null"`
	ValidTo      time.Time          `gorm:"column:valid_to;not null"`
	UsageLimit   int                `gorm:"column:usage_limit;not null"`
	UsedCount    int                `gorm:"column:used_count;not null;default:0"`
	Status       enums.CouponStatus `gorm:"column:status;not null;default:'active'"`
	CreatedAt    time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}

func (c *Coupon) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
