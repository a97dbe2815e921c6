package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BulkDiscountTier unlocks a percentage discount at a quantity threshold.
// Tiers are non-cumulative; pricing picks the highest threshold met.
type BulkDiscountTier struct {
	ID              uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	MinQuantity     int       `gorm:"column:min_quantity;not null;uniqueIndex:uq_bulk_discount_tiers_min_quantity"`
	DiscountPercent float64   `gorm:"column:discount_percent;not null"`
	CreatedAt       time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (b *BulkDiscountTier) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}
