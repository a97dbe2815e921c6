package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/printcraftlabs/printcraft-backend/pkg/enums"
	"github.com/printcraftlabs/printcraft-backend/pkg/types"
)

// Product represents the canonical catalog listing. Prices are whole
// currency units. InStock is deliberately not derived from Stock; admins
// set both independently.
type Product struct {
	ID            uuid.UUID              `gorm:"column:id;type:uuid;primaryKey"`
	Name          string                 `gorm:"column:name;not null"`
	Description   string                 `gorm:"column:description"`
	Price         float64                `gorm:"column:price;not null"`
	OriginalPrice *float64               `gorm:"column:original_price"`
	CostPrice     float64                `gorm:"column:cost_price;not null;default:0"`
	Category      string                 `gorm:"column:category;not null;index"`
	ProductFor    enums.ProductFor       `gorm:"column:product_for;not null;default:'sale'"`
	Stock         int                    `gorm:"column:stock;not null;default:0"`
	InStock       bool                   `gorm:"column:in_stock;not null;default:true"`
	FrontImage    string                 `gorm:"column:front_image"`
	BackImage     string                 `gorm:"column:back_image"`
	Gallery       pq.StringArray         `gorm:"column:gallery;type:text[]"`
	Rating        float64                `gorm:"column:rating;not null;default:0"`
	Reviews       int                    `gorm:"column:reviews;not null;default:0"`
	IsFeatured    bool                   `gorm:"column:is_featured;not null;default:false"`
	Sizes         pq.StringArray         `gorm:"column:sizes;type:text[]"`
	Colors        pq.StringArray         `gorm:"column:colors;type:text[]"`
	Tags          pq.StringArray         `gorm:"column:tags;type:text[]"`
	Specification types.SpecificationMap `gorm:"column:specification;type:jsonb"`
	CreatedAt     time.Time              `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time              `gorm:"column:updated_at;autoUpdateTime"`
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
