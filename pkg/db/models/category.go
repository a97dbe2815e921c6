package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/printcraftlabs/printcraft-backend/pkg/enums"
)

// Category groups catalog products. Slug is globally unique; duplicate
// creation surfaces as a conflict error at the service boundary.
type Category struct {
	ID          uuid.UUID            `gorm:"column:id;type:uuid;primaryKey"`
	Name        string               `gorm:"column:name;not null"`
	Slug        string               `gorm:"column:slug;not null;uniqueIndex:uq_categories_slug"`
	Status      enums.CategoryStatus `gorm:"column:status;not null;default:'active'"`
	Description string               `gorm:"column:description"`
	CreatedAt   time.Time            `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time            `gorm:"column:updated_at;autoUpdateTime"`
}

func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
