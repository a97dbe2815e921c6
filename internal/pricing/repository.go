package pricing

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/printcraftlabs/printcraft-backend/pkg/db/models"
)

// Repository persists the bulk discount tier table.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListTiers returns every tier ordered by ascending quantity threshold.
func (r *Repository) ListTiers(ctx context.Context) ([]models.BulkDiscountTier, error) {
	var tiers []models.BulkDiscountTier
	if err := r.db.WithContext(ctx).
		Order("min_quantity ASC").
		Find(&tiers).Error; err != nil {
		return nil, err
	}
	return tiers, nil
}

// CreateTier inserts a new tier row.
func (r *Repository) CreateTier(ctx context.Context, tier *models.BulkDiscountTier) (*models.BulkDiscountTier, error) {
	if err := r.db.WithContext(ctx).Create(tier).Error; err != nil {
		return nil, err
	}
	return tier, nil
}

// UpdateTier applies the column map to the row and returns the fresh state.
func (r *Repository) UpdateTier(ctx context.Context, id uuid.UUID, updates map[string]any) (*models.BulkDiscountTier, error) {
	if len(updates) > 0 {
		result := r.db.WithContext(ctx).
			Model(&models.BulkDiscountTier{}).
			Where("id = ?", id).
			Updates(updates)
		if result.Error != nil {
			return nil, result.Error
		}
		if result.RowsAffected == 0 {
			return nil, gorm.ErrRecordNotFound
		}
	}
	var tier models.BulkDiscountTier
	if err := r.db.WithContext(ctx).First(&tier, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &tier, nil
}

// DeleteTier removes a tier by ID.
func (r *Repository) DeleteTier(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.BulkDiscountTier{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
