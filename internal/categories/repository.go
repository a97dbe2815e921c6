package category

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/printcraftlabs/printcraft-backend/pkg/db/models"
	"github.com/printcraftlabs/printcraft-backend/pkg/enums"
)

// Repository wires the category persistence helpers.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// Create inserts a new category row. Unique slug violations bubble up raw so
// the service can map them to a conflict.
func (r *Repository) Create(ctx context.Context, category *models.Category) (*models.Category, error) {
	if err := r.db.WithContext(ctx).Create(category).Error; err != nil {
		return nil, err
	}
	return category, nil
}

// FindByID loads a single category.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	var category models.Category
	if err := r.db.WithContext(ctx).First(&category, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

// List returns categories ordered by name, optionally restricted to a status.
func (r *Repository) List(ctx context.Context, status *enums.CategoryStatus) ([]models.Category, error) {
	qb := r.db.WithContext(ctx).Model(&models.Category{})
	if status != nil {
		qb = qb.Where("status = ?", *status)
	}
	var rows []models.Category
	err := qb.Order("name ASC").Find(&rows).Error
	return rows, err
}

// Update applies the column map to the row and returns the fresh state.
func (r *Repository) Update(ctx context.Context, id uuid.UUID, updates map[string]any) (*models.Category, error) {
	if len(updates) > 0 {
		result := r.db.WithContext(ctx).
			Model(&models.Category{}).
			Where("id = ?", id).
			Updates(updates)
		if result.Error != nil {
			return nil, result.Error
		}
		if result.RowsAffected == 0 {
			return nil, gorm.ErrRecordNotFound
		}
	}
	return r.FindByID(ctx, id)
}

// Delete removes a category by ID.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Category{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
