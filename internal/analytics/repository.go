package analytics

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/printcraftlabs/printcraft-backend/pkg/db/models"
	"github.com/printcraftlabs/printcraft-backend/pkg/enums"
)

// revenueStatuses are the order states that count toward revenue. Orders
// still pending or cancelled never contribute.
var revenueStatuses = []enums.OrderStatus{
	enums.OrderStatusShipped,
	enums.OrderStatusDelivered,
}

// Repository exposes the read-only scans the aggregator runs over the orders
// and products tables.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListRevenueOrders returns every order in a revenue-bearing status.
func (r *Repository) ListRevenueOrders(ctx context.Context) ([]models.Order, error) {
	var rows []models.Order
	err := r.db.WithContext(ctx).
		Where("status IN ?", revenueStatuses).
		Find(&rows).Error
	return rows, err
}

// ListRevenueOrdersBetween returns revenue-bearing orders created in
// [from, to).
func (r *Repository) ListRevenueOrdersBetween(ctx context.Context, from, to time.Time) ([]models.Order, error) {
	var rows []models.Order
	err := r.db.WithContext(ctx).
		Where("status IN ?", revenueStatuses).
		Where("created_at >= ? AND created_at < ?", from, to).
		Find(&rows).Error
	return rows, err
}

// ListRecentOrders returns the newest orders regardless of status.
func (r *Repository) ListRecentOrders(ctx context.Context, limit int) ([]models.Order, error) {
	var rows []models.Order
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}

// ListProducts returns the full catalog for profit attribution.
func (r *Repository) ListProducts(ctx context.Context) ([]models.Product, error) {
	var rows []models.Product
	err := r.db.WithContext(ctx).Find(&rows).Error
	return rows, err
}
