package pricing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/printcraftlabs/printcraft-backend/pkg/db"
	"github.com/printcraftlabs/printcraft-backend/pkg/db/models"
	pkgerrors "github.com/printcraftlabs/printcraft-backend/pkg/errors"
)

const minQuantityUniqueConstraint = "uq_bulk_discount_tiers_min_quantity"

// TierDTO is the transport shape for a bulk discount tier.
type TierDTO struct {
	ID              uuid.UUID `json:"id"`
	MinQuantity     int       `json:"min_quantity"`
	DiscountPercent float64   `json:"discount_percent"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// NewTierDTO converts the persisted row into its transport shape.
func NewTierDTO(m *models.BulkDiscountTier) *TierDTO {
	if m == nil {
		return nil
	}
	return &TierDTO{
		ID:              m.ID,
		MinQuantity:     m.MinQuantity,
		DiscountPercent: m.DiscountPercent,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

// CreateTierInput holds the validated payload to create a tier.
type CreateTierInput struct {
	MinQuantity     int
	DiscountPercent float64
}

// UpdateTierInput holds optional mutation values for a tier.
type UpdateTierInput struct {
	MinQuantity     *int
	DiscountPercent *float64
}

// TierService exposes bulk discount tier CRUD for the back office.
type TierService interface {
	CreateTier(ctx context.Context, input CreateTierInput) (*TierDTO, error)
	ListTiers(ctx context.Context) ([]TierDTO, error)
	UpdateTier(ctx context.Context, id uuid.UUID, input UpdateTierInput) (*TierDTO, error)
	DeleteTier(ctx context.Context, id uuid.UUID) error
}

type tierRepository interface {
	ListTiers(ctx context.Context) ([]models.BulkDiscountTier, error)
	CreateTier(ctx context.Context, tier *models.BulkDiscountTier) (*models.BulkDiscountTier, error)
	UpdateTier(ctx context.Context, id uuid.UUID, updates map[string]any) (*models.BulkDiscountTier, error)
	DeleteTier(ctx context.Context, id uuid.UUID) error
}

type tierService struct {
	repo tierRepository
}

// NewTierService constructs a tier service instance.
func NewTierService(repo tierRepository) (TierService, error) {
	if repo == nil {
		return nil, fmt.Errorf("tier repository required")
	}
	return &tierService{repo: repo}, nil
}

func validateTierBounds(minQuantity int, discountPercent float64) error {
	if minQuantity < 2 {
		return pkgerrors.New(pkgerrors.CodeValidation, "min_quantity must be at least 2")
	}
	if discountPercent <= 0 || discountPercent > 100 {
		return pkgerrors.New(pkgerrors.CodeValidation, "discount_percent must be between 0 and 100")
	}
	return nil
}

// CreateTier validates and persists a new tier. Thresholds are unique; a
// duplicate min_quantity is a conflict.
func (s *tierService) CreateTier(ctx context.Context, input CreateTierInput) (*TierDTO, error) {
	if err := validateTierBounds(input.MinQuantity, input.DiscountPercent); err != nil {
		return nil, err
	}

	created, err := s.repo.CreateTier(ctx, &models.BulkDiscountTier{
		MinQuantity:     input.MinQuantity,
		DiscountPercent: input.DiscountPercent,
	})
	if err != nil {
		if db.IsUniqueViolation(err, minQuantityUniqueConstraint) {
			return nil, pkgerrors.New(pkgerrors.CodeConflict,
				fmt.Sprintf("a tier at quantity %d already exists", input.MinQuantity))
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "creating discount tier")
	}
	return NewTierDTO(created), nil
}

// ListTiers returns every tier ordered by ascending threshold.
func (s *tierService) ListTiers(ctx context.Context) ([]TierDTO, error) {
	rows, err := s.repo.ListTiers(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing discount tiers")
	}
	dtos := make([]TierDTO, 0, len(rows))
	for i := range rows {
		dtos = append(dtos, *NewTierDTO(&rows[i]))
	}
	return dtos, nil
}

// UpdateTier applies the provided fields to an existing tier.
func (s *tierService) UpdateTier(ctx context.Context, id uuid.UUID, input UpdateTierInput) (*TierDTO, error) {
	updates := map[string]any{}

	if input.MinQuantity != nil {
		if *input.MinQuantity < 2 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "min_quantity must be at least 2")
		}
		updates["min_quantity"] = *input.MinQuantity
	}
	if input.DiscountPercent != nil {
		if *input.DiscountPercent <= 0 || *input.DiscountPercent > 100 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "discount_percent must be between 0 and 100")
		}
		updates["discount_percent"] = *input.DiscountPercent
	}

	row, err := s.repo.UpdateTier(ctx, id, updates)
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "discount tier not found")
		case db.IsUniqueViolation(err, minQuantityUniqueConstraint):
			return nil, pkgerrors.New(pkgerrors.CodeConflict,
				"a tier at that quantity already exists")
		default:
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "updating discount tier")
		}
	}
	return NewTierDTO(row), nil
}

// DeleteTier removes a tier.
func (s *tierService) DeleteTier(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.DeleteTier(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "discount tier not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "deleting discount tier")
	}
	return nil
}
