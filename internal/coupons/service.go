package coupon

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/printcraftlabs/printcraft-backend/internal/pricing"
	"github.com/printcraftlabs/printcraft-backend/pkg/db"
	"github.com/printcraftlabs/printcraft-backend/pkg/db/models"
	"github.com/printcraftlabs/printcraft-backend/pkg/enums"
	pkgerrors "github.com/printcraftlabs/printcraft-backend/pkg/errors"
)

const codeUniqueConstraint = "uq_coupons_code"

// CouponDTO is the transport shape for a coupon. UsedCount is exposed to
// admins only; the validate endpoint strips it.
type CouponDTO struct {
	ID           uuid.UUID          `json:"id"`
	Code         string             `json:"code"`
	Description  string             `json:"description,omitempty"`
	DiscountType enums.DiscountType `json:"discount_type"`
	Value        float64            `json:"value"`
	MinOrder     float64            `json:"min_order"`
	MaxDiscount  float64            `json:"max_discount"`
	ValidFrom    time.Time          `json:"valid_from"`
	ValidTo      time.Time          `json:"valid_to"`
	UsageLimit   int                `json:"usage_limit"`
	UsedCount    int                `json:"used_count"`
	Status       enums.CouponStatus `json:"status"`
	CreatedAt    time.Time          `json:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at"`
}

// NewCouponDTO converts the persisted row into its transport shape.
func NewCouponDTO(m *models.Coupon) *CouponDTO {
	if m == nil {
		return nil
	}
	return &CouponDTO{
		ID:           m.ID,
		Code:         m.Code,
		Description:  m.Description,
		DiscountType: m.DiscountType,
		Value:        m.Value,
		MinOrder:     m.MinOrder,
		MaxDiscount:  m.MaxDiscount,
		ValidFrom:    m.ValidFrom,
		ValidTo:      m.ValidTo,
		UsageLimit:   m.UsageLimit,
		UsedCount:    m.UsedCount,
		Status:       m.Status,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

// ValidationResult is what the storefront sees when it checks a code.
type ValidationResult struct {
	Code         string             `json:"code"`
	DiscountType enums.DiscountType `json:"discount_type"`
	Value        float64            `json:"value"`
	Discount     float64            `json:"discount"`
}

// CreateCouponInput holds the validated payload to create a coupon.
type CreateCouponInput struct {
	Code         string
	Description  string
	DiscountType enums.DiscountType
	Value        float64
	MinOrder     float64
	MaxDiscount  float64
	ValidFrom    time.Time
	ValidTo      time.Time
	UsageLimit   int
	Status       enums.CouponStatus
}

// UpdateCouponInput holds optional mutation values for a coupon. UsedCount
// is deliberately absent; it only moves through Redeem.
type UpdateCouponInput struct {
	Description *string
	Value       *float64
	MinOrder    *float64
	MaxDiscount *float64
	ValidFrom   *time.Time
	ValidTo     *time.Time
	UsageLimit  *int
	Status      *enums.CouponStatus
}

// Service exposes coupon validation for checkout and CRUD for admins.
type Service interface {
	CreateCoupon(ctx context.Context, input CreateCouponInput) (*CouponDTO, error)
	ListCoupons(ctx context.Context) ([]CouponDTO, error)
	UpdateCoupon(ctx context.Context, id uuid.UUID, input UpdateCouponInput) (*CouponDTO, error)
	DeleteCoupon(ctx context.Context, id uuid.UUID) error
	ValidateCoupon(ctx context.Context, code string, subtotal float64) (*ValidationResult, error)
	RedeemCoupon(ctx context.Context, code string) (*models.Coupon, error)
}

type repository interface {
	Create(ctx context.Context, coupon *models.Coupon) (*models.Coupon, error)
	FindByCode(ctx context.Context, code string) (*models.Coupon, error)
	List(ctx context.Context) ([]models.Coupon, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]any) (*models.Coupon, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Redeem(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo repository
	now  func() time.Time
}

// NewService constructs a coupon service instance.
func NewService(repo repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("coupon repository required")
	}
	return &service{repo: repo, now: time.Now}, nil
}

// CreateCoupon validates and persists a new coupon.
func (s *service) CreateCoupon(ctx context.Context, input CreateCouponInput) (*CouponDTO, error) {
	code := strings.ToUpper(strings.TrimSpace(input.Code))
	if code == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "code is required")
	}
	if !input.DiscountType.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("invalid discount type %q", input.DiscountType))
	}
	if input.Value <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "value must be greater than zero")
	}
	if input.DiscountType == enums.DiscountTypePercentage && input.Value > 100 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "percentage value cannot exceed 100")
	}
	if input.MinOrder < 0 || input.MaxDiscount < 0 || input.UsageLimit < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "amounts and limits cannot be negative")
	}
	if !input.ValidTo.After(input.ValidFrom) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "valid_to must be after valid_from")
	}

	status := input.Status
	if status == "" {
		status = enums.CouponStatusActive
	}
	if !status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("invalid coupon status %q", status))
	}

	row := &models.Coupon{
		Code:         code,
		Description:  input.Description,
		DiscountType: input.DiscountType,
		Value:        input.Value,
		MinOrder:     input.MinOrder,
		MaxDiscount:  input.MaxDiscount,
		ValidFrom:    input.ValidFrom,
		ValidTo:      input.ValidTo,
		UsageLimit:   input.UsageLimit,
		Status:       status,
	}

	created, err := s.repo.Create(ctx, row)
	if err != nil {
		if db.IsUniqueViolation(err, codeUniqueConstraint) {
			return nil, pkgerrors.New(pkgerrors.CodeConflict,
				fmt.Sprintf("coupon code %q already exists", code))
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "creating coupon")
	}
	return NewCouponDTO(created), nil
}

// ListCoupons returns every coupon for the admin console.
func (s *service) ListCoupons(ctx context.Context) ([]CouponDTO, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing coupons")
	}
	dtos := make([]CouponDTO, 0, len(rows))
	for i := range rows {
		dtos = append(dtos, *NewCouponDTO(&rows[i]))
	}
	return dtos, nil
}

// UpdateCoupon applies the provided fields to an existing coupon.
func (s *service) UpdateCoupon(ctx context.Context, id uuid.UUID, input UpdateCouponInput) (*CouponDTO, error) {
	updates := map[string]any{}

	if input.Description != nil {
		updates["description"] = *input.Description
	}
	if input.Value != nil {
		if *input.Value <= 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "value must be greater than zero")
		}
		updates["value"] = *input.Value
	}
	if input.MinOrder != nil {
		if *input.MinOrder < 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "min_order cannot be negative")
		}
		updates["min_order"] = *input.MinOrder
	}
	if input.MaxDiscount != nil {
		if *input.MaxDiscount < 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "max_discount cannot be negative")
		}
		updates["max_discount"] = *input.MaxDiscount
	}
	if input.ValidFrom != nil {
		updates["valid_from"] = *input.ValidFrom
	}
	if input.ValidTo != nil {
		updates["valid_to"] = *input.ValidTo
	}
	if input.UsageLimit != nil {
		if *input.UsageLimit < 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "usage_limit cannot be negative")
		}
		updates["usage_limit"] = *input.UsageLimit
	}
	if input.Status != nil {
		if !input.Status.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation,
				fmt.Sprintf("invalid coupon status %q", *input.Status))
		}
		updates["status"] = *input.Status
	}

	row, err := s.repo.Update(ctx, id, updates)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "coupon not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "updating coupon")
	}
	return NewCouponDTO(row), nil
}

// DeleteCoupon removes a coupon.
func (s *service) DeleteCoupon(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "coupon not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "deleting coupon")
	}
	return nil
}

// ValidateCoupon checks whether the code applies to the subtotal and returns
// the discount it would produce. Every failure mode is a validation error so
// clients cannot probe which codes exist.
func (s *service) ValidateCoupon(ctx context.Context, code string, subtotal float64) (*ValidationResult, error) {
	if subtotal < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "subtotal cannot be negative")
	}

	row, err := s.repo.FindByCode(ctx, code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "coupon is not valid")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading coupon")
	}

	discount := pricing.ApplyCoupon(decimal.NewFromFloat(subtotal), row, s.now())
	if discount.IsZero() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "coupon is not valid")
	}

	return &ValidationResult{
		Code:         row.Code,
		DiscountType: row.DiscountType,
		Value:        row.Value,
		Discount:     pricing.Round2(discount),
	}, nil
}

// RedeemCoupon consumes one use of the code and returns the coupon row. The
// increment is conditional so an exhausted coupon fails rather than
// overshooting its limit.
func (s *service) RedeemCoupon(ctx context.Context, code string) (*models.Coupon, error) {
	row, err := s.repo.FindByCode(ctx, code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "coupon is not valid")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading coupon")
	}

	if err := s.repo.Redeem(ctx, row.ID); err != nil {
		switch {
		case errors.Is(err, ErrUsageExhausted):
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "coupon is not valid")
		case errors.Is(err, gorm.ErrRecordNotFound):
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "coupon is not valid")
		default:
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "redeeming coupon")
		}
	}
	return row, nil
}
