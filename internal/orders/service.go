package orders

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/printcraftlabs/printcraft-backend/internal/pricing"
	"github.com/printcraftlabs/printcraft-backend/pkg/config"
	"github.com/printcraftlabs/printcraft-backend/pkg/db/models"
	"github.com/printcraftlabs/printcraft-backend/pkg/enums"
	pkgerrors "github.com/printcraftlabs/printcraft-backend/pkg/errors"
	"github.com/printcraftlabs/printcraft-backend/pkg/logger"
	"github.com/printcraftlabs/printcraft-backend/pkg/pagination"
	"github.com/printcraftlabs/printcraft-backend/pkg/types"
)

// Service is the order engine: checkout submission, reads with ownership
// enforcement, and the admin status surface.
type Service interface {
	SubmitOrder(ctx context.Context, actorID uuid.UUID, input SubmitOrderInput) (*OrderDTO, error)
	GetOrder(ctx context.Context, actorID uuid.UUID, actorRole enums.UserRole, orderID uuid.UUID) (*OrderDTO, error)
	ListOrders(ctx context.Context, input ListInput) (*ListResult, error)
	ListUserOrders(ctx context.Context, userID uuid.UUID, params pagination.Params) (*ListResult, error)
	UpdateStatus(ctx context.Context, orderID uuid.UUID, status enums.OrderStatus) (*OrderDTO, error)
}

type couponRedeemer interface {
	RedeemCoupon(ctx context.Context, code string) (*models.Coupon, error)
}

type tierLoader interface {
	ListTiers(ctx context.Context) ([]models.BulkDiscountTier, error)
}

type service struct {
	repo     Repository
	coupons  couponRedeemer
	tiers    tierLoader
	events   EventPublisher
	logg     *logger.Logger
	pricing  config.PricingConfig
	checkout config.CheckoutConfig
	now      func() time.Time
}

// NewService builds the order engine. The coupon redeemer, tier loader, and
// event publisher are optional; passing nil disables that capability.
func NewService(
	repo Repository,
	coupons couponRedeemer,
	tiers tierLoader,
	events EventPublisher,
	logg *logger.Logger,
	pricingCfg config.PricingConfig,
	checkoutCfg config.CheckoutConfig,
) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		repo:     repo,
		coupons:  coupons,
		tiers:    tiers,
		events:   events,
		logg:     logg,
		pricing:  pricingCfg,
		checkout: checkoutCfg,
		now:      time.Now,
	}, nil
}

// SubmitOrder validates and prices the checkout payload, then persists the
// order. Status is always pending and user attribution always comes from the
// authenticated actor, regardless of what the client sent.
func (s *service) SubmitOrder(ctx context.Context, actorID uuid.UUID, input SubmitOrderInput) (*OrderDTO, error) {
	if actorID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required")
	}
	if len(input.Items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order must contain at least one item")
	}
	if err := validateCustomerInfo(input.CustomerInfo); err != nil {
		return nil, err
	}
	paymentMethod := strings.TrimSpace(input.PaymentMethod)
	if paymentMethod == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "payment_method is required")
	}

	items, err := normalizeItems(input.Items)
	if err != nil {
		return nil, err
	}

	subtotal := decimal.Zero
	totalQuantity := 0
	for _, item := range items {
		unit := decimal.NewFromFloat(item.Price)
		if item.Customization != nil {
			opts := pricing.OptionsFromCustomization(item.Customization, false)
			unit = unit.Add(pricing.ComputeLineAddOns(s.pricing, opts))
		}
		subtotal = subtotal.Add(unit.Mul(decimal.NewFromInt(int64(item.Quantity))))
		totalQuantity += item.Quantity
	}

	discounts := decimal.Zero
	if s.tiers != nil {
		tiers, err := s.tiers.ListTiers(ctx)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading bulk discount tiers")
		}
		discounts = discounts.Add(pricing.ApplyBulkDiscount(subtotal, totalQuantity, tiers))
	}

	var couponCode *string
	if code := strings.TrimSpace(input.CouponCode); code != "" {
		if s.coupons == nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "coupon is not valid")
		}
		coupon, err := s.coupons.RedeemCoupon(ctx, code)
		if err != nil {
			return nil, err
		}
		discount := pricing.ApplyCoupon(subtotal, coupon, s.now())
		if discount.IsZero() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "coupon is not valid")
		}
		discounts = discounts.Add(discount)
		couponCode = &coupon.Code
	}

	total, err := pricing.ComputeTotal(s.checkout, subtotal, discounts)
	if err != nil {
		return nil, err
	}

	order := &models.Order{
		UserID:        actorID,
		Items:         items,
		CustomerInfo:  input.CustomerInfo,
		Status:        enums.OrderStatusPending,
		Subtotal:      pricing.Round2(subtotal),
		Discount:      pricing.Round2(discounts),
		CouponCode:    couponCode,
		TotalAmount:   pricing.Round2(total),
		PaymentMethod: paymentMethod,
	}

	created, err := s.repo.Create(ctx, order)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "creating order")
	}

	emitEvent(ctx, s.events, s.logg, eventOrderCreated, OrderCreatedEvent{
		OrderID:     created.ID,
		UserID:      created.UserID,
		Status:      created.Status,
		TotalAmount: created.TotalAmount,
		ItemCount:   len(created.Items),
		CreatedAt:   created.CreatedAt,
	})

	return NewOrderDTO(created), nil
}

// GetOrder loads one order. A missing order is always a 404; an order owned
// by someone else is a 403 unless the actor is an admin. The existence check
// runs first so the two cases stay distinguishable.
func (s *service) GetOrder(ctx context.Context, actorID uuid.UUID, actorRole enums.UserRole, orderID uuid.UUID) (*OrderDTO, error) {
	order, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading order")
	}

	if actorRole != enums.UserRoleAdmin && order.UserID != actorID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "access denied")
	}

	return NewOrderDTO(order), nil
}

// ListOrders is the admin back-office listing with search and filters.
func (s *service) ListOrders(ctx context.Context, input ListInput) (*ListResult, error) {
	if input.Filters.Status != nil && !input.Filters.Status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("invalid order status %q", *input.Filters.Status))
	}
	if input.Filters.DateFrom != nil && input.Filters.DateTo != nil &&
		input.Filters.DateTo.Before(*input.Filters.DateFrom) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "date_to must not precede date_from")
	}

	rows, nextCursor, err := s.repo.List(ctx, input)
	if err != nil {
		if typed := pkgerrors.As(err); typed != nil {
			return nil, typed
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing orders")
	}

	return toListResult(rows, nextCursor), nil
}

// ListUserOrders returns the authenticated customer's own order history.
func (s *service) ListUserOrders(ctx context.Context, userID uuid.UUID, params pagination.Params) (*ListResult, error) {
	rows, nextCursor, err := s.repo.ListByUser(ctx, userID, params)
	if err != nil {
		if typed := pkgerrors.As(err); typed != nil {
			return nil, typed
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing user orders")
	}
	return toListResult(rows, nextCursor), nil
}

// UpdateStatus moves an order to any recognized status. The transition graph
// is advisory: admins may skip steps, but off-graph moves are logged.
func (s *service) UpdateStatus(ctx context.Context, orderID uuid.UUID, status enums.OrderStatus) (*OrderDTO, error) {
	if !status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("invalid order status %q", status))
	}

	order, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading order")
	}

	previous := order.Status
	if previous != status && !previous.CanTransitionTo(status) {
		logCtx := s.logg.WithFields(ctx, map[string]any{
			"order_id":    orderID.String(),
			"from_status": previous.String(),
			"to_status":   status.String(),
		})
		s.logg.Warn(logCtx, "order status moved off the expected transition graph")
	}

	if err := s.repo.UpdateStatus(ctx, orderID, status); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "updating order status")
	}
	order.Status = status

	if previous != status {
		emitEvent(ctx, s.events, s.logg, eventOrderStatusChanged, OrderStatusChangedEvent{
			OrderID:    orderID,
			FromStatus: previous,
			ToStatus:   status,
			ChangedAt:  s.now(),
		})
	}

	return NewOrderDTO(order), nil
}

func validateCustomerInfo(info types.CustomerInfo) error {
	missing := []string{}
	for field, value := range map[string]string{
		"name":        info.Name,
		"email":       info.Email,
		"address":     info.Address,
		"city":        info.City,
		"postal_code": info.PostalCode,
		"country":     info.Country,
	} {
		if strings.TrimSpace(value) == "" {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("customer_info is incomplete: missing %s", strings.Join(missing, ", ")))
	}
	if !strings.Contains(info.Email, "@") {
		return pkgerrors.New(pkgerrors.CodeValidation, "customer_info.email is not a valid email address")
	}
	return nil
}

func toListResult(rows []models.Order, nextCursor string) *ListResult {
	dtos := make([]OrderDTO, 0, len(rows))
	for i := range rows {
		dtos = append(dtos, *NewOrderDTO(&rows[i]))
	}
	return &ListResult{Orders: dtos, NextCursor: nextCursor}
}
