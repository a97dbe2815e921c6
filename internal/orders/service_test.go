package orders

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/printcraftlabs/printcraft-backend/pkg/config"
	"github.com/printcraftlabs/printcraft-backend/pkg/db/models"
	"github.com/printcraftlabs/printcraft-backend/pkg/enums"
	pkgerrors "github.com/printcraftlabs/printcraft-backend/pkg/errors"
	"github.com/printcraftlabs/printcraft-backend/pkg/logger"
	"github.com/printcraftlabs/printcraft-backend/pkg/pagination"
	"github.com/printcraftlabs/printcraft-backend/pkg/types"
)

type stubRepo struct {
	created      *models.Order
	createErr    error
	findRow      *models.Order
	findErr      error
	listRows     []models.Order
	listErr      error
	listInput    ListInput
	updateErr    error
	updateStatus enums.OrderStatus
}

func (s *stubRepo) WithTx(_ *gorm.DB) Repository { return s }

func (s *stubRepo) Create(_ context.Context, order *models.Order) (*models.Order, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	order.ID = uuid.New()
	s.created = order
	return order, nil
}

func (s *stubRepo) FindByID(_ context.Context, _ uuid.UUID) (*models.Order, error) {
	return s.findRow, s.findErr
}

func (s *stubRepo) List(_ context.Context, input ListInput) ([]models.Order, string, error) {
	s.listInput = input
	return s.listRows, "", s.listErr
}

func (s *stubRepo) ListByUser(_ context.Context, _ uuid.UUID, _ pagination.Params) ([]models.Order, string, error) {
	return s.listRows, "", s.listErr
}

func (s *stubRepo) UpdateStatus(_ context.Context, _ uuid.UUID, status enums.OrderStatus) error {
	if s.updateErr != nil {
		return s.updateErr
	}
	s.updateStatus = status
	return nil
}

type stubRedeemer struct {
	coupon *models.Coupon
	err    error
	code   string
}

func (s *stubRedeemer) RedeemCoupon(_ context.Context, code string) (*models.Coupon, error) {
	s.code = code
	return s.coupon, s.err
}

type stubPublisher struct {
	events []string
}

func (s *stubPublisher) Publish(_ context.Context, _ []byte, attrs map[string]string) (string, error) {
	s.events = append(s.events, attrs["event_type"])
	return "msg-1", nil
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{
		ServiceName: "orders-test",
		Level:       zerolog.Disabled,
		Output:      io.Discard,
	})
}

func testConfigs() (config.PricingConfig, config.CheckoutConfig) {
	return config.PricingConfig{
			ImageUploadCost:      5,
			TextAreaCost:         2,
			MaxBillableTextAreas: 5,
			FullBodyDesignCost:   10,
			PremiumFontSurcharge: 1.5,
			PremiumFonts:         []string{"Brush Script"},
		}, config.CheckoutConfig{
			FreeShippingThreshold: 100,
			ShippingFee:           7.5,
			TaxRate:               0.08,
		}
}

func buildService(t *testing.T, repo Repository, coupons couponRedeemer, events EventPublisher) Service {
	t.Helper()
	pricingCfg, checkoutCfg := testConfigs()
	svc, err := NewService(repo, coupons, nil, events, testLogger(), pricingCfg, checkoutCfg)
	if err != nil {
		t.Fatalf("building service: %v", err)
	}
	return svc
}

func validInput() SubmitOrderInput {
	return SubmitOrderInput{
		Items: []types.CartItem{
			{ProductID: "prod-1", Name: "Classic Tee", Price: 50, Quantity: 2},
		},
		CustomerInfo: types.CustomerInfo{
			Name:       "Dana Smith",
			Email:      "dana@example.com",
			Address:    "1 Main St",
			City:       "Springfield",
			PostalCode: "12345",
			Country:    "US",
		},
		PaymentMethod: "card",
	}
}

func TestSubmitOrderRejectsEmptyItems(t *testing.T) {
	t.Parallel()

	svc := buildService(t, &stubRepo{}, nil, nil)

	input := validInput()
	input.Items = nil
	_, err := svc.SubmitOrder(context.Background(), uuid.New(), input)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestSubmitOrderRejectsIncompleteCustomerInfo(t *testing.T) {
	t.Parallel()

	svc := buildService(t, &stubRepo{}, nil, nil)

	input := validInput()
	input.CustomerInfo.Email = ""
	_, err := svc.SubmitOrder(context.Background(), uuid.New(), input)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestSubmitOrderForcesStatusAndOwner(t *testing.T) {
	t.Parallel()

	repo := &stubRepo{}
	svc := buildService(t, repo, nil, nil)

	actor := uuid.New()
	dto, err := svc.SubmitOrder(context.Background(), actor, validInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dto.Status != enums.OrderStatusPending {
		t.Fatalf("expected forced pending status, got %q", dto.Status)
	}
	if dto.UserID != actor {
		t.Fatalf("expected owner %s, got %s", actor, dto.UserID)
	}
}

func TestSubmitOrderComputesTotals(t *testing.T) {
	t.Parallel()

	repo := &stubRepo{}
	svc := buildService(t, repo, nil, nil)

	// subtotal 100, free shipping at threshold, 8% tax
	dto, err := svc.SubmitOrder(context.Background(), uuid.New(), validInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dto.Subtotal != 100 {
		t.Fatalf("expected subtotal 100, got %v", dto.Subtotal)
	}
	if dto.TotalAmount != 108 {
		t.Fatalf("expected total 108, got %v", dto.TotalAmount)
	}
}

func TestSubmitOrderAppliesCouponThroughRedeemer(t *testing.T) {
	t.Parallel()

	repo := &stubRepo{}
	redeemer := &stubRedeemer{coupon: &models.Coupon{
		Code:         "SAVE10",
		DiscountType: enums.DiscountTypePercentage,
		Value:        10,
		ValidFrom:    time.Now().Add(-time.Hour),
		ValidTo:      time.Now().Add(time.Hour),
		Status:       enums.CouponStatusActive,
	}}
	svc := buildService(t, repo, redeemer, nil)

	input := validInput()
	input.CouponCode = "SAVE10"
	dto, err := svc.SubmitOrder(context.Background(), uuid.New(), input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if redeemer.code != "SAVE10" {
		t.Fatalf("expected redeem call for SAVE10, got %q", redeemer.code)
	}
	if dto.Discount != 10 {
		t.Fatalf("expected discount 10, got %v", dto.Discount)
	}
	if dto.CouponCode == nil || *dto.CouponCode != "SAVE10" {
		t.Fatalf("expected coupon code on order, got %v", dto.CouponCode)
	}
	// 100 - 10 + 0 shipping + 8 tax
	if dto.TotalAmount != 98 {
		t.Fatalf("expected total 98, got %v", dto.TotalAmount)
	}
}

func TestSubmitOrderEmitsCreatedEvent(t *testing.T) {
	t.Parallel()

	events := &stubPublisher{}
	svc := buildService(t, &stubRepo{}, nil, events)

	if _, err := svc.SubmitOrder(context.Background(), uuid.New(), validInput()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(events.events) != 1 || events.events[0] != eventOrderCreated {
		t.Fatalf("expected one created event, got %v", events.events)
	}
}

func TestGetOrderMissingIsNotFoundBeforeOwnership(t *testing.T) {
	t.Parallel()

	svc := buildService(t, &stubRepo{findErr: gorm.ErrRecordNotFound}, nil, nil)

	_, err := svc.GetOrder(context.Background(), uuid.New(), enums.UserRoleCustomer, uuid.New())
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found error, got %v", err)
	}
}

func TestGetOrderForeignOrderIsForbidden(t *testing.T) {
	t.Parallel()

	owner := uuid.New()
	svc := buildService(t, &stubRepo{findRow: &models.Order{ID: uuid.New(), UserID: owner}}, nil, nil)

	_, err := svc.GetOrder(context.Background(), uuid.New(), enums.UserRoleCustomer, uuid.New())
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeForbidden {
		t.Fatalf("expected forbidden error, got %v", err)
	}
}

func TestGetOrderAdminBypassesOwnership(t *testing.T) {
	t.Parallel()

	owner := uuid.New()
	svc := buildService(t, &stubRepo{findRow: &models.Order{ID: uuid.New(), UserID: owner}}, nil, nil)

	if _, err := svc.GetOrder(context.Background(), uuid.New(), enums.UserRoleAdmin, uuid.New()); err != nil {
		t.Fatalf("admin read should succeed, got %v", err)
	}
}

func TestListOrdersRejectsInvalidStatusFilter(t *testing.T) {
	t.Parallel()

	svc := buildService(t, &stubRepo{}, nil, nil)

	bad := enums.OrderStatus("refunded")
	_, err := svc.ListOrders(context.Background(), ListInput{Filters: AdminListFilters{Status: &bad}})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestListOrdersRejectsInvertedDateRange(t *testing.T) {
	t.Parallel()

	svc := buildService(t, &stubRepo{}, nil, nil)

	from := time.Now()
	to := from.Add(-time.Hour)
	_, err := svc.ListOrders(context.Background(), ListInput{
		Filters: AdminListFilters{DateFrom: &from, DateTo: &to},
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestUpdateStatusRejectsUnknownStatus(t *testing.T) {
	t.Parallel()

	svc := buildService(t, &stubRepo{}, nil, nil)

	_, err := svc.UpdateStatus(context.Background(), uuid.New(), enums.OrderStatus("refunded"))
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestUpdateStatusAllowsOffGraphMove(t *testing.T) {
	t.Parallel()

	repo := &stubRepo{findRow: &models.Order{ID: uuid.New(), Status: enums.OrderStatusPending}}
	events := &stubPublisher{}
	svc := buildService(t, repo, nil, events)

	dto, err := svc.UpdateStatus(context.Background(), uuid.New(), enums.OrderStatusDelivered)
	if err != nil {
		t.Fatalf("off-graph move must succeed, got %v", err)
	}
	if dto.Status != enums.OrderStatusDelivered {
		t.Fatalf("expected delivered, got %q", dto.Status)
	}
	if repo.updateStatus != enums.OrderStatusDelivered {
		t.Fatalf("expected repo update to delivered, got %q", repo.updateStatus)
	}
	if len(events.events) != 1 || events.events[0] != eventOrderStatusChanged {
		t.Fatalf("expected one status event, got %v", events.events)
	}
}

func TestUpdateStatusSameStatusEmitsNoEvent(t *testing.T) {
	t.Parallel()

	repo := &stubRepo{findRow: &models.Order{ID: uuid.New(), Status: enums.OrderStatusPending}}
	events := &stubPublisher{}
	svc := buildService(t, repo, nil, events)

	if _, err := svc.UpdateStatus(context.Background(), uuid.New(), enums.OrderStatusPending); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(events.events) != 0 {
		t.Fatalf("expected no events, got %v", events.events)
	}
}
