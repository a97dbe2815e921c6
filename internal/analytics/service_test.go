package analytics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/printcraftlabs/printcraft-backend/pkg/db/models"
	"github.com/printcraftlabs/printcraft-backend/pkg/enums"
	pkgerrors "github.com/printcraftlabs/printcraft-backend/pkg/errors"
	"github.com/printcraftlabs/printcraft-backend/pkg/types"
)

type stubRepo struct {
	revenueRows  []models.Order
	revenueErr   error
	currentRows  []models.Order
	previousRows []models.Order
	betweenErr   error
	recentRows   []models.Order
	recentErr    error
	products     []models.Product
	productsErr  error
	pivot        time.Time
}

func (s *stubRepo) ListRevenueOrders(_ context.Context) ([]models.Order, error) {
	return s.revenueRows, s.revenueErr
}

func (s *stubRepo) ListRevenueOrdersBetween(_ context.Context, from, _ time.Time) ([]models.Order, error) {
	if s.betweenErr != nil {
		return nil, s.betweenErr
	}
	if from.Before(s.pivot) {
		return s.previousRows, nil
	}
	return s.currentRows, nil
}

func (s *stubRepo) ListRecentOrders(_ context.Context, _ int) ([]models.Order, error) {
	return s.recentRows, s.recentErr
}

func (s *stubRepo) ListProducts(_ context.Context) ([]models.Product, error) {
	return s.products, s.productsErr
}

func mustService(t *testing.T, repo *stubRepo, now time.Time) Service {
	t.Helper()
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("building service: %v", err)
	}
	// windows split at now-30d; the stub routes on that boundary
	repo.pivot = now.Add(-trendWindow)
	svc.(*service).now = func() time.Time { return now }
	return svc
}

func shippedOrder(total float64, items ...types.OrderItem) models.Order {
	return models.Order{
		ID:          uuid.New(),
		UserID:      uuid.New(),
		Status:      enums.OrderStatusShipped,
		TotalAmount: total,
		Items:       items,
	}
}

func TestDashboardSumsRevenueOverQualifyingOrders(t *testing.T) {
	t.Parallel()

	repo := &stubRepo{
		revenueRows: []models.Order{shippedOrder(100), shippedOrder(49.5)},
	}
	svc := mustService(t, repo, time.Now())

	dashboard, err := svc.Dashboard(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dashboard.TotalRevenue != 149.5 {
		t.Fatalf("expected revenue 149.5, got %v", dashboard.TotalRevenue)
	}
	if dashboard.TotalOrders != 2 {
		t.Fatalf("expected 2 orders, got %d", dashboard.TotalOrders)
	}
}

func TestDashboardTrendZeroWhenPreviousWindowEmpty(t *testing.T) {
	t.Parallel()

	repo := &stubRepo{
		currentRows: []models.Order{shippedOrder(500)},
	}
	svc := mustService(t, repo, time.Now())

	dashboard, err := svc.Dashboard(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dashboard.RevenueTrendPct != 0 {
		t.Fatalf("expected 0 trend with empty previous window, got %v", dashboard.RevenueTrendPct)
	}
	if dashboard.OrdersTrendPct != 0 {
		t.Fatalf("expected 0 orders trend, got %v", dashboard.OrdersTrendPct)
	}
}

func TestDashboardTrendComputesGrowth(t *testing.T) {
	t.Parallel()

	repo := &stubRepo{
		currentRows:  []models.Order{shippedOrder(150)},
		previousRows: []models.Order{shippedOrder(100)},
	}
	svc := mustService(t, repo, time.Now())

	dashboard, err := svc.Dashboard(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dashboard.RevenueTrendPct != 50 {
		t.Fatalf("expected 50%% revenue trend, got %v", dashboard.RevenueTrendPct)
	}
}

func TestDashboardProfitSkipsUnmatchedProducts(t *testing.T) {
	t.Parallel()

	productID := uuid.New()
	repo := &stubRepo{
		revenueRows: []models.Order{
			shippedOrder(100,
				types.OrderItem{ProductID: productID.String(), Price: 40, Quantity: 2},
				types.OrderItem{ProductID: uuid.NewString(), Price: 99, Quantity: 1},
			),
		},
		products: []models.Product{
			{ID: productID, Name: "Classic Tee", CostPrice: 15},
		},
	}
	svc := mustService(t, repo, time.Now())

	dashboard, err := svc.Dashboard(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(dashboard.ProductProfits) != 1 {
		t.Fatalf("expected 1 profit line, got %d", len(dashboard.ProductProfits))
	}
	line := dashboard.ProductProfits[0]
	if line.UnitsSold != 2 {
		t.Fatalf("expected 2 units, got %d", line.UnitsSold)
	}
	if line.Revenue != 80 {
		t.Fatalf("expected revenue 80, got %v", line.Revenue)
	}
	if line.Profit != 50 {
		t.Fatalf("expected profit 50, got %v", line.Profit)
	}
}

func TestDashboardStorageFailureAbortsWholeAggregation(t *testing.T) {
	t.Parallel()

	repo := &stubRepo{productsErr: errors.New("connection reset")}
	svc := mustService(t, repo, time.Now())

	_, err := svc.Dashboard(context.Background())
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeDependency {
		t.Fatalf("expected dependency error, got %v", err)
	}
}
