package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/printcraftlabs/printcraft-backend/internal/orders"
	"github.com/printcraftlabs/printcraft-backend/internal/pricing"
	"github.com/printcraftlabs/printcraft-backend/pkg/db/models"
	pkgerrors "github.com/printcraftlabs/printcraft-backend/pkg/errors"
)

const (
	trendWindow      = 30 * 24 * time.Hour
	recentOrderCount = 5
)

// ProductProfit is the per-product profit attribution line.
type ProductProfit struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	UnitsSold int     `json:"units_sold"`
	Revenue   float64 `json:"revenue"`
	Profit    float64 `json:"profit"`
}

// Dashboard is the admin metrics document.
type Dashboard struct {
	TotalRevenue    float64           `json:"total_revenue"`
	TotalOrders     int               `json:"total_orders"`
	RevenueTrendPct float64           `json:"revenue_trend_pct"`
	OrdersTrendPct  float64           `json:"orders_trend_pct"`
	ProductProfits  []ProductProfit   `json:"product_profits"`
	RecentOrders    []orders.OrderDTO `json:"recent_orders"`
}

type repository interface {
	ListRevenueOrders(ctx context.Context) ([]models.Order, error)
	ListRevenueOrdersBetween(ctx context.Context, from, to time.Time) ([]models.Order, error)
	ListRecentOrders(ctx context.Context, limit int) ([]models.Order, error)
	ListProducts(ctx context.Context) ([]models.Product, error)
}

// Service computes the admin dashboard. Reads only; never mutates.
type Service interface {
	Dashboard(ctx context.Context) (*Dashboard, error)
}

type service struct {
	repo repository
	now  func() time.Time
}

// NewService constructs the metrics aggregator.
func NewService(repo repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("analytics repository required")
	}
	return &service{repo: repo, now: time.Now}, nil
}

// Dashboard scans orders and products and derives the reporting document.
// Any storage failure aborts the whole aggregation; partial dashboards are
// never returned.
func (s *service) Dashboard(ctx context.Context) (*Dashboard, error) {
	revenueOrders, err := s.repo.ListRevenueOrders(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "scanning revenue orders")
	}

	now := s.now()
	current, err := s.repo.ListRevenueOrdersBetween(ctx, now.Add(-trendWindow), now)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "scanning current trend window")
	}
	previous, err := s.repo.ListRevenueOrdersBetween(ctx, now.Add(-2*trendWindow), now.Add(-trendWindow))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "scanning previous trend window")
	}

	recent, err := s.repo.ListRecentOrders(ctx, recentOrderCount)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "scanning recent orders")
	}

	products, err := s.repo.ListProducts(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "scanning products")
	}

	dashboard := &Dashboard{
		TotalRevenue:    pricing.Round2(sumRevenue(revenueOrders)),
		TotalOrders:     len(revenueOrders),
		RevenueTrendPct: trend(pricingFloat(sumRevenue(current)), pricingFloat(sumRevenue(previous))),
		OrdersTrendPct:  trend(float64(len(current)), float64(len(previous))),
		ProductProfits:  productProfits(revenueOrders, products),
		RecentOrders:    make([]orders.OrderDTO, 0, len(recent)),
	}
	for i := range recent {
		dashboard.RecentOrders = append(dashboard.RecentOrders, *orders.NewOrderDTO(&recent[i]))
	}
	return dashboard, nil
}

func sumRevenue(rows []models.Order) decimal.Decimal {
	total := decimal.Zero
	for _, row := range rows {
		total = total.Add(decimal.NewFromFloat(row.TotalAmount))
	}
	return total
}

func pricingFloat(value decimal.Decimal) float64 {
	f, _ := value.Float64()
	return f
}

// trend is the 30-day growth percentage. A zero previous window yields
// exactly 0 rather than a division blowup.
func trend(current, previous float64) float64 {
	if previous == 0 {
		return 0
	}
	return pricing.Round2(
		decimal.NewFromFloat(current).
			Sub(decimal.NewFromFloat(previous)).
			Div(decimal.NewFromFloat(previous)).
			Mul(decimal.NewFromInt(100)),
	)
}

// productProfits attributes revenue and profit per product. Line items whose
// product no longer exists are skipped, not errored.
func productProfits(orderRows []models.Order, products []models.Product) []ProductProfit {
	costByID := make(map[string]models.Product, len(products))
	for _, p := range products {
		costByID[p.ID.String()] = p
	}

	type accumulator struct {
		units   int
		revenue decimal.Decimal
		cost    decimal.Decimal
	}
	totals := map[string]*accumulator{}
	order := []string{}

	for _, row := range orderRows {
		for _, item := range row.Items {
			product, ok := costByID[item.ProductID]
			if !ok {
				continue
			}
			acc, ok := totals[item.ProductID]
			if !ok {
				acc = &accumulator{}
				totals[item.ProductID] = acc
				order = append(order, item.ProductID)
			}
			qty := decimal.NewFromInt(int64(item.Quantity))
			acc.units += item.Quantity
			acc.revenue = acc.revenue.Add(decimal.NewFromFloat(item.Price).Mul(qty))
			acc.cost = acc.cost.Add(decimal.NewFromFloat(product.CostPrice).Mul(qty))
		}
	}

	profits := make([]ProductProfit, 0, len(order))
	for _, id := range order {
		acc := totals[id]
		profits = append(profits, ProductProfit{
			ProductID: id,
			Name:      costByID[id].Name,
			UnitsSold: acc.units,
			Revenue:   pricing.Round2(acc.revenue),
			Profit:    pricing.Round2(acc.revenue.Sub(acc.cost)),
		})
	}
	return profits
}
