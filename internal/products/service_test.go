package product

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/printcraftlabs/printcraft-backend/pkg/db/models"
	"github.com/printcraftlabs/printcraft-backend/pkg/enums"
	pkgerrors "github.com/printcraftlabs/printcraft-backend/pkg/errors"
)

type stubRepo struct {
	created     *models.Product
	findResult  *models.Product
	findErr     error
	updateInput map[string]any
	updateRow   *models.Product
	updateErr   error
	deleteErr   error
	listRows    []models.Product
	listCursor  string
	listErr     error
	listInput   ListInput
}

func (s *stubRepo) Create(_ context.Context, p *models.Product) (*models.Product, error) {
	s.created = p
	return p, nil
}

func (s *stubRepo) FindByID(_ context.Context, _ uuid.UUID) (*models.Product, error) {
	return s.findResult, s.findErr
}

func (s *stubRepo) Update(_ context.Context, _ uuid.UUID, updates map[string]any) (*models.Product, error) {
	s.updateInput = updates
	return s.updateRow, s.updateErr
}

func (s *stubRepo) Delete(_ context.Context, _ uuid.UUID) error {
	return s.deleteErr
}

func (s *stubRepo) List(_ context.Context, input ListInput) ([]models.Product, string, error) {
	s.listInput = input
	return s.listRows, s.listCursor, s.listErr
}

func mustService(t *testing.T, repo *stubRepo) Service {
	t.Helper()
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("building service: %v", err)
	}
	return svc
}

func TestCreateProductRejectsNonPositivePrice(t *testing.T) {
	t.Parallel()

	svc := mustService(t, &stubRepo{})

	for _, price := range []float64{0, -10} {
		_, err := svc.CreateProduct(context.Background(), CreateProductInput{
			Name:     "Classic Tee",
			Price:    price,
			Category: "t-shirts",
		})
		typed := pkgerrors.As(err)
		if typed == nil || typed.Code() != pkgerrors.CodeValidation {
			t.Fatalf("price %v: expected validation error, got %v", price, err)
		}
	}
}

func TestCreateProductDefaultsInStock(t *testing.T) {
	t.Parallel()

	repo := &stubRepo{}
	svc := mustService(t, repo)

	dto, err := svc.CreateProduct(context.Background(), CreateProductInput{
		Name:     "  Classic Tee ",
		Price:    19.99,
		Category: "t-shirts",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !dto.InStock {
		t.Fatal("expected in_stock to default to true")
	}
	if repo.created.Name != "Classic Tee" {
		t.Fatalf("expected trimmed name, got %q", repo.created.Name)
	}
	if repo.created.Specification == nil {
		t.Fatal("expected specification map to be initialized")
	}
}

func TestCreateProductRejectsInvalidAudience(t *testing.T) {
	t.Parallel()

	svc := mustService(t, &stubRepo{})

	_, err := svc.CreateProduct(context.Background(), CreateProductInput{
		Name:       "Classic Tee",
		Price:      19.99,
		Category:   "t-shirts",
		ProductFor: enums.ProductFor("wholesale"),
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestGetProductMapsMissingRowToNotFound(t *testing.T) {
	t.Parallel()

	svc := mustService(t, &stubRepo{findErr: gorm.ErrRecordNotFound})

	_, err := svc.GetProduct(context.Background(), uuid.New())
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found error, got %v", err)
	}
}

func TestUpdateProductStockDoesNotToggleInStock(t *testing.T) {
	t.Parallel()

	repo := &stubRepo{updateRow: &models.Product{Stock: 0, InStock: true}}
	svc := mustService(t, repo)

	stock := 0
	if _, err := svc.UpdateProduct(context.Background(), uuid.New(), UpdateProductInput{Stock: &stock}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := repo.updateInput["stock"]; !ok {
		t.Fatal("expected stock column in update map")
	}
	if _, ok := repo.updateInput["in_stock"]; ok {
		t.Fatal("in_stock must not change when only stock is updated")
	}
}

func TestUpdateProductRejectsNonPositivePrice(t *testing.T) {
	t.Parallel()

	svc := mustService(t, &stubRepo{})

	price := 0.0
	_, err := svc.UpdateProduct(context.Background(), uuid.New(), UpdateProductInput{Price: &price})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestDeleteProductMapsMissingRowToNotFound(t *testing.T) {
	t.Parallel()

	svc := mustService(t, &stubRepo{deleteErr: gorm.ErrRecordNotFound})

	err := svc.DeleteProduct(context.Background(), uuid.New())
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found error, got %v", err)
	}
}

func TestListProductsRejectsInvalidAudienceFilter(t *testing.T) {
	t.Parallel()

	svc := mustService(t, &stubRepo{})

	bad := enums.ProductFor("wholesale")
	_, err := svc.ListProducts(context.Background(), ListInput{Filters: ListFilters{ProductFor: &bad}})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestListProductsPassesCursorThrough(t *testing.T) {
	t.Parallel()

	repo := &stubRepo{
		listRows:   []models.Product{{ID: uuid.New(), Name: "Classic Tee"}},
		listCursor: "next-token",
	}
	svc := mustService(t, repo)

	result, err := svc.ListProducts(context.Background(), ListInput{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.NextCursor != "next-token" {
		t.Fatalf("expected cursor passthrough, got %q", result.NextCursor)
	}
	if len(result.Products) != 1 || result.Products[0].Name != "Classic Tee" {
		t.Fatalf("unexpected page: %+v", result.Products)
	}
}
