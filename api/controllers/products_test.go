package controllers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	productsvc "github.com/printcraftlabs/printcraft-backend/internal/products"
	pkgerrors "github.com/printcraftlabs/printcraft-backend/pkg/errors"
	"github.com/printcraftlabs/printcraft-backend/pkg/logger"
	"github.com/printcraftlabs/printcraft-backend/pkg/types"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Level: zerolog.Disabled, Output: io.Discard})
}

type stubProductService struct {
	product   *productsvc.ProductDTO
	list      *productsvc.ListResult
	err       error
	lastInput productsvc.ListInput
	deletedID uuid.UUID
}

func (s *stubProductService) CreateProduct(_ context.Context, input productsvc.CreateProductInput) (*productsvc.ProductDTO, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.product, nil
}

func (s *stubProductService) GetProduct(_ context.Context, id uuid.UUID) (*productsvc.ProductDTO, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.product, nil
}

func (s *stubProductService) UpdateProduct(_ context.Context, id uuid.UUID, input productsvc.UpdateProductInput) (*productsvc.ProductDTO, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.product, nil
}

func (s *stubProductService) DeleteProduct(_ context.Context, id uuid.UUID) error {
	s.deletedID = id
	return s.err
}

func (s *stubProductService) ListProducts(_ context.Context, input productsvc.ListInput) (*productsvc.ListResult, error) {
	s.lastInput = input
	if s.err != nil {
		return nil, s.err
	}
	return s.list, nil
}

func TestListProductsRejectsUnknownAudience(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/products?product_for=wholesale", nil)
	rec := httptest.NewRecorder()
	ListProducts(&stubProductService{}, testLogger()).ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestListProductsPassesFiltersThrough(t *testing.T) {
	stub := &stubProductService{list: &productsvc.ListResult{Products: []productsvc.ProductDTO{}}}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products?category=mugs&in_stock=true&q=skyline&limit=10", nil)
	rec := httptest.NewRecorder()
	ListProducts(stub, testLogger()).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if stub.lastInput.Filters.Category != "mugs" {
		t.Fatalf("category filter not forwarded: %+v", stub.lastInput.Filters)
	}
	if stub.lastInput.Filters.InStock == nil || !*stub.lastInput.Filters.InStock {
		t.Fatal("in_stock filter not forwarded")
	}
	if stub.lastInput.Filters.Query != "skyline" {
		t.Fatalf("search query not forwarded: %q", stub.lastInput.Filters.Query)
	}
	if stub.lastInput.Pagination.Limit != 10 {
		t.Fatalf("limit not forwarded: %d", stub.lastInput.Pagination.Limit)
	}
}

func TestGetProductRejectsMalformedID(t *testing.T) {
	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add("productId", "not-a-uuid")
	req := httptest.NewRequest(http.MethodGet, "/api/v1/products/not-a-uuid", nil)
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))

	rec := httptest.NewRecorder()
	GetProduct(&stubProductService{}, testLogger()).ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestGetProductMapsNotFound(t *testing.T) {
	productID := uuid.New()
	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add("productId", productID.String())
	req := httptest.NewRequest(http.MethodGet, "/api/v1/products/"+productID.String(), nil)
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))

	stub := &stubProductService{err: pkgerrors.New(pkgerrors.CodeNotFound, "product not found")}
	rec := httptest.NewRecorder()
	GetProduct(stub, testLogger()).ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestAdminCreateProductValidatesBody(t *testing.T) {
	body := `{"description": "missing name and price"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/products", io.NopCloser(jsonBody(body)))
	rec := httptest.NewRecorder()
	AdminCreateProduct(&stubProductService{}, testLogger()).ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	var envelope types.ErrorEnvelope
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decoding error envelope: %v", err)
	}
	if envelope.Error.Code != string(pkgerrors.CodeValidation) {
		t.Fatalf("unexpected code %s", envelope.Error.Code)
	}
}

func TestAdminCreateProductReturns201(t *testing.T) {
	stub := &stubProductService{product: &productsvc.ProductDTO{ID: uuid.New(), Name: "City Mug"}}
	body := `{"name": "City Mug", "price": 14.5, "category": "mugs"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/products", jsonBody(body))
	rec := httptest.NewRecorder()
	AdminCreateProduct(stub, testLogger()).ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
}
