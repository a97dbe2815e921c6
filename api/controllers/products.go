package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/printcraftlabs/printcraft-backend/api/responses"
	"github.com/printcraftlabs/printcraft-backend/api/validators"
	productsvc "github.com/printcraftlabs/printcraft-backend/internal/products"
	"github.com/printcraftlabs/printcraft-backend/pkg/enums"
	pkgerrors "github.com/printcraftlabs/printcraft-backend/pkg/errors"
	"github.com/printcraftlabs/printcraft-backend/pkg/logger"
	"github.com/printcraftlabs/printcraft-backend/pkg/pagination"
	"github.com/printcraftlabs/printcraft-backend/pkg/types"
)

// ListProducts serves the public catalog with optional filters.
func ListProducts(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", 0, 1, 100)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		inStock, err := validators.ParseQueryBool(r, "in_stock")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		customizable, err := validators.ParseQueryBool(r, "customizable")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		featured, err := validators.ParseQueryBool(r, "featured")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		filters := productsvc.ListFilters{
			Category:     strings.TrimSpace(r.URL.Query().Get("category")),
			InStock:      inStock,
			Customizable: customizable,
			Featured:     featured,
			Query:        validators.SanitizeString(r.URL.Query().Get("q"), 200),
		}
		if raw := strings.TrimSpace(r.URL.Query().Get("product_for")); raw != "" {
			audience, err := enums.ParseProductFor(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid product audience"))
				return
			}
			filters.ProductFor = &audience
		}

		result, err := svc.ListProducts(r.Context(), productsvc.ListInput{
			Filters: filters,
			Pagination: pagination.Params{
				Limit:  limit,
				Cursor: strings.TrimSpace(r.URL.Query().Get("cursor")),
			},
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

func GetProduct(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		id, err := uuid.Parse(chi.URLParam(r, "productId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid product id"))
			return
		}

		product, err := svc.GetProduct(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, product)
	}
}

// AdminCreateProduct handles catalog creation from the back office.
func AdminCreateProduct(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		var payload createProductRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toCreateInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.CreateProduct(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, product)
	}
}

func AdminUpdateProduct(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		id, err := uuid.Parse(chi.URLParam(r, "productId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid product id"))
			return
		}

		var payload updateProductRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toUpdateInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.UpdateProduct(r.Context(), id, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, product)
	}
}

func AdminDeleteProduct(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		id, err := uuid.Parse(chi.URLParam(r, "productId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid product id"))
			return
		}

		if err := svc.DeleteProduct(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

type createProductRequest struct {
	Name          string                 `json:"name" validate:"required"`
	Description   string                 `json:"description,omitempty"`
	Price         float64                `json:"price" validate:"required,gt=0"`
	OriginalPrice *float64               `json:"original_price,omitempty" validate:"omitempty,gt=0"`
	CostPrice     float64                `json:"cost_price,omitempty" validate:"omitempty,gte=0"`
	Category      string                 `json:"category" validate:"required"`
	ProductFor    string                 `json:"product_for,omitempty"`
	Stock         int                    `json:"stock,omitempty" validate:"omitempty,gte=0"`
	InStock       *bool                  `json:"in_stock,omitempty"`
	FrontImage    string                 `json:"front_image,omitempty"`
	BackImage     string                 `json:"back_image,omitempty"`
	Gallery       []string               `json:"gallery,omitempty"`
	IsFeatured    bool                   `json:"is_featured,omitempty"`
	Sizes         []string               `json:"sizes,omitempty"`
	Colors        []string               `json:"colors,omitempty"`
	Tags          []string               `json:"tags,omitempty"`
	Specification types.SpecificationMap `json:"specification,omitempty"`
}

func (p createProductRequest) toCreateInput() (productsvc.CreateProductInput, error) {
	audience := enums.ProductForSale
	if raw := strings.TrimSpace(p.ProductFor); raw != "" {
		parsed, err := enums.ParseProductFor(raw)
		if err != nil {
			return productsvc.CreateProductInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid product audience")
		}
		audience = parsed
	}

	return productsvc.CreateProductInput{
		Name:          p.Name,
		Description:   p.Description,
		Price:         p.Price,
		OriginalPrice: p.OriginalPrice,
		CostPrice:     p.CostPrice,
		Category:      p.Category,
		ProductFor:    audience,
		Stock:         p.Stock,
		InStock:       p.InStock,
		FrontImage:    p.FrontImage,
		BackImage:     p.BackImage,
		Gallery:       p.Gallery,
		IsFeatured:    p.IsFeatured,
		Sizes:         p.Sizes,
		Colors:        p.Colors,
		Tags:          p.Tags,
		Specification: p.Specification,
	}, nil
}

type updateProductRequest struct {
	Name          *string                 `json:"name,omitempty"`
	Description   *string                 `json:"description,omitempty"`
	Price         *float64                `json:"price,omitempty" validate:"omitempty,gt=0"`
	OriginalPrice *float64                `json:"original_price,omitempty" validate:"omitempty,gt=0"`
	CostPrice     *float64                `json:"cost_price,omitempty" validate:"omitempty,gte=0"`
	Category      *string                 `json:"category,omitempty"`
	ProductFor    *string                 `json:"product_for,omitempty"`
	Stock         *int                    `json:"stock,omitempty" validate:"omitempty,gte=0"`
	InStock       *bool                   `json:"in_stock,omitempty"`
	FrontImage    *string                 `json:"front_image,omitempty"`
	BackImage     *string                 `json:"back_image,omitempty"`
	Gallery       *[]string               `json:"gallery,omitempty"`
	IsFeatured    *bool                   `json:"is_featured,omitempty"`
	Sizes         *[]string               `json:"sizes,omitempty"`
	Colors        *[]string               `json:"colors,omitempty"`
	Tags          *[]string               `json:"tags,omitempty"`
	Specification *types.SpecificationMap `json:"specification,omitempty"`
}

func (p updateProductRequest) toUpdateInput() (productsvc.UpdateProductInput, error) {
	input := productsvc.UpdateProductInput{
		Name:          p.Name,
		Description:   p.Description,
		Price:         p.Price,
		OriginalPrice: p.OriginalPrice,
		CostPrice:     p.CostPrice,
		Category:      p.Category,
		Stock:         p.Stock,
		InStock:       p.InStock,
		FrontImage:    p.FrontImage,
		BackImage:     p.BackImage,
		Gallery:       p.Gallery,
		IsFeatured:    p.IsFeatured,
		Sizes:         p.Sizes,
		Colors:        p.Colors,
		Tags:          p.Tags,
		Specification: p.Specification,
	}
	if p.ProductFor != nil {
		audience, err := enums.ParseProductFor(strings.TrimSpace(*p.ProductFor))
		if err != nil {
			return productsvc.UpdateProductInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid product audience")
		}
		input.ProductFor = &audience
	}
	return input, nil
}
