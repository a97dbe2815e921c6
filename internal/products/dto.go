package product

import (
	"time"

	"github.com/google/uuid"

	"github.com/printcraftlabs/printcraft-backend/pkg/db/models"
	"github.com/printcraftlabs/printcraft-backend/pkg/enums"
	"github.com/printcraftlabs/printcraft-backend/pkg/pagination"
	"github.com/printcraftlabs/printcraft-backend/pkg/types"
)

// ProductDTO is the catalog listing shape returned to clients.
type ProductDTO struct {
	ID            uuid.UUID              `json:"id"`
	Name          string                 `json:"name"`
	Description   string                 `json:"description,omitempty"`
	Price         float64                `json:"price"`
	OriginalPrice *float64               `json:"original_price,omitempty"`
	Category      string                 `json:"category"`
	ProductFor    enums.ProductFor       `json:"product_for"`
	Stock         int                    `json:"stock"`
	InStock       bool                   `json:"in_stock"`
	FrontImage    string                 `json:"front_image,omitempty"`
	BackImage     string                 `json:"back_image,omitempty"`
	Gallery       []string               `json:"gallery,omitempty"`
	Rating        float64                `json:"rating"`
	Reviews       int                    `json:"reviews"`
	IsFeatured    bool                   `json:"is_featured"`
	Sizes         []string               `json:"sizes,omitempty"`
	Colors        []string               `json:"colors,omitempty"`
	Tags          []string               `json:"tags,omitempty"`
	Specification types.SpecificationMap `json:"specification,omitempty"`
	CreatedAt     time.Time              `json:"created_at"`
	UpdatedAt     time.Time              `json:"updated_at"`
}

// NewProductDTO converts the persisted row into its transport shape.
func NewProductDTO(m *models.Product) *ProductDTO {
	if m == nil {
		return nil
	}
	return &ProductDTO{
		ID:            m.ID,
		Name:          m.Name,
		Description:   m.Description,
		Price:         m.Price,
		OriginalPrice: m.OriginalPrice,
		Category:      m.Category,
		ProductFor:    m.ProductFor,
		Stock:         m.Stock,
		InStock:       m.InStock,
		FrontImage:    m.FrontImage,
		BackImage:     m.BackImage,
		Gallery:       m.Gallery,
		Rating:        m.Rating,
		Reviews:       m.Reviews,
		IsFeatured:    m.IsFeatured,
		Sizes:         m.Sizes,
		Colors:        m.Colors,
		Tags:          m.Tags,
		Specification: m.Specification,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

// CreateProductInput holds the validated payload to create a listing.
type CreateProductInput struct {
	Name          string
	Description   string
	Price         float64
	OriginalPrice *float64
	CostPrice     float64
	Category      string
	ProductFor    enums.ProductFor
	Stock         int
	InStock       *bool
	FrontImage    string
	BackImage     string
	Gallery       []string
	IsFeatured    bool
	Sizes         []string
	Colors        []string
	Tags          []string
	Specification types.SpecificationMap
}

// UpdateProductInput holds optional mutation values. Nil fields are left
// untouched.
type UpdateProductInput struct {
	Name          *string
	Description   *string
	Price         *float64
	OriginalPrice *float64
	CostPrice     *float64
	Category      *string
	ProductFor    *enums.ProductFor
	Stock         *int
	InStock       *bool
	FrontImage    *string
	BackImage     *string
	Gallery       *[]string
	IsFeatured    *bool
	Sizes         *[]string
	Colors        *[]string
	Tags          *[]string
	Specification *types.SpecificationMap
}

// ListFilters narrows the public catalog listing.
type ListFilters struct {
	Category     string
	InStock      *bool
	ProductFor   *enums.ProductFor
	Customizable *bool
	Featured     *bool
	Query        string
}

// ListInput combines filters with cursor pagination.
type ListInput struct {
	Filters    ListFilters
	Pagination pagination.Params
}

// ListResult is one page of catalog listings.
type ListResult struct {
	Products   []ProductDTO `json:"products"`
	NextCursor string       `json:"next_cursor,omitempty"`
}
