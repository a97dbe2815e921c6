package product

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/printcraftlabs/printcraft-backend/pkg/db/models"
	"github.com/printcraftlabs/printcraft-backend/pkg/enums"
	"github.com/printcraftlabs/printcraft-backend/pkg/pagination"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("opening test db: %v", err)
	}
	if err := conn.AutoMigrate(&models.Product{}); err != nil {
		t.Fatalf("migrating test db: %v", err)
	}
	return conn
}

func mustCreateProduct(t *testing.T, repo *Repository, mutate func(*models.Product)) *models.Product {
	t.Helper()

	row := &models.Product{
		Name:       "Classic Tee",
		Price:      19.99,
		Category:   "t-shirts",
		ProductFor: enums.ProductForSale,
		Stock:      10,
		InStock:    true,
	}
	if mutate != nil {
		mutate(row)
	}
	created, err := repo.Create(context.Background(), row)
	if err != nil {
		t.Fatalf("creating product: %v", err)
	}
	return created
}

func TestRepositoryCreateAssignsID(t *testing.T) {
	t.Parallel()

	repo := NewRepository(openTestDB(t))
	created := mustCreateProduct(t, repo, nil)

	if created.ID == uuid.Nil {
		t.Fatal("expected id to be assigned on create")
	}

	loaded, err := repo.FindByID(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("loading product: %v", err)
	}
	if loaded.Name != "Classic Tee" {
		t.Fatalf("unexpected name %q", loaded.Name)
	}
}

func TestRepositoryUpdateMissingRow(t *testing.T) {
	t.Parallel()

	repo := NewRepository(openTestDB(t))

	_, err := repo.Update(context.Background(), uuid.New(), map[string]any{"name": "Renamed"})
	if err != gorm.ErrRecordNotFound {
		t.Fatalf("expected gorm.ErrRecordNotFound, got %v", err)
	}
}

func TestRepositoryDeleteMissingRow(t *testing.T) {
	t.Parallel()

	repo := NewRepository(openTestDB(t))

	if err := repo.Delete(context.Background(), uuid.New()); err != gorm.ErrRecordNotFound {
		t.Fatalf("expected gorm.ErrRecordNotFound, got %v", err)
	}
}

func TestRepositoryListFilters(t *testing.T) {
	t.Parallel()

	repo := NewRepository(openTestDB(t))

	mustCreateProduct(t, repo, func(p *models.Product) {
		p.Name = "Custom Hoodie"
		p.Category = "hoodies"
		p.ProductFor = enums.ProductForCustomization
		p.IsFeatured = true
	})
	mustCreateProduct(t, repo, func(p *models.Product) {
		p.Name = "Plain Mug"
		p.Category = "mugs"
		p.InStock = false
	})
	mustCreateProduct(t, repo, nil)

	t.Run("byCategory", func(t *testing.T) {
		rows, _, err := repo.List(context.Background(), ListInput{
			Filters: ListFilters{Category: "hoodies"},
		})
		if err != nil {
			t.Fatalf("listing: %v", err)
		}
		if len(rows) != 1 || rows[0].Name != "Custom Hoodie" {
			t.Fatalf("unexpected rows: %+v", rows)
		}
	})

	t.Run("inStockOnly", func(t *testing.T) {
		inStock := true
		rows, _, err := repo.List(context.Background(), ListInput{
			Filters: ListFilters{InStock: &inStock},
		})
		if err != nil {
			t.Fatalf("listing: %v", err)
		}
		if len(rows) != 2 {
			t.Fatalf("expected 2 in-stock rows, got %d", len(rows))
		}
	})

	t.Run("customizableSpansAudiences", func(t *testing.T) {
		customizable := true
		rows, _, err := repo.List(context.Background(), ListInput{
			Filters: ListFilters{Customizable: &customizable},
		})
		if err != nil {
			t.Fatalf("listing: %v", err)
		}
		if len(rows) != 1 || rows[0].ProductFor != enums.ProductForCustomization {
			t.Fatalf("unexpected rows: %+v", rows)
		}
	})

	t.Run("featured", func(t *testing.T) {
		featured := true
		rows, _, err := repo.List(context.Background(), ListInput{
			Filters: ListFilters{Featured: &featured},
		})
		if err != nil {
			t.Fatalf("listing: %v", err)
		}
		if len(rows) != 1 || !rows[0].IsFeatured {
			t.Fatalf("unexpected rows: %+v", rows)
		}
	})

	t.Run("searchMatchesName", func(t *testing.T) {
		rows, _, err := repo.List(context.Background(), ListInput{
			Filters: ListFilters{Query: "mug"},
		})
		if err != nil {
			t.Fatalf("listing: %v", err)
		}
		if len(rows) != 1 || rows[0].Name != "Plain Mug" {
			t.Fatalf("unexpected rows: %+v", rows)
		}
	})
}

func TestRepositoryListPaginates(t *testing.T) {
	t.Parallel()

	repo := NewRepository(openTestDB(t))
	for i := 0; i < 3; i++ {
		mustCreateProduct(t, repo, func(p *models.Product) {
			p.Name = fmt.Sprintf("Tee %d", i)
		})
	}

	first, cursor, err := repo.List(context.Background(), ListInput{
		Pagination: pagination.Params{Limit: 2},
	})
	if err != nil {
		t.Fatalf("first page: %v", err)
	}
	if len(first) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(first))
	}
	if cursor == "" {
		t.Fatal("expected a next cursor")
	}

	second, nextCursor, err := repo.List(context.Background(), ListInput{
		Pagination: pagination.Params{Limit: 2, Cursor: cursor},
	})
	if err != nil {
		t.Fatalf("second page: %v", err)
	}
	if len(second) != 1 {
		t.Fatalf("expected 1 row on the final page, got %d", len(second))
	}
	if nextCursor != "" {
		t.Fatalf("expected empty cursor on the final page, got %q", nextCursor)
	}

	seen := map[uuid.UUID]bool{}
	for _, row := range append(first, second...) {
		if seen[row.ID] {
			t.Fatalf("row %s returned twice", row.ID)
		}
		seen[row.ID] = true
	}
}
