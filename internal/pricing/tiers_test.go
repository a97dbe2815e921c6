package pricing

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/printcraftlabs/printcraft-backend/pkg/db/models"
	pkgerrors "github.com/printcraftlabs/printcraft-backend/pkg/errors"
)

type stubTierRepo struct {
	rows      []models.BulkDiscountTier
	createErr error
	updateErr error
	deleted   uuid.UUID
}

func (s *stubTierRepo) ListTiers(_ context.Context) ([]models.BulkDiscountTier, error) {
	return s.rows, nil
}

func (s *stubTierRepo) CreateTier(_ context.Context, tier *models.BulkDiscountTier) (*models.BulkDiscountTier, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	tier.ID = uuid.New()
	return tier, nil
}

func (s *stubTierRepo) UpdateTier(_ context.Context, id uuid.UUID, updates map[string]any) (*models.BulkDiscountTier, error) {
	if s.updateErr != nil {
		return nil, s.updateErr
	}
	row := models.BulkDiscountTier{ID: id, MinQuantity: 10, DiscountPercent: 5}
	if v, ok := updates["min_quantity"].(int); ok {
		row.MinQuantity = v
	}
	if v, ok := updates["discount_percent"].(float64); ok {
		row.DiscountPercent = v
	}
	return &row, nil
}

func (s *stubTierRepo) DeleteTier(_ context.Context, id uuid.UUID) error {
	s.deleted = id
	return nil
}

func tierErrCode(t *testing.T, err error) pkgerrors.Code {
	t.Helper()
	typed := pkgerrors.As(err)
	if typed == nil {
		t.Fatalf("expected typed error, got %v", err)
	}
	return typed.Code()
}

func TestCreateTierValidatesBounds(t *testing.T) {
	svc, err := NewTierService(&stubTierRepo{})
	if err != nil {
		t.Fatalf("NewTierService: %v", err)
	}

	cases := []struct {
		name  string
		input CreateTierInput
	}{
		{"thresholdTooLow", CreateTierInput{MinQuantity: 1, DiscountPercent: 5}},
		{"zeroPercent", CreateTierInput{MinQuantity: 10, DiscountPercent: 0}},
		{"overHundredPercent", CreateTierInput{MinQuantity: 10, DiscountPercent: 120}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateTier(context.Background(), tc.input)
			if code := tierErrCode(t, err); code != pkgerrors.CodeValidation {
				t.Fatalf("expected validation error, got %s", code)
			}
		})
	}
}

func TestCreateTierMapsDuplicateThresholdToConflict(t *testing.T) {
	repo := &stubTierRepo{
		createErr: errors.New(`duplicate key value violates unique constraint "uq_bulk_discount_tiers_min_quantity"`),
	}
	svc, err := NewTierService(repo)
	if err != nil {
		t.Fatalf("NewTierService: %v", err)
	}

	_, err = svc.CreateTier(context.Background(), CreateTierInput{MinQuantity: 25, DiscountPercent: 10})
	if code := tierErrCode(t, err); code != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict, got %s", code)
	}
}

func TestCreateTierReturnsPersistedRow(t *testing.T) {
	svc, err := NewTierService(&stubTierRepo{})
	if err != nil {
		t.Fatalf("NewTierService: %v", err)
	}

	tier, err := svc.CreateTier(context.Background(), CreateTierInput{MinQuantity: 50, DiscountPercent: 15})
	if err != nil {
		t.Fatalf("CreateTier: %v", err)
	}
	if tier.ID == uuid.Nil || tier.MinQuantity != 50 || tier.DiscountPercent != 15 {
		t.Fatalf("unexpected tier: %+v", tier)
	}
}

func TestUpdateTierMapsMissingRowToNotFound(t *testing.T) {
	svc, err := NewTierService(&stubTierRepo{updateErr: gorm.ErrRecordNotFound})
	if err != nil {
		t.Fatalf("NewTierService: %v", err)
	}

	percent := 20.0
	_, err = svc.UpdateTier(context.Background(), uuid.New(), UpdateTierInput{DiscountPercent: &percent})
	if code := tierErrCode(t, err); code != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %s", code)
	}
}

func TestUpdateTierRejectsOutOfRangePercent(t *testing.T) {
	svc, err := NewTierService(&stubTierRepo{})
	if err != nil {
		t.Fatalf("NewTierService: %v", err)
	}

	percent := 150.0
	_, err = svc.UpdateTier(context.Background(), uuid.New(), UpdateTierInput{DiscountPercent: &percent})
	if code := tierErrCode(t, err); code != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %s", code)
	}
}

func TestDeleteTierForwardsID(t *testing.T) {
	repo := &stubTierRepo{}
	svc, err := NewTierService(repo)
	if err != nil {
		t.Fatalf("NewTierService: %v", err)
	}

	id := uuid.New()
	if err := svc.DeleteTier(context.Background(), id); err != nil {
		t.Fatalf("DeleteTier: %v", err)
	}
	if repo.deleted != id {
		t.Fatalf("repo saw id %s, want %s", repo.deleted, id)
	}
}
