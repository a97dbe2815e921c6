package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/printcraftlabs/printcraft-backend/api/responses"
	"github.com/printcraftlabs/printcraft-backend/api/validators"
	pricingsvc "github.com/printcraftlabs/printcraft-backend/internal/pricing"
	pkgerrors "github.com/printcraftlabs/printcraft-backend/pkg/errors"
	"github.com/printcraftlabs/printcraft-backend/pkg/logger"
)

type createTierRequest struct {
	MinQuantity     int     `json:"min_quantity" validate:"required,gte=2"`
	DiscountPercent float64 `json:"discount_percent" validate:"required,gt=0,lte=100"`
}

type updateTierRequest struct {
	MinQuantity     *int     `json:"min_quantity" validate:"omitempty,gte=2"`
	DiscountPercent *float64 `json:"discount_percent" validate:"omitempty,gt=0,lte=100"`
}

// AdminListTiers returns the bulk discount ladder.
func AdminListTiers(svc pricingsvc.TierService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "tier service unavailable"))
			return
		}

		tiers, err := svc.ListTiers(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"tiers": tiers})
	}
}

func AdminCreateTier(svc pricingsvc.TierService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "tier service unavailable"))
			return
		}

		var payload createTierRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		tier, err := svc.CreateTier(r.Context(), pricingsvc.CreateTierInput{
			MinQuantity:     payload.MinQuantity,
			DiscountPercent: payload.DiscountPercent,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, tier)
	}
}

func AdminUpdateTier(svc pricingsvc.TierService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "tier service unavailable"))
			return
		}

		id, err := uuid.Parse(chi.URLParam(r, "tierId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid tier id"))
			return
		}

		var payload updateTierRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		tier, err := svc.UpdateTier(r.Context(), id, pricingsvc.UpdateTierInput{
			MinQuantity:     payload.MinQuantity,
			DiscountPercent: payload.DiscountPercent,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, tier)
	}
}

func AdminDeleteTier(svc pricingsvc.TierService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "tier service unavailable"))
			return
		}

		id, err := uuid.Parse(chi.URLParam(r, "tierId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid tier id"))
			return
		}

		if err := svc.DeleteTier(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}
