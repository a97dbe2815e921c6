package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/printcraftlabs/printcraft-backend/api/responses"
	"github.com/printcraftlabs/printcraft-backend/api/validators"
	couponsvc "github.com/printcraftlabs/printcraft-backend/internal/coupons"
	"github.com/printcraftlabs/printcraft-backend/pkg/enums"
	pkgerrors "github.com/printcraftlabs/printcraft-backend/pkg/errors"
	"github.com/printcraftlabs/printcraft-backend/pkg/logger"
)

type validateCouponRequest struct {
	Code     string  `json:"code" validate:"required"`
	Subtotal float64 `json:"subtotal" validate:"gte=0"`
}

// ValidateCoupon prices a coupon against a cart subtotal without consuming a
// redemption.
func ValidateCoupon(svc couponsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "coupon service unavailable"))
			return
		}

		var payload validateCouponRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.ValidateCoupon(r.Context(), payload.Code, payload.Subtotal)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

func AdminListCoupons(svc couponsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "coupon service unavailable"))
			return
		}

		coupons, err := svc.ListCoupons(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"coupons": coupons})
	}
}

func AdminCreateCoupon(svc couponsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "coupon service unavailable"))
			return
		}

		var payload createCouponRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toCreateInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		coupon, err := svc.CreateCoupon(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, coupon)
	}
}

func AdminUpdateCoupon(svc couponsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "coupon service unavailable"))
			return
		}

		id, err := uuid.Parse(chi.URLParam(r, "couponId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid coupon id"))
			return
		}

		var payload updateCouponRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toUpdateInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		coupon, err := svc.UpdateCoupon(r.Context(), id, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, coupon)
	}
}

func AdminDeleteCoupon(svc couponsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "coupon service unavailable"))
			return
		}

		id, err := uuid.Parse(chi.URLParam(r, "couponId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid coupon id"))
			return
		}

		if err := svc.DeleteCoupon(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

type createCouponRequest struct {
	Code         string  `json:"code" validate:"required"`
	Description  string  `json:"description,omitempty"`
	DiscountType string  `json:"discount_type" validate:"required"`
	Value        float64 `json:"value" validate:"required,gt=0"`
	MinOrder     float64 `json:"min_order,omitempty" validate:"omitempty,gte=0"`
	MaxDiscount  float64 `json:"max_discount,omitempty" validate:"omitempty,gte=0"`
	ValidFrom    string  `json:"valid_from" validate:"required"`
	ValidTo      string  `json:"valid_to" validate:"required"`
	UsageLimit   int     `json:"usage_limit,omitempty" validate:"omitempty,gte=0"`
	Status       string  `json:"status,omitempty"`
}

func (p createCouponRequest) toCreateInput() (couponsvc.CreateCouponInput, error) {
	discountType, err := enums.ParseDiscountType(strings.TrimSpace(p.DiscountType))
	if err != nil {
		return couponsvc.CreateCouponInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid discount type")
	}

	validFrom, err := parseBodyTime(p.ValidFrom, "valid_from")
	if err != nil {
		return couponsvc.CreateCouponInput{}, err
	}
	validTo, err := parseBodyTime(p.ValidTo, "valid_to")
	if err != nil {
		return couponsvc.CreateCouponInput{}, err
	}

	input := couponsvc.CreateCouponInput{
		Code:         p.Code,
		Description:  p.Description,
		DiscountType: discountType,
		Value:        p.Value,
		MinOrder:     p.MinOrder,
		MaxDiscount:  p.MaxDiscount,
		ValidFrom:    validFrom,
		ValidTo:      validTo,
		UsageLimit:   p.UsageLimit,
	}
	if raw := strings.TrimSpace(p.Status); raw != "" {
		status, err := enums.ParseCouponStatus(raw)
		if err != nil {
			return couponsvc.CreateCouponInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid coupon status")
		}
		input.Status = status
	}
	return input, nil
}

type updateCouponRequest struct {
	Description *string  `json:"description,omitempty"`
	Value       *float64 `json:"value,omitempty" validate:"omitempty,gt=0"`
	MinOrder    *float64 `json:"min_order,omitempty" validate:"omitempty,gte=0"`
	MaxDiscount *float64 `json:"max_discount,omitempty" validate:"omitempty,gte=0"`
	ValidFrom   *string  `json:"valid_from,omitempty"`
	ValidTo     *string  `json:"valid_to,omitempty"`
	UsageLimit  *int     `json:"usage_limit,omitempty" validate:"omitempty,gte=0"`
	Status      *string  `json:"status,omitempty"`
}

func (p updateCouponRequest) toUpdateInput() (couponsvc.UpdateCouponInput, error) {
	input := couponsvc.UpdateCouponInput{
		Description: p.Description,
		Value:       p.Value,
		MinOrder:    p.MinOrder,
		MaxDiscount: p.MaxDiscount,
		UsageLimit:  p.UsageLimit,
	}
	if p.ValidFrom != nil {
		ts, err := parseBodyTime(*p.ValidFrom, "valid_from")
		if err != nil {
			return couponsvc.UpdateCouponInput{}, err
		}
		input.ValidFrom = &ts
	}
	if p.ValidTo != nil {
		ts, err := parseBodyTime(*p.ValidTo, "valid_to")
		if err != nil {
			return couponsvc.UpdateCouponInput{}, err
		}
		input.ValidTo = &ts
	}
	if p.Status != nil {
		status, err := enums.ParseCouponStatus(strings.TrimSpace(*p.Status))
		if err != nil {
			return couponsvc.UpdateCouponInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid coupon status")
		}
		input.Status = &status
	}
	return input, nil
}

func parseBodyTime(raw, field string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if ts, err := time.Parse(time.RFC3339, raw); err == nil {
		return ts, nil
	}
	ts, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, pkgerrors.New(pkgerrors.CodeValidation, "invalid timestamp").WithDetails(map[string]any{"field": field})
	}
	return ts, nil
}
