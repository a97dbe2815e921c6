package pricing

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/printcraftlabs/printcraft-backend/pkg/config"
	"github.com/printcraftlabs/printcraft-backend/pkg/db/models"
	"github.com/printcraftlabs/printcraft-backend/pkg/enums"
	pkgerrors "github.com/printcraftlabs/printcraft-backend/pkg/errors"
	"github.com/printcraftlabs/printcraft-backend/pkg/types"
)

// LineOptions captures the priced properties of one customized line.
type LineOptions struct {
	HasImage  bool
	TextAreas int
	FullBody  bool
	FontsUsed []string
}

// OptionsFromCustomization derives the billable options from a design payload.
func OptionsFromCustomization(data *types.CustomizationData, fullBody bool) LineOptions {
	return LineOptions{
		HasImage:  data.HasLogo(),
		TextAreas: data.TextElementCount(),
		FullBody:  fullBody,
		FontsUsed: data.FontFamilies(),
	}
}

// ComputeLineAddOns prices the customization add-ons for one line item.
// Intermediate math stays in decimal; the result is not rounded because it
// feeds further computation.
func ComputeLineAddOns(cfg config.PricingConfig, opts LineOptions) decimal.Decimal {
	total := decimal.Zero

	if opts.HasImage {
		total = total.Add(decimal.NewFromFloat(cfg.ImageUploadCost))
	}

	textAreas := opts.TextAreas
	if cfg.MaxBillableTextAreas > 0 && textAreas > cfg.MaxBillableTextAreas {
		textAreas = cfg.MaxBillableTextAreas
	}
	if textAreas > 0 {
		total = total.Add(decimal.NewFromFloat(cfg.TextAreaCost).Mul(decimal.NewFromInt(int64(textAreas))))
	}

	if opts.FullBody {
		total = total.Add(decimal.NewFromFloat(cfg.FullBodyDesignCost))
	}

	premium := map[string]bool{}
	for _, font := range cfg.PremiumFonts {
		premium[font] = true
	}
	surcharge := decimal.NewFromFloat(cfg.PremiumFontSurcharge)
	seen := map[string]bool{}
	for _, font := range opts.FontsUsed {
		if premium[font] && !seen[font] {
			seen[font] = true
			total = total.Add(surcharge)
		}
	}

	return total
}

// ApplyCoupon returns the effective discount for a subtotal, or zero when any
// applicability rule fails: outside the validity window, usage exhausted,
// subtotal under the minimum, or coupon inactive.
func ApplyCoupon(subtotal decimal.Decimal, coupon *models.Coupon, now time.Time) decimal.Decimal {
	if coupon == nil {
		return decimal.Zero
	}
	if coupon.Status != enums.CouponStatusActive {
		return decimal.Zero
	}
	if now.Before(coupon.ValidFrom) || now.After(coupon.ValidTo) {
		return decimal.Zero
	}
	if coupon.UsageLimit > 0 && coupon.UsedCount >= coupon.UsageLimit {
		return decimal.Zero
	}
	if subtotal.LessThan(decimal.NewFromFloat(coupon.MinOrder)) {
		return decimal.Zero
	}

	var raw decimal.Decimal
	switch coupon.DiscountType {
	case enums.DiscountTypePercentage:
		raw = subtotal.Mul(decimal.NewFromFloat(coupon.Value)).Div(decimal.NewFromInt(100))
	case enums.DiscountTypeFixed:
		raw = decimal.NewFromFloat(coupon.Value)
	default:
		return decimal.Zero
	}

	if coupon.MaxDiscount > 0 {
		cap := decimal.NewFromFloat(coupon.MaxDiscount)
		if raw.GreaterThan(cap) {
			raw = cap
		}
	}
	if raw.LessThan(decimal.Zero) {
		return decimal.Zero
	}
	return raw
}

// ApplyBulkDiscount selects the tier with the greatest threshold the order
// quantity meets. Tiers are not cumulative; no qualifying tier means zero.
func ApplyBulkDiscount(subtotal decimal.Decimal, quantity int, tiers []models.BulkDiscountTier) decimal.Decimal {
	var best *models.BulkDiscountTier
	for i := range tiers {
		tier := &tiers[i]
		if quantity < tier.MinQuantity {
			continue
		}
		if best == nil || tier.MinQuantity > best.MinQuantity {
			best = tier
		}
	}
	if best == nil {
		return decimal.Zero
	}
	return subtotal.Mul(decimal.NewFromFloat(best.DiscountPercent)).Div(decimal.NewFromInt(100))
}

// ComputeTotal assembles the final charge: subtotal minus discounts, plus
// shipping and tax. Rounding happens once, at the end, so intermediate terms
// never compound rounding error.
func ComputeTotal(cfg config.CheckoutConfig, subtotal, discounts decimal.Decimal) (decimal.Decimal, error) {
	if subtotal.LessThan(decimal.Zero) {
		return decimal.Zero, pkgerrors.New(pkgerrors.CodeValidation, "subtotal cannot be negative")
	}

	shipping := decimal.NewFromFloat(cfg.ShippingFee)
	if subtotal.GreaterThanOrEqual(decimal.NewFromFloat(cfg.FreeShippingThreshold)) {
		shipping = decimal.Zero
	}

	tax := subtotal.Mul(decimal.NewFromFloat(cfg.TaxRate))

	total := subtotal.Sub(discounts).Add(shipping).Add(tax)
	if total.LessThan(decimal.Zero) {
		total = decimal.Zero
	}
	return total.Round(2), nil
}

// Round2 is the single rounding step applied to amounts leaving the pricing
// layer.
func Round2(value decimal.Decimal) float64 {
	f, _ := value.Round(2).Float64()
	return f
}
