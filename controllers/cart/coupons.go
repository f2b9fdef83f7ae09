package cartControllers

import (
	"errors"
	"strings"

	"github.com/alka-bakery/bakery-api/models"
	"gorm.io/gorm"
)

type couponResult struct {
	Code              string
	Discount          float64
	FreeGiftProductID *string
	FreeGiftQty       int
}

// couponDiscount computes a coupon's discount against a subtotal.
// Percent coupons scale with the subtotal, fixed coupons are flat; both
// are capped so the discount never exceeds the subtotal.
func couponDiscount(cp *models.Coupon, subtotal float64) float64 {
	var d float64
	switch cp.Type {
	case models.CouponTypePercent:
		d = subtotal * cp.Value / 100
	case models.CouponTypeFixed:
		d = cp.Value
	}
	if d < 0 {
		d = 0
	}
	if d > subtotal {
		d = subtotal
	}
	return d
}

// findManualCoupon looks up an active coupon by code, case-insensitively.
// Returns (nil, nil) when no such coupon exists.
func findManualCoupon(db *gorm.DB, code string) (*models.Coupon, error) {
	var cp models.Coupon
	err := db.Where("LOWER(code) = ? AND is_active = ?", strings.ToLower(strings.TrimSpace(code)), true).
		First(&cp).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &cp, nil
}

// loadAutoCandidates returns the active automatic coupons whose
// threshold the subtotal has crossed, in catalog order. The ordering is
// what makes tie-breaking deterministic.
func loadAutoCandidates(db *gorm.DB, subtotal float64) ([]models.Coupon, error) {
	var coupons []models.Coupon
	err := db.Where("is_auto = ? AND is_active = ? AND auto_threshold <= ?", true, true, subtotal).
		Order("created_at asc").
		Find(&coupons).Error
	return coupons, err
}

// bestAutoCoupon picks the single best automatic discount. The active
// manual code is excluded so the same coupon is never counted twice.
// Ties keep the first candidate evaluated.
func bestAutoCoupon(coupons []models.Coupon, subtotal float64, excludeCode string) *couponResult {
	var best *couponResult
	for i := range coupons {
		cp := &coupons[i]
		if excludeCode != "" && strings.EqualFold(cp.Code, excludeCode) {
			continue
		}
		d := couponDiscount(cp, subtotal)
		if best == nil || d > best.Discount {
			qty := 1
			if cp.FreeGiftQty != nil && *cp.FreeGiftQty > 0 {
				qty = *cp.FreeGiftQty
			}
			best = &couponResult{
				Code:              cp.Code,
				Discount:          d,
				FreeGiftProductID: cp.FreeGiftProductID,
				FreeGiftQty:       qty,
			}
		}
	}
	return best
}
