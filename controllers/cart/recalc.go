package cartControllers

import (
	"github.com/alka-bakery/bakery-api/models"
	"gorm.io/gorm"
)

func loadCartWithItems(db *gorm.DB, cartID string) (*models.Cart, error) {
	var cart models.Cart
	err := db.Preload("Items", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("created_at asc")
	}).First(&cart, "id = ?", cartID).Error
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

// recalcTotals is the single source of truth for a cart's derived
// state. Every cart-mutating operation ends here: fresh reload,
// subtotal over non-gift lines, manual coupon re-validation, best-auto
// selection, gift reconciliation, then one update carrying all derived
// fields. Nothing is written when nothing changed, so a repeated call
// with no intervening mutation is a pure read.
func recalcTotals(db *gorm.DB, cartID string) (*models.Cart, error) {
	cart, err := loadCartWithItems(db, cartID)
	if err != nil {
		return nil, err
	}

	var subtotal float64
	for _, it := range cart.Items {
		if !it.IsGift {
			subtotal += it.LineTotal
		}
	}

	// Manual path: a stored code is re-validated on every pass. Codes
	// that are gone, inactive or under threshold are cleared, not kept
	// around invalid.
	var manualCode *string
	var manualDiscount float64
	if cart.CouponCode != nil {
		cp, err := findManualCoupon(db, *cart.CouponCode)
		if err != nil {
			return nil, err
		}
		if cp != nil && subtotal >= cp.MinCartAmount {
			code := cp.Code
			manualCode = &code
			manualDiscount = couponDiscount(cp, subtotal)
		}
	}

	// Auto path: best threshold-triggered discount, manual code excluded.
	var autoCode *string
	var autoDiscount float64
	var want *giftWant
	if subtotal > 0 {
		exclude := ""
		if manualCode != nil {
			exclude = *manualCode
		}
		candidates, err := loadAutoCandidates(db, subtotal)
		if err != nil {
			return nil, err
		}
		if best := bestAutoCoupon(candidates, subtotal, exclude); best != nil {
			code := best.Code
			autoCode = &code
			autoDiscount = best.Discount
			if best.FreeGiftProductID != nil {
				want = &giftWant{ProductID: *best.FreeGiftProductID, Qty: best.FreeGiftQty}
			}
		}
	}

	giftApplied, _, err := reconcileGiftLines(db, cart, cart.Items, want)
	if err != nil {
		return nil, err
	}

	discountTotal := manualDiscount + autoDiscount
	grandTotal := subtotal - discountTotal
	if grandTotal < 0 {
		grandTotal = 0
	}

	if cart.Subtotal != subtotal ||
		cart.DiscountTotal != discountTotal ||
		cart.GrandTotal != grandTotal ||
		!strPtrEq(cart.CouponCode, manualCode) ||
		cart.CouponDiscount != manualDiscount ||
		!strPtrEq(cart.AutoCouponCode, autoCode) ||
		cart.AutoDiscount != autoDiscount ||
		cart.FreeGiftApplied != giftApplied {
		err = db.Model(&models.Cart{}).Where("id = ?", cart.ID).Updates(map[string]interface{}{
			"subtotal":          subtotal,
			"discount_total":    discountTotal,
			"grand_total":       grandTotal,
			"coupon_code":       manualCode,
			"coupon_discount":   manualDiscount,
			"auto_coupon_code":  autoCode,
			"auto_discount":     autoDiscount,
			"free_gift_applied": giftApplied,
		}).Error
		if err != nil {
			return nil, err
		}
	}

	return loadCartWithItems(db, cart.ID)
}

// Recalculate re-derives a cart's totals. Exported for the order flow,
// which empties the cart after checkout.
func Recalculate(db *gorm.DB, cartID string) (*models.Cart, error) {
	return recalcTotals(db, cartID)
}

func strPtrEq(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
