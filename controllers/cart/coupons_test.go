package cartControllers

import (
	"testing"

	"github.com/alka-bakery/bakery-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(n int) *int       { return &n }
func strPtr(s string) *string { return &s }

func TestCouponDiscountPercent(t *testing.T) {
	cp := &models.Coupon{Code: "SAVE10", Type: models.CouponTypePercent, Value: 10}
	assert.Equal(t, 100.0, couponDiscount(cp, 1000))
}

func TestCouponDiscountFixed(t *testing.T) {
	cp := &models.Coupon{Code: "FLAT50", Type: models.CouponTypeFixed, Value: 50}
	assert.Equal(t, 50.0, couponDiscount(cp, 1000))
}

func TestCouponDiscountCappedAtSubtotal(t *testing.T) {
	cp := &models.Coupon{Code: "FLAT50", Type: models.CouponTypeFixed, Value: 50}
	assert.Equal(t, 30.0, couponDiscount(cp, 30))

	percent := &models.Coupon{Code: "BIG", Type: models.CouponTypePercent, Value: 150}
	assert.Equal(t, 200.0, couponDiscount(percent, 200))
}

func TestCouponDiscountNeverNegative(t *testing.T) {
	cp := &models.Coupon{Code: "WEIRD", Type: models.CouponTypeFixed, Value: -20}
	assert.Equal(t, 0.0, couponDiscount(cp, 100))
}

func TestBestAutoCouponPicksMaxDiscount(t *testing.T) {
	coupons := []models.Coupon{
		{Code: "AUTO5", Type: models.CouponTypePercent, Value: 5},
		{Code: "AUTO100", Type: models.CouponTypeFixed, Value: 100},
		{Code: "AUTO8", Type: models.CouponTypePercent, Value: 8},
	}

	best := bestAutoCoupon(coupons, 1000, "")
	require.NotNil(t, best)
	assert.Equal(t, "AUTO100", best.Code)
	assert.Equal(t, 100.0, best.Discount)
}

func TestBestAutoCouponTieKeepsFirst(t *testing.T) {
	coupons := []models.Coupon{
		{Code: "FIRST", Type: models.CouponTypeFixed, Value: 100},
		{Code: "SECOND", Type: models.CouponTypeFixed, Value: 100},
	}

	best := bestAutoCoupon(coupons, 1000, "")
	require.NotNil(t, best)
	assert.Equal(t, "FIRST", best.Code)
}

func TestBestAutoCouponExcludesManualCode(t *testing.T) {
	coupons := []models.Coupon{
		{Code: "SAVE10", Type: models.CouponTypePercent, Value: 10},
		{Code: "AUTO5", Type: models.CouponTypePercent, Value: 5},
	}

	best := bestAutoCoupon(coupons, 1000, "save10")
	require.NotNil(t, best)
	assert.Equal(t, "AUTO5", best.Code)
}

func TestBestAutoCouponEmptyPool(t *testing.T) {
	assert.Nil(t, bestAutoCoupon(nil, 1000, ""))
	assert.Nil(t, bestAutoCoupon([]models.Coupon{{Code: "ONLY", Type: models.CouponTypeFixed, Value: 10}}, 1000, "only"))
}

func TestBestAutoCouponCarriesGift(t *testing.T) {
	coupons := []models.Coupon{
		{
			Code:              "GIFT1000",
			Type:              models.CouponTypeFixed,
			Value:             0,
			FreeGiftProductID: strPtr("brownie"),
			FreeGiftQty:       intPtr(2),
		},
	}

	best := bestAutoCoupon(coupons, 1200, "")
	require.NotNil(t, best)
	require.NotNil(t, best.FreeGiftProductID)
	assert.Equal(t, "brownie", *best.FreeGiftProductID)
	assert.Equal(t, 2, best.FreeGiftQty)
}

func TestBestAutoCouponGiftQtyDefaultsToOne(t *testing.T) {
	coupons := []models.Coupon{
		{Code: "GIFT", Type: models.CouponTypeFixed, Value: 0, FreeGiftProductID: strPtr("brownie")},
	}

	best := bestAutoCoupon(coupons, 1200, "")
	require.NotNil(t, best)
	assert.Equal(t, 1, best.FreeGiftQty)
}
