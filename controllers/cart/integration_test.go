package cartControllers

import (
	"context"
	"testing"
	"time"

	"github.com/alka-bakery/bakery-api/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// setupDB starts a throwaway postgres container and migrates the cart
// schema into it. Tests are skipped when no container runtime is
// available.
func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("bakery_test"),
		tcpostgres.WithUsername("bakery"),
		tcpostgres.WithPassword("bakery"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	if err != nil {
		t.Skipf("postgres container unavailable: %v", err)
	}
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.ProductUnitOption{},
		&models.ProductImage{},
		&models.Cart{},
		&models.CartItem{},
		&models.Coupon{},
	))
	return db
}

func seedProduct(t *testing.T, db *gorm.DB, id, name string, per100g, perPc *float64) {
	t.Helper()
	require.NoError(t, db.Create(&models.Product{
		ID:           id,
		Name:         name,
		PricePer100g: per100g,
		PricePerPc:   perPc,
	}).Error)
}

func seedCartItem(t *testing.T, db *gorm.DB, cartID, productID, name string, qty int, unitPrice float64) models.CartItem {
	t.Helper()
	item := models.CartItem{
		ID:          uuid.NewString(),
		CartID:      cartID,
		ProductID:   productID,
		ProductName: name,
		Unit:        "pc",
		Quantity:    qty,
		UnitPrice:   unitPrice,
		LineTotal:   unitPrice * float64(qty),
	}
	require.NoError(t, db.Create(&item).Error)
	return item
}

func newActiveCart(t *testing.T, db *gorm.DB, userID *string) models.Cart {
	t.Helper()
	cart := models.Cart{
		ID:       uuid.NewString(),
		UserID:   userID,
		Status:   models.CartStatusActive,
		Currency: "INR",
	}
	require.NoError(t, db.Create(&cart).Error)
	return cart
}

func TestResolveCartCreatesGuestCart(t *testing.T) {
	db := setupDB(t)

	cart, err := resolveCart(db, "", nil)
	require.NoError(t, err)
	assert.Nil(t, cart.UserID)
	assert.Equal(t, models.CartStatusActive, cart.Status)

	again, err := resolveCart(db, cart.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, cart.ID, again.ID)
}

func TestResolveCartClaimsGuestCartOnLogin(t *testing.T) {
	db := setupDB(t)
	userID := uuid.NewString()

	guest := newActiveCart(t, db, nil)

	cart, err := resolveCart(db, guest.ID, &userID)
	require.NoError(t, err)
	assert.Equal(t, guest.ID, cart.ID)
	require.NotNil(t, cart.UserID)
	assert.Equal(t, userID, *cart.UserID)
}

func TestResolveCartMergesGuestIntoUserCart(t *testing.T) {
	db := setupDB(t)
	userID := uuid.NewString()

	seedProduct(t, db, "croissant", "Croissant", nil, floatPtr(45))
	seedProduct(t, db, "brownie", "Brownie", nil, floatPtr(60))

	userCart := newActiveCart(t, db, &userID)
	seedCartItem(t, db, userCart.ID, "croissant", "Croissant", 2, 45)

	guestCart := newActiveCart(t, db, nil)
	seedCartItem(t, db, guestCart.ID, "croissant", "Croissant", 3, 45)
	seedCartItem(t, db, guestCart.ID, "brownie", "Brownie", 1, 60)

	resolved, err := resolveCart(db, guestCart.ID, &userID)
	require.NoError(t, err)
	assert.Equal(t, userCart.ID, resolved.ID)

	var items []models.CartItem
	require.NoError(t, db.Where("cart_id = ?", userCart.ID).Order("product_id asc").Find(&items).Error)
	require.Len(t, items, 2)
	assert.Equal(t, "brownie", items[0].ProductID)
	assert.Equal(t, 1, items[0].Quantity)
	assert.Equal(t, "croissant", items[1].ProductID)
	assert.Equal(t, 5, items[1].Quantity)
	assert.Equal(t, 225.0, items[1].LineTotal)

	var guest models.Cart
	require.NoError(t, db.First(&guest, "id = ?", guestCart.ID).Error)
	assert.Equal(t, models.CartStatusMerged, guest.Status)

	var leftover int64
	require.NoError(t, db.Model(&models.CartItem{}).Where("cart_id = ?", guestCart.ID).Count(&leftover).Error)
	assert.Zero(t, leftover)
}

func TestResolveCartIgnoresForeignToken(t *testing.T) {
	db := setupDB(t)
	userID := uuid.NewString()
	otherID := uuid.NewString()

	otherCart := newActiveCart(t, db, &otherID)

	resolved, err := resolveCart(db, otherCart.ID, &userID)
	require.NoError(t, err)
	assert.NotEqual(t, otherCart.ID, resolved.ID)
	require.NotNil(t, resolved.UserID)
	assert.Equal(t, userID, *resolved.UserID)
}

func TestRecalcManualCoupon(t *testing.T) {
	db := setupDB(t)

	seedProduct(t, db, "cake", "Chocolate Cake", nil, floatPtr(500))
	require.NoError(t, db.Create(&models.Coupon{
		ID: uuid.NewString(), Code: "SAVE10", Type: models.CouponTypePercent,
		Value: 10, MinCartAmount: 300, IsActive: true,
	}).Error)

	cart := newActiveCart(t, db, nil)
	seedCartItem(t, db, cart.ID, "cake", "Chocolate Cake", 2, 500)
	require.NoError(t, db.Model(&models.Cart{}).Where("id = ?", cart.ID).
		Update("coupon_code", "SAVE10").Error)

	got, err := recalcTotals(db, cart.ID)
	require.NoError(t, err)
	assert.Equal(t, 1000.0, got.Subtotal)
	require.NotNil(t, got.CouponCode)
	assert.Equal(t, "SAVE10", *got.CouponCode)
	assert.Equal(t, 100.0, got.CouponDiscount)
	assert.Equal(t, 900.0, got.GrandTotal)
}

func TestRecalcClearsUnderThresholdCoupon(t *testing.T) {
	db := setupDB(t)

	seedProduct(t, db, "cookie", "Cookie", nil, floatPtr(40))
	require.NoError(t, db.Create(&models.Coupon{
		ID: uuid.NewString(), Code: "FLAT50", Type: models.CouponTypeFixed,
		Value: 50, MinCartAmount: 500, IsActive: true,
	}).Error)

	cart := newActiveCart(t, db, nil)
	seedCartItem(t, db, cart.ID, "cookie", "Cookie", 2, 40)
	require.NoError(t, db.Model(&models.Cart{}).Where("id = ?", cart.ID).
		Update("coupon_code", "FLAT50").Error)

	got, err := recalcTotals(db, cart.ID)
	require.NoError(t, err)
	assert.Nil(t, got.CouponCode)
	assert.Equal(t, 0.0, got.CouponDiscount)
	assert.Equal(t, 80.0, got.GrandTotal)
}

func TestRecalcAutoGiftGrantAndRevoke(t *testing.T) {
	db := setupDB(t)

	seedProduct(t, db, "cake", "Chocolate Cake", nil, floatPtr(600))
	seedProduct(t, db, "brownie", "Brownie", nil, floatPtr(60))
	qty := 1
	require.NoError(t, db.Create(&models.Coupon{
		ID: uuid.NewString(), Code: "GIFT1000", Type: models.CouponTypeFixed,
		Value: 0, IsActive: true, IsAuto: true, AutoThreshold: 1000,
		FreeGiftProductID: strPtr("brownie"), FreeGiftQty: &qty,
	}).Error)

	cart := newActiveCart(t, db, nil)
	line := seedCartItem(t, db, cart.ID, "cake", "Chocolate Cake", 2, 600)

	got, err := recalcTotals(db, cart.ID)
	require.NoError(t, err)
	assert.True(t, got.FreeGiftApplied)
	require.NotNil(t, got.AutoCouponCode)
	assert.Equal(t, "GIFT1000", *got.AutoCouponCode)
	assert.Equal(t, 1200.0, got.Subtotal)

	var gifts []models.CartItem
	require.NoError(t, db.Where("cart_id = ? AND is_gift = ?", cart.ID, true).Find(&gifts).Error)
	require.Len(t, gifts, 1)
	assert.Equal(t, "brownie", gifts[0].ProductID)
	assert.Equal(t, 0.0, gifts[0].LineTotal)

	// drop under the threshold: the gift must go away
	require.NoError(t, db.Model(&models.CartItem{}).Where("id = ?", line.ID).Updates(map[string]interface{}{
		"quantity":   1,
		"line_total": 600.0,
	}).Error)

	got, err = recalcTotals(db, cart.ID)
	require.NoError(t, err)
	assert.False(t, got.FreeGiftApplied)
	assert.Nil(t, got.AutoCouponCode)

	var count int64
	require.NoError(t, db.Model(&models.CartItem{}).Where("cart_id = ? AND is_gift = ?", cart.ID, true).Count(&count).Error)
	assert.Zero(t, count)
}

func TestRecalcManualAndAutoDiscountsSum(t *testing.T) {
	db := setupDB(t)

	seedProduct(t, db, "cake", "Chocolate Cake", nil, floatPtr(600))
	require.NoError(t, db.Create(&models.Coupon{
		ID: uuid.NewString(), Code: "SAVE10", Type: models.CouponTypePercent,
		Value: 10, IsActive: true,
	}).Error)
	require.NoError(t, db.Create(&models.Coupon{
		ID: uuid.NewString(), Code: "AUTO100", Type: models.CouponTypeFixed,
		Value: 100, IsActive: true, IsAuto: true, AutoThreshold: 1000,
	}).Error)

	cart := newActiveCart(t, db, nil)
	seedCartItem(t, db, cart.ID, "cake", "Chocolate Cake", 2, 600)
	require.NoError(t, db.Model(&models.Cart{}).Where("id = ?", cart.ID).
		Update("coupon_code", "SAVE10").Error)

	got, err := recalcTotals(db, cart.ID)
	require.NoError(t, err)
	assert.Equal(t, 1200.0, got.Subtotal)
	assert.Equal(t, 120.0, got.CouponDiscount)
	assert.Equal(t, 100.0, got.AutoDiscount)
	assert.Equal(t, 220.0, got.DiscountTotal)
	assert.Equal(t, 980.0, got.GrandTotal)
}

func TestRecalcManualCodeExcludedFromAutoPool(t *testing.T) {
	db := setupDB(t)

	seedProduct(t, db, "cake", "Chocolate Cake", nil, floatPtr(600))
	// DOUBLE is both manually applied and an auto candidate; it must not
	// be counted twice.
	require.NoError(t, db.Create(&models.Coupon{
		ID: uuid.NewString(), Code: "DOUBLE", Type: models.CouponTypeFixed,
		Value: 100, IsActive: true, IsAuto: true, AutoThreshold: 500,
	}).Error)

	cart := newActiveCart(t, db, nil)
	seedCartItem(t, db, cart.ID, "cake", "Chocolate Cake", 2, 600)
	require.NoError(t, db.Model(&models.Cart{}).Where("id = ?", cart.ID).
		Update("coupon_code", "DOUBLE").Error)

	got, err := recalcTotals(db, cart.ID)
	require.NoError(t, err)
	assert.Equal(t, 100.0, got.CouponDiscount)
	assert.Nil(t, got.AutoCouponCode)
	assert.Equal(t, 0.0, got.AutoDiscount)
	assert.Equal(t, 100.0, got.DiscountTotal)
}

func TestRecalcSecondPassWritesNothing(t *testing.T) {
	db := setupDB(t)

	seedProduct(t, db, "cake", "Chocolate Cake", nil, floatPtr(600))
	cart := newActiveCart(t, db, nil)
	seedCartItem(t, db, cart.ID, "cake", "Chocolate Cake", 2, 600)

	first, err := recalcTotals(db, cart.ID)
	require.NoError(t, err)

	second, err := recalcTotals(db, cart.ID)
	require.NoError(t, err)

	// no derived field changed, so the second pass must not touch the row
	assert.Equal(t, first.UpdatedAt, second.UpdatedAt)
	assert.Equal(t, first.Subtotal, second.Subtotal)
	assert.Equal(t, first.GrandTotal, second.GrandTotal)
}

func TestRecalcEmptyCartZeroesEverything(t *testing.T) {
	db := setupDB(t)

	cart := newActiveCart(t, db, nil)
	require.NoError(t, db.Model(&models.Cart{}).Where("id = ?", cart.ID).Updates(map[string]interface{}{
		"subtotal":    500.0,
		"grand_total": 450.0,
		"coupon_code": "SAVE10",
	}).Error)

	got, err := recalcTotals(db, cart.ID)
	require.NoError(t, err)
	assert.Equal(t, 0.0, got.Subtotal)
	assert.Equal(t, 0.0, got.GrandTotal)
	assert.Nil(t, got.CouponCode)
	assert.Nil(t, got.AutoCouponCode)
}
