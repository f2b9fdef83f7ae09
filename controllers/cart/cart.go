package cartControllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/alka-bakery/bakery-api/cache"
	"github.com/alka-bakery/bakery-api/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const couponsCacheKey = "coupons:public"

type AddItemInput struct {
	ProductID    string   `json:"product_id" binding:"required"`
	Unit         string   `json:"unit" binding:"required,oneof=pc gm variant"`
	Quantity     int      `json:"quantity"`
	Grams        *float64 `json:"grams"`
	VariantLabel string   `json:"variant_label"`
}

type UpdateItemInput struct {
	Quantity int `json:"quantity" binding:"required,min=1"`
}

type ApplyCouponInput struct {
	Code string `json:"code" binding:"required"`
}

type MergeOrderInput struct {
	OrderID string `json:"order_id" binding:"required"`
}

// cartTokenFrom reads the opaque guest cart id from the x-cart-id
// header or the cart_id cookie.
func cartTokenFrom(c *gin.Context) string {
	if id := c.GetHeader("x-cart-id"); id != "" {
		return id
	}
	id, _ := c.Cookie("cart_id")
	return id
}

func userIDFrom(c *gin.Context) *string {
	val, exists := c.Get("user_id")
	if !exists {
		return nil
	}
	id, ok := val.(string)
	if !ok || id == "" {
		return nil
	}
	return &id
}

// respondCart echoes the resolved cart id so guest clients can persist
// it, then returns the canonical view.
func respondCart(c *gin.Context, cart *models.Cart) {
	c.Header("x-cart-id", cart.ID)
	c.JSON(http.StatusOK, cartView(cart))
}

// GET /api/cart
func GetCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		cart, err := resolveCart(db, cartTokenFrom(c), userIDFrom(c))
		if err != nil {
			respondError(c, err)
			return
		}
		full, err := recalcTotals(db, cart.ID)
		if err != nil {
			respondError(c, err)
			return
		}
		respondCart(c, full)
	}
}

// POST /api/cart/items
func AddItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input AddItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		qty := input.Quantity
		if qty < 1 {
			qty = 1
		}

		cart, err := resolveCart(db, cartTokenFrom(c), userIDFrom(c))
		if err != nil {
			respondError(c, err)
			return
		}

		var product models.Product
		if err := db.Preload("UnitOptions").First(&product, "id = ?", input.ProductID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				respondError(c, ErrProductNotFound)
			} else {
				respondError(c, err)
			}
			return
		}

		pricing, err := priceSelection(&product, input.Unit, input.Grams, input.VariantLabel)
		if err != nil {
			respondError(c, err)
			return
		}

		// Merge into an identical paid line when one exists; gift lines
		// are never merged into.
		var existing models.CartItem
		err = db.Where(
			"cart_id = ? AND product_id = ? AND unit = ? AND grams IS NOT DISTINCT FROM ? AND variant_label IS NOT DISTINCT FROM ? AND is_gift = ?",
			cart.ID, product.ID, input.Unit, pricing.Grams, pricing.VariantLabel, false,
		).First(&existing).Error

		switch {
		case err == nil:
			newQty := existing.Quantity + qty
			err = db.Model(&models.CartItem{}).Where("id = ?", existing.ID).Updates(map[string]interface{}{
				"quantity":   newQty,
				"line_total": pricing.UnitPrice * float64(newQty),
			}).Error
		case errors.Is(err, gorm.ErrRecordNotFound):
			item := models.CartItem{
				ID:           uuid.NewString(),
				CartID:       cart.ID,
				ProductID:    product.ID,
				ProductName:  product.Name,
				Unit:         input.Unit,
				Quantity:     qty,
				Grams:        pricing.Grams,
				VariantLabel: pricing.VariantLabel,
				UnitPrice:    pricing.UnitPrice,
				LineTotal:    pricing.UnitPrice * float64(qty),
			}
			err = db.Create(&item).Error
		}
		if err != nil {
			respondError(c, err)
			return
		}

		full, err := recalcTotals(db, cart.ID)
		if err != nil {
			respondError(c, err)
			return
		}
		respondCart(c, full)
	}
}

// PATCH /api/cart/items/:item_id
func UpdateItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input UpdateItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		cart, err := resolveCart(db, cartTokenFrom(c), userIDFrom(c))
		if err != nil {
			respondError(c, err)
			return
		}

		var item models.CartItem
		err = db.Where("id = ? AND cart_id = ?", c.Param("item_id"), cart.ID).First(&item).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, ErrItemNotFound)
			return
		}
		if err != nil {
			respondError(c, err)
			return
		}
		if item.IsGift {
			respondError(c, ErrGiftLine)
			return
		}

		err = db.Model(&models.CartItem{}).Where("id = ?", item.ID).Updates(map[string]interface{}{
			"quantity":   input.Quantity,
			"line_total": item.UnitPrice * float64(input.Quantity),
		}).Error
		if err != nil {
			respondError(c, err)
			return
		}

		full, err := recalcTotals(db, cart.ID)
		if err != nil {
			respondError(c, err)
			return
		}
		respondCart(c, full)
	}
}

// DELETE /api/cart/items/:item_id
//
// Gift lines may be removed here too, but the recalculation will grant
// them again while their coupon still wins.
func RemoveItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		cart, err := resolveCart(db, cartTokenFrom(c), userIDFrom(c))
		if err != nil {
			respondError(c, err)
			return
		}

		result := db.Where("id = ? AND cart_id = ?", c.Param("item_id"), cart.ID).Delete(&models.CartItem{})
		if result.Error != nil {
			respondError(c, result.Error)
			return
		}
		if result.RowsAffected == 0 {
			respondError(c, ErrItemNotFound)
			return
		}

		full, err := recalcTotals(db, cart.ID)
		if err != nil {
			respondError(c, err)
			return
		}
		respondCart(c, full)
	}
}

// POST /api/cart/apply-coupon
//
// The code is only stored here; the recalculation validates it. If the
// code did not survive the pass it was invalid.
func ApplyCoupon(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input ApplyCouponInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		cart, err := resolveCart(db, cartTokenFrom(c), userIDFrom(c))
		if err != nil {
			respondError(c, err)
			return
		}

		code := strings.ToUpper(strings.TrimSpace(input.Code))
		if err := db.Model(&models.Cart{}).Where("id = ?", cart.ID).
			Update("coupon_code", code).Error; err != nil {
			respondError(c, err)
			return
		}

		full, err := recalcTotals(db, cart.ID)
		if err != nil {
			respondError(c, err)
			return
		}
		if full.CouponCode == nil {
			respondError(c, ErrInvalidCoupon)
			return
		}
		respondCart(c, full)
	}
}

// DELETE /api/cart/coupon
func RemoveCoupon(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		cart, err := resolveCart(db, cartTokenFrom(c), userIDFrom(c))
		if err != nil {
			respondError(c, err)
			return
		}

		err = db.Model(&models.Cart{}).Where("id = ?", cart.ID).Updates(map[string]interface{}{
			"coupon_code":     nil,
			"coupon_discount": 0,
		}).Error
		if err != nil {
			respondError(c, err)
			return
		}

		full, err := recalcTotals(db, cart.ID)
		if err != nil {
			respondError(c, err)
			return
		}
		respondCart(c, full)
	}
}

type CouponOffer struct {
	Code          string  `json:"code"`
	Description   string  `json:"description"`
	Type          string  `json:"type"`
	Value         float64 `json:"value"`
	MinCartAmount float64 `json:"min_cart_amount"`
	AutoThreshold float64 `json:"auto_threshold"`
}

// GET /api/cart/coupons
//
// Public list of automatic offers, served from the optional cache.
func GetAvailableCoupons(db *gorm.DB, rdb *cache.RedisClient) gin.HandlerFunc {
	return func(c *gin.Context) {
		if payload, err := rdb.GetJSON(c.Request.Context(), couponsCacheKey); err == nil {
			c.Data(http.StatusOK, "application/json", payload)
			return
		}

		var coupons []models.Coupon
		err := db.Where("is_active = ? AND is_auto = ?", true, true).
			Order("min_cart_amount asc").
			Find(&coupons).Error
		if err != nil {
			respondError(c, err)
			return
		}

		offers := make([]CouponOffer, 0, len(coupons))
		for _, cp := range coupons {
			offers = append(offers, CouponOffer{
				Code:          cp.Code,
				Description:   cp.Description,
				Type:          string(cp.Type),
				Value:         cp.Value,
				MinCartAmount: cp.MinCartAmount,
				AutoThreshold: cp.AutoThreshold,
			})
		}

		if payload, err := json.Marshal(offers); err == nil {
			rdb.SetJSON(c.Request.Context(), couponsCacheKey, payload, time.Minute)
		}
		c.JSON(http.StatusOK, offers)
	}
}

// CouponsCacheKey is invalidated by the admin coupon controller after
// any write.
func CouponsCacheKey() string { return couponsCacheKey }

// POST /api/cart/merge-order
//
// Reorder: fold a past order's paid items back into the active cart,
// summing quantities for matching lines.
func MergeOrderToCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input MergeOrderInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		userID := userIDFrom(c)
		if userID == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var order models.Order
		err := db.Preload("Items").Where("id = ? AND user_id = ?", input.OrderID, *userID).First(&order).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, ErrOrderNotFound)
			return
		}
		if err != nil {
			respondError(c, err)
			return
		}

		cart, err := resolveCart(db, cartTokenFrom(c), userID)
		if err != nil {
			respondError(c, err)
			return
		}

		for _, oi := range order.Items {
			if oi.IsGift {
				continue
			}
			var existing models.CartItem
			err := db.Where(
				"cart_id = ? AND product_id = ? AND unit = ? AND variant_label IS NOT DISTINCT FROM ? AND is_gift = ?",
				cart.ID, oi.ProductID, oi.Unit, oi.VariantLabel, false,
			).First(&existing).Error

			switch {
			case err == nil:
				newQty := existing.Quantity + oi.Quantity
				if err := db.Model(&models.CartItem{}).Where("id = ?", existing.ID).Updates(map[string]interface{}{
					"quantity":   newQty,
					"line_total": existing.UnitPrice * float64(newQty),
				}).Error; err != nil {
					respondError(c, err)
					return
				}
			case errors.Is(err, gorm.ErrRecordNotFound):
				item := models.CartItem{
					ID:           uuid.NewString(),
					CartID:       cart.ID,
					ProductID:    oi.ProductID,
					ProductName:  oi.ProductName,
					Unit:         oi.Unit,
					Quantity:     oi.Quantity,
					Grams:        oi.Grams,
					VariantLabel: oi.VariantLabel,
					UnitPrice:    oi.UnitPrice,
					LineTotal:    oi.UnitPrice * float64(oi.Quantity),
				}
				if err := db.Create(&item).Error; err != nil {
					respondError(c, err)
					return
				}
			default:
				respondError(c, err)
				return
			}
		}

		full, err := recalcTotals(db, cart.ID)
		if err != nil {
			respondError(c, err)
			return
		}
		respondCart(c, full)
	}
}
