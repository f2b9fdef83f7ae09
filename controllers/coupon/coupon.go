package couponControllers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/alka-bakery/bakery-api/cache"
	cartControllers "github.com/alka-bakery/bakery-api/controllers/cart"
	"github.com/alka-bakery/bakery-api/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CouponInput struct {
	Code          string     `json:"code" binding:"required"`
	Name          string     `json:"name"`
	Description   string     `json:"description"`
	Type          string     `json:"type" binding:"required,oneof=percent fixed"`
	Value         float64    `json:"value" binding:"required"`
	MinCartAmount float64    `json:"min_cart_amount"`
	IsActive      *bool      `json:"is_active"`
	MaxUses       *int       `json:"max_uses"`
	PerUserLimit  *int       `json:"per_user_limit"`
	ValidFrom     *time.Time `json:"valid_from"`
	ValidTo       *time.Time `json:"valid_to"`

	IsAuto            bool    `json:"is_auto"`
	AutoThreshold     float64 `json:"auto_threshold"`
	FreeGiftProductID *string `json:"free_gift_product_id"`
	FreeGiftQty       *int    `json:"free_gift_qty"`
}

// GET /api/admin/coupons
func GetAllCoupons(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var coupons []models.Coupon
		if err := db.Order("created_at desc").Find(&coupons).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch coupons"})
			return
		}
		c.JSON(http.StatusOK, coupons)
	}
}

// POST /api/admin/coupons
//
// Codes are stored upper-case so lookups stay case-insensitive.
func CreateCoupon(db *gorm.DB, rdb *cache.RedisClient) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input CouponInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		code := strings.ToUpper(strings.TrimSpace(input.Code))
		var count int64
		if err := db.Model(&models.Coupon{}).Where("LOWER(code) = LOWER(?)", code).Count(&count).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check coupon code"})
			return
		}
		if count > 0 {
			c.JSON(http.StatusConflict, gin.H{"error": "Coupon code already exists"})
			return
		}

		coupon := models.Coupon{
			ID:                uuid.NewString(),
			Code:              code,
			Name:              input.Name,
			Description:       input.Description,
			Type:              models.CouponType(input.Type),
			Value:             input.Value,
			MinCartAmount:     input.MinCartAmount,
			IsActive:          true,
			MaxUses:           input.MaxUses,
			PerUserLimit:      input.PerUserLimit,
			ValidFrom:         input.ValidFrom,
			ValidTo:           input.ValidTo,
			IsAuto:            input.IsAuto,
			AutoThreshold:     input.AutoThreshold,
			FreeGiftProductID: input.FreeGiftProductID,
			FreeGiftQty:       input.FreeGiftQty,
		}
		if input.IsActive != nil {
			coupon.IsActive = *input.IsActive
		}

		if err := db.Create(&coupon).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create coupon"})
			return
		}

		rdb.Invalidate(c.Request.Context(), cartControllers.CouponsCacheKey())
		c.JSON(http.StatusCreated, coupon)
	}
}

// PUT /api/admin/coupons/:id
func UpdateCoupon(db *gorm.DB, rdb *cache.RedisClient) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input CouponInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		var coupon models.Coupon
		err := db.First(&coupon, "id = ?", c.Param("id")).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Coupon not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch coupon"})
			return
		}

		code := strings.ToUpper(strings.TrimSpace(input.Code))
		if !strings.EqualFold(code, coupon.Code) {
			var count int64
			if err := db.Model(&models.Coupon{}).
				Where("LOWER(code) = LOWER(?) AND id <> ?", code, coupon.ID).
				Count(&count).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check coupon code"})
				return
			}
			if count > 0 {
				c.JSON(http.StatusConflict, gin.H{"error": "Coupon code already exists"})
				return
			}
		}

		coupon.Code = code
		coupon.Name = input.Name
		coupon.Description = input.Description
		coupon.Type = models.CouponType(input.Type)
		coupon.Value = input.Value
		coupon.MinCartAmount = input.MinCartAmount
		coupon.MaxUses = input.MaxUses
		coupon.PerUserLimit = input.PerUserLimit
		coupon.ValidFrom = input.ValidFrom
		coupon.ValidTo = input.ValidTo
		coupon.IsAuto = input.IsAuto
		coupon.AutoThreshold = input.AutoThreshold
		coupon.FreeGiftProductID = input.FreeGiftProductID
		coupon.FreeGiftQty = input.FreeGiftQty
		if input.IsActive != nil {
			coupon.IsActive = *input.IsActive
		}

		if err := db.Save(&coupon).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update coupon"})
			return
		}

		rdb.Invalidate(c.Request.Context(), cartControllers.CouponsCacheKey())
		c.JSON(http.StatusOK, coupon)
	}
}

// DELETE /api/admin/coupons/:id
func DeleteCoupon(db *gorm.DB, rdb *cache.RedisClient) gin.HandlerFunc {
	return func(c *gin.Context) {
		result := db.Delete(&models.Coupon{}, "id = ?", c.Param("id"))
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete coupon"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Coupon not found"})
			return
		}

		rdb.Invalidate(c.Request.Context(), cartControllers.CouponsCacheKey())
		c.JSON(http.StatusOK, gin.H{"message": "Coupon deleted successfully"})
	}
}
