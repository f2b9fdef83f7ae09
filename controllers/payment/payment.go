package paymentControllers

import (
	"errors"
	"net/http"

	"github.com/alka-bakery/bakery-api/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func userIDFrom(c *gin.Context) (string, bool) {
	val, exists := c.Get("user_id")
	if !exists {
		return "", false
	}
	id, ok := val.(string)
	return id, ok && id != ""
}

// POST /api/payments/:order_id/initiate
//
// Starts an online payment for a pending order. The provider reference
// is stored on the order so verification can find it later.
func InitiatePayment(db *gorm.DB, gw Gateway) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := userIDFrom(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var order models.Order
		err := db.Where("id = ? AND user_id = ?", c.Param("order_id"), userID).First(&order).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch order"})
			return
		}

		if order.PaymentStatus == models.PaymentStatusPaid {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Order is already paid"})
			return
		}
		if order.Status == models.OrderStatusCancelled {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Order is cancelled"})
			return
		}

		redirectURL, ref, err := gw.CreatePayment(c.Request.Context(), order.ID, order.GrandTotal)
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}

		err = db.Model(&models.Order{}).Where("id = ?", order.ID).Updates(map[string]interface{}{
			"payment_ref":    ref,
			"payment_method": "PHONEPE",
		}).Error
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store payment reference"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"payment_url": redirectURL,
			"payment_ref": ref,
		})
	}
}

// GET /api/payments/:order_id/verify
//
// Polls the provider and flips the order to paid when the payment has
// completed. Safe to call repeatedly.
func VerifyPayment(db *gorm.DB, gw Gateway) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := userIDFrom(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var order models.Order
		err := db.Where("id = ? AND user_id = ?", c.Param("order_id"), userID).First(&order).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch order"})
			return
		}

		if order.PaymentStatus == models.PaymentStatusPaid {
			c.JSON(http.StatusOK, gin.H{"payment_status": order.PaymentStatus})
			return
		}
		if order.PaymentRef == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "No payment in progress for this order"})
			return
		}

		paid, err := gw.Status(c.Request.Context(), *order.PaymentRef)
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}

		if paid {
			err := db.Model(&models.Order{}).Where("id = ?", order.ID).Updates(map[string]interface{}{
				"payment_status": models.PaymentStatusPaid,
				"status":         models.OrderStatusProcessing,
			}).Error
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update payment status"})
				return
			}
			order.PaymentStatus = models.PaymentStatusPaid
		}

		c.JSON(http.StatusOK, gin.H{"payment_status": order.PaymentStatus})
	}
}
