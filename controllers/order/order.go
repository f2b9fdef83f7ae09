package orderControllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/alka-bakery/bakery-api/config"
	cartControllers "github.com/alka-bakery/bakery-api/controllers/cart"
	"github.com/alka-bakery/bakery-api/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PlaceOrderInput struct {
	AddressID     string `json:"address_id" binding:"required"`
	PaymentMethod string `json:"payment_method"`
}

type UpdateOrderStatusInput struct {
	Status string `json:"status" binding:"required"`
}

type UpdatePaymentStatusInput struct {
	PaymentStatus string  `json:"payment_status" binding:"required"`
	PaymentRef    *string `json:"payment_ref"`
}

func mapOrderStatus(status string) (models.OrderStatus, error) {
	switch strings.ToLower(status) {
	case string(models.OrderStatusPending):
		return models.OrderStatusPending, nil
	case string(models.OrderStatusProcessing):
		return models.OrderStatusProcessing, nil
	case string(models.OrderStatusShipped):
		return models.OrderStatusShipped, nil
	case string(models.OrderStatusDelivered):
		return models.OrderStatusDelivered, nil
	case string(models.OrderStatusCancelled):
		return models.OrderStatusCancelled, nil
	default:
		return "", errors.New("invalid order status")
	}
}

func mapPaymentStatus(status string) (models.PaymentStatus, error) {
	switch strings.ToLower(status) {
	case string(models.PaymentStatusPending):
		return models.PaymentStatusPending, nil
	case string(models.PaymentStatusPaid):
		return models.PaymentStatusPaid, nil
	case string(models.PaymentStatusRefunded):
		return models.PaymentStatusRefunded, nil
	default:
		return "", errors.New("invalid payment status")
	}
}

func userIDFrom(c *gin.Context) (string, bool) {
	val, exists := c.Get("user_id")
	if !exists {
		return "", false
	}
	id, ok := val.(string)
	return id, ok && id != ""
}

// POST /api/orders
//
// Checkout snapshots the recalculated cart and the chosen address into
// an immutable order, then empties the cart. Gift lines are carried
// over at price zero.
func PlaceOrder(db *gorm.DB, cfg *config.Config, hub *Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input PlaceOrderInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		userID, ok := userIDFrom(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var address models.Address
		err := db.Where("id = ? AND user_id = ?", input.AddressID, userID).First(&address).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Address not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch address"})
			return
		}

		var cart models.Cart
		err = db.Where("user_id = ? AND status = ?", userID, models.CartStatusActive).
			Order("updated_at desc").
			First(&cart).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Cart is empty"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
			return
		}

		// totals must be current before they are frozen into the order
		full, err := cartControllers.Recalculate(db, cart.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to recalculate cart"})
			return
		}
		if len(full.Items) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Cart is empty"})
			return
		}

		paymentMethod := strings.ToUpper(strings.TrimSpace(input.PaymentMethod))
		if paymentMethod == "" {
			paymentMethod = "COD"
		}

		var couponCode *string
		if full.CouponCode != nil {
			couponCode = full.CouponCode
		} else if full.AutoCouponCode != nil {
			couponCode = full.AutoCouponCode
		}

		order := models.Order{
			ID:             uuid.NewString(),
			UserID:         userID,
			RecipientName:  address.RecipientName,
			RecipientPhone: address.RecipientPhone,
			HouseNo:        address.HouseNo,
			StreetAddress:  address.StreetAddress,
			Landmark:       address.Landmark,
			City:           address.City,
			State:          address.State,
			Pincode:        address.Pincode,
			Subtotal:       full.Subtotal,
			DiscountAmount: full.DiscountTotal,
			CouponCode:     couponCode,
			DeliveryFee:    cfg.DeliveryFee,
			GrandTotal:     full.GrandTotal + cfg.DeliveryFee,
			Status:         models.OrderStatusPending,
			PaymentMethod:  paymentMethod,
			PaymentStatus:  models.PaymentStatusPending,
		}
		for _, item := range full.Items {
			order.Items = append(order.Items, models.OrderItem{
				ProductID:    item.ProductID,
				ProductName:  item.ProductName,
				Unit:         item.Unit,
				Quantity:     item.Quantity,
				Grams:        item.Grams,
				VariantLabel: item.VariantLabel,
				UnitPrice:    item.UnitPrice,
				LineTotal:    item.LineTotal,
				IsGift:       item.IsGift,
			})
		}

		err = db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&order).Error; err != nil {
				return err
			}
			return tx.Where("cart_id = ?", full.ID).Delete(&models.CartItem{}).Error
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to place order"})
			return
		}

		// zero out the now-empty cart's derived fields
		if _, err := cartControllers.Recalculate(db, full.ID); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to recalculate cart"})
			return
		}

		hub.broadcast("order.created", order)
		c.JSON(http.StatusCreated, order)
	}
}

// GET /api/orders
func GetUserOrders(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := userIDFrom(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var orders []models.Order
		err := db.Where("user_id = ?", userID).
			Preload("Items").
			Order("created_at desc").
			Find(&orders).Error
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

// GET /api/orders/:id
func GetOrder(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := userIDFrom(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var order models.Order
		err := db.Preload("Items").
			Where("id = ? AND user_id = ?", c.Param("id"), userID).
			First(&order).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch order"})
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

// POST /api/orders/:id/cancel
//
// Orders already shipped cannot be cancelled.
func CancelOrder(db *gorm.DB, hub *Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := userIDFrom(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var order models.Order
		err := db.Where("id = ? AND user_id = ?", c.Param("id"), userID).First(&order).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch order"})
			return
		}

		if order.Status != models.OrderStatusPending && order.Status != models.OrderStatusProcessing {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Order can no longer be cancelled"})
			return
		}

		if err := db.Model(&models.Order{}).Where("id = ?", order.ID).
			Update("status", models.OrderStatusCancelled).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to cancel order"})
			return
		}

		order.Status = models.OrderStatusCancelled
		hub.broadcast("order.cancelled", order)
		c.JSON(http.StatusOK, gin.H{"message": "Order cancelled successfully"})
	}
}

// GET /api/track/:code
//
// Public tracking by the short id shown on the receipt (any unambiguous
// prefix of the order id).
func TrackOrder(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		code := strings.ToLower(strings.TrimSpace(c.Param("code")))
		if len(code) < 6 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Tracking code too short"})
			return
		}

		var orders []models.Order
		err := db.Where("id::text LIKE ?", code+"%").Limit(2).Find(&orders).Error
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to look up order"})
			return
		}
		if len(orders) != 1 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}

		order := orders[0]
		c.JSON(http.StatusOK, gin.H{
			"id":             order.ID,
			"status":         order.Status,
			"payment_status": order.PaymentStatus,
			"grand_total":    order.GrandTotal,
			"created_at":     order.CreatedAt,
			"updated_at":     order.UpdatedAt,
		})
	}
}

// GET /api/admin/orders
func GetAllOrders(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := db.Preload("Items").Order("created_at desc")
		if status := c.Query("status"); status != "" {
			mapped, err := mapOrderStatus(status)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			query = query.Where("status = ?", mapped)
		}

		var orders []models.Order
		if err := query.Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

// PATCH /api/admin/orders/:id/status
func UpdateOrderStatus(db *gorm.DB, hub *Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input UpdateOrderStatusInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		newStatus, err := mapOrderStatus(input.Status)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		var order models.Order
		err = db.First(&order, "id = ?", c.Param("id")).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch order"})
			return
		}

		if err := db.Model(&models.Order{}).Where("id = ?", order.ID).
			Update("status", newStatus).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order status"})
			return
		}

		order.Status = newStatus
		hub.broadcast("order.updated", order)
		c.JSON(http.StatusOK, gin.H{"message": "Order status updated successfully"})
	}
}

// PATCH /api/admin/orders/:id/payment
func UpdatePaymentStatus(db *gorm.DB, hub *Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input UpdatePaymentStatusInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		newStatus, err := mapPaymentStatus(input.PaymentStatus)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		updates := map[string]interface{}{"payment_status": newStatus}
		if input.PaymentRef != nil {
			updates["payment_ref"] = *input.PaymentRef
		}

		result := db.Model(&models.Order{}).Where("id = ?", c.Param("id")).Updates(updates)
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update payment status"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Payment status updated successfully"})
	}
}
