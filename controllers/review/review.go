package reviewControllers

import (
	"errors"
	"net/http"

	"github.com/alka-bakery/bakery-api/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReviewInput struct {
	ProductID   string   `json:"product_id" binding:"required"`
	DisplayName string   `json:"display_name"`
	Rating      float64  `json:"rating" binding:"min=0,max=5"`
	Title       string   `json:"title"`
	Body        string   `json:"body"`
	Images      []string `json:"images"`
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

// POST /api/reviews
//
// New reviews start as pending and only show up publicly after admin
// approval. A logged-in author with a delivered order for the product
// gets the verified-purchase badge.
func CreateReview(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input ReviewInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		var product models.Product
		err := db.First(&product, "id = ?", input.ProductID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch product"})
			return
		}

		userID := userIDFrom(c)
		verified := false
		if userID != nil {
			var count int64
			err := db.Model(&models.OrderItem{}).
				Joins("JOIN orders ON orders.id = order_items.order_id").
				Where("orders.user_id = ? AND orders.status = ? AND order_items.product_id = ?",
					*userID, models.OrderStatusDelivered, input.ProductID).
				Count(&count).Error
			if err == nil && count > 0 {
				verified = true
			}
		}

		review := models.Review{
			ID:                 uuid.NewString(),
			ProductID:          input.ProductID,
			UserID:             userID,
			DisplayName:        input.DisplayName,
			Rating:             input.Rating,
			Title:              input.Title,
			Body:               input.Body,
			IsVerifiedPurchase: verified,
			Status:             models.ReviewStatusPending,
		}
		for i, url := range input.Images {
			review.Images = append(review.Images, models.ReviewImage{URL: url, Position: i})
		}

		if err := db.Create(&review).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create review"})
			return
		}
		c.JSON(http.StatusCreated, review)
	}
}

// GET /api/products/:id/reviews
func GetProductReviews(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var reviews []models.Review
		err := db.Where("product_id = ? AND status = ?", c.Param("id"), models.ReviewStatusApproved).
			Preload("Images", func(tx *gorm.DB) *gorm.DB {
				return tx.Order("position asc")
			}).
			Order("created_at desc").
			Find(&reviews).Error
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch reviews"})
			return
		}

		var average float64
		for _, r := range reviews {
			average += r.Rating
		}
		if len(reviews) > 0 {
			average /= float64(len(reviews))
		}

		c.JSON(http.StatusOK, gin.H{
			"reviews":        reviews,
			"count":          len(reviews),
			"average_rating": average,
		})
	}
}

// GET /api/admin/reviews
func GetAllReviews(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := db.Preload("Images").Order("created_at desc")
		if status := c.Query("status"); status != "" {
			query = query.Where("status = ?", status)
		}

		var reviews []models.Review
		if err := query.Find(&reviews).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch reviews"})
			return
		}
		c.JSON(http.StatusOK, reviews)
	}
}

func setReviewStatus(db *gorm.DB, c *gin.Context, status models.ReviewStatus) {
	result := db.Model(&models.Review{}).Where("id = ?", c.Param("id")).
		Update("status", status)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update review"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Review not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Review " + string(status)})
}

// PATCH /api/admin/reviews/:id/approve
func ApproveReview(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		setReviewStatus(db, c, models.ReviewStatusApproved)
	}
}

// PATCH /api/admin/reviews/:id/reject
func RejectReview(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		setReviewStatus(db, c, models.ReviewStatusRejected)
	}
}

// DELETE /api/admin/reviews/:id
func DeleteReview(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		result := db.Delete(&models.Review{}, "id = ?", c.Param("id"))
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete review"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Review not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Review deleted successfully"})
	}
}
