package addressControllers

import (
	"errors"
	"net/http"

	"github.com/alka-bakery/bakery-api/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AddressInput struct {
	RecipientName   string `json:"recipient_name" binding:"required"`
	RecipientPhone  string `json:"recipient_phone" binding:"required"`
	HouseNo         string `json:"house_no"`
	FloorNo         string `json:"floor_no"`
	SocietyBuilding string `json:"society_building"`
	StreetAddress   string `json:"street_address" binding:"required"`
	Landmark        string `json:"landmark"`
	Pincode         string `json:"pincode" binding:"required"`
	City            string `json:"city" binding:"required"`
	State           string `json:"state" binding:"required"`
	Type            string `json:"type"`
	IsDefault       bool   `json:"is_default"`
}

func userIDFrom(c *gin.Context) (string, bool) {
	val, exists := c.Get("user_id")
	if !exists {
		return "", false
	}
	id, ok := val.(string)
	return id, ok && id != ""
}

// GET /api/addresses
func GetAddresses(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := userIDFrom(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var addresses []models.Address
		err := db.Where("user_id = ?", userID).
			Order("is_default desc, created_at desc").
			Find(&addresses).Error
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch addresses"})
			return
		}
		c.JSON(http.StatusOK, addresses)
	}
}

// POST /api/addresses
//
// A user's first address becomes the default automatically; marking a
// later one default clears the previous default.
func CreateAddress(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input AddressInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		userID, ok := userIDFrom(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var count int64
		if err := db.Model(&models.Address{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch addresses"})
			return
		}

		address := models.Address{
			ID:              uuid.NewString(),
			UserID:          userID,
			RecipientName:   input.RecipientName,
			RecipientPhone:  input.RecipientPhone,
			HouseNo:         input.HouseNo,
			FloorNo:         input.FloorNo,
			SocietyBuilding: input.SocietyBuilding,
			StreetAddress:   input.StreetAddress,
			Landmark:        input.Landmark,
			Pincode:         input.Pincode,
			City:            input.City,
			State:           input.State,
			Type:            input.Type,
			IsDefault:       input.IsDefault || count == 0,
		}
		if address.Type == "" {
			address.Type = "Home"
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			if address.IsDefault {
				if err := tx.Model(&models.Address{}).
					Where("user_id = ?", userID).
					Update("is_default", false).Error; err != nil {
					return err
				}
			}
			return tx.Create(&address).Error
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create address"})
			return
		}
		c.JSON(http.StatusCreated, address)
	}
}

// PUT /api/addresses/:id
func UpdateAddress(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input AddressInput
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
		err := db.Where("id = ? AND user_id = ?", c.Param("id"), userID).First(&address).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Address not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch address"})
			return
		}

		address.RecipientName = input.RecipientName
		address.RecipientPhone = input.RecipientPhone
		address.HouseNo = input.HouseNo
		address.FloorNo = input.FloorNo
		address.SocietyBuilding = input.SocietyBuilding
		address.StreetAddress = input.StreetAddress
		address.Landmark = input.Landmark
		address.Pincode = input.Pincode
		address.City = input.City
		address.State = input.State
		if input.Type != "" {
			address.Type = input.Type
		}
		address.IsDefault = input.IsDefault

		err = db.Transaction(func(tx *gorm.DB) error {
			if address.IsDefault {
				if err := tx.Model(&models.Address{}).
					Where("user_id = ? AND id <> ?", userID, address.ID).
					Update("is_default", false).Error; err != nil {
					return err
				}
			}
			return tx.Save(&address).Error
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update address"})
			return
		}
		c.JSON(http.StatusOK, address)
	}
}

// DELETE /api/addresses/:id
func DeleteAddress(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := userIDFrom(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		result := db.Where("id = ? AND user_id = ?", c.Param("id"), userID).Delete(&models.Address{})
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete address"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Address not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Address deleted successfully"})
	}
}
