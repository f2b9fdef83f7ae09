package cartControllers

import (
	"errors"

	"github.com/alka-bakery/bakery-api/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// resolveCart decides which cart a request belongs to and merges a
// guest cart into the user's cart exactly once, on first identified
// access.
//
//	userCart | guestCart owner | action
//	   —     |       —        | create (owned by userID when present)
//	 exists  |   none found   | userCart
//	  none   |   anonymous    | claim guest cart for userID
//	 exists  |   anonymous    | merge guest into userCart
//	  any    |  owner==userID | guest cart as-is
func resolveCart(db *gorm.DB, cartToken string, userID *string) (*models.Cart, error) {
	var userCart *models.Cart
	if userID != nil {
		var c models.Cart
		err := db.Where("user_id = ? AND status = ?", *userID, models.CartStatusActive).
			Order("updated_at desc").
			First(&c).Error
		if err == nil {
			userCart = &c
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	var guestCart *models.Cart
	if cartToken != "" {
		var c models.Cart
		err := db.Where("id = ? AND status = ?", cartToken, models.CartStatusActive).
			First(&c).Error
		if err == nil {
			guestCart = &c
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	if userID != nil && guestCart != nil {
		if guestCart.UserID != nil && *guestCart.UserID == *userID {
			return guestCart, nil
		}
		if guestCart.UserID == nil {
			if userCart != nil {
				if err := mergeCartItems(db, guestCart.ID, userCart.ID); err != nil {
					return nil, err
				}
				if err := db.Model(&models.Cart{}).Where("id = ?", guestCart.ID).
					Update("status", models.CartStatusMerged).Error; err != nil {
					return nil, err
				}
				return userCart, nil
			}
			if err := db.Model(&models.Cart{}).Where("id = ?", guestCart.ID).
				Update("user_id", *userID).Error; err != nil {
				return nil, err
			}
			guestCart.UserID = userID
			return guestCart, nil
		}
		// guest token points at someone else's cart: ignore it
	}

	if userCart != nil {
		return userCart, nil
	}
	if guestCart != nil && userID == nil {
		return guestCart, nil
	}

	cart := models.Cart{
		ID:       uuid.NewString(),
		UserID:   userID,
		Status:   models.CartStatusActive,
		Currency: "INR",
	}
	if err := db.Create(&cart).Error; err != nil {
		return nil, err
	}
	return &cart, nil
}

// mergeCartItems folds the source cart's paid lines into the target,
// summing quantities for lines matching product + unit + variant label.
// Gift lines are dropped from the source; the target's next
// recalculation re-grants whatever its winning coupon allows.
func mergeCartItems(db *gorm.DB, sourceCartID, targetCartID string) error {
	var sourceItems []models.CartItem
	if err := db.Where("cart_id = ?", sourceCartID).Find(&sourceItems).Error; err != nil {
		return err
	}

	for i := range sourceItems {
		item := &sourceItems[i]
		if item.IsGift {
			if err := db.Delete(&models.CartItem{}, "id = ?", item.ID).Error; err != nil {
				return err
			}
			continue
		}

		var existing models.CartItem
		err := db.Where(
			"cart_id = ? AND product_id = ? AND unit = ? AND variant_label IS NOT DISTINCT FROM ? AND is_gift = ?",
			targetCartID, item.ProductID, item.Unit, item.VariantLabel, false,
		).First(&existing).Error

		switch {
		case err == nil:
			newQty := existing.Quantity + item.Quantity
			if err := db.Model(&models.CartItem{}).Where("id = ?", existing.ID).Updates(map[string]interface{}{
				"quantity":   newQty,
				"line_total": existing.UnitPrice * float64(newQty),
			}).Error; err != nil {
				return err
			}
			if err := db.Delete(&models.CartItem{}, "id = ?", item.ID).Error; err != nil {
				return err
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			if err := db.Model(&models.CartItem{}).Where("id = ?", item.ID).
				Update("cart_id", targetCartID).Error; err != nil {
				return err
			}
		default:
			return err
		}
	}
	return nil
}
