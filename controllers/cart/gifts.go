package cartControllers

import (
	"errors"

	"github.com/alka-bakery/bakery-api/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type giftWant struct {
	ProductID string
	Qty       int
}

// reconcileGiftLines makes the cart's gift lines match the currently
// winning coupon: exactly one gift line for the wanted product, none
// otherwise. Running it twice with unchanged inputs issues no writes.
// Returns whether anything was granted and whether any write happened.
func reconcileGiftLines(db *gorm.DB, cart *models.Cart, items []models.CartItem, want *giftWant) (applied bool, changed bool, err error) {
	if want == nil {
		for _, it := range items {
			if it.IsGift {
				if err := db.Where("cart_id = ? AND is_gift = ?", cart.ID, true).
					Delete(&models.CartItem{}).Error; err != nil {
					return false, false, err
				}
				return false, true, nil
			}
		}
		return false, false, nil
	}

	matched := false
	for i := range items {
		it := &items[i]
		if !it.IsGift {
			continue
		}
		if it.ProductID == want.ProductID && !matched {
			matched = true
			if it.Quantity != want.Qty {
				if err := db.Model(&models.CartItem{}).Where("id = ?", it.ID).
					Update("quantity", want.Qty).Error; err != nil {
					return false, false, err
				}
				changed = true
			}
			continue
		}
		// gift from a coupon that is no longer winning, or a duplicate
		if err := db.Delete(&models.CartItem{}, "id = ?", it.ID).Error; err != nil {
			return false, false, err
		}
		changed = true
	}

	if !matched {
		var product models.Product
		if err := db.First(&product, "id = ?", want.ProductID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				// the coupon points at a product that no longer exists;
				// grant nothing rather than failing the whole cart
				return false, changed, nil
			}
			return false, changed, err
		}
		gift := models.CartItem{
			ID:          uuid.NewString(),
			CartID:      cart.ID,
			ProductID:   product.ID,
			ProductName: product.Name,
			Unit:        "pc",
			Quantity:    want.Qty,
			UnitPrice:   0,
			LineTotal:   0,
			IsGift:      true,
		}
		if err := db.Create(&gift).Error; err != nil {
			return false, changed, err
		}
		changed = true
	}
	return true, changed, nil
}
