package cartControllers

import "github.com/alka-bakery/bakery-api/models"

// CartView is the canonical JSON shape clients consume. It is always
// built from a freshly recalculated cart.
type CartView struct {
	ID              string         `json:"id"`
	UserID          *string        `json:"user_id"`
	Status          string         `json:"status"`
	Subtotal        float64        `json:"subtotal"`
	DiscountTotal   float64        `json:"discount_total"`
	GrandTotal      float64        `json:"grand_total"`
	CouponCode      *string        `json:"coupon_code"`
	CouponDiscount  float64        `json:"coupon_discount"`
	AutoCouponCode  *string        `json:"auto_coupon_code"`
	AutoDiscount    float64        `json:"auto_discount"`
	FreeGiftApplied bool           `json:"free_gift_applied"`
	Items           []CartItemView `json:"items"`
}

type CartItemView struct {
	ID           string   `json:"id"`
	ProductID    string   `json:"product_id"`
	ProductName  string   `json:"product_name"`
	Unit         string   `json:"unit"`
	Quantity     int      `json:"quantity"`
	Grams        *float64 `json:"grams"`
	VariantLabel *string  `json:"variant_label"`
	LineTotal    float64  `json:"line_total"`
	IsGift       bool     `json:"is_gift"`
}

func cartView(cart *models.Cart) CartView {
	items := make([]CartItemView, 0, len(cart.Items))
	for _, it := range cart.Items {
		items = append(items, CartItemView{
			ID:           it.ID,
			ProductID:    it.ProductID,
			ProductName:  it.ProductName,
			Unit:         it.Unit,
			Quantity:     it.Quantity,
			Grams:        it.Grams,
			VariantLabel: it.VariantLabel,
			LineTotal:    it.LineTotal,
			IsGift:       it.IsGift,
		})
	}
	return CartView{
		ID:              cart.ID,
		UserID:          cart.UserID,
		Status:          string(cart.Status),
		Subtotal:        cart.Subtotal,
		DiscountTotal:   cart.DiscountTotal,
		GrandTotal:      cart.GrandTotal,
		CouponCode:      cart.CouponCode,
		CouponDiscount:  cart.CouponDiscount,
		AutoCouponCode:  cart.AutoCouponCode,
		AutoDiscount:    cart.AutoDiscount,
		FreeGiftApplied: cart.FreeGiftApplied,
		Items:           items,
	}
}
