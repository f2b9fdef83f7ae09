package models

import "time"

type CartStatus string

const (
	CartStatusActive    CartStatus = "active"
	CartStatusMerged    CartStatus = "merged"
	CartStatusAbandoned CartStatus = "abandoned"
)

// Cart holds the derived totals for a guest or user cart. The derived
// fields (subtotal through FreeGiftApplied) are written only by the
// recalculation pass in controllers/cart.
type Cart struct {
	ID       string     `gorm:"type:uuid;primaryKey" json:"id"`
	UserID   *string    `gorm:"type:uuid;index" json:"user_id"`
	Status   CartStatus `gorm:"index;default:active" json:"status"`
	Currency string     `gorm:"default:INR" json:"currency"`

	Subtotal        float64 `json:"subtotal"`
	DiscountTotal   float64 `json:"discount_total"`
	GrandTotal      float64 `json:"grand_total"`
	CouponCode      *string `json:"coupon_code"`
	CouponDiscount  float64 `json:"coupon_discount"`
	AutoCouponCode  *string `json:"auto_coupon_code"`
	AutoDiscount    float64 `json:"auto_discount"`
	FreeGiftApplied bool    `json:"free_gift_applied"`

	Items []CartItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE" json:"items"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CartItem is one priced line. Gift lines always carry unit price 0 and
// are owned by the gift reconciler.
type CartItem struct {
	ID           string   `gorm:"type:uuid;primaryKey" json:"id"`
	CartID       string   `gorm:"type:uuid;index" json:"cart_id"`
	ProductID    string   `gorm:"index" json:"product_id"`
	ProductName  string   `json:"product_name"` // snapshot at time of add
	Unit         string   `json:"unit"`         // "pc", "gm" or "variant"
	Quantity     int      `json:"quantity"`
	Grams        *float64 `json:"grams"`
	VariantLabel *string  `json:"variant_label"`
	UnitPrice    float64  `json:"unit_price"` // price snapshot, cart currency
	LineTotal    float64  `json:"line_total"`
	IsGift       bool     `gorm:"default:false" json:"is_gift"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
