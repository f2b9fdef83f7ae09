package models

import "time"

type CouponType string

const (
	CouponTypePercent CouponType = "percent"
	CouponTypeFixed   CouponType = "fixed"
)

// Coupon covers both the manual path (user-entered code, MinCartAmount
// threshold) and the automatic path (IsAuto + AutoThreshold, optionally
// granting a free gift). Usage caps are stored but enforced elsewhere.
type Coupon struct {
	ID          string     `gorm:"type:uuid;primaryKey" json:"id"`
	Code        string     `gorm:"uniqueIndex" json:"code"` // stored upper-case
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Type        CouponType `gorm:"default:percent" json:"type"`
	Value       float64    `json:"value"`

	MinCartAmount float64 `json:"min_cart_amount"`
	IsActive      bool    `gorm:"default:true" json:"is_active"`

	MaxUses      *int       `json:"max_uses"`
	UsedCount    int        `gorm:"default:0" json:"used_count"`
	PerUserLimit *int       `json:"per_user_limit"`
	ValidFrom    *time.Time `json:"valid_from"`
	ValidTo      *time.Time `json:"valid_to"`

	IsAuto            bool    `gorm:"index;default:false" json:"is_auto"`
	AutoThreshold     float64 `json:"auto_threshold"`
	FreeGiftProductID *string `json:"free_gift_product_id"`
	FreeGiftQty       *int    `json:"free_gift_qty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
