package models

import "time"

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

type Order struct {
	ID     string `gorm:"type:uuid;primaryKey" json:"id"`
	UserID string `gorm:"type:uuid;index" json:"user_id"`

	// Address snapshot at time of order
	RecipientName  string `json:"recipient_name"`
	RecipientPhone string `json:"recipient_phone"`
	HouseNo        string `json:"house_no"`
	StreetAddress  string `json:"street_address"`
	Landmark       string `json:"landmark"`
	City           string `json:"city"`
	State          string `json:"state"`
	Pincode        string `json:"pincode"`

	Subtotal       float64 `json:"subtotal"`
	DiscountAmount float64 `json:"discount_amount"`
	CouponCode     *string `json:"coupon_code"`
	DeliveryFee    float64 `json:"delivery_fee"`
	GrandTotal     float64 `json:"grand_total"`

	Status        OrderStatus   `gorm:"index;default:pending" json:"status"`
	PaymentMethod string        `gorm:"default:COD" json:"payment_method"`
	PaymentStatus PaymentStatus `gorm:"default:pending" json:"payment_status"`
	PaymentRef    *string       `json:"payment_ref"`

	Items []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type OrderItem struct {
	ID           uint     `gorm:"primaryKey" json:"id"`
	OrderID      string   `gorm:"type:uuid;index" json:"order_id"`
	ProductID    string   `json:"product_id"`
	ProductName  string   `json:"product_name"`
	Unit         string   `json:"unit"`
	Quantity     int      `json:"quantity"`
	Grams        *float64 `json:"grams"`
	VariantLabel *string  `json:"variant_label"`
	UnitPrice    float64  `json:"unit_price"`
	LineTotal    float64  `json:"line_total"`
	IsGift       bool     `json:"is_gift"`
}
