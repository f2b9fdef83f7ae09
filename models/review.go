package models

import "time"

type ReviewStatus string

const (
	ReviewStatusPending  ReviewStatus = "pending"
	ReviewStatusApproved ReviewStatus = "approved"
	ReviewStatusRejected ReviewStatus = "rejected"
)

type Review struct {
	ID                 string       `gorm:"type:uuid;primaryKey" json:"id"`
	ProductID          string       `gorm:"index" json:"product_id"`
	UserID             *string      `gorm:"type:uuid" json:"user_id"`
	DisplayName        string       `json:"display_name"`
	Rating             float64      `json:"rating"` // 0..5
	Title              string       `json:"title"`
	Body               string       `json:"body"`
	IsVerifiedPurchase bool         `json:"is_verified_purchase"`
	Status             ReviewStatus `gorm:"index;default:pending" json:"status"`

	Images []ReviewImage `gorm:"foreignKey:ReviewID;constraint:OnDelete:CASCADE" json:"images"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ReviewImage stores URLs only; the image files themselves live with the
// external storage collaborator.
type ReviewImage struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	ReviewID string `gorm:"type:uuid;index" json:"review_id"`
	URL      string `json:"url"`
	Position int    `json:"position"`
}
