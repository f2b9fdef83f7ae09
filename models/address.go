package models

import "time"

type Address struct {
	ID              string  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID          string  `gorm:"type:uuid;index" json:"user_id"`
	RecipientName   string  `json:"recipient_name"`
	RecipientPhone  string  `json:"recipient_phone"`
	HouseNo         string  `json:"house_no"`
	FloorNo         string  `json:"floor_no"`
	SocietyBuilding string  `json:"society_building"`
	StreetAddress   string  `json:"street_address"`
	Landmark        string  `json:"landmark"`
	Pincode         string  `json:"pincode"`
	City            string  `json:"city"`
	State           string  `json:"state"`
	Type            string  `gorm:"default:Home" json:"type"`
	IsDefault       bool    `gorm:"default:false" json:"is_default"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
