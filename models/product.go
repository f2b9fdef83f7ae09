package models

import "time"

type Product struct {
	ID           string  `gorm:"primaryKey" json:"id"`
	Name         string  `json:"name"`
	Category     string  `json:"category"`
	Unit         string  `json:"unit"` // default selling unit: "pc" or "gm"
	PricePer100g *float64 `json:"price_per_100g"`
	PricePerPc   *float64 `json:"price_per_pc"`
	Description  string  `json:"description"`

	UnitOptions []ProductUnitOption `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"unit_options"`
	Images      []ProductImage      `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"images"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ProductUnitOption is a named variant (e.g. "500g box") with its own price.
type ProductUnitOption struct {
	ID        uint     `gorm:"primaryKey" json:"id"`
	ProductID string   `gorm:"index" json:"product_id"`
	Label     string   `json:"label"`
	Grams     *float64 `json:"grams"`
	Price     float64  `json:"price"`
	Position  int      `json:"position"`
}

type ProductImage struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	ProductID string `gorm:"index" json:"product_id"`
	URL       string `json:"url"`
	Alt       string `json:"alt"`
	Position  int    `json:"position"`
}
