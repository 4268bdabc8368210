package models

import "time"

// Vendor: supply source with pricing coefficients. cost_coefficient converts
// retail price to acquisition cost, min_price_margin sets the markup floor.
type Vendor struct {
	ID              string  `gorm:"primaryKey;size:36" json:"id"`
	Name            string  `gorm:"size:100;not null;unique" json:"name"`
	CostCoefficient float64 `gorm:"not null" json:"cost_coefficient"` // (0,1)
	MinPriceMargin  float64 `gorm:"not null;default:0.10" json:"min_price_margin"` // [0,1)
	IsActive        bool    `gorm:"not null;default:true" json:"is_active"`
	CreatedAt       time.Time `json:"created_at"`
}
