package models

import "time"

// HistoricalSale: denormalized record of a genuine (non-buyback) sale,
// captured at reconciliation time for later price analytics.
type HistoricalSale struct {
	ID              string `gorm:"primaryKey;size:36" json:"id"`
	NormalizedTitle string `gorm:"size:500;not null" json:"normalized_title"`
	ExtractedBrand  string `gorm:"size:100;index" json:"extracted_brand"`
	ExtractedSKU    string `gorm:"size:100;index" json:"extracted_sku"`
	Category        string `gorm:"size:100;index" json:"category"`
	Condition       string `gorm:"size:50" json:"condition"`

	RetailPrice float64 `json:"retail_price"`
	CostPrice   float64 `json:"cost_price"`
	SalePrice   float64 `gorm:"not null" json:"sale_price"`

	SaleDate time.Time `gorm:"index;not null" json:"sale_date"`
	Platform string    `gorm:"size:50;default:HiBid" json:"platform"`
	Season   string    `gorm:"size:10;index" json:"season"` // Q1..Q4

	CreatedAt time.Time `json:"created_at"`
}

// SeasonOf maps a date to its calendar quarter label.
func SeasonOf(t time.Time) string {
	switch {
	case t.Month() <= 3:
		return "Q1"
	case t.Month() <= 6:
		return "Q2"
	case t.Month() <= 9:
		return "Q3"
	default:
		return "Q4"
	}
}
