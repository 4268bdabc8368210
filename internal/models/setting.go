package models

import "time"

// Well-known setting keys.
const (
	SettingBuybackBidderID       = "buyback_bidder_id"
	SettingDefaultCommissionRate = "default_commission_rate"
	SettingCashSaleCommission    = "cash_sale_commission_rate"
)

// Setting: key/value runtime configuration stored in the database.
type Setting struct {
	Key         string    `gorm:"primaryKey;size:100" json:"key"`
	Value       string    `gorm:"size:500;not null" json:"value"`
	Description string    `gorm:"size:255" json:"description"`
	Category    string    `gorm:"size:50;index;default:general" json:"category"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
