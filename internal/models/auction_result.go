package models

import "time"

// AuctionResult: one reconciled row from a platform results file.
// Buyback rows carry zero commission and zero net profit.
type AuctionResult struct {
	ID        string `gorm:"primaryKey;size:36" json:"id"`
	AuctionID string `gorm:"size:36;index:idx_result_auction_item,unique;not null" json:"auction_id"`
	ItemID    string `gorm:"size:36;index:idx_result_auction_item,unique;not null" json:"item_id"`

	WinningBidder string  `gorm:"size:255" json:"winning_bidder"`
	BidderID      string  `gorm:"size:100;index" json:"bidder_id"`
	HighBid       float64 `gorm:"not null" json:"high_bid"`
	MaxBid        float64 `json:"max_bid"`

	BidderEmail string `gorm:"size:255" json:"bidder_email"`
	BidderPhone string `gorm:"size:50" json:"bidder_phone"`

	IsBuyback bool `gorm:"default:false;index" json:"is_buyback"`
	IsPaid    bool `gorm:"default:false" json:"is_paid"`

	CommissionRate   float64 `gorm:"default:0.15" json:"commission_rate"`
	CommissionAmount float64 `json:"commission_amount"`
	NetProfit        float64 `json:"net_profit"`

	CreatedAt time.Time `json:"created_at"`
}
