package models

import "time"

type AuctionStatus string

const (
	AuctionDraft     AuctionStatus = "Draft"
	AuctionActive    AuctionStatus = "Active"
	AuctionCompleted AuctionStatus = "Completed"
	AuctionCancelled AuctionStatus = "Cancelled"
)

func (s AuctionStatus) Valid() bool {
	switch s {
	case AuctionDraft, AuctionActive, AuctionCompleted, AuctionCancelled:
		return true
	}
	return false
}

// CanAdvance reports whether an auction may move from → to. Progression is
// forward-only: Draft → Active → Completed, with Cancelled reachable from
// Draft or Active. Completed and Cancelled are terminal.
func (s AuctionStatus) CanAdvance(to AuctionStatus) bool {
	switch s {
	case AuctionDraft:
		return to == AuctionActive || to == AuctionCompleted || to == AuctionCancelled
	case AuctionActive:
		return to == AuctionCompleted || to == AuctionCancelled
	}
	return false
}

// AcceptsLots reports whether items may be assigned to or removed from
// this auction.
func (s AuctionStatus) AcceptsLots() bool {
	return s == AuctionDraft || s == AuctionActive
}

// Auction: one liquidation event. TotalLots is a cached aggregate; it is
// always recomputed by exact recount after a mutation, never incremented.
type Auction struct {
	ID             string        `gorm:"primaryKey;size:36" json:"id"`
	HibidAuctionID string        `gorm:"size:100" json:"hibid_auction_id"`
	Name           string        `gorm:"size:255;not null" json:"name"`
	VendorID       *string       `gorm:"size:36" json:"vendor_id"`
	StartDate      *time.Time    `json:"start_date"`
	EndDate        *time.Time    `json:"end_date"`
	Status         AuctionStatus `gorm:"size:20;default:Draft" json:"status"`
	TotalLots      int           `gorm:"default:0" json:"total_lots"`
	CreatedAt      time.Time     `json:"created_at"`
}
