package models

import "time"

type ItemStatus string

const (
	ItemInStock ItemStatus = "InStock"
	ItemListed  ItemStatus = "Listed"
	ItemSold    ItemStatus = "Sold"
	ItemBuyback ItemStatus = "Buyback"
	ItemScrap   ItemStatus = "Scrap"
)

func (s ItemStatus) Valid() bool {
	switch s {
	case ItemInStock, ItemListed, ItemSold, ItemBuyback, ItemScrap:
		return true
	}
	return false
}

// CanTransition reports whether the item state machine allows from → to.
// InStock → Listed|Scrap; Listed → InStock|Sold|Buyback.
// Sold, Buyback and Scrap are terminal.
func CanTransition(from, to ItemStatus) bool {
	switch from {
	case ItemInStock:
		return to == ItemListed || to == ItemScrap
	case ItemListed:
		return to == ItemInStock || to == ItemSold || to == ItemBuyback
	}
	return false
}

// RequiresAuction reports whether a status implies auction linkage.
// Invariant: auction_id is set iff status is Listed, Sold or Buyback.
func (s ItemStatus) RequiresAuction() bool {
	return s == ItemListed || s == ItemSold || s == ItemBuyback
}

// InventoryItem: one liquidation lot. Items are never deleted; Scrap is a
// terminal status, not a removal.
type InventoryItem struct {
	ID         string `gorm:"primaryKey;size:36" json:"id"`
	ManifestID string `gorm:"size:36;index;not null" json:"manifest_id"`
	LotNumber  string `gorm:"size:50;index" json:"lot_number"` // display label, not unique
	Quantity   int    `gorm:"default:1" json:"quantity"`

	// Raw manifest data
	RawTitle   string `gorm:"size:500;not null" json:"raw_title"`
	VendorCode string `gorm:"size:100" json:"vendor_code"`
	Source     string `gorm:"size:100" json:"source"`
	Condition  string `gorm:"size:50" json:"condition"`

	// Extracted entities
	NormalizedTitle string `gorm:"size:500" json:"normalized_title"`
	ExtractedBrand  string `gorm:"size:100;index" json:"extracted_brand"`
	ExtractedModel  string `gorm:"size:100;index" json:"extracted_model"`
	SKUExtracted    string `gorm:"size:100;index" json:"sku_extracted"`
	Category        string `gorm:"size:100;index" json:"category"`

	// Financial
	RetailPrice float64 `gorm:"not null" json:"retail_price"`
	CostPrice   float64 `gorm:"not null" json:"cost_price"`
	MinPrice    float64 `gorm:"not null" json:"min_price"`

	CurrentStatus ItemStatus `gorm:"size:20;index;default:InStock" json:"current_status"`

	AuctionID *string    `gorm:"size:36;index" json:"auction_id"`
	ListedAt  *time.Time `json:"listed_at"`
	SoldAt    *time.Time `json:"sold_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
