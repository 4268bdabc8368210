package reconcile

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"lotline-backend/internal/models"
	"lotline-backend/internal/settings"
)

// Summary is the outcome of reconciling one results file against an auction.
// Errors are per-row and soft: a row that cannot be matched is reported and
// skipped, it does not abort the run.
type Summary struct {
	SoldCount    int      `json:"sold_count"`
	BuybackCount int      `json:"buyback_count"`
	TotalRevenue float64  `json:"total_revenue"`
	TotalProfit  float64  `json:"total_profit"`
	Errors       []string `json:"errors"`
}

// Run matches result rows to the auction's listed items and settles each
// one. Everything commits in a single transaction; the auction is marked
// Completed at the end.
func Run(db *gorm.DB, auctionID string, rows []ResultRow, warnings []string) (Summary, error) {
	summary := Summary{Errors: append([]string{}, warnings...)}

	err := db.Transaction(func(tx *gorm.DB) error {
		var a models.Auction
		if err := tx.First(&a, "id = ?", auctionID).Error; err != nil {
			return err
		}

		buybackBidder := settings.GetString(tx, models.SettingBuybackBidderID, "")
		commissionRate := settings.GetFloat(tx, models.SettingDefaultCommissionRate, 0.15)

		now := time.Now()
		for _, row := range rows {
			var item models.InventoryItem
			err := tx.
				Where("auction_id = ? AND lot_number = ? AND current_status = ?",
					auctionID, row.LotNumber, models.ItemListed).
				First(&item).Error
			if err == gorm.ErrRecordNotFound {
				summary.Errors = append(summary.Errors,
					fmt.Sprintf("Lot %s: no listed item found in this auction", row.LotNumber))
				continue
			}
			if err != nil {
				return err
			}

			isBuyback := buybackBidder != "" && row.BidderID == buybackBidder

			result := models.AuctionResult{
				ID:            uuid.NewString(),
				AuctionID:     auctionID,
				ItemID:        item.ID,
				WinningBidder: row.WinningBidder,
				BidderID:      row.BidderID,
				HighBid:       row.HighBid,
				MaxBid:        row.MaxBid,
				BidderEmail:   row.BidderEmail,
				BidderPhone:   row.BidderPhone,
				IsBuyback:     isBuyback,
			}

			status := models.ItemSold
			if isBuyback {
				status = models.ItemBuyback
				result.CommissionRate = 0
				result.CommissionAmount = 0
				result.NetProfit = 0
			} else {
				result.CommissionRate = commissionRate
				result.CommissionAmount = round2(row.HighBid * commissionRate)
				result.NetProfit = round2(row.HighBid - item.CostPrice - result.CommissionAmount)
			}

			if err := tx.Create(&result).Error; err != nil {
				return err
			}
			if err := tx.Model(&item).Updates(map[string]any{
				"current_status": status,
				"sold_at":        now,
			}).Error; err != nil {
				return err
			}

			if isBuyback {
				summary.BuybackCount++
				continue
			}

			summary.SoldCount++
			summary.TotalRevenue = round2(summary.TotalRevenue + row.HighBid)
			summary.TotalProfit = round2(summary.TotalProfit + result.NetProfit)

			sale := models.HistoricalSale{
				ID:              uuid.NewString(),
				NormalizedTitle: item.NormalizedTitle,
				ExtractedBrand:  item.ExtractedBrand,
				ExtractedSKU:    item.SKUExtracted,
				Category:        item.Category,
				Condition:       item.Condition,
				RetailPrice:     item.RetailPrice,
				CostPrice:       item.CostPrice,
				SalePrice:       row.HighBid,
				SaleDate:        now,
				Platform:        "HiBid",
				Season:          models.SeasonOf(now),
			}
			if err := tx.Create(&sale).Error; err != nil {
				return err
			}
		}

		if a.Status != models.AuctionCompleted {
			if err := tx.Model(&a).Update("status", models.AuctionCompleted).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return Summary{}, err
	}
	return summary, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
