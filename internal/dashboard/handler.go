package dashboard

import (
	"github.com/gofiber/fiber/v2"

	"lotline-backend/internal/database"
	"lotline-backend/internal/models"
)

type statusCount struct {
	CurrentStatus models.ItemStatus
	Count         int64
}

// StatsHandler returns the headline numbers for the dashboard screen.
func StatsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var counts []statusCount
		if err := database.DB.Model(&models.InventoryItem{}).
			Select("current_status, COUNT(*) as count").
			Group("current_status").
			Scan(&counts).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to load stats")
		}

		var totalItems, inStock, listed, sold, buyback int64
		for _, row := range counts {
			totalItems += row.Count
			switch row.CurrentStatus {
			case models.ItemInStock:
				inStock = row.Count
			case models.ItemListed:
				listed = row.Count
			case models.ItemSold:
				sold = row.Count
			case models.ItemBuyback:
				buyback = row.Count
			}
		}

		var totals struct {
			Retail float64
			Cost   float64
		}
		if err := database.DB.Model(&models.InventoryItem{}).
			Select("COALESCE(SUM(retail_price), 0) as retail, COALESCE(SUM(cost_price), 0) as cost").
			Scan(&totals).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to load stats")
		}

		var activeAuctions int64
		if err := database.DB.Model(&models.Auction{}).
			Where("status IN ?", []models.AuctionStatus{models.AuctionDraft, models.AuctionActive}).
			Count(&activeAuctions).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to load stats")
		}

		return c.JSON(fiber.Map{
			"total_items":        totalItems,
			"in_stock":           inStock,
			"listed":             listed,
			"sold":               sold,
			"buyback":            buyback,
			"total_retail_value": totals.Retail,
			"total_cost":         totals.Cost,
			"active_auctions":    activeAuctions,
		})
	}
}
