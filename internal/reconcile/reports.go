package reconcile

import (
	"github.com/gofiber/fiber/v2"

	"lotline-backend/internal/database"
	"lotline-backend/internal/models"
)

type plTotals struct {
	Revenue    float64
	Cogs       float64
	Commission float64
	SoldItems  int64
}

// ProfitLossHandler aggregates realized results into a profit and loss
// statement. Buyback rows never count as revenue.
func ProfitLossHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		query := database.DB.Model(&models.AuctionResult{}).
			Select(`COALESCE(SUM(auction_results.high_bid), 0) as revenue,
				COALESCE(SUM(inventory_items.cost_price), 0) as cogs,
				COALESCE(SUM(auction_results.commission_amount), 0) as commission,
				COUNT(*) as sold_items`).
			Joins("JOIN inventory_items ON inventory_items.id = auction_results.item_id").
			Where("auction_results.is_buyback = ?", false)

		if auctionID := c.Query("auction_id"); auctionID != "" {
			query = query.Where("auction_results.auction_id = ?", auctionID)
		}

		var t plTotals
		if err := query.Scan(&t).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to build P&L report")
		}

		grossProfit := round2(t.Revenue - t.Cogs)
		netProfit := round2(grossProfit - t.Commission)
		marginPercent := 0.0
		if t.Revenue > 0 {
			marginPercent = round2(netProfit / t.Revenue * 100)
		}

		return c.JSON(fiber.Map{
			"total_revenue":  round2(t.Revenue),
			"total_cogs":     round2(t.Cogs),
			"gross_profit":   grossProfit,
			"total_expenses": round2(t.Commission),
			"net_profit":     netProfit,
			"margin_percent": marginPercent,
			"sold_items":     t.SoldItems,
		})
	}
}

type auctionPnLRow struct {
	AuctionID    string  `json:"auction_id"`
	Name         string  `json:"name"`
	Status       string  `json:"status"`
	TotalLots    int64   `json:"total_lots"`
	SoldCount    int64   `json:"sold_count"`
	BuybackCount int64   `json:"buyback_count"`
	Revenue      float64 `json:"revenue"`
	Cogs         float64 `json:"cogs"`
	Commission   float64 `json:"commission"`
	NetProfit    float64 `json:"net_profit"`
}

// AuctionPnLHandler returns per-auction profitability for the most recent
// reconciled auctions.
func AuctionPnLHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit := c.QueryInt("limit", 12)
		if limit < 1 || limit > 100 {
			limit = 12
		}

		var rows []auctionPnLRow
		err := database.DB.Model(&models.AuctionResult{}).
			Select(`auctions.id as auction_id,
				auctions.name as name,
				auctions.status as status,
				auctions.total_lots as total_lots,
				SUM(CASE WHEN auction_results.is_buyback THEN 0 ELSE 1 END) as sold_count,
				SUM(CASE WHEN auction_results.is_buyback THEN 1 ELSE 0 END) as buyback_count,
				COALESCE(SUM(CASE WHEN auction_results.is_buyback THEN 0 ELSE auction_results.high_bid END), 0) as revenue,
				COALESCE(SUM(CASE WHEN auction_results.is_buyback THEN 0 ELSE inventory_items.cost_price END), 0) as cogs,
				COALESCE(SUM(auction_results.commission_amount), 0) as commission,
				COALESCE(SUM(auction_results.net_profit), 0) as net_profit`).
			Joins("JOIN auctions ON auctions.id = auction_results.auction_id").
			Joins("JOIN inventory_items ON inventory_items.id = auction_results.item_id").
			Group("auctions.id, auctions.name, auctions.status, auctions.total_lots").
			Order("MAX(auction_results.created_at) desc").
			Limit(limit).
			Scan(&rows).Error
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to build auction report")
		}

		return c.JSON(rows)
	}
}

type analyticsRow struct {
	Key          string  `json:"key"`
	SaleCount    int64   `json:"sale_count"`
	TotalRevenue float64 `json:"total_revenue"`
	AvgSalePrice float64 `json:"avg_sale_price"`
	AvgRecovery  float64 `json:"avg_recovery"` // sale price / retail, percent
}

// SalesAnalyticsHandler rolls historical sales up by brand, category or
// season (?group_by=, default category).
func SalesAnalyticsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var column string
		switch c.Query("group_by", "category") {
		case "brand":
			column = "extracted_brand"
		case "category":
			column = "category"
		case "season":
			column = "season"
		default:
			return fiber.NewError(fiber.StatusBadRequest, "group_by must be brand, category or season")
		}

		var rows []analyticsRow
		err := database.DB.Model(&models.HistoricalSale{}).
			Select(column + ` as key,
				COUNT(*) as sale_count,
				COALESCE(SUM(sale_price), 0) as total_revenue,
				COALESCE(AVG(sale_price), 0) as avg_sale_price,
				COALESCE(AVG(CASE WHEN retail_price > 0 THEN sale_price / retail_price * 100 END), 0) as avg_recovery`).
			Where(column + " != ''").
			Group(column).
			Order("total_revenue desc").
			Scan(&rows).Error
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to build sales analytics")
		}

		for i := range rows {
			rows[i].TotalRevenue = round2(rows[i].TotalRevenue)
			rows[i].AvgSalePrice = round2(rows[i].AvgSalePrice)
			rows[i].AvgRecovery = round2(rows[i].AvgRecovery)
		}

		return c.JSON(rows)
	}
}
