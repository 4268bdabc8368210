package inventory

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"lotline-backend/internal/audit"
	"lotline-backend/internal/database"
	"lotline-backend/internal/models"
)

// ListItemsHandler returns inventory items, newest first, optionally filtered
// by status (?status=Listed) and capped by ?limit (default 1000).
func ListItemsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit := c.QueryInt("limit", 1000)
		if limit < 1 || limit > 5000 {
			limit = 1000
		}

		query := database.DB.Order("created_at desc").Limit(limit)
		if status := c.Query("status"); status != "" {
			s := models.ItemStatus(status)
			if !s.Valid() {
				return fiber.NewError(fiber.StatusBadRequest, "Invalid status filter: "+status)
			}
			query = query.Where("current_status = ?", s)
		}
		if manifestID := c.Query("manifest_id"); manifestID != "" {
			query = query.Where("manifest_id = ?", manifestID)
		}

		var items []models.InventoryItem
		if err := query.Find(&items).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to list items")
		}
		return c.JSON(items)
	}
}

type statusRequest struct {
	Status string `json:"status"`
}

// UpdateItemStatusHandler applies a manual status transition. Illegal
// transitions are rejected; moving back to in_stock detaches the item from
// its auction and recounts that auction's lots.
func UpdateItemStatusHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var req statusRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		target := models.ItemStatus(req.Status)
		if !target.Valid() {
			return fiber.NewError(fiber.StatusBadRequest, "Unknown status: "+req.Status)
		}
		// Listed requires an auction; only assignment can set it.
		if target == models.ItemListed {
			return fiber.NewError(fiber.StatusConflict,
				"Items become Listed through auction assignment")
		}

		var item models.InventoryItem
		err := database.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.First(&item, "id = ?", id).Error; err != nil {
				if err == gorm.ErrRecordNotFound {
					return fiber.NewError(fiber.StatusNotFound, "Item not found")
				}
				return err
			}

			before := item.CurrentStatus
			if !models.CanTransition(before, target) {
				return fiber.NewError(fiber.StatusConflict,
					fmt.Sprintf("Cannot change status from %s to %s", before, target))
			}

			updates := map[string]any{"current_status": target}
			var detachedAuction *string
			switch target {
			case models.ItemInStock:
				detachedAuction = item.AuctionID
				updates["auction_id"] = nil
				updates["listed_at"] = nil
			case models.ItemSold, models.ItemBuyback:
				updates["sold_at"] = time.Now()
			}

			if err := tx.Model(&item).Updates(updates).Error; err != nil {
				return err
			}
			if detachedAuction != nil {
				if err := recountAuctionLots(tx, *detachedAuction); err != nil {
					return err
				}
			}
			if err := tx.First(&item, "id = ?", id).Error; err != nil {
				return err
			}

			return audit.WriteLog(tx, audit.LogOptions{
				EntityType:  "inventory_item",
				EntityID:    item.ID,
				Action:      models.AuditActionStatus,
				Description: fmt.Sprintf("Status changed from %s to %s", before, target),
				Before:      fiber.Map{"status": before},
				After:       fiber.Map{"status": target},
			})
		})
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				return fe
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to update item status")
		}

		return c.JSON(item)
	}
}

// UnassignItemHandler pulls a listed item back off its auction.
func UnassignItemHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var item models.InventoryItem
		err := database.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.First(&item, "id = ?", id).Error; err != nil {
				if err == gorm.ErrRecordNotFound {
					return fiber.NewError(fiber.StatusNotFound, "Item not found")
				}
				return err
			}
			if item.CurrentStatus != models.ItemListed || item.AuctionID == nil {
				return fiber.NewError(fiber.StatusConflict, "Item is not listed on an auction")
			}

			auctionID := *item.AuctionID
			if err := tx.Model(&item).Updates(map[string]any{
				"current_status": models.ItemInStock,
				"auction_id":     nil,
				"listed_at":      nil,
			}).Error; err != nil {
				return err
			}
			if err := recountAuctionLots(tx, auctionID); err != nil {
				return err
			}
			if err := tx.First(&item, "id = ?", id).Error; err != nil {
				return err
			}

			return audit.WriteLog(tx, audit.LogOptions{
				EntityType:  "inventory_item",
				EntityID:    item.ID,
				Action:      models.AuditActionUnassign,
				Description: "Removed from auction " + auctionID,
				Before:      fiber.Map{"auction_id": auctionID, "status": models.ItemListed},
				After:       fiber.Map{"auction_id": nil, "status": models.ItemInStock},
			})
		})
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				return fe
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to unassign item")
		}

		return c.JSON(item)
	}
}

// ExportInventoryCSVHandler writes the current inventory snapshot to a CSV
// file on disk and reports how many rows were written.
func ExportInventoryCSVHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req struct {
			FilePath string `json:"file_path"`
			Status   string `json:"status"`
		}
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		if req.FilePath == "" {
			return fiber.NewError(fiber.StatusBadRequest, "file_path is required")
		}

		query := database.DB.Order("created_at desc")
		if req.Status != "" {
			s := models.ItemStatus(req.Status)
			if !s.Valid() {
				return fiber.NewError(fiber.StatusBadRequest, "Unknown status: "+req.Status)
			}
			query = query.Where("current_status = ?", s)
		}

		var items []models.InventoryItem
		if err := query.Find(&items).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to load items")
		}

		f, err := os.Create(req.FilePath)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Cannot write file: "+err.Error())
		}
		defer f.Close()

		w := csv.NewWriter(f)
		if err := w.Write([]string{"Lot #", "Title", "Source", "Status", "Retail", "Cost", "Min Price", "Created"}); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to write CSV")
		}
		for _, it := range items {
			record := []string{
				it.LotNumber,
				it.RawTitle,
				it.Source,
				string(it.CurrentStatus),
				strconv.FormatFloat(it.RetailPrice, 'f', 2, 64),
				strconv.FormatFloat(it.CostPrice, 'f', 2, 64),
				strconv.FormatFloat(it.MinPrice, 'f', 2, 64),
				it.CreatedAt.Format("2006-01-02"),
			}
			if err := w.Write(record); err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Failed to write CSV")
			}
		}
		w.Flush()
		if err := w.Error(); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to write CSV")
		}

		return c.JSON(fiber.Map{"count": len(items), "file_path": req.FilePath})
	}
}

// recountAuctionLots recomputes an auction's lot counter from the items
// actually attached to it.
func recountAuctionLots(tx *gorm.DB, auctionID string) error {
	var count int64
	if err := tx.Model(&models.InventoryItem{}).
		Where("auction_id = ?", auctionID).
		Count(&count).Error; err != nil {
		return err
	}
	return tx.Model(&models.Auction{}).
		Where("id = ?", auctionID).
		Update("total_lots", count).Error
}
