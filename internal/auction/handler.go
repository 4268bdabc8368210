package auction

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"lotline-backend/internal/audit"
	"lotline-backend/internal/database"
	"lotline-backend/internal/models"
)

type createRequest struct {
	Name           string     `json:"name"`
	HibidAuctionID string     `json:"hibid_auction_id"`
	VendorID       *string    `json:"vendor_id"`
	StartDate      *time.Time `json:"start_date"`
	EndDate        *time.Time `json:"end_date"`
}

// CreateAuctionHandler opens a new Draft auction.
func CreateAuctionHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req createRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		if req.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Auction name is required")
		}
		if req.VendorID != nil {
			var vendor models.Vendor
			if err := database.DB.First(&vendor, "id = ?", *req.VendorID).Error; err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Unknown vendor")
			}
		}

		a := models.Auction{
			ID:             uuid.NewString(),
			Name:           req.Name,
			HibidAuctionID: req.HibidAuctionID,
			VendorID:       req.VendorID,
			StartDate:      req.StartDate,
			EndDate:        req.EndDate,
			Status:         models.AuctionDraft,
		}
		if err := database.DB.Create(&a).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to create auction")
		}

		if logErr := audit.WriteLog(nil, audit.LogOptions{
			EntityType:  "auction",
			EntityID:    a.ID,
			Action:      models.AuditActionCreate,
			Description: "Created auction " + a.Name,
			After:       a,
		}); logErr != nil {
			log.Warn().Err(logErr).Msg("audit write failed")
		}

		return c.Status(fiber.StatusCreated).JSON(a)
	}
}

// ListAuctionsHandler returns auctions, newest first. ?status filters.
func ListAuctionsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		query := database.DB.Order("created_at desc")
		if status := c.Query("status"); status != "" {
			s := models.AuctionStatus(status)
			if !s.Valid() {
				return fiber.NewError(fiber.StatusBadRequest, "Invalid status filter: "+status)
			}
			query = query.Where("status = ?", s)
		}

		var auctions []models.Auction
		if err := query.Find(&auctions).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to list auctions")
		}
		return c.JSON(auctions)
	}
}

// GetAuctionHandler returns one auction with its assigned lots.
func GetAuctionHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var a models.Auction
		if err := database.DB.First(&a, "id = ?", id).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return fiber.NewError(fiber.StatusNotFound, "Auction not found")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to load auction")
		}

		var items []models.InventoryItem
		if err := database.DB.
			Where("auction_id = ?", a.ID).
			Order("lot_number asc").
			Find(&items).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to load auction items")
		}

		return c.JSON(fiber.Map{"auction": a, "items": items})
	}
}

type statusRequest struct {
	Status string `json:"status"`
}

// UpdateAuctionStatusHandler advances the auction lifecycle. Progression is
// forward-only; Completed and Cancelled are terminal.
func UpdateAuctionStatusHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var req statusRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		target := models.AuctionStatus(req.Status)
		if !target.Valid() {
			return fiber.NewError(fiber.StatusBadRequest, "Unknown status: "+req.Status)
		}

		var a models.Auction
		err := database.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.First(&a, "id = ?", id).Error; err != nil {
				if err == gorm.ErrRecordNotFound {
					return fiber.NewError(fiber.StatusNotFound, "Auction not found")
				}
				return err
			}

			before := a.Status
			if !before.CanAdvance(target) {
				return fiber.NewError(fiber.StatusConflict,
					fmt.Sprintf("Cannot change auction status from %s to %s", before, target))
			}

			if err := tx.Model(&a).Update("status", target).Error; err != nil {
				return err
			}
			a.Status = target

			return audit.WriteLog(tx, audit.LogOptions{
				EntityType:  "auction",
				EntityID:    a.ID,
				Action:      models.AuditActionStatus,
				Description: fmt.Sprintf("Auction status changed from %s to %s", before, target),
				Before:      fiber.Map{"status": before},
				After:       fiber.Map{"status": target},
			})
		})
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				return fe
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to update auction status")
		}

		return c.JSON(a)
	}
}

type assignRequest struct {
	ItemIDs []string `json:"item_ids"`
}

// AssignItemsHandler lists in-stock items on an auction. All items move in
// one transaction; any bad item aborts the whole batch.
func AssignItemsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		auctionID := c.Params("id")

		var req assignRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		if len(req.ItemIDs) == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "item_ids is required")
		}

		var assigned int
		var totalLots int64
		err := database.DB.Transaction(func(tx *gorm.DB) error {
			var a models.Auction
			if err := tx.First(&a, "id = ?", auctionID).Error; err != nil {
				if err == gorm.ErrRecordNotFound {
					return fiber.NewError(fiber.StatusNotFound, "Auction not found")
				}
				return err
			}
			if !a.Status.AcceptsLots() {
				return fiber.NewError(fiber.StatusConflict,
					fmt.Sprintf("Auction is %s and no longer accepts lots", a.Status))
			}

			now := time.Now()
			for _, itemID := range req.ItemIDs {
				var item models.InventoryItem
				if err := tx.First(&item, "id = ?", itemID).Error; err != nil {
					if err == gorm.ErrRecordNotFound {
						return fiber.NewError(fiber.StatusNotFound, "Item not found: "+itemID)
					}
					return err
				}

				// Re-assigning an item already on this auction is a no-op.
				if item.AuctionID != nil && *item.AuctionID == auctionID &&
					item.CurrentStatus == models.ItemListed {
					continue
				}
				if item.CurrentStatus != models.ItemInStock {
					return fiber.NewError(fiber.StatusConflict,
						fmt.Sprintf("Item %s is %s, not available for assignment",
							item.LotNumber, item.CurrentStatus))
				}

				if err := tx.Model(&item).Updates(map[string]any{
					"current_status": models.ItemListed,
					"auction_id":     auctionID,
					"listed_at":      now,
				}).Error; err != nil {
					return err
				}
				assigned++
			}

			if err := tx.Model(&models.InventoryItem{}).
				Where("auction_id = ?", auctionID).
				Count(&totalLots).Error; err != nil {
				return err
			}
			if err := tx.Model(&models.Auction{}).
				Where("id = ?", auctionID).
				Update("total_lots", totalLots).Error; err != nil {
				return err
			}

			return audit.WriteLog(tx, audit.LogOptions{
				EntityType:  "auction",
				EntityID:    auctionID,
				Action:      models.AuditActionAssign,
				Description: fmt.Sprintf("Assigned %d items", assigned),
				After:       fiber.Map{"total_lots": totalLots},
			})
		})
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				return fe
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to assign items")
		}

		return c.JSON(fiber.Map{"assigned": assigned, "total_lots": totalLots})
	}
}
