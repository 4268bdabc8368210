package reconcile

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"lotline-backend/internal/audit"
	"lotline-backend/internal/database"
	"lotline-backend/internal/models"
)

type reconcileRequest struct {
	FilePath string `json:"file_path"`
}

// ReconcileAuctionHandler settles an auction from a HiBid results export.
func ReconcileAuctionHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		auctionID := c.Params("id")

		var req reconcileRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		if req.FilePath == "" {
			return fiber.NewError(fiber.StatusBadRequest, "file_path is required")
		}

		var a models.Auction
		if err := database.DB.First(&a, "id = ?", auctionID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return fiber.NewError(fiber.StatusNotFound, "Auction not found")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to load auction")
		}
		if a.Status == models.AuctionCancelled {
			return fiber.NewError(fiber.StatusConflict, "Cannot reconcile a cancelled auction")
		}

		rows, warnings, err := ParseResultsCSV(req.FilePath)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		summary, err := Run(database.DB, auctionID, rows, warnings)
		if err != nil {
			log.Error().Err(err).Str("auction_id", auctionID).Msg("reconciliation failed")
			return fiber.NewError(fiber.StatusInternalServerError, "Reconciliation failed")
		}

		if logErr := audit.WriteLog(nil, audit.LogOptions{
			EntityType:  "auction",
			EntityID:    auctionID,
			Action:      models.AuditActionUpdate,
			Description: "Reconciled auction results",
			After:       summary,
		}); logErr != nil {
			log.Warn().Err(logErr).Msg("audit log write failed")
		}

		return c.JSON(summary)
	}
}
