package manifest

import (
	"fmt"
	"path/filepath"
	"strconv"
	"time"

	"lotline-backend/internal/audit"
	"lotline-backend/internal/database"
	"lotline-backend/internal/models"
	"lotline-backend/internal/nlp"
	"lotline-backend/internal/pricing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type ImportRequest struct {
	FilePath  string  `json:"file_path"`
	AuctionID *string `json:"auction_id"`
}

type ImportResponse struct {
	ID          string   `json:"id"`
	ItemsCount  int      `json:"items_count"`
	TotalRetail float64  `json:"total_retail"`
	TotalCost   float64  `json:"total_cost"`
	Warnings    []string `json:"warnings"`
}

type ValidateRequest struct {
	FilePath string `json:"file_path"`
}

// POST /api/manifests/import
// Parses a B-Stock manifest, prices every row through the vendor
// coefficients, extracts title entities and stores the items, optionally
// straight into an auction. One transaction per import.
func ImportManifestHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body ImportRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
		if body.FilePath == "" {
			return fiber.NewError(fiber.StatusBadRequest, "file_path is required")
		}

		rows, warnings, err := ParseCSV(body.FilePath)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if warnings == nil {
			warnings = []string{}
		}

		var auction models.Auction
		if body.AuctionID != nil {
			if err := database.DB.First(&auction, "id = ?", *body.AuctionID).Error; err != nil {
				return fiber.NewError(fiber.StatusNotFound, "auction not found")
			}
			if !auction.Status.AcceptsLots() {
				return fiber.NewError(fiber.StatusConflict, fmt.Sprintf("auction is %s and no longer accepts lots", auction.Status))
			}
		}

		manifestID := uuid.NewString()
		totalRetail := 0.0
		totalCost := 0.0
		imported := 0

		err = database.DB.Transaction(func(tx *gorm.DB) error {
			engine, err := pricing.NewEngine(tx)
			if err != nil {
				return err
			}
			extractor := nlp.NewExtractor()

			m := models.Manifest{
				ID:             manifestID,
				SourceFilename: filepath.Base(body.FilePath),
				ItemsCount:     len(rows),
				Status:         models.ManifestImported,
			}
			if err := tx.Create(&m).Error; err != nil {
				return err
			}

			now := time.Now()
			for i, row := range rows {
				retail := CleanPrice(row.RetailPrice)
				source := NormalizeSource(row.Source)

				quote, err := engine.Calculate(retail, source)
				if err != nil {
					warnings = append(warnings, fmt.Sprintf("Row %d: %v", i+2, err))
					continue
				}

				quantity := 1
				if q, err := strconv.Atoi(row.Quantity); err == nil && q >= 1 {
					quantity = q
				}

				item := models.InventoryItem{
					ID:            uuid.NewString(),
					ManifestID:    manifestID,
					LotNumber:     row.LotNumber,
					Quantity:      quantity,
					RawTitle:      row.Title,
					VendorCode:    row.VendorCode,
					Source:        source,
					RetailPrice:   retail,
					CostPrice:     quote.CostPrice,
					MinPrice:      quote.MinPrice,
					CurrentStatus: models.ItemInStock,
				}

				entities := extractor.Extract(row.Title)
				item.NormalizedTitle = entities.NormalizedTitle
				item.ExtractedBrand = entities.Brand
				item.ExtractedModel = entities.Model
				item.SKUExtracted = entities.Model
				item.Category = entities.Category

				if body.AuctionID != nil {
					item.CurrentStatus = models.ItemListed
					item.AuctionID = body.AuctionID
					item.ListedAt = &now
				}

				if err := tx.Create(&item).Error; err != nil {
					return err
				}

				totalRetail += retail
				totalCost += quote.CostPrice
				imported++
			}

			status := models.ManifestImported
			if body.AuctionID != nil {
				status = models.ManifestListed

				// total_lots is always an exact recount, never an increment
				var lots int64
				if err := tx.Model(&models.InventoryItem{}).Where("auction_id = ?", *body.AuctionID).Count(&lots).Error; err != nil {
					return err
				}
				if err := tx.Model(&models.Auction{}).Where("id = ?", *body.AuctionID).Update("total_lots", lots).Error; err != nil {
					return err
				}
			}

			return tx.Model(&models.Manifest{}).Where("id = ?", manifestID).Updates(map[string]any{
				"total_retail_value": totalRetail,
				"total_cost":         totalCost,
				"items_count":        imported,
				"status":             status,
			}).Error
		})
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "import failed: "+err.Error())
		}

		if logErr := audit.WriteLog(nil, audit.LogOptions{
			EntityType:  "manifest",
			EntityID:    manifestID,
			Action:      models.AuditActionCreate,
			Description: fmt.Sprintf("manifest imported: %s (%d items)", filepath.Base(body.FilePath), imported),
			After:       fiber.Map{"items_count": imported, "total_retail": totalRetail, "total_cost": totalCost},
		}); logErr != nil {
			log.Warn().Err(logErr).Msg("audit log write failed")
		}

		return c.Status(fiber.StatusCreated).JSON(ImportResponse{
			ID:          manifestID,
			ItemsCount:  imported,
			TotalRetail: totalRetail,
			TotalCost:   totalCost,
			Warnings:    warnings,
		})
	}
}

// POST /api/manifests/validate
// Best-effort pre-import check; an unreadable file degrades to a negative
// result instead of blocking the user.
func ValidateManifestHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body ValidateRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}

		result, err := ValidateCSV(body.FilePath)
		if err != nil {
			return c.JSON(ValidationResult{
				Valid:    false,
				Message:  "could not read file: " + err.Error(),
				Warnings: []string{},
			})
		}
		return c.JSON(result)
	}
}

// GET /api/manifests
func ListManifestsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var manifests []models.Manifest
		if err := database.DB.Order("import_date desc").Find(&manifests).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not list manifests")
		}
		return c.JSON(manifests)
	}
}
