package auction

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	"lotline-backend/internal/database"
	"lotline-backend/internal/models"
)

// hibidHeader is the column order the HiBid bulk lot uploader expects.
var hibidHeader = []string{
	"LotNum", "Lead", "Description", "StartBid", "BidIncrement", "Images", "Category",
}

const (
	hibidLeadMaxLen      = 50
	hibidBidIncrement    = "5"
	hibidImagesPerLot    = 2
	hibidDefaultCategory = "General Merchandise"
)

// hibidRecord maps one inventory item to a HiBid upload row.
func hibidRecord(item models.InventoryItem) []string {
	lead := item.RawTitle
	if runes := []rune(lead); len(runes) > hibidLeadMaxLen {
		lead = string(runes[:hibidLeadMaxLen])
	}

	description := fmt.Sprintf("%s. Retail Value: $%.2f. Condition: %s. Quantity: %d.",
		item.RawTitle, item.RetailPrice, item.Condition, item.Quantity)

	images := ""
	for i := 1; i <= hibidImagesPerLot; i++ {
		if images != "" {
			images += ","
		}
		images += fmt.Sprintf("%s-%d.jpg", item.LotNumber, i)
	}

	category := item.Category
	if category == "" {
		category = hibidDefaultCategory
	}

	return []string{
		item.LotNumber,
		lead,
		description,
		fmt.Sprintf("%.2f", item.MinPrice),
		hibidBidIncrement,
		images,
		category,
	}
}

// loadAuctionLots fetches the auction and its listed items, ordered by lot
// number. An auction with no lots is an export error, not an empty file.
func loadAuctionLots(id string) (models.Auction, []models.InventoryItem, error) {
	var a models.Auction
	if err := database.DB.First(&a, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return a, nil, fiber.NewError(fiber.StatusNotFound, "Auction not found")
		}
		return a, nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to load auction")
	}

	var items []models.InventoryItem
	if err := database.DB.
		Where("auction_id = ?", id).
		Order("lot_number asc").
		Find(&items).Error; err != nil {
		return a, nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to load auction items")
	}
	if len(items) == 0 {
		return a, nil, fiber.NewError(fiber.StatusConflict, "Auction has no lots to export")
	}
	return a, items, nil
}

type exportRequest struct {
	FilePath string `json:"file_path"`
}

// ExportAuctionCSVHandler writes the auction's lots as a HiBid upload CSV.
func ExportAuctionCSVHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req exportRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		if req.FilePath == "" {
			return fiber.NewError(fiber.StatusBadRequest, "file_path is required")
		}

		_, items, err := loadAuctionLots(c.Params("id"))
		if err != nil {
			return err
		}

		f, err := os.Create(req.FilePath)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Cannot write file: "+err.Error())
		}
		defer f.Close()

		w := csv.NewWriter(f)
		if err := w.Write(hibidHeader); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to write CSV")
		}
		for _, item := range items {
			if err := w.Write(hibidRecord(item)); err != nil {
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

// ExportAuctionXLSXHandler writes the same HiBid layout as a spreadsheet.
func ExportAuctionXLSXHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req exportRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		if req.FilePath == "" {
			return fiber.NewError(fiber.StatusBadRequest, "file_path is required")
		}

		a, items, err := loadAuctionLots(c.Params("id"))
		if err != nil {
			return err
		}

		file := excelize.NewFile()
		defer file.Close()

		sheet := "Lots"
		file.SetSheetName("Sheet1", sheet)

		for col, title := range hibidHeader {
			cell, _ := excelize.CoordinatesToCellName(col+1, 1)
			file.SetCellValue(sheet, cell, title)
		}
		headerStyle, _ := file.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
		file.SetCellStyle(sheet, "A1", "G1", headerStyle)

		for row, item := range items {
			record := hibidRecord(item)
			for col, value := range record {
				cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
				file.SetCellValue(sheet, cell, value)
			}
		}
		file.SetColWidth(sheet, "B", "C", 40)

		if err := file.SaveAs(req.FilePath); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Cannot write file: "+err.Error())
		}

		return c.JSON(fiber.Map{
			"count":     len(items),
			"file_path": req.FilePath,
			"auction":   a.Name,
		})
	}
}
