package pricing

import (
	"fmt"

	"lotline-backend/internal/audit"
	"lotline-backend/internal/database"
	"lotline-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

type UpdateVendorRequest struct {
	CostCoefficient float64 `json:"cost_coefficient"`
	MinPriceMargin  float64 `json:"min_price_margin"`
}

// GET /api/vendors
// Only active vendors are offered for new assignments; historical items keep
// whatever vendor priced them.
func ListVendorsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		vendors, err := LoadVendors(database.DB)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not list vendors")
		}
		return c.JSON(vendors)
	}
}

// PUT /api/vendors/:id
func UpdateVendorHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var vendor models.Vendor
		if err := database.DB.First(&vendor, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "vendor not found")
		}

		var body UpdateVendorRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}

		if body.CostCoefficient <= 0 || body.CostCoefficient >= 1 {
			return fiber.NewError(fiber.StatusBadRequest, "cost_coefficient must be between 0 and 1 exclusive")
		}
		if body.MinPriceMargin < 0 || body.MinPriceMargin >= 1 {
			return fiber.NewError(fiber.StatusBadRequest, "min_price_margin must be in [0,1)")
		}

		before := map[string]any{
			"cost_coefficient": vendor.CostCoefficient,
			"min_price_margin": vendor.MinPriceMargin,
		}

		vendor.CostCoefficient = body.CostCoefficient
		vendor.MinPriceMargin = body.MinPriceMargin
		if err := database.DB.Save(&vendor).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not update vendor")
		}

		if logErr := audit.WriteLog(nil, audit.LogOptions{
			EntityType:  "vendor",
			EntityID:    vendor.ID,
			Action:      models.AuditActionUpdate,
			Description: fmt.Sprintf("vendor %s coefficients updated", vendor.Name),
			Before:      before,
			After: map[string]any{
				"cost_coefficient": vendor.CostCoefficient,
				"min_price_margin": vendor.MinPriceMargin,
			},
		}); logErr != nil {
			log.Warn().Err(logErr).Msg("audit log write failed")
		}

		return c.JSON(vendor)
	}
}
