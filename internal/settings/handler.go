package settings

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"lotline-backend/internal/database"
	"lotline-backend/internal/models"
)

// GetString reads a setting value. Missing keys return the fallback.
func GetString(db *gorm.DB, key, fallback string) string {
	if db == nil {
		db = database.DB
	}
	var s models.Setting
	if err := db.First(&s, "key = ?", key).Error; err != nil {
		return fallback
	}
	return s.Value
}

// GetFloat reads a numeric setting. Missing or unparseable values return
// the fallback.
func GetFloat(db *gorm.DB, key string, fallback float64) float64 {
	raw := GetString(db, key, "")
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fallback
	}
	return v
}

// GetInt reads an integer setting with a fallback.
func GetInt(db *gorm.DB, key string, fallback int) int {
	raw := GetString(db, key, "")
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}

// ListSettingsHandler returns all settings, optionally filtered by
// ?category=financial.
func ListSettingsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		query := database.DB.Order("key asc")
		if category := c.Query("category"); category != "" {
			query = query.Where("category = ?", category)
		}

		var items []models.Setting
		if err := query.Find(&items).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to list settings")
		}
		return c.JSON(items)
	}
}

// GetSettingHandler returns one setting by key.
func GetSettingHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		key := c.Params("key")

		var s models.Setting
		if err := database.DB.First(&s, "key = ?", key).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return fiber.NewError(fiber.StatusNotFound, "Setting not found: "+key)
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to load setting")
		}
		return c.JSON(s)
	}
}

type upsertRequest struct {
	Value       string `json:"value"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

// UpsertSettingHandler creates or updates a setting by key.
func UpsertSettingHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		key := c.Params("key")

		var req upsertRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		var s models.Setting
		err := database.DB.First(&s, "key = ?", key).Error
		switch {
		case err == gorm.ErrRecordNotFound:
			s = models.Setting{
				Key:         key,
				Value:       req.Value,
				Description: req.Description,
				Category:    req.Category,
			}
			if s.Category == "" {
				s.Category = "general"
			}
			if err := database.DB.Create(&s).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Failed to create setting")
			}
			return c.Status(fiber.StatusCreated).JSON(s)
		case err != nil:
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to load setting")
		}

		updates := map[string]any{"value": req.Value}
		if req.Description != "" {
			updates["description"] = req.Description
		}
		if req.Category != "" {
			updates["category"] = req.Category
		}
		if err := database.DB.Model(&s).Updates(updates).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to update setting")
		}
		if err := database.DB.First(&s, "key = ?", key).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to load setting")
		}
		return c.JSON(s)
	}
}
