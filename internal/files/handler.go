package files

import (
	"encoding/base64"
	"os"
	"path/filepath"

	"github.com/gofiber/fiber/v2"
)

type saveRequest struct {
	FilePath string `json:"file_path"`
	Data     string `json:"data"` // base64
}

// SaveFileHandler decodes base64 content and writes it to the given path,
// creating parent directories as needed.
func SaveFileHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req saveRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		if req.FilePath == "" {
			return fiber.NewError(fiber.StatusBadRequest, "file_path is required")
		}

		data, err := base64.StdEncoding.DecodeString(req.Data)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "data is not valid base64")
		}

		if dir := filepath.Dir(req.FilePath); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Cannot create directory: "+err.Error())
			}
		}
		if err := os.WriteFile(req.FilePath, data, 0o644); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Cannot write file: "+err.Error())
		}

		return c.JSON(fiber.Map{"file_path": req.FilePath, "size": len(data)})
	}
}
