package audit

import (
	"encoding/json"
	"fmt"

	"gorm.io/gorm"

	"lotline-backend/internal/database"
	"lotline-backend/internal/models"
)

type LogOptions struct {
	EntityType  string
	EntityID    string
	Action      models.AuditAction
	Description string
	Before      any
	After       any
}

// WriteLog persists a before/after snapshot for a mutating operation.
// Pass the active transaction so the entry commits with the change; a nil
// db falls back to the shared connection.
func WriteLog(db *gorm.DB, opts LogOptions) error {
	if db == nil {
		db = database.DB
	}
	beforeStr := "null"
	afterStr := "null"

	if opts.Before != nil {
		if b, err := json.Marshal(opts.Before); err == nil {
			beforeStr = string(b)
		}
	}
	if opts.After != nil {
		if b, err := json.Marshal(opts.After); err == nil {
			afterStr = string(b)
		}
	}

	entry := models.AuditLog{
		EntityType:  opts.EntityType,
		EntityID:    opts.EntityID,
		Action:      opts.Action,
		Description: opts.Description,
		BeforeData:  beforeStr,
		AfterData:   afterStr,
	}

	if err := db.Create(&entry).Error; err != nil {
		return fmt.Errorf("audit log not saved: %w", err)
	}
	return nil
}
