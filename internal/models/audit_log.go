package models

import "time"

type AuditAction string

const (
	AuditActionCreate   AuditAction = "create"
	AuditActionUpdate   AuditAction = "update"
	AuditActionAssign   AuditAction = "assign"
	AuditActionUnassign AuditAction = "unassign"
	AuditActionStatus   AuditAction = "status"
)

// AuditLog: before/after snapshot of a mutating operation. Logs are
// write-only; terminal item states make a generic undo unsafe.
type AuditLog struct {
	ID          uint        `gorm:"primaryKey" json:"id"`
	EntityType  string      `gorm:"size:50;index;not null" json:"entity_type"`
	EntityID    string      `gorm:"size:36;index;not null" json:"entity_id"`
	Action      AuditAction `gorm:"size:20;not null" json:"action"`
	Description string      `gorm:"size:500" json:"description"`
	BeforeData  string      `gorm:"type:text" json:"before_data"` // JSON
	AfterData   string      `gorm:"type:text" json:"after_data"`  // JSON
	CreatedAt   time.Time   `json:"created_at"`
}
