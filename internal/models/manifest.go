package models

import "time"

type ManifestStatus string

const (
	ManifestImported ManifestStatus = "Imported"
	ManifestListed   ManifestStatus = "Listed"
	ManifestClosed   ManifestStatus = "Closed"
)

// Manifest: one imported vendor shipment file.
type Manifest struct {
	ID               string         `gorm:"primaryKey;size:36" json:"id"`
	SourceFilename   string         `gorm:"size:255;not null" json:"source_filename"`
	ImportDate       time.Time      `gorm:"autoCreateTime" json:"import_date"`
	TotalRetailValue float64        `gorm:"default:0" json:"total_retail_value"`
	TotalCost        float64        `gorm:"default:0" json:"total_cost"`
	ItemsCount       int            `gorm:"default:0" json:"items_count"`
	Status           ManifestStatus `gorm:"size:20;default:Imported" json:"status"`
	Notes            string         `gorm:"size:500" json:"notes"`
}
