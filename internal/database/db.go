package database

import (
	"fmt"

	"lotline-backend/internal/config"
	"lotline-backend/internal/models"

	"github.com/rs/zerolog/log"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var DB *gorm.DB

// Init opens the embedded SQLite file, runs migrations and seeds reference
// data. The whole application shares this single connection.
func Init(cfg *config.Config) {
	var err error

	dsn := fmt.Sprintf("file:%s?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on&_synchronous=NORMAL", cfg.DatabasePath)
	DB, err = gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.DatabasePath).Msg("cannot open database")
	}

	if err := Migrate(DB); err != nil {
		log.Fatal().Err(err).Msg("migration failed")
	}
	if err := Seed(DB); err != nil {
		log.Fatal().Err(err).Msg("seeding failed")
	}

	log.Info().Str("path", cfg.DatabasePath).Msg("database ready")
}

// Migrate runs GORM auto-migration for every model.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Vendor{},
		&models.Manifest{},
		&models.Auction{},
		&models.InventoryItem{},
		&models.AuctionResult{},
		&models.HistoricalSale{},
		&models.Setting{},
		&models.AuditLog{},
	)
}

// Seed inserts the reference vendors and default settings. Existing rows
// are left untouched so operator edits survive restarts.
func Seed(db *gorm.DB) error {
	vendors := []models.Vendor{
		{ID: "bestbuy", Name: "Best Buy", CostCoefficient: 0.14, MinPriceMargin: 0.10, IsActive: true},
		{ID: "wayfair", Name: "Wayfair", CostCoefficient: 0.07, MinPriceMargin: 0.10, IsActive: true},
		{ID: "mech", Name: "Mech/PDX7", CostCoefficient: 0.20, MinPriceMargin: 0.10, IsActive: true},
		{ID: "amazon", Name: "Amazon Bstock", CostCoefficient: 0.20, MinPriceMargin: 0.10, IsActive: true},
	}
	for _, v := range vendors {
		if err := db.Where(models.Vendor{ID: v.ID}).FirstOrCreate(&v).Error; err != nil {
			return err
		}
	}

	settings := []models.Setting{
		{Key: models.SettingBuybackBidderID, Value: "5046", Description: "Bidder ID treated as an automatic buyback signal", Category: "reconciliation"},
		{Key: models.SettingDefaultCommissionRate, Value: "0.15", Description: "Default auction commission rate (15%)", Category: "financial"},
		{Key: models.SettingCashSaleCommission, Value: "0.10", Description: "Commission rate for cash sales (10%)", Category: "financial"},
		{Key: "app_version", Value: "0.2.0", Description: "Current application version", Category: "system"},
		{Key: "db_version", Value: "2", Description: "Database schema version", Category: "system"},
	}
	for _, s := range settings {
		if err := db.Where(models.Setting{Key: s.Key}).FirstOrCreate(&s).Error; err != nil {
			return err
		}
	}

	return nil
}
