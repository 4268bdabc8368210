package main

import (
	"strings"

	"lotline-backend/internal/auction"
	"lotline-backend/internal/audit"
	"lotline-backend/internal/auth"
	"lotline-backend/internal/config"
	"lotline-backend/internal/dashboard"
	"lotline-backend/internal/database"
	"lotline-backend/internal/files"
	"lotline-backend/internal/inventory"
	"lotline-backend/internal/logger"
	"lotline-backend/internal/manifest"
	"lotline-backend/internal/pricing"
	"lotline-backend/internal/reconcile"
	"lotline-backend/internal/settings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlog "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg := config.Load()
	logger.Init(cfg.AppEnv, cfg.LogLevel)
	database.Init(cfg)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{
					"error": e.Message,
				})
			}
			log.Error().Err(err).Msg("unexpected error")
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Unexpected server error",
			})
		},
	})

	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))
	app.Use(fiberlog.New())

	api := app.Group("/api")

	// Public auth
	api.Post("/auth/bootstrap", auth.BootstrapHandler(cfg))
	api.Post("/auth/login", auth.LoginHandler(cfg))

	// Protected
	protected := api.Group("")
	protected.Use(auth.JWTMiddleware(cfg))

	protected.Get("/auth/me", auth.MeHandler())

	// Manifests
	protected.Post("/manifests/import", manifest.ImportManifestHandler())
	protected.Post("/manifests/validate", manifest.ValidateManifestHandler())
	protected.Get("/manifests", manifest.ListManifestsHandler())

	// Inventory
	protected.Get("/items", inventory.ListItemsHandler())
	protected.Put("/items/:id/status", inventory.UpdateItemStatusHandler())
	protected.Post("/items/:id/unassign", inventory.UnassignItemHandler())
	protected.Post("/items/export", inventory.ExportInventoryCSVHandler())

	// Auctions
	protected.Post("/auctions", auction.CreateAuctionHandler())
	protected.Get("/auctions", auction.ListAuctionsHandler())
	protected.Get("/auctions/:id", auction.GetAuctionHandler())
	protected.Put("/auctions/:id/status", auction.UpdateAuctionStatusHandler())
	protected.Post("/auctions/:id/assign", auction.AssignItemsHandler())
	protected.Post("/auctions/:id/export", auction.ExportAuctionCSVHandler())
	protected.Post("/auctions/:id/export-xlsx", auction.ExportAuctionXLSXHandler())
	protected.Post("/auctions/:id/reconcile", reconcile.ReconcileAuctionHandler())

	// Vendors
	protected.Get("/vendors", pricing.ListVendorsHandler())
	protected.Put("/vendors/:id", pricing.UpdateVendorHandler())

	// Dashboard & reports
	protected.Get("/dashboard/stats", dashboard.StatsHandler())
	protected.Get("/reports/pl", reconcile.ProfitLossHandler())
	protected.Get("/reports/auction-pnl", reconcile.AuctionPnLHandler())
	protected.Get("/reports/sales-analytics", reconcile.SalesAnalyticsHandler())

	// Settings
	protected.Get("/settings", settings.ListSettingsHandler())
	protected.Get("/settings/:key", settings.GetSettingHandler())
	protected.Put("/settings/:key", settings.UpsertSettingHandler())

	// Audit logs
	protected.Get("/audit-logs", audit.ListAuditLogsHandler())

	// File helpers
	protected.Post("/files/save", files.SaveFileHandler())

	log.Info().Str("port", cfg.HTTPPort).Msg("server listening")
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
