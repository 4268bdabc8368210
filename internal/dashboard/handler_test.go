package dashboard

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lotline-backend/internal/models"
	"lotline-backend/internal/testutil"
)

func TestStatsHandler(t *testing.T) {
	db := testutil.SetupDB(t)

	m := models.Manifest{ID: uuid.NewString(), SourceFilename: "m.csv"}
	require.NoError(t, db.Create(&m).Error)

	active := models.Auction{ID: uuid.NewString(), Name: "Active", Status: models.AuctionActive}
	require.NoError(t, db.Create(&active).Error)
	done := models.Auction{ID: uuid.NewString(), Name: "Done", Status: models.AuctionCompleted}
	require.NoError(t, db.Create(&done).Error)

	statuses := []models.ItemStatus{
		models.ItemInStock, models.ItemInStock, models.ItemListed,
		models.ItemSold, models.ItemBuyback,
	}
	for i, s := range statuses {
		item := models.InventoryItem{
			ID:            uuid.NewString(),
			ManifestID:    m.ID,
			LotNumber:     uuid.NewString()[:8],
			RawTitle:      "Item",
			RetailPrice:   100,
			CostPrice:     14,
			MinPrice:      24,
			CurrentStatus: s,
		}
		if s.RequiresAuction() {
			item.AuctionID = &active.ID
		}
		require.NoError(t, db.Create(&item).Error, "item %d", i)
	}

	app := fiber.New()
	app.Get("/api/dashboard/stats", StatsHandler())

	req := httptest.NewRequest("GET", "/api/dashboard/stats", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var stats map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&stats))

	assert.Equal(t, float64(5), stats["total_items"])
	assert.Equal(t, float64(2), stats["in_stock"])
	assert.Equal(t, float64(1), stats["listed"])
	assert.Equal(t, float64(1), stats["sold"])
	assert.Equal(t, float64(1), stats["buyback"])
	assert.Equal(t, 500.0, stats["total_retail_value"])
	assert.Equal(t, 70.0, stats["total_cost"])
	assert.Equal(t, float64(1), stats["active_auctions"])
}
