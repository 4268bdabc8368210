package inventory

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"lotline-backend/internal/models"
	"lotline-backend/internal/testutil"
)

func newTestApp() *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{"error": e.Message})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		},
	})
	app.Get("/api/items", ListItemsHandler())
	app.Put("/api/items/:id/status", UpdateItemStatusHandler())
	app.Post("/api/items/:id/unassign", UnassignItemHandler())
	app.Post("/api/items/export", ExportInventoryCSVHandler())
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any) (int, map[string]any) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var decoded map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&decoded)
	return resp.StatusCode, decoded
}

func seedListedItem(t *testing.T, db *gorm.DB) (models.InventoryItem, models.Auction) {
	t.Helper()

	a := models.Auction{ID: uuid.NewString(), Name: "A", Status: models.AuctionActive, TotalLots: 1}
	require.NoError(t, db.Create(&a).Error)
	m := models.Manifest{ID: uuid.NewString(), SourceFilename: "m.csv"}
	require.NoError(t, db.Create(&m).Error)

	now := time.Now()
	item := models.InventoryItem{
		ID:            uuid.NewString(),
		ManifestID:    m.ID,
		LotNumber:     "L1",
		Quantity:      1,
		RawTitle:      "Listed item",
		RetailPrice:   200,
		CostPrice:     28,
		MinPrice:      48,
		CurrentStatus: models.ItemListed,
		AuctionID:     &a.ID,
		ListedAt:      &now,
	}
	require.NoError(t, db.Create(&item).Error)
	return item, a
}

func TestUpdateItemStatusRejectsIllegalTransition(t *testing.T) {
	db := testutil.SetupDB(t)
	app := newTestApp()

	m := models.Manifest{ID: uuid.NewString(), SourceFilename: "m.csv"}
	require.NoError(t, db.Create(&m).Error)
	item := models.InventoryItem{
		ID: uuid.NewString(), ManifestID: m.ID, LotNumber: "L1",
		RawTitle: "Thing", CurrentStatus: models.ItemInStock,
	}
	require.NoError(t, db.Create(&item).Error)

	// InStock cannot jump straight to Sold.
	code, body := doJSON(t, app, "PUT", "/api/items/"+item.ID+"/status",
		fiber.Map{"status": "Sold"})
	assert.Equal(t, fiber.StatusConflict, code)
	assert.Contains(t, body["error"], "Cannot change status")

	code, _ = doJSON(t, app, "PUT", "/api/items/"+item.ID+"/status",
		fiber.Map{"status": "Scrap"})
	require.Equal(t, fiber.StatusOK, code)

	// Scrap is terminal.
	code, _ = doJSON(t, app, "PUT", "/api/items/"+item.ID+"/status",
		fiber.Map{"status": "InStock"})
	assert.Equal(t, fiber.StatusConflict, code)
}

func TestUpdateItemStatusCannotListWithoutAuction(t *testing.T) {
	db := testutil.SetupDB(t)
	app := newTestApp()

	m := models.Manifest{ID: uuid.NewString(), SourceFilename: "m.csv"}
	require.NoError(t, db.Create(&m).Error)
	item := models.InventoryItem{
		ID: uuid.NewString(), ManifestID: m.ID, LotNumber: "L1",
		RawTitle: "Thing", CurrentStatus: models.ItemInStock,
	}
	require.NoError(t, db.Create(&item).Error)

	// Listing is only reachable through auction assignment; a bare status
	// update would leave the item Listed with no auction.
	code, body := doJSON(t, app, "PUT", "/api/items/"+item.ID+"/status",
		fiber.Map{"status": "Listed"})
	assert.Equal(t, fiber.StatusConflict, code)
	assert.Contains(t, body["error"], "auction assignment")

	var reloaded models.InventoryItem
	require.NoError(t, db.First(&reloaded, "id = ?", item.ID).Error)
	assert.Equal(t, models.ItemInStock, reloaded.CurrentStatus)
	assert.Nil(t, reloaded.AuctionID)
}

func TestUpdateItemStatusBackToStockDetachesAuction(t *testing.T) {
	db := testutil.SetupDB(t)
	app := newTestApp()
	item, a := seedListedItem(t, db)

	code, _ := doJSON(t, app, "PUT", "/api/items/"+item.ID+"/status",
		fiber.Map{"status": "InStock"})
	require.Equal(t, fiber.StatusOK, code)

	var reloaded models.InventoryItem
	require.NoError(t, db.First(&reloaded, "id = ?", item.ID).Error)
	assert.Equal(t, models.ItemInStock, reloaded.CurrentStatus)
	assert.Nil(t, reloaded.AuctionID)
	assert.Nil(t, reloaded.ListedAt)

	var auction models.Auction
	require.NoError(t, db.First(&auction, "id = ?", a.ID).Error)
	assert.Equal(t, 0, auction.TotalLots)
}

func TestUpdateItemStatusSoldSetsTimestamp(t *testing.T) {
	db := testutil.SetupDB(t)
	app := newTestApp()
	item, _ := seedListedItem(t, db)

	code, _ := doJSON(t, app, "PUT", "/api/items/"+item.ID+"/status",
		fiber.Map{"status": "Sold"})
	require.Equal(t, fiber.StatusOK, code)

	var reloaded models.InventoryItem
	require.NoError(t, db.First(&reloaded, "id = ?", item.ID).Error)
	assert.Equal(t, models.ItemSold, reloaded.CurrentStatus)
	assert.NotNil(t, reloaded.SoldAt)
	// Sold items keep their auction linkage.
	assert.NotNil(t, reloaded.AuctionID)
}

func TestUnassignItem(t *testing.T) {
	db := testutil.SetupDB(t)
	app := newTestApp()
	item, a := seedListedItem(t, db)

	code, _ := doJSON(t, app, "POST", "/api/items/"+item.ID+"/unassign", nil)
	require.Equal(t, fiber.StatusOK, code)

	var reloaded models.InventoryItem
	require.NoError(t, db.First(&reloaded, "id = ?", item.ID).Error)
	assert.Equal(t, models.ItemInStock, reloaded.CurrentStatus)
	assert.Nil(t, reloaded.AuctionID)

	var auction models.Auction
	require.NoError(t, db.First(&auction, "id = ?", a.ID).Error)
	assert.Equal(t, 0, auction.TotalLots)

	// Already back in stock: a second unassign is a conflict.
	code, _ = doJSON(t, app, "POST", "/api/items/"+item.ID+"/unassign", nil)
	assert.Equal(t, fiber.StatusConflict, code)
}

func TestListItemsStatusFilter(t *testing.T) {
	db := testutil.SetupDB(t)
	app := newTestApp()
	seedListedItem(t, db)

	req := httptest.NewRequest("GET", "/api/items?status=Listed", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var items []models.InventoryItem
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&items))
	require.Len(t, items, 1)
	assert.Equal(t, models.ItemListed, items[0].CurrentStatus)

	req = httptest.NewRequest("GET", "/api/items?status=bogus", nil)
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
