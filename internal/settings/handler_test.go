package settings

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

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
	app.Get("/api/settings", ListSettingsHandler())
	app.Get("/api/settings/:key", GetSettingHandler())
	app.Put("/api/settings/:key", UpsertSettingHandler())
	return app
}

func doRequest(t *testing.T, app *fiber.App, method, path string, body any) (int, map[string]any) {
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

func TestSeededSettings(t *testing.T) {
	testutil.SetupDB(t)
	app := newTestApp()

	code, body := doRequest(t, app, "GET", "/api/settings/"+models.SettingBuybackBidderID, nil)
	require.Equal(t, fiber.StatusOK, code)
	assert.Equal(t, "5046", body["value"])

	code, body = doRequest(t, app, "GET", "/api/settings/"+models.SettingDefaultCommissionRate, nil)
	require.Equal(t, fiber.StatusOK, code)
	assert.Equal(t, "0.15", body["value"])
}

func TestGetSettingNotFound(t *testing.T) {
	testutil.SetupDB(t)
	app := newTestApp()

	code, _ := doRequest(t, app, "GET", "/api/settings/does_not_exist", nil)
	assert.Equal(t, fiber.StatusNotFound, code)
}

func TestUpsertSetting(t *testing.T) {
	testutil.SetupDB(t)
	app := newTestApp()

	// Update an existing key.
	code, body := doRequest(t, app, "PUT", "/api/settings/"+models.SettingDefaultCommissionRate,
		fiber.Map{"value": "0.18"})
	require.Equal(t, fiber.StatusOK, code)
	assert.Equal(t, "0.18", body["value"])
	assert.Equal(t, "financial", body["category"])

	// Create a new one.
	code, body = doRequest(t, app, "PUT", "/api/settings/storage_location",
		fiber.Map{"value": "Warehouse B", "category": "logistics"})
	require.Equal(t, fiber.StatusCreated, code)
	assert.Equal(t, "Warehouse B", body["value"])
	assert.Equal(t, "logistics", body["category"])
}

func TestSettingAccessors(t *testing.T) {
	db := testutil.SetupDB(t)

	assert.Equal(t, "5046", GetString(db, models.SettingBuybackBidderID, ""))
	assert.Equal(t, 0.15, GetFloat(db, models.SettingDefaultCommissionRate, 0))
	assert.Equal(t, 5046, GetInt(db, models.SettingBuybackBidderID, 0))

	assert.Equal(t, "fallback", GetString(db, "missing", "fallback"))
	assert.Equal(t, 0.25, GetFloat(db, "missing", 0.25))
	assert.Equal(t, 7, GetInt(db, "missing", 7))
}

func TestListSettingsByCategory(t *testing.T) {
	testutil.SetupDB(t)
	app := newTestApp()

	req := httptest.NewRequest("GET", "/api/settings?category=financial", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var items []models.Setting
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&items))
	require.Len(t, items, 2)
	for _, s := range items {
		assert.Equal(t, "financial", s.Category)
	}
}
