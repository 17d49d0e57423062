package controllers

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPublicTestApp() *fiber.App {
	app := fiber.New()
	app.Get("/api/tiers", HandleTiersList)
	app.Get("/api/widgets", HandleWidgetCatalog)
	return app
}

func TestHandleTiersListReturnsCatalogInOrder(t *testing.T) {
	app := newPublicTestApp()

	resp, err := app.Test(httptest.NewRequest("GET", "/api/tiers", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body struct {
		Tiers []struct {
			ID           string  `json:"id"`
			PriceMonthly float64 `json:"price_monthly"`
		} `json:"tiers"`
		Scale struct {
			ID string `json:"id"`
		} `json:"scale"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))

	require.Len(t, body.Tiers, 4)
	assert.Equal(t, "starter", body.Tiers[0].ID)
	assert.Equal(t, "solo", body.Tiers[1].ID)
	assert.Equal(t, "professional", body.Tiers[2].ID)
	assert.Equal(t, "enterprise", body.Tiers[3].ID)
	assert.Equal(t, "scale", body.Scale.ID)

	for i := 1; i < len(body.Tiers); i++ {
		assert.Greater(t, body.Tiers[i].PriceMonthly, body.Tiers[i-1].PriceMonthly)
	}
}

func TestHandleWidgetCatalogListsBundles(t *testing.T) {
	app := newPublicTestApp()

	resp, err := app.Test(httptest.NewRequest("GET", "/api/widgets", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body struct {
		Widgets []string `json:"widgets"`
		Bundles map[string]struct {
			Widgets []string `json:"widgets"`
			Addons  []string `json:"addons"`
			All     []string `json:"all"`
		} `json:"bundles"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))

	assert.Len(t, body.Widgets, 7)
	assert.Contains(t, body.Widgets, "budget-overview")

	require.Contains(t, body.Bundles, "general")
	require.Contains(t, body.Bundles, "construction")
	assert.Contains(t, body.Bundles["construction"].All, "delay-tracker")
	assert.Contains(t, body.Bundles["construction"].All, "project-photos")
	assert.NotNil(t, body.Bundles["general"].Addons)
}
