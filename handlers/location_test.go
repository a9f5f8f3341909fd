package handlers

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLocationApp() *fiber.App {
	app := fiber.New()
	app.Post("/api/location", HandleLocationUpdate)
	app.Get("/api/location/failure", HandleLocationFailure)
	return app
}

func TestLocationUpdate(t *testing.T) {
	app := newLocationApp()

	req := httptest.NewRequest("POST", "/api/location",
		strings.NewReader(`{"lat": 37.5665851, "lng": 126.9782038, "source": "gps"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	var found bool
	for _, c := range resp.Cookies() {
		if c.Name == "user_location" {
			found = true
		}
	}
	assert.True(t, found, "location cookie should be set")
}

func TestLocationUpdateOutOfRange(t *testing.T) {
	app := newLocationApp()

	req := httptest.NewRequest("POST", "/api/location",
		strings.NewReader(`{"lat": 91, "lng": 127, "source": "gps"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestLocationFailureFallsBackToDefaultAnchor(t *testing.T) {
	app := newLocationApp()

	resp, err := app.Test(httptest.NewRequest("GET", "/api/location/failure?code=1", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var payload struct {
		Success bool    `json:"success"`
		Reason  string  `json:"reason"`
		Lat     float64 `json:"lat"`
		Lng     float64 `json:"lng"`
	}
	require.NoError(t, json.Unmarshal(body, &payload))
	assert.True(t, payload.Success)
	assert.NotEmpty(t, payload.Reason)
	assert.InDelta(t, 37.5006249, payload.Lat, 1e-6)
	assert.InDelta(t, 127.0277083, payload.Lng, 1e-6)
}
