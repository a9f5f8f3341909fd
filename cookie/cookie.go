package cookie

import (
	"encoding/base64"
	"encoding/json"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/refill-spot/site/config"
	"github.com/refill-spot/site/geo"
)

// SavedLocation is the persisted-location record: the last accepted anchor
// coordinate, how it was obtained, and when. Read-then-overwrite; the last
// writer wins.
type SavedLocation struct {
	Lat       float64    `json:"lat"`
	Lng       float64    `json:"lng"`
	Source    geo.Source `json:"source"`
	Timestamp time.Time  `json:"ts"`
}

const locationCookie = "user_location"

// GetUserLocation reads the persisted location, or nil if absent or garbled.
func GetUserLocation(c *fiber.Ctx) *SavedLocation {
	raw := c.Cookies(locationCookie)
	if raw == "" {
		return nil
	}
	data, err := base64.RawURLEncoding.DecodeString(raw)
	if err != nil {
		return nil
	}
	var loc SavedLocation
	if err := json.Unmarshal(data, &loc); err != nil {
		return nil
	}
	return &loc
}

// SaveUserLocation overwrites the persisted location with the given
// coordinate/source pair, stamped now.
func SaveUserLocation(c *fiber.Ctx, coord geo.Coord, source geo.Source) {
	loc := SavedLocation{
		Lat:       coord.Lat,
		Lng:       coord.Lng,
		Source:    source,
		Timestamp: time.Now(),
	}
	data, err := json.Marshal(loc)
	if err != nil {
		return
	}
	c.Cookie(&fiber.Cookie{
		Name:     locationCookie,
		Value:    base64.RawURLEncoding.EncodeToString(data),
		MaxAge:   config.LocationCookieMaxAge,
		HTTPOnly: true,
		Secure:   true,
		Path:     "/",
		SameSite: "Strict",
	})
}

// ClearUserLocation drops the persisted location.
func ClearUserLocation(c *fiber.Ctx) {
	c.ClearCookie(locationCookie)
}

func GetView(c *fiber.Ctx) string {
	return c.Cookies("last_view", "list") // default to list
}

func SetView(c *fiber.Ctx, view string) {
	c.Cookie(&fiber.Cookie{
		Name:     "last_view",
		Value:    view,
		MaxAge:   30 * 24 * 60 * 60, // 30 days
		HTTPOnly: true,
		Secure:   true,
		Path:     "/",
		SameSite: "Strict",
	})
}

func SetJWT(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     "auth_token",
		Value:    token,
		HTTPOnly: true,
		Secure:   true,
		SameSite: "Strict",
		MaxAge:   24 * 60 * 60, // 24 hours
	})
}

func ClearJWT(c *fiber.Ctx) {
	c.ClearCookie("auth_token")
}

func GetJWT(c *fiber.Ctx) string {
	return c.Cookies("auth_token")
}
