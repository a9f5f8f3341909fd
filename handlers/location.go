package handlers

import (
	"log"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/refill-spot/site/cookie"
	"github.com/refill-spot/site/geo"
	"github.com/refill-spot/site/geoloc"
)

// HandleLocationUpdate receives a position from the browser geolocation
// bridge (or a manually picked point) and persists it for later sessions.
func HandleLocationUpdate(c *fiber.Ctx) error {
	var body struct {
		Lat    float64 `json:"lat"`
		Lng    float64 `json:"lng"`
		Source string  `json:"source"`
	}
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid location payload")
	}

	coord := geo.Coord{Lat: body.Lat, Lng: body.Lng}
	if !coord.Valid() {
		return fiber.NewError(fiber.StatusBadRequest, "coordinates out of range")
	}
	source := geo.Source(body.Source)
	if !geo.ValidSource(source) || source == geo.SourceDefault {
		source = geo.SourceManual
	}

	cookie.SaveUserLocation(c, coord, source)
	log.Printf("[location] saved %s location %s", source, coord)
	return c.JSON(fiber.Map{"success": true})
}

// HandleLocationFailure records a browser geolocation failure. The response
// tells the client which fallback anchor to proceed with.
func HandleLocationFailure(c *fiber.Ctx) error {
	code, _ := strconv.Atoi(c.Query("code"))
	err := geoloc.FailureFromCode(code)
	log.Printf("[location] browser geolocation failed: %v", err)

	fallback := geo.DefaultAnchor()
	if saved := cookie.GetUserLocation(c); saved != nil {
		if sc := (geo.Coord{Lat: saved.Lat, Lng: saved.Lng}); sc.Valid() {
			fallback = sc
		}
	}
	return c.JSON(fiber.Map{
		"success": true,
		"reason":  err.Error(),
		"lat":     fallback.Lat,
		"lng":     fallback.Lng,
	})
}

// HandleLocationClear drops the persisted location.
func HandleLocationClear(c *fiber.Ctx) error {
	cookie.ClearUserLocation(c)
	return c.JSON(fiber.Map{"success": true})
}
