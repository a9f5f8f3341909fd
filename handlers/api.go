package handlers

import (
	"log"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/refill-spot/site/config"
	"github.com/refill-spot/site/geo"
	"github.com/refill-spot/site/store"
)

// The JSON surface the discovery pipeline consumes. Every response is an
// envelope: {success, data, pagination} on success, {success, error} on
// failure.

func apiError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"success": false,
		"message": message,
	})
}

func apiPage(c *fiber.Ctx, res store.Result) error {
	data := res.Stores
	if data == nil {
		data = []store.Summary{}
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    data,
		"pagination": fiber.Map{
			"page":    res.Page,
			"hasMore": res.HasMore,
			"total":   res.Total,
		},
	})
}

func apiPageLimit(c *fiber.Ctx) (page, limit int) {
	page = c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}
	limit = c.QueryInt("limit", config.SearchPageSize)
	if limit < 1 || limit > 100 {
		limit = config.SearchPageSize
	}
	return page, limit
}

// HandleAPIStores returns one page of the unfiltered store list.
func HandleAPIStores(c *fiber.Ctx) error {
	page, limit := apiPageLimit(c)
	res, err := store.GetStores(page, limit)
	if err != nil {
		log.Printf("[api] store list failed: %v", err)
		return apiError(c, fiber.StatusInternalServerError, "failed to list stores")
	}
	return apiPage(c, res)
}

// HandleAPIStoreSearch returns one page of the filtered store search.
func HandleAPIStoreSearch(c *fiber.Ctx) error {
	page, limit := apiPageLimit(c)
	params := store.SearchParams{
		Query: c.Query("query"),
		Page:  page,
		Limit: limit,
	}

	latStr, lngStr := c.Query("lat"), c.Query("lng")
	if latStr != "" || lngStr != "" {
		lat, err1 := strconv.ParseFloat(latStr, 64)
		lng, err2 := strconv.ParseFloat(lngStr, 64)
		if err1 != nil || err2 != nil {
			return apiError(c, fiber.StatusBadRequest, "lat and lng must both be valid numbers")
		}
		anchor := geo.Coord{Lat: lat, Lng: lng}
		if !anchor.Valid() {
			return apiError(c, fiber.StatusBadRequest, "coordinates out of range")
		}
		params.Anchor = &anchor
		params.RadiusKm = config.DefaultRadiusKm
		if r := c.Query("radius"); r != "" {
			radius, err := strconv.ParseFloat(r, 64)
			if err != nil || radius <= 0 {
				return apiError(c, fiber.StatusBadRequest, "radius must be a positive number")
			}
			params.RadiusKm = radius
		}
	}

	if cats := c.Query("categories"); cats != "" {
		params.Categories = strings.Split(cats, ",")
	}
	if r := c.Query("minRating"); r != "" {
		minRating, err := strconv.ParseFloat(r, 64)
		if err != nil || minRating < 0 || minRating > 5 {
			return apiError(c, fiber.StatusBadRequest, "minRating must be between 0 and 5")
		}
		params.MinRating = minRating
	}

	res, err := store.SearchStores(params)
	if err != nil {
		log.Printf("[api] store search failed: %v", err)
		return apiError(c, fiber.StatusInternalServerError, "failed to search stores")
	}
	return apiPage(c, res)
}

// HandleAPIStore returns one store by ID.
func HandleAPIStore(c *fiber.Ctx) error {
	id, err := ParseIntParam(c, "storeID")
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid store id")
	}
	s, err := store.GetStore(id)
	if err != nil || s.IsArchived() {
		return apiError(c, fiber.StatusNotFound, "store not found")
	}
	return c.JSON(fiber.Map{"success": true, "data": s})
}

// HandleAPICategories returns the category list.
func HandleAPICategories(c *fiber.Ctx) error {
	categories, err := store.GetCategories()
	if err != nil {
		log.Printf("[api] category list failed: %v", err)
		return apiError(c, fiber.StatusInternalServerError, "failed to list categories")
	}
	return c.JSON(fiber.Map{"success": true, "data": categories})
}
