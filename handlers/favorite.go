package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/refill-spot/site/local"
	"github.com/refill-spot/site/store"
	"github.com/refill-spot/site/ui"
)

// HandleFavoriteStore marks a store as a favorite. Idempotent.
func HandleFavoriteStore(c *fiber.Ctx) error {
	userID := local.GetUserID(c)
	storeID, err := ParseIntParam(c, "storeID")
	if err != nil {
		return err
	}

	if _, err := store.GetStore(storeID); err != nil {
		return fiber.NewError(fiber.StatusNotFound, "Store not found")
	}
	if err := store.FavoriteStore(userID, storeID); err != nil {
		log.Printf("[favorite] failed to favorite store %d for user %d: %v", storeID, userID, err)
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to save favorite")
	}
	return render(c, ui.FavoriteButton(storeID, true))
}

// HandleUnfavoriteStore removes a store from favorites.
func HandleUnfavoriteStore(c *fiber.Ctx) error {
	userID := local.GetUserID(c)
	storeID, err := ParseIntParam(c, "storeID")
	if err != nil {
		return err
	}

	if err := store.UnfavoriteStore(userID, storeID); err != nil {
		log.Printf("[favorite] failed to unfavorite store %d for user %d: %v", storeID, userID, err)
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to remove favorite")
	}
	return render(c, ui.FavoriteButton(storeID, false))
}

// HandleFavorites renders the user's favorite stores, most recent first.
func HandleFavorites(c *fiber.Ctx) error {
	userID := local.GetUserID(c)
	userName := local.GetUserName(c)

	ids, err := store.GetFavoriteStoreIDs(userID)
	if err != nil {
		log.Printf("[favorite] failed to load favorites for user %d: %v", userID, err)
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to load favorites")
	}
	stores, err := store.GetStoresByIDs(ids)
	if err != nil {
		log.Printf("[favorite] failed to load favorite stores for user %d: %v", userID, err)
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to load favorites")
	}

	return render(c, ui.FavoritesPage(userID, userName, c.Path(), stores))
}
