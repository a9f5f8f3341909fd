package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/refill-spot/site/local"
	"github.com/refill-spot/site/review"
	"github.com/refill-spot/site/store"
	"github.com/refill-spot/site/ui"
)

// HandleStoreDetail renders one store's page: details, approved reviews and
// the visitor's favorite state.
func HandleStoreDetail(c *fiber.Ctx) error {
	storeID, err := ParseIntParam(c, "storeID")
	if err != nil {
		return err
	}

	s, err := store.GetStore(storeID)
	if err != nil || s.IsArchived() {
		return fiber.NewError(fiber.StatusNotFound, "Store not found")
	}

	reviews, err := review.GetApprovedByStore(storeID)
	if err != nil {
		log.Printf("[store] failed to load reviews for store %d: %v", storeID, err)
	}

	userID := local.GetUserID(c)
	userName := local.GetUserName(c)
	favorited := false
	if userID != 0 {
		favorited, err = store.IsStoreFavoritedByUser(userID, storeID)
		if err != nil {
			log.Printf("[store] favorite lookup failed for store %d: %v", storeID, err)
		}
	}

	return render(c, ui.StoreDetailPage(userID, userName, c.Path(), s, reviews, favorited))
}
