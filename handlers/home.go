package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/refill-spot/site/announcement"
	"github.com/refill-spot/site/cookie"
	"github.com/refill-spot/site/local"
	"github.com/refill-spot/site/search"
	"github.com/refill-spot/site/store"
	"github.com/refill-spot/site/ui"
)

func HandleHome(c *fiber.Ctx) error {
	userID := local.GetUserID(c)
	userName := local.GetUserName(c)
	view := cookie.GetView(c)

	categories, err := store.GetCategories()
	if err != nil {
		log.Printf("[home] failed to load categories: %v", err)
	}

	announcements, err := announcement.List()
	if err != nil {
		log.Printf("[home] failed to load announcements: %v", err)
	}

	var recent []search.UserSearch
	if userID != 0 {
		recent, err = search.GetRecentUserSearches(userID, 5)
		if err != nil {
			log.Printf("[home] failed to load recent searches: %v", err)
		}
	}

	return render(c, ui.HomePage(userID, userName, c.Path(), view, categories, announcements, recent))
}
