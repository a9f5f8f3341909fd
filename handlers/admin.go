package handlers

import (
	"fmt"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	g "maragu.dev/gomponents"

	"github.com/refill-spot/site/announcement"
	"github.com/refill-spot/site/b2util"
	"github.com/refill-spot/site/local"
	"github.com/refill-spot/site/review"
	"github.com/refill-spot/site/search"
	"github.com/refill-spot/site/store"
	"github.com/refill-spot/site/ui"
	"github.com/refill-spot/site/user"
)

// adminSection renders one admin section, as a fragment for HTMX requests
// and as a full page otherwise.
func adminSection(c *fiber.Ctx, sectionName string, content g.Node) error {
	userID := local.GetUserID(c)
	userName := local.GetUserName(c)

	section := ui.AdminSectionPage(userID, userName, c.Path(), sectionName, content)
	if c.Get("HX-Request") != "" {
		return render(c, section)
	}
	return render(c, ui.Page("Admin Dashboard", userID, userName, c.Path(), section))
}

// adminHandler loads a section's data and renders it with adminSection.
func adminHandler[T any](c *fiber.Ctx, sectionName string,
	getData func() ([]T, error),
	sectionComponent func([]T) g.Node) error {
	data, err := getData()
	if err != nil {
		log.Printf("[admin] failed to load %s: %v", sectionName, err)
		return fiber.ErrInternalServerError
	}
	return adminSection(c, sectionName, sectionComponent(data))
}

func HandleAdminDashboard(c *fiber.Ctx) error {
	return HandleAdminUsers(c)
}

func HandleAdminUsers(c *fiber.Ctx) error {
	return adminHandler(c, "users", user.GetAllUsers, ui.AdminUsersSection)
}

func HandleArchiveUser(c *fiber.Ctx) error {
	userID, err := ParseIntParam(c, "id")
	if err != nil {
		return err
	}
	if err := user.ArchiveUser(userID); err != nil {
		return fiber.ErrInternalServerError
	}
	users, err := user.GetAllUsers()
	if err != nil {
		return fiber.ErrInternalServerError
	}
	return render(c, ui.AdminUserTable(users))
}

// ---- Stores ----

func adminAllStores() ([]store.Store, error) {
	res, err := store.GetStores(1, 500)
	if err != nil {
		return nil, err
	}
	var stores []store.Store
	for _, s := range res.Stores {
		full, err := store.GetStore(s.ID)
		if err != nil {
			return nil, err
		}
		stores = append(stores, full)
	}
	return stores, nil
}

func HandleAdminStores(c *fiber.Ctx) error {
	return adminHandler(c, "stores", adminAllStores, ui.AdminStoresSection)
}

func HandleAdminStoreNew(c *fiber.Ctx) error {
	categories, err := store.GetCategories()
	if err != nil {
		return fiber.ErrInternalServerError
	}
	return adminSection(c, "stores", ui.AdminStoreForm(store.Store{}, categories))
}

func HandleAdminStoreEdit(c *fiber.Ctx) error {
	id, err := ParseIntParam(c, "id")
	if err != nil {
		return err
	}
	s, err := store.GetStore(id)
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, "Store not found")
	}
	categories, err := store.GetCategories()
	if err != nil {
		return fiber.ErrInternalServerError
	}
	return adminSection(c, "stores", ui.AdminStoreForm(s, categories))
}

func buildStoreFromForm(c *fiber.Ctx) (store.Store, error) {
	name, err := ValidateRequired(c, "name", "Name")
	if err != nil {
		return store.Store{}, err
	}
	address, err := ValidateRequired(c, "address", "Address")
	if err != nil {
		return store.Store{}, err
	}
	lat, err := ParseFormFloat(c, "lat")
	if err != nil {
		return store.Store{}, err
	}
	lng, err := ParseFormFloat(c, "lng")
	if err != nil {
		return store.Store{}, err
	}
	price, err := ParseFormInt(c, "price")
	if err != nil {
		return store.Store{}, err
	}

	var categories []string
	if cats := c.FormValue("categories"); cats != "" {
		for _, cat := range strings.Split(cats, ",") {
			if cat = strings.TrimSpace(cat); cat != "" {
				categories = append(categories, cat)
			}
		}
	}

	return store.Store{
		Name:        name,
		Address:     address,
		Description: c.FormValue("description"),
		Phone:       c.FormValue("phone"),
		OpenHours:   c.FormValue("open_hours"),
		Price:       price,
		Lat:         lat,
		Lng:         lng,
		Thumbnail:   c.FormValue("thumbnail"),
		Categories:  categories,
	}, nil
}

func HandleAdminStoreCreate(c *fiber.Ctx) error {
	s, err := buildStoreFromForm(c)
	if err != nil {
		return ValidationErrorResponse(c, err.Error())
	}

	id, err := store.CreateStore(s)
	if err != nil {
		log.Printf("[admin] failed to create store: %v", err)
		return ValidationErrorResponse(c, "Failed to create store.")
	}

	if form, err := c.MultipartForm(); err == nil {
		if files := form.File["images"]; len(files) > 0 {
			go uploadStoreImagesToB2(id, files)
		}
	}

	return render(c, ui.SuccessMessage("Store created", "/admin/stores"))
}

func HandleAdminStoreUpdate(c *fiber.Ctx) error {
	id, err := ParseIntParam(c, "id")
	if err != nil {
		return err
	}
	s, err := buildStoreFromForm(c)
	if err != nil {
		return ValidationErrorResponse(c, err.Error())
	}
	s.ID = id

	if err := store.UpdateStore(s); err != nil {
		log.Printf("[admin] failed to update store %d: %v", id, err)
		return ValidationErrorResponse(c, "Failed to update store.")
	}

	if form, err := c.MultipartForm(); err == nil {
		if files := form.File["images"]; len(files) > 0 {
			go uploadStoreImagesToB2(id, files)
		}
	}

	return render(c, ui.SuccessMessage("Store updated", "/admin/stores"))
}

func HandleAdminStoreArchive(c *fiber.Ctx) error {
	id, err := ParseIntParam(c, "id")
	if err != nil {
		return err
	}
	if err := store.ArchiveStore(id); err != nil {
		return fiber.ErrInternalServerError
	}
	return HandleAdminStores(c)
}

// ---- Reviews ----

func HandleAdminReviews(c *fiber.Ctx) error {
	return adminHandler(c, "reviews", review.GetPending, ui.AdminReviewsSection)
}

func HandleAdminReviewModerate(c *fiber.Ctx) error {
	id, err := ParseIntParam(c, "id")
	if err != nil {
		return err
	}
	status := c.FormValue("status")
	if err := review.Moderate(id, status); err != nil {
		log.Printf("[admin] failed to moderate review %d: %v", id, err)
		return fiber.NewError(fiber.StatusBadRequest, "Invalid moderation status")
	}

	pending, err := review.GetPending()
	if err != nil {
		return fiber.ErrInternalServerError
	}
	return render(c, ui.AdminReviewTable(pending))
}

// ---- Announcements ----

func HandleAdminAnnouncements(c *fiber.Ctx) error {
	return adminHandler(c, "announcements", announcement.List, ui.AdminAnnouncementsSection)
}

func HandleAdminAnnouncementCreate(c *fiber.Ctx) error {
	title, err := ValidateRequired(c, "title", "Title")
	if err != nil {
		return ValidationErrorResponse(c, err.Error())
	}
	body, err := ValidateRequired(c, "body", "Body")
	if err != nil {
		return ValidationErrorResponse(c, err.Error())
	}
	pinned := c.FormValue("pinned") == "true"

	if _, err := announcement.Create(title, body, pinned); err != nil {
		log.Printf("[admin] failed to create announcement: %v", err)
		return ValidationErrorResponse(c, "Failed to create announcement.")
	}

	announcements, err := announcement.List()
	if err != nil {
		return fiber.ErrInternalServerError
	}
	return render(c, ui.AdminAnnouncementTable(announcements))
}

func HandleAdminAnnouncementDelete(c *fiber.Ctx) error {
	id, err := ParseIntParam(c, "id")
	if err != nil {
		return err
	}
	if err := announcement.Delete(id); err != nil {
		return fiber.ErrInternalServerError
	}
	announcements, err := announcement.List()
	if err != nil {
		return fiber.ErrInternalServerError
	}
	return render(c, ui.AdminAnnouncementTable(announcements))
}

// ---- Searches ----

func HandleAdminTopSearches(c *fiber.Ctx) error {
	return adminHandler(c, "top-searches", func() ([]search.TopSearch, error) {
		return search.GetTopSearches(50)
	}, ui.AdminTopSearchesSection)
}

// ---- Caches ----

func HandleAdminCaches(c *fiber.Ctx) error {
	stats := map[string]map[string]interface{}{
		"B2 Token Cache": b2util.GetCacheStats(),
		"Category Cache": store.CategoryCacheStats(),
	}
	return adminSection(c, "caches", ui.AdminCachesSection(stats))
}

func HandleClearB2Cache(c *fiber.Ctx) error {
	b2util.ClearCache()
	return HandleAdminCaches(c)
}

func HandleClearCategoryCache(c *fiber.Ctx) error {
	store.ClearCategoryCache()
	return HandleAdminCaches(c)
}

func HandleRefreshB2Token(c *fiber.Ctx) error {
	prefix := c.FormValue("prefix")
	if prefix == "" {
		return fiber.NewError(fiber.StatusBadRequest, "prefix parameter is required")
	}
	if _, err := b2util.ForceRefreshToken(prefix); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, fmt.Sprintf("Failed to refresh token: %v", err))
	}
	return HandleAdminCaches(c)
}

// ---- Exports ----

func exportJSON[T any](c *fiber.Ctx, getData func() ([]T, error), filename string) error {
	data, err := getData()
	if err != nil {
		return fiber.ErrInternalServerError
	}
	c.Set("Content-Type", "application/json")
	c.Set("Content-Disposition", "attachment; filename="+filename)
	return c.JSON(data)
}

func HandleAdminExportUsers(c *fiber.Ctx) error {
	return exportJSON(c, user.GetAllUsers, "users.json")
}

func HandleAdminExportStores(c *fiber.Ctx) error {
	return exportJSON(c, adminAllStores, "stores.json")
}
