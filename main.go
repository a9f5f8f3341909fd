package main

import (
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"

	"github.com/refill-spot/site/b2util"
	"github.com/refill-spot/site/config"
	"github.com/refill-spot/site/db"
	h "github.com/refill-spot/site/handlers"
	"github.com/refill-spot/site/store"
)

func main() {
	// Initialize database
	if err := db.Init(config.DatabaseURL); err != nil {
		log.Fatalf("error initializing database: %v", err)
	}

	// Initialize category cache
	if err := store.InitCategoryCache(); err != nil {
		log.Fatalf("Failed to initialize category cache: %v", err)
	}

	// Initialize B2 cache
	if err := b2util.Init(); err != nil {
		log.Fatalf("Failed to initialize B2 cache: %v", err)
	}

	// Initialize search sessions and the store API client
	if err := h.Init(); err != nil {
		log.Fatalf("Failed to initialize handlers: %v", err)
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: h.CustomErrorHandler,
		BodyLimit:    config.ServerUploadLimit,
		ReadTimeout:  30 * time.Second, // Prevent long-running requests
		WriteTimeout: 30 * time.Second, // Prevent long-running responses
	})

	// Add rate limiter
	app.Use(limiter.New(limiter.Config{
		Max:        config.ServerRateLimitMax,
		Expiration: config.ServerRateLimitExp,
	}))

	// Add JWT middleware
	app.Use(h.JWTMiddleware)

	// Add logger middleware
	app.Use(logger.New())

	// Static files and utility
	app.Static("/", "./static")
	app.Get("/.well-known/appspecific/com.chrome.devtools.json", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNoContent)
	})

	// Main pages
	app.Get("/", h.HandleHome)
	app.Get("/search", h.HandleSearch)
	app.Get("/search/page", h.HandleSearchPage)
	app.Get("/store/:storeID", h.HandleStoreDetail)

	// User registration/authentication
	app.Get("/register", h.HandleRegistration)
	app.Get("/login", h.HandleLogin)
	app.Post("/logout", h.HandleLogout)

	// Logged-in pages
	app.Get("/favorites", h.AuthRequired, h.HandleFavorites)
	app.Get("/reviews", h.AuthRequired, h.HandleMyReviews)

	// API group
	api := app.Group("/api")
	api.Post("/register", h.HandleRegistrationSubmission)
	api.Post("/login", h.HandleLoginSubmission)

	// Store data (consumed by the search pipeline)
	api.Get("/stores", h.HandleAPIStores)
	api.Get("/stores/search", h.HandleAPIStoreSearch)
	api.Get("/stores/:storeID", h.HandleAPIStore)
	api.Get("/categories", h.HandleAPICategories)
	api.Get("/store-image/:storeID/signed-url", h.HandleStoreImageSignedURL)

	// Favorites and reviews
	api.Post("/favorite/:storeID", h.AuthRequired, h.HandleFavoriteStore)
	api.Delete("/favorite/:storeID", h.AuthRequired, h.HandleUnfavoriteStore)
	api.Post("/store/:storeID/review", h.AuthRequired, h.HandleReviewSubmission)
	api.Delete("/review/:reviewID", h.AuthRequired, h.HandleReviewDelete)

	// Browser location
	api.Post("/location", h.HandleLocationUpdate)
	api.Delete("/location", h.HandleLocationClear)
	api.Get("/location/failure", h.HandleLocationFailure)

	// Admin dashboard and management
	admin := app.Group("/admin", h.AdminRequired)
	admin.Get("/", h.HandleAdminDashboard)
	admin.Get("/users", h.HandleAdminUsers)
	admin.Post("/users/:userID/archive", h.HandleArchiveUser)
	admin.Get("/stores", h.HandleAdminStores)
	admin.Get("/stores/new", h.HandleAdminStoreNew)
	admin.Post("/stores", h.HandleAdminStoreCreate)
	admin.Get("/stores/:storeID/edit", h.HandleAdminStoreEdit)
	admin.Post("/stores/:storeID", h.HandleAdminStoreUpdate)
	admin.Post("/stores/:storeID/archive", h.HandleAdminStoreArchive)
	admin.Get("/reviews", h.HandleAdminReviews)
	admin.Post("/reviews/:reviewID/moderate", h.HandleAdminReviewModerate)
	admin.Get("/announcements", h.HandleAdminAnnouncements)
	admin.Post("/announcements", h.HandleAdminAnnouncementCreate)
	admin.Delete("/announcements/:announcementID", h.HandleAdminAnnouncementDelete)
	admin.Get("/top-searches", h.HandleAdminTopSearches)
	admin.Get("/caches", h.HandleAdminCaches)
	admin.Post("/caches/b2/clear", h.HandleClearB2Cache)
	admin.Post("/caches/b2/refresh", h.HandleRefreshB2Token)
	admin.Post("/caches/categories/clear", h.HandleClearCategoryCache)
	admin.Get("/export/users", h.HandleAdminExportUsers)
	admin.Get("/export/stores", h.HandleAdminExportStores)

	// Legal pages
	app.Get("/terms", h.HandleTermsOfService)
	app.Get("/privacy", h.HandlePrivacyPolicy)
	app.Get("/about", h.HandleAbout)

	// Health check
	app.Get("/health", h.HandleHealth)

	fmt.Printf("Starting server on port %s...\n", config.ServerPort)
	log.Fatal(app.Listen(":" + config.ServerPort))
}
