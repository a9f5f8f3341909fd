package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

func init() {
	// .env is optional; deployed environments set real env vars
	if err := godotenv.Load(); err == nil {
		log.Printf("[config] loaded .env")
	}
}

func env(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

// Server
var (
	ServerPort          = env("PORT", "8080")
	ServerUploadLimit   = 20 * 1024 * 1024 // store/review image uploads
	ServerRateLimitMax  = envInt("RATE_LIMIT_MAX", 300)
	ServerRateLimitExp  = time.Minute
	ServerRedirectDelay = 1 * time.Second
)

// Database
var DatabaseURL = env("DATABASE_URL", "refillspot.db")

// Store backend API consumed by the discovery pipeline. Defaults to this
// process's own /api surface; point it at the hosted backend in production.
var (
	StoreAPIBaseURL = env("STORE_API_BASE_URL", "http://localhost:"+ServerPort+"/api")
	StoreAPITimeout = time.Duration(envInt("STORE_API_TIMEOUT_SECONDS", 10)) * time.Second
)

// Search defaults
const (
	SearchPageSize       = 20
	DefaultRadiusKm      = 5.0
	LocationCookieMaxAge = 30 * 24 * 60 * 60 // seconds
	// Persisted locations older than this are ignored by the resolver.
	LocationStaleAfter = 24 * time.Hour
)

// Default anchor when nothing else is available: Gangnam Station, Seoul.
const (
	DefaultAnchorLat = 37.5006249
	DefaultAnchorLng = 127.0277083
)

// Auth
var JWTSecret = env("JWT_SECRET", "dev-secret-change-me")

// Backblaze B2 image storage
var (
	B2MasterKeyID = os.Getenv("B2_MASTER_KEY_ID")
	B2KeyID       = os.Getenv("B2_KEY_ID")
	B2AppKey      = os.Getenv("B2_APP_KEY")
	B2BucketID    = os.Getenv("B2_BUCKET_ID")
	B2BucketName  = env("B2_BUCKET_NAME", "refillspot-images")

	B2AuthEndpoint         = "https://api.backblazeb2.com/b2api/v2/b2_authorize_account"
	B2DownloadAuthEndpoint = "/b2api/v2/b2_get_download_authorization"
	B2FileServerURL        = env("B2_FILE_SERVER_URL", "https://f000.backblazeb2.com/file/"+B2BucketName)
	B2DownloadTokenExpiry  = 3600 // seconds
)

// Front-end assets
const (
	TailwindCSSURL = "https://cdn.jsdelivr.net/npm/tailwindcss@2.2.19/dist/tailwind.min.css"
	HTMXURL        = "https://unpkg.com/htmx.org@1.9.12"
	LeafletCSSURL  = "https://unpkg.com/leaflet@1.9.4/dist/leaflet.css"
	LeafletJSURL   = "https://unpkg.com/leaflet@1.9.4/dist/leaflet.js"
)
