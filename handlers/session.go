package handlers

import (
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/refill-spot/site/cache"
	"github.com/refill-spot/site/config"
	"github.com/refill-spot/site/discovery"
	"github.com/refill-spot/site/storeapi"
)

const sessionCookie = "search_session"

// sessionTTL bounds how long an idle search session keeps its accumulated
// pages; after that the next request starts a fresh one.
const sessionTTL = 30 * time.Minute

var (
	sessions   *cache.Cache[*discovery.Session]
	backendAPI *storeapi.Client
)

// Init wires the search session cache and the store backend client. Call
// during application startup.
func Init() error {
	var err error
	sessions, err = cache.New[*discovery.Session](func(*discovery.Session) int64 {
		return 1
	}, "Search Session Cache")
	if err != nil {
		return err
	}
	backendAPI = storeapi.NewClient(config.StoreAPIBaseURL).WithTimeout(config.StoreAPITimeout)
	return nil
}

func newSessionID() string {
	b := make([]byte, 16)
	rand.Read(b)
	return hex.EncodeToString(b)
}

// getSearchSession returns the visitor's search session, creating one (and
// its cookie) when absent or expired.
func getSearchSession(c *fiber.Ctx) *discovery.Session {
	id := c.Cookies(sessionCookie)
	if id != "" {
		if s, found := sessions.Get(id); found {
			return s
		}
	}

	id = newSessionID()
	s := discovery.NewSession(backendAPI)
	sessions.SetWithTTL(id, s, 1, sessionTTL)
	sessions.Wait()
	c.Cookie(&fiber.Cookie{
		Name:     sessionCookie,
		Value:    id,
		MaxAge:   int(sessionTTL.Seconds()),
		HTTPOnly: true,
		Secure:   true,
		Path:     "/",
		SameSite: "Lax",
	})
	return s
}
