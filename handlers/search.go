package handlers

import (
	"database/sql"
	"errors"
	"log"
	"net/url"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/refill-spot/site/cookie"
	"github.com/refill-spot/site/discovery"
	"github.com/refill-spot/site/geo"
	"github.com/refill-spot/site/geoloc"
	"github.com/refill-spot/site/local"
	"github.com/refill-spot/site/search"
	"github.com/refill-spot/site/store"
	"github.com/refill-spot/site/ui"
)

func queryValues(c *fiber.Ctx) url.Values {
	values, err := url.ParseQuery(string(c.Request().URI().QueryString()))
	if err != nil {
		return url.Values{}
	}
	return values
}

// resolveAnchor fills in an anchor when the URL carries none, walking the
// priority chain: URL, persisted location, default.
func resolveAnchor(c *fiber.Ctx, s *discovery.Session, values url.Values) geo.Source {
	resolved := geoloc.ResolveInitial(values, cookie.GetUserLocation(c), time.Now())
	if s.Filters().HasAnchor() {
		return resolved.Source
	}
	lat, lng := resolved.Coord.Lat, resolved.Coord.Lng
	if err := s.SetFilters(discovery.FilterPatch{Latitude: &lat, Longitude: &lng}); err != nil {
		log.Printf("[search] anchor patch rejected: %v", err)
	}
	return resolved.Source
}

func saveUserSearch(userID int, values url.Values) {
	q := values.Encode()
	if q == "" {
		return
	}
	id := sql.NullInt64{Int64: int64(userID), Valid: userID != 0}
	if err := search.SaveUserSearch(id, q); err != nil {
		log.Printf("[search] failed to save search history: %v", err)
	}
}

// HandleSearch runs a new search intent from the URL's filter parameters and
// renders the results: the full page on navigation, just the results
// fragment for HTMX requests.
func HandleSearch(c *fiber.Ctx) error {
	userID := local.GetUserID(c)
	userName := local.GetUserName(c)
	values := queryValues(c)

	if v := c.Query("view"); v == "list" || v == "map" {
		cookie.SetView(c, v)
	}
	view := cookie.GetView(c)

	s := getSearchSession(c)
	if err := s.ApplyURL(values); err != nil {
		return ValidationErrorResponseWithStatus(c, "Invalid search filters.", fiber.StatusBadRequest)
	}
	anchorSource := resolveAnchor(c, s, values)

	res, err := s.NewSearch(c.Context())
	if errors.Is(err, discovery.ErrSuperseded) {
		return render(c, ui.EmptyResponse())
	}
	if err != nil {
		log.Printf("[search] search failed: %v", err)
		if c.Get("HX-Request") != "" {
			return render(c, ui.SearchErrorMessage(searchURL(s)))
		}
		categories, _ := store.GetCategories()
		return render(c, ui.SearchPage(userID, userName, c.Path(), s.Filters(), categories, view, anchorSource,
			ui.SearchErrorMessage(searchURL(s))))
	}

	saveUserSearch(userID, s.EncodeURL(nil))

	results := ui.SearchResults(res, s.PageState(), view, loadMoreURL(s))
	if c.Get("HX-Request") != "" {
		c.Set("HX-Push-Url", searchURL(s))
		return render(c, results)
	}

	categories, err := store.GetCategories()
	if err != nil {
		log.Printf("[search] failed to load categories: %v", err)
	}
	return render(c, ui.SearchPage(userID, userName, c.Path(), s.Filters(), categories, view, anchorSource, results))
}

// HandleSearchPage appends the next page of the current search session.
func HandleSearchPage(c *fiber.Ctx) error {
	s := getSearchSession(c)

	before := len(s.PageState().Accumulated)
	loaded, err := s.LoadMore(c.Context())
	if errors.Is(err, discovery.ErrSuperseded) {
		return render(c, ui.EmptyResponse())
	}
	if err != nil {
		log.Printf("[search] load more failed: %v", err)
		return render(c, ui.LoadMoreError(loadMoreURL(s)))
	}
	if !loaded {
		return render(c, ui.EmptyResponse())
	}

	ps := s.PageState()
	return render(c, ui.SearchResultsPage(ps.Accumulated[before:], ps.HasMore, loadMoreURL(s)))
}

func searchURL(s *discovery.Session) string {
	encoded := s.EncodeURL(nil).Encode()
	if encoded == "" {
		return "/search"
	}
	return "/search?" + encoded
}

func loadMoreURL(s *discovery.Session) string {
	return "/search/page"
}
