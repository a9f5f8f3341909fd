// Package geoloc decides which anchor coordinate a search session starts
// from, and classifies the failure modes of browser-reported positions.
package geoloc

import (
	"errors"
	"net/url"
	"strconv"
	"time"

	"github.com/refill-spot/site/config"
	"github.com/refill-spot/site/cookie"
	"github.com/refill-spot/site/geo"
)

// Browser geolocation failure modes, as reported by the position bridge.
// All of them resolve the same way: fall back down the priority chain.
var (
	ErrPermissionDenied    = errors.New("geolocation permission denied")
	ErrPositionUnavailable = errors.New("geolocation position unavailable")
	ErrTimeout             = errors.New("geolocation timed out")
)

// FailureFromCode maps the numeric error code of the browser Geolocation
// API (1, 2, 3) to a typed error. Unknown codes count as unavailable.
func FailureFromCode(code int) error {
	switch code {
	case 1:
		return ErrPermissionDenied
	case 3:
		return ErrTimeout
	default:
		return ErrPositionUnavailable
	}
}

// Resolved is the outcome of anchor resolution: the coordinate plus how it
// was obtained, so the UI can label the result ("near you", "around 강남역").
type Resolved struct {
	Coord  geo.Coord
	Source geo.Source
}

// ResolveInitial picks the anchor for a new session, in priority order:
// explicit URL coordinates beat the persisted location, which beats the
// default anchor. A persisted location only counts while it is fresh;
// stale or invalid records fall through rather than error.
func ResolveInitial(values url.Values, saved *cookie.SavedLocation, now time.Time) Resolved {
	if c, src, ok := fromURL(values); ok {
		return Resolved{Coord: c, Source: src}
	}
	if c, src, ok := fromSaved(saved, now); ok {
		return Resolved{Coord: c, Source: src}
	}
	return Resolved{Coord: geo.DefaultAnchor(), Source: geo.SourceDefault}
}

func fromURL(values url.Values) (geo.Coord, geo.Source, bool) {
	latStr, lngStr := values.Get("lat"), values.Get("lng")
	if latStr == "" || lngStr == "" {
		return geo.Coord{}, "", false
	}
	lat, err1 := strconv.ParseFloat(latStr, 64)
	lng, err2 := strconv.ParseFloat(lngStr, 64)
	if err1 != nil || err2 != nil {
		return geo.Coord{}, "", false
	}
	c := geo.Coord{Lat: lat, Lng: lng}
	if !c.Valid() {
		return geo.Coord{}, "", false
	}
	// Shared links carry the sender's coordinates, not a live fix, so URL
	// anchors are manual unless the link explicitly marks a device fix.
	src := geo.SourceManual
	if s := geo.Source(values.Get("src")); s == geo.SourceGPS {
		src = geo.SourceGPS
	}
	return c, src, true
}

func fromSaved(saved *cookie.SavedLocation, now time.Time) (geo.Coord, geo.Source, bool) {
	if saved == nil {
		return geo.Coord{}, "", false
	}
	c := geo.Coord{Lat: saved.Lat, Lng: saved.Lng}
	if !c.Valid() || !geo.ValidSource(saved.Source) {
		return geo.Coord{}, "", false
	}
	if now.Sub(saved.Timestamp) > config.LocationStaleAfter {
		return geo.Coord{}, "", false
	}
	return c, saved.Source, true
}
