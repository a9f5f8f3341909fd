package geoloc

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/refill-spot/site/cookie"
	"github.com/refill-spot/site/geo"
)

var (
	now       = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	urlCoords = url.Values{"lat": {"37.4979502"}, "lng": {"127.0276368"}}
)

func freshSaved(src geo.Source) *cookie.SavedLocation {
	return &cookie.SavedLocation{
		Lat:       37.5665851,
		Lng:       126.9782038,
		Source:    src,
		Timestamp: now.Add(-time.Hour),
	}
}

func TestResolveURLBeatsEverything(t *testing.T) {
	r := ResolveInitial(urlCoords, freshSaved(geo.SourceGPS), now)
	assert.Equal(t, 37.4979502, r.Coord.Lat)
	assert.Equal(t, geo.SourceManual, r.Source)
}

func TestResolveURLGPSMarker(t *testing.T) {
	values := url.Values{"lat": {"37.4979502"}, "lng": {"127.0276368"}, "src": {"gps"}}
	r := ResolveInitial(values, nil, now)
	assert.Equal(t, geo.SourceGPS, r.Source)
}

func TestResolveSavedBeatsDefault(t *testing.T) {
	r := ResolveInitial(url.Values{}, freshSaved(geo.SourceGPS), now)
	assert.Equal(t, 37.5665851, r.Coord.Lat)
	assert.Equal(t, geo.SourceGPS, r.Source)
}

func TestResolveDefaultWhenNothingElse(t *testing.T) {
	r := ResolveInitial(url.Values{}, nil, now)
	assert.Equal(t, geo.DefaultAnchor(), r.Coord)
	assert.Equal(t, geo.SourceDefault, r.Source)
}

func TestResolveStaleSavedFallsThrough(t *testing.T) {
	saved := freshSaved(geo.SourceGPS)
	saved.Timestamp = now.Add(-25 * time.Hour)
	r := ResolveInitial(url.Values{}, saved, now)
	assert.Equal(t, geo.SourceDefault, r.Source)
}

func TestResolveGarbledSavedFallsThrough(t *testing.T) {
	saved := &cookie.SavedLocation{Lat: 0, Lng: 0, Source: "gps", Timestamp: now}
	r := ResolveInitial(url.Values{}, saved, now)
	assert.Equal(t, geo.SourceDefault, r.Source)

	saved = freshSaved("teleport")
	r = ResolveInitial(url.Values{}, saved, now)
	assert.Equal(t, geo.SourceDefault, r.Source)
}

func TestResolveHalfURLPairIgnored(t *testing.T) {
	r := ResolveInitial(url.Values{"lat": {"37.5"}}, freshSaved(geo.SourceManual), now)
	assert.Equal(t, geo.SourceManual, r.Source)
	assert.Equal(t, 37.5665851, r.Coord.Lat)
}

func TestResolveOutOfRangeURLIgnored(t *testing.T) {
	values := url.Values{"lat": {"95"}, "lng": {"127"}}
	r := ResolveInitial(values, nil, now)
	assert.Equal(t, geo.SourceDefault, r.Source)
}

func TestFailureFromCode(t *testing.T) {
	assert.ErrorIs(t, FailureFromCode(1), ErrPermissionDenied)
	assert.ErrorIs(t, FailureFromCode(2), ErrPositionUnavailable)
	assert.ErrorIs(t, FailureFromCode(3), ErrTimeout)
	assert.ErrorIs(t, FailureFromCode(99), ErrPositionUnavailable)
}
