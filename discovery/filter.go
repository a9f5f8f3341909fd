// Package discovery coordinates store search: it owns the canonical filter
// state, keeps it in sync with the URL query string, runs queries through the
// fallback ladder and accumulates paginated results.
package discovery

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/refill-spot/site/config"
	"github.com/refill-spot/site/geo"
)

// ErrInvalidFilter marks filter updates rejected before any network call:
// a half-set anchor pair, or a rating/distance outside its valid range.
var ErrInvalidFilter = errors.New("invalid filter state")

// FilterState is the canonical search criteria: what the user currently
// wants to see. One lives per search session.
type FilterState struct {
	Categories    []string
	MaxDistanceKm float64
	MinRating     float64
	Latitude      *float64
	Longitude     *float64
	Query         string
	Page          int // 1-based, the page being requested
}

// NewFilterState returns a FilterState at its documented defaults.
func NewFilterState() FilterState {
	return FilterState{
		MaxDistanceKm: config.DefaultRadiusKm,
		Page:          1,
	}
}

// HasAnchor reports whether an anchor coordinate is set.
func (f FilterState) HasAnchor() bool {
	return f.Latitude != nil && f.Longitude != nil
}

// Anchor returns the anchor coordinate if one is set.
func (f FilterState) Anchor() (geo.Coord, bool) {
	if !f.HasAnchor() {
		return geo.Coord{}, false
	}
	return geo.Coord{Lat: *f.Latitude, Lng: *f.Longitude}, true
}

// Validate rejects states that must never reach the network.
func (f FilterState) Validate() error {
	if (f.Latitude == nil) != (f.Longitude == nil) {
		return fmt.Errorf("%w: latitude and longitude must be set together", ErrInvalidFilter)
	}
	if f.HasAnchor() {
		c, _ := f.Anchor()
		if !c.Valid() {
			return fmt.Errorf("%w: anchor %s out of range", ErrInvalidFilter, c)
		}
	}
	if f.MinRating < 0 || f.MinRating > 5 {
		return fmt.Errorf("%w: rating %.1f outside [0,5]", ErrInvalidFilter, f.MinRating)
	}
	if f.MaxDistanceKm <= 0 {
		return fmt.Errorf("%w: distance %.1f must be positive", ErrInvalidFilter, f.MaxDistanceKm)
	}
	if f.Page < 1 {
		return fmt.Errorf("%w: page %d must be 1-based", ErrInvalidFilter, f.Page)
	}
	return nil
}

// FilterPatch is a partial filter update. Nil fields are left unchanged;
// ClearAnchor drops the coordinate pair.
type FilterPatch struct {
	Categories    *[]string
	MaxDistanceKm *float64
	MinRating     *float64
	Latitude      *float64
	Longitude     *float64
	ClearAnchor   bool
	Query         *string
	Page          *int
}

// merge applies the patch to a copy of f and validates the result. The
// original is untouched on any error, so a rejected patch never applies
// half an update.
func (f FilterState) merge(p FilterPatch) (FilterState, error) {
	next := f
	if p.Categories != nil {
		next.Categories = append([]string(nil), (*p.Categories)...)
	}
	if p.MaxDistanceKm != nil {
		next.MaxDistanceKm = *p.MaxDistanceKm
	}
	if p.MinRating != nil {
		next.MinRating = *p.MinRating
	}
	if p.ClearAnchor {
		next.Latitude, next.Longitude = nil, nil
	}
	if p.Latitude != nil {
		next.Latitude = p.Latitude
	}
	if p.Longitude != nil {
		next.Longitude = p.Longitude
	}
	if p.Query != nil {
		next.Query = *p.Query
	}
	if p.Page != nil {
		next.Page = *p.Page
	}
	if err := next.Validate(); err != nil {
		return f, err
	}
	return next, nil
}

// Recognized URL query parameters. Anything else in the URL belongs to
// someone else and is preserved untouched.
const (
	paramLat        = "lat"
	paramLng        = "lng"
	paramDistance   = "distance"
	paramRating     = "rating"
	paramCategories = "categories"
	paramQuery      = "q"
	paramPage       = "page"
)

// ParseQuery builds a FilterState from URL parameters. Absent parameters
// keep their defaults; malformed or half-set values are rejected.
func ParseQuery(values url.Values) (FilterState, error) {
	f := NewFilterState()

	latStr, lngStr := values.Get(paramLat), values.Get(paramLng)
	if latStr != "" || lngStr != "" {
		lat, err1 := strconv.ParseFloat(latStr, 64)
		lng, err2 := strconv.ParseFloat(lngStr, 64)
		if err1 != nil || err2 != nil {
			return FilterState{}, fmt.Errorf("%w: bad lat/lng %q,%q", ErrInvalidFilter, latStr, lngStr)
		}
		f.Latitude, f.Longitude = &lat, &lng
	}

	if s := values.Get(paramDistance); s != "" {
		d, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return FilterState{}, fmt.Errorf("%w: bad distance %q", ErrInvalidFilter, s)
		}
		f.MaxDistanceKm = d
	}
	if s := values.Get(paramRating); s != "" {
		r, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return FilterState{}, fmt.Errorf("%w: bad rating %q", ErrInvalidFilter, s)
		}
		f.MinRating = r
	}
	if s := values.Get(paramCategories); s != "" {
		f.Categories = strings.Split(s, ",")
	}
	f.Query = values.Get(paramQuery)
	if s := values.Get(paramPage); s != "" {
		p, err := strconv.Atoi(s)
		if err != nil {
			return FilterState{}, fmt.Errorf("%w: bad page %q", ErrInvalidFilter, s)
		}
		f.Page = p
	}

	if err := f.Validate(); err != nil {
		return FilterState{}, err
	}
	return f, nil
}

// EncodeQuery serializes the filter state over existing URL parameters.
// Recognized parameters are rewritten (or dropped when at their default);
// unrecognized ones pass through untouched so shared links keep whatever
// else they carried.
func (f FilterState) EncodeQuery(existing url.Values) url.Values {
	out := url.Values{}
	for k, vs := range existing {
		switch k {
		case paramLat, paramLng, paramDistance, paramRating, paramCategories, paramQuery, paramPage:
			// rewritten below
		default:
			out[k] = append([]string(nil), vs...)
		}
	}

	if f.HasAnchor() {
		out.Set(paramLat, strconv.FormatFloat(*f.Latitude, 'f', -1, 64))
		out.Set(paramLng, strconv.FormatFloat(*f.Longitude, 'f', -1, 64))
	}
	if f.MaxDistanceKm != config.DefaultRadiusKm {
		out.Set(paramDistance, strconv.FormatFloat(f.MaxDistanceKm, 'f', -1, 64))
	}
	if f.MinRating > 0 {
		out.Set(paramRating, strconv.FormatFloat(f.MinRating, 'f', -1, 64))
	}
	if len(f.Categories) > 0 {
		out.Set(paramCategories, strings.Join(f.Categories, ","))
	}
	if f.Query != "" {
		out.Set(paramQuery, f.Query)
	}
	if f.Page > 1 {
		out.Set(paramPage, strconv.Itoa(f.Page))
	}
	return out
}

// Equal reports whether two filter states describe the same search.
func (f FilterState) Equal(other FilterState) bool {
	return f.EncodeQuery(nil).Encode() == other.EncodeQuery(nil).Encode()
}
