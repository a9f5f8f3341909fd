package geo

import (
	"fmt"

	"github.com/paulmach/orb"
	orbgeo "github.com/paulmach/orb/geo"

	"github.com/refill-spot/site/config"
)

// Coord is an anchor coordinate: the point "distance" and "nearby" are
// computed against.
type Coord struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Source records how an anchor coordinate was obtained, so the UI can
// explain why a location is being used.
type Source string

const (
	SourceGPS     Source = "gps"
	SourceManual  Source = "manual"
	SourceDefault Source = "default"
)

// DefaultAnchor returns the hard-coded fallback anchor (Gangnam Station).
func DefaultAnchor() Coord {
	return Coord{Lat: config.DefaultAnchorLat, Lng: config.DefaultAnchorLng}
}

// Valid reports whether the coordinate is within latitude/longitude ranges.
// (0,0) is treated as unset; it is open ocean, not a place a store can be.
func (c Coord) Valid() bool {
	if c.Lat == 0 && c.Lng == 0 {
		return false
	}
	return c.Lat >= -90 && c.Lat <= 90 && c.Lng >= -180 && c.Lng <= 180
}

// ValidSource reports whether s is one of the known source tags.
func ValidSource(s Source) bool {
	switch s {
	case SourceGPS, SourceManual, SourceDefault:
		return true
	}
	return false
}

// DistanceKm returns the haversine distance between two coordinates in km.
func DistanceKm(a, b Coord) float64 {
	// orb.Point is [lng, lat]
	return orbgeo.DistanceHaversine(orb.Point{a.Lng, a.Lat}, orb.Point{b.Lng, b.Lat}) / 1000
}

func (c Coord) String() string {
	return fmt.Sprintf("%.7f,%.7f", c.Lat, c.Lng)
}
