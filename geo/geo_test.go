package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCoordValid(t *testing.T) {
	tests := []struct {
		name     string
		coord    Coord
		expected bool
	}{
		{
			name:     "gangnam station",
			coord:    Coord{Lat: 37.5006249, Lng: 127.0277083},
			expected: true,
		},
		{
			name:     "zero value is unset",
			coord:    Coord{},
			expected: false,
		},
		{
			name:     "latitude out of range",
			coord:    Coord{Lat: 91, Lng: 127},
			expected: false,
		},
		{
			name:     "longitude out of range",
			coord:    Coord{Lat: 37, Lng: 181},
			expected: false,
		},
		{
			name:     "negative hemisphere",
			coord:    Coord{Lat: -33.86, Lng: 151.2},
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.coord.Valid())
		})
	}
}

func TestDistanceKm(t *testing.T) {
	gangnam := Coord{Lat: 37.5006249, Lng: 127.0277083}
	cityHall := Coord{Lat: 37.5662952, Lng: 126.9779451}

	d := DistanceKm(gangnam, cityHall)

	// Gangnam Station to Seoul City Hall is roughly 8.4km as the crow flies
	assert.InDelta(t, 8.4, d, 0.5)
	assert.Zero(t, DistanceKm(gangnam, gangnam))
}

func TestDefaultAnchor(t *testing.T) {
	a := DefaultAnchor()
	assert.True(t, a.Valid())
	assert.InDelta(t, 37.5006249, a.Lat, 1e-9)
	assert.InDelta(t, 127.0277083, a.Lng, 1e-9)
}

func TestValidSource(t *testing.T) {
	assert.True(t, ValidSource(SourceGPS))
	assert.True(t, ValidSource(SourceManual))
	assert.True(t, ValidSource(SourceDefault))
	assert.False(t, ValidSource(Source("wifi")))
}
