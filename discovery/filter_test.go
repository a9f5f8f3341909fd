package discovery

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatPtr(v float64) *float64 { return &v }

func TestParseQueryDefaults(t *testing.T) {
	f, err := ParseQuery(url.Values{})
	require.NoError(t, err)
	assert.Equal(t, NewFilterState(), f)
	assert.False(t, f.HasAnchor())
	assert.Equal(t, 5.0, f.MaxDistanceKm)
	assert.Equal(t, 1, f.Page)
}

func TestParseQueryRoundTrip(t *testing.T) {
	f := NewFilterState()
	f.Latitude = floatPtr(37.5006249)
	f.Longitude = floatPtr(127.0277083)
	f.MaxDistanceKm = 3
	f.MinRating = 4
	f.Categories = []string{"한식", "카페"}
	f.Query = "무한리필"
	f.Page = 2

	encoded := f.EncodeQuery(nil)
	parsed, err := ParseQuery(encoded)
	require.NoError(t, err)
	assert.True(t, f.Equal(parsed))
	assert.Equal(t, []string{"한식", "카페"}, parsed.Categories)
	assert.Equal(t, 37.5006249, *parsed.Latitude)
	assert.Equal(t, 2, parsed.Page)
}

func TestParseQueryHalfAnchorRejected(t *testing.T) {
	_, err := ParseQuery(url.Values{"lat": {"37.5"}})
	assert.ErrorIs(t, err, ErrInvalidFilter)
}

func TestParseQueryMalformed(t *testing.T) {
	for name, values := range map[string]url.Values{
		"lat":      {"lat": {"north"}, "lng": {"127.0"}},
		"distance": {"distance": {"near"}},
		"rating":   {"rating": {"many"}},
		"page":     {"page": {"first"}},
	} {
		_, err := ParseQuery(values)
		assert.ErrorIs(t, err, ErrInvalidFilter, name)
	}
}

func TestParseQueryOutOfRange(t *testing.T) {
	_, err := ParseQuery(url.Values{"rating": {"5.5"}})
	assert.ErrorIs(t, err, ErrInvalidFilter)

	_, err = ParseQuery(url.Values{"lat": {"91"}, "lng": {"127"}})
	assert.ErrorIs(t, err, ErrInvalidFilter)

	_, err = ParseQuery(url.Values{"page": {"0"}})
	assert.ErrorIs(t, err, ErrInvalidFilter)
}

func TestEncodeQueryOmitsDefaults(t *testing.T) {
	encoded := NewFilterState().EncodeQuery(nil)
	assert.Empty(t, encoded.Encode())
}

func TestEncodeQueryPreservesForeignParams(t *testing.T) {
	f := NewFilterState()
	f.Query = "고기"

	existing := url.Values{"view": {"map"}, "q": {"stale"}}
	encoded := f.EncodeQuery(existing)
	assert.Equal(t, "map", encoded.Get("view"))
	assert.Equal(t, "고기", encoded.Get("q"))
}

func TestMergeRejectedPatchLeavesStateUntouched(t *testing.T) {
	f := NewFilterState()
	f.MinRating = 3

	bad := FilterPatch{
		MinRating: floatPtr(9),
		Latitude:  floatPtr(37.5),
		Longitude: floatPtr(127.0),
	}
	merged, err := f.merge(bad)
	assert.ErrorIs(t, err, ErrInvalidFilter)
	assert.Equal(t, f, merged)
	assert.False(t, merged.HasAnchor())
	assert.Equal(t, 3.0, merged.MinRating)
}

func TestMergeHalfAnchorRejected(t *testing.T) {
	f := NewFilterState()
	_, err := f.merge(FilterPatch{Latitude: floatPtr(37.5)})
	assert.ErrorIs(t, err, ErrInvalidFilter)
}

func TestMergeClearAnchor(t *testing.T) {
	f := NewFilterState()
	f.Latitude, f.Longitude = floatPtr(37.5), floatPtr(127.0)

	merged, err := f.merge(FilterPatch{ClearAnchor: true})
	require.NoError(t, err)
	assert.False(t, merged.HasAnchor())
}
