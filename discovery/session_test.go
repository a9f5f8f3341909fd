package discovery

import (
	"context"
	"errors"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/refill-spot/site/storeapi"
)

func pageOutcome(page, size, total int) storeapi.Outcome {
	start := (page-1)*size + 1
	return storeapi.Outcome{
		Items:      summaries(start, size),
		Pagination: storeapi.Pagination{Page: page, HasMore: page*size < total, Total: total},
	}
}

func TestNewSearchReplacesAccumulation(t *testing.T) {
	exec := &scriptExec{fn: func(call int, q storeapi.Query) (storeapi.Outcome, error) {
		return pageOutcome(1, 20, 45), nil
	}}
	s := NewSession(exec)

	_, err := s.NewSearch(context.Background())
	require.NoError(t, err)
	_, err = s.NewSearch(context.Background())
	require.NoError(t, err)

	ps := s.PageState()
	assert.Len(t, ps.Accumulated, 20)
	assert.Equal(t, 1, ps.CurrentPage)
	assert.True(t, ps.HasMore)
}

func TestLoadMoreAppendsInOrder(t *testing.T) {
	exec := &scriptExec{fn: func(call int, q storeapi.Query) (storeapi.Outcome, error) {
		page := q.Page
		if page == 0 {
			page = 1
		}
		return pageOutcome(page, 20, 45), nil
	}}
	s := NewSession(exec)

	_, err := s.NewSearch(context.Background())
	require.NoError(t, err)

	loaded, err := s.LoadMore(context.Background())
	require.NoError(t, err)
	assert.True(t, loaded)

	ps := s.PageState()
	require.Len(t, ps.Accumulated, 40)
	assert.Equal(t, 2, ps.CurrentPage)
	assert.True(t, ps.HasMore)

	// Earlier rows keep their positions; the new page lands after them.
	assert.Equal(t, 1, ps.Accumulated[0].ID)
	assert.Equal(t, 20, ps.Accumulated[19].ID)
	assert.Equal(t, 21, ps.Accumulated[20].ID)
	assert.Equal(t, 40, ps.Accumulated[39].ID)
}

func TestLoadMoreStopsAtLastPage(t *testing.T) {
	exec := &scriptExec{fn: func(call int, q storeapi.Query) (storeapi.Outcome, error) {
		page := q.Page
		if page == 0 {
			page = 1
		}
		if page >= 3 {
			return storeapi.Outcome{
				Items:      summaries(41, 5),
				Pagination: storeapi.Pagination{Page: 3, HasMore: false, Total: 45},
			}, nil
		}
		return pageOutcome(page, 20, 45), nil
	}}
	s := NewSession(exec)

	_, err := s.NewSearch(context.Background())
	require.NoError(t, err)
	for i := 0; i < 2; i++ {
		_, err = s.LoadMore(context.Background())
		require.NoError(t, err)
	}

	ps := s.PageState()
	assert.Len(t, ps.Accumulated, 45)
	assert.False(t, ps.HasMore)

	// With nothing left, load-more is a no-op and never hits the backend.
	calls := exec.calls
	loaded, err := s.LoadMore(context.Background())
	require.NoError(t, err)
	assert.False(t, loaded)
	assert.Equal(t, calls, exec.calls)
}

func TestLoadMoreFailureKeepsState(t *testing.T) {
	boom := errors.New("backend down")
	exec := &scriptExec{fn: func(call int, q storeapi.Query) (storeapi.Outcome, error) {
		if call == 1 {
			return pageOutcome(1, 20, 45), nil
		}
		return storeapi.Outcome{}, boom
	}}
	s := NewSession(exec)

	_, err := s.NewSearch(context.Background())
	require.NoError(t, err)

	loaded, err := s.LoadMore(context.Background())
	assert.ErrorIs(t, err, boom)
	assert.False(t, loaded)

	ps := s.PageState()
	assert.Len(t, ps.Accumulated, 20)
	assert.Equal(t, 1, ps.CurrentPage)
	assert.True(t, ps.HasMore)
}

func TestNewSearchFailureKeepsPreviousView(t *testing.T) {
	exec := &scriptExec{fn: func(call int, q storeapi.Query) (storeapi.Outcome, error) {
		if call == 1 {
			return pageOutcome(1, 20, 20), nil
		}
		return storeapi.Outcome{}, storeapi.ErrServer
	}}
	s := NewSession(exec)

	_, err := s.NewSearch(context.Background())
	require.NoError(t, err)

	_, err = s.NewSearch(context.Background())
	assert.ErrorIs(t, err, storeapi.ErrServer)

	ps := s.PageState()
	assert.Len(t, ps.Accumulated, 20, "failed intent must not clear the shown result")
}

func TestStaleSearchResultDiscarded(t *testing.T) {
	var s *Session
	exec := &scriptExec{}
	exec.fn = func(call int, q storeapi.Query) (storeapi.Outcome, error) {
		if call == 1 {
			// A second intent lands while the first is still in flight.
			_, err := s.NewSearch(context.Background())
			require.NoError(t, err)
			return pageOutcome(1, 20, 45), nil
		}
		// The winning intent returns a distinct result set.
		return storeapi.Outcome{
			Items:      summaries(100, 5),
			Pagination: storeapi.Pagination{Page: 1, HasMore: false, Total: 5},
		}, nil
	}
	s = NewSession(exec)

	_, err := s.NewSearch(context.Background())
	assert.ErrorIs(t, err, ErrSuperseded)

	ps := s.PageState()
	require.Len(t, ps.Accumulated, 5)
	assert.Equal(t, 100, ps.Accumulated[0].ID)
}

func TestSetFiltersRejectedLeavesSessionState(t *testing.T) {
	s := NewSession(&scriptExec{fn: func(int, storeapi.Query) (storeapi.Outcome, error) {
		return storeapi.Outcome{}, nil
	}})

	require.NoError(t, s.SetFilters(FilterPatch{MinRating: floatPtr(4)}))
	err := s.SetFilters(FilterPatch{Latitude: floatPtr(37.5)})
	assert.ErrorIs(t, err, ErrInvalidFilter)
	assert.Equal(t, 4.0, s.Filters().MinRating)
	assert.False(t, s.Filters().HasAnchor())
}

func TestApplyURLSkipsOwnSerialization(t *testing.T) {
	s := NewSession(&scriptExec{fn: func(int, storeapi.Query) (storeapi.Outcome, error) {
		return storeapi.Outcome{}, nil
	}})
	require.NoError(t, s.SetFilters(FilterPatch{Query: strPtr("초밥")}))

	encoded := s.EncodeURL(nil)

	// A later local change must survive the echo of our own URL update.
	require.NoError(t, s.SetFilters(FilterPatch{Query: strPtr("삼겹살")}))
	require.NoError(t, s.ApplyURL(encoded))
	assert.Equal(t, "삼겹살", s.Filters().Query)

	// A genuinely external navigation still applies.
	external := url.Values{"q": {"곱창"}}
	require.NoError(t, s.ApplyURL(external))
	assert.Equal(t, "곱창", s.Filters().Query)
}

func strPtr(s string) *string { return &s }
