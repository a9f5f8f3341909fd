package discovery

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/refill-spot/site/store"
	"github.com/refill-spot/site/storeapi"
)

// scriptExec replays a scripted executor: fn sees the 1-based call number
// and the query it was given.
type scriptExec struct {
	calls   int
	queries []storeapi.Query
	fn      func(call int, q storeapi.Query) (storeapi.Outcome, error)
}

func (e *scriptExec) Execute(_ context.Context, q storeapi.Query) (storeapi.Outcome, error) {
	e.calls++
	e.queries = append(e.queries, q)
	return e.fn(e.calls, q)
}

func summaries(start, n int) []store.Summary {
	out := make([]store.Summary, n)
	for i := range out {
		out[i] = store.Summary{
			ID:   start + i,
			Name: fmt.Sprintf("무한리필 %d호점", start+i),
		}
	}
	return out
}

func anchoredFilter() FilterState {
	f := NewFilterState()
	f.Latitude = floatPtr(37.5006249)
	f.Longitude = floatPtr(127.0277083)
	f.MinRating = 4
	f.Categories = []string{"고기"}
	return f
}

func TestRunFirstAttemptSucceeds(t *testing.T) {
	exec := &scriptExec{fn: func(call int, q storeapi.Query) (storeapi.Outcome, error) {
		return storeapi.Outcome{Items: summaries(1, 3), Pagination: storeapi.Pagination{Page: 1, Total: 3}}, nil
	}}

	res, err := NewRunner(exec).Run(context.Background(), anchoredFilter())
	require.NoError(t, err)
	assert.Equal(t, 1, exec.calls)
	assert.Equal(t, DegradationNone, res.Degradation)
	assert.Len(t, res.Items, 3)
}

func TestRunEmptyResultIsNotRetried(t *testing.T) {
	exec := &scriptExec{fn: func(call int, q storeapi.Query) (storeapi.Outcome, error) {
		return storeapi.Outcome{Empty: true, Pagination: storeapi.Pagination{Page: 1}}, nil
	}}

	res, err := NewRunner(exec).Run(context.Background(), anchoredFilter())
	require.NoError(t, err)
	assert.Equal(t, 1, exec.calls)
	assert.True(t, res.Empty)
	assert.Equal(t, DegradationNone, res.Degradation)
}

func TestRunDropsLocationOnFailure(t *testing.T) {
	exec := &scriptExec{fn: func(call int, q storeapi.Query) (storeapi.Outcome, error) {
		if call == 1 {
			return storeapi.Outcome{}, storeapi.ErrTimeout
		}
		return storeapi.Outcome{Items: summaries(1, 2)}, nil
	}}

	res, err := NewRunner(exec).Run(context.Background(), anchoredFilter())
	require.NoError(t, err)
	assert.Equal(t, 2, exec.calls)
	assert.Equal(t, DegradationNoLocation, res.Degradation)

	// Second attempt keeps every filter except the anchor.
	second := exec.queries[1]
	assert.Nil(t, second.Lat)
	assert.Nil(t, second.Lng)
	assert.Zero(t, second.RadiusKm)
	assert.Equal(t, []string{"고기"}, second.Categories)
	assert.Equal(t, 4.0, second.MinRating)
}

func TestRunEscalatesToUnfiltered(t *testing.T) {
	exec := &scriptExec{fn: func(call int, q storeapi.Query) (storeapi.Outcome, error) {
		if call < 3 {
			return storeapi.Outcome{}, storeapi.ErrServer
		}
		return storeapi.Outcome{Items: summaries(1, 1)}, nil
	}}

	res, err := NewRunner(exec).Run(context.Background(), anchoredFilter())
	require.NoError(t, err)
	assert.Equal(t, 3, exec.calls)
	assert.Equal(t, DegradationUnfiltered, res.Degradation)

	last := exec.queries[2]
	assert.False(t, last.Filtered())
	assert.Equal(t, 1, last.Page)
}

func TestRunThreeAttemptsThenTerminal(t *testing.T) {
	boom := errors.New("backend down")
	exec := &scriptExec{fn: func(call int, q storeapi.Query) (storeapi.Outcome, error) {
		return storeapi.Outcome{}, boom
	}}

	_, err := NewRunner(exec).Run(context.Background(), anchoredFilter())
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 3, exec.calls)
}

func TestRunWithoutAnchorSkipsLocationRung(t *testing.T) {
	exec := &scriptExec{fn: func(call int, q storeapi.Query) (storeapi.Outcome, error) {
		return storeapi.Outcome{}, storeapi.ErrServer
	}}

	f := NewFilterState()
	f.Categories = []string{"일식"}
	_, err := NewRunner(exec).Run(context.Background(), f)
	assert.ErrorIs(t, err, storeapi.ErrServer)
	assert.Equal(t, 2, exec.calls)
}

func TestRunInvalidFilterNeverCalls(t *testing.T) {
	exec := &scriptExec{fn: func(call int, q storeapi.Query) (storeapi.Outcome, error) {
		t.Fatal("executor must not be called")
		return storeapi.Outcome{}, nil
	}}

	f := NewFilterState()
	f.Latitude = floatPtr(37.5)
	_, err := NewRunner(exec).Run(context.Background(), f)
	assert.ErrorIs(t, err, ErrInvalidFilter)
	assert.Zero(t, exec.calls)
}
