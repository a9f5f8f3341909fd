package discovery

import (
	"context"
	"log"

	"github.com/refill-spot/site/config"
	"github.com/refill-spot/site/storeapi"
)

// Executor issues one query against the store backend. *storeapi.Client is
// the production implementation; tests substitute fakes.
type Executor interface {
	Execute(ctx context.Context, q storeapi.Query) (storeapi.Outcome, error)
}

// Degradation records which filters were dropped to obtain a result, so the
// UI can tell the user what they are looking at.
type Degradation int

const (
	// DegradationNone: the result matches the full filter state.
	DegradationNone Degradation = iota
	// DegradationNoLocation: location filters were dropped, the rest kept.
	DegradationNoLocation
	// DegradationUnfiltered: the result is the plain unfiltered list.
	DegradationUnfiltered
)

func (d Degradation) String() string {
	switch d {
	case DegradationNoLocation:
		return "no-location"
	case DegradationUnfiltered:
		return "unfiltered"
	default:
		return "none"
	}
}

// Result is a query outcome plus how degraded it is.
type Result struct {
	storeapi.Outcome
	Degradation Degradation
}

// Runner escalates a failing query through at most three attempts: the full
// filter state, then the state without location filters, then the unfiltered
// list. An empty result set is a valid outcome and is never retried.
type Runner struct {
	exec  Executor
	limit int
}

// NewRunner creates a Runner issuing queries through exec.
func NewRunner(exec Executor) *Runner {
	return &Runner{exec: exec, limit: config.SearchPageSize}
}

// buildQuery translates a FilterState into backend query parameters.
func (r *Runner) buildQuery(f FilterState) storeapi.Query {
	q := storeapi.Query{
		Categories: f.Categories,
		MinRating:  f.MinRating,
		Text:       f.Query,
		Page:       f.Page,
		Limit:      r.limit,
	}
	if f.HasAnchor() {
		q.Lat, q.Lng = f.Latitude, f.Longitude
		q.RadiusKm = f.MaxDistanceKm
	}
	return q
}

// Run executes one search intent through the escalation ladder.
func (r *Runner) Run(ctx context.Context, f FilterState) (Result, error) {
	if err := f.Validate(); err != nil {
		return Result{}, err
	}

	// Attempt 1: the filter state as given.
	out, err := r.exec.Execute(ctx, r.buildQuery(f))
	if err == nil {
		return Result{Outcome: out, Degradation: DegradationNone}, nil
	}
	log.Printf("[discovery] attempt 1 failed: %v", err)

	// Attempt 2: drop location filters, keep the rest. Only meaningful when
	// the original state filtered by location.
	if f.HasAnchor() {
		stripped := f
		stripped.Latitude, stripped.Longitude = nil, nil
		stripped.MaxDistanceKm = config.DefaultRadiusKm
		out, err = r.exec.Execute(ctx, r.buildQuery(stripped))
		if err == nil {
			return Result{Outcome: out, Degradation: DegradationNoLocation}, nil
		}
		log.Printf("[discovery] attempt 2 failed: %v", err)
	}

	// Attempt 3: the unfiltered list. Terminal; a failure here propagates.
	out, err = r.exec.Execute(ctx, storeapi.Query{Page: f.Page, Limit: r.limit})
	if err != nil {
		log.Printf("[discovery] terminal failure: %v", err)
		return Result{}, err
	}
	return Result{Outcome: out, Degradation: DegradationUnfiltered}, nil
}
