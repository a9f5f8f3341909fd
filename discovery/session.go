package discovery

import (
	"context"
	"errors"
	"net/url"
	"sync"

	"github.com/refill-spot/site/store"
)

// ErrSuperseded means a newer search intent arrived while this one was in
// flight; its result was discarded, not applied.
var ErrSuperseded = errors.New("search intent superseded")

// PageState is the accumulated view of a search: every row fetched so far
// for the current intent, the page cursor and whether the server has more.
type PageState struct {
	CurrentPage int
	HasMore     bool
	Accumulated []store.Summary
}

// Session owns one user's filter and page state. All mutation goes through
// its methods; there is exactly one Session per logical search session, so
// the stale-intent token is the only cross-request ordering rule needed.
type Session struct {
	mu      sync.Mutex
	filters FilterState
	page    PageState
	runner  *Runner
	exec    Executor

	intent      uint64 // bumped per search intent; stale results check it
	fetchIntent uint64 // intent that owns the in-flight fetch, 0 when idle
	degradation Degradation
	lastEncoded string // guard against the update→URL→parse→update loop
}

// NewSession creates a session with default filters.
func NewSession(exec Executor) *Session {
	return &Session{
		filters: NewFilterState(),
		runner:  NewRunner(exec),
		exec:    exec,
	}
}

// Filters returns a copy of the current filter state.
func (s *Session) Filters() FilterState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filters
}

// PageState returns a copy of the accumulated page state.
func (s *Session) PageState() PageState {
	s.mu.Lock()
	defer s.mu.Unlock()
	ps := s.page
	ps.Accumulated = append([]store.Summary(nil), s.page.Accumulated...)
	return ps
}

// Degradation reports how degraded the last applied result was.
func (s *Session) Degradation() Degradation {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.degradation
}

// SetFilters merges a partial update into the filter state. A merge that
// would half-set the anchor pair or leave a field out of range is rejected
// whole; the previous state survives untouched.
func (s *Session) SetFilters(patch FilterPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, err := s.filters.merge(patch)
	if err != nil {
		return err
	}
	s.filters = next
	return nil
}

// ResetFilters clears the filter state back to defaults.
func (s *Session) ResetFilters() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filters = NewFilterState()
}

// ApplyURL applies externally navigated URL parameters (back/forward, shared
// link) to the filter state. Parameters this session just serialized itself
// are ignored, breaking the update→URL→parse→update cycle.
func (s *Session) ApplyURL(values url.Values) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if values.Encode() == s.lastEncoded && s.lastEncoded != "" {
		return nil
	}
	f, err := ParseQuery(values)
	if err != nil {
		return err
	}
	s.filters = f
	return nil
}

// EncodeURL serializes the current filter state over the given parameters
// and remembers the result so ApplyURL can recognize its own output.
func (s *Session) EncodeURL(existing url.Values) url.Values {
	s.mu.Lock()
	defer s.mu.Unlock()
	values := s.filters.EncodeQuery(existing)
	s.lastEncoded = s.filters.EncodeQuery(nil).Encode()
	return values
}

// NewSearch starts a fresh search intent: page 1, empty accumulation. Any
// older in-flight intent is superseded; its result will be discarded when it
// lands. The accumulated list is only replaced once this intent succeeds, so
// a terminal failure leaves the previous view on screen.
func (s *Session) NewSearch(ctx context.Context) (Result, error) {
	s.mu.Lock()
	s.intent++
	token := s.intent
	s.fetchIntent = token
	f := s.filters
	f.Page = 1
	s.filters.Page = 1
	s.mu.Unlock()

	res, err := s.runner.Run(ctx, f)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fetchIntent == token {
		s.fetchIntent = 0
	}
	if token != s.intent {
		return Result{}, ErrSuperseded
	}
	if err != nil {
		return Result{}, err
	}

	s.page = PageState{
		CurrentPage: res.Pagination.Page,
		HasMore:     res.Pagination.HasMore,
		Accumulated: append([]store.Summary(nil), res.Items...),
	}
	s.degradation = res.Degradation
	return res, nil
}

// LoadMore fetches the next page and appends it to the accumulated list.
// It is a no-op when the server has no more rows or a fetch is already in
// flight. A failed fetch changes nothing: the page is simply not merged.
func (s *Session) LoadMore(ctx context.Context) (bool, error) {
	s.mu.Lock()
	if !s.page.HasMore || s.fetchIntent != 0 {
		s.mu.Unlock()
		return false, nil
	}
	token := s.intent
	s.fetchIntent = token
	f := s.filters
	f.Page = s.page.CurrentPage + 1
	q := s.runner.buildQuery(f)
	s.mu.Unlock()

	// Load-more stays on the executor: degrading a later page would splice
	// rows from a different result set under the ones already shown.
	out, err := s.exec.Execute(ctx, q)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fetchIntent == token {
		s.fetchIntent = 0
	}
	if token != s.intent {
		return false, ErrSuperseded
	}
	if err != nil {
		return false, err
	}

	s.page.Accumulated = append(s.page.Accumulated, out.Items...)
	s.page.CurrentPage = out.Pagination.Page
	s.page.HasMore = out.Pagination.HasMore
	s.filters.Page = out.Pagination.Page
	return true, nil
}
