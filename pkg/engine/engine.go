package engine

import (
	"sort"
	"strings"
	"time"

	"github.com/commdeck/commdeck/pkg/core"
)

// SortOrder selects the date ordering of the result set.
type SortOrder string

const (
	SortNewest SortOrder = "newest"
	SortOldest SortOrder = "oldest"
)

// ActiveFilter describes one active selection, for rendering removable
// filter chips. Timeframe selections appear under the facet name
// "timeframe".
type ActiveFilter struct {
	Facet string `json:"facet"`
	Value string `json:"value"`
}

// TimeframeFacet is the facet name under which an active timeframe is
// reported by ActiveFilters.
const TimeframeFacet = "timeframe"

// Engine holds one session's filter, search, timeframe, sort and pagination
// state over a shared catalog and recomputes the visible result set on every
// state change.
//
// An engine is exclusively owned by a single session and must not be used
// concurrently. State mutations run to completion synchronously; each call
// fully supersedes prior state, so callers may invoke them at any rate.
type Engine struct {
	catalog *Catalog

	selected   map[string][]string
	facetOrder []string
	searchTerm string
	sortOrder  SortOrder
	timeframe  Timeframe

	filtered []*core.Comm

	page    int
	showAll bool

	now func() time.Time
}

// Option configures an Engine at construction time.
type Option func(*Engine)

// WithClock overrides the engine's notion of "now", used when evaluating
// relative timeframe windows. Tests use this for deterministic windows.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// NewSession creates an engine over the catalog with default state: no
// facet selections, empty search, All Time, newest first, page 1.
func (c *Catalog) NewSession(opts ...Option) *Engine {
	e := &Engine{
		catalog:   c,
		selected:  make(map[string][]string),
		sortOrder: SortNewest,
		timeframe: AllTime,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.recompute()
	return e
}

// UniqueValues returns the distinct values of the named facet across the
// full catalog, in first-seen order.
func (e *Engine) UniqueValues(facet string) []string {
	return e.catalog.UniqueValues(facet)
}

// UpdateFilter adds value to the facet's selected set when active is true
// (ignoring duplicates) and removes it when false (ignoring absent values).
// Facet names no comm carries are a no-op. Recomputes the result set.
func (e *Engine) UpdateFilter(facet, value string, active bool) {
	if !e.catalog.HasFacet(facet) {
		return
	}
	if active {
		e.addSelection(facet, value)
	} else {
		e.removeSelection(facet, value)
	}
	e.recompute()
}

// RemoveFilter removes value from the facet's selected set; the inverse of
// an active UpdateFilter, exposed for filter chip removal.
func (e *Engine) RemoveFilter(facet, value string) {
	e.UpdateFilter(facet, value, false)
}

// UpdateSearch replaces the search term; an empty term clears search.
// Recomputes the result set.
func (e *Engine) UpdateSearch(term string) {
	e.searchTerm = term
	e.recompute()
}

// SetSortOrder switches between newest-first and oldest-first ordering.
// Unknown orders are ignored. Recomputes the result set.
func (e *Engine) SetSortOrder(order SortOrder) {
	if order != SortNewest && order != SortOldest {
		return
	}
	e.sortOrder = order
	e.recompute()
}

// SortOrder returns the current sort order.
func (e *Engine) SortOrder() SortOrder { return e.sortOrder }

// SetTimeframe selects a relative date window. Labels outside the fixed set
// are ignored. Recomputes the result set.
func (e *Engine) SetTimeframe(tf Timeframe) {
	if !validTimeframe(tf) {
		return
	}
	e.timeframe = tf
	e.recompute()
}

// ClearTimeframe resets the window back to All Time.
func (e *Engine) ClearTimeframe() {
	e.SetTimeframe(AllTime)
}

// Timeframe returns the currently selected window label.
func (e *Engine) Timeframe() Timeframe { return e.timeframe }

// SearchTerm returns the current search term.
func (e *Engine) SearchTerm() string { return e.searchTerm }

// FilteredData returns the current result set. It is a pure accessor: the
// set was computed by the last state mutation and is not recomputed here.
// Callers must not mutate the returned slice.
func (e *Engine) FilteredData() []*core.Comm {
	return e.filtered
}

// ActiveFilters returns every currently active selection as flat
// facet/value pairs, facet values in selection order, with the timeframe
// appended under TimeframeFacet when it is not All Time.
func (e *Engine) ActiveFilters() []ActiveFilter {
	var out []ActiveFilter
	for _, facet := range e.facetOrder {
		for _, v := range e.selected[facet] {
			out = append(out, ActiveFilter{Facet: facet, Value: v})
		}
	}
	if e.timeframe != AllTime {
		out = append(out, ActiveFilter{Facet: TimeframeFacet, Value: string(e.timeframe)})
	}
	return out
}

// Selected returns the selected values for a facet, in selection order.
func (e *Engine) Selected(facet string) []string {
	return append([]string(nil), e.selected[facet]...)
}

func (e *Engine) addSelection(facet, value string) {
	values := e.selected[facet]
	for _, v := range values {
		if v == value {
			return
		}
	}
	if len(values) == 0 {
		e.facetOrder = append(e.facetOrder, facet)
	}
	e.selected[facet] = append(values, value)
}

func (e *Engine) removeSelection(facet, value string) {
	values := e.selected[facet]
	for i, v := range values {
		if v != value {
			continue
		}
		values = append(values[:i], values[i+1:]...)
		if len(values) == 0 {
			delete(e.selected, facet)
			for j, name := range e.facetOrder {
				if name == facet {
					e.facetOrder = append(e.facetOrder[:j], e.facetOrder[j+1:]...)
					break
				}
			}
		} else {
			e.selected[facet] = values
		}
		return
	}
}

// recompute rebuilds the result set from scratch: timeframe window, then
// search, then facet filters (AND across facets, OR within a facet's
// values), then a stable date sort. Pagination resets to page 1.
func (e *Engine) recompute() {
	result := e.catalog.Comms()

	if e.timeframe != AllTime {
		result = e.filterTimeframe(result)
	}

	if term := strings.TrimSpace(e.searchTerm); term != "" {
		matched := make(map[*core.Comm]struct{})
		for _, c := range e.catalog.Index().Search(term) {
			matched[c] = struct{}{}
		}
		var kept []*core.Comm
		for _, c := range result {
			if _, ok := matched[c]; ok {
				kept = append(kept, c)
			}
		}
		result = kept
	}

	for _, facet := range e.facetOrder {
		selected := e.selected[facet]
		if len(selected) == 0 {
			continue
		}
		var kept []*core.Comm
		for _, c := range result {
			if fv, ok := c.Facet(facet); ok && fv.Matches(selected) {
				kept = append(kept, c)
			}
		}
		result = kept
	}

	e.filtered = e.sortByDate(result)
	e.page = 1
	e.showAll = false
}

// filterTimeframe keeps comms whose date falls inside the selected window.
// The window normally ends at "now"; for a comm dated in the future the
// window ends at the comm's own date instead, so forward-dated records stay
// visible under relative timeframes. Comms with unparsable dates are
// excluded while a window is active.
func (e *Engine) filterTimeframe(comms []*core.Comm) []*core.Comm {
	now := e.now()
	var kept []*core.Comm
	for _, c := range comms {
		d, ok := e.catalog.dateOf(c)
		if !ok {
			continue
		}
		ref := now
		if d.After(now) {
			ref = d
		}
		start, windowed := e.timeframe.windowStart(ref)
		if !windowed {
			kept = append(kept, c)
			continue
		}
		if !d.Before(start) && !d.After(ref) {
			kept = append(kept, c)
		}
	}
	return kept
}

// sortByDate returns a stably sorted copy. Comms with unparsable dates sort
// after every valid date in both orders, keeping their relative input order.
func (e *Engine) sortByDate(comms []*core.Comm) []*core.Comm {
	out := append([]*core.Comm(nil), comms...)
	sort.SliceStable(out, func(i, j int) bool {
		di, oki := e.catalog.dateOf(out[i])
		dj, okj := e.catalog.dateOf(out[j])
		if oki != okj {
			return oki
		}
		if !oki {
			return false
		}
		if e.sortOrder == SortOldest {
			return di.Before(dj)
		}
		return dj.Before(di)
	})
	return out
}
