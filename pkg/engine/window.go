package engine

import "github.com/commdeck/commdeck/pkg/core"

// Window slices a result set for display: the full set when showAll is
// true, otherwise the first pageSize*page comms. The "load more" control is
// a growing window over the result, not discrete pages. A non-positive
// pageSize disables windowing.
func Window(comms []*core.Comm, pageSize, page int, showAll bool) []*core.Comm {
	if showAll || pageSize <= 0 {
		return comms
	}
	if page < 1 {
		page = 1
	}
	// page comes from untrusted query parameters; guard the product against
	// overflow before using it as a slice bound.
	n := pageSize * page
	if n/pageSize != page || n >= len(comms) {
		return comms
	}
	return comms[:n]
}

// Page returns the current page of the session's pagination cursor
// (1-based). The cursor is view-only state over the result set and resets
// whenever filter, search, timeframe or sort state changes.
func (e *Engine) Page() int { return e.page }

// ShowingAll reports whether the session is displaying the entire result
// set regardless of page.
func (e *Engine) ShowingAll() bool { return e.showAll }

// NextPage grows the visible window by one page.
func (e *Engine) NextPage() { e.page++ }

// ShowAll expands the visible window to the entire result set.
func (e *Engine) ShowAll() { e.showAll = true }

// Visible returns the slice of the result set the session should display
// for the given page size.
func (e *Engine) Visible(pageSize int) []*core.Comm {
	return Window(e.filtered, pageSize, e.page, e.showAll)
}

// HasMore reports whether comms beyond the current window remain.
func (e *Engine) HasMore(pageSize int) bool {
	return len(e.Visible(pageSize)) < len(e.filtered)
}
