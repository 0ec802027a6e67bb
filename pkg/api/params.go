package api

import (
	"net/url"
	"strconv"
	"strings"
)

// FilterSelection is one facet/value pair from a "filter" query parameter.
type FilterSelection struct {
	Facet string
	Value string
}

// ListParams represents all parameters for a list/search request, shared by
// the JSON API and the web UI.
type ListParams struct {
	// Query is the keyword search term; empty means no search filter.
	Query string

	// Filters holds facet selections, each from a repeated
	// "filter=facet:value" parameter.
	Filters []FilterSelection

	// Timeframe is a relative window label ("Last 3 Months", ...).
	// Empty or unknown labels leave the window at All Time.
	Timeframe string

	// Sort is "newest" or "oldest"; anything else keeps the default.
	Sort string

	// Page is the load-more window multiplier (1-based).
	Page int

	// Limit is the page size; 0 means the server default.
	Limit int

	// All disables windowing and returns the full result set.
	All bool
}

// ParseListParams parses HTTP query parameters into ListParams. Parsing is
// lenient the way the UI needs it to be: malformed numbers fall back to
// defaults and filter parameters without a colon are dropped.
//
// Supported parameters:
//   - q: keyword search term
//   - filter: facet selection as "facet:value" (repeatable)
//   - timeframe: relative window label
//   - sort: "newest" or "oldest"
//   - page: positive integer, defaults to 1
//   - limit: positive integer, defaults to the server page size
//   - all: "1" or "true" to disable windowing
func ParseListParams(queryParams url.Values) ListParams {
	params := ListParams{
		Page: 1,
	}

	if q := queryParams["q"]; len(q) > 0 {
		params.Query = q[0]
	}

	for _, raw := range queryParams["filter"] {
		facet, value, ok := strings.Cut(raw, ":")
		if !ok || facet == "" || value == "" {
			continue
		}
		params.Filters = append(params.Filters, FilterSelection{Facet: facet, Value: value})
	}

	if tf := queryParams["timeframe"]; len(tf) > 0 {
		params.Timeframe = tf[0]
	}

	if sorts := queryParams["sort"]; len(sorts) > 0 {
		params.Sort = sorts[0]
	}

	if pageStr := queryParams["page"]; len(pageStr) > 0 && pageStr[0] != "" {
		if parsed, err := strconv.Atoi(pageStr[0]); err == nil && parsed > 0 {
			params.Page = parsed
		}
	}

	if limitStr := queryParams["limit"]; len(limitStr) > 0 && limitStr[0] != "" {
		if parsed, err := strconv.Atoi(limitStr[0]); err == nil && parsed > 0 {
			params.Limit = parsed
		}
	}

	if allStr := queryParams["all"]; len(allStr) > 0 {
		params.All = allStr[0] == "1" || allStr[0] == "true"
	}

	return params
}
