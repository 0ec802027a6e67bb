// Package engine derives the currently visible subset of a fixed
// communication catalog from facet, timeframe, search and sort state.
//
// A Catalog owns the record collection, its search index and the tables
// derived from it (unique facet values, parsed dates); it is immutable and
// shared. An Engine is one UI session's mutable view state over a catalog:
// every state change synchronously recomputes the filtered result set.
package engine

import (
	"time"

	"github.com/commdeck/commdeck/pkg/core"
	"github.com/commdeck/commdeck/pkg/dates"
	"github.com/commdeck/commdeck/pkg/index"
)

// Catalog holds a fixed, ordered collection of comms together with its
// search index and precomputed facet/date tables. Build one catalog per
// loaded dataset and create an Engine per session on top of it.
type Catalog struct {
	comms       []*core.Comm
	index       *index.Index
	facetNames  []string
	facetValues map[string][]string
	parsed      map[*core.Comm]parsedDate
}

type parsedDate struct {
	t  time.Time
	ok bool
}

// NewCatalog builds a catalog over the given comms. The slice is not copied;
// callers must not mutate it afterwards. indexSummaries enables the
// secondary summary search index.
func NewCatalog(comms []*core.Comm, indexSummaries bool) *Catalog {
	c := &Catalog{
		comms:       comms,
		index:       index.New(comms, indexSummaries),
		facetValues: make(map[string][]string),
		parsed:      make(map[*core.Comm]parsedDate, len(comms)),
	}

	seen := make(map[string]map[string]bool)
	for _, comm := range comms {
		t, ok := dates.ParseCanonical(comm.Date())
		c.parsed[comm] = parsedDate{t: t, ok: ok}

		for _, name := range comm.FacetNames() {
			values, known := seen[name]
			if !known {
				values = make(map[string]bool)
				seen[name] = values
				c.facetNames = append(c.facetNames, name)
			}
			fv, _ := comm.Facet(name)
			for _, v := range fv.Values() {
				if !values[v] {
					values[v] = true
					c.facetValues[name] = append(c.facetValues[name], v)
				}
			}
		}
	}
	return c
}

// Comms returns the full record collection in source order.
func (c *Catalog) Comms() []*core.Comm { return c.comms }

// Index returns the catalog's search index.
func (c *Catalog) Index() *index.Index { return c.index }

// Size returns the number of comms in the catalog.
func (c *Catalog) Size() int { return len(c.comms) }

// FacetNames returns every facet name carried by at least one comm, in
// first-seen order.
func (c *Catalog) FacetNames() []string {
	return append([]string(nil), c.facetNames...)
}

// UniqueValues returns the distinct values of the named facet across all
// comms, flattening list-valued facets, in first-seen order. Unknown facet
// names yield an empty slice.
func (c *Catalog) UniqueValues(facet string) []string {
	return append([]string(nil), c.facetValues[facet]...)
}

// HasFacet reports whether any comm carries the named facet.
func (c *Catalog) HasFacet(name string) bool {
	_, ok := c.facetValues[name]
	return ok
}

// dateOf returns the comm's parsed canonical date; ok is false for
// unparsable dates.
func (c *Catalog) dateOf(comm *core.Comm) (time.Time, bool) {
	p := c.parsed[comm]
	return p.t, p.ok
}
