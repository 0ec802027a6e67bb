package core

import (
	"encoding/json"
	"fmt"
	"sort"
)

// Comm represents a single product communication: a bulletin, update,
// guide or announcement rendered as one card in the catalog.
//
// Comms are the fundamental data structure in Commdeck. Each comm carries a
// title (always indexed for search), an optional summary (indexed only when
// summary indexing is enabled), a raw date string in one of several human
// formats, and zero or more facet properties used for filtering.
//
// Key design principles:
//   - Immutable: once constructed, a comm is never modified. The collection a
//     catalog is built from is fixed for the catalog's lifetime.
//   - Identity-keyed: the filtering and indexing layers deduplicate comms by
//     pointer identity, never by value comparison.
//   - Tolerant: malformed dates and missing optional fields are carried
//     as-is and handled gracefully downstream, never rejected here.
type Comm struct {
	id         string
	title      string
	summary    string
	date       string
	facets     map[string]FacetValue
	facetNames []string
}

// New creates a comm with the given identity and card fields. Facet
// properties are attached in the order given; facet names must be unique.
func New(id, title, summary, date string, facets ...Facet) *Comm {
	c := &Comm{
		id:      id,
		title:   title,
		summary: summary,
		date:    date,
		facets:  make(map[string]FacetValue, len(facets)),
	}
	for _, f := range facets {
		if _, dup := c.facets[f.Name]; dup {
			continue
		}
		c.facets[f.Name] = f.Value
		c.facetNames = append(c.facetNames, f.Name)
	}
	return c
}

// Facet pairs a facet name with its value for ordered construction.
type Facet struct {
	Name  string
	Value FacetValue
}

// ID returns the unique identifier for this comm.
func (c *Comm) ID() string { return c.id }

// Title returns the card title. Titles are always indexed for search.
func (c *Comm) Title() string { return c.title }

// Summary returns the optional card summary, empty when absent.
func (c *Comm) Summary() string { return c.summary }

// Date returns the raw date string as it appeared in the source data.
// Use pkg/dates to obtain a canonical, comparable form.
func (c *Comm) Date() string { return c.date }

// Facet returns the value of the named facet property and whether the
// comm carries that facet at all.
func (c *Comm) Facet(name string) (FacetValue, bool) {
	v, ok := c.facets[name]
	return v, ok
}

// FacetNames returns the names of the facet properties this comm carries,
// in construction order.
func (c *Comm) FacetNames() []string {
	return append([]string(nil), c.facetNames...)
}

// WithID returns a copy of the comm with the given identifier. Used by the
// source loader to assign identifiers to comms that arrive without one.
func (c *Comm) WithID(id string) *Comm {
	dup := *c
	dup.id = id
	return &dup
}

// reservedKeys are the card fields of the JSON object form; every other
// key is a candidate facet property.
var reservedKeys = map[string]bool{
	"id":      true,
	"title":   true,
	"summary": true,
	"date":    true,
}

// UnmarshalJSON decodes a comm from its JSON object form. Reserved keys
// (id, title, summary, date) populate the card fields; every remaining key
// whose value is a string or an array of strings becomes a facet property.
// Facet keys are attached in lexical order so decoding is deterministic.
func (c *Comm) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decoding communication: %w", err)
	}

	decoded := &Comm{facets: make(map[string]FacetValue)}
	str := func(key string) (string, error) {
		msg, ok := raw[key]
		if !ok {
			return "", nil
		}
		var s string
		if err := json.Unmarshal(msg, &s); err != nil {
			return "", fmt.Errorf("decoding %q: %w", key, err)
		}
		return s, nil
	}

	var err error
	if decoded.id, err = str("id"); err != nil {
		return err
	}
	if decoded.title, err = str("title"); err != nil {
		return err
	}
	if decoded.summary, err = str("summary"); err != nil {
		return err
	}
	if decoded.date, err = str("date"); err != nil {
		return err
	}

	keys := make([]string, 0, len(raw))
	for key := range raw {
		if !reservedKeys[key] {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)

	for _, key := range keys {
		var fv FacetValue
		if err := json.Unmarshal(raw[key], &fv); err != nil {
			// Non-facet-shaped values (numbers, objects) are not an error,
			// they just aren't filterable.
			continue
		}
		decoded.facets[key] = fv
		decoded.facetNames = append(decoded.facetNames, key)
	}

	*c = *decoded
	return nil
}

// MarshalJSON encodes the comm back into its source JSON object form.
func (c *Comm) MarshalJSON() ([]byte, error) {
	obj := make(map[string]any, len(c.facets)+4)
	if c.id != "" {
		obj["id"] = c.id
	}
	obj["title"] = c.title
	if c.summary != "" {
		obj["summary"] = c.summary
	}
	obj["date"] = c.date
	for name, value := range c.facets {
		obj[name] = value
	}
	return json.Marshal(obj)
}
