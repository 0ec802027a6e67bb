package core

import (
	"encoding/json"
	"fmt"
)

// FacetValue holds the value of one facet property on a comm. A facet is
// either a single scalar value or an ordered list of values; the two shapes
// are matched uniformly, so filtering code never needs to branch on which
// one it is dealing with.
//
// The zero value is an empty scalar and matches nothing.
type FacetValue struct {
	values []string
	isList bool
}

// Scalar creates a single-valued facet value.
func Scalar(v string) FacetValue {
	return FacetValue{values: []string{v}}
}

// List creates a list-valued facet value, preserving element order.
func List(vs ...string) FacetValue {
	return FacetValue{values: append([]string(nil), vs...), isList: true}
}

// IsList reports whether this value was list-shaped in the source data.
func (f FacetValue) IsList() bool { return f.isList }

// Values returns the value(s) as a flat slice: a one-element slice for a
// scalar, the elements in order for a list.
func (f FacetValue) Values() []string {
	return append([]string(nil), f.values...)
}

// Matches reports whether this facet value satisfies a selection: at least
// one of the facet's values must appear among the selected values. For a
// scalar that means the scalar itself must be selected.
func (f FacetValue) Matches(selected []string) bool {
	for _, v := range f.values {
		for _, s := range selected {
			if v == s {
				return true
			}
		}
	}
	return false
}

// UnmarshalJSON accepts either a JSON string or an array of strings.
func (f *FacetValue) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = Scalar(s)
		return nil
	}
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*f = List(list...)
		return nil
	}
	return fmt.Errorf("facet value must be a string or an array of strings")
}

// MarshalJSON writes the value back in its original shape.
func (f FacetValue) MarshalJSON() ([]byte, error) {
	if f.isList {
		return json.Marshal(f.values)
	}
	if len(f.values) == 0 {
		return json.Marshal("")
	}
	return json.Marshal(f.values[0])
}
