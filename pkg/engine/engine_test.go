package engine

import (
	"reflect"
	"testing"
	"time"

	"github.com/commdeck/commdeck/pkg/core"
)

// testNow anchors all relative timeframe windows in these tests.
var testNow = time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)

func clock() Option {
	return WithClock(func() time.Time { return testNow })
}

func scalar(name, value string) core.Facet {
	return core.Facet{Name: name, Value: core.Scalar(value)}
}

func list(name string, values ...string) core.Facet {
	return core.Facet{Name: name, Value: core.List(values...)}
}

func testCatalog() *Catalog {
	comms := []*core.Comm{
		core.New("a", "Firmware Update 2.1", "", "2025-06-12",
			scalar("category", "update"), list("regions", "us", "eu")),
		core.New("b", "Valve Recall Notice", "", "2025-05-20",
			scalar("category", "recall"), list("regions", "us")),
		core.New("c", "Firmware Installation Guide", "", "2025-02-01",
			scalar("category", "update"), list("regions", "eu")),
		core.New("d", "Warranty Policy Update", "", "2024-03-01",
			scalar("category", "recall"), list("regions", "apac")),
		core.New("e", "Holiday Hours", "", "to be announced",
			scalar("category", "update")),
		core.New("f", "Upcoming Maintenance Window", "", "2025-12-01"),
	}
	return NewCatalog(comms, false)
}

func resultIDs(e *Engine) []string {
	var out []string
	for _, c := range e.FilteredData() {
		out = append(out, c.ID())
	}
	return out
}

func TestDefaultSession(t *testing.T) {
	sess := testCatalog().NewSession(clock())

	if sess.SortOrder() != SortNewest || sess.Timeframe() != AllTime {
		t.Fatalf("unexpected defaults: sort=%v timeframe=%v", sess.SortOrder(), sess.Timeframe())
	}

	// Newest first, unparsable date last.
	want := []string{"f", "a", "b", "c", "d", "e"}
	if got := resultIDs(sess); !reflect.DeepEqual(got, want) {
		t.Errorf("default result = %v, want %v", got, want)
	}
}

func TestSortOldestKeepsInvalidDatesLast(t *testing.T) {
	sess := testCatalog().NewSession(clock())
	sess.SetSortOrder(SortOldest)

	want := []string{"d", "c", "b", "a", "f", "e"}
	if got := resultIDs(sess); !reflect.DeepEqual(got, want) {
		t.Errorf("oldest result = %v, want %v", got, want)
	}
}

func TestSortStability(t *testing.T) {
	comms := []*core.Comm{
		core.New("first", "A", "", "2025-03-01"),
		core.New("second", "B", "", "2025-03-01"),
		core.New("third", "C", "", "2025-03-01"),
	}
	sess := NewCatalog(comms, false).NewSession(clock())

	want := []string{"first", "second", "third"}
	if got := resultIDs(sess); !reflect.DeepEqual(got, want) {
		t.Errorf("equal dates reordered: %v", got)
	}
	sess.SetSortOrder(SortOldest)
	if got := resultIDs(sess); !reflect.DeepEqual(got, want) {
		t.Errorf("equal dates reordered under oldest: %v", got)
	}
}

func TestUnknownSortOrderIgnored(t *testing.T) {
	sess := testCatalog().NewSession(clock())
	sess.SetSortOrder("sideways")
	if sess.SortOrder() != SortNewest {
		t.Errorf("sort order changed to %v", sess.SortOrder())
	}
}

func TestFacetFilterORWithinFacet(t *testing.T) {
	sess := testCatalog().NewSession(clock())
	sess.UpdateFilter("category", "update", true)

	if got := resultIDs(sess); !reflect.DeepEqual(got, []string{"a", "c", "e"}) {
		t.Fatalf("single value = %v, want [a c e]", got)
	}

	// Second value of the same facet widens the result.
	sess.UpdateFilter("category", "recall", true)
	if got := resultIDs(sess); !reflect.DeepEqual(got, []string{"a", "b", "c", "d", "e"}) {
		t.Errorf("two values = %v, want [a b c d e]", got)
	}
}

func TestFacetFilterANDAcrossFacets(t *testing.T) {
	sess := testCatalog().NewSession(clock())
	sess.UpdateFilter("category", "update", true)
	sess.UpdateFilter("regions", "eu", true)

	// Comms without the facet never match it.
	if got := resultIDs(sess); !reflect.DeepEqual(got, []string{"a", "c"}) {
		t.Errorf("intersection = %v, want [a c]", got)
	}
}

func TestUnknownFacetIsNoOp(t *testing.T) {
	sess := testCatalog().NewSession(clock())
	before := resultIDs(sess)

	sess.UpdateFilter("nonexistent", "x", true)
	if got := resultIDs(sess); !reflect.DeepEqual(got, before) {
		t.Errorf("result changed: %v", got)
	}
	if filters := sess.ActiveFilters(); len(filters) != 0 {
		t.Errorf("unknown facet recorded as active: %v", filters)
	}
}

func TestRemoveFilter(t *testing.T) {
	sess := testCatalog().NewSession(clock())
	sess.UpdateFilter("category", "update", true)
	sess.UpdateFilter("category", "recall", true)

	sess.RemoveFilter("category", "recall")
	if got := resultIDs(sess); !reflect.DeepEqual(got, []string{"a", "c", "e"}) {
		t.Errorf("after removal = %v, want [a c e]", got)
	}

	// Removing an absent value changes nothing.
	sess.RemoveFilter("category", "never-selected")
	if got := sess.Selected("category"); !reflect.DeepEqual(got, []string{"update"}) {
		t.Errorf("selection = %v, want [update]", got)
	}

	sess.RemoveFilter("category", "update")
	if got := resultIDs(sess); !reflect.DeepEqual(got, []string{"f", "a", "b", "c", "d", "e"}) {
		t.Errorf("after clearing = %v, want full set", got)
	}
}

func TestDuplicateSelectionIgnored(t *testing.T) {
	sess := testCatalog().NewSession(clock())
	sess.UpdateFilter("category", "update", true)
	sess.UpdateFilter("category", "update", true)

	if got := sess.Selected("category"); !reflect.DeepEqual(got, []string{"update"}) {
		t.Errorf("selection = %v, want [update]", got)
	}
}

func TestSearchComposesWithFilters(t *testing.T) {
	sess := testCatalog().NewSession(clock())
	sess.UpdateSearch("firmware")

	if got := resultIDs(sess); !reflect.DeepEqual(got, []string{"a", "c"}) {
		t.Fatalf("search = %v, want [a c]", got)
	}

	sess.UpdateFilter("regions", "us", true)
	if got := resultIDs(sess); !reflect.DeepEqual(got, []string{"a"}) {
		t.Errorf("search+filter = %v, want [a]", got)
	}

	sess.UpdateSearch("")
	if got := resultIDs(sess); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Errorf("cleared search = %v, want [a b]", got)
	}
}

func TestSearchNoMatches(t *testing.T) {
	sess := testCatalog().NewSession(clock())
	sess.UpdateSearch("zzzzz")
	if got := sess.FilteredData(); len(got) != 0 {
		t.Errorf("expected empty result, got %d comms", len(got))
	}
}

func TestTimeframeWindows(t *testing.T) {
	tests := []struct {
		timeframe Timeframe
		want      []string
	}{
		// The future-dated comm "f" stays visible in every window because
		// its own date anchors the window end.
		{LastWeek, []string{"f", "a"}},
		{LastMonth, []string{"f", "a", "b"}},
		{Last6Months, []string{"f", "a", "b", "c"}},
		{LastYear, []string{"f", "a", "b", "c"}},
		{AllTime, []string{"f", "a", "b", "c", "d", "e"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.timeframe), func(t *testing.T) {
			sess := testCatalog().NewSession(clock())
			sess.SetTimeframe(tt.timeframe)
			if got := resultIDs(sess); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTimeframeExcludesUnparsableDates(t *testing.T) {
	sess := testCatalog().NewSession(clock())
	sess.SetTimeframe(LastYear)
	for _, c := range sess.FilteredData() {
		if c.ID() == "e" {
			t.Fatal("comm with unparsable date included in timeframe window")
		}
	}
}

func TestClearTimeframe(t *testing.T) {
	sess := testCatalog().NewSession(clock())
	sess.SetTimeframe(LastWeek)
	sess.ClearTimeframe()

	if sess.Timeframe() != AllTime {
		t.Errorf("timeframe = %v, want All Time", sess.Timeframe())
	}
	if got := resultIDs(sess); len(got) != 6 {
		t.Errorf("expected full result set, got %v", got)
	}
}

func TestUnknownTimeframeIgnored(t *testing.T) {
	sess := testCatalog().NewSession(clock())
	sess.SetTimeframe("Last Decade")
	if sess.Timeframe() != AllTime {
		t.Errorf("timeframe changed to %v", sess.Timeframe())
	}
}

func TestActiveFilters(t *testing.T) {
	sess := testCatalog().NewSession(clock())

	if got := sess.ActiveFilters(); len(got) != 0 {
		t.Fatalf("fresh session has active filters: %v", got)
	}

	sess.UpdateFilter("category", "recall", true)
	sess.UpdateFilter("regions", "us", true)
	sess.SetTimeframe(LastMonth)

	want := []ActiveFilter{
		{Facet: "category", Value: "recall"},
		{Facet: "regions", Value: "us"},
		{Facet: TimeframeFacet, Value: "Last Month"},
	}
	if got := sess.ActiveFilters(); !reflect.DeepEqual(got, want) {
		t.Errorf("ActiveFilters() = %v, want %v", got, want)
	}

	sess.ClearTimeframe()
	if got := sess.ActiveFilters(); len(got) != 2 {
		t.Errorf("timeframe chip survived clearing: %v", got)
	}
}

func TestPaginationCursorResets(t *testing.T) {
	sess := testCatalog().NewSession(clock())

	sess.NextPage()
	sess.NextPage()
	if sess.Page() != 3 {
		t.Fatalf("page = %d, want 3", sess.Page())
	}

	sess.UpdateFilter("category", "update", true)
	if sess.Page() != 1 {
		t.Errorf("page after filter change = %d, want 1", sess.Page())
	}

	sess.ShowAll()
	if !sess.ShowingAll() {
		t.Fatal("ShowAll did not take effect")
	}
	sess.UpdateSearch("firmware")
	if sess.ShowingAll() {
		t.Error("show-all survived a search change")
	}

	sess.NextPage()
	sess.SetSortOrder(SortOldest)
	if sess.Page() != 1 {
		t.Errorf("page after sort change = %d, want 1", sess.Page())
	}

	sess.NextPage()
	sess.SetTimeframe(LastYear)
	if sess.Page() != 1 {
		t.Errorf("page after timeframe change = %d, want 1", sess.Page())
	}
}

func TestCatalogFacetTables(t *testing.T) {
	catalog := testCatalog()

	if got := catalog.FacetNames(); !reflect.DeepEqual(got, []string{"category", "regions"}) {
		t.Errorf("FacetNames() = %v, want [category regions]", got)
	}

	// First-seen order, list values flattened.
	if got := catalog.UniqueValues("regions"); !reflect.DeepEqual(got, []string{"us", "eu", "apac"}) {
		t.Errorf("UniqueValues(regions) = %v, want [us eu apac]", got)
	}

	if got := catalog.UniqueValues("nonexistent"); len(got) != 0 {
		t.Errorf("UniqueValues(nonexistent) = %v, want none", got)
	}
	if catalog.HasFacet("nonexistent") || !catalog.HasFacet("category") {
		t.Error("HasFacet misreports")
	}
}

func TestEmptyCatalog(t *testing.T) {
	sess := NewCatalog(nil, false).NewSession(clock())

	if got := sess.FilteredData(); len(got) != 0 {
		t.Errorf("expected empty result, got %v", got)
	}
	sess.UpdateSearch("anything")
	sess.SetTimeframe(LastWeek)
	if got := sess.FilteredData(); len(got) != 0 {
		t.Errorf("expected empty result after mutations, got %v", got)
	}
}
