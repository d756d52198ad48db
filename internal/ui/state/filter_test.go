package state

import (
	"reflect"
	"testing"
)

func ids(items []Item) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.ID
	}
	return out
}

func TestSetFilterTracksCursorAndRestoresPosition(t *testing.T) {
	picker := newTestPicker("one", "two", "three")
	picker.Cursor = 2
	picker.SetFilter("two")

	if picker.Filter != "two" {
		t.Fatalf("expected filter persisted, got %q", picker.Filter)
	}
	if picker.Cursor != 0 {
		t.Fatalf("expected filtered cursor at 0, got %d", picker.Cursor)
	}
	if got := ids(picker.Items); !reflect.DeepEqual(got, []string{"two"}) {
		t.Fatalf("expected only 'two', got %v", got)
	}

	picker.SetFilter("")
	if picker.Cursor != 2 {
		t.Fatalf("expected cursor restored to 2, got %d", picker.Cursor)
	}
	if picker.LastCursor != -1 {
		t.Fatalf("expected last cursor reset, got %d", picker.LastCursor)
	}
}

func TestFilterItemsMatchesTitles(t *testing.T) {
	items := []Item{
		{ID: "welcome", Label: "Welcome"},
		{ID: "carousel", Label: "Carousel flow"},
		{ID: "stack", Label: "Stack flow"},
	}
	if got := ids(FilterItems(items, "flow")); !reflect.DeepEqual(got, []string{"carousel", "stack"}) {
		t.Fatalf("expected title matches, got %v", got)
	}
	if got := ids(FilterItems(items, "crsl")); !reflect.DeepEqual(got, []string{"carousel"}) {
		t.Fatalf("expected fuzzy match, got %v", got)
	}
	if got := FilterItems(items, "zzz"); len(got) != 0 {
		t.Fatalf("expected no matches, got %v", ids(got))
	}
	if got := FilterItems(items, "  "); len(got) != len(items) {
		t.Fatalf("expected blank query to keep everything, got %v", ids(got))
	}
}

func TestBestMatchIndexPrefersExactAndPrefix(t *testing.T) {
	items := []Item{{ID: "scale", Label: "Scale"}, {ID: "stack", Label: "Stack"}, {ID: "st", Label: "Short"}}
	if idx := BestMatchIndex(items, "st"); idx != 2 {
		t.Fatalf("expected exact match index 2, got %d", idx)
	}
	if idx := BestMatchIndex(items, "sta"); idx != 1 {
		t.Fatalf("expected prefix match index 1, got %d", idx)
	}
	if idx := BestMatchIndex(nil, "x"); idx != -1 {
		t.Fatalf("expected -1 for no items, got %d", idx)
	}
}

func TestUpdateItemsKeepsFilterAndFocus(t *testing.T) {
	picker := newTestPicker("alpha", "beta")
	picker.SetFilter("a")
	picker.UpdateItems([]Item{{ID: "alpha"}, {ID: "beta"}, {ID: "gamma"}})
	if len(picker.Items) != 3 {
		t.Fatalf("expected filter reapplied over new items, got %v", ids(picker.Items))
	}
	if !picker.Focus("GAMMA") || picker.Cursor != 2 {
		t.Fatalf("expected case-insensitive focus on gamma, got %d", picker.Cursor)
	}
	if picker.Focus("delta") {
		t.Fatalf("expected focus on unknown id to fail")
	}
}
