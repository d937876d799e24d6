package model

import (
	"testing"
	"time"
)

func activityOn(id string, date time.Time) Activity {
	return Activity{ID: id, Date: date, Type: "Run", DistanceKm: 5}
}

func TestSortByDate(t *testing.T) {
	base := time.Date(2024, time.May, 1, 8, 0, 0, 0, time.Local)
	acts := []Activity{
		activityOn("c", base.AddDate(0, 0, 2)),
		activityOn("a", base),
		activityOn("b", base.AddDate(0, 0, 1)),
	}

	SortByDate(acts)

	for i, want := range []string{"a", "b", "c"} {
		if acts[i].ID != want {
			t.Errorf("acts[%d].ID = %q, want %q", i, acts[i].ID, want)
		}
	}
}

func TestMerge(t *testing.T) {
	base := time.Date(2024, time.May, 1, 8, 0, 0, 0, time.Local)
	existing := []Activity{
		activityOn("1", base),
		activityOn("2", base.AddDate(0, 0, 1)),
	}
	updated := activityOn("2", base.AddDate(0, 0, 1))
	updated.Name = "Renamed"
	incoming := []Activity{
		updated,
		activityOn("3", base.AddDate(0, 0, -1)),
	}

	merged := Merge(existing, incoming)
	if len(merged) != 3 {
		t.Fatalf("got %d activities, want 3", len(merged))
	}

	// Sorted ascending: 3 (day before), 1, 2
	if merged[0].ID != "3" || merged[1].ID != "1" || merged[2].ID != "2" {
		t.Errorf("order = %s, %s, %s; want 3, 1, 2", merged[0].ID, merged[1].ID, merged[2].ID)
	}

	// Incoming replaces existing on ID conflict
	if merged[2].Name != "Renamed" {
		t.Errorf("merged[2].Name = %q, want %q", merged[2].Name, "Renamed")
	}
}

func TestFilterRange(t *testing.T) {
	base := time.Date(2024, time.May, 10, 8, 0, 0, 0, time.Local)
	acts := []Activity{
		activityOn("1", base.AddDate(0, 0, -5)),
		activityOn("2", base),
		activityOn("3", base.AddDate(0, 0, 5)),
	}

	tests := []struct {
		name     string
		from, to time.Time
		wantIDs  []string
	}{
		{"both bounds", base.AddDate(0, 0, -1), base.AddDate(0, 0, 1), []string{"2"}},
		{"open start", time.Time{}, base, []string{"1", "2"}},
		{"open end", base, time.Time{}, []string{"2", "3"}},
		{"unbounded", time.Time{}, time.Time{}, []string{"1", "2", "3"}},
		{"inclusive bounds", base, base, []string{"2"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterRange(acts, tt.from, tt.to)
			if len(got) != len(tt.wantIDs) {
				t.Fatalf("got %d activities, want %d", len(got), len(tt.wantIDs))
			}
			for i, id := range tt.wantIDs {
				if got[i].ID != id {
					t.Errorf("got[%d].ID = %q, want %q", i, got[i].ID, id)
				}
			}
		})
	}
}
