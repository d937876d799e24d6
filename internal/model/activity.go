package model

import (
	"sort"
	"time"
)

// FallbackName is used when a source provides no display label for an activity.
const FallbackName = "Unnamed activity"

// Activity is the canonical record every import source normalizes to.
// Instances are never mutated after creation; derived data (week buckets,
// summaries) is always recomputed from fresh copies.
type Activity struct {
	ID            string    // source row ID, or synthesized key for track files
	Date          time.Time // activity start, local-naive
	Name          string
	Type          string  // e.g. "Run", "Ride", "Swim"
	DistanceKm    float64 // always > 0; zero-distance records are dropped at parse time
	ElapsedTime   int     // seconds
	MovingTime    int     // seconds
	ElevationGain float64 // meters, 0 when unknown
	AvgHeartRate  *int    // bpm, nil when the source has no HR data
	MaxHeartRate  *int    // bpm, nil when the source has no HR data
}

// SortByDate sorts activities ascending by start date, in place.
// Same-date entries keep their relative order.
func SortByDate(acts []Activity) {
	sort.SliceStable(acts, func(i, j int) bool {
		return acts[i].Date.Before(acts[j].Date)
	})
}

// Merge combines stored activities with newly imported ones, deduplicating
// by ID. An incoming activity replaces a stored one with the same ID.
// The result is sorted ascending by date.
func Merge(existing, incoming []Activity) []Activity {
	merged := make([]Activity, 0, len(existing)+len(incoming))
	replaced := make(map[string]int, len(existing))

	for _, a := range existing {
		replaced[a.ID] = len(merged)
		merged = append(merged, a)
	}
	for _, a := range incoming {
		if i, ok := replaced[a.ID]; ok {
			merged[i] = a
			continue
		}
		replaced[a.ID] = len(merged)
		merged = append(merged, a)
	}

	SortByDate(merged)
	return merged
}

// FilterRange returns the activities whose date falls within [from, to].
// A zero from or to leaves that side unbounded. Relative order is preserved.
func FilterRange(acts []Activity, from, to time.Time) []Activity {
	var out []Activity
	for _, a := range acts {
		if !from.IsZero() && a.Date.Before(from) {
			continue
		}
		if !to.IsZero() && a.Date.After(to) {
			continue
		}
		out = append(out, a)
	}
	return out
}
