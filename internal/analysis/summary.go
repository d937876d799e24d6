package analysis

import (
	"sort"

	"runlog/internal/model"
)

// TypeDistance is one entry of a per-type distance breakdown.
type TypeDistance struct {
	Type string
	Km   float64
}

// Summary holds the derived statistics for a filtered activity set.
// It is recomputed from scratch on every query and never persisted.
type Summary struct {
	TotalKm         float64
	TotalActivities int
	AvgPerWeek      float64 // TotalKm / WeekCount, 0 when no weeks
	AvgPerActivity  float64 // TotalKm / TotalActivities, 0 when no activities
	WeekCount       int
	MaxWeek         *WeekBucket    // week with greatest TotalKm; ties go to the earlier week; nil when empty
	TypeBreakdown   []TypeDistance // first-encounter order
}

// CalculateStats reduces an activity set and its week buckets into a Summary.
func CalculateStats(acts []model.Activity, weeks []WeekBucket) Summary {
	s := Summary{
		TotalActivities: len(acts),
		WeekCount:       len(weeks),
	}

	typeIndex := make(map[string]int)
	for _, a := range acts {
		s.TotalKm += a.DistanceKm
		i, ok := typeIndex[a.Type]
		if !ok {
			i = len(s.TypeBreakdown)
			typeIndex[a.Type] = i
			s.TypeBreakdown = append(s.TypeBreakdown, TypeDistance{Type: a.Type})
		}
		s.TypeBreakdown[i].Km += a.DistanceKm
	}

	if s.WeekCount > 0 {
		s.AvgPerWeek = s.TotalKm / float64(s.WeekCount)
	}
	if s.TotalActivities > 0 {
		s.AvgPerActivity = s.TotalKm / float64(s.TotalActivities)
	}

	for i := range weeks {
		if s.MaxWeek == nil || weeks[i].TotalKm > s.MaxWeek.TotalKm {
			s.MaxWeek = &weeks[i]
		}
	}

	return s
}

// SortedByKm returns the breakdown in descending-distance order, leaving the
// original first-encounter order untouched.
func SortedByKm(breakdown []TypeDistance) []TypeDistance {
	out := make([]TypeDistance, len(breakdown))
	copy(out, breakdown)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Km > out[j].Km
	})
	return out
}
