package analysis

import (
	"fmt"
	"sort"
	"time"

	"runlog/internal/model"
)

// WeekBucket aggregates the activities of one calendar week.
type WeekBucket struct {
	WeekStart     time.Time // first configured weekday, 00:00:00.000
	WeekEnd       time.Time // last instant of the week (23:59:59.999)
	WeekLabel     string    // e.g. "6 Jan - 12 Jan '25"
	TotalKm       float64
	Activities    []model.Activity // encounter order during bucketing
	ActivityCount int
}

// GroupByWeek buckets activities into calendar weeks starting on startDay.
// Input order is not assumed; output is sorted ascending by WeekStart, with
// one bucket per week that contains at least one activity. Each bucket's
// Activities preserves the input's relative order among same-week entries.
func GroupByWeek(acts []model.Activity, startDay time.Weekday) []WeekBucket {
	buckets := make(map[time.Time]*WeekBucket)

	for _, a := range acts {
		ws := weekStartOf(a.Date, startDay)
		b, ok := buckets[ws]
		if !ok {
			we := ws.AddDate(0, 0, 7).Add(-time.Millisecond)
			b = &WeekBucket{
				WeekStart: ws,
				WeekEnd:   we,
				WeekLabel: weekLabel(ws, we),
			}
			buckets[ws] = b
		}
		b.TotalKm += a.DistanceKm
		b.Activities = append(b.Activities, a)
		b.ActivityCount++
	}

	out := make([]WeekBucket, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].WeekStart.Before(out[j].WeekStart)
	})
	return out
}

// weekStartOf returns midnight of the most recent startDay at or before t,
// in t's location.
func weekStartOf(t time.Time, startDay time.Weekday) time.Time {
	offset := (int(t.Weekday()) - int(startDay) + 7) % 7
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return day.AddDate(0, 0, -offset)
}

func weekLabel(ws, we time.Time) string {
	return fmt.Sprintf("%s - %s '%s",
		ws.Format("2 Jan"), we.Format("2 Jan"), ws.Format("06"))
}
