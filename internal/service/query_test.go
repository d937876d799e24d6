package service

import (
	"math"
	"testing"
	"time"

	"runlog/internal/config"
	"runlog/internal/model"
	"runlog/internal/store"
)

func newTestQueryService(t *testing.T, weekStartDay string) (*QueryService, *store.DB) {
	t.Helper()
	db, err := store.OpenMemory()
	if err != nil {
		t.Fatalf("opening db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	cfg := config.DefaultConfig()
	if weekStartDay != "" {
		cfg.Week.StartDay = weekStartDay
	}
	return NewQueryService(db, &cfg), db
}

func storeActivity(t *testing.T, db *store.DB, id string, date time.Time, km float64) {
	t.Helper()
	a := &model.Activity{ID: id, Date: date, Name: "Run " + id, Type: "Run", DistanceKm: km, ElapsedTime: 1800, MovingTime: 1800}
	if err := db.UpsertActivity("local", a); err != nil {
		t.Fatalf("storing %s: %v", id, err)
	}
}

func TestBuildReport(t *testing.T) {
	svc, db := newTestQueryService(t, "")

	// Two activities in consecutive Monday weeks
	storeActivity(t, db, "1", time.Date(2024, time.January, 1, 9, 0, 0, 0, time.Local), 5)
	storeActivity(t, db, "2", time.Date(2024, time.January, 8, 9, 0, 0, 0, time.Local), 7)
	// One outside the queried range
	storeActivity(t, db, "3", time.Date(2023, time.June, 1, 9, 0, 0, 0, time.Local), 99)

	from := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.Local)
	report, err := svc.BuildReport(from, time.Time{})
	if err != nil {
		t.Fatalf("BuildReport: %v", err)
	}

	if len(report.Activities) != 2 {
		t.Fatalf("got %d activities, want 2", len(report.Activities))
	}
	if len(report.Weeks) != 2 {
		t.Fatalf("got %d weeks, want 2", len(report.Weeks))
	}
	if math.Abs(report.Summary.TotalKm-12) > 1e-9 {
		t.Errorf("TotalKm = %v, want 12", report.Summary.TotalKm)
	}
	if math.Abs(report.Summary.AvgPerWeek-6) > 1e-9 {
		t.Errorf("AvgPerWeek = %v, want 6", report.Summary.AvgPerWeek)
	}
	if report.Summary.MaxWeek == nil || math.Abs(report.Summary.MaxWeek.TotalKm-7) > 1e-9 {
		t.Errorf("MaxWeek = %+v, want the 7 km week", report.Summary.MaxWeek)
	}
}

func TestBuildReportRecomputesFresh(t *testing.T) {
	svc, db := newTestQueryService(t, "")

	storeActivity(t, db, "1", time.Date(2024, time.January, 1, 9, 0, 0, 0, time.Local), 5)

	first, err := svc.BuildReport(time.Time{}, time.Time{})
	if err != nil {
		t.Fatalf("first report: %v", err)
	}
	if first.Summary.TotalActivities != 1 {
		t.Fatalf("first TotalActivities = %d, want 1", first.Summary.TotalActivities)
	}

	// A second import shows up on the next query without any invalidation step
	storeActivity(t, db, "2", time.Date(2024, time.January, 2, 9, 0, 0, 0, time.Local), 3)

	second, err := svc.BuildReport(time.Time{}, time.Time{})
	if err != nil {
		t.Fatalf("second report: %v", err)
	}
	if second.Summary.TotalActivities != 2 {
		t.Errorf("second TotalActivities = %d, want 2", second.Summary.TotalActivities)
	}
}

func TestBuildReportWeekStartConfig(t *testing.T) {
	// Sunday 2024-01-07 and Monday 2024-01-08 land in the same bucket only
	// with a Sunday week start
	sun := time.Date(2024, time.January, 7, 9, 0, 0, 0, time.Local)
	mon := time.Date(2024, time.January, 8, 9, 0, 0, 0, time.Local)

	mondaySvc, db := newTestQueryService(t, "Monday")
	storeActivity(t, db, "1", sun, 5)
	storeActivity(t, db, "2", mon, 7)

	report, err := mondaySvc.BuildReport(time.Time{}, time.Time{})
	if err != nil {
		t.Fatalf("monday report: %v", err)
	}
	if len(report.Weeks) != 2 {
		t.Errorf("monday start: got %d weeks, want 2", len(report.Weeks))
	}

	sundaySvc, db2 := newTestQueryService(t, "Sunday")
	storeActivity(t, db2, "1", sun, 5)
	storeActivity(t, db2, "2", mon, 7)

	report, err = sundaySvc.BuildReport(time.Time{}, time.Time{})
	if err != nil {
		t.Fatalf("sunday report: %v", err)
	}
	if len(report.Weeks) != 1 {
		t.Errorf("sunday start: got %d weeks, want 1", len(report.Weeks))
	}
}

func TestRecentActivities(t *testing.T) {
	svc, db := newTestQueryService(t, "")
	base := time.Date(2024, time.May, 1, 8, 0, 0, 0, time.Local)

	for i, id := range []string{"1", "2", "3"} {
		storeActivity(t, db, id, base.AddDate(0, 0, i), 5)
	}

	recent, err := svc.RecentActivities(2)
	if err != nil {
		t.Fatalf("RecentActivities: %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("got %d activities, want 2", len(recent))
	}
	if recent[0].ID != "3" {
		t.Errorf("recent[0].ID = %q, want newest first", recent[0].ID)
	}

	n, err := svc.TotalCount()
	if err != nil {
		t.Fatalf("TotalCount: %v", err)
	}
	if n != 3 {
		t.Errorf("TotalCount = %d, want 3", n)
	}
}
