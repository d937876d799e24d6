package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"runlog/internal/config"
	"runlog/internal/ingest"
	"runlog/internal/store"
)

// exportCSV is a minimal bulk export: header plus one Run and one Ride.
// Numeric columns sit at the fixed indices of the default layout.
var exportCSV = func() string {
	line := func(fields [32]string) string {
		return strings.Join(fields[:], ",")
	}
	row := func(id, date, name, typ, dist string) string {
		return line([32]string{0: id, 1: date, 2: name, 3: typ, 15: "1800", 16: "1750", 17: dist, 20: "10"})
	}
	return line([32]string{0: "Activity ID", 1: "Activity Date", 2: "Activity Name", 3: "Activity Type"}) + "\n" +
		row("1001", "\"1 Jan 2024, 9:30:00\"", "Morning Run", "Run", "5000") + "\n" +
		row("1002", "\"2 Jan 2024, 18:00:00\"", "Evening Ride", "Ride", "20000") + "\n"
}()

const trackGPX = `<gpx version="1.1" creator="test"><trk><name>Trail</name><trkseg>
<trkpt lat="0.0" lon="0.0"><time>2024-03-01T08:00:00Z</time></trkpt>
<trkpt lat="0.008993" lon="0.0"><time>2024-03-01T08:10:00Z</time></trkpt>
</trkseg></trk></gpx>`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
	return path
}

func newTestImportService(t *testing.T, types []string) (*ImportService, *store.DB) {
	t.Helper()
	db, err := store.OpenMemory()
	if err != nil {
		t.Fatalf("opening db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	cfg := config.DefaultConfig()
	cfg.Import.ActivityTypes = types
	return NewImportService(db, &cfg), db
}

func TestImportFileCSV(t *testing.T) {
	svc, db := newTestImportService(t, nil)
	path := writeFile(t, t.TempDir(), "export.csv", exportCSV)

	n, err := svc.ImportFile(path)
	if err != nil {
		t.Fatalf("ImportFile: %v", err)
	}
	if n != 2 {
		t.Errorf("imported %d activities, want 2", n)
	}

	count, err := db.CountActivities("local")
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 2 {
		t.Errorf("stored %d activities, want 2", count)
	}
}

func TestImportFileCSVWithTypeFilter(t *testing.T) {
	svc, db := newTestImportService(t, []string{"Run"})
	path := writeFile(t, t.TempDir(), "export.csv", exportCSV)

	n, err := svc.ImportFile(path)
	if err != nil {
		t.Fatalf("ImportFile: %v", err)
	}
	if n != 1 {
		t.Errorf("imported %d activities, want 1 (Ride filtered out)", n)
	}

	got, err := db.GetActivity("local", "1001")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Type != "Run" {
		t.Errorf("Type = %q, want %q", got.Type, "Run")
	}
}

func TestImportFileGPX(t *testing.T) {
	svc, db := newTestImportService(t, nil)
	path := writeFile(t, t.TempDir(), "trail.gpx", trackGPX)

	n, err := svc.ImportFile(path)
	if err != nil {
		t.Fatalf("ImportFile: %v", err)
	}
	if n != 1 {
		t.Errorf("imported %d activities, want 1", n)
	}

	count, _ := db.CountActivities("local")
	if count != 1 {
		t.Errorf("stored %d activities, want 1", count)
	}
}

func TestImportFileReimportIsIdempotent(t *testing.T) {
	svc, db := newTestImportService(t, nil)
	path := writeFile(t, t.TempDir(), "trail.gpx", trackGPX)

	for i := 0; i < 2; i++ {
		if _, err := svc.ImportFile(path); err != nil {
			t.Fatalf("import %d: %v", i+1, err)
		}
	}

	count, _ := db.CountActivities("local")
	if count != 1 {
		t.Errorf("stored %d activities after re-import, want 1", count)
	}
}

func TestImportFileUnsupported(t *testing.T) {
	svc, _ := newTestImportService(t, nil)
	path := writeFile(t, t.TempDir(), "notes.txt", "hello")

	_, err := svc.ImportFile(path)
	if !errors.Is(err, ErrUnsupportedFile) {
		t.Errorf("error = %v, want ErrUnsupportedFile", err)
	}
}

func TestImportAllContinuesPastBadFiles(t *testing.T) {
	svc, db := newTestImportService(t, nil)
	dir := t.TempDir()
	bad := writeFile(t, dir, "broken.gpx", "<gpx><trk>")
	good := writeFile(t, dir, "trail.gpx", trackGPX)

	progress := make(chan ImportProgress, 8)
	result, err := svc.ImportAll(context.Background(), []string{bad, good}, progress)
	if err != nil {
		t.Fatalf("ImportAll: %v", err)
	}

	if result.FilesProcessed != 2 {
		t.Errorf("FilesProcessed = %d, want 2", result.FilesProcessed)
	}
	if result.Imported != 1 {
		t.Errorf("Imported = %d, want 1", result.Imported)
	}
	if len(result.Errors) != 1 {
		t.Errorf("got %d errors, want 1", len(result.Errors))
	}
	if !errors.Is(result.Errors[0], ingest.ErrInvalidFormat) {
		t.Errorf("error = %v, want ErrInvalidFormat", result.Errors[0])
	}

	var updates int
	for range progress {
		updates++
	}
	if updates != 2 {
		t.Errorf("got %d progress updates, want 2", updates)
	}

	count, _ := db.CountActivities("local")
	if count != 1 {
		t.Errorf("stored %d activities, want 1", count)
	}
}
