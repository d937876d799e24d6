package ingest

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"runlog/internal/model"
)

// ColumnMap describes where each logical field lives in a bulk export file.
// ID, date, name and type columns move around between export revisions but
// keep recognizable header text, so they are located by substring match.
// The numeric columns keep their position even when headers are renamed or
// localized, so they are addressed by fixed index.
type ColumnMap struct {
	IDHeader   string
	DateHeader string
	NameHeader string
	TypeHeader string

	Distance      int // meters
	ElapsedTime   int // seconds
	MovingTime    int // seconds
	ElevationGain int // meters
	MaxHeartRate  int // bpm
	AvgHeartRate  int // bpm
}

// DefaultColumnMap matches the current bulk-export layout.
func DefaultColumnMap() ColumnMap {
	return ColumnMap{
		IDHeader:   "Activity ID",
		DateHeader: "Activity Date",
		NameHeader: "Activity Name",
		TypeHeader: "Activity Type",

		ElapsedTime:   15,
		MovingTime:    16,
		Distance:      17,
		ElevationGain: 20,
		MaxHeartRate:  30,
		AvgHeartRate:  31,
	}
}

// TabularOptions controls how a bulk export is ingested.
type TabularOptions struct {
	// Types restricts ingestion to rows whose type column exactly matches
	// one of the given labels. Nil or empty ingests every activity type.
	Types []string

	// Columns overrides the column layout. Nil uses DefaultColumnMap.
	Columns *ColumnMap
}

// ParseTabular parses a bulk activity export into canonical activities.
// Malformed rows are skipped, never surfaced: export files routinely carry
// trailer rows and schema drift, and failing hard would make the importer
// unusable. Empty input and header-only input both yield an empty slice.
// The result is sorted ascending by date.
func ParseTabular(text string, opts TabularOptions) []model.Activity {
	cols := DefaultColumnMap()
	if opts.Columns != nil {
		cols = *opts.Columns
	}

	records := splitRecords(text)
	if len(records) == 0 {
		return nil
	}

	header := records[0]
	idCol := findColumn(header, cols.IDHeader)
	dateCol := findColumn(header, cols.DateHeader)
	nameCol := findColumn(header, cols.NameHeader)
	typeCol := findColumn(header, cols.TypeHeader)
	if idCol < 0 || dateCol < 0 {
		return nil
	}

	typeFilter := make(map[string]bool, len(opts.Types))
	for _, t := range opts.Types {
		typeFilter[t] = true
	}

	var acts []model.Activity
	for _, rec := range records[1:] {
		id := strings.TrimSpace(fieldAt(rec, idCol))
		if !isDigits(id) {
			continue
		}

		typ := strings.TrimSpace(fieldAt(rec, typeCol))
		if len(typeFilter) > 0 && !typeFilter[typ] {
			continue
		}

		distanceKm := parseFloat(fieldAt(rec, cols.Distance)) / 1000
		if distanceKm <= 0 {
			continue
		}

		date, ok := parseExportDate(strings.TrimSpace(fieldAt(rec, dateCol)))
		if !ok {
			continue
		}

		name := strings.TrimSpace(fieldAt(rec, nameCol))
		if name == "" {
			name = model.FallbackName
		}

		elevation := parseFloat(fieldAt(rec, cols.ElevationGain))
		if elevation < 0 {
			elevation = 0
		}

		acts = append(acts, model.Activity{
			ID:            id,
			Date:          date,
			Name:          name,
			Type:          typ,
			DistanceKm:    distanceKm,
			ElapsedTime:   parseSeconds(fieldAt(rec, cols.ElapsedTime)),
			MovingTime:    parseSeconds(fieldAt(rec, cols.MovingTime)),
			ElevationGain: elevation,
			AvgHeartRate:  parseHeartRate(fieldAt(rec, cols.AvgHeartRate)),
			MaxHeartRate:  parseHeartRate(fieldAt(rec, cols.MaxHeartRate)),
		})
	}

	model.SortByDate(acts)
	return acts
}

// splitRecords scans raw export text into records of fields. A quote toggles
// the in-quotes state; separators and line breaks inside quotes are literal
// field content, so a quoted field may span multiple lines. A \r directly
// before a record-ending \n is collapsed. Records of zero or one field are
// discarded, which guards against stray blank lines.
func splitRecords(text string) [][]string {
	var records [][]string
	var fields []string
	var field strings.Builder
	inQuotes := false

	endField := func() {
		fields = append(fields, field.String())
		field.Reset()
	}
	endRecord := func() {
		fields = append(fields, strings.TrimSuffix(field.String(), "\r"))
		field.Reset()
		if len(fields) > 1 {
			records = append(records, fields)
		}
		fields = nil
	}

	for i := 0; i < len(text); i++ {
		switch c := text[i]; {
		case c == '"':
			inQuotes = !inQuotes
		case c == ',' && !inQuotes:
			endField()
		case c == '\n' && !inQuotes:
			endRecord()
		default:
			field.WriteByte(c)
		}
	}
	if field.Len() > 0 || len(fields) > 0 {
		endRecord()
	}

	return records
}

// findColumn locates a header column by case-insensitive substring match.
func findColumn(header []string, want string) int {
	if want == "" {
		return -1
	}
	want = strings.ToLower(want)
	for i, h := range header {
		if strings.Contains(strings.ToLower(h), want) {
			return i
		}
	}
	return -1
}

func fieldAt(rec []string, i int) string {
	if i < 0 || i >= len(rec) {
		return ""
	}
	return rec[i]
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func parseFloat(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return v
}

func parseSeconds(s string) int {
	v := parseFloat(s)
	if v < 0 {
		return 0
	}
	return int(v)
}

func parseHeartRate(s string) *int {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || v <= 0 {
		return nil
	}
	hr := int(v + 0.5)
	return &hr
}

// exportDatePattern matches the export's date format: day, English month
// abbreviation (three letters, or "Sept"), four-digit year, then an optional
// comma and an H:MM or H:MM:SS time, e.g. "4 Sept 2023, 18:04:32".
var exportDatePattern = regexp.MustCompile(
	`^(\d{1,2}) ([A-Za-z]{3,4})\.? (\d{4}),? (\d{1,2}):(\d{2})(?::(\d{2}))?`)

var monthsByAbbrev = map[string]time.Month{
	"jan": time.January, "feb": time.February, "mar": time.March,
	"apr": time.April, "may": time.May, "jun": time.June,
	"jul": time.July, "aug": time.August, "sep": time.September,
	"sept": time.September, "oct": time.October, "nov": time.November,
	"dec": time.December,
}

// fallbackDateLayouts are tried when the fixed pattern does not match.
var fallbackDateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"Jan 2, 2006, 3:04:05 PM",
	"2006-01-02",
}

func parseExportDate(s string) (time.Time, bool) {
	if m := exportDatePattern.FindStringSubmatch(s); m != nil {
		month, ok := monthsByAbbrev[strings.ToLower(m[2])]
		if ok {
			day, _ := strconv.Atoi(m[1])
			year, _ := strconv.Atoi(m[3])
			hour, _ := strconv.Atoi(m[4])
			minute, _ := strconv.Atoi(m[5])
			second := 0
			if m[6] != "" {
				second, _ = strconv.Atoi(m[6])
			}
			return time.Date(year, month, day, hour, minute, second, 0, time.Local), true
		}
	}

	for _, layout := range fallbackDateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
