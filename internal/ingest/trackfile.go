package ingest

import (
	"encoding/xml"
	"errors"
	"fmt"
	"math"
	"path/filepath"
	"strings"
	"time"

	"runlog/internal/model"
)

// Track-file parse failures. A single bad upload must not crash a batch
// import, so these are returned, never panicked.
var (
	ErrNoTracks           = errors.New("no tracks found in file")
	ErrInsufficientPoints = errors.New("track has fewer than two points")
	ErrInvalidFormat      = errors.New("invalid track file format")
)

type gpxFile struct {
	XMLName xml.Name   `xml:"gpx"`
	Tracks  []gpxTrack `xml:"trk"`
}

type gpxTrack struct {
	Name     string       `xml:"name"`
	Segments []gpxSegment `xml:"trkseg"`
}

type gpxSegment struct {
	Points []gpxPoint `xml:"trkpt"`
}

type gpxPoint struct {
	Lat       float64  `xml:"lat,attr"`
	Lon       float64  `xml:"lon,attr"`
	Elevation *float64 `xml:"ele"`
	Time      string   `xml:"time"`
}

// ParseTrackFile parses a single-track GPS file into one canonical activity.
// Only the first track is used; its segments are flattened in document order.
// Exactly one of activity and error is returned.
func ParseTrackFile(text, fileName string) (*model.Activity, error) {
	var doc gpxFile
	if err := xml.Unmarshal([]byte(text), &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}

	if len(doc.Tracks) == 0 {
		return nil, ErrNoTracks
	}
	track := doc.Tracks[0]

	var points []gpxPoint
	for _, seg := range track.Segments {
		points = append(points, seg.Points...)
	}
	if len(points) < 2 {
		return nil, ErrInsufficientPoints
	}

	start := pointTime(points[0])
	end := pointTime(points[len(points)-1])

	elapsed := int(end.Sub(start).Seconds())
	if elapsed < 0 {
		elapsed = 0
	}

	var meters, gain float64
	for i := 1; i < len(points); i++ {
		prev, cur := points[i-1], points[i]
		meters += haversineMeters(prev.Lat, prev.Lon, cur.Lat, cur.Lon)
		if prev.Elevation != nil && cur.Elevation != nil {
			if delta := *cur.Elevation - *prev.Elevation; delta > 0 {
				gain += delta
			}
		}
	}

	name := strings.TrimSpace(track.Name)
	if name == "" {
		name = strings.TrimSuffix(fileName, filepath.Ext(fileName))
	}
	if name == "" {
		name = model.FallbackName
	}

	return &model.Activity{
		ID:            trackFileID(start, fileName),
		Date:          start,
		Name:          name,
		Type:          "Run",
		DistanceKm:    meters / 1000,
		ElapsedTime:   elapsed,
		MovingTime:    elapsed, // the format carries no stop-detection signal
		ElevationGain: gain,
	}, nil
}

// pointTime returns the point's timestamp, falling back to the current
// processing time when the track carries none. Best effort: a missing
// timestamp is common in hand-edited files and is not a hard failure.
func pointTime(p gpxPoint) time.Time {
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05"} {
		if t, err := time.Parse(layout, p.Time); err == nil {
			return t
		}
	}
	return time.Now()
}

// trackFileID synthesizes a stable natural key from the start timestamp and
// the file name, so re-importing the same file upserts instead of duplicating.
func trackFileID(start time.Time, fileName string) string {
	var b strings.Builder
	for _, r := range fileName {
		if r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return fmt.Sprintf("%d-%s", start.Unix(), b.String())
}

// haversineMeters computes the great-circle distance between two coordinates.
func haversineMeters(lat1, lon1, lat2, lon2 float64) float64 {
	const earthRadius = 6371000 // meters

	if lat1 == lat2 && lon1 == lon2 {
		return 0
	}

	lat1Rad := lat1 * math.Pi / 180
	lat2Rad := lat2 * math.Pi / 180
	deltaLat := (lat2 - lat1) * math.Pi / 180
	deltaLon := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(deltaLat/2)*math.Sin(deltaLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*
			math.Sin(deltaLon/2)*math.Sin(deltaLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadius * c
}
