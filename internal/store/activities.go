package store

import (
	"database/sql"
	"fmt"
	"time"

	"runlog/internal/model"
)

// dateLayout is how activity dates are stored. RFC3339 without a zone keeps
// the local-naive start time sortable as text.
const dateLayout = "2006-01-02T15:04:05"

// UpsertActivity inserts or updates an activity for the given owner
func (db *DB) UpsertActivity(ownerID string, a *model.Activity) error {
	_, err := db.Exec(`
		INSERT INTO activities (
			owner_id, id, date, name, type, distance_km,
			elapsed_time, moving_time, elevation_gain,
			avg_heart_rate, max_heart_rate, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(owner_id, id) DO UPDATE SET
			date = excluded.date,
			name = excluded.name,
			type = excluded.type,
			distance_km = excluded.distance_km,
			elapsed_time = excluded.elapsed_time,
			moving_time = excluded.moving_time,
			elevation_gain = excluded.elevation_gain,
			avg_heart_rate = excluded.avg_heart_rate,
			max_heart_rate = excluded.max_heart_rate,
			updated_at = CURRENT_TIMESTAMP
	`,
		ownerID, a.ID, a.Date.Format(dateLayout), a.Name, a.Type, a.DistanceKm,
		a.ElapsedTime, a.MovingTime, a.ElevationGain,
		a.AvgHeartRate, a.MaxHeartRate,
	)
	return err
}

// GetActivity retrieves a single activity by its natural key
func (db *DB) GetActivity(ownerID, id string) (*model.Activity, error) {
	row := db.QueryRow(`
		SELECT id, date, name, type, distance_km,
			elapsed_time, moving_time, elevation_gain,
			avg_heart_rate, max_heart_rate
		FROM activities
		WHERE owner_id = ? AND id = ?
	`, ownerID, id)

	a, err := scanActivity(row)
	if err == sql.ErrNoRows {
		return nil, ErrActivityNotFound
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}

// ListActivities returns all of an owner's activities ordered by date ascending
func (db *DB) ListActivities(ownerID string) ([]model.Activity, error) {
	return db.queryActivities(`
		SELECT id, date, name, type, distance_km,
			elapsed_time, moving_time, elevation_gain,
			avg_heart_rate, max_heart_rate
		FROM activities
		WHERE owner_id = ?
		ORDER BY date ASC
	`, ownerID)
}

// ListActivitiesInRange returns an owner's activities with date in [from, to],
// ordered by date ascending. A zero bound is unbounded on that side.
func (db *DB) ListActivitiesInRange(ownerID string, from, to time.Time) ([]model.Activity, error) {
	query := `
		SELECT id, date, name, type, distance_km,
			elapsed_time, moving_time, elevation_gain,
			avg_heart_rate, max_heart_rate
		FROM activities
		WHERE owner_id = ?`
	args := []any{ownerID}

	if !from.IsZero() {
		query += ` AND date >= ?`
		args = append(args, from.Format(dateLayout))
	}
	if !to.IsZero() {
		query += ` AND date <= ?`
		args = append(args, to.Format(dateLayout))
	}
	query += ` ORDER BY date ASC`

	return db.queryActivities(query, args...)
}

// ListRecentActivities returns the owner's newest activities, newest first
func (db *DB) ListRecentActivities(ownerID string, limit int) ([]model.Activity, error) {
	return db.queryActivities(`
		SELECT id, date, name, type, distance_km,
			elapsed_time, moving_time, elevation_gain,
			avg_heart_rate, max_heart_rate
		FROM activities
		WHERE owner_id = ?
		ORDER BY date DESC
		LIMIT ?
	`, ownerID, limit)
}

// CountActivities returns the number of stored activities for an owner
func (db *DB) CountActivities(ownerID string) (int, error) {
	var n int
	err := db.QueryRow(`SELECT COUNT(*) FROM activities WHERE owner_id = ?`, ownerID).Scan(&n)
	return n, err
}

// DeleteActivity removes an activity
func (db *DB) DeleteActivity(ownerID, id string) error {
	result, err := db.Exec(`DELETE FROM activities WHERE owner_id = ? AND id = ?`, ownerID, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrActivityNotFound
	}
	return nil
}

func (db *DB) queryActivities(query string, args ...any) ([]model.Activity, error) {
	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var acts []model.Activity
	for rows.Next() {
		a, err := scanActivity(rows)
		if err != nil {
			return nil, err
		}
		acts = append(acts, *a)
	}
	return acts, rows.Err()
}

// scanner abstracts *sql.Row and *sql.Rows for scanActivity
type scanner interface {
	Scan(dest ...any) error
}

func scanActivity(s scanner) (*model.Activity, error) {
	var a model.Activity
	var date string
	var avgHR, maxHR *int64

	err := s.Scan(
		&a.ID, &date, &a.Name, &a.Type, &a.DistanceKm,
		&a.ElapsedTime, &a.MovingTime, &a.ElevationGain,
		&avgHR, &maxHR,
	)
	if err != nil {
		return nil, err
	}

	a.Date, err = time.ParseInLocation(dateLayout, date, time.Local)
	if err != nil {
		return nil, fmt.Errorf("parsing stored date %q: %w", date, err)
	}

	if avgHR != nil {
		v := int(*avgHR)
		a.AvgHeartRate = &v
	}
	if maxHR != nil {
		v := int(*maxHR)
		a.MaxHeartRate = &v
	}

	return &a, nil
}
