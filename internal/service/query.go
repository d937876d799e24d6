package service

import (
	"time"

	"runlog/internal/analysis"
	"runlog/internal/config"
	"runlog/internal/model"
	"runlog/internal/store"
)

// QueryService provides read-only report queries for presentation
type QueryService struct {
	db        *store.DB
	owner     string
	weekStart time.Weekday
}

// NewQueryService creates a new query service from the user's config
func NewQueryService(db *store.DB, cfg *config.Config) *QueryService {
	weekStart, err := cfg.WeekStart()
	if err != nil {
		weekStart = time.Monday
	}
	return &QueryService{
		db:        db,
		owner:     cfg.Owner,
		weekStart: weekStart,
	}
}

// Report bundles everything the presentation layer needs for one date range.
// Weeks and Summary are derived fresh on every call; nothing here is cached.
type Report struct {
	From, To   time.Time
	Activities []model.Activity
	Weeks      []analysis.WeekBucket
	Summary    analysis.Summary
}

// BuildReport loads the owner's activities in [from, to] and derives week
// buckets and summary statistics. Zero bounds are unbounded.
func (q *QueryService) BuildReport(from, to time.Time) (*Report, error) {
	acts, err := q.db.ListActivitiesInRange(q.owner, from, to)
	if err != nil {
		return nil, err
	}

	weeks := analysis.GroupByWeek(acts, q.weekStart)
	return &Report{
		From:       from,
		To:         to,
		Activities: acts,
		Weeks:      weeks,
		Summary:    analysis.CalculateStats(acts, weeks),
	}, nil
}

// RecentActivities returns the newest stored activities, newest first
func (q *QueryService) RecentActivities(limit int) ([]model.Activity, error) {
	return q.db.ListRecentActivities(q.owner, limit)
}

// TotalCount returns the number of stored activities
func (q *QueryService) TotalCount() (int, error) {
	return q.db.CountActivities(q.owner)
}
