// Package metrics persists per-request stats for upstream menu calls and
// exposes process health for the bot's admin report.
package metrics

import (
	"database/sql"
	"time"
)

const (
	insertMetricSQL = `INSERT INTO upstream_metrics (meal_type, status_code, latency_ms, timestamp) VALUES (?, ?, ?, ?)`

	dailyUsageSQL = `SELECT date(timestamp) AS day,
		COUNT(*),
		SUM(CASE WHEN status_code < 200 OR status_code >= 300 THEN 1 ELSE 0 END),
		COALESCE(AVG(latency_ms), 0)
	FROM upstream_metrics
	WHERE timestamp >= ?
	GROUP BY day
	ORDER BY day DESC`
)

// UpstreamMetric records metadata for a single upstream menu request.
// StatusCode 0 means the request never produced a response.
type UpstreamMetric struct {
	MealType   string
	StatusCode int
	LatencyMS  int64
	Timestamp  time.Time
}

// Store handles persistence of metrics to SQLite.
type Store struct {
	db *sql.DB
}

// NewStore initializes the Store with an existing database connection.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Record saves a metric to the database.
func (s *Store) Record(m UpstreamMetric) error {
	ts := m.Timestamp
	if ts.IsZero() {
		ts = time.Now().UTC()
	}

	_, err := s.db.Exec(insertMetricSQL, m.MealType, m.StatusCode, m.LatencyMS, ts)
	return err
}

// DailyUsage represents upstream request totals for a single day.
type DailyUsage struct {
	Date         string
	Requests     int
	Failures     int
	AvgLatencyMS int64
}

// GetDailyUsage retrieves usage for the last N days.
func (s *Store) GetDailyUsage(days int) ([]DailyUsage, error) {
	since := time.Now().UTC().AddDate(0, 0, -days).Format("2006-01-02 15:04:05")
	rows, err := s.db.Query(dailyUsageSQL, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []DailyUsage
	for rows.Next() {
		var u DailyUsage
		var avg float64
		if err := rows.Scan(&u.Date, &u.Requests, &u.Failures, &avg); err != nil {
			return nil, err
		}
		u.AvgLatencyMS = int64(avg)
		results = append(results, u)
	}
	return results, rows.Err()
}
