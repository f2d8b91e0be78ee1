// CLAUDE:SUMMARY Run-history data layer: archives finished batch reports in SQLite.
// Package store archives finished discovery runs.
//
// The analytics core recomputes everything from scratch on every run;
// this store only keeps the finished reports around so past scans can
// be listed and re-read without hammering the portal again.
package store

import (
	"context"
	"database/sql"
	"time"
)

// Schema creates the runs table. Passed to dbopen.WithSchema by the
// caller that opens the database.
const Schema = `
CREATE TABLE IF NOT EXISTS runs (
	id             INTEGER PRIMARY KEY AUTOINCREMENT,
	dept           TEXT NOT NULL,
	year           TEXT NOT NULL,
	delay_seconds  REAL NOT NULL,
	total_students INTEGER NOT NULL,
	rolls_checked  INTEGER NOT NULL,
	average_sgpa   REAL NOT NULL,
	report_json    TEXT NOT NULL,
	created_at     INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_runs_batch ON runs (dept, year, created_at);
`

// Run is one archived discovery run.
type Run struct {
	ID            int64   `json:"id"`
	Dept          string  `json:"dept"`
	Year          string  `json:"year"`
	DelaySeconds  float64 `json:"delay_seconds"`
	TotalStudents int     `json:"total_students"`
	RollsChecked  int     `json:"rolls_checked"`
	AverageSGPA   float64 `json:"average_sgpa"`
	ReportJSON    string  `json:"-"`
	CreatedAt     int64   `json:"created_at"` // unix millis
}

// Store wraps an already-opened database.
type Store struct {
	DB *sql.DB
}

// New creates a Store from an open connection.
func New(db *sql.DB) *Store {
	return &Store{DB: db}
}

// SaveRun inserts an archived run and fills in its ID and CreatedAt.
func (s *Store) SaveRun(ctx context.Context, r *Run) error {
	r.CreatedAt = time.Now().UnixMilli()
	res, err := s.DB.ExecContext(ctx, `
		INSERT INTO runs (dept, year, delay_seconds, total_students, rolls_checked, average_sgpa, report_json, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		r.Dept, r.Year, r.DelaySeconds, r.TotalStudents, r.RollsChecked, r.AverageSGPA, r.ReportJSON, r.CreatedAt)
	if err != nil {
		return err
	}
	r.ID, err = res.LastInsertId()
	return err
}

// ListRuns returns the most recent runs, newest first. Limit <= 0
// means 50.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.DB.QueryContext(ctx, `
		SELECT id, dept, year, delay_seconds, total_students, rolls_checked, average_sgpa, report_json, created_at
		FROM runs ORDER BY created_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.ID, &r.Dept, &r.Year, &r.DelaySeconds, &r.TotalStudents,
			&r.RollsChecked, &r.AverageSGPA, &r.ReportJSON, &r.CreatedAt); err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// GetRun returns one archived run by ID, or sql.ErrNoRows.
func (s *Store) GetRun(ctx context.Context, id int64) (*Run, error) {
	var r Run
	err := s.DB.QueryRowContext(ctx, `
		SELECT id, dept, year, delay_seconds, total_students, rolls_checked, average_sgpa, report_json, created_at
		FROM runs WHERE id = ?`, id).
		Scan(&r.ID, &r.Dept, &r.Year, &r.DelaySeconds, &r.TotalStudents,
			&r.RollsChecked, &r.AverageSGPA, &r.ReportJSON, &r.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &r, nil
}
