// CLAUDE:SUMMARY Service orchestrator: scan → summarize → assemble, with optional run archiving.
// Package bulletin discovers and aggregates student result sheets from
// a report portal.
//
// The portal publishes one PDF per seat number with no listing
// endpoint. A discovery run probes seat numbers sequentially, extracts
// (name, SGPA) from each sheet, and aggregates the batch into summary
// statistics, rankings, and a score distribution.
package bulletin

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"github.com/hazyhaar/bulletin/fetch"
	"github.com/hazyhaar/bulletin/internal/store"
	"github.com/hazyhaar/bulletin/scan"
	"github.com/hazyhaar/bulletin/stats"
)

// DefaultDelaySeconds spaces probes when the request does not say
// otherwise. The portal has no documented concurrency tolerance.
const DefaultDelaySeconds = 1.0

// Runner abstracts the discovery loop for the service layer.
type Runner interface {
	Run(ctx context.Context, dept, year string, delay time.Duration) (*scan.Batch, error)
}

// ArchivedRun re-exports the store type as public API.
type ArchivedRun = store.Run

// Service orchestrates discovery runs and archives their reports.
type Service struct {
	scanner Runner
	store   *store.Store
	logger  *slog.Logger
	config  *Config
}

// Option customises a Service.
type Option func(*Service)

// WithStore enables run archiving.
func WithStore(st *store.Store) Option {
	return func(s *Service) { s.store = st }
}

// WithRunner replaces the discovery loop (tests, dry runs).
func WithRunner(r Runner) Option {
	return func(s *Service) { s.scanner = r }
}

// New creates a bulletin Service.
func New(cfg *Config, logger *slog.Logger, opts ...Option) *Service {
	if cfg == nil {
		cfg = defaultConfig()
	}
	cfg.defaults()
	if logger == nil {
		logger = slog.Default()
	}

	svc := &Service{logger: logger, config: cfg}
	for _, opt := range opts {
		opt(svc)
	}
	if svc.scanner == nil {
		svc.scanner = scan.New(fetch.New(cfg.Fetch), cfg.Scan, logger)
	}
	return svc
}

// Analyze runs discovery for dept/year and aggregates the batch.
//
// A nil delaySeconds means DefaultDelaySeconds; negative values clamp
// to 0. Returns ErrInvalidInput for a missing dept/year and
// ErrNoRecords when the scan comes back empty.
func (s *Service) Analyze(ctx context.Context, dept, year string, delaySeconds *float64) (*Report, error) {
	dept = strings.TrimSpace(dept)
	year = strings.TrimSpace(year)
	if dept == "" || year == "" {
		return nil, ErrInvalidInput
	}

	delay := DefaultDelaySeconds
	if delaySeconds != nil {
		delay = *delaySeconds
	}
	if delay < 0 {
		delay = 0
	}

	batch, err := s.scanner.Run(ctx, dept, year, time.Duration(delay*float64(time.Second)))
	if err != nil {
		return nil, err
	}

	report := AssembleReport(batch, stats.Summarize(batch.Records))
	s.archive(ctx, report)
	return report, nil
}

// Runs lists archived runs, newest first. Without a store it returns
// an empty list.
func (s *Service) Runs(ctx context.Context, limit int) ([]ArchivedRun, error) {
	if s.store == nil {
		return []ArchivedRun{}, nil
	}
	return s.store.ListRuns(ctx, limit)
}

// archive best-effort persists a finished report. Archive failures are
// logged, never surfaced: the report is already computed.
func (s *Service) archive(ctx context.Context, r *Report) {
	if s.store == nil {
		return
	}
	data, err := json.Marshal(r)
	if err != nil {
		s.logger.Error("archive marshal", "error", err)
		return
	}
	run := &store.Run{
		Dept:          r.Input.Dept,
		Year:          r.Input.Year,
		DelaySeconds:  r.Input.DelaySeconds,
		TotalStudents: r.Summary.TotalStudents,
		RollsChecked:  r.Input.TotalRollsChecked,
		AverageSGPA:   r.Summary.Average,
		ReportJSON:    string(data),
	}
	if err := s.store.SaveRun(ctx, run); err != nil {
		s.logger.Error("archive run", "error", err, "dept", r.Input.Dept, "year", r.Input.Year)
		return
	}
	s.logger.Debug("run archived", "id", run.ID, "dept", run.Dept, "year", run.Year)
}
