// CLAUDE:SUMMARY Adaptive roll-range discovery: sequential USN probing with consecutive-failure cutoff and hard roll cap.
// Package scan discovers the populated roll-number range for a
// department/year batch.
//
// The portal has no listing endpoint, so the only way to find the
// batch is to probe USNs sequentially from roll 1 and infer the end of
// the population from an uninterrupted run of failures. A hard roll
// cap bounds the scan against a misbehaving portal. Gaps shorter than
// the cutoff are tolerated; a batch whose numbering does not start at
// roll 1 accumulates leading failures and is a known gap of the
// heuristic.
package scan

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/hazyhaar/bulletin/fetch"
	"github.com/hazyhaar/bulletin/sheet"
	"github.com/hazyhaar/bulletin/usn"
)

// ErrNoRecords is returned when an entire scan yields zero complete
// records. It is the only fatal condition in the pipeline.
var ErrNoRecords = errors.New("scan: no complete records found")

// Fetcher probes the portal for one seat number.
type Fetcher interface {
	Fetch(ctx context.Context, seat string) fetch.Outcome
}

// Extractor recovers (name, score) from result-sheet bytes.
type Extractor func(data []byte) sheet.Result

// Record is one successfully extracted student result. Immutable once
// appended to a Batch.
type Record struct {
	USN  string  `json:"usn"`
	Name string  `json:"name"`
	SGPA float64 `json:"sgpa"`
}

// Batch is the outcome of one discovery run. Records are ordered by
// ascending roll number; RollsChecked is the last roll actually probed.
type Batch struct {
	Dept         string
	Year         string
	DelaySeconds float64
	Records      []Record
	RollsChecked int
}

// Config configures the scanner.
type Config struct {
	// FailureThreshold is the number of consecutive failed rolls that
	// signals the end of the populated range. Default: 20.
	FailureThreshold int `yaml:"failure_threshold"`
	// MaxRoll is the hard safety cap; the scan never probes past it.
	// Default: 500.
	MaxRoll int `yaml:"max_roll"`
	// Workers bounds concurrent probes. Default: 1 (strictly
	// sequential, which is what the portal is known to tolerate).
	Workers int `yaml:"workers"`
}

func (c *Config) defaults() {
	if c.FailureThreshold <= 0 {
		c.FailureThreshold = 20
	}
	if c.MaxRoll <= 0 {
		c.MaxRoll = 500
	}
	if c.Workers <= 0 {
		c.Workers = 1
	}
}

// Scanner drives discovery runs. Safe for concurrent use; all per-run
// state lives in Run.
type Scanner struct {
	fetcher Fetcher
	extract Extractor
	config  Config
	logger  *slog.Logger
}

// New creates a Scanner using the given fetcher and the default sheet
// extractor.
func New(f Fetcher, cfg Config, logger *slog.Logger) *Scanner {
	cfg.defaults()
	if logger == nil {
		logger = slog.Default()
	}
	return &Scanner{
		fetcher: f,
		extract: sheet.Extract,
		config:  cfg,
		logger:  logger,
	}
}

// Run scans the batch for dept/year, honouring delay between probe
// starts. Returns ErrNoRecords when nothing complete was found.
func (s *Scanner) Run(ctx context.Context, dept, year string, delay time.Duration) (*Batch, error) {
	dept = strings.ToUpper(dept)
	batch := &Batch{
		Dept:         dept,
		Year:         year,
		DelaySeconds: delay.Seconds(),
	}

	gate := newGate(delay)
	failures := 0
	stopped := false

	// Probes issue in batches of Workers but outcomes are evaluated
	// strictly in roll order, so the cutoff sees the same sequence a
	// sequential scan would. A batch in flight when the cutoff fires
	// is discarded past the firing roll.
	for start := 1; start <= s.config.MaxRoll && !stopped; start += s.config.Workers {
		n := s.config.Workers
		if rem := s.config.MaxRoll - start + 1; n > rem {
			n = rem
		}

		results := make([]sheet.Result, n)
		g, gctx := errgroup.WithContext(ctx)
		for i := 0; i < n; i++ {
			roll := start + i
			g.Go(func() error {
				if err := gate.wait(gctx); err != nil {
					return err
				}
				results[roll-start] = s.probe(gctx, usn.Format(year, dept, roll))
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}

		for i := 0; i < n; i++ {
			roll := start + i
			res := results[i]
			if res.Status == sheet.Complete {
				batch.Records = append(batch.Records, Record{
					USN:  usn.Format(year, dept, roll),
					Name: res.Name,
					SGPA: res.SGPA,
				})
				failures = 0
				s.logger.Debug("roll found", "usn", usn.Format(year, dept, roll), "sgpa", res.SGPA)
			} else {
				failures++
				if failures >= s.config.FailureThreshold {
					batch.RollsChecked = roll
					stopped = true
					break
				}
			}
			batch.RollsChecked = roll
		}
	}

	if len(batch.Records) == 0 {
		return nil, fmt.Errorf("%w (dept %s, year %s)", ErrNoRecords, dept, year)
	}

	s.logger.Info("scan finished",
		"dept", dept,
		"year", year,
		"records", len(batch.Records),
		"rolls_checked", batch.RollsChecked)

	return batch, nil
}

// probe resolves one roll: fetch, then extract only on a PDF body.
// Fetch misses never reach the extractor and count as plain failures.
func (s *Scanner) probe(ctx context.Context, seat string) sheet.Result {
	out := s.fetcher.Fetch(ctx, seat)
	if out.Status != fetch.StatusOK {
		if out.Status == fetch.StatusTransportError {
			s.logger.Debug("probe transport error", "usn", seat, "reason", out.Reason)
		}
		return sheet.Result{Status: sheet.Unparseable, Name: sheet.NameNotFound}
	}
	return s.extract(out.Body)
}

// gate spaces probe starts by a fixed interval, shared across workers.
// A zero or negative interval disables it entirely.
type gate struct {
	mu       sync.Mutex
	interval time.Duration
	nextAt   time.Time
}

func newGate(interval time.Duration) *gate {
	return &gate{interval: interval}
}

// wait blocks until this caller's slot opens, or the context ends.
func (g *gate) wait(ctx context.Context) error {
	if g.interval <= 0 {
		return ctx.Err()
	}

	g.mu.Lock()
	now := time.Now()
	at := g.nextAt
	if at.Before(now) {
		at = now
	}
	g.nextAt = at.Add(g.interval)
	g.mu.Unlock()

	d := time.Until(at)
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
