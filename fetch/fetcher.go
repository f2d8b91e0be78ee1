// CLAUDE:SUMMARY HTTP result-sheet fetcher: one GET per USN, classified as OK / not-found / transport error.
// Package fetch retrieves result-sheet PDFs from the report portal.
//
// Every probe is a single GET with a fixed timeout. The portal answers
// a valid USN with an application/pdf body and anything else with an
// error page or a non-200 status — both of which simply mean the seat
// number is absent. Network failures are classified, not propagated:
// a miss is final for that USN in the current pass.
package fetch

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Status classifies the outcome of a single probe.
type Status int

const (
	// StatusOK means the portal returned a PDF body.
	StatusOK Status = iota
	// StatusNotFound means the USN is absent (non-200 or non-PDF answer).
	StatusNotFound
	// StatusTransportError means the request itself failed (timeout,
	// connection error, unreadable body).
	StatusTransportError
)

// Outcome is the result of one probe. Body is set only for StatusOK.
type Outcome struct {
	Status Status
	Body   []byte
	Reason string // diagnostic detail for StatusTransportError
}

// Config configures the fetcher.
type Config struct {
	// BaseURL of the report runner, e.g. "http://host:8080/birt/run".
	BaseURL string `yaml:"base_url"`
	// ReportPath is the portal-side report design passed as __report.
	ReportPath string `yaml:"report_path"`
	// Timeout per request. Default: 15s.
	Timeout time.Duration `yaml:"timeout"`
	// MaxBytes caps the response body. Default: 10MB.
	MaxBytes int64 `yaml:"max_bytes"`
	// UserAgent sent with requests.
	UserAgent string `yaml:"user_agent"`
}

func (c *Config) defaults() {
	if c.ReportPath == "" {
		c.ReportPath = "mydsi/exam/Exam_Result_Sheet_dsce.rptdesign"
	}
	if c.Timeout <= 0 {
		c.Timeout = 15 * time.Second
	}
	if c.MaxBytes <= 0 {
		c.MaxBytes = 10 * 1024 * 1024
	}
	if c.UserAgent == "" {
		c.UserAgent = "Mozilla/5.0"
	}
}

// Fetcher probes the report portal for individual result sheets.
type Fetcher struct {
	client *http.Client
	config Config
}

// New creates a Fetcher.
func New(cfg Config) *Fetcher {
	cfg.defaults()
	return &Fetcher{
		client: &http.Client{Timeout: cfg.Timeout},
		config: cfg,
	}
}

// Fetch retrieves the result sheet for one USN.
//
// Classification is deliberately lenient: the scan must survive any
// single bad probe, so nothing here returns an error. A non-200 status
// or a body that is not application/pdf means the USN does not exist
// on the portal and maps to StatusNotFound.
func (f *Fetcher) Fetch(ctx context.Context, seat string) Outcome {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.config.BaseURL, nil)
	if err != nil {
		return Outcome{Status: StatusTransportError, Reason: err.Error()}
	}

	q := url.Values{}
	q.Set("__report", f.config.ReportPath)
	q.Set("__format", "pdf")
	q.Set("USN", seat)
	req.URL.RawQuery = q.Encode()
	req.Header.Set("User-Agent", f.config.UserAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return Outcome{Status: StatusTransportError, Reason: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Outcome{Status: StatusNotFound}
	}
	if ct := resp.Header.Get("Content-Type"); !strings.Contains(ct, "application/pdf") {
		return Outcome{Status: StatusNotFound}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.config.MaxBytes))
	if err != nil {
		return Outcome{Status: StatusTransportError, Reason: err.Error()}
	}

	return Outcome{Status: StatusOK, Body: body}
}
