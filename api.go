// CLAUDE:SUMMARY chi HTTP surface: POST /analyze-results, GET /runs, GET /health.
package bulletin

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
)

// Routes mounts the HTTP API on a fresh chi router.
func (s *Service) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/analyze-results", s.handleAnalyze)
	r.Get("/runs", s.handleRuns)
	r.Get("/health", handleHealth)
	return r
}

type analyzeRequest struct {
	Dept string `json:"dept"`
	Year string `json:"year"`
	// Pointer distinguishes "omitted" (default 1.0) from explicit 0.
	DelaySeconds *float64 `json:"delay_seconds"`
}

func (s *Service) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	report, err := s.Analyze(r.Context(), req.Dept, req.Year, req.DelaySeconds)
	switch {
	case errors.Is(err, ErrInvalidInput):
		writeError(w, http.StatusBadRequest, "dept and year are required")
	case errors.Is(err, ErrNoRecords):
		writeError(w, http.StatusNotFound,
			fmt.Sprintf("no valid results found for department %s and year %s",
				normalizeDept(req.Dept), req.Year))
	case err != nil:
		s.logger.Error("analyze failed", "error", err, "dept", req.Dept, "year", req.Year)
		writeError(w, http.StatusInternalServerError, "scan failed")
	default:
		writeJSON(w, http.StatusOK, report)
	}
}

func (s *Service) handleRuns(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	runs, err := s.Runs(r.Context(), limit)
	if err != nil {
		s.logger.Error("list runs", "error", err)
		writeError(w, http.StatusInternalServerError, "listing runs failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"runs": runs})
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}

func normalizeDept(d string) string {
	return strings.ToUpper(strings.TrimSpace(d))
}
