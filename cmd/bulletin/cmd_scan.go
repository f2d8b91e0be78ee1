package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hazyhaar/bulletin"
)

var (
	scanDept    string
	scanYear    string
	scanDelay   float64
	scanBaseURL string
	scanWorkers int
	scanJSON    bool
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Run a one-shot discovery scan and print the report",
	RunE:  runScan,
}

func init() {
	scanCmd.Flags().StringVar(&scanDept, "dept", "", "department code (CS, CG, ET, ...)")
	scanCmd.Flags().StringVar(&scanYear, "year", "", "2-digit admission year")
	scanCmd.Flags().Float64Var(&scanDelay, "delay", bulletin.DefaultDelaySeconds, "seconds between probes")
	scanCmd.Flags().StringVar(&scanBaseURL, "base-url", "", "report portal endpoint (default from config/env)")
	scanCmd.Flags().IntVar(&scanWorkers, "workers", 0, "concurrent probe workers")
	scanCmd.Flags().BoolVar(&scanJSON, "json", false, "print the raw report JSON")
	_ = scanCmd.MarkFlagRequired("dept")
	_ = scanCmd.MarkFlagRequired("year")
}

func runScan(cmd *cobra.Command, _ []string) error {
	logger := newLogger(env("LOG_LEVEL", "warn"))

	cfg := &bulletin.Config{}
	if v := env("BASE_URL", scanBaseURL); v != "" {
		cfg.Fetch.BaseURL = v
	}
	if scanWorkers > 0 {
		cfg.Scan.Workers = scanWorkers
	}

	svc := bulletin.New(cfg, logger)
	report, err := svc.Analyze(cmd.Context(), scanDept, scanYear, &scanDelay)
	if err != nil {
		return err
	}

	if scanJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}
	printReport(os.Stdout, report)
	logger.Debug("scan finished", "dept", report.Input.Dept, "year", report.Input.Year)
	return nil
}

func printReport(w *os.File, r *bulletin.Report) {
	fmt.Fprintf(w, "Batch %s/%s  rolls %s  (%d rolls checked)\n",
		r.Input.Dept, r.Input.Year, r.Input.RollRange, r.Input.TotalRollsChecked)
	fmt.Fprintf(w, "Students: %d  Average: %.2f  Median: %.2f  StdDev: %.3f\n",
		r.Summary.TotalStudents, r.Summary.Average, r.Summary.Median, r.Summary.StdDev)
	fmt.Fprintf(w, "Min: %.2f  Max: %.2f  P25: %.2f  P50: %.2f  P75: %.2f\n",
		r.Summary.Min, r.Summary.Max,
		r.Summary.Percentiles.P25, r.Summary.Percentiles.P50, r.Summary.Percentiles.P75)
	fmt.Fprintf(w, "Topper: %s (%s) %.2f\n", r.Topper.Name, r.Topper.USN, r.Topper.SGPA)
	fmt.Fprintf(w, "Lowest: %s (%s) %.2f\n", r.Lowest.Name, r.Lowest.USN, r.Lowest.SGPA)

	fmt.Fprintln(w, "\nTop performers:")
	for i, rec := range r.TopPerformers {
		fmt.Fprintf(w, "  %d. %-30s %s  %.2f\n", i+1, rec.Name, rec.USN, rec.SGPA)
	}
}
