// CLAUDE:SUMMARY Report assembly: shapes a scanned batch plus its summary into the response contract.
package bulletin

import (
	"fmt"

	"github.com/hazyhaar/bulletin/scan"
	"github.com/hazyhaar/bulletin/stats"
	"github.com/hazyhaar/bulletin/usn"
)

// Input echoes the discovery parameters and scan metadata.
type Input struct {
	Dept              string  `json:"dept"`
	Year              string  `json:"year"`
	RollRange         string  `json:"roll_range"` // "NNN - NNN", or "N/A"
	TotalRollsChecked int     `json:"total_rolls_checked"`
	DelaySeconds      float64 `json:"delay_seconds"`
}

// Report is the full analytics response for one discovery run.
type Report struct {
	Input            Input          `json:"input"`
	Summary          *stats.Summary `json:"summary"`
	Topper           scan.Record    `json:"topper"`
	Lowest           scan.Record    `json:"lowest"`
	TopPerformers    []scan.Record  `json:"top_performers"`
	LowestPerformers []scan.Record  `json:"lowest_performers"`
	Results          []scan.Record  `json:"results"`
}

// AssembleReport shapes a batch and its summary into the response
// contract. Pure assembly; all numbers come from the summary.
func AssembleReport(b *scan.Batch, sum *stats.Summary) *Report {
	rollRange := "N/A"
	if n := len(b.Records); n > 0 {
		// Records are roll-ascending, so the range is first..last.
		rollRange = fmt.Sprintf("%03d - %03d",
			usn.Roll(b.Records[0].USN), usn.Roll(b.Records[n-1].USN))
	}

	return &Report{
		Input: Input{
			Dept:              b.Dept,
			Year:              b.Year,
			RollRange:         rollRange,
			TotalRollsChecked: b.RollsChecked,
			DelaySeconds:      b.DelaySeconds,
		},
		Summary:          sum,
		Topper:           stats.Topper(b.Records),
		Lowest:           stats.Lowest(b.Records),
		TopPerformers:    stats.Top(b.Records, 5),
		LowestPerformers: stats.Bottom(b.Records, 5),
		Results:          b.Records,
	}
}
