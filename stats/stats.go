// CLAUDE:SUMMARY Batch aggregation: mean/median/sample stdev, interpolated percentiles, score buckets, rankings.
// Package stats computes summary statistics over a discovered batch.
//
// Everything here is derived fresh from the record list on every run;
// nothing is cached or persisted.
package stats

import (
	"math"
	"sort"

	"github.com/hazyhaar/bulletin/scan"
)

// Distribution bucket labels, highest first. Buckets are half-open:
// [9.0,∞), [8.0,9.0), [7.0,8.0), [6.0,7.0), (-∞,6.0).
const (
	BucketTop   = ">= 9.0"
	BucketEight = "8.0 - 8.99"
	BucketSeven = "7.0 - 7.99"
	BucketSix   = "6.0 - 6.99"
	BucketLow   = "< 6.0"
)

// Percentiles holds the quartile estimates.
type Percentiles struct {
	P25 float64 `json:"p25"`
	P50 float64 `json:"p50"`
	P75 float64 `json:"p75"`
}

// Summary is the aggregate view of one batch.
type Summary struct {
	TotalStudents int            `json:"total_students"`
	Average       float64        `json:"average_sgpa"`
	Min           float64        `json:"min_sgpa"`
	Max           float64        `json:"max_sgpa"`
	Median        float64        `json:"median_sgpa"`
	StdDev        float64        `json:"std_dev_sgpa"`
	Percentiles   Percentiles    `json:"percentiles"`
	Distribution  map[string]int `json:"distribution"`
}

// Summarize aggregates a non-empty record list. The caller must have
// rejected the empty case already (scan.ErrNoRecords).
func Summarize(records []scan.Record) *Summary {
	scores := make([]float64, len(records))
	for i, r := range records {
		scores[i] = r.SGPA
	}
	sort.Float64s(scores)

	n := len(scores)
	return &Summary{
		TotalStudents: n,
		Average:       round2(mean(scores)),
		Min:           round2(scores[0]),
		Max:           round2(scores[n-1]),
		Median:        round2(median(scores)),
		StdDev:        round3(sampleStdDev(scores)),
		Percentiles: Percentiles{
			P25: round2(Percentile(scores, 0.25)),
			P50: round2(Percentile(scores, 0.50)),
			P75: round2(Percentile(scores, 0.75)),
		},
		Distribution: distribution(scores),
	}
}

// Percentile estimates percentile p in [0,1] over ascending-sorted
// scores using linear interpolation between closest ranks. Idempotent
// under re-sorting: the input order is never mutated.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if n == 1 {
		return sorted[0]
	}
	k := float64(n-1) * p
	f := math.Floor(k)
	c := math.Min(f+1, float64(n-1))
	if f == c {
		return sorted[int(k)]
	}
	return sorted[int(f)]*(c-k) + sorted[int(c)]*(k-f)
}

// Topper returns the record with the maximum score. Ties resolve to
// the lowest roll number.
func Topper(records []scan.Record) scan.Record {
	best := records[0]
	for _, r := range records[1:] {
		if r.SGPA > best.SGPA {
			best = r
		}
	}
	return best
}

// Lowest returns the record with the minimum score. Ties resolve to
// the lowest roll number.
func Lowest(records []scan.Record) scan.Record {
	worst := records[0]
	for _, r := range records[1:] {
		if r.SGPA < worst.SGPA {
			worst = r
		}
	}
	return worst
}

// Top returns up to n records by descending score; ties keep roll order.
func Top(records []scan.Record, n int) []scan.Record {
	out := make([]scan.Record, len(records))
	copy(out, records)
	sort.SliceStable(out, func(i, j int) bool { return out[i].SGPA > out[j].SGPA })
	if len(out) > n {
		out = out[:n]
	}
	return out
}

// Bottom returns up to n records by ascending score; ties keep roll order.
func Bottom(records []scan.Record, n int) []scan.Record {
	out := make([]scan.Record, len(records))
	copy(out, records)
	sort.SliceStable(out, func(i, j int) bool { return out[i].SGPA < out[j].SGPA })
	if len(out) > n {
		out = out[:n]
	}
	return out
}

func distribution(scores []float64) map[string]int {
	buckets := map[string]int{
		BucketTop:   0,
		BucketEight: 0,
		BucketSeven: 0,
		BucketSix:   0,
		BucketLow:   0,
	}
	for _, s := range scores {
		switch {
		case s >= 9.0:
			buckets[BucketTop]++
		case s >= 8.0:
			buckets[BucketEight]++
		case s >= 7.0:
			buckets[BucketSeven]++
		case s >= 6.0:
			buckets[BucketSix]++
		default:
			buckets[BucketLow]++
		}
	}
	return buckets
}

func mean(scores []float64) float64 {
	var sum float64
	for _, s := range scores {
		sum += s
	}
	return sum / float64(len(scores))
}

func median(sorted []float64) float64 {
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

// sampleStdDev uses the n-1 denominator; 0 for fewer than 2 scores.
func sampleStdDev(scores []float64) float64 {
	n := len(scores)
	if n < 2 {
		return 0
	}
	m := mean(scores)
	var sum float64
	for _, s := range scores {
		d := s - m
		sum += d * d
	}
	return math.Sqrt(sum / float64(n-1))
}

func round2(x float64) float64 { return math.Round(x*100) / 100 }
func round3(x float64) float64 { return math.Round(x*1000) / 1000 }
