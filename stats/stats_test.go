package stats

import (
	"math"
	"testing"

	"github.com/hazyhaar/bulletin/scan"
)

func batch(scores ...float64) []scan.Record {
	records := make([]scan.Record, len(scores))
	for i, s := range scores {
		records[i] = scan.Record{USN: usnFor(i + 1), Name: "S", SGPA: s}
	}
	return records
}

func usnFor(roll int) string {
	return "1DS23CS" + string(rune('0'+roll/100%10)) + string(rune('0'+roll/10%10)) + string(rune('0'+roll%10))
}

func TestSummarize_ReferenceBatch(t *testing.T) {
	// WHAT: The canonical five-score batch produces the documented stats.
	// WHY: Pins mean/median/stdev/percentiles/distribution in one place.
	sum := Summarize(batch(6.0, 7.0, 8.0, 9.0, 10.0))

	if sum.TotalStudents != 5 {
		t.Errorf("total: got %d", sum.TotalStudents)
	}
	if sum.Average != 8.0 {
		t.Errorf("average: got %v, want 8.0", sum.Average)
	}
	if sum.Median != 8.0 {
		t.Errorf("median: got %v, want 8.0", sum.Median)
	}
	if sum.StdDev != 1.581 {
		t.Errorf("stdev: got %v, want 1.581", sum.StdDev)
	}
	if sum.Percentiles.P25 != 7.0 || sum.Percentiles.P50 != 8.0 || sum.Percentiles.P75 != 9.0 {
		t.Errorf("percentiles: got %+v", sum.Percentiles)
	}
	if sum.Min != 6.0 || sum.Max != 10.0 {
		t.Errorf("min/max: got %v/%v", sum.Min, sum.Max)
	}

	wantDist := map[string]int{
		BucketTop:   2,
		BucketEight: 1,
		BucketSeven: 1,
		BucketSix:   1,
		BucketLow:   0,
	}
	for k, want := range wantDist {
		if got := sum.Distribution[k]; got != want {
			t.Errorf("distribution[%q]: got %d, want %d", k, got, want)
		}
	}
}

func TestSummarize_SingleRecord(t *testing.T) {
	// WHAT: One record → stdev 0, all percentiles equal the score.
	// WHY: The n-1 denominator is undefined for n<2; the contract is 0.
	sum := Summarize(batch(7.5))
	if sum.StdDev != 0 {
		t.Errorf("stdev: got %v, want 0", sum.StdDev)
	}
	if sum.Percentiles.P25 != 7.5 || sum.Percentiles.P75 != 7.5 {
		t.Errorf("percentiles: got %+v", sum.Percentiles)
	}
	if sum.Median != 7.5 {
		t.Errorf("median: got %v", sum.Median)
	}
}

func TestMedian_EvenCount(t *testing.T) {
	// WHAT: Even-length batches average the two middle scores.
	sum := Summarize(batch(6.0, 7.0, 8.0, 9.0))
	if sum.Median != 7.5 {
		t.Errorf("median: got %v, want 7.5", sum.Median)
	}
}

func TestPercentile_Interpolation(t *testing.T) {
	// WHAT: Quartiles interpolate linearly between closest ranks.
	sorted := []float64{1, 2, 3, 4}
	// k = 3*0.25 = 0.75 → 1*(0.25) + 2*(0.75) = 1.75
	if got := Percentile(sorted, 0.25); math.Abs(got-1.75) > 1e-9 {
		t.Errorf("p25: got %v, want 1.75", got)
	}
	if got := Percentile(sorted, 0.5); math.Abs(got-2.5) > 1e-9 {
		t.Errorf("p50: got %v, want 2.5", got)
	}
}

func TestPercentile_Idempotent(t *testing.T) {
	// WHAT: Repeated calls on the same sorted input agree and the input
	// is not mutated.
	sorted := []float64{6.0, 7.0, 8.0, 9.0, 10.0}
	a := Percentile(sorted, 0.75)
	b := Percentile(sorted, 0.75)
	if a != b {
		t.Errorf("not idempotent: %v vs %v", a, b)
	}
	if sorted[0] != 6.0 || sorted[4] != 10.0 {
		t.Errorf("input mutated: %v", sorted)
	}
}

func TestRankings(t *testing.T) {
	// WHAT: Topper is the max, Lowest the min; top/bottom lists are
	// ordered and capped.
	records := batch(6.0, 9.5, 7.0, 9.5, 5.0, 8.0)

	top := Topper(records)
	if top.SGPA != 9.5 {
		t.Errorf("topper: got %v", top.SGPA)
	}
	// Tie on 9.5 between rolls 2 and 4: lowest roll wins.
	if top.USN != usnFor(2) {
		t.Errorf("topper tie-break: got %s, want %s", top.USN, usnFor(2))
	}

	low := Lowest(records)
	if low.SGPA != 5.0 {
		t.Errorf("lowest: got %v", low.SGPA)
	}

	top5 := Top(records, 5)
	if len(top5) != 5 || top5[0].SGPA != 9.5 || top5[4].SGPA != 6.0 {
		t.Errorf("top5: got %+v", top5)
	}
	for i := 1; i < len(top5); i++ {
		if top5[i].SGPA > top5[i-1].SGPA {
			t.Fatalf("top5 not descending at %d", i)
		}
	}

	bottom5 := Bottom(records, 5)
	if bottom5[0].SGPA != 5.0 {
		t.Errorf("bottom5 first: got %v", bottom5[0].SGPA)
	}
	for i := 1; i < len(bottom5); i++ {
		if bottom5[i].SGPA < bottom5[i-1].SGPA {
			t.Fatalf("bottom5 not ascending at %d", i)
		}
	}
}

func TestRankings_FewerThanFive(t *testing.T) {
	// WHAT: Batches smaller than the cap return all records.
	records := batch(7.0, 8.0)
	if got := len(Top(records, 5)); got != 2 {
		t.Errorf("top: got %d records, want 2", got)
	}
	if got := len(Bottom(records, 5)); got != 2 {
		t.Errorf("bottom: got %d records, want 2", got)
	}
}
