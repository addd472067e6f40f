package metrics

import (
	"math"
	"testing"

	"github.com/mohar-s/episweep/internal/sweep"
)

func TestSummarize(t *testing.T) {
	series := sweep.Dataset{
		{T: 0, R0: 2.0, S: 990, I: 10, R: 0},
		{T: 10, R0: 2.0, S: 700, I: 250, R: 50},
		{T: 20, R0: 2.0, S: 400, I: 300, R: 300},
		{T: 30, R0: 2.0, S: 300, I: 100, R: 600},
		{T: 40, R0: 2.0, S: 295, I: 5, R: 700},
	}

	sum := Summarize(series)

	if sum.R0 != 2.0 {
		t.Errorf("R0 = %v, want 2.0", sum.R0)
	}
	if sum.PeakI != 300 || sum.PeakDay != 20 {
		t.Errorf("peak = %v on day %v, want 300 on day 20", sum.PeakI, sum.PeakDay)
	}
	if sum.FinalI != 5 || sum.FinalR != 700 {
		t.Errorf("final I=%v R=%v, want 5 and 700", sum.FinalI, sum.FinalR)
	}
	if math.Abs(sum.AttackRate-0.7) > 1e-12 {
		t.Errorf("attack rate = %v, want 0.7", sum.AttackRate)
	}
}

func TestSummarize_Empty(t *testing.T) {
	sum := Summarize(nil)
	if sum != (Summary{}) {
		t.Errorf("empty series should give zero summary, got %+v", sum)
	}
}

func TestSummarizeAll(t *testing.T) {
	ds := sweep.Dataset{
		{T: 0, R0: 1.5, S: 99, I: 1, R: 0},
		{T: 1, R0: 1.5, S: 98, I: 1.5, R: 0.5},
		{T: 0, R0: 2.5, S: 99, I: 1, R: 0},
		{T: 1, R0: 2.5, S: 97, I: 2.5, R: 0.5},
	}

	sums := SummarizeAll(ds)
	if len(sums) != 2 {
		t.Fatalf("got %d summaries, want 2", len(sums))
	}
	if sums[0].R0 != 1.5 || sums[1].R0 != 2.5 {
		t.Errorf("summary order %v, %v; want dataset order 1.5, 2.5", sums[0].R0, sums[1].R0)
	}
	if sums[1].PeakI != 2.5 {
		t.Errorf("second peak %v, want 2.5", sums[1].PeakI)
	}
}
