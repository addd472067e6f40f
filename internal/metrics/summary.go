// Package metrics computes per-R0 summary statistics over sampled epidemic
// curves.
package metrics

import "github.com/mohar-s/episweep/internal/sweep"

// Summary condenses one R0 series into the numbers worth comparing across
// the sweep.
type Summary struct {
	R0         float64 `json:"r0"`
	PeakI      float64 `json:"peak_infected"`
	PeakDay    float64 `json:"peak_day"`
	FinalI     float64 `json:"final_infected"`
	FinalR     float64 `json:"final_recovered"`
	AttackRate float64 `json:"attack_rate"`
}

// Summarize computes the summary of one contiguous R0 series. Population is
// taken as S+I+R of the first sample, which the model conserves.
func Summarize(series sweep.Dataset) Summary {
	if len(series) == 0 {
		return Summary{}
	}

	sum := Summary{R0: series[0].R0}
	pop := series[0].S + series[0].I + series[0].R

	for _, s := range series {
		if s.I > sum.PeakI {
			sum.PeakI = s.I
			sum.PeakDay = s.T
		}
	}

	last := series[len(series)-1]
	sum.FinalI = last.I
	sum.FinalR = last.R
	if pop > 0 {
		sum.AttackRate = last.R / pop
	}
	return sum
}

// SummarizeAll produces one Summary per distinct R0 in dataset order.
func SummarizeAll(ds sweep.Dataset) []Summary {
	vals := ds.R0Values()
	out := make([]Summary, 0, len(vals))
	for _, r0 := range vals {
		out = append(out, Summarize(ds.Series(r0)))
	}
	return out
}
