// Package sweep runs one SIR integration per R0 value and assembles the
// sampled trajectories into a single flat dataset.
package sweep

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Sample is one observation of one trajectory: the state at grid time T for
// the sweep value R0.
type Sample struct {
	T  float64 `json:"t"`
	R0 float64 `json:"r0"`
	S  float64 `json:"s"`
	I  float64 `json:"i"`
	R  float64 `json:"r"`
}

// Dataset is the sweep output: len(r0 values) * points samples, grouped
// contiguously by R0 in sweep order, with T strictly increasing inside
// each group.
type Dataset []Sample

// R0Values returns the distinct R0 values in dataset order.
func (d Dataset) R0Values() []float64 {
	vals := make([]float64, 0)
	for _, s := range d {
		if len(vals) == 0 || vals[len(vals)-1] != s.R0 {
			vals = append(vals, s.R0)
		}
	}
	return vals
}

// Grid returns the time grid of the first R0 group. Every group shares the
// same grid, so this is the grid of the whole sweep.
func (d Dataset) Grid() []float64 {
	if len(d) == 0 {
		return nil
	}
	first := d[0].R0
	grid := make([]float64, 0)
	for _, s := range d {
		if s.R0 != first {
			break
		}
		grid = append(grid, s.T)
	}
	return grid
}

// Series returns the samples for the distinct R0 value nearest to r0.
// Lookup is by nearest value rather than float equality, so callers can ask
// for e.g. 3.0 even when the generated grid holds 2.9999999999999996.
func (d Dataset) Series(r0 float64) Dataset {
	vals := d.R0Values()
	if len(vals) == 0 {
		return nil
	}
	best := vals[0]
	for _, v := range vals[1:] {
		if math.Abs(v-r0) < math.Abs(best-r0) {
			best = v
		}
	}
	out := make(Dataset, 0)
	for _, s := range d {
		if s.R0 == best {
			out = append(out, s)
		}
	}
	return out
}

// TimeGrid returns points uniformly spaced times spanning [0, horizon].
func TimeGrid(horizon float64, points int) []float64 {
	return floats.Span(make([]float64, points), 0, horizon)
}

// R0Range builds an inclusive uniform grid of R0 values. The count is fixed
// by rounding (max-min)/step, then the values are generated by index, so
// repeated calls produce bit-for-bit identical grids and the endpoints are
// hit exactly regardless of step rounding.
func R0Range(min, max, step float64) []float64 {
	if step <= 0 || max < min {
		return nil
	}
	n := int(math.Round((max-min)/step)) + 1
	if n < 1 {
		n = 1
	}
	if n == 1 {
		return []float64{min}
	}
	return floats.Span(make([]float64, n), min, max)
}
