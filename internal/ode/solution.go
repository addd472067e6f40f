package ode

import (
	"fmt"
	"sort"
)

// Solution is a dense-output trajectory. It stores the accepted step nodes
// together with the derivative at each node and interpolates between them
// with cubic Hermite polynomials, so it can be evaluated anywhere in the
// solved span, not only at solver-chosen times.
type Solution struct {
	times  []float64
	states []State
	derivs []State
	stats  Stats
}

func (s *Solution) Span() (t0, t1 float64) {
	return s.times[0], s.times[len(s.times)-1]
}

func (s *Solution) Stats() Stats { return s.stats }

// At evaluates the trajectory at time t. Node times return the stored
// state exactly; in particular At(t0) returns the initial state as given.
func (s *Solution) At(t float64) (State, error) {
	t0, t1 := s.Span()
	if t < t0 || t > t1 {
		return nil, fmt.Errorf("%w: t=%g not in [%g, %g]", ErrOutOfSpan, t, t0, t1)
	}

	// sort.Search finds the first node time > t, so seg is the segment
	// whose left node is <= t.
	i := sort.Search(len(s.times), func(k int) bool { return s.times[k] > t })
	if i == len(s.times) {
		return s.states[len(s.states)-1].Clone(), nil
	}
	seg := i - 1
	if t == s.times[seg] {
		return s.states[seg].Clone(), nil
	}

	ta, tb := s.times[seg], s.times[seg+1]
	ya, yb := s.states[seg], s.states[seg+1]
	fa, fb := s.derivs[seg], s.derivs[seg+1]

	h := tb - ta
	u := (t - ta) / h
	u2 := u * u
	u3 := u2 * u

	h00 := 2*u3 - 3*u2 + 1
	h10 := u3 - 2*u2 + u
	h01 := -2*u3 + 3*u2
	h11 := u3 - u2

	out := make(State, len(ya))
	for j := range out {
		out[j] = h00*ya[j] + h10*h*fa[j] + h01*yb[j] + h11*h*fb[j]
	}
	return out, nil
}

// Eval evaluates the trajectory at each query time, returning one state
// per time in query order.
func (s *Solution) Eval(times []float64) ([]State, error) {
	out := make([]State, len(times))
	for i, t := range times {
		y, err := s.At(t)
		if err != nil {
			return nil, err
		}
		out[i] = y
	}
	return out, nil
}
