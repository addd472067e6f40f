package ode

import (
	"context"
	"math"
)

type State []float64

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// System is the right-hand side of an initial value problem dX/dt = f(X, t).
// Derive must be a pure function of its inputs.
type System interface {
	Derive(x State, t float64) State
	Dim() int
}

// Solver integrates a System over [t0, t1] starting from y0 and returns a
// dense-output Solution covering the full span. A non-nil error means no
// usable trajectory was produced; partial results are never returned.
type Solver interface {
	Name() string
	Solve(ctx context.Context, sys System, t0, t1 float64, y0 State, cfg Config) (*Solution, error)
}

// Config tunes step-size control. Zero values select defaults scaled to
// the integration span.
type Config struct {
	// InitialStep is the size of the first attempted step.
	InitialStep float64

	// MinStep aborts integration when adaptation would go below it.
	MinStep float64

	// MaxStep caps step growth.
	MaxStep float64

	AbsTol float64
	RelTol float64

	// MaxSteps bounds total step attempts (accepted plus rejected) so a
	// misbehaving system cannot spin forever.
	MaxSteps int
}

const (
	defaultAbsTol   = 1e-8
	defaultRelTol   = 1e-8
	defaultMaxSteps = 100_000
)

func (c Config) withDefaults(span float64) Config {
	if c.InitialStep <= 0 {
		c.InitialStep = span / 100
	}
	if c.MinStep <= 0 {
		c.MinStep = span * 1e-14
	}
	if c.MaxStep <= 0 {
		c.MaxStep = span
	}
	if c.AbsTol <= 0 {
		c.AbsTol = defaultAbsTol
	}
	if c.RelTol <= 0 {
		c.RelTol = defaultRelTol
	}
	if c.MaxSteps <= 0 {
		c.MaxSteps = defaultMaxSteps
	}
	return c
}

// Stats reports work done by one Solve call.
type Stats struct {
	Steps    int // accepted steps
	Rejected int // rejected step attempts
	Evals    int // right-hand-side evaluations
	LastStep float64
}
