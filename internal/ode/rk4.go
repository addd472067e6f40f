package ode

import (
	"context"
	"math"
)

// RK4 is a fixed-step classic fourth-order Runge-Kutta solver. Step size is
// Config.InitialStep, rounded so the span divides evenly. Mostly useful for
// cross-checking the adaptive solver; it records node derivatives the same
// way, so dense output works identically.
type RK4 struct {
	k1, k2, k3, k4 State
	scratch        State
}

func NewRK4() *RK4 { return &RK4{} }

func (r *RK4) Name() string { return "rk4" }

func (r *RK4) ensureScratch(n int) {
	if len(r.k1) != n {
		r.k1 = make(State, n)
		r.k2 = make(State, n)
		r.k3 = make(State, n)
		r.k4 = make(State, n)
		r.scratch = make(State, n)
	}
}

func (r *RK4) Solve(ctx context.Context, sys System, t0, t1 float64, y0 State, cfg Config) (*Solution, error) {
	if t0 >= t1 {
		return nil, ErrBadSpan
	}
	if len(y0) != sys.Dim() {
		return nil, ErrDimensionMismatch
	}
	cfg = cfg.withDefaults(t1 - t0)

	span := t1 - t0
	steps := int(math.Ceil(span / math.Min(cfg.InitialStep, cfg.MaxStep)))
	if steps < 1 {
		steps = 1
	}
	if steps > cfg.MaxSteps {
		return nil, &StepError{Time: t0, Step: 0, Wrapped: ErrTooManySteps}
	}
	dt := span / float64(steps)

	sol := &Solution{
		times:  make([]float64, 0, steps+1),
		states: make([]State, 0, steps+1),
		derivs: make([]State, 0, steps+1),
	}

	y := y0.Clone()
	sol.times = append(sol.times, t0)
	sol.states = append(sol.states, y.Clone())
	sol.derivs = append(sol.derivs, sys.Derive(y, t0))
	sol.stats.Evals++

	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		t := t0 + float64(i)*dt
		y = r.step(sys, y, t, dt)
		sol.stats.Evals += 4
		if !y.IsValid() {
			return nil, &StepError{Time: t, Step: i, Wrapped: ErrInvalidState}
		}

		tNext := t0 + float64(i+1)*dt
		if i == steps-1 {
			tNext = t1
		}
		sol.times = append(sol.times, tNext)
		sol.states = append(sol.states, y.Clone())
		sol.derivs = append(sol.derivs, sys.Derive(y, tNext))
		sol.stats.Evals++
		sol.stats.Steps++
		sol.stats.LastStep = dt
	}

	return sol, nil
}

func (r *RK4) step(sys System, y State, t, dt float64) State {
	n := len(y)
	r.ensureScratch(n)

	copy(r.k1, sys.Derive(y, t))

	for i := 0; i < n; i++ {
		r.scratch[i] = y[i] + dt*0.5*r.k1[i]
	}
	copy(r.k2, sys.Derive(r.scratch, t+dt*0.5))

	for i := 0; i < n; i++ {
		r.scratch[i] = y[i] + dt*0.5*r.k2[i]
	}
	copy(r.k3, sys.Derive(r.scratch, t+dt*0.5))

	for i := 0; i < n; i++ {
		r.scratch[i] = y[i] + dt*r.k3[i]
	}
	copy(r.k4, sys.Derive(r.scratch, t+dt))

	out := make(State, n)
	dt6 := dt / 6.0
	for i := 0; i < n; i++ {
		out[i] = y[i] + dt6*(r.k1[i]+2*r.k2[i]+2*r.k3[i]+r.k4[i])
	}
	return out
}
