package ode

import (
	"context"
	"math"
)

// Dormand-Prince 5(4) coefficients
var (
	a2 = 1.0 / 5.0
	a3 = 3.0 / 10.0
	a4 = 4.0 / 5.0
	a5 = 8.0 / 9.0

	b21 = 1.0 / 5.0
	b31 = 3.0 / 40.0
	b32 = 9.0 / 40.0
	b41 = 44.0 / 45.0
	b42 = -56.0 / 15.0
	b43 = 32.0 / 9.0
	b51 = 19372.0 / 6561.0
	b52 = -25360.0 / 2187.0
	b53 = 64448.0 / 6561.0
	b54 = -212.0 / 729.0
	b61 = 9017.0 / 3168.0
	b62 = -355.0 / 33.0
	b63 = 46732.0 / 5247.0
	b64 = 49.0 / 176.0
	b65 = -5103.0 / 18656.0

	c1 = 35.0 / 384.0
	c3 = 500.0 / 1113.0
	c4 = 125.0 / 192.0
	c5 = -2187.0 / 6784.0
	c6 = 11.0 / 84.0

	dc1 = c1 - 5179.0/57600.0
	dc3 = c3 - 7571.0/16695.0
	dc4 = c4 - 393.0/640.0
	dc5 = c5 - -92097.0/339200.0
	dc6 = c6 - 187.0/2100.0
	dc7 = -1.0 / 40.0
)

// DormandPrince is an adaptive-step fifth-order Runge-Kutta solver with
// embedded fourth-order error estimation. The derivative at the end of an
// accepted step equals the derivative at the start of the next (FSAL), and
// both are recorded for Hermite dense output.
type DormandPrince struct {
	safety   float64
	minScale float64
	maxScale float64
}

func NewDormandPrince() *DormandPrince {
	return &DormandPrince{
		safety:   0.9,
		minScale: 0.2,
		maxScale: 10.0,
	}
}

func (d *DormandPrince) Name() string { return "dopri" }

func (d *DormandPrince) Solve(ctx context.Context, sys System, t0, t1 float64, y0 State, cfg Config) (*Solution, error) {
	if t0 >= t1 {
		return nil, ErrBadSpan
	}
	if len(y0) != sys.Dim() {
		return nil, ErrDimensionMismatch
	}
	cfg = cfg.withDefaults(t1 - t0)

	sol := &Solution{
		times:  []float64{t0},
		states: []State{y0.Clone()},
	}

	t := t0
	y := y0.Clone()
	dt := math.Min(cfg.InitialStep, cfg.MaxStep)

	k1 := sys.Derive(y, t)
	sol.stats.Evals++
	sol.derivs = append(sol.derivs, k1.Clone())

	for t < t1 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		if sol.stats.Steps+sol.stats.Rejected >= cfg.MaxSteps {
			return nil, &StepError{Time: t, Step: sol.stats.Steps, Wrapped: ErrTooManySteps}
		}

		last := false
		if t+dt >= t1 {
			dt = t1 - t
			last = true
		}

		yNew, k7, errMax := d.attempt(sys, y, k1, t, dt, cfg)
		sol.stats.Evals += 6

		if errMax > 1 {
			sol.stats.Rejected++
			scale := math.Max(d.minScale, d.safety*math.Pow(errMax, -0.25))
			dt *= scale
			if dt < cfg.MinStep {
				return nil, &StepError{Time: t, Step: sol.stats.Steps, Wrapped: ErrStepUnderflow}
			}
			continue
		}

		if !yNew.IsValid() {
			return nil, &StepError{Time: t, Step: sol.stats.Steps, Wrapped: ErrInvalidState}
		}

		if last {
			t = t1
		} else {
			t += dt
		}
		y = yNew
		k1 = k7
		sol.stats.Steps++
		sol.stats.LastStep = dt

		sol.times = append(sol.times, t)
		sol.states = append(sol.states, y)
		sol.derivs = append(sol.derivs, k7)

		if errMax > 0 {
			scale := math.Min(d.maxScale, d.safety*math.Pow(errMax, -0.2))
			dt = math.Min(dt*scale, cfg.MaxStep)
		} else {
			dt = math.Min(dt*d.maxScale, cfg.MaxStep)
		}
	}

	return sol, nil
}

// attempt takes one trial step of size dt from (t, y) with k1 = f(y, t)
// already known. It returns the fifth-order state, the derivative at that
// state, and the error estimate normalized so values > 1 mean reject.
func (d *DormandPrince) attempt(sys System, y, k1 State, t, dt float64, cfg Config) (State, State, float64) {
	n := len(y)

	x2 := make(State, n)
	for i := 0; i < n; i++ {
		x2[i] = y[i] + dt*b21*k1[i]
	}
	k2 := sys.Derive(x2, t+a2*dt)

	x3 := make(State, n)
	for i := 0; i < n; i++ {
		x3[i] = y[i] + dt*(b31*k1[i]+b32*k2[i])
	}
	k3 := sys.Derive(x3, t+a3*dt)

	x4 := make(State, n)
	for i := 0; i < n; i++ {
		x4[i] = y[i] + dt*(b41*k1[i]+b42*k2[i]+b43*k3[i])
	}
	k4 := sys.Derive(x4, t+a4*dt)

	x5 := make(State, n)
	for i := 0; i < n; i++ {
		x5[i] = y[i] + dt*(b51*k1[i]+b52*k2[i]+b53*k3[i]+b54*k4[i])
	}
	k5 := sys.Derive(x5, t+a5*dt)

	x6 := make(State, n)
	for i := 0; i < n; i++ {
		x6[i] = y[i] + dt*(b61*k1[i]+b62*k2[i]+b63*k3[i]+b64*k4[i]+b65*k5[i])
	}
	k6 := sys.Derive(x6, t+dt)

	yNew := make(State, n)
	for i := 0; i < n; i++ {
		yNew[i] = y[i] + dt*(c1*k1[i]+c3*k3[i]+c4*k4[i]+c5*k5[i]+c6*k6[i])
	}
	k7 := sys.Derive(yNew, t+dt)

	errMax := 0.0
	for i := 0; i < n; i++ {
		errEst := dt * (dc1*k1[i] + dc3*k3[i] + dc4*k4[i] + dc5*k5[i] + dc6*k6[i] + dc7*k7[i])
		scale := cfg.AbsTol + cfg.RelTol*math.Max(math.Abs(y[i]), math.Abs(yNew[i]))
		errMax = math.Max(errMax, math.Abs(errEst)/scale)
	}

	return yNew, k7, errMax
}
