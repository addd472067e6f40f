package sweep

import (
	"context"
	"fmt"

	"github.com/mohar-s/episweep/internal/epidemic"
	"github.com/mohar-s/episweep/internal/ode"
)

// Config fixes everything about a sweep except the varying R0.
type Config struct {
	// R0 values to sweep, in output order. See R0Range.
	R0 []float64

	Gamma           float64
	Population      float64
	InitialInfected float64

	// Horizon is the integration span [0, Horizon] in days.
	Horizon float64

	// Points is the number of uniform sample times per R0, shared
	// bit-for-bit across all R0 values.
	Points int

	// Solver selects the integrator by name ("dopri" when empty).
	Solver string

	// Solve tunes the integrator; zero values mean solver defaults.
	Solve ode.Config

	// Workers > 1 runs integrations concurrently. Output is identical to
	// the serial order either way.
	Workers int
}

func (c Config) Validate() error {
	if len(c.R0) == 0 {
		return fmt.Errorf("%w: empty R0 list", epidemic.ErrInvalidParams)
	}
	for _, r0 := range c.R0 {
		if r0 <= 0 {
			return fmt.Errorf("%w: R0 must be positive, got %g", epidemic.ErrInvalidParams, r0)
		}
	}
	if c.Gamma <= 0 {
		return fmt.Errorf("%w: gamma must be positive, got %g", epidemic.ErrInvalidParams, c.Gamma)
	}
	if c.Population <= 0 {
		return fmt.Errorf("%w: population must be positive, got %g", epidemic.ErrInvalidParams, c.Population)
	}
	if c.InitialInfected <= 0 || c.InitialInfected > c.Population {
		return fmt.Errorf("%w: initial infected must be in (0, population], got %g", epidemic.ErrInvalidParams, c.InitialInfected)
	}
	if c.Horizon <= 0 {
		return fmt.Errorf("%w: horizon must be positive, got %g", epidemic.ErrInvalidParams, c.Horizon)
	}
	if c.Points < 2 {
		return fmt.Errorf("%w: need at least 2 grid points, got %d", epidemic.ErrInvalidParams, c.Points)
	}
	if _, err := ode.NewSolver(c.Solver); err != nil {
		return err
	}
	return nil
}

// Error identifies which R0 value a sweep failed on.
type Error struct {
	R0      float64
	Wrapped error
}

func (e *Error) Error() string {
	return fmt.Sprintf("sweep failed at R0=%g: %v", e.R0, e.Wrapped)
}

func (e *Error) Unwrap() error { return e.Wrapped }

// Engine drives one integration per configured R0 value.
type Engine struct {
	cfg Config
}

func New(cfg Config) *Engine { return &Engine{cfg: cfg} }

// Run produces the full dataset or fails wholesale: any single integration
// failure aborts the sweep, and the returned error names the offending R0.
// Partial datasets are never returned.
func (e *Engine) Run(ctx context.Context) (Dataset, error) {
	if err := e.cfg.Validate(); err != nil {
		return nil, err
	}

	grid := TimeGrid(e.cfg.Horizon, e.cfg.Points)

	if e.cfg.Workers > 1 {
		return e.runParallel(ctx, grid)
	}

	ds := make(Dataset, 0, len(e.cfg.R0)*e.cfg.Points)
	solver, _ := ode.NewSolver(e.cfg.Solver)
	for _, r0 := range e.cfg.R0 {
		samples, err := e.runOne(ctx, solver, r0, grid)
		if err != nil {
			return nil, err
		}
		ds = append(ds, samples...)
	}
	return ds, nil
}

// runOne integrates a single R0 and samples the trajectory on the shared
// grid. The trajectory itself is discarded afterwards.
func (e *Engine) runOne(ctx context.Context, solver ode.Solver, r0 float64, grid []float64) ([]Sample, error) {
	p := epidemic.Params{R0: r0, Gamma: e.cfg.Gamma, Population: e.cfg.Population}
	if err := p.Validate(); err != nil {
		return nil, &Error{R0: r0, Wrapped: err}
	}

	model := epidemic.NewSIR(p)
	y0 := model.InitialState(e.cfg.InitialInfected)

	sol, err := solver.Solve(ctx, model, 0, e.cfg.Horizon, y0, e.cfg.Solve)
	if err != nil {
		return nil, &Error{R0: r0, Wrapped: err}
	}

	states, err := sol.Eval(grid)
	if err != nil {
		return nil, &Error{R0: r0, Wrapped: err}
	}

	samples := make([]Sample, len(grid))
	for k, t := range grid {
		samples[k] = Sample{T: t, R0: r0, S: states[k][0], I: states[k][1], R: states[k][2]}
	}
	return samples, nil
}
