package sweep

import (
	"context"
	"sync"

	"github.com/mohar-s/episweep/internal/ode"
)

// runParallel fans the R0 values out over a bounded worker pool. Each worker
// owns its own solver (solvers carry scratch state and are not safe to
// share) and returns its sub-slice of samples; a single merge pass then
// concatenates them in R0-input order, so the output is byte-identical to a
// serial run. If several R0 values fail, the one earliest in sweep order is
// reported, matching the serial abort point.
func (e *Engine) runParallel(ctx context.Context, grid []float64) (Dataset, error) {
	n := len(e.cfg.R0)
	workers := e.cfg.Workers
	if workers > n {
		workers = n
	}

	parts := make([][]Sample, n)
	errs := make([]error, n)
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			solver, _ := ode.NewSolver(e.cfg.Solver)
			for idx := range jobs {
				parts[idx], errs[idx] = e.runOne(ctx, solver, e.cfg.R0[idx], grid)
			}
		}()
	}

	for i := 0; i < n; i++ {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	ds := make(Dataset, 0, n*e.cfg.Points)
	for _, part := range parts {
		ds = append(ds, part...)
	}
	return ds, nil
}
