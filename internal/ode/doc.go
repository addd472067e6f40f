// Package ode provides numerical integration for ordinary differential
// equations of the form dX/dt = f(X, t):
//
//   - [State]: vector representing system state
//   - [System]: interface for autonomous or time-dependent ODE systems
//   - [Solver]: numerical integrator interface
//   - [Solution]: dense-output trajectory, evaluable at arbitrary times
//
// # Example
//
//	sys := epidemic.NewSIR(params)
//	sol, err := ode.NewDormandPrince().Solve(ctx, sys, 0, 365, y0, ode.Config{})
//	states, _ := sol.Eval(grid)
//
// # Thread Safety
//
// Solver instances are NOT thread-safe. Use one solver per goroutine;
// a returned Solution is immutable and safe for concurrent reads.
package ode
