package ode

import "fmt"

// NewSolver returns a solver by name. Known names: "dopri" (default when
// name is empty) and "rk4".
func NewSolver(name string) (Solver, error) {
	switch name {
	case "", "dopri":
		return NewDormandPrince(), nil
	case "rk4":
		return NewRK4(), nil
	default:
		return nil, fmt.Errorf("unknown solver: %s", name)
	}
}
