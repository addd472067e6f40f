package ode

import (
	"errors"
	"fmt"
)

// Domain errors for integration.
var (
	// ErrBadSpan indicates t0 >= t1.
	ErrBadSpan = errors.New("ode: time span start must precede end")

	// ErrDimensionMismatch indicates the initial state length differs from
	// the system dimension.
	ErrDimensionMismatch = errors.New("ode: state dimension does not match system")

	// ErrInvalidState indicates the integrator produced NaN or Inf.
	ErrInvalidState = errors.New("ode: invalid state (NaN or Inf detected)")

	// ErrStepUnderflow indicates adaptation pushed the step below MinStep
	// without meeting tolerances.
	ErrStepUnderflow = errors.New("ode: step size fell below minimum")

	// ErrTooManySteps indicates the MaxSteps budget was exhausted before
	// reaching the end of the span.
	ErrTooManySteps = errors.New("ode: step budget exhausted")

	// ErrOutOfSpan indicates a Solution query outside the solved interval.
	ErrOutOfSpan = errors.New("ode: query time outside solved span")
)

// StepError wraps an integration failure with the point it occurred at.
type StepError struct {
	Time    float64
	Step    int
	Wrapped error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("%v at t=%g (step %d)", e.Wrapped, e.Time, e.Step)
}

func (e *StepError) Unwrap() error {
	return e.Wrapped
}
