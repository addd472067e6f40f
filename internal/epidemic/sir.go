// Package epidemic defines compartment models as ode.System
// implementations.
package epidemic

import (
	"errors"
	"fmt"

	"github.com/mohar-s/episweep/internal/ode"
)

// ErrInvalidParams indicates a parameter outside its valid range.
var ErrInvalidParams = errors.New("epidemic: invalid parameters")

// Params holds the SIR rate constants. R0 is the basic reproduction
// number, Gamma the recovery rate (1/mean infectious period), and
// Population the total compartment mass N. The transmission rate beta is
// always derived as R0*Gamma and never stored.
type Params struct {
	R0         float64
	Gamma      float64
	Population float64
}

func (p Params) Beta() float64 { return p.R0 * p.Gamma }

func (p Params) Validate() error {
	if p.R0 <= 0 {
		return fmt.Errorf("%w: R0 must be positive, got %g", ErrInvalidParams, p.R0)
	}
	if p.Gamma <= 0 {
		return fmt.Errorf("%w: gamma must be positive, got %g", ErrInvalidParams, p.Gamma)
	}
	if p.Population <= 0 {
		return fmt.Errorf("%w: population must be positive, got %g", ErrInvalidParams, p.Population)
	}
	return nil
}

// SIR implements the susceptible-infected-recovered compartment model.
// State: [S, I, R]
// Equations:
//
//	dS/dt = -beta*S*I/N
//	dI/dt = beta*S*I/N - gamma*I
//	dR/dt = gamma*I
//
// The derivatives sum to zero, so S+I+R is conserved by construction.
type SIR struct {
	p Params
}

func NewSIR(p Params) *SIR { return &SIR{p: p} }

func (m *SIR) Dim() int       { return 3 }
func (m *SIR) Params() Params { return m.p }

func (m *SIR) Derive(x ode.State, _ float64) ode.State {
	s, i := x[0], x[1]
	beta := m.p.Beta()
	n := m.p.Population

	infection := beta * s * i / n
	recovery := m.p.Gamma * i

	return ode.State{-infection, infection - recovery, recovery}
}

// InitialState puts infected individuals into I, the remainder into S,
// and none into R.
func (m *SIR) InitialState(infected float64) ode.State {
	return ode.State{m.p.Population - infected, infected, 0}
}
