package epidemic

import (
	"fmt"

	"github.com/mohar-s/episweep/internal/ode"
)

// SEIR extends SIR with an exposed (infected but not yet infectious)
// compartment. Sigma is the incubation rate (1/mean incubation period).
// State: [S, E, I, R]
type SEIR struct {
	p     Params
	sigma float64
}

func NewSEIR(p Params, sigma float64) *SEIR { return &SEIR{p: p, sigma: sigma} }

func (m *SEIR) Dim() int       { return 4 }
func (m *SEIR) Params() Params { return m.p }

func (m *SEIR) Validate() error {
	if err := m.p.Validate(); err != nil {
		return err
	}
	if m.sigma <= 0 {
		return fmt.Errorf("%w: sigma must be positive, got %g", ErrInvalidParams, m.sigma)
	}
	return nil
}

func (m *SEIR) Derive(x ode.State, _ float64) ode.State {
	s, e, i := x[0], x[1], x[2]
	beta := m.p.Beta()
	n := m.p.Population

	exposure := beta * s * i / n
	onset := m.sigma * e
	recovery := m.p.Gamma * i

	return ode.State{-exposure, exposure - onset, onset - recovery, recovery}
}

func (m *SEIR) InitialState(exposed, infected float64) ode.State {
	return ode.State{m.p.Population - exposed - infected, exposed, infected, 0}
}
