package epidemic

import (
	"errors"
	"math"
	"testing"

	"github.com/mohar-s/episweep/internal/ode"
)

func TestSIR_DerivativesConserveMass(t *testing.T) {
	cases := []struct {
		name  string
		p     Params
		state ode.State
	}{
		{"start of outbreak", Params{R0: 3, Gamma: 0.1, Population: 1000}, ode.State{999, 1, 0}},
		{"mid outbreak", Params{R0: 2.5, Gamma: 0.2, Population: 1e6}, ode.State{4e5, 2e5, 4e5}},
		{"everyone recovered", Params{R0: 1.2, Gamma: 0.05, Population: 500}, ode.State{0, 0, 500}},
		{"threshold R0", Params{R0: 1, Gamma: 0.1, Population: 1000}, ode.State{900, 50, 50}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := NewSIR(tc.p).Derive(tc.state, 0)
			sum := d[0] + d[1] + d[2]
			if math.Abs(sum) > 1e-9*tc.p.Population {
				t.Errorf("dS+dI+dR = %g, want 0", sum)
			}
		})
	}
}

func TestSIR_DerivativeValues(t *testing.T) {
	p := Params{R0: 3, Gamma: 0.1, Population: 1000}
	m := NewSIR(p)

	// beta = 0.3; S=999, I=1: dS = -0.3*999*1/1000
	d := m.Derive(ode.State{999, 1, 0}, 0)

	wantDS := -0.3 * 999.0 / 1000.0
	if math.Abs(d[0]-wantDS) > 1e-12 {
		t.Errorf("dS = %g, want %g", d[0], wantDS)
	}
	wantDR := 0.1
	if math.Abs(d[2]-wantDR) > 1e-12 {
		t.Errorf("dR = %g, want %g", d[2], wantDR)
	}
	if math.Abs(d[1]-(-wantDS-wantDR)) > 1e-12 {
		t.Errorf("dI = %g, want %g", d[1], -wantDS-wantDR)
	}
}

func TestParams_Beta(t *testing.T) {
	p := Params{R0: 2.5, Gamma: 0.2, Population: 100}
	if p.Beta() != 0.5 {
		t.Errorf("beta = %g, want 0.5", p.Beta())
	}
}

func TestParams_Validate(t *testing.T) {
	valid := Params{R0: 2, Gamma: 0.1, Population: 1000}
	if err := valid.Validate(); err != nil {
		t.Errorf("valid params rejected: %v", err)
	}

	bad := []Params{
		{R0: 0, Gamma: 0.1, Population: 1000},
		{R0: -1, Gamma: 0.1, Population: 1000},
		{R0: 2, Gamma: 0, Population: 1000},
		{R0: 2, Gamma: 0.1, Population: 0},
	}
	for _, p := range bad {
		if err := p.Validate(); !errors.Is(err, ErrInvalidParams) {
			t.Errorf("params %+v: expected ErrInvalidParams, got %v", p, err)
		}
	}
}

func TestSIR_InitialState(t *testing.T) {
	m := NewSIR(Params{R0: 2, Gamma: 0.1, Population: 1000})
	y0 := m.InitialState(1)

	if y0[0] != 999 || y0[1] != 1 || y0[2] != 0 {
		t.Errorf("initial state = %v, want [999 1 0]", y0)
	}
}

func TestSEIR_DerivativesConserveMass(t *testing.T) {
	m := NewSEIR(Params{R0: 4, Gamma: 0.1, Population: 1e6}, 0.2)
	d := m.Derive(ode.State{9e5, 5e4, 3e4, 2e4}, 0)

	sum := d[0] + d[1] + d[2] + d[3]
	if math.Abs(sum) > 1e-9*1e6 {
		t.Errorf("dS+dE+dI+dR = %g, want 0", sum)
	}
}

func TestSEIR_Validate(t *testing.T) {
	if err := NewSEIR(Params{R0: 2, Gamma: 0.1, Population: 100}, 0).Validate(); !errors.Is(err, ErrInvalidParams) {
		t.Error("expected ErrInvalidParams for zero sigma")
	}
	if err := NewSEIR(Params{R0: 2, Gamma: 0.1, Population: 100}, 0.2).Validate(); err != nil {
		t.Errorf("valid SEIR rejected: %v", err)
	}
}
