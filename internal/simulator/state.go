package simulator

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/GoSim-25-26J-441/qaoa-core/internal/circuit"
)

// state is a dense statevector. Qubit q is bit q of the amplitude index.
type state struct {
	amps []complex128
	n    int
}

func newState(n int) *state {
	amps := make([]complex128, 1<<uint(n))
	amps[0] = 1
	return &state{amps: amps, n: n}
}

func (s *state) apply(g circuit.Gate) error {
	for _, q := range g.Qubits {
		if q < 0 || q >= s.n {
			return fmt.Errorf("gate %s: qubit %d out of range for %d qubits", g.Kind, q, s.n)
		}
	}
	switch g.Kind {
	case circuit.GateH:
		s.h(g.Qubits[0])
	case circuit.GateRX:
		s.rx(g.Qubits[0], g.Angle)
	case circuit.GateRZ:
		s.rz(g.Qubits[0], g.Angle)
	case circuit.GateRZZ:
		if len(g.Qubits) != 2 {
			return fmt.Errorf("gate rzz needs two qubits, got %d", len(g.Qubits))
		}
		s.rzz(g.Qubits[0], g.Qubits[1], g.Angle)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownGate, g.Kind)
	}
	return nil
}

func (s *state) h(q int) {
	f := complex(1/math.Sqrt2, 0)
	bit := 1 << uint(q)
	for i := range s.amps {
		if i&bit == 0 {
			j := i | bit
			a, b := s.amps[i], s.amps[j]
			s.amps[i] = f * (a + b)
			s.amps[j] = f * (a - b)
		}
	}
}

// rx applies exp(-i·theta/2·X).
func (s *state) rx(q int, theta float64) {
	c := complex(math.Cos(theta/2), 0)
	js := complex(0, -math.Sin(theta/2))
	bit := 1 << uint(q)
	for i := range s.amps {
		if i&bit == 0 {
			j := i | bit
			a, b := s.amps[i], s.amps[j]
			s.amps[i] = c*a + js*b
			s.amps[j] = js*a + c*b
		}
	}
}

// rz applies exp(-i·theta/2·Z).
func (s *state) rz(q int, theta float64) {
	lo := cmplx.Exp(complex(0, -theta/2))
	hi := cmplx.Exp(complex(0, theta/2))
	bit := 1 << uint(q)
	for i := range s.amps {
		if i&bit == 0 {
			s.amps[i] *= lo
		} else {
			s.amps[i] *= hi
		}
	}
}

// rzz applies exp(-i·theta/2·Z_u Z_v).
func (s *state) rzz(u, v int, theta float64) {
	even := cmplx.Exp(complex(0, -theta/2))
	odd := cmplx.Exp(complex(0, theta/2))
	bu, bv := 1<<uint(u), 1<<uint(v)
	for i := range s.amps {
		if (i&bu == 0) == (i&bv == 0) {
			s.amps[i] *= even
		} else {
			s.amps[i] *= odd
		}
	}
}

func (s *state) x(q int) {
	bit := 1 << uint(q)
	for i := range s.amps {
		if i&bit == 0 {
			j := i | bit
			s.amps[i], s.amps[j] = s.amps[j], s.amps[i]
		}
	}
}

func (s *state) y(q int) {
	bit := 1 << uint(q)
	for i := range s.amps {
		if i&bit == 0 {
			j := i | bit
			s.amps[i], s.amps[j] = -1i*s.amps[j], 1i*s.amps[i]
		}
	}
}

func (s *state) z(q int) {
	bit := 1 << uint(q)
	for i := range s.amps {
		if i&bit != 0 {
			s.amps[i] = -s.amps[i]
		}
	}
}

// pauli applies X (1), Y (2) or Z (3) to q; 0 is the identity.
func (s *state) pauli(q, p int) {
	switch p {
	case 1:
		s.x(q)
	case 2:
		s.y(q)
	case 3:
		s.z(q)
	}
}

func (s *state) probabilities() []float64 {
	p := make([]float64, len(s.amps))
	for i, a := range s.amps {
		p[i] = real(a)*real(a) + imag(a)*imag(a)
	}
	return p
}
