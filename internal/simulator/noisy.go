package simulator

import (
	"context"
	"fmt"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/GoSim-25-26J-441/qaoa-core/internal/circuit"
	"github.com/GoSim-25-26J-441/qaoa-core/internal/hamiltonian"
	"github.com/GoSim-25-26J-441/qaoa-core/pkg/utils"
)

// NoiseModel holds depolarising error probabilities. SingleQubit applies
// after h, rx and rz; TwoQubit after rzz.
//
// A probability p is the chance that a non-identity Pauli hits the gate's
// qubits. Depolarising parameters of the form lambda, where the channel
// replaces the state with the maximally mixed one with probability lambda,
// correspond to p = lambda * (1 - 4^-n) on n qubits, so 3/4 lambda for one
// qubit and 15/16 lambda for two.
type NoiseModel struct {
	SingleQubit float64
	TwoQubit    float64
}

func (m NoiseModel) validate() error {
	if m.SingleQubit < 0 || m.SingleQubit > 1 {
		return fmt.Errorf("single qubit error probability must be in [0, 1], got %f", m.SingleQubit)
	}
	if m.TwoQubit < 0 || m.TwoQubit > 1 {
		return fmt.Errorf("two qubit error probability must be in [0, 1], got %f", m.TwoQubit)
	}
	return nil
}

func (m NoiseModel) rate(g circuit.Gate) float64 {
	if len(g.Qubits) == 2 {
		return m.TwoQubit
	}
	return m.SingleQubit
}

// Noisy samples circuits under a depolarising channel using Monte-Carlo
// Pauli trajectories: every gate is followed, with the gate's error
// probability, by a uniformly random non-identity Pauli on its qubits. Each
// trajectory yields one shot. Expectation is the mean energy over Shots
// measured outcomes.
type Noisy struct {
	Noise NoiseModel
	Shots int
	rng   *utils.RandSource
}

// NewNoisy creates a noisy sampling executor.
func NewNoisy(noise NoiseModel, shots int, seed int64) (*Noisy, error) {
	if err := noise.validate(); err != nil {
		return nil, err
	}
	if shots <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidShots, shots)
	}
	return &Noisy{Noise: noise, Shots: shots, rng: utils.NewRandSource(seed)}, nil
}

// Stream returns a copy of n drawing from sub-stream id of its seed.
func (n *Noisy) Stream(id uint64) Executor {
	return &Noisy{Noise: n.Noise, Shots: n.Shots, rng: utils.NewStreamSource(n.rng.Seed(), id)}
}

// Expectation estimates the expectation from n.Shots noisy samples.
func (n *Noisy) Expectation(ctx context.Context, c *circuit.Circuit, op *hamiltonian.CostOperator) (float64, error) {
	if op == nil {
		return 0, fmt.Errorf("cost operator is nil")
	}
	h, err := n.Sample(ctx, c, n.Shots)
	if err != nil {
		return 0, err
	}
	return ExpectationFromCounts(h, op)
}

// errorEvent is a Pauli error drawn for one gate of one trajectory.
type errorEvent struct {
	gate   int
	paulis []int // one entry per gate qubit, 0..3
}

// Sample runs shots trajectories. Trajectories without any error reuse the
// ideal output distribution.
func (n *Noisy) Sample(ctx context.Context, c *circuit.Circuit, shots int) (Histogram, error) {
	if shots <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidShots, shots)
	}
	ideal, err := run(ctx, c)
	if err != nil {
		return nil, err
	}
	idealDist := distuv.NewCategorical(ideal.probabilities(), n.rng.Source())

	h := make(Histogram)
	for shot := 0; shot < shots; shot++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		events := n.drawErrors(c)
		var x uint64
		if len(events) == 0 {
			x = uint64(idealDist.Rand())
		} else {
			st, err := n.trajectory(c, events)
			if err != nil {
				return nil, err
			}
			x = uint64(distuv.NewCategorical(st.probabilities(), n.rng.Source()).Rand())
		}
		h[hamiltonian.IndexBitstring(x, c.NumQubits)]++
	}
	return h, nil
}

func (n *Noisy) drawErrors(c *circuit.Circuit) []errorEvent {
	var events []errorEvent
	for i, g := range c.Gates {
		p := n.Noise.rate(g)
		if p == 0 || !n.rng.BernoulliBool(p) {
			continue
		}
		paulis := make([]int, len(g.Qubits))
		if len(g.Qubits) == 1 {
			paulis[0] = 1 + n.rng.Intn(3)
		} else {
			// one of the 15 non-identity two-qubit Paulis
			k := 1 + n.rng.Intn(15)
			paulis[0], paulis[1] = k/4, k%4
		}
		events = append(events, errorEvent{gate: i, paulis: paulis})
	}
	return events
}

func (n *Noisy) trajectory(c *circuit.Circuit, events []errorEvent) (*state, error) {
	st := newState(c.NumQubits)
	next := 0
	for i, g := range c.Gates {
		if err := st.apply(g); err != nil {
			return nil, err
		}
		for next < len(events) && events[next].gate == i {
			for k, q := range g.Qubits {
				st.pauli(q, events[next].paulis[k])
			}
			next++
		}
	}
	return st, nil
}
