// Package simulator executes QAOA circuits on a classical statevector
// simulator, returning either the cost expectation or a shot histogram.
package simulator

import (
	"context"
	"errors"
	"fmt"

	"github.com/GoSim-25-26J-441/qaoa-core/internal/circuit"
	"github.com/GoSim-25-26J-441/qaoa-core/internal/hamiltonian"
	"github.com/GoSim-25-26J-441/qaoa-core/pkg/config"
)

// MaxQubits is the largest register the dense simulator accepts.
const MaxQubits = 24

var (
	ErrTooManyQubits = errors.New("too many qubits for statevector simulation")
	ErrInvalidShots  = errors.New("shots must be positive")
	ErrUnknownGate   = errors.New("unknown gate")
	ErrNilCircuit    = errors.New("circuit is nil")
)

// Executor runs circuits. Implementations must be safe for concurrent use;
// the grid search evaluates points from several goroutines.
type Executor interface {
	// Expectation returns the expected value of op in the circuit's output
	// state.
	Expectation(ctx context.Context, c *circuit.Circuit, op *hamiltonian.CostOperator) (float64, error)
	// Sample measures every qubit shots times.
	Sample(ctx context.Context, c *circuit.Circuit, shots int) (Histogram, error)
}

// Streamer is implemented by executors that draw random numbers. Stream
// returns an executor whose draws come from sub-stream id of the executor's
// seed, so an evaluation keyed by id sees the same draws whatever order or
// goroutine it runs in.
type Streamer interface {
	Stream(id uint64) Executor
}

// UnknownModeError is returned for an unrecognised executor mode.
type UnknownModeError struct {
	Mode string
}

func (e *UnknownModeError) Error() string {
	return fmt.Sprintf("unknown executor mode: %q (must be statevector, sampled, or noisy)", e.Mode)
}

// New builds the executor described by cfg.
func New(cfg config.Executor) (Executor, error) {
	switch cfg.Mode {
	case "", config.ModeStatevector:
		return NewStatevector(cfg.Seed), nil
	case config.ModeSampled:
		if cfg.Shots <= 0 {
			return nil, fmt.Errorf("%w: sampled mode with %d shots", ErrInvalidShots, cfg.Shots)
		}
		return NewStatevector(cfg.Seed, WithSampledExpectation(cfg.Shots)), nil
	case config.ModeNoisy:
		return NewNoisy(NoiseModel{
			SingleQubit: cfg.Noise.SingleQubit,
			TwoQubit:    cfg.Noise.TwoQubit,
		}, cfg.Shots, cfg.Seed)
	default:
		return nil, &UnknownModeError{Mode: cfg.Mode}
	}
}

func checkCircuit(c *circuit.Circuit) error {
	if c == nil {
		return ErrNilCircuit
	}
	if c.NumQubits > MaxQubits {
		return fmt.Errorf("%w: %d > %d", ErrTooManyQubits, c.NumQubits, MaxQubits)
	}
	if c.NumQubits < 1 {
		return fmt.Errorf("circuit has %d qubits", c.NumQubits)
	}
	return nil
}

// run evolves |0...0> through every gate of c.
func run(ctx context.Context, c *circuit.Circuit) (*state, error) {
	if err := checkCircuit(c); err != nil {
		return nil, err
	}
	s := newState(c.NumQubits)
	for i, g := range c.Gates {
		if i%64 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		if err := s.apply(g); err != nil {
			return nil, err
		}
	}
	return s, nil
}
