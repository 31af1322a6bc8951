package simulator

import (
	"context"
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/GoSim-25-26J-441/qaoa-core/internal/circuit"
	"github.com/GoSim-25-26J-441/qaoa-core/internal/hamiltonian"
	"github.com/GoSim-25-26J-441/qaoa-core/pkg/utils"
)

// Statevector is a noiseless executor. Expectation is exact unless
// WithSampledExpectation is set; Sample draws from the output distribution
// using a seeded source.
type Statevector struct {
	rng          *utils.RandSource
	sampledShots int
}

// StatevectorOption configures a Statevector executor.
type StatevectorOption func(*Statevector)

// WithSampledExpectation makes Expectation estimate the mean energy from
// shots samples instead of computing it from the amplitudes.
func WithSampledExpectation(shots int) StatevectorOption {
	return func(s *Statevector) {
		s.sampledShots = shots
	}
}

// NewStatevector creates a statevector executor. A zero seed draws one from
// the clock.
func NewStatevector(seed int64, opts ...StatevectorOption) *Statevector {
	s := &Statevector{rng: utils.NewRandSource(seed)}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Stream returns a copy of s drawing from sub-stream id of its seed.
func (s *Statevector) Stream(id uint64) Executor {
	return &Statevector{
		rng:          utils.NewStreamSource(s.rng.Seed(), id),
		sampledShots: s.sampledShots,
	}
}

// Probabilities returns the outcome distribution of c indexed by basis state.
func (s *Statevector) Probabilities(ctx context.Context, c *circuit.Circuit) ([]float64, error) {
	st, err := run(ctx, c)
	if err != nil {
		return nil, err
	}
	return st.probabilities(), nil
}

// Expectation returns sum_x |a_x|^2 E(x).
func (s *Statevector) Expectation(ctx context.Context, c *circuit.Circuit, op *hamiltonian.CostOperator) (float64, error) {
	if op == nil {
		return 0, fmt.Errorf("cost operator is nil")
	}
	if c != nil && c.NumQubits != op.NumQubits {
		return 0, fmt.Errorf("circuit has %d qubits, operator has %d", c.NumQubits, op.NumQubits)
	}
	if s.sampledShots > 0 {
		h, err := s.Sample(ctx, c, s.sampledShots)
		if err != nil {
			return 0, err
		}
		return ExpectationFromCounts(h, op)
	}

	probs, err := s.Probabilities(ctx, c)
	if err != nil {
		return 0, err
	}
	diag, err := op.Diagonal()
	if err != nil {
		return 0, err
	}
	return floats.Dot(probs, diag), nil
}

// Sample measures every qubit shots times.
func (s *Statevector) Sample(ctx context.Context, c *circuit.Circuit, shots int) (Histogram, error) {
	if shots <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidShots, shots)
	}
	probs, err := s.Probabilities(ctx, c)
	if err != nil {
		return nil, err
	}
	return sampleDistribution(ctx, probs, c.NumQubits, shots, s.rng)
}

func sampleDistribution(ctx context.Context, probs []float64, n, shots int, rng *utils.RandSource) (Histogram, error) {
	dist := distuv.NewCategorical(probs, rng.Source())
	h := make(Histogram)
	for i := 0; i < shots; i++ {
		if i%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		x := uint64(dist.Rand())
		h[hamiltonian.IndexBitstring(x, n)]++
	}
	return h, nil
}
