package solution

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/GoSim-25-26J-441/qaoa-core/internal/circuit"
	"github.com/GoSim-25-26J-441/qaoa-core/internal/hamiltonian"
	"github.com/GoSim-25-26J-441/qaoa-core/internal/simulator"
	"github.com/GoSim-25-26J-441/qaoa-core/pkg/graph"
	"github.com/GoSim-25-26J-441/qaoa-core/pkg/utils"
)

// fixedExecutor returns the same histogram for every circuit.
type fixedExecutor struct {
	counts simulator.Histogram
	shots  int
}

func (f *fixedExecutor) Expectation(context.Context, *circuit.Circuit, *hamiltonian.CostOperator) (float64, error) {
	return 0, nil
}

func (f *fixedExecutor) Sample(_ context.Context, _ *circuit.Circuit, shots int) (simulator.Histogram, error) {
	f.shots = shots
	return f.counts, nil
}

func p1(beta, gamma float64) circuit.Angles {
	return circuit.Angles{Betas: []float64{beta}, Gammas: []float64{gamma}}
}

func build(t *testing.T, g *graph.Graph, kind hamiltonian.ProblemKind) *hamiltonian.CostOperator {
	t.Helper()
	op, err := hamiltonian.Build(g, kind)
	require.NoError(t, err)
	return op
}

func TestExtractMaxCut(t *testing.T) {
	g, err := graph.NewUnweighted(2, []graph.Edge{{U: 0, V: 1}})
	require.NoError(t, err)
	op := build(t, g, hamiltonian.MaxCut)
	exec := &fixedExecutor{counts: simulator.Histogram{"01": 600, "10": 400, "00": 24}}

	sol, err := Extract(context.Background(), exec, p1(0.4, 1.2), op, g, hamiltonian.MaxCut, Options{})
	require.NoError(t, err)
	require.Equal(t, DefaultShots, exec.shots)
	require.Equal(t, "01", sol.Bitstring)
	require.Equal(t, 600, sol.Count)
	require.Equal(t, 1024, sol.TotalShots)
	require.Equal(t, 1, sol.CutValue)
	require.Equal(t, -1.0, sol.Energy)
	require.Nil(t, sol.MWIS)
	require.Equal(t, p1(0.4, 1.2), sol.Angles)
}

func TestExtractTieBreak(t *testing.T) {
	g, err := graph.NewUnweighted(2, []graph.Edge{{U: 0, V: 1}})
	require.NoError(t, err)
	op := build(t, g, hamiltonian.MaxCut)
	exec := &fixedExecutor{counts: simulator.Histogram{"10": 512, "01": 512}}

	sol, err := Extract(context.Background(), exec, p1(0.4, 1.2), op, g, hamiltonian.MaxCut, Options{Shots: 1024})
	require.NoError(t, err)
	require.Equal(t, "01", sol.Bitstring)
}

func TestExtractIsolatedWeightedVertex(t *testing.T) {
	g, err := graph.New([]float64{7}, nil)
	require.NoError(t, err)
	op := build(t, g, hamiltonian.MWIS)

	sol, err := Extract(context.Background(), simulator.NewStatevector(3), p1(0.3, 0.9), op, g, hamiltonian.MWIS, Options{Shots: 256})
	require.NoError(t, err)
	require.NotNil(t, sol.MWIS)
	require.True(t, sol.MWIS.Feasible)
	require.Equal(t, 7.0, sol.MWIS.Weight)
	require.Equal(t, 256, sol.TotalShots)
}

func TestExtractErrors(t *testing.T) {
	g, err := graph.NewUnweighted(2, []graph.Edge{{U: 0, V: 1}})
	require.NoError(t, err)
	op := build(t, g, hamiltonian.MaxCut)
	ctx := context.Background()

	_, err = Extract(ctx, &fixedExecutor{counts: simulator.Histogram{}}, p1(0, 0), op, g, hamiltonian.MaxCut, Options{})
	require.ErrorIs(t, err, ErrEmptyHistogram)

	_, err = Extract(ctx, &fixedExecutor{counts: simulator.Histogram{"011": 1}}, p1(0, 0), op, g, hamiltonian.MaxCut, Options{})
	require.ErrorIs(t, err, hamiltonian.ErrBitstringLength)

	_, err = Extract(ctx, &fixedExecutor{}, circuit.Angles{Betas: []float64{1}}, op, g, hamiltonian.MaxCut, Options{})
	require.ErrorIs(t, err, circuit.ErrAngleMismatch)

	g3, err := graph.NewUnweighted(3, nil)
	require.NoError(t, err)
	_, err = Extract(ctx, &fixedExecutor{}, p1(0, 0), op, g3, hamiltonian.MaxCut, Options{})
	require.ErrorIs(t, err, circuit.ErrQubitCount)

	_, err = Extract(ctx, nil, p1(0, 0), op, g, hamiltonian.MaxCut, Options{})
	require.Error(t, err)

	_, err = Extract(ctx, simulator.NewStatevector(1), p1(0, 0), op, g, hamiltonian.MaxCut, Options{Shots: -5})
	require.ErrorIs(t, err, simulator.ErrInvalidShots)
}

func TestDecodeIdempotent(t *testing.T) {
	g, err := graph.New([]float64{1, 5, 1, 2}, []graph.Edge{{U: 0, V: 1}, {U: 1, V: 2}, {U: 2, V: 3}})
	require.NoError(t, err)

	for _, kind := range []hamiltonian.ProblemKind{hamiltonian.MaxCut, hamiltonian.MWIS} {
		op := build(t, g, kind)
		for x := uint64(0); x < 16; x++ {
			bits := hamiltonian.IndexBitstring(x, 4)
			first, err := Decode(bits, op, g, kind)
			require.NoError(t, err)
			second, err := Decode(first.Bitstring, op, g, kind)
			require.NoError(t, err)
			require.Equal(t, first, second)
		}
	}
}

func TestDecodeUnknownKind(t *testing.T) {
	g, err := graph.NewUnweighted(1, nil)
	require.NoError(t, err)
	_, err = Decode("0", nil, g, hamiltonian.ProblemKind("tsp"))
	var unknown *hamiltonian.UnknownProblemError
	require.ErrorAs(t, err, &unknown)
}

func TestRandomSamples(t *testing.T) {
	a := RandomSamples(5, 100, utils.NewRandSource(9))
	b := RandomSamples(5, 100, utils.NewRandSource(9))
	require.Equal(t, a, b)
	require.Len(t, a, 100)
	for _, s := range a {
		require.Len(t, s, 5)
	}
}

func TestEnergyDistribution(t *testing.T) {
	g, err := graph.NewUnweighted(3, []graph.Edge{{U: 0, V: 1}, {U: 1, V: 2}, {U: 0, V: 2}})
	require.NoError(t, err)
	counts := simulator.Histogram{"010": 3, "000": 1}

	d, err := EnergyDistribution(counts, []string{"111", "011"}, g)
	require.NoError(t, err)
	require.Equal(t, []float64{-2, -2, -2, 0}, d.QAOA)
	require.Equal(t, []float64{0, -2}, d.Random)
	require.InDelta(t, -1.5, d.QAOAMean, 1e-12)
	require.InDelta(t, -1.0, d.RandomMean, 1e-12)

	_, err = EnergyDistribution(counts, []string{"1"}, g)
	require.ErrorIs(t, err, hamiltonian.ErrBitstringLength)
}
