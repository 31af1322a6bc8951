package experiment

import (
	"context"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/GoSim-25-26J-441/qaoa-core/internal/report"
	"github.com/GoSim-25-26J-441/qaoa-core/pkg/config"
	"github.com/GoSim-25-26J-441/qaoa-core/pkg/graph"
)

func triangle(t *testing.T) *graph.Graph {
	t.Helper()
	g, err := graph.NewUnweighted(3, []graph.Edge{{U: 0, V: 1}, {U: 1, V: 2}, {U: 0, V: 2}})
	require.NoError(t, err)
	return g
}

func TestRunMaxCutTriangle(t *testing.T) {
	cfg := config.Default()
	cfg.Executor.Seed = 7
	cfg.Extraction.Seed = 7

	var calls atomic.Int64
	out, err := Run(context.Background(), cfg, triangle(t),
		WithRunID("run-test"),
		WithProgress(func(evaluations int, best float64) { calls.Add(1) }))
	require.NoError(t, err)

	require.Equal(t, "run-test", out.RunID)
	require.Equal(t, "grid", out.Search.Strategy)
	require.Less(t, out.Search.Cost, 0.0)
	require.Equal(t, int64(128), calls.Load())
	require.NotNil(t, out.Search.Landscape)

	require.Len(t, out.Solution.Bitstring, 3)
	require.Equal(t, 1024, out.Solution.TotalShots)
	require.NotNil(t, out.Report.Baseline)
	require.Equal(t, -1.0, out.Report.Baseline.Energy)
	require.NotNil(t, out.Report.Distribution)
	require.Len(t, out.Report.Distribution.QAOA, 1024)
	require.Len(t, out.Report.Distribution.Random, 1024)
	require.Empty(t, out.Files)

	text, err := out.Report.Text()
	require.NoError(t, err)
	require.Contains(t, text, "Best cut value:")
}

func TestRunMWISIsolatedVertex(t *testing.T) {
	g, err := graph.New([]float64{7}, nil)
	require.NoError(t, err)
	cfg := config.Default()
	cfg.Problem = config.ProblemMWIS
	cfg.Search.GridResolution = 4

	out, err := Run(context.Background(), cfg, g)
	require.NoError(t, err)
	require.NotNil(t, out.Solution.MWIS)
	require.True(t, out.Solution.MWIS.Feasible)
	require.Equal(t, 7.0, out.Solution.MWIS.Weight)
	require.Nil(t, out.Report.Distribution)
	require.NotEmpty(t, out.RunID)
}

func TestRunStrategies(t *testing.T) {
	for _, strategy := range []string{config.StrategyNelderMead, config.StrategyHillClimb} {
		t.Run(strategy, func(t *testing.T) {
			cfg := config.Default()
			cfg.Search.Strategy = strategy
			cfg.Search.MaxIterations = 50
			cfg.Search.Seed = 3

			out, err := Run(context.Background(), cfg, triangle(t))
			require.NoError(t, err)
			require.Equal(t, strategy, out.Search.Strategy)
			require.Nil(t, out.Search.Landscape)
			require.NotEmpty(t, out.Search.History)
		})
	}
}

func TestRunSave(t *testing.T) {
	cfg := config.Default()
	cfg.Search.GridResolution = 4
	cfg.Output.Dir = filepath.Join(t.TempDir(), "output")
	cfg.Output.LandscapeCSV = true
	cfg.Output.DistributionCSV = true

	out, err := Run(context.Background(), cfg, triangle(t), WithSave())
	require.NoError(t, err)
	require.Len(t, out.Files, 4)
	require.Equal(t, report.MaxCutReportFile, filepath.Base(out.Files[0]))
}

func TestRunErrors(t *testing.T) {
	ctx := context.Background()

	_, err := Run(ctx, config.Default(), nil)
	require.Error(t, err)

	cfg := config.Default()
	cfg.Search.Strategy = "annealing"
	_, err = Run(ctx, cfg, triangle(t))
	require.Error(t, err)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = Run(cancelled, config.Default(), triangle(t))
	require.ErrorIs(t, err, context.Canceled)
}

func TestCompareStrategiesAndDepths(t *testing.T) {
	cfg := config.Default()
	cfg.Search.GridResolution = 6
	cfg.Search.MaxIterations = 30
	cfg.Search.Seed = 5

	cmp, err := Compare(context.Background(), cfg, triangle(t),
		[]string{config.StrategyGrid, config.StrategyHillClimb}, []int{1, 2})
	require.NoError(t, err)

	require.Len(t, cmp.Rows, 4)
	require.Equal(t, "grid p=1", cmp.Rows[0].Label)
	require.Equal(t, "hill_climb p=1", cmp.Rows[1].Label)
	require.Equal(t, "grid p=2", cmp.Rows[2].Label)
	require.Equal(t, 2, cmp.Rows[3].Depth)
	require.Equal(t, 0.0, cmp.Rows[0].Improvement)

	require.NotNil(t, cmp.GroundEnergy)
	require.Equal(t, -1.0, *cmp.GroundEnergy)
	for _, row := range cmp.Rows {
		require.LessOrEqual(t, row.ApproximationRatio, 1.0+1e-9, row.Label)
	}

	require.Len(t, cmp.Summary.Entries, 4)
	best := cmp.Rows[0]
	for _, row := range cmp.Rows {
		if row.Result.Cost < best.Result.Cost {
			best = row
		}
	}
	require.Equal(t, best.Label, cmp.Summary.BestStrategy)
	require.Contains(t, []string{"grid p=1", "hill_climb p=1", "grid p=2", "hill_climb p=2"}, cmp.Summary.Cheapest)
	require.Greater(t, cmp.Rows[0].ApproximationRatio, 0.0)
}

func TestCompareDefaultsToConfiguredStrategy(t *testing.T) {
	cfg := config.Default()
	cfg.Search.GridResolution = 4

	cmp, err := Compare(context.Background(), cfg, triangle(t), nil, nil)
	require.NoError(t, err)
	require.Len(t, cmp.Rows, 1)
	require.Equal(t, "grid p=1", cmp.Summary.BestStrategy)

	_, err = Compare(context.Background(), cfg, triangle(t), []string{"annealing"}, nil)
	require.Error(t, err)
}
