package experiment

import (
	"context"
	"fmt"

	"github.com/GoSim-25-26J-441/qaoa-core/internal/hamiltonian"
	"github.com/GoSim-25-26J-441/qaoa-core/internal/search"
	"github.com/GoSim-25-26J-441/qaoa-core/internal/simulator"
	"github.com/GoSim-25-26J-441/qaoa-core/pkg/config"
	"github.com/GoSim-25-26J-441/qaoa-core/pkg/graph"
	"github.com/GoSim-25-26J-441/qaoa-core/pkg/logger"
)

// ComparisonRow is one strategy and depth in a comparison.
type ComparisonRow struct {
	Label              string         `json:"label"`
	Depth              int            `json:"depth"`
	Result             *search.Result `json:"result"`
	ApproximationRatio float64        `json:"approximation_ratio,omitempty"`
	Improvement        float64        `json:"improvement"` // percent below the first row's cost
}

// Comparison holds the searches of Compare and their ranking.
type Comparison struct {
	Rows         []ComparisonRow            `json:"rows"`
	Summary      *search.StrategyComparison `json:"summary"`
	GroundEnergy *float64                   `json:"ground_energy,omitempty"`
}

// Compare searches g once per strategy and depth with the rest of cfg
// unchanged, and ranks the results. Every search gets a fresh executor from
// cfg.Executor, so sampled runs start from the same seed. Solution
// extraction is skipped.
func Compare(ctx context.Context, cfg *config.Config, g *graph.Graph, strategies []string, depths []int, opts ...Option) (*Comparison, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if g == nil {
		return nil, fmt.Errorf("graph is nil")
	}
	if len(strategies) == 0 {
		strategies = []string{cfg.Search.Strategy}
	}
	if len(depths) == 0 {
		depths = []int{cfg.Search.Depth}
	}

	o := runOptions{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.log == nil {
		o.log = logger.Component("experiment")
	}

	kind, err := hamiltonian.ParseProblemKind(cfg.Problem)
	if err != nil {
		return nil, err
	}
	op, err := hamiltonian.Build(g, kind)
	if err != nil {
		return nil, fmt.Errorf("build cost operator: %w", err)
	}

	cmp := &Comparison{}
	if g.NumVertices() <= MaxBaselineVertices {
		_, energy, err := op.GroundState()
		if err != nil {
			return nil, fmt.Errorf("ground state: %w", err)
		}
		cmp.GroundEnergy = &energy
	}

	var results []*search.Result
	for _, depth := range depths {
		for _, name := range strategies {
			run := *cfg
			run.Search.Strategy = name
			run.Search.Depth = depth
			if len(run.Search.InitialBetas) != depth {
				run.Search.InitialBetas, run.Search.InitialGammas = nil, nil
			}
			if err := config.Validate(&run); err != nil {
				return nil, err
			}

			exec, err := simulator.New(run.Executor)
			if err != nil {
				return nil, fmt.Errorf("create executor: %w", err)
			}
			strategy, err := search.NewStrategy(run.Search, exec,
				search.WithProgress(o.progress),
				search.WithLogger(o.log.With("component", "search")))
			if err != nil {
				return nil, err
			}
			res, err := strategy.Search(ctx, op.NumQubits, depth, op)
			if err != nil {
				return nil, fmt.Errorf("%s search at depth %d: %w", name, depth, err)
			}

			labelled := *res
			labelled.Strategy = fmt.Sprintf("%s p=%d", name, depth)
			results = append(results, &labelled)
			o.log.Info("comparison search finished",
				"strategy", labelled.Strategy,
				"cost", labelled.Cost,
				"evaluations", labelled.Evaluations)
		}
	}

	cmp.Summary, err = search.Compare(results...)
	if err != nil {
		return nil, err
	}
	for _, res := range results {
		row := ComparisonRow{
			Label:       res.Strategy,
			Depth:       res.Angles.Depth(),
			Result:      res,
			Improvement: search.ImprovementPercentage(results[0].Cost, res.Cost),
		}
		if cmp.GroundEnergy != nil {
			row.ApproximationRatio = search.ApproximationRatio(res.Cost, *cmp.GroundEnergy)
		}
		cmp.Rows = append(cmp.Rows, row)
	}
	return cmp, nil
}
