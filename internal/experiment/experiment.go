// Package experiment runs the full QAOA pipeline for one graph: encode the
// problem, search for angles, sample the answer and assemble the report.
package experiment

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/GoSim-25-26J-441/qaoa-core/internal/circuit"
	"github.com/GoSim-25-26J-441/qaoa-core/internal/hamiltonian"
	"github.com/GoSim-25-26J-441/qaoa-core/internal/report"
	"github.com/GoSim-25-26J-441/qaoa-core/internal/search"
	"github.com/GoSim-25-26J-441/qaoa-core/internal/simulator"
	"github.com/GoSim-25-26J-441/qaoa-core/internal/solution"
	"github.com/GoSim-25-26J-441/qaoa-core/pkg/config"
	"github.com/GoSim-25-26J-441/qaoa-core/pkg/graph"
	"github.com/GoSim-25-26J-441/qaoa-core/pkg/logger"
	"github.com/GoSim-25-26J-441/qaoa-core/pkg/utils"
)

// MaxBaselineVertices bounds the exhaustive ground-state baseline.
const MaxBaselineVertices = 20

// Outcome holds every artefact of a finished run.
type Outcome struct {
	RunID    string                    `json:"run_id"`
	Operator *hamiltonian.CostOperator `json:"-"`
	Search   *search.Result            `json:"search"`
	Solution *solution.Solution        `json:"solution"`
	Report   *report.Report            `json:"report"`
	Files    []string                  `json:"files,omitempty"`
	Duration time.Duration             `json:"duration"`
}

// Option configures Run.
type Option func(*runOptions)

type runOptions struct {
	runID    string
	progress search.ProgressFunc
	log      *slog.Logger
	save     bool
}

// WithRunID fixes the run ID instead of generating one.
func WithRunID(id string) Option {
	return func(o *runOptions) {
		o.runID = id
	}
}

// WithProgress forwards search progress to fn.
func WithProgress(fn search.ProgressFunc) Option {
	return func(o *runOptions) {
		o.progress = fn
	}
}

// WithLogger overrides the pipeline logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *runOptions) {
		o.log = l
	}
}

// WithSave writes the report files to cfg.Output.Dir.
func WithSave() Option {
	return func(o *runOptions) {
		o.save = true
	}
}

// Run executes the pipeline on g with the settings in cfg.
func Run(ctx context.Context, cfg *config.Config, g *graph.Graph, opts ...Option) (*Outcome, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if g == nil {
		return nil, fmt.Errorf("graph is nil")
	}
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}

	o := runOptions{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.runID == "" {
		o.runID = utils.GenerateRunID()
	}
	if o.log == nil {
		o.log = logger.Component("experiment")
	}
	log := o.log.With("run_id", o.runID)
	start := time.Now()

	kind, err := hamiltonian.ParseProblemKind(cfg.Problem)
	if err != nil {
		return nil, err
	}
	op, err := hamiltonian.Build(g, kind)
	if err != nil {
		return nil, fmt.Errorf("build cost operator: %w", err)
	}
	log.Info("cost operator built",
		"problem", string(kind),
		"qubits", op.NumQubits,
		"terms", len(op.Terms))

	exec, err := simulator.New(cfg.Executor)
	if err != nil {
		return nil, fmt.Errorf("create executor: %w", err)
	}

	strategy, err := search.NewStrategy(cfg.Search, exec,
		search.WithProgress(o.progress),
		search.WithLogger(log.With("component", "search")))
	if err != nil {
		return nil, err
	}
	res, err := strategy.Search(ctx, op.NumQubits, cfg.Search.Depth, op)
	if err != nil {
		return nil, fmt.Errorf("%s search: %w", strategy.Name(), err)
	}
	if c, err := circuit.BuildAngles(res.Angles, op); err == nil {
		log.Debug("optimal circuit", "angles", res.Angles.String(), "gates", c.Summary(), "depth", c.Depth())
	}

	sol, err := solution.Extract(ctx, exec, res.Angles, op, g, kind, solution.Options{Shots: cfg.Extraction.Shots})
	if err != nil {
		return nil, fmt.Errorf("extract solution: %w", err)
	}

	rep := &report.Report{
		RunID:       o.runID,
		Problem:     kind,
		NumVertices: g.NumVertices(),
		NumEdges:    g.NumEdges(),
		Search:      res,
		Solution:    sol,
	}
	if g.NumVertices() <= MaxBaselineVertices {
		bits, energy, err := op.GroundState()
		if err != nil {
			return nil, fmt.Errorf("ground state: %w", err)
		}
		rep.Baseline = &report.Baseline{Bitstring: bits, Energy: energy}
	}
	if kind == hamiltonian.MaxCut && cfg.Extraction.RandomSamples > 0 {
		random := solution.RandomSamples(g.NumVertices(), cfg.Extraction.RandomSamples, utils.NewRandSource(cfg.Extraction.Seed))
		dist, err := solution.EnergyDistribution(sol.Counts, random, g)
		if err != nil {
			return nil, fmt.Errorf("energy distribution: %w", err)
		}
		rep.Distribution = dist
	}

	out := &Outcome{
		RunID:    o.runID,
		Operator: op,
		Search:   res,
		Solution: sol,
		Report:   rep,
	}
	if o.save {
		out.Files, err = rep.Save(cfg.Output.Dir, report.SaveOptions{
			Landscape:    cfg.Output.LandscapeCSV,
			Distribution: cfg.Output.DistributionCSV,
		})
		if err != nil {
			return nil, fmt.Errorf("save report: %w", err)
		}
	}
	out.Duration = time.Since(start)

	log.Info("run finished",
		"strategy", res.Strategy,
		"cost", res.Cost,
		"evaluations", res.Evaluations,
		"bitstring", sol.Bitstring,
		"duration", out.Duration)
	return out, nil
}
