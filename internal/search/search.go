// Package search finds QAOA angles that minimise the expected cost of a
// cost operator. Every strategy evaluates angles the same way: build the
// ansatz, ask the executor for the expectation, compare the scalar.
package search

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/GoSim-25-26J-441/qaoa-core/internal/circuit"
	"github.com/GoSim-25-26J-441/qaoa-core/internal/hamiltonian"
	"github.com/GoSim-25-26J-441/qaoa-core/internal/simulator"
	"github.com/GoSim-25-26J-441/qaoa-core/pkg/config"
	"github.com/GoSim-25-26J-441/qaoa-core/pkg/logger"
)

var (
	ErrGridTooLarge  = errors.New("grid has too many points")
	ErrGridTooCoarse = errors.New("grid resolution must be at least 2")
	ErrNilExecutor   = errors.New("executor is nil")
)

// Strategy searches the angle space of a depth-p ansatz.
type Strategy interface {
	Search(ctx context.Context, numQubits, depth int, op *hamiltonian.CostOperator) (*Result, error)
	Name() string
}

// Step is one entry of a strategy's search history.
type Step struct {
	Iteration int            `json:"iteration"`
	Cost      float64        `json:"cost"`
	Angles    circuit.Angles `json:"angles"`
}

// Result is the outcome of a search.
type Result struct {
	Strategy    string         `json:"strategy"`
	Angles      circuit.Angles `json:"angles"`
	Cost        float64        `json:"cost"`
	Evaluations int            `json:"evaluations"`
	Iterations  int            `json:"iterations"`
	Converged   bool           `json:"converged"`
	Reason      string         `json:"reason"`
	History     []Step         `json:"history,omitempty"`
	Landscape   *Landscape     `json:"landscape,omitempty"`
	Duration    time.Duration  `json:"duration"`
}

// ProgressFunc receives the running evaluation count and the best cost seen.
// Calls are serialised.
type ProgressFunc func(evaluations int, best float64)

// Option configures a strategy.
type Option func(*options)

type options struct {
	progress ProgressFunc
	log      *slog.Logger
}

// WithProgress installs a progress callback.
func WithProgress(fn ProgressFunc) Option {
	return func(o *options) {
		o.progress = fn
	}
}

// WithLogger overrides the strategy logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.log = l
	}
}

func buildOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.log == nil {
		o.log = logger.Component("search")
	}
	return o
}

// UnknownStrategyError indicates an unknown strategy name
type UnknownStrategyError struct {
	Strategy string
}

func (e *UnknownStrategyError) Error() string {
	return "unknown search strategy: " + e.Strategy
}

// NewStrategy creates the strategy named by cfg.Strategy.
func NewStrategy(cfg config.Search, exec simulator.Executor, opts ...Option) (Strategy, error) {
	if exec == nil {
		return nil, ErrNilExecutor
	}
	start, hasStart, err := startAngles(cfg)
	if err != nil {
		return nil, err
	}
	switch cfg.Strategy {
	case config.StrategyGrid:
		g := NewGrid(exec, cfg.GridResolution, opts...)
		g.Workers = cfg.Workers
		g.MaxPoints = cfg.MaxPoints
		return g, nil
	case config.StrategyNelderMead:
		nm := NewNelderMead(exec, cfg.MaxIterations, cfg.Seed, opts...)
		nm.MaxEvaluations = cfg.MaxEvaluations
		if hasStart {
			nm.WithStart(start)
		}
		return nm, nil
	case config.StrategyHillClimb:
		explorer, err := NewAngleExplorer(cfg.Exploration)
		if err != nil {
			return nil, err
		}
		convergence, err := NewConvergenceStrategy(cfg.Convergence)
		if err != nil {
			return nil, err
		}
		hc := NewHillClimb(exec, cfg.MaxIterations, cfg.StepSize, cfg.Seed, opts...)
		hc.WithExplorer(explorer).WithConvergence(convergence)
		if hasStart {
			hc.WithStart(start)
		}
		return hc, nil
	default:
		return nil, &UnknownStrategyError{Strategy: cfg.Strategy}
	}
}

// startAngles returns the configured start point, if any.
func startAngles(cfg config.Search) (circuit.Angles, bool, error) {
	if len(cfg.InitialBetas) == 0 && len(cfg.InitialGammas) == 0 {
		return circuit.Angles{}, false, nil
	}
	a, err := circuit.NewAngles(cfg.InitialBetas, cfg.InitialGammas)
	if err != nil {
		return circuit.Angles{}, false, fmt.Errorf("initial angles: %w", err)
	}
	return a, true, nil
}

func checkProblem(numQubits, depth int, op *hamiltonian.CostOperator) error {
	if op == nil {
		return fmt.Errorf("cost operator is nil")
	}
	if depth < 1 {
		return circuit.ErrNoLayers
	}
	if numQubits != op.NumQubits {
		return fmt.Errorf("%w: search over %d qubits, operator has %d", circuit.ErrQubitCount, numQubits, op.NumQubits)
	}
	return nil
}
