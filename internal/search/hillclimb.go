package search

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/GoSim-25-26J-441/qaoa-core/internal/circuit"
	"github.com/GoSim-25-26J-441/qaoa-core/internal/hamiltonian"
	"github.com/GoSim-25-26J-441/qaoa-core/internal/simulator"
	"github.com/GoSim-25-26J-441/qaoa-core/pkg/utils"
)

// HillClimb implements a hill-climbing search over the angles. Each
// iteration evaluates the explorer's neighbours of the current point and
// moves to the best one if it is strictly better. When no neighbour
// improves, the step size is halved.
type HillClimb struct {
	MaxIterations int
	StepSize      float64
	MinStepSize   float64 // stop once the step shrinks below this

	exec        simulator.Executor
	seed        int64
	explorer    AngleExplorer
	convergence ConvergenceStrategy
	start       *circuit.Angles
	opts        options
}

// NewHillClimb creates a new hill-climbing strategy
func NewHillClimb(exec simulator.Executor, maxIterations int, stepSize float64, seed int64, opts ...Option) *HillClimb {
	if stepSize <= 0 {
		stepSize = 0.1
	}
	return &HillClimb{
		MaxIterations: maxIterations,
		StepSize:      stepSize,
		MinStepSize:   1e-4,
		exec:          exec,
		seed:          seed,
		explorer:      NewDefaultExplorer(),
		convergence:   NewCombinedStrategy(nil),
		opts:          buildOptions(opts),
	}
}

// WithExplorer sets a custom angle exploration strategy
func (h *HillClimb) WithExplorer(explorer AngleExplorer) *HillClimb {
	h.explorer = explorer
	return h
}

// WithConvergence sets the convergence strategy
func (h *HillClimb) WithConvergence(strategy ConvergenceStrategy) *HillClimb {
	h.convergence = strategy
	return h
}

// WithStart fixes the starting angles instead of drawing them from the seed.
func (h *HillClimb) WithStart(a circuit.Angles) *HillClimb {
	start := cloneAngles(a)
	h.start = &start
	return h
}

func (h *HillClimb) Name() string {
	return "hill_climb"
}

// Search runs the hill climber
func (h *HillClimb) Search(ctx context.Context, numQubits, depth int, op *hamiltonian.CostOperator) (*Result, error) {
	if err := checkProblem(numQubits, depth, op); err != nil {
		return nil, err
	}
	if h.exec == nil {
		return nil, ErrNilExecutor
	}

	started := time.Now()
	eval := NewEvaluator(h.exec, op, h.opts.progress)

	current, err := h.initial(depth)
	if err != nil {
		return nil, err
	}
	currentCost, err := eval.Evaluate(ctx, current)
	if err != nil {
		return nil, fmt.Errorf("failed to evaluate initial angles: %w", err)
	}
	history := []Step{{Iteration: 0, Cost: currentCost, Angles: cloneAngles(current)}}

	step := h.StepSize
	explorer := h.explorer
	if explorer == nil {
		explorer = NewDefaultExplorer()
	}

	result := func(iteration int, converged bool, reason string) *Result {
		r := &Result{
			Strategy:    h.Name(),
			Angles:      current,
			Cost:        currentCost,
			Evaluations: eval.Evaluations(),
			Iterations:  iteration,
			Converged:   converged,
			Reason:      reason,
			History:     history,
			Duration:    time.Since(started),
		}
		h.opts.log.Info("hill climb finished",
			"cost", r.Cost,
			"evaluations", r.Evaluations,
			"iterations", r.Iterations,
			"reason", r.Reason)
		return r
	}

	for iteration := 1; iteration <= h.MaxIterations; iteration++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		neighbors := explorer.GenerateNeighbors(current, step)
		if len(neighbors) == 0 {
			return result(iteration, true, "no valid neighbors"), nil
		}

		bestNeighbor := -1
		bestNeighborCost := math.Inf(1)
		for i, n := range neighbors {
			cost, err := eval.Evaluate(ctx, n)
			if err != nil {
				return nil, fmt.Errorf("iteration %d: %w", iteration, err)
			}
			if cost < bestNeighborCost {
				bestNeighborCost = cost
				bestNeighbor = i
			}
		}

		if bestNeighborCost < currentCost {
			current = neighbors[bestNeighbor]
			currentCost = bestNeighborCost
			h.opts.log.Debug("hill climb improved",
				"iteration", iteration,
				"cost", currentCost,
				"step", step)
		} else {
			step /= 2
		}
		history = append(history, Step{Iteration: iteration, Cost: currentCost, Angles: cloneAngles(current)})

		if step < h.MinStepSize {
			return result(iteration, true, fmt.Sprintf("step size below %g", h.MinStepSize)), nil
		}
		if h.convergence != nil {
			if converged, reason := h.convergence.CheckConvergence(history); converged {
				return result(iteration, true, reason), nil
			}
		}
	}

	return result(h.MaxIterations, false, "max iterations reached"), nil
}

func (h *HillClimb) initial(depth int) (circuit.Angles, error) {
	if h.start != nil {
		if h.start.Depth() != depth {
			return circuit.Angles{}, fmt.Errorf("%w: start has %d layers, search depth is %d", circuit.ErrAngleMismatch, h.start.Depth(), depth)
		}
		if err := h.start.Validate(); err != nil {
			return circuit.Angles{}, err
		}
		return cloneAngles(*h.start), nil
	}
	return circuit.AnglesFromVector(InitialPoint(utils.NewRandSource(h.seed), depth), depth)
}
