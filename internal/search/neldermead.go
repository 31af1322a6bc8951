package search

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"gonum.org/v1/gonum/optimize"

	"github.com/GoSim-25-26J-441/qaoa-core/internal/circuit"
	"github.com/GoSim-25-26J-441/qaoa-core/internal/hamiltonian"
	"github.com/GoSim-25-26J-441/qaoa-core/internal/simulator"
	"github.com/GoSim-25-26J-441/qaoa-core/pkg/utils"
)

// NelderMead minimises the expected cost with the derivative-free
// Nelder–Mead simplex method over the flat vector [β..., γ...]. Betas start
// uniformly in [0, π] and gammas in [0, 2π].
type NelderMead struct {
	MaxIterations  int
	MaxEvaluations int // 0 means no limit

	exec  simulator.Executor
	seed  int64
	start []float64
	opts  options
}

// NewNelderMead creates a Nelder–Mead strategy. The seed fixes the starting
// point; 0 draws one from the clock.
func NewNelderMead(exec simulator.Executor, maxIterations int, seed int64, opts ...Option) *NelderMead {
	return &NelderMead{
		MaxIterations: maxIterations,
		exec:          exec,
		seed:          seed,
		opts:          buildOptions(opts),
	}
}

// WithStart fixes the starting angles instead of drawing them from the seed.
func (nm *NelderMead) WithStart(a circuit.Angles) *NelderMead {
	nm.start = a.Vector()
	return nm
}

func (nm *NelderMead) Name() string {
	return "nelder_mead"
}

// InitialPoint draws the starting vector for depth p.
func InitialPoint(rng *utils.RandSource, depth int) []float64 {
	x := make([]float64, 2*depth)
	for l := 0; l < depth; l++ {
		x[l] = rng.UniformFloat64(0, math.Pi)
	}
	for l := 0; l < depth; l++ {
		x[depth+l] = rng.UniformFloat64(0, 2*math.Pi)
	}
	return x
}

// Search runs the minimiser until it converges or hits MaxIterations or
// MaxEvaluations, and returns the best point it evaluated.
func (nm *NelderMead) Search(ctx context.Context, numQubits, depth int, op *hamiltonian.CostOperator) (*Result, error) {
	if err := checkProblem(numQubits, depth, op); err != nil {
		return nil, err
	}
	if nm.exec == nil {
		return nil, ErrNilExecutor
	}

	start := time.Now()
	eval := NewEvaluator(nm.exec, op, nm.opts.progress)
	x0 := InitialPoint(utils.NewRandSource(nm.seed), depth)
	if nm.start != nil {
		if len(nm.start) != 2*depth {
			return nil, fmt.Errorf("%w: start has %d layers, search depth is %d", circuit.ErrAngleMismatch, len(nm.start)/2, depth)
		}
		x0 = append([]float64(nil), nm.start...)
	}

	var (
		evalErr error
		bestF   = math.Inf(1)
		bestX   []float64
		history []Step
	)
	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			if evalErr != nil {
				return math.Inf(1)
			}
			a, err := circuit.AnglesFromVector(x, depth)
			if err != nil {
				evalErr = err
				return math.Inf(1)
			}
			f, err := eval.Evaluate(ctx, a)
			if err != nil {
				evalErr = err
				return math.Inf(1)
			}
			if f < bestF {
				bestF = f
				bestX = append(bestX[:0], x...)
				history = append(history, Step{Iteration: eval.Evaluations(), Cost: f, Angles: a})
			}
			return f
		},
	}
	settings := &optimize.Settings{
		MajorIterations: nm.MaxIterations,
		FuncEvaluations: nm.MaxEvaluations,
		Concurrent:      1,
	}

	nm.opts.log.Debug("nelder-mead search started",
		"depth", depth,
		"max_iterations", nm.MaxIterations,
		"max_evaluations", nm.MaxEvaluations)

	res, err := optimize.Minimize(problem, x0, settings, &optimize.NelderMead{})
	if evalErr != nil {
		return nil, evalErr
	}
	if bestX == nil {
		if err == nil {
			err = errors.New("minimiser made no evaluations")
		}
		return nil, err
	}
	if err != nil {
		nm.opts.log.Warn("nelder-mead stopped early", "error", err)
	}

	angles, _ := circuit.AnglesFromVector(bestX, depth)
	result := &Result{
		Strategy:    nm.Name(),
		Angles:      angles,
		Cost:        bestF,
		Evaluations: eval.Evaluations(),
		History:     history,
		Duration:    time.Since(start),
	}
	if res != nil {
		result.Iterations = res.Stats.MajorIterations
		result.Converged = res.Status == optimize.FunctionConvergence
		result.Reason = res.Status.String()
	}
	if err != nil {
		result.Reason = err.Error()
	}

	nm.opts.log.Info("nelder-mead search finished",
		"cost", result.Cost,
		"evaluations", result.Evaluations,
		"iterations", result.Iterations,
		"status", result.Reason)
	return result, nil
}
