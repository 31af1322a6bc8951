package search

import (
	"context"
	"math"
	"sync"

	"github.com/GoSim-25-26J-441/qaoa-core/internal/circuit"
	"github.com/GoSim-25-26J-441/qaoa-core/internal/hamiltonian"
	"github.com/GoSim-25-26J-441/qaoa-core/internal/simulator"
)

// Evaluator maps angles to the expected cost of op. It is safe for
// concurrent use.
type Evaluator struct {
	exec     simulator.Executor
	op       *hamiltonian.CostOperator
	progress ProgressFunc

	mu    sync.Mutex
	evals int
	best  float64
}

// NewEvaluator creates an evaluator for op on exec.
func NewEvaluator(exec simulator.Executor, op *hamiltonian.CostOperator, progress ProgressFunc) *Evaluator {
	return &Evaluator{exec: exec, op: op, progress: progress, best: math.Inf(1)}
}

// Evaluate builds the ansatz for a and returns its expected cost.
func (e *Evaluator) Evaluate(ctx context.Context, a circuit.Angles) (float64, error) {
	return e.EvaluateOn(ctx, e.exec, a)
}

// EvaluateOn is Evaluate on a different executor, typically a Stream of the
// evaluator's own.
func (e *Evaluator) EvaluateOn(ctx context.Context, exec simulator.Executor, a circuit.Angles) (float64, error) {
	c, err := circuit.BuildAngles(a, e.op)
	if err != nil {
		return 0, err
	}
	cost, err := exec.Expectation(ctx, c, e.op)
	if err != nil {
		return 0, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.evals++
	if cost < e.best {
		e.best = cost
	}
	if e.progress != nil {
		e.progress(e.evals, e.best)
	}
	return cost, nil
}

// Evaluations returns the number of successful evaluations so far.
func (e *Evaluator) Evaluations() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.evals
}
