package search

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"gonum.org/v1/gonum/floats"

	"github.com/GoSim-25-26J-441/qaoa-core/internal/circuit"
	"github.com/GoSim-25-26J-441/qaoa-core/internal/hamiltonian"
	"github.com/GoSim-25-26J-441/qaoa-core/internal/simulator"
)

// Landscape is the expected cost over the beta × gamma grid of a one-layer
// search. Values[i][j] is the cost at (Betas[i], Gammas[j]).
type Landscape struct {
	Betas  []float64   `json:"betas"`
	Gammas []float64   `json:"gammas"`
	Values [][]float64 `json:"values"`
}

// Grid exhaustively evaluates every combination of p angle pairs, with beta
// on Resolution points of [0, π] and gamma on 2·Resolution points of
// [0, 2π]. Points are enumerated like a Cartesian product: beta tuples
// outer, gamma tuples inner, the first layer varying slowest. The first
// point with the lowest cost wins.
//
// When the executor is a simulator.Streamer, point k is evaluated on
// Stream(k), so sampled and noisy costs do not depend on Workers.
//
// The point count is (2·Resolution²)^p, so the search is only practical for
// p ≤ 2 at modest resolutions.
type Grid struct {
	Resolution int
	Workers    int // evaluate with this many goroutines when > 1
	MaxPoints  int // refuse grids larger than this; 0 disables the guard

	exec simulator.Executor
	opts options
}

// NewGrid creates a grid search strategy.
func NewGrid(exec simulator.Executor, resolution int, opts ...Option) *Grid {
	return &Grid{
		Resolution: resolution,
		Workers:    1,
		exec:       exec,
		opts:       buildOptions(opts),
	}
}

func (g *Grid) Name() string {
	return "grid"
}

// Axes returns the beta and gamma sample points.
func (g *Grid) Axes() (betas, gammas []float64, err error) {
	if g.Resolution < 2 {
		return nil, nil, fmt.Errorf("%w: got %d", ErrGridTooCoarse, g.Resolution)
	}
	betas = floats.Span(make([]float64, g.Resolution), 0, math.Pi)
	gammas = floats.Span(make([]float64, 2*g.Resolution), 0, 2*math.Pi)
	return betas, gammas, nil
}

// Points returns the number of grid points for depth p.
func (g *Grid) Points(depth int) (int, error) {
	if g.Resolution < 2 {
		return 0, fmt.Errorf("%w: got %d", ErrGridTooCoarse, g.Resolution)
	}
	perLayer := 2 * g.Resolution * g.Resolution
	total := 1
	for l := 0; l < depth; l++ {
		if total > math.MaxInt32/perLayer {
			return 0, fmt.Errorf("%w: resolution %d at depth %d", ErrGridTooLarge, g.Resolution, depth)
		}
		total *= perLayer
	}
	if g.MaxPoints > 0 && total > g.MaxPoints {
		return 0, fmt.Errorf("%w: %d points exceeds limit %d", ErrGridTooLarge, total, g.MaxPoints)
	}
	return total, nil
}

// gridPoint is a candidate minimum: its cost and enumeration index.
type gridPoint struct {
	cost  float64
	index int
}

// better orders points by cost, then by enumeration index, so merging
// partial minima reproduces the sequential first-found winner.
func (p gridPoint) better(q gridPoint) bool {
	if p.cost != q.cost {
		return p.cost < q.cost
	}
	return p.index < q.index
}

// Search evaluates every grid point and returns the best.
func (g *Grid) Search(ctx context.Context, numQubits, depth int, op *hamiltonian.CostOperator) (*Result, error) {
	if err := checkProblem(numQubits, depth, op); err != nil {
		return nil, err
	}
	if g.exec == nil {
		return nil, ErrNilExecutor
	}
	betaAxis, gammaAxis, err := g.Axes()
	if err != nil {
		return nil, err
	}
	total, err := g.Points(depth)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	eval := NewEvaluator(g.exec, op, g.opts.progress)
	enum := &enumeration{betas: betaAxis, gammas: gammaAxis, depth: depth}

	var landscape *Landscape
	if depth == 1 {
		landscape = &Landscape{Betas: betaAxis, Gammas: gammaAxis, Values: make([][]float64, len(betaAxis))}
		for i := range landscape.Values {
			landscape.Values[i] = make([]float64, len(gammaAxis))
		}
	}

	workers := g.Workers
	if workers < 1 {
		workers = 1
	}
	if workers > total {
		workers = total
	}
	g.opts.log.Debug("grid search started",
		"resolution", g.Resolution,
		"depth", depth,
		"points", total,
		"workers", workers)

	var best gridPoint
	if workers == 1 {
		best, err = g.scan(ctx, eval, enum, landscape, 0, total)
	} else {
		best, err = g.scanParallel(ctx, eval, enum, landscape, total, workers)
	}
	if err != nil {
		return nil, err
	}

	result := &Result{
		Strategy:    g.Name(),
		Angles:      enum.at(best.index),
		Cost:        best.cost,
		Evaluations: eval.Evaluations(),
		Iterations:  total,
		Converged:   true,
		Reason:      "grid exhausted",
		Landscape:   landscape,
		Duration:    time.Since(start),
	}
	g.opts.log.Info("grid search finished",
		"cost", result.Cost,
		"evaluations", result.Evaluations,
		"duration", result.Duration)
	return result, nil
}

// scan evaluates points [lo, hi) in order, keeping the first strict minimum.
func (g *Grid) scan(ctx context.Context, eval *Evaluator, enum *enumeration, landscape *Landscape, lo, hi int) (gridPoint, error) {
	best := gridPoint{cost: math.Inf(1), index: lo}
	for k := lo; k < hi; k++ {
		if err := ctx.Err(); err != nil {
			return best, err
		}
		cost, err := eval.EvaluateOn(ctx, g.pointExecutor(k), enum.at(k))
		if err != nil {
			return best, fmt.Errorf("grid point %d: %w", k, err)
		}
		if landscape != nil {
			i, j := enum.cell(k)
			landscape.Values[i][j] = cost
		}
		if cost < best.cost {
			best = gridPoint{cost: cost, index: k}
		}
	}
	return best, nil
}

func (g *Grid) pointExecutor(k int) simulator.Executor {
	if s, ok := g.exec.(simulator.Streamer); ok {
		return s.Stream(uint64(k))
	}
	return g.exec
}

// scanParallel splits the enumeration into contiguous chunks, one per
// worker, and merges the per-chunk minima.
func (g *Grid) scanParallel(ctx context.Context, eval *Evaluator, enum *enumeration, landscape *Landscape, total, workers int) (gridPoint, error) {
	parent := ctx
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	chunk := (total + workers - 1) / workers
	bests := make([]gridPoint, workers)
	errs := make([]error, workers)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		lo := w * chunk
		hi := lo + chunk
		if hi > total {
			hi = total
		}
		if lo >= hi {
			bests[w] = gridPoint{cost: math.Inf(1), index: total}
			continue
		}
		wg.Add(1)
		go func(w, lo, hi int) {
			defer wg.Done()
			best, err := g.scan(ctx, eval, enum, landscape, lo, hi)
			bests[w], errs[w] = best, err
			if err != nil {
				cancel()
			}
		}(w, lo, hi)
	}
	wg.Wait()

	// Workers stopped by a sibling's failure report context.Canceled; surface
	// the failure itself.
	var firstErr error
	for _, err := range errs {
		if err == nil {
			continue
		}
		if parent.Err() == nil && errors.Is(err, context.Canceled) {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		return gridPoint{}, err
	}
	if firstErr != nil {
		return gridPoint{}, firstErr
	}
	best := bests[0]
	for _, p := range bests[1:] {
		if p.better(best) {
			best = p
		}
	}
	return best, nil
}

// enumeration maps a flat index onto (beta tuple, gamma tuple).
type enumeration struct {
	betas  []float64
	gammas []float64
	depth  int
}

func (e *enumeration) gammaTuples() int {
	n := 1
	for l := 0; l < e.depth; l++ {
		n *= len(e.gammas)
	}
	return n
}

func (e *enumeration) at(k int) circuit.Angles {
	bi, gi := k/e.gammaTuples(), k%e.gammaTuples()
	a := circuit.Angles{Betas: make([]float64, e.depth), Gammas: make([]float64, e.depth)}
	for l := e.depth - 1; l >= 0; l-- {
		a.Betas[l] = e.betas[bi%len(e.betas)]
		bi /= len(e.betas)
		a.Gammas[l] = e.gammas[gi%len(e.gammas)]
		gi /= len(e.gammas)
	}
	return a
}

// cell returns the landscape coordinates of index k for a one-layer grid.
func (e *enumeration) cell(k int) (int, int) {
	return k / len(e.gammas), k % len(e.gammas)
}
