package search

import (
	"math"

	"github.com/GoSim-25-26J-441/qaoa-core/internal/circuit"
)

// AngleExplorer proposes neighbouring angle sets for the hill climber.
type AngleExplorer interface {
	// GenerateNeighbors returns candidate angles around base for the given
	// step size.
	GenerateNeighbors(base circuit.Angles, stepSize float64) []circuit.Angles
	// Name returns the name of the exploration strategy
	Name() string
}

// NewAngleExplorer returns the explorer registered under name. An empty name
// selects the default explorer.
func NewAngleExplorer(name string) (AngleExplorer, error) {
	switch name {
	case "", "default":
		return NewDefaultExplorer(), nil
	case "conservative":
		return NewConservativeExplorer(), nil
	case "aggressive":
		return NewAggressiveExplorer(), nil
	default:
		return nil, &UnknownExplorerError{Explorer: name}
	}
}

// UnknownExplorerError indicates an unknown exploration strategy name
type UnknownExplorerError struct {
	Explorer string
}

func (e *UnknownExplorerError) Error() string {
	return "unknown exploration strategy: " + e.Explorer
}

// DefaultExplorer moves one angle at a time by ±step. Betas stay in [0, π]
// and gammas in [0, 2π]; moves that would leave the range are clamped, and
// moves that clamp back onto the current value are dropped.
type DefaultExplorer struct {
	betaScale  float64
	gammaScale float64
	diagonal   bool // also move (β_k, γ_k) together
}

// NewDefaultExplorer creates a new default angle explorer
func NewDefaultExplorer() *DefaultExplorer {
	return &DefaultExplorer{betaScale: 1, gammaScale: 1}
}

func (e *DefaultExplorer) Name() string {
	return "default"
}

// GenerateNeighbors generates the coordinate neighbours of base
func (e *DefaultExplorer) GenerateNeighbors(base circuit.Angles, stepSize float64) []circuit.Angles {
	neighbors := make([]circuit.Angles, 0, 4*base.Depth())

	for k := range base.Betas {
		for _, dir := range []float64{1, -1} {
			if n, ok := e.shift(base, k, dir*stepSize*e.betaScale, 0); ok {
				neighbors = append(neighbors, n)
			}
		}
	}
	for k := range base.Gammas {
		for _, dir := range []float64{1, -1} {
			if n, ok := e.shift(base, k, 0, dir*stepSize*e.gammaScale); ok {
				neighbors = append(neighbors, n)
			}
		}
	}
	if e.diagonal {
		for k := range base.Betas {
			for _, db := range []float64{1, -1} {
				for _, dg := range []float64{1, -1} {
					if n, ok := e.shift(base, k, db*stepSize*e.betaScale, dg*stepSize*e.gammaScale); ok {
						neighbors = append(neighbors, n)
					}
				}
			}
		}
	}
	return neighbors
}

// shift moves layer k by (db, dg). It reports false when the move is a no-op.
func (e *DefaultExplorer) shift(base circuit.Angles, k int, db, dg float64) (circuit.Angles, bool) {
	n := cloneAngles(base)
	n.Betas[k] = clamp(base.Betas[k]+db, 0, math.Pi)
	n.Gammas[k] = clamp(base.Gammas[k]+dg, 0, 2*math.Pi)
	if n.Betas[k] == base.Betas[k] && n.Gammas[k] == base.Gammas[k] {
		return circuit.Angles{}, false
	}
	return n, true
}

// ConservativeExplorer implements a conservative exploration strategy
// that makes smaller, more cautious adjustments
type ConservativeExplorer struct {
	*DefaultExplorer
}

// NewConservativeExplorer creates a new conservative explorer
func NewConservativeExplorer() *ConservativeExplorer {
	base := NewDefaultExplorer()
	base.betaScale = 0.5
	base.gammaScale = 0.5
	return &ConservativeExplorer{DefaultExplorer: base}
}

func (e *ConservativeExplorer) Name() string {
	return "conservative"
}

// AggressiveExplorer implements an aggressive exploration strategy
// that makes larger adjustments to explore the space more quickly
type AggressiveExplorer struct {
	*DefaultExplorer
}

// NewAggressiveExplorer creates a new aggressive explorer
func NewAggressiveExplorer() *AggressiveExplorer {
	base := NewDefaultExplorer()
	base.betaScale = 2
	base.gammaScale = 2
	base.diagonal = true
	return &AggressiveExplorer{DefaultExplorer: base}
}

func (e *AggressiveExplorer) Name() string {
	return "aggressive"
}

func cloneAngles(a circuit.Angles) circuit.Angles {
	return circuit.Angles{
		Betas:  append([]float64(nil), a.Betas...),
		Gammas: append([]float64(nil), a.Gammas...),
	}
}

func clamp(x, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, x))
}
