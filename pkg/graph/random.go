package graph

import (
	"fmt"
	"math"

	"github.com/GoSim-25-26J-441/qaoa-core/pkg/utils"
)

// RandomOptions configures Erdős–Rényi G(n, p) generation.
type RandomOptions struct {
	Vertices  int
	EdgeProb  float64
	MinWeight float64 // vertex weights are drawn from [MinWeight, MaxWeight]
	MaxWeight float64 // equal bounds give constant weights
	IntWeight bool    // round weights to integers
}

// ErdosRenyi samples a G(n, p) graph: every unordered vertex pair is joined
// independently with probability p. Pairs are visited in lexicographic order
// so a seeded source reproduces the same graph.
func ErdosRenyi(opts RandomOptions, rng *utils.RandSource) (*Graph, error) {
	if opts.Vertices <= 0 {
		return nil, ErrNoVertices
	}
	if opts.EdgeProb < 0 || opts.EdgeProb > 1 {
		return nil, fmt.Errorf("edge probability must be in [0, 1], got %f", opts.EdgeProb)
	}
	if opts.MinWeight == 0 && opts.MaxWeight == 0 {
		opts.MinWeight, opts.MaxWeight = DefaultWeight, DefaultWeight
	}
	if opts.MaxWeight < opts.MinWeight {
		return nil, fmt.Errorf("max weight %f below min weight %f", opts.MaxWeight, opts.MinWeight)
	}
	if rng == nil {
		rng = utils.DefaultSource()
	}

	weights := make([]float64, opts.Vertices)
	for i := range weights {
		w := opts.MinWeight
		if opts.MaxWeight > opts.MinWeight {
			w = rng.UniformFloat64(opts.MinWeight, opts.MaxWeight)
		}
		if opts.IntWeight {
			w = math.Round(w)
		}
		weights[i] = w
	}

	var edges []Edge
	for u := 0; u < opts.Vertices; u++ {
		for v := u + 1; v < opts.Vertices; v++ {
			if rng.BernoulliBool(opts.EdgeProb) {
				edges = append(edges, Edge{U: u, V: v})
			}
		}
	}
	return New(weights, edges)
}
